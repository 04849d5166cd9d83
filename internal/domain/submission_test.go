package domain

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/questdrop/backend/internal/common"
	"github.com/questdrop/backend/internal/entity"
	"github.com/questdrop/backend/internal/model"
	"github.com/questdrop/backend/internal/repository"
	"github.com/questdrop/backend/pkg/pubsub"
	"github.com/questdrop/backend/pkg/testutil"
	"github.com/questdrop/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type submissionTestSuite struct {
	questRepo      repository.QuestRepository
	submissionRepo repository.SubmissionRepository
	completionRepo repository.CompletionRepository
	stakeRepo      repository.StakeRepository
	poolRepo       repository.PoolRepository
	payoutRepo     repository.PayoutRepository
	userRepo       repository.UserRepository
	badgeRepo      repository.BadgeRepository

	publisher  *testutil.MockPublisher
	staking    *stakingDomain
	submission *submissionDomain
}

func newSubmissionTestSuite(
	redisClient *testutil.MockRedisClient,
	blockchainCaller *testutil.MockBlockchainCaller,
) *submissionTestSuite {
	s := &submissionTestSuite{
		questRepo:      repository.NewQuestRepository(),
		submissionRepo: repository.NewSubmissionRepository(),
		completionRepo: repository.NewCompletionRepository(),
		stakeRepo:      repository.NewStakeRepository(),
		poolRepo:       repository.NewPoolRepository(),
		payoutRepo:     repository.NewPayoutRepository(),
		userRepo:       repository.NewUserRepository(),
		badgeRepo:      repository.NewBadgeRepository(),
		publisher:      &testutil.MockPublisher{},
	}

	s.staking = NewStakingDomain(s.stakeRepo, s.poolRepo, s.payoutRepo, s.userRepo, blockchainCaller)
	badge := NewBadgeDomain(s.badgeRepo, s.userRepo, blockchainCaller)
	s.submission = NewSubmissionDomain(
		s.questRepo, s.submissionRepo, s.completionRepo, s.userRepo,
		common.NewPauser(redisClient), s.staking, badge,
		s.publisher, redisClient)

	return s
}

func Test_submissionDomain_Submit(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(ctx, t)
	suite := newSubmissionTestSuite(&testutil.MockRedisClient{}, &testutil.MockBlockchainCaller{})

	userCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)

	resp, err := suite.submission.Submit(userCtx, &model.SubmitQuestRequest{
		QuestID:  testutil.Quest1.ID,
		ProofURL: "https://twitter.com/user1/status/1",
	})
	require.NoError(t, err)
	require.NotZero(t, resp.ID)

	record, err := suite.submissionRepo.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	require.Equal(t, entity.SubmissionPending, record.Status)
	require.Equal(t, testutil.User1.ID, record.UserID)

	// A second attempt while the first is pending is rejected.
	_, err = suite.submission.Submit(userCtx, &model.SubmitQuestRequest{
		QuestID:  testutil.Quest1.ID,
		ProofURL: "https://twitter.com/user1/status/2",
	})
	require.Error(t, err)
	require.Equal(t, "You already have a pending submission for this quest", err.Error())
}

func Test_submissionDomain_Submit_preconditions(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(ctx, t)
	suite := newSubmissionTestSuite(&testutil.MockRedisClient{}, &testutil.MockBlockchainCaller{})

	userCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)

	_, err := suite.submission.Submit(userCtx, &model.SubmitQuestRequest{
		QuestID: testutil.Quest1.ID,
	})
	require.Error(t, err)
	require.Equal(t, "Not allow an empty proof url", err.Error())

	longProof := make([]byte, 1000)
	for i := range longProof {
		longProof[i] = 'a'
	}
	_, err = suite.submission.Submit(userCtx, &model.SubmitQuestRequest{
		QuestID:  testutil.Quest1.ID,
		ProofURL: string(longProof),
	})
	require.Error(t, err)
	require.Equal(t, "Proof url is too long", err.Error())

	_, err = suite.submission.Submit(userCtx, &model.SubmitQuestRequest{
		QuestID:  99999,
		ProofURL: "https://twitter.com/user1/status/1",
	})
	require.Error(t, err)
	require.Equal(t, "Not found quest", err.Error())

	_, err = suite.submission.Submit(userCtx, &model.SubmitQuestRequest{
		QuestID:  testutil.Quest2.ID,
		ProofURL: "https://twitter.com/user1/status/1",
	})
	require.Error(t, err)
	require.Equal(t, "This quest is not active", err.Error())
}

func Test_submissionDomain_Submit_window(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(ctx, t)
	suite := newSubmissionTestSuite(&testutil.MockRedisClient{}, &testutil.MockBlockchainCaller{})

	userCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)

	notStarted := &entity.Quest{
		Title:          "Not started yet",
		Requirements:   "anything",
		RewardAmount:   100,
		IsActive:       true,
		StartTime:      time.Now().Add(time.Hour),
		EndTime:        time.Now().Add(2 * time.Hour),
		MaxCompletions: 10,
		CreatedBy:      testutil.Owner.ID,
	}
	require.NoError(t, suite.questRepo.Create(ctx, notStarted))

	_, err := suite.submission.Submit(userCtx, &model.SubmitQuestRequest{
		QuestID:  notStarted.ID,
		ProofURL: "https://twitter.com/user1/status/1",
	})
	require.Error(t, err)
	require.Equal(t, "The submission window is closed", err.Error())

	ended := &entity.Quest{
		Title:          "Already over",
		Requirements:   "anything",
		RewardAmount:   100,
		IsActive:       true,
		StartTime:      time.Now().Add(-2 * time.Hour),
		EndTime:        time.Now().Add(-time.Hour),
		MaxCompletions: 10,
		CreatedBy:      testutil.Owner.ID,
	}
	require.NoError(t, suite.questRepo.Create(ctx, ended))

	_, err = suite.submission.Submit(userCtx, &model.SubmitQuestRequest{
		QuestID:  ended.ID,
		ProofURL: "https://twitter.com/user1/status/1",
	})
	require.Error(t, err)
	require.Equal(t, "The submission window is closed", err.Error())
}

func Test_submissionDomain_Submit_paused(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(ctx, t)

	redisClient := &testutil.MockRedisClient{
		ExistFunc: func(ctx context.Context, key string) (bool, error) {
			return true, nil
		},
	}
	suite := newSubmissionTestSuite(redisClient, &testutil.MockBlockchainCaller{})

	userCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	_, err := suite.submission.Submit(userCtx, &model.SubmitQuestRequest{
		QuestID:  testutil.Quest1.ID,
		ProofURL: "https://twitter.com/user1/status/1",
	})
	require.Error(t, err)
	require.Equal(t, "The platform is temporarily paused", err.Error())
}

func Test_submissionDomain_Verify_approve(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(ctx, t)
	suite := newSubmissionTestSuite(&testutil.MockRedisClient{}, &testutil.MockBlockchainCaller{})

	userCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	adminCtx := xcontext.WithRequestUserID(ctx, testutil.Admin.ID)

	submitResp, err := suite.submission.Submit(userCtx, &model.SubmitQuestRequest{
		QuestID:  testutil.Quest1.ID,
		ProofURL: "https://twitter.com/user1/status/1",
	})
	require.NoError(t, err)

	// A regular user cannot verify.
	_, err = suite.submission.Verify(userCtx, &model.VerifySubmissionRequest{
		ID: submitResp.ID, Approved: true,
	})
	require.Error(t, err)
	require.Equal(t, "Permission denied", err.Error())

	verifyResp, err := suite.submission.Verify(adminCtx, &model.VerifySubmissionRequest{
		ID: submitResp.ID, Approved: true,
	})
	require.NoError(t, err)
	require.Equal(t, "0xtransfer", verifyResp.RewardTxHash)
	require.NotZero(t, verifyResp.NftTokenID)

	record, err := suite.submissionRepo.GetByID(ctx, submitResp.ID)
	require.NoError(t, err)
	require.Equal(t, entity.SubmissionCompleted, record.Status)
	require.Equal(t, verifyResp.NftTokenID, record.NftTokenID)
	require.True(t, record.VerifiedAt.Valid)
	require.Equal(t, testutil.Admin.ID, record.VerifierID.String)

	quest, err := suite.questRepo.GetByID(ctx, testutil.Quest1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), quest.CurrentCompletions)

	// Pool balance dropped by exactly the reward amount.
	balance, err := suite.staking.PoolBalance(ctx)
	require.NoError(t, err)
	require.Equal(t, testutil.Stake1.Amount-testutil.Quest1.RewardAmount, balance)

	badge, err := suite.badgeRepo.GetByTokenID(ctx, verifyResp.NftTokenID)
	require.NoError(t, err)
	require.Equal(t, testutil.Quest1.Title, badge.QuestTitle)
	require.Equal(t, testutil.User1.ID, badge.UserID)

	// The quest is permanently locked for this user.
	_, err = suite.submission.Submit(userCtx, &model.SubmitQuestRequest{
		QuestID:  testutil.Quest1.ID,
		ProofURL: "https://twitter.com/user1/status/2",
	})
	require.Error(t, err)
	require.Equal(t, "You have already completed this quest", err.Error())

	// A second verification of a terminal submission is rejected.
	_, err = suite.submission.Verify(adminCtx, &model.VerifySubmissionRequest{
		ID: submitResp.ID, Approved: true,
	})
	require.Error(t, err)
	require.Equal(t, "This submission was already completed", err.Error())
}

func Test_submissionDomain_Verify_reject(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(ctx, t)
	suite := newSubmissionTestSuite(&testutil.MockRedisClient{}, &testutil.MockBlockchainCaller{})

	userCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	adminCtx := xcontext.WithRequestUserID(ctx, testutil.Admin.ID)

	submitResp, err := suite.submission.Submit(userCtx, &model.SubmitQuestRequest{
		QuestID:  testutil.Quest1.ID,
		ProofURL: "https://twitter.com/user1/status/1",
	})
	require.NoError(t, err)

	_, err = suite.submission.Verify(adminCtx, &model.VerifySubmissionRequest{
		ID:              submitResp.ID,
		Approved:        false,
		RejectionReason: "The linked post is private",
	})
	require.NoError(t, err)

	record, err := suite.submissionRepo.GetByID(ctx, submitResp.ID)
	require.NoError(t, err)
	require.Equal(t, entity.SubmissionRejected, record.Status)
	require.Equal(t, "The linked post is private", record.RejectionReason)
	require.Zero(t, record.NftTokenID)

	// Rejection leaves counters and pool untouched.
	quest, err := suite.questRepo.GetByID(ctx, testutil.Quest1.ID)
	require.NoError(t, err)
	require.Zero(t, quest.CurrentCompletions)

	balance, err := suite.staking.PoolBalance(ctx)
	require.NoError(t, err)
	require.Equal(t, testutil.Stake1.Amount, balance)

	_, err = suite.submission.Verify(adminCtx, &model.VerifySubmissionRequest{
		ID: submitResp.ID, Approved: true,
	})
	require.Error(t, err)
	require.Equal(t, "This submission was already rejected", err.Error())

	// A rejection is not a lock-out, the user can try again.
	_, err = suite.submission.Submit(userCtx, &model.SubmitQuestRequest{
		QuestID:  testutil.Quest1.ID,
		ProofURL: "https://twitter.com/user1/status/2",
	})
	require.NoError(t, err)
}

func Test_submissionDomain_Verify_insufficientBalance(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(ctx, t)
	suite := newSubmissionTestSuite(&testutil.MockRedisClient{}, &testutil.MockBlockchainCaller{})

	userCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	stakerCtx := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	adminCtx := xcontext.WithRequestUserID(ctx, testutil.Admin.ID)

	expensive := &entity.Quest{
		Title:          "Big bounty",
		Requirements:   "anything",
		RewardAmount:   testutil.Stake1.Amount + 1,
		IsActive:       true,
		StartTime:      time.Now().Add(-time.Hour),
		EndTime:        time.Now().Add(24 * time.Hour),
		MaxCompletions: 1,
		CreatedBy:      testutil.Owner.ID,
	}
	require.NoError(t, suite.questRepo.Create(ctx, expensive))

	submitResp, err := suite.submission.Submit(userCtx, &model.SubmitQuestRequest{
		QuestID:  expensive.ID,
		ProofURL: "https://twitter.com/user1/status/1",
	})
	require.NoError(t, err)

	_, err = suite.submission.Verify(adminCtx, &model.VerifySubmissionRequest{
		ID: submitResp.ID, Approved: true,
	})
	require.Error(t, err)
	require.Equal(t, "Pool balance is not enough to pay the reward", err.Error())

	// Still pending, the admin can retry after the pool is replenished.
	record, err := suite.submissionRepo.GetByID(ctx, submitResp.ID)
	require.NoError(t, err)
	require.Equal(t, entity.SubmissionPending, record.Status)

	_, err = suite.staking.Stake(stakerCtx, &model.StakeRequest{Amount: 5_000_000})
	require.NoError(t, err)

	_, err = suite.submission.Verify(adminCtx, &model.VerifySubmissionRequest{
		ID: submitResp.ID, Approved: true,
	})
	require.NoError(t, err)
}

func Test_submissionDomain_Verify_mintFailureIsNotFatal(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(ctx, t)

	blockchainCaller := &testutil.MockBlockchainCaller{
		MintBadgeFunc: func(ctx context.Context, recipient string, tokenID, questID int64, proofURL string) (string, error) {
			return "", errors.New("rpc unavailable")
		},
	}
	suite := newSubmissionTestSuite(&testutil.MockRedisClient{}, blockchainCaller)

	userCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	adminCtx := xcontext.WithRequestUserID(ctx, testutil.Admin.ID)

	submitResp, err := suite.submission.Submit(userCtx, &model.SubmitQuestRequest{
		QuestID:  testutil.Quest1.ID,
		ProofURL: "https://twitter.com/user1/status/1",
	})
	require.NoError(t, err)

	verifyResp, err := suite.submission.Verify(adminCtx, &model.VerifySubmissionRequest{
		ID: submitResp.ID, Approved: true,
	})
	require.NoError(t, err)
	require.Zero(t, verifyResp.NftTokenID)

	record, err := suite.submissionRepo.GetByID(ctx, submitResp.ID)
	require.NoError(t, err)
	require.Equal(t, entity.SubmissionCompleted, record.Status)
	require.Zero(t, record.NftTokenID)

	// The reward was still paid.
	balance, err := suite.staking.PoolBalance(ctx)
	require.NoError(t, err)
	require.Equal(t, testutil.Stake1.Amount-testutil.Quest1.RewardAmount, balance)
}

func Test_submissionDomain_Verify_payoutFailureIsFatal(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(ctx, t)

	blockchainCaller := &testutil.MockBlockchainCaller{
		TransferTokenFunc: func(ctx context.Context, recipient string, amount int64) (string, error) {
			return "", errors.New("rpc unavailable")
		},
	}
	suite := newSubmissionTestSuite(&testutil.MockRedisClient{}, blockchainCaller)

	userCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	adminCtx := xcontext.WithRequestUserID(ctx, testutil.Admin.ID)

	submitResp, err := suite.submission.Submit(userCtx, &model.SubmitQuestRequest{
		QuestID:  testutil.Quest1.ID,
		ProofURL: "https://twitter.com/user1/status/1",
	})
	require.NoError(t, err)

	_, err = suite.submission.Verify(adminCtx, &model.VerifySubmissionRequest{
		ID: submitResp.ID, Approved: true,
	})
	require.Error(t, err)

	// Everything rolled back, the submission is still verifiable.
	record, err := suite.submissionRepo.GetByID(ctx, submitResp.ID)
	require.NoError(t, err)
	require.Equal(t, entity.SubmissionPending, record.Status)

	quest, err := suite.questRepo.GetByID(ctx, testutil.Quest1.ID)
	require.NoError(t, err)
	require.Zero(t, quest.CurrentCompletions)

	balance, err := suite.staking.PoolBalance(ctx)
	require.NoError(t, err)
	require.Equal(t, testutil.Stake1.Amount, balance)
}

func Test_submissionDomain_Verify_eventPayload(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(ctx, t)
	suite := newSubmissionTestSuite(&testutil.MockRedisClient{}, &testutil.MockBlockchainCaller{})

	var events []common.QuestEvent
	suite.publisher.PublishFunc = func(ctx context.Context, topic string, pack *pubsub.Pack) error {
		require.Equal(t, common.QuestEventTopic, topic)

		var event common.QuestEvent
		require.NoError(t, json.Unmarshal(pack.Msg, &event))
		events = append(events, event)
		return nil
	}

	userCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	adminCtx := xcontext.WithRequestUserID(ctx, testutil.Admin.ID)

	submitResp, err := suite.submission.Submit(userCtx, &model.SubmitQuestRequest{
		QuestID:  testutil.Quest1.ID,
		ProofURL: "https://twitter.com/user1/status/1",
	})
	require.NoError(t, err)

	verifyResp, err := suite.submission.Verify(adminCtx, &model.VerifySubmissionRequest{
		ID: submitResp.ID, Approved: true,
	})
	require.NoError(t, err)

	var verified *common.QuestVerifiedData
	for i := range events {
		if events[i].Type == common.QuestVerifiedEvent {
			require.Equal(t, testutil.Quest1.ID, events[i].QuestID)

			var data common.QuestVerifiedData
			require.NoError(t, json.Unmarshal(events[i].Data, &data))
			verified = &data
		}
	}

	// The indexer relies on the full review outcome riding in this event.
	require.NotNil(t, verified)
	require.Equal(t, submitResp.ID, verified.SubmissionID)
	require.Equal(t, testutil.User1.ID, verified.UserID)
	require.Equal(t, "completed", verified.Status)
	require.Equal(t, testutil.Admin.ID, verified.VerifierID)
	require.Equal(t, verifyResp.NftTokenID, verified.NftTokenID)
}

func Test_submissionDomain_completionCap(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(ctx, t)
	suite := newSubmissionTestSuite(&testutil.MockRedisClient{}, &testutil.MockBlockchainCaller{})

	user1Ctx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	user2Ctx := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	adminCtx := xcontext.WithRequestUserID(ctx, testutil.Admin.ID)

	oneShot := &entity.Quest{
		Title:          "First come first served",
		Requirements:   "anything",
		RewardAmount:   1_000_000,
		IsActive:       true,
		StartTime:      time.Now().Add(-time.Hour),
		EndTime:        time.Now().Add(24 * time.Hour),
		MaxCompletions: 1,
		CreatedBy:      testutil.Owner.ID,
	}
	require.NoError(t, suite.questRepo.Create(ctx, oneShot))

	submitResp, err := suite.submission.Submit(user1Ctx, &model.SubmitQuestRequest{
		QuestID:  oneShot.ID,
		ProofURL: "https://twitter.com/user1/status/1",
	})
	require.NoError(t, err)

	_, err = suite.submission.Verify(adminCtx, &model.VerifySubmissionRequest{
		ID: submitResp.ID, Approved: true,
	})
	require.NoError(t, err)

	quest, err := suite.questRepo.GetByID(ctx, oneShot.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), quest.CurrentCompletions)

	// The cap is reached, later players see a closed window even though the
	// time window is still open.
	_, err = suite.submission.Submit(user2Ctx, &model.SubmitQuestRequest{
		QuestID:  oneShot.ID,
		ProofURL: "https://twitter.com/user2/status/1",
	})
	require.Error(t, err)
	require.Equal(t, "The submission window is closed", err.Error())
}
