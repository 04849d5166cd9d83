package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/questdrop/backend/internal/common"
	"github.com/questdrop/backend/internal/entity"
	"github.com/questdrop/backend/internal/model"
	"github.com/questdrop/backend/internal/repository"
	"github.com/questdrop/backend/pkg/enum"
	"github.com/questdrop/backend/pkg/errorx"
	"github.com/questdrop/backend/pkg/pubsub"
	"github.com/questdrop/backend/pkg/xcontext"
	"github.com/questdrop/backend/pkg/xredis"
	"gorm.io/gorm"
)

const leaderboardKey = "leaderboard:points"

// RewardDistributor pays a quest reward out of the staking pool. A failure
// here is fatal to the verification, the whole transaction rolls back.
type RewardDistributor interface {
	PoolBalance(ctx context.Context) (int64, error)
	DistributeReward(ctx context.Context, submission *entity.QuestSubmission, quest *entity.Quest) (string, error)
}

// BadgeMinter mints a completion badge. The verification path swallows its
// errors, a badge is cosmetic while the reward is not.
type BadgeMinter interface {
	MintQuestBadge(ctx context.Context, submission *entity.QuestSubmission, quest *entity.Quest) (int64, string, error)
}

type SubmissionDomain interface {
	Submit(ctx context.Context, req *model.SubmitQuestRequest) (*model.SubmitQuestResponse, error)
	Verify(ctx context.Context, req *model.VerifySubmissionRequest) (*model.VerifySubmissionResponse, error)
	Get(ctx context.Context, req *model.GetSubmissionRequest) (*model.GetSubmissionResponse, error)
	GetList(ctx context.Context, req *model.GetListSubmissionRequest) (*model.GetListSubmissionResponse, error)
	GetMy(ctx context.Context, req *model.GetMySubmissionsRequest) (*model.GetMySubmissionsResponse, error)
}

type submissionDomain struct {
	questRepo         repository.QuestRepository
	submissionRepo    repository.SubmissionRepository
	completionRepo    repository.CompletionRepository
	roleVerifier      *common.GlobalRoleVerifier
	pauser            *common.Pauser
	rewardDistributor RewardDistributor
	badgeMinter       BadgeMinter
	publisher         pubsub.Publisher
	redisClient       xredis.Client
}

func NewSubmissionDomain(
	questRepo repository.QuestRepository,
	submissionRepo repository.SubmissionRepository,
	completionRepo repository.CompletionRepository,
	userRepo repository.UserRepository,
	pauser *common.Pauser,
	rewardDistributor RewardDistributor,
	badgeMinter BadgeMinter,
	publisher pubsub.Publisher,
	redisClient xredis.Client,
) *submissionDomain {
	return &submissionDomain{
		questRepo:         questRepo,
		submissionRepo:    submissionRepo,
		completionRepo:    completionRepo,
		roleVerifier:      common.NewGlobalRoleVerifier(userRepo),
		pauser:            pauser,
		rewardDistributor: rewardDistributor,
		badgeMinter:       badgeMinter,
		publisher:         publisher,
		redisClient:       redisClient,
	}
}

func (d *submissionDomain) Submit(
	ctx context.Context, req *model.SubmitQuestRequest,
) (*model.SubmitQuestResponse, error) {
	paused, err := d.pauser.IsPaused(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check pause flag: %v", err)
		return nil, errorx.Unknown
	}

	if paused {
		return nil, errorx.New(errorx.Unavailable, "The platform is temporarily paused")
	}

	if req.ProofURL == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty proof url")
	}

	if len(req.ProofURL) > xcontext.Configs(ctx).Quest.MaxProofLength {
		return nil, errorx.New(errorx.BadRequest, "Proof url is too long")
	}

	userID := xcontext.RequestUserID(ctx)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	quest, err := d.questRepo.GetByID(ctx, req.QuestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found quest")
		}

		xcontext.Logger(ctx).Errorf("Cannot get quest: %v", err)
		return nil, errorx.Unknown
	}

	if !quest.IsActive {
		return nil, errorx.New(errorx.Unavailable, "This quest is not active")
	}

	now := time.Now()
	if now.Before(quest.StartTime) || now.After(quest.EndTime) {
		return nil, errorx.New(errorx.Unavailable, "The submission window is closed")
	}

	// A quest at its completion cap no longer accepts submissions. Callers
	// see the same error as an out-of-window quest.
	if quest.CurrentCompletions >= quest.MaxCompletions {
		return nil, errorx.New(errorx.Unavailable, "The submission window is closed")
	}

	completed, err := d.completionRepo.HasCompleted(ctx, quest.ID, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check quest completion: %v", err)
		return nil, errorx.Unknown
	}

	if completed {
		return nil, errorx.New(errorx.AlreadyExists, "You have already completed this quest")
	}

	pending, err := d.submissionRepo.HasPending(ctx, quest.ID, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check pending submission: %v", err)
		return nil, errorx.Unknown
	}

	if pending {
		return nil, errorx.New(errorx.AlreadyExists, "You already have a pending submission for this quest")
	}

	submission := &entity.QuestSubmission{
		QuestID:    quest.ID,
		UserID:     userID,
		ProofURL:   req.ProofURL,
		Status:     entity.SubmissionPending,
		PendingRef: entity.PendingSubmissionRef(quest.ID, userID),
	}

	if err := d.submissionRepo.Create(ctx, submission); err != nil {
		// The unique pending_ref index is the backstop when two submits race
		// past the check above.
		if pending, perr := d.submissionRepo.HasPending(ctx, quest.ID, userID); perr == nil && pending {
			return nil, errorx.New(errorx.AlreadyExists,
				"You already have a pending submission for this quest")
		}

		xcontext.Logger(ctx).Errorf("Cannot create submission: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithCommitDBTransaction(ctx)

	common.EmitQuestEvent(ctx, d.publisher, common.QuestSubmittedEvent, quest.ID,
		common.QuestSubmittedData{
			SubmissionID: submission.ID,
			UserID:       userID,
			ProofURL:     submission.ProofURL,
		})

	return &model.SubmitQuestResponse{ID: submission.ID}, nil
}

func (d *submissionDomain) Verify(
	ctx context.Context, req *model.VerifySubmissionRequest,
) (*model.VerifySubmissionResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied when verifying submission: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	verifierID := xcontext.RequestUserID(ctx)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	submission, err := d.submissionRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found submission")
		}

		xcontext.Logger(ctx).Errorf("Cannot get submission: %v", err)
		return nil, errorx.Unknown
	}

	switch submission.Status {
	case entity.SubmissionPending:
	case entity.SubmissionCompleted:
		return nil, errorx.New(errorx.AlreadyExists, "This submission was already completed")
	default:
		return nil, errorx.New(errorx.AlreadyExists, "This submission was already rejected")
	}

	quest, err := d.questRepo.GetByID(ctx, submission.QuestID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get quest of submission: %v", err)
		return nil, errorx.Unknown
	}

	if !req.Approved {
		return d.reject(ctx, submission, quest, verifierID, req.RejectionReason)
	}

	return d.approve(ctx, submission, quest, verifierID)
}

func (d *submissionDomain) approve(
	ctx context.Context,
	submission *entity.QuestSubmission,
	quest *entity.Quest,
	verifierID string,
) (*model.VerifySubmissionResponse, error) {
	// Pre-check before any write. If the pool cannot cover the reward the
	// submission stays pending and the admin can retry after replenishment.
	balance, err := d.rewardDistributor.PoolBalance(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get pool balance: %v", err)
		return nil, errorx.Unknown
	}

	if balance < quest.RewardAmount {
		return nil, errorx.New(errorx.Unavailable,
			"Pool balance is not enough to pay the reward")
	}

	err = d.submissionRepo.UpdateReviewByID(ctx, submission.ID, &entity.QuestSubmission{
		Status:     entity.SubmissionCompleted,
		VerifiedAt: sql.NullTime{Valid: true, Time: time.Now()},
		VerifierID: sql.NullString{Valid: true, String: verifierID},
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot complete submission: %v", err)
		return nil, errorx.New(errorx.AlreadyExists, "This submission was already verified")
	}

	err = d.completionRepo.Create(ctx, &entity.QuestCompletion{
		QuestID:      quest.ID,
		UserID:       submission.UserID,
		SubmissionID: submission.ID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot record quest completion: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.questRepo.IncreaseCompletions(ctx, quest.ID); err != nil {
		if errors.Is(err, repository.ErrCompletionCapReached) {
			return nil, errorx.New(errorx.Unavailable, "Quest completion cap reached")
		}

		xcontext.Logger(ctx).Errorf("Cannot increase quest completions: %v", err)
		return nil, errorx.Unknown
	}

	rewardTxHash, err := d.rewardDistributor.DistributeReward(ctx, submission, quest)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot distribute reward: %v", err)
		return nil, errorx.New(errorx.Unavailable,
			"Cannot distribute the reward, the submission is still pending")
	}

	ctx = xcontext.WithCommitDBTransaction(ctx)

	// Minting runs after the commit. Reward and completion are the outcomes
	// that matter, a failed badge mint leaves nft_token_id at zero.
	var nftTokenID int64
	tokenID, mintTxHash, err := d.badgeMinter.MintQuestBadge(ctx, submission, quest)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot mint badge for submission %d: %v", submission.ID, err)
	} else {
		nftTokenID = tokenID
		if err := d.submissionRepo.SetNftTokenID(ctx, submission.ID, tokenID); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot set nft token id of submission %d: %v", submission.ID, err)
		}
	}

	err = d.redisClient.ZIncrBy(ctx, leaderboardKey, quest.RewardAmount, submission.UserID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot update leaderboard: %v", err)
	}

	common.EmitQuestEvent(ctx, d.publisher, common.QuestVerifiedEvent, quest.ID,
		common.QuestVerifiedData{
			SubmissionID: submission.ID,
			UserID:       submission.UserID,
			Status:       enum.ToString(entity.SubmissionCompleted),
			VerifierID:   verifierID,
			NftTokenID:   nftTokenID,
		})

	common.EmitQuestEvent(ctx, d.publisher, common.RewardDistributedEvent, quest.ID,
		common.RewardDistributedData{
			SubmissionID: submission.ID,
			UserID:       submission.UserID,
			Amount:       quest.RewardAmount,
			TxHash:       rewardTxHash,
		})

	if nftTokenID != 0 {
		common.EmitQuestEvent(ctx, d.publisher, common.NftMintedEvent, quest.ID,
			common.NftMintedData{
				TokenID: nftTokenID,
				UserID:  submission.UserID,
				TxHash:  mintTxHash,
			})
	}

	return &model.VerifySubmissionResponse{
		RewardTxHash: rewardTxHash,
		NftTokenID:   nftTokenID,
	}, nil
}

func (d *submissionDomain) reject(
	ctx context.Context,
	submission *entity.QuestSubmission,
	quest *entity.Quest,
	verifierID string,
	reason string,
) (*model.VerifySubmissionResponse, error) {
	err := d.submissionRepo.UpdateReviewByID(ctx, submission.ID, &entity.QuestSubmission{
		Status:          entity.SubmissionRejected,
		VerifiedAt:      sql.NullTime{Valid: true, Time: time.Now()},
		VerifierID:      sql.NullString{Valid: true, String: verifierID},
		RejectionReason: reason,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reject submission: %v", err)
		return nil, errorx.New(errorx.AlreadyExists, "This submission was already verified")
	}

	ctx = xcontext.WithCommitDBTransaction(ctx)

	common.EmitQuestEvent(ctx, d.publisher, common.QuestRejectedEvent, quest.ID,
		common.QuestRejectedData{
			SubmissionID: submission.ID,
			UserID:       submission.UserID,
			VerifierID:   verifierID,
			Reason:       reason,
		})

	return &model.VerifySubmissionResponse{}, nil
}

func (d *submissionDomain) Get(
	ctx context.Context, req *model.GetSubmissionRequest,
) (*model.GetSubmissionResponse, error) {
	submission, err := d.submissionRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found submission")
		}

		xcontext.Logger(ctx).Errorf("Cannot get submission: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetSubmissionResponse{Submission: convertSubmission(submission)}, nil
}

func (d *submissionDomain) GetList(
	ctx context.Context, req *model.GetListSubmissionRequest,
) (*model.GetListSubmissionResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied when listing submissions: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if req.Limit == 0 {
		req.Limit = xcontext.Configs(ctx).ApiServer.DefaultLimit
	}

	if req.Limit > xcontext.Configs(ctx).ApiServer.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit")
	}

	var status []entity.SubmissionStatus
	if req.Status != "" {
		s, err := enum.ToEnum[entity.SubmissionStatus](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid status filter")
		}

		status = append(status, s)
	}

	submissions, err := d.submissionRepo.GetList(ctx, &repository.SubmissionFilter{
		QuestID: req.QuestID,
		UserID:  req.UserID,
		Status:  status,
		Offset:  req.Offset,
		Limit:   req.Limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get submission list: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Submission{}
	for i := range submissions {
		result = append(result, convertSubmission(&submissions[i]))
	}

	return &model.GetListSubmissionResponse{Submissions: result}, nil
}

func (d *submissionDomain) GetMy(
	ctx context.Context, req *model.GetMySubmissionsRequest,
) (*model.GetMySubmissionsResponse, error) {
	if req.Limit == 0 {
		req.Limit = xcontext.Configs(ctx).ApiServer.DefaultLimit
	}

	if req.Limit > xcontext.Configs(ctx).ApiServer.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit")
	}

	submissions, err := d.submissionRepo.GetList(ctx, &repository.SubmissionFilter{
		UserID: xcontext.RequestUserID(ctx),
		Offset: req.Offset,
		Limit:  req.Limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get my submissions: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Submission{}
	for i := range submissions {
		result = append(result, convertSubmission(&submissions[i]))
	}

	return &model.GetMySubmissionsResponse{Submissions: result}, nil
}
