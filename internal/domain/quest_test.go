package domain

import (
	"testing"
	"time"

	"github.com/questdrop/backend/internal/entity"
	"github.com/questdrop/backend/internal/model"
	"github.com/questdrop/backend/internal/repository"
	"github.com/questdrop/backend/pkg/testutil"
	"github.com/questdrop/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestQuestDomain() *questDomain {
	return NewQuestDomain(
		repository.NewQuestRepository(),
		repository.NewUserRepository(),
		&testutil.MockPublisher{})
}

func Test_questDomain_Create(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(ctx, t)
	d := newTestQuestDomain()

	adminCtx := xcontext.WithRequestUserID(ctx, testutil.Admin.ID)
	userCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)

	req := &model.CreateQuestRequest{
		Title:          "Write a review",
		Requirements:   "Link to the published review.",
		RewardAmount:   500_000,
		EndTime:        time.Now().Add(48 * time.Hour),
		MaxCompletions: 20,
	}

	_, err := d.Create(userCtx, req)
	require.Error(t, err)
	require.Equal(t, "Permission denied", err.Error())

	resp, err := d.Create(adminCtx, req)
	require.NoError(t, err)
	require.NotZero(t, resp.ID)

	getResp, err := d.Get(ctx, &model.GetQuestRequest{ID: resp.ID})
	require.NoError(t, err)
	require.Equal(t, "Write a review", getResp.Quest.Title)
	require.True(t, getResp.Quest.IsActive)
	require.Equal(t, testutil.Admin.ID, getResp.Quest.CreatedBy)
}

func Test_questDomain_Create_validation(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(ctx, t)
	d := newTestQuestDomain()

	adminCtx := xcontext.WithRequestUserID(ctx, testutil.Admin.ID)
	endTime := time.Now().Add(time.Hour)

	testcases := []struct {
		name string
		req  *model.CreateQuestRequest
		err  string
	}{
		{
			name: "empty title",
			req: &model.CreateQuestRequest{
				Requirements: "x", RewardAmount: 1, EndTime: endTime, MaxCompletions: 1,
			},
			err: "Not allow an empty title",
		},
		{
			name: "empty requirements",
			req: &model.CreateQuestRequest{
				Title: "x", RewardAmount: 1, EndTime: endTime, MaxCompletions: 1,
			},
			err: "Not allow empty requirements",
		},
		{
			name: "non-positive reward",
			req: &model.CreateQuestRequest{
				Title: "x", Requirements: "x", EndTime: endTime, MaxCompletions: 1,
			},
			err: "Reward amount must be positive",
		},
		{
			name: "non-positive cap",
			req: &model.CreateQuestRequest{
				Title: "x", Requirements: "x", RewardAmount: 1, EndTime: endTime,
			},
			err: "Max completions must be positive",
		},
		{
			name: "window ends in the past",
			req: &model.CreateQuestRequest{
				Title: "x", Requirements: "x", RewardAmount: 1,
				EndTime: time.Now().Add(-time.Hour), MaxCompletions: 1,
			},
			err: "End time must be after start time",
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := d.Create(adminCtx, tc.req)
			require.Error(t, err)
			require.Equal(t, tc.err, err.Error())
		})
	}
}

func Test_questDomain_UpdateStatus(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(ctx, t)
	d := newTestQuestDomain()

	adminCtx := xcontext.WithRequestUserID(ctx, testutil.Admin.ID)

	_, err := d.UpdateStatus(adminCtx, &model.UpdateQuestStatusRequest{ID: 99999, IsActive: false})
	require.Error(t, err)
	require.Equal(t, "Not found quest", err.Error())

	_, err = d.UpdateStatus(adminCtx, &model.UpdateQuestStatusRequest{
		ID: testutil.Quest1.ID, IsActive: false,
	})
	require.NoError(t, err)

	getResp, err := d.Get(ctx, &model.GetQuestRequest{ID: testutil.Quest1.ID})
	require.NoError(t, err)
	require.False(t, getResp.Quest.IsActive)
}

func Test_questDomain_GetList_activeOnly(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(ctx, t)
	d := newTestQuestDomain()

	// Active flag set but the window is over, must not be listed as active.
	ended := &entity.Quest{
		Title:          "Too late",
		Requirements:   "anything",
		RewardAmount:   100,
		IsActive:       true,
		StartTime:      time.Now().Add(-2 * time.Hour),
		EndTime:        time.Now().Add(-time.Hour),
		MaxCompletions: 10,
		CreatedBy:      testutil.Owner.ID,
	}
	require.NoError(t, d.questRepo.Create(ctx, ended))

	// Cap already reached, also excluded.
	capped := &entity.Quest{
		Title:              "Full house",
		Requirements:       "anything",
		RewardAmount:       100,
		IsActive:           true,
		StartTime:          time.Now().Add(-time.Hour),
		EndTime:            time.Now().Add(24 * time.Hour),
		MaxCompletions:     1,
		CurrentCompletions: 1,
		CreatedBy:          testutil.Owner.ID,
	}
	require.NoError(t, d.questRepo.Create(ctx, capped))

	resp, err := d.GetList(ctx, &model.GetListQuestRequest{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, resp.Quests, 1)
	require.Equal(t, testutil.Quest1.ID, resp.Quests[0].ID)

	another := &entity.Quest{
		Title:          "Still open",
		Requirements:   "anything",
		RewardAmount:   100,
		IsActive:       true,
		StartTime:      time.Now().Add(-time.Hour),
		EndTime:        time.Now().Add(24 * time.Hour),
		MaxCompletions: 10,
		CreatedBy:      testutil.Owner.ID,
	}
	require.NoError(t, d.questRepo.Create(ctx, another))

	// The window and cap predicates run in the query, so a limited page fills
	// up with active quests instead of losing rows to post-filtering.
	page, err := d.GetList(ctx, &model.GetListQuestRequest{ActiveOnly: true, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Quests, 2)

	all, err := d.GetList(ctx, &model.GetListQuestRequest{})
	require.NoError(t, err)
	require.Len(t, all.Quests, 5)

	_, err = d.GetList(ctx, &model.GetListQuestRequest{Limit: 1000})
	require.Error(t, err)
	require.Equal(t, "Exceed the maximum of limit", err.Error())
}
