package domain

import (
	"context"

	"github.com/questdrop/backend/internal/entity"
	"github.com/questdrop/backend/internal/model"
	"github.com/questdrop/backend/internal/repository"
	"github.com/questdrop/backend/pkg/errorx"
	"github.com/questdrop/backend/pkg/xcontext"
	"github.com/questdrop/backend/pkg/xredis"
)

type StatisticDomain interface {
	GetPlatformStats(ctx context.Context, req *model.GetPlatformStatsRequest) (*model.GetPlatformStatsResponse, error)
	GetLeaderboard(ctx context.Context, req *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
}

type statisticDomain struct {
	questRepo      repository.QuestRepository
	submissionRepo repository.SubmissionRepository
	stakeRepo      repository.StakeRepository
	poolRepo       repository.PoolRepository
	payoutRepo     repository.PayoutRepository
	userRepo       repository.UserRepository
	redisClient    xredis.Client
}

func NewStatisticDomain(
	questRepo repository.QuestRepository,
	submissionRepo repository.SubmissionRepository,
	stakeRepo repository.StakeRepository,
	poolRepo repository.PoolRepository,
	payoutRepo repository.PayoutRepository,
	userRepo repository.UserRepository,
	redisClient xredis.Client,
) *statisticDomain {
	return &statisticDomain{
		questRepo:      questRepo,
		submissionRepo: submissionRepo,
		stakeRepo:      stakeRepo,
		poolRepo:       poolRepo,
		payoutRepo:     payoutRepo,
		userRepo:       userRepo,
		redisClient:    redisClient,
	}
}

func (d *statisticDomain) GetPlatformStats(
	ctx context.Context, req *model.GetPlatformStatsRequest,
) (*model.GetPlatformStatsResponse, error) {
	totalQuests, err := d.questRepo.Count(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count quests: %v", err)
		return nil, errorx.Unknown
	}

	activeQuests, err := d.questRepo.CountActive(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count active quests: %v", err)
		return nil, errorx.Unknown
	}

	totalSubmissions, err := d.submissionRepo.Count(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count submissions: %v", err)
		return nil, errorx.Unknown
	}

	completedSubmissions, err := d.submissionRepo.CountByStatus(ctx, entity.SubmissionCompleted)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count completed submissions: %v", err)
		return nil, errorx.Unknown
	}

	totalStaked, err := d.stakeRepo.TotalActiveStaked(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get total staked: %v", err)
		return nil, errorx.Unknown
	}

	totalPaid, err := d.payoutRepo.TotalPaid(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get total paid: %v", err)
		return nil, errorx.Unknown
	}

	poolBalance, err := d.poolRepo.Balance(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get pool balance: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetPlatformStatsResponse{
		TotalQuests:          totalQuests,
		ActiveQuests:         activeQuests,
		TotalSubmissions:     totalSubmissions,
		CompletedSubmissions: completedSubmissions,
		TotalStaked:          totalStaked,
		TotalRewardsPaid:     totalPaid,
		PoolBalance:          poolBalance,
	}, nil
}

func (d *statisticDomain) GetLeaderboard(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	if req.Limit == 0 {
		req.Limit = xcontext.Configs(ctx).ApiServer.DefaultLimit
	}

	if req.Limit > xcontext.Configs(ctx).ApiServer.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit")
	}

	entries, err := d.redisClient.ZRevRangeWithScores(ctx, leaderboardKey, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get leaderboard: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.LeaderboardEntry{}
	for _, entry := range entries {
		userID, ok := entry.Member.(string)
		if !ok {
			continue
		}

		name := ""
		if user, err := d.userRepo.GetByID(ctx, userID); err == nil {
			name = user.Name
		}

		result = append(result, model.LeaderboardEntry{
			UserID: userID,
			Name:   name,
			Points: int64(entry.Score),
		})
	}

	return &model.GetLeaderboardResponse{Leaderboard: result}, nil
}
