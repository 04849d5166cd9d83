package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/questdrop/backend/internal/client"
	"github.com/questdrop/backend/internal/entity"
	"github.com/questdrop/backend/internal/model"
	"github.com/questdrop/backend/internal/repository"
	"github.com/questdrop/backend/pkg/errorx"
	"github.com/questdrop/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type StakingDomain interface {
	Stake(ctx context.Context, req *model.StakeRequest) (*model.StakeResponse, error)
	Unstake(ctx context.Context, req *model.UnstakeRequest) (*model.UnstakeResponse, error)
	GetPoolBalance(ctx context.Context, req *model.GetPoolBalanceRequest) (*model.GetPoolBalanceResponse, error)
	GetMyStake(ctx context.Context, req *model.GetMyStakeRequest) (*model.GetMyStakeResponse, error)
}

type stakingDomain struct {
	stakeRepo        repository.StakeRepository
	poolRepo         repository.PoolRepository
	payoutRepo       repository.PayoutRepository
	userRepo         repository.UserRepository
	blockchainCaller client.BlockchainCaller
}

func NewStakingDomain(
	stakeRepo repository.StakeRepository,
	poolRepo repository.PoolRepository,
	payoutRepo repository.PayoutRepository,
	userRepo repository.UserRepository,
	blockchainCaller client.BlockchainCaller,
) *stakingDomain {
	return &stakingDomain{
		stakeRepo:        stakeRepo,
		poolRepo:         poolRepo,
		payoutRepo:       payoutRepo,
		userRepo:         userRepo,
		blockchainCaller: blockchainCaller,
	}
}

func (d *stakingDomain) Stake(ctx context.Context, req *model.StakeRequest) (*model.StakeResponse, error) {
	if req.Amount <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Stake amount must be positive")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	stake := &entity.Stake{
		Base:     entity.Base{ID: uuid.NewString()},
		UserID:   xcontext.RequestUserID(ctx),
		Amount:   req.Amount,
		StakedAt: time.Now(),
		IsActive: true,
	}

	if err := d.stakeRepo.Create(ctx, stake); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create stake: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.poolRepo.Credit(ctx, stake.Amount); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot credit the pool: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.StakeResponse{ID: stake.ID}, nil
}

func (d *stakingDomain) Unstake(ctx context.Context, req *model.UnstakeRequest) (*model.UnstakeResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	stake, err := d.stakeRepo.GetByID(ctx, req.StakeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found stake")
		}

		xcontext.Logger(ctx).Errorf("Cannot get stake: %v", err)
		return nil, errorx.Unknown
	}

	if stake.UserID != userID {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if !stake.IsActive {
		return nil, errorx.New(errorx.BadRequest, "This stake was already released")
	}

	if err := d.stakeRepo.Deactivate(ctx, stake.ID, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot release stake: %v", err)
		return nil, errorx.Unknown
	}

	// The guarded debit refuses to leave the pool owing more than it holds,
	// even when a payout lands between the read above and this write.
	if err := d.poolRepo.Debit(ctx, stake.Amount); err != nil {
		if errors.Is(err, repository.ErrInsufficientPoolBalance) {
			return nil, errorx.New(errorx.Unavailable,
				"Cannot unstake now, the pool needs these funds to cover paid rewards")
		}

		xcontext.Logger(ctx).Errorf("Cannot debit the pool: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.UnstakeResponse{}, nil
}

func (d *stakingDomain) GetPoolBalance(
	ctx context.Context, req *model.GetPoolBalanceRequest,
) (*model.GetPoolBalanceResponse, error) {
	balance, err := d.poolRepo.Balance(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get pool balance: %v", err)
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

	return &model.GetPoolBalanceResponse{
		Balance:     balance,
		TotalStaked: totalStaked,
		TotalPaid:   totalPaid,
	}, nil
}

func (d *stakingDomain) GetMyStake(
	ctx context.Context, req *model.GetMyStakeRequest,
) (*model.GetMyStakeResponse, error) {
	stakes, err := d.stakeRepo.GetActiveByUserID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get stakes: %v", err)
		return nil, errorx.Unknown
	}

	var total int64
	result := []model.Stake{}
	for i := range stakes {
		total += stakes[i].Amount
		result = append(result, convertStake(&stakes[i]))
	}

	return &model.GetMyStakeResponse{Stakes: result, Total: total}, nil
}

// PoolBalance implements RewardDistributor.
func (d *stakingDomain) PoolBalance(ctx context.Context) (int64, error) {
	return d.poolRepo.Balance(ctx)
}

// DistributeReward implements RewardDistributor. It runs inside the caller's
// verification transaction. The guarded debit is the second line of defense
// behind the verifier's pre-check, two approvals racing over the same funds
// cannot both pass it.
func (d *stakingDomain) DistributeReward(
	ctx context.Context, submission *entity.QuestSubmission, quest *entity.Quest,
) (string, error) {
	if err := d.poolRepo.Debit(ctx, quest.RewardAmount); err != nil {
		return "", fmt.Errorf("debit pool by reward %d: %w", quest.RewardAmount, err)
	}

	user, err := d.userRepo.GetByID(ctx, submission.UserID)
	if err != nil {
		return "", fmt.Errorf("get reward recipient: %w", err)
	}

	if !user.WalletAddress.Valid {
		return "", fmt.Errorf("user %s has no wallet address", user.ID)
	}

	txHash, err := d.blockchainCaller.TransferToken(ctx, user.WalletAddress.String, quest.RewardAmount)
	if err != nil {
		return "", fmt.Errorf("transfer reward token: %w", err)
	}

	err = d.payoutRepo.Create(ctx, &entity.RewardPayout{
		Base:         entity.Base{ID: uuid.NewString()},
		SubmissionID: submission.ID,
		QuestID:      quest.ID,
		UserID:       submission.UserID,
		Amount:       quest.RewardAmount,
		TxHash:       txHash,
	})
	if err != nil {
		return "", fmt.Errorf("record payout: %w", err)
	}

	return txHash, nil
}
