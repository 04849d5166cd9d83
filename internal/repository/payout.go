package repository

import (
	"context"

	"github.com/questdrop/backend/internal/entity"
	"github.com/questdrop/backend/pkg/xcontext"
)

type PayoutRepository interface {
	Create(ctx context.Context, payout *entity.RewardPayout) error
	TotalPaid(ctx context.Context) (int64, error)
	GetListByUserID(ctx context.Context, userID string) ([]entity.RewardPayout, error)
}

type payoutRepository struct{}

func NewPayoutRepository() *payoutRepository {
	return &payoutRepository{}
}

func (r *payoutRepository) Create(ctx context.Context, payout *entity.RewardPayout) error {
	return xcontext.DB(ctx).Create(payout).Error
}

func (r *payoutRepository) TotalPaid(ctx context.Context) (int64, error) {
	var total int64
	err := xcontext.DB(ctx).Model(&entity.RewardPayout{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}

	return total, nil
}

func (r *payoutRepository) GetListByUserID(ctx context.Context, userID string) ([]entity.RewardPayout, error) {
	var records []entity.RewardPayout
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}
