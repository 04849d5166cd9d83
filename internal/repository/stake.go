package repository

import (
	"context"
	"errors"

	"github.com/questdrop/backend/internal/entity"
	"github.com/questdrop/backend/pkg/xcontext"
)

type StakeRepository interface {
	Create(ctx context.Context, stake *entity.Stake) error
	GetByID(ctx context.Context, id string) (*entity.Stake, error)
	GetActiveByUserID(ctx context.Context, userID string) ([]entity.Stake, error)
	Deactivate(ctx context.Context, id, userID string) error
	TotalActiveStaked(ctx context.Context) (int64, error)
	TotalActiveStakedByUserID(ctx context.Context, userID string) (int64, error)
}

type stakeRepository struct{}

func NewStakeRepository() *stakeRepository {
	return &stakeRepository{}
}

func (r *stakeRepository) Create(ctx context.Context, stake *entity.Stake) error {
	return xcontext.DB(ctx).Create(stake).Error
}

func (r *stakeRepository) GetByID(ctx context.Context, id string) (*entity.Stake, error) {
	var record entity.Stake
	if err := xcontext.DB(ctx).Take(&record, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *stakeRepository) GetActiveByUserID(ctx context.Context, userID string) ([]entity.Stake, error) {
	var records []entity.Stake
	err := xcontext.DB(ctx).
		Where("user_id=? AND is_active=?", userID, true).
		Order("staked_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

// Deactivate releases a stake. The is_active guard rejects double unstaking.
func (r *stakeRepository) Deactivate(ctx context.Context, id, userID string) error {
	tx := xcontext.DB(ctx).Model(&entity.Stake{}).
		Where("id=? AND user_id=? AND is_active=?", id, userID, true).
		Update("is_active", false)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return errors.New("row affected is empty")
	}

	return nil
}

func (r *stakeRepository) TotalActiveStaked(ctx context.Context) (int64, error) {
	var total int64
	err := xcontext.DB(ctx).Model(&entity.Stake{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("is_active=?", true).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}

	return total, nil
}

func (r *stakeRepository) TotalActiveStakedByUserID(ctx context.Context, userID string) (int64, error) {
	var total int64
	err := xcontext.DB(ctx).Model(&entity.Stake{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id=? AND is_active=?", userID, true).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}

	return total, nil
}
