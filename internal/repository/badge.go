package repository

import (
	"context"

	"github.com/questdrop/backend/internal/entity"
	"github.com/questdrop/backend/pkg/xcontext"
)

type BadgeRepository interface {
	Create(ctx context.Context, badge *entity.QuestBadge) error
	GetByTokenID(ctx context.Context, tokenID int64) (*entity.QuestBadge, error)
	GetListByUserID(ctx context.Context, userID string) ([]entity.QuestBadge, error)
}

type badgeRepository struct{}

func NewBadgeRepository() *badgeRepository {
	return &badgeRepository{}
}

func (r *badgeRepository) Create(ctx context.Context, badge *entity.QuestBadge) error {
	return xcontext.DB(ctx).Create(badge).Error
}

func (r *badgeRepository) GetByTokenID(ctx context.Context, tokenID int64) (*entity.QuestBadge, error) {
	var record entity.QuestBadge
	if err := xcontext.DB(ctx).Take(&record, "token_id=?", tokenID).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *badgeRepository) GetListByUserID(ctx context.Context, userID string) ([]entity.QuestBadge, error) {
	var records []entity.QuestBadge
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("minted_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}
