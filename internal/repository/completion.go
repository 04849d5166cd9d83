package repository

import (
	"context"

	"github.com/questdrop/backend/internal/entity"
	"github.com/questdrop/backend/pkg/xcontext"
)

type CompletionRepository interface {
	Create(ctx context.Context, completion *entity.QuestCompletion) error
	HasCompleted(ctx context.Context, questID int64, userID string) (bool, error)
	CountByUserID(ctx context.Context, userID string) (int64, error)
}

type completionRepository struct{}

func NewCompletionRepository() *completionRepository {
	return &completionRepository{}
}

func (r *completionRepository) Create(ctx context.Context, completion *entity.QuestCompletion) error {
	return xcontext.DB(ctx).Create(completion).Error
}

func (r *completionRepository) HasCompleted(ctx context.Context, questID int64, userID string) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.QuestCompletion{}).
		Where("quest_id=? AND user_id=?", questID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *completionRepository) CountByUserID(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.QuestCompletion{}).
		Where("user_id=?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
