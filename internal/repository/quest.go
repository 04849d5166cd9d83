package repository

import (
	"context"
	"errors"
	"time"

	"github.com/questdrop/backend/internal/entity"
	"github.com/questdrop/backend/pkg/xcontext"
	"gorm.io/gorm"
)

var ErrCompletionCapReached = errors.New("completion cap reached")

type QuestFilter struct {
	ActiveOnly bool
	Offset     int
	Limit      int
}

type QuestRepository interface {
	Create(ctx context.Context, quest *entity.Quest) error
	GetByID(ctx context.Context, id int64) (*entity.Quest, error)
	GetList(ctx context.Context, filter *QuestFilter) ([]entity.Quest, error)
	SetActive(ctx context.Context, id int64, active bool) error
	IncreaseCompletions(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
}

type questRepository struct{}

func NewQuestRepository() *questRepository {
	return &questRepository{}
}

func (r *questRepository) Create(ctx context.Context, quest *entity.Quest) error {
	return xcontext.DB(ctx).Create(quest).Error
}

func (r *questRepository) GetByID(ctx context.Context, id int64) (*entity.Quest, error) {
	var record entity.Quest
	if err := xcontext.DB(ctx).Take(&record, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *questRepository) GetList(ctx context.Context, filter *QuestFilter) ([]entity.Quest, error) {
	tx := xcontext.DB(ctx).
		Order("created_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit)

	// An active quest is flagged active, inside its window and under its cap.
	// Filtering in the query keeps pages full and offsets stable.
	if filter.ActiveOnly {
		now := time.Now()
		tx = tx.Where(
			"is_active=? AND start_time<=? AND end_time>=? AND current_completions < max_completions",
			true, now, now)
	}

	var records []entity.Quest
	if err := tx.Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *questRepository) SetActive(ctx context.Context, id int64, active bool) error {
	tx := xcontext.DB(ctx).Model(&entity.Quest{}).
		Where("id=?", id).
		Update("is_active", active)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return errors.New("row affected is empty")
	}

	return nil
}

// IncreaseCompletions bumps the completion counter but never past the cap.
// The guard in the WHERE clause makes concurrent verifications race safely.
func (r *questRepository) IncreaseCompletions(ctx context.Context, id int64) error {
	tx := xcontext.DB(ctx).Model(&entity.Quest{}).
		Where("id=? AND current_completions < max_completions", id).
		Update("current_completions", gorm.Expr("current_completions + 1"))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return ErrCompletionCapReached
	}

	return nil
}

func (r *questRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Quest{}).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *questRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Quest{}).
		Where("is_active=?", true).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
