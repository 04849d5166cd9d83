package repository

import (
	"context"
	"errors"

	"github.com/questdrop/backend/internal/entity"
	"github.com/questdrop/backend/pkg/xcontext"
)

type SubmissionFilter struct {
	QuestID int64
	UserID  string
	Status  []entity.SubmissionStatus
	Offset  int
	Limit   int
}

type SubmissionRepository interface {
	Create(ctx context.Context, submission *entity.QuestSubmission) error
	GetByID(ctx context.Context, id int64) (*entity.QuestSubmission, error)
	GetList(ctx context.Context, filter *SubmissionFilter) ([]entity.QuestSubmission, error)
	HasPending(ctx context.Context, questID int64, userID string) (bool, error)
	UpdateReviewByID(ctx context.Context, id int64, data *entity.QuestSubmission) error
	SetNftTokenID(ctx context.Context, id, tokenID int64) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status entity.SubmissionStatus) (int64, error)
}

type submissionRepository struct{}

func NewSubmissionRepository() *submissionRepository {
	return &submissionRepository{}
}

func (r *submissionRepository) Create(ctx context.Context, submission *entity.QuestSubmission) error {
	return xcontext.DB(ctx).Create(submission).Error
}

func (r *submissionRepository) GetByID(ctx context.Context, id int64) (*entity.QuestSubmission, error) {
	var record entity.QuestSubmission
	if err := xcontext.DB(ctx).Take(&record, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *submissionRepository) GetList(
	ctx context.Context, filter *SubmissionFilter,
) ([]entity.QuestSubmission, error) {
	tx := xcontext.DB(ctx).
		Order("created_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit)

	if filter.QuestID != 0 {
		tx = tx.Where("quest_id=?", filter.QuestID)
	}

	if filter.UserID != "" {
		tx = tx.Where("user_id=?", filter.UserID)
	}

	if len(filter.Status) > 0 {
		tx = tx.Where("status IN (?)", filter.Status)
	}

	var records []entity.QuestSubmission
	if err := tx.Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *submissionRepository) HasPending(ctx context.Context, questID int64, userID string) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.QuestSubmission{}).
		Where("quest_id=? AND user_id=? AND status=?", questID, userID, entity.SubmissionPending).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// UpdateReviewByID transitions a submission out of pending. The status guard
// in the WHERE clause rejects double reviews, and clearing pending_ref frees
// the unique slot so the user can resubmit after a rejection.
func (r *submissionRepository) UpdateReviewByID(
	ctx context.Context, id int64, data *entity.QuestSubmission,
) error {
	tx := xcontext.DB(ctx).Model(&entity.QuestSubmission{}).
		Where("id=? AND status=?", id, entity.SubmissionPending).
		Updates(map[string]any{
			"status":           data.Status,
			"verified_at":      data.VerifiedAt,
			"verifier_id":      data.VerifierID,
			"rejection_reason": data.RejectionReason,
			"pending_ref":      nil,
		})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return errors.New("row affected is empty")
	}

	return nil
}

func (r *submissionRepository) SetNftTokenID(ctx context.Context, id, tokenID int64) error {
	return xcontext.DB(ctx).Model(&entity.QuestSubmission{}).
		Where("id=?", id).
		Update("nft_token_id", tokenID).Error
}

func (r *submissionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.QuestSubmission{}).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *submissionRepository) CountByStatus(
	ctx context.Context, status entity.SubmissionStatus,
) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.QuestSubmission{}).
		Where("status=?", status).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
