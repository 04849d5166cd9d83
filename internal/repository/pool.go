package repository

import (
	"context"
	"errors"

	"github.com/questdrop/backend/internal/entity"
	"github.com/questdrop/backend/pkg/xcontext"
	"gorm.io/gorm"
)

var ErrInsufficientPoolBalance = errors.New("insufficient pool balance")

const poolLedgerID = 1

type PoolRepository interface {
	Balance(ctx context.Context) (int64, error)
	Credit(ctx context.Context, amount int64) error
	Debit(ctx context.Context, amount int64) error
}

type poolRepository struct{}

func NewPoolRepository() *poolRepository {
	return &poolRepository{}
}

func (r *poolRepository) Balance(ctx context.Context) (int64, error) {
	var ledger entity.PoolLedger
	err := xcontext.DB(ctx).Take(&ledger, "id=?", poolLedgerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}

		return 0, err
	}

	return ledger.Balance, nil
}

func (r *poolRepository) Credit(ctx context.Context, amount int64) error {
	tx := xcontext.DB(ctx).Model(&entity.PoolLedger{}).
		Where("id=?", poolLedgerID).
		Update("balance", gorm.Expr("balance + ?", amount))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return xcontext.DB(ctx).
			Create(&entity.PoolLedger{ID: poolLedgerID, Balance: amount}).Error
	}

	return nil
}

// Debit withdraws from the pool but never past zero. The balance guard in the
// WHERE clause makes concurrent payouts and unstakes race safely, the same
// way the quest completion counter is capped.
func (r *poolRepository) Debit(ctx context.Context, amount int64) error {
	tx := xcontext.DB(ctx).Model(&entity.PoolLedger{}).
		Where("id=? AND balance >= ?", poolLedgerID, amount).
		Update("balance", gorm.Expr("balance - ?", amount))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return ErrInsufficientPoolBalance
	}

	return nil
}
