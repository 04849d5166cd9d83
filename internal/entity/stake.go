package entity

import "time"

type Stake struct {
	Base

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	Amount   int64
	StakedAt time.Time
	IsActive bool `gorm:"index"`
}

// PoolLedger is the single-row account backing the staking pool. Every credit
// and debit goes through a guarded update on this row, so concurrent payouts
// and unstakes can never overdraw the pool.
type PoolLedger struct {
	ID      int64 `gorm:"primaryKey"`
	Balance int64
}

// RewardPayout is the audit trail of pool outflows. The balance itself lives
// in PoolLedger; these rows reconcile it against the chain.
type RewardPayout struct {
	Base

	SubmissionID int64           `gorm:"uniqueIndex"`
	Submission   QuestSubmission `gorm:"foreignKey:SubmissionID"`

	QuestID int64
	UserID  string
	Amount  int64
	TxHash  string
}
