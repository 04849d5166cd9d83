package entity

import "time"

// QuestBadge mirrors the on-chain badge metadata so the API can answer badge
// queries without an RPC roundtrip.
type QuestBadge struct {
	TokenID int64 `gorm:"primaryKey"`

	QuestID int64
	Quest   Quest `gorm:"foreignKey:QuestID"`

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	ProofURL     string `gorm:"size:512"`
	QuestTitle   string
	RewardAmount int64
	IsValid      bool
	MintedAt     time.Time
	TxHash       string
}
