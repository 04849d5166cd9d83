package model

import "time"

type Badge struct {
	TokenID      int64     `json:"token_id"`
	QuestID      int64     `json:"quest_id"`
	UserID       string    `json:"user_id"`
	ProofURL     string    `json:"proof_url"`
	QuestTitle   string    `json:"quest_title"`
	RewardAmount int64     `json:"reward_amount"`
	IsValid      bool      `json:"is_valid"`
	MintedAt     time.Time `json:"minted_at"`
	TxHash       string    `json:"tx_hash"`
}

type GetBadgeRequest struct {
	TokenID int64 `form:"token_id"`
}

type GetBadgeResponse struct {
	Badge Badge `json:"badge"`
}

type GetMyBadgesRequest struct{}

type GetMyBadgesResponse struct {
	Badges []Badge `json:"badges"`
}
