package model

import "time"

type Submission struct {
	ID              int64      `json:"id"`
	QuestID         int64      `json:"quest_id"`
	UserID          string     `json:"user_id"`
	ProofURL        string     `json:"proof_url"`
	Status          string     `json:"status"`
	SubmittedAt     time.Time  `json:"submitted_at"`
	VerifiedAt      *time.Time `json:"verified_at,omitempty"`
	VerifierID      string     `json:"verifier_id,omitempty"`
	NftTokenID      int64      `json:"nft_token_id,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
}

type SubmitQuestRequest struct {
	QuestID  int64  `json:"quest_id"`
	ProofURL string `json:"proof_url"`
}

type SubmitQuestResponse struct {
	ID int64 `json:"id"`
}

type VerifySubmissionRequest struct {
	ID              int64  `json:"id"`
	Approved        bool   `json:"approved"`
	RejectionReason string `json:"rejection_reason"`
}

type VerifySubmissionResponse struct {
	RewardTxHash string `json:"reward_tx_hash,omitempty"`
	NftTokenID   int64  `json:"nft_token_id,omitempty"`
}

type GetSubmissionRequest struct {
	ID int64 `form:"id"`
}

type GetSubmissionResponse struct {
	Submission Submission `json:"submission"`
}

type GetListSubmissionRequest struct {
	QuestID int64  `form:"quest_id"`
	UserID  string `form:"user_id"`
	Status  string `form:"status"`
	Offset  int    `form:"offset"`
	Limit   int    `form:"limit"`
}

type GetListSubmissionResponse struct {
	Submissions []Submission `json:"submissions"`
}

type GetMySubmissionsRequest struct {
	Offset int `form:"offset"`
	Limit  int `form:"limit"`
}

type GetMySubmissionsResponse struct {
	Submissions []Submission `json:"submissions"`
}
