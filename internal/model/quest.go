package model

import "time"

type Quest struct {
	ID                 int64     `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	Requirements       string    `json:"requirements"`
	RewardAmount       int64     `json:"reward_amount"`
	IsActive           bool      `json:"is_active"`
	StartTime          time.Time `json:"start_time"`
	EndTime            time.Time `json:"end_time"`
	MaxCompletions     int64     `json:"max_completions"`
	CurrentCompletions int64     `json:"current_completions"`
	CreatedBy          string    `json:"created_by"`
}

type CreateQuestRequest struct {
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Requirements   string    `json:"requirements"`
	RewardAmount   int64     `json:"reward_amount"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	MaxCompletions int64     `json:"max_completions"`
}

type CreateQuestResponse struct {
	ID int64 `json:"id"`
}

type GetQuestRequest struct {
	ID int64 `form:"id"`
}

type GetQuestResponse struct {
	Quest Quest `json:"quest"`
}

type GetListQuestRequest struct {
	ActiveOnly bool `form:"active_only"`
	Offset     int  `form:"offset"`
	Limit      int  `form:"limit"`
}

type GetListQuestResponse struct {
	Quests []Quest `json:"quests"`
}

type UpdateQuestStatusRequest struct {
	ID       int64 `json:"id"`
	IsActive bool  `json:"is_active"`
}

type UpdateQuestStatusResponse struct{}
