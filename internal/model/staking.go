package model

import "time"

type Stake struct {
	ID       string    `json:"id"`
	Amount   int64     `json:"amount"`
	StakedAt time.Time `json:"staked_at"`
	IsActive bool      `json:"is_active"`
}

type StakeRequest struct {
	Amount int64 `json:"amount"`
}

type StakeResponse struct {
	ID string `json:"id"`
}

type UnstakeRequest struct {
	StakeID string `json:"stake_id"`
}

type UnstakeResponse struct{}

type GetPoolBalanceRequest struct{}

type GetPoolBalanceResponse struct {
	Balance     int64 `json:"balance"`
	TotalStaked int64 `json:"total_staked"`
	TotalPaid   int64 `json:"total_paid"`
}

type GetMyStakeRequest struct{}

type GetMyStakeResponse struct {
	Stakes []Stake `json:"stakes"`
	Total  int64   `json:"total"`
}
