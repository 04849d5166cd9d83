package model

type GetPlatformStatsRequest struct{}

type GetPlatformStatsResponse struct {
	TotalQuests          int64 `json:"total_quests"`
	ActiveQuests         int64 `json:"active_quests"`
	TotalSubmissions     int64 `json:"total_submissions"`
	CompletedSubmissions int64 `json:"completed_submissions"`
	TotalStaked          int64 `json:"total_staked"`
	TotalRewardsPaid     int64 `json:"total_rewards_paid"`
	PoolBalance          int64 `json:"pool_balance"`
}

type LeaderboardEntry struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Points int64  `json:"points"`
}

type GetLeaderboardRequest struct {
	Offset int `form:"offset"`
	Limit  int `form:"limit"`
}

type GetLeaderboardResponse struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}
