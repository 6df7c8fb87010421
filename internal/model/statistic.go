package model

type UserStats struct {
	UserID          string  `json:"user_id"`
	GuildID         string  `json:"guild_id"`
	QuestsAccepted  uint64  `json:"quests_accepted"`
	QuestsCompleted uint64  `json:"quests_completed"`
	QuestsRejected  uint64  `json:"quests_rejected"`
	CompletionRate  float64 `json:"completion_rate"`
}

type GetUserStatsRequest struct {
	// UserID defaults to the caller.
	UserID string `json:"user_id" form:"user_id"`
}

type GetUserStatsResponse UserStats

type GetLeaderboardRequest struct {
	Limit int `json:"limit" form:"limit"`
}

type GetLeaderboardResponse struct {
	Stats []UserStats `json:"stats"`
}

type GetGuildStatsRequest struct{}

type GetGuildStatsResponse struct {
	TotalQuests    uint64 `json:"total_quests"`
	TotalCompleted uint64 `json:"total_completed"`
	ActiveUsers    uint64 `json:"active_users"`
}
