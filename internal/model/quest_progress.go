package model

type QuestProgress struct {
	ID             string   `json:"id"`
	QuestID        string   `json:"quest_id"`
	UserID         string   `json:"user_id"`
	GuildID        string   `json:"guild_id"`
	ChannelID      string   `json:"channel_id,omitempty"`
	Attempt        int      `json:"attempt"`
	Status         string   `json:"status"`
	AcceptedAt     string   `json:"accepted_at"`
	CompletedAt    string   `json:"completed_at,omitempty"`
	ProofText      string   `json:"proof_text,omitempty"`
	ProofImageURLs []string `json:"proof_image_urls,omitempty"`
	ReviewerID     string   `json:"reviewer_id,omitempty"`
	ReviewedAt     string   `json:"reviewed_at,omitempty"`
}

type GetMyQuestsRequest struct{}

type GetMyQuestsResponse struct {
	Progresses []QuestProgress `json:"progresses"`
}
