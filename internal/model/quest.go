package model

type Quest struct {
	ID              string   `json:"id"`
	GuildID         string   `json:"guild_id"`
	CreatorID       string   `json:"creator_id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Requirements    string   `json:"requirements,omitempty"`
	Reward          string   `json:"reward,omitempty"`
	Rank            string   `json:"rank"`
	RankLevel       int      `json:"rank_level"`
	Category        string   `json:"category"`
	Status          string   `json:"status"`
	RequiredRoleIDs []string `json:"required_role_ids"`
	CreatedAt       string   `json:"created_at"`
}

type CreateQuestRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Requirements    string   `json:"requirements"`
	Reward          string   `json:"reward"`
	Rank            string   `json:"rank"`
	Category        string   `json:"category"`
	RequiredRoleIDs []string `json:"required_role_ids"`
}

type CreateQuestResponse Quest

type GetQuestRequest struct {
	ID string `json:"id" form:"id"`
}

type GetQuestResponse Quest

type GetListQuestRequest struct {
	// All includes quests in every status, otherwise only available quests are listed.
	All      bool   `json:"all" form:"all"`
	Rank     string `json:"rank" form:"rank"`
	Category string `json:"category" form:"category"`
}

type GetListQuestResponse struct {
	Quests []Quest `json:"quests"`
}

type AcceptQuestRequest struct {
	ID        string `json:"id"`
	ChannelID string `json:"channel_id"`
}

type AcceptQuestResponse QuestProgress

type CompleteQuestRequest struct {
	ID             string   `json:"id"`
	ProofText      string   `json:"proof_text"`
	ProofImageURLs []string `json:"proof_image_urls"`
}

type CompleteQuestResponse QuestProgress

type ReviewQuestRequest struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Approved bool   `json:"approved"`
}

type ReviewQuestResponse QuestProgress

type CancelQuestRequest struct {
	ID string `json:"id"`
}

type CancelQuestResponse Quest

type DeleteQuestRequest struct {
	ID string `json:"id"`
}

type DeleteQuestResponse struct {
	Deleted bool `json:"deleted"`
}
