package model

// AccessToken carries the actor facts the command layer resolved from the chat platform.
type AccessToken struct {
	UserID        string   `json:"user_id"`
	GuildID       string   `json:"guild_id"`
	RoleIDs       []string `json:"role_ids"`
	Administrator bool     `json:"administrator"`
}
