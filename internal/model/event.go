package model

type EventType string

const (
	EventQuestCreated   EventType = "quest.created"
	EventQuestAccepted  EventType = "quest.accepted"
	EventQuestCompleted EventType = "quest.completed"
	EventQuestApproved  EventType = "quest.approved"
	EventQuestRejected  EventType = "quest.rejected"
	EventQuestCancelled EventType = "quest.cancelled"
	EventQuestDeleted   EventType = "quest.deleted"
)

// QuestEvent is published after a lifecycle transition commits.
type QuestEvent struct {
	Type      EventType `json:"type"`
	QuestID   string    `json:"quest_id"`
	GuildID   string    `json:"guild_id"`
	UserID    string    `json:"user_id,omitempty"`
	ActorID   string    `json:"actor_id,omitempty"`
	Timestamp string    `json:"timestamp"`
}
