package entity

import (
	"database/sql"
	"time"

	"github.com/questx-lab/questboard/pkg/enum"
)

type ProgressStatus string

var (
	ProgressAccepted  = enum.New(ProgressStatus("accepted"))
	ProgressCompleted = enum.New(ProgressStatus("completed"))
	ProgressApproved  = enum.New(ProgressStatus("approved"))
	ProgressRejected  = enum.New(ProgressStatus("rejected"))
)

// ActiveProgressStatuses hold the claim of a quest. At most one progress of a quest may be in
// one of these statuses.
var ActiveProgressStatuses = []ProgressStatus{ProgressAccepted, ProgressCompleted}

// QuestProgress is one attempt of a user at a quest. A user may have several attempts at the
// same quest after rejections; the latest one is the current attempt.
type QuestProgress struct {
	Base

	QuestID   string `gorm:"index"`
	UserID    string `gorm:"index"`
	GuildID   string `gorm:"index"`
	ChannelID string

	// Attempt numbers the progresses of a quest, starting from 1.
	Attempt int

	Status      ProgressStatus `gorm:"index"`
	AcceptedAt  time.Time
	CompletedAt sql.NullTime

	ProofText      string `gorm:"type:text"`
	ProofImageURLs Array[string]

	ReviewerID string
	ReviewedAt sql.NullTime
}
