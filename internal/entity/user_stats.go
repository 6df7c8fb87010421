package entity

import (
	"time"

	"github.com/questx-lab/questboard/pkg/enum"
)

type StatsCounter string

var (
	CounterAccepted  = enum.New(StatsCounter("accepted"))
	CounterCompleted = enum.New(StatsCounter("completed"))
	CounterRejected  = enum.New(StatsCounter("rejected"))
)

// Column returns the user_stats column that holds the counter.
func (c StatsCounter) Column() string {
	return "quests_" + string(c)
}

// UserStats counters only grow; they are bumped as a side effect of lifecycle transitions.
type UserStats struct {
	UserID  string `gorm:"primaryKey"`
	GuildID string `gorm:"primaryKey"`

	QuestsAccepted  uint64
	QuestsCompleted uint64
	QuestsRejected  uint64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CompletionRate is completed over accepted, or 0 when nothing was accepted.
func (s UserStats) CompletionRate() float64 {
	if s.QuestsAccepted == 0 {
		return 0
	}

	return float64(s.QuestsCompleted) / float64(s.QuestsAccepted)
}

type GuildStatistic struct {
	TotalQuests    uint64
	TotalCompleted uint64
	ActiveUsers    uint64
}
