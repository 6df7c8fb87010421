package entity

import (
	"github.com/questx-lab/questboard/pkg/enum"
)

// QuestRank members are registered from the easiest to the hardest; Level follows that order.
type QuestRank string

var (
	RankEasy       = enum.New(QuestRank("easy"))
	RankNormal     = enum.New(QuestRank("normal"))
	RankMedium     = enum.New(QuestRank("medium"))
	RankHard       = enum.New(QuestRank("hard"))
	RankImpossible = enum.New(QuestRank("impossible"))
)

func (r QuestRank) Level() int {
	return enum.Index(r)
}

type QuestCategory string

var (
	CategoryHunting     = enum.New(QuestCategory("hunting"))
	CategoryGathering   = enum.New(QuestCategory("gathering"))
	CategoryCollecting  = enum.New(QuestCategory("collecting"))
	CategoryCrafting    = enum.New(QuestCategory("crafting"))
	CategoryExploration = enum.New(QuestCategory("exploration"))
	CategoryCombat      = enum.New(QuestCategory("combat"))
	CategorySocial      = enum.New(QuestCategory("social"))
	CategoryBuilding    = enum.New(QuestCategory("building"))
	CategoryTrading     = enum.New(QuestCategory("trading"))
	CategoryPuzzle      = enum.New(QuestCategory("puzzle"))
	CategorySurvival    = enum.New(QuestCategory("survival"))
	CategoryOther       = enum.New(QuestCategory("other"))
)

type QuestStatus string

var (
	QuestAvailable = enum.New(QuestStatus("available"))
	QuestAccepted  = enum.New(QuestStatus("accepted"))
	QuestCompleted = enum.New(QuestStatus("completed"))
	QuestApproved  = enum.New(QuestStatus("approved"))
	QuestRejected  = enum.New(QuestStatus("rejected"))
	QuestCancelled = enum.New(QuestStatus("cancelled"))
)

func (s QuestStatus) IsTerminal() bool {
	return s == QuestApproved || s == QuestCancelled
}

type Quest struct {
	Base

	GuildID   string `gorm:"index"`
	CreatorID string

	Title        string
	Description  string `gorm:"type:text"`
	Requirements string `gorm:"type:text"`
	Reward       string `gorm:"type:text"`

	Rank     QuestRank
	Category QuestCategory
	Status   QuestStatus `gorm:"index"`

	// An empty RequiredRoleIDs means the quest is open to anyone.
	RequiredRoleIDs Array[string]
}
