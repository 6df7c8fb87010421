package lifecycle

import (
	"github.com/questx-lab/questboard/internal/entity"
	"github.com/questx-lab/questboard/pkg/enum"
)

type Action string

var (
	ActionAccept  = enum.New(Action("accept"))
	ActionSubmit  = enum.New(Action("submit"))
	ActionApprove = enum.New(Action("approve"))
	ActionReject  = enum.New(Action("reject"))
	ActionCancel  = enum.New(Action("cancel"))
)

// questTransitions lists every legal move of Quest.Status. Submitting keeps the quest accepted,
// only the progress of the submitter becomes completed.
var questTransitions = map[entity.QuestStatus]map[Action]entity.QuestStatus{
	entity.QuestAvailable: {
		ActionAccept: entity.QuestAccepted,
		ActionCancel: entity.QuestCancelled,
	},
	entity.QuestAccepted: {
		ActionSubmit:  entity.QuestAccepted,
		ActionApprove: entity.QuestApproved,
		ActionReject:  entity.QuestAvailable,
	},
}

var progressTransitions = map[entity.ProgressStatus]map[Action]entity.ProgressStatus{
	entity.ProgressAccepted: {
		ActionSubmit: entity.ProgressCompleted,
	},
	entity.ProgressCompleted: {
		ActionApprove: entity.ProgressApproved,
		ActionReject:  entity.ProgressRejected,
	},
}

func nextQuestStatus(from entity.QuestStatus, action Action) (entity.QuestStatus, bool) {
	to, ok := questTransitions[from][action]
	return to, ok
}

func nextProgressStatus(from entity.ProgressStatus, action Action) (entity.ProgressStatus, bool) {
	to, ok := progressTransitions[from][action]
	return to, ok
}
