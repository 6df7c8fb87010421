package common

import (
	"github.com/questx-lab/questboard/config"
	"golang.org/x/exp/slices"
)

// Actor is the caller of a lifecycle operation, as resolved by the command layer.
type Actor struct {
	UserID        string
	RoleIDs       []string
	Administrator bool
}

// PermissionOracle answers permission questions from plain identifiers. Every method is a pure
// predicate.
type PermissionOracle interface {
	HasQuestCreationPermission(actor Actor, guildID string) bool
	CanManageQuest(actor Actor, guildID, creatorID string) bool
	UserHasRequiredRoles(userRoleIDs, requiredRoleIDs []string) bool
}

type RolePermissionOracle struct {
	creatorRoleIDs []string
	managerRoleIDs []string
}

// NewRolePermissionOracle grants creation to administrators and holders of any creator role,
// and management to administrators, the quest creator and holders of any manager role.
func NewRolePermissionOracle(cfg config.QuestConfigs) *RolePermissionOracle {
	return &RolePermissionOracle{
		creatorRoleIDs: cfg.CreatorRoleIDs,
		managerRoleIDs: cfg.ManagerRoleIDs,
	}
}

func (o *RolePermissionOracle) HasQuestCreationPermission(actor Actor, guildID string) bool {
	if actor.Administrator {
		return true
	}

	// Without configured creator roles anyone in the guild can post quests.
	if len(o.creatorRoleIDs) == 0 {
		return true
	}

	return intersects(actor.RoleIDs, o.creatorRoleIDs)
}

func (o *RolePermissionOracle) CanManageQuest(actor Actor, guildID, creatorID string) bool {
	if actor.Administrator {
		return true
	}

	if actor.UserID != "" && actor.UserID == creatorID {
		return true
	}

	return intersects(actor.RoleIDs, o.managerRoleIDs)
}

func (o *RolePermissionOracle) UserHasRequiredRoles(userRoleIDs, requiredRoleIDs []string) bool {
	if len(requiredRoleIDs) == 0 {
		return true
	}

	return intersects(userRoleIDs, requiredRoleIDs)
}

func intersects(a, b []string) bool {
	for _, x := range a {
		if slices.Contains(b, x) {
			return true
		}
	}

	return false
}
