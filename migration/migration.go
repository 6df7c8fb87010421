package migration

import (
	"context"

	"github.com/questx-lab/questboard/internal/entity"
	"github.com/questx-lab/questboard/pkg/xcontext"
)

// AutoMigrate creates or updates the quests, quest_progresses and user_stats tables.
func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.Quest{},
		&entity.QuestProgress{},
		&entity.UserStats{},
	)
}
