package repository

import (
	"context"
	"fmt"

	"github.com/questx-lab/questboard/internal/entity"
	"github.com/questx-lab/questboard/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserStatsStatistic struct {
	TotalCompleted uint64
	ActiveUsers    uint64
}

type UserStatsRepository interface {
	Increase(ctx context.Context, userID, guildID string, counter entity.StatsCounter) error
	Get(ctx context.Context, userID, guildID string) (*entity.UserStats, error)
	GetListByGuildID(ctx context.Context, guildID string) ([]entity.UserStats, error)
	Statistic(ctx context.Context, guildID string) (*UserStatsStatistic, error)
}

type userStatsRepository struct{}

func NewUserStatsRepository() *userStatsRepository {
	return &userStatsRepository{}
}

// Increase bumps one counter by one, creating the row with zeroed counters on first use.
func (r *userStatsRepository) Increase(
	ctx context.Context, userID, guildID string, counter entity.StatsCounter,
) error {
	data := &entity.UserStats{UserID: userID, GuildID: guildID}
	switch counter {
	case entity.CounterAccepted:
		data.QuestsAccepted = 1
	case entity.CounterCompleted:
		data.QuestsCompleted = 1
	case entity.CounterRejected:
		data.QuestsRejected = 1
	default:
		return fmt.Errorf("invalid counter %s", counter)
	}

	column := counter.Column()
	return xcontext.DB(ctx).Model(&entity.UserStats{}).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"},
				{Name: "guild_id"},
			},
			DoUpdates: clause.Assignments(map[string]any{
				column:       gorm.Expr(column+" + ?", 1),
				"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
			}),
		}).
		Create(data).Error
}

func (r *userStatsRepository) Get(ctx context.Context, userID, guildID string) (*entity.UserStats, error) {
	result := &entity.UserStats{}
	err := xcontext.DB(ctx).
		Where("user_id=? AND guild_id=?", userID, guildID).
		Take(result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userStatsRepository) GetListByGuildID(ctx context.Context, guildID string) ([]entity.UserStats, error) {
	result := []entity.UserStats{}
	err := xcontext.DB(ctx).
		Where("guild_id=?", guildID).
		Order("quests_completed DESC").
		Order("user_id ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userStatsRepository) Statistic(ctx context.Context, guildID string) (*UserStatsStatistic, error) {
	result := &UserStatsStatistic{}
	err := xcontext.DB(ctx).
		Model(&entity.UserStats{}).
		Select("COALESCE(SUM(quests_completed), 0) AS total_completed, "+
			"COALESCE(SUM(CASE WHEN quests_accepted > 0 THEN 1 ELSE 0 END), 0) AS active_users").
		Where("guild_id=?", guildID).
		Scan(result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
