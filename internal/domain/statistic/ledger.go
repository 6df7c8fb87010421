package statistic

import (
	"context"
	"errors"

	"github.com/questx-lab/questboard/internal/entity"
	"github.com/questx-lab/questboard/internal/repository"
	"github.com/questx-lab/questboard/pkg/errorx"
	"github.com/questx-lab/questboard/pkg/xcontext"
	"github.com/questx-lab/questboard/pkg/xredis"
	"gorm.io/gorm"
)

// Ledger keeps the per-user counters of a guild. Counters never decrease.
type Ledger interface {
	// Increment bumps one counter. It runs on the database of ctx, so a lifecycle transition
	// can increment inside its own transaction.
	Increment(ctx context.Context, userID, guildID string, counter entity.StatsCounter) error

	// Invalidate drops the cached views derived from the counters of the guild. It must be
	// called once the increments are committed.
	Invalidate(ctx context.Context, guildID string)

	// Get returns the counters of the user, all zeros if the user has no activity.
	Get(ctx context.Context, userID, guildID string) (*entity.UserStats, error)

	GuildTotals(ctx context.Context, guildID string) (*entity.GuildStatistic, error)
}

type ledger struct {
	questRepo     repository.QuestRepository
	userStatsRepo repository.UserStatsRepository
	redisClient   xredis.Client
}

func NewLedger(
	questRepo repository.QuestRepository,
	userStatsRepo repository.UserStatsRepository,
	redisClient xredis.Client,
) *ledger {
	return &ledger{
		questRepo:     questRepo,
		userStatsRepo: userStatsRepo,
		redisClient:   redisClient,
	}
}

func (l *ledger) Increment(
	ctx context.Context, userID, guildID string, counter entity.StatsCounter,
) error {
	if err := l.userStatsRepo.Increase(ctx, userID, guildID, counter); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase %s of user %s: %v", counter, userID, err)
		return errorx.New(errorx.Storage, "Cannot update user statistic")
	}

	return nil
}

func (l *ledger) Invalidate(ctx context.Context, guildID string) {
	if _, err := l.redisClient.Incr(ctx, redisKeyLeaderboardVersion(guildID)); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot invalidate leaderboard cache of guild %s: %v", guildID, err)
	}
}

func (l *ledger) Get(ctx context.Context, userID, guildID string) (*entity.UserStats, error) {
	stats, err := l.userStatsRepo.Get(ctx, userID, guildID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &entity.UserStats{UserID: userID, GuildID: guildID}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get user statistic: %v", err)
		return nil, errorx.New(errorx.Storage, "Cannot get user statistic")
	}

	return stats, nil
}

func (l *ledger) GuildTotals(ctx context.Context, guildID string) (*entity.GuildStatistic, error) {
	totalQuests, err := l.questRepo.Count(ctx, guildID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count quests: %v", err)
		return nil, errorx.New(errorx.Storage, "Cannot get guild statistic")
	}

	statistic, err := l.userStatsRepo.Statistic(ctx, guildID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user statistic of guild: %v", err)
		return nil, errorx.New(errorx.Storage, "Cannot get guild statistic")
	}

	return &entity.GuildStatistic{
		TotalQuests:    uint64(totalQuests),
		TotalCompleted: statistic.TotalCompleted,
		ActiveUsers:    statistic.ActiveUsers,
	}, nil
}
