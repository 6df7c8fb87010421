package statistic

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/questx-lab/questboard/internal/entity"
	"github.com/questx-lab/questboard/internal/repository"
	"github.com/questx-lab/questboard/pkg/errorx"
	"github.com/questx-lab/questboard/pkg/xcontext"
	"github.com/questx-lab/questboard/pkg/xredis"
)

type Ranker interface {
	// Top returns at most limit users of the guild, best first. The caller bounds limit.
	Top(ctx context.Context, guildID string, limit int) ([]entity.UserStats, error)
}

type ranker struct {
	userStatsRepo repository.UserStatsRepository
	redisClient   xredis.Client
	ttl           time.Duration
}

func NewRanker(
	userStatsRepo repository.UserStatsRepository,
	redisClient xredis.Client,
	ttl time.Duration,
) *ranker {
	return &ranker{
		userStatsRepo: userStatsRepo,
		redisClient:   redisClient,
		ttl:           ttl,
	}
}

func (r *ranker) Top(ctx context.Context, guildID string, limit int) ([]entity.UserStats, error) {
	if limit <= 0 {
		return []entity.UserStats{}, nil
	}

	key, cacheable := r.cacheKey(ctx, guildID)

	var ranking []entity.UserStats
	if !cacheable || r.redisClient.GetObj(ctx, key, &ranking) != nil {
		var err error
		ranking, err = r.userStatsRepo.GetListByGuildID(ctx, guildID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot load leaderboard from database: %v", err)
			return nil, errorx.New(errorx.Storage, "Cannot get leaderboard")
		}

		SortUserStats(ranking)

		if cacheable {
			if err := r.redisClient.SetObj(ctx, key, ranking, r.ttl); err != nil {
				xcontext.Logger(ctx).Warnf("Cannot cache leaderboard of guild %s: %v", guildID, err)
			}
		}
	}

	if len(ranking) > limit {
		ranking = ranking[:limit]
	}

	return ranking, nil
}

// cacheKey returns the snapshot key of the current leaderboard version. The cache is skipped
// when it is disabled or the version cannot be read.
func (r *ranker) cacheKey(ctx context.Context, guildID string) (string, bool) {
	if r.ttl <= 0 {
		return "", false
	}

	version, err := r.redisClient.Get(ctx, redisKeyLeaderboardVersion(guildID))
	if err != nil {
		if !errors.Is(err, xredis.ErrNotFound) {
			xcontext.Logger(ctx).Warnf("Cannot get leaderboard version of guild %s: %v", guildID, err)
			return "", false
		}
		version = "0"
	}

	return redisKeyLeaderboard(guildID, version), true
}

// SortUserStats orders by completed quests, then completion rate, then user id.
func SortUserStats(stats []entity.UserStats) {
	sort.SliceStable(stats, func(i, j int) bool {
		return rankBefore(stats[i], stats[j])
	})
}

func rankBefore(a, b entity.UserStats) bool {
	if a.QuestsCompleted != b.QuestsCompleted {
		return a.QuestsCompleted > b.QuestsCompleted
	}

	if rateA, rateB := a.CompletionRate(), b.CompletionRate(); rateA != rateB {
		return rateA > rateB
	}

	return a.UserID < b.UserID
}
