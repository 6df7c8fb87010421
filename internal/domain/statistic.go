package domain

import (
	"context"

	"github.com/questx-lab/questboard/internal/domain/statistic"
	"github.com/questx-lab/questboard/internal/model"
	"github.com/questx-lab/questboard/pkg/xcontext"

	mathUtil "github.com/pkg/math"
)

type StatisticDomain interface {
	GetUserStats(context.Context, *model.GetUserStatsRequest) (*model.GetUserStatsResponse, error)
	GetLeaderboard(context.Context, *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
	GetGuildStats(context.Context, *model.GetGuildStatsRequest) (*model.GetGuildStatsResponse, error)
}

type statisticDomain struct {
	ledger statistic.Ledger
	ranker statistic.Ranker
}

func NewStatisticDomain(ledger statistic.Ledger, ranker statistic.Ranker) *statisticDomain {
	return &statisticDomain{ledger: ledger, ranker: ranker}
}

func (d *statisticDomain) GetUserStats(
	ctx context.Context, req *model.GetUserStatsRequest,
) (*model.GetUserStatsResponse, error) {
	actor, guildID, err := requestActor(ctx)
	if err != nil {
		return nil, err
	}

	userID := req.UserID
	if userID == "" {
		userID = actor.UserID
	}

	stats, err := d.ledger.Get(ctx, userID, guildID)
	if err != nil {
		return nil, err
	}

	resp := model.GetUserStatsResponse(convertUserStats(stats))
	return &resp, nil
}

func (d *statisticDomain) GetLeaderboard(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	_, guildID, err := requestActor(ctx)
	if err != nil {
		return nil, err
	}

	cfg := xcontext.Configs(ctx).Leaderboard
	limit := req.Limit
	if limit < 1 {
		limit = cfg.DefaultLimit
	}
	limit = mathUtil.MinInt(limit, cfg.MaxLimit)

	ranking, err := d.ranker.Top(ctx, guildID, limit)
	if err != nil {
		return nil, err
	}

	resp := &model.GetLeaderboardResponse{Stats: []model.UserStats{}}
	for i := range ranking {
		resp.Stats = append(resp.Stats, convertUserStats(&ranking[i]))
	}

	return resp, nil
}

func (d *statisticDomain) GetGuildStats(
	ctx context.Context, req *model.GetGuildStatsRequest,
) (*model.GetGuildStatsResponse, error) {
	_, guildID, err := requestActor(ctx)
	if err != nil {
		return nil, err
	}

	totals, err := d.ledger.GuildTotals(ctx, guildID)
	if err != nil {
		return nil, err
	}

	return &model.GetGuildStatsResponse{
		TotalQuests:    totals.TotalQuests,
		TotalCompleted: totals.TotalCompleted,
		ActiveUsers:    totals.ActiveUsers,
	}, nil
}
