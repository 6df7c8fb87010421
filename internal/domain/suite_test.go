package domain

import (
	"context"
	"testing"

	"github.com/questx-lab/questboard/internal/common"
	"github.com/questx-lab/questboard/internal/domain/lifecycle"
	"github.com/questx-lab/questboard/internal/domain/statistic"
	"github.com/questx-lab/questboard/internal/model"
	"github.com/questx-lab/questboard/internal/repository"
	"github.com/questx-lab/questboard/pkg/dateutil"
	"github.com/questx-lab/questboard/pkg/idutil"
	"github.com/questx-lab/questboard/pkg/pubsub"
	"github.com/questx-lab/questboard/pkg/testutil"
	"github.com/questx-lab/questboard/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type suite struct {
	ctx context.Context

	questDomain     *questDomain
	statisticDomain *statisticDomain
}

func newSuite(t *testing.T) *suite {
	ctx := testutil.MockContext()
	cfg := xcontext.Configs(ctx)

	idGenerator, err := idutil.NewSnowflakeGenerator(cfg.Quest.NodeID)
	require.NoError(t, err)

	questRepo := repository.NewQuestRepository()
	userStatsRepo := repository.NewUserStatsRepository()
	redisClient := &testutil.MockRedisClient{}
	ledger := statistic.NewLedger(questRepo, userStatsRepo, redisClient)

	engine := lifecycle.NewEngine(
		questRepo,
		repository.NewQuestProgressRepository(),
		ledger,
		common.NewRolePermissionOracle(cfg.Quest),
		pubsub.NewNopPublisher(),
		idGenerator,
		dateutil.NewRealClock(),
		lifecycle.CooldownPolicy{Cooldown: cfg.Quest.RetryCooldown},
	)

	return &suite{
		ctx:             ctx,
		questDomain:     NewQuestDomain(engine),
		statisticDomain: NewStatisticDomain(ledger, statistic.NewRanker(userStatsRepo, redisClient, 0)),
	}
}

func (s *suite) as(userID, guildID string, roleIDs ...string) context.Context {
	return xcontext.WithAccessToken(s.ctx, model.AccessToken{
		UserID:  userID,
		GuildID: guildID,
		RoleIDs: roleIDs,
	})
}
