package repository_test

import (
	"sync"
	"testing"

	"github.com/questx-lab/questboard/internal/entity"
	"github.com/questx-lab/questboard/internal/repository"
	"github.com/questx-lab/questboard/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_userStatsRepository_Increase(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewUserStatsRepository()

	_, err := repo.Get(ctx, testutil.User1, testutil.Guild1)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.Increase(ctx, testutil.User1, testutil.Guild1, entity.CounterAccepted))
		}()
	}
	wg.Wait()

	require.NoError(t, repo.Increase(ctx, testutil.User1, testutil.Guild1, entity.CounterCompleted))
	require.NoError(t, repo.Increase(ctx, testutil.User1, testutil.Guild1, entity.CounterRejected))
	require.NoError(t, repo.Increase(ctx, testutil.User1, testutil.Guild2, entity.CounterRejected))
	require.Error(t, repo.Increase(ctx, testutil.User1, testutil.Guild1, entity.StatsCounter("invalid")))

	stats, err := repo.Get(ctx, testutil.User1, testutil.Guild1)
	require.NoError(t, err)
	require.Equal(t, uint64(10), stats.QuestsAccepted)
	require.Equal(t, uint64(1), stats.QuestsCompleted)
	require.Equal(t, uint64(1), stats.QuestsRejected)
}

func Test_userStatsRepository_Statistic(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewUserStatsRepository()

	statistic, err := repo.Statistic(ctx, testutil.Guild1)
	require.NoError(t, err)
	require.Zero(t, statistic.TotalCompleted)
	require.Zero(t, statistic.ActiveUsers)

	require.NoError(t, repo.Increase(ctx, testutil.User1, testutil.Guild1, entity.CounterAccepted))
	require.NoError(t, repo.Increase(ctx, testutil.User1, testutil.Guild1, entity.CounterCompleted))
	require.NoError(t, repo.Increase(ctx, testutil.User2, testutil.Guild1, entity.CounterAccepted))
	require.NoError(t, repo.Increase(ctx, testutil.User2, testutil.Guild1, entity.CounterAccepted))
	require.NoError(t, repo.Increase(ctx, testutil.User2, testutil.Guild1, entity.CounterCompleted))
	require.NoError(t, repo.Increase(ctx, testutil.User3, testutil.Guild2, entity.CounterAccepted))

	statistic, err = repo.Statistic(ctx, testutil.Guild1)
	require.NoError(t, err)
	require.Equal(t, uint64(2), statistic.TotalCompleted)
	require.Equal(t, uint64(2), statistic.ActiveUsers)

	list, err := repo.GetListByGuildID(ctx, testutil.Guild1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, testutil.User1, list[0].UserID)
}
