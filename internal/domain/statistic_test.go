package domain

import (
	"fmt"
	"testing"

	"github.com/questx-lab/questboard/internal/entity"
	"github.com/questx-lab/questboard/internal/model"
	"github.com/questx-lab/questboard/internal/repository"
	"github.com/questx-lab/questboard/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_statisticDomain_GetLeaderboard_Limit(t *testing.T) {
	s := newSuite(t)

	repo := repository.NewUserStatsRepository()
	for i := 0; i < 30; i++ {
		userID := fmt.Sprintf("user%02d", i)
		require.NoError(t, repo.Increase(s.ctx, userID, testutil.Guild1, entity.CounterAccepted))
		for j := 0; j < i%4; j++ {
			require.NoError(t, repo.Increase(s.ctx, userID, testutil.Guild1, entity.CounterCompleted))
		}
	}

	ctx := s.as(testutil.User1, testutil.Guild1)

	testCases := []struct {
		limit    int
		expected int
	}{
		{limit: 0, expected: 10},
		{limit: -3, expected: 10},
		{limit: 5, expected: 5},
		{limit: 25, expected: 25},
		{limit: 100, expected: 25},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("limit %d", tc.limit), func(t *testing.T) {
			resp, err := s.statisticDomain.GetLeaderboard(ctx, &model.GetLeaderboardRequest{Limit: tc.limit})
			require.NoError(t, err)
			require.Len(t, resp.Stats, tc.expected)
			require.Equal(t, uint64(3), resp.Stats[0].QuestsCompleted)
			require.Equal(t, "user03", resp.Stats[0].UserID)
		})
	}
}

func Test_statisticDomain_GetUserStats(t *testing.T) {
	s := newSuite(t)

	resp, err := s.statisticDomain.GetUserStats(
		s.as(testutil.User1, testutil.Guild1),
		&model.GetUserStatsRequest{UserID: testutil.User2},
	)
	require.NoError(t, err)
	require.Equal(t, testutil.User2, resp.UserID)
	require.Zero(t, resp.QuestsAccepted)
	require.Zero(t, resp.CompletionRate)
}
