package repository_test

import (
	"errors"
	"testing"

	"github.com/questx-lab/questboard/internal/entity"
	"github.com/questx-lab/questboard/internal/repository"
	"github.com/questx-lab/questboard/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_questRepository_GetList(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewQuestRepository()

	testutil.CreateQuest(ctx, entity.Quest{Base: entity.Base{ID: "q1"}, Rank: entity.RankHard})
	testutil.CreateQuest(ctx, entity.Quest{
		Base:     entity.Base{ID: "q2"},
		Status:   entity.QuestAccepted,
		Category: entity.CategoryPuzzle,
	})
	testutil.CreateQuest(ctx, entity.Quest{Base: entity.Base{ID: "q3"}, GuildID: testutil.Guild2})

	quests, err := repo.GetList(ctx, testutil.Guild1, repository.QuestFilter{})
	require.NoError(t, err)
	require.Len(t, quests, 2)

	quests, err = repo.GetList(ctx, testutil.Guild1, repository.QuestFilter{
		Statuses: []entity.QuestStatus{entity.QuestAvailable},
	})
	require.NoError(t, err)
	require.Len(t, quests, 1)
	require.Equal(t, "q1", quests[0].ID)

	quests, err = repo.GetList(ctx, testutil.Guild1, repository.QuestFilter{Rank: entity.RankHard})
	require.NoError(t, err)
	require.Len(t, quests, 1)
	require.Equal(t, "q1", quests[0].ID)

	quests, err = repo.GetList(ctx, testutil.Guild1, repository.QuestFilter{Category: entity.CategoryPuzzle})
	require.NoError(t, err)
	require.Len(t, quests, 1)
	require.Equal(t, "q2", quests[0].ID)
}

func Test_questRepository_UpdateStatus(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewQuestRepository()
	testutil.CreateQuest(ctx, entity.Quest{})

	err := repo.UpdateStatus(ctx, "quest1", entity.QuestAvailable, entity.QuestAccepted)
	require.NoError(t, err)

	err = repo.UpdateStatus(ctx, "quest1", entity.QuestAvailable, entity.QuestAccepted)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	quest, err := repo.GetByID(ctx, "quest1")
	require.NoError(t, err)
	require.Equal(t, entity.QuestAccepted, quest.Status)
}

func Test_questRepository_Delete(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewQuestRepository()
	testutil.CreateQuest(ctx, entity.Quest{})

	require.ErrorIs(t, repo.Delete(ctx, "quest1", entity.QuestAccepted), gorm.ErrRecordNotFound)
	require.NoError(t, repo.Delete(ctx, "quest1", entity.QuestAvailable))
	require.ErrorIs(t, repo.Delete(ctx, "quest1", entity.QuestAvailable), gorm.ErrRecordNotFound)

	_, err := repo.GetByID(ctx, "quest1")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Deleted quests still count as created and keep their id.
	count, err := repo.Count(ctx, testutil.Guild1)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	err = repo.Create(ctx, &entity.Quest{Base: entity.Base{ID: "quest1"}, GuildID: testutil.Guild1})
	require.Error(t, err)
}

func Test_questRepository_RequiredRoleIDs(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewQuestRepository()
	testutil.CreateQuest(ctx, entity.Quest{RequiredRoleIDs: entity.Array[string]{"role1", "role2"}})

	quest, err := repo.GetByID(ctx, "quest1")
	require.NoError(t, err)
	require.Equal(t, entity.Array[string]{"role1", "role2"}, quest.RequiredRoleIDs)
}
