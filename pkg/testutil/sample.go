package testutil

import (
	"context"
	"reflect"
	"time"

	"github.com/questx-lab/questboard/internal/entity"
	"github.com/questx-lab/questboard/internal/repository"
)

const (
	Guild1 = "guild1"
	Guild2 = "guild2"

	Creator1 = "creator1"
	User1    = "user1"
	User2    = "user2"
	User3    = "user3"
)

// CreateQuest stores a quest built from the sample and the non-zero fields of override.
func CreateQuest(ctx context.Context, override entity.Quest) *entity.Quest {
	quest := SampleQuest()
	overwriteFields(&quest, override)

	if err := repository.NewQuestRepository().Create(ctx, &quest); err != nil {
		panic(err)
	}

	return &quest
}

func SampleQuest() entity.Quest {
	return entity.Quest{
		Base:        entity.Base{ID: "quest1"},
		GuildID:     Guild1,
		CreatorID:   Creator1,
		Title:       "Slay the cave spider",
		Description: "It lives under the old mine",
		Reward:      "10 gold",
		Rank:        entity.RankNormal,
		Category:    entity.CategoryHunting,
		Status:      entity.QuestAvailable,
	}
}

// CreateQuestProgress stores a progress built from the sample and the non-zero fields of
// override.
func CreateQuestProgress(ctx context.Context, override entity.QuestProgress) *entity.QuestProgress {
	progress := entity.QuestProgress{
		Base:       entity.Base{ID: "progress1"},
		QuestID:    "quest1",
		UserID:     User1,
		GuildID:    Guild1,
		Attempt:    1,
		Status:     entity.ProgressAccepted,
		AcceptedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	overwriteFields(&progress, override)

	if err := repository.NewQuestProgressRepository().Create(ctx, &progress); err != nil {
		panic(err)
	}

	return &progress
}

// overwriteFields copies every non-zero field of src into dst, recursing into embedded
// structs.
func overwriteFields[T any](dst *T, src T) {
	overwriteValue(reflect.ValueOf(dst).Elem(), reflect.ValueOf(src))
}

func overwriteValue(dst, src reflect.Value) {
	for i := 0; i < src.NumField(); i++ {
		field := src.Type().Field(i)
		if !field.IsExported() {
			continue
		}

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			overwriteValue(dst.Field(i), src.Field(i))
			continue
		}

		if !src.Field(i).IsZero() {
			dst.Field(i).Set(src.Field(i))
		}
	}
}
