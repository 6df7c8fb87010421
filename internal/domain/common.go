package domain

import (
	"context"

	"github.com/questx-lab/questboard/internal/common"
	"github.com/questx-lab/questboard/internal/domain/lifecycle"
	"github.com/questx-lab/questboard/internal/entity"
	"github.com/questx-lab/questboard/internal/model"
	"github.com/questx-lab/questboard/pkg/errorx"
	"github.com/questx-lab/questboard/pkg/xcontext"
)

// requestActor returns the caller and its guild from the access token of ctx.
func requestActor(ctx context.Context) (common.Actor, string, error) {
	token, ok := xcontext.AccessToken(ctx)
	if !ok || token.UserID == "" || token.GuildID == "" {
		return common.Actor{}, "", errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	return actorFromToken(token), token.GuildID, nil
}

func actorFromToken(token model.AccessToken) common.Actor {
	return common.Actor{
		UserID:        token.UserID,
		RoleIDs:       token.RoleIDs,
		Administrator: token.Administrator,
	}
}

// getGuildQuest hides quests of other guilds.
func getGuildQuest(
	ctx context.Context, engine lifecycle.Engine, questID, guildID string,
) (*entity.Quest, error) {
	quest, err := engine.Get(ctx, questID)
	if err != nil {
		return nil, err
	}

	if quest.GuildID != guildID {
		return nil, errorx.New(errorx.NotFound, "Not found quest")
	}

	return quest, nil
}
