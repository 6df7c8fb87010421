package domain

import (
	"context"

	"github.com/questx-lab/questboard/internal/domain/lifecycle"
	"github.com/questx-lab/questboard/internal/entity"
	"github.com/questx-lab/questboard/internal/model"
	"github.com/questx-lab/questboard/pkg/enum"
	"github.com/questx-lab/questboard/pkg/errorx"
	"github.com/questx-lab/questboard/pkg/xcontext"
)

type QuestDomain interface {
	Create(context.Context, *model.CreateQuestRequest) (*model.CreateQuestResponse, error)
	Get(context.Context, *model.GetQuestRequest) (*model.GetQuestResponse, error)
	GetList(context.Context, *model.GetListQuestRequest) (*model.GetListQuestResponse, error)
	Accept(context.Context, *model.AcceptQuestRequest) (*model.AcceptQuestResponse, error)
	Complete(context.Context, *model.CompleteQuestRequest) (*model.CompleteQuestResponse, error)
	Review(context.Context, *model.ReviewQuestRequest) (*model.ReviewQuestResponse, error)
	Cancel(context.Context, *model.CancelQuestRequest) (*model.CancelQuestResponse, error)
	Delete(context.Context, *model.DeleteQuestRequest) (*model.DeleteQuestResponse, error)
	GetMyQuests(context.Context, *model.GetMyQuestsRequest) (*model.GetMyQuestsResponse, error)
}

type questDomain struct {
	engine lifecycle.Engine
}

func NewQuestDomain(engine lifecycle.Engine) *questDomain {
	return &questDomain{engine: engine}
}

func (d *questDomain) Create(
	ctx context.Context, req *model.CreateQuestRequest,
) (*model.CreateQuestResponse, error) {
	actor, guildID, err := requestActor(ctx)
	if err != nil {
		return nil, err
	}

	quest, err := d.engine.Create(ctx, actor, lifecycle.CreateQuestInput{
		GuildID:         guildID,
		Title:           req.Title,
		Description:     req.Description,
		Requirements:    req.Requirements,
		Reward:          req.Reward,
		Rank:            entity.QuestRank(req.Rank),
		Category:        entity.QuestCategory(req.Category),
		RequiredRoleIDs: req.RequiredRoleIDs,
	})
	if err != nil {
		return nil, err
	}

	resp := model.CreateQuestResponse(convertQuest(quest))
	return &resp, nil
}

func (d *questDomain) Get(ctx context.Context, req *model.GetQuestRequest) (*model.GetQuestResponse, error) {
	_, guildID, err := requestActor(ctx)
	if err != nil {
		return nil, err
	}

	quest, err := getGuildQuest(ctx, d.engine, req.ID, guildID)
	if err != nil {
		return nil, err
	}

	resp := model.GetQuestResponse(convertQuest(quest))
	return &resp, nil
}

func (d *questDomain) GetList(
	ctx context.Context, req *model.GetListQuestRequest,
) (*model.GetListQuestResponse, error) {
	_, guildID, err := requestActor(ctx)
	if err != nil {
		return nil, err
	}

	filter := lifecycle.QuestFilter{}
	if req.Rank != "" {
		rank, err := enum.ToEnum[entity.QuestRank](req.Rank)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Invalid rank: %v", err)
			return nil, errorx.New(errorx.BadRequest, "Invalid rank %s", req.Rank)
		}
		filter.Rank = rank
	}

	if req.Category != "" {
		category, err := enum.ToEnum[entity.QuestCategory](req.Category)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Invalid category: %v", err)
			return nil, errorx.New(errorx.BadRequest, "Invalid category %s", req.Category)
		}
		filter.Category = category
	}

	var quests []entity.Quest
	if req.All {
		quests, err = d.engine.GetGuildQuests(ctx, guildID, filter)
	} else {
		quests, err = d.engine.GetAvailable(ctx, guildID, filter)
	}
	if err != nil {
		return nil, err
	}

	resp := &model.GetListQuestResponse{Quests: []model.Quest{}}
	for i := range quests {
		resp.Quests = append(resp.Quests, convertQuest(&quests[i]))
	}

	return resp, nil
}

func (d *questDomain) Accept(
	ctx context.Context, req *model.AcceptQuestRequest,
) (*model.AcceptQuestResponse, error) {
	actor, guildID, err := requestActor(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := getGuildQuest(ctx, d.engine, req.ID, guildID); err != nil {
		return nil, err
	}

	progress, err := d.engine.Accept(ctx, req.ID, actor, req.ChannelID)
	if err != nil {
		return nil, err
	}

	resp := model.AcceptQuestResponse(convertQuestProgress(progress))
	return &resp, nil
}

func (d *questDomain) Complete(
	ctx context.Context, req *model.CompleteQuestRequest,
) (*model.CompleteQuestResponse, error) {
	actor, guildID, err := requestActor(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := getGuildQuest(ctx, d.engine, req.ID, guildID); err != nil {
		return nil, err
	}

	progress, err := d.engine.Complete(ctx, req.ID, actor.UserID, req.ProofText, req.ProofImageURLs)
	if err != nil {
		return nil, err
	}

	resp := model.CompleteQuestResponse(convertQuestProgress(progress))
	return &resp, nil
}

func (d *questDomain) Review(
	ctx context.Context, req *model.ReviewQuestRequest,
) (*model.ReviewQuestResponse, error) {
	actor, guildID, err := requestActor(ctx)
	if err != nil {
		return nil, err
	}

	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "User is required")
	}

	if _, err := getGuildQuest(ctx, d.engine, req.ID, guildID); err != nil {
		return nil, err
	}

	progress, err := d.engine.Approve(ctx, req.ID, req.UserID, req.Approved, actor)
	if err != nil {
		return nil, err
	}

	resp := model.ReviewQuestResponse(convertQuestProgress(progress))
	return &resp, nil
}

func (d *questDomain) Cancel(
	ctx context.Context, req *model.CancelQuestRequest,
) (*model.CancelQuestResponse, error) {
	actor, guildID, err := requestActor(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := getGuildQuest(ctx, d.engine, req.ID, guildID); err != nil {
		return nil, err
	}

	quest, err := d.engine.Cancel(ctx, req.ID, actor)
	if err != nil {
		return nil, err
	}

	resp := model.CancelQuestResponse(convertQuest(quest))
	return &resp, nil
}

func (d *questDomain) Delete(
	ctx context.Context, req *model.DeleteQuestRequest,
) (*model.DeleteQuestResponse, error) {
	actor, guildID, err := requestActor(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := getGuildQuest(ctx, d.engine, req.ID, guildID); err != nil {
		return nil, err
	}

	deleted, err := d.engine.Delete(ctx, req.ID, actor)
	if err != nil {
		return nil, err
	}

	return &model.DeleteQuestResponse{Deleted: deleted}, nil
}

func (d *questDomain) GetMyQuests(
	ctx context.Context, req *model.GetMyQuestsRequest,
) (*model.GetMyQuestsResponse, error) {
	actor, guildID, err := requestActor(ctx)
	if err != nil {
		return nil, err
	}

	progresses, err := d.engine.GetUserQuests(ctx, actor.UserID, guildID)
	if err != nil {
		return nil, err
	}

	resp := &model.GetMyQuestsResponse{Progresses: []model.QuestProgress{}}
	for i := range progresses {
		resp.Progresses = append(resp.Progresses, convertQuestProgress(&progresses[i]))
	}

	return resp, nil
}
