package lifecycle

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/questx-lab/questboard/internal/common"
	"github.com/questx-lab/questboard/internal/domain/statistic"
	"github.com/questx-lab/questboard/internal/entity"
	"github.com/questx-lab/questboard/internal/model"
	"github.com/questx-lab/questboard/internal/repository"
	"github.com/questx-lab/questboard/pkg/dateutil"
	"github.com/questx-lab/questboard/pkg/enum"
	"github.com/questx-lab/questboard/pkg/errorx"
	"github.com/questx-lab/questboard/pkg/idutil"
	"github.com/questx-lab/questboard/pkg/pubsub"
	"github.com/questx-lab/questboard/pkg/xcontext"
	"gorm.io/gorm"
)

type CreateQuestInput struct {
	GuildID         string
	Title           string
	Description     string
	Requirements    string
	Reward          string
	Rank            entity.QuestRank
	Category        entity.QuestCategory
	RequiredRoleIDs []string
}

type QuestFilter struct {
	Rank     entity.QuestRank
	Category entity.QuestCategory
}

// Engine is the only writer of quest and progress statuses.
type Engine interface {
	Create(ctx context.Context, creator common.Actor, in CreateQuestInput) (*entity.Quest, error)
	Get(ctx context.Context, questID string) (*entity.Quest, error)
	GetAvailable(ctx context.Context, guildID string, filter QuestFilter) ([]entity.Quest, error)
	GetGuildQuests(ctx context.Context, guildID string, filter QuestFilter) ([]entity.Quest, error)
	GetUserQuests(ctx context.Context, userID, guildID string) ([]entity.QuestProgress, error)

	Accept(ctx context.Context, questID string, user common.Actor, channelID string) (*entity.QuestProgress, error)
	Complete(
		ctx context.Context, questID, userID, proofText string, proofImageURLs []string,
	) (*entity.QuestProgress, error)
	Approve(
		ctx context.Context, questID, userID string, approved bool, reviewer common.Actor,
	) (*entity.QuestProgress, error)
	Cancel(ctx context.Context, questID string, actor common.Actor) (*entity.Quest, error)
	Delete(ctx context.Context, questID string, actor common.Actor) (bool, error)
}

type engine struct {
	questRepo    repository.QuestRepository
	progressRepo repository.QuestProgressRepository
	ledger       statistic.Ledger
	oracle       common.PermissionOracle
	publisher    pubsub.Publisher
	idGenerator  idutil.Generator
	clock        dateutil.Clock
	retryPolicy  RetryPolicy

	questLocks *common.KeyedMutex
}

func NewEngine(
	questRepo repository.QuestRepository,
	progressRepo repository.QuestProgressRepository,
	ledger statistic.Ledger,
	oracle common.PermissionOracle,
	publisher pubsub.Publisher,
	idGenerator idutil.Generator,
	clock dateutil.Clock,
	retryPolicy RetryPolicy,
) *engine {
	return &engine{
		questRepo:    questRepo,
		progressRepo: progressRepo,
		ledger:       ledger,
		oracle:       oracle,
		publisher:    publisher,
		idGenerator:  idGenerator,
		clock:        clock,
		retryPolicy:  retryPolicy,
		questLocks:   common.NewKeyedMutex(),
	}
}

func (e *engine) Create(
	ctx context.Context, creator common.Actor, in CreateQuestInput,
) (*entity.Quest, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" || description == "" {
		return nil, errorx.New(errorx.BadRequest, "Title and description are required")
	}

	if in.GuildID == "" {
		return nil, errorx.New(errorx.BadRequest, "Guild is required")
	}

	if in.Rank == "" {
		in.Rank = entity.RankNormal
	}
	if !enum.IsValid(in.Rank) {
		return nil, errorx.New(errorx.BadRequest, "Invalid rank %s", in.Rank)
	}

	if in.Category == "" {
		in.Category = entity.CategoryOther
	}
	if !enum.IsValid(in.Category) {
		return nil, errorx.New(errorx.BadRequest, "Invalid category %s", in.Category)
	}

	if !e.oracle.HasQuestCreationPermission(creator, in.GuildID) {
		return nil, errorx.New(errorx.PermissionDenied, "You do not have permission to create quests")
	}

	quest := &entity.Quest{
		Base:            entity.Base{ID: e.idGenerator.NewID()},
		GuildID:         in.GuildID,
		CreatorID:       creator.UserID,
		Title:           title,
		Description:     description,
		Requirements:    in.Requirements,
		Reward:          in.Reward,
		Rank:            in.Rank,
		Category:        in.Category,
		Status:          entity.QuestAvailable,
		RequiredRoleIDs: dedup(in.RequiredRoleIDs),
	}

	if err := e.questRepo.Create(ctx, quest); err != nil {
		return nil, storageError(ctx, "Cannot create quest", err)
	}

	e.publish(ctx, model.EventQuestCreated, quest, "", creator.UserID)
	return quest, nil
}

func (e *engine) Get(ctx context.Context, questID string) (*entity.Quest, error) {
	return e.getQuest(ctx, questID)
}

func (e *engine) GetAvailable(
	ctx context.Context, guildID string, filter QuestFilter,
) ([]entity.Quest, error) {
	return e.getList(ctx, guildID, filter, entity.QuestAvailable)
}

func (e *engine) GetGuildQuests(
	ctx context.Context, guildID string, filter QuestFilter,
) ([]entity.Quest, error) {
	return e.getList(ctx, guildID, filter)
}

func (e *engine) getList(
	ctx context.Context, guildID string, filter QuestFilter, statuses ...entity.QuestStatus,
) ([]entity.Quest, error) {
	quests, err := e.questRepo.GetList(ctx, guildID, repository.QuestFilter{
		Statuses: statuses,
		Rank:     filter.Rank,
		Category: filter.Category,
	})
	if err != nil {
		return nil, storageError(ctx, "Cannot get quest list", err)
	}

	return quests, nil
}

func (e *engine) GetUserQuests(
	ctx context.Context, userID, guildID string,
) ([]entity.QuestProgress, error) {
	progresses, err := e.progressRepo.GetList(ctx, repository.QuestProgressFilter{
		UserID:  userID,
		GuildID: guildID,
	})
	if err != nil {
		return nil, storageError(ctx, "Cannot get quest progresses", err)
	}

	return progresses, nil
}

func (e *engine) Accept(
	ctx context.Context, questID string, user common.Actor, channelID string,
) (*entity.QuestProgress, error) {
	unlock := e.questLocks.Lock(questID)
	defer unlock()

	quest, err := e.getQuest(ctx, questID)
	if err != nil {
		return nil, err
	}

	if _, ok := nextQuestStatus(quest.Status, ActionAccept); !ok {
		return nil, acceptStateError(quest.Status)
	}

	if !e.oracle.UserHasRequiredRoles(user.RoleIDs, quest.RequiredRoleIDs) {
		return nil, errorx.New(errorx.PermissionDenied, "You do not have the roles required by this quest")
	}

	now := e.clock.Now()
	last, err := e.progressRepo.GetLast(ctx, questID, user.UserID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storageError(ctx, "Cannot get the last attempt", err)
	}

	if e.retryPolicy != nil {
		if err := e.retryPolicy.Check(now, last); err != nil {
			xcontext.Logger(ctx).Debugf("User %s cannot retry quest %s: %v", user.UserID, questID, err)
			return nil, err
		}
	}

	progress := &entity.QuestProgress{
		Base:       entity.Base{ID: uuid.NewString()},
		QuestID:    quest.ID,
		UserID:     user.UserID,
		GuildID:    quest.GuildID,
		ChannelID:  channelID,
		Status:     entity.ProgressAccepted,
		AcceptedAt: now,
	}

	err = xcontext.Transaction(ctx, func(ctx context.Context) error {
		// Another instance may have claimed the quest since it was read; the compare-and-set
		// lets exactly one of them through.
		err := e.questRepo.UpdateStatus(ctx, quest.ID, entity.QuestAvailable, entity.QuestAccepted)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return e.reloadAcceptError(ctx, quest.ID)
			}
			return err
		}

		attempts, err := e.progressRepo.Count(ctx, repository.QuestProgressFilter{QuestID: quest.ID})
		if err != nil {
			return err
		}
		progress.Attempt = int(attempts) + 1

		if err := e.progressRepo.Create(ctx, progress); err != nil {
			return err
		}

		return e.ledger.Increment(ctx, user.UserID, quest.GuildID, entity.CounterAccepted)
	})
	if err != nil {
		return nil, transactionError(ctx, "Cannot accept quest", err)
	}

	quest.Status = entity.QuestAccepted
	e.ledger.Invalidate(ctx, quest.GuildID)
	e.publish(ctx, model.EventQuestAccepted, quest, user.UserID, user.UserID)

	return progress, nil
}

func (e *engine) Complete(
	ctx context.Context, questID, userID, proofText string, proofImageURLs []string,
) (*entity.QuestProgress, error) {
	unlock := e.questLocks.Lock(questID)
	defer unlock()

	quest, err := e.getQuest(ctx, questID)
	if err != nil {
		return nil, err
	}

	progress, err := e.getLastProgress(ctx, questID, userID)
	if err != nil {
		return nil, err
	}

	to, ok := nextProgressStatus(progress.Status, ActionSubmit)
	if !ok {
		return nil, errorx.New(errorx.InvalidState, "Your attempt at this quest is %s", progress.Status)
	}

	if _, ok := nextQuestStatus(quest.Status, ActionSubmit); !ok {
		return nil, errorx.New(errorx.InvalidState, "Quest is %s", quest.Status)
	}

	update := &entity.QuestProgress{
		Status:         to,
		CompletedAt:    sql.NullTime{Valid: true, Time: e.clock.Now()},
		ProofText:      proofText,
		ProofImageURLs: proofImageURLs,
	}

	err = e.progressRepo.UpdateByID(ctx, progress.ID, progress.Status, update)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.InvalidState, "Your attempt at this quest has changed")
		}
		return nil, storageError(ctx, "Cannot complete quest", err)
	}

	progress.Status = update.Status
	progress.CompletedAt = update.CompletedAt
	progress.ProofText = update.ProofText
	progress.ProofImageURLs = update.ProofImageURLs

	e.publish(ctx, model.EventQuestCompleted, quest, userID, userID)
	return progress, nil
}

func (e *engine) Approve(
	ctx context.Context, questID, userID string, approved bool, reviewer common.Actor,
) (*entity.QuestProgress, error) {
	unlock := e.questLocks.Lock(questID)
	defer unlock()

	quest, err := e.getQuest(ctx, questID)
	if err != nil {
		return nil, err
	}

	if !e.oracle.CanManageQuest(reviewer, quest.GuildID, quest.CreatorID) {
		return nil, errorx.New(errorx.PermissionDenied, "You do not have permission to review this quest")
	}

	progress, err := e.getLastProgress(ctx, questID, userID)
	if err != nil {
		return nil, err
	}

	action, counter, event := ActionReject, entity.CounterRejected, model.EventQuestRejected
	if approved {
		action, counter, event = ActionApprove, entity.CounterCompleted, model.EventQuestApproved
	}

	progressTo, ok := nextProgressStatus(progress.Status, action)
	if !ok {
		return nil, errorx.New(errorx.InvalidState, "The attempt is %s", progress.Status)
	}

	questTo, ok := nextQuestStatus(quest.Status, action)
	if !ok {
		return nil, errorx.New(errorx.InvalidState, "Quest is %s", quest.Status)
	}

	update := &entity.QuestProgress{
		Status:     progressTo,
		ReviewerID: reviewer.UserID,
		ReviewedAt: sql.NullTime{Valid: true, Time: e.clock.Now()},
	}

	err = xcontext.Transaction(ctx, func(ctx context.Context) error {
		err := e.progressRepo.UpdateByID(ctx, progress.ID, progress.Status, update)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errorx.New(errorx.InvalidState, "The attempt has changed")
			}
			return err
		}

		err = e.questRepo.UpdateStatus(ctx, quest.ID, quest.Status, questTo)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return e.reloadChangedError(ctx, quest.ID)
			}
			return err
		}

		return e.ledger.Increment(ctx, progress.UserID, quest.GuildID, counter)
	})
	if err != nil {
		return nil, transactionError(ctx, "Cannot review quest", err)
	}

	progress.Status = update.Status
	progress.ReviewerID = update.ReviewerID
	progress.ReviewedAt = update.ReviewedAt
	quest.Status = questTo

	e.ledger.Invalidate(ctx, quest.GuildID)
	e.publish(ctx, event, quest, progress.UserID, reviewer.UserID)

	return progress, nil
}

func (e *engine) Cancel(ctx context.Context, questID string, actor common.Actor) (*entity.Quest, error) {
	unlock := e.questLocks.Lock(questID)
	defer unlock()

	quest, err := e.getQuest(ctx, questID)
	if err != nil {
		return nil, err
	}

	if !e.oracle.CanManageQuest(actor, quest.GuildID, quest.CreatorID) {
		return nil, errorx.New(errorx.PermissionDenied, "You do not have permission to cancel this quest")
	}

	to, ok := nextQuestStatus(quest.Status, ActionCancel)
	if !ok {
		return nil, errorx.New(errorx.InvalidState, "Only available quests can be cancelled")
	}

	if err := e.questRepo.UpdateStatus(ctx, quest.ID, quest.Status, to); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, transactionError(ctx, "Cannot cancel quest", e.reloadChangedError(ctx, quest.ID))
		}
		return nil, storageError(ctx, "Cannot cancel quest", err)
	}

	quest.Status = to
	e.publish(ctx, model.EventQuestCancelled, quest, "", actor.UserID)

	return quest, nil
}

func (e *engine) Delete(ctx context.Context, questID string, actor common.Actor) (bool, error) {
	unlock := e.questLocks.Lock(questID)
	defer unlock()

	quest, err := e.getQuest(ctx, questID)
	if err != nil {
		return false, err
	}

	if !e.oracle.CanManageQuest(actor, quest.GuildID, quest.CreatorID) {
		return false, errorx.New(errorx.PermissionDenied, "You do not have permission to delete this quest")
	}

	if quest.Status != entity.QuestAvailable && !quest.Status.IsTerminal() {
		return false, errorx.New(errorx.InvalidState, "Quest has an active attempt")
	}

	err = xcontext.Transaction(ctx, func(ctx context.Context) error {
		active, err := e.progressRepo.Count(ctx, repository.QuestProgressFilter{
			QuestID:  quest.ID,
			Statuses: entity.ActiveProgressStatuses,
		})
		if err != nil {
			return err
		}

		if active > 0 {
			return errorx.New(errorx.InvalidState, "Quest has an active attempt")
		}

		// An accept committed by another instance after the read above makes this miss.
		if err := e.questRepo.Delete(ctx, quest.ID, quest.Status); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return e.reloadChangedError(ctx, quest.ID)
			}
			return err
		}

		return nil
	})
	if err != nil {
		return false, transactionError(ctx, "Cannot delete quest", err)
	}

	e.publish(ctx, model.EventQuestDeleted, quest, "", actor.UserID)
	return true, nil
}

func (e *engine) getQuest(ctx context.Context, questID string) (*entity.Quest, error) {
	quest, err := e.questRepo.GetByID(ctx, questID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found quest")
		}
		return nil, storageError(ctx, "Cannot get quest", err)
	}

	return quest, nil
}

func (e *engine) getLastProgress(ctx context.Context, questID, userID string) (*entity.QuestProgress, error) {
	progress, err := e.progressRepo.GetLast(ctx, questID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found any attempt of user at this quest")
		}
		return nil, storageError(ctx, "Cannot get quest progress", err)
	}

	return progress, nil
}

// reloadAcceptError explains why the claim compare-and-set missed.
func (e *engine) reloadAcceptError(ctx context.Context, questID string) error {
	quest, err := e.questRepo.GetByID(ctx, questID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.NotFound, "Not found quest")
		}
		return err
	}

	return acceptStateError(quest.Status)
}

// reloadChangedError explains why a guarded write on the quest missed.
func (e *engine) reloadChangedError(ctx context.Context, questID string) error {
	if _, err := e.questRepo.GetByID(ctx, questID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.NotFound, "Not found quest")
		}
		return err
	}

	return errorx.New(errorx.InvalidState, "Quest has changed")
}

func acceptStateError(status entity.QuestStatus) error {
	if status == entity.QuestAccepted {
		return errorx.New(errorx.AlreadyClaimed, "Quest was already claimed")
	}

	return errorx.New(errorx.InvalidState, "Quest is %s", status)
}

func storageError(ctx context.Context, msg string, err error) error {
	xcontext.Logger(ctx).Errorf("%s: %v", msg, err)
	return errorx.New(errorx.Storage, "%s", msg)
}

// transactionError keeps the business errors returned by a transaction and turns everything
// else into a storage error.
func transactionError(ctx context.Context, msg string, err error) error {
	var errx errorx.Error
	if errors.As(err, &errx) {
		return errx
	}

	return storageError(ctx, msg, err)
}

func dedup(ids []string) entity.Array[string] {
	result := entity.Array[string]{}
	seen := map[string]bool{}
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}

	return result
}
