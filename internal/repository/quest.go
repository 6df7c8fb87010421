package repository

import (
	"context"

	"github.com/questx-lab/questboard/internal/entity"
	"github.com/questx-lab/questboard/pkg/xcontext"
	"gorm.io/gorm"
)

type QuestFilter struct {
	Statuses []entity.QuestStatus
	Rank     entity.QuestRank
	Category entity.QuestCategory
}

type QuestRepository interface {
	Create(ctx context.Context, quest *entity.Quest) error
	GetByID(ctx context.Context, id string) (*entity.Quest, error)
	GetList(ctx context.Context, guildID string, filter QuestFilter) ([]entity.Quest, error)
	UpdateStatus(ctx context.Context, id string, from, to entity.QuestStatus) error
	Delete(ctx context.Context, id string, status entity.QuestStatus) error
	Count(ctx context.Context, guildID string) (int64, error)
}

type questRepository struct{}

func NewQuestRepository() *questRepository {
	return &questRepository{}
}

func (r *questRepository) Create(ctx context.Context, quest *entity.Quest) error {
	return xcontext.DB(ctx).Create(quest).Error
}

func (r *questRepository) GetByID(ctx context.Context, id string) (*entity.Quest, error) {
	result := &entity.Quest{}
	if err := xcontext.DB(ctx).Take(result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *questRepository) GetList(
	ctx context.Context, guildID string, filter QuestFilter,
) ([]entity.Quest, error) {
	result := []entity.Quest{}
	tx := xcontext.DB(ctx).
		Where("guild_id=?", guildID).
		Order("created_at ASC").
		Order("id ASC")

	if len(filter.Statuses) > 0 {
		tx = tx.Where("status IN (?)", filter.Statuses)
	}

	// rank is a reserved word in MySQL 8, map conditions get their column quoted.
	if filter.Rank != "" {
		tx = tx.Where(map[string]any{"rank": filter.Rank})
	}

	if filter.Category != "" {
		tx = tx.Where(map[string]any{"category": filter.Category})
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// UpdateStatus moves the quest from one status to another. It returns gorm.ErrRecordNotFound
// if the quest is no longer in the from status.
func (r *questRepository) UpdateStatus(
	ctx context.Context, id string, from, to entity.QuestStatus,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Quest{}).
		Where("id=? AND status=?", id, from).
		Update("status", to)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// Delete soft deletes the quest. It returns gorm.ErrRecordNotFound if the quest is gone or is
// no longer in the given status.
func (r *questRepository) Delete(ctx context.Context, id string, status entity.QuestStatus) error {
	tx := xcontext.DB(ctx).Delete(&entity.Quest{}, "id=? AND status=?", id, status)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// Count includes deleted quests, so it reports how many quests were ever created in the guild.
func (r *questRepository) Count(ctx context.Context, guildID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).
		Unscoped().
		Model(&entity.Quest{}).
		Where("guild_id=?", guildID).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}
