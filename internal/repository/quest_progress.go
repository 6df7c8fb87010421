package repository

import (
	"context"

	"github.com/questx-lab/questboard/internal/entity"
	"github.com/questx-lab/questboard/pkg/xcontext"
	"gorm.io/gorm"
)

type QuestProgressFilter struct {
	GuildID  string
	QuestID  string
	UserID   string
	Statuses []entity.ProgressStatus
}

type QuestProgressRepository interface {
	Create(ctx context.Context, progress *entity.QuestProgress) error
	GetByID(ctx context.Context, id string) (*entity.QuestProgress, error)
	GetLast(ctx context.Context, questID, userID string) (*entity.QuestProgress, error)
	GetList(ctx context.Context, filter QuestProgressFilter) ([]entity.QuestProgress, error)
	Count(ctx context.Context, filter QuestProgressFilter) (int64, error)
	UpdateByID(
		ctx context.Context, id string, from entity.ProgressStatus, data *entity.QuestProgress,
	) error
}

type questProgressRepository struct{}

func NewQuestProgressRepository() *questProgressRepository {
	return &questProgressRepository{}
}

func (r *questProgressRepository) Create(ctx context.Context, progress *entity.QuestProgress) error {
	return xcontext.DB(ctx).Create(progress).Error
}

func (r *questProgressRepository) GetByID(ctx context.Context, id string) (*entity.QuestProgress, error) {
	result := &entity.QuestProgress{}
	if err := xcontext.DB(ctx).Take(result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// GetLast returns the latest attempt of the user at the quest.
func (r *questProgressRepository) GetLast(
	ctx context.Context, questID, userID string,
) (*entity.QuestProgress, error) {
	result := &entity.QuestProgress{}
	err := xcontext.DB(ctx).
		Where("quest_id=? AND user_id=?", questID, userID).
		Order("attempt DESC").
		Take(result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *questProgressRepository) filter(ctx context.Context, filter QuestProgressFilter) *gorm.DB {
	tx := xcontext.DB(ctx).Model(&entity.QuestProgress{})

	if filter.GuildID != "" {
		tx = tx.Where("guild_id=?", filter.GuildID)
	}

	if filter.QuestID != "" {
		tx = tx.Where("quest_id=?", filter.QuestID)
	}

	if filter.UserID != "" {
		tx = tx.Where("user_id=?", filter.UserID)
	}

	if len(filter.Statuses) > 0 {
		tx = tx.Where("status IN (?)", filter.Statuses)
	}

	return tx
}

func (r *questProgressRepository) GetList(
	ctx context.Context, filter QuestProgressFilter,
) ([]entity.QuestProgress, error) {
	result := []entity.QuestProgress{}
	err := r.filter(ctx, filter).
		Order("accepted_at ASC").
		Order("attempt ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *questProgressRepository) Count(ctx context.Context, filter QuestProgressFilter) (int64, error) {
	var result int64
	if err := r.filter(ctx, filter).Count(&result).Error; err != nil {
		return 0, err
	}

	return result, nil
}

// UpdateByID writes the non-zero fields of data only if the progress is still in the from
// status. It returns gorm.ErrRecordNotFound otherwise.
func (r *questProgressRepository) UpdateByID(
	ctx context.Context, id string, from entity.ProgressStatus, data *entity.QuestProgress,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.QuestProgress{}).
		Where("id=? AND status=?", id, from).
		Updates(data)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
