package domain

import (
	"database/sql"
	"time"

	"github.com/questx-lab/questboard/internal/entity"
	"github.com/questx-lab/questboard/internal/model"
)

const defaultTimeLayout string = time.RFC3339Nano

func formatNullTime(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}

	return t.Time.Format(defaultTimeLayout)
}

func convertQuest(quest *entity.Quest) model.Quest {
	if quest == nil {
		return model.Quest{}
	}

	requiredRoleIDs := []string{}
	requiredRoleIDs = append(requiredRoleIDs, quest.RequiredRoleIDs...)

	return model.Quest{
		ID:              quest.ID,
		GuildID:         quest.GuildID,
		CreatorID:       quest.CreatorID,
		Title:           quest.Title,
		Description:     quest.Description,
		Requirements:    quest.Requirements,
		Reward:          quest.Reward,
		Rank:            string(quest.Rank),
		RankLevel:       quest.Rank.Level(),
		Category:        string(quest.Category),
		Status:          string(quest.Status),
		RequiredRoleIDs: requiredRoleIDs,
		CreatedAt:       quest.CreatedAt.Format(defaultTimeLayout),
	}
}

func convertQuestProgress(progress *entity.QuestProgress) model.QuestProgress {
	if progress == nil {
		return model.QuestProgress{}
	}

	return model.QuestProgress{
		ID:             progress.ID,
		QuestID:        progress.QuestID,
		UserID:         progress.UserID,
		GuildID:        progress.GuildID,
		ChannelID:      progress.ChannelID,
		Attempt:        progress.Attempt,
		Status:         string(progress.Status),
		AcceptedAt:     progress.AcceptedAt.Format(defaultTimeLayout),
		CompletedAt:    formatNullTime(progress.CompletedAt),
		ProofText:      progress.ProofText,
		ProofImageURLs: progress.ProofImageURLs,
		ReviewerID:     progress.ReviewerID,
		ReviewedAt:     formatNullTime(progress.ReviewedAt),
	}
}

func convertUserStats(stats *entity.UserStats) model.UserStats {
	if stats == nil {
		return model.UserStats{}
	}

	return model.UserStats{
		UserID:          stats.UserID,
		GuildID:         stats.GuildID,
		QuestsAccepted:  stats.QuestsAccepted,
		QuestsCompleted: stats.QuestsCompleted,
		QuestsRejected:  stats.QuestsRejected,
		CompletionRate:  stats.CompletionRate(),
	}
}
