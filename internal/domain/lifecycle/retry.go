package lifecycle

import (
	"time"

	"github.com/questx-lab/questboard/internal/entity"
	"github.com/questx-lab/questboard/pkg/errorx"
)

// RetryPolicy decides whether a user may accept a quest again. last is the latest attempt of
// the user at the quest, or nil if there is none.
type RetryPolicy interface {
	Check(now time.Time, last *entity.QuestProgress) error
}

// CooldownPolicy makes a user whose attempt was rejected wait before accepting the same quest
// again. A non-positive Cooldown disables the policy.
type CooldownPolicy struct {
	Cooldown time.Duration
}

func (p CooldownPolicy) Check(now time.Time, last *entity.QuestProgress) error {
	if p.Cooldown <= 0 || last == nil {
		return nil
	}

	if last.Status != entity.ProgressRejected || !last.CompletedAt.Valid {
		return nil
	}

	retryAt := last.CompletedAt.Time.Add(p.Cooldown)
	if now.Before(retryAt) {
		return errorx.New(errorx.InvalidState,
			"You can retry this quest after %s", retryAt.UTC().Format(time.RFC3339))
	}

	return nil
}
