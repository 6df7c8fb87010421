package lifecycle

import (
	"context"
	"encoding/json"
	"time"

	"github.com/questx-lab/questboard/internal/entity"
	"github.com/questx-lab/questboard/internal/model"
	"github.com/questx-lab/questboard/pkg/pubsub"
	"github.com/questx-lab/questboard/pkg/xcontext"
)

// publish announces a committed transition. Delivery is best effort, a failure never undoes
// the transition.
func (e *engine) publish(
	ctx context.Context, eventType model.EventType, quest *entity.Quest, userID, actorID string,
) {
	event := model.QuestEvent{
		Type:      eventType,
		QuestID:   quest.ID,
		GuildID:   quest.GuildID,
		UserID:    userID,
		ActorID:   actorID,
		Timestamp: e.clock.Now().Format(time.RFC3339Nano),
	}

	b, err := json.Marshal(event)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal event %s: %v", eventType, err)
		return
	}

	topic := xcontext.Configs(ctx).Kafka.Topic
	err = e.publisher.Publish(ctx, topic, &pubsub.Pack{Key: []byte(quest.ID), Msg: b})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot publish event %s of quest %s: %v", eventType, quest.ID, err)
	}
}
