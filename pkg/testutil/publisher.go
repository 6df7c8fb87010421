package testutil

import (
	"context"
	"sync"

	"github.com/questx-lab/questboard/pkg/errorx"
	"github.com/questx-lab/questboard/pkg/pubsub"
)

type MockPublisher struct {
	PublishFunc func(context.Context, string, *pubsub.Pack) error
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, pack)
	}

	return errorx.New(errorx.Internal, "Not implemented")
}

// RecordingPublisher keeps every published pack in order.
type RecordingPublisher struct {
	mu    sync.Mutex
	Packs []*pubsub.Pack
}

func (p *RecordingPublisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Packs = append(p.Packs, pack)
	return nil
}

func (p *RecordingPublisher) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Packs)
}
