package testutil

import (
	"context"

	"github.com/questdrop/backend/pkg/pubsub"
)

type MockPublisher struct {
	PublishFunc func(ctx context.Context, topic string, pack *pubsub.Pack) error
	StopFunc    func(ctx context.Context) error
}

func (p *MockPublisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	if p.PublishFunc != nil {
		return p.PublishFunc(ctx, topic, pack)
	}

	return nil
}

func (p *MockPublisher) Stop(ctx context.Context) error {
	if p.StopFunc != nil {
		return p.StopFunc(ctx)
	}

	return nil
}
