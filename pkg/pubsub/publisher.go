package pubsub

import "context"

// Pack is a single message published to a topic. Key determines partitioning
// so the downstream indexer sees events of one quest in order.
type Pack struct {
	Key []byte
	Msg []byte
}

type Publisher interface {
	Publish(ctx context.Context, topic string, pack *Pack) error
	Stop(ctx context.Context) error
}
