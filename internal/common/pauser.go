package common

import (
	"context"
	"fmt"

	"github.com/questdrop/backend/pkg/xredis"
)

const pauseKey = "platform:paused"

// Pauser is the platform-wide emergency stop. Only new submissions check the
// flag, in-flight verifications and payouts are allowed to finish.
type Pauser struct {
	redisClient xredis.Client
}

func NewPauser(redisClient xredis.Client) *Pauser {
	return &Pauser{redisClient: redisClient}
}

func (p *Pauser) Pause(ctx context.Context) error {
	if err := p.redisClient.Set(ctx, pauseKey, "1"); err != nil {
		return fmt.Errorf("set pause flag: %w", err)
	}

	return nil
}

func (p *Pauser) Unpause(ctx context.Context) error {
	if err := p.redisClient.Del(ctx, pauseKey); err != nil {
		return fmt.Errorf("del pause flag: %w", err)
	}

	return nil
}

func (p *Pauser) IsPaused(ctx context.Context) (bool, error) {
	return p.redisClient.Exist(ctx, pauseKey)
}
