package ratelimit

import (
	"context"
	"time"
)

// Limiter decides whether one more request under key fits the window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type Config struct {
	Limit  int
	Window time.Duration
}

// Unlimited admits every request. It stands in when Redis is disabled.
type Unlimited struct{}

func (Unlimited) Allow(context.Context, string) (bool, error) {
	return true, nil
}
