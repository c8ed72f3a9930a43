package usecase

import (
	"context"
	"time"
)

type StatsCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	InvalidateStatistics(ctx context.Context) error
}
