package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ListCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type DeveloperNotifier interface {
	NotifyDeveloperChanged(action string, id, ownerID uuid.UUID)
}
