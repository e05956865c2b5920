package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/neuralplan/internal/domain"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// KVStore is a string-keyed blob store. It satisfies engagement.Store.
type KVStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type PlanRepo interface {
	Create(ctx context.Context, p *domain.PlanRecord) error
	GetByID(ctx context.Context, id string) (*domain.PlanRecord, error)
	Latest(ctx context.Context) (*domain.PlanRecord, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.PlanRecord, error)
	PruneKeepingLatest(ctx context.Context, keep int) (int, error)
}
