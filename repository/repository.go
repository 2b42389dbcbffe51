package repository

import (
	"context"
	"errors"
	"fmt"

	"goshorturl/config"
	"goshorturl/models"
)

const (
	BackendCosmos   = "cosmos"
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrUnknownBackend = errors.New("unknown store backend")
)

// Repository is the document store seen by the handlers.
type Repository interface {
	// Upsert creates the link or replaces the one stored under the same ID.
	Upsert(ctx context.Context, link *models.ShortLink) error
	// Get returns ErrRecordNotFound if id is not stored.
	Get(ctx context.Context, id string) (*models.ShortLink, error)
}

// ClickIncrementer is implemented by backends that can bump the click counter
// in a single atomic operation, avoiding the lost update of a
// Get/modify/Upsert sequence.
type ClickIncrementer interface {
	IncrementClicks(ctx context.Context, id string) (*models.ShortLink, error)
}

// UnimplementedRepository can be embedded to satisfy Repository in tests.
type UnimplementedRepository struct{}

func (UnimplementedRepository) Upsert(ctx context.Context, link *models.ShortLink) error {
	return nil
}

func (UnimplementedRepository) Get(ctx context.Context, id string) (*models.ShortLink, error) {
	return nil, ErrRecordNotFound
}

// Open connects to the named backend. dbName and container select the
// database and the container (collection, table or key namespace) inside it.
func Open(ctx context.Context, backend string, creds config.Credentials, dbName, container string) (Repository, error) {
	switch backend {
	case BackendCosmos:
		return NewCosmosRepo(creds.Endpoint, creds.Key, dbName, container)
	case BackendMongo:
		return NewMongoRepo(ctx, creds.Endpoint, creds.Key, dbName, container)
	case BackendPostgres:
		return NewPGRepo(creds.Endpoint, creds.Key, container)
	case BackendRedis:
		return NewRedisRepo(creds.Endpoint, creds.Key, dbName, container), nil
	case BackendMemory:
		return NewInMemoryRepo(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}
