package repository

import (
	"context"
	"sync"

	"goshorturl/models"

	gocache "github.com/patrickmn/go-cache"
)

// NewInMemoryRepo returns a process-local store. Nothing survives a restart
// and items never expire.
func NewInMemoryRepo() Repository {
	return &inMemory{
		engine: gocache.New(gocache.NoExpiration, 0),
	}
}

type inMemory struct {
	mu     sync.Mutex
	engine *gocache.Cache
}

func (i *inMemory) Upsert(ctx context.Context, link *models.ShortLink) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.engine.Set(link.ID, *link, gocache.NoExpiration)
	return nil
}

func (i *inMemory) Get(ctx context.Context, id string) (*models.ShortLink, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.get(id)
}

func (i *inMemory) get(id string) (*models.ShortLink, error) {
	data, found := i.engine.Get(id)
	if !found {
		return nil, ErrRecordNotFound
	}
	link, ok := data.(models.ShortLink)
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &link, nil
}

func (i *inMemory) IncrementClicks(ctx context.Context, id string) (*models.ShortLink, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	link, err := i.get(id)
	if err != nil {
		return nil, err
	}
	link.Clicks++
	i.engine.Set(id, *link, gocache.NoExpiration)
	return link, nil
}
