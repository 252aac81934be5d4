package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/validalex/draft-backend/internal/entity"
)

// FileMemory is an ephemeral blob store for exported documents.
type FileMemory struct {
	store *cache.Cache
}

func NewFileMemory(ttl time.Duration) *FileMemory {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &FileMemory{store: cache.New(ttl, ttl)}
}

func (r *FileMemory) Put(ctx context.Context, file *entity.StoredFile) error {
	if file.Name == "" {
		return fmt.Errorf("%w: file name", entity.ErrMissingField)
	}
	r.store.Set(file.Name, *file, cache.DefaultExpiration)
	return nil
}

func (r *FileMemory) Get(ctx context.Context, name string) (*entity.StoredFile, error) {
	v, ok := r.store.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrFileNotFound, name)
	}
	file := v.(entity.StoredFile)
	return &file, nil
}
