package storage

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeon/internal/config"
	"github.com/cory-johannsen/dungeon/internal/storage/postgres"
	"github.com/cory-johannsen/dungeon/internal/storage/sqlite"
)

// backend is a save-slot store that reports a missing slot with its own
// sentinel.
type backend interface {
	Save(ctx context.Context, slot string, blob []byte) error
	Load(ctx context.Context, slot string) ([]byte, error)
	Delete(ctx context.Context, slot string) error
}

// adapted maps a backend's missing-slot sentinel to ErrSaveNotFound.
type adapted struct {
	backend
	notFound error
	close    func() error
}

func (a adapted) Load(ctx context.Context, slot string) ([]byte, error) {
	blob, err := a.backend.Load(ctx, slot)
	if errors.Is(err, a.notFound) {
		return nil, ErrSaveNotFound
	}
	return blob, err
}

func (a adapted) Close() error { return a.close() }

// Open returns the Store selected by cfg.Backend.
//
// Precondition: cfg passed config validation.
// Postcondition: the caller owns the Store and must Close it.
func Open(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (Store, error) {
	switch cfg.Backend {
	case config.BackendFile:
		logger.Debug("opening file store", zap.String("dir", cfg.Dir))
		return NewFileStore(cfg.Dir)
	case config.BackendSQLite:
		logger.Debug("opening sqlite store", zap.String("path", cfg.SQLitePath))
		s, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return adapted{backend: s, notFound: sqlite.ErrSaveNotFound, close: s.Close}, nil
	case config.BackendPostgres:
		logger.Debug("opening postgres store", zap.String("host", cfg.Database.Host))
		pool, err := postgres.Connect(ctx, cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		if err := pool.Migrate(); err != nil {
			pool.Close()
			return nil, err
		}
		repo := postgres.NewSaveRepository(pool.DB())
		return adapted{backend: repo, notFound: postgres.ErrSaveNotFound, close: func() error {
			pool.Close()
			return nil
		}}, nil
	}
	return nil, fmt.Errorf("storage: unknown backend %q", cfg.Backend)
}
