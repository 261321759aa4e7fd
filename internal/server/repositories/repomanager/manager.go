// Package repomanager opens the configured storage backend and vends its
// entries repository.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/echojournal/internal/server/config"
	"github.com/dmitrijs2005/echojournal/internal/server/repositories/entries"
)

// RepositoryManager owns a backend connection.
type RepositoryManager interface {
	// RunMigrations brings the backend schema up to date, where it has one.
	RunMigrations(ctx context.Context) error
	Entries() entries.Repository
	Close() error
}

// New opens the backend selected by cfg.Store.
func New(ctx context.Context, cfg *config.Config) (RepositoryManager, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return NewMemoryRepositoryManager(), nil
	case config.StorePostgres:
		return NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	case config.StoreFirestore:
		return NewFirestoreRepositoryManager(ctx, cfg.FirestoreProject, cfg.FirestoreCollection, cfg.FirestoreCredentials)
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

// MemoryRepositoryManager serves an in-process store.
type MemoryRepositoryManager struct {
	repo *entries.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{repo: entries.NewMemoryRepository()}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }
func (m *MemoryRepositoryManager) Entries() entries.Repository       { return m.repo }
func (m *MemoryRepositoryManager) Close() error                      { return nil }
