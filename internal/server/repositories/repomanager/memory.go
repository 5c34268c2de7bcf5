package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/authkeeper/internal/dbx"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/revokedtokens"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/users"
)

// MemoryRepositoryManager hands out process-local repositories. The db
// argument is ignored and every call returns the same instance.
type MemoryRepositoryManager struct {
	users   *users.MemoryRepository
	revoked *revokedtokens.MemoryRepository
}

func NewMemoryRepositoryManager() RepositoryManager {
	return &MemoryRepositoryManager{
		users:   users.NewMemoryRepository(),
		revoked: revokedtokens.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return m.users
}

func (m *MemoryRepositoryManager) RevokedTokens(dbx.DBTX) revokedtokens.Repository {
	return m.revoked
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}
