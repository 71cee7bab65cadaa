package persistence

import (
	"context"

	appqdocs "github.com/fabos/server/internal/application/qdocs"
	"github.com/fabos/server/internal/domain/qdocs"
	"gorm.io/gorm"
)

// GormRevisionTransactionScope implements the qdocs TransactionScope using
// GORM transactions. A status change saves the revision and appends its audit
// entry atomically.
type GormRevisionTransactionScope struct {
	db *gorm.DB
}

// NewGormRevisionTransactionScope creates a new GormRevisionTransactionScope
func NewGormRevisionTransactionScope(db *gorm.DB) *GormRevisionTransactionScope {
	return &GormRevisionTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormRevisionTransactionScope) Execute(ctx context.Context, fn func(repos appqdocs.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRevisionRepositories{tx: tx})
	})
}

type gormRevisionRepositories struct {
	tx *gorm.DB
}

// RevisionRepo returns the revision repository scoped to the current transaction
func (r *gormRevisionRepositories) RevisionRepo() qdocs.Repository {
	return NewGormRevisionRepository(r.tx)
}

// TransitionRecorder returns the audit recorder scoped to the current transaction
func (r *gormRevisionRepositories) TransitionRecorder() qdocs.TransitionRecorder {
	return NewGormTransitionRecorder(r.tx)
}

var _ appqdocs.TransactionScope = (*GormRevisionTransactionScope)(nil)
var _ appqdocs.TransactionalRepositories = (*gormRevisionRepositories)(nil)
