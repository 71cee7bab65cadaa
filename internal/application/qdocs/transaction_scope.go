package qdocs

import (
	"context"

	"github.com/fabos/server/internal/domain/qdocs"
)

// TransactionScope provides transactional access to revision repositories.
// A status change updates the revision and appends its audit entry; both
// writes must land in the same database transaction so the audit trail never
// diverges from the revision state.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to revision repositories within
// a transaction
type TransactionalRepositories interface {
	// RevisionRepo returns the revision repository scoped to the current
	// transaction
	RevisionRepo() qdocs.Repository
	// TransitionRecorder returns the audit recorder scoped to the current
	// transaction
	TransitionRecorder() qdocs.TransitionRecorder
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for tests.
type NoOpTransactionScope struct {
	revisionRepo qdocs.Repository
	recorder     qdocs.TransitionRecorder
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given
// repositories
func NewNoOpTransactionScope(revisionRepo qdocs.Repository, recorder qdocs.TransitionRecorder) *NoOpTransactionScope {
	return &NoOpTransactionScope{revisionRepo: revisionRepo, recorder: recorder}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// RevisionRepo returns the revision repository
func (s *NoOpTransactionScope) RevisionRepo() qdocs.Repository {
	return s.revisionRepo
}

// TransitionRecorder returns the audit recorder
func (s *NoOpTransactionScope) TransitionRecorder() qdocs.TransitionRecorder {
	return s.recorder
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
