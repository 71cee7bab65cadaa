package calibration

import (
	"context"

	"github.com/fabos/server/internal/domain/calibration"
)

// TransactionScope provides transactional access to calibration repositories.
// Activating a calibration deactivates the previous one and inserts the new
// one; both writes must land in the same database transaction to keep the
// single-active-calibration invariant under concurrent requests.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to calibration repositories
// within a transaction
type TransactionalRepositories interface {
	// CalibrationRepo returns the calibration repository scoped to the
	// current transaction
	CalibrationRepo() calibration.Repository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for tests.
type NoOpTransactionScope struct {
	calibrationRepo calibration.Repository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over a repository
func NewNoOpTransactionScope(repo calibration.Repository) *NoOpTransactionScope {
	return &NoOpTransactionScope{calibrationRepo: repo}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// CalibrationRepo returns the calibration repository
func (s *NoOpTransactionScope) CalibrationRepo() calibration.Repository {
	return s.calibrationRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
