package identity

import (
	"context"

	"github.com/fabos/server/internal/domain/identity"
)

// TransactionScope provides transactional access to identity repositories.
// Workspace provisioning writes the tenant, its admin user and its default
// licenses; all writes must land in the same database transaction. The
// registry is also exposed so uniqueness can be re-checked at write time,
// closing the gap between validation and creation.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to identity repositories within
// a transaction
type TransactionalRepositories interface {
	// TenantRepo returns the tenant repository scoped to the current transaction
	TenantRepo() identity.TenantRepository
	// UserRepo returns the user repository scoped to the current transaction
	UserRepo() identity.UserRepository
	// LicenseRepo returns the license repository scoped to the current transaction
	LicenseRepo() identity.LicenseRepository
	// Registry returns the tenant registry scoped to the current transaction
	Registry() identity.TenantRegistry
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for tests.
type NoOpTransactionScope struct {
	tenantRepo  identity.TenantRepository
	userRepo    identity.UserRepository
	licenseRepo identity.LicenseRepository
	registry    identity.TenantRegistry
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given
// repositories
func NewNoOpTransactionScope(
	tenantRepo identity.TenantRepository,
	userRepo identity.UserRepository,
	licenseRepo identity.LicenseRepository,
	registry identity.TenantRegistry,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		tenantRepo:  tenantRepo,
		userRepo:    userRepo,
		licenseRepo: licenseRepo,
		registry:    registry,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// TenantRepo returns the tenant repository
func (s *NoOpTransactionScope) TenantRepo() identity.TenantRepository {
	return s.tenantRepo
}

// UserRepo returns the user repository
func (s *NoOpTransactionScope) UserRepo() identity.UserRepository {
	return s.userRepo
}

// LicenseRepo returns the license repository
func (s *NoOpTransactionScope) LicenseRepo() identity.LicenseRepository {
	return s.licenseRepo
}

// Registry returns the tenant registry
func (s *NoOpTransactionScope) Registry() identity.TenantRegistry {
	return s.registry
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
