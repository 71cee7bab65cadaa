package persistence

import (
	"context"

	appidentity "github.com/fabos/server/internal/application/identity"
	"github.com/fabos/server/internal/domain/identity"
	"gorm.io/gorm"
)

// GormIdentityTransactionScope implements the identity TransactionScope using
// GORM transactions. Workspace provisioning writes the tenant, the admin user
// and the default licenses atomically; the registry rides the same
// transaction so uniqueness is re-checked against committed state at write
// time.
type GormIdentityTransactionScope struct {
	db *gorm.DB
}

// NewGormIdentityTransactionScope creates a new GormIdentityTransactionScope
func NewGormIdentityTransactionScope(db *gorm.DB) *GormIdentityTransactionScope {
	return &GormIdentityTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormIdentityTransactionScope) Execute(ctx context.Context, fn func(repos appidentity.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormIdentityRepositories{tx: tx})
	})
}

type gormIdentityRepositories struct {
	tx *gorm.DB
}

// TenantRepo returns the tenant repository scoped to the current transaction
func (r *gormIdentityRepositories) TenantRepo() identity.TenantRepository {
	return NewGormTenantRepository(r.tx)
}

// UserRepo returns the user repository scoped to the current transaction
func (r *gormIdentityRepositories) UserRepo() identity.UserRepository {
	return NewGormUserRepository(r.tx)
}

// LicenseRepo returns the license repository scoped to the current transaction
func (r *gormIdentityRepositories) LicenseRepo() identity.LicenseRepository {
	return NewGormLicenseRepository(r.tx)
}

// Registry returns the tenant registry scoped to the current transaction
func (r *gormIdentityRepositories) Registry() identity.TenantRegistry {
	return NewGormTenantRegistry(r.tx)
}

var _ appidentity.TransactionScope = (*GormIdentityTransactionScope)(nil)
var _ appidentity.TransactionalRepositories = (*gormIdentityRepositories)(nil)
