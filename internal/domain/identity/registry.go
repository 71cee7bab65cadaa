package identity

import (
	"context"

	"github.com/fabos/server/internal/domain/shared"
	"github.com/google/uuid"
)

// TenantRegistry exposes the lookups signup conflict resolution needs.
// Implementations return (nil, nil) when no tenant matches.
type TenantRegistry interface {
	// FindByEmail finds the workspace whose admin registered the email
	FindByEmail(ctx context.Context, email string) (*ExistingTenantInfo, error)

	// FindByCompanyCode finds the workspace registered under the code
	FindByCompanyCode(ctx context.Context, code string) (*ExistingTenantInfo, error)

	// FindByDomain returns all workspaces registered under the email domain,
	// newest first
	FindByDomain(ctx context.Context, domain string) (DomainAnalysisResult, error)
}

// TenantRepository defines the interface for tenant persistence
type TenantRepository interface {
	// FindByID finds a tenant by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)

	// FindByCode finds a tenant by its workspace code
	FindByCode(ctx context.Context, code string) (*Tenant, error)

	// FindAll returns tenants matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Tenant, error)

	// Save creates or updates a tenant
	Save(ctx context.Context, tenant *Tenant) error

	// Delete deletes a tenant
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email across all tenants
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error
}

// LicenseRepository defines the interface for product license persistence
type LicenseRepository interface {
	// FindByTenant returns all licenses held by a tenant
	FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]ProductLicense, error)

	// Save creates or updates a license
	Save(ctx context.Context, license *ProductLicense) error
}
