// Package tenant provides multi-tenant scoping helpers for GORM.
//
// Every workspace-owned table carries a tenant_id column. Repositories apply
// Scope to keep queries inside one workspace; ScopeFromContext derives the
// workspace from the request context populated by the auth middleware.
package tenant

import (
	"context"
	"errors"

	"github.com/fabos/server/internal/infrastructure/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrTenantRequired is returned when no tenant ID is present in the context
var ErrTenantRequired = errors.New("tenant id is required but not found in context")

// ErrInvalidTenantID is returned when the tenant ID in the context is not a UUID
var ErrInvalidTenantID = errors.New("invalid tenant id format")

// Scope restricts a query to rows owned by the given workspace
func Scope(tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tenantID)
	}
}

// FromContext extracts the tenant ID the auth middleware stored in the context
func FromContext(ctx context.Context) (uuid.UUID, error) {
	raw := logger.GetTenantID(ctx)
	if raw == "" {
		return uuid.Nil, ErrTenantRequired
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrInvalidTenantID
	}
	return id, nil
}

// ScopeFromContext builds a tenant scope from the request context. The query
// fails with ErrTenantRequired when the context carries no tenant.
func ScopeFromContext(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		id, err := FromContext(ctx)
		if err != nil {
			_ = db.AddError(err)
			return db
		}
		return db.Where("tenant_id = ?", id)
	}
}
