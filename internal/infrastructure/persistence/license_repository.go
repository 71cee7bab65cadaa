package persistence

import (
	"context"
	"fmt"

	"github.com/fabos/server/internal/domain/identity"
	"github.com/fabos/server/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormLicenseRepository implements identity.LicenseRepository using GORM
type GormLicenseRepository struct {
	db *gorm.DB
}

// NewGormLicenseRepository creates a new GormLicenseRepository
func NewGormLicenseRepository(db *gorm.DB) *GormLicenseRepository {
	return &GormLicenseRepository{db: db}
}

// FindByTenant returns all licenses held by a tenant
func (r *GormLicenseRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]identity.ProductLicense, error) {
	var licenses []identity.ProductLicense
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Order("product_name ASC").
		Find(&licenses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list licenses: %w", err)
	}
	return licenses, nil
}

// Save creates or updates a license
func (r *GormLicenseRepository) Save(ctx context.Context, license *identity.ProductLicense) error {
	if err := r.db.WithContext(ctx).Save(license).Error; err != nil {
		return fmt.Errorf("failed to save license: %w", err)
	}
	return nil
}

var _ identity.LicenseRepository = (*GormLicenseRepository)(nil)
