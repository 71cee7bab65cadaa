package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/fabos/server/internal/domain/identity"
	"gorm.io/gorm"
)

// GormTenantRegistry implements identity.TenantRegistry using GORM. It backs
// signup conflict resolution, so every lookup returns an empty result rather
// than an error when nothing matches.
type GormTenantRegistry struct {
	db *gorm.DB
}

// NewGormTenantRegistry creates a new GormTenantRegistry
func NewGormTenantRegistry(db *gorm.DB) *GormTenantRegistry {
	return &GormTenantRegistry{db: db}
}

// FindByEmail finds the workspace whose admin registered the email
func (r *GormTenantRegistry) FindByEmail(ctx context.Context, email string) (*identity.ExistingTenantInfo, error) {
	var t identity.Tenant
	err := r.db.WithContext(ctx).
		Where("admin_email = LOWER(?)", email).
		Order("created_at DESC").
		First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up workspace by email: %w", err)
	}
	return existingTenantInfo(&t), nil
}

// FindByCompanyCode finds the workspace registered under the code
func (r *GormTenantRegistry) FindByCompanyCode(ctx context.Context, code string) (*identity.ExistingTenantInfo, error) {
	var t identity.Tenant
	err := r.db.WithContext(ctx).Where("code = LOWER(?)", code).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up workspace by code: %w", err)
	}
	return existingTenantInfo(&t), nil
}

// FindByDomain returns all workspaces registered under the email domain,
// newest first
func (r *GormTenantRegistry) FindByDomain(ctx context.Context, domain string) (identity.DomainAnalysisResult, error) {
	var tenants []identity.Tenant
	err := r.db.WithContext(ctx).
		Where("email_domain = LOWER(?)", domain).
		Order("created_at DESC").
		Find(&tenants).Error
	if err != nil {
		return identity.DomainAnalysisResult{}, fmt.Errorf("failed to look up workspaces by domain: %w", err)
	}

	result := identity.DomainAnalysisResult{
		Domain:             domain,
		HasExistingTenants: len(tenants) > 0,
		ExistingTenants:    make([]identity.ExistingTenantInfo, 0, len(tenants)),
		TenantCount:        len(tenants),
	}
	for i := range tenants {
		result.ExistingTenants = append(result.ExistingTenants, *existingTenantInfo(&tenants[i]))
	}
	return result, nil
}

func existingTenantInfo(t *identity.Tenant) *identity.ExistingTenantInfo {
	return &identity.ExistingTenantInfo{
		TenantID:    t.ID,
		CompanyName: t.Name,
		CompanyCode: t.Code,
		AdminEmail:  t.AdminEmail,
		CreatedAt:   t.CreatedAt,
	}
}

var _ identity.TenantRegistry = (*GormTenantRegistry)(nil)
