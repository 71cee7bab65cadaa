package identity

import (
	"time"

	"github.com/google/uuid"
)

// ProductModule identifies a licensable product module
type ProductModule string

const (
	ModuleTrace   ProductModule = "Trace"
	ModuleFabMate ProductModule = "FabMate"
	ModuleQDocs   ProductModule = "QDocs"
)

// IsValid checks if the ProductModule is a valid value
func (m ProductModule) IsValid() bool {
	switch m {
	case ModuleTrace, ModuleFabMate, ModuleQDocs:
		return true
	}
	return false
}

// String returns the string representation of ProductModule
func (m ProductModule) String() string {
	return string(m)
}

// ProductLicense grants a tenant access to one product module
type ProductLicense struct {
	ID                 uuid.UUID     `gorm:"type:uuid;primaryKey"`
	TenantID           uuid.UUID     `gorm:"type:uuid;not null;index"`
	ProductName        ProductModule `gorm:"type:varchar(50);not null"`
	LicenseType        string        `gorm:"type:varchar(50);not null;default:'Standard'"`
	IsActive           bool          `gorm:"not null;default:true"`
	ValidFrom          time.Time     `gorm:"not null"`
	ValidUntil         time.Time     `gorm:"not null"`
	MaxConcurrentUsers int           `gorm:"not null;default:10"`
	Features           string        `gorm:"type:text"` // JSON array of feature flags
	CreatedBy          uuid.UUID     `gorm:"type:uuid"`
	CreatedAt          time.Time
}

// TableName returns the table name for GORM
func (ProductLicense) TableName() string {
	return "product_licenses"
}

// IsValidNow reports whether the license is active at the given time
func (l *ProductLicense) IsValidNow(now time.Time) bool {
	return l.IsActive && !now.Before(l.ValidFrom) && now.Before(l.ValidUntil)
}

func newLicense(tenantID, createdBy uuid.UUID, module ProductModule, features string) ProductLicense {
	now := time.Now()
	return ProductLicense{
		ID:                 uuid.New(),
		TenantID:           tenantID,
		ProductName:        module,
		LicenseType:        "Standard",
		IsActive:           true,
		ValidFrom:          now,
		ValidUntil:         now.AddDate(10, 0, 0),
		MaxConcurrentUsers: 10,
		Features:           features,
		CreatedBy:          createdBy,
		CreatedAt:          now,
	}
}

// DefaultLicenses returns the module licenses every new workspace starts with
func DefaultLicenses(tenantID, createdBy uuid.UUID) []ProductLicense {
	return []ProductLicense{
		newLicense(tenantID, createdBy, ModuleTrace, `["basic-tracking","takeoffs","measurements"]`),
		newLicense(tenantID, createdBy, ModuleFabMate, `["work-orders","inventory","purchase-orders"]`),
	}
}
