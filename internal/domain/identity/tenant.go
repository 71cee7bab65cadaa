package identity

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/fabos/server/internal/domain/shared"
	"github.com/google/uuid"
)

// TenantStatus represents the status of a tenant
type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusInactive  TenantStatus = "inactive"
	TenantStatusSuspended TenantStatus = "suspended" // Suspended due to payment/violation issues
)

// SubscriptionLevel represents the subscription tier of a tenant
type SubscriptionLevel string

const (
	SubscriptionStandard     SubscriptionLevel = "Standard"
	SubscriptionProfessional SubscriptionLevel = "Professional"
	SubscriptionEnterprise   SubscriptionLevel = "Enterprise"
)

// Company codes are used in URLs and subdomains, so they are restricted to
// lowercase letters, digits and hyphens.
var companyCodePattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// Tenant represents an isolated customer workspace in the multi-tenant
// system. It is the aggregate root for tenant-related operations.
type Tenant struct {
	shared.BaseAggregateRoot
	Code              string            `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name              string            `gorm:"type:varchar(200);not null"`
	ShortName         string            `gorm:"type:varchar(50)"`
	Status            TenantStatus      `gorm:"type:varchar(20);not null;default:'active'"`
	SubscriptionLevel SubscriptionLevel `gorm:"type:varchar(20);not null;default:'Standard'"`
	MaxUsers          int               `gorm:"not null;default:10"`
	AdminEmail        string            `gorm:"type:varchar(200);not null"`
	EmailDomain       string            `gorm:"type:varchar(200);not null;index"` // domain part of AdminEmail
	Notes             string            `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Tenant) TableName() string {
	return "tenants"
}

// NewTenant creates a new active tenant with required fields
func NewTenant(code, name, adminEmail string) (*Tenant, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if err := ValidateCompanyCode(code); err != nil {
		return nil, err
	}
	if err := validateTenantName(name); err != nil {
		return nil, err
	}
	domain, err := EmailDomain(adminEmail)
	if err != nil {
		return nil, err
	}

	shortName := name
	if len(shortName) > 50 {
		shortName = shortName[:50]
	}

	tenant := &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		ShortName:         shortName,
		Status:            TenantStatusActive,
		SubscriptionLevel: SubscriptionStandard,
		MaxUsers:          10,
		AdminEmail:        strings.ToLower(strings.TrimSpace(adminEmail)),
		EmailDomain:       domain,
	}

	tenant.AddDomainEvent(NewTenantCreatedEvent(tenant))

	return tenant, nil
}

// BaseURL returns the workspace URL on the shared product domain
func (t *Tenant) BaseURL() string {
	return WorkspaceURL(t.Code)
}

// LoginPath returns the tenant-scoped sign-in path
func (t *Tenant) LoginPath() string {
	return fmt.Sprintf("/%s/login", t.Code)
}

// RequestAccessPath returns the path where users ask to join the workspace
func (t *Tenant) RequestAccessPath() string {
	return fmt.Sprintf("/%s/request-access", t.Code)
}

// WelcomePath returns the landing path after workspace creation
func (t *Tenant) WelcomePath() string {
	return fmt.Sprintf("/%s/welcome", t.Code)
}

// Activate activates the tenant
func (t *Tenant) Activate() error {
	if t.Status == TenantStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Tenant is already active")
	}

	oldStatus := t.Status
	t.Status = TenantStatusActive
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantStatusChangedEvent(t, oldStatus, TenantStatusActive))

	return nil
}

// Deactivate deactivates the tenant
func (t *Tenant) Deactivate() error {
	if t.Status == TenantStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Tenant is already inactive")
	}

	oldStatus := t.Status
	t.Status = TenantStatusInactive
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantStatusChangedEvent(t, oldStatus, TenantStatusInactive))

	return nil
}

// Suspend suspends the tenant (e.g., due to payment issues)
func (t *Tenant) Suspend() error {
	if t.Status == TenantStatusSuspended {
		return shared.NewDomainError("ALREADY_SUSPENDED", "Tenant is already suspended")
	}

	oldStatus := t.Status
	t.Status = TenantStatusSuspended
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantStatusChangedEvent(t, oldStatus, TenantStatusSuspended))

	return nil
}

// IsActive returns true if the tenant is active
func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}

// CanAddUser returns true if the tenant can add more users
func (t *Tenant) CanAddUser(currentUserCount int) bool {
	return currentUserCount < t.MaxUsers
}

// WorkspaceURL returns the public URL for a workspace code
func WorkspaceURL(code string) string {
	return fmt.Sprintf("https://%s.fab-os.com", code)
}

// GenerateCompanyCode derives a URL-safe workspace code from a company name
func GenerateCompanyCode(companyName string) (string, error) {
	if strings.TrimSpace(companyName) == "" {
		return "", shared.NewDomainError("INVALID_NAME", "Company name cannot be empty")
	}

	code := strings.ToLower(companyName)
	code = strings.ReplaceAll(code, " & ", "-and-")
	code = strings.ReplaceAll(code, "&", "-and-")
	code = strings.ReplaceAll(code, " ", "-")
	code = strings.ReplaceAll(code, "_", "-")

	var b strings.Builder
	for _, r := range code {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	code = b.String()

	for strings.Contains(code, "--") {
		code = strings.ReplaceAll(code, "--", "-")
	}
	code = strings.Trim(code, "-")

	if len(code) < 2 {
		code = fmt.Sprintf("%s-%s", code, uuid.NewString()[:8])
		code = strings.Trim(code, "-")
	}
	if len(code) > 50 {
		code = strings.TrimRight(code[:50], "-")
	}

	return code, nil
}

// ValidateCompanyCode checks that a workspace code is well formed
func ValidateCompanyCode(code string) error {
	if len(code) < 2 {
		return shared.NewDomainError("INVALID_CODE", "Company code must be at least 2 characters")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Company code cannot exceed 50 characters")
	}
	if !companyCodePattern.MatchString(code) {
		return shared.NewDomainError("INVALID_CODE", "Company code must contain only lowercase letters, numbers, and hyphens")
	}
	return nil
}

// EmailDomain extracts the lowercased domain part of an email address
func EmailDomain(email string) (string, error) {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", shared.NewDomainError("INVALID_EMAIL", "Email address is not valid")
	}
	return strings.ToLower(email[at+1:]), nil
}

func validateTenantName(name string) error {
	if len(name) < 2 {
		return shared.NewDomainError("INVALID_NAME", "Company name must be at least 2 characters")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Company name cannot exceed 200 characters")
	}
	return nil
}
