package identity

import (
	"strings"
	"time"

	"github.com/fabos/server/internal/domain/shared"
	"github.com/google/uuid"
)

// ConflictType classifies why a signup cannot proceed as requested
type ConflictType string

const (
	ConflictNone              ConflictType = "None"
	ConflictEmailExists       ConflictType = "EmailExists"
	ConflictCompanyCodeExists ConflictType = "CompanyCodeExists"
	ConflictDomainExists      ConflictType = "DomainExists"
)

// IsValid checks if the ConflictType is a valid value
func (c ConflictType) IsValid() bool {
	switch c {
	case ConflictNone, ConflictEmailExists, ConflictCompanyCodeExists, ConflictDomainExists:
		return true
	}
	return false
}

// String returns the string representation of ConflictType
func (c ConflictType) String() string {
	return string(c)
}

// Suggested action types
const (
	ActionSignIn           = "SignIn"
	ActionSupport          = "Support"
	ActionJoinExisting     = "JoinExisting"
	ActionCreateSeparate   = "CreateSeparate"
	ActionUseSuggestedCode = "UseSuggestedCode"
)

// SuggestedAction is one remediation option offered for a signup conflict
type SuggestedAction struct {
	Type      string `json:"type"`
	Text      string `json:"text"`
	URL       string `json:"url"`
	IsPrimary bool   `json:"is_primary"`
}

// SignupRequest is the immutable input to signup validation and workspace
// creation
type SignupRequest struct {
	Email               string   `json:"email" binding:"required,email"`
	CompanyName         string   `json:"company_name" binding:"required"`
	CompanyCode         string   `json:"company_code" binding:"omitempty,company_code"`
	FirstName           string   `json:"first_name" binding:"required"`
	LastName            string   `json:"last_name" binding:"required"`
	Password            string   `json:"password" binding:"required"`
	SelectedModules     []string `json:"selected_modules"`
	ForceCreateSeparate bool     `json:"force_create_separate"`
}

// Validate checks the structural constraints of a signup request
func (r SignupRequest) Validate() error {
	if _, err := EmailDomain(r.Email); err != nil {
		return err
	}
	if err := validateTenantName(r.CompanyName); err != nil {
		return err
	}
	if code := strings.ToLower(strings.TrimSpace(r.CompanyCode)); code != "" {
		if err := ValidateCompanyCode(code); err != nil {
			return err
		}
	}
	if r.FirstName == "" {
		return shared.NewDomainError("INVALID_NAME", "First name is required")
	}
	if r.LastName == "" {
		return shared.NewDomainError("INVALID_NAME", "Last name is required")
	}
	if err := validatePassword(r.Password); err != nil {
		return err
	}
	for _, module := range r.SelectedModules {
		if !ProductModule(module).IsValid() {
			return shared.NewDomainError("INVALID_MODULE", "Unrecognized product module "+module)
		}
	}
	return nil
}

// ResolveCompanyCode returns the normalized requested workspace code, or
// derives one from the company name when the request omits it.
func (r SignupRequest) ResolveCompanyCode() (string, error) {
	code := strings.ToLower(strings.TrimSpace(r.CompanyCode))
	if code == "" {
		return GenerateCompanyCode(r.CompanyName)
	}
	return code, nil
}

// ExistingTenantInfo describes a previously registered workspace returned by
// registry lookups
type ExistingTenantInfo struct {
	TenantID    uuid.UUID `json:"tenant_id"`
	CompanyName string    `json:"company_name"`
	CompanyCode string    `json:"company_code"`
	AdminEmail  string    `json:"admin_email"`
	CreatedAt   time.Time `json:"created_at"`
}

// DomainAnalysisResult aggregates the workspaces registered under one email
// domain
type DomainAnalysisResult struct {
	Domain             string               `json:"domain"`
	HasExistingTenants bool                 `json:"has_existing_tenants"`
	ExistingTenants    []ExistingTenantInfo `json:"existing_tenants"`
	TenantCount        int                  `json:"tenant_count"`
}

// SignupValidationResult is the outcome of conflict resolution for a signup
// request. Conflicts are expressed as structured data, never as errors.
type SignupValidationResult struct {
	IsValid          bool                  `json:"is_valid"`
	ConflictType     ConflictType          `json:"conflict_type"`
	Message          string                `json:"message"`
	PreviewURL       string                `json:"preview_url,omitempty"`
	ExistingTenant   *ExistingTenantInfo   `json:"existing_tenant,omitempty"`
	DomainAnalysis   *DomainAnalysisResult `json:"domain_analysis,omitempty"`
	CodeSuggestions  []string              `json:"code_suggestions,omitempty"`
	SuggestedActions []SuggestedAction     `json:"suggested_actions,omitempty"`
}

// TenantCreationResult reports the outcome of workspace provisioning
type TenantCreationResult struct {
	Success      bool   `json:"success"`
	TenantID     string `json:"tenant_id,omitempty"`
	TenantSlug   string `json:"tenant_slug,omitempty"`
	CompanyName  string `json:"company_name,omitempty"`
	RedirectURL  string `json:"redirect_url,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}
