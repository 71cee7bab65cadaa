package identity

import (
	"context"
	"strings"
	"time"

	"github.com/fabos/server/internal/domain/identity"
	"github.com/fabos/server/internal/domain/shared"
	"go.uber.org/zap"
)

// Idempotent creation results are kept long enough for a client to retry a
// timed-out request.
const idempotencyTTL = 24 * time.Hour

// IdempotencyStore remembers signup outcomes by client-supplied key so a
// retried request returns the original result instead of a conflict.
type IdempotencyStore interface {
	// Get returns the stored result for the key, or nil when absent
	Get(ctx context.Context, key string) (*identity.TenantCreationResult, error)

	// Set stores the result under the key for the given TTL
	Set(ctx context.Context, key string, result identity.TenantCreationResult, ttl time.Duration) error
}

// SignupService handles workspace signup validation and provisioning
type SignupService struct {
	resolver       *identity.ConflictResolver
	scope          TransactionScope
	idempotency    IdempotencyStore
	idempotencyTTL time.Duration
	baseDomain     string
	logger         *zap.Logger
}

// NewSignupService creates a new signup service. The idempotency store is
// optional; without one every create call is processed fresh.
func NewSignupService(registry identity.TenantRegistry, scope TransactionScope, idempotency IdempotencyStore, logger *zap.Logger) *SignupService {
	return &SignupService{
		resolver:       identity.NewConflictResolver(registry),
		scope:          scope,
		idempotency:    idempotency,
		idempotencyTTL: idempotencyTTL,
		logger:         logger,
	}
}

// SetIdempotencyTTL overrides how long creation outcomes stay replayable
func (s *SignupService) SetIdempotencyTTL(ttl time.Duration) {
	if ttl > 0 {
		s.idempotencyTTL = ttl
	}
}

// SetWorkspaceBaseDomain makes redirect URLs absolute on the given domain.
// Without it redirect URLs are workspace-relative paths.
func (s *SignupService) SetWorkspaceBaseDomain(domain string) {
	s.baseDomain = strings.TrimSpace(domain)
}

// Validate classifies a signup request against the existing tenants
func (s *SignupService) Validate(ctx context.Context, request identity.SignupRequest) (*identity.SignupValidationResult, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	result, err := s.resolver.Validate(ctx, request)
	if err != nil {
		s.logger.Error("Signup validation failed",
			zap.String("email", request.Email),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to validate signup")
	}

	s.logger.Info("Signup validated",
		zap.String("email", request.Email),
		zap.String("company_code", request.CompanyCode),
		zap.String("conflict_type", result.ConflictType.String()),
		zap.Bool("is_valid", result.IsValid))

	return &result, nil
}

// SuggestCodes generates available alternatives for a taken workspace code
func (s *SignupService) SuggestCodes(ctx context.Context, code string) ([]string, error) {
	if err := identity.ValidateCompanyCode(strings.ToLower(strings.TrimSpace(code))); err != nil {
		return nil, err
	}

	suggestions, err := s.resolver.SuggestCodes(ctx, code)
	if err != nil {
		s.logger.Error("Failed to generate code suggestions", zap.String("code", code), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate suggestions")
	}
	return suggestions, nil
}

// CreateTenantOutcome is the result of a provisioning attempt. When the
// request failed validation, Validation carries the conflict details and
// Creation.Success is false.
type CreateTenantOutcome struct {
	Creation   identity.TenantCreationResult    `json:"creation"`
	Validation *identity.SignupValidationResult `json:"validation,omitempty"`
}

// CreateTenant provisions a new workspace: the tenant, its admin user and
// its default module licenses, written in one transaction. Uniqueness is
// re-checked inside the transaction; a registry change between validation
// and creation surfaces as a conflict instead of a duplicate workspace.
func (s *SignupService) CreateTenant(ctx context.Context, request identity.SignupRequest, idempotencyKey string) (*CreateTenantOutcome, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	if idempotencyKey != "" && s.idempotency != nil {
		cached, err := s.idempotency.Get(ctx, idempotencyKey)
		if err != nil {
			s.logger.Warn("Idempotency lookup failed", zap.Error(err))
		} else if cached != nil {
			s.logger.Info("Returning cached signup result",
				zap.String("idempotency_key", idempotencyKey),
				zap.String("tenant_slug", cached.TenantSlug))
			return &CreateTenantOutcome{Creation: *cached}, nil
		}
	}

	// Pre-validate so soft conflicts surface with suggestions. A forced
	// request skips this and relies on the hard checks below.
	if !request.ForceCreateSeparate {
		validation, err := s.resolver.Validate(ctx, request)
		if err != nil {
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to validate signup")
		}
		if !validation.IsValid {
			return &CreateTenantOutcome{
				Creation:   identity.TenantCreationResult{Success: false, ErrorMessage: validation.Message},
				Validation: &validation,
			}, nil
		}
	}

	code, err := request.ResolveCompanyCode()
	if err != nil {
		if domainErr, ok := err.(*shared.DomainError); ok {
			return nil, domainErr
		}
		return nil, shared.NewDomainError("INVALID_CODE", "Failed to derive a workspace code")
	}
	email := strings.ToLower(strings.TrimSpace(request.Email))

	var creation identity.TenantCreationResult
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		// Write-time re-check of the hard conflicts. These hold even for
		// forced requests.
		if existing, err := repos.Registry().FindByEmail(ctx, email); err != nil {
			return err
		} else if existing != nil {
			return shared.ErrConflict
		}
		if existing, err := repos.Registry().FindByCompanyCode(ctx, code); err != nil {
			return err
		} else if existing != nil {
			return shared.ErrConflict
		}

		tenant, err := identity.NewTenant(code, request.CompanyName, email)
		if err != nil {
			return err
		}
		if err := repos.TenantRepo().Save(ctx, tenant); err != nil {
			return err
		}

		admin, err := identity.NewAdminUser(tenant.ID, email, request.FirstName, request.LastName, request.Password)
		if err != nil {
			return err
		}
		if err := repos.UserRepo().Save(ctx, admin); err != nil {
			return err
		}

		for _, license := range identity.DefaultLicenses(tenant.ID, admin.ID) {
			license := license
			if err := repos.LicenseRepo().Save(ctx, &license); err != nil {
				return err
			}
		}

		redirectURL := tenant.WelcomePath()
		if s.baseDomain != "" {
			redirectURL = "https://" + s.baseDomain + redirectURL
		}

		creation = identity.TenantCreationResult{
			Success:     true,
			TenantID:    tenant.ID.String(),
			TenantSlug:  tenant.Code,
			CompanyName: tenant.Name,
			RedirectURL: redirectURL,
		}
		return nil
	})
	if err != nil {
		if err == shared.ErrConflict {
			s.logger.Warn("Signup lost race with concurrent registration",
				zap.String("email", email),
				zap.String("company_code", code))
			return nil, shared.NewDomainError(shared.ErrConflict.Code,
				"This email or company code was just registered. Please validate again.")
		}
		if domainErr, ok := err.(*shared.DomainError); ok {
			return nil, domainErr
		}
		s.logger.Error("Failed to create tenant", zap.String("email", email), zap.Error(err))
		return &CreateTenantOutcome{
			Creation: identity.TenantCreationResult{
				Success:      false,
				ErrorMessage: "Failed to create workspace. Please try again or contact support.",
			},
		}, nil
	}

	s.logger.Info("Tenant created",
		zap.String("tenant_id", creation.TenantID),
		zap.String("tenant_slug", creation.TenantSlug),
		zap.String("admin_email", email))

	if idempotencyKey != "" && s.idempotency != nil {
		if err := s.idempotency.Set(ctx, idempotencyKey, creation, s.idempotencyTTL); err != nil {
			s.logger.Warn("Failed to store idempotency result", zap.Error(err))
		}
	}

	return &CreateTenantOutcome{Creation: creation}, nil
}
