package identity

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Code suggestion search is bounded: a handful of word suffixes first, then
// numeric suffixes up to this many probes.
const (
	maxCodeSuggestions  = 3
	maxNumericCodeProbe = 20
)

var codeSuffixWords = []string{"works", "ltd", "inc", "corp", "group", "team", "co"}

// ConflictResolver classifies signup conflicts against the tenant registry
// and produces actionable suggestions. Checks run in a fixed order and the
// first match wins: email, then company code, then email domain.
type ConflictResolver struct {
	registry TenantRegistry
}

// NewConflictResolver creates a resolver over the given registry
func NewConflictResolver(registry TenantRegistry) *ConflictResolver {
	return &ConflictResolver{registry: registry}
}

// Validate classifies a signup request. Conflicts come back as a structured
// result; an error is returned only when a registry lookup fails.
func (r *ConflictResolver) Validate(ctx context.Context, request SignupRequest) (SignupValidationResult, error) {
	email := strings.ToLower(strings.TrimSpace(request.Email))
	code, err := request.ResolveCompanyCode()
	if err != nil {
		return SignupValidationResult{}, err
	}

	// Step 1: exact email already registered. A hard conflict that
	// ForceCreateSeparate never bypasses.
	existing, err := r.registry.FindByEmail(ctx, email)
	if err != nil {
		return SignupValidationResult{}, err
	}
	if existing != nil {
		return SignupValidationResult{
			IsValid:        false,
			ConflictType:   ConflictEmailExists,
			Message:        fmt.Sprintf("This email is already registered for %s", existing.CompanyName),
			ExistingTenant: existing,
			SuggestedActions: []SuggestedAction{
				{
					Type:      ActionSignIn,
					Text:      "Sign in to existing account",
					URL:       fmt.Sprintf("/%s/login", existing.CompanyCode),
					IsPrimary: true,
				},
				{
					Type: ActionSupport,
					Text: "Contact support for help",
					URL:  "/support",
				},
			},
		}, nil
	}

	// Step 2: company code taken. Also a hard conflict.
	taken, err := r.registry.FindByCompanyCode(ctx, code)
	if err != nil {
		return SignupValidationResult{}, err
	}
	if taken != nil {
		suggestions, err := r.SuggestCodes(ctx, code)
		if err != nil {
			return SignupValidationResult{}, err
		}
		actions := make([]SuggestedAction, 0, 2)
		if len(suggestions) > 0 {
			actions = append(actions, SuggestedAction{
				Type:      ActionUseSuggestedCode,
				Text:      fmt.Sprintf("Use '%s' instead", suggestions[0]),
				URL:       fmt.Sprintf("/signup?code=%s", suggestions[0]),
				IsPrimary: true,
			})
		}
		actions = append(actions, SuggestedAction{
			Type: ActionSupport,
			Text: "Contact support for help",
			URL:  "/support",
		})
		return SignupValidationResult{
			IsValid:          false,
			ConflictType:     ConflictCompanyCodeExists,
			Message:          fmt.Sprintf("Company code '%s' is already taken by %s", request.CompanyCode, taken.CompanyName),
			CodeSuggestions:  suggestions,
			SuggestedActions: actions,
		}, nil
	}

	// Step 3: other workspaces share the email domain. A soft conflict the
	// requester may bypass with ForceCreateSeparate.
	if !request.ForceCreateSeparate {
		analysis, err := r.AnalyzeDomain(ctx, email)
		if err != nil {
			return SignupValidationResult{}, err
		}
		if analysis.HasExistingTenants {
			first := analysis.ExistingTenants[0]
			return SignupValidationResult{
				IsValid:        false,
				ConflictType:   ConflictDomainExists,
				Message:        fmt.Sprintf("Your company domain (@%s) already has existing workspaces", analysis.Domain),
				DomainAnalysis: &analysis,
				SuggestedActions: []SuggestedAction{
					{
						Type:      ActionJoinExisting,
						Text:      fmt.Sprintf("Request to join %s", first.CompanyName),
						URL:       fmt.Sprintf("/%s/request-access", first.CompanyCode),
						IsPrimary: true,
					},
					{
						Type: ActionCreateSeparate,
						Text: "Create separate workspace anyway",
						URL:  "/signup?force=true",
					},
				},
			}, nil
		}
	}

	return SignupValidationResult{
		IsValid:      true,
		ConflictType: ConflictNone,
		Message:      "Ready to create new workspace",
		PreviewURL:   WorkspaceURL(code),
	}, nil
}

// AnalyzeDomain groups existing workspaces by the email's domain. A
// malformed email yields an empty analysis rather than an error.
func (r *ConflictResolver) AnalyzeDomain(ctx context.Context, email string) (DomainAnalysisResult, error) {
	domain, err := EmailDomain(email)
	if err != nil {
		return DomainAnalysisResult{}, nil
	}
	return r.registry.FindByDomain(ctx, domain)
}

// SuggestCodes generates available alternatives for a taken workspace code.
// Word suffixes are tried first, then running numeric suffixes, and the
// search stops after a bounded number of probes.
func (r *ConflictResolver) SuggestCodes(ctx context.Context, requestedCode string) ([]string, error) {
	requestedCode = strings.ToLower(strings.TrimSpace(requestedCode))
	suggestions := make([]string, 0, maxCodeSuggestions)

	candidates := make([]string, 0, len(codeSuffixWords)+maxNumericCodeProbe+1)
	candidates = append(candidates, fmt.Sprintf("%s-%d", requestedCode, time.Now().UTC().Year()))
	for _, word := range codeSuffixWords {
		candidates = append(candidates, fmt.Sprintf("%s-%s", requestedCode, word))
	}
	for n := 2; n < 2+maxNumericCodeProbe; n++ {
		candidates = append(candidates, fmt.Sprintf("%s-%d", requestedCode, n))
	}

	for _, candidate := range candidates {
		if len(candidate) > 50 {
			continue
		}
		existing, err := r.registry.FindByCompanyCode(ctx, candidate)
		if err != nil {
			return suggestions, err
		}
		if existing == nil {
			suggestions = append(suggestions, candidate)
		}
		if len(suggestions) >= maxCodeSuggestions {
			break
		}
	}

	return suggestions, nil
}
