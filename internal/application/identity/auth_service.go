package identity

import (
	"context"

	"github.com/fabos/server/internal/domain/identity"
	"github.com/fabos/server/internal/domain/shared"
	"github.com/fabos/server/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles workspace sign-in and token refresh
type AuthService struct {
	userRepo   identity.UserRepository
	tenantRepo identity.TenantRepository
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	tenantRepo identity.TenantRepository,
	jwtService *auth.JWTService,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tenantRepo: tenantRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login authenticates a user by email and returns a token pair
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	s.logger.Info("Login attempt", zap.String("email", input.Email))

	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Warn("User not found during login", zap.String("email", input.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if user.IsLocked() {
		s.logger.Warn("Login attempt for locked account", zap.String("email", input.Email))
		return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is locked. Please try again later or contact support")
	}
	if user.Status == identity.UserStatusDeactivated {
		s.logger.Warn("Login attempt for deactivated account", zap.String("email", input.Email))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	if !user.CheckPassword(input.Password) {
		user.RecordFailedLogin()
		if err := s.userRepo.Save(ctx, user); err != nil {
			s.logger.Error("Failed to update user after login failure", zap.Error(err))
		}

		if user.Status == identity.UserStatusLocked {
			s.logger.Warn("Account locked after too many failed attempts",
				zap.String("email", input.Email),
				zap.Int("failed_attempts", user.FailedAttempts))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Too many failed login attempts. Account has been locked")
		}

		s.logger.Warn("Invalid password attempt",
			zap.String("email", input.Email),
			zap.Int("failed_attempts", user.FailedAttempts))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	// Resolve the workspace for the company_code claim
	tenant, err := s.tenantRepo.FindByID(ctx, user.TenantID)
	if err != nil {
		s.logger.Error("Failed to load tenant for login", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load workspace")
	}
	if tenant.Status != identity.TenantStatusActive {
		s.logger.Warn("Login attempt for inactive workspace",
			zap.String("email", input.Email),
			zap.String("company_code", tenant.Code))
		return nil, shared.NewDomainError("TENANT_INACTIVE", "This workspace is not active")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		TenantID:    user.TenantID,
		UserID:      user.ID,
		Username:    user.Username,
		CompanyCode: tenant.Code,
		IsAdmin:     user.IsAdmin,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	user.RecordLogin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		// Don't fail the login, just log the error
		s.logger.Error("Failed to update user after successful login", zap.Error(err))
	}

	s.logger.Info("User logged in successfully",
		zap.String("email", input.Email),
		zap.String("user_id", user.ID.String()),
		zap.String("company_code", tenant.Code))

	return &LoginResult{
		User:   toUserDTO(user, tenant.Code),
		Tokens: toTokenDTO(tokenPair),
	}, nil
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *AuthService) Refresh(ctx context.Context, input RefreshInput) (*TokenDTO, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		switch err {
		case auth.ErrExpiredToken:
			return nil, shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired. Please sign in again")
		case auth.ErrMaxRefreshExceeded:
			return nil, shared.NewDomainError("TOKEN_REFRESH_LIMIT", "Session has been refreshed too many times. Please sign in again")
		default:
			return nil, shared.NewDomainError("INVALID_TOKEN", "Invalid refresh token")
		}
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Invalid refresh token")
	}

	// Re-read the user so revoked or locked accounts cannot keep refreshing
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		s.logger.Warn("Token refresh for unknown user", zap.String("user_id", userID.String()))
		return nil, shared.NewDomainError("INVALID_TOKEN", "Invalid refresh token")
	}
	if user.IsLocked() || user.Status == identity.UserStatusDeactivated {
		s.logger.Warn("Token refresh for inactive account", zap.String("user_id", userID.String()))
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account is not active")
	}

	tenant, err := s.tenantRepo.FindByID(ctx, user.TenantID)
	if err != nil {
		s.logger.Error("Failed to load tenant for token refresh", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load workspace")
	}

	tokenPair, err := s.jwtService.RefreshTokenPair(input.RefreshToken, tenant.Code, user.IsAdmin)
	if err != nil {
		s.logger.Warn("Token refresh failed", zap.Error(err))
		switch err {
		case auth.ErrExpiredToken:
			return nil, shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired. Please sign in again")
		case auth.ErrMaxRefreshExceeded:
			return nil, shared.NewDomainError("TOKEN_REFRESH_LIMIT", "Session has been refreshed too many times. Please sign in again")
		default:
			return nil, shared.NewDomainError("INVALID_TOKEN", "Invalid refresh token")
		}
	}

	s.logger.Info("Token refreshed successfully", zap.String("user_id", userID.String()))

	tokens := toTokenDTO(tokenPair)
	return &tokens, nil
}

func toUserDTO(user *identity.User, companyCode string) UserDTO {
	return UserDTO{
		ID:               user.ID,
		TenantID:         user.TenantID,
		CompanyCode:      companyCode,
		Username:         user.Username,
		Email:            user.Email,
		FirstName:        user.FirstName,
		LastName:         user.LastName,
		IsAdmin:          user.IsAdmin,
		IsEmailConfirmed: user.IsEmailConfirmed,
		LastLoginAt:      user.LastLoginAt,
	}
}

func toTokenDTO(pair *auth.TokenPair) TokenDTO {
	return TokenDTO{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
	}
}
