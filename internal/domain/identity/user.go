package identity

import (
	"strings"
	"time"

	"github.com/fabos/server/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserStatus represents the status of a user
type UserStatus string

const (
	UserStatusActive      UserStatus = "active"
	UserStatusLocked      UserStatus = "locked"      // Locked due to failed attempts/security
	UserStatusDeactivated UserStatus = "deactivated" // Manually deactivated
)

// Password cost for bcrypt
const bcryptCost = 12

const maxFailedAttempts = 5

// User represents a user account within a tenant workspace
type User struct {
	shared.TenantAggregateRoot
	Username         string     `gorm:"type:varchar(100);not null"`
	Email            string     `gorm:"type:varchar(200);not null;index"`
	FirstName        string     `gorm:"type:varchar(50);not null"`
	LastName         string     `gorm:"type:varchar(50);not null"`
	PasswordHash     string     `gorm:"type:varchar(200);not null"`
	SecurityStamp    string     `gorm:"type:varchar(64);not null"`
	Status           UserStatus `gorm:"type:varchar(20);not null;default:'active'"`
	IsAdmin          bool       `gorm:"not null;default:false"`
	IsEmailConfirmed bool       `gorm:"not null;default:false"`
	FailedAttempts   int        `gorm:"not null;default:0"`
	LockedUntil      *time.Time
	LastLoginAt      *time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewAdminUser creates the first administrator account of a workspace.
// The username is the local part of the email address.
func NewAdminUser(tenantID uuid.UUID, email, firstName, lastName, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := EmailDomain(email); err != nil {
		return nil, err
	}
	if firstName == "" || len(firstName) > 50 {
		return nil, shared.NewDomainError("INVALID_NAME", "First name is required and cannot exceed 50 characters")
	}
	if lastName == "" || len(lastName) > 50 {
		return nil, shared.NewDomainError("INVALID_NAME", "Last name is required and cannot exceed 50 characters")
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	user := &User{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Username:            email[:strings.LastIndex(email, "@")],
		Email:               email,
		FirstName:           firstName,
		LastName:            lastName,
		PasswordHash:        passwordHash,
		SecurityStamp:       uuid.NewString(),
		Status:              UserStatusActive,
		IsAdmin:             true,
	}

	user.AddDomainEvent(NewUserCreatedEvent(user))

	return user, nil
}

// FullName returns the user's display name
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// CheckPassword verifies the password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword changes the user's password and rotates the security stamp
func (u *User) ChangePassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = passwordHash
	u.SecurityStamp = uuid.NewString()
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// RecordFailedLogin counts a failed sign-in attempt and locks the account
// after too many failures
func (u *User) RecordFailedLogin() {
	u.FailedAttempts++
	if u.FailedAttempts >= maxFailedAttempts {
		lockedUntil := time.Now().Add(15 * time.Minute)
		u.Status = UserStatusLocked
		u.LockedUntil = &lockedUntil
	}
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// RecordLogin resets failure tracking after a successful sign-in
func (u *User) RecordLogin() {
	now := time.Now()
	u.FailedAttempts = 0
	u.LockedUntil = nil
	if u.Status == UserStatusLocked {
		u.Status = UserStatusActive
	}
	u.LastLoginAt = &now
	u.UpdatedAt = now
	u.IncrementVersion()
}

// ConfirmEmail marks the user's email address as verified
func (u *User) ConfirmEmail() {
	if u.IsEmailConfirmed {
		return
	}
	u.IsEmailConfirmed = true
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// IsLocked returns true if the account is currently locked
func (u *User) IsLocked() bool {
	if u.Status != UserStatusLocked {
		return false
	}
	if u.LockedUntil == nil {
		return true
	}
	return time.Now().Before(*u.LockedUntil)
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		// bcrypt truncates beyond 72 bytes
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
