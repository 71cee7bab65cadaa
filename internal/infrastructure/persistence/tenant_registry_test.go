package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockTenantRegistry creates a GormTenantRegistry with a mocked SQL connection
func newMockTenantRegistry(t *testing.T) (*GormTenantRegistry, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormTenantRegistry(gormDB), mock, mockDB
}

func TestGormTenantRegistry_FindByEmail(t *testing.T) {
	t.Run("finds workspace registered under the email", func(t *testing.T) {
		registry, mock, mockDB := newMockTenantRegistry(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "code", "name", "admin_email", "created_at"}).
			AddRow(tenantID, "acme-steel", "Acme Steel", "owner@acmesteel.com", time.Now())

		mock.ExpectQuery(`SELECT \* FROM "tenants" WHERE admin_email = LOWER\(\$1\) ORDER BY created_at DESC.* LIMIT .*`).
			WithArgs("owner@acmesteel.com", 1).
			WillReturnRows(rows)

		info, err := registry.FindByEmail(context.Background(), "owner@acmesteel.com")

		require.NoError(t, err)
		require.NotNil(t, info)
		assert.Equal(t, tenantID, info.TenantID)
		assert.Equal(t, "acme-steel", info.CompanyCode)
		assert.Equal(t, "Acme Steel", info.CompanyName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns nil without error when no workspace matches", func(t *testing.T) {
		registry, mock, mockDB := newMockTenantRegistry(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "tenants" WHERE admin_email = LOWER\(\$1\) ORDER BY created_at DESC.* LIMIT .*`).
			WithArgs("nobody@example.com", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		info, err := registry.FindByEmail(context.Background(), "nobody@example.com")

		assert.NoError(t, err)
		assert.Nil(t, info)
	})
}

func TestGormTenantRegistry_FindByCompanyCode(t *testing.T) {
	t.Run("finds workspace by code", func(t *testing.T) {
		registry, mock, mockDB := newMockTenantRegistry(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "code", "name", "admin_email"}).
			AddRow(tenantID, "acme-steel", "Acme Steel", "owner@acmesteel.com")

		mock.ExpectQuery(`SELECT \* FROM "tenants" WHERE code = LOWER\(\$1\) ORDER BY .* LIMIT .*`).
			WithArgs("acme-steel", 1).
			WillReturnRows(rows)

		info, err := registry.FindByCompanyCode(context.Background(), "acme-steel")

		require.NoError(t, err)
		require.NotNil(t, info)
		assert.Equal(t, "acme-steel", info.CompanyCode)
	})

	t.Run("returns nil without error for unused code", func(t *testing.T) {
		registry, mock, mockDB := newMockTenantRegistry(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "tenants" WHERE code = LOWER\(\$1\) ORDER BY .* LIMIT .*`).
			WithArgs("unused-code", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		info, err := registry.FindByCompanyCode(context.Background(), "unused-code")

		assert.NoError(t, err)
		assert.Nil(t, info)
	})
}

func TestGormTenantRegistry_FindByDomain(t *testing.T) {
	t.Run("lists workspaces under the domain newest first", func(t *testing.T) {
		registry, mock, mockDB := newMockTenantRegistry(t)
		defer mockDB.Close()

		newer := uuid.New()
		older := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "code", "name", "admin_email", "created_at"}).
			AddRow(newer, "acme-east", "Acme East", "ops@acmesteel.com", time.Now()).
			AddRow(older, "acme-steel", "Acme Steel", "owner@acmesteel.com", time.Now().Add(-24*time.Hour))

		mock.ExpectQuery(`SELECT \* FROM "tenants" WHERE email_domain = LOWER\(\$1\) ORDER BY created_at DESC`).
			WithArgs("acmesteel.com").
			WillReturnRows(rows)

		result, err := registry.FindByDomain(context.Background(), "acmesteel.com")

		require.NoError(t, err)
		assert.True(t, result.HasExistingTenants)
		assert.Equal(t, 2, result.TenantCount)
		require.Len(t, result.ExistingTenants, 2)
		assert.Equal(t, newer, result.ExistingTenants[0].TenantID)
		assert.Equal(t, older, result.ExistingTenants[1].TenantID)
	})

	t.Run("empty result for unknown domain", func(t *testing.T) {
		registry, mock, mockDB := newMockTenantRegistry(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "code", "name", "admin_email", "created_at"})
		mock.ExpectQuery(`SELECT \* FROM "tenants" WHERE email_domain = LOWER\(\$1\) ORDER BY created_at DESC`).
			WithArgs("unknown.example").
			WillReturnRows(rows)

		result, err := registry.FindByDomain(context.Background(), "unknown.example")

		require.NoError(t, err)
		assert.False(t, result.HasExistingTenants)
		assert.Zero(t, result.TenantCount)
		assert.Empty(t, result.ExistingTenants)
	})
}
