package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string returns DESC", "", "DESC"},
		{"ASC uppercase returns ASC", "ASC", "ASC"},
		{"asc lowercase returns ASC", "asc", "ASC"},
		{"DESC uppercase returns DESC", "DESC", "DESC"},
		{"invalid value returns DESC", "INVALID", "DESC"},
		{"sql injection attempt returns DESC", "ASC; DROP TABLE tenants;--", "DESC"},
		{"whitespace around ASC returns ASC", "  asc  ", "ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortOrder(tt.input))
		})
	}
}

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		allowedMap   map[string]bool
		defaultField string
		expected     string
	}{
		{"empty string returns default", "", RevisionSortFields, "created_at", "created_at"},
		{"valid field returns field", "revision_code", RevisionSortFields, "created_at", "revision_code"},
		{"invalid field returns default", "invalid_field", RevisionSortFields, "created_at", "created_at"},
		{"sql injection attempt returns default", "id; DROP TABLE drawing_revisions;--", RevisionSortFields, "created_at", "created_at"},
		{"case sensitive - uppercase invalid", "STATUS", RevisionSortFields, "created_at", "created_at"},
		{"whitespace around valid field returns field", "  scale_ratio  ", CalibrationSortFields, "created_at", "scale_ratio"},
		{"calibration activity flag allowed", "is_active", CalibrationSortFields, "created_at", "is_active"},
		{"tenant code allowed", "code", TenantSortFields, "created_at", "code"},
		{"user login timestamp allowed", "last_login_at", UserSortFields, "created_at", "last_login_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortField(tt.input, tt.allowedMap, tt.defaultField))
		})
	}
}
