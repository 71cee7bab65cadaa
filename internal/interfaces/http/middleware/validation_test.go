package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fabos/server/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupValidator(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	assert.NotNil(t, v)
}

func TestHandleValidationError(t *testing.T) {
	type signupBody struct {
		Email       string `json:"email" binding:"required,email"`
		CompanyCode string `json:"company_code" binding:"required,company_code"`
	}

	SetupValidator()

	router := gin.New()
	router.POST("/signup", func(c *gin.Context) {
		var req signupBody
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	send := func(t *testing.T, payload string) (*httptest.ResponseRecorder, dto.Response) {
		t.Helper()
		req := httptest.NewRequest("POST", "/signup", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var resp dto.Response
		if w.Code != http.StatusOK {
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		}
		return w, resp
	}

	t.Run("reports each invalid field with its json name", func(t *testing.T) {
		w, resp := send(t, `{"email": "not-an-email", "company_code": "!!"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, resp.Success)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		require.Len(t, resp.Error.Details, 2)

		fields := []string{resp.Error.Details[0].Field, resp.Error.Details[1].Field}
		assert.Contains(t, fields, "email")
		assert.Contains(t, fields, "company_code")
	})

	t.Run("accepts a valid payload", func(t *testing.T) {
		w, _ := send(t, `{"email": "ops@acme-steel.com", "company_code": "acme-steel"}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("company code case is not a failure", func(t *testing.T) {
		w, _ := send(t, `{"email": "ops@acme-steel.com", "company_code": "Acme-Steel"}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("malformed json still yields the validation envelope", func(t *testing.T) {
		w, resp := send(t, `{"email": `)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.Empty(t, resp.Error.Details)
	})
}

func TestGetValidationMessage(t *testing.T) {
	type ruleSet struct {
		Email       string `binding:"email"`
		CompanyCode string `binding:"company_code"`
		Min         string `binding:"min=5"`
		OneOf       string `binding:"oneof=mm cm m"`
	}

	v := validator.New()
	v.SetTagName("binding")
	err := v.RegisterValidation("company_code", func(fl validator.FieldLevel) bool { return false })
	require.NoError(t, err)

	tests := []struct {
		field    string
		expected string
	}{
		{"Email", "Invalid email format"},
		{"CompanyCode", "Must contain only lowercase letters"},
		{"Min", "Must be at least 5 characters"},
		{"OneOf", "Must be one of: mm cm m"},
	}

	verr := v.Struct(ruleSet{Email: "bad", CompanyCode: "!!", Min: "ab", OneOf: "ft"})
	require.Error(t, verr)
	validationErrs := verr.(validator.ValidationErrors)

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			for _, e := range validationErrs {
				if e.StructField() == tt.field {
					assert.Contains(t, getValidationMessage(e), tt.expected)
					return
				}
			}
			t.Fatalf("no validation error recorded for field %s", tt.field)
		})
	}
}
