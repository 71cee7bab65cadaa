package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestWithContext(t *testing.T) {
	logger, err := NewForEnvironment("development")
	require.NoError(t, err)

	ctx := context.Background()
	ctxWithLogger := WithContext(ctx, logger)

	retrievedLogger := FromContext(ctxWithLogger)
	assert.NotNil(t, retrievedLogger)
}

func TestFromContext_NotFound(t *testing.T) {
	ctx := context.Background()
	logger := FromContext(ctx)

	// Should return a no-op logger
	assert.NotNil(t, logger)
}

func TestWithRequestID(t *testing.T) {
	logger, err := NewForEnvironment("development")
	require.NoError(t, err)

	ctx := context.Background()
	requestID := "req-123"

	newCtx, newLogger := WithRequestID(ctx, logger, requestID)

	assert.NotNil(t, newCtx)
	assert.NotNil(t, newLogger)
	assert.Equal(t, requestID, GetRequestID(newCtx))
}

func TestWithTenantID(t *testing.T) {
	logger, err := NewForEnvironment("development")
	require.NoError(t, err)

	ctx := context.Background()
	tenantID := "tenant-456"

	newCtx, newLogger := WithTenantID(ctx, logger, tenantID)

	assert.NotNil(t, newCtx)
	assert.NotNil(t, newLogger)
	assert.Equal(t, tenantID, GetTenantID(newCtx))
}

func TestWithUserID(t *testing.T) {
	logger, err := NewForEnvironment("development")
	require.NoError(t, err)

	ctx := context.Background()
	userID := "user-789"

	newCtx, newLogger := WithUserID(ctx, logger, userID)

	assert.NotNil(t, newCtx)
	assert.NotNil(t, newLogger)
	assert.Equal(t, userID, GetUserID(newCtx))
}

func TestWithCompanyCode(t *testing.T) {
	logger, err := NewForEnvironment("development")
	require.NoError(t, err)

	ctx := context.Background()

	newCtx, newLogger := WithCompanyCode(ctx, logger, "acme-steel")

	assert.NotNil(t, newCtx)
	assert.NotNil(t, newLogger)
	assert.Equal(t, "acme-steel", GetCompanyCode(newCtx))
}

func TestGetRequestID_NotFound(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", GetRequestID(ctx))
}

func TestGetTenantID_NotFound(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", GetTenantID(ctx))
}

func TestGetUserID_NotFound(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", GetUserID(ctx))
}

func TestGetCompanyCode_NotFound(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", GetCompanyCode(ctx))
}

// newObservedLogger returns a logger writing JSON entries to the buffer
func newObservedLogger(buf *bytes.Buffer) *zap.Logger {
	encoderCfg := zapcore.EncoderConfig{
		MessageKey: "msg",
		LevelKey:   "level",
		TimeKey:    zapcore.OmitKey,
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(buf),
		zapcore.DebugLevel,
	)
	return zap.New(core)
}

func TestContextLogger_EnrichesFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := newObservedLogger(&buf)

	ctx := context.Background()
	ctx, _ = WithRequestID(ctx, logger, "req-1")
	ctx = context.WithValue(ctx, TenantIDKey, "tenant-1")
	ctx = context.WithValue(ctx, UserIDKey, "user-1")
	ctx = context.WithValue(ctx, CompanyCodeKey, "acme-steel")

	WithLogger(ctx, logger).Info("hello")

	out := buf.String()
	assert.Contains(t, out, "req-1")
	assert.Contains(t, out, "tenant-1")
	assert.Contains(t, out, "user-1")
	assert.Contains(t, out, "acme-steel")
}

func TestContextLogger_NilLoggerFallsBackToNop(t *testing.T) {
	cl := &ContextLogger{ctx: context.Background()}

	// Must not panic
	cl.Info("ignored")
	cl.Debug("ignored")
	cl.Warn("ignored")
	cl.Error("ignored")
}

func TestContextLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := newObservedLogger(&buf)

	WithLogger(context.Background(), logger).
		With(zap.String("component", "signup")).
		Info("created")

	assert.Contains(t, buf.String(), "signup")
}

func TestL_UsesContextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newObservedLogger(&buf)

	ctx := WithContext(context.Background(), logger)
	L(ctx).Info("from context")

	assert.Contains(t, buf.String(), "from context")
}
