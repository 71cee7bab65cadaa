package calibration

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validResult(t *testing.T) Result {
	t.Helper()
	result := Compute(Point{}, Point{X: 100, Y: 0}, 2000, UnitMillimeter)
	require.True(t, result.IsValid)
	return result
}

func TestNewCalibration(t *testing.T) {
	tenantID := uuid.New()
	drawingID := uuid.New()
	userID := uuid.New()

	t.Run("creates active calibration from valid result", func(t *testing.T) {
		result := validResult(t)
		cal, err := NewCalibration(tenantID, drawingID, userID, Point{}, Point{X: 100, Y: 0}, 2000, UnitMillimeter, result, "ground floor plan")

		require.NoError(t, err)
		assert.Equal(t, tenantID, cal.TenantID)
		assert.Equal(t, drawingID, cal.DrawingID)
		assert.True(t, cal.IsActive)
		assert.Equal(t, result.PixelsPerUnit, cal.PixelsPerUnit)
		assert.True(t, cal.ScaleRatio.Equal(result.ScaleRatio))
		assert.Equal(t, "ground floor plan", cal.Notes)
		assert.Len(t, cal.GetDomainEvents(), 1)
	})

	t.Run("rejects nil drawing ID", func(t *testing.T) {
		_, err := NewCalibration(tenantID, uuid.Nil, userID, Point{}, Point{X: 100, Y: 0}, 2000, UnitMillimeter, validResult(t), "")

		assert.Error(t, err)
	})

	t.Run("rejects invalid computation result", func(t *testing.T) {
		result := Compute(Point{X: 5, Y: 5}, Point{X: 5, Y: 5}, 1000, UnitMillimeter)
		_, err := NewCalibration(tenantID, drawingID, userID, Point{X: 5, Y: 5}, Point{X: 5, Y: 5}, 1000, UnitMillimeter, result, "")

		assert.Error(t, err)
	})

	t.Run("rejects notes over 500 characters", func(t *testing.T) {
		notes := make([]byte, 501)
		for i := range notes {
			notes[i] = 'a'
		}
		_, err := NewCalibration(tenantID, drawingID, userID, Point{}, Point{X: 100, Y: 0}, 2000, UnitMillimeter, validResult(t), string(notes))

		assert.Error(t, err)
	})
}

func TestNewPresetCalibration(t *testing.T) {
	tenantID := uuid.New()
	drawingID := uuid.New()
	userID := uuid.New()

	t.Run("creates calibration from standard ratio", func(t *testing.T) {
		cal, err := NewPresetCalibration(tenantID, drawingID, userID, decimal.NewFromInt(50))

		require.NoError(t, err)
		assert.True(t, cal.IsActive)
		assert.InDelta(t, 0.02, cal.PixelsPerUnit, 1e-12)
		assert.Equal(t, UnitMillimeter, cal.Unit)
		assert.Zero(t, cal.MeasuredPixels)
	})

	t.Run("rejects ratio outside supported range", func(t *testing.T) {
		_, errLow := NewPresetCalibration(tenantID, drawingID, userID, decimal.NewFromFloat(0.5))
		_, errHigh := NewPresetCalibration(tenantID, drawingID, userID, decimal.NewFromInt(20000))

		assert.Error(t, errLow)
		assert.Error(t, errHigh)
	})
}

func TestCalibrationDeactivate(t *testing.T) {
	cal, err := NewPresetCalibration(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(100))
	require.NoError(t, err)
	cal.ClearDomainEvents()

	cal.Deactivate()
	assert.False(t, cal.IsActive)
	assert.Len(t, cal.GetDomainEvents(), 1)

	// Second deactivation is a no-op and raises no further events.
	cal.Deactivate()
	assert.Len(t, cal.GetDomainEvents(), 1)
}

func TestCalibrationConversions(t *testing.T) {
	cal, err := NewPresetCalibration(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(50))
	require.NoError(t, err)

	t.Run("pixels to real world", func(t *testing.T) {
		// At 1:50 one pixel spans 50mm, so 100px is 5 metres.
		assert.InDelta(t, 5000, cal.PixelsToRealWorld(100, UnitMillimeter), 1e-9)
		assert.InDelta(t, 5, cal.PixelsToRealWorld(100, UnitMeter), 1e-9)
	})

	t.Run("real world to pixels", func(t *testing.T) {
		assert.InDelta(t, 100, cal.RealWorldToPixels(5, UnitMeter), 1e-9)
	})

	t.Run("round trip preserves distance", func(t *testing.T) {
		for _, px := range []float64{1, 42.5, 1000} {
			back := cal.RealWorldToPixels(cal.PixelsToRealWorld(px, UnitCentimeter), UnitCentimeter)
			assert.InDelta(t, px, back, 1e-9)
		}
	})
}

func TestCalibrationValidate(t *testing.T) {
	t.Run("measured calibration re-derives accuracy", func(t *testing.T) {
		result := validResult(t)
		cal, err := NewCalibration(uuid.New(), uuid.New(), uuid.New(), Point{}, Point{X: 100, Y: 0}, 2000, UnitMillimeter, result, "")
		require.NoError(t, err)

		revalidated := cal.Validate()
		require.True(t, revalidated.IsValid)
		assert.InDelta(t, result.AccuracyScore, revalidated.AccuracyScore, 1e-9)
	})

	t.Run("preset calibration scores on ratio alone", func(t *testing.T) {
		cal, err := NewPresetCalibration(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(100))
		require.NoError(t, err)

		revalidated := cal.Validate()
		require.True(t, revalidated.IsValid)
		assert.InDelta(t, 95.0, revalidated.AccuracyScore, 1e-9)
	})

	t.Run("corrupted scale ratio is rejected", func(t *testing.T) {
		cal, err := NewPresetCalibration(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(100))
		require.NoError(t, err)
		cal.ScaleRatio = decimal.NewFromInt(99999)

		assert.False(t, cal.Validate().IsValid)
	})
}
