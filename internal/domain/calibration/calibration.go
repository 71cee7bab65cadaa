package calibration

import (
	"github.com/fabos/server/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Calibration maps on-screen pixel distance to real-world physical distance
// for one drawing. A drawing accumulates many calibrations over time but at
// most one is active; superseded calibrations are deactivated, never deleted.
type Calibration struct {
	shared.TenantAggregateRoot
	DrawingID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	PixelsPerUnit  float64         `gorm:"not null"` // pixels per millimetre
	ScaleRatio     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	KnownDistance  float64         `gorm:"not null"` // in Unit
	MeasuredPixels float64         `gorm:"not null"`
	Point1         Point           `gorm:"embedded;embeddedPrefix:point1_"`
	Point2         Point           `gorm:"embedded;embeddedPrefix:point2_"`
	Unit           MeasurementUnit `gorm:"type:varchar(10);not null;default:'mm'"`
	IsActive       bool            `gorm:"not null;default:true"`
	Notes          string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Calibration) TableName() string {
	return "calibrations"
}

// NewCalibration creates an active calibration for a drawing from a valid
// computation result.
func NewCalibration(tenantID, drawingID, createdBy uuid.UUID, point1, point2 Point, knownDistance float64, unit MeasurementUnit, result Result, notes string) (*Calibration, error) {
	if drawingID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DRAWING", "Drawing ID is required")
	}
	if !result.IsValid {
		return nil, shared.NewDomainError("INVALID_CALIBRATION", result.ErrorMessage)
	}
	if len(notes) > 500 {
		return nil, shared.NewDomainError("INVALID_NOTES", "Notes cannot exceed 500 characters")
	}

	cal := &Calibration{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, createdBy),
		DrawingID:           drawingID,
		PixelsPerUnit:       result.PixelsPerUnit,
		ScaleRatio:          result.ScaleRatio,
		KnownDistance:       knownDistance,
		MeasuredPixels:      result.MeasuredPixels,
		Point1:              point1,
		Point2:              point2,
		Unit:                unit,
		IsActive:            true,
		Notes:               notes,
	}

	cal.AddDomainEvent(NewCalibrationCreatedEvent(cal))

	return cal, nil
}

// NewPresetCalibration creates an active calibration directly from a standard
// scale ratio, without measured points. The pixel measurement fields are
// synthesized from the ratio.
func NewPresetCalibration(tenantID, drawingID, createdBy uuid.UUID, scaleRatio decimal.Decimal) (*Calibration, error) {
	if drawingID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DRAWING", "Drawing ID is required")
	}
	if scaleRatio.LessThan(minScaleRatio) || scaleRatio.GreaterThan(maxScaleRatio) {
		return nil, shared.NewDomainError("INVALID_SCALE_RATIO", "Scale ratio is outside the supported range (1:1 to 1:10000)")
	}

	ratio, _ := scaleRatio.Float64()
	cal := &Calibration{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, createdBy),
		DrawingID:           drawingID,
		PixelsPerUnit:       1.0 / ratio,
		ScaleRatio:          scaleRatio,
		Unit:                UnitMillimeter,
		IsActive:            true,
	}

	cal.AddDomainEvent(NewCalibrationCreatedEvent(cal))

	return cal, nil
}

// Deactivate marks the calibration as superseded. Deactivated calibrations
// are retained as history.
func (c *Calibration) Deactivate() {
	if !c.IsActive {
		return
	}
	c.IsActive = false
	c.Touch()
	c.IncrementVersion()

	c.AddDomainEvent(NewCalibrationDeactivatedEvent(c))
}

// PixelsToRealWorld converts a pixel distance to real-world units using this
// calibration
func (c *Calibration) PixelsToRealWorld(pixelDistance float64, target MeasurementUnit) float64 {
	realWorldMm := pixelDistance / c.PixelsPerUnit
	return target.FromMillimeters(realWorldMm)
}

// RealWorldToPixels converts a real-world distance to pixels using this
// calibration
func (c *Calibration) RealWorldToPixels(distance float64, source MeasurementUnit) float64 {
	return source.ToMillimeters(distance) * c.PixelsPerUnit
}

// Validate re-checks a stored calibration against the plausibility bounds and
// re-derives its accuracy score.
func (c *Calibration) Validate() Result {
	if c.ScaleRatio.LessThan(minScaleRatio) || c.ScaleRatio.GreaterThan(maxScaleRatio) {
		return invalidResult("Scale ratio is outside the supported range (1:1 to 1:10000)")
	}
	if c.PixelsPerUnit < minPixelsPerUnit || c.PixelsPerUnit > maxPixelsPerUnit {
		return invalidResult("Pixels per unit is outside the supported range")
	}

	// Preset calibrations carry no measured pixels; score them on the ratio alone.
	score := presetProximityScore(c.ScaleRatio)
	if c.MeasuredPixels > 0 {
		score = accuracyScore(c.MeasuredPixels, c.ScaleRatio)
	}

	return Result{
		IsValid:        true,
		PixelsPerUnit:  c.PixelsPerUnit,
		ScaleRatio:     c.ScaleRatio,
		MeasuredPixels: c.MeasuredPixels,
		AccuracyScore:  score,
	}
}
