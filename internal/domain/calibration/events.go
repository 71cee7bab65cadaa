package calibration

import (
	"github.com/fabos/server/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeCalibration = "Calibration"

// Event type constants
const (
	EventTypeCalibrationCreated     = "CalibrationCreated"
	EventTypeCalibrationActivated   = "CalibrationActivated"
	EventTypeCalibrationDeactivated = "CalibrationDeactivated"
)

// CalibrationCreatedEvent is published when a new calibration is created
type CalibrationCreatedEvent struct {
	shared.BaseDomainEvent
	DrawingID  uuid.UUID       `json:"drawing_id"`
	ScaleRatio decimal.Decimal `json:"scale_ratio"`
	Unit       MeasurementUnit `json:"unit"`
}

// NewCalibrationCreatedEvent creates a new CalibrationCreatedEvent
func NewCalibrationCreatedEvent(cal *Calibration) *CalibrationCreatedEvent {
	return &CalibrationCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCalibrationCreated, AggregateTypeCalibration, cal.ID, cal.TenantID),
		DrawingID:       cal.DrawingID,
		ScaleRatio:      cal.ScaleRatio,
		Unit:            cal.Unit,
	}
}

// CalibrationActivatedEvent is published when a calibration becomes the
// active one for its drawing
type CalibrationActivatedEvent struct {
	shared.BaseDomainEvent
	DrawingID  uuid.UUID       `json:"drawing_id"`
	ScaleRatio decimal.Decimal `json:"scale_ratio"`
}

// NewCalibrationActivatedEvent creates a new CalibrationActivatedEvent
func NewCalibrationActivatedEvent(cal *Calibration) *CalibrationActivatedEvent {
	return &CalibrationActivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCalibrationActivated, AggregateTypeCalibration, cal.ID, cal.TenantID),
		DrawingID:       cal.DrawingID,
		ScaleRatio:      cal.ScaleRatio,
	}
}

// CalibrationDeactivatedEvent is published when a calibration is superseded
type CalibrationDeactivatedEvent struct {
	shared.BaseDomainEvent
	DrawingID uuid.UUID `json:"drawing_id"`
}

// NewCalibrationDeactivatedEvent creates a new CalibrationDeactivatedEvent
func NewCalibrationDeactivatedEvent(cal *Calibration) *CalibrationDeactivatedEvent {
	return &CalibrationDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCalibrationDeactivated, AggregateTypeCalibration, cal.ID, cal.TenantID),
		DrawingID:       cal.DrawingID,
	}
}
