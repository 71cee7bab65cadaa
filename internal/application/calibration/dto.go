package calibration

import (
	"time"

	"github.com/fabos/server/internal/domain/calibration"
	"github.com/fabos/server/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PointInput is a 2D coordinate in image pixel space
type PointInput struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p PointInput) toDomain() calibration.Point {
	return calibration.Point{X: p.X, Y: p.Y}
}

// ComputeInput contains input for a calibration computation
type ComputeInput struct {
	Point1        PointInput `json:"point1" binding:"required"`
	Point2        PointInput `json:"point2" binding:"required"`
	KnownDistance float64    `json:"known_distance" binding:"required"`
	Unit          string     `json:"unit" binding:"required"`
}

// ComputeResultDTO is the outcome of a calibration computation
type ComputeResultDTO struct {
	IsValid        bool    `json:"is_valid"`
	PixelsPerUnit  float64 `json:"pixels_per_unit"`
	ScaleRatio     string  `json:"scale_ratio"`
	MeasuredPixels float64 `json:"measured_pixels"`
	ErrorMessage   string  `json:"error_message,omitempty"`
	AccuracyScore  float64 `json:"accuracy_score"`
}

func toComputeResultDTO(result calibration.Result) ComputeResultDTO {
	return ComputeResultDTO{
		IsValid:        result.IsValid,
		PixelsPerUnit:  result.PixelsPerUnit,
		ScaleRatio:     result.ScaleRatio.String(),
		MeasuredPixels: result.MeasuredPixels,
		ErrorMessage:   result.ErrorMessage,
		AccuracyScore:  result.AccuracyScore,
	}
}

// ActivateInput contains input for activating a new calibration on a drawing
type ActivateInput struct {
	DrawingID     uuid.UUID  `json:"drawing_id" binding:"required"`
	Point1        PointInput `json:"point1" binding:"required"`
	Point2        PointInput `json:"point2" binding:"required"`
	KnownDistance float64    `json:"known_distance" binding:"required"`
	Unit          string     `json:"unit" binding:"required"`
	Notes         string     `json:"notes"`
}

// ApplyPresetInput contains input for calibrating a drawing from a standard
// scale preset
type ApplyPresetInput struct {
	DrawingID  uuid.UUID       `json:"drawing_id" binding:"required"`
	ScaleRatio decimal.Decimal `json:"scale_ratio" binding:"required"`
}

// ConvertInput contains input for converting between pixel and real-world
// distances on a calibrated drawing
type ConvertInput struct {
	PixelDistance *float64 `json:"pixel_distance,omitempty"`
	RealDistance  *float64 `json:"real_distance,omitempty"`
	Unit          string   `json:"unit" binding:"required"`
}

// ConvertResultDTO is the outcome of a distance conversion
type ConvertResultDTO struct {
	PixelDistance float64 `json:"pixel_distance"`
	RealDistance  float64 `json:"real_distance"`
	Unit          string  `json:"unit"`
	ScaleRatio    string  `json:"scale_ratio"`
}

// CalibrationDTO represents calibration data transfer object
type CalibrationDTO struct {
	ID             uuid.UUID  `json:"id"`
	DrawingID      uuid.UUID  `json:"drawing_id"`
	PixelsPerUnit  float64    `json:"pixels_per_unit"`
	ScaleRatio     string     `json:"scale_ratio"`
	KnownDistance  float64    `json:"known_distance"`
	MeasuredPixels float64    `json:"measured_pixels"`
	Point1         PointInput `json:"point1"`
	Point2         PointInput `json:"point2"`
	Unit           string     `json:"unit"`
	IsActive       bool       `json:"is_active"`
	Notes          string     `json:"notes,omitempty"`
	AccuracyScore  float64    `json:"accuracy_score"`
	CreatedBy      *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func toCalibrationDTO(cal *calibration.Calibration) *CalibrationDTO {
	return &CalibrationDTO{
		ID:             cal.ID,
		DrawingID:      cal.DrawingID,
		PixelsPerUnit:  cal.PixelsPerUnit,
		ScaleRatio:     cal.ScaleRatio.String(),
		KnownDistance:  cal.KnownDistance,
		MeasuredPixels: cal.MeasuredPixels,
		Point1:         PointInput{X: cal.Point1.X, Y: cal.Point1.Y},
		Point2:         PointInput{X: cal.Point2.X, Y: cal.Point2.Y},
		Unit:           cal.Unit.String(),
		IsActive:       cal.IsActive,
		Notes:          cal.Notes,
		AccuracyScore:  cal.Validate().AccuracyScore,
		CreatedBy:      cal.GetCreatedBy(),
		CreatedAt:      cal.CreatedAt,
	}
}

// PresetDTO represents a standard scale preset
type PresetDTO struct {
	ScaleRatio  string `json:"scale_ratio"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	IsCommon    bool   `json:"is_common"`
}

// HistoryFilter represents filter for querying calibration history
type HistoryFilter struct {
	Page     int
	PageSize int
}

// ToSharedFilter converts HistoryFilter to shared.Filter
func (f HistoryFilter) ToSharedFilter() shared.Filter {
	page := f.Page
	if page < 1 {
		page = 1
	}
	pageSize := f.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return shared.Filter{
		Page:     page,
		PageSize: pageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}
}
