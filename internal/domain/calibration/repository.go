package calibration

import (
	"context"

	"github.com/fabos/server/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines the interface for calibration persistence
type Repository interface {
	// FindByID finds a calibration by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Calibration, error)

	// FindActiveByDrawing finds the active calibration for a drawing, if any
	FindActiveByDrawing(ctx context.Context, tenantID, drawingID uuid.UUID) (*Calibration, error)

	// FindByDrawing finds all calibrations for a drawing, newest first
	FindByDrawing(ctx context.Context, tenantID, drawingID uuid.UUID, filter shared.Filter) ([]Calibration, error)

	// DeactivateByDrawing marks every active calibration for the drawing as
	// inactive and returns the number of rows changed
	DeactivateByDrawing(ctx context.Context, tenantID, drawingID uuid.UUID) (int64, error)

	// Save creates or updates a calibration
	Save(ctx context.Context, cal *Calibration) error

	// Delete deletes a calibration
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByDrawing counts calibrations recorded for a drawing
	CountByDrawing(ctx context.Context, tenantID, drawingID uuid.UUID) (int64, error)
}
