package calibration

import (
	"context"

	"github.com/fabos/server/internal/domain/calibration"
	"github.com/fabos/server/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service handles drawing calibration operations
type Service struct {
	repo   calibration.Repository
	scope  TransactionScope
	logger *zap.Logger
}

// NewService creates a new calibration service
func NewService(repo calibration.Repository, scope TransactionScope, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		scope:  scope,
		logger: logger,
	}
}

// Compute derives a scale from two picked points and a known distance. It is
// a pure computation; expected bad input comes back as an invalid result.
func (s *Service) Compute(input ComputeInput) ComputeResultDTO {
	result := calibration.Compute(
		input.Point1.toDomain(),
		input.Point2.toDomain(),
		input.KnownDistance,
		calibration.MeasurementUnit(input.Unit),
	)
	return toComputeResultDTO(result)
}

// Activate computes a calibration and makes it the active one for the
// drawing. The previous active calibration is deactivated, not deleted; both
// writes happen in one transaction.
func (s *Service) Activate(ctx context.Context, tenantID, userID uuid.UUID, input ActivateInput) (*CalibrationDTO, error) {
	unit := calibration.MeasurementUnit(input.Unit)
	result := calibration.Compute(input.Point1.toDomain(), input.Point2.toDomain(), input.KnownDistance, unit)
	if !result.IsValid {
		return nil, shared.NewDomainError("INVALID_CALIBRATION", result.ErrorMessage)
	}

	cal, err := calibration.NewCalibration(tenantID, input.DrawingID, userID,
		input.Point1.toDomain(), input.Point2.toDomain(), input.KnownDistance, unit, result, input.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.activate(ctx, cal); err != nil {
		return nil, err
	}

	s.logger.Info("Calibration activated",
		zap.String("drawing_id", input.DrawingID.String()),
		zap.String("calibration_id", cal.ID.String()),
		zap.String("scale_ratio", cal.ScaleRatio.String()))

	return toCalibrationDTO(cal), nil
}

// ApplyPreset calibrates a drawing directly from a standard scale ratio
func (s *Service) ApplyPreset(ctx context.Context, tenantID, userID uuid.UUID, input ApplyPresetInput) (*CalibrationDTO, error) {
	cal, err := calibration.NewPresetCalibration(tenantID, input.DrawingID, userID, input.ScaleRatio)
	if err != nil {
		return nil, err
	}

	if err := s.activate(ctx, cal); err != nil {
		return nil, err
	}

	s.logger.Info("Preset calibration applied",
		zap.String("drawing_id", input.DrawingID.String()),
		zap.String("scale_ratio", cal.ScaleRatio.String()))

	return toCalibrationDTO(cal), nil
}

func (s *Service) activate(ctx context.Context, cal *calibration.Calibration) error {
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		repo := repos.CalibrationRepo()
		if _, err := repo.DeactivateByDrawing(ctx, cal.TenantID, cal.DrawingID); err != nil {
			return err
		}
		return repo.Save(ctx, cal)
	})
	if err != nil {
		s.logger.Error("Failed to activate calibration",
			zap.String("drawing_id", cal.DrawingID.String()),
			zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to activate calibration")
	}

	cal.AddDomainEvent(calibration.NewCalibrationActivatedEvent(cal))
	return nil
}

// GetActive returns the active calibration for a drawing
func (s *Service) GetActive(ctx context.Context, tenantID, drawingID uuid.UUID) (*CalibrationDTO, error) {
	cal, err := s.repo.FindActiveByDrawing(ctx, tenantID, drawingID)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("CALIBRATION_NOT_FOUND", "Drawing has no active calibration")
		}
		s.logger.Error("Failed to find active calibration", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find calibration")
	}
	return toCalibrationDTO(cal), nil
}

// History returns the calibrations recorded for a drawing, newest first
func (s *Service) History(ctx context.Context, tenantID, drawingID uuid.UUID, filter HistoryFilter) (*shared.Paginated[CalibrationDTO], error) {
	sharedFilter := filter.ToSharedFilter()

	cals, err := s.repo.FindByDrawing(ctx, tenantID, drawingID, sharedFilter)
	if err != nil {
		s.logger.Error("Failed to list calibrations", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list calibrations")
	}
	total, err := s.repo.CountByDrawing(ctx, tenantID, drawingID)
	if err != nil {
		s.logger.Error("Failed to count calibrations", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list calibrations")
	}

	dtos := make([]CalibrationDTO, 0, len(cals))
	for i := range cals {
		dtos = append(dtos, *toCalibrationDTO(&cals[i]))
	}

	result := shared.NewPaginated(dtos, total, sharedFilter.Page, sharedFilter.PageSize)
	return &result, nil
}

// Convert converts between pixel and real-world distances using the
// drawing's active calibration. Exactly one of the two distances must be set.
func (s *Service) Convert(ctx context.Context, tenantID, drawingID uuid.UUID, input ConvertInput) (*ConvertResultDTO, error) {
	unit := calibration.MeasurementUnit(input.Unit)
	if !unit.IsValid() {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unrecognized measurement unit "+input.Unit)
	}
	if (input.PixelDistance == nil) == (input.RealDistance == nil) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Provide either pixel_distance or real_distance")
	}

	cal, err := s.repo.FindActiveByDrawing(ctx, tenantID, drawingID)
	if err != nil {
		if err != shared.ErrNotFound {
			s.logger.Error("Failed to find active calibration", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find calibration")
		}
		// Uncalibrated drawings convert against the default scale.
		cal = calibration.DefaultCalibration()
	}

	out := &ConvertResultDTO{Unit: unit.String(), ScaleRatio: cal.ScaleRatio.String()}
	if input.PixelDistance != nil {
		out.PixelDistance = *input.PixelDistance
		out.RealDistance = cal.PixelsToRealWorld(*input.PixelDistance, unit)
	} else {
		out.RealDistance = *input.RealDistance
		out.PixelDistance = cal.RealWorldToPixels(*input.RealDistance, unit)
	}
	return out, nil
}

// Presets returns the standard scale presets
func (s *Service) Presets() []PresetDTO {
	presets := calibration.ScalePresets()
	dtos := make([]PresetDTO, 0, len(presets))
	for _, preset := range presets {
		dtos = append(dtos, PresetDTO{
			ScaleRatio:  preset.ScaleRatio.String(),
			DisplayName: preset.DisplayName,
			Description: preset.Description,
			IsCommon:    preset.IsCommon,
		})
	}
	return dtos
}
