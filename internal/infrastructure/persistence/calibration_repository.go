package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/fabos/server/internal/domain/calibration"
	"github.com/fabos/server/internal/domain/shared"
	"github.com/fabos/server/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCalibrationRepository implements calibration.Repository using GORM
type GormCalibrationRepository struct {
	db *gorm.DB
}

// NewGormCalibrationRepository creates a new GormCalibrationRepository
func NewGormCalibrationRepository(db *gorm.DB) *GormCalibrationRepository {
	return &GormCalibrationRepository{db: db}
}

// FindByID finds a calibration by its ID
func (r *GormCalibrationRepository) FindByID(ctx context.Context, id uuid.UUID) (*calibration.Calibration, error) {
	var cal calibration.Calibration
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&cal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find calibration: %w", err)
	}
	return &cal, nil
}

// FindActiveByDrawing finds the active calibration for a drawing, if any
func (r *GormCalibrationRepository) FindActiveByDrawing(ctx context.Context, tenantID, drawingID uuid.UUID) (*calibration.Calibration, error) {
	var cal calibration.Calibration
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("drawing_id = ? AND is_active = ?", drawingID, true).
		Order("created_at DESC").
		First(&cal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find active calibration: %w", err)
	}
	return &cal, nil
}

// FindByDrawing finds all calibrations for a drawing, newest first
func (r *GormCalibrationRepository) FindByDrawing(ctx context.Context, tenantID, drawingID uuid.UUID, filter shared.Filter) ([]calibration.Calibration, error) {
	query := r.db.WithContext(ctx).
		Model(&calibration.Calibration{}).
		Scopes(tenant.Scope(tenantID)).
		Where("drawing_id = ?", drawingID)

	if active, ok := filter.Filters["is_active"]; ok {
		query = query.Where("is_active = ?", active)
	}

	orderBy := ValidateSortField(filter.OrderBy, CalibrationSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	query = query.Offset((page - 1) * pageSize).Limit(pageSize)

	var cals []calibration.Calibration
	if err := query.Find(&cals).Error; err != nil {
		return nil, fmt.Errorf("failed to list calibrations: %w", err)
	}
	return cals, nil
}

// DeactivateByDrawing marks every active calibration for the drawing as
// inactive and returns the number of rows changed. Running it in the same
// transaction as the insert of the replacement keeps at most one calibration
// active per drawing.
func (r *GormCalibrationRepository) DeactivateByDrawing(ctx context.Context, tenantID, drawingID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&calibration.Calibration{}).
		Scopes(tenant.Scope(tenantID)).
		Where("drawing_id = ? AND is_active = ?", drawingID, true).
		Update("is_active", false)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to deactivate calibrations: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// Save creates or updates a calibration
func (r *GormCalibrationRepository) Save(ctx context.Context, cal *calibration.Calibration) error {
	if err := r.db.WithContext(ctx).Save(cal).Error; err != nil {
		return fmt.Errorf("failed to save calibration: %w", err)
	}
	return nil
}

// Delete deletes a calibration
func (r *GormCalibrationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&calibration.Calibration{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete calibration: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountByDrawing counts calibrations recorded for a drawing
func (r *GormCalibrationRepository) CountByDrawing(ctx context.Context, tenantID, drawingID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&calibration.Calibration{}).
		Scopes(tenant.Scope(tenantID)).
		Where("drawing_id = ?", drawingID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count calibrations: %w", err)
	}
	return count, nil
}

var _ calibration.Repository = (*GormCalibrationRepository)(nil)
