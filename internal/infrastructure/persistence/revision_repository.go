package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/fabos/server/internal/domain/qdocs"
	"github.com/fabos/server/internal/domain/shared"
	"github.com/fabos/server/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRevisionRepository implements qdocs.Repository using GORM
type GormRevisionRepository struct {
	db *gorm.DB
}

// NewGormRevisionRepository creates a new GormRevisionRepository
func NewGormRevisionRepository(db *gorm.DB) *GormRevisionRepository {
	return &GormRevisionRepository{db: db}
}

// FindByID finds a revision by its ID
func (r *GormRevisionRepository) FindByID(ctx context.Context, id uuid.UUID) (*qdocs.DrawingRevision, error) {
	var rev qdocs.DrawingRevision
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rev).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find revision: %w", err)
	}
	return &rev, nil
}

// FindByDrawing finds all revisions for a drawing, newest first
func (r *GormRevisionRepository) FindByDrawing(ctx context.Context, tenantID, drawingID uuid.UUID, filter shared.Filter) ([]qdocs.DrawingRevision, error) {
	query := r.db.WithContext(ctx).
		Model(&qdocs.DrawingRevision{}).
		Scopes(tenant.Scope(tenantID)).
		Where("drawing_id = ?", drawingID)

	return r.findRevisions(query, filter)
}

// FindByStatus finds revisions in the given status for a tenant
func (r *GormRevisionRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status qdocs.RevisionStatus, filter shared.Filter) ([]qdocs.DrawingRevision, error) {
	query := r.db.WithContext(ctx).
		Model(&qdocs.DrawingRevision{}).
		Scopes(tenant.Scope(tenantID)).
		Where("status = ?", status)

	return r.findRevisions(query, filter)
}

func (r *GormRevisionRepository) findRevisions(query *gorm.DB, filter shared.Filter) ([]qdocs.DrawingRevision, error) {
	if filter.Search != "" {
		keyword := "%" + filter.Search + "%"
		query = query.Where("revision_code ILIKE ? OR description ILIKE ?", keyword, keyword)
	}

	orderBy := ValidateSortField(filter.OrderBy, RevisionSortFields, "created_at")
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

	var revs []qdocs.DrawingRevision
	if err := query.Find(&revs).Error; err != nil {
		return nil, fmt.Errorf("failed to list revisions: %w", err)
	}
	return revs, nil
}

// Save creates or updates a revision
func (r *GormRevisionRepository) Save(ctx context.Context, rev *qdocs.DrawingRevision) error {
	if err := r.db.WithContext(ctx).Save(rev).Error; err != nil {
		return fmt.Errorf("failed to save revision: %w", err)
	}
	return nil
}

// Delete deletes a revision
func (r *GormRevisionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&qdocs.DrawingRevision{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete revision: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ qdocs.Repository = (*GormRevisionRepository)(nil)

// GormTransitionRecorder implements qdocs.TransitionRecorder using GORM.
// Callers run it on the transaction that also saves the revision so the audit
// trail never diverges from the revision state.
type GormTransitionRecorder struct {
	db *gorm.DB
}

// NewGormTransitionRecorder creates a new GormTransitionRecorder
func NewGormTransitionRecorder(db *gorm.DB) *GormTransitionRecorder {
	return &GormTransitionRecorder{db: db}
}

// Record appends a transition audit entry
func (r *GormTransitionRecorder) Record(ctx context.Context, transition *qdocs.RevisionTransition) error {
	if err := r.db.WithContext(ctx).Create(transition).Error; err != nil {
		return fmt.Errorf("failed to record transition: %w", err)
	}
	return nil
}

// FindByRevision returns the audit trail of a revision, oldest first
func (r *GormTransitionRecorder) FindByRevision(ctx context.Context, tenantID, revisionID uuid.UUID) ([]qdocs.RevisionTransition, error) {
	var transitions []qdocs.RevisionTransition
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("revision_id = ?", revisionID).
		Order("occurred_at ASC").
		Find(&transitions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transitions: %w", err)
	}
	return transitions, nil
}

var _ qdocs.TransitionRecorder = (*GormTransitionRecorder)(nil)
