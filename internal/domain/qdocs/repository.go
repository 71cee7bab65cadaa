package qdocs

import (
	"context"

	"github.com/fabos/server/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines the interface for drawing revision persistence
type Repository interface {
	// FindByID finds a revision by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*DrawingRevision, error)

	// FindByDrawing finds all revisions for a drawing, newest first
	FindByDrawing(ctx context.Context, tenantID, drawingID uuid.UUID, filter shared.Filter) ([]DrawingRevision, error)

	// FindByStatus finds revisions in the given status for a tenant
	FindByStatus(ctx context.Context, tenantID uuid.UUID, status RevisionStatus, filter shared.Filter) ([]DrawingRevision, error)

	// Save creates or updates a revision
	Save(ctx context.Context, rev *DrawingRevision) error

	// Delete deletes a revision
	Delete(ctx context.Context, id uuid.UUID) error
}

// TransitionRecorder appends status-change audit entries. Implementations
// must write the entry in the same transaction as the revision update.
type TransitionRecorder interface {
	// Record appends a transition audit entry
	Record(ctx context.Context, transition *RevisionTransition) error

	// FindByRevision returns the audit trail of a revision, oldest first
	FindByRevision(ctx context.Context, tenantID, revisionID uuid.UUID) ([]RevisionTransition, error)
}
