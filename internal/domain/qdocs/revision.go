package qdocs

import (
	"fmt"

	"github.com/fabos/server/internal/domain/shared"
	"github.com/google/uuid"
)

// DrawingRevision is one versioned issue of a drawing moving through the
// approval workflow. Status is only ever changed through Transition; the
// document fields are owned by the wider drawing management layer.
type DrawingRevision struct {
	shared.TenantAggregateRoot
	DrawingID    uuid.UUID      `gorm:"type:uuid;not null;index"`
	RevisionCode string         `gorm:"type:varchar(20);not null"` // e.g. "A", "B", "C1"
	RevisionType RevisionType   `gorm:"type:varchar(10);not null"`
	Status       RevisionStatus `gorm:"type:varchar(20);not null;default:'Draft';index"`
	Stage        DrawingStage   `gorm:"type:varchar(20);not null"`
	FileType     FileType       `gorm:"type:varchar(10);not null"`
	Description  string         `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (DrawingRevision) TableName() string {
	return "drawing_revisions"
}

// NewDrawingRevision creates a revision in Draft status
func NewDrawingRevision(tenantID, drawingID, createdBy uuid.UUID, revisionCode string, revisionType RevisionType, fileType FileType, description string) (*DrawingRevision, error) {
	if drawingID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DRAWING", "Drawing ID is required")
	}
	if revisionCode == "" {
		return nil, shared.NewDomainError("INVALID_REVISION_CODE", "Revision code is required")
	}
	if !revisionType.IsValid() {
		return nil, shared.NewDomainError("INVALID_REVISION_TYPE", fmt.Sprintf("Unrecognized revision type %q", string(revisionType)))
	}
	if !fileType.IsValid() {
		return nil, shared.NewDomainError("INVALID_FILE_TYPE", fmt.Sprintf("Unrecognized file type %q", string(fileType)))
	}

	stage := DrawingStageIFA
	if revisionType == RevisionTypeIFC {
		stage = DrawingStageIFC
	}

	rev := &DrawingRevision{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, createdBy),
		DrawingID:           drawingID,
		RevisionCode:        revisionCode,
		RevisionType:        revisionType,
		Status:              RevisionStatusDraft,
		Stage:               stage,
		FileType:            fileType,
		Description:         description,
	}

	rev.AddDomainEvent(NewRevisionCreatedEvent(rev))

	return rev, nil
}

// Transition moves the revision to the target status. It is the single
// mutation path for Status and returns the audit record describing the
// change, which the caller must persist alongside the revision.
func (r *DrawingRevision) Transition(to RevisionStatus, actorID uuid.UUID) (*RevisionTransition, error) {
	if !to.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unrecognized revision status %q", string(to)))
	}
	if !r.Status.CanTransitionTo(to) {
		return nil, shared.NewDomainError(shared.ErrInvalidTransition.Code,
			fmt.Sprintf("Cannot transition revision from %s to %s", r.Status, to))
	}

	from := r.Status
	r.Status = to
	if to == RevisionStatusSuperseded {
		r.Stage = DrawingStageSuperseded
	}
	r.Touch()
	r.IncrementVersion()

	record := NewRevisionTransition(r.TenantID, r.ID, from, to, actorID)
	r.AddDomainEvent(NewRevisionStatusChangedEvent(r, from, to, actorID))

	return record, nil
}
