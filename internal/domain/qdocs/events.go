package qdocs

import (
	"github.com/fabos/server/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeDrawingRevision = "DrawingRevision"

// Event type constants
const (
	EventTypeRevisionCreated       = "RevisionCreated"
	EventTypeRevisionStatusChanged = "RevisionStatusChanged"
)

// RevisionCreatedEvent is published when a new drawing revision is created
type RevisionCreatedEvent struct {
	shared.BaseDomainEvent
	DrawingID    uuid.UUID    `json:"drawing_id"`
	RevisionCode string       `json:"revision_code"`
	RevisionType RevisionType `json:"revision_type"`
}

// NewRevisionCreatedEvent creates a new RevisionCreatedEvent
func NewRevisionCreatedEvent(rev *DrawingRevision) *RevisionCreatedEvent {
	return &RevisionCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRevisionCreated, AggregateTypeDrawingRevision, rev.ID, rev.TenantID),
		DrawingID:       rev.DrawingID,
		RevisionCode:    rev.RevisionCode,
		RevisionType:    rev.RevisionType,
	}
}

// RevisionStatusChangedEvent is published when a revision moves between
// workflow statuses
type RevisionStatusChangedEvent struct {
	shared.BaseDomainEvent
	DrawingID  uuid.UUID      `json:"drawing_id"`
	FromStatus RevisionStatus `json:"from_status"`
	ToStatus   RevisionStatus `json:"to_status"`
	ActorID    uuid.UUID      `json:"actor_id"`
}

// NewRevisionStatusChangedEvent creates a new RevisionStatusChangedEvent
func NewRevisionStatusChangedEvent(rev *DrawingRevision, from, to RevisionStatus, actorID uuid.UUID) *RevisionStatusChangedEvent {
	return &RevisionStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRevisionStatusChanged, AggregateTypeDrawingRevision, rev.ID, rev.TenantID),
		DrawingID:       rev.DrawingID,
		FromStatus:      from,
		ToStatus:        to,
		ActorID:         actorID,
	}
}
