package qdocs

import (
	"time"

	"github.com/google/uuid"
)

// RevisionTransition is one append-only audit entry recording who moved a
// revision between statuses and when. Entries are never updated or deleted.
type RevisionTransition struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	TenantID   uuid.UUID      `gorm:"type:uuid;not null;index"`
	RevisionID uuid.UUID      `gorm:"type:uuid;not null;index"`
	FromStatus RevisionStatus `gorm:"type:varchar(20);not null"`
	ToStatus   RevisionStatus `gorm:"type:varchar(20);not null"`
	ActorID    uuid.UUID      `gorm:"type:uuid;not null"`
	OccurredAt time.Time      `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (RevisionTransition) TableName() string {
	return "revision_transitions"
}

// NewRevisionTransition creates an audit entry for a status change
func NewRevisionTransition(tenantID, revisionID uuid.UUID, from, to RevisionStatus, actorID uuid.UUID) *RevisionTransition {
	return &RevisionTransition{
		ID:         uuid.New(),
		TenantID:   tenantID,
		RevisionID: revisionID,
		FromStatus: from,
		ToStatus:   to,
		ActorID:    actorID,
		OccurredAt: time.Now(),
	}
}
