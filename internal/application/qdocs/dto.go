package qdocs

import (
	"time"

	"github.com/fabos/server/internal/domain/qdocs"
	"github.com/fabos/server/internal/domain/shared"
	"github.com/google/uuid"
)

// CreateRevisionInput contains input for creating a drawing revision
type CreateRevisionInput struct {
	DrawingID    uuid.UUID `json:"drawing_id" binding:"required"`
	RevisionCode string    `json:"revision_code" binding:"required"`
	RevisionType string    `json:"revision_type" binding:"required"`
	FileType     string    `json:"file_type" binding:"required"`
	Description  string    `json:"description"`
}

// TransitionInput contains input for a revision status change
type TransitionInput struct {
	ToStatus string `json:"to_status" binding:"required"`
}

// ImportRowInput is one parsed drawing-list row submitted for vocabulary
// checks before an import session is accepted
type ImportRowInput struct {
	PartType    string  `json:"part_type" binding:"required"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit" binding:"required"`
	ParseStatus string  `json:"parse_status" binding:"required"`
}

// ImportRowDTO is the classification outcome for one row
type ImportRowDTO struct {
	PartType    string `json:"part_type"`
	Group       string `json:"group"`
	Unit        string `json:"unit"`
	ParseStatus string `json:"parse_status"`
	IsValid     bool   `json:"is_valid"`
	Reason      string `json:"reason,omitempty"`
}

// Part groups reported on classified import rows
const (
	PartGroupStructural = "Structural"
	PartGroupFastener   = "Fastener"
	PartGroupOther      = "Other"
)

// ImportClassificationDTO summarizes a classified import session
type ImportClassificationDTO struct {
	SessionStatus   string         `json:"session_status"`
	Rows            []ImportRowDTO `json:"rows"`
	StructuralCount int            `json:"structural_count"`
	FastenerCount   int            `json:"fastener_count"`
}

// RevisionDTO represents drawing revision data transfer object
type RevisionDTO struct {
	ID                 uuid.UUID  `json:"id"`
	DrawingID          uuid.UUID  `json:"drawing_id"`
	RevisionCode       string     `json:"revision_code"`
	RevisionType       string     `json:"revision_type"`
	Status             string     `json:"status"`
	Stage              string     `json:"stage"`
	FileType           string     `json:"file_type"`
	Description        string     `json:"description,omitempty"`
	AllowedTransitions []string   `json:"allowed_transitions"`
	CreatedBy          *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func toRevisionDTO(rev *qdocs.DrawingRevision) *RevisionDTO {
	allowed := rev.Status.AllowedTransitions()
	allowedStrings := make([]string, 0, len(allowed))
	for _, status := range allowed {
		allowedStrings = append(allowedStrings, status.String())
	}

	return &RevisionDTO{
		ID:                 rev.ID,
		DrawingID:          rev.DrawingID,
		RevisionCode:       rev.RevisionCode,
		RevisionType:       rev.RevisionType.String(),
		Status:             rev.Status.String(),
		Stage:              rev.Stage.String(),
		FileType:           rev.FileType.String(),
		Description:        rev.Description,
		AllowedTransitions: allowedStrings,
		CreatedBy:          rev.GetCreatedBy(),
		CreatedAt:          rev.CreatedAt,
		UpdatedAt:          rev.UpdatedAt,
	}
}

// TransitionDTO represents one entry of a revision's audit trail
type TransitionDTO struct {
	ID         uuid.UUID `json:"id"`
	RevisionID uuid.UUID `json:"revision_id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	ActorID    uuid.UUID `json:"actor_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func toTransitionDTO(tr *qdocs.RevisionTransition) TransitionDTO {
	return TransitionDTO{
		ID:         tr.ID,
		RevisionID: tr.RevisionID,
		FromStatus: tr.FromStatus.String(),
		ToStatus:   tr.ToStatus.String(),
		ActorID:    tr.ActorID,
		OccurredAt: tr.OccurredAt,
	}
}

// RevisionFilter represents filter for querying revisions
type RevisionFilter struct {
	Page     int
	PageSize int
	Status   string
}

// ToSharedFilter converts RevisionFilter to shared.Filter
func (f RevisionFilter) ToSharedFilter() shared.Filter {
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
