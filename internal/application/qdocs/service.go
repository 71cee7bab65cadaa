package qdocs

import (
	"context"

	"github.com/fabos/server/internal/domain/qdocs"
	"github.com/fabos/server/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service handles drawing revision workflow operations
type Service struct {
	repo     qdocs.Repository
	recorder qdocs.TransitionRecorder
	scope    TransactionScope
	logger   *zap.Logger
}

// NewService creates a new revision workflow service
func NewService(repo qdocs.Repository, recorder qdocs.TransitionRecorder, scope TransactionScope, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		recorder: recorder,
		scope:    scope,
		logger:   logger,
	}
}

// CreateRevision creates a new revision in Draft status
func (s *Service) CreateRevision(ctx context.Context, tenantID, userID uuid.UUID, input CreateRevisionInput) (*RevisionDTO, error) {
	rev, err := qdocs.NewDrawingRevision(tenantID, input.DrawingID, userID,
		input.RevisionCode, qdocs.RevisionType(input.RevisionType), qdocs.FileType(input.FileType), input.Description)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, rev); err != nil {
		s.logger.Error("Failed to create revision",
			zap.String("drawing_id", input.DrawingID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create revision")
	}

	s.logger.Info("Revision created",
		zap.String("revision_id", rev.ID.String()),
		zap.String("drawing_id", rev.DrawingID.String()),
		zap.String("revision_code", rev.RevisionCode))

	return toRevisionDTO(rev), nil
}

// GetByID retrieves a revision by ID
func (s *Service) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*RevisionDTO, error) {
	rev, err := s.findOwned(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toRevisionDTO(rev), nil
}

// ListByDrawing returns the revisions of a drawing, newest first
func (s *Service) ListByDrawing(ctx context.Context, tenantID, drawingID uuid.UUID, filter RevisionFilter) ([]RevisionDTO, error) {
	revs, err := s.repo.FindByDrawing(ctx, tenantID, drawingID, filter.ToSharedFilter())
	if err != nil {
		s.logger.Error("Failed to list revisions", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list revisions")
	}

	dtos := make([]RevisionDTO, 0, len(revs))
	for i := range revs {
		dtos = append(dtos, *toRevisionDTO(&revs[i]))
	}
	return dtos, nil
}

// CanTransition checks a status change against the workflow table without
// performing it
func (s *Service) CanTransition(from, to string) bool {
	fromStatus, ok := qdocs.ParseRevisionStatus(from)
	if !ok {
		return false
	}
	toStatus, ok := qdocs.ParseRevisionStatus(to)
	if !ok {
		return false
	}
	return fromStatus.CanTransitionTo(toStatus)
}

// ClassifyImportRows checks parsed drawing-list rows against the closed
// part, unit and parse-status vocabularies and groups parts for takeoff.
// The derived session status is Failed when any row failed to parse,
// PendingReview when any row needs correction, and Ready otherwise. Bad
// rows come back as value-level results, never as errors.
func (s *Service) ClassifyImportRows(rows []ImportRowInput) ImportClassificationDTO {
	out := ImportClassificationDTO{Rows: make([]ImportRowDTO, 0, len(rows))}
	session := qdocs.ImportSessionReady

	for _, row := range rows {
		rowDTO := ImportRowDTO{
			PartType:    row.PartType,
			Unit:        row.Unit,
			ParseStatus: row.ParseStatus,
			Group:       PartGroupOther,
			IsValid:     true,
		}

		partType := qdocs.PartType(row.PartType)
		parseStatus := qdocs.ParseStatus(row.ParseStatus)
		unit := qdocs.QuantityUnit(row.Unit)

		switch {
		case !parseStatus.IsValid():
			rowDTO.IsValid = false
			rowDTO.Reason = "Unrecognized parse status " + row.ParseStatus
		case parseStatus == qdocs.ParseStatusFailed:
			rowDTO.IsValid = false
			rowDTO.Reason = "Row failed to parse"
			session = qdocs.ImportSessionFailed
		case !partType.IsValid():
			rowDTO.IsValid = false
			rowDTO.Reason = "Unrecognized part type " + row.PartType
		case !unit.IsValid():
			rowDTO.IsValid = false
			rowDTO.Reason = "Unrecognized quantity unit " + row.Unit
		case row.Quantity <= 0:
			rowDTO.IsValid = false
			rowDTO.Reason = "Quantity must be positive"
		}

		if rowDTO.IsValid {
			switch {
			case partType.IsStructural():
				rowDTO.Group = PartGroupStructural
				out.StructuralCount++
			case partType.IsFastener():
				rowDTO.Group = PartGroupFastener
				out.FastenerCount++
			}
		} else if session == qdocs.ImportSessionReady {
			session = qdocs.ImportSessionPendingReview
		}

		out.Rows = append(out.Rows, rowDTO)
	}

	out.SessionStatus = session.String()
	return out
}

// Transition moves a revision to the target status and appends the audit
// entry in the same transaction
func (s *Service) Transition(ctx context.Context, tenantID, actorID, revisionID uuid.UUID, input TransitionInput) (*RevisionDTO, error) {
	toStatus, ok := qdocs.ParseRevisionStatus(input.ToStatus)
	if !ok {
		return nil, shared.NewDomainError("INVALID_STATUS", "Unrecognized revision status "+input.ToStatus)
	}

	var rev *qdocs.DrawingRevision
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		rev, err = repos.RevisionRepo().FindByID(ctx, revisionID)
		if err != nil {
			return err
		}
		if rev.TenantID != tenantID {
			return shared.ErrNotFound
		}

		record, err := rev.Transition(toStatus, actorID)
		if err != nil {
			return err
		}

		if err := repos.RevisionRepo().Save(ctx, rev); err != nil {
			return err
		}
		return repos.TransitionRecorder().Record(ctx, record)
	})
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("REVISION_NOT_FOUND", "Revision not found")
		}
		if domainErr, ok := err.(*shared.DomainError); ok {
			return nil, domainErr
		}
		s.logger.Error("Failed to transition revision",
			zap.String("revision_id", revisionID.String()),
			zap.String("to_status", input.ToStatus),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to transition revision")
	}

	s.logger.Info("Revision transitioned",
		zap.String("revision_id", rev.ID.String()),
		zap.String("status", rev.Status.String()),
		zap.String("actor_id", actorID.String()))

	return toRevisionDTO(rev), nil
}

// AuditTrail returns the status-change history of a revision, oldest first
func (s *Service) AuditTrail(ctx context.Context, tenantID, revisionID uuid.UUID) ([]TransitionDTO, error) {
	if _, err := s.findOwned(ctx, tenantID, revisionID); err != nil {
		return nil, err
	}

	transitions, err := s.recorder.FindByRevision(ctx, tenantID, revisionID)
	if err != nil {
		s.logger.Error("Failed to load audit trail", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load audit trail")
	}

	dtos := make([]TransitionDTO, 0, len(transitions))
	for i := range transitions {
		dtos = append(dtos, toTransitionDTO(&transitions[i]))
	}
	return dtos, nil
}

func (s *Service) findOwned(ctx context.Context, tenantID, id uuid.UUID) (*qdocs.DrawingRevision, error) {
	rev, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("REVISION_NOT_FOUND", "Revision not found")
		}
		s.logger.Error("Failed to find revision", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find revision")
	}
	if rev.TenantID != tenantID {
		return nil, shared.NewDomainError("REVISION_NOT_FOUND", "Revision not found")
	}
	return rev, nil
}
