package assignment

import (
	"context"
	"errors"
	"time"

	assignmenterrors "go-backoffice/internal/assignment/errors"
	schemeerrors "go-backoffice/internal/scheme/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// SchemeChecker membatasi dependensi ke modul scheme: cukup tahu apakah
// skema ada dan aktif.
type SchemeChecker interface {
	Exists(ctx context.Context, schemeID string) (bool, error)
}

//go:generate mockgen -source=assignment_service.go -destination=mock/assignment_service_mock.go -package=mock
type Service interface {
	Assign(ctx context.Context, actorID string, req AssignSchemeRequest) (AssignmentResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]AssignmentResponse, error)
	CurrentFor(ctx context.Context, employeeID string, asOf time.Time) (AssignmentResponse, error)
	Close(ctx context.Context, actorID, id string, req CloseAssignmentRequest) (AssignmentResponse, error)
}

type service struct {
	repo    Repository
	schemes SchemeChecker
	logger  *zap.Logger
}

func NewService(repo Repository, schemes SchemeChecker, logger ...*zap.Logger) Service {
	l := zap.L().Named("assignment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("assignment.service")
	}
	return &service{repo: repo, schemes: schemes, logger: l}
}

func (s *service) Assign(ctx context.Context, actorID string, req AssignSchemeRequest) (AssignmentResponse, error) {
	s.logger.Debug("assign scheme requested",
		zap.String("employee_id", req.EmployeeID),
		zap.String("scheme_id", req.SchemeID),
		zap.String("effective_from", req.EffectiveFrom),
	)

	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AssignmentResponse{}, assignmenterrors.ErrInvalidEmployeeID
	}
	schemeUUID, err := uuid.Parse(req.SchemeID)
	if err != nil {
		return AssignmentResponse{}, schemeerrors.ErrInvalidSchemeID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return AssignmentResponse{}, assignmenterrors.ErrInvalidEmployeeID
	}

	from, err := time.Parse(dateLayout, req.EffectiveFrom)
	if err != nil {
		return AssignmentResponse{}, assignmenterrors.ErrInvalidDateRange
	}
	var to *time.Time
	if req.EffectiveTo != nil {
		parsed, err := time.Parse(dateLayout, *req.EffectiveTo)
		if err != nil {
			return AssignmentResponse{}, assignmenterrors.ErrInvalidDateRange
		}
		if !parsed.After(from) {
			return AssignmentResponse{}, assignmenterrors.ErrInvalidDateRange
		}
		to = &parsed
	}

	exists, err := s.schemes.Exists(ctx, req.SchemeID)
	if err != nil {
		return AssignmentResponse{}, err
	}
	if !exists {
		return AssignmentResponse{}, schemeerrors.ErrSchemeNotFound
	}

	overlapping, err := s.repo.FindOverlapping(ctx, req.EmployeeID, from, to)
	if err != nil {
		return AssignmentResponse{}, err
	}
	for _, existing := range overlapping {
		if existing.SchemeID == schemeUUID && existing.EffectiveFrom.Equal(from) {
			return AssignmentResponse{}, assignmenterrors.ErrDuplicateAssignment
		}
	}
	if len(overlapping) > 0 {
		s.logger.Warn("assign scheme rejected, overlapping period",
			zap.String("employee_id", req.EmployeeID),
			zap.Int("overlaps", len(overlapping)),
		)
		return AssignmentResponse{}, assignmenterrors.ErrAssignmentOverlap
	}

	a := &EmployeeLeaveScheme{
		ID:            uuid.New(),
		EmployeeID:    employeeUUID,
		SchemeID:      schemeUUID,
		EffectiveFrom: from,
		EffectiveTo:   to,
		AssignedBy:    actorUUID,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		s.logger.Error("assign scheme persist failed", zap.Error(err))
		return AssignmentResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("assign scheme success",
		zap.String("assignment_id", a.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.String("scheme_id", req.SchemeID),
	)
	return mapToResponse(*a), nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID string) ([]AssignmentResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, assignmenterrors.ErrInvalidEmployeeID
	}

	list, err := s.repo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	resp := make([]AssignmentResponse, len(list))
	for i, a := range list {
		resp[i] = mapToResponse(a)
	}
	return resp, nil
}

func (s *service) CurrentFor(ctx context.Context, employeeID string, asOf time.Time) (AssignmentResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return AssignmentResponse{}, assignmenterrors.ErrInvalidEmployeeID
	}

	a, err := s.repo.CurrentFor(ctx, employeeID, asOf)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AssignmentResponse{}, assignmenterrors.ErrNoCurrentScheme
		}
		return AssignmentResponse{}, err
	}
	return mapToResponse(*a), nil
}

func (s *service) Close(ctx context.Context, actorID, id string, req CloseAssignmentRequest) (AssignmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return AssignmentResponse{}, assignmenterrors.ErrInvalidAssignmentID
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AssignmentResponse{}, assignmenterrors.ErrAssignmentNotFound
		}
		return AssignmentResponse{}, err
	}

	to, err := time.Parse(dateLayout, req.EffectiveTo)
	if err != nil || !to.After(a.EffectiveFrom) {
		return AssignmentResponse{}, assignmenterrors.ErrInvalidDateRange
	}

	if err := s.repo.Close(ctx, id, to); err != nil {
		return AssignmentResponse{}, err
	}

	s.logger.Info("close assignment success",
		zap.String("assignment_id", id),
		zap.String("actor_id", actorID),
		zap.String("effective_to", req.EffectiveTo),
	)

	a.EffectiveTo = &to
	return mapToResponse(*a), nil
}

func mapToResponse(a EmployeeLeaveScheme) AssignmentResponse {
	resp := AssignmentResponse{
		ID:            a.ID.String(),
		EmployeeID:    a.EmployeeID.String(),
		SchemeID:      a.SchemeID.String(),
		EffectiveFrom: a.EffectiveFrom.Format(dateLayout),
		AssignedBy:    a.AssignedBy.String(),
	}
	if a.EffectiveTo != nil {
		v := a.EffectiveTo.Format(dateLayout)
		resp.EffectiveTo = &v
	}
	if a.Scheme != nil {
		resp.SchemeName = a.Scheme.Name
	}
	return resp
}
