package lead

import (
	"context"
	"errors"
	"time"

	"go-backoffice/internal/employee"
	leaderrors "go-backoffice/internal/lead/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=lead_service.go -destination=mock/lead_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateLeadRequest) (LeadResponse, error)
	GetAll(ctx context.Context, filter GetLeadsFilterRequest) ([]LeadResponse, int64, error)
	GetByID(ctx context.Context, id string) (LeadResponse, error)
	Update(ctx context.Context, id string, req UpdateLeadRequest) (LeadResponse, error)
	Transition(ctx context.Context, id string, req TransitionLeadRequest) (LeadResponse, error)
	Assign(ctx context.Context, id string, req AssignLeadRequest) (LeadResponse, error)
	Reenquire(ctx context.Context, actorID, id string) (LeadResponse, error)
}

type service struct {
	repo      Repository
	employees employee.Repository
	logger    *zap.Logger
}

func NewService(repo Repository, employees employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("lead.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("lead.service")
	}
	return &service{repo: repo, employees: employees, logger: l}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateLeadRequest) (LeadResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeadResponse{}, leaderrors.ErrInvalidLeadID
	}

	l := &Lead{
		ID:        uuid.New(),
		Name:      req.Name,
		Contact:   req.Contact,
		Source:    req.Source,
		Status:    StatusNew,
		CreatedBy: actorUUID,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return LeadResponse{}, err
	}

	s.logger.Info("create lead success",
		zap.String("lead_id", l.ID.String()),
		zap.String("name", req.Name),
	)
	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, filter GetLeadsFilterRequest) ([]LeadResponse, int64, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	leads, total, err := s.repo.FindAll(ctx, ListFilter{
		Status:     filter.Status,
		AssignedTo: filter.AssignedTo,
		Search:     filter.Search,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	})
	if err != nil {
		return nil, 0, err
	}

	resp := make([]LeadResponse, len(leads))
	for i, l := range leads {
		resp[i] = mapToResponse(l)
	}
	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeadResponse, error) {
	l, err := s.findLead(ctx, id)
	if err != nil {
		return LeadResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateLeadRequest) (LeadResponse, error) {
	l, err := s.findLead(ctx, id)
	if err != nil {
		return LeadResponse{}, err
	}

	if req.Name != nil {
		l.Name = *req.Name
	}
	if req.Contact != nil {
		l.Contact = *req.Contact
	}
	if req.Source != nil {
		l.Source = *req.Source
	}

	if err := s.repo.Update(ctx, l); err != nil {
		return LeadResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) Transition(ctx context.Context, id string, req TransitionLeadRequest) (LeadResponse, error) {
	l, err := s.findLead(ctx, id)
	if err != nil {
		return LeadResponse{}, err
	}

	if IsTerminal(l.Status) {
		return LeadResponse{}, leaderrors.ErrLeadTerminal
	}
	if !CanTransition(l.Status, req.Status) {
		return LeadResponse{}, leaderrors.ErrInvalidTransition
	}

	from := l.Status
	l.Status = req.Status
	if err := s.repo.Update(ctx, l); err != nil {
		return LeadResponse{}, err
	}

	s.logger.Info("lead transition success",
		zap.String("lead_id", id),
		zap.String("from", from),
		zap.String("to", req.Status),
	)
	return mapToResponse(*l), nil
}

func (s *service) Assign(ctx context.Context, id string, req AssignLeadRequest) (LeadResponse, error) {
	l, err := s.findLead(ctx, id)
	if err != nil {
		return LeadResponse{}, err
	}

	if IsTerminal(l.Status) {
		return LeadResponse{}, leaderrors.ErrLeadTerminal
	}

	emp, err := s.employees.FindByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeadResponse{}, leaderrors.ErrInvalidEmployeeID
		}
		return LeadResponse{}, err
	}
	if !emp.IsActive {
		return LeadResponse{}, leaderrors.ErrInvalidEmployeeID
	}

	l.AssignedTo = &emp.ID
	if err := s.repo.Update(ctx, l); err != nil {
		return LeadResponse{}, err
	}

	s.logger.Info("assign lead success",
		zap.String("lead_id", id),
		zap.String("employee_id", req.EmployeeID),
	)
	return mapToResponse(*l), nil
}

// Reenquire membuka lead baru berstatus NEW yang menunjuk lead lama.
// Hanya lead CONVERTED atau DROPPED yang bisa di-reenquire.
func (s *service) Reenquire(ctx context.Context, actorID, id string) (LeadResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeadResponse{}, leaderrors.ErrInvalidLeadID
	}

	prev, err := s.findLead(ctx, id)
	if err != nil {
		return LeadResponse{}, err
	}

	if !IsTerminal(prev.Status) {
		return LeadResponse{}, leaderrors.ErrReenquireNotTerminal
	}

	l := &Lead{
		ID:             uuid.New(),
		Name:           prev.Name,
		Contact:        prev.Contact,
		Source:         prev.Source,
		Status:         StatusNew,
		PreviousLeadID: &prev.ID,
		CreatedBy:      actorUUID,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return LeadResponse{}, err
	}

	s.logger.Info("reenquire lead success",
		zap.String("lead_id", l.ID.String()),
		zap.String("previous_lead_id", id),
	)
	return mapToResponse(*l), nil
}

func (s *service) findLead(ctx context.Context, id string) (*Lead, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, leaderrors.ErrInvalidLeadID
	}

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaderrors.ErrLeadNotFound
		}
		return nil, err
	}
	return l, nil
}

func mapToResponse(l Lead) LeadResponse {
	resp := LeadResponse{
		ID:        l.ID.String(),
		Name:      l.Name,
		Contact:   l.Contact,
		Source:    l.Source,
		Status:    l.Status,
		CreatedBy: l.CreatedBy.String(),
		CreatedAt: l.CreatedAt.Format(time.RFC3339),
	}

	if l.AssignedTo != nil {
		v := l.AssignedTo.String()
		resp.AssignedTo = &v
	}
	if l.PreviousLeadID != nil {
		v := l.PreviousLeadID.String()
		resp.PreviousLeadID = &v
	}
	return resp
}
