package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	employeeerrors "go-backoffice/internal/employee/errors"
	"go-backoffice/internal/events"
	"go-backoffice/internal/messaging/kafka"
	"go-backoffice/internal/shared/contextutil"
	"go-backoffice/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	OptionsCacheKey = "employees:options"
	counterType     = "employee_code"
	dateLayout      = "2006-01-02"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, query ListEmployeeQuery) ([]EmployeeResponse, int64, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	GetByUserID(ctx context.Context, userID string) (EmployeeResponse, error)
	Update(ctx context.Context, actorID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeOption, error)

	ProposeSalary(ctx context.Context, actorID, id string, req ProposeSalaryRequest) (EmployeeResponse, error)
	DecideSalary(ctx context.Context, actorID, id string, req DecideSalaryRequest) (EmployeeResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	counters counter.Repository
	outbox   kafka.OutboxRepository
	rdb      *redis.Client
	sf       *singleflight.Group
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counters counter.Repository,
	outbox kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		counters: counters,
		outbox:   outbox,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		logger:   l,
	}
}

// Create menulis baris employee dan event lifecycle dalam satu
// transaksi. Konsumen event membuat saldo cuti awal.
func (s *service) Create(ctx context.Context, actorID string, req CreateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("create employee requested",
		zap.String("actor_id", actorID),
		zap.String("email", req.Email),
	)

	if req.Salary < 0 {
		return EmployeeResponse{}, employeeerrors.ErrInvalidSalary
	}

	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return EmployeeResponse{}, employeeerrors.ErrDuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return EmployeeResponse{}, err
	}

	seq, err := s.counters.GetNextValue(ctx, counterType)
	if err != nil {
		return EmployeeResponse{}, err
	}

	e := &Employee{
		ID:           uuid.New(),
		EmpCode:      fmt.Sprintf("EMP-%06d", seq),
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		Department:   req.Department,
		Designation:  req.Designation,
		Salary:       req.Salary,
		SalaryStatus: SalaryStatusNone,
		IsActive:     true,
	}
	if req.UserID != "" {
		userUUID, err := uuid.Parse(req.UserID)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
		}
		e.UserID = &userUUID
	}
	if req.BranchID != "" {
		branchUUID, err := uuid.Parse(req.BranchID)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
		}
		e.BranchID = &branchUUID
	}
	if req.JoiningDate != "" {
		joined, err := time.Parse(dateLayout, req.JoiningDate)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
		}
		e.JoiningDate = joined
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, e); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueueCreatedEvent(ctx, tx, e); err != nil {
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)
	s.logger.Info("create employee success",
		zap.String("employee_id", e.ID.String()),
		zap.String("emp_code", e.EmpCode),
	)
	return mapToResponse(*e), nil
}

func (s *service) GetAll(ctx context.Context, query ListEmployeeQuery) ([]EmployeeResponse, int64, error) {
	filter := ListFilter{
		Department: query.Department,
		BranchID:   query.BranchID,
		ActiveOnly: query.Active,
		Search:     query.Search,
		Limit:      query.Limit,
		Offset:     (query.Page - 1) * query.Limit,
	}

	employees, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		resp[i] = mapToResponse(e)
	}
	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) GetByUserID(ctx context.Context, userID string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	e, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) Update(ctx context.Context, actorID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}

	if req.FullName != "" {
		e.FullName = req.FullName
	}
	if req.Phone != "" {
		e.Phone = req.Phone
	}
	if req.Department != "" {
		e.Department = req.Department
	}
	if req.Designation != "" {
		e.Designation = req.Designation
	}
	if req.BranchID != "" {
		branchUUID, err := uuid.Parse(req.BranchID)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
		}
		e.BranchID = &branchUUID
	}
	if req.IsActive != nil {
		e.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptionsCache(ctx)
	return mapToResponse(*e), nil
}

func (s *service) GetOptions(ctx context.Context) ([]EmployeeOption, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, OptionsCacheKey).Result(); err == nil {
			var resp []EmployeeOption
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(OptionsCacheKey, func() (interface{}, error) {
		employees, _, err := s.repo.FindAll(ctx, ListFilter{ActiveOnly: true, Limit: 100})
		if err != nil {
			return nil, err
		}

		resp := make([]EmployeeOption, len(employees))
		for i, e := range employees {
			resp[i] = EmployeeOption{
				ID:       e.ID.String(),
				EmpCode:  e.EmpCode,
				FullName: e.FullName,
			}
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, OptionsCacheKey, jsonData, 15*time.Minute)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}
	return v.([]EmployeeOption), nil
}

func (s *service) ProposeSalary(ctx context.Context, actorID, id string, req ProposeSalaryRequest) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	if req.ProposedSalary < 0 {
		return EmployeeResponse{}, employeeerrors.ErrInvalidSalary
	}

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}

	if e.SalaryStatus == SalaryStatusProposed {
		return EmployeeResponse{}, employeeerrors.ErrProposalPending
	}

	proposed := req.ProposedSalary
	e.ProposedSalary = &proposed
	e.SalaryStatus = SalaryStatusProposed

	if err := s.repo.Update(ctx, e); err != nil {
		return EmployeeResponse{}, err
	}

	s.logger.Info("propose salary success",
		zap.String("employee_id", id),
		zap.String("actor_id", actorID),
		zap.Int64("proposed_salary", proposed),
	)
	return mapToResponse(*e), nil
}

func (s *service) DecideSalary(ctx context.Context, actorID, id string, req DecideSalaryRequest) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}

	if e.SalaryStatus != SalaryStatusProposed || e.ProposedSalary == nil {
		return EmployeeResponse{}, employeeerrors.ErrNoPendingProposal
	}

	if req.Decision == SalaryStatusApproved {
		e.Salary = *e.ProposedSalary
	}
	e.SalaryStatus = req.Decision
	e.ProposedSalary = nil

	if err := s.repo.Update(ctx, e); err != nil {
		return EmployeeResponse{}, err
	}

	s.logger.Info("decide salary success",
		zap.String("employee_id", id),
		zap.String("actor_id", actorID),
		zap.String("decision", req.Decision),
	)
	return mapToResponse(*e), nil
}

func (s *service) enqueueCreatedEvent(ctx context.Context, tx *sql.Tx, e *Employee) error {
	event := events.EmployeeCreatedEvent{
		EventType:  "employee.created",
		RequestID:  contextutil.GetRequestID(ctx),
		EmployeeID: e.ID.String(),
		OccurredAt: time.Now(),
	}
	if e.BranchID != nil {
		event.BranchID = e.BranchID.String()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     event.RequestID,
		AggregateType: "employee",
		AggregateID:   e.ID.String(),
		EventType:     event.EventType,
		Topic:         events.EmployeeCreatedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) invalidateOptionsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, OptionsCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", OptionsCacheKey),
		)
	}
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:             e.ID.String(),
		EmpCode:        e.EmpCode,
		FullName:       e.FullName,
		Email:          e.Email,
		Phone:          e.Phone,
		Department:     e.Department,
		Designation:    e.Designation,
		Salary:         e.Salary,
		ProposedSalary: e.ProposedSalary,
		SalaryStatus:   e.SalaryStatus,
		IsActive:       e.IsActive,
	}
	if e.UserID != nil {
		v := e.UserID.String()
		resp.UserID = &v
	}
	if e.BranchID != nil {
		v := e.BranchID.String()
		resp.BranchID = &v
	}
	if !e.JoiningDate.IsZero() {
		resp.JoiningDate = e.JoiningDate.Format(dateLayout)
	}
	return resp
}
