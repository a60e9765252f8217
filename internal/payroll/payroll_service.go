package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-backoffice/internal/employee"
	"go-backoffice/internal/events"
	"go-backoffice/internal/leave"
	"go-backoffice/internal/messaging/kafka"
	payrollerrors "go-backoffice/internal/payroll/errors"
	"go-backoffice/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const periodLayout = "2006-01"

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreatePayrollRequest) (PayrollResponse, error)
	GetAll(ctx context.Context, filter GetPayrollsFilterRequest) ([]PayrollResponse, int64, error)
	GetByID(ctx context.Context, id string) (PayrollResponse, error)
	Approve(ctx context.Context, actorID, id string) (PayrollResponse, error)
	MarkAsPaid(ctx context.Context, actorID, id string) (PayrollResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	leaves    leave.Repository
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	leaves leave.Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		leaves:    leaves,
		outbox:    outbox,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, actorID string, req CreatePayrollRequest) (PayrollResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidEmployeeID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidEmployeeID
	}

	periodStart, err := time.Parse(periodLayout, req.Period)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidPeriod
	}
	periodEnd := periodStart.AddDate(0, 1, -1)

	emp, err := s.employees.FindByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrInvalidEmployeeID
		}
		return PayrollResponse{}, err
	}

	if _, err := s.repo.FindByEmployeeAndPeriod(ctx, req.EmployeeID, req.Period); err == nil {
		return PayrollResponse{}, payrollerrors.ErrDuplicatePeriod
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return PayrollResponse{}, err
	}

	unpaidDays, err := s.leaves.CountApprovedUnpaidDays(ctx, req.EmployeeID, periodStart, periodEnd)
	if err != nil {
		return PayrollResponse{}, err
	}

	// Potongan prorata: gaji dibagi jumlah hari kalender bulan itu,
	// dikali hari cuti APPROVED tak berbayar dalam periode.
	daysInMonth := decimal.NewFromInt(int64(periodEnd.Day()))
	deduction := decimal.NewFromInt(emp.Salary).
		Div(daysInMonth).
		Mul(unpaidDays).
		Round(0).
		IntPart()
	if deduction > emp.Salary {
		deduction = emp.Salary
	}

	p := &Payroll{
		ID:              uuid.New(),
		EmployeeID:      employeeUUID,
		Period:          req.Period,
		BaseSalary:      emp.Salary,
		UnpaidLeaveDays: unpaidDays.Round(1),
		Deduction:       deduction,
		NetPay:          emp.Salary - deduction,
		Status:          StatusDraft,
		CreatedBy:       actorUUID,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, p); err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	s.logger.Info("create payroll success",
		zap.String("payroll_id", p.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.String("period", req.Period),
	)
	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context, filter GetPayrollsFilterRequest) ([]PayrollResponse, int64, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	payrolls, total, err := s.repo.FindAll(ctx, ListFilter{
		EmployeeID: filter.EmployeeID,
		Status:     filter.Status,
		Period:     filter.Period,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	})
	if err != nil {
		return nil, 0, err
	}

	resp := make([]PayrollResponse, len(payrolls))
	for i, p := range payrolls {
		resp[i] = mapToResponse(p)
	}
	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (PayrollResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidPayrollID
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}
	return mapToResponse(*p), nil
}

// Approve mengunci baris payroll, memindahkan status DRAFT ke APPROVED,
// dan menulis event payslip ke outbox dalam transaksi yang sama.
func (s *service) Approve(ctx context.Context, actorID, id string) (PayrollResponse, error) {
	approverUUID, err := uuid.Parse(actorID)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidPayrollID
	}
	if _, err := uuid.Parse(id); err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidPayrollID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}

	if p.Status != StatusDraft {
		return PayrollResponse{}, payrollerrors.ErrNotDraft
	}

	now := time.Now()
	p.Status = StatusApproved
	p.ApprovedBy = &approverUUID
	p.ApprovedAt = &now

	if err := qtx.UpdateStatus(ctx, p); err != nil {
		return PayrollResponse{}, err
	}

	if err := s.enqueuePayslipEvent(ctx, tx, p, now); err != nil {
		return PayrollResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	s.logger.Info("approve payroll success",
		zap.String("payroll_id", id),
		zap.String("approver_id", actorID),
	)
	return mapToResponse(*p), nil
}

func (s *service) MarkAsPaid(ctx context.Context, actorID, id string) (PayrollResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidPayrollID
	}
	if _, err := uuid.Parse(id); err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidPayrollID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}

	if p.Status != StatusApproved {
		return PayrollResponse{}, payrollerrors.ErrNotApproved
	}

	now := time.Now()
	p.Status = StatusPaid
	p.PaidAt = &now

	if err := qtx.UpdateStatus(ctx, p); err != nil {
		return PayrollResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	s.logger.Info("mark payroll paid success", zap.String("payroll_id", id))
	return mapToResponse(*p), nil
}

func (s *service) enqueuePayslipEvent(ctx context.Context, tx *sql.Tx, p *Payroll, at time.Time) error {
	event := events.PayrollPayslipRequestedEvent{
		EventType:  "payroll.payslip.requested",
		RequestID:  contextutil.GetRequestID(ctx),
		PayrollID:  p.ID.String(),
		EmployeeID: p.EmployeeID.String(),
		OccurredAt: at,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     event.RequestID,
		AggregateType: "payroll",
		AggregateID:   p.ID.String(),
		EventType:     event.EventType,
		Topic:         events.PayrollPayslipRequestedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapToResponse(p Payroll) PayrollResponse {
	resp := PayrollResponse{
		ID:              p.ID.String(),
		EmployeeID:      p.EmployeeID.String(),
		Period:          p.Period,
		BaseSalary:      p.BaseSalary,
		UnpaidLeaveDays: p.UnpaidLeaveDays.StringFixed(1),
		Deduction:       p.Deduction,
		NetPay:          p.NetPay,
		Status:          p.Status,
		CreatedBy:       p.CreatedBy.String(),
	}

	if p.ApprovedBy != nil {
		v := p.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if p.ApprovedAt != nil {
		v := p.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	if p.PaidAt != nil {
		v := p.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &v
	}
	return resp
}
