package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-backoffice/internal/balance"
	balanceerrors "go-backoffice/internal/balance/errors"
	"go-backoffice/internal/events"
	leaveerrors "go-backoffice/internal/leave/errors"
	"go-backoffice/internal/messaging/kafka"
	"go-backoffice/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// Authorizer menjawab apakah sebuah role boleh melakukan aksi cuti
// tertentu. Implementasinya ada di modul rbac.
type Authorizer interface {
	HasPermission(role, permission string) (bool, error)
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, employeeID string, req SubmitLeaveRequest) (LeaveApplicationResponse, error)
	Decide(ctx context.Context, approverID, approverRole, applicationID string, req DecideLeaveRequest) (LeaveApplicationResponse, error)
	Cancel(ctx context.Context, actorID, applicationID string) (LeaveApplicationResponse, error)
	GetAll(ctx context.Context, query ListLeaveQuery) ([]LeaveApplicationResponse, int64, error)
	GetByID(ctx context.Context, id string) (LeaveApplicationResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveApplicationResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	balances   balance.Service
	outbox     kafka.OutboxRepository
	authorizer Authorizer
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	balances balance.Service,
	outbox kafka.OutboxRepository,
	authorizer Authorizer,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		balances:   balances,
		outbox:     outbox,
		authorizer: authorizer,
		logger:     l,
	}
}

// Submit memotong saldo pending dan menyimpan pengajuan dalam satu
// transaksi. Kalau sisa saldo kurang, tidak ada baris yang tertulis.
func (s *service) Submit(ctx context.Context, employeeID string, req SubmitLeaveRequest) (LeaveApplicationResponse, error) {
	s.logger.Debug("submit leave requested",
		zap.String("employee_id", employeeID),
		zap.String("leave_type_id", req.LeaveTypeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return LeaveApplicationResponse{}, leaveerrors.ErrInvalidApplicationID
	}
	leaveTypeUUID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return LeaveApplicationResponse{}, leaveerrors.ErrInvalidApplicationID
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return LeaveApplicationResponse{}, leaveerrors.ErrInvalidDateRange
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return LeaveApplicationResponse{}, leaveerrors.ErrInvalidDateRange
	}
	if end.Before(start) {
		return LeaveApplicationResponse{}, leaveerrors.ErrInvalidDateRange
	}

	days := balance.WorkingDays(start, end)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveApplicationResponse{}, err
	}
	defer tx.Rollback()

	bal, err := s.balances.EnsureTx(ctx, tx, employeeID, req.LeaveTypeID, start.Year())
	if err != nil {
		return LeaveApplicationResponse{}, err
	}

	if days.GreaterThan(bal.Remaining()) {
		s.logger.Warn("submit leave rejected, insufficient balance",
			zap.String("employee_id", employeeID),
			zap.String("requested_days", days.String()),
			zap.String("remaining_days", bal.Remaining().String()),
		)
		return LeaveApplicationResponse{}, balanceerrors.ErrInsufficientBalance
	}

	app := &LeaveApplication{
		ID:             uuid.New(),
		EmployeeID:     employeeUUID,
		LeaveTypeID:    leaveTypeUUID,
		StartDate:      start,
		EndDate:        end,
		WorkingDays:    days,
		Reason:         req.Reason,
		ContactDetails: req.ContactDetails,
		HandoverNotes:  req.HandoverNotes,
		Status:         StatusPending,
	}

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, app); err != nil {
		s.logger.Error("submit leave persist failed", zap.Error(err))
		return LeaveApplicationResponse{}, err
	}

	newPending := bal.PendingDays.Add(days)
	if err := s.balances.UpdateCountersTx(ctx, tx, bal.ID.String(), bal.UsedDays, newPending); err != nil {
		return LeaveApplicationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeaveApplicationResponse{}, err
	}

	s.logger.Info("submit leave success",
		zap.String("application_id", app.ID.String()),
		zap.String("employee_id", employeeID),
		zap.String("working_days", days.String()),
	)

	resp := mapToResponse(*app)
	resp.RemainingDays = balance.Remaining(bal.AllocatedDays, bal.UsedDays, newPending).StringFixed(1)
	return resp, nil
}

// Decide memutuskan satu pengajuan PENDING. Baris pengajuan dan baris
// saldo dikunci bersamaan; keputusan kedua atas pengajuan yang sama
// selalu gagal dengan konflik, bukan menimpa.
func (s *service) Decide(ctx context.Context, approverID, approverRole, applicationID string, req DecideLeaveRequest) (LeaveApplicationResponse, error) {
	if req.Decision != StatusApproved && req.Decision != StatusRejected {
		return LeaveApplicationResponse{}, leaveerrors.ErrInvalidDecision
	}

	approverUUID, err := uuid.Parse(approverID)
	if err != nil {
		return LeaveApplicationResponse{}, leaveerrors.ErrInvalidApplicationID
	}
	if _, err := uuid.Parse(applicationID); err != nil {
		return LeaveApplicationResponse{}, leaveerrors.ErrInvalidApplicationID
	}

	allowed, err := s.authorizer.HasPermission(approverRole, "leave.approve")
	if err != nil {
		return LeaveApplicationResponse{}, err
	}
	if !allowed {
		s.logger.Warn("decide leave rejected, role not allowed",
			zap.String("approver_id", approverID),
			zap.String("role", approverRole),
		)
		return LeaveApplicationResponse{}, leaveerrors.ErrApproverNotAllowed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveApplicationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	app, err := qtx.FindByIDForUpdate(ctx, applicationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return LeaveApplicationResponse{}, leaveerrors.ErrApplicationNotFound
		}
		return LeaveApplicationResponse{}, err
	}

	if app.EmployeeID == approverUUID {
		return LeaveApplicationResponse{}, leaveerrors.ErrSelfApproval
	}
	if IsTerminal(app.Status) {
		return LeaveApplicationResponse{}, leaveerrors.ErrAlreadyDecided
	}

	bal, err := s.balances.EnsureTx(ctx, tx, app.EmployeeID.String(), app.LeaveTypeID.String(), app.StartDate.Year())
	if err != nil {
		return LeaveApplicationResponse{}, err
	}

	used := bal.UsedDays
	pending := bal.PendingDays.Sub(app.WorkingDays)
	if pending.IsNegative() {
		// pending_days tidak konsisten dengan aplikasi yang sedang diputuskan.
		s.logger.Warn("pending days went negative, clamping to zero",
			zap.String("application_id", applicationID),
			zap.String("balance_id", bal.ID.String()),
			zap.String("pending_days", pending.String()),
		)
		pending = decimal.Zero
	}
	if req.Decision == StatusApproved {
		used = used.Add(app.WorkingDays)
	}

	now := time.Now()
	if err := qtx.UpdateDecision(ctx, applicationID, req.Decision, req.Comments, approverUUID, now); err != nil {
		return LeaveApplicationResponse{}, err
	}
	if err := s.balances.UpdateCountersTx(ctx, tx, bal.ID.String(), used, pending); err != nil {
		return LeaveApplicationResponse{}, err
	}

	if err := s.enqueueDecisionEvent(ctx, tx, app, req.Decision, approverID, now); err != nil {
		return LeaveApplicationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeaveApplicationResponse{}, err
	}

	s.logger.Info("decide leave success",
		zap.String("application_id", applicationID),
		zap.String("decision", req.Decision),
		zap.String("approver_id", approverID),
	)

	app.Status = req.Decision
	app.Comments = req.Comments
	app.DecidedBy = &approverUUID
	app.DecidedAt = &now

	resp := mapToResponse(*app)
	resp.RemainingDays = balance.Remaining(bal.AllocatedDays, used, pending).StringFixed(1)
	return resp, nil
}

// Cancel hanya boleh dilakukan pemohon sendiri dan hanya selama PENDING.
func (s *service) Cancel(ctx context.Context, actorID, applicationID string) (LeaveApplicationResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveApplicationResponse{}, leaveerrors.ErrInvalidApplicationID
	}
	if _, err := uuid.Parse(applicationID); err != nil {
		return LeaveApplicationResponse{}, leaveerrors.ErrInvalidApplicationID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveApplicationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	app, err := qtx.FindByIDForUpdate(ctx, applicationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return LeaveApplicationResponse{}, leaveerrors.ErrApplicationNotFound
		}
		return LeaveApplicationResponse{}, err
	}

	if app.EmployeeID != actorUUID {
		return LeaveApplicationResponse{}, leaveerrors.ErrCancelNotOwner
	}
	if app.Status != StatusPending {
		return LeaveApplicationResponse{}, leaveerrors.ErrNotCancellable
	}

	bal, err := s.balances.EnsureTx(ctx, tx, app.EmployeeID.String(), app.LeaveTypeID.String(), app.StartDate.Year())
	if err != nil {
		return LeaveApplicationResponse{}, err
	}

	pending := bal.PendingDays.Sub(app.WorkingDays)
	if pending.IsNegative() {
		s.logger.Warn("pending days went negative, clamping to zero",
			zap.String("application_id", applicationID),
			zap.String("balance_id", bal.ID.String()),
			zap.String("pending_days", pending.String()),
		)
		pending = decimal.Zero
	}

	if err := qtx.UpdateStatus(ctx, applicationID, StatusCancelled); err != nil {
		return LeaveApplicationResponse{}, err
	}
	if err := s.balances.UpdateCountersTx(ctx, tx, bal.ID.String(), bal.UsedDays, pending); err != nil {
		return LeaveApplicationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeaveApplicationResponse{}, err
	}

	s.logger.Info("cancel leave success",
		zap.String("application_id", applicationID),
		zap.String("employee_id", actorID),
	)

	app.Status = StatusCancelled
	resp := mapToResponse(*app)
	resp.RemainingDays = balance.Remaining(bal.AllocatedDays, bal.UsedDays, pending).StringFixed(1)
	return resp, nil
}

func (s *service) GetAll(ctx context.Context, query ListLeaveQuery) ([]LeaveApplicationResponse, int64, error) {
	filter := ListFilter{
		Status:     query.Status,
		EmployeeID: query.EmployeeID,
		Department: query.Department,
		Limit:      query.Limit,
		Offset:     (query.Page - 1) * query.Limit,
	}

	apps, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]LeaveApplicationResponse, len(apps))
	for i, a := range apps {
		resp[i] = mapToResponse(a)
	}
	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveApplicationResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveApplicationResponse{}, leaveerrors.ErrInvalidApplicationID
	}

	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveApplicationResponse{}, leaveerrors.ErrApplicationNotFound
		}
		return LeaveApplicationResponse{}, err
	}
	return mapToResponse(*app), nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID string) ([]LeaveApplicationResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, leaveerrors.ErrInvalidApplicationID
	}

	apps, err := s.repo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	resp := make([]LeaveApplicationResponse, len(apps))
	for i, a := range apps {
		resp[i] = mapToResponse(a)
	}
	return resp, nil
}

func (s *service) enqueueDecisionEvent(ctx context.Context, tx *sql.Tx, app *LeaveApplication, decision, approverID string, at time.Time) error {
	event := events.LeaveDecidedEvent{
		EventType:     "leave.decided",
		RequestID:     contextutil.GetRequestID(ctx),
		ApplicationID: app.ID.String(),
		EmployeeID:    app.EmployeeID.String(),
		LeaveTypeID:   app.LeaveTypeID.String(),
		Status:        decision,
		WorkingDays:   app.WorkingDays.StringFixed(1),
		DecidedBy:     approverID,
		OccurredAt:    at,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     event.RequestID,
		AggregateType: "leave_application",
		AggregateID:   app.ID.String(),
		EventType:     event.EventType,
		Topic:         events.LeaveDecidedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapToResponse(a LeaveApplication) LeaveApplicationResponse {
	resp := LeaveApplicationResponse{
		ID:             a.ID.String(),
		EmployeeID:     a.EmployeeID.String(),
		LeaveTypeID:    a.LeaveTypeID.String(),
		StartDate:      a.StartDate.Format(dateLayout),
		EndDate:        a.EndDate.Format(dateLayout),
		WorkingDays:    a.WorkingDays.StringFixed(1),
		Reason:         a.Reason,
		ContactDetails: a.ContactDetails,
		HandoverNotes:  a.HandoverNotes,
		Status:         a.Status,
		Comments:       a.Comments,
	}
	if a.DecidedBy != nil {
		v := a.DecidedBy.String()
		resp.DecidedBy = &v
	}
	if a.DecidedAt != nil {
		v := a.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	if a.LeaveType != nil {
		resp.LeaveTypeName = a.LeaveType.Name
	}
	return resp
}
