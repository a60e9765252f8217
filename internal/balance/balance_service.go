package balance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-backoffice/internal/assignment"
	balanceerrors "go-backoffice/internal/balance/errors"
	"go-backoffice/internal/leavetype"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=balance_service.go -destination=mock/balance_service_mock.go -package=mock
type Service interface {
	GetEmployeeBalances(ctx context.Context, employeeID string, year int) ([]BalanceResponse, error)
	Initialize(ctx context.Context, actorID string, req InitializeBalanceRequest) (BalanceResponse, error)
	// InitializeForEmployee membuat saldo untuk semua jenis cuti yang
	// berlaku bagi karyawan. Idempoten: saldo yang sudah ada dilewati.
	InitializeForEmployee(ctx context.Context, employeeID string, year int) (int, error)

	// EnsureTx dan UpdateCountersTx dipakai modul leave di dalam
	// transaksinya sendiri. EnsureTx mengunci baris saldo (FOR UPDATE),
	// membuatnya dulu kalau belum ada.
	EnsureTx(ctx context.Context, tx *sql.Tx, employeeID, leaveTypeID string, year int) (*LeaveBalance, error)
	UpdateCountersTx(ctx context.Context, tx *sql.Tx, id string, used, pending decimal.Decimal) error
}

type service struct {
	db          *sql.DB
	repo        Repository
	assignments assignment.Repository
	leaveTypes  leavetype.Repository
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	assignments assignment.Repository,
	leaveTypes leavetype.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("balance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		assignments: assignments,
		leaveTypes:  leaveTypes,
		logger:      l,
	}
}

func (s *service) GetEmployeeBalances(ctx context.Context, employeeID string, year int) ([]BalanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, balanceerrors.ErrInvalidEmployeeID
	}
	if year < 2000 || year > 2100 {
		return nil, balanceerrors.ErrInvalidYear
	}

	rows, err := s.repo.ListByEmployee(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}

	resp := make([]BalanceResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapRowToResponse(row)
	}
	return resp, nil
}

func (s *service) Initialize(ctx context.Context, actorID string, req InitializeBalanceRequest) (BalanceResponse, error) {
	s.logger.Debug("initialize balance requested",
		zap.String("actor_id", actorID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("leave_type_id", req.LeaveTypeID),
		zap.Int("year", req.Year),
	)

	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return BalanceResponse{}, balanceerrors.ErrInvalidEmployeeID
	}
	leaveTypeUUID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return BalanceResponse{}, balanceerrors.ErrInvalidEmployeeID
	}

	if _, err := s.repo.Find(ctx, req.EmployeeID, req.LeaveTypeID, req.Year); err == nil {
		return BalanceResponse{}, balanceerrors.ErrBalanceExists
	} else if !errors.Is(err, sql.ErrNoRows) {
		return BalanceResponse{}, err
	}

	var allocated decimal.Decimal
	if req.AllocatedDays != nil {
		allocated = decimal.NewFromFloat(*req.AllocatedDays).Round(1)
	} else {
		allocated, err = s.resolveAllocation(ctx, req.EmployeeID, req.LeaveTypeID, req.Year)
		if err != nil {
			return BalanceResponse{}, err
		}
	}

	b := &LeaveBalance{
		ID:            uuid.New(),
		EmployeeID:    employeeUUID,
		LeaveTypeID:   leaveTypeUUID,
		Year:          req.Year,
		AllocatedDays: allocated,
		UsedDays:      decimal.Zero,
		PendingDays:   decimal.Zero,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		s.logger.Error("initialize balance persist failed", zap.Error(err))
		return BalanceResponse{}, err
	}

	s.logger.Info("initialize balance success",
		zap.String("balance_id", b.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.String("allocated_days", allocated.String()),
	)
	return mapBalanceToResponse(*b), nil
}

func (s *service) InitializeForEmployee(ctx context.Context, employeeID string, year int) (int, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return 0, balanceerrors.ErrInvalidEmployeeID
	}

	allocations, err := s.collectAllocations(ctx, employeeID, year)
	if err != nil {
		return 0, err
	}

	created := 0
	for leaveTypeID, days := range allocations {
		if _, err := s.repo.Find(ctx, employeeID, leaveTypeID, year); err == nil {
			continue
		} else if !errors.Is(err, sql.ErrNoRows) {
			return created, err
		}

		leaveTypeUUID, err := uuid.Parse(leaveTypeID)
		if err != nil {
			return created, err
		}
		b := &LeaveBalance{
			ID:            uuid.New(),
			EmployeeID:    uuid.MustParse(employeeID),
			LeaveTypeID:   leaveTypeUUID,
			Year:          year,
			AllocatedDays: days,
			UsedDays:      decimal.Zero,
			PendingDays:   decimal.Zero,
		}
		if err := s.repo.Create(ctx, b); err != nil {
			return created, err
		}
		created++
	}

	s.logger.Info("initialize balances for employee",
		zap.String("employee_id", employeeID),
		zap.Int("year", year),
		zap.Int("created", created),
	)
	return created, nil
}

func (s *service) EnsureTx(ctx context.Context, tx *sql.Tx, employeeID, leaveTypeID string, year int) (*LeaveBalance, error) {
	qtx := s.repo.WithTx(tx)

	b, err := qtx.FindForUpdate(ctx, employeeID, leaveTypeID, year)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	allocated, err := s.resolveAllocation(ctx, employeeID, leaveTypeID, year)
	if err != nil {
		return nil, err
	}

	fresh := &LeaveBalance{
		ID:            uuid.New(),
		EmployeeID:    uuid.MustParse(employeeID),
		LeaveTypeID:   uuid.MustParse(leaveTypeID),
		Year:          year,
		AllocatedDays: allocated,
		UsedDays:      decimal.Zero,
		PendingDays:   decimal.Zero,
	}
	if err := qtx.Create(ctx, fresh); err != nil {
		return nil, err
	}

	// Ambil ulang dengan lock supaya pemanggil selalu memegang baris terkunci
	return qtx.FindForUpdate(ctx, employeeID, leaveTypeID, year)
}

func (s *service) UpdateCountersTx(ctx context.Context, tx *sql.Tx, id string, used, pending decimal.Decimal) error {
	return s.repo.WithTx(tx).UpdateCounters(ctx, id, used.Round(1), pending.Round(1))
}

// resolveAllocation memilih sumber alokasi: attachment skema aktif
// karyawan dulu, baru default max_days di master jenis cuti.
func (s *service) resolveAllocation(ctx context.Context, employeeID, leaveTypeID string, year int) (decimal.Decimal, error) {
	asOf := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	if year == time.Now().Year() {
		asOf = time.Now()
	}

	cur, err := s.assignments.CurrentFor(ctx, employeeID, asOf)
	if err == nil && cur.Scheme != nil {
		for _, att := range cur.Scheme.LeaveTypes {
			if att.LeaveTypeID.String() == leaveTypeID {
				return decimal.NewFromInt(int64(att.DaysAllowed)), nil
			}
		}
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, err
	}

	lt, err := s.leaveTypes.FindByID(ctx, leaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, balanceerrors.ErrNoAllocationSource
		}
		return decimal.Zero, err
	}
	return decimal.NewFromInt(int64(lt.MaxDays)), nil
}

func (s *service) collectAllocations(ctx context.Context, employeeID string, year int) (map[string]decimal.Decimal, error) {
	allocations := make(map[string]decimal.Decimal)

	asOf := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	if year == time.Now().Year() {
		asOf = time.Now()
	}

	cur, err := s.assignments.CurrentFor(ctx, employeeID, asOf)
	if err == nil && cur.Scheme != nil {
		for _, att := range cur.Scheme.LeaveTypes {
			allocations[att.LeaveTypeID.String()] = decimal.NewFromInt(int64(att.DaysAllowed))
		}
		return allocations, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Tanpa skema: pakai default semua jenis cuti aktif
	types, err := s.leaveTypes.FindAll(ctx, true)
	if err != nil {
		return nil, err
	}
	for _, lt := range types {
		allocations[lt.ID.String()] = decimal.NewFromInt(int64(lt.MaxDays))
	}
	return allocations, nil
}

func mapBalanceToResponse(b LeaveBalance) BalanceResponse {
	return BalanceResponse{
		ID:            b.ID.String(),
		EmployeeID:    b.EmployeeID.String(),
		LeaveTypeID:   b.LeaveTypeID.String(),
		Year:          b.Year,
		AllocatedDays: b.AllocatedDays.StringFixed(1),
		UsedDays:      b.UsedDays.StringFixed(1),
		PendingDays:   b.PendingDays.StringFixed(1),
		RemainingDays: b.Remaining().StringFixed(1),
	}
}

func mapRowToResponse(row EmployeeBalanceRow) BalanceResponse {
	resp := mapBalanceToResponse(row.Balance)
	resp.LeaveTypeName = row.LeaveTypeName
	resp.LeaveTypeCode = row.LeaveTypeCode
	resp.LeaveTypeColor = row.LeaveTypeColor
	return resp
}
