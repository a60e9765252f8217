package balance_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-backoffice/internal/assignment"
	"go-backoffice/internal/balance"
	balanceerrors "go-backoffice/internal/balance/errors"
	"go-backoffice/internal/leavetype"
	"go-backoffice/internal/scheme"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeBalanceRepository struct {
	withTxFn         func(tx *sql.Tx) balance.Repository
	createFn         func(ctx context.Context, b *balance.LeaveBalance) error
	findFn           func(ctx context.Context, employeeID, leaveTypeID string, year int) (*balance.LeaveBalance, error)
	findForUpdateFn  func(ctx context.Context, employeeID, leaveTypeID string, year int) (*balance.LeaveBalance, error)
	updateCountersFn func(ctx context.Context, id string, used, pending decimal.Decimal) error
	setAllocationFn  func(ctx context.Context, id string, allocated decimal.Decimal) error
	listByEmployeeFn func(ctx context.Context, employeeID string, year int) ([]balance.EmployeeBalanceRow, error)
}

func (f *fakeBalanceRepository) WithTx(tx *sql.Tx) balance.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeBalanceRepository) Create(ctx context.Context, b *balance.LeaveBalance) error {
	if f.createFn != nil {
		return f.createFn(ctx, b)
	}
	return nil
}

func (f *fakeBalanceRepository) Find(ctx context.Context, employeeID, leaveTypeID string, year int) (*balance.LeaveBalance, error) {
	if f.findFn != nil {
		return f.findFn(ctx, employeeID, leaveTypeID, year)
	}
	return nil, sql.ErrNoRows
}

func (f *fakeBalanceRepository) FindForUpdate(ctx context.Context, employeeID, leaveTypeID string, year int) (*balance.LeaveBalance, error) {
	if f.findForUpdateFn != nil {
		return f.findForUpdateFn(ctx, employeeID, leaveTypeID, year)
	}
	return nil, sql.ErrNoRows
}

func (f *fakeBalanceRepository) UpdateCounters(ctx context.Context, id string, used, pending decimal.Decimal) error {
	if f.updateCountersFn != nil {
		return f.updateCountersFn(ctx, id, used, pending)
	}
	return nil
}

func (f *fakeBalanceRepository) SetAllocation(ctx context.Context, id string, allocated decimal.Decimal) error {
	if f.setAllocationFn != nil {
		return f.setAllocationFn(ctx, id, allocated)
	}
	return nil
}

func (f *fakeBalanceRepository) ListByEmployee(ctx context.Context, employeeID string, year int) ([]balance.EmployeeBalanceRow, error) {
	if f.listByEmployeeFn != nil {
		return f.listByEmployeeFn(ctx, employeeID, year)
	}
	return nil, nil
}

type fakeAssignmentRepository struct {
	currentForFn func(ctx context.Context, employeeID string, asOf time.Time) (*assignment.EmployeeLeaveScheme, error)
}

func (f *fakeAssignmentRepository) Create(ctx context.Context, a *assignment.EmployeeLeaveScheme) error {
	return nil
}

func (f *fakeAssignmentRepository) FindByID(ctx context.Context, id string) (*assignment.EmployeeLeaveScheme, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAssignmentRepository) ListByEmployee(ctx context.Context, employeeID string) ([]assignment.EmployeeLeaveScheme, error) {
	return nil, nil
}

func (f *fakeAssignmentRepository) FindOverlapping(ctx context.Context, employeeID string, from time.Time, to *time.Time) ([]assignment.EmployeeLeaveScheme, error) {
	return nil, nil
}

func (f *fakeAssignmentRepository) CurrentFor(ctx context.Context, employeeID string, asOf time.Time) (*assignment.EmployeeLeaveScheme, error) {
	if f.currentForFn != nil {
		return f.currentForFn(ctx, employeeID, asOf)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAssignmentRepository) Close(ctx context.Context, id string, effectiveTo time.Time) error {
	return nil
}

type fakeLeaveTypeRepository struct {
	findAllFn  func(ctx context.Context, activeOnly bool) ([]leavetype.LeaveType, error)
	findByIDFn func(ctx context.Context, id string) (*leavetype.LeaveType, error)
}

func (f *fakeLeaveTypeRepository) WithTx(tx *sql.Tx) leavetype.Repository {
	return f
}

func (f *fakeLeaveTypeRepository) Create(ctx context.Context, lt *leavetype.LeaveType) error {
	return nil
}

func (f *fakeLeaveTypeRepository) FindAll(ctx context.Context, activeOnly bool) ([]leavetype.LeaveType, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, activeOnly)
	}
	return nil, nil
}

func (f *fakeLeaveTypeRepository) FindByID(ctx context.Context, id string) (*leavetype.LeaveType, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveTypeRepository) FindByCode(ctx context.Context, code string) (*leavetype.LeaveType, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveTypeRepository) Update(ctx context.Context, lt *leavetype.LeaveType) error {
	return nil
}

func (f *fakeLeaveTypeRepository) CountReferences(ctx context.Context, id string) (int64, error) {
	return 0, nil
}

type balanceServiceDeps struct {
	service     balance.Service
	repo        *fakeBalanceRepository
	assignments *fakeAssignmentRepository
	leaveTypes  *fakeLeaveTypeRepository
}

func setupBalanceServiceTest(t *testing.T) *balanceServiceDeps {
	t.Helper()

	repo := &fakeBalanceRepository{}
	assignments := &fakeAssignmentRepository{}
	leaveTypes := &fakeLeaveTypeRepository{}
	svc := balance.NewService(nil, repo, assignments, leaveTypes)

	return &balanceServiceDeps{
		service:     svc,
		repo:        repo,
		assignments: assignments,
		leaveTypes:  leaveTypes,
	}
}

func TestBalanceService_InitializeForEmployee(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()
	annualID := uuid.New()
	sickID := uuid.New()
	year := time.Now().Year()

	schemeAssignment := func() *assignment.EmployeeLeaveScheme {
		return &assignment.EmployeeLeaveScheme{
			ID:         uuid.New(),
			EmployeeID: uuid.MustParse(employeeID),
			Scheme: &scheme.LeaveScheme{
				ID:       uuid.New(),
				Name:     "Standard",
				IsActive: true,
				LeaveTypes: []scheme.SchemeLeaveType{
					{LeaveTypeID: annualID, DaysAllowed: 12, IsPaid: true},
					{LeaveTypeID: sickID, DaysAllowed: 10, IsPaid: true},
				},
			},
		}
	}

	t.Run("creates one balance per scheme attachment", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)

		deps.assignments.currentForFn = func(ctx context.Context, eid string, asOf time.Time) (*assignment.EmployeeLeaveScheme, error) {
			return schemeAssignment(), nil
		}

		created := map[string]string{}
		deps.repo.createFn = func(ctx context.Context, b *balance.LeaveBalance) error {
			created[b.LeaveTypeID.String()] = b.AllocatedDays.String()
			assert.Equal(t, year, b.Year)
			assert.True(t, b.UsedDays.IsZero())
			assert.True(t, b.PendingDays.IsZero())
			return nil
		}

		n, err := deps.service.InitializeForEmployee(ctx, employeeID, year)

		assert.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, "12", created[annualID.String()])
		assert.Equal(t, "10", created[sickID.String()])
	})

	t.Run("skips balances that already exist", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)

		deps.assignments.currentForFn = func(ctx context.Context, eid string, asOf time.Time) (*assignment.EmployeeLeaveScheme, error) {
			return schemeAssignment(), nil
		}
		deps.repo.findFn = func(ctx context.Context, eid, ltid string, y int) (*balance.LeaveBalance, error) {
			if ltid == annualID.String() {
				return &balance.LeaveBalance{ID: uuid.New()}, nil
			}
			return nil, sql.ErrNoRows
		}

		var createdTypes []string
		deps.repo.createFn = func(ctx context.Context, b *balance.LeaveBalance) error {
			createdTypes = append(createdTypes, b.LeaveTypeID.String())
			return nil
		}

		n, err := deps.service.InitializeForEmployee(ctx, employeeID, year)

		assert.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, []string{sickID.String()}, createdTypes)
	})

	t.Run("falls back to leave type defaults without scheme", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)

		deps.leaveTypes.findAllFn = func(ctx context.Context, activeOnly bool) ([]leavetype.LeaveType, error) {
			assert.True(t, activeOnly)
			return []leavetype.LeaveType{
				{ID: annualID, Code: "ANNUAL", MaxDays: 14, IsActive: true},
			}, nil
		}

		created := map[string]string{}
		deps.repo.createFn = func(ctx context.Context, b *balance.LeaveBalance) error {
			created[b.LeaveTypeID.String()] = b.AllocatedDays.String()
			return nil
		}

		n, err := deps.service.InitializeForEmployee(ctx, employeeID, year)

		assert.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, "14", created[annualID.String()])
	})

	t.Run("invalid employee id", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)

		_, err := deps.service.InitializeForEmployee(ctx, "not-a-uuid", year)
		assert.ErrorIs(t, err, balanceerrors.ErrInvalidEmployeeID)
	})
}

func TestBalanceService_Initialize(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	employeeID := uuid.New().String()
	leaveTypeID := uuid.New()

	t.Run("explicit allocation wins", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)

		var created *balance.LeaveBalance
		deps.repo.createFn = func(ctx context.Context, b *balance.LeaveBalance) error {
			created = b
			return nil
		}

		alloc := 15.5
		resp, err := deps.service.Initialize(ctx, actorID, balance.InitializeBalanceRequest{
			EmployeeID:    employeeID,
			LeaveTypeID:   leaveTypeID.String(),
			Year:          2026,
			AllocatedDays: &alloc,
		})

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.Equal(t, "15.5", created.AllocatedDays.String())
		assert.Equal(t, "15.5", resp.RemainingDays)
	})

	t.Run("existing balance conflicts", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)

		deps.repo.findFn = func(ctx context.Context, eid, ltid string, y int) (*balance.LeaveBalance, error) {
			return &balance.LeaveBalance{ID: uuid.New()}, nil
		}

		_, err := deps.service.Initialize(ctx, actorID, balance.InitializeBalanceRequest{
			EmployeeID:  employeeID,
			LeaveTypeID: leaveTypeID.String(),
			Year:        2026,
		})

		assert.ErrorIs(t, err, balanceerrors.ErrBalanceExists)
	})

	t.Run("no allocation source", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)

		_, err := deps.service.Initialize(ctx, actorID, balance.InitializeBalanceRequest{
			EmployeeID:  employeeID,
			LeaveTypeID: leaveTypeID.String(),
			Year:        2026,
		})

		assert.ErrorIs(t, err, balanceerrors.ErrNoAllocationSource)
	})
}
