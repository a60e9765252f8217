package payroll_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"go-backoffice/internal/employee"
	"go-backoffice/internal/events"
	"go-backoffice/internal/leave"
	"go-backoffice/internal/messaging/kafka"
	"go-backoffice/internal/payroll"
	payrollerrors "go-backoffice/internal/payroll/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakePayrollRepository struct {
	createFn                  func(ctx context.Context, p *payroll.Payroll) error
	findAllFn                 func(ctx context.Context, filter payroll.ListFilter) ([]payroll.Payroll, int64, error)
	findByIDFn                func(ctx context.Context, id string) (*payroll.Payroll, error)
	findByEmployeeAndPeriodFn func(ctx context.Context, employeeID, period string) (*payroll.Payroll, error)
	findByIDForUpdateFn       func(ctx context.Context, id string) (*payroll.Payroll, error)
	updateStatusFn            func(ctx context.Context, p *payroll.Payroll) error
}

func (f *fakePayrollRepository) WithTx(tx *sql.Tx) payroll.Repository { return f }

func (f *fakePayrollRepository) Create(ctx context.Context, p *payroll.Payroll) error {
	if f.createFn != nil {
		return f.createFn(ctx, p)
	}
	return nil
}

func (f *fakePayrollRepository) FindAll(ctx context.Context, filter payroll.ListFilter) ([]payroll.Payroll, int64, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, filter)
	}
	return nil, 0, nil
}

func (f *fakePayrollRepository) FindByID(ctx context.Context, id string) (*payroll.Payroll, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePayrollRepository) FindByEmployeeAndPeriod(ctx context.Context, employeeID, period string) (*payroll.Payroll, error) {
	if f.findByEmployeeAndPeriodFn != nil {
		return f.findByEmployeeAndPeriodFn(ctx, employeeID, period)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePayrollRepository) FindByIDForUpdate(ctx context.Context, id string) (*payroll.Payroll, error) {
	if f.findByIDForUpdateFn != nil {
		return f.findByIDForUpdateFn(ctx, id)
	}
	return nil, sql.ErrNoRows
}

func (f *fakePayrollRepository) UpdateStatus(ctx context.Context, p *payroll.Payroll) error {
	if f.updateStatusFn != nil {
		return f.updateStatusFn(ctx, p)
	}
	return nil
}

type fakeEmployeeRepository struct {
	findByIDFn func(ctx context.Context, id string) (*employee.Employee, error)
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository { return f }

func (f *fakeEmployeeRepository) FindAll(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindByUserID(ctx context.Context, userID string) (*employee.Employee, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, e *employee.Employee) error { return nil }

func (f *fakeEmployeeRepository) Create(ctx context.Context, e *employee.Employee) error { return nil }

type fakeLeaveRepository struct {
	countApprovedUnpaidDaysFn func(ctx context.Context, employeeID string, from, to time.Time) (decimal.Decimal, error)
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository { return f }

func (f *fakeLeaveRepository) FindAll(ctx context.Context, filter leave.ListFilter) ([]leave.LeaveApplication, int64, error) {
	return nil, 0, nil
}

func (f *fakeLeaveRepository) FindByID(ctx context.Context, id string) (*leave.LeaveApplication, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveApplication, error) {
	return nil, nil
}

func (f *fakeLeaveRepository) Create(ctx context.Context, a *leave.LeaveApplication) error {
	return nil
}

func (f *fakeLeaveRepository) FindByIDForUpdate(ctx context.Context, id string) (*leave.LeaveApplication, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeLeaveRepository) UpdateDecision(ctx context.Context, id, status, comments string, decidedBy uuid.UUID, decidedAt time.Time) error {
	return nil
}

func (f *fakeLeaveRepository) UpdateStatus(ctx context.Context, id, status string) error {
	return nil
}

func (f *fakeLeaveRepository) CountApprovedUnpaidDays(ctx context.Context, employeeID string, from, to time.Time) (decimal.Decimal, error) {
	if f.countApprovedUnpaidDaysFn != nil {
		return f.countApprovedUnpaidDaysFn(ctx, employeeID, from, to)
	}
	return decimal.Zero, nil
}

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type payrollServiceDeps struct {
	service   payroll.Service
	sqlMock   sqlmock.Sqlmock
	repo      *fakePayrollRepository
	employees *fakeEmployeeRepository
	leaves    *fakeLeaveRepository
	outbox    *fakeOutboxRepository
}

func setupPayrollServiceTest(t *testing.T) payrollServiceDeps {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := &fakePayrollRepository{}
	employees := &fakeEmployeeRepository{}
	leaves := &fakeLeaveRepository{}
	outbox := &fakeOutboxRepository{}

	return payrollServiceDeps{
		service:   payroll.NewService(db, repo, employees, leaves, outbox),
		sqlMock:   mock,
		repo:      repo,
		employees: employees,
		leaves:    leaves,
		outbox:    outbox,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestPayrollService_Create(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	employeeID := uuid.New()

	t.Run("prorated deduction for february", func(t *testing.T) {
		d := setupPayrollServiceTest(t)

		d.employees.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return &employee.Employee{ID: employeeID, Salary: 28000}, nil
		}
		d.leaves.countApprovedUnpaidDaysFn = func(ctx context.Context, eid string, from, to time.Time) (decimal.Decimal, error) {
			// Periode harus menutup seluruh bulan kalender.
			assert.Equal(t, "2026-02-01", from.Format("2006-01-02"))
			assert.Equal(t, "2026-02-28", to.Format("2006-01-02"))
			return dec("2"), nil
		}

		var created *payroll.Payroll
		d.repo.createFn = func(ctx context.Context, p *payroll.Payroll) error {
			created = p
			return nil
		}

		expectTx(t, d.sqlMock, true)

		resp, err := d.service.Create(ctx, actorID, payroll.CreatePayrollRequest{
			EmployeeID: employeeID.String(),
			Period:     "2026-02",
		})

		assert.NoError(t, err)
		assert.NotNil(t, created)
		// 28000 / 28 hari * 2 hari = 2000
		assert.Equal(t, int64(2000), resp.Deduction)
		assert.Equal(t, int64(26000), resp.NetPay)
		assert.Equal(t, "2.0", resp.UnpaidLeaveDays)
		assert.Equal(t, payroll.StatusDraft, resp.Status)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("deduction rounds to whole unit", func(t *testing.T) {
		d := setupPayrollServiceTest(t)

		d.employees.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return &employee.Employee{ID: employeeID, Salary: 10000}, nil
		}
		d.leaves.countApprovedUnpaidDaysFn = func(ctx context.Context, eid string, from, to time.Time) (decimal.Decimal, error) {
			return dec("1"), nil
		}

		expectTx(t, d.sqlMock, true)

		resp, err := d.service.Create(ctx, actorID, payroll.CreatePayrollRequest{
			EmployeeID: employeeID.String(),
			Period:     "2026-03",
		})

		assert.NoError(t, err)
		// 10000 / 31 = 322.58..., dibulatkan ke 323
		assert.Equal(t, int64(323), resp.Deduction)
		assert.Equal(t, int64(9677), resp.NetPay)
	})

	t.Run("duplicate period conflicts before any write", func(t *testing.T) {
		d := setupPayrollServiceTest(t)

		d.employees.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return &employee.Employee{ID: employeeID, Salary: 28000}, nil
		}
		d.repo.findByEmployeeAndPeriodFn = func(ctx context.Context, eid, period string) (*payroll.Payroll, error) {
			return &payroll.Payroll{ID: uuid.New()}, nil
		}
		d.repo.createFn = func(ctx context.Context, p *payroll.Payroll) error {
			t.Fatal("create should not be reached")
			return nil
		}

		_, err := d.service.Create(ctx, actorID, payroll.CreatePayrollRequest{
			EmployeeID: employeeID.String(),
			Period:     "2026-02",
		})
		assert.ErrorIs(t, err, payrollerrors.ErrDuplicatePeriod)
	})

	t.Run("malformed period rejected", func(t *testing.T) {
		d := setupPayrollServiceTest(t)

		_, err := d.service.Create(ctx, actorID, payroll.CreatePayrollRequest{
			EmployeeID: employeeID.String(),
			Period:     "Feb-2026",
		})
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidPeriod)
	})

	t.Run("unknown employee rejected", func(t *testing.T) {
		d := setupPayrollServiceTest(t)

		_, err := d.service.Create(ctx, actorID, payroll.CreatePayrollRequest{
			EmployeeID: employeeID.String(),
			Period:     "2026-02",
		})
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidEmployeeID)
	})
}

func TestPayrollService_Approve(t *testing.T) {
	ctx := context.Background()
	approverID := uuid.New().String()
	payrollID := uuid.New()
	employeeID := uuid.New()

	draft := func() *payroll.Payroll {
		return &payroll.Payroll{
			ID:              payrollID,
			EmployeeID:      employeeID,
			Period:          "2026-02",
			BaseSalary:      28000,
			UnpaidLeaveDays: dec("0"),
			NetPay:          28000,
			Status:          payroll.StatusDraft,
			CreatedBy:       uuid.New(),
		}
	}

	t.Run("draft becomes approved with payslip event", func(t *testing.T) {
		d := setupPayrollServiceTest(t)

		d.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*payroll.Payroll, error) {
			return draft(), nil
		}

		var updated *payroll.Payroll
		d.repo.updateStatusFn = func(ctx context.Context, p *payroll.Payroll) error {
			updated = p
			return nil
		}

		var event kafka.OutboxEvent
		d.outbox.createFn = func(ctx context.Context, e kafka.OutboxEvent) error {
			event = e
			return nil
		}

		expectTx(t, d.sqlMock, true)

		resp, err := d.service.Approve(ctx, approverID, payrollID.String())

		assert.NoError(t, err)
		assert.Equal(t, payroll.StatusApproved, resp.Status)
		assert.NotNil(t, resp.ApprovedBy)
		assert.Equal(t, approverID, *resp.ApprovedBy)
		assert.Equal(t, payroll.StatusApproved, updated.Status)

		assert.Equal(t, events.PayrollPayslipRequestedTopic, event.Topic)
		assert.Equal(t, "payroll.payslip.requested", event.EventType)
		assert.Equal(t, payrollID.String(), event.AggregateID)

		var payload events.PayrollPayslipRequestedEvent
		assert.NoError(t, json.Unmarshal(event.Payload, &payload))
		assert.Equal(t, payrollID.String(), payload.PayrollID)
		assert.Equal(t, employeeID.String(), payload.EmployeeID)

		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("second approve conflicts", func(t *testing.T) {
		d := setupPayrollServiceTest(t)

		p := draft()
		p.Status = payroll.StatusApproved
		d.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*payroll.Payroll, error) {
			return p, nil
		}

		expectTx(t, d.sqlMock, false)

		_, err := d.service.Approve(ctx, approverID, payrollID.String())
		assert.ErrorIs(t, err, payrollerrors.ErrNotDraft)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("missing payroll", func(t *testing.T) {
		d := setupPayrollServiceTest(t)

		expectTx(t, d.sqlMock, false)

		_, err := d.service.Approve(ctx, approverID, payrollID.String())
		assert.ErrorIs(t, err, payrollerrors.ErrPayrollNotFound)
	})
}

func TestPayrollService_MarkAsPaid(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	payrollID := uuid.New()

	t.Run("approved becomes paid", func(t *testing.T) {
		d := setupPayrollServiceTest(t)

		approvedAt := time.Now()
		approver := uuid.New()
		d.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*payroll.Payroll, error) {
			return &payroll.Payroll{
				ID:              payrollID,
				EmployeeID:      uuid.New(),
				Period:          "2026-02",
				UnpaidLeaveDays: dec("0"),
				Status:          payroll.StatusApproved,
				CreatedBy:       uuid.New(),
				ApprovedBy:      &approver,
				ApprovedAt:      &approvedAt,
			}, nil
		}

		expectTx(t, d.sqlMock, true)

		resp, err := d.service.MarkAsPaid(ctx, actorID, payrollID.String())

		assert.NoError(t, err)
		assert.Equal(t, payroll.StatusPaid, resp.Status)
		assert.NotNil(t, resp.PaidAt)
	})

	t.Run("draft cannot be paid", func(t *testing.T) {
		d := setupPayrollServiceTest(t)

		d.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*payroll.Payroll, error) {
			return &payroll.Payroll{
				ID:              payrollID,
				EmployeeID:      uuid.New(),
				UnpaidLeaveDays: dec("0"),
				Status:          payroll.StatusDraft,
				CreatedBy:       uuid.New(),
			}, nil
		}

		expectTx(t, d.sqlMock, false)

		_, err := d.service.MarkAsPaid(ctx, actorID, payrollID.String())
		assert.ErrorIs(t, err, payrollerrors.ErrNotApproved)
	})
}
