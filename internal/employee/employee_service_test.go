package employee_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"go-backoffice/internal/employee"
	employeeerrors "go-backoffice/internal/employee/errors"
	"go-backoffice/internal/events"
	"go-backoffice/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeEmployeeRepository struct {
	findAllFn      func(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, int64, error)
	findByIDFn     func(ctx context.Context, id string) (*employee.Employee, error)
	findByUserIDFn func(ctx context.Context, userID string) (*employee.Employee, error)
	findByEmailFn  func(ctx context.Context, email string) (*employee.Employee, error)
	updateFn       func(ctx context.Context, e *employee.Employee) error
	createFn       func(ctx context.Context, e *employee.Employee) error
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository { return f }

func (f *fakeEmployeeRepository) FindAll(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, int64, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, filter)
	}
	return nil, 0, nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindByUserID(ctx context.Context, userID string) (*employee.Employee, error) {
	if f.findByUserIDFn != nil {
		return f.findByUserIDFn(ctx, userID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	if f.findByEmailFn != nil {
		return f.findByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, e)
	}
	return nil
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	if f.createFn != nil {
		return f.createFn(ctx, e)
	}
	return nil
}

type fakeCounterRepository struct {
	getNextValueFn func(ctx context.Context, counterType string) (int64, error)
}

func (f *fakeCounterRepository) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	if f.getNextValueFn != nil {
		return f.getNextValueFn(ctx, counterType)
	}
	return 1, nil
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

type employeeServiceDeps struct {
	service  employee.Service
	sqlMock  sqlmock.Sqlmock
	repo     *fakeEmployeeRepository
	counters *fakeCounterRepository
	outbox   *fakeOutboxRepository
}

func setupEmployeeServiceTest(t *testing.T) employeeServiceDeps {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := &fakeEmployeeRepository{}
	counters := &fakeCounterRepository{}
	outbox := &fakeOutboxRepository{}

	return employeeServiceDeps{
		service:  employee.NewService(db, repo, counters, outbox, nil),
		sqlMock:  mock,
		repo:     repo,
		counters: counters,
		outbox:   outbox,
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

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()

	t.Run("writes row and lifecycle event in one tx", func(t *testing.T) {
		d := setupEmployeeServiceTest(t)

		d.counters.getNextValueFn = func(ctx context.Context, counterType string) (int64, error) {
			assert.Equal(t, "employee_code", counterType)
			return 42, nil
		}

		var created *employee.Employee
		d.repo.createFn = func(ctx context.Context, e *employee.Employee) error {
			created = e
			return nil
		}

		var event kafka.OutboxEvent
		d.outbox.createFn = func(ctx context.Context, e kafka.OutboxEvent) error {
			event = e
			return nil
		}

		expectTx(t, d.sqlMock, true)

		resp, err := d.service.Create(ctx, actorID, employee.CreateEmployeeRequest{
			FullName: "Siti Rahma",
			Email:    "siti.rahma@example.com",
			Salary:   28000,
		})

		assert.NoError(t, err)
		assert.Equal(t, "EMP-000042", resp.EmpCode)
		assert.True(t, resp.IsActive)
		assert.Equal(t, created.ID.String(), resp.ID)

		assert.Equal(t, events.EmployeeCreatedTopic, event.Topic)
		assert.Equal(t, "employee.created", event.EventType)
		assert.Equal(t, created.ID.String(), event.AggregateID)

		var payload events.EmployeeCreatedEvent
		assert.NoError(t, json.Unmarshal(event.Payload, &payload))
		assert.Equal(t, created.ID.String(), payload.EmployeeID)

		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate email conflicts before counter", func(t *testing.T) {
		d := setupEmployeeServiceTest(t)

		d.repo.findByEmailFn = func(ctx context.Context, email string) (*employee.Employee, error) {
			return &employee.Employee{ID: uuid.New(), Email: email}, nil
		}
		d.counters.getNextValueFn = func(ctx context.Context, counterType string) (int64, error) {
			t.Fatal("counter should not be consumed")
			return 0, nil
		}

		_, err := d.service.Create(ctx, actorID, employee.CreateEmployeeRequest{
			FullName: "Siti Rahma",
			Email:    "siti.rahma@example.com",
		})
		assert.ErrorIs(t, err, employeeerrors.ErrDuplicateEmail)
	})

	t.Run("negative salary rejected", func(t *testing.T) {
		d := setupEmployeeServiceTest(t)

		_, err := d.service.Create(ctx, actorID, employee.CreateEmployeeRequest{
			FullName: "Siti Rahma",
			Email:    "siti.rahma@example.com",
			Salary:   -1,
		})
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidSalary)
	})
}

func TestEmployeeService_SalaryFlow(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	employeeID := uuid.New()

	stored := func() *employee.Employee {
		return &employee.Employee{
			ID:           employeeID,
			EmpCode:      "EMP-000001",
			FullName:     "Siti Rahma",
			Email:        "siti.rahma@example.com",
			Salary:       28000,
			SalaryStatus: employee.SalaryStatusNone,
			IsActive:     true,
		}
	}

	t.Run("propose then approve applies new salary", func(t *testing.T) {
		d := setupEmployeeServiceTest(t)

		e := stored()
		d.repo.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return e, nil
		}

		resp, err := d.service.ProposeSalary(ctx, actorID, employeeID.String(), employee.ProposeSalaryRequest{
			ProposedSalary: 30000,
		})
		assert.NoError(t, err)
		assert.Equal(t, employee.SalaryStatusProposed, resp.SalaryStatus)

		resp, err = d.service.DecideSalary(ctx, actorID, employeeID.String(), employee.DecideSalaryRequest{
			Decision: employee.SalaryStatusApproved,
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(30000), resp.Salary)
		assert.Equal(t, employee.SalaryStatusApproved, resp.SalaryStatus)
		assert.Nil(t, resp.ProposedSalary)
	})

	t.Run("second proposal while one pending", func(t *testing.T) {
		d := setupEmployeeServiceTest(t)

		e := stored()
		proposed := int64(30000)
		e.ProposedSalary = &proposed
		e.SalaryStatus = employee.SalaryStatusProposed
		d.repo.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return e, nil
		}

		_, err := d.service.ProposeSalary(ctx, actorID, employeeID.String(), employee.ProposeSalaryRequest{
			ProposedSalary: 32000,
		})
		assert.ErrorIs(t, err, employeeerrors.ErrProposalPending)
	})

	t.Run("decide without pending proposal", func(t *testing.T) {
		d := setupEmployeeServiceTest(t)

		d.repo.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return stored(), nil
		}

		_, err := d.service.DecideSalary(ctx, actorID, employeeID.String(), employee.DecideSalaryRequest{
			Decision: employee.SalaryStatusApproved,
		})
		assert.ErrorIs(t, err, employeeerrors.ErrNoPendingProposal)
	})

	t.Run("reject keeps current salary", func(t *testing.T) {
		d := setupEmployeeServiceTest(t)

		e := stored()
		proposed := int64(30000)
		e.ProposedSalary = &proposed
		e.SalaryStatus = employee.SalaryStatusProposed
		d.repo.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return e, nil
		}

		resp, err := d.service.DecideSalary(ctx, actorID, employeeID.String(), employee.DecideSalaryRequest{
			Decision: employee.SalaryStatusRejected,
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(28000), resp.Salary)
		assert.Equal(t, employee.SalaryStatusRejected, resp.SalaryStatus)
	})
}
