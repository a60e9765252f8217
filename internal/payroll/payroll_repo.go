package payroll

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Payroll) error
	FindAll(ctx context.Context, filter ListFilter) ([]Payroll, int64, error)
	FindByID(ctx context.Context, id string) (*Payroll, error)
	FindByEmployeeAndPeriod(ctx context.Context, employeeID, period string) (*Payroll, error)
	FindByIDForUpdate(ctx context.Context, id string) (*Payroll, error)
	UpdateStatus(ctx context.Context, p *Payroll) error
}

type ListFilter struct {
	EmployeeID string
	Status     string
	Period     string
	Limit      int
	Offset     int
}

type repository struct {
	db    *gorm.DB
	sqldb *sql.DB
	tx    *sql.Tx
}

func NewRepository(db *gorm.DB, sqldb *sql.DB) Repository {
	return &repository{db: db, sqldb: sqldb}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, sqldb: r.sqldb, tx: tx}
}

func (r *repository) Create(ctx context.Context, p *Payroll) error {
	query := `
INSERT INTO payrolls (
	id, employee_id, period, base_salary, unpaid_leave_days,
	deduction, net_pay, status, created_by, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
`
	_, err := r.execer().ExecContext(
		ctx, query,
		p.ID, p.EmployeeID, p.Period, p.BaseSalary, p.UnpaidLeaveDays,
		p.Deduction, p.NetPay, p.Status, p.CreatedBy,
	)
	return err
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Payroll, int64, error) {
	db := r.db.WithContext(ctx).Model(&Payroll{})

	if filter.EmployeeID != "" {
		db = db.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Period != "" {
		db = db.Where("period = ?", filter.Period)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payrolls []Payroll
	err := db.
		Order("period DESC, created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&payrolls).Error
	return payrolls, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Payroll, error) {
	var p Payroll
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) FindByEmployeeAndPeriod(ctx context.Context, employeeID, period string) (*Payroll, error) {
	var p Payroll
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("period = ?", period).
		First(&p).Error
	return &p, err
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*Payroll, error) {
	query := `
SELECT
	id, employee_id, period, base_salary, unpaid_leave_days,
	deduction, net_pay, status, created_by, approved_by, approved_at, paid_at
FROM payrolls
WHERE id = $1
FOR UPDATE
`
	row := r.querier().QueryRowContext(ctx, query, id)

	var p Payroll
	var unpaidDays string
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.Period, &p.BaseSalary, &unpaidDays,
		&p.Deduction, &p.NetPay, &p.Status, &p.CreatedBy, &p.ApprovedBy, &p.ApprovedAt, &p.PaidAt,
	)
	if err != nil {
		return nil, err
	}

	if p.UnpaidLeaveDays, err = decimal.NewFromString(unpaidDays); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) UpdateStatus(ctx context.Context, p *Payroll) error {
	query := `
UPDATE payrolls
SET
	status = $2,
	approved_by = $3,
	approved_at = $4,
	paid_at = $5,
	updated_at = NOW()
WHERE id = $1
`
	var approvedBy any
	if p.ApprovedBy != nil {
		approvedBy = p.ApprovedBy.String()
	}
	var approvedAt, paidAt any
	if p.ApprovedAt != nil {
		approvedAt = *p.ApprovedAt
	}
	if p.PaidAt != nil {
		paidAt = *p.PaidAt
	}

	_, err := r.execer().ExecContext(ctx, query, p.ID, p.Status, approvedBy, approvedAt, paidAt)
	return err
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.sqldb
}

func (r *repository) querier() interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.sqldb
}
