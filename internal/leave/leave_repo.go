package leave

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ListFilter struct {
	Status     string
	EmployeeID string
	Department string
	Limit      int
	Offset     int
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	FindAll(ctx context.Context, filter ListFilter) ([]LeaveApplication, int64, error)
	FindByID(ctx context.Context, id string) (*LeaveApplication, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveApplication, error)

	// Operasi di bawah ini jalan lewat execer, jadi ikut transaksi
	// kalau repo dibungkus WithTx.
	Create(ctx context.Context, a *LeaveApplication) error
	FindByIDForUpdate(ctx context.Context, id string) (*LeaveApplication, error)
	UpdateDecision(ctx context.Context, id, status, comments string, decidedBy uuid.UUID, decidedAt time.Time) error
	UpdateStatus(ctx context.Context, id, status string) error

	// CountApprovedUnpaidDays menjumlahkan hari cuti APPROVED tak berbayar
	// dalam satu periode, untuk potongan payroll.
	CountApprovedUnpaidDays(ctx context.Context, employeeID string, from, to time.Time) (decimal.Decimal, error)
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

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]LeaveApplication, int64, error) {
	q := r.db.WithContext(ctx).Model(&LeaveApplication{})

	if filter.Status != "" {
		q = q.Where("leave_applications.status = ?", filter.Status)
	}
	if filter.EmployeeID != "" {
		q = q.Where("leave_applications.employee_id = ?", filter.EmployeeID)
	}
	if filter.Department != "" {
		q = q.Joins("JOIN employees e ON e.id = leave_applications.employee_id").
			Where("e.department = ?", filter.Department)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var apps []LeaveApplication
	err := q.
		Preload("LeaveType").
		Order("leave_applications.created_at DESC").
		Limit(limit).
		Offset(filter.Offset).
		Find(&apps).Error
	return apps, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveApplication, error) {
	var a LeaveApplication
	err := r.db.WithContext(ctx).
		Preload("LeaveType").
		First(&a, "id = ?", id).Error
	return &a, err
}

func (r *repository) ListByEmployee(ctx context.Context, employeeID string) ([]LeaveApplication, error) {
	var apps []LeaveApplication
	err := r.db.WithContext(ctx).
		Preload("LeaveType").
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *repository) Create(ctx context.Context, a *LeaveApplication) error {
	query := `
        INSERT INTO leave_applications (
            id, employee_id, leave_type_id, start_date, end_date, working_days,
            reason, contact_details, handover_notes, status, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
    `
	_, err := r.execer().ExecContext(
		ctx, query,
		a.ID, a.EmployeeID, a.LeaveTypeID, a.StartDate, a.EndDate, a.WorkingDays,
		a.Reason, a.ContactDetails, a.HandoverNotes, a.Status,
	)
	return err
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*LeaveApplication, error) {
	query := `
SELECT
	id::text,
	employee_id::text,
	leave_type_id::text,
	start_date,
	end_date,
	working_days,
	reason,
	COALESCE(contact_details, ''),
	COALESCE(handover_notes, ''),
	status,
	COALESCE(comments, '')
FROM leave_applications
WHERE id = $1 AND deleted_at IS NULL
FOR UPDATE
`
	row := r.querier().QueryRowContext(ctx, query, id)

	var a LeaveApplication
	var idStr, empStr, ltStr string
	if err := row.Scan(
		&idStr, &empStr, &ltStr,
		&a.StartDate, &a.EndDate, &a.WorkingDays,
		&a.Reason, &a.ContactDetails, &a.HandoverNotes,
		&a.Status, &a.Comments,
	); err != nil {
		return nil, err
	}

	var err error
	if a.ID, err = uuid.Parse(idStr); err != nil {
		return nil, err
	}
	if a.EmployeeID, err = uuid.Parse(empStr); err != nil {
		return nil, err
	}
	if a.LeaveTypeID, err = uuid.Parse(ltStr); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) UpdateDecision(ctx context.Context, id, status, comments string, decidedBy uuid.UUID, decidedAt time.Time) error {
	query := `
UPDATE leave_applications
SET status = $2, comments = $3, decided_by = $4, decided_at = $5, updated_at = NOW()
WHERE id = $1
`
	_, err := r.execer().ExecContext(ctx, query, id, status, comments, decidedBy, decidedAt)
	return err
}

func (r *repository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `
UPDATE leave_applications
SET status = $2, updated_at = NOW()
WHERE id = $1
`
	_, err := r.execer().ExecContext(ctx, query, id, status)
	return err
}

func (r *repository) CountApprovedUnpaidDays(ctx context.Context, employeeID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
SELECT COALESCE(SUM(la.working_days), 0)
FROM leave_applications la
JOIN leave_types lt ON lt.id = la.leave_type_id
WHERE la.employee_id = $1
	AND la.status = $2
	AND lt.is_paid = FALSE
	AND la.start_date >= $3
	AND la.start_date <= $4
	AND la.deleted_at IS NULL
`
	var total decimal.Decimal
	err := r.querier().
		QueryRowContext(ctx, query, employeeID, StatusApproved, from, to).
		Scan(&total)
	return total, err
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
