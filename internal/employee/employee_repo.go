package employee

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type ListFilter struct {
	Department string
	BranchID   string
	ActiveOnly bool
	Search     string
	Limit      int
	Offset     int
}

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	FindAll(ctx context.Context, filter ListFilter) ([]Employee, int64, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByUserID(ctx context.Context, userID string) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	Update(ctx context.Context, e *Employee) error

	// Create jalan lewat execer supaya satu transaksi dengan outbox.
	Create(ctx context.Context, e *Employee) error
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

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Employee, int64, error) {
	q := r.db.WithContext(ctx).Model(&Employee{})

	if filter.Department != "" {
		q = q.Where("department = ?", filter.Department)
	}
	if filter.BranchID != "" {
		q = q.Where("branch_id = ?", filter.BranchID)
	}
	if filter.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("full_name ILIKE ? OR emp_code ILIKE ? OR email ILIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var employees []Employee
	err := q.
		Order("full_name ASC").
		Limit(limit).
		Offset(filter.Offset).
		Find(&employees).Error
	return employees, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) FindByUserID(ctx context.Context, userID string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).First(&e, "user_id = ?", userID).Error
	return &e, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).First(&e, "email = ?", email).Error
	return &e, err
}

func (r *repository) Update(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) Create(ctx context.Context, e *Employee) error {
	query := `
        INSERT INTO employees (
            id, emp_code, user_id, full_name, email, phone,
            department, designation, branch_id, joining_date,
            salary, salary_status, is_active, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
    `
	_, err := r.execer().ExecContext(
		ctx, query,
		e.ID, e.EmpCode, e.UserID, e.FullName, e.Email, e.Phone,
		e.Department, e.Designation, e.BranchID, e.JoiningDate,
		e.Salary, e.SalaryStatus, e.IsActive,
	)
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
