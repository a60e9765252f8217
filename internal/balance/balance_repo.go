package balance

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=balance_repo.go -destination=mock/balance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, b *LeaveBalance) error
	Find(ctx context.Context, employeeID, leaveTypeID string, year int) (*LeaveBalance, error)
	// FindForUpdate mengunci baris saldo sampai transaksi selesai.
	// Hanya valid dipanggil lewat WithTx.
	FindForUpdate(ctx context.Context, employeeID, leaveTypeID string, year int) (*LeaveBalance, error)
	UpdateCounters(ctx context.Context, id string, used, pending decimal.Decimal) error
	SetAllocation(ctx context.Context, id string, allocated decimal.Decimal) error
	ListByEmployee(ctx context.Context, employeeID string, year int) ([]EmployeeBalanceRow, error)
}

// EmployeeBalanceRow adalah hasil join saldo dengan master jenis cuti.
type EmployeeBalanceRow struct {
	Balance        LeaveBalance
	LeaveTypeName  string
	LeaveTypeCode  string
	LeaveTypeColor string
}

type repository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, b *LeaveBalance) error {
	query := `
        INSERT INTO leave_balances (
            id, employee_id, leave_type_id, year,
            allocated_days, used_days, pending_days, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
    `

	_, err := r.execer().ExecContext(
		ctx, query,
		b.ID, b.EmployeeID, b.LeaveTypeID, b.Year,
		b.AllocatedDays, b.UsedDays, b.PendingDays,
	)
	return err
}

const balanceColumns = `
	id::text,
	employee_id::text,
	leave_type_id::text,
	year,
	allocated_days,
	used_days,
	pending_days
`

func (r *repository) Find(ctx context.Context, employeeID, leaveTypeID string, year int) (*LeaveBalance, error) {
	query := `
SELECT ` + balanceColumns + `
FROM leave_balances
WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
`
	row := r.querier().QueryRowContext(ctx, query, employeeID, leaveTypeID, year)
	return scanBalance(row)
}

func (r *repository) FindForUpdate(ctx context.Context, employeeID, leaveTypeID string, year int) (*LeaveBalance, error) {
	query := `
SELECT ` + balanceColumns + `
FROM leave_balances
WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
FOR UPDATE
`
	row := r.querier().QueryRowContext(ctx, query, employeeID, leaveTypeID, year)
	return scanBalance(row)
}

func (r *repository) UpdateCounters(ctx context.Context, id string, used, pending decimal.Decimal) error {
	query := `
UPDATE leave_balances
SET used_days = $2, pending_days = $3, updated_at = NOW()
WHERE id = $1
`
	_, err := r.execer().ExecContext(ctx, query, id, used, pending)
	return err
}

func (r *repository) SetAllocation(ctx context.Context, id string, allocated decimal.Decimal) error {
	query := `
UPDATE leave_balances
SET allocated_days = $2, updated_at = NOW()
WHERE id = $1
`
	_, err := r.execer().ExecContext(ctx, query, id, allocated)
	return err
}

func (r *repository) ListByEmployee(ctx context.Context, employeeID string, year int) ([]EmployeeBalanceRow, error) {
	query := `
SELECT
	b.id::text,
	b.employee_id::text,
	b.leave_type_id::text,
	b.year,
	b.allocated_days,
	b.used_days,
	b.pending_days,
	lt.name,
	lt.code,
	COALESCE(lt.color, '')
FROM leave_balances b
JOIN leave_types lt ON lt.id = b.leave_type_id
WHERE b.employee_id = $1 AND b.year = $2
ORDER BY lt.name ASC
`
	rows, err := r.querier().QueryContext(ctx, query, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []EmployeeBalanceRow
	for rows.Next() {
		var item EmployeeBalanceRow
		var idStr, empStr, ltStr string
		if err := rows.Scan(
			&idStr, &empStr, &ltStr,
			&item.Balance.Year,
			&item.Balance.AllocatedDays,
			&item.Balance.UsedDays,
			&item.Balance.PendingDays,
			&item.LeaveTypeName,
			&item.LeaveTypeCode,
			&item.LeaveTypeColor,
		); err != nil {
			return nil, err
		}
		if err := assignUUIDs(&item.Balance, idStr, empStr, ltStr); err != nil {
			return nil, err
		}
		result = append(result, item)
	}

	return result, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func assignUUIDs(b *LeaveBalance, id, employeeID, leaveTypeID string) error {
	var err error
	if b.ID, err = uuid.Parse(id); err != nil {
		return err
	}
	if b.EmployeeID, err = uuid.Parse(employeeID); err != nil {
		return err
	}
	b.LeaveTypeID, err = uuid.Parse(leaveTypeID)
	return err
}

func scanBalance(row rowScanner) (*LeaveBalance, error) {
	var b LeaveBalance
	var idStr, empStr, ltStr string
	if err := row.Scan(
		&idStr, &empStr, &ltStr,
		&b.Year,
		&b.AllocatedDays,
		&b.UsedDays,
		&b.PendingDays,
	); err != nil {
		return nil, err
	}
	if err := assignUUIDs(&b, idStr, empStr, ltStr); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *repository) querier() interface {
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}
