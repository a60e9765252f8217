package balance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LeaveBalance adalah buku besar cuti per (karyawan, jenis cuti, tahun).
// Remaining tidak disimpan, selalu diturunkan dari tiga counter.
type LeaveBalance struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balances_key"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balances_key"`
	Year        int       `gorm:"not null;uniqueIndex:uq_leave_balances_key"`

	AllocatedDays decimal.Decimal `gorm:"type:numeric(6,1);not null;default:0"`
	UsedDays      decimal.Decimal `gorm:"type:numeric(6,1);not null;default:0"`
	PendingDays   decimal.Decimal `gorm:"type:numeric(6,1);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveBalance) TableName() string {
	return "leave_balances"
}

func (b LeaveBalance) Remaining() decimal.Decimal {
	return Remaining(b.AllocatedDays, b.UsedDays, b.PendingDays)
}
