package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusDraft    = "DRAFT"
	StatusApproved = "APPROVED"
	StatusPaid     = "PAID"
)

type Payroll struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_payrolls_employee_period"`
	// Period format YYYY-MM, satu slip gaji per karyawan per bulan.
	Period          string          `gorm:"size:7;not null;uniqueIndex:uq_payrolls_employee_period"`
	BaseSalary      int64           `gorm:"not null"`
	UnpaidLeaveDays decimal.Decimal `gorm:"type:numeric(6,1);not null"`
	Deduction       int64           `gorm:"not null"`
	NetPay          int64           `gorm:"not null"`
	Status          string          `gorm:"size:20;not null;default:'DRAFT'"`
	CreatedBy       uuid.UUID       `gorm:"type:uuid;not null"`
	ApprovedBy      *uuid.UUID      `gorm:"type:uuid"`
	ApprovedAt      *time.Time
	PaidAt          *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Payroll) TableName() string {
	return "payrolls"
}
