package leave

import (
	"time"

	"go-backoffice/internal/leavetype"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

// IsTerminal: sekali keluar dari PENDING, status tidak pernah berubah lagi.
func IsTerminal(status string) bool {
	return status == StatusApproved || status == StatusRejected || status == StatusCancelled
}

type LeaveApplication struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_applications_employee"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null"`

	StartDate   time.Time       `gorm:"type:date;not null"`
	EndDate     time.Time       `gorm:"type:date;not null;check:chk_leave_application_range,end_date >= start_date"`
	WorkingDays decimal.Decimal `gorm:"type:numeric(6,1);not null"`

	Reason         string `gorm:"type:text;not null"`
	ContactDetails string `gorm:"type:varchar(255)"`
	HandoverNotes  string `gorm:"type:text"`

	Status    string     `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	Comments  string     `gorm:"type:text"`
	DecidedBy *uuid.UUID `gorm:"type:uuid"`
	DecidedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	LeaveType *leavetype.LeaveType `gorm:"foreignKey:LeaveTypeID;references:ID"`
}

func (LeaveApplication) TableName() string {
	return "leave_applications"
}
