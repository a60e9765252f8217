package scheme

import (
	"time"

	"go-backoffice/internal/leavetype"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaveScheme struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_leave_schemes_name"`
	IsActive bool      `gorm:"not null;default:true"`

	CreatedBy uuid.UUID  `gorm:"type:uuid;not null"`
	UpdatedBy *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	LeaveTypes []SchemeLeaveType `gorm:"foreignKey:SchemeID"`
}

func (LeaveScheme) TableName() string {
	return "leave_schemes"
}

type SchemeLeaveType struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SchemeID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_scheme_leave_types_pair;constraint:OnDelete:CASCADE"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_scheme_leave_types_pair;constraint:OnDelete:CASCADE"`
	DaysAllowed int       `gorm:"type:int;not null;check:chk_scheme_days_allowed,days_allowed >= 0"`
	IsPaid      bool      `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time

	LeaveType *leavetype.LeaveType `gorm:"foreignKey:LeaveTypeID;references:ID"`
}

func (SchemeLeaveType) TableName() string {
	return "scheme_leave_types"
}
