package assignment

import (
	"time"

	"go-backoffice/internal/scheme"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmployeeLeaveScheme mengikat satu karyawan ke satu skema cuti untuk
// rentang tanggal tertentu. EffectiveTo nil berarti open-ended.
type EmployeeLeaveScheme struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_employee_scheme_effective;index:idx_employee_schemes_employee"`
	SchemeID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_employee_scheme_effective"`

	EffectiveFrom time.Time  `gorm:"type:date;not null;uniqueIndex:uq_employee_scheme_effective"`
	EffectiveTo   *time.Time `gorm:"type:date;check:chk_assignment_range,effective_to IS NULL OR effective_to > effective_from"`

	AssignedBy uuid.UUID `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Scheme *scheme.LeaveScheme `gorm:"foreignKey:SchemeID;references:ID"`
}

func (EmployeeLeaveScheme) TableName() string {
	return "employee_leave_schemes"
}
