package leavetype

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaveType struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Code        string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_leave_types_code"`
	Description string    `gorm:"type:text"`
	Color       string    `gorm:"type:varchar(20);not null;default:'#4A90D9'"`
	IsPaid      bool      `gorm:"not null;default:true"`
	MaxDays     int       `gorm:"type:int;not null;default:0"`
	IsActive    bool      `gorm:"not null;default:true;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (LeaveType) TableName() string {
	return "leave_types"
}
