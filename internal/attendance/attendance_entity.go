package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
	StatusLeave   = "Leave"
	StatusHoliday = "Holiday"
	StatusHalfday = "Halfday"
	StatusSick    = "Sick"
)

func IsValidStatus(status string) bool {
	switch status {
	case StatusPresent, StatusAbsent, StatusLeave, StatusHoliday, StatusHalfday, StatusSick:
		return true
	}
	return false
}

// Attendance: satu baris per (karyawan, tanggal). Mark kedua untuk
// tanggal yang sama menimpa status, bukan menambah baris.
type Attendance struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_employee_date"`
	Date       time.Time `gorm:"type:date;not null;uniqueIndex:uq_attendance_employee_date"`
	Status     string    `gorm:"type:varchar(20);not null"`
	Note       string    `gorm:"type:text"`
	MarkedBy   uuid.UUID `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Attendance) TableName() string {
	return "attendance_records"
}
