package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SalaryStatusNone     = "NONE"
	SalaryStatusProposed = "PROPOSED"
	SalaryStatusApproved = "APPROVED"
	SalaryStatusRejected = "REJECTED"
)

type Employee struct {
	ID      uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmpCode string     `gorm:"type:varchar(20);not null;uniqueIndex:uq_employees_emp_code"`
	UserID  *uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_employees_user_id"`

	FullName    string     `gorm:"type:varchar(150);not null"`
	Email       string     `gorm:"type:varchar(150);not null;uniqueIndex:uq_employees_email"`
	Phone       string     `gorm:"type:varchar(30)"`
	Department  string     `gorm:"type:varchar(100);index"`
	Designation string     `gorm:"type:varchar(100)"`
	BranchID    *uuid.UUID `gorm:"type:uuid;index"`
	JoiningDate time.Time  `gorm:"type:date"`

	// Gaji disimpan dalam satuan terkecil mata uang (mis. sen) supaya
	// tidak ada float di jalur uang.
	Salary         int64  `gorm:"type:bigint;not null;default:0"`
	ProposedSalary *int64 `gorm:"type:bigint"`
	SalaryStatus   string `gorm:"type:varchar(20);not null;default:'NONE'"`

	IsActive bool `gorm:"not null;default:true;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
