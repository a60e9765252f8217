package employee

type CreateEmployeeRequest struct {
	UserID      string `json:"user_id" binding:"omitempty,uuid"`
	FullName    string `json:"full_name" binding:"required,max=150"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"max=30"`
	Department  string `json:"department" binding:"max=100"`
	Designation string `json:"designation" binding:"max=100"`
	BranchID    string `json:"branch_id" binding:"omitempty,uuid"`
	JoiningDate string `json:"joining_date" binding:"omitempty,datetime=2006-01-02"`
	Salary      int64  `json:"salary" binding:"gte=0"`
}

type UpdateEmployeeRequest struct {
	FullName    string `json:"full_name" binding:"omitempty,max=150"`
	Phone       string `json:"phone" binding:"max=30"`
	Department  string `json:"department" binding:"max=100"`
	Designation string `json:"designation" binding:"max=100"`
	BranchID    string `json:"branch_id" binding:"omitempty,uuid"`
	IsActive    *bool  `json:"is_active"`
}

type ListEmployeeQuery struct {
	Department string `form:"department"`
	BranchID   string `form:"branch_id" binding:"omitempty,uuid"`
	Active     bool   `form:"active"`
	Search     string `form:"search"`
	Page       int    `form:"page,default=1" binding:"gte=1"`
	Limit      int    `form:"limit,default=20" binding:"gte=1,lte=100"`
}

type ProposeSalaryRequest struct {
	ProposedSalary int64 `json:"proposed_salary" binding:"required,gte=0"`
}

type DecideSalaryRequest struct {
	Decision string `json:"decision" binding:"required,oneof=APPROVED REJECTED"`
}

type EmployeeResponse struct {
	ID             string  `json:"id"`
	EmpCode        string  `json:"emp_code"`
	UserID         *string `json:"user_id,omitempty"`
	FullName       string  `json:"full_name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone,omitempty"`
	Department     string  `json:"department,omitempty"`
	Designation    string  `json:"designation,omitempty"`
	BranchID       *string `json:"branch_id,omitempty"`
	JoiningDate    string  `json:"joining_date,omitempty"`
	Salary         int64   `json:"salary"`
	ProposedSalary *int64  `json:"proposed_salary,omitempty"`
	SalaryStatus   string  `json:"salary_status"`
	IsActive       bool    `json:"is_active"`
}

type EmployeeOption struct {
	ID       string `json:"id"`
	EmpCode  string `json:"emp_code"`
	FullName string `json:"full_name"`
}
