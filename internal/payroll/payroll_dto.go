package payroll

type CreatePayrollRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Period     string `json:"period" binding:"required"`
}

type GetPayrollsFilterRequest struct {
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=DRAFT APPROVED PAID"`
	Period     string `form:"period"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type PayrollResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	Period          string  `json:"period"`
	BaseSalary      int64   `json:"base_salary"`
	UnpaidLeaveDays string  `json:"unpaid_leave_days"`
	Deduction       int64   `json:"deduction"`
	NetPay          int64   `json:"net_pay"`
	Status          string  `json:"status"`
	CreatedBy       string  `json:"created_by"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	PaidAt          *string `json:"paid_at,omitempty"`
}
