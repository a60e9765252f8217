package balance

type InitializeBalanceRequest struct {
	EmployeeID    string   `json:"employee_id" binding:"required,uuid"`
	LeaveTypeID   string   `json:"leave_type_id" binding:"required,uuid"`
	Year          int      `json:"year" binding:"required,gte=2000,lte=2100"`
	AllocatedDays *float64 `json:"allocated_days" binding:"omitempty,gte=0"`
}

type BalanceResponse struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employee_id"`
	LeaveTypeID    string `json:"leave_type_id"`
	LeaveTypeName  string `json:"leave_type_name,omitempty"`
	LeaveTypeCode  string `json:"leave_type_code,omitempty"`
	LeaveTypeColor string `json:"leave_type_color,omitempty"`
	Year           int    `json:"year"`
	AllocatedDays  string `json:"allocated_days"`
	UsedDays       string `json:"used_days"`
	PendingDays    string `json:"pending_days"`
	RemainingDays  string `json:"remaining_days"`
}
