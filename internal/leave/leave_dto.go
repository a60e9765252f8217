package leave

type SubmitLeaveRequest struct {
	LeaveTypeID    string `json:"leave_type_id" binding:"required,uuid"`
	StartDate      string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate        string `json:"end_date" binding:"required,datetime=2006-01-02"`
	Reason         string `json:"reason" binding:"required,max=2000"`
	ContactDetails string `json:"contact_details" binding:"max=255"`
	HandoverNotes  string `json:"handover_notes" binding:"max=2000"`
}

type DecideLeaveRequest struct {
	Decision string `json:"decision" binding:"required,oneof=APPROVED REJECTED"`
	Comments string `json:"comments" binding:"max=2000"`
}

type ListLeaveQuery struct {
	Status     string `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED CANCELLED"`
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Department string `form:"department"`
	Page       int    `form:"page,default=1" binding:"gte=1"`
	Limit      int    `form:"limit,default=20" binding:"gte=1,lte=100"`
}

type LeaveApplicationResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	LeaveTypeID    string  `json:"leave_type_id"`
	LeaveTypeName  string  `json:"leave_type_name,omitempty"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	WorkingDays    string  `json:"working_days"`
	Reason         string  `json:"reason"`
	ContactDetails string  `json:"contact_details,omitempty"`
	HandoverNotes  string  `json:"handover_notes,omitempty"`
	Status         string  `json:"status"`
	Comments       string  `json:"comments,omitempty"`
	DecidedBy      *string `json:"decided_by,omitempty"`
	DecidedAt      *string `json:"decided_at,omitempty"`
	RemainingDays  string  `json:"remaining_days,omitempty"`
}
