package scheme

type CreateSchemeRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type UpdateSchemeRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	IsActive *bool  `json:"is_active"`
}

type AttachLeaveTypeRequest struct {
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	DaysAllowed int    `json:"days_allowed" binding:"gte=0"`
	IsPaid      *bool  `json:"is_paid"`
}

type SchemeLeaveTypeResponse struct {
	ID            string `json:"id"`
	LeaveTypeID   string `json:"leave_type_id"`
	LeaveTypeName string `json:"leave_type_name,omitempty"`
	LeaveTypeCode string `json:"leave_type_code,omitempty"`
	DaysAllowed   int    `json:"days_allowed"`
	IsPaid        bool   `json:"is_paid"`
}

type SchemeResponse struct {
	ID         string                    `json:"id"`
	Name       string                    `json:"name"`
	IsActive   bool                      `json:"is_active"`
	CreatedBy  string                    `json:"created_by"`
	UpdatedBy  *string                   `json:"updated_by,omitempty"`
	LeaveTypes []SchemeLeaveTypeResponse `json:"leave_types"`
}
