package leavetype

type CreateLeaveTypeRequest struct {
	Name        string `json:"name" binding:"required"`
	Code        string `json:"code" binding:"required,max=20"`
	Description string `json:"description"`
	Color       string `json:"color"`
	IsPaid      *bool  `json:"is_paid"`
	MaxDays     int    `json:"max_days" binding:"gte=0"`
}

type UpdateLeaveTypeRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
	IsPaid      *bool  `json:"is_paid"`
	MaxDays     *int   `json:"max_days"`
	IsActive    *bool  `json:"is_active"`
}

type LeaveTypeResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color"`
	IsPaid      bool   `json:"is_paid"`
	MaxDays     int    `json:"max_days"`
	IsActive    bool   `json:"is_active"`
}

type LeaveTypeOption struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Code  string `json:"code"`
	Color string `json:"color"`
}
