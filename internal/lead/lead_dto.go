package lead

type CreateLeadRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=255"`
	Contact string `json:"contact" binding:"required,max=255"`
	Source  string `json:"source" binding:"max=100"`
}

type UpdateLeadRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=2,max=255"`
	Contact *string `json:"contact" binding:"omitempty,max=255"`
	Source  *string `json:"source" binding:"omitempty,max=100"`
}

type TransitionLeadRequest struct {
	Status string `json:"status" binding:"required,oneof=NEW CONTACTED QUALIFIED CONVERTED DROPPED"`
}

type AssignLeadRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
}

type GetLeadsFilterRequest struct {
	Status     string `form:"status" binding:"omitempty,oneof=NEW CONTACTED QUALIFIED CONVERTED DROPPED"`
	AssignedTo string `form:"assigned_to" binding:"omitempty,uuid"`
	Search     string `form:"search"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type LeadResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Contact        string  `json:"contact"`
	Source         string  `json:"source,omitempty"`
	Status         string  `json:"status"`
	AssignedTo     *string `json:"assigned_to,omitempty"`
	PreviousLeadID *string `json:"previous_lead_id,omitempty"`
	CreatedBy      string  `json:"created_by"`
	CreatedAt      string  `json:"created_at"`
}
