package assignment

type AssignSchemeRequest struct {
	EmployeeID    string  `json:"employee_id" binding:"required,uuid"`
	SchemeID      string  `json:"scheme_id" binding:"required,uuid"`
	EffectiveFrom string  `json:"effective_from" binding:"required,datetime=2006-01-02"`
	EffectiveTo   *string `json:"effective_to" binding:"omitempty,datetime=2006-01-02"`
}

type CloseAssignmentRequest struct {
	EffectiveTo string `json:"effective_to" binding:"required,datetime=2006-01-02"`
}

type AssignmentResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	SchemeID      string  `json:"scheme_id"`
	SchemeName    string  `json:"scheme_name,omitempty"`
	EffectiveFrom string  `json:"effective_from"`
	EffectiveTo   *string `json:"effective_to,omitempty"`
	AssignedBy    string  `json:"assigned_by"`
}
