package attendance

type MarkAttendanceRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Date       string `json:"date" binding:"required,datetime=2006-01-02"`
	Status     string `json:"status" binding:"required"`
	Note       string `json:"note" binding:"max=500"`
}

type AttendanceResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
	Note       string `json:"note,omitempty"`
	MarkedBy   string `json:"marked_by"`
}

type AttendanceSummaryResponse struct {
	EmployeeID string           `json:"employee_id"`
	From       string           `json:"from"`
	To         string           `json:"to"`
	Counts     map[string]int64 `json:"counts"`
}
