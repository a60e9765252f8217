package events

import "time"

const PayrollPayslipRequestedTopic = "hr.payroll.payslip.v1"

type PayrollPayslipRequestedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	PayrollID  string    `json:"payroll_id"`
	EmployeeID string    `json:"employee_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
