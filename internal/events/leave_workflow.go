package events

import "time"

const (
	LeaveWorkflowTopic      = "hrms.leave.workflow.v1"
	LeaveSubmittedEventType = "leave.submitted"
	LeaveReviewedEventType  = "leave.reviewed"
)

type LeaveSubmittedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	LeaveID      string    `json:"leave_id"`
	EmployeeID   string    `json:"employee_id"`
	DepartmentID string    `json:"department_id,omitempty"`
	LeaveType    string    `json:"leave_type"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	TotalDays    int       `json:"total_days"`
	Status       string    `json:"status"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type LeaveReviewedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	LeaveID      string    `json:"leave_id"`
	EmployeeID   string    `json:"employee_id"`
	DepartmentID string    `json:"department_id,omitempty"`
	Stage        string    `json:"stage"`
	Action       string    `json:"action"`
	FromStatus   string    `json:"from_status"`
	ToStatus     string    `json:"to_status"`
	ReviewerID   string    `json:"reviewer_id"`
	Comments     string    `json:"comments,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// LeaveEnvelope is decoded first so consumers can switch on EventType before
// decoding the full payload.
type LeaveEnvelope struct {
	EventType string `json:"event_type"`
}
