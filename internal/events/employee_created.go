package events

import "time"

const (
	EmployeeLifecycleTopic   = "hrms.employee.lifecycle.v1"
	EmployeeCreatedEventType = "employee.created"
)

type EmployeeCreatedEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id,omitempty"`
	EmployeeID    string    `json:"employee_id"`
	DepartmentID  string    `json:"department_id,omitempty"`
	DesignationID string    `json:"designation_id,omitempty"`
	JoinedOn      string    `json:"joined_on"`
	CreatedBy     string    `json:"created_by,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
