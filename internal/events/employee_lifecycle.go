package events

import "time"

const EmployeeLifecycleTopic = "hr.employee.lifecycle.v1"

type EmployeeCreatedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EmployeeID string    `json:"employee_id"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}

type EmployeeDeletedEvent struct {
	EventType                string    `json:"event_type"`
	RequestID                string    `json:"request_id,omitempty"`
	EmployeeID               string    `json:"employee_id"`
	DeletedAttendanceRecords int64     `json:"deleted_attendance_records"`
	OccurredAt               time.Time `json:"occurred_at"`
}
