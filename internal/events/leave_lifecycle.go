package events

import "time"

const LeaveLifecycleTopic = "hr.leave.lifecycle.v1"

const (
	LeaveRequested = "leave.requested"
	LeaveApproved  = "leave.approved"
	LeaveRejected  = "leave.rejected"
)

const LeaveRequestAggregate = "leave_request"

// LeaveLifecycleEvent is published whenever a leave request is created or decided.
type LeaveLifecycleEvent struct {
	EventType       string    `json:"event_type"`
	LeaveRequestID  int64     `json:"leave_request_id"`
	EmployeeID      string    `json:"employee_id"`
	LeaveTypeID     int64     `json:"leave_type_id"`
	DepartmentID    int64     `json:"department_id"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date"`
	Status          string    `json:"status"`
	DecidedBy       *string   `json:"decided_by,omitempty"`
	RejectionReason *string   `json:"rejection_reason,omitempty"`
	RequestID       string    `json:"request_id,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}
