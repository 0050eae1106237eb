package leave

import (
	"time"

	"github.com/Falasefemi2/hr-portal/internal/overlap"
)

const (
	StatusPending  = overlap.StatusPending
	StatusApproved = overlap.StatusApproved
	StatusRejected = "REJECTED"
)

const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// LeaveRequest moves only from PENDING to APPROVED or REJECTED. Rows are never deleted.
type LeaveRequest struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	EmployeeID  string    `gorm:"type:varchar(64);not null;index:idx_leave_requests_employee_status"`
	LeaveTypeID int64     `gorm:"not null;index"`
	StartDate   time.Time `gorm:"type:date;not null;index:idx_leave_requests_dates"`
	EndDate     time.Time `gorm:"type:date;not null;index:idx_leave_requests_dates"`
	Status      string    `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leave_requests_employee_status"`
	Reason      string    `gorm:"type:text"`

	ApprovedBy      *string `gorm:"type:varchar(64)"`
	RejectionReason *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

func (l LeaveRequest) IsPending() bool {
	return l.Status == StatusPending
}
