package leave

type CreateLeaveRequest struct {
	LeaveTypeID int64  `json:"leave_type_id" binding:"required,gt=0"`
	StartDate   string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" binding:"required,datetime=2006-01-02"`
	Reason      string `json:"reason" binding:"max=2000"`
}

type DecisionRequest struct {
	Action          string  `json:"action" binding:"required"`
	RejectionReason *string `json:"rejection_reason"`
}

type LeaveResponse struct {
	ID              int64   `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	LeaveTypeID     int64   `json:"leave_type_id"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	TotalDays       int     `json:"total_days"`
	Status          string  `json:"status"`
	Reason          string  `json:"reason,omitempty"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	CreatedAt       string  `json:"created_at,omitempty"`
	UpdatedAt       string  `json:"updated_at,omitempty"`
}
