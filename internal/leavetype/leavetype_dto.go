package leavetype

type CreateLeaveTypeRequest struct {
	Name                  string `json:"name" binding:"required,max=255"`
	Description           string `json:"description"`
	MaxDaysPerYear        *int   `json:"max_days_per_year" binding:"omitempty,min=0"`
	RequiresDocumentation *bool  `json:"requires_documentation"`
}

// UpdateLeaveTypeRequest applies only the fields that are present.
type UpdateLeaveTypeRequest struct {
	Name                  *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description           *string `json:"description"`
	MaxDaysPerYear        *int    `json:"max_days_per_year" binding:"omitempty,min=0"`
	RequiresDocumentation *bool   `json:"requires_documentation"`
}

type LeaveTypeResponse struct {
	ID                    int64  `json:"id"`
	Name                  string `json:"name"`
	Description           string `json:"description"`
	MaxDaysPerYear        *int   `json:"max_days_per_year"`
	RequiresDocumentation bool   `json:"requires_documentation"`
	CreatedAt             string `json:"created_at,omitempty"`
	UpdatedAt             string `json:"updated_at,omitempty"`
}
