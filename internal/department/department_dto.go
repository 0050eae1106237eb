package department

type CreateDepartmentRequest struct {
	Name          string  `json:"name" binding:"required,max=255"`
	Description   string  `json:"description"`
	HodEmployeeID *string `json:"hod_employee_id"`
}

// UpdateDepartmentRequest applies only the fields that are present.
type UpdateDepartmentRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description   *string `json:"description"`
	HodEmployeeID *string `json:"hod_employee_id"`
}

type AssignHODRequest struct {
	HodEmployeeID string `json:"hod_employee_id" binding:"required"`
}

type DepartmentResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	HodEmployeeID *string `json:"hod_employee_id"`
	CreatedAt     string  `json:"created_at,omitempty"`
	UpdatedAt     string  `json:"updated_at,omitempty"`
}
