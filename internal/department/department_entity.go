package department

import "time"

type Department struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	Name          string    `gorm:"size:255;not null;uniqueIndex:uq_departments_name"`
	Description   string    `gorm:"type:text"`
	HodEmployeeID *string   `gorm:"size:64;index"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (Department) TableName() string {
	return "departments"
}

// IsHOD reports whether employeeID heads this department.
func (d *Department) IsHOD(employeeID string) bool {
	return d != nil && d.HodEmployeeID != nil && employeeID != "" && *d.HodEmployeeID == employeeID
}
