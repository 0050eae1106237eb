package leavetype

import "time"

type LeaveType struct {
	ID                    int64     `gorm:"primaryKey;autoIncrement"`
	Name                  string    `gorm:"size:255;not null;uniqueIndex:uq_leave_types_name"`
	Description           string    `gorm:"type:text"`
	MaxDaysPerYear        *int      `gorm:"column:max_days_per_year"`
	RequiresDocumentation bool      `gorm:"column:requires_documentation;not null;default:false"`
	CreatedAt             time.Time `gorm:"autoCreateTime"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime"`
}

func (LeaveType) TableName() string {
	return "leave_types"
}
