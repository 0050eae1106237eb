// Package scope holds reusable gorm query scopes.
package scope

import "gorm.io/gorm"

// Employees restricts a query to rows owned by the given employee ids.
func Employees(ids []string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("employee_id IN ?", ids)
	}
}

func Status(statuses ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("status IN ?", statuses)
	}
}

// Oldest orders by surrogate id ascending, the iteration order lookups rely on.
func Oldest(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

// Newest lists most recent rows first.
func Newest(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}
