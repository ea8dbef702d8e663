package database

import "gorm.io/gorm"

// Window applies a skip/limit window to a GORM query
func Window(skip, limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(skip).Limit(limit)
	}
}
