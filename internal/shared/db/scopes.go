// Package db provides database utilities including transaction management and query scopes.
package db

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NotDeleted filters out rows whose is_deleted flag is set.
//
//	db.Model(&models.InventoryModel{}).Scopes(db.NotDeleted()).Find(&rows)
func NotDeleted() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("is_deleted = ?", false)
	}
}

// NotDeletedWithAlias is NotDeleted for a joined or aliased table.
func NotDeletedWithAlias(alias string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(alias+".is_deleted = ?", false)
	}
}

// ForUpdate adds SELECT ... FOR UPDATE. SQLite has no row locks and
// serializes writers at the database level, so the clause is skipped there.
func ForUpdate() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if db.Dialector != nil && db.Dialector.Name() == "sqlite" {
			return db
		}
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
}

// Paginate applies LIMIT/OFFSET for a 1-based page.
func Paginate(page, limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		return db.Offset((page - 1) * limit).Limit(limit)
	}
}
