// Package repository implements the data access layer for the application.
package repository

import (
	"strings"

	"gorm.io/gorm"
)

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
// The application-level duplicate guards are advisory only; this translation is
// the correctness backstop when two racing inserts both pass the pre-check.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505; sqlite reports
	// "UNIQUE constraint failed" in tests.
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

// likeOperator returns the case-insensitive pattern operator for the connected
// dialect. Postgres has ILIKE; sqlite's LIKE is already case-insensitive for
// ASCII, which is what the in-memory test databases rely on.
func likeOperator(db *gorm.DB) string {
	if db.Dialector.Name() == "sqlite" {
		return "LIKE"
	}
	return "ILIKE"
}
