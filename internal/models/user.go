// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered HappyHour user. Username is the public
// identifier and is immutable after registration.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"user_id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	IsAdmin   bool      `gorm:"not null;default:false" json:"isAdmin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Principal is the verified identity attached to a request after the JWT
// middleware has run.
type Principal struct {
	UserID   uint
	Username string
	IsAdmin  bool
}
