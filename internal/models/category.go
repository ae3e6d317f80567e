package models

import "time"

// Category is a reference entity describing the kind of a space
// (e.g. "Fine Dining"). CatType is stored word-capitalized.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"cat_id"`
	CatType   string    `gorm:"uniqueIndex;not null" json:"cat_type"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
