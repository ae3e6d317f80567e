package models

import "time"

// Space is a directory entry for an interior-design space. Title is the
// public identifier and is stored word-capitalized.
type Space struct {
	ID          uint      `gorm:"primaryKey" json:"space_id"`
	Title       string    `gorm:"uniqueIndex;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    string    `json:"image_url"`
	Address     string    `json:"address"`
	EstYear     int       `json:"est_year"`
	CategoryID  uint      `gorm:"not null;index" json:"category_id"`
	Category    Category  `gorm:"foreignKey:CategoryID" json:"category"`
	LocationID  uint      `gorm:"not null;index" json:"location_id"`
	Location    Location  `gorm:"foreignKey:LocationID" json:"location"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// AvgRating is not persisted; computed at query time. Nil while the
	// space has no ratings.
	AvgRating *float64 `gorm:"->;-:migration" json:"avg_rating,omitempty"`
}
