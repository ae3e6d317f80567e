package models

import "time"

// Location is a reference entity identified by the (city, neighborhood)
// pair. Both parts are stored word-capitalized.
type Location struct {
	ID           uint      `gorm:"primaryKey" json:"loc_id"`
	City         string    `gorm:"not null;uniqueIndex:idx_city_neighborhood" json:"city"`
	Neighborhood string    `gorm:"not null;uniqueIndex:idx_city_neighborhood" json:"neighborhood"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}
