package models

import "time"

// Rating is an integer score a user gives a space.
// The combination of UserID and SpaceID must be unique.
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"rating_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_rating_user_space" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	SpaceID   uint      `gorm:"not null;uniqueIndex:idx_rating_user_space" json:"space_id"`
	Space     Space     `gorm:"foreignKey:SpaceID" json:"space,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NotYetRated is returned in place of a numeric average for spaces that
// have no ratings. Callers must special-case it rather than parsing.
const NotYetRated = "Not yet rated"
