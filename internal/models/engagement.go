package models

import "time"

// Like is a user's like on a space.
// The combination of UserID and SpaceID must be unique.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_space" json:"user_id"`
	SpaceID   uint      `gorm:"not null;uniqueIndex:idx_like_user_space" json:"space_id"`
	CreatedAt time.Time `json:"created_at"`

	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Space Space `gorm:"foreignKey:SpaceID" json:"space,omitempty"`
}

// Visit records that a user marked a space as visited on a given date.
// A second marking for the same pair is rejected as a duplicate.
type Visit struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_visit_user_space" json:"user_id"`
	SpaceID   uint      `gorm:"not null;uniqueIndex:idx_visit_user_space" json:"space_id"`
	VisitDate time.Time `gorm:"not null" json:"visit_date"`
	CreatedAt time.Time `json:"-"`

	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Space Space `gorm:"foreignKey:SpaceID" json:"space,omitempty"`
}
