package models

import "time"

// Comment is free text left by a user on a space. The creator is immutable;
// CommentDate is assigned by the server at creation.
type Comment struct {
	ID          uint      `gorm:"primaryKey" json:"comment_id"`
	Content     string    `gorm:"type:text;not null" json:"comment"`
	CommentDate time.Time `gorm:"not null" json:"comment_date"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	SpaceID     uint      `gorm:"not null;index" json:"space_id"`
	Space       Space     `gorm:"foreignKey:SpaceID" json:"space,omitempty"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}
