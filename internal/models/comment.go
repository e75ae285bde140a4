package models

import "time"

// Comment belongs to exactly one post and one creator; both references are
// immutable after creation. Comments are never edited or deleted.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatorID uint      `gorm:"not null;index" json:"creator_id"`
	Creator   *User     `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
