// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered account. PostIDs and CommentIDs are the
// denormalized back-references to the posts and comments the user created;
// they are maintained transactionally by the service layer, never derived at
// read time.
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Username   string    `gorm:"unique;not null" json:"username"`
	Email      string    `gorm:"unique;not null" json:"email"`
	Password   string    `gorm:"not null" json:"-"`
	PostIDs    IDList    `gorm:"serializer:json" json:"post_ids"`
	CommentIDs IDList    `gorm:"serializer:json" json:"comment_ids"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
