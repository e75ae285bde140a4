package models

import "time"

// Post is a location-tagged post. Latitude/Longitude are derived from Address
// by the geocoder at create/edit time; a post is never persisted with
// coordinates that do not match its address. CreatorID is immutable after
// creation. CommentIDs is the denormalized back-reference to the comments on
// this post, maintained in the same transaction as the comment writes.
type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Address     string    `gorm:"not null" json:"address"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	ImageRef    string    `json:"image_ref,omitempty"`
	CreatorID   uint      `gorm:"not null;index" json:"creator_id"`
	Creator     *User     `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	CommentIDs  IDList    `gorm:"serializer:json" json:"comment_ids"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
