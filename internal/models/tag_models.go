package models

import "time"

// Tag is a named, colored label attachable to appointments.
// NormalizedName is the trimmed, lowercased shadow of Name and is unique
// across active and inactive tags.
type Tag struct {
	ID             int64     `json:"id" db:"id"`
	Name           string    `json:"name" db:"name" binding:"required"`
	NormalizedName string    `json:"-" db:"normalized_name"`
	Color          string    `json:"color" db:"color"` // hex #RRGGBB
	IsActive       bool      `json:"is_active" db:"is_active"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// TagSummary is the read-only projection handed to appointment views.
type TagSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}
