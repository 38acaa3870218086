package models

import "time"

// NotificationType classifies notifications for the frontend.
type NotificationType string

const (
	NotificationTypeInfo    NotificationType = "info"
	NotificationTypeWarning NotificationType = "warning"
	NotificationTypeError   NotificationType = "error"
)

// Notification is a message surfaced to backoffice users.
type Notification struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title" binding:"required"`
	Message   string    `json:"message" db:"message" binding:"required"`
	Type      string    `json:"type" db:"type"`
	IsRead    bool      `json:"is_read" db:"is_read"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
