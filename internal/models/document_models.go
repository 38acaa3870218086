package models

import "time"

// DocumentStatus tracks the upload lifecycle of a patient document.
type DocumentStatus string

const (
	DocumentStatusPending  DocumentStatus = "pending"  // upload URL issued, object not confirmed
	DocumentStatusUploaded DocumentStatus = "uploaded" // client confirmed the upload
)

// PatientDocument is the metadata row for a file stored in object storage.
// StorageKey is the object key; the bytes never touch this service.
type PatientDocument struct {
	ID          int64     `json:"id" db:"id"`
	ClientID    int64     `json:"client_id" db:"client_id"`
	Filename    string    `json:"filename" db:"filename" binding:"required"`
	ContentType string    `json:"content_type" db:"content_type"`
	SizeBytes   *int64    `json:"size_bytes,omitempty" db:"size_bytes"`
	StorageKey  string    `json:"-" db:"storage_key"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
