package models

import "time"

// AppointmentHistoryEntry is an embedded snapshot of one appointment's state
// at sync time, owned by its parent Client. Entries are keyed by the
// appointment identifier and replaced in place when the same appointment
// syncs again.
type AppointmentHistoryEntry struct {
	AppointmentID string    `json:"appointment_id"`
	Brand         string    `json:"brand,omitempty"`
	Unit          string    `json:"unit,omitempty"`
	PatientName   string    `json:"patient_name,omitempty"`
	ScheduledDate string    `json:"scheduled_date,omitempty"` // YYYY-MM-DD
	ScheduledTime string    `json:"scheduled_time,omitempty"` // HH:MM
	Status        string    `json:"status,omitempty"`
	ConsultType   string    `json:"consult_type,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Client represents a unique patient identified by CPF. The "Last*" fields
// are a denormalized snapshot of the most recently synced appointment and
// TotalAppointments always equals len(History).
type Client struct {
	ID                  int64                     `json:"id" db:"id"`
	Name                string                    `json:"name" db:"name" binding:"required"`
	CPF                 string                    `json:"cpf" db:"cpf"` // canonical digits-only form, unique
	Phone               *string                   `json:"phone,omitempty" db:"phone"`
	Email               *string                   `json:"email,omitempty" db:"email"`
	Notes               *string                   `json:"notes,omitempty" db:"notes"`
	LastBrand           *string                   `json:"last_brand,omitempty" db:"last_brand"`
	LastUnit            *string                   `json:"last_unit,omitempty" db:"last_unit"`
	LastAppointmentDate *string                   `json:"last_appointment_date,omitempty" db:"last_appointment_date"`
	LastStatus          *string                   `json:"last_status,omitempty" db:"last_status"`
	LastConsultType     *string                   `json:"last_consult_type,omitempty" db:"last_consult_type"`
	TotalAppointments   int                       `json:"total_appointments" db:"total_appointments"`
	History             []AppointmentHistoryEntry `json:"history" db:"history"`
	CreatedAt           time.Time                 `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time                 `json:"updated_at" db:"updated_at"`
}
