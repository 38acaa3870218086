package models

import "time"

// AppointmentStatus defines the type for appointment statuses.
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "Pendente"
	AppointmentStatusConfirmed AppointmentStatus = "Confirmado"
	AppointmentStatusCancelled AppointmentStatus = "Cancelado"
	AppointmentStatusCompleted AppointmentStatus = "Concluído"
)

// IsValidAppointmentStatus checks if the provided status string is a valid AppointmentStatus.
func IsValidAppointmentStatus(status string) bool {
	switch AppointmentStatus(status) {
	case AppointmentStatusPending,
		AppointmentStatusConfirmed,
		AppointmentStatusCancelled,
		AppointmentStatusCompleted:
		return true
	default:
		return false
	}
}

// TagRef is the denormalized copy of a tag carried by an appointment.
// Renames and recolors fan out to these copies, keyed by tag ID.
type TagRef struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Appointment represents a scheduled patient visit. ExternalID is the
// identifier the scheduling source assigns and is the natural key used to
// deduplicate client history entries.
type Appointment struct {
	ID            int64     `json:"id" db:"id"`
	ExternalID    string    `json:"external_id" db:"external_id"`
	PatientName   string    `json:"patient_name" db:"patient_name" binding:"required"`
	PatientCPF    *string   `json:"patient_cpf,omitempty" db:"patient_cpf"`
	PatientPhone  *string   `json:"patient_phone,omitempty" db:"patient_phone"`
	Brand         *string   `json:"brand,omitempty" db:"brand"`
	Unit          *string   `json:"unit,omitempty" db:"unit"`
	ScheduledDate string    `json:"scheduled_date" db:"scheduled_date"` // YYYY-MM-DD
	ScheduledTime string    `json:"scheduled_time" db:"scheduled_time"` // HH:MM
	Status        string    `json:"status" db:"status"`
	ConsultType   *string   `json:"consult_type,omitempty" db:"consult_type"`
	Notes         *string   `json:"notes,omitempty" db:"notes"`
	Tags          []TagRef  `json:"tags" db:"tags"`
	DriverID      *int64    `json:"driver_id,omitempty" db:"driver_id"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// AppointmentFilters holds optional list filters for appointments.
type AppointmentFilters struct {
	Status     *string
	Brand      *string
	Unit       *string
	DateFrom   *string // YYYY-MM-DD, inclusive
	DateTo     *string // YYYY-MM-DD, inclusive
	SearchTerm *string // matches patient name or CPF
	Page       int
	PageSize   int
}
