package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/models"
	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/repositories"
	"github.com/obrunogonzaga/clinic-appointment-system-sub001/pkg/cpf"
	"github.com/obrunogonzaga/clinic-appointment-system-sub001/pkg/utils"
)

// --- Custom Service Errors for Appointment ---
var (
	ErrAppointmentNotFound   = errors.New("appointment not found")
	ErrAppointmentValidation = errors.New("appointment data validation error")
	ErrInvalidStatus         = errors.New("invalid appointment status")
	ErrDriverForApptNotFound = errors.New("driver specified for appointment not found")
)

// --- Appointment DTOs ---
type CreateAppointmentRequest struct {
	ExternalID   *string `json:"external_id"`
	PatientName  string  `json:"patient_name" binding:"required"`
	PatientCPF   *string `json:"patient_cpf"`
	PatientPhone *string `json:"patient_phone"`
	Brand        *string `json:"brand"`
	Unit         *string `json:"unit"`
	// ScheduledDate accepts YYYY-MM-DD or DD/MM/YYYY.
	ScheduledDate string  `json:"scheduled_date" binding:"required"`
	ScheduledTime string  `json:"scheduled_time"`
	Status        *string `json:"status"`
	ConsultType   *string `json:"consult_type"`
	Notes         *string `json:"notes"`
}

type UpdateAppointmentRequest struct {
	PatientName   *string `json:"patient_name"`
	PatientCPF    *string `json:"patient_cpf"`
	PatientPhone  *string `json:"patient_phone"`
	Brand         *string `json:"brand"`
	Unit          *string `json:"unit"`
	ScheduledDate *string `json:"scheduled_date"`
	ScheduledTime *string `json:"scheduled_time"`
	Status        *string `json:"status"`
	ConsultType   *string `json:"consult_type"`
	Notes         *string `json:"notes"`
	DriverID      *int64  `json:"driver_id"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type SetAppointmentTagsRequest struct {
	TagIDs []int64 `json:"tag_ids"`
}

// --- AppointmentService Interface ---
type AppointmentService interface {
	CreateAppointment(req CreateAppointmentRequest) (*models.Appointment, error)
	GetAppointmentByID(appointmentID int64) (*models.Appointment, error)
	GetAppointments(filters models.AppointmentFilters) ([]models.Appointment, int, error)
	UpdateAppointment(appointmentID int64, req UpdateAppointmentRequest) (*models.Appointment, error)
	UpdateAppointmentStatus(appointmentID int64, req UpdateAppointmentStatusRequest) (*models.Appointment, error)
	SetAppointmentTags(appointmentID int64, req SetAppointmentTagsRequest) (*models.Appointment, error)
	DeleteAppointment(appointmentID int64) error
}

// --- appointmentService Implementation ---
type appointmentService struct {
	appointmentRepo repositories.AppointmentRepository
	driverRepo      repositories.DriverRepository
	clientService   ClientService
	tagService      TagService
	db              *sql.DB
}

// NewAppointmentService creates a new instance of AppointmentService.
func NewAppointmentService(
	ar repositories.AppointmentRepository,
	dr repositories.DriverRepository,
	cs ClientService,
	ts TagService,
	db *sql.DB,
) AppointmentService {
	return &appointmentService{
		appointmentRepo: ar,
		driverRepo:      dr,
		clientService:   cs,
		tagService:      ts,
		db:              db,
	}
}

func (s *appointmentService) validatePatientCPF(raw *string) error {
	value := derefString(raw)
	if value == "" {
		return nil
	}
	if !cpf.IsValid(value) {
		return fmt.Errorf("%w: invalid patient cpf", ErrAppointmentValidation)
	}
	return nil
}

// syncClient hands the appointment to the client reconciliation service.
// The appointment write has already committed, so a sync failure is logged
// rather than surfaced; the next sync for the same CPF repairs the aggregate.
func (s *appointmentService) syncClient(appointment *models.Appointment) {
	if err := s.clientService.SyncFromAppointment(appointment); err != nil {
		utils.LogWarn(err, fmt.Sprintf("Client sync failed for appointment %s", appointment.ExternalID))
	}
}

func (s *appointmentService) CreateAppointment(req CreateAppointmentRequest) (*models.Appointment, error) {
	if strings.TrimSpace(req.PatientName) == "" {
		return nil, fmt.Errorf("%w: patient name cannot be empty", ErrAppointmentValidation)
	}
	if err := s.validatePatientCPF(req.PatientCPF); err != nil {
		return nil, err
	}

	scheduledDate, err := parseFlexibleDate(req.ScheduledDate)
	if err != nil {
		return nil, fmt.Errorf("scheduled_date: %w", err)
	}

	status := string(models.AppointmentStatusPending)
	if req.Status != nil && *req.Status != "" {
		if !models.IsValidAppointmentStatus(*req.Status) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, *req.Status)
		}
		status = *req.Status
	}

	externalID := derefString(req.ExternalID)
	if externalID == "" {
		externalID = uuid.NewString()
	}

	var patientCPF *string
	if derefString(req.PatientCPF) != "" {
		canonical := cpf.Normalize(*req.PatientCPF)
		patientCPF = &canonical
	}

	appointment := &models.Appointment{
		ExternalID:    externalID,
		PatientName:   req.PatientName,
		PatientCPF:    patientCPF,
		PatientPhone:  req.PatientPhone,
		Brand:         req.Brand,
		Unit:          req.Unit,
		ScheduledDate: scheduledDate,
		ScheduledTime: req.ScheduledTime,
		Status:        status,
		ConsultType:   req.ConsultType,
		Notes:         req.Notes,
		Tags:          []models.TagRef{},
	}

	id, err := s.appointmentRepo.CreateAppointment(s.db, appointment)
	if err != nil {
		return nil, fmt.Errorf("failed to create appointment in repository: %w", err)
	}
	appointment.ID = id

	s.syncClient(appointment)

	return appointment, nil
}

func (s *appointmentService) GetAppointmentByID(appointmentID int64) (*models.Appointment, error) {
	appointment, err := s.appointmentRepo.GetAppointmentByID(appointmentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to get appointment by ID: %w", err)
	}
	return appointment, nil
}

func (s *appointmentService) GetAppointments(filters models.AppointmentFilters) ([]models.Appointment, int, error) {
	filters.Page, filters.PageSize = clampPagination(filters.Page, filters.PageSize)

	appointments, totalCount, err := s.appointmentRepo.GetAppointments(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get appointments: %w", err)
	}
	return appointments, totalCount, nil
}

func (s *appointmentService) UpdateAppointment(appointmentID int64, req UpdateAppointmentRequest) (*models.Appointment, error) {
	appointment, err := s.appointmentRepo.GetAppointmentByID(appointmentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to find appointment for update: %w", err)
	}

	if req.PatientName != nil {
		if strings.TrimSpace(*req.PatientName) == "" {
			return nil, fmt.Errorf("%w: patient name cannot be empty if provided", ErrAppointmentValidation)
		}
		appointment.PatientName = *req.PatientName
	}
	if req.PatientCPF != nil {
		if err := s.validatePatientCPF(req.PatientCPF); err != nil {
			return nil, err
		}
		if *req.PatientCPF == "" {
			appointment.PatientCPF = nil
		} else {
			canonical := cpf.Normalize(*req.PatientCPF)
			appointment.PatientCPF = &canonical
		}
	}
	if req.PatientPhone != nil {
		appointment.PatientPhone = req.PatientPhone
	}
	if req.Brand != nil {
		appointment.Brand = req.Brand
	}
	if req.Unit != nil {
		appointment.Unit = req.Unit
	}
	if req.ScheduledDate != nil {
		scheduledDate, err := parseFlexibleDate(*req.ScheduledDate)
		if err != nil {
			return nil, fmt.Errorf("scheduled_date: %w", err)
		}
		appointment.ScheduledDate = scheduledDate
	}
	if req.ScheduledTime != nil {
		appointment.ScheduledTime = *req.ScheduledTime
	}
	if req.Status != nil {
		if !models.IsValidAppointmentStatus(*req.Status) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, *req.Status)
		}
		appointment.Status = *req.Status
	}
	if req.ConsultType != nil {
		appointment.ConsultType = req.ConsultType
	}
	if req.Notes != nil {
		appointment.Notes = req.Notes
	}
	if req.DriverID != nil {
		if _, err := s.driverRepo.GetDriverByID(*req.DriverID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: ID %d", ErrDriverForApptNotFound, *req.DriverID)
			}
			return nil, fmt.Errorf("failed to validate driver for appointment: %w", err)
		}
		appointment.DriverID = req.DriverID
	}

	if err := s.appointmentRepo.UpdateAppointment(s.db, appointment); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to update appointment in repository: %w", err)
	}

	s.syncClient(appointment)

	return appointment, nil
}

func (s *appointmentService) UpdateAppointmentStatus(appointmentID int64, req UpdateAppointmentStatusRequest) (*models.Appointment, error) {
	if !models.IsValidAppointmentStatus(req.Status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	appointment, err := s.appointmentRepo.GetAppointmentByID(appointmentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to find appointment for status update: %w", err)
	}

	if err := s.appointmentRepo.UpdateAppointmentStatus(s.db, appointmentID, req.Status); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to update appointment status: %w", err)
	}
	appointment.Status = req.Status

	s.syncClient(appointment)

	return appointment, nil
}

// SetAppointmentTags replaces the appointment's denormalized tag copies.
// Inactive and unknown tag IDs are dropped, mirroring GetActiveTagsByIDs.
func (s *appointmentService) SetAppointmentTags(appointmentID int64, req SetAppointmentTagsRequest) (*models.Appointment, error) {
	appointment, err := s.appointmentRepo.GetAppointmentByID(appointmentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to find appointment for tag update: %w", err)
	}

	summaries, err := s.tagService.GetActiveTagsByIDs(req.TagIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tags: %w", err)
	}

	tags := make([]models.TagRef, 0, len(summaries))
	for _, id := range req.TagIDs {
		if summary, ok := summaries[id]; ok {
			tags = append(tags, models.TagRef{ID: summary.ID, Name: summary.Name, Color: summary.Color})
		}
	}

	if err := s.appointmentRepo.SetAppointmentTags(s.db, appointmentID, tags); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to set appointment tags: %w", err)
	}
	appointment.Tags = tags
	return appointment, nil
}

func (s *appointmentService) DeleteAppointment(appointmentID int64) error {
	if _, err := s.appointmentRepo.GetAppointmentByID(appointmentID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrAppointmentNotFound
		}
		return fmt.Errorf("failed to find appointment for deletion: %w", err)
	}

	if err := s.appointmentRepo.DeleteAppointment(s.db, appointmentID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrAppointmentNotFound
		}
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	return nil
}
