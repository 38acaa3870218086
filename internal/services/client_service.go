package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/models"
	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/repositories"
	"github.com/obrunogonzaga/clinic-appointment-system-sub001/pkg/cpf"
)

// --- Custom Service Errors for Client ---
var (
	ErrClientNotFound   = errors.New("client not found")
	ErrClientCPFExists  = errors.New("cpf already registered")
	ErrClientValidation = errors.New("client data validation error")
)

// --- Client DTOs ---
type CreateClientRequest struct {
	Name  string  `json:"name" binding:"required"`
	CPF   string  `json:"cpf" binding:"required"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
	Notes *string `json:"notes"`
}

type UpdateClientRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
	Notes *string `json:"notes"`
}

// --- ClientService Interface ---
type ClientService interface {
	CreateClient(req CreateClientRequest) (*models.Client, error)
	GetClientByID(clientID int64) (*models.Client, error)
	GetClientByCPF(rawCPF string) (*models.Client, error)
	GetClients(page, pageSize int, searchTerm *string) ([]models.Client, int, error)
	UpdateClient(clientID int64, req UpdateClientRequest) (*models.Client, error)
	DeleteClient(clientID int64) error

	// SyncFromAppointment reconciles the client aggregate against one
	// appointment: upsert by CPF, deduplicated history append and refresh of
	// the denormalized last-known fields.
	SyncFromAppointment(appointment *models.Appointment) error
	// SyncFromAppointments applies SyncFromAppointment sequentially; a failure
	// stops the batch and leaves earlier syncs committed.
	SyncFromAppointments(appointments []models.Appointment) error
}

// --- clientService Implementation ---
type clientService struct {
	clientRepo repositories.ClientRepository
	db         *sql.DB
}

// NewClientService creates a new instance of ClientService.
func NewClientService(repo repositories.ClientRepository, db *sql.DB) ClientService {
	return &clientService{
		clientRepo: repo,
		db:         db,
	}
}

func (s *clientService) CreateClient(req CreateClientRequest) (*models.Client, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrClientValidation)
	}
	if !cpf.IsValid(req.CPF) {
		return nil, fmt.Errorf("%w: invalid cpf", ErrClientValidation)
	}

	canonical := cpf.Normalize(req.CPF)
	existing, err := s.clientRepo.GetClientByCPF(canonical)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check cpf uniqueness: %w", err)
	}
	if existing != nil {
		return nil, ErrClientCPFExists
	}

	client := &models.Client{
		Name:    req.Name,
		CPF:     canonical,
		Phone:   req.Phone,
		Email:   req.Email,
		Notes:   req.Notes,
		History: []models.AppointmentHistoryEntry{},
	}

	id, err := s.clientRepo.CreateClient(s.db, client)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrClientCPFExists
		}
		return nil, fmt.Errorf("failed to create client in repository: %w", err)
	}
	return s.clientRepo.GetClientByID(id)
}

func (s *clientService) GetClientByID(clientID int64) (*models.Client, error) {
	client, err := s.clientRepo.GetClientByID(clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client by ID: %w", err)
	}
	return client, nil
}

func (s *clientService) GetClientByCPF(rawCPF string) (*models.Client, error) {
	client, err := s.clientRepo.GetClientByCPF(cpf.Normalize(rawCPF))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client by cpf: %w", err)
	}
	return client, nil
}

func (s *clientService) GetClients(page, pageSize int, searchTerm *string) ([]models.Client, int, error) {
	page, pageSize = clampPagination(page, pageSize)

	clients, totalCount, err := s.clientRepo.GetClients(page, pageSize, searchTerm)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get clients: %w", err)
	}
	return clients, totalCount, nil
}

func (s *clientService) UpdateClient(clientID int64, req UpdateClientRequest) (*models.Client, error) {
	client, err := s.clientRepo.GetClientByID(clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to find client for update: %w", err)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: name cannot be empty if provided", ErrClientValidation)
		}
		client.Name = *req.Name
	}
	if req.Phone != nil {
		client.Phone = req.Phone
	}
	if req.Email != nil {
		client.Email = req.Email
	}
	if req.Notes != nil {
		client.Notes = req.Notes
	}

	if err := s.clientRepo.UpdateClient(s.db, client); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to update client in repository: %w", err)
	}
	return s.clientRepo.GetClientByID(clientID)
}

func (s *clientService) DeleteClient(clientID int64) error {
	_, err := s.clientRepo.GetClientByID(clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to find client for deletion: %w", err)
	}

	if err := s.clientRepo.DeleteClient(s.db, clientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}

// buildHistoryEntry snapshots the appointment's denormalized fields at sync time.
func buildHistoryEntry(appointment *models.Appointment, syncedAt time.Time) models.AppointmentHistoryEntry {
	return models.AppointmentHistoryEntry{
		AppointmentID: appointment.ExternalID,
		Brand:         derefString(appointment.Brand),
		Unit:          derefString(appointment.Unit),
		PatientName:   appointment.PatientName,
		ScheduledDate: appointment.ScheduledDate,
		ScheduledTime: appointment.ScheduledTime,
		Status:        appointment.Status,
		ConsultType:   derefString(appointment.ConsultType),
		Notes:         derefString(appointment.Notes),
		CreatedAt:     syncedAt,
	}
}

// SyncFromAppointment creates or updates the client aggregate identified by
// the appointment's CPF. Appointments without a CPF are skipped silently.
// The read-modify-write sequence is not guarded by a transaction: concurrent
// syncs for the same CPF resolve as last writer wins.
func (s *clientService) SyncFromAppointment(appointment *models.Appointment) error {
	canonical := cpf.Normalize(derefString(appointment.PatientCPF))
	if canonical == "" {
		return nil
	}

	syncedAt := time.Now()
	entry := buildHistoryEntry(appointment, syncedAt)

	client, err := s.clientRepo.GetClientByCPF(canonical)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to look up client for sync: %w", err)
	}

	if client == nil {
		client = &models.Client{
			Name:                appointment.PatientName,
			CPF:                 canonical,
			Phone:               appointment.PatientPhone,
			LastBrand:           appointment.Brand,
			LastUnit:            appointment.Unit,
			LastAppointmentDate: fallback(appointment.ScheduledDate, nil),
			LastStatus:          fallback(appointment.Status, nil),
			LastConsultType:     appointment.ConsultType,
			TotalAppointments:   1,
			History:             []models.AppointmentHistoryEntry{entry},
		}
		if _, err := s.clientRepo.CreateClient(s.db, client); err != nil {
			return fmt.Errorf("failed to create client from appointment: %w", err)
		}
		return nil
	}

	found := false
	for i := range client.History {
		if client.History[i].AppointmentID == entry.AppointmentID {
			// Re-sync of a known appointment: overwrite the mutable fields in
			// place, keep the original entry timestamp, no counter increment.
			entry.CreatedAt = client.History[i].CreatedAt
			client.History[i] = entry
			found = true
			break
		}
	}
	if !found {
		client.History = append(client.History, entry)
		client.TotalAppointments++
	}

	client.Name = appointment.PatientName
	if derefString(appointment.PatientPhone) != "" {
		client.Phone = appointment.PatientPhone
	}
	client.LastAppointmentDate = fallback(appointment.ScheduledDate, client.LastAppointmentDate)
	client.LastStatus = fallback(appointment.Status, client.LastStatus)
	client.LastUnit = fallback(derefString(appointment.Unit), client.LastUnit)
	client.LastBrand = fallback(derefString(appointment.Brand), client.LastBrand)
	client.LastConsultType = fallback(derefString(appointment.ConsultType), client.LastConsultType)

	if err := s.clientRepo.UpdateClient(s.db, client); err != nil {
		return fmt.Errorf("failed to update client from appointment: %w", err)
	}
	return nil
}

// SyncFromAppointments applies the single-appointment sync sequentially and
// independently. There is no atomicity across the batch.
func (s *clientService) SyncFromAppointments(appointments []models.Appointment) error {
	for i := range appointments {
		if err := s.SyncFromAppointment(&appointments[i]); err != nil {
			return fmt.Errorf("sync failed at appointment %s: %w", appointments[i].ExternalID, err)
		}
	}
	return nil
}
