package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/models"
)

// ClientRepository defines the interface for client-related database operations.
type ClientRepository interface {
	CreateClient(executor SQLExecutor, client *models.Client) (int64, error)
	GetClientByID(id int64) (*models.Client, error)
	GetClientByCPF(cpf string) (*models.Client, error)
	GetClients(page, pageSize int, searchTerm *string) ([]models.Client, int, error)
	UpdateClient(executor SQLExecutor, client *models.Client) error
	DeleteClient(executor SQLExecutor, id int64) error
}

type clientRepository struct {
	db *sql.DB
}

// NewClientRepository creates a new instance of ClientRepository.
func NewClientRepository(db *sql.DB) ClientRepository {
	return &clientRepository{db: db}
}

const clientColumns = `id, name, cpf, phone, email, notes, last_brand, last_unit,
	last_appointment_date, last_status, last_consult_type, total_appointments,
	history, created_at, updated_at`

// marshalHistory serializes the embedded history entries for the jsonb column.
func marshalHistory(entries []models.AppointmentHistoryEntry) ([]byte, error) {
	if entries == nil {
		entries = []models.AppointmentHistoryEntry{}
	}
	return json.Marshal(entries)
}

func scanClient(row scanner, extra ...interface{}) (*models.Client, error) {
	client := &models.Client{}
	var historyRaw []byte
	dest := []interface{}{
		&client.ID, &client.Name, &client.CPF, &client.Phone, &client.Email, &client.Notes,
		&client.LastBrand, &client.LastUnit, &client.LastAppointmentDate, &client.LastStatus,
		&client.LastConsultType, &client.TotalAppointments, &historyRaw,
		&client.CreatedAt, &client.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if len(historyRaw) > 0 {
		if err := json.Unmarshal(historyRaw, &client.History); err != nil {
			return nil, fmt.Errorf("decoding client history: %v", err)
		}
	}
	if client.History == nil {
		client.History = []models.AppointmentHistoryEntry{}
	}
	return client, nil
}

// CreateClient inserts a new client into the database.
func (r *clientRepository) CreateClient(executor SQLExecutor, client *models.Client) (int64, error) {
	query := `INSERT INTO clients (name, cpf, phone, email, notes, last_brand, last_unit,
	            last_appointment_date, last_status, last_consult_type, total_appointments,
	            history, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	          RETURNING id`

	currentTime := time.Now()
	if client.CreatedAt.IsZero() {
		client.CreatedAt = currentTime
	}
	if client.UpdatedAt.IsZero() {
		client.UpdatedAt = currentTime
	}

	historyRaw, err := marshalHistory(client.History)
	if err != nil {
		return 0, fmt.Errorf("%w: encoding client history: %v", ErrDatabaseError, err)
	}

	err = executor.QueryRow(query,
		client.Name, client.CPF, client.Phone, client.Email, client.Notes,
		client.LastBrand, client.LastUnit, client.LastAppointmentDate, client.LastStatus,
		client.LastConsultType, client.TotalAppointments, historyRaw,
		client.CreatedAt, client.UpdatedAt,
	).Scan(&client.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return 0, fmt.Errorf("%w: creating client: %v", ErrDatabaseError, err)
	}
	return client.ID, nil
}

// GetClientByID retrieves a client by their ID.
func (r *clientRepository) GetClientByID(id int64) (*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`

	client, err := scanClient(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting client by ID %d: %v", ErrDatabaseError, id, err)
	}
	return client, nil
}

// GetClientByCPF retrieves a client by the canonical digits-only CPF.
func (r *clientRepository) GetClientByCPF(cpf string) (*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE cpf = $1`

	client, err := scanClient(r.db.QueryRow(query, cpf))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting client by CPF: %v", ErrDatabaseError, err)
	}
	return client, nil
}

// GetClients retrieves a list of clients with pagination and optional search.
func (r *clientRepository) GetClients(page, pageSize int, searchTerm *string) ([]models.Client, int, error) {
	clients := []models.Client{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + clientColumns + `, COUNT(*) OVER() as total_count FROM clients`)

	var args []interface{}
	argCount := 1

	if searchTerm != nil && *searchTerm != "" {
		searchPattern := "%" + strings.ToLower(*searchTerm) + "%"
		queryBuilder.WriteString(fmt.Sprintf(" WHERE (name ILIKE $%d OR cpf ILIKE $%d OR phone ILIKE $%d)", argCount, argCount, argCount))
		args = append(args, searchPattern)
		argCount++
	}

	queryBuilder.WriteString(" ORDER BY name ASC")

	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
	args = append(args, pageSize)
	argCount++
	queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCount))
	args = append(args, (page-1)*pageSize)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying clients: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		client, err := scanClient(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning client: %v", ErrDatabaseError, err)
		}
		clients = append(clients, *client)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating client rows: %v", ErrDatabaseError, err)
	}

	return clients, totalCount, nil
}

// UpdateClient updates an existing client, history included, in the database.
func (r *clientRepository) UpdateClient(executor SQLExecutor, client *models.Client) error {
	query := `UPDATE clients SET
	            name = $1, cpf = $2, phone = $3, email = $4, notes = $5,
	            last_brand = $6, last_unit = $7, last_appointment_date = $8,
	            last_status = $9, last_consult_type = $10, total_appointments = $11,
	            history = $12, updated_at = $13
	          WHERE id = $14`

	client.UpdatedAt = time.Now()
	historyRaw, err := marshalHistory(client.History)
	if err != nil {
		return fmt.Errorf("%w: encoding client history: %v", ErrDatabaseError, err)
	}

	result, err := executor.Exec(query,
		client.Name, client.CPF, client.Phone, client.Email, client.Notes,
		client.LastBrand, client.LastUnit, client.LastAppointmentDate, client.LastStatus,
		client.LastConsultType, client.TotalAppointments, historyRaw,
		client.UpdatedAt, client.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return fmt.Errorf("%w: updating client ID %d: %v", ErrDatabaseError, client.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating client ID %d: %v", ErrDatabaseError, client.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteClient removes a client from the database.
func (r *clientRepository) DeleteClient(executor SQLExecutor, id int64) error {
	query := `DELETE FROM clients WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		return fmt.Errorf("%w: deleting client ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting client ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
