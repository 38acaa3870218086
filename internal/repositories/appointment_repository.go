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

// AppointmentRepository defines the interface for appointment-related database
// operations, including the denormalized tag copy maintenance used by the tag
// service.
type AppointmentRepository interface {
	CreateAppointment(executor SQLExecutor, appointment *models.Appointment) (int64, error)
	GetAppointmentByID(id int64) (*models.Appointment, error)
	GetAppointments(filters models.AppointmentFilters) ([]models.Appointment, int, error)
	UpdateAppointment(executor SQLExecutor, appointment *models.Appointment) error
	UpdateAppointmentStatus(executor SQLExecutor, id int64, status string) error
	SetAppointmentTags(executor SQLExecutor, id int64, tags []models.TagRef) error
	DeleteAppointment(executor SQLExecutor, id int64) error

	// UpdateTagReferences rewrites the denormalized name/color copies of the
	// given tag on every appointment that carries it.
	UpdateTagReferences(executor SQLExecutor, tagID int64, name, color string) error
	// CountByTag returns how many appointments reference the given tag.
	CountByTag(tagID int64) (int, error)
}

type appointmentRepository struct {
	db *sql.DB
}

// NewAppointmentRepository creates a new instance of AppointmentRepository.
func NewAppointmentRepository(db *sql.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

const appointmentColumns = `id, external_id, patient_name, patient_cpf, patient_phone,
	brand, unit, scheduled_date, scheduled_time, status, consult_type, notes, tags,
	driver_id, created_at, updated_at`

func marshalTagRefs(tags []models.TagRef) ([]byte, error) {
	if tags == nil {
		tags = []models.TagRef{}
	}
	return json.Marshal(tags)
}

func scanAppointment(row scanner, extra ...interface{}) (*models.Appointment, error) {
	appointment := &models.Appointment{}
	var tagsRaw []byte
	dest := []interface{}{
		&appointment.ID, &appointment.ExternalID, &appointment.PatientName,
		&appointment.PatientCPF, &appointment.PatientPhone, &appointment.Brand,
		&appointment.Unit, &appointment.ScheduledDate, &appointment.ScheduledTime,
		&appointment.Status, &appointment.ConsultType, &appointment.Notes, &tagsRaw,
		&appointment.DriverID, &appointment.CreatedAt, &appointment.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if len(tagsRaw) > 0 {
		if err := json.Unmarshal(tagsRaw, &appointment.Tags); err != nil {
			return nil, fmt.Errorf("decoding appointment tags: %v", err)
		}
	}
	if appointment.Tags == nil {
		appointment.Tags = []models.TagRef{}
	}
	return appointment, nil
}

// CreateAppointment inserts a new appointment into the database.
func (r *appointmentRepository) CreateAppointment(executor SQLExecutor, appointment *models.Appointment) (int64, error) {
	query := `INSERT INTO appointments (external_id, patient_name, patient_cpf, patient_phone,
	            brand, unit, scheduled_date, scheduled_time, status, consult_type, notes,
	            tags, driver_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	          RETURNING id`

	currentTime := time.Now()
	if appointment.CreatedAt.IsZero() {
		appointment.CreatedAt = currentTime
	}
	if appointment.UpdatedAt.IsZero() {
		appointment.UpdatedAt = currentTime
	}

	tagsRaw, err := marshalTagRefs(appointment.Tags)
	if err != nil {
		return 0, fmt.Errorf("%w: encoding appointment tags: %v", ErrDatabaseError, err)
	}

	err = executor.QueryRow(query,
		appointment.ExternalID, appointment.PatientName, appointment.PatientCPF,
		appointment.PatientPhone, appointment.Brand, appointment.Unit,
		appointment.ScheduledDate, appointment.ScheduledTime, appointment.Status,
		appointment.ConsultType, appointment.Notes, tagsRaw, appointment.DriverID,
		appointment.CreatedAt, appointment.UpdatedAt,
	).Scan(&appointment.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return 0, fmt.Errorf("%w: creating appointment: %v", ErrDatabaseError, err)
	}
	return appointment.ID, nil
}

// GetAppointmentByID retrieves an appointment by its ID.
func (r *appointmentRepository) GetAppointmentByID(id int64) (*models.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`

	appointment, err := scanAppointment(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting appointment by ID %d: %v", ErrDatabaseError, id, err)
	}
	return appointment, nil
}

// GetAppointments retrieves appointments with filters and pagination.
func (r *appointmentRepository) GetAppointments(filters models.AppointmentFilters) ([]models.Appointment, int, error) {
	appointments := []models.Appointment{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + appointmentColumns + `, COUNT(*) OVER() as total_count FROM appointments`)

	var conditions []string
	var args []interface{}
	argCount := 1

	addCondition := func(condition string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(condition, argCount))
		args = append(args, value)
		argCount++
	}

	if filters.Status != nil && *filters.Status != "" {
		addCondition("status = $%d", *filters.Status)
	}
	if filters.Brand != nil && *filters.Brand != "" {
		addCondition("brand = $%d", *filters.Brand)
	}
	if filters.Unit != nil && *filters.Unit != "" {
		addCondition("unit = $%d", *filters.Unit)
	}
	if filters.DateFrom != nil && *filters.DateFrom != "" {
		addCondition("scheduled_date >= $%d", *filters.DateFrom)
	}
	if filters.DateTo != nil && *filters.DateTo != "" {
		addCondition("scheduled_date <= $%d", *filters.DateTo)
	}
	if filters.SearchTerm != nil && *filters.SearchTerm != "" {
		searchPattern := "%" + strings.ToLower(*filters.SearchTerm) + "%"
		conditions = append(conditions, fmt.Sprintf("(patient_name ILIKE $%d OR patient_cpf ILIKE $%d)", argCount, argCount))
		args = append(args, searchPattern)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}

	queryBuilder.WriteString(" ORDER BY scheduled_date DESC, scheduled_time DESC")

	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
	args = append(args, filters.PageSize)
	argCount++
	queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCount))
	args = append(args, (filters.Page-1)*filters.PageSize)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying appointments: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		appointment, err := scanAppointment(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning appointment: %v", ErrDatabaseError, err)
		}
		appointments = append(appointments, *appointment)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating appointment rows: %v", ErrDatabaseError, err)
	}

	return appointments, totalCount, nil
}

// UpdateAppointment updates an existing appointment in the database.
func (r *appointmentRepository) UpdateAppointment(executor SQLExecutor, appointment *models.Appointment) error {
	query := `UPDATE appointments SET
	            external_id = $1, patient_name = $2, patient_cpf = $3, patient_phone = $4,
	            brand = $5, unit = $6, scheduled_date = $7, scheduled_time = $8,
	            status = $9, consult_type = $10, notes = $11, tags = $12, driver_id = $13,
	            updated_at = $14
	          WHERE id = $15`

	appointment.UpdatedAt = time.Now()
	tagsRaw, err := marshalTagRefs(appointment.Tags)
	if err != nil {
		return fmt.Errorf("%w: encoding appointment tags: %v", ErrDatabaseError, err)
	}

	result, err := executor.Exec(query,
		appointment.ExternalID, appointment.PatientName, appointment.PatientCPF,
		appointment.PatientPhone, appointment.Brand, appointment.Unit,
		appointment.ScheduledDate, appointment.ScheduledTime, appointment.Status,
		appointment.ConsultType, appointment.Notes, tagsRaw, appointment.DriverID,
		appointment.UpdatedAt, appointment.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return fmt.Errorf("%w: updating appointment ID %d: %v", ErrDatabaseError, appointment.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating appointment ID %d: %v", ErrDatabaseError, appointment.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateAppointmentStatus updates only the status column.
func (r *appointmentRepository) UpdateAppointmentStatus(executor SQLExecutor, id int64, status string) error {
	query := `UPDATE appointments SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := executor.Exec(query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: updating status for appointment ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for appointment ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetAppointmentTags replaces the denormalized tag copies of one appointment.
func (r *appointmentRepository) SetAppointmentTags(executor SQLExecutor, id int64, tags []models.TagRef) error {
	tagsRaw, err := marshalTagRefs(tags)
	if err != nil {
		return fmt.Errorf("%w: encoding appointment tags: %v", ErrDatabaseError, err)
	}
	query := `UPDATE appointments SET tags = $1, updated_at = $2 WHERE id = $3`
	result, err := executor.Exec(query, tagsRaw, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: setting tags for appointment ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for appointment ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAppointment removes an appointment from the database.
func (r *appointmentRepository) DeleteAppointment(executor SQLExecutor, id int64) error {
	query := `DELETE FROM appointments WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		return fmt.Errorf("%w: deleting appointment ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting appointment ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateTagReferences rewrites the cached name/color of a tag inside the jsonb
// tag arrays of every appointment holding it. Runs as a single statement so a
// rename touches each row at most once.
func (r *appointmentRepository) UpdateTagReferences(executor SQLExecutor, tagID int64, name, color string) error {
	query := `UPDATE appointments
	          SET tags = (
	                SELECT COALESCE(jsonb_agg(
	                    CASE WHEN (elem->>'id')::bigint = $1
	                         THEN jsonb_set(jsonb_set(elem, '{name}', to_jsonb($2::text)), '{color}', to_jsonb($3::text))
	                         ELSE elem
	                    END), '[]'::jsonb)
	                FROM jsonb_array_elements(tags) AS elem
	              ),
	              updated_at = $4
	          WHERE tags @> jsonb_build_array(jsonb_build_object('id', $1))`

	if _, err := executor.Exec(query, tagID, name, color, time.Now()); err != nil {
		return fmt.Errorf("%w: propagating tag %d to appointments: %v", ErrDatabaseError, tagID, err)
	}
	return nil
}

// CountByTag returns the number of appointments carrying the given tag.
func (r *appointmentRepository) CountByTag(tagID int64) (int, error) {
	query := `SELECT COUNT(*) FROM appointments
	          WHERE tags @> jsonb_build_array(jsonb_build_object('id', $1))`

	var count int
	if err := r.db.QueryRow(query, tagID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting appointments for tag %d: %v", ErrDatabaseError, tagID, err)
	}
	return count, nil
}
