package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/models"
)

// CollectorRepository defines the interface for collector-related database operations.
type CollectorRepository interface {
	CreateCollector(executor SQLExecutor, collector *models.Collector) (int64, error)
	GetCollectorByID(id int64) (*models.Collector, error)
	GetCollectors(page, pageSize int, searchTerm *string) ([]models.Collector, int, error)
	UpdateCollector(executor SQLExecutor, collector *models.Collector) error
	DeleteCollector(executor SQLExecutor, id int64) error
}

type collectorRepository struct {
	db *sql.DB
}

// NewCollectorRepository creates a new instance of CollectorRepository.
func NewCollectorRepository(db *sql.DB) CollectorRepository {
	return &collectorRepository{db: db}
}

const collectorColumns = `id, name, phone, is_active, created_at, updated_at`

func scanCollector(row scanner, extra ...interface{}) (*models.Collector, error) {
	collector := &models.Collector{}
	dest := []interface{}{
		&collector.ID, &collector.Name, &collector.Phone, &collector.IsActive,
		&collector.CreatedAt, &collector.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return collector, nil
}

func (r *collectorRepository) CreateCollector(executor SQLExecutor, collector *models.Collector) (int64, error) {
	query := `INSERT INTO collectors (name, phone, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`

	currentTime := time.Now()
	collector.CreatedAt = currentTime
	collector.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		collector.Name, collector.Phone, collector.IsActive,
		collector.CreatedAt, collector.UpdatedAt,
	).Scan(&collector.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating collector: %v", ErrDatabaseError, err)
	}
	return collector.ID, nil
}

func (r *collectorRepository) GetCollectorByID(id int64) (*models.Collector, error) {
	query := `SELECT ` + collectorColumns + ` FROM collectors WHERE id = $1`

	collector, err := scanCollector(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting collector by ID %d: %v", ErrDatabaseError, id, err)
	}
	return collector, nil
}

func (r *collectorRepository) GetCollectors(page, pageSize int, searchTerm *string) ([]models.Collector, int, error) {
	collectors := []models.Collector{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + collectorColumns + `, COUNT(*) OVER() as total_count FROM collectors`)

	var args []interface{}
	argCount := 1
	if searchTerm != nil && *searchTerm != "" {
		queryBuilder.WriteString(fmt.Sprintf(" WHERE name ILIKE $%d", argCount))
		args = append(args, "%"+*searchTerm+"%")
		argCount++
	}

	queryBuilder.WriteString(" ORDER BY name ASC")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying collectors: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		collector, err := scanCollector(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning collector: %v", ErrDatabaseError, err)
		}
		collectors = append(collectors, *collector)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating collector rows: %v", ErrDatabaseError, err)
	}
	return collectors, totalCount, nil
}

func (r *collectorRepository) UpdateCollector(executor SQLExecutor, collector *models.Collector) error {
	query := `UPDATE collectors SET name = $1, phone = $2, is_active = $3, updated_at = $4
	          WHERE id = $5`

	collector.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		collector.Name, collector.Phone, collector.IsActive, collector.UpdatedAt, collector.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating collector ID %d: %v", ErrDatabaseError, collector.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating collector ID %d: %v", ErrDatabaseError, collector.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *collectorRepository) DeleteCollector(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM collectors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting collector ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting collector ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
