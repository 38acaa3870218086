package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/models"
)

// DriverRepository defines the interface for driver-related database operations.
type DriverRepository interface {
	CreateDriver(executor SQLExecutor, driver *models.Driver) (int64, error)
	GetDriverByID(id int64) (*models.Driver, error)
	GetDrivers(page, pageSize int, searchTerm *string) ([]models.Driver, int, error)
	UpdateDriver(executor SQLExecutor, driver *models.Driver) error
	DeleteDriver(executor SQLExecutor, id int64) error
}

type driverRepository struct {
	db *sql.DB
}

// NewDriverRepository creates a new instance of DriverRepository.
func NewDriverRepository(db *sql.DB) DriverRepository {
	return &driverRepository{db: db}
}

const driverColumns = `id, name, license_number, phone, is_active, created_at, updated_at`

func scanDriver(row scanner, extra ...interface{}) (*models.Driver, error) {
	driver := &models.Driver{}
	dest := []interface{}{
		&driver.ID, &driver.Name, &driver.LicenseNumber, &driver.Phone,
		&driver.IsActive, &driver.CreatedAt, &driver.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return driver, nil
}

func (r *driverRepository) CreateDriver(executor SQLExecutor, driver *models.Driver) (int64, error) {
	query := `INSERT INTO drivers (name, license_number, phone, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`

	currentTime := time.Now()
	driver.CreatedAt = currentTime
	driver.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		driver.Name, driver.LicenseNumber, driver.Phone, driver.IsActive,
		driver.CreatedAt, driver.UpdatedAt,
	).Scan(&driver.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating driver: %v", ErrDatabaseError, err)
	}
	return driver.ID, nil
}

func (r *driverRepository) GetDriverByID(id int64) (*models.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE id = $1`

	driver, err := scanDriver(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting driver by ID %d: %v", ErrDatabaseError, id, err)
	}
	return driver, nil
}

func (r *driverRepository) GetDrivers(page, pageSize int, searchTerm *string) ([]models.Driver, int, error) {
	drivers := []models.Driver{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + driverColumns + `, COUNT(*) OVER() as total_count FROM drivers`)

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
		return nil, 0, fmt.Errorf("%w: querying drivers: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		driver, err := scanDriver(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning driver: %v", ErrDatabaseError, err)
		}
		drivers = append(drivers, *driver)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating driver rows: %v", ErrDatabaseError, err)
	}
	return drivers, totalCount, nil
}

func (r *driverRepository) UpdateDriver(executor SQLExecutor, driver *models.Driver) error {
	query := `UPDATE drivers SET name = $1, license_number = $2, phone = $3, is_active = $4, updated_at = $5
	          WHERE id = $6`

	driver.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		driver.Name, driver.LicenseNumber, driver.Phone, driver.IsActive,
		driver.UpdatedAt, driver.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating driver ID %d: %v", ErrDatabaseError, driver.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating driver ID %d: %v", ErrDatabaseError, driver.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *driverRepository) DeleteDriver(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM drivers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting driver ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting driver ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
