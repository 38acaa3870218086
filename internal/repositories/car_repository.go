package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/models"
)

// CarRepository defines the interface for car-related database operations.
type CarRepository interface {
	CreateCar(executor SQLExecutor, car *models.Car) (int64, error)
	GetCarByID(id int64) (*models.Car, error)
	GetCars(page, pageSize int, searchTerm *string) ([]models.Car, int, error)
	UpdateCar(executor SQLExecutor, car *models.Car) error
	DeleteCar(executor SQLExecutor, id int64) error
}

type carRepository struct {
	db *sql.DB
}

// NewCarRepository creates a new instance of CarRepository.
func NewCarRepository(db *sql.DB) CarRepository {
	return &carRepository{db: db}
}

const carColumns = `id, model, license_plate, is_active, created_at, updated_at`

func scanCar(row scanner, extra ...interface{}) (*models.Car, error) {
	car := &models.Car{}
	dest := []interface{}{
		&car.ID, &car.Model, &car.LicensePlate, &car.IsActive,
		&car.CreatedAt, &car.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return car, nil
}

func (r *carRepository) CreateCar(executor SQLExecutor, car *models.Car) (int64, error) {
	query := `INSERT INTO cars (model, license_plate, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`

	currentTime := time.Now()
	car.CreatedAt = currentTime
	car.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		car.Model, car.LicensePlate, car.IsActive, car.CreatedAt, car.UpdatedAt,
	).Scan(&car.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating car: %v", ErrDatabaseError, err)
	}
	return car.ID, nil
}

func (r *carRepository) GetCarByID(id int64) (*models.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1`

	car, err := scanCar(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting car by ID %d: %v", ErrDatabaseError, id, err)
	}
	return car, nil
}

func (r *carRepository) GetCars(page, pageSize int, searchTerm *string) ([]models.Car, int, error) {
	cars := []models.Car{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + carColumns + `, COUNT(*) OVER() as total_count FROM cars`)

	var args []interface{}
	argCount := 1
	if searchTerm != nil && *searchTerm != "" {
		queryBuilder.WriteString(fmt.Sprintf(" WHERE (model ILIKE $%d OR license_plate ILIKE $%d)", argCount, argCount))
		args = append(args, "%"+*searchTerm+"%")
		argCount++
	}

	queryBuilder.WriteString(" ORDER BY model ASC")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying cars: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		car, err := scanCar(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning car: %v", ErrDatabaseError, err)
		}
		cars = append(cars, *car)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating car rows: %v", ErrDatabaseError, err)
	}
	return cars, totalCount, nil
}

func (r *carRepository) UpdateCar(executor SQLExecutor, car *models.Car) error {
	query := `UPDATE cars SET model = $1, license_plate = $2, is_active = $3, updated_at = $4
	          WHERE id = $5`

	car.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		car.Model, car.LicensePlate, car.IsActive, car.UpdatedAt, car.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return fmt.Errorf("%w: updating car ID %d: %v", ErrDatabaseError, car.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating car ID %d: %v", ErrDatabaseError, car.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *carRepository) DeleteCar(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting car ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting car ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
