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

// LogisticsPackageRepository defines the interface for logistics package
// database operations.
type LogisticsPackageRepository interface {
	CreatePackage(executor SQLExecutor, pkg *models.LogisticsPackage) (int64, error)
	GetPackageByID(id int64) (*models.LogisticsPackage, error)
	GetPackages(page, pageSize int, searchTerm *string) ([]models.LogisticsPackage, int, error)
	UpdatePackage(executor SQLExecutor, pkg *models.LogisticsPackage) error
	DeletePackage(executor SQLExecutor, id int64) error
}

type logisticsPackageRepository struct {
	db *sql.DB
}

// NewLogisticsPackageRepository creates a new instance of LogisticsPackageRepository.
func NewLogisticsPackageRepository(db *sql.DB) LogisticsPackageRepository {
	return &logisticsPackageRepository{db: db}
}

const packageColumns = `id, name, driver_id, driver_name, collector_id, collector_name,
	car_id, car_model, car_license_plate, is_active, created_at, updated_at`

func scanPackage(row scanner, extra ...interface{}) (*models.LogisticsPackage, error) {
	pkg := &models.LogisticsPackage{}
	dest := []interface{}{
		&pkg.ID, &pkg.Name, &pkg.DriverID, &pkg.DriverName, &pkg.CollectorID,
		&pkg.CollectorName, &pkg.CarID, &pkg.CarModel, &pkg.CarLicensePlate,
		&pkg.IsActive, &pkg.CreatedAt, &pkg.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return pkg, nil
}

func (r *logisticsPackageRepository) CreatePackage(executor SQLExecutor, pkg *models.LogisticsPackage) (int64, error) {
	query := `INSERT INTO logistics_packages (name, driver_id, driver_name, collector_id,
	            collector_name, car_id, car_model, car_license_plate, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          RETURNING id`

	currentTime := time.Now()
	pkg.CreatedAt = currentTime
	pkg.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		pkg.Name, pkg.DriverID, pkg.DriverName, pkg.CollectorID, pkg.CollectorName,
		pkg.CarID, pkg.CarModel, pkg.CarLicensePlate, pkg.IsActive,
		pkg.CreatedAt, pkg.UpdatedAt,
	).Scan(&pkg.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating logistics package: %v", ErrDatabaseError, err)
	}
	return pkg.ID, nil
}

func (r *logisticsPackageRepository) GetPackageByID(id int64) (*models.LogisticsPackage, error) {
	query := `SELECT ` + packageColumns + ` FROM logistics_packages WHERE id = $1`

	pkg, err := scanPackage(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting logistics package by ID %d: %v", ErrDatabaseError, id, err)
	}
	return pkg, nil
}

func (r *logisticsPackageRepository) GetPackages(page, pageSize int, searchTerm *string) ([]models.LogisticsPackage, int, error) {
	packages := []models.LogisticsPackage{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + packageColumns + `, COUNT(*) OVER() as total_count FROM logistics_packages`)

	var args []interface{}
	argCount := 1
	if searchTerm != nil && *searchTerm != "" {
		queryBuilder.WriteString(fmt.Sprintf(" WHERE (name ILIKE $%d OR driver_name ILIKE $%d OR collector_name ILIKE $%d)", argCount, argCount, argCount))
		args = append(args, "%"+*searchTerm+"%")
		argCount++
	}

	queryBuilder.WriteString(" ORDER BY name ASC")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying logistics packages: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		pkg, err := scanPackage(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning logistics package: %v", ErrDatabaseError, err)
		}
		packages = append(packages, *pkg)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating logistics package rows: %v", ErrDatabaseError, err)
	}
	return packages, totalCount, nil
}

func (r *logisticsPackageRepository) UpdatePackage(executor SQLExecutor, pkg *models.LogisticsPackage) error {
	query := `UPDATE logistics_packages SET
	            name = $1, driver_id = $2, driver_name = $3, collector_id = $4,
	            collector_name = $5, car_id = $6, car_model = $7, car_license_plate = $8,
	            is_active = $9, updated_at = $10
	          WHERE id = $11`

	pkg.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		pkg.Name, pkg.DriverID, pkg.DriverName, pkg.CollectorID, pkg.CollectorName,
		pkg.CarID, pkg.CarModel, pkg.CarLicensePlate, pkg.IsActive, pkg.UpdatedAt, pkg.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return fmt.Errorf("%w: updating logistics package ID %d: %v", ErrDatabaseError, pkg.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating logistics package ID %d: %v", ErrDatabaseError, pkg.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *logisticsPackageRepository) DeletePackage(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM logistics_packages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting logistics package ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting logistics package ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
