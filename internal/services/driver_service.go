package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/models"
	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/repositories"
)

var (
	ErrDriverNotFound   = errors.New("driver not found")
	ErrDriverValidation = errors.New("driver data validation error")
)

type CreateDriverRequest struct {
	Name          string  `json:"name" binding:"required"`
	LicenseNumber *string `json:"license_number"`
	Phone         *string `json:"phone"`
}

type UpdateDriverRequest struct {
	Name          *string `json:"name"`
	LicenseNumber *string `json:"license_number"`
	Phone         *string `json:"phone"`
	IsActive      *bool   `json:"is_active"`
}

type DriverService interface {
	CreateDriver(req CreateDriverRequest) (*models.Driver, error)
	GetDriverByID(driverID int64) (*models.Driver, error)
	GetDrivers(page, pageSize int, searchTerm *string) ([]models.Driver, int, error)
	UpdateDriver(driverID int64, req UpdateDriverRequest) (*models.Driver, error)
	DeleteDriver(driverID int64) error
}

type driverService struct {
	driverRepo repositories.DriverRepository
	db         *sql.DB
}

// NewDriverService creates a new instance of DriverService.
func NewDriverService(repo repositories.DriverRepository, db *sql.DB) DriverService {
	return &driverService{driverRepo: repo, db: db}
}

func (s *driverService) CreateDriver(req CreateDriverRequest) (*models.Driver, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrDriverValidation)
	}

	driver := &models.Driver{
		Name:          req.Name,
		LicenseNumber: req.LicenseNumber,
		Phone:         req.Phone,
		IsActive:      true,
	}
	if _, err := s.driverRepo.CreateDriver(s.db, driver); err != nil {
		return nil, fmt.Errorf("failed to create driver in repository: %w", err)
	}
	return driver, nil
}

func (s *driverService) GetDriverByID(driverID int64) (*models.Driver, error) {
	driver, err := s.driverRepo.GetDriverByID(driverID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrDriverNotFound
		}
		return nil, fmt.Errorf("failed to get driver by ID: %w", err)
	}
	return driver, nil
}

func (s *driverService) GetDrivers(page, pageSize int, searchTerm *string) ([]models.Driver, int, error) {
	page, pageSize = clampPagination(page, pageSize)

	drivers, totalCount, err := s.driverRepo.GetDrivers(page, pageSize, searchTerm)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get drivers: %w", err)
	}
	return drivers, totalCount, nil
}

func (s *driverService) UpdateDriver(driverID int64, req UpdateDriverRequest) (*models.Driver, error) {
	driver, err := s.driverRepo.GetDriverByID(driverID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrDriverNotFound
		}
		return nil, fmt.Errorf("failed to find driver for update: %w", err)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: name cannot be empty if provided", ErrDriverValidation)
		}
		driver.Name = *req.Name
	}
	if req.LicenseNumber != nil {
		driver.LicenseNumber = req.LicenseNumber
	}
	if req.Phone != nil {
		driver.Phone = req.Phone
	}
	if req.IsActive != nil {
		driver.IsActive = *req.IsActive
	}

	if err := s.driverRepo.UpdateDriver(s.db, driver); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrDriverNotFound
		}
		return nil, fmt.Errorf("failed to update driver in repository: %w", err)
	}
	return driver, nil
}

func (s *driverService) DeleteDriver(driverID int64) error {
	if _, err := s.driverRepo.GetDriverByID(driverID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrDriverNotFound
		}
		return fmt.Errorf("failed to find driver for deletion: %w", err)
	}

	if err := s.driverRepo.DeleteDriver(s.db, driverID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrDriverNotFound
		}
		return fmt.Errorf("failed to delete driver: %w", err)
	}
	return nil
}
