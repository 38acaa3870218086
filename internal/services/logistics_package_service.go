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
	ErrPackageNotFound   = errors.New("logistics package not found")
	ErrPackageNameExists = errors.New("logistics package name already exists")
	ErrPackageValidation = errors.New("logistics package data validation error")
	ErrPackageReference  = errors.New("referenced logistics entity not found")
)

type CreatePackageRequest struct {
	Name        string `json:"name" binding:"required"`
	DriverID    int64  `json:"driver_id" binding:"required"`
	CollectorID int64  `json:"collector_id" binding:"required"`
	CarID       int64  `json:"car_id" binding:"required"`
}

type UpdatePackageRequest struct {
	Name        *string `json:"name"`
	DriverID    *int64  `json:"driver_id"`
	CollectorID *int64  `json:"collector_id"`
	CarID       *int64  `json:"car_id"`
	IsActive    *bool   `json:"is_active"`
}

type LogisticsPackageService interface {
	CreatePackage(req CreatePackageRequest) (*models.LogisticsPackage, error)
	GetPackageByID(packageID int64) (*models.LogisticsPackage, error)
	GetPackages(page, pageSize int, searchTerm *string) ([]models.LogisticsPackage, int, error)
	UpdatePackage(packageID int64, req UpdatePackageRequest) (*models.LogisticsPackage, error)
	DeletePackage(packageID int64) error
}

type logisticsPackageService struct {
	packageRepo   repositories.LogisticsPackageRepository
	driverRepo    repositories.DriverRepository
	collectorRepo repositories.CollectorRepository
	carRepo       repositories.CarRepository
	db            *sql.DB
}

// NewLogisticsPackageService creates a new instance of LogisticsPackageService.
func NewLogisticsPackageService(
	packageRepo repositories.LogisticsPackageRepository,
	driverRepo repositories.DriverRepository,
	collectorRepo repositories.CollectorRepository,
	carRepo repositories.CarRepository,
	db *sql.DB,
) LogisticsPackageService {
	return &logisticsPackageService{
		packageRepo:   packageRepo,
		driverRepo:    driverRepo,
		collectorRepo: collectorRepo,
		carRepo:       carRepo,
		db:            db,
	}
}

// resolveReferences loads the driver, collector and car a package points at,
// so their display fields can be copied onto the package row.
func (s *logisticsPackageService) resolveReferences(pkg *models.LogisticsPackage) error {
	driver, err := s.driverRepo.GetDriverByID(pkg.DriverID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: driver ID %d", ErrPackageReference, pkg.DriverID)
		}
		return fmt.Errorf("failed to resolve driver for package: %w", err)
	}
	collector, err := s.collectorRepo.GetCollectorByID(pkg.CollectorID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: collector ID %d", ErrPackageReference, pkg.CollectorID)
		}
		return fmt.Errorf("failed to resolve collector for package: %w", err)
	}
	car, err := s.carRepo.GetCarByID(pkg.CarID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: car ID %d", ErrPackageReference, pkg.CarID)
		}
		return fmt.Errorf("failed to resolve car for package: %w", err)
	}

	pkg.DriverName = driver.Name
	pkg.CollectorName = collector.Name
	pkg.CarModel = car.Model
	pkg.CarLicensePlate = car.LicensePlate
	return nil
}

func (s *logisticsPackageService) CreatePackage(req CreatePackageRequest) (*models.LogisticsPackage, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrPackageValidation)
	}

	pkg := &models.LogisticsPackage{
		Name:        strings.TrimSpace(req.Name),
		DriverID:    req.DriverID,
		CollectorID: req.CollectorID,
		CarID:       req.CarID,
		IsActive:    true,
	}
	if err := s.resolveReferences(pkg); err != nil {
		return nil, err
	}

	if _, err := s.packageRepo.CreatePackage(s.db, pkg); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrPackageNameExists
		}
		return nil, fmt.Errorf("failed to create logistics package in repository: %w", err)
	}
	return pkg, nil
}

func (s *logisticsPackageService) GetPackageByID(packageID int64) (*models.LogisticsPackage, error) {
	pkg, err := s.packageRepo.GetPackageByID(packageID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("failed to get logistics package by ID: %w", err)
	}
	return pkg, nil
}

func (s *logisticsPackageService) GetPackages(page, pageSize int, searchTerm *string) ([]models.LogisticsPackage, int, error) {
	page, pageSize = clampPagination(page, pageSize)

	packages, totalCount, err := s.packageRepo.GetPackages(page, pageSize, searchTerm)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get logistics packages: %w", err)
	}
	return packages, totalCount, nil
}

func (s *logisticsPackageService) UpdatePackage(packageID int64, req UpdatePackageRequest) (*models.LogisticsPackage, error) {
	pkg, err := s.packageRepo.GetPackageByID(packageID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("failed to find logistics package for update: %w", err)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: name cannot be empty if provided", ErrPackageValidation)
		}
		pkg.Name = strings.TrimSpace(*req.Name)
	}
	if req.DriverID != nil {
		pkg.DriverID = *req.DriverID
	}
	if req.CollectorID != nil {
		pkg.CollectorID = *req.CollectorID
	}
	if req.CarID != nil {
		pkg.CarID = *req.CarID
	}
	if req.IsActive != nil {
		pkg.IsActive = *req.IsActive
	}

	// Refresh the copied display fields so renames of a driver, collector or
	// car are picked up on the next package update.
	if err := s.resolveReferences(pkg); err != nil {
		return nil, err
	}

	if err := s.packageRepo.UpdatePackage(s.db, pkg); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrPackageNameExists
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("failed to update logistics package in repository: %w", err)
	}
	return pkg, nil
}

func (s *logisticsPackageService) DeletePackage(packageID int64) error {
	if _, err := s.packageRepo.GetPackageByID(packageID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrPackageNotFound
		}
		return fmt.Errorf("failed to find logistics package for deletion: %w", err)
	}

	if err := s.packageRepo.DeletePackage(s.db, packageID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrPackageNotFound
		}
		return fmt.Errorf("failed to delete logistics package: %w", err)
	}
	return nil
}
