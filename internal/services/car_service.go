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
	ErrCarNotFound    = errors.New("car not found")
	ErrCarPlateExists = errors.New("license plate already registered")
	ErrCarValidation  = errors.New("car data validation error")
)

type CreateCarRequest struct {
	Model        string `json:"model" binding:"required"`
	LicensePlate string `json:"license_plate" binding:"required"`
}

type UpdateCarRequest struct {
	Model        *string `json:"model"`
	LicensePlate *string `json:"license_plate"`
	IsActive     *bool   `json:"is_active"`
}

type CarService interface {
	CreateCar(req CreateCarRequest) (*models.Car, error)
	GetCarByID(carID int64) (*models.Car, error)
	GetCars(page, pageSize int, searchTerm *string) ([]models.Car, int, error)
	UpdateCar(carID int64, req UpdateCarRequest) (*models.Car, error)
	DeleteCar(carID int64) error
}

type carService struct {
	carRepo repositories.CarRepository
	db      *sql.DB
}

// NewCarService creates a new instance of CarService.
func NewCarService(repo repositories.CarRepository, db *sql.DB) CarService {
	return &carService{carRepo: repo, db: db}
}

func (s *carService) CreateCar(req CreateCarRequest) (*models.Car, error) {
	if strings.TrimSpace(req.Model) == "" || strings.TrimSpace(req.LicensePlate) == "" {
		return nil, fmt.Errorf("%w: model and license plate are required", ErrCarValidation)
	}

	car := &models.Car{
		Model:        req.Model,
		LicensePlate: strings.ToUpper(strings.TrimSpace(req.LicensePlate)),
		IsActive:     true,
	}
	if _, err := s.carRepo.CreateCar(s.db, car); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrCarPlateExists
		}
		return nil, fmt.Errorf("failed to create car in repository: %w", err)
	}
	return car, nil
}

func (s *carService) GetCarByID(carID int64) (*models.Car, error) {
	car, err := s.carRepo.GetCarByID(carID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, fmt.Errorf("failed to get car by ID: %w", err)
	}
	return car, nil
}

func (s *carService) GetCars(page, pageSize int, searchTerm *string) ([]models.Car, int, error) {
	page, pageSize = clampPagination(page, pageSize)

	cars, totalCount, err := s.carRepo.GetCars(page, pageSize, searchTerm)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get cars: %w", err)
	}
	return cars, totalCount, nil
}

func (s *carService) UpdateCar(carID int64, req UpdateCarRequest) (*models.Car, error) {
	car, err := s.carRepo.GetCarByID(carID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, fmt.Errorf("failed to find car for update: %w", err)
	}

	if req.Model != nil {
		if strings.TrimSpace(*req.Model) == "" {
			return nil, fmt.Errorf("%w: model cannot be empty if provided", ErrCarValidation)
		}
		car.Model = *req.Model
	}
	if req.LicensePlate != nil {
		if strings.TrimSpace(*req.LicensePlate) == "" {
			return nil, fmt.Errorf("%w: license plate cannot be empty if provided", ErrCarValidation)
		}
		car.LicensePlate = strings.ToUpper(strings.TrimSpace(*req.LicensePlate))
	}
	if req.IsActive != nil {
		car.IsActive = *req.IsActive
	}

	if err := s.carRepo.UpdateCar(s.db, car); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrCarPlateExists
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, fmt.Errorf("failed to update car in repository: %w", err)
	}
	return car, nil
}

func (s *carService) DeleteCar(carID int64) error {
	if _, err := s.carRepo.GetCarByID(carID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCarNotFound
		}
		return fmt.Errorf("failed to find car for deletion: %w", err)
	}

	if err := s.carRepo.DeleteCar(s.db, carID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCarNotFound
		}
		return fmt.Errorf("failed to delete car: %w", err)
	}
	return nil
}
