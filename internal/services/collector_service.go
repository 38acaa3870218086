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
	ErrCollectorNotFound   = errors.New("collector not found")
	ErrCollectorValidation = errors.New("collector data validation error")
)

type CreateCollectorRequest struct {
	Name  string  `json:"name" binding:"required"`
	Phone *string `json:"phone"`
}

type UpdateCollectorRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	IsActive *bool   `json:"is_active"`
}

type CollectorService interface {
	CreateCollector(req CreateCollectorRequest) (*models.Collector, error)
	GetCollectorByID(collectorID int64) (*models.Collector, error)
	GetCollectors(page, pageSize int, searchTerm *string) ([]models.Collector, int, error)
	UpdateCollector(collectorID int64, req UpdateCollectorRequest) (*models.Collector, error)
	DeleteCollector(collectorID int64) error
}

type collectorService struct {
	collectorRepo repositories.CollectorRepository
	db            *sql.DB
}

// NewCollectorService creates a new instance of CollectorService.
func NewCollectorService(repo repositories.CollectorRepository, db *sql.DB) CollectorService {
	return &collectorService{collectorRepo: repo, db: db}
}

func (s *collectorService) CreateCollector(req CreateCollectorRequest) (*models.Collector, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrCollectorValidation)
	}

	collector := &models.Collector{
		Name:     req.Name,
		Phone:    req.Phone,
		IsActive: true,
	}
	if _, err := s.collectorRepo.CreateCollector(s.db, collector); err != nil {
		return nil, fmt.Errorf("failed to create collector in repository: %w", err)
	}
	return collector, nil
}

func (s *collectorService) GetCollectorByID(collectorID int64) (*models.Collector, error) {
	collector, err := s.collectorRepo.GetCollectorByID(collectorID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCollectorNotFound
		}
		return nil, fmt.Errorf("failed to get collector by ID: %w", err)
	}
	return collector, nil
}

func (s *collectorService) GetCollectors(page, pageSize int, searchTerm *string) ([]models.Collector, int, error) {
	page, pageSize = clampPagination(page, pageSize)

	collectors, totalCount, err := s.collectorRepo.GetCollectors(page, pageSize, searchTerm)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get collectors: %w", err)
	}
	return collectors, totalCount, nil
}

func (s *collectorService) UpdateCollector(collectorID int64, req UpdateCollectorRequest) (*models.Collector, error) {
	collector, err := s.collectorRepo.GetCollectorByID(collectorID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCollectorNotFound
		}
		return nil, fmt.Errorf("failed to find collector for update: %w", err)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: name cannot be empty if provided", ErrCollectorValidation)
		}
		collector.Name = *req.Name
	}
	if req.Phone != nil {
		collector.Phone = req.Phone
	}
	if req.IsActive != nil {
		collector.IsActive = *req.IsActive
	}

	if err := s.collectorRepo.UpdateCollector(s.db, collector); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCollectorNotFound
		}
		return nil, fmt.Errorf("failed to update collector in repository: %w", err)
	}
	return collector, nil
}

func (s *collectorService) DeleteCollector(collectorID int64) error {
	if _, err := s.collectorRepo.GetCollectorByID(collectorID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCollectorNotFound
		}
		return fmt.Errorf("failed to find collector for deletion: %w", err)
	}

	if err := s.collectorRepo.DeleteCollector(s.db, collectorID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCollectorNotFound
		}
		return fmt.Errorf("failed to delete collector: %w", err)
	}
	return nil
}
