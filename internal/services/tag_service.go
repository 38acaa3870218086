package services

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/models"
	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/repositories"
	"github.com/obrunogonzaga/clinic-appointment-system-sub001/pkg/utils"
)

// --- Custom Service Errors for Tag ---
var (
	ErrTagNotFound     = errors.New("tag not found")
	ErrTagNameExists   = errors.New("tag name already exists")
	ErrTagNoChanges    = errors.New("update request contains no changes")
	ErrTagInUse        = errors.New("tag is referenced by appointments")
	ErrTagDeleteFailed = errors.New("tag could not be deleted")
	ErrTagValidation   = errors.New("tag data validation error")
)

// TagInUseError carries the number of appointments still referencing the tag.
// It matches ErrTagInUse under errors.Is.
type TagInUseError struct {
	References int
}

func (e *TagInUseError) Error() string {
	return fmt.Sprintf("tag is referenced by %d appointment(s)", e.References)
}

func (e *TagInUseError) Is(target error) bool {
	return target == ErrTagInUse
}

// --- Tag DTOs ---
type CreateTagRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color" binding:"required"`
}

type UpdateTagRequest struct {
	Name     *string `json:"name"`
	Color    *string `json:"color"`
	IsActive *bool   `json:"is_active"`
}

// --- TagService Interface ---
type TagService interface {
	CreateTag(req CreateTagRequest) (*models.Tag, error)
	GetTags(page, pageSize int, searchTerm *string, includeInactive bool) ([]models.Tag, int, error)
	UpdateTag(tagID int64, req UpdateTagRequest) (*models.Tag, error)
	DeleteTag(tagID int64) error
	GetTagSummary(tagID int64) (*models.TagSummary, error)
	// GetActiveTagsByIDs resolves the given IDs to summaries, silently
	// dropping inactive and unknown IDs.
	GetActiveTagsByIDs(ids []int64) (map[int64]models.TagSummary, error)
}

// --- tagService Implementation ---
type tagService struct {
	tagRepo         repositories.TagRepository
	appointmentRepo repositories.AppointmentRepository
	db              *sql.DB
}

// NewTagService creates a new instance of TagService.
func NewTagService(tr repositories.TagRepository, ar repositories.AppointmentRepository, db *sql.DB) TagService {
	return &tagService{
		tagRepo:         tr,
		appointmentRepo: ar,
		db:              db,
	}
}

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// normalizeTagName produces the shadow key used for uniqueness checks.
func normalizeTagName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func validateTagColor(color string) error {
	if !hexColorRegex.MatchString(color) {
		return fmt.Errorf("%w: color must be a hex value like #RRGGBB", ErrTagValidation)
	}
	return nil
}

func (s *tagService) CreateTag(req CreateTagRequest) (*models.Tag, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrTagValidation)
	}
	if err := validateTagColor(req.Color); err != nil {
		return nil, err
	}

	normalized := normalizeTagName(name)
	exists, err := s.tagRepo.ExistsByNormalizedName(normalized, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check tag name uniqueness: %w", err)
	}
	if exists {
		return nil, ErrTagNameExists
	}

	tag := &models.Tag{
		Name:           name,
		NormalizedName: normalized,
		Color:          req.Color,
		IsActive:       true,
	}
	if _, err := s.tagRepo.CreateTag(s.db, tag); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			// Unique index caught a concurrent create with the same name.
			return nil, ErrTagNameExists
		}
		return nil, fmt.Errorf("failed to create tag in repository: %w", err)
	}
	return tag, nil
}

func (s *tagService) GetTags(page, pageSize int, searchTerm *string, includeInactive bool) ([]models.Tag, int, error) {
	page, pageSize = clampPagination(page, pageSize)

	tags, totalCount, err := s.tagRepo.GetTags(page, pageSize, searchTerm, includeInactive)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get tags: %w", err)
	}
	return tags, totalCount, nil
}

func (s *tagService) UpdateTag(tagID int64, req UpdateTagRequest) (*models.Tag, error) {
	if req.Name == nil && req.Color == nil && req.IsActive == nil {
		return nil, ErrTagNoChanges
	}

	tag, err := s.tagRepo.GetTagByID(tagID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to find tag for update: %w", err)
	}

	prevName := tag.Name
	prevColor := tag.Color

	changed := false

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty if provided", ErrTagValidation)
		}
		normalized := normalizeTagName(name)
		if normalized != tag.NormalizedName {
			exists, err := s.tagRepo.ExistsByNormalizedName(normalized, &tagID)
			if err != nil {
				return nil, fmt.Errorf("failed to check tag name uniqueness: %w", err)
			}
			if exists {
				return nil, ErrTagNameExists
			}
			tag.Name = name
			tag.NormalizedName = normalized
			changed = true
		}
		// A name normalizing to the current shadow key is a no-op and dropped.
	}

	if req.Color != nil {
		if err := validateTagColor(*req.Color); err != nil {
			return nil, err
		}
		if !strings.EqualFold(*req.Color, tag.Color) {
			tag.Color = *req.Color
			changed = true
		}
	}

	if req.IsActive != nil && *req.IsActive != tag.IsActive {
		tag.IsActive = *req.IsActive
		changed = true
	}

	if !changed {
		return nil, ErrTagNoChanges
	}

	if err := s.tagRepo.UpdateTag(s.db, tag); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrTagNameExists
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to update tag in repository: %w", err)
	}

	if tag.Name != prevName || tag.Color != prevColor {
		// Best-effort fan-out to the denormalized copies on appointments. The
		// tag row is already committed, so a failure here is logged and not
		// rolled back.
		if err := s.appointmentRepo.UpdateTagReferences(s.db, tag.ID, tag.Name, tag.Color); err != nil {
			utils.LogWarn(err, fmt.Sprintf("Tag %d updated but reference propagation to appointments failed", tag.ID))
		}
	}

	return tag, nil
}

func (s *tagService) DeleteTag(tagID int64) error {
	if _, err := s.tagRepo.GetTagByID(tagID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrTagNotFound
		}
		return fmt.Errorf("failed to find tag for deletion: %w", err)
	}

	count, err := s.appointmentRepo.CountByTag(tagID)
	if err != nil {
		return fmt.Errorf("failed to count tag references: %w", err)
	}
	if count > 0 {
		return &TagInUseError{References: count}
	}

	rowsDeleted, err := s.tagRepo.DeleteTag(s.db, tagID)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	if rowsDeleted == 0 {
		// The tag existed a moment ago; someone else deleted it first.
		return fmt.Errorf("%w: tag ID %d", ErrTagDeleteFailed, tagID)
	}
	return nil
}

func (s *tagService) GetTagSummary(tagID int64) (*models.TagSummary, error) {
	tag, err := s.tagRepo.GetTagByID(tagID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to get tag summary: %w", err)
	}
	return &models.TagSummary{ID: tag.ID, Name: tag.Name, Color: tag.Color}, nil
}

func (s *tagService) GetActiveTagsByIDs(ids []int64) (map[int64]models.TagSummary, error) {
	summaries := make(map[int64]models.TagSummary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}

	tags, err := s.tagRepo.GetActiveTagsByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get tags by IDs: %w", err)
	}
	for _, tag := range tags {
		summaries[tag.ID] = models.TagSummary{ID: tag.ID, Name: tag.Name, Color: tag.Color}
	}
	return summaries, nil
}
