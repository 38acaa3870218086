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

// TagRepository defines the interface for tag-related database operations.
type TagRepository interface {
	CreateTag(executor SQLExecutor, tag *models.Tag) (int64, error)
	GetTagByID(id int64) (*models.Tag, error)
	GetTags(page, pageSize int, searchTerm *string, includeInactive bool) ([]models.Tag, int, error)
	GetActiveTagsByIDs(ids []int64) ([]models.Tag, error)
	ExistsByNormalizedName(normalizedName string, excludeID *int64) (bool, error)
	UpdateTag(executor SQLExecutor, tag *models.Tag) error
	// DeleteTag reports how many rows were removed so the caller can detect a
	// delete racing with the prior existence check.
	DeleteTag(executor SQLExecutor, id int64) (int64, error)
}

type tagRepository struct {
	db *sql.DB
}

// NewTagRepository creates a new instance of TagRepository.
func NewTagRepository(db *sql.DB) TagRepository {
	return &tagRepository{db: db}
}

const tagColumns = `id, name, normalized_name, color, is_active, created_at, updated_at`

func scanTag(row scanner, extra ...interface{}) (*models.Tag, error) {
	tag := &models.Tag{}
	dest := []interface{}{
		&tag.ID, &tag.Name, &tag.NormalizedName, &tag.Color, &tag.IsActive,
		&tag.CreatedAt, &tag.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return tag, nil
}

// CreateTag inserts a new tag into the database.
func (r *tagRepository) CreateTag(executor SQLExecutor, tag *models.Tag) (int64, error) {
	query := `INSERT INTO tags (name, normalized_name, color, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`

	currentTime := time.Now()
	if tag.CreatedAt.IsZero() {
		tag.CreatedAt = currentTime
	}
	if tag.UpdatedAt.IsZero() {
		tag.UpdatedAt = currentTime
	}

	err := executor.QueryRow(query,
		tag.Name, tag.NormalizedName, tag.Color, tag.IsActive, tag.CreatedAt, tag.UpdatedAt,
	).Scan(&tag.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return 0, fmt.Errorf("%w: creating tag: %v", ErrDatabaseError, err)
	}
	return tag.ID, nil
}

// GetTagByID retrieves a tag by its ID.
func (r *tagRepository) GetTagByID(id int64) (*models.Tag, error) {
	query := `SELECT ` + tagColumns + ` FROM tags WHERE id = $1`

	tag, err := scanTag(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting tag by ID %d: %v", ErrDatabaseError, id, err)
	}
	return tag, nil
}

// GetTags retrieves tags with pagination, optional search and inactive filtering.
func (r *tagRepository) GetTags(page, pageSize int, searchTerm *string, includeInactive bool) ([]models.Tag, int, error) {
	tags := []models.Tag{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + tagColumns + `, COUNT(*) OVER() as total_count FROM tags`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if !includeInactive {
		conditions = append(conditions, "is_active = TRUE")
	}
	if searchTerm != nil && *searchTerm != "" {
		searchPattern := "%" + strings.ToLower(strings.TrimSpace(*searchTerm)) + "%"
		conditions = append(conditions, fmt.Sprintf("normalized_name LIKE $%d", argCount))
		args = append(args, searchPattern)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}

	queryBuilder.WriteString(" ORDER BY normalized_name ASC")

	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
	args = append(args, pageSize)
	argCount++
	queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCount))
	args = append(args, (page-1)*pageSize)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying tags: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		tag, err := scanTag(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning tag: %v", ErrDatabaseError, err)
		}
		tags = append(tags, *tag)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating tag rows: %v", ErrDatabaseError, err)
	}

	return tags, totalCount, nil
}

// GetActiveTagsByIDs retrieves the active tags among the given IDs.
// Unknown and inactive IDs are simply absent from the result.
func (r *tagRepository) GetActiveTagsByIDs(ids []int64) ([]models.Tag, error) {
	tags := []models.Tag{}
	if len(ids) == 0 {
		return tags, nil
	}

	query := `SELECT ` + tagColumns + ` FROM tags WHERE id = ANY($1) AND is_active = TRUE`
	rows, err := r.db.Query(query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("%w: querying tags by IDs: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning tag: %v", ErrDatabaseError, err)
		}
		tags = append(tags, *tag)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating tag rows: %v", ErrDatabaseError, err)
	}
	return tags, nil
}

// ExistsByNormalizedName probes name uniqueness across active and inactive
// tags, optionally excluding one tag (the one being renamed).
func (r *tagRepository) ExistsByNormalizedName(normalizedName string, excludeID *int64) (bool, error) {
	var exists bool
	var err error
	if excludeID != nil {
		query := `SELECT EXISTS(SELECT 1 FROM tags WHERE normalized_name = $1 AND id <> $2)`
		err = r.db.QueryRow(query, normalizedName, *excludeID).Scan(&exists)
	} else {
		query := `SELECT EXISTS(SELECT 1 FROM tags WHERE normalized_name = $1)`
		err = r.db.QueryRow(query, normalizedName).Scan(&exists)
	}
	if err != nil {
		return false, fmt.Errorf("%w: checking tag name uniqueness: %v", ErrDatabaseError, err)
	}
	return exists, nil
}

// UpdateTag updates an existing tag in the database.
func (r *tagRepository) UpdateTag(executor SQLExecutor, tag *models.Tag) error {
	query := `UPDATE tags SET
	            name = $1, normalized_name = $2, color = $3, is_active = $4, updated_at = $5
	          WHERE id = $6`

	tag.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		tag.Name, tag.NormalizedName, tag.Color, tag.IsActive, tag.UpdatedAt, tag.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return fmt.Errorf("%w: updating tag ID %d: %v", ErrDatabaseError, tag.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating tag ID %d: %v", ErrDatabaseError, tag.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTag removes a tag, returning the number of rows deleted.
func (r *tagRepository) DeleteTag(executor SQLExecutor, id int64) (int64, error) {
	query := `DELETE FROM tags WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		return 0, fmt.Errorf("%w: deleting tag ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: getting rows affected for deleting tag ID %d: %v", ErrDatabaseError, id, err)
	}
	return rowsAffected, nil
}
