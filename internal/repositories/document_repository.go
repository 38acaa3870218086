package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/models"
)

// DocumentRepository defines the interface for patient document metadata.
type DocumentRepository interface {
	CreateDocument(executor SQLExecutor, document *models.PatientDocument) (int64, error)
	GetDocumentByID(id int64) (*models.PatientDocument, error)
	GetDocumentsByClient(clientID int64) ([]models.PatientDocument, error)
	UpdateDocumentStatus(executor SQLExecutor, id int64, status string, sizeBytes *int64) error
	DeleteDocument(executor SQLExecutor, id int64) error
}

type documentRepository struct {
	db *sql.DB
}

// NewDocumentRepository creates a new instance of DocumentRepository.
func NewDocumentRepository(db *sql.DB) DocumentRepository {
	return &documentRepository{db: db}
}

const documentColumns = `id, client_id, filename, content_type, size_bytes, storage_key,
	status, created_at, updated_at`

func scanDocument(row scanner) (*models.PatientDocument, error) {
	document := &models.PatientDocument{}
	err := row.Scan(
		&document.ID, &document.ClientID, &document.Filename, &document.ContentType,
		&document.SizeBytes, &document.StorageKey, &document.Status,
		&document.CreatedAt, &document.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return document, nil
}

func (r *documentRepository) CreateDocument(executor SQLExecutor, document *models.PatientDocument) (int64, error) {
	query := `INSERT INTO patient_documents (client_id, filename, content_type, size_bytes,
	            storage_key, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`

	currentTime := time.Now()
	document.CreatedAt = currentTime
	document.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		document.ClientID, document.Filename, document.ContentType, document.SizeBytes,
		document.StorageKey, document.Status, document.CreatedAt, document.UpdatedAt,
	).Scan(&document.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating patient document: %v", ErrDatabaseError, err)
	}
	return document.ID, nil
}

func (r *documentRepository) GetDocumentByID(id int64) (*models.PatientDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM patient_documents WHERE id = $1`

	document, err := scanDocument(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting patient document by ID %d: %v", ErrDatabaseError, id, err)
	}
	return document, nil
}

func (r *documentRepository) GetDocumentsByClient(clientID int64) ([]models.PatientDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM patient_documents
	          WHERE client_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(query, clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying patient documents for client %d: %v", ErrDatabaseError, clientID, err)
	}
	defer rows.Close()

	documents := []models.PatientDocument{}
	for rows.Next() {
		document, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning patient document: %v", ErrDatabaseError, err)
		}
		documents = append(documents, *document)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating patient document rows: %v", ErrDatabaseError, err)
	}
	return documents, nil
}

func (r *documentRepository) UpdateDocumentStatus(executor SQLExecutor, id int64, status string, sizeBytes *int64) error {
	query := `UPDATE patient_documents SET status = $1, size_bytes = COALESCE($2, size_bytes), updated_at = $3
	          WHERE id = $4`

	result, err := executor.Exec(query, status, sizeBytes, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: updating patient document ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for patient document ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *documentRepository) DeleteDocument(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM patient_documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting patient document ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting patient document ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
