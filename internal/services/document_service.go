package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/models"
	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/repositories"
)

var (
	ErrDocumentNotFound      = errors.New("patient document not found")
	ErrDocumentValidation    = errors.New("patient document data validation error")
	ErrDocumentNotUploaded   = errors.New("patient document upload not confirmed")
	ErrDocumentClientMissing = errors.New("client for patient document not found")
)

// FileStorage issues presigned URLs for object storage so file bytes never
// pass through the API.
type FileStorage interface {
	GenerateUploadURL(ctx context.Context, key, contentType string, expires time.Duration) (string, error)
	GenerateDownloadURL(ctx context.Context, key string, expires time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

const presignedURLTTL = 15 * time.Minute

type CreateDocumentRequest struct {
	ClientID    int64  `json:"client_id" binding:"required"`
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

// CreateDocumentResponse carries the pending metadata row together with the
// one-time upload URL.
type CreateDocumentResponse struct {
	Document  *models.PatientDocument `json:"document"`
	UploadURL string                  `json:"upload_url"`
}

type DocumentService interface {
	CreateDocument(ctx context.Context, req CreateDocumentRequest) (*CreateDocumentResponse, error)
	ConfirmUpload(documentID int64, sizeBytes *int64) (*models.PatientDocument, error)
	GetDocumentsByClient(clientID int64) ([]models.PatientDocument, error)
	GetDownloadURL(ctx context.Context, documentID int64) (string, error)
	DeleteDocument(ctx context.Context, documentID int64) error
}

type documentService struct {
	documentRepo repositories.DocumentRepository
	clientRepo   repositories.ClientRepository
	storage      FileStorage
	db           *sql.DB
}

// NewDocumentService creates a new instance of DocumentService.
func NewDocumentService(
	documentRepo repositories.DocumentRepository,
	clientRepo repositories.ClientRepository,
	storage FileStorage,
	db *sql.DB,
) DocumentService {
	return &documentService{
		documentRepo: documentRepo,
		clientRepo:   clientRepo,
		storage:      storage,
		db:           db,
	}
}

func (s *documentService) CreateDocument(ctx context.Context, req CreateDocumentRequest) (*CreateDocumentResponse, error) {
	if strings.TrimSpace(req.Filename) == "" {
		return nil, fmt.Errorf("%w: filename is required", ErrDocumentValidation)
	}
	if strings.TrimSpace(req.ContentType) == "" {
		return nil, fmt.Errorf("%w: content type is required", ErrDocumentValidation)
	}

	if _, err := s.clientRepo.GetClientByID(req.ClientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrDocumentClientMissing
		}
		return nil, fmt.Errorf("failed to verify client for document: %w", err)
	}

	document := &models.PatientDocument{
		ClientID:    req.ClientID,
		Filename:    req.Filename,
		ContentType: req.ContentType,
		StorageKey:  fmt.Sprintf("clients/%d/%s", req.ClientID, uuid.NewString()),
		Status:      string(models.DocumentStatusPending),
	}
	if _, err := s.documentRepo.CreateDocument(s.db, document); err != nil {
		return nil, fmt.Errorf("failed to create patient document in repository: %w", err)
	}

	uploadURL, err := s.storage.GenerateUploadURL(ctx, document.StorageKey, document.ContentType, presignedURLTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate upload URL: %w", err)
	}
	return &CreateDocumentResponse{Document: document, UploadURL: uploadURL}, nil
}

func (s *documentService) ConfirmUpload(documentID int64, sizeBytes *int64) (*models.PatientDocument, error) {
	document, err := s.documentRepo.GetDocumentByID(documentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to find patient document for confirmation: %w", err)
	}

	if err := s.documentRepo.UpdateDocumentStatus(s.db, documentID, string(models.DocumentStatusUploaded), sizeBytes); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to confirm patient document upload: %w", err)
	}

	document.Status = string(models.DocumentStatusUploaded)
	if sizeBytes != nil {
		document.SizeBytes = sizeBytes
	}
	return document, nil
}

func (s *documentService) GetDocumentsByClient(clientID int64) ([]models.PatientDocument, error) {
	if _, err := s.clientRepo.GetClientByID(clientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrDocumentClientMissing
		}
		return nil, fmt.Errorf("failed to verify client for document listing: %w", err)
	}

	documents, err := s.documentRepo.GetDocumentsByClient(clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient documents: %w", err)
	}
	return documents, nil
}

func (s *documentService) GetDownloadURL(ctx context.Context, documentID int64) (string, error) {
	document, err := s.documentRepo.GetDocumentByID(documentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrDocumentNotFound
		}
		return "", fmt.Errorf("failed to find patient document for download: %w", err)
	}
	if document.Status != string(models.DocumentStatusUploaded) {
		return "", ErrDocumentNotUploaded
	}

	downloadURL, err := s.storage.GenerateDownloadURL(ctx, document.StorageKey, presignedURLTTL)
	if err != nil {
		return "", fmt.Errorf("failed to generate download URL: %w", err)
	}
	return downloadURL, nil
}

func (s *documentService) DeleteDocument(ctx context.Context, documentID int64) error {
	document, err := s.documentRepo.GetDocumentByID(documentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrDocumentNotFound
		}
		return fmt.Errorf("failed to find patient document for deletion: %w", err)
	}

	// The object is removed first; a leftover metadata row is easier to
	// reconcile than an orphaned object.
	if err := s.storage.Delete(ctx, document.StorageKey); err != nil {
		return fmt.Errorf("failed to delete stored object: %w", err)
	}

	if err := s.documentRepo.DeleteDocument(s.db, documentID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrDocumentNotFound
		}
		return fmt.Errorf("failed to delete patient document: %w", err)
	}
	return nil
}
