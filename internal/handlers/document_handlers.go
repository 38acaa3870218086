package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/models"
	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/services"
	"github.com/obrunogonzaga/clinic-appointment-system-sub001/pkg/utils"
)

// DocumentHandler holds the patient document service.
type DocumentHandler struct {
	documentService services.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(ds services.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: ds}
}

func (h *DocumentHandler) respondDocumentError(c *gin.Context, err error, failureMessage string) {
	if errors.Is(err, services.ErrDocumentNotFound) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Patient document not found.", err.Error()))
	} else if errors.Is(err, services.ErrDocumentClientMissing) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Client for patient document not found.", err.Error()))
	} else if errors.Is(err, services.ErrDocumentNotUploaded) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Document upload has not been confirmed.", err.Error()))
	} else if errors.Is(err, services.ErrDocumentValidation) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid document data.", err.Error()))
	} else {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, failureMessage, "Internal error"))
	}
}

// CreateDocument handles registering a document and issuing its upload URL.
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	var req services.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateDocument: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	response, err := h.documentService.CreateDocument(c.Request.Context(), req)
	if err != nil {
		utils.LogError(err, "CreateDocument: Error from documentService.CreateDocument")
		h.respondDocumentError(c, err, "Failed to create patient document.")
		return
	}
	c.JSON(http.StatusCreated, response)
}

// ConfirmUpload handles the pending-to-uploaded transition.
func (h *DocumentHandler) ConfirmUpload(c *gin.Context) {
	documentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		SizeBytes *int64 `json:"size_bytes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "ConfirmUpload: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	document, err := h.documentService.ConfirmUpload(documentID, req.SizeBytes)
	if err != nil {
		utils.LogError(err, "ConfirmUpload: Error from documentService.ConfirmUpload")
		h.respondDocumentError(c, err, "Failed to confirm document upload.")
		return
	}
	c.JSON(http.StatusOK, document)
}

// GetDocumentsByClient handles listing a client's documents.
func (h *DocumentHandler) GetDocumentsByClient(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	documents, err := h.documentService.GetDocumentsByClient(clientID)
	if err != nil {
		utils.LogError(err, "GetDocumentsByClient: Error from documentService.GetDocumentsByClient")
		h.respondDocumentError(c, err, "Failed to fetch patient documents.")
		return
	}
	if documents == nil {
		documents = []models.PatientDocument{}
	}
	c.JSON(http.StatusOK, gin.H{"data": documents})
}

// GetDownloadURL handles issuing a presigned download URL.
func (h *DocumentHandler) GetDownloadURL(c *gin.Context) {
	documentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	downloadURL, err := h.documentService.GetDownloadURL(c.Request.Context(), documentID)
	if err != nil {
		utils.LogError(err, "GetDownloadURL: Error from documentService.GetDownloadURL")
		h.respondDocumentError(c, err, "Failed to generate download URL.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"download_url": downloadURL})
}

// DeleteDocument handles deleting a document and its stored object.
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	documentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.documentService.DeleteDocument(c.Request.Context(), documentID); err != nil {
		utils.LogError(err, "DeleteDocument: Error from documentService.DeleteDocument")
		h.respondDocumentError(c, err, "Failed to delete patient document.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Patient document deleted successfully"})
}
