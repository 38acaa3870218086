package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/models"
	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/services"
	"github.com/obrunogonzaga/clinic-appointment-system-sub001/pkg/utils"
)

// CollectorHandler holds the collector service.
type CollectorHandler struct {
	collectorService services.CollectorService
}

// NewCollectorHandler creates a new CollectorHandler.
func NewCollectorHandler(cs services.CollectorService) *CollectorHandler {
	return &CollectorHandler{collectorService: cs}
}

// CreateCollector handles the creation of a new collector.
func (h *CollectorHandler) CreateCollector(c *gin.Context) {
	var req services.CreateCollectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateCollector: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	collector, err := h.collectorService.CreateCollector(req)
	if err != nil {
		utils.LogError(err, "CreateCollector: Error from collectorService.CreateCollector")
		if errors.Is(err, services.ErrCollectorValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid collector data.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create collector.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, collector)
}

// GetCollectors handles listing collectors with search and pagination.
func (h *CollectorHandler) GetCollectors(c *gin.Context) {
	page, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}

	collectors, totalCount, err := h.collectorService.GetCollectors(page, pageSize, searchTermQuery(c))
	if err != nil {
		utils.LogError(err, "GetCollectors: Error from collectorService.GetCollectors")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch collectors.", "Internal error"))
		return
	}
	if collectors == nil {
		collectors = []models.Collector{}
	}
	respondPaginated(c, collectors, totalCount, page, pageSize)
}

// GetCollectorByID handles fetching a single collector.
func (h *CollectorHandler) GetCollectorByID(c *gin.Context) {
	collectorID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	collector, err := h.collectorService.GetCollectorByID(collectorID)
	if err != nil {
		utils.LogError(err, "GetCollectorByID: Error from collectorService.GetCollectorByID")
		if errors.Is(err, services.ErrCollectorNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Collector not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch collector.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, collector)
}

// UpdateCollector handles partial updates of a collector.
func (h *CollectorHandler) UpdateCollector(c *gin.Context) {
	collectorID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateCollectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateCollector: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	collector, err := h.collectorService.UpdateCollector(collectorID, req)
	if err != nil {
		utils.LogError(err, "UpdateCollector: Error from collectorService.UpdateCollector")
		if errors.Is(err, services.ErrCollectorNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Collector not found to update.", err.Error()))
		} else if errors.Is(err, services.ErrCollectorValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid collector data.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update collector.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, collector)
}

// DeleteCollector handles deleting a collector.
func (h *CollectorHandler) DeleteCollector(c *gin.Context) {
	collectorID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.collectorService.DeleteCollector(collectorID); err != nil {
		utils.LogError(err, "DeleteCollector: Error from collectorService.DeleteCollector")
		if errors.Is(err, services.ErrCollectorNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Collector not found to delete.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete collector.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Collector deleted successfully"})
}
