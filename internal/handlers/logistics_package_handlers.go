package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/models"
	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/services"
	"github.com/obrunogonzaga/clinic-appointment-system-sub001/pkg/utils"
)

// LogisticsPackageHandler holds the logistics package service.
type LogisticsPackageHandler struct {
	packageService services.LogisticsPackageService
}

// NewLogisticsPackageHandler creates a new LogisticsPackageHandler.
func NewLogisticsPackageHandler(ps services.LogisticsPackageService) *LogisticsPackageHandler {
	return &LogisticsPackageHandler{packageService: ps}
}

func (h *LogisticsPackageHandler) respondPackageError(c *gin.Context, err error, failureMessage string) {
	if errors.Is(err, services.ErrPackageNotFound) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Logistics package not found.", err.Error()))
	} else if errors.Is(err, services.ErrPackageNameExists) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "A logistics package with this name already exists.", err.Error()))
	} else if errors.Is(err, services.ErrPackageReference) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Referenced driver, collector or car not found.", err.Error()))
	} else if errors.Is(err, services.ErrPackageValidation) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid logistics package data.", err.Error()))
	} else {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, failureMessage, "Internal error"))
	}
}

// CreatePackage handles the creation of a new logistics package.
func (h *LogisticsPackageHandler) CreatePackage(c *gin.Context) {
	var req services.CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreatePackage: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	pkg, err := h.packageService.CreatePackage(req)
	if err != nil {
		utils.LogError(err, "CreatePackage: Error from packageService.CreatePackage")
		h.respondPackageError(c, err, "Failed to create logistics package.")
		return
	}
	c.JSON(http.StatusCreated, pkg)
}

// GetPackages handles listing logistics packages with search and pagination.
func (h *LogisticsPackageHandler) GetPackages(c *gin.Context) {
	page, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}

	packages, totalCount, err := h.packageService.GetPackages(page, pageSize, searchTermQuery(c))
	if err != nil {
		utils.LogError(err, "GetPackages: Error from packageService.GetPackages")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch logistics packages.", "Internal error"))
		return
	}
	if packages == nil {
		packages = []models.LogisticsPackage{}
	}
	respondPaginated(c, packages, totalCount, page, pageSize)
}

// GetPackageByID handles fetching a single logistics package.
func (h *LogisticsPackageHandler) GetPackageByID(c *gin.Context) {
	packageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	pkg, err := h.packageService.GetPackageByID(packageID)
	if err != nil {
		utils.LogError(err, "GetPackageByID: Error from packageService.GetPackageByID")
		h.respondPackageError(c, err, "Failed to fetch logistics package.")
		return
	}
	c.JSON(http.StatusOK, pkg)
}

// UpdatePackage handles partial updates of a logistics package.
func (h *LogisticsPackageHandler) UpdatePackage(c *gin.Context) {
	packageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdatePackage: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	pkg, err := h.packageService.UpdatePackage(packageID, req)
	if err != nil {
		utils.LogError(err, "UpdatePackage: Error from packageService.UpdatePackage")
		h.respondPackageError(c, err, "Failed to update logistics package.")
		return
	}
	c.JSON(http.StatusOK, pkg)
}

// DeletePackage handles deleting a logistics package.
func (h *LogisticsPackageHandler) DeletePackage(c *gin.Context) {
	packageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.packageService.DeletePackage(packageID); err != nil {
		utils.LogError(err, "DeletePackage: Error from packageService.DeletePackage")
		h.respondPackageError(c, err, "Failed to delete logistics package.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logistics package deleted successfully"})
}
