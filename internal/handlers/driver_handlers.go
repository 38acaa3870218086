package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/models"
	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/services"
	"github.com/obrunogonzaga/clinic-appointment-system-sub001/pkg/utils"
)

// DriverHandler holds the driver service.
type DriverHandler struct {
	driverService services.DriverService
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(ds services.DriverService) *DriverHandler {
	return &DriverHandler{driverService: ds}
}

// CreateDriver handles the creation of a new driver.
func (h *DriverHandler) CreateDriver(c *gin.Context) {
	var req services.CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateDriver: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	driver, err := h.driverService.CreateDriver(req)
	if err != nil {
		utils.LogError(err, "CreateDriver: Error from driverService.CreateDriver")
		if errors.Is(err, services.ErrDriverValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid driver data.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create driver.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, driver)
}

// GetDrivers handles listing drivers with search and pagination.
func (h *DriverHandler) GetDrivers(c *gin.Context) {
	page, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}

	drivers, totalCount, err := h.driverService.GetDrivers(page, pageSize, searchTermQuery(c))
	if err != nil {
		utils.LogError(err, "GetDrivers: Error from driverService.GetDrivers")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch drivers.", "Internal error"))
		return
	}
	if drivers == nil {
		drivers = []models.Driver{}
	}
	respondPaginated(c, drivers, totalCount, page, pageSize)
}

// GetDriverByID handles fetching a single driver.
func (h *DriverHandler) GetDriverByID(c *gin.Context) {
	driverID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	driver, err := h.driverService.GetDriverByID(driverID)
	if err != nil {
		utils.LogError(err, "GetDriverByID: Error from driverService.GetDriverByID")
		if errors.Is(err, services.ErrDriverNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Driver not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch driver.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, driver)
}

// UpdateDriver handles partial updates of a driver.
func (h *DriverHandler) UpdateDriver(c *gin.Context) {
	driverID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateDriver: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	driver, err := h.driverService.UpdateDriver(driverID, req)
	if err != nil {
		utils.LogError(err, "UpdateDriver: Error from driverService.UpdateDriver")
		if errors.Is(err, services.ErrDriverNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Driver not found to update.", err.Error()))
		} else if errors.Is(err, services.ErrDriverValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid driver data.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update driver.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, driver)
}

// DeleteDriver handles deleting a driver.
func (h *DriverHandler) DeleteDriver(c *gin.Context) {
	driverID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.driverService.DeleteDriver(driverID); err != nil {
		utils.LogError(err, "DeleteDriver: Error from driverService.DeleteDriver")
		if errors.Is(err, services.ErrDriverNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Driver not found to delete.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete driver.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Driver deleted successfully"})
}
