package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/models"
	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/services"
	"github.com/obrunogonzaga/clinic-appointment-system-sub001/pkg/utils"
)

// CarHandler holds the car service.
type CarHandler struct {
	carService services.CarService
}

// NewCarHandler creates a new CarHandler.
func NewCarHandler(cs services.CarService) *CarHandler {
	return &CarHandler{carService: cs}
}

// CreateCar handles the creation of a new fleet car.
func (h *CarHandler) CreateCar(c *gin.Context) {
	var req services.CreateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateCar: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	car, err := h.carService.CreateCar(req)
	if err != nil {
		utils.LogError(err, "CreateCar: Error from carService.CreateCar")
		if errors.Is(err, services.ErrCarPlateExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "A car with this license plate already exists.", err.Error()))
		} else if errors.Is(err, services.ErrCarValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid car data.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create car.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, car)
}

// GetCars handles listing cars with search and pagination.
func (h *CarHandler) GetCars(c *gin.Context) {
	page, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}

	cars, totalCount, err := h.carService.GetCars(page, pageSize, searchTermQuery(c))
	if err != nil {
		utils.LogError(err, "GetCars: Error from carService.GetCars")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch cars.", "Internal error"))
		return
	}
	if cars == nil {
		cars = []models.Car{}
	}
	respondPaginated(c, cars, totalCount, page, pageSize)
}

// GetCarByID handles fetching a single car.
func (h *CarHandler) GetCarByID(c *gin.Context) {
	carID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	car, err := h.carService.GetCarByID(carID)
	if err != nil {
		utils.LogError(err, "GetCarByID: Error from carService.GetCarByID")
		if errors.Is(err, services.ErrCarNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Car not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch car.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, car)
}

// UpdateCar handles partial updates of a car.
func (h *CarHandler) UpdateCar(c *gin.Context) {
	carID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateCar: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	car, err := h.carService.UpdateCar(carID, req)
	if err != nil {
		utils.LogError(err, "UpdateCar: Error from carService.UpdateCar")
		if errors.Is(err, services.ErrCarNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Car not found to update.", err.Error()))
		} else if errors.Is(err, services.ErrCarPlateExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "A car with this license plate already exists.", err.Error()))
		} else if errors.Is(err, services.ErrCarValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid car data.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update car.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, car)
}

// DeleteCar handles deleting a car.
func (h *CarHandler) DeleteCar(c *gin.Context) {
	carID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.carService.DeleteCar(carID); err != nil {
		utils.LogError(err, "DeleteCar: Error from carService.DeleteCar")
		if errors.Is(err, services.ErrCarNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Car not found to delete.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete car.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Car deleted successfully"})
}
