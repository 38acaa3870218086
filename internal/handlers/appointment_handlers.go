package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/models"
	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/services"
	"github.com/obrunogonzaga/clinic-appointment-system-sub001/pkg/utils"
)

// AppointmentHandler holds the appointment service.
type AppointmentHandler struct {
	appointmentService services.AppointmentService
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(as services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: as}
}

func (h *AppointmentHandler) respondAppointmentError(c *gin.Context, err error, failureMessage string) {
	if errors.Is(err, services.ErrAppointmentNotFound) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Appointment not found.", err.Error()))
	} else if errors.Is(err, services.ErrInvalidStatus) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid appointment status.", err.Error()))
	} else if errors.Is(err, services.ErrAppointmentValidation) || errors.Is(err, services.ErrDateFormat) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid appointment data.", err.Error()))
	} else if errors.Is(err, services.ErrDriverForApptNotFound) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Driver for appointment not found.", err.Error()))
	} else {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, failureMessage, "Internal error"))
	}
}

// CreateAppointment handles the creation of a new appointment.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req services.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateAppointment: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	appointment, err := h.appointmentService.CreateAppointment(req)
	if err != nil {
		utils.LogError(err, "CreateAppointment: Error from appointmentService.CreateAppointment")
		h.respondAppointmentError(c, err, "Failed to create appointment.")
		return
	}
	c.JSON(http.StatusCreated, appointment)
}

// GetAppointments handles listing appointments with filters.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	var filters models.AppointmentFilters

	if status := c.Query("status"); status != "" {
		filters.Status = &status
	}
	if brand := c.Query("brand"); brand != "" {
		filters.Brand = &brand
	}
	if unit := c.Query("unit"); unit != "" {
		filters.Unit = &unit
	}
	if dateFrom := c.Query("date_from"); dateFrom != "" {
		filters.DateFrom = &dateFrom
	}
	if dateTo := c.Query("date_to"); dateTo != "" {
		filters.DateTo = &dateTo
	}
	filters.SearchTerm = searchTermQuery(c)

	page, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}
	filters.Page = page
	filters.PageSize = pageSize

	appointments, totalCount, err := h.appointmentService.GetAppointments(filters)
	if err != nil {
		utils.LogError(err, "GetAppointments: Error from appointmentService.GetAppointments")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch appointments.", "Internal error"))
		return
	}
	if appointments == nil {
		appointments = []models.Appointment{}
	}
	respondPaginated(c, appointments, totalCount, filters.Page, filters.PageSize)
}

// GetAppointmentByID handles fetching a single appointment.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	appointmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	appointment, err := h.appointmentService.GetAppointmentByID(appointmentID)
	if err != nil {
		utils.LogError(err, "GetAppointmentByID: Error from appointmentService.GetAppointmentByID")
		h.respondAppointmentError(c, err, "Failed to fetch appointment.")
		return
	}
	c.JSON(http.StatusOK, appointment)
}

// UpdateAppointment handles partial updates of an appointment.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	appointmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateAppointment: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	appointment, err := h.appointmentService.UpdateAppointment(appointmentID, req)
	if err != nil {
		utils.LogError(err, "UpdateAppointment: Error from appointmentService.UpdateAppointment")
		h.respondAppointmentError(c, err, "Failed to update appointment.")
		return
	}
	c.JSON(http.StatusOK, appointment)
}

// UpdateAppointmentStatus handles the status transition of an appointment.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	appointmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateAppointmentStatus: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	appointment, err := h.appointmentService.UpdateAppointmentStatus(appointmentID, req)
	if err != nil {
		utils.LogError(err, "UpdateAppointmentStatus: Error from appointmentService.UpdateAppointmentStatus")
		h.respondAppointmentError(c, err, "Failed to update appointment status.")
		return
	}
	c.JSON(http.StatusOK, appointment)
}

// SetAppointmentTags handles replacing an appointment's tags.
func (h *AppointmentHandler) SetAppointmentTags(c *gin.Context) {
	appointmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.SetAppointmentTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "SetAppointmentTags: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	appointment, err := h.appointmentService.SetAppointmentTags(appointmentID, req)
	if err != nil {
		utils.LogError(err, "SetAppointmentTags: Error from appointmentService.SetAppointmentTags")
		h.respondAppointmentError(c, err, "Failed to set appointment tags.")
		return
	}
	c.JSON(http.StatusOK, appointment)
}

// DeleteAppointment handles deleting an appointment.
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	appointmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.appointmentService.DeleteAppointment(appointmentID); err != nil {
		utils.LogError(err, "DeleteAppointment: Error from appointmentService.DeleteAppointment")
		h.respondAppointmentError(c, err, "Failed to delete appointment.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted successfully"})
}
