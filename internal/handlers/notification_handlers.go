package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/models"
	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/services"
	"github.com/obrunogonzaga/clinic-appointment-system-sub001/pkg/utils"
)

// NotificationHandler holds the notification service.
type NotificationHandler struct {
	notificationService services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(ns services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: ns}
}

// CreateNotification handles the creation of a new notification.
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	var req services.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateNotification: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	notification, err := h.notificationService.CreateNotification(req)
	if err != nil {
		utils.LogError(err, "CreateNotification: Error from notificationService.CreateNotification")
		if errors.Is(err, services.ErrNotificationValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid notification data.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create notification.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, notification)
}

// GetNotifications handles listing notifications, optionally unread only.
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	page, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}

	unreadOnly := false
	if unreadStr := c.Query("unread_only"); unreadStr != "" {
		parsed, err := strconv.ParseBool(unreadStr)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid unread_only format.", err.Error()))
			return
		}
		unreadOnly = parsed
	}

	notifications, totalCount, err := h.notificationService.GetNotifications(page, pageSize, unreadOnly)
	if err != nil {
		utils.LogError(err, "GetNotifications: Error from notificationService.GetNotifications")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch notifications.", "Internal error"))
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	respondPaginated(c, notifications, totalCount, page, pageSize)
}

// CountUnread handles returning the unread notification count.
func (h *NotificationHandler) CountUnread(c *gin.Context) {
	count, err := h.notificationService.CountUnread()
	if err != nil {
		utils.LogError(err, "CountUnread: Error from notificationService.CountUnread")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to count unread notifications.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}

// MarkRead handles marking a single notification as read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notificationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(notificationID); err != nil {
		utils.LogError(err, "MarkRead: Error from notificationService.MarkRead")
		if errors.Is(err, services.ErrNotificationNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Notification not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to mark notification read.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllRead handles marking every unread notification as read.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	updated, err := h.notificationService.MarkAllRead()
	if err != nil {
		utils.LogError(err, "MarkAllRead: Error from notificationService.MarkAllRead")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to mark notifications read.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}
