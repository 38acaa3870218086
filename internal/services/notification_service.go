package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/models"
	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/repositories"
)

var (
	ErrNotificationNotFound   = errors.New("notification not found")
	ErrNotificationValidation = errors.New("notification data validation error")
)

type CreateNotificationRequest struct {
	Title   string `json:"title" binding:"required"`
	Message string `json:"message" binding:"required"`
	Type    string `json:"type"`
}

type NotificationService interface {
	CreateNotification(req CreateNotificationRequest) (*models.Notification, error)
	GetNotifications(page, pageSize int, unreadOnly bool) ([]models.Notification, int, error)
	CountUnread() (int, error)
	MarkRead(notificationID int64) error
	MarkAllRead() (int64, error)
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	db               *sql.DB
}

// NewNotificationService creates a new instance of NotificationService.
func NewNotificationService(repo repositories.NotificationRepository, db *sql.DB) NotificationService {
	return &notificationService{notificationRepo: repo, db: db}
}

func (s *notificationService) CreateNotification(req CreateNotificationRequest) (*models.Notification, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Message) == "" {
		return nil, fmt.Errorf("%w: title and message are required", ErrNotificationValidation)
	}

	notificationType := req.Type
	switch models.NotificationType(notificationType) {
	case models.NotificationTypeInfo, models.NotificationTypeWarning, models.NotificationTypeError:
	case "":
		notificationType = string(models.NotificationTypeInfo)
	default:
		return nil, fmt.Errorf("%w: unknown notification type %q", ErrNotificationValidation, req.Type)
	}

	notification := &models.Notification{
		Title:   req.Title,
		Message: req.Message,
		Type:    notificationType,
	}
	if _, err := s.notificationRepo.CreateNotification(s.db, notification); err != nil {
		return nil, fmt.Errorf("failed to create notification in repository: %w", err)
	}
	return notification, nil
}

func (s *notificationService) GetNotifications(page, pageSize int, unreadOnly bool) ([]models.Notification, int, error) {
	page, pageSize = clampPagination(page, pageSize)

	notifications, totalCount, err := s.notificationRepo.GetNotifications(page, pageSize, unreadOnly)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get notifications: %w", err)
	}
	return notifications, totalCount, nil
}

func (s *notificationService) CountUnread() (int, error) {
	count, err := s.notificationRepo.CountUnread()
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (s *notificationService) MarkRead(notificationID int64) error {
	if err := s.notificationRepo.MarkRead(s.db, notificationID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

func (s *notificationService) MarkAllRead() (int64, error) {
	updated, err := s.notificationRepo.MarkAllRead(s.db)
	if err != nil {
		return 0, fmt.Errorf("failed to mark all notifications read: %w", err)
	}
	return updated, nil
}
