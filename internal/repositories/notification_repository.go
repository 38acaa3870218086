package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/models"
)

// NotificationRepository defines the interface for notification persistence.
type NotificationRepository interface {
	CreateNotification(executor SQLExecutor, notification *models.Notification) (int64, error)
	GetNotificationByID(id int64) (*models.Notification, error)
	GetNotifications(page, pageSize int, unreadOnly bool) ([]models.Notification, int, error)
	CountUnread() (int, error)
	MarkRead(executor SQLExecutor, id int64) error
	MarkAllRead(executor SQLExecutor) (int64, error)
}

type notificationRepository struct {
	db *sql.DB
}

// NewNotificationRepository creates a new instance of NotificationRepository.
func NewNotificationRepository(db *sql.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

const notificationColumns = `id, title, message, type, is_read, created_at`

func scanNotification(row scanner, extra ...interface{}) (*models.Notification, error) {
	n := &models.Notification{}
	dest := []interface{}{&n.ID, &n.Title, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return n, nil
}

func (r *notificationRepository) CreateNotification(executor SQLExecutor, notification *models.Notification) (int64, error) {
	query := `INSERT INTO notifications (title, message, type, is_read, created_at)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`

	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}

	err := executor.QueryRow(query,
		notification.Title, notification.Message, notification.Type,
		notification.IsRead, notification.CreatedAt,
	).Scan(&notification.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating notification: %v", ErrDatabaseError, err)
	}
	return notification.ID, nil
}

func (r *notificationRepository) GetNotificationByID(id int64) (*models.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1`

	notification, err := scanNotification(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting notification by ID %d: %v", ErrDatabaseError, id, err)
	}
	return notification, nil
}

func (r *notificationRepository) GetNotifications(page, pageSize int, unreadOnly bool) ([]models.Notification, int, error) {
	notifications := []models.Notification{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + notificationColumns + `, COUNT(*) OVER() as total_count FROM notifications`)
	if unreadOnly {
		queryBuilder.WriteString(" WHERE is_read = FALSE")
	}
	queryBuilder.WriteString(" ORDER BY created_at DESC LIMIT $1 OFFSET $2")

	rows, err := r.db.Query(queryBuilder.String(), pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying notifications: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		notification, err := scanNotification(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning notification: %v", ErrDatabaseError, err)
		}
		notifications = append(notifications, *notification)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating notification rows: %v", ErrDatabaseError, err)
	}
	return notifications, totalCount, nil
}

func (r *notificationRepository) CountUnread() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM notifications WHERE is_read = FALSE`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting unread notifications: %v", ErrDatabaseError, err)
	}
	return count, nil
}

func (r *notificationRepository) MarkRead(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: marking notification ID %d read: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for notification ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(executor SQLExecutor) (int64, error) {
	result, err := executor.Exec(`UPDATE notifications SET is_read = TRUE WHERE is_read = FALSE`)
	if err != nil {
		return 0, fmt.Errorf("%w: marking all notifications read: %v", ErrDatabaseError, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: getting rows affected for mark-all-read: %v", ErrDatabaseError, err)
	}
	return rowsAffected, nil
}
