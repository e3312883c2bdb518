package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"bounties-api/internal/domain"
)

type NotificationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.DashboardNotification, error)
	List(ctx context.Context, filter domain.NotificationFilter, params domain.PaginationParams) ([]domain.DashboardNotification, int64, error)
	Count(ctx context.Context, filter domain.NotificationFilter) (int64, error)
	MarkViewed(ctx context.Context, id int64) error
	MarkAllViewed(ctx context.Context, ownerAddress string, category domain.NotificationCategory) (int64, error)
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

const dashboardNotificationColumns = `
	d.id, d.viewed, d.is_activity, d.string, d.data,
	n.id AS "notification.id",
	n.user_id AS "notification.user_id",
	n.notification_name AS "notification.notification_name",
	n.notification_created AS "notification.notification_created",
	u.public_address AS owner_address`

const dashboardNotificationJoins = `
	FROM dashboard_notifications d
	INNER JOIN notifications n ON n.id = d.notification_id
	INNER JOIN users u ON u.id = n.user_id`

func (r *notificationRepository) GetByID(ctx context.Context, id int64) (*domain.DashboardNotification, error) {
	var notif domain.DashboardNotification
	query := `SELECT ` + dashboardNotificationColumns + dashboardNotificationJoins + ` WHERE d.id = $1`

	err := r.db.GetContext(ctx, &notif, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &notif, nil
}

func (r *notificationRepository) List(ctx context.Context, filter domain.NotificationFilter, params domain.PaginationParams) ([]domain.DashboardNotification, int64, error) {
	params.Validate()

	total, err := r.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	var notifications []domain.DashboardNotification
	query := `SELECT ` + dashboardNotificationColumns + dashboardNotificationJoins + `
		WHERE u.public_address = $1 AND d.is_activity = $2 AND d.viewed = $3
		ORDER BY n.notification_created DESC, d.id DESC
		LIMIT $4 OFFSET $5`

	err = r.db.SelectContext(ctx, &notifications, query,
		filter.OwnerAddress, filter.Category.IsActivity(), filter.Viewed, params.PageSize, params.Offset())
	return notifications, total, err
}

func (r *notificationRepository) Count(ctx context.Context, filter domain.NotificationFilter) (int64, error) {
	var total int64
	query := `SELECT COUNT(*)` + dashboardNotificationJoins + `
		WHERE u.public_address = $1 AND d.is_activity = $2 AND d.viewed = $3`

	err := r.db.GetContext(ctx, &total, query, filter.OwnerAddress, filter.Category.IsActivity(), filter.Viewed)
	return total, err
}

func (r *notificationRepository) MarkViewed(ctx context.Context, id int64) error {
	query := `UPDATE dashboard_notifications SET viewed = TRUE WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *notificationRepository) MarkAllViewed(ctx context.Context, ownerAddress string, category domain.NotificationCategory) (int64, error) {
	query := `
		UPDATE dashboard_notifications d
		SET viewed = TRUE
		FROM notifications n
		INNER JOIN users u ON u.id = n.user_id
		WHERE d.notification_id = n.id
			AND u.public_address = $1
			AND d.is_activity = $2
			AND d.viewed = FALSE`

	res, err := r.db.ExecContext(ctx, query, ownerAddress, category.IsActivity())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
