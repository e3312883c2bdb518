package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"bounties-api/internal/domain"
)

type ActivityRepository interface {
	Create(ctx context.Context, activity *domain.Activity) error
}

type activityRepository struct {
	db *sqlx.DB
}

func NewActivityRepository(db *sqlx.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	query := `
		INSERT INTO activities (event_type, bounty_id, fulfillment_id, comment_id, date, user_id, community_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	return r.db.QueryRowxContext(ctx, query,
		activity.EventType, activity.BountyID, activity.FulfillmentID, activity.CommentID,
		activity.Date, activity.UserID, activity.CommunityID,
	).Scan(&activity.ID)
}
