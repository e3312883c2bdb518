package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"bounties-api/internal/domain"
)

// OwnerRepository resolves the entity a comment was posted on through one
// join table.
type OwnerRepository interface {
	// FindByComment returns domain.ErrNotFound when the comment has no owner
	// of this kind and ErrMultipleOwners when it has several.
	FindByComment(ctx context.Context, commentID int64) (int64, error)
}

type ownerRepository struct {
	db    *sqlx.DB
	query string
}

func NewBountyRepository(db *sqlx.DB) OwnerRepository {
	return &ownerRepository{
		db:    db,
		query: `SELECT bounty_id FROM bounty_comments WHERE comment_id = $1 LIMIT 2`,
	}
}

func NewFulfillmentRepository(db *sqlx.DB) OwnerRepository {
	return &ownerRepository{
		db:    db,
		query: `SELECT fulfillment_id FROM fulfillment_comments WHERE comment_id = $1 LIMIT 2`,
	}
}

func (r *ownerRepository) FindByComment(ctx context.Context, commentID int64) (int64, error) {
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, r.query, commentID); err != nil {
		return 0, err
	}

	switch len(ids) {
	case 0:
		return 0, domain.ErrNotFound
	case 1:
		return ids[0], nil
	default:
		return 0, fmt.Errorf("comment %d: %w", commentID, ErrMultipleOwners)
	}
}
