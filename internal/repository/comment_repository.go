package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"bounties-api/internal/domain"
)

type CommentRepository interface {
	ListAll(ctx context.Context) ([]domain.Comment, error)
}

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) ListAll(ctx context.Context) ([]domain.Comment, error) {
	var comments []domain.Comment
	query := `SELECT id, text, user_id, community_id, created FROM comments ORDER BY id`
	err := r.db.SelectContext(ctx, &comments, query)
	return comments, err
}
