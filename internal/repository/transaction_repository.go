package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"bounties-api/internal/domain"
)

type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	GetByID(ctx context.Context, id int64) (*domain.Transaction, error)
	List(ctx context.Context, filter domain.TransactionFilter, params domain.PaginationParams) ([]domain.Transaction, int64, error)
	MarkViewed(ctx context.Context, id int64) error
	MarkAllViewed(ctx context.Context, ownerAddress string) (int64, error)
}

type transactionRepository struct {
	db *sqlx.DB
}

func NewTransactionRepository(db *sqlx.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	if len(tx.Data) == 0 {
		tx.Data = []byte("{}")
	}

	query := `
		INSERT INTO transactions (user_id, tx_hash, data)
		VALUES ($1, $2, $3)
		RETURNING id, viewed, completed, created`

	return r.db.QueryRowxContext(ctx, query,
		tx.UserID, tx.TxHash, []byte(tx.Data),
	).Scan(&tx.ID, &tx.Viewed, &tx.Completed, &tx.Created)
}

func (r *transactionRepository) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	var tx domain.Transaction
	query := `
		SELECT t.id, t.user_id, t.tx_hash, t.viewed, t.completed, t.data, t.created, u.public_address AS owner_address
		FROM transactions t
		INNER JOIN users u ON u.id = t.user_id
		WHERE t.id = $1`

	err := r.db.GetContext(ctx, &tx, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *transactionRepository) List(ctx context.Context, filter domain.TransactionFilter, params domain.PaginationParams) ([]domain.Transaction, int64, error) {
	params.Validate()

	var total int64
	countQuery := `
		SELECT COUNT(*)
		FROM transactions t
		INNER JOIN users u ON u.id = t.user_id
		WHERE u.public_address = $1 AND t.viewed = $2`
	if err := r.db.GetContext(ctx, &total, countQuery, filter.OwnerAddress, filter.Viewed); err != nil {
		return nil, 0, err
	}

	var transactions []domain.Transaction
	query := `
		SELECT t.id, t.user_id, t.tx_hash, t.viewed, t.completed, t.data, t.created, u.public_address AS owner_address
		FROM transactions t
		INNER JOIN users u ON u.id = t.user_id
		WHERE u.public_address = $1 AND t.viewed = $2
		ORDER BY t.created DESC, t.id DESC
		LIMIT $3 OFFSET $4`

	err := r.db.SelectContext(ctx, &transactions, query, filter.OwnerAddress, filter.Viewed, params.PageSize, params.Offset())
	return transactions, total, err
}

func (r *transactionRepository) MarkViewed(ctx context.Context, id int64) error {
	query := `UPDATE transactions SET viewed = TRUE WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *transactionRepository) MarkAllViewed(ctx context.Context, ownerAddress string) (int64, error) {
	query := `
		UPDATE transactions t
		SET viewed = TRUE
		FROM users u
		WHERE u.id = t.user_id AND u.public_address = $1 AND t.viewed = FALSE`

	res, err := r.db.ExecContext(ctx, query, ownerAddress)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
