package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Kavin001K/fabzclean-backend/internal/domain"
	"github.com/Kavin001K/fabzclean-backend/internal/repository"
)

type idempotencyRepository struct {
	db *sql.DB
}

func NewIdempotencyRepository(db *sql.DB) repository.IdempotencyRepository {
	return &idempotencyRepository{db: db}
}

func (r *idempotencyRepository) Get(ctx context.Context, key string) (int, []byte, error) {
	query := `SELECT response_status, response_body FROM idempotency_keys WHERE key_id = $1`
	var status int
	var body []byte
	err := r.db.QueryRowContext(ctx, query, key).Scan(&status, &body)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil, domain.ErrNotFound
	}
	if err != nil {
		return 0, nil, err
	}
	return status, body, nil
}

func (r *idempotencyRepository) Save(ctx context.Context, key string, status int, body []byte) error {
	query := `INSERT INTO idempotency_keys (key_id, response_status, response_body, created_at)
	          VALUES ($1, $2, $3, NOW()) ON CONFLICT (key_id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, key, status, body)
	return err
}
