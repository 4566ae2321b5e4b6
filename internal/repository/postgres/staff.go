package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Kavin001K/fabzclean-backend/internal/domain"
	"github.com/Kavin001K/fabzclean-backend/internal/repository"
)

type staffRepository struct {
	db *sql.DB
}

func NewStaffRepository(db *sql.DB) repository.StaffRepository {
	return &staffRepository{db: db}
}

const staffColumns = `id, name, email, password_hash, role, franchise_id, is_active, created_at`

func (r *staffRepository) GetByEmail(ctx context.Context, email string) (*domain.StaffUser, error) {
	query := `SELECT ` + staffColumns + ` FROM staff_users WHERE email = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *staffRepository) GetByID(ctx context.Context, id int32) (*domain.StaffUser, error) {
	query := `SELECT ` + staffColumns + ` FROM staff_users WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *staffRepository) scanOne(row *sql.Row) (*domain.StaffUser, error) {
	var u domain.StaffUser
	var role string
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.FranchiseID, &u.IsActive, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.Role = domain.ParseRole(role)
	return &u, nil
}
