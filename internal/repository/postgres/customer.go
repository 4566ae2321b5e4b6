package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Kavin001K/fabzclean-backend/internal/domain"
	"github.com/Kavin001K/fabzclean-backend/internal/repository"
)

type customerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	query := `INSERT INTO customers (name, email, phone, franchise_id, is_active, created_at)
	          VALUES ($1, $2, $3, $4, $5, NOW()) RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query,
		customer.Name, customer.Email, customer.Phone, customer.FranchiseID, customer.IsActive).
		Scan(&customer.ID, &customer.CreatedAt)
}

func (r *customerRepository) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	query := `SELECT id, name, email, COALESCE(phone, ''), franchise_id, is_active, created_at, updated_at
	          FROM customers WHERE id = $1`
	var c domain.Customer
	var updatedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.FranchiseID, &c.IsActive, &c.CreatedAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		c.UpdatedAt = &t
	}
	return &c, nil
}

func (r *customerRepository) List(ctx context.Context, franchiseID *int32, page, pageSize int32) ([]domain.Customer, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 50
	}
	offset := (page - 1) * pageSize

	var count int32
	countQuery := `SELECT count(*) FROM customers WHERE ($1::int IS NULL OR franchise_id = $1)`
	if err := r.db.QueryRowContext(ctx, countQuery, franchiseID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, name, email, COALESCE(phone, ''), franchise_id, is_active, created_at, updated_at
	          FROM customers WHERE ($1::int IS NULL OR franchise_id = $1)
	          ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, franchiseID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	customers, err := scanCustomers(rows)
	if err != nil {
		return nil, 0, err
	}
	return customers, count, nil
}

func (r *customerRepository) OutstandingContacts(ctx context.Context) ([]domain.Customer, error) {
	query := `SELECT c.id, c.name, c.email, COALESCE(c.phone, ''), c.franchise_id, c.is_active, c.created_at, c.updated_at
	          FROM customers c
	          JOIN credit_accounts a ON a.customer_id = c.id
	          WHERE a.balance_cents <> 0 AND c.is_active
	          ORDER BY c.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCustomers(rows)
}

func scanCustomers(rows *sql.Rows) ([]domain.Customer, error) {
	var customers []domain.Customer
	for rows.Next() {
		var c domain.Customer
		var updatedAt sql.NullTime
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.FranchiseID,
			&c.IsActive, &c.CreatedAt, &updatedAt); err != nil {
			return nil, err
		}
		if updatedAt.Valid {
			t := updatedAt.Time
			c.UpdatedAt = &t
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}
