package postgres

import (
	"database/sql"

	"github.com/Kavin001K/fabzclean-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.CreditRepository
	repository.CustomerRepository
	repository.StaffRepository
	repository.IdempotencyRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		CreditRepository:      NewCreditRepository(db),
		CustomerRepository:    NewCustomerRepository(db),
		StaffRepository:       NewStaffRepository(db),
		IdempotencyRepository: NewIdempotencyRepository(db),
	}
}
