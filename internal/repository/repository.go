package repository

import (
	"context"
	"time"

	"github.com/Kavin001K/fabzclean-backend/internal/domain"
)

// CreditRepository owns the credit_accounts snapshot table and the
// append-only credit_transactions log.
type CreditRepository interface {
	// GetAccount returns the account snapshot, or domain.ErrNotFound if the
	// customer has never transacted (the caller treats that as a zero
	// balance with version 0).
	GetAccount(ctx context.Context, customerID int32) (*domain.CreditAccount, error)

	// AppendTransaction persists the transaction record and the updated
	// account snapshot as one atomic unit. expectedVersion is the account
	// version the new balance was computed from; if another writer got
	// there first the call commits nothing and returns domain.ErrConflict.
	AppendTransaction(ctx context.Context, txn *domain.CreditTransaction, franchiseID *int32, expectedVersion int64) error

	ListTransactions(ctx context.Context, customerID int32, limit int32) ([]domain.CreditTransaction, error)
	ListTransactionsInRange(ctx context.Context, customerID int32, from, to time.Time) ([]domain.CreditTransaction, error)
	SearchTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.CreditTransaction, error)

	// Reporting reads (point-in-time, read-committed).
	OutstandingAccounts(ctx context.Context, franchiseID *int32) ([]domain.OutstandingAccount, error)
	PeriodTotals(ctx context.Context, from, to time.Time, franchiseID *int32) (*domain.PeriodStats, error)
	FranchiseBreakdown(ctx context.Context, from, to time.Time) ([]domain.FranchiseStats, error)

	// BalanceDeviations lists accounts whose stored balance disagrees with
	// the sum of their signed deltas. Used by the reconciliation job.
	BalanceDeviations(ctx context.Context) ([]domain.BalanceDeviation, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id int32) (*domain.Customer, error)
	List(ctx context.Context, franchiseID *int32, page, pageSize int32) ([]domain.Customer, int32, error)

	// OutstandingContacts returns customers with a nonzero balance, for the
	// monthly statement job.
	OutstandingContacts(ctx context.Context) ([]domain.Customer, error)
}

type StaffRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.StaffUser, error)
	GetByID(ctx context.Context, id int32) (*domain.StaffUser, error)
}

// IdempotencyRepository backs replay of mutation responses for clients that
// retry with an Idempotency-Key header.
type IdempotencyRepository interface {
	Get(ctx context.Context, key string) (status int, body []byte, err error)
	Save(ctx context.Context, key string, status int, body []byte) error
}
