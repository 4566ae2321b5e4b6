package service

import (
	"context"
	"time"

	"github.com/Kavin001K/fabzclean-backend/internal/domain"
)

// CreditService is the transaction processor for the customer credit ledger.
// Every operation authorizes the actor first, validates input second, and
// only then touches storage, inside the per-customer serialized write path.
type CreditService interface {
	RecordCredit(ctx context.Context, actor domain.Actor, customerID int32, amountCents int64, reason, referenceID string) (*domain.CreditTransaction, error)
	RecordPayment(ctx context.Context, actor domain.Actor, customerID int32, amountCents int64, method, referenceID, notes string) (*domain.CreditTransaction, error)
	RecordUsage(ctx context.Context, actor domain.Actor, customerID int32, amountCents int64, referenceID string) (*domain.CreditTransaction, error)
	RecordDeposit(ctx context.Context, actor domain.Actor, customerID int32, amountCents int64, referenceID string) (*domain.CreditTransaction, error)
	RecordAdjustment(ctx context.Context, actor domain.Actor, customerID int32, amountCents int64, reason string) (*domain.CreditTransaction, error)

	// GetCustomerLedger returns the account snapshot, recent history and the
	// weekly trend summary for one customer.
	GetCustomerLedger(ctx context.Context, actor domain.Actor, customerID int32) (*domain.CreditAccount, []domain.CreditTransaction, *domain.WeeklyTrend, error)
}

// ReportService is the reporting aggregator: pure reads over the committed
// transaction log, franchise-scoped for non-admin actors.
type ReportService interface {
	Outstanding(ctx context.Context, actor domain.Actor) (*domain.OutstandingReport, error)
	PeriodStats(ctx context.Context, actor domain.Actor, from, to time.Time) (*domain.PeriodStats, error)
	WeeklyTrend(ctx context.Context, actor domain.Actor, customerID int32) (*domain.WeeklyTrend, error)
	SearchTransactions(ctx context.Context, actor domain.Actor, text string, txType domain.TransactionType) ([]domain.CreditTransaction, error)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.StaffUser, error)
}

type CustomerService interface {
	CreateCustomer(ctx context.Context, actor domain.Actor, customer *domain.Customer) error
	GetCustomer(ctx context.Context, actor domain.Actor, id int32) (*domain.Customer, error)
	ListCustomers(ctx context.Context, actor domain.Actor, page, pageSize int32) ([]domain.Customer, int32, error)
}

type EmailService interface {
	SendMonthlyStatement(ctx context.Context, email, name string, balanceCents int64, period string, transactions []domain.CreditTransaction) error
}
