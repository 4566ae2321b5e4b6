package domain

import "time"

type TransactionType string

const (
	TransactionTypeCredit     TransactionType = "credit"
	TransactionTypePayment    TransactionType = "payment"
	TransactionTypeUsage      TransactionType = "usage"
	TransactionTypeAdjustment TransactionType = "adjustment"
	TransactionTypeDeposit    TransactionType = "deposit"
)

// ParseTransactionType maps a wire string onto the closed variant set.
func ParseTransactionType(s string) (TransactionType, bool) {
	switch TransactionType(s) {
	case TransactionTypeCredit, TransactionTypePayment, TransactionTypeUsage,
		TransactionTypeAdjustment, TransactionTypeDeposit:
		return TransactionType(s), true
	}
	return "", false
}

// SignedDelta converts an entered magnitude into the balance delta for this
// transaction type. Adjustments carry their sign verbatim and are handled by
// the caller, not here.
func (t TransactionType) SignedDelta(amountCents int64) int64 {
	switch t {
	case TransactionTypePayment, TransactionTypeUsage:
		return -amountCents
	default:
		return amountCents
	}
}

// CreditAccount is the per-customer balance snapshot. It is created lazily on
// the first transaction and never deleted. Version is the optimistic
// concurrency counter; every committed transaction bumps it by one.
type CreditAccount struct {
	CustomerID   int32     `json:"customer_id"`
	FranchiseID  *int32    `json:"franchise_id,omitempty"`
	BalanceCents int64     `json:"balance_cents"`
	Version      int64     `json:"version"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreditTransaction is one immutable entry in a customer's ledger. Rows are
// appended exactly once and never edited; corrections append an adjustment.
type CreditTransaction struct {
	ID               string          `json:"id"`
	CustomerID       int32           `json:"customer_id"`
	Type             TransactionType `json:"type"`
	AmountCents      int64           `json:"amount_cents"`       // magnitude as entered
	SignedDeltaCents int64           `json:"signed_delta_cents"` // derived, applied to balance
	Description      string          `json:"description"`
	Method           string          `json:"method,omitempty"`
	ReferenceID      string          `json:"reference_id,omitempty"`
	BalanceAfter     int64           `json:"balance_after_cents"`
	CreatedBy        int32           `json:"created_by"`
	CreatedByName    string          `json:"created_by_name"`
	CreatedAt        time.Time       `json:"created_at"`
}

// TransactionFilter narrows SearchTransactions. Text matches customer
// name/email and the transaction description.
type TransactionFilter struct {
	Text        string
	Type        TransactionType
	FranchiseID *int32
	Limit       int32
}

// OutstandingAccount is one row of the outstanding report.
type OutstandingAccount struct {
	CustomerID   int32  `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	BalanceCents int64  `json:"balance_cents"`
	TotalOrders  int32  `json:"total_orders"`
}

type OutstandingReport struct {
	Customers        []OutstandingAccount `json:"customers"`
	TotalOutstanding int64                `json:"total_outstanding"`
	ActiveCustomers  int32                `json:"active_customers"`
}

// PeriodStats aggregates transactions inside a time range. Credit and deposit
// share the "given" bucket; payment and usage share the "received" bucket.
type PeriodStats struct {
	CreditGivenCents      int64            `json:"credit_given_cents"`
	PaymentsReceivedCents int64            `json:"payments_received_cents"`
	ActiveCustomers       int32            `json:"active_customers"`
	FranchiseBreakdown    []FranchiseStats `json:"franchise_breakdown"`
}

type FranchiseStats struct {
	FranchiseID           int32  `json:"franchise_id"`
	FranchiseName         string `json:"franchise_name"`
	OutstandingCents      int64  `json:"outstanding_cents"`
	CreditGivenCents      int64  `json:"credit_given_cents"`
	PaymentsReceivedCents int64  `json:"payments_received_cents"`
}

// WeekBucket holds one ISO week's worth of a customer's activity.
type WeekBucket struct {
	CreditsCents     int64 `json:"credits_cents"`
	PaymentsCents    int64 `json:"payments_cents"`
	NetCents         int64 `json:"net_cents"`
	TransactionCount int32 `json:"transaction_count"`
}

type WeeklyTrend struct {
	ThisWeek WeekBucket `json:"this_week"`
	LastWeek WeekBucket `json:"last_week"`
}

/// BalanceDeviation is a reconciliation finding: a stored balance that does
// not equal the sum of the customer's signed deltas.
type BalanceDeviation struct {
	CustomerID     int32
	BalanceCents   int64
	LedgerSumCents int64
}
