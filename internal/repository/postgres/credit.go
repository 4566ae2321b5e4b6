package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Kavin001K/fabzclean-backend/internal/domain"
	"github.com/Kavin001K/fabzclean-backend/internal/repository"
)

type creditRepository struct {
	db *sql.DB
}

func NewCreditRepository(db *sql.DB) repository.CreditRepository {
	return &creditRepository{db: db}
}

func (r *creditRepository) GetAccount(ctx context.Context, customerID int32) (*domain.CreditAccount, error) {
	query := `SELECT customer_id, franchise_id, balance_cents, version, updated_at
	          FROM credit_accounts WHERE customer_id = $1`
	var acct domain.CreditAccount
	err := r.db.QueryRowContext(ctx, query, customerID).Scan(
		&acct.CustomerID, &acct.FranchiseID, &acct.BalanceCents, &acct.Version, &acct.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &acct, nil
}

// AppendTransaction commits the ledger row and the balance snapshot in one
// SQL transaction. The snapshot write is a compare-and-set on the account
// version: if another writer advanced the account since the caller read it,
// zero rows match, nothing commits, and domain.ErrConflict is returned so
// the service can re-read and retry.
func (r *creditRepository) AppendTransaction(ctx context.Context, txn *domain.CreditTransaction, franchiseID *int32, expectedVersion int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var res sql.Result
	if expectedVersion == 0 {
		// First transaction creates the account. A concurrent creator wins
		// the insert and this one becomes a no-op, which reads as a conflict.
		res, err = tx.ExecContext(ctx,
			`INSERT INTO credit_accounts (customer_id, franchise_id, balance_cents, version, updated_at)
			 VALUES ($1, $2, $3, 1, NOW()) ON CONFLICT (customer_id) DO NOTHING`,
			txn.CustomerID, franchiseID, txn.BalanceAfter)
	} else {
		res, err = tx.ExecContext(ctx,
			`UPDATE credit_accounts SET balance_cents = $1, version = version + 1, updated_at = NOW()
			 WHERE customer_id = $2 AND version = $3`,
			txn.BalanceAfter, txn.CustomerID, expectedVersion)
	}
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrConflict
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO credit_transactions
		 (id, customer_id, type, amount_cents, signed_delta_cents, description, method, reference_id, balance_after_cents, created_by, created_by_name, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		txn.ID, txn.CustomerID, txn.Type, txn.AmountCents, txn.SignedDeltaCents,
		txn.Description, txn.Method, txn.ReferenceID, txn.BalanceAfter,
		txn.CreatedBy, txn.CreatedByName, txn.CreatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

const transactionColumns = `t.id, t.customer_id, t.type, t.amount_cents, t.signed_delta_cents,
	COALESCE(t.description, ''), COALESCE(t.method, ''), COALESCE(t.reference_id, ''),
	t.balance_after_cents, t.created_by, COALESCE(t.created_by_name, ''), t.created_at`

func scanTransactions(rows *sql.Rows) ([]domain.CreditTransaction, error) {
	var txs []domain.CreditTransaction
	for rows.Next() {
		var t domain.CreditTransaction
		if err := rows.Scan(&t.ID, &t.CustomerID, &t.Type, &t.AmountCents, &t.SignedDeltaCents,
			&t.Description, &t.Method, &t.ReferenceID, &t.BalanceAfter,
			&t.CreatedBy, &t.CreatedByName, &t.CreatedAt); err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

func (r *creditRepository) ListTransactions(ctx context.Context, customerID int32, limit int32) ([]domain.CreditTransaction, error) {
	query := `SELECT ` + transactionColumns + `
	          FROM credit_transactions t WHERE t.customer_id = $1
	          ORDER BY t.created_at DESC, t.id LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, customerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func (r *creditRepository) ListTransactionsInRange(ctx context.Context, customerID int32, from, to time.Time) ([]domain.CreditTransaction, error) {
	query := `SELECT ` + transactionColumns + `
	          FROM credit_transactions t
	          WHERE t.customer_id = $1 AND t.created_at >= $2 AND t.created_at < $3
	          ORDER BY t.created_at ASC, t.id`
	rows, err := r.db.QueryContext(ctx, query, customerID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func (r *creditRepository) SearchTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.CreditTransaction, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query := `SELECT ` + transactionColumns + `
	          FROM credit_transactions t
	          JOIN customers c ON c.id = t.customer_id
	          WHERE ($1 = '' OR c.name ILIKE '%' || $1 || '%' OR c.email ILIKE '%' || $1 || '%' OR t.description ILIKE '%' || $1 || '%')
	            AND ($2 = '' OR t.type = $2)
	            AND ($3::int IS NULL OR c.franchise_id = $3)
	          ORDER BY t.created_at DESC, t.id LIMIT $4`
	rows, err := r.db.QueryContext(ctx, query, filter.Text, string(filter.Type), filter.FranchiseID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func (r *creditRepository) OutstandingAccounts(ctx context.Context, franchiseID *int32) ([]domain.OutstandingAccount, error) {
	query := `SELECT a.customer_id, c.name, a.balance_cents,
	                 COUNT(DISTINCT t.reference_id) FILTER (WHERE t.reference_id IS NOT NULL AND t.reference_id <> '')
	          FROM credit_accounts a
	          JOIN customers c ON c.id = a.customer_id
	          LEFT JOIN credit_transactions t ON t.customer_id = a.customer_id
	          WHERE a.balance_cents > 0 AND ($1::int IS NULL OR a.franchise_id = $1)
	          GROUP BY a.customer_id, c.name, a.balance_cents
	          ORDER BY a.balance_cents DESC`
	rows, err := r.db.QueryContext(ctx, query, franchiseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accts []domain.OutstandingAccount
	for rows.Next() {
		var a domain.OutstandingAccount
		if err := rows.Scan(&a.CustomerID, &a.CustomerName, &a.BalanceCents, &a.TotalOrders); err != nil {
			return nil, err
		}
		accts = append(accts, a)
	}
	return accts, rows.Err()
}

func (r *creditRepository) PeriodTotals(ctx context.Context, from, to time.Time, franchiseID *int32) (*domain.PeriodStats, error) {
	query := `SELECT
	            COALESCE(SUM(t.amount_cents) FILTER (WHERE t.type IN ('credit', 'deposit')), 0),
	            COALESCE(SUM(t.amount_cents) FILTER (WHERE t.type IN ('payment', 'usage')), 0),
	            COUNT(DISTINCT t.customer_id)
	          FROM credit_transactions t
	          LEFT JOIN credit_accounts a ON a.customer_id = t.customer_id
	          WHERE t.created_at >= $1 AND t.created_at < $2
	            AND ($3::int IS NULL OR a.franchise_id = $3)`
	var stats domain.PeriodStats
	err := r.db.QueryRowContext(ctx, query, from, to, franchiseID).Scan(
		&stats.CreditGivenCents, &stats.PaymentsReceivedCents, &stats.ActiveCustomers)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *creditRepository) FranchiseBreakdown(ctx context.Context, from, to time.Time) ([]domain.FranchiseStats, error) {
	query := `SELECT f.id, f.name,
	            COALESCE((SELECT SUM(a.balance_cents) FROM credit_accounts a
	                      WHERE a.franchise_id = f.id AND a.balance_cents > 0), 0),
	            COALESCE((SELECT SUM(t.amount_cents) FROM credit_transactions t
	                      JOIN credit_accounts a ON a.customer_id = t.customer_id
	                      WHERE a.franchise_id = f.id AND t.type IN ('credit', 'deposit')
	                        AND t.created_at >= $1 AND t.created_at < $2), 0),
	            COALESCE((SELECT SUM(t.amount_cents) FROM credit_transactions t
	                      JOIN credit_accounts a ON a.customer_id = t.customer_id
	                      WHERE a.franchise_id = f.id AND t.type IN ('payment', 'usage')
	                        AND t.created_at >= $1 AND t.created_at < $2), 0)
	          FROM franchises f ORDER BY f.name`
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []domain.FranchiseStats
	for rows.Next() {
		var s domain.FranchiseStats
		if err := rows.Scan(&s.FranchiseID, &s.FranchiseName, &s.OutstandingCents,
			&s.CreditGivenCents, &s.PaymentsReceivedCents); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *creditRepository) BalanceDeviations(ctx context.Context) ([]domain.BalanceDeviation, error) {
	query := `SELECT a.customer_id, a.balance_cents, COALESCE(SUM(t.signed_delta_cents), 0)
	          FROM credit_accounts a
	          LEFT JOIN credit_transactions t ON t.customer_id = a.customer_id
	          GROUP BY a.customer_id, a.balance_cents
	          HAVING a.balance_cents <> COALESCE(SUM(t.signed_delta_cents), 0)`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var devs []domain.BalanceDeviation
	for rows.Next() {
		var d domain.BalanceDeviation
		if err := rows.Scan(&d.CustomerID, &d.BalanceCents, &d.LedgerSumCents); err != nil {
			return nil, err
		}
		devs = append(devs, d)
	}
	return devs, rows.Err()
}
