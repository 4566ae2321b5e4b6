package jobs

import (
	"context"
	"time"

	"github.com/Kavin001K/fabzclean-backend/internal/logger"
)

// ReconcileBalances verifies that every stored account balance equals the
// sum of that customer's signed deltas. It only detects and reports;
// corrections are appended by an admin as adjustment transactions, never
// written by the job itself.
func (jr *JobRunner) ReconcileBalances() {
	jr.runWithRecovery("ReconcileBalances", func() {
		ctx := context.Background()

		deviations, err := jr.store.CreditRepository.BalanceDeviations(ctx)
		if err != nil {
			logger.Error("Failed to run balance reconciliation", "error", err)
			return
		}

		if len(deviations) == 0 {
			logger.Info("Balance reconciliation clean, all accounts match their ledgers")
			return
		}

		for _, d := range deviations {
			logger.Error("Balance deviation detected",
				"customer_id", d.CustomerID,
				"stored_balance_cents", d.BalanceCents,
				"ledger_sum_cents", d.LedgerSumCents,
				"difference_cents", d.BalanceCents-d.LedgerSumCents)
		}
		logger.Error("Balance reconciliation found deviations", "count", len(deviations))
	})
}

// SendMonthlyStatements emails every customer carrying a nonzero balance a
// statement of last month's ledger activity.
func (jr *JobRunner) SendMonthlyStatements() {
	jr.runWithRecovery("SendMonthlyStatements", func() {
		ctx := context.Background()

		now := time.Now().UTC()
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		prevMonthStart := monthStart.AddDate(0, -1, 0)
		period := prevMonthStart.Format("January 2006")

		customers, err := jr.store.CustomerRepository.OutstandingContacts(ctx)
		if err != nil {
			logger.Error("Failed to list customers for statements", "error", err)
			return
		}

		sent := 0
		for _, c := range customers {
			if c.Email == "" {
				continue
			}

			acct, err := jr.store.CreditRepository.GetAccount(ctx, c.ID)
			if err != nil {
				logger.Error("Failed to load account for statement", "customer_id", c.ID, "error", err)
				continue
			}

			txs, err := jr.store.CreditRepository.ListTransactionsInRange(ctx, c.ID, prevMonthStart, monthStart)
			if err != nil {
				logger.Error("Failed to load transactions for statement", "customer_id", c.ID, "error", err)
				continue
			}
			if len(txs) == 0 && acct.BalanceCents == 0 {
				continue
			}

			if err := jr.emailSvc.SendMonthlyStatement(ctx, c.Email, c.Name, acct.BalanceCents, period, txs); err != nil {
				logger.Error("Failed to send statement", "customer_id", c.ID, "error", err)
				continue
			}
			sent++
		}

		logger.Info("Monthly statements sent", "period", period, "count", sent)
	})
}
