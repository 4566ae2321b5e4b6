package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Kavin001K/fabzclean-backend/internal/domain"
	"github.com/Kavin001K/fabzclean-backend/internal/logger"
	"github.com/Kavin001K/fabzclean-backend/internal/repository"
)

const historyLimit = 100

type creditService struct {
	creditRepo   repository.CreditRepository
	customerRepo repository.CustomerRepository
	maxAttempts  int
	retryBackoff time.Duration
	now          func() time.Time
}

func NewCreditService(creditRepo repository.CreditRepository, customerRepo repository.CustomerRepository, maxAttempts int, retryBackoff time.Duration) CreditService {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if retryBackoff <= 0 {
		retryBackoff = 10 * time.Millisecond
	}
	return &creditService{
		creditRepo:   creditRepo,
		customerRepo: customerRepo,
		maxAttempts:  maxAttempts,
		retryBackoff: retryBackoff,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *creditService) RecordCredit(ctx context.Context, actor domain.Actor, customerID int32, amountCents int64, reason, referenceID string) (*domain.CreditTransaction, error) {
	if err := authorizeMutation(actor, domain.TransactionTypeCredit); err != nil {
		return nil, err
	}
	if err := validateAmount(amountCents); err != nil {
		return nil, err
	}
	return s.apply(ctx, actor, customerID, domain.TransactionTypeCredit, amountCents,
		domain.TransactionTypeCredit.SignedDelta(amountCents), reason, "", referenceID)
}

func (s *creditService) RecordPayment(ctx context.Context, actor domain.Actor, customerID int32, amountCents int64, method, referenceID, notes string) (*domain.CreditTransaction, error) {
	if err := authorizeMutation(actor, domain.TransactionTypePayment); err != nil {
		return nil, err
	}
	if err := validateAmount(amountCents); err != nil {
		return nil, err
	}
	return s.apply(ctx, actor, customerID, domain.TransactionTypePayment, amountCents,
		domain.TransactionTypePayment.SignedDelta(amountCents), notes, method, referenceID)
}

func (s *creditService) RecordUsage(ctx context.Context, actor domain.Actor, customerID int32, amountCents int64, referenceID string) (*domain.CreditTransaction, error) {
	if err := authorizeMutation(actor, domain.TransactionTypeUsage); err != nil {
		return nil, err
	}
	if err := validateAmount(amountCents); err != nil {
		return nil, err
	}
	if strings.TrimSpace(referenceID) == "" {
		return nil, fmt.Errorf("%w: usage requires an order reference", domain.ErrValidation)
	}
	return s.apply(ctx, actor, customerID, domain.TransactionTypeUsage, amountCents,
		domain.TransactionTypeUsage.SignedDelta(amountCents), "", "", referenceID)
}

func (s *creditService) RecordDeposit(ctx context.Context, actor domain.Actor, customerID int32, amountCents int64, referenceID string) (*domain.CreditTransaction, error) {
	if err := authorizeMutation(actor, domain.TransactionTypeDeposit); err != nil {
		return nil, err
	}
	if err := validateAmount(amountCents); err != nil {
		return nil, err
	}
	return s.apply(ctx, actor, customerID, domain.TransactionTypeDeposit, amountCents,
		domain.TransactionTypeDeposit.SignedDelta(amountCents), "", "", referenceID)
}

// RecordAdjustment takes a signed amount and applies it verbatim. Admin only;
// a non-empty reason is mandatory because adjustments bypass the normal
// credit/payment flow.
func (s *creditService) RecordAdjustment(ctx context.Context, actor domain.Actor, customerID int32, amountCents int64, reason string) (*domain.CreditTransaction, error) {
	if err := authorizeMutation(actor, domain.TransactionTypeAdjustment); err != nil {
		return nil, err
	}
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: adjustment requires a reason", domain.ErrValidation)
	}
	if amountCents == 0 {
		return nil, fmt.Errorf("%w: adjustment amount must be non-zero", domain.ErrValidation)
	}
	magnitude := amountCents
	if magnitude < 0 {
		magnitude = -magnitude
	}
	return s.apply(ctx, actor, customerID, domain.TransactionTypeAdjustment, magnitude, amountCents, reason, "", "")
}

func validateAmount(amountCents int64) error {
	if amountCents <= 0 {
		return fmt.Errorf("%w: amount must be a positive number of cents", domain.ErrValidation)
	}
	return nil
}

// apply runs the serialized read-modify-write for one customer. The previous
// balance is read together with the account version; the append commits only
// if that version is still current, so no two transactions can be based on
// the same previous-balance snapshot. Lost races are retried with
// exponential backoff up to the configured budget.
func (s *creditService) apply(ctx context.Context, actor domain.Actor, customerID int32, txType domain.TransactionType, amountCents, signedDelta int64, description, method, referenceID string) (*domain.CreditTransaction, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	backoff := s.retryBackoff
	for attempt := 1; ; attempt++ {
		acct, err := s.creditRepo.GetAccount(ctx, customerID)
		if errors.Is(err, domain.ErrNotFound) {
			// Lazy account: implicit zero balance, version 0.
			acct = &domain.CreditAccount{CustomerID: customerID, FranchiseID: customer.FranchiseID}
		} else if err != nil {
			return nil, err
		}

		txn := &domain.CreditTransaction{
			ID:               uuid.New().String(),
			CustomerID:       customerID,
			Type:             txType,
			AmountCents:      amountCents,
			SignedDeltaCents: signedDelta,
			Description:      description,
			Method:           method,
			ReferenceID:      referenceID,
			BalanceAfter:     acct.BalanceCents + signedDelta,
			CreatedBy:        actor.UserID,
			CreatedByName:    actor.Name,
			CreatedAt:        s.now(),
		}

		err = s.creditRepo.AppendTransaction(ctx, txn, acct.FranchiseID, acct.Version)
		if err == nil {
			logger.Info("Ledger transaction committed",
				"customer_id", customerID, "type", txType,
				"delta_cents", signedDelta, "balance_after_cents", txn.BalanceAfter,
				"attempts", attempt)
			return txn, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		if attempt >= s.maxAttempts {
			logger.Warn("Ledger write retries exhausted",
				"customer_id", customerID, "type", txType, "attempts", attempt)
			return nil, fmt.Errorf("%w: customer %d write contention after %d attempts",
				domain.ErrConflict, customerID, attempt)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}

func (s *creditService) GetCustomerLedger(ctx context.Context, actor domain.Actor, customerID int32) (*domain.CreditAccount, []domain.CreditTransaction, *domain.WeeklyTrend, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, nil, nil, err
	}
	if scope := actor.Scope(); scope != nil {
		if customer.FranchiseID == nil || *customer.FranchiseID != *scope {
			return nil, nil, nil, domain.ErrNotFound
		}
	}

	acct, err := s.creditRepo.GetAccount(ctx, customerID)
	if errors.Is(err, domain.ErrNotFound) {
		acct = &domain.CreditAccount{CustomerID: customerID, FranchiseID: customer.FranchiseID}
	} else if err != nil {
		return nil, nil, nil, err
	}

	history, err := s.creditRepo.ListTransactions(ctx, customerID, historyLimit)
	if err != nil {
		return nil, nil, nil, err
	}

	trend, err := weeklyTrend(ctx, s.creditRepo, customerID, s.now())
	if err != nil {
		return nil, nil, nil, err
	}
	return acct, history, trend, nil
}

// weeklyTrend buckets a customer's transactions into the current ISO week
// and the week before it. Shared with the report service.
func weeklyTrend(ctx context.Context, repo repository.CreditRepository, customerID int32, now time.Time) (*domain.WeeklyTrend, error) {
	thisWeekStart := startOfISOWeek(now)
	lastWeekStart := thisWeekStart.AddDate(0, 0, -7)
	nextWeekStart := thisWeekStart.AddDate(0, 0, 7)

	txs, err := repo.ListTransactionsInRange(ctx, customerID, lastWeekStart, nextWeekStart)
	if err != nil {
		return nil, err
	}

	trend := &domain.WeeklyTrend{}
	for _, t := range txs {
		bucket := &trend.ThisWeek
		if t.CreatedAt.Before(thisWeekStart) {
			bucket = &trend.LastWeek
		}
		if t.SignedDeltaCents >= 0 {
			bucket.CreditsCents += t.SignedDeltaCents
		} else {
			bucket.PaymentsCents += -t.SignedDeltaCents
		}
		bucket.NetCents += t.SignedDeltaCents
		bucket.TransactionCount++
	}
	return trend, nil
}

// startOfISOWeek returns midnight on the Monday of t's ISO week.
func startOfISOWeek(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // Sunday closes the ISO week
	}
	monday := t.AddDate(0, 0, -(wd - 1))
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, t.Location())
}
