package service

import (
	"context"
	"time"

	"github.com/Kavin001K/fabzclean-backend/internal/domain"
	"github.com/Kavin001K/fabzclean-backend/internal/repository"
)

type reportService struct {
	creditRepo repository.CreditRepository
	now        func() time.Time
}

func NewReportService(creditRepo repository.CreditRepository) ReportService {
	return &reportService{
		creditRepo: creditRepo,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *reportService) Outstanding(ctx context.Context, actor domain.Actor) (*domain.OutstandingReport, error) {
	accts, err := s.creditRepo.OutstandingAccounts(ctx, actor.Scope())
	if err != nil {
		return nil, err
	}

	report := &domain.OutstandingReport{Customers: accts}
	for _, a := range accts {
		report.TotalOutstanding += a.BalanceCents
	}
	report.ActiveCustomers = int32(len(accts))
	return report, nil
}

func (s *reportService) PeriodStats(ctx context.Context, actor domain.Actor, from, to time.Time) (*domain.PeriodStats, error) {
	stats, err := s.creditRepo.PeriodTotals(ctx, from, to, actor.Scope())
	if err != nil {
		return nil, err
	}

	// The per-franchise breakdown only makes sense chain-wide.
	if actor.Role == domain.RoleAdmin {
		breakdown, err := s.creditRepo.FranchiseBreakdown(ctx, from, to)
		if err != nil {
			return nil, err
		}
		stats.FranchiseBreakdown = breakdown
	}
	return stats, nil
}

func (s *reportService) WeeklyTrend(ctx context.Context, actor domain.Actor, customerID int32) (*domain.WeeklyTrend, error) {
	return weeklyTrend(ctx, s.creditRepo, customerID, s.now())
}

func (s *reportService) SearchTransactions(ctx context.Context, actor domain.Actor, text string, txType domain.TransactionType) ([]domain.CreditTransaction, error) {
	return s.creditRepo.SearchTransactions(ctx, domain.TransactionFilter{
		Text:        text,
		Type:        txType,
		FranchiseID: actor.Scope(),
	})
}
