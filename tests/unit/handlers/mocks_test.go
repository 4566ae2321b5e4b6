package handlers

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Kavin001K/fabzclean-backend/internal/domain"
)

// MockCreditService
type MockCreditService struct {
	mock.Mock
}

func (m *MockCreditService) RecordCredit(ctx context.Context, actor domain.Actor, customerID int32, amountCents int64, reason, referenceID string) (*domain.CreditTransaction, error) {
	args := m.Called(ctx, actor, customerID, amountCents, reason, referenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditTransaction), args.Error(1)
}
func (m *MockCreditService) RecordPayment(ctx context.Context, actor domain.Actor, customerID int32, amountCents int64, method, referenceID, notes string) (*domain.CreditTransaction, error) {
	args := m.Called(ctx, actor, customerID, amountCents, method, referenceID, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditTransaction), args.Error(1)
}
func (m *MockCreditService) RecordUsage(ctx context.Context, actor domain.Actor, customerID int32, amountCents int64, referenceID string) (*domain.CreditTransaction, error) {
	args := m.Called(ctx, actor, customerID, amountCents, referenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditTransaction), args.Error(1)
}
func (m *MockCreditService) RecordDeposit(ctx context.Context, actor domain.Actor, customerID int32, amountCents int64, referenceID string) (*domain.CreditTransaction, error) {
	args := m.Called(ctx, actor, customerID, amountCents, referenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditTransaction), args.Error(1)
}
func (m *MockCreditService) RecordAdjustment(ctx context.Context, actor domain.Actor, customerID int32, amountCents int64, reason string) (*domain.CreditTransaction, error) {
	args := m.Called(ctx, actor, customerID, amountCents, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditTransaction), args.Error(1)
}
func (m *MockCreditService) GetCustomerLedger(ctx context.Context, actor domain.Actor, customerID int32) (*domain.CreditAccount, []domain.CreditTransaction, *domain.WeeklyTrend, error) {
	args := m.Called(ctx, actor, customerID)
	if args.Get(0) == nil {
		return nil, nil, nil, args.Error(3)
	}
	return args.Get(0).(*domain.CreditAccount), args.Get(1).([]domain.CreditTransaction), args.Get(2).(*domain.WeeklyTrend), args.Error(3)
}

// MockReportService
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Outstanding(ctx context.Context, actor domain.Actor) (*domain.OutstandingReport, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OutstandingReport), args.Error(1)
}
func (m *MockReportService) PeriodStats(ctx context.Context, actor domain.Actor, from, to time.Time) (*domain.PeriodStats, error) {
	args := m.Called(ctx, actor, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodStats), args.Error(1)
}
func (m *MockReportService) WeeklyTrend(ctx context.Context, actor domain.Actor, customerID int32) (*domain.WeeklyTrend, error) {
	args := m.Called(ctx, actor, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeeklyTrend), args.Error(1)
}
func (m *MockReportService) SearchTransactions(ctx context.Context, actor domain.Actor, text string, txType domain.TransactionType) ([]domain.CreditTransaction, error) {
	args := m.Called(ctx, actor, text, txType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CreditTransaction), args.Error(1)
}

// MockAuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, *domain.StaffUser, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.StaffUser), args.Error(2)
}

// MockCustomerService
type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) CreateCustomer(ctx context.Context, actor domain.Actor, customer *domain.Customer) error {
	args := m.Called(ctx, actor, customer)
	return args.Error(0)
}
func (m *MockCustomerService) GetCustomer(ctx context.Context, actor domain.Actor, id int32) (*domain.Customer, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerService) ListCustomers(ctx context.Context, actor domain.Actor, page, pageSize int32) ([]domain.Customer, int32, error) {
	args := m.Called(ctx, actor, page, pageSize)
	if args.Get(0) == nil {
		return nil, int32(args.Int(1)), args.Error(2)
	}
	return args.Get(0).([]domain.Customer), args.Get(1).(int32), args.Error(2)
}

// memoryIdempotencyRepo is a map-backed stand-in for the Postgres key store.
type memoryIdempotencyRepo struct {
	entries map[string]storedResponse
}

type storedResponse struct {
	status int
	body   []byte
}

func newMemoryIdempotencyRepo() *memoryIdempotencyRepo {
	return &memoryIdempotencyRepo{entries: map[string]storedResponse{}}
}

func (r *memoryIdempotencyRepo) Get(ctx context.Context, key string) (int, []byte, error) {
	entry, ok := r.entries[key]
	if !ok {
		return 0, nil, domain.ErrNotFound
	}
	return entry.status, entry.body, nil
}

func (r *memoryIdempotencyRepo) Save(ctx context.Context, key string, status int, body []byte) error {
	r.entries[key] = storedResponse{status: status, body: body}
	return nil
}
