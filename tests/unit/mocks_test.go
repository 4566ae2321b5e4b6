package unit

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Kavin001K/fabzclean-backend/internal/domain"
)

// MockCreditRepo
type MockCreditRepo struct {
	mock.Mock
}

func (m *MockCreditRepo) GetAccount(ctx context.Context, customerID int32) (*domain.CreditAccount, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditAccount), args.Error(1)
}
func (m *MockCreditRepo) AppendTransaction(ctx context.Context, txn *domain.CreditTransaction, franchiseID *int32, expectedVersion int64) error {
	args := m.Called(ctx, txn, franchiseID, expectedVersion)
	return args.Error(0)
}
func (m *MockCreditRepo) ListTransactions(ctx context.Context, customerID int32, limit int32) ([]domain.CreditTransaction, error) {
	args := m.Called(ctx, customerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CreditTransaction), args.Error(1)
}
func (m *MockCreditRepo) ListTransactionsInRange(ctx context.Context, customerID int32, from, to time.Time) ([]domain.CreditTransaction, error) {
	args := m.Called(ctx, customerID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CreditTransaction), args.Error(1)
}
func (m *MockCreditRepo) SearchTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.CreditTransaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CreditTransaction), args.Error(1)
}
func (m *MockCreditRepo) OutstandingAccounts(ctx context.Context, franchiseID *int32) ([]domain.OutstandingAccount, error) {
	args := m.Called(ctx, franchiseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OutstandingAccount), args.Error(1)
}
func (m *MockCreditRepo) PeriodTotals(ctx context.Context, from, to time.Time, franchiseID *int32) (*domain.PeriodStats, error) {
	args := m.Called(ctx, from, to, franchiseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodStats), args.Error(1)
}
func (m *MockCreditRepo) FranchiseBreakdown(ctx context.Context, from, to time.Time) ([]domain.FranchiseStats, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FranchiseStats), args.Error(1)
}
func (m *MockCreditRepo) BalanceDeviations(ctx context.Context) ([]domain.BalanceDeviation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceDeviation), args.Error(1)
}

// MockCustomerRepo
type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) Create(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}
func (m *MockCustomerRepo) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) List(ctx context.Context, franchiseID *int32, page, pageSize int32) ([]domain.Customer, int32, error) {
	args := m.Called(ctx, franchiseID, page, pageSize)
	if args.Get(0) == nil {
		return nil, int32(args.Int(1)), args.Error(2)
	}
	return args.Get(0).([]domain.Customer), args.Get(1).(int32), args.Error(2)
}
func (m *MockCustomerRepo) OutstandingContacts(ctx context.Context) ([]domain.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

// MockStaffRepo
type MockStaffRepo struct {
	mock.Mock
}

func (m *MockStaffRepo) GetByEmail(ctx context.Context, email string) (*domain.StaffUser, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffUser), args.Error(1)
}
func (m *MockStaffRepo) GetByID(ctx context.Context, id int32) (*domain.StaffUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffUser), args.Error(1)
}
