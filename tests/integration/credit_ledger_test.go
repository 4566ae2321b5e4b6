package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kavin001K/fabzclean-backend/internal/domain"
	"github.com/Kavin001K/fabzclean-backend/internal/repository/postgres"
	"github.com/Kavin001K/fabzclean-backend/internal/service"
)

func TestCreditLedger_BalanceChain(t *testing.T) {
	db := prepareDB(t)
	defer db.Close()
	cleanTables(t, db)

	store := postgres.NewStore(db)
	creditSvc := service.NewCreditService(store.CreditRepository, store.CustomerRepository, 5, 10*time.Millisecond)
	ctx := context.Background()

	franchiseID := seedFranchise(t, db, "Chennai Central")
	customerID := seedCustomer(t, db, "Rahul S", "rahul@example.com", &franchiseID)
	manager := domain.Actor{UserID: seedStaff(t, db, "Vik", "vik@example.com", "pw", domain.RoleManager, &franchiseID), Name: "Vik", Role: domain.RoleManager, FranchiseID: &franchiseID}
	admin := domain.Actor{UserID: seedStaff(t, db, "Asha", "asha@example.com", "pw", domain.RoleAdmin, nil), Name: "Asha", Role: domain.RoleAdmin}

	// Customer takes a 5.00 service on credit.
	txn, err := creditSvc.RecordCredit(ctx, manager, customerID, 500, "dry clean", "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, int64(500), txn.BalanceAfter)

	// Pays 2.00 in cash.
	txn, err = creditSvc.RecordPayment(ctx, manager, customerID, 200, "cash", "RCPT-1", "")
	require.NoError(t, err)
	assert.Equal(t, int64(300), txn.BalanceAfter)

	// Prepaid deposit of 10.00, then a 4.00 order drawn against it.
	txn, err = creditSvc.RecordDeposit(ctx, manager, customerID, 1000, "RCPT-2")
	require.NoError(t, err)
	assert.Equal(t, int64(1300), txn.BalanceAfter)

	txn, err = creditSvc.RecordUsage(ctx, manager, customerID, 400, "ORD-2")
	require.NoError(t, err)
	assert.Equal(t, int64(900), txn.BalanceAfter)

	// Admin corrects a 1.00 billing mistake downward.
	txn, err = creditSvc.RecordAdjustment(ctx, admin, customerID, -100, "billing correction for ORD-2")
	require.NoError(t, err)
	assert.Equal(t, int64(800), txn.BalanceAfter)

	// Snapshot, ledger sum and the last balance_after all agree.
	assert.Equal(t, int64(800), storedBalance(t, db, customerID))
	assert.Equal(t, int64(800), ledgerSum(t, db, customerID))

	acct, history, _, err := creditSvc.GetCustomerLedger(ctx, admin, customerID)
	require.NoError(t, err)
	assert.Equal(t, int64(800), acct.BalanceCents)
	assert.Len(t, history, 5)
	assert.Equal(t, int64(5), acct.Version)
}

func TestCreditLedger_ConcurrentWritersLoseNoUpdates(t *testing.T) {
	db := prepareDB(t)
	defer db.Close()
	cleanTables(t, db)

	store := postgres.NewStore(db)
	creditSvc := service.NewCreditService(store.CreditRepository, store.CustomerRepository, 10, 5*time.Millisecond)
	ctx := context.Background()

	customerID := seedCustomer(t, db, "Zara", "zara@example.com", nil)
	admin := domain.Actor{UserID: seedStaff(t, db, "Asha", "asha@example.com", "pw", domain.RoleAdmin, nil), Name: "Asha", Role: domain.RoleAdmin}

	const writers = 8
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := creditSvc.RecordCredit(ctx, admin, customerID, 100, "concurrent writer", "")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	// Every delta landed exactly once and the snapshot saw all of them.
	assert.Equal(t, int64(writers*100), storedBalance(t, db, customerID))
	assert.Equal(t, int64(writers*100), ledgerSum(t, db, customerID))

	// Each committed transaction sits on a distinct previous balance, so the
	// balance_after values are a permutation of 100, 200, ... writers*100.
	rows, err := db.Query(`SELECT balance_after_cents FROM credit_transactions WHERE customer_id = $1 ORDER BY balance_after_cents`, customerID)
	require.NoError(t, err)
	defer rows.Close()
	var i int64
	for rows.Next() {
		i++
		var after int64
		require.NoError(t, rows.Scan(&after))
		assert.Equal(t, i*100, after)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, int64(writers), i)

	var version int64
	require.NoError(t, db.QueryRow(`SELECT version FROM credit_accounts WHERE customer_id = $1`, customerID).Scan(&version))
	assert.Equal(t, int64(writers), version)
}

func TestCreditLedger_FranchiseScoping(t *testing.T) {
	db := prepareDB(t)
	defer db.Close()
	cleanTables(t, db)

	store := postgres.NewStore(db)
	creditSvc := service.NewCreditService(store.CreditRepository, store.CustomerRepository, 5, 10*time.Millisecond)
	reportSvc := service.NewReportService(store.CreditRepository)
	ctx := context.Background()

	chennai := seedFranchise(t, db, "Chennai Central")
	mumbai := seedFranchise(t, db, "Mumbai West")
	chennaiCustomer := seedCustomer(t, db, "Rahul S", "rahul@example.com", &chennai)
	mumbaiCustomer := seedCustomer(t, db, "Zara", "zara@example.com", &mumbai)

	admin := domain.Actor{UserID: seedStaff(t, db, "Asha", "asha@example.com", "pw", domain.RoleAdmin, nil), Name: "Asha", Role: domain.RoleAdmin}
	chennaiManager := domain.Actor{UserID: seedStaff(t, db, "Vik", "vik@example.com", "pw", domain.RoleFranchiseManager, &chennai), Name: "Vik", Role: domain.RoleFranchiseManager, FranchiseID: &chennai}

	_, err := creditSvc.RecordCredit(ctx, admin, chennaiCustomer, 500, "order", "ORD-1")
	require.NoError(t, err)
	_, err = creditSvc.RecordCredit(ctx, admin, mumbaiCustomer, 900, "order", "ORD-2")
	require.NoError(t, err)

	// A franchise manager's outstanding report only covers their own stores.
	report, err := reportSvc.Outstanding(ctx, chennaiManager)
	require.NoError(t, err)
	assert.Equal(t, int64(500), report.TotalOutstanding)
	require.Len(t, report.Customers, 1)
	assert.Equal(t, chennaiCustomer, report.Customers[0].CustomerID)

	// Admin sees the whole chain.
	report, err = reportSvc.Outstanding(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, int64(1400), report.TotalOutstanding)

	// Another franchise's customer reads as missing, not as forbidden.
	_, _, _, err = creditSvc.GetCustomerLedger(ctx, chennaiManager, mumbaiCustomer)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreditLedger_ReconciliationFindsNoDrift(t *testing.T) {
	db := prepareDB(t)
	defer db.Close()
	cleanTables(t, db)

	store := postgres.NewStore(db)
	creditSvc := service.NewCreditService(store.CreditRepository, store.CustomerRepository, 5, 10*time.Millisecond)
	ctx := context.Background()

	customerID := seedCustomer(t, db, "Rahul S", "rahul@example.com", nil)
	admin := domain.Actor{UserID: seedStaff(t, db, "Asha", "asha@example.com", "pw", domain.RoleAdmin, nil), Name: "Asha", Role: domain.RoleAdmin}

	_, err := creditSvc.RecordCredit(ctx, admin, customerID, 700, "order", "")
	require.NoError(t, err)
	_, err = creditSvc.RecordPayment(ctx, admin, customerID, 300, "upi", "", "")
	require.NoError(t, err)

	devs, err := store.CreditRepository.BalanceDeviations(ctx)
	require.NoError(t, err)
	assert.Empty(t, devs)

	// Simulate drift by corrupting the snapshot directly.
	_, err = db.Exec(`UPDATE credit_accounts SET balance_cents = balance_cents + 1 WHERE customer_id = $1`, customerID)
	require.NoError(t, err)

	devs, err = store.CreditRepository.BalanceDeviations(ctx)
	require.NoError(t, err)
	require.Len(t, devs, 1)
	assert.Equal(t, customerID, devs[0].CustomerID)
	assert.Equal(t, int64(401), devs[0].BalanceCents)
	assert.Equal(t, int64(400), devs[0].LedgerSumCents)
}
