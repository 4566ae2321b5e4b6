package integration

import (
	"database/sql"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Kavin001K/fabzclean-backend/internal/config"
	"github.com/Kavin001K/fabzclean-backend/internal/domain"

	_ "github.com/lib/pq"
)

var configPath string

func init() {
	flag.StringVar(&configPath, "config", "../../config/config.test.yaml", "path to config file")
}

func prepareDB(t *testing.T) *sql.DB {
	// Ensure flags are parsed
	if !flag.Parsed() {
		flag.Parse()
	}

	// Logic to handle running from root vs package dir
	finalPath := configPath
	if _, err := os.Stat(finalPath); os.IsNotExist(err) {
		altPath := filepath.Join("..", "..", configPath)
		if _, err := os.Stat(altPath); err == nil {
			finalPath = altPath
		}
	}

	cfg, err := config.Load(finalPath)
	if err != nil {
		t.Fatalf("failed to load config from %s: %v", finalPath, err)
	}

	var db *sql.DB

	// Retry connection as DB might still be starting up
	for i := 0; i < 10; i++ {
		db, err = sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err == nil {
			err = db.Ping()
			if err == nil {
				applySchema(t, db)
				return db
			}
		}
		time.Sleep(2 * time.Second)
	}
	t.Fatalf("failed to connect to database: %v", err)
	return nil
}

func applySchema(t *testing.T, db *sql.DB) {
	t.Helper()
	schemaPath := filepath.Join("..", "..", "db", "schema.sql")
	schema, err := os.ReadFile(schemaPath)
	if err != nil {
		t.Fatalf("failed to read schema: %v", err)
	}
	if _, err := db.Exec(string(schema)); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}
}

func cleanTables(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec(`TRUNCATE credit_transactions, credit_accounts, idempotency_keys, customers, staff_users, franchises RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("failed to clean tables: %v", err)
	}
}

func seedFranchise(t *testing.T, db *sql.DB, name string) int32 {
	t.Helper()
	var id int32
	err := db.QueryRow(`INSERT INTO franchises (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed franchise: %v", err)
	}
	return id
}

func seedCustomer(t *testing.T, db *sql.DB, name, email string, franchiseID *int32) int32 {
	t.Helper()
	var id int32
	err := db.QueryRow(
		`INSERT INTO customers (name, email, franchise_id, is_active, created_at)
		 VALUES ($1, $2, $3, true, NOW()) RETURNING id`,
		name, email, franchiseID).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed customer: %v", err)
	}
	return id
}

func seedStaff(t *testing.T, db *sql.DB, name, email, password string, role domain.Role, franchiseID *int32) int32 {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	var id int32
	err = db.QueryRow(
		`INSERT INTO staff_users (name, email, password_hash, role, franchise_id, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5, true, NOW()) RETURNING id`,
		name, email, string(hash), string(role), franchiseID).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed staff user: %v", err)
	}
	return id
}

func ledgerSum(t *testing.T, db *sql.DB, customerID int32) int64 {
	t.Helper()
	var sum int64
	err := db.QueryRow(
		`SELECT COALESCE(SUM(signed_delta_cents), 0) FROM credit_transactions WHERE customer_id = $1`,
		customerID).Scan(&sum)
	if err != nil {
		t.Fatalf("failed to sum ledger: %v", err)
	}
	return sum
}

func storedBalance(t *testing.T, db *sql.DB, customerID int32) int64 {
	t.Helper()
	var balance int64
	err := db.QueryRow(
		`SELECT balance_cents FROM credit_accounts WHERE customer_id = $1`, customerID).Scan(&balance)
	if err != nil {
		t.Fatalf("failed to read stored balance: %v", err)
	}
	return balance
}
