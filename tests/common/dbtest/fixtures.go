//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// TestUserPassword is the plaintext password of every user created by
// CreateTestUser.
const TestUserPassword = "password123"

var (
	passwordHashOnce sync.Once
	passwordHash     string
)

// hashed once at MinCost; login round-trips through bcrypt either way and
// DefaultCost would dominate suite runtime.
func testPasswordHash(t *testing.T) string {
	t.Helper()

	passwordHashOnce.Do(func() {
		hashed, err := bcrypt.GenerateFromPassword([]byte(TestUserPassword), bcrypt.MinCost)
		if err != nil {
			panic("bcrypt hash for test fixtures failed: " + err.Error())
		}
		passwordHash = string(hashed)
	})
	return passwordHash
}

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO users (id, email, password_hash, role, is_active) VALUES ($1, $2, $3, $4, true) ON CONFLICT (email) DO NOTHING",
		userID, email, testPasswordHash(t), role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

func CreateTestPartner(t *testing.T, db DBLike, name string) uuid.UUID {
	t.Helper()

	partnerID := uuid.New()
	ctx := context.Background()

	// partner names are not unique at the schema level, so look up first
	var existing uuid.UUID
	err := db.QueryRow(ctx, "SELECT id FROM partners WHERE name = $1 LIMIT 1", name).Scan(&existing)
	if err == nil {
		return existing
	}

	_, err = db.Exec(ctx, "INSERT INTO partners (id, name) VALUES ($1, $2)", partnerID, name)
	require.NoError(t, err)

	return partnerID
}

func CreateTestLot(t *testing.T, db DBLike, name string, productID uuid.UUID) uuid.UUID {
	t.Helper()

	lotID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO lots (id, name, product_id, thickness_cm, height_m, width_m) VALUES ($1, $2, $3, 2.0, 3.0, 1.9) ON CONFLICT (name) DO NOTHING",
		lotID, name, productID)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM lots WHERE name = $1", name).Scan(&lotID)
	}

	return lotID
}

func CreateTestStockUnit(t *testing.T, db DBLike, lotID, productID, locationID uuid.UUID, quantity float64) uuid.UUID {
	t.Helper()

	unitID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO stock_units (id, product_id, location_id, lot_id, quantity) VALUES ($1, $2, $3, $4, $5)",
		unitID, productID, locationID, lotID, quantity)
	require.NoError(t, err)

	return unitID
}

func CreateTestSalesOrder(t *testing.T, db DBLike, reference string, customerID uuid.UUID) uuid.UUID {
	t.Helper()

	orderID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO sales_orders (id, reference, customer_id) VALUES ($1, $2, $3) ON CONFLICT (reference) DO NOTHING",
		orderID, reference, customerID)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM sales_orders WHERE reference = $1", reference).Scan(&orderID)
	}

	return orderID
}

func CreateTestOperation(t *testing.T, db DBLike, reference, kind string, partnerID, salesOrderID *uuid.UUID) uuid.UUID {
	t.Helper()

	operationID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO stock_operations (id, reference, kind, partner_id, sales_order_id, status) VALUES ($1, $2, $3, $4, $5, 'open') ON CONFLICT (reference) DO NOTHING",
		operationID, reference, kind, partnerID, salesOrderID)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM stock_operations WHERE reference = $1", reference).Scan(&operationID)
	}

	return operationID
}

func CreateTestBinding(t *testing.T, db DBLike, operationID, stockUnitID uuid.UUID, quantity float64, autoAssigned bool) uuid.UUID {
	t.Helper()

	bindingID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO unit_bindings (id, operation_id, stock_unit_id, quantity, auto_assigned) VALUES ($1, $2, $3, $4, $5)",
		bindingID, operationID, stockUnitID, quantity, autoAssigned)
	require.NoError(t, err)

	return bindingID
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	for _, name := range []string{"Default Partner", "Test Partner"} {
		_, err := pool.Exec(ctx, `
			INSERT INTO partners (id, name)
			SELECT gen_random_uuid(), $1
			WHERE NOT EXISTS (SELECT 1 FROM partners WHERE name = $1)`, name)
		if err != nil {
			return err
		}
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var tbl string
			if err := rows.Scan(&tbl); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, tbl)
		}
		if len(tables) == 0 {
			truncateSQL.Store("")
			return
		}
		truncateSQL.Store(fmt.Sprintf("TRUNCATE %s RESTART IDENTITY CASCADE", strings.Join(tables, ", ")))
	})

	stmt, _ := truncateSQL.Load().(string)
	if stmt == "" {
		return fmt.Errorf("failed to build truncate statement")
	}

	if _, err := pool.Exec(ctx, stmt); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
