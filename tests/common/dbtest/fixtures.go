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
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TestPassword is the plain text behind the hash every fixture user gets.
const TestPassword = "password123"

const testPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	phone := fmt.Sprintf("+90%010d", uint64(userID.ID())%10_000_000_000)

	ctx := context.Background()
	tag, err := db.Exec(ctx, `INSERT INTO users (id, email, phone, full_name, password_hash, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, true) ON CONFLICT (email) DO NOTHING`,
		userID, email, phone, "Test User", testPasswordHash, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		err = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
		require.NoError(t, err)
	}

	return userID
}

// AgeUser moves the account creation time back, for the new-account risk rule.
func AgeUser(t *testing.T, db DBLike, userID uuid.UUID, age time.Duration) {
	t.Helper()
	_, err := db.Exec(context.Background(),
		"UPDATE users SET created_at = now() - make_interval(secs => $2) WHERE id = $1", userID, age.Seconds())
	require.NoError(t, err)
}

// CreateTestVehicle inserts a vehicle with the given id so scenarios can refer to fixed ids.
func CreateTestVehicle(t *testing.T, db DBLike, id, dailyPrice int64, status string) int64 {
	t.Helper()

	_, err := db.Exec(context.Background(), `INSERT INTO vehicles (id, plate, brand, model, daily_price, deposit_amount, status)
		VALUES ($1, $2, 'Test', 'Car', $3, $4, $5)`,
		id, fmt.Sprintf("34 TST %03d", id), dailyPrice, dailyPrice/2, status)
	require.NoError(t, err)
	return id
}

func VehicleStatus(t *testing.T, db DBLike, id int64) string {
	t.Helper()
	var status string
	err := db.QueryRow(context.Background(), "SELECT status FROM vehicles WHERE id = $1", id).Scan(&status)
	require.NoError(t, err)
	return status
}

// CountRows counts rows of table matching where. Only used with fixed table names.
func CountRows(t *testing.T, db DBLike, table, where string, args ...any) int {
	t.Helper()
	query := "SELECT COUNT(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}
	var n int
	err := db.QueryRow(context.Background(), query, args...).Scan(&n)
	require.NoError(t, err)
	return n
}

// CreateConfirmedReservation inserts a confirmed reservation with its captured charge.
func CreateConfirmedReservation(t *testing.T, db DBLike, userID uuid.UUID, vehicleID, amount int64, transactionID string) int64 {
	t.Helper()

	ctx := context.Background()
	pickup := time.Now().Add(48 * time.Hour).Truncate(time.Hour)
	var id int64
	err := db.QueryRow(ctx, `INSERT INTO reservations
		(user_id, vehicle_id, pickup_date, return_date, pickup_location, return_location,
		 base_price, discount, total_price, deposit_amount, total_days, total_hours, status)
		VALUES ($1, $2, $3, $4, 'Airport', 'Airport', $5, 0, $5, 0, 3, 72, 'confirmed')
		RETURNING id`,
		userID, vehicleID, pickup, pickup.Add(72*time.Hour), amount).Scan(&id)
	require.NoError(t, err)

	_, err = db.Exec(ctx, `INSERT INTO payments
		(reservation_id, amount, payment_type, payment_method, status, transaction_id, is_successful, paid_at)
		VALUES ($1, $2, 'reservation', 'credit_card', 'completed', $3, true, now())`,
		id, amount, transactionID)
	require.NoError(t, err)

	_, err = db.Exec(ctx, "UPDATE vehicles SET status = 'rented' WHERE id = $1", vehicleID)
	require.NoError(t, err)
	return id
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// ResetDB truncates every table and restarts identities.
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
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
