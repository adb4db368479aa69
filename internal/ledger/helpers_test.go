package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"finance_tracker/internal/cache"
	"finance_tracker/internal/db"
	"finance_tracker/internal/domain"

	"github.com/stretchr/testify/require"
)

// fixedNow sits mid-month so month windows are easy to reason about.
var fixedNow = time.Date(2026, time.October, 19, 15, 30, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	gdb, err := db.OpenSQLite(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewStore(gdb)
}

func newTestService(t *testing.T, c *cache.Cache) (*Service, *Store) {
	t.Helper()
	store := newTestStore(t)
	return NewService(store, c).WithClock(func() time.Time { return fixedNow }), store
}

func insert(t *testing.T, s *Store, ts time.Time, cents int64, income bool, category string) *domain.Transaction {
	t.Helper()
	tx := &domain.Transaction{
		Timestamp:   ts,
		Description: "row",
		AmountCents: cents,
		IsIncome:    income,
	}
	if category != "" {
		tx.Category = &category
	}
	require.NoError(t, s.Insert(context.Background(), tx))
	return tx
}
