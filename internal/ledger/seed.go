package ledger

import (
	"context" // Context for database calls
	"fmt"     // Error wrapping
	"time"    // Row spacing

	"finance_tracker/internal/domain" // Importing domain models
	"finance_tracker/internal/money"  // Amount parsing

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

type demoRow struct {
	description string // Display text
	category    string // Category label
	amount      string // Signed decimal amount, as a user would type it
	income      bool   // Income or expense
}

var demoRows = []demoRow{
	{"Salary", "Income", "2500.00", true},
	{"Groceries", "Food", "-120.50", false},
	{"Internet", "Utilities", "-45.00", false},
	{"Gas", "Transport", "-60.00", false},
}

// SeedDemo inserts a few sample rows when the ledger is empty.
// It reports whether anything was written.
func (s *Service) SeedDemo(ctx context.Context) (bool, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		logrus.WithField("rows", n).Info("Ledger already has transactions, skipping seed")
		return false, nil
	}

	now := s.now().UTC()
	for i, r := range demoRows {
		cents, err := demoCents(r.amount)
		if err != nil {
			return false, fmt.Errorf("demo row %q: %w", r.description, err)
		}
		category := r.category
		tx := &domain.Transaction{
			// one second apart so the recent list keeps the seed order
			Timestamp:   now.Add(time.Duration(i) * time.Second),
			Description: r.description,
			Category:    &category,
			AmountCents: cents,
			IsIncome:    r.income,
		}
		if err := s.store.Insert(ctx, tx); err != nil {
			return false, err
		}
	}
	s.invalidate(ctx, MonthStart(now))
	logrus.WithField("rows", len(demoRows)).Info("Seeded demo data")
	return true, nil
}

func demoCents(amount string) (int64, error) {
	d, err := money.Parse(amount)
	if err != nil {
		return 0, err
	}
	return money.ToCents(d)
}
