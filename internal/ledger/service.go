package ledger

import (
	"context" // Context for database and cache calls
	"errors"  // Error inspection
	"strings" // Input trimming
	"time"    // Timestamps and clock

	"finance_tracker/internal/cache"  // Dashboard cache
	"finance_tracker/internal/domain" // Importing domain models
	"finance_tracker/internal/money"  // Amount parsing

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

const (
	// RecentLimit is how many rows the dashboard lists.
	RecentLimit = 10
	// DefaultDescription replaces a blank description.
	DefaultDescription = "Untitled"

	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// Submission is a raw, unvalidated entry as typed into the form.
type Submission struct {
	Description string // Blank becomes "Untitled"
	Category    string // Blank is stored as NULL
	Amount      string // Decimal text
	Kind        string // income or expense, blank is expense
	Date        string // Optional YYYY-MM-DD
}

// ListQuery is a raw list request: optional YYYY-MM month and search text.
type ListQuery struct {
	Month  string // YYYY-MM, blank for all months
	Search string // Matched against description and category
	Limit  int    // Maximum rows
}

// Service records submissions and builds the dashboard summary.
type Service struct {
	store *Store           // Ledger table
	cache *cache.Cache     // Optional summary cache
	now   func() time.Time // Clock, replaced in tests
}

// NewService builds the ledger service; c may be nil to run without a cache.
func NewService(store *Store, c *cache.Cache) *Service {
	return &Service{store: store, cache: c, now: time.Now}
}

// WithClock replaces the wall clock.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Record validates sub, normalizes it and appends it to the ledger.
// Rejected input returns a *ValidationError and writes nothing.
func (s *Service) Record(ctx context.Context, sub Submission) (*domain.Transaction, error) {
	now := s.now().UTC()
	tx, err := Normalize(sub, now)
	if err != nil {
		return nil, err
	}
	if err := s.store.Insert(ctx, tx); err != nil {
		logrus.WithFields(logrus.Fields{
			"description":  tx.Description,
			"amount_cents": tx.AmountCents,
			"is_income":    tx.IsIncome,
			"error":        err.Error(),
		}).Error("Failed to record transaction")
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"id":           tx.ID,
		"description":  tx.Description,
		"amount_cents": tx.AmountCents,
		"is_income":    tx.IsIncome,
		"timestamp":    tx.Timestamp.Format(time.RFC3339),
	}).Info("Transaction recorded")

	s.invalidate(ctx, MonthStart(now))
	return tx, nil
}

// Normalize turns a submission into a transaction without touching storage.
//
// Expense amounts are forced negative; income amounts are taken as entered,
// so a negative income stays negative. Cents are rounded half away from zero.
func Normalize(sub Submission, now time.Time) (*domain.Transaction, error) {
	amount, err := money.Parse(sub.Amount)
	if err != nil {
		return nil, &ValidationError{Field: "amount", Message: "Invalid amount"}
	}
	kind, err := parseKind(sub.Kind)
	if err != nil {
		return nil, err
	}
	if kind == domain.KindExpense && amount.IsPositive() {
		amount = amount.Neg()
	}
	cents, err := money.ToCents(amount)
	if err != nil {
		return nil, &ValidationError{Field: "amount", Message: "Invalid amount"}
	}

	ts, err := parseDate(sub.Date, now)
	if err != nil {
		return nil, err
	}

	description := strings.TrimSpace(sub.Description)
	if description == "" {
		description = DefaultDescription
	}
	var category *string
	if c := strings.TrimSpace(sub.Category); c != "" {
		category = &c
	}

	return &domain.Transaction{
		Timestamp:   ts,
		Description: description,
		Category:    category,
		AmountCents: cents,
		IsIncome:    kind == domain.KindIncome,
	}, nil
}

func parseKind(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", domain.KindExpense:
		return domain.KindExpense, nil
	case domain.KindIncome:
		return domain.KindIncome, nil
	}
	return "", &ValidationError{Field: "kind", Message: "Invalid kind"}
}

// parseDate maps an optional YYYY-MM-DD to a UTC timestamp. Blank or today means now.
func parseDate(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now, nil
	}
	d, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "date", Message: "Invalid date"}
	}
	if d.Format(dateLayout) == now.Format(dateLayout) {
		return now, nil
	}
	return d, nil
}

// Recent lists the n newest transactions.
func (s *Service) Recent(ctx context.Context, n int) ([]domain.Transaction, error) {
	return s.store.Recent(ctx, n)
}

// List returns the newest transactions of a month and/or matching a search.
// A malformed month is a *ValidationError.
func (s *Service) List(ctx context.Context, q ListQuery) ([]domain.Transaction, error) {
	month, err := ParseMonth(q.Month)
	if err != nil {
		return nil, err
	}
	return s.store.List(ctx, ListFilter{Month: month, Search: q.Search, Limit: q.Limit})
}

// ParseMonth reads an optional YYYY-MM as the first instant of that UTC month.
func ParseMonth(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	m, err := time.ParseInLocation(monthLayout, raw, time.UTC)
	if err != nil {
		return nil, &ValidationError{Field: "month", Message: "Invalid month"}
	}
	return &m, nil
}

// Ping reports whether the ledger database is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// IsValidation reports whether err is a rejected submission.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
