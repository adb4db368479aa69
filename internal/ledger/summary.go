package ledger

import (
	"context" // Context for database and cache calls
	"fmt"     // Cache key formatting
	"time"    // Month boundaries

	"finance_tracker/internal/domain" // Importing domain models
	"finance_tracker/internal/money"  // Currency formatting

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Summary is the dashboard view model.
type Summary struct {
	MonthStart        time.Time            `json:"month_start"`         // First instant of the month, UTC
	MonthIncomeCents  int64                `json:"month_income_cents"`  // Income this month
	MonthExpenseCents int64                `json:"month_expense_cents"` // Expenses this month, not positive
	TotalBalanceCents int64                `json:"total_balance_cents"` // Sum of every row
	Income            string               `json:"income"`              // Formatted income
	Expenses          string               `json:"expenses"`            // Formatted magnitude of expenses
	Balance           string               `json:"balance"`             // Formatted balance
	Recent            []domain.Transaction `json:"recent"`              // Newest rows
	Categories        []CategoryTotal      `json:"categories"`          // This month by category
}

// MonthStart is the first instant of t's calendar month in UTC.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// generationKey counts the writes that touched a month's summary.
func generationKey(monthStart time.Time) string {
	return "dashboard:summary:" + monthStart.Format(monthLayout) + ":gen"
}

func summaryKey(monthStart time.Time, gen int64) string {
	return fmt.Sprintf("dashboard:summary:%s:%d", monthStart.Format(monthLayout), gen)
}

// currentSummaryKey names the summary for the month's current generation.
// A summary computed before a write is stored under the old generation and never read again.
// ok is false when the cache is off or unreadable.
func (s *Service) currentSummaryKey(ctx context.Context, monthStart time.Time) (key string, ok bool) {
	if !s.cache.Enabled() {
		return "", false
	}
	var gen int64
	if _, err := s.cache.Get(ctx, generationKey(monthStart), &gen); err != nil {
		logrus.WithFields(logrus.Fields{"key": generationKey(monthStart), "error": err.Error()}).Warn("Summary cache read failed")
		return "", false
	}
	return summaryKey(monthStart, gen), true
}

// Dashboard computes this month's income and expenses, the all-time balance,
// the latest transactions and the month's category breakdown.
func (s *Service) Dashboard(ctx context.Context) (*Summary, error) {
	monthStart := MonthStart(s.now())
	key, cacheable := s.currentSummaryKey(ctx, monthStart)

	if cacheable {
		var cached Summary
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Summary cache read failed")
		} else if found {
			return &cached, nil
		}
	}

	income, expense := true, false
	monthIncome, err := s.store.SumAmount(ctx, Filter{Income: &income, Since: &monthStart})
	if err != nil {
		return nil, err
	}
	monthExpense, err := s.store.SumAmount(ctx, Filter{Income: &expense, Since: &monthStart})
	if err != nil {
		return nil, err
	}
	balance, err := s.store.SumAmount(ctx, Filter{})
	if err != nil {
		return nil, err
	}
	recent, err := s.store.Recent(ctx, RecentLimit)
	if err != nil {
		return nil, err
	}
	categories, err := s.store.CategoryTotals(ctx, monthStart)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		MonthStart:        monthStart,
		MonthIncomeCents:  monthIncome,
		MonthExpenseCents: monthExpense,
		TotalBalanceCents: balance,
		Income:            money.Format(monthIncome),
		Expenses:          money.FormatAbs(monthExpense),
		Balance:           money.Format(balance),
		Recent:            recent,
		Categories:        categories,
	}
	if cacheable {
		if err := s.cache.Set(ctx, key, summary); err != nil {
			logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Summary cache write failed")
		}
	}
	return summary, nil
}

// invalidate starts a new generation for the month and drops the previous summary.
func (s *Service) invalidate(ctx context.Context, monthStart time.Time) {
	if !s.cache.Enabled() {
		return
	}
	gen, err := s.cache.Incr(ctx, generationKey(monthStart))
	if err != nil {
		logrus.WithFields(logrus.Fields{"key": generationKey(monthStart), "error": err.Error()}).Warn("Summary cache invalidation failed")
		return
	}
	key := summaryKey(monthStart, gen-1)
	if err := s.cache.Delete(ctx, key); err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Summary cache invalidation failed")
	}
}
