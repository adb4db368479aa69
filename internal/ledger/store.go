package ledger

import (
	"context" // Context for database calls
	"sort"    // Category ordering
	"strings" // Search term handling
	"time"    // Time windows

	"finance_tracker/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// UncategorizedLabel names the bucket for rows stored without a category.
const UncategorizedLabel = "Uncategorized"

// Filter narrows SumAmount. Nil fields do not filter.
type Filter struct {
	Income *bool      // Only income or only expense rows
	Since  *time.Time // Rows at or after this instant
}

// ListFilter narrows List. Zero fields do not filter.
type ListFilter struct {
	Month  *time.Time // Any instant in the wanted UTC calendar month
	Search string     // Case-insensitive substring of description or category
	Limit  int        // Maximum rows, non-positive returns none
}

// CategoryTotal is the signed sum of one category's rows.
type CategoryTotal struct {
	Category    string `json:"category"`     // Category label
	TotalCents  int64  `json:"total_cents"`  // Signed sum
	Count       int64  `json:"count"`        // Number of rows
	IncomeCents int64  `json:"income_cents"` // Part of the sum flagged as income
}

// likeEscaper escapes LIKE wildcards with '!', which SQLite and MySQL both accept.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// Store is the ledger table behind GORM.
type Store struct {
	db *gorm.DB // Database connection
}

// NewStore wraps an open, migrated database.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Insert appends tx, filling the id and, when zero, the timestamp.
func (s *Store) Insert(ctx context.Context, tx *domain.Transaction) error {
	if tx.Timestamp.IsZero() {
		tx.Timestamp = time.Now().UTC() // Default to creation time
	} else {
		tx.Timestamp = tx.Timestamp.UTC() // Stored timestamps compare as UTC strings
	}
	return storageErr("insert", s.db.WithContext(ctx).Create(tx).Error)
}

// SumAmount totals amount_cents over the matching rows; no rows yields 0.
func (s *Store) SumAmount(ctx context.Context, f Filter) (int64, error) {
	q := s.db.WithContext(ctx).Model(&domain.Transaction{})
	if f.Income != nil {
		q = q.Where("is_income = ?", *f.Income)
	}
	if f.Since != nil {
		q = q.Where("timestamp >= ?", f.Since.UTC())
	}
	var total int64
	if err := q.Select("COALESCE(SUM(amount_cents), 0)").Scan(&total).Error; err != nil {
		return 0, storageErr("sum", err)
	}
	return total, nil
}

// Recent returns the n newest rows; equal timestamps fall back to the newer id.
func (s *Store) Recent(ctx context.Context, n int) ([]domain.Transaction, error) {
	return s.List(ctx, ListFilter{Limit: n})
}

// List returns the newest rows matching f, in the same order as Recent.
func (s *Store) List(ctx context.Context, f ListFilter) ([]domain.Transaction, error) {
	txs := make([]domain.Transaction, 0)
	if f.Limit <= 0 {
		return txs, nil
	}
	q := s.db.WithContext(ctx)
	if f.Month != nil {
		start := MonthStart(*f.Month)
		q = q.Where("timestamp >= ? AND timestamp < ?", start, start.AddDate(0, 1, 0))
	}
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		pattern := "%" + likeEscaper.Replace(term) + "%"
		q = q.Where("(LOWER(description) LIKE ? ESCAPE '!' OR LOWER(COALESCE(category, '')) LIKE ? ESCAPE '!')",
			pattern, pattern)
	}
	err := q.Order("timestamp desc").
		Order("id desc").
		Limit(f.Limit).
		Find(&txs).Error
	if err != nil {
		return nil, storageErr("list", err)
	}
	return txs, nil
}

// CategoryTotals groups rows at or after since by category, largest magnitude first.
func (s *Store) CategoryTotals(ctx context.Context, since time.Time) ([]CategoryTotal, error) {
	var rows []struct {
		Category    *string
		TotalCents  int64
		TxCount     int64
		IncomeCents int64
	}
	err := s.db.WithContext(ctx).Model(&domain.Transaction{}).
		Select("category, COALESCE(SUM(amount_cents), 0) AS total_cents, COUNT(*) AS tx_count, "+
			"COALESCE(SUM(CASE WHEN is_income THEN amount_cents ELSE 0 END), 0) AS income_cents").
		Where("timestamp >= ?", since.UTC()).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, storageErr("category totals", err)
	}

	out := make([]CategoryTotal, 0, len(rows))
	merged := make(map[string]int) // Label to index in out
	for _, r := range rows {
		label := UncategorizedLabel
		if r.Category != nil {
			label = *r.Category
		}
		// an explicit "Uncategorized" category folds into the NULL bucket
		if i, ok := merged[label]; ok {
			out[i].TotalCents += r.TotalCents
			out[i].Count += r.TxCount
			out[i].IncomeCents += r.IncomeCents
			continue
		}
		merged[label] = len(out)
		out = append(out, CategoryTotal{
			Category:    label,
			TotalCents:  r.TotalCents,
			Count:       r.TxCount,
			IncomeCents: r.IncomeCents,
		})
	}
	sortCategoryTotals(out)
	return out, nil
}

// Count returns the number of stored rows.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&domain.Transaction{}).Count(&n).Error; err != nil {
		return 0, storageErr("count", err)
	}
	return n, nil
}

// Ping checks that the database answers.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return storageErr("ping", err)
	}
	return storageErr("ping", sqlDB.PingContext(ctx))
}

func sortCategoryTotals(totals []CategoryTotal) {
	sort.SliceStable(totals, func(i, j int) bool {
		ai, aj := absInt(totals[i].TotalCents), absInt(totals[j].TotalCents)
		if ai != aj {
			return ai > aj
		}
		return totals[i].Category < totals[j].Category
	})
}

func absInt(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
