package api

import (
	"context" // Request-scoped contexts

	"finance_tracker/internal/domain" // Importing domain models
	"finance_tracker/internal/ledger" // Ingestion and aggregation
)

// Ledger is what the handlers need from the ledger service
type Ledger interface {
	Record(ctx context.Context, sub ledger.Submission) (*domain.Transaction, error)
	Dashboard(ctx context.Context) (*ledger.Summary, error)
	Recent(ctx context.Context, n int) ([]domain.Transaction, error)
	List(ctx context.Context, q ledger.ListQuery) ([]domain.Transaction, error)
	Ping(ctx context.Context) error
}
