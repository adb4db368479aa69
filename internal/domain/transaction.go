package domain

import "time" // Timestamps for ledger rows

// Kind values accepted on a submission
const (
	KindIncome  = "income"  // Money coming in
	KindExpense = "expense" // Money going out
)

// Transaction Model
type Transaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`                 // Primary key, assigned on insert
	Timestamp   time.Time `gorm:"not null;index" json:"timestamp"`      // When the entry was recorded (UTC)
	Description string    `gorm:"size:255;not null" json:"description"` // Display text, never blank
	Category    *string   `gorm:"size:64;index" json:"category"`        // Optional label, NULL when absent
	AmountCents int64     `gorm:"not null" json:"amount_cents"`         // Signed minor units
	IsIncome    bool      `gorm:"not null;index" json:"is_income"`      // Stored independently of the sign
}

// TableName pins the table name used by the ledger queries
func (Transaction) TableName() string {
	return "transactions"
}

// CategoryLabel returns the category or the fallback when none was recorded
func (t Transaction) CategoryLabel(fallback string) string {
	if t.Category == nil {
		return fallback
	}
	return *t.Category
}
