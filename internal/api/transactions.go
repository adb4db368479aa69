package api

import (
	"encoding/json" // Amount decoding
	"errors"        // Error inspection
	"net/http"      // HTTP status codes
	"strconv"       // String conversion

	"finance_tracker/internal/ledger" // Ingestion and aggregation

	"github.com/gin-gonic/gin" // Gin web framework
)

// Limits for GET /api/transactions
const (
	defaultListLimit = ledger.RecentLimit
	maxListLimit     = 100
)

// TransactionForm is the HTML entry form
type TransactionForm struct {
	Description string `form:"description"` // Display text
	Category    string `form:"category"`    // Optional label
	Amount      string `form:"amount"`      // Decimal text
	Kind        string `form:"kind"`        // income or expense
	Date        string `form:"date"`        // Optional YYYY-MM-DD
}

// TransactionRequest is the JSON body of POST /api/transactions
type TransactionRequest struct {
	Description string      `json:"description"` // Display text
	Category    string      `json:"category"`    // Optional label
	Amount      amountField `json:"amount"`      // 12.5 or "12.5"
	Kind        string      `json:"kind"`        // income or expense
	Date        string      `json:"date"`        // Optional YYYY-MM-DD
}

// amountField accepts a JSON number or a string and keeps the raw text
type amountField string

func (a *amountField) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*a = amountField(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*a = amountField(n.String())
	return nil
}

// NewTransactionFormHandler renders the empty entry form
func NewTransactionFormHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "new_transaction.html", gin.H{
			"Title": "New transaction", // Page title
			"Flash": popFlash(c),       // Validation notice after a redirect
		})
	}
}

// CreateTransactionHandler records a form submission and redirects
func CreateTransactionHandler(l Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form TransactionForm // Bind form fields to struct
		if err := c.ShouldBind(&form); err != nil {
			setFlash(c, FlashError, "Invalid request")
			c.Redirect(http.StatusFound, "/transactions/new")
			return
		}
		_, err := l.Record(c.Request.Context(), ledger.Submission{
			Description: form.Description,
			Category:    form.Category,
			Amount:      form.Amount,
			Kind:        form.Kind,
			Date:        form.Date,
		})
		if err != nil {
			// Rejected input goes back to the form with a notice
			if ledger.IsValidation(err) {
				setFlash(c, FlashError, err.Error())
				c.Redirect(http.StatusFound, "/transactions/new")
				return
			}
			renderError(c, err) // Storage failure
			return
		}
		setFlash(c, FlashSuccess, "Transaction added")
		c.Redirect(http.StatusFound, "/")
	}
}

// CreateTransactionJSONHandler records a JSON submission
func CreateTransactionJSONHandler(l Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TransactionRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		tx, err := l.Record(c.Request.Context(), ledger.Submission{
			Description: req.Description,
			Category:    req.Category,
			Amount:      string(req.Amount),
			Kind:        req.Kind,
			Date:        req.Date,
		})
		if err != nil {
			var ve *ledger.ValidationError
			if errors.As(err, &ve) {
				c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message, "field": ve.Field})
				return
			}
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record transaction"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"transaction": tx})
	}
}

// RecentJSONHandler lists the newest transactions.
// Query: limit=N (default 10, max 100), month=YYYY-MM, q=search text.
func RecentJSONHandler(l Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := defaultListLimit
		if raw := c.Query("limit"); raw != "" {
			// If valid, set limit within bounds
			if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= maxListLimit {
				limit = v
			}
		}
		month := c.Query("month") // Optional month filter
		search := c.Query("q")    // Optional search text
		txs, err := l.List(c.Request.Context(), ledger.ListQuery{Month: month, Search: search, Limit: limit})
		if err != nil {
			var ve *ledger.ValidationError
			if errors.As(err, &ve) {
				c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message, "field": ve.Field})
				return
			}
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"transactions": txs,    // Newest first
			"limit":        limit,  // Effective limit
			"month":        month,  // Month filter as given
			"q":            search, // Search text as given
		})
	}
}
