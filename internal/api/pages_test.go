package api

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardEmpty(t *testing.T) {
	r, _ := newTestApp(t)

	w := get(r, "/")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "$0.00")
	assert.Contains(t, body, "No transactions yet")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestNewTransactionForm(t *testing.T) {
	r, _ := newTestApp(t)

	w := get(r, "/transactions/new")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	for _, field := range []string{`name="description"`, `name="category"`, `name="amount"`, `name="kind"`, `name="date"`} {
		assert.Contains(t, body, field)
	}
}

func TestCreateTransactionRedirectsToDashboard(t *testing.T) {
	r, store := newTestApp(t)

	w := postForm(r, "/transactions/new", url.Values{
		"description": {"Groceries"},
		"category":    {"Food"},
		"amount":      {"1234.56"},
		"kind":        {"expense"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	flash := flashCookieFrom(t, w)

	rows, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(-123456), rows[0].AmountCents)

	w = get(r, "/", flash)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Transaction added")
	assert.Contains(t, body, "Groceries")
	assert.Contains(t, body, "-$1,234.56") // row amount
	assert.Contains(t, body, "$1,234.56")  // month expenses shown as magnitude
	assert.Contains(t, body, "Food")

	// the notice is shown once
	cleared := false
	for _, c := range w.Result().Cookies() {
		if c.Name == flashCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestCreateTransactionInvalidAmount(t *testing.T) {
	r, store := newTestApp(t)

	w := postForm(r, "/transactions/new", url.Values{"description": {"x"}, "amount": {"abc"}, "kind": {"expense"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/transactions/new", w.Header().Get("Location"))

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	w = get(r, "/transactions/new", flashCookieFrom(t, w))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid amount")
	assert.Contains(t, w.Body.String(), "flash-error")
}

func TestCreateTransactionStorageFailure(t *testing.T) {
	r := newFailingApp(t)

	w := postForm(r, "/transactions/new", url.Values{"amount": {"5"}})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "unavailable")
	assert.NotContains(t, w.Body.String(), "disk I/O")

	w = get(r, "/")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestStaticAssets(t *testing.T) {
	r, _ := newTestApp(t)

	w := get(r, "/static/style.css")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "--income")
}

func TestHealth(t *testing.T) {
	r, _ := newTestApp(t)
	w := get(r, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = get(newFailingApp(t), "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
