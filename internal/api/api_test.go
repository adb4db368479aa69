package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"finance_tracker/internal/config"
	"finance_tracker/internal/db"
	"finance_tracker/internal/domain"
	"finance_tracker/internal/ledger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{CORSOrigins: []string{"http://localhost:8000"}}
}

func newTestApp(t *testing.T) (*gin.Engine, *ledger.Store) {
	t.Helper()
	gdb, err := db.OpenSQLite(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	store := ledger.NewStore(gdb)
	r, err := NewRouter(ledger.NewService(store, nil), testConfig())
	require.NoError(t, err)
	return r, store
}

// failingLedger behaves like a ledger whose database is down.
type failingLedger struct{ err error }

func (f failingLedger) Record(context.Context, ledger.Submission) (*domain.Transaction, error) {
	return nil, f.err
}
func (f failingLedger) Dashboard(context.Context) (*ledger.Summary, error) { return nil, f.err }
func (f failingLedger) Recent(context.Context, int) ([]domain.Transaction, error) {
	return nil, f.err
}
func (f failingLedger) List(context.Context, ledger.ListQuery) ([]domain.Transaction, error) {
	return nil, f.err
}
func (f failingLedger) Ping(context.Context) error { return f.err }

func newFailingApp(t *testing.T) *gin.Engine {
	t.Helper()
	err := &ledger.StorageError{Op: "insert", Err: errors.New("disk I/O error")}
	r, rerr := NewRouter(failingLedger{err: err}, testConfig())
	require.NoError(t, rerr)
	return r
}

func postForm(r http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func flashCookieFrom(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == flashCookie {
			return c
		}
	}
	t.Fatalf("no flash cookie in response")
	return nil
}
