package middlewares

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/warbler/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestTxMiddleware_CommitOnRedirect(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		assert.NotNil(t, GetTxFromContext(r.Context()))
		http.Redirect(w, r, "/users/1/following", http.StatusFound)
	})

	rr := httptest.NewRecorder()
	TxMiddleware(db)(next).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.True(t, nextCalled)
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxMiddleware_RollbackOnErrorStatus(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	rr := httptest.NewRecorder()
	TxMiddleware(db)(next).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxMiddleware_BeginError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin().WillReturnError(sql.ErrConnDone)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next must not be called")
	})

	rr := httptest.NewRecorder()
	TxMiddleware(db)(next).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxMiddleware_CommitError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(sql.ErrConnDone)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	rr := httptest.NewRecorder()
	TxMiddleware(db)(next).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxMiddleware_CommitErrorAfterRedirect(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(sql.ErrConnDone)

	hookCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		repositories.AfterCommit(r.Context(), func() { hookCalled = true })
		http.SetCookie(w, &http.Cookie{Name: "warbler_session", Value: "TOKEN"})
		http.Redirect(w, r, "/", http.StatusFound)
	})

	rr := httptest.NewRecorder()
	TxMiddleware(db)(next).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/signup", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Empty(t, rr.Header().Get("Location"))
	assert.Empty(t, rr.Header().Values("Set-Cookie"))
	assert.False(t, hookCalled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxMiddleware_ResponseAndHooksAfterCommit(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	var events []string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		repositories.AfterCommit(r.Context(), func() {
			events = append(events, "hook")
			assert.NoError(t, mock.ExpectationsWereMet())
		})
		http.SetCookie(w, &http.Cookie{Name: "warbler_session", Value: "TOKEN"})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
		events = append(events, "handler")
	})

	rr := httptest.NewRecorder()
	TxMiddleware(db)(next).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, []string{"handler", "hook"}, events)
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Set-Cookie"), "warbler_session=TOKEN")
	assert.Equal(t, `{"ok":true}`, rr.Body.String())
}

func TestTxMiddleware_RollbackSkipsHooks(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	hookCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		repositories.AfterCommit(r.Context(), func() { hookCalled = true })
		w.WriteHeader(http.StatusBadRequest)
	})

	rr := httptest.NewRecorder()
	TxMiddleware(db)(next).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.False(t, hookCalled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxMiddleware_Panic(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("test panic")
	})

	rr := httptest.NewRecorder()
	assert.Panics(t, func() {
		TxMiddleware(db)(next).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
