package middlewares

import (
	"bytes"
	"context"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/warbler/internal/logger"
	"github.com/sbilibin2017/warbler/internal/repositories"
)

// TxMiddleware runs the handler inside a database transaction.
// The transaction commits when the handler answers below 400 and rolls back otherwise.
// The response is held back until the commit succeeds; a failed commit
// answers 500 instead. Callbacks registered with repositories.AfterCommit
// run only after a successful commit.
func TxMiddleware(db *sqlx.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tx, err := db.BeginTxx(r.Context(), nil)
			if err != nil {
				logger.Log.Errorw("failed to begin transaction", "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			defer func() {
				if rec := recover(); rec != nil {
					_ = tx.Rollback()
					panic(rec)
				}
			}()

			ctx, runHooks := repositories.WithCommitHooks(setTxToContext(r.Context(), tx))

			bw := newBufferedWriter()
			next.ServeHTTP(bw, r.WithContext(ctx))

			if bw.status() >= http.StatusBadRequest {
				if err := tx.Rollback(); err != nil {
					logger.Log.Errorw("failed to rollback transaction", "error", err)
				}
				bw.flushTo(w)
				return
			}

			if err := tx.Commit(); err != nil {
				logger.Log.Errorw("failed to commit transaction",
					"error", err,
					"request_id", RequestIDFromContext(r.Context()),
					"uri", r.RequestURI,
				)
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			bw.flushTo(w)
			runHooks()
		})
	}
}

// bufferedWriter keeps status, headers and body until the transaction outcome is known.
type bufferedWriter struct {
	header     http.Header
	body       bytes.Buffer
	statusCode int
}

func newBufferedWriter() *bufferedWriter {
	return &bufferedWriter{header: make(http.Header)}
}

func (bw *bufferedWriter) Header() http.Header {
	return bw.header
}

func (bw *bufferedWriter) WriteHeader(code int) {
	if bw.statusCode == 0 {
		bw.statusCode = code
	}
}

func (bw *bufferedWriter) Write(b []byte) (int, error) {
	if bw.statusCode == 0 {
		bw.statusCode = http.StatusOK
	}
	return bw.body.Write(b)
}

func (bw *bufferedWriter) status() int {
	if bw.statusCode == 0 {
		return http.StatusOK
	}
	return bw.statusCode
}

func (bw *bufferedWriter) flushTo(w http.ResponseWriter) {
	for k, v := range bw.header {
		w.Header()[k] = v
	}
	w.WriteHeader(bw.status())
	if bw.body.Len() > 0 {
		if _, err := w.Write(bw.body.Bytes()); err != nil {
			logger.Log.Errorw("failed to write response", "error", err)
		}
	}
}

// contextKey is an unexported type for keys in context
type contextKey struct{}

var txKey = contextKey{}

// setTxToContext stores a transaction in the context
func setTxToContext(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// GetTxFromContext retrieves the transaction from the context. Returns nil if not present.
func GetTxFromContext(ctx context.Context) *sqlx.Tx {
	tx, _ := ctx.Value(txKey).(*sqlx.Tx)
	return tx
}
