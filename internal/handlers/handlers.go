package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/sbilibin2017/warbler/internal/logger"
	"github.com/sbilibin2017/warbler/internal/middlewares"
)

var validate = validator.New()

// ErrorResponse represents an error answer of any handler
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// default: Internal server error
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Errorw("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func internalError(w http.ResponseWriter, r *http.Request, err error) {
	logger.Log.Errorw("internal server error",
		"err", err,
		"request_id", middlewares.RequestIDFromContext(r.Context()),
		"uri", r.RequestURI,
	)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

// idParam reads a positive integer path parameter.
func idParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// currentUser returns the authenticated user id or answers 401.
func currentUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := middlewares.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access unauthorized.")
	}
	return id, ok
}

// validationMessage renders the first failed field of a validator error.
func validationMessage(err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		return "invalid field " + fe.Field() + ": " + fe.Tag()
	}
	return "invalid request"
}
