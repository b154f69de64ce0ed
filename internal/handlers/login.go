package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/warbler/internal/jwt"
	"github.com/sbilibin2017/warbler/internal/services"
)

//go:generate mockgen -source=login.go -destination=mock_login.go -package=handlers

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// LoginForm represents the form body for user login
// swagger:model LoginForm
type LoginForm struct {
	// Username
	// required: true
	Username string `form:"username" validate:"required"`

	// Password
	// required: true
	Password string `form:"password" validate:"required"`
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticates the user, sets the session cookie and redirects home.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Success 302 "Redirect to /"
// @Failure 400 {object} handlers.ErrorResponse "Invalid form"
// @Failure 401 {object} handlers.ErrorResponse "Invalid credentials"
// @Router /login [post]
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "invalid form")
			return
		}

		form := LoginForm{
			Username: r.PostForm.Get("username"),
			Password: r.PostForm.Get("password"),
		}
		if err := validate.Struct(form); err != nil {
			writeError(w, http.StatusBadRequest, validationMessage(err))
			return
		}

		token, err := svc.Login(r.Context(), form.Username, form.Password)
		if err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				writeError(w, http.StatusUnauthorized, "Invalid credentials.")
				return
			}
			internalError(w, r, err)
			return
		}

		jwt.SetCookie(w, token)
		http.Redirect(w, r, "/", http.StatusFound)
	}
}

// NewLogoutHandler returns an HTTP handler that clears the session cookie.
// @Summary User logout
// @Tags auth
// @Success 302 "Redirect to /login"
// @Router /logout [post]
func NewLogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jwt.ClearCookie(w)
		http.Redirect(w, r, "/login", http.StatusFound)
	}
}
