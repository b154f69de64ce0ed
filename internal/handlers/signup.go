package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/warbler/internal/jwt"
	"github.com/sbilibin2017/warbler/internal/models"
	"github.com/sbilibin2017/warbler/internal/services"
)

//go:generate mockgen -source=signup.go -destination=mock_signup.go -package=handlers

// Signuper defines the interface that the signup service must implement.
type Signuper interface {
	Signup(ctx context.Context, username, email, password, imageURL string) (*models.UserDB, error)
}

// TokenIssuer issues a session token for an existing user.
type TokenIssuer interface {
	IssueToken(ctx context.Context, userID int64) (string, error)
}

// SignupForm represents the form body for user signup
// swagger:model SignupForm
type SignupForm struct {
	// Username
	// required: true
	// default: test_user2
	Username string `form:"username" validate:"required,max=20"`

	// Email
	// required: true
	// default: test2@test.com
	Email string `form:"email" validate:"required,email"`

	// Password
	// required: true
	// default: testuser
	Password string `form:"password" validate:"required,min=6"`

	// Profile image URL
	ImageURL string `form:"image_url" validate:"omitempty,uri"`
}

// NewSignupHandler returns an HTTP handler for user signup.
// @Summary Sign up a new user
// @Description Creates a user with a hashed password, sets the session cookie and redirects home.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Param image_url formData string false "Profile image URL"
// @Success 302 "Redirect to /"
// @Failure 400 {object} handlers.ErrorResponse "Invalid form / username already taken"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /signup [post]
func NewSignupHandler(svc Signuper, tokens TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "invalid form")
			return
		}

		form := SignupForm{
			Username: r.PostForm.Get("username"),
			Email:    r.PostForm.Get("email"),
			Password: r.PostForm.Get("password"),
			ImageURL: r.PostForm.Get("image_url"),
		}
		if err := validate.Struct(form); err != nil {
			writeError(w, http.StatusBadRequest, validationMessage(err))
			return
		}

		user, err := svc.Signup(r.Context(), form.Username, form.Email, form.Password, form.ImageURL)
		if err != nil {
			if errors.Is(err, services.ErrUserAlreadyExists) {
				writeError(w, http.StatusBadRequest, "Username already taken")
				return
			}
			internalError(w, r, err)
			return
		}

		token, err := tokens.IssueToken(r.Context(), user.ID)
		if err != nil {
			internalError(w, r, err)
			return
		}

		jwt.SetCookie(w, token)
		http.Redirect(w, r, "/", http.StatusFound)
	}
}
