package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sbilibin2017/warbler/internal/jwt"
	"github.com/sbilibin2017/warbler/internal/models"
	"github.com/sbilibin2017/warbler/internal/services"
)

//go:generate mockgen -source=users.go -destination=mock_users.go -package=handlers

// UserGetter loads a user by id.
type UserGetter interface {
	GetByID(ctx context.Context, id int64) (*models.UserDB, error)
}

// UserDeleter deletes a user account.
type UserDeleter interface {
	Delete(ctx context.Context, id int64) error
}

// MessageLister lists the messages written by a user.
type MessageLister interface {
	ListByUser(ctx context.Context, userID int64, limit int) ([]models.MessageDB, error)
}

// FollowLister lists both sides of the follow relation of a user.
type FollowLister interface {
	Followers(ctx context.Context, userID int64) ([]models.UserDB, error)
	Following(ctx context.Context, userID int64) ([]models.UserDB, error)
}

// FollowManager creates and removes follow edges.
type FollowManager interface {
	Follow(ctx context.Context, followerID, followedID int64) error
	Unfollow(ctx context.Context, followerID, followedID int64) error
}

// ProfileResponse represents a user page
// swagger:model ProfileResponse
type ProfileResponse struct {
	User     *models.UserDB     `json:"user"`
	Messages []models.MessageDB `json:"messages"`
}

// FollowsResponse represents a list of followers or followed users
// swagger:model FollowsResponse
type FollowsResponse struct {
	User  *models.UserDB  `json:"user"`
	Users []models.UserDB `json:"users"`
}

// NewUserProfileHandler returns an HTTP handler showing a user and their messages.
// @Summary Show user profile
// @Tags users
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} handlers.ProfileResponse
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /users/{user_id} [get]
func NewUserProfileHandler(users UserGetter, messages MessageLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "user_id")
		if !ok {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}

		user, err := users.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				writeError(w, http.StatusNotFound, "User not found")
				return
			}
			internalError(w, r, err)
			return
		}

		msgs, err := messages.ListByUser(r.Context(), id, 0)
		if err != nil {
			internalError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, ProfileResponse{User: user, Messages: msgs})
	}
}

// NewFollowingHandler returns an HTTP handler listing the users a user follows.
// @Summary List followed users
// @Tags follows
// @Produce json
// @Security CookieAuth
// @Param user_id path int true "User ID"
// @Success 200 {object} handlers.FollowsResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /users/{user_id}/following [get]
func NewFollowingHandler(users UserGetter, follows FollowLister) http.HandlerFunc {
	return newFollowsHandler(users, follows.Following)
}

// NewFollowersHandler returns an HTTP handler listing the followers of a user.
// @Summary List followers
// @Tags follows
// @Produce json
// @Security CookieAuth
// @Param user_id path int true "User ID"
// @Success 200 {object} handlers.FollowsResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /users/{user_id}/followers [get]
func NewFollowersHandler(users UserGetter, follows FollowLister) http.HandlerFunc {
	return newFollowsHandler(users, follows.Followers)
}

func newFollowsHandler(users UserGetter, list func(context.Context, int64) ([]models.UserDB, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := currentUser(w, r); !ok {
			return
		}

		id, ok := idParam(r, "user_id")
		if !ok {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}

		user, err := users.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				writeError(w, http.StatusNotFound, "User not found")
				return
			}
			internalError(w, r, err)
			return
		}

		found, err := list(r.Context(), id)
		if err != nil {
			internalError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, FollowsResponse{User: user, Users: found})
	}
}

// NewFollowHandler returns an HTTP handler adding a follow edge for the current user.
// @Summary Follow a user
// @Tags follows
// @Security CookieAuth
// @Param follow_id path int true "ID of the user to follow"
// @Success 302 "Redirect to /users/{me}/following"
// @Failure 400 {object} handlers.ErrorResponse "Cannot follow yourself"
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /users/follow/{follow_id} [post]
func NewFollowHandler(follows FollowManager) http.HandlerFunc {
	return newFollowChangeHandler(follows.Follow)
}

// NewStopFollowingHandler returns an HTTP handler removing a follow edge of the current user.
// @Summary Stop following a user
// @Tags follows
// @Security CookieAuth
// @Param follow_id path int true "ID of the followed user"
// @Success 302 "Redirect to /users/{me}/following"
// @Failure 401 {object} handlers.ErrorResponse
// @Router /users/stop-following/{follow_id} [post]
func NewStopFollowingHandler(follows FollowManager) http.HandlerFunc {
	return newFollowChangeHandler(follows.Unfollow)
}

func newFollowChangeHandler(change func(context.Context, int64, int64) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		me, ok := currentUser(w, r)
		if !ok {
			return
		}

		followID, ok := idParam(r, "follow_id")
		if !ok {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}

		if err := change(r.Context(), me, followID); err != nil {
			switch {
			case errors.Is(err, services.ErrSelfFollow):
				writeError(w, http.StatusBadRequest, "You cannot follow yourself")
			case errors.Is(err, services.ErrUserNotFound):
				writeError(w, http.StatusNotFound, "User not found")
			default:
				internalError(w, r, err)
			}
			return
		}

		http.Redirect(w, r, fmt.Sprintf("/users/%d/following", me), http.StatusFound)
	}
}

// NewDeleteUserHandler returns an HTTP handler deleting the current user.
// @Summary Delete the current user
// @Tags users
// @Security CookieAuth
// @Success 302 "Redirect to /signup"
// @Failure 401 {object} handlers.ErrorResponse
// @Router /users/delete [post]
func NewDeleteUserHandler(users UserDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		me, ok := currentUser(w, r)
		if !ok {
			return
		}

		if err := users.Delete(r.Context(), me); err != nil {
			internalError(w, r, err)
			return
		}

		jwt.ClearCookie(w)
		http.Redirect(w, r, "/signup", http.StatusFound)
	}
}
