package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sbilibin2017/warbler/internal/models"
	"github.com/sbilibin2017/warbler/internal/services"
)

//go:generate mockgen -source=messages.go -destination=mock_messages.go -package=handlers

// MessageManager creates, loads and deletes messages.
type MessageManager interface {
	Create(ctx context.Context, userID int64, text string) (*models.MessageDB, error)
	GetByID(ctx context.Context, id int64) (*models.MessageDB, error)
	Delete(ctx context.Context, userID, messageID int64) error
}

// Timeliner builds the home timeline of a user.
type Timeliner interface {
	Timeline(ctx context.Context, userID int64, limit int) ([]models.TimelineMessage, error)
}

// TimelineResponse represents the home page
// swagger:model TimelineResponse
type TimelineResponse struct {
	Messages []models.TimelineMessage `json:"messages"`
}

// NewHomeHandler returns an HTTP handler with the timeline of the current user.
// @Summary Home timeline
// @Description Newest messages of the current user and everyone they follow.
// @Tags messages
// @Produce json
// @Security CookieAuth
// @Success 200 {object} handlers.TimelineResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Router / [get]
func NewHomeHandler(svc Timeliner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		me, ok := currentUser(w, r)
		if !ok {
			return
		}

		msgs, err := svc.Timeline(r.Context(), me, services.DefaultTimelineLimit)
		if err != nil {
			internalError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, TimelineResponse{Messages: msgs})
	}
}

// NewCreateMessageHandler returns an HTTP handler posting a message as the current user.
// @Summary Post a message
// @Tags messages
// @Accept x-www-form-urlencoded
// @Security CookieAuth
// @Param text formData string true "Message text, up to 140 characters"
// @Success 302 "Redirect to /users/{me}"
// @Failure 400 {object} handlers.ErrorResponse "Invalid message"
// @Failure 401 {object} handlers.ErrorResponse
// @Router /messages/new [post]
func NewCreateMessageHandler(svc MessageManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		me, ok := currentUser(w, r)
		if !ok {
			return
		}

		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "invalid form")
			return
		}

		if _, err := svc.Create(r.Context(), me, r.PostForm.Get("text")); err != nil {
			if errors.Is(err, services.ErrInvalidMessage) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			internalError(w, r, err)
			return
		}

		http.Redirect(w, r, fmt.Sprintf("/users/%d", me), http.StatusFound)
	}
}

// NewGetMessageHandler returns an HTTP handler showing a single message.
// @Summary Show a message
// @Tags messages
// @Produce json
// @Param message_id path int true "Message ID"
// @Success 200 {object} models.MessageDB
// @Failure 404 {object} handlers.ErrorResponse "Message not found"
// @Router /messages/{message_id} [get]
func NewGetMessageHandler(svc MessageManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "message_id")
		if !ok {
			writeError(w, http.StatusNotFound, "Message not found")
			return
		}

		msg, err := svc.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, services.ErrMessageNotFound) {
				writeError(w, http.StatusNotFound, "Message not found")
				return
			}
			internalError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, msg)
	}
}

// NewDeleteMessageHandler returns an HTTP handler deleting a message of the current user.
// @Summary Delete a message
// @Tags messages
// @Security CookieAuth
// @Param message_id path int true "Message ID"
// @Success 302 "Redirect to /users/{me}"
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 403 {object} handlers.ErrorResponse "Not the owner"
// @Failure 404 {object} handlers.ErrorResponse "Message not found"
// @Router /messages/{message_id}/delete [post]
func NewDeleteMessageHandler(svc MessageManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		me, ok := currentUser(w, r)
		if !ok {
			return
		}

		id, ok := idParam(r, "message_id")
		if !ok {
			writeError(w, http.StatusNotFound, "Message not found")
			return
		}

		if err := svc.Delete(r.Context(), me, id); err != nil {
			switch {
			case errors.Is(err, services.ErrForbidden):
				writeError(w, http.StatusForbidden, "Access unauthorized.")
			case errors.Is(err, services.ErrMessageNotFound):
				writeError(w, http.StatusNotFound, "Message not found")
			default:
				internalError(w, r, err)
			}
			return
		}

		http.Redirect(w, r, fmt.Sprintf("/users/%d", me), http.StatusFound)
	}
}
