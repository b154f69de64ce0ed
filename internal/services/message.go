package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/sbilibin2017/warbler/internal/logger"
	"github.com/sbilibin2017/warbler/internal/models"
)

//go:generate mockgen -source=message.go -destination=mock_message.go -package=services

// DefaultTimelineLimit caps timeline and profile listings.
const DefaultTimelineLimit = 100

var (
	ErrInvalidMessage  = errors.New("message must be between 1 and 140 characters")
	ErrMessageNotFound = errors.New("message not found")
	ErrForbidden       = errors.New("access unauthorized")
)

// MessageReader reads messages. GetByID returns nil when nothing matches.
type MessageReader interface {
	GetByID(ctx context.Context, id int64) (*models.MessageDB, error)
	ListByUserID(ctx context.Context, userID int64, limit int) ([]models.MessageDB, error)
	ListTimeline(ctx context.Context, userID int64, limit int) ([]models.TimelineMessage, error)
}

// MessageWriter writes messages.
type MessageWriter interface {
	Save(ctx context.Context, msg *models.MessageDB) error
	Delete(ctx context.Context, id int64) error
}

// MessageService handles user messages.
type MessageService struct {
	reader MessageReader
	writer MessageWriter
}

func NewMessageService(reader MessageReader, writer MessageWriter) *MessageService {
	return &MessageService{reader: reader, writer: writer}
}

// Create posts text on behalf of userID.
func (s *MessageService) Create(ctx context.Context, userID int64, text string) (*models.MessageDB, error) {
	text = strings.TrimSpace(text)
	if n := utf8.RuneCountInString(text); n == 0 || n > models.MaxMessageLength {
		return nil, ErrInvalidMessage
	}

	msg := &models.MessageDB{Text: text, UserID: userID}
	if err := s.writer.Save(ctx, msg); err != nil {
		logger.Log.Errorw("failed to save message", "user_id", userID, "error", err)
		return nil, err
	}
	return msg, nil
}

// GetByID returns a single message.
func (s *MessageService) GetByID(ctx context.Context, id int64) (*models.MessageDB, error) {
	msg, err := s.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get message", "message_id", id, "error", err)
		return nil, err
	}
	if msg == nil {
		return nil, ErrMessageNotFound
	}
	return msg, nil
}

// ListByUser returns the newest messages of userID.
func (s *MessageService) ListByUser(ctx context.Context, userID int64, limit int) ([]models.MessageDB, error) {
	if limit <= 0 || limit > DefaultTimelineLimit {
		limit = DefaultTimelineLimit
	}
	return s.reader.ListByUserID(ctx, userID, limit)
}

// Timeline returns the newest messages of userID and the users they follow.
func (s *MessageService) Timeline(ctx context.Context, userID int64, limit int) ([]models.TimelineMessage, error) {
	if limit <= 0 || limit > DefaultTimelineLimit {
		limit = DefaultTimelineLimit
	}
	return s.reader.ListTimeline(ctx, userID, limit)
}

// Delete removes a message. Only its owner may delete it.
func (s *MessageService) Delete(ctx context.Context, userID, messageID int64) error {
	msg, err := s.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if msg.UserID != userID {
		logger.Log.Warnw("refusing to delete foreign message", "user_id", userID, "message_id", messageID)
		return ErrForbidden
	}

	if err := s.writer.Delete(ctx, messageID); err != nil {
		logger.Log.Errorw("failed to delete message", "message_id", messageID, "error", err)
		return err
	}
	return nil
}
