package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/warbler/internal/models"
	"github.com/sbilibin2017/warbler/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageService_Create(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantText string
		saveErr  error
		wantErr  error
	}{
		{name: "valid", text: "  hello warbler  ", wantText: "hello warbler"},
		{name: "exactly 140 runes", text: strings.Repeat("é", 140), wantText: strings.Repeat("é", 140)},
		{name: "empty", text: "   ", wantErr: services.ErrInvalidMessage},
		{name: "too long", text: strings.Repeat("a", 141), wantErr: services.ErrInvalidMessage},
		{name: "save error", text: "hi", wantText: "hi", saveErr: errors.New("db error"), wantErr: errors.New("db error")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			writer := services.NewMockMessageWriter(ctrl)
			svc := services.NewMessageService(services.NewMockMessageReader(ctrl), writer)

			if tt.wantText != "" {
				writer.EXPECT().Save(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, msg *models.MessageDB) error {
						assert.Equal(t, tt.wantText, msg.Text)
						assert.Equal(t, int64(1), msg.UserID)
						msg.ID = 7
						return tt.saveErr
					})
			}

			msg, err := svc.Create(context.Background(), 1, tt.text)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, msg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(7), msg.ID)
		})
	}
}

func TestMessageService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		message   *models.MessageDB
		readerErr error
		deleteErr error
		wantErr   error
	}{
		{name: "owner deletes", message: &models.MessageDB{ID: 5, UserID: 1}},
		{name: "foreign message", message: &models.MessageDB{ID: 5, UserID: 2}, wantErr: services.ErrForbidden},
		{name: "missing message", wantErr: services.ErrMessageNotFound},
		{name: "reader error", readerErr: errors.New("db error"), wantErr: errors.New("db error")},
		{name: "delete error", message: &models.MessageDB{ID: 5, UserID: 1}, deleteErr: errors.New("db error"), wantErr: errors.New("db error")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			reader := services.NewMockMessageReader(ctrl)
			writer := services.NewMockMessageWriter(ctrl)
			svc := services.NewMessageService(reader, writer)

			reader.EXPECT().GetByID(gomock.Any(), int64(5)).Return(tt.message, tt.readerErr)
			if tt.message != nil && tt.message.UserID == 1 {
				writer.EXPECT().Delete(gomock.Any(), int64(5)).Return(tt.deleteErr)
			}

			err := svc.Delete(context.Background(), 1, 5)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMessageService_Listings(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := services.NewMockMessageReader(ctrl)
	svc := services.NewMessageService(reader, services.NewMockMessageWriter(ctrl))
	ctx := context.Background()

	reader.EXPECT().ListByUserID(gomock.Any(), int64(1), services.DefaultTimelineLimit).Return([]models.MessageDB{}, nil)
	reader.EXPECT().ListByUserID(gomock.Any(), int64(1), 10).Return([]models.MessageDB{{ID: 1}}, nil)
	reader.EXPECT().ListTimeline(gomock.Any(), int64(1), services.DefaultTimelineLimit).Return([]models.TimelineMessage{}, nil)

	messages, err := svc.ListByUser(ctx, 1, 0)
	require.NoError(t, err)
	assert.Len(t, messages, 0)

	messages, err = svc.ListByUser(ctx, 1, 10)
	require.NoError(t, err)
	assert.Len(t, messages, 1)

	timeline, err := svc.Timeline(ctx, 1, 5000)
	require.NoError(t, err)
	assert.Len(t, timeline, 0)
}

func TestMessageService_GetByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := services.NewMockMessageReader(ctrl)
	svc := services.NewMessageService(reader, services.NewMockMessageWriter(ctrl))

	reader.EXPECT().GetByID(gomock.Any(), int64(3)).Return(&models.MessageDB{ID: 3, Text: "x"}, nil)
	reader.EXPECT().GetByID(gomock.Any(), int64(4)).Return(nil, nil)

	msg, err := svc.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "x", msg.Text)

	_, err = svc.GetByID(context.Background(), 4)
	assert.ErrorIs(t, err, services.ErrMessageNotFound)
}
