package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/warbler/internal/jwt"
	"github.com/sbilibin2017/warbler/internal/models"
	"github.com/sbilibin2017/warbler/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == jwt.CookieName {
			return c
		}
	}
	return nil
}

func TestSignupHandler(t *testing.T) {
	validForm := url.Values{
		"username":  {"testuser"},
		"email":     {"test@test.com"},
		"password":  {"HASHED_PASSWORD"},
		"image_url": {""},
	}

	tests := []struct {
		name          string
		form          url.Values
		mockSetup     func(s *MockSignuper, tk *MockTokenIssuer)
		expectedCode  int
		expectedError string
	}{
		{
			name: "success",
			form: validForm,
			mockSetup: func(s *MockSignuper, tk *MockTokenIssuer) {
				s.EXPECT().
					Signup(gomock.Any(), "testuser", "test@test.com", "HASHED_PASSWORD", "").
					Return(&models.UserDB{ID: 3, Username: "testuser"}, nil)
				tk.EXPECT().IssueToken(gomock.Any(), int64(3)).Return("TOKEN", nil)
			},
			expectedCode: http.StatusFound,
		},
		{
			name: "username already taken",
			form: validForm,
			mockSetup: func(s *MockSignuper, tk *MockTokenIssuer) {
				s.EXPECT().
					Signup(gomock.Any(), "testuser", "test@test.com", "HASHED_PASSWORD", "").
					Return(nil, services.ErrUserAlreadyExists)
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Username already taken",
		},
		{
			name: "signup failure",
			form: validForm,
			mockSetup: func(s *MockSignuper, tk *MockTokenIssuer) {
				s.EXPECT().
					Signup(gomock.Any(), "testuser", "test@test.com", "HASHED_PASSWORD", "").
					Return(nil, errors.New("database failure"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
		{
			name: "token failure",
			form: validForm,
			mockSetup: func(s *MockSignuper, tk *MockTokenIssuer) {
				s.EXPECT().
					Signup(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&models.UserDB{ID: 3}, nil)
				tk.EXPECT().IssueToken(gomock.Any(), int64(3)).Return("", errors.New("signing failure"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
		{
			name: "relative image path",
			form: url.Values{"username": {"testuser"}, "email": {"test@test.com"}, "password": {"HASHED_PASSWORD"}, "image_url": {"/static/images/default-pic.png"}},
			mockSetup: func(s *MockSignuper, tk *MockTokenIssuer) {
				s.EXPECT().
					Signup(gomock.Any(), "testuser", "test@test.com", "HASHED_PASSWORD", "/static/images/default-pic.png").
					Return(&models.UserDB{ID: 3}, nil)
				tk.EXPECT().IssueToken(gomock.Any(), int64(3)).Return("TOKEN", nil)
			},
			expectedCode: http.StatusFound,
		},
		{
			name: "absolute image url",
			form: url.Values{"username": {"testuser"}, "email": {"test@test.com"}, "password": {"HASHED_PASSWORD"}, "image_url": {"https://example.com/me.png"}},
			mockSetup: func(s *MockSignuper, tk *MockTokenIssuer) {
				s.EXPECT().
					Signup(gomock.Any(), "testuser", "test@test.com", "HASHED_PASSWORD", "https://example.com/me.png").
					Return(&models.UserDB{ID: 3}, nil)
				tk.EXPECT().IssueToken(gomock.Any(), int64(3)).Return("TOKEN", nil)
			},
			expectedCode: http.StatusFound,
		},
		{
			name:          "invalid image url",
			form:          url.Values{"username": {"testuser"}, "email": {"test@test.com"}, "password": {"HASHED_PASSWORD"}, "image_url": {"not an image"}},
			mockSetup:     func(s *MockSignuper, tk *MockTokenIssuer) {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid field ImageURL: uri",
		},
		{
			name:          "missing username",
			form:          url.Values{"email": {"test@test.com"}, "password": {"HASHED_PASSWORD"}},
			mockSetup:     func(s *MockSignuper, tk *MockTokenIssuer) {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid field Username: required",
		},
		{
			name:          "username too long",
			form:          url.Values{"username": {strings.Repeat("u", 21)}, "email": {"test@test.com"}, "password": {"HASHED_PASSWORD"}},
			mockSetup:     func(s *MockSignuper, tk *MockTokenIssuer) {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid field Username: max",
		},
		{
			name:          "invalid email",
			form:          url.Values{"username": {"testuser"}, "email": {"not-an-email"}, "password": {"HASHED_PASSWORD"}},
			mockSetup:     func(s *MockSignuper, tk *MockTokenIssuer) {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid field Email: email",
		},
		{
			name:          "short password",
			form:          url.Values{"username": {"testuser"}, "email": {"test@test.com"}, "password": {"abc"}},
			mockSetup:     func(s *MockSignuper, tk *MockTokenIssuer) {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid field Password: min",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			signuper := NewMockSignuper(ctrl)
			tokens := NewMockTokenIssuer(ctrl)
			tt.mockSetup(signuper, tokens)

			rec := httptest.NewRecorder()
			NewSignupHandler(signuper, tokens).ServeHTTP(rec, postForm("/signup", tt.form))

			assert.Equal(t, tt.expectedCode, rec.Code)

			if tt.expectedCode == http.StatusFound {
				assert.Equal(t, "/", rec.Header().Get("Location"))
				cookie := sessionCookie(rec)
				require.NotNil(t, cookie)
				assert.Equal(t, "TOKEN", cookie.Value)
				assert.True(t, cookie.HttpOnly)
				return
			}

			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.expectedError, resp.Error)
			assert.Nil(t, sessionCookie(rec))
		})
	}
}
