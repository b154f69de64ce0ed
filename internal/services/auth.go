package services

import (
	"context"
	"errors"

	"github.com/sbilibin2017/warbler/internal/logger"
	"github.com/sbilibin2017/warbler/internal/metrics"
	"github.com/sbilibin2017/warbler/internal/models"
	"github.com/sbilibin2017/warbler/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=services

// Error variables
var (
	ErrUserAlreadyExists  = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
)

// UserReader defines read-only operations for users.
// Lookups return a nil user and nil error when nothing matches.
type UserReader interface {
	GetByID(ctx context.Context, id int64) (*models.UserDB, error)
	GetByUsername(ctx context.Context, username string) (*models.UserDB, error)
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, user *models.UserDB) error
	Delete(ctx context.Context, id int64) error
}

// JWTGenerator defines an interface for generating session tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, userID int64) (string, error)
}

// AuthService handles signup and authentication.
type AuthService struct {
	reader UserReader
	writer UserWriter
	jwt    JWTGenerator
	cost   int
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, jwt JWTGenerator) *AuthService {
	return &AuthService{
		reader: reader,
		writer: writer,
		jwt:    jwt,
		cost:   bcrypt.DefaultCost,
	}
}

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (svc *AuthService) WithHashCost(cost int) *AuthService {
	svc.cost = cost
	return svc
}

// Signup creates a user whose password is stored as a bcrypt hash.
// An empty imageURL falls back to the default profile picture.
func (svc *AuthService) Signup(ctx context.Context, username, email, password, imageURL string) (*models.UserDB, error) {
	existing, err := svc.reader.GetByUsernameOrEmail(ctx, username, email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return nil, err
	}
	if existing != nil {
		logger.Log.Warnw("user already exists", "username", username, "email", email)
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), svc.cost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	if imageURL == "" {
		imageURL = models.DefaultImageURL
	}

	user := &models.UserDB{
		Username:       username,
		Email:          email,
		Password:       string(hashedPassword),
		ImageURL:       imageURL,
		HeaderImageURL: models.DefaultHeaderImageURL,
	}

	if err := svc.writer.Save(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			// lost a race with a concurrent signup
			return nil, ErrUserAlreadyExists
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, err
	}

	metrics.RecordSignup()
	logger.Log.Infow("user signed up", "user_id", user.ID, "username", user.Username)

	return user, nil
}

// Authenticate returns the user matching username and password.
// A wrong password or unknown username yields (nil, nil); an error means
// the lookup itself failed.
func (svc *AuthService) Authenticate(ctx context.Context, username, password string) (*models.UserDB, error) {
	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		logger.Log.Infow("authentication failed: unknown user", "username", username)
		metrics.RecordAuthentication(false)
		return nil, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		logger.Log.Infow("authentication failed: wrong password", "username", username)
		metrics.RecordAuthentication(false)
		return nil, nil
	}

	metrics.RecordAuthentication(true)
	return user, nil
}

// Login authenticates a user and returns a session token.
func (svc *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := svc.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, user.ID)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", err
	}

	return token, nil
}

// IssueToken returns a session token for an already authenticated user.
func (svc *AuthService) IssueToken(ctx context.Context, userID int64) (string, error) {
	return svc.jwt.Generate(ctx, userID)
}
