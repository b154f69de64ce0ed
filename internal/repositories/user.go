package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/warbler/internal/models"
)

const userColumns = `id, email, username, image_url, header_image_url, bio, location, password, created_at`

// UserReadRepository handles user lookups.
type UserReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

// NewUserReadRepository creates a UserReadRepository. Reads join the request
// transaction returned by txGetter, if any.
func NewUserReadRepository(db *sqlx.DB, txGetter TxGetter) *UserReadRepository {
	return &UserReadRepository{db: db, txGetter: txGetter}
}

// GetByID returns the user with id, or nil when there is none.
func (r *UserReadRepository) GetByID(ctx context.Context, id int64) (*models.UserDB, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.get(ctx, query, id)
}

// GetByUsername returns the user named username, or nil when there is none.
func (r *UserReadRepository) GetByUsername(ctx context.Context, username string) (*models.UserDB, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return r.get(ctx, query, username)
}

// GetByUsernameOrEmail returns any user holding username or email, or nil.
func (r *UserReadRepository) GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.UserDB, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE username = $1 OR email = $2
		LIMIT 1
	`
	return r.get(ctx, query, username, email)
}

func (r *UserReadRepository) get(ctx context.Context, query string, args ...any) (*models.UserDB, error) {
	var user models.UserDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		logQuery(query, args, nil, nil)
		return nil, nil
	}
	logQuery(query, args, user.ID, err)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UserWriteRepository handles user writes.
type UserWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserWriteRepository(db *sqlx.DB, txGetter TxGetter) *UserWriteRepository {
	return &UserWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts user and fills in its id and creation time.
// A taken username or email yields ErrDuplicate.
func (r *UserWriteRepository) Save(ctx context.Context, user *models.UserDB) error {
	const query = `
		INSERT INTO users (email, username, image_url, header_image_url, bio, location, password)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	args := []any{user.Email, user.Username, user.ImageURL, user.HeaderImageURL, user.Bio, user.Location, user.Password}

	row := executor(ctx, r.db, r.txGetter).QueryRowxContext(ctx, query, args...)
	err := translateError(row.Scan(&user.ID, &user.CreatedAt))

	// never log the password hash
	logQuery(query, args[:6], user.ID, err)

	return err
}

// Delete removes the user; follows and messages cascade.
func (r *UserWriteRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM users WHERE id = $1`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, id)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(query, []any{id}, rowsAffected, err)

	return err
}
