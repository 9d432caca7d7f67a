package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/vadimbarashkov/shortly/internal/entity"
)

const userColumns = `id, external_id, email, password_digest, created_at, updated_at, deleted_at`

type userDB struct {
	ID             int64        `db:"id"`
	ExternalID     string       `db:"external_id"`
	Email          string       `db:"email"`
	PasswordDigest string       `db:"password_digest"`
	CreatedAt      time.Time    `db:"created_at"`
	UpdatedAt      time.Time    `db:"updated_at"`
	DeletedAt      sql.NullTime `db:"deleted_at"`
}

func (u *userDB) toEntity() *entity.User {
	user := &entity.User{
		ID:             u.ID,
		ExternalID:     u.ExternalID,
		Email:          u.Email,
		PasswordDigest: u.PasswordDigest,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}

	if u.DeletedAt.Valid {
		deletedAt := u.DeletedAt.Time
		user.DeletedAt = &deletedAt
	}

	return user
}

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Save inserts user and returns the stored row. An email already held by an
// active user yields entity.ErrEmailExists.
func (r *UserRepository) Save(ctx context.Context, user *entity.User) (*entity.User, error) {
	const op = "adapter.repository.postgres.UserRepository.Save"
	const query = `INSERT INTO users(external_id, email, password_digest)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	var row userDB

	if err := r.db.GetContext(ctx, &row, query, user.ExternalID, user.Email, user.PasswordDigest); err != nil {
		if constraint, ok := uniqueViolation(err); ok && constraint == usersEmailConstraint {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrEmailExists)
		}

		return nil, fmt.Errorf("%s: failed to insert into users table: %w", op, err)
	}

	return row.toEntity(), nil
}

// RetrieveByEmail returns the active user with the given email.
func (r *UserRepository) RetrieveByEmail(ctx context.Context, email string) (*entity.User, error) {
	const op = "adapter.repository.postgres.UserRepository.RetrieveByEmail"
	const query = `SELECT ` + userColumns + ` FROM users
		WHERE email = $1 AND deleted_at IS NULL`

	var row userDB

	if err := r.db.GetContext(ctx, &row, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrUserNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get row from users table: %w", op, err)
	}

	return row.toEntity(), nil
}

// RetrieveByExternalID returns the active user with the given external id.
func (r *UserRepository) RetrieveByExternalID(ctx context.Context, externalID string) (*entity.User, error) {
	const op = "adapter.repository.postgres.UserRepository.RetrieveByExternalID"
	const query = `SELECT ` + userColumns + ` FROM users
		WHERE external_id = $1 AND deleted_at IS NULL`

	if !isExternalID(externalID) {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrUserNotFound)
	}

	var row userDB

	if err := r.db.GetContext(ctx, &row, query, externalID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrUserNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get row from users table: %w", op, err)
	}

	return row.toEntity(), nil
}
