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

const urlColumns = `id, external_id, short_code, original_url, clicks, user_id, created_at, updated_at, deleted_at`

type urlDB struct {
	ID          int64         `db:"id"`
	ExternalID  string        `db:"external_id"`
	ShortCode   string        `db:"short_code"`
	OriginalURL string        `db:"original_url"`
	Clicks      int64         `db:"clicks"`
	UserID      sql.NullInt64 `db:"user_id"`
	CreatedAt   time.Time     `db:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at"`
	DeletedAt   sql.NullTime  `db:"deleted_at"`
}

func (u *urlDB) toEntity() *entity.URL {
	url := &entity.URL{
		ID:          u.ID,
		ExternalID:  u.ExternalID,
		ShortCode:   u.ShortCode,
		OriginalURL: u.OriginalURL,
		URLStats: entity.URLStats{
			Clicks: u.Clicks,
		},
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}

	if u.UserID.Valid {
		userID := u.UserID.Int64
		url.UserID = &userID
	}

	if u.DeletedAt.Valid {
		deletedAt := u.DeletedAt.Time
		url.DeletedAt = &deletedAt
	}

	return url
}

type URLRepository struct {
	db *sqlx.DB
}

func NewURLRepository(db *sqlx.DB) *URLRepository {
	return &URLRepository{db: db}
}

// Save inserts url and returns the stored row. A short code clash yields entity.ErrShortCodeExists.
func (r *URLRepository) Save(ctx context.Context, url *entity.URL) (*entity.URL, error) {
	const op = "adapter.repository.postgres.URLRepository.Save"
	const query = `INSERT INTO urls(external_id, short_code, original_url, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + urlColumns

	var row urlDB

	if err := r.db.GetContext(ctx, &row, query, url.ExternalID, url.ShortCode, url.OriginalURL, url.UserID); err != nil {
		if constraint, ok := uniqueViolation(err); ok && constraint == urlsShortCodeConstraint {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrShortCodeExists)
		}

		return nil, fmt.Errorf("%s: failed to insert into urls table: %w", op, err)
	}

	return row.toEntity(), nil
}

// RetrieveByShortCode returns the active URL with the given short code.
func (r *URLRepository) RetrieveByShortCode(ctx context.Context, shortCode string) (*entity.URL, error) {
	const op = "adapter.repository.postgres.URLRepository.RetrieveByShortCode"
	const query = `SELECT ` + urlColumns + ` FROM urls
		WHERE short_code = $1 AND deleted_at IS NULL`

	var row urlDB

	if err := r.db.GetContext(ctx, &row, query, shortCode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get row from urls table: %w", op, err)
	}

	return row.toEntity(), nil
}

// AddClicks atomically adds delta to the click counter of the active URL with
// the given short code. A code matching no active URL is not an error.
func (r *URLRepository) AddClicks(ctx context.Context, shortCode string, delta int64) error {
	const op = "adapter.repository.postgres.URLRepository.AddClicks"
	const query = `UPDATE urls SET clicks = clicks + $1
		WHERE short_code = $2 AND deleted_at IS NULL`

	if _, err := r.db.ExecContext(ctx, query, delta, shortCode); err != nil {
		return fmt.Errorf("%s: failed to update urls table row: %w", op, err)
	}

	return nil
}

// ListByOwner returns a page of active URLs owned by userID, newest first.
func (r *URLRepository) ListByOwner(ctx context.Context, userID int64, limit, offset int) ([]*entity.URL, error) {
	const op = "adapter.repository.postgres.URLRepository.ListByOwner"
	const query = `SELECT ` + urlColumns + ` FROM urls
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`

	var rows []urlDB

	if err := r.db.SelectContext(ctx, &rows, query, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("%s: failed to select from urls table: %w", op, err)
	}

	urls := make([]*entity.URL, 0, len(rows))
	for i := range rows {
		urls = append(urls, rows[i].toEntity())
	}

	return urls, nil
}

// CountByOwner returns the number of active URLs owned by userID.
func (r *URLRepository) CountByOwner(ctx context.Context, userID int64) (int64, error) {
	const op = "adapter.repository.postgres.URLRepository.CountByOwner"
	const query = `SELECT count(*) FROM urls WHERE user_id = $1 AND deleted_at IS NULL`

	var total int64

	if err := r.db.GetContext(ctx, &total, query, userID); err != nil {
		return 0, fmt.Errorf("%s: failed to count urls table rows: %w", op, err)
	}

	return total, nil
}

// UpdateOwned sets the original URL of the active record with externalID owned by userID.
func (r *URLRepository) UpdateOwned(ctx context.Context, externalID string, userID int64, originalURL string) (*entity.URL, error) {
	const op = "adapter.repository.postgres.URLRepository.UpdateOwned"
	const query = `UPDATE urls SET original_url = $1, updated_at = now()
		WHERE external_id = $2 AND user_id = $3 AND deleted_at IS NULL
		RETURNING ` + urlColumns

	if !isExternalID(externalID) {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
	}

	var row urlDB

	if err := r.db.GetContext(ctx, &row, query, originalURL, externalID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
		}

		return nil, fmt.Errorf("%s: failed to update urls table row: %w", op, err)
	}

	return row.toEntity(), nil
}

// RemoveOwned soft deletes the active record with externalID owned by userID.
func (r *URLRepository) RemoveOwned(ctx context.Context, externalID string, userID int64) error {
	const op = "adapter.repository.postgres.URLRepository.RemoveOwned"
	const query = `UPDATE urls SET deleted_at = now(), updated_at = now()
		WHERE external_id = $1 AND user_id = $2 AND deleted_at IS NULL`

	if !isExternalID(externalID) {
		return fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
	}

	res, err := r.db.ExecContext(ctx, query, externalID, userID)
	if err != nil {
		return fmt.Errorf("%s: failed to update urls table row: %w", op, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get number of affected rows: %w", op, err)
	}

	if rowsAffected != 1 {
		return fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
	}

	return nil
}
