package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/layerkit/layerkit/internal/user/persistence"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// FindUserByEmail retrieves a user record by exact email.
// Returns nil, nil when no row matches.
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*persistence.Record, error) {
	query := `
		SELECT id, email, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	return r.scanUser(r.pool.QueryRow(ctx, query, email), "email")
}

// FindUserByID retrieves a user record by primary key.
// Returns nil, nil when no row matches.
func (r *Repository) FindUserByID(ctx context.Context, id int64) (*persistence.Record, error) {
	query := `
		SELECT id, email, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	return r.scanUser(r.pool.QueryRow(ctx, query, id), "id")
}

// InsertUser inserts a new row and assigns rec.ID and both timestamps.
func (r *Repository) InsertUser(ctx context.Context, rec *persistence.Record) error {
	rec.Stamp(r.now())

	query := `
		INSERT INTO users (email, created_at, updated_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query, rec.Email, rec.CreatedAt, rec.UpdatedAt).Scan(&rec.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return persistence.ErrEmailExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// UpdateUser writes rec.Email and refreshes rec.UpdatedAt.
func (r *Repository) UpdateUser(ctx context.Context, rec *persistence.Record) error {
	rec.Stamp(r.now())

	query := `
		UPDATE users
		SET email = $2, updated_at = $3
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, rec.ID, rec.Email, rec.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return persistence.ErrEmailExists
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return persistence.ErrRecordNotFound
	}

	return nil
}

func (r *Repository) scanUser(row pgx.Row, by string) (*persistence.Record, error) {
	var rec persistence.Record
	err := row.Scan(
		&rec.ID,
		&rec.Email,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by %s: %w", by, err)
	}

	rec.CreatedAt = rec.CreatedAt.UTC()
	rec.UpdatedAt = rec.UpdatedAt.UTC()
	return &rec, nil
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
