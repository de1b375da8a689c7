package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/layerkit/layerkit/internal/user/persistence"
)

// FindUserByEmail retrieves a user record by exact email.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*persistence.Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, email, created_at, updated_at
		 FROM users WHERE email = ?`, email,
	)
	return scanUser(row, "email")
}

// FindUserByID retrieves a user record by primary key.
func (s *Store) FindUserByID(ctx context.Context, id int64) (*persistence.Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, email, created_at, updated_at
		 FROM users WHERE id = ?`, id,
	)
	return scanUser(row, "id")
}

// InsertUser inserts a new row and assigns rec.ID and both timestamps.
func (s *Store) InsertUser(ctx context.Context, rec *persistence.Record) error {
	rec.Stamp(s.now())

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO users (email, created_at, updated_at) VALUES (?, ?, ?)`,
		rec.Email, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return persistence.ErrEmailExists
		}
		return fmt.Errorf("insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	rec.ID = id
	return nil
}

// UpdateUser writes rec.Email and refreshes rec.UpdatedAt.
func (s *Store) UpdateUser(ctx context.Context, rec *persistence.Record) error {
	rec.Stamp(s.now())

	result, err := s.db.ExecContext(ctx,
		`UPDATE users SET email = ?, updated_at = ? WHERE id = ?`,
		rec.Email, rec.UpdatedAt, rec.ID,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return persistence.ErrEmailExists
		}
		return fmt.Errorf("update user: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return persistence.ErrRecordNotFound
	}
	return nil
}

func scanUser(row *sql.Row, by string) (*persistence.Record, error) {
	rec := &persistence.Record{}
	err := row.Scan(&rec.ID, &rec.Email, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by %s: %w", by, err)
	}

	rec.CreatedAt = rec.CreatedAt.UTC()
	rec.UpdatedAt = rec.UpdatedAt.UTC()
	return rec, nil
}

// isUniqueConstraintError checks if the error is a SQLite unique constraint violation.
func isUniqueConstraintError(err error) bool {
	var sqliteErr *msqlite.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
