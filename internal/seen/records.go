package seen

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotFound reports that no record with the requested id exists.
	ErrNotFound = errors.New("seen record not found")
	// ErrInvalidID reports an empty movie identifier.
	ErrInvalidID = errors.New("movie id required")
)

// timestampLayout is fixed width so added_at sorts lexically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Record is one movie the user has marked as seen.
type Record struct {
	ID      string
	Title   string
	AddedAt time.Time
}

func normalizeID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrInvalidID
	}
	return id, nil
}

// Exists reports whether id has been recorded as seen.
func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	id, err := normalizeID(id)
	if err != nil {
		return false, err
	}
	ctx = ensureContext(ctx)
	var found int
	err = retryOnBusy(ctx, func() error {
		return s.db.QueryRowContext(ctx,
			"SELECT 1 FROM seen_movies WHERE id = ? LIMIT 1", id,
		).Scan(&found)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check seen %s: %w", id, err)
	}
	return true, nil
}

// Add records id as seen. Adding an id that already exists keeps the
// original title and timestamp.
func (s *Store) Add(ctx context.Context, id, title string) error {
	id, err := normalizeID(id)
	if err != nil {
		return err
	}
	addedAt := s.now().UTC().Format(timestampLayout)
	err = s.withWriteLock(ctx, func() error {
		_, execErr := s.db.ExecContext(ensureContext(ctx),
			`INSERT INTO seen_movies (id, title, added_at) VALUES (?, ?, ?)
			 ON CONFLICT(id) DO NOTHING`,
			id, strings.TrimSpace(title), addedAt,
		)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("add seen %s: %w", id, err)
	}
	s.logger.Debug("movie marked seen", "movie_id", id)
	return nil
}

// DeleteByID removes id from the exclusion set.
func (s *Store) DeleteByID(ctx context.Context, id string) error {
	id, err := normalizeID(id)
	if err != nil {
		return err
	}
	var affected int64
	err = s.withWriteLock(ctx, func() error {
		res, execErr := s.db.ExecContext(ensureContext(ctx), "DELETE FROM seen_movies WHERE id = ?", id)
		if execErr != nil {
			return execErr
		}
		affected, execErr = res.RowsAffected()
		return execErr
	})
	if err != nil {
		return fmt.Errorf("delete seen %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("delete seen %s: %w", id, ErrNotFound)
	}
	s.logger.Debug("movie removed from seen", "movie_id", id)
	return nil
}

// ResetAll clears the exclusion set and returns how many records were removed.
func (s *Store) ResetAll(ctx context.Context) (int64, error) {
	ctx = ensureContext(ctx)
	var removed int64
	err := s.withWriteLock(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()
		res, err := tx.ExecContext(ctx, "DELETE FROM seen_movies")
		if err != nil {
			return err
		}
		if removed, err = res.RowsAffected(); err != nil {
			return err
		}
		return tx.Commit()
	})
	if err != nil {
		return 0, fmt.Errorf("reset seen: %w", err)
	}
	s.logger.Info("seen list cleared", "removed", removed)
	return removed, nil
}

// List returns every record, oldest first.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	ctx = ensureContext(ctx)
	var records []Record
	err := retryOnBusy(ctx, func() error {
		records = records[:0]
		rows, err := s.db.QueryContext(ctx,
			"SELECT id, title, added_at FROM seen_movies ORDER BY added_at, rowid")
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var (
				rec     Record
				addedAt string
			)
			if err := rows.Scan(&rec.ID, &rec.Title, &addedAt); err != nil {
				return err
			}
			if ts, parseErr := time.Parse(timestampLayout, addedAt); parseErr == nil {
				rec.AddedAt = ts
			}
			records = append(records, rec)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list seen: %w", err)
	}
	return records, nil
}

// Count returns the number of recorded movies.
func (s *Store) Count(ctx context.Context) (int, error) {
	ctx = ensureContext(ctx)
	var count int
	err := retryOnBusy(ctx, func() error {
		return s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM seen_movies").Scan(&count)
	})
	if err != nil {
		return 0, fmt.Errorf("count seen: %w", err)
	}
	return count, nil
}
