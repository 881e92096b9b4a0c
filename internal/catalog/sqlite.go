// Package catalog implements the local subject store backed by SQLite.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/xtz206/acgnx/internal/subject"
	_ "modernc.org/sqlite"
)

// selectSubjectFields is the standard field list for SELECT queries.
const selectSubjectFields = `id, name, kind, date, aliases, summary, rating, tags, infobox`

// Store wraps a SQLite database holding the cached subjects. It is the
// system-of-record; in-memory subjects are transient views over it.
type Store struct {
	db            *sql.DB
	caseSensitive bool
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithCaseSensitiveSearch makes keyword search match exact case.
// The default is case-insensitive substring matching.
func WithCaseSensitiveSearch(on bool) StoreOption {
	return func(s *Store) {
		s.caseSensitive = on
	}
}

// Open opens or creates the subject store at the given path.
func Open(path string, opts ...StoreOption) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", subject.ErrSourceUnavailable, err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: creating schema: %v", subject.ErrSourceUnavailable, err)
	}

	s := &Store{db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS subjects (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			kind TEXT NOT NULL,
			date TEXT NOT NULL,
			aliases TEXT,
			summary TEXT,
			rating TEXT,
			tags TEXT,
			infobox TEXT
		);
	`
	_, err := db.Exec(schema)
	return err
}

// FetchSubject retrieves one subject by ID. A missing row yields
// subject.NotFoundError rather than a partially filled subject.
func (s *Store) FetchSubject(ctx context.Context, id int) (*subject.Subject, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectSubjectFields+` FROM subjects WHERE id = ?`, id)
	sub, err := scanSubject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &subject.NotFoundError{ID: id, Source: "catalog"}
	}
	if err != nil {
		return nil, fmt.Errorf("querying subject %d: %w", id, wrapDBError(err))
	}
	return sub, nil
}

// FetchAll returns every cached subject, ordered by ID.
func (s *Store) FetchAll(ctx context.Context) ([]subject.Subject, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+selectSubjectFields+` FROM subjects ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: listing subjects: %v", subject.ErrSourceUnavailable, err)
	}
	defer rows.Close()

	return scanSubjects(rows)
}

// SearchSubjects returns every cached subject whose name or any alias
// contains the keyword as a substring, ordered by ID. Matching is
// case-insensitive unless the store was opened with case-sensitive search.
func (s *Store) SearchSubjects(ctx context.Context, keyword string) ([]subject.Subject, error) {
	subjects, err := s.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]subject.Subject, 0, len(subjects))
	for _, sub := range subjects {
		if s.matches(sub, keyword) {
			matched = append(matched, sub)
		}
	}
	return matched, nil
}

func (s *Store) matches(sub subject.Subject, keyword string) bool {
	contains := strings.Contains
	if !s.caseSensitive {
		keyword = strings.ToLower(keyword)
		contains = func(haystack, needle string) bool {
			return strings.Contains(strings.ToLower(haystack), needle)
		}
	}

	if contains(sub.Name, keyword) {
		return true
	}
	for _, alias := range sub.Aliases {
		if contains(alias, keyword) {
			return true
		}
	}
	return false
}

// Count returns the number of cached subjects.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM subjects").Scan(&count)
	return count, err
}

// InsertSubjects inserts the subjects, replacing any row with the same ID.
// The whole batch commits or none of it does.
func (s *Store) InsertSubjects(ctx context.Context, subjects ...subject.Subject) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			REPLACE INTO subjects (`+selectSubjectFields+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("preparing insert: %w", err)
		}
		defer stmt.Close()

		for _, sub := range subjects {
			r, err := encodeSubject(sub)
			if err != nil {
				return err
			}
			_, err = stmt.ExecContext(ctx, r.id, r.name, r.kind, r.date,
				r.aliases, r.summary, r.rating, r.tags, r.infobox)
			if err != nil {
				return fmt.Errorf("inserting subject %d: %w", sub.ID, err)
			}
		}
		return nil
	})
}

// UpdateSubjects rewrites the rows of the given subjects. Every ID must
// already exist: an untracked ID fails with subject.NotFoundError and rolls
// the whole batch back.
func (s *Store) UpdateSubjects(ctx context.Context, subjects ...subject.Subject) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			UPDATE subjects
			SET name = ?, kind = ?, date = ?, aliases = ?, summary = ?,
				rating = ?, tags = ?, infobox = ?
			WHERE id = ?
		`)
		if err != nil {
			return fmt.Errorf("preparing update: %w", err)
		}
		defer stmt.Close()

		for _, sub := range subjects {
			r, err := encodeSubject(sub)
			if err != nil {
				return err
			}
			result, err := stmt.ExecContext(ctx, r.name, r.kind, r.date,
				r.aliases, r.summary, r.rating, r.tags, r.infobox, r.id)
			if err != nil {
				return fmt.Errorf("updating subject %d: %w", sub.ID, err)
			}
			affected, err := result.RowsAffected()
			if err != nil {
				return fmt.Errorf("updating subject %d: %w", sub.ID, err)
			}
			if affected == 0 {
				return &subject.NotFoundError{ID: sub.ID, Source: "catalog"}
			}
		}
		return nil
	})
}

// DeleteSubjects removes the given subjects' rows as one batch.
func (s *Store) DeleteSubjects(ctx context.Context, subjects ...subject.Subject) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, sub := range subjects {
			if _, err := tx.ExecContext(ctx, "DELETE FROM subjects WHERE id = ?", sub.ID); err != nil {
				return fmt.Errorf("deleting subject %d: %w", sub.ID, err)
			}
		}
		return nil
	})
}

// inTx runs fn inside one transaction so multi-row mutations are never
// partially visible.
func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %v", subject.ErrSourceUnavailable, err)
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing: %v", subject.ErrSourceUnavailable, err)
	}
	return nil
}

func scanSubjects(rows *sql.Rows) ([]subject.Subject, error) {
	var subjects []subject.Subject
	for rows.Next() {
		sub, err := scanSubject(rows)
		if err != nil {
			return nil, wrapDBError(err)
		}
		subjects = append(subjects, *sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading rows: %v", subject.ErrSourceUnavailable, err)
	}
	if subjects == nil {
		subjects = []subject.Subject{}
	}
	return subjects, nil
}

// wrapDBError keeps codec errors (malformed rows) as-is and reports
// everything else as source unavailability.
func wrapDBError(err error) error {
	if errors.Is(err, subject.ErrMalformed) {
		return err
	}
	return fmt.Errorf("%w: %v", subject.ErrSourceUnavailable, err)
}
