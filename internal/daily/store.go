// internal/daily/store.go
//
// SQLite-backed catalog of board snapshots.
// Boards are stored as canonical layouts and keyed by a blake2b fingerprint
// of that layout, so re-importing the same grid is a no-op.

package daily

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/robalobadob/waffle-cheatsheet/internal/ingest"
)

// ErrNoBoards is returned when the catalog has nothing to offer.
var ErrNoBoards = errors.New("no boards in catalog")

// Entry is a catalog row.
type Entry struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Date   string `json:"date,omitempty"`
	Layout string `json:"layout"`
}

// Board converts the entry back into a board document.
func (e Entry) Board() ingest.Board {
	return ingest.Board{Name: e.Name, Date: e.Date, Layout: e.Layout}
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Fingerprint returns the catalog ID for a canonical layout.
func Fingerprint(layout string) string {
	sum := blake2b.Sum256([]byte(layout))
	return hex.EncodeToString(sum[:16])
}

// Add normalizes b and inserts it. added is false when the grid was already
// in the catalog.
func (s *Store) Add(ctx context.Context, b ingest.Board) (id string, added bool, err error) {
	nb, err := b.Normalize()
	if err != nil {
		return "", false, err
	}
	id = Fingerprint(nb.Layout)
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO boards(id, name, date, layout) VALUES(?,?,?,?)`,
		id, nb.Name, nb.Date, nb.Layout,
	)
	if err != nil {
		return "", false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "", false, err
	}
	return id, n > 0, nil
}

// Get loads a board by ID.
func (s *Store) Get(ctx context.Context, id string) (Entry, error) {
	var e Entry
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, date, layout FROM boards WHERE id=?`, id,
	).Scan(&e.ID, &e.Name, &e.Date, &e.Layout)
	return e, err
}

// Count returns the number of boards in the catalog.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM boards`).Scan(&n)
	return n, err
}

// List returns catalog entries ordered by ID.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, date, layout FROM boards ORDER BY id LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Name, &e.Date, &e.Layout); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ForDay picks the board for the given day: a board dated that day if one
// exists, otherwise the board at BoardIndex(day, salt, count) in ID order.
func (s *Store) ForDay(ctx context.Context, day time.Time, salt string) (Entry, error) {
	var e Entry
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, date, layout FROM boards WHERE date=? ORDER BY id LIMIT 1`, DateKey(day),
	).Scan(&e.ID, &e.Name, &e.Date, &e.Layout)
	if err == nil {
		return e, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return Entry{}, err
	}

	n, err := s.Count(ctx)
	if err != nil {
		return Entry{}, err
	}
	if n == 0 {
		return Entry{}, ErrNoBoards
	}
	err = s.db.QueryRowContext(ctx,
		`SELECT id, name, date, layout FROM boards ORDER BY id LIMIT 1 OFFSET ?`, BoardIndex(day, salt, n),
	).Scan(&e.ID, &e.Name, &e.Date, &e.Layout)
	return e, err
}
