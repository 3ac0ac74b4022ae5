package store

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/fishinghit/fishhit/internal/domain"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// ErrNotFound is returned when an id does not resolve to a stored record
var ErrNotFound = errors.New("record not found")

// Store handles local persistence of catches, spots, routes and checklists.
// Every mutation is written through to disk before the method returns.
type Store struct {
	db *sql.DB
}

// New opens (and if needed initializes) the database at the given path
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Initialize schema
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// AddCatch persists a new diary entry and returns it with id and
// creation time filled in
func (s *Store) AddCatch(c domain.CatchRecord) (*domain.CatchRecord, error) {
	c.ID = uuid.New().String()
	c.CreatedAt = time.Now()

	_, err := s.db.Exec(
		`INSERT INTO catches (id, fish_type, weight, length, photo, note, caught_at, audio_ref, video_ref, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.FishType, c.Weight, c.Length, c.Photo, c.Note, nullableTime(c.Date), c.AudioRef, c.VideoRef, c.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert catch: %w", err)
	}

	return &c, nil
}

// GetCatch retrieves a catch by id
func (s *Store) GetCatch(id string) (*domain.CatchRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, fish_type, weight, length, photo, note, caught_at, audio_ref, video_ref, created_at
		 FROM catches WHERE id = ?`, id,
	)
	c, err := scanCatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get catch: %w", err)
	}
	return c, nil
}

// ListCatches returns diary entries newest-first, narrowed by the filter.
// The zero filter returns everything.
func (s *Store) ListCatches(f domain.CatchFilter) ([]domain.CatchRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, fish_type, weight, length, photo, note, caught_at, audio_ref, video_ref, created_at
		 FROM catches ORDER BY caught_at DESC, created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list catches: %w", err)
	}
	defer rows.Close()

	var catches []domain.CatchRecord
	for rows.Next() {
		c, err := scanCatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan catch: %w", err)
		}
		if f.Matches(*c) {
			catches = append(catches, *c)
		}
	}

	return catches, rows.Err()
}

// UpdateCatchNote replaces the note text of an existing catch
func (s *Store) UpdateCatchNote(id, note string) error {
	res, err := s.db.Exec("UPDATE catches SET note = ? WHERE id = ?", note, id)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	return checkAffected(res)
}

// DeleteCatch removes a diary entry
func (s *Store) DeleteCatch(id string) error {
	res, err := s.db.Exec("DELETE FROM catches WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete catch: %w", err)
	}
	return checkAffected(res)
}

// TopFishTypes buckets the filtered diary by fish type, counts each bucket
// and returns at most n buckets sorted by descending count
func (s *Store) TopFishTypes(f domain.CatchFilter, n int) ([]domain.FishTypeCount, error) {
	catches, err := s.ListCatches(f)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	var order []string
	for _, c := range catches {
		name := c.FishType
		if name == "" {
			name = "Unknown"
		}
		if _, seen := counts[name]; !seen {
			order = append(order, name)
		}
		counts[name]++
	}

	out := make([]domain.FishTypeCount, 0, len(order))
	for _, name := range order {
		out = append(out, domain.FishTypeCount{FishType: name, Count: counts[name]})
	}
	// Stable sort keeps first-seen order between equal counts
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})

	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// CleanupInvalidCatches deletes entries whose stored photo is present but
// empty, which earlier app versions could produce from failed photo imports
func (s *Store) CleanupInvalidCatches() (int64, error) {
	res, err := s.db.Exec("DELETE FROM catches WHERE photo IS NOT NULL AND length(photo) = 0")
	if err != nil {
		return 0, fmt.Errorf("cleanup catches: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCatch(row rowScanner) (*domain.CatchRecord, error) {
	var c domain.CatchRecord
	var caughtAt sql.NullTime
	if err := row.Scan(&c.ID, &c.FishType, &c.Weight, &c.Length, &c.Photo, &c.Note, &caughtAt, &c.AudioRef, &c.VideoRef, &c.CreatedAt); err != nil {
		return nil, err
	}
	if caughtAt.Valid {
		t := caughtAt.Time
		c.Date = &t
	}
	return &c, nil
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
