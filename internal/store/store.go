// Package store treats the spreadsheet as a schemaless-row database with a
// fixed column order per collection. Lookups are linear scans; the data
// volume is hundreds to low thousands of rows and nothing here may assume
// indexed access.
package store

import (
	"context"
	"errors"
	"sync"

	"fleetledger-backend/internal/sheetdb"
)

// ErrNotFound is returned when no row matches an id or predicate.
var ErrNotFound = errors.New("record not found")

// Collection binds a record type to its sheet and column codec. The first
// column of every collection is the record id; the column order is a wire
// format shared with existing spreadsheets and must not change.
type Collection[T any] struct {
	Sheet  string
	Header []string
	Encode func(T) []string
	Decode func([]string) T
}

// Store serializes all mutations on one in-process queue per backing store.
// The backing store has no transactions or locking of its own, so this is
// the only defense against lost updates and row-shift races. Reads do not
// take the lock and may observe data slightly older than an in-flight write.
type Store struct {
	backend sheetdb.Backend
	mu      sync.Mutex
}

func New(backend sheetdb.Backend) *Store {
	return &Store{backend: backend}
}

// List fetches and decodes all rows of a collection.
func List[T any](ctx context.Context, s *Store, c Collection[T]) ([]T, error) {
	rows, err := s.backend.ReadRows(ctx, c.Sheet, len(c.Header))
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		out = append(out, c.Decode(pad(row, len(c.Header))))
	}
	return out, nil
}

// Find returns the first record matching pred, scanning in row order.
func Find[T any](ctx context.Context, s *Store, c Collection[T], pred func(T) bool) (T, error) {
	var zero T
	records, err := List(ctx, s, c)
	if err != nil {
		return zero, err
	}
	for _, rec := range records {
		if pred(rec) {
			return rec, nil
		}
	}
	return zero, ErrNotFound
}

// Get looks a record up by id.
func Get[T any](ctx context.Context, s *Store, c Collection[T], id string) (T, error) {
	var zero T
	rows, err := s.backend.ReadRows(ctx, c.Sheet, len(c.Header))
	if err != nil {
		return zero, err
	}
	idx := indexOf(rows, id)
	if idx < 0 {
		return zero, ErrNotFound
	}
	return c.Decode(pad(rows[idx], len(c.Header))), nil
}

// Insert appends the record as a new trailing row. The store enforces no
// uniqueness; callers pre-check natural keys by scanning.
func Insert[T any](ctx context.Context, s *Store, c Collection[T], rec T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backend.AppendRow(ctx, c.Sheet, c.Encode(rec))
}

// Mutate applies fn to the current record and rewrites the full row at its
// position. The id→index resolution happens inside the critical section on
// every call, so a racing delete surfaces as ErrNotFound rather than a write
// to an unrelated row.
func Mutate[T any](ctx context.Context, s *Store, c Collection[T], id string, fn func(T) T) (T, error) {
	var zero T
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.backend.ReadRows(ctx, c.Sheet, len(c.Header))
	if err != nil {
		return zero, err
	}
	idx := indexOf(rows, id)
	if idx < 0 {
		return zero, ErrNotFound
	}
	next := fn(c.Decode(pad(rows[idx], len(c.Header))))
	if err := s.backend.WriteRow(ctx, c.Sheet, idx, c.Encode(next)); err != nil {
		return zero, err
	}
	return next, nil
}

// Delete removes exactly the row holding id; later rows shift up by one.
func Delete[T any](ctx context.Context, s *Store, c Collection[T], id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.backend.ReadRows(ctx, c.Sheet, len(c.Header))
	if err != nil {
		return err
	}
	idx := indexOf(rows, id)
	if idx < 0 {
		return ErrNotFound
	}
	return s.backend.DeleteRow(ctx, c.Sheet, idx)
}

// Health reports backing store connectivity.
func (s *Store) Health(ctx context.Context) error {
	return s.backend.Health(ctx)
}

func indexOf(rows [][]string, id string) int {
	if id == "" {
		return -1
	}
	for i, row := range rows {
		if len(row) > 0 && row[0] == id {
			return i
		}
	}
	return -1
}

func pad(row []string, n int) []string {
	if len(row) >= n {
		return row
	}
	out := make([]string, n)
	copy(out, row)
	return out
}
