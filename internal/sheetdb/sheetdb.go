// Package sheetdb provides row-level access to the spreadsheet that backs
// all persistence. Each sheet holds one header row; data rows start at
// sheet row 2 and are addressed here by 0-based data index.
package sheetdb

import (
	"context"
	"errors"
)

// ErrUnavailable wraps any transport failure talking to the backing store.
var ErrUnavailable = errors.New("backing store unavailable")

// Backend is the contract both the Google Sheets client and the in-memory
// store implement. Row indices are only valid for the call that resolved
// them; callers must re-scan before every write.
type Backend interface {
	// ReadRows returns all data rows of a sheet, at most cols cells wide.
	// An empty or missing sheet yields an empty slice, never an error.
	ReadRows(ctx context.Context, sheet string, cols int) ([][]string, error)
	// AppendRow adds a trailing data row.
	AppendRow(ctx context.Context, sheet string, row []string) error
	// WriteRow rewrites the data row at index in place.
	WriteRow(ctx context.Context, sheet string, index int, row []string) error
	// DeleteRow removes the data row at index; later rows shift up by one.
	DeleteRow(ctx context.Context, sheet string, index int) error
	// Health probes connectivity to the store.
	Health(ctx context.Context) error
}

// IsUnavailable reports whether err came from the backing store transport.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
