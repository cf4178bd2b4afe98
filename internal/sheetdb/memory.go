package sheetdb

import (
	"context"
	"fmt"
	"sync"
)

// Memory is an in-process Backend with the same row semantics as the Sheets
// client. It backs tests and development mode when no Google credentials are
// configured.
type Memory struct {
	mu   sync.RWMutex
	rows map[string][][]string
}

func NewMemory() *Memory {
	return &Memory{rows: make(map[string][][]string)}
}

func (m *Memory) ReadRows(ctx context.Context, sheet string, cols int) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([][]string, 0, len(m.rows[sheet]))
	for _, row := range m.rows[sheet] {
		cp := make([]string, len(row))
		copy(cp, row)
		if len(cp) > cols {
			cp = cp[:cols]
		}
		out = append(out, cp)
	}
	return out, nil
}

func (m *Memory) AppendRow(ctx context.Context, sheet string, row []string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make([]string, len(row))
	copy(cp, row)
	m.rows[sheet] = append(m.rows[sheet], cp)
	return nil
}

func (m *Memory) WriteRow(ctx context.Context, sheet string, index int, row []string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if index < 0 || index >= len(m.rows[sheet]) {
		return fmt.Errorf("sheet %s: row %d out of range", sheet, index)
	}
	cp := make([]string, len(row))
	copy(cp, row)
	m.rows[sheet][index] = cp
	return nil
}

func (m *Memory) DeleteRow(ctx context.Context, sheet string, index int) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	rows := m.rows[sheet]
	if index < 0 || index >= len(rows) {
		return fmt.Errorf("sheet %s: row %d out of range", sheet, index)
	}
	m.rows[sheet] = append(rows[:index], rows[index+1:]...)
	return nil
}

func (m *Memory) Health(ctx context.Context) error {
	return ctx.Err()
}
