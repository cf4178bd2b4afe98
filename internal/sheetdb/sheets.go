package sheetdb

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"

	"fleetledger-backend/internal/config"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

// Rows 2..1000 of each sheet hold data; this matches the ranges existing
// spreadsheets were written with.
const lastDataRow = 1000

// Sheets talks to the Google Sheets API. Every call carries a bounded
// timeout and transport failures surface as ErrUnavailable.
type Sheets struct {
	svc           *sheets.Service
	spreadsheetID string
	timeout       time.Duration

	mu       sync.Mutex
	sheetIDs map[string]int64
}

// New creates the Sheets client and verifies the spreadsheet is reachable.
func New(ctx context.Context, cfg config.Config) (*Sheets, error) {
	opts, err := credentialOptions(cfg)
	if err != nil {
		return nil, err
	}
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	s := &Sheets{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		timeout:       cfg.SheetsTimeout,
		sheetIDs:      make(map[string]int64),
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.SheetsTimeout)
	defer cancel()
	if err := s.Health(pingCtx); err != nil {
		return nil, fmt.Errorf("spreadsheet ping failed: %w", err)
	}
	return s, nil
}

// credentialOptions accepts inline JSON, base64-encoded JSON, or a file path
// in GOOGLE_CREDENTIALS, so deployments can avoid writing a key file.
func credentialOptions(cfg config.Config) ([]option.ClientOption, error) {
	cred := strings.TrimSpace(cfg.GoogleCredentials)
	if cred == "" {
		return nil, fmt.Errorf("GOOGLE_CREDENTIALS is required for the sheets backend")
	}

	scope := option.WithScopes(sheets.SpreadsheetsScope)
	if strings.HasPrefix(cred, "{") {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(cred)), scope}, nil
	}
	if decoded, err := base64.StdEncoding.DecodeString(cred); err == nil && strings.HasPrefix(strings.TrimSpace(string(decoded)), "{") {
		return []option.ClientOption{option.WithCredentialsJSON(decoded), scope}, nil
	}
	return []option.ClientOption{option.WithCredentialsFile(cred), scope}, nil
}

func (s *Sheets) ReadRows(ctx context.Context, sheet string, cols int) ([][]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rng := fmt.Sprintf("%s!A2:%s%d", sheet, colLetter(cols), lastDataRow)
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrUnavailable, sheet, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, 0, len(raw))
		for _, cell := range raw {
			row = append(row, fmt.Sprint(cell))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *Sheets) AppendRow(ctx context.Context, sheet string, row []string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rng := fmt.Sprintf("%s!A:%s", sheet, colLetter(len(row)))
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, rng, valueRange(row)).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: append %s: %v", ErrUnavailable, sheet, err)
	}
	return nil
}

func (s *Sheets) WriteRow(ctx context.Context, sheet string, index int, row []string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	sheetRow := index + 2
	rng := fmt.Sprintf("%s!A%d:%s%d", sheet, sheetRow, colLetter(len(row)), sheetRow)
	_, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, rng, valueRange(row)).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: write %s row %d: %v", ErrUnavailable, sheet, index, err)
	}
	return nil
}

func (s *Sheets) DeleteRow(ctx context.Context, sheet string, index int) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	sheetID, err := s.sheetID(ctx, sheet)
	if err != nil {
		return err
	}
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(index + 1), // header row occupies index 0
					EndIndex:   int64(index + 2),
				},
			},
		}},
	}
	if _, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%w: delete %s row %d: %v", ErrUnavailable, sheet, index, err)
	}
	return nil
}

// Health checks spreadsheet connectivity.
func (s *Sheets) Health(ctx context.Context) error {
	_, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Fields("spreadsheetId").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// sheetID resolves a sheet title to its numeric id, caching the lookup.
func (s *Sheets) sheetID(ctx context.Context, sheet string) (int64, error) {
	s.mu.Lock()
	if id, ok := s.sheetIDs[sheet]; ok {
		s.mu.Unlock()
		return id, nil
	}
	s.mu.Unlock()

	resp, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("%w: resolve sheet %s: %v", ErrUnavailable, sheet, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sh := range resp.Sheets {
		if sh.Properties != nil {
			s.sheetIDs[sh.Properties.Title] = sh.Properties.SheetId
		}
	}
	id, ok := s.sheetIDs[sheet]
	if !ok {
		return 0, fmt.Errorf("%w: sheet %s not found", ErrUnavailable, sheet)
	}
	return id, nil
}

func valueRange(row []string) *sheets.ValueRange {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return &sheets.ValueRange{Values: [][]interface{}{cells}}
}

func colLetter(n int) string {
	// Collections here never exceed 12 columns.
	return string(rune('A' + n - 1))
}
