package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/researcher10001-hub/bytecity-accounting/internal/application/credentials"
	"github.com/researcher10001-hub/bytecity-accounting/internal/domain"
)

// RowStore exposes the tabs of one Google spreadsheet as tables.
type RowStore struct {
	svc           *gsheets.Service
	spreadsheetID string
}

// NewRowStore creates a Sheets API client for spreadsheetID.
func NewRowStore(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*RowStore, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("empty spreadsheet id")
	}
	svc, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &RowStore{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func (s *RowStore) Ping(ctx context.Context) error {
	_, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Fields("spreadsheetId").Context(ctx).Do()
	return err
}

func (s *RowStore) Table(ctx context.Context, name string) (credentials.Table, error) {
	ss, err := s.svc.Spreadsheets.Get(s.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return nil, domain.ErrStoreUnavailable(err)
	}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == name {
			return &Table{svc: s.svc, spreadsheetID: s.spreadsheetID, name: name}, nil
		}
	}
	return nil, domain.ErrTableNotFound(name)
}

type Table struct {
	svc           *gsheets.Service
	spreadsheetID string
	name          string
}

func (t *Table) ReadAllRows(ctx context.Context) ([][]string, error) {
	vr, err := t.svc.Spreadsheets.Values.Get(t.spreadsheetID, quoteSheet(t.name)).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", t.name, err)
	}

	rows := make([][]string, len(vr.Values))
	for i, r := range vr.Values {
		cells := make([]string, len(r))
		for j, v := range r {
			cells[j] = cellString(v)
		}
		rows[i] = cells
	}
	return rows, nil
}

// WriteCell updates exactly one cell using A1 notation (1-based).
func (t *Table) WriteCell(ctx context.Context, row, col int, value string) error {
	if row < 0 || col < 0 {
		return domain.ErrRowOutOfRange(row)
	}
	rng := fmt.Sprintf("%s!%s%d", quoteSheet(t.name), columnName(col), row+1)

	_, err := t.svc.Spreadsheets.Values.Update(t.spreadsheetID, rng, &gsheets.ValueRange{
		Values: [][]interface{}{{value}},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write %s: %w", rng, err)
	}
	return nil
}

// ---------- helpers ----------

func quoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// columnName converts a 0-based column index to its letter form (0 -> A, 26 -> AA).
func columnName(col int) string {
	name := ""
	for n := col + 1; n > 0; n = (n - 1) / 26 {
		name = string(rune('A'+(n-1)%26)) + name
	}
	return name
}

func cellString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
