package export

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/honeycarbs/talent-search/internal/domain"
	"github.com/honeycarbs/talent-search/pkg/sheets"
)

// ErrSheetsNotConfigured is returned when no Google Sheets credentials were provided
var ErrSheetsNotConfigured = errors.New("google sheets client not configured (GOOGLE_SHEETS_CREDENTIALS_PATH or GOOGLE_SHEETS_CREDENTIALS_JSON not set)")

// sheetsWriter is the subset of the Sheets client used by the exporter
type sheetsWriter interface {
	Append(ctx context.Context, spreadsheetID, rng string, rows [][]interface{}) error
	Replace(ctx context.Context, spreadsheetID, tab string, rows [][]interface{}) error
}

// SheetsTarget selects where rows go
type SheetsTarget struct {
	SpreadsheetID string `json:"spreadsheet_id"`
	Tab           string `json:"tab,omitempty"`
	// Append keeps existing rows and adds candidates without a header
	Append bool `json:"append,omitempty"`
}

type SheetsResult struct {
	SpreadsheetID string    `json:"spreadsheet_id"`
	Tab           string    `json:"tab"`
	WrittenRows   int       `json:"written_rows"`
	CompletedAt   time.Time `json:"completed_at"`
	Message       string    `json:"message"`
}

// SheetsExporter writes candidate tables into a spreadsheet
type SheetsExporter struct {
	client sheetsWriter
	clock  func() time.Time
}

// NewSheetsExporter accepts a nil client; Export then reports ErrSheetsNotConfigured
func NewSheetsExporter(client sheetsWriter) *SheetsExporter {
	return &SheetsExporter{client: client, clock: time.Now}
}

func (e *SheetsExporter) Configured() bool {
	return e != nil && e.client != nil
}

func (e *SheetsExporter) Export(ctx context.Context, target SheetsTarget, cs []domain.Candidate) (SheetsResult, error) {
	tab := strings.TrimSpace(target.Tab)
	if tab == "" {
		tab = "Candidates"
	}
	result := SheetsResult{SpreadsheetID: target.SpreadsheetID, Tab: tab}

	if !e.Configured() {
		result.Message = ErrSheetsNotConfigured.Error()
		return result, ErrSheetsNotConfigured
	}
	if strings.TrimSpace(target.SpreadsheetID) == "" {
		return result, fmt.Errorf("sheets: %w: spreadsheet id is required", domain.ErrInvalidInput)
	}

	if target.Append {
		if len(cs) == 0 {
			result.Message = "no rows to export"
			return result, nil
		}
		rows := Table(cs)[1:]
		if err := e.client.Append(ctx, target.SpreadsheetID, sheets.A1Range(tab, "A1"), rows); err != nil {
			return result, err
		}
	} else if err := e.client.Replace(ctx, target.SpreadsheetID, tab, Table(cs)); err != nil {
		return result, err
	}

	result.WrittenRows = len(cs)
	result.CompletedAt = e.clock().UTC()
	result.Message = fmt.Sprintf("successfully exported %d row(s)", len(cs))
	return result, nil
}
