package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/honeycarbs/talent-search/internal/domain"
)

const (
	summarySheet    = "Summary"
	candidatesSheet = "Candidates"
)

// WriteXLSX writes a workbook with a summary sheet and one row per candidate
func WriteXLSX(w io.Writer, cs []domain.Candidate, meta Meta) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("export: rename sheet: %w", err)
	}
	if _, err := f.NewSheet(candidatesSheet); err != nil {
		return fmt.Errorf("export: create sheet: %w", err)
	}

	if err := writeSummary(f, cs, meta); err != nil {
		return fmt.Errorf("export: summary sheet: %w", err)
	}
	if err := writeCandidates(f, cs); err != nil {
		return fmt.Errorf("export: candidates sheet: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: write workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, cs []domain.Candidate, meta Meta) error {
	if err := f.SetColWidth(summarySheet, "A", "A", 22); err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "B", "B", 60); err != nil {
		return err
	}

	labelStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	generated := meta.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	source := "search backend"
	if meta.Fallback {
		source = "sample candidates"
	}

	rows := [][2]interface{}{
		{"Query", meta.Query},
		{"Filters", strings.Join(meta.Filters, ", ")},
		{"Source", source},
		{"Candidates", len(cs)},
		{"Generated", generated.Format("2006-01-02 15:04:05")},
	}
	for i, r := range rows {
		row := i + 1
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), r[0]); err != nil {
			return err
		}
		if err := f.SetCellStyle(summarySheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), labelStyle); err != nil {
			return err
		}
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), r[1]); err != nil {
			return err
		}
	}
	return nil
}

func writeCandidates(f *excelize.File, cs []domain.Candidate) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	for i, row := range Table(cs) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(candidatesSheet, cell, &row); err != nil {
			return err
		}
	}

	last, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(candidatesSheet, "A1", last+"1", headerStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(candidatesSheet, "B", "B", 24); err != nil {
		return err
	}
	if err := f.SetColWidth(candidatesSheet, "I", "J", 48); err != nil {
		return err
	}
	return f.SetPanes(candidatesSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
