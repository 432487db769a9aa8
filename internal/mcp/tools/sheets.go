package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/talent-search/internal/domain"
	"github.com/honeycarbs/talent-search/internal/domain/facet"
	"github.com/honeycarbs/talent-search/internal/export"
)

// SheetsExportParams defines the arguments for the sheets_export tool
type SheetsExportParams struct {
	Query   string   `json:"query,omitempty" jsonschema:"Search query; stored candidates are exported when empty"`
	Filters []string `json:"filters,omitempty" jsonschema:"Filter chips applied before export"`
	Append  bool     `json:"append,omitempty" jsonschema:"Append rows instead of replacing the tab"`
	Sheet   struct {
		SpreadsheetID string `json:"spreadsheet_id" jsonschema:"Google Sheets document ID"`
		Tab           string `json:"tab,omitempty" jsonschema:"Tab name, Candidates by default"`
	} `json:"sheet" jsonschema:"Destination sheet information"`
}

// WithSheetsExport registers the sheets_export tool
func WithSheetsExport(exporter SheetsExporter, newController ControllerFactory, store CandidateStore) Option {
	return func(reg *registry) {
		if exporter == nil {
			reg.logger.Warn("sheets_export not registered: no exporter")
			return
		}
		h := &sheetsHandler{exporter: exporter, newController: newController, store: store}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "sheets_export",
			Description: "Export search results or stored candidates to Google Sheets",
		}, h.handle)
		reg.add("sheets_export")
	}
}

type sheetsHandler struct {
	exporter      SheetsExporter
	newController ControllerFactory
	store         CandidateStore
}

func (h *sheetsHandler) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params *SheetsExportParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil {
		return nil, nil, errors.New("sheets_export: sheet is required")
	}

	cs, err := h.candidates(ctx, params)
	if err != nil {
		return nil, nil, err
	}

	result, err := h.exporter.Export(ctx, export.SheetsTarget{
		SpreadsheetID: params.Sheet.SpreadsheetID,
		Tab:           params.Sheet.Tab,
		Append:        params.Append,
	}, cs)
	if err != nil {
		return nil, nil, fmt.Errorf("sheets_export: %w", err)
	}
	return jsonResult(result), result, nil
}

func (h *sheetsHandler) candidates(ctx context.Context, params *SheetsExportParams) ([]domain.Candidate, error) {
	if strings.TrimSpace(params.Query) != "" {
		if h.newController == nil {
			return nil, errors.New("sheets_export: search is not available")
		}
		snap, err := runSearch(ctx, h.newController, params.Query, params.Filters)
		if err != nil {
			return nil, err
		}
		return snap.Visible, nil
	}

	if h.store == nil {
		return nil, errors.New("sheets_export: query is required")
	}
	cs, err := h.store.ListCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets_export: %w", err)
	}
	return facet.Apply(cs, activeFilters(params.Filters)), nil
}
