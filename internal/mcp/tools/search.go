package tools

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/talent-search/internal/domain/search"
)

// CandidateSearchParams defines the arguments for the candidate_search tool
type CandidateSearchParams struct {
	Query   string   `json:"query" jsonschema:"Natural language description of the wanted candidate"`
	Filters []string `json:"filters,omitempty" jsonschema:"Filter chips to apply: skill names, locations or '5+ years'. Any match keeps a candidate."`
}

// CandidateSearchResult is returned by candidate_search and candidate_filter
type CandidateSearchResult struct {
	Query      string             `json:"query,omitempty"`
	State      string             `json:"state,omitempty"`
	Notice     string             `json:"notice,omitempty"`
	Analysis   string             `json:"analysis,omitempty"`
	Filters    []string           `json:"filters,omitempty"`
	Chips      []string           `json:"chips"`
	Total      int                `json:"total"`
	Candidates []CandidateSummary `json:"candidates"`
}

// WithCandidateSearch registers the candidate_search tool. Visible results are remembered in
// store when it is not nil.
func WithCandidateSearch(newController ControllerFactory, store CandidateStore) Option {
	return func(reg *registry) {
		if newController == nil {
			reg.logger.Warn("candidate_search not registered: no controller factory")
			return
		}
		h := &searchHandler{newController: newController, store: store, reg: reg}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "candidate_search",
			Description: "Semantic candidate search. Falls back to sample candidates when the search backend is unavailable.",
		}, h.handle)
		reg.add("candidate_search")
	}
}

type searchHandler struct {
	newController ControllerFactory
	store         CandidateStore
	reg           *registry
}

func (h *searchHandler) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params *CandidateSearchParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil || strings.TrimSpace(params.Query) == "" {
		return nil, nil, fmt.Errorf("candidate_search: query is required")
	}

	snap, err := runSearch(ctx, h.newController, params.Query, params.Filters)
	if err != nil {
		return nil, nil, err
	}

	if h.store != nil && !snap.Fallback && len(snap.Results) > 0 {
		if err := h.store.UpsertCandidates(ctx, snap.Results); err != nil {
			h.reg.logger.Warn("failed to remember search results", "err", err)
		}
	}

	result := snapshotResult(snap)
	return jsonResult(result), result, nil
}

func runSearch(ctx context.Context, newController ControllerFactory, query string, filters []string) (search.Snapshot, error) {
	ctrl, err := newController()
	if err != nil {
		return search.Snapshot{}, fmt.Errorf("candidate_search: %w", err)
	}

	ctrl.SubmitQuery(ctx, query)
	for _, f := range activeFilters(filters) {
		ctrl.ToggleFilter(f)
	}
	return ctrl.Snapshot(), nil
}

func snapshotResult(snap search.Snapshot) CandidateSearchResult {
	return CandidateSearchResult{
		Query:      snap.Query,
		State:      string(snap.State),
		Notice:     snap.Notice,
		Analysis:   snap.Analysis,
		Filters:    snap.ActiveFilters,
		Chips:      snap.Chips,
		Total:      len(snap.Visible),
		Candidates: summarize(snap.Visible),
	}
}
