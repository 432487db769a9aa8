package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/talent-search/internal/domain"
	"github.com/honeycarbs/talent-search/internal/domain/candidate"
	"github.com/honeycarbs/talent-search/internal/domain/facet"
)

// CandidateFilterParams defines the arguments for the candidate_filter tool
type CandidateFilterParams struct {
	Filters []string `json:"filters" jsonschema:"Filter chips; a candidate is kept when any chip matches"`
	IDs     []string `json:"ids,omitempty" jsonschema:"Restrict filtering to these stored candidate ids"`
}

// CandidateListParams defines the arguments for the candidate_list tool
type CandidateListParams struct {
	Sync bool `json:"sync,omitempty" jsonschema:"Pull the full list from the search backend before listing"`
}

// CandidateDetailParams defines the arguments for the candidate_detail tool
type CandidateDetailParams struct {
	ID    string `json:"id" jsonschema:"Candidate id"`
	Draft bool   `json:"draft,omitempty" jsonschema:"Include an outreach email draft"`
}

// CandidateDetailResult is the full profile plus screening material
type CandidateDetailResult struct {
	Candidate domain.Candidate   `json:"candidate"`
	Location  string             `json:"display_location"`
	Questions []string           `json:"screening_questions"`
	Outreach  string             `json:"outreach_draft,omitempty"`
	Related   []CandidateSummary `json:"related,omitempty"`
}

const relatedLimit = 3

// WithCandidateFilter registers the candidate_filter tool over stored candidates
func WithCandidateFilter(store CandidateStore) Option {
	return func(reg *registry) {
		if store == nil {
			reg.logger.Warn("candidate_filter not registered: no candidate store")
			return
		}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "candidate_filter",
			Description: "Apply filter chips to stored candidates and list the chips available for them",
		}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params *CandidateFilterParams) (*sdkmcp.CallToolResult, any, error) {
			cs, err := store.ListCandidates(ctx)
			if err != nil {
				return nil, nil, fmt.Errorf("candidate_filter: %w", err)
			}
			var filters []string
			if params != nil {
				cs = restrict(cs, params.IDs)
				filters = activeFilters(params.Filters)
			}

			visible := facet.Apply(cs, filters)
			result := CandidateSearchResult{
				Filters:    filters,
				Chips:      facet.Chips(cs),
				Total:      len(visible),
				Candidates: summarize(visible),
			}
			return jsonResult(result), result, nil
		})
		reg.add("candidate_filter")
	}
}

// WithCandidateList registers the candidate_list tool. syncer may be nil.
func WithCandidateList(store CandidateStore, syncer Syncer) Option {
	return func(reg *registry) {
		if store == nil {
			reg.logger.Warn("candidate_list not registered: no candidate store")
			return
		}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "candidate_list",
			Description: "List known candidates, best match first",
		}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params *CandidateListParams) (*sdkmcp.CallToolResult, any, error) {
			if params != nil && params.Sync {
				if syncer == nil {
					return nil, nil, errors.New("candidate_list: sync is not available")
				}
				if _, err := syncer.Sync(ctx); err != nil {
					return nil, nil, fmt.Errorf("candidate_list: %w", err)
				}
			}

			cs, err := store.ListCandidates(ctx)
			if err != nil {
				return nil, nil, fmt.Errorf("candidate_list: %w", err)
			}
			result := CandidateSearchResult{
				Chips:      facet.Chips(cs),
				Total:      len(cs),
				Candidates: summarize(cs),
			}
			return jsonResult(result), result, nil
		})
		reg.add("candidate_list")
	}
}

// WithCandidateDetail registers the candidate_detail tool. drafter may be nil.
func WithCandidateDetail(store CandidateStore, drafter Drafter) Option {
	return func(reg *registry) {
		if store == nil {
			reg.logger.Warn("candidate_detail not registered: no candidate store")
			return
		}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "candidate_detail",
			Description: "Full candidate profile with screening questions and an optional outreach draft",
		}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params *CandidateDetailParams) (*sdkmcp.CallToolResult, any, error) {
			if params == nil || strings.TrimSpace(params.ID) == "" {
				return nil, nil, errors.New("candidate_detail: id is required")
			}

			c, err := store.FindByID(ctx, domain.CandidateID(strings.TrimSpace(params.ID)))
			if err != nil {
				return nil, nil, fmt.Errorf("candidate_detail: %w", err)
			}

			result := CandidateDetailResult{
				Candidate: c,
				Location:  c.DisplayLocation(),
				Questions: candidate.ScreeningQuestions(c.Skills),
			}
			related, err := store.FindRelated(ctx, c, relatedLimit)
			if err != nil {
				reg.logger.Warn("related candidates lookup failed", "candidate", c.ID, "err", err)
			}
			for _, rc := range related {
				result.Related = append(result.Related, summarize([]domain.Candidate{rc.Candidate})...)
			}
			if params.Draft && drafter != nil {
				body, err := drafter.Draft(ctx, c)
				if err != nil {
					return nil, nil, fmt.Errorf("candidate_detail: draft: %w", err)
				}
				result.Outreach = body
			}
			return jsonResult(result), result, nil
		})
		reg.add("candidate_detail")
	}
}

func restrict(cs []domain.Candidate, ids []string) []domain.Candidate {
	if len(ids) == 0 {
		return cs
	}
	want := make(map[domain.CandidateID]struct{}, len(ids))
	for _, id := range ids {
		want[domain.CandidateID(strings.TrimSpace(id))] = struct{}{}
	}
	out := make([]domain.Candidate, 0, len(ids))
	for _, c := range cs {
		if _, ok := want[c.ID]; ok {
			out = append(out, c)
		}
	}
	return out
}
