package tools

import (
	"encoding/json"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/talent-search/internal/domain"
	"github.com/honeycarbs/talent-search/internal/domain/facet"
)

// CandidateSummary is the compact record returned by list-style tools
type CandidateSummary struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Location   string   `json:"location"`
	Skills     []string `json:"skills"`
	Experience string   `json:"experience"`
	Years      int      `json:"experience_years"`
	MatchScore int      `json:"match_score"`
}

func summarize(cs []domain.Candidate) []CandidateSummary {
	out := make([]CandidateSummary, 0, len(cs))
	for _, c := range cs {
		out = append(out, CandidateSummary{
			ID:         string(c.ID),
			Name:       c.Name,
			Location:   c.DisplayLocation(),
			Skills:     append([]string{}, c.Skills...),
			Experience: c.Experience.String(),
			Years:      c.Experience.Years,
			MatchScore: c.MatchScore,
		})
	}
	return out
}

// jsonResult returns v as indented JSON text so clients without structured output can read it
func jsonResult(v any) *sdkmcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return textResult(err.Error())
	}
	return textResult(string(data))
}

func textResult(msg string) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: msg},
		},
	}
}

// activeFilters toggles each non-blank filter on in order, so a repeated filter cancels out
// the same way two clicks on a chip do
func activeFilters(filters []string) []string {
	var active []string
	for _, f := range filters {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		active = facet.Toggle(active, f)
	}
	return active
}
