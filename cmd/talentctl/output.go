package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/talent-search/internal/domain"
	"github.com/honeycarbs/talent-search/internal/mcp/tools"
)

// decodeResult reads the JSON text a tool returned into out
func decodeResult(tool string, res *sdkmcp.CallToolResult, out any) error {
	text := resultText(res)
	if res.IsError {
		return fmt.Errorf("%s: %s", tool, text)
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("%s: decode result: %w", tool, err)
	}
	return nil
}

func resultText(res *sdkmcp.CallToolResult) string {
	var b strings.Builder
	for _, c := range res.Content {
		if t, ok := c.(*sdkmcp.TextContent); ok {
			b.WriteString(t.Text)
		}
	}
	return b.String()
}

// toCandidates rebuilds enough of each candidate for local filtering
func toCandidates(in []tools.CandidateSummary) []domain.Candidate {
	out := make([]domain.Candidate, 0, len(in))
	for _, s := range in {
		loc := s.Location
		if loc == domain.RemoteLocation {
			loc = ""
		}
		out = append(out, domain.Candidate{
			ID:         domain.CandidateID(s.ID),
			Name:       s.Name,
			Location:   loc,
			Skills:     s.Skills,
			Experience: domain.Experience{Years: s.Years, Raw: s.Experience},
			MatchScore: s.MatchScore,
		})
	}
	return out
}

func printCandidates(w io.Writer, cs []domain.Candidate) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLOCATION\tEXPERIENCE\tSCORE\tSKILLS")
	for _, c := range cs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d%%\t%s\n",
			c.ID, c.Name, c.DisplayLocation(), c.Experience, c.MatchScore, strings.Join(c.Skills, ", "))
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "%d candidate(s)\n", len(cs))
}
