package main

import (
	"bytes"
	"strings"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/talent-search/internal/domain/facet"
	"github.com/honeycarbs/talent-search/internal/mcp/tools"
)

func TestToCandidatesRestoresRemoteForFiltering(t *testing.T) {
	cs := toCandidates([]tools.CandidateSummary{
		{ID: "1", Name: "Asha", Location: "Remote", Skills: []string{"Go"}, Years: 2},
		{ID: "2", Name: "Vikram", Location: "Mumbai", Skills: []string{"Python"}, Years: 7},
	})

	if cs[0].Location != "" || cs[0].DisplayLocation() != "Remote" {
		t.Fatalf("expected remote candidate to have empty location, got %q", cs[0].Location)
	}

	got := facet.Apply(cs, []string{facet.Experienced})
	if len(got) != 1 || got[0].Name != "Vikram" {
		t.Fatalf("expected only Vikram for %q, got %+v", facet.Experienced, got)
	}
}

func TestChipItemsMarksActive(t *testing.T) {
	items := chipItems([]string{"Go", "Mumbai"}, []string{"Mumbai"})
	want := []string{"[ ] Go", "[x] Mumbai", doneItem}
	if strings.Join(items, "|") != strings.Join(want, "|") {
		t.Fatalf("expected %v, got %v", want, items)
	}
}

func TestDecodeResultReportsToolError(t *testing.T) {
	res := &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: "query is required"}},
	}
	var out tools.CandidateSearchResult
	err := decodeResult("candidate_search", res, &out)
	if err == nil || !strings.Contains(err.Error(), "query is required") {
		t.Fatalf("expected tool error, got %v", err)
	}
}

func TestPrintCandidates(t *testing.T) {
	var buf bytes.Buffer
	printCandidates(&buf, toCandidates([]tools.CandidateSummary{
		{ID: "7", Name: "Neha", Location: "Pune", Skills: []string{"Java", "Spring"}, Experience: "4 years", MatchScore: 88},
	}))

	out := buf.String()
	for _, want := range []string{"Neha", "Pune", "88%", "Java, Spring", "1 candidate(s)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}
