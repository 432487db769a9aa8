package neo4j

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/honeycarbs/talent-search/internal/domain"
	"github.com/honeycarbs/talent-search/internal/fixtures"

	pkgneo4j "github.com/honeycarbs/talent-search/pkg/neo4j"
)

func TestCandidateParamsRoundTrip(t *testing.T) {
	want := fixtures.Candidates()[0]
	want.Experience.Raw = "6+ years"

	params, err := candidateParams(want)
	if err != nil {
		t.Fatalf("candidateParams: %v", err)
	}

	// the driver hands lists back as []any
	props := make(map[string]any, len(params))
	for k, v := range params {
		if ss, ok := v.([]string); ok {
			items := make([]any, len(ss))
			for i, s := range ss {
				items[i] = s
			}
			v = items
		}
		props[k] = v
	}

	got, err := nodeToCandidate(props)
	if err != nil {
		t.Fatalf("nodeToCandidate: %v", err)
	}

	if got.ID != want.ID || got.Name != want.Name || got.MatchScore != want.MatchScore {
		t.Fatalf("scalar fields lost: %+v", got)
	}
	if got.Experience != want.Experience {
		t.Fatalf("experience lost: %+v", got.Experience)
	}
	if len(got.Skills) != len(want.Skills) || got.Skills[4] != "AWS" {
		t.Fatalf("skills lost: %v", got.Skills)
	}
	if len(got.WorkHistory) != 2 || got.WorkHistory[1].Company != "WebCraft" || len(got.WorkHistory[0].Details) != 3 {
		t.Fatalf("work history lost: %+v", got.WorkHistory)
	}
	if len(got.Education) != 1 || got.Education[0].Institution != "IIT Delhi" {
		t.Fatalf("education lost: %+v", got.Education)
	}
}

func TestCandidateParamsRequiresID(t *testing.T) {
	if _, err := candidateParams(domain.Candidate{Name: "x"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCandidateParamsEmptyLists(t *testing.T) {
	params, err := candidateParams(domain.Candidate{ID: "1"})
	if err != nil {
		t.Fatalf("candidateParams: %v", err)
	}
	if ss, ok := params["skills"].([]string); !ok || ss == nil {
		t.Fatalf("expected empty non-nil skills, got %#v", params["skills"])
	}
}

func TestCandidateRepositoryIntegration(t *testing.T) {
	uri := os.Getenv("NEO4J_URI")
	if uri == "" {
		t.Skip("NEO4J_URI must be set to run this test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	client, err := pkgneo4j.NewClient(ctx, pkgneo4j.Config{
		URI:      uri,
		Username: os.Getenv("NEO4J_USERNAME"),
		Password: os.Getenv("NEO4J_PASSWORD"),
		Database: os.Getenv("NEO4J_DATABASE"),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close(ctx)

	repo := NewCandidateRepository(client)
	if err := repo.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	if err := repo.UpsertCandidates(ctx, fixtures.Candidates()); err != nil {
		t.Fatalf("UpsertCandidates: %v", err)
	}

	got, err := repo.FindByID(ctx, "4")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Name != "Neha Gupta" {
		t.Fatalf("unexpected candidate %+v", got)
	}

	if _, err := repo.FindByID(ctx, "does-not-exist"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	related, err := repo.FindRelated(ctx, fixtures.Candidates()[0], 3)
	if err != nil {
		t.Fatalf("FindRelated: %v", err)
	}
	if len(related) == 0 || related[0].Relevance < related[len(related)-1].Relevance {
		t.Fatalf("unexpected related candidates %+v", related)
	}
}

func TestParseRelated(t *testing.T) {
	records := []*neo4j.Record{{
		Keys: []string{"c", "sharedSkills", "relevance"},
		Values: []any{
			neo4j.Node{Props: map[string]any{"id": "5", "name": "Vikram Singh", "matchScore": int64(94)}},
			[]any{"React", "AWS"},
			int64(4),
		},
	}}

	got, err := parseRelated(records)
	if err != nil {
		t.Fatalf("parseRelated: %v", err)
	}
	if len(got) != 1 || got[0].Candidate.Name != "Vikram Singh" || got[0].Relevance != 4 {
		t.Fatalf("unexpected result %+v", got)
	}
	if len(got[0].SharedSkills) != 2 || got[0].SharedSkills[1] != "AWS" {
		t.Fatalf("shared skills lost: %v", got[0].SharedSkills)
	}
}
