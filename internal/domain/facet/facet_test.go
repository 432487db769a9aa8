package facet

import (
	"reflect"
	"testing"

	"github.com/honeycarbs/talent-search/internal/domain"
	"github.com/honeycarbs/talent-search/internal/fixtures"
)

func cand(id string, location string, years int, skills ...string) domain.Candidate {
	return domain.Candidate{
		ID:         domain.CandidateID(id),
		Location:   location,
		Skills:     skills,
		Experience: domain.Experience{Years: years},
	}
}

func ids(cs []domain.Candidate) []domain.CandidateID {
	out := make([]domain.CandidateID, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

func TestApplyORSemantics(t *testing.T) {
	results := []domain.Candidate{
		cand("a", "Mumbai", 2, "React"),
		cand("b", "Delhi", 3, "Vue"),
		cand("c", "Bangalore", 1, "Go"),
	}

	got := ids(Apply(results, []string{"React", "Bangalore"}))
	want := []domain.CandidateID{"a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestApplyEmptyIsIdentity(t *testing.T) {
	results := fixtures.Candidates()

	got := Apply(results, nil)
	if !reflect.DeepEqual(ids(got), ids(results)) {
		t.Fatalf("expected identity, got %v", ids(got))
	}

	got[0] = domain.Candidate{}
	if results[0].ID != "1" {
		t.Fatal("Apply must return a new slice")
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name   string
		c      domain.Candidate
		filter string
		want   bool
	}{
		{name: "skill exact", c: cand("1", "Pune", 1, "React"), filter: "React", want: true},
		{name: "skill case differs", c: cand("1", "Pune", 1, "React"), filter: "react", want: false},
		{name: "location", c: cand("1", "Pune", 1), filter: "Pune", want: true},
		{name: "experience boundary", c: cand("1", "", 5), filter: Experienced, want: true},
		{name: "experience below", c: cand("1", "", 4), filter: Experienced, want: false},
		{name: "empty location never matches", c: cand("1", "", 1), filter: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.c, tt.filter); got != tt.want {
				t.Fatalf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToggleTwiceIsIdentity(t *testing.T) {
	start := []string{"React", "Pune"}
	once := Toggle(start, Experienced)
	if !reflect.DeepEqual(once, []string{"React", "Pune", Experienced}) {
		t.Fatalf("unexpected toggle result %v", once)
	}

	twice := Toggle(once, Experienced)
	if !reflect.DeepEqual(twice, start) {
		t.Fatalf("toggle twice = %v, want %v", twice, start)
	}
	if !reflect.DeepEqual(start, []string{"React", "Pune"}) {
		t.Fatal("Toggle modified its input")
	}
}

func TestChips(t *testing.T) {
	got := Chips(fixtures.Candidates())

	want := []string{
		"React", "Node.js", "AWS", "JavaScript", "Docker", "TypeScript", "MongoDB", "Express",
		"Bangalore", "Hyderabad", "Pune", "Mumbai",
		Experienced,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Chips =\n%v\nwant\n%v", got, want)
	}
}

func TestChipsCollapseDuplicates(t *testing.T) {
	results := []domain.Candidate{
		cand("1", "Go", 1, "Go", "Go"),
		cand("2", "Berlin", 1, "Rust"),
	}

	got := Chips(results)
	want := []string{"Go", "Rust", "Berlin", Experienced}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Chips = %v, want %v", got, want)
	}
}
