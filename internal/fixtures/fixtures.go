// Package fixtures holds the sample candidates shown when the search backend is unreachable
// and on the upload page before anything was uploaded.
package fixtures

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/honeycarbs/talent-search/internal/domain"
	"github.com/honeycarbs/talent-search/internal/domain/candidate"
)

//go:embed candidates.json
var candidatesJSON []byte

var load = sync.OnceValues(func() ([]domain.Candidate, error) {
	dec := json.NewDecoder(bytes.NewReader(candidatesJSON))
	dec.UseNumber()

	var raws []map[string]any
	if err := dec.Decode(&raws); err != nil {
		return nil, fmt.Errorf("fixtures: decode: %w", err)
	}
	return candidate.NormalizeAll(raws)
})

// Candidates returns a fresh copy of the sample candidates in their stored order
func Candidates() []domain.Candidate {
	cs, err := load()
	if err != nil {
		// embedded data is validated by tests
		panic(err)
	}
	return domain.CloneAll(cs)
}

// ByScore returns the sample candidates sorted by match score, highest first.
// Equal scores keep their stored order.
func ByScore() []domain.Candidate {
	cs := Candidates()
	sort.SliceStable(cs, func(i, j int) bool {
		return cs[i].MatchScore > cs[j].MatchScore
	})
	return cs
}

// First returns up to n sample candidates in stored order
func First(n int) []domain.Candidate {
	cs := Candidates()
	if n < len(cs) {
		cs = cs[:n]
	}
	return cs
}
