// Package facet implements the local result filters. Active filters combine with OR: a candidate
// is visible when any active filter matches it.
package facet

import (
	"sort"

	"github.com/honeycarbs/talent-search/internal/domain"
)

const (
	// Experienced matches candidates with at least ExperiencedYears years
	Experienced      = "5+ years"
	ExperiencedYears = 5

	// MaxSkillChips caps the number of skill chips offered
	MaxSkillChips = 8
)

// Matches reports whether filter f matches candidate c
func Matches(c domain.Candidate, f string) bool {
	if f == Experienced && c.Experience.Years >= ExperiencedYears {
		return true
	}
	if c.Location != "" && f == c.Location {
		return true
	}
	return c.HasSkill(f)
}

// Apply returns the candidates matching any active filter. With no active filters the result
// holds every candidate. The input slice is never modified.
func Apply(results []domain.Candidate, active []string) []domain.Candidate {
	out := make([]domain.Candidate, 0, len(results))
	if len(active) == 0 {
		return append(out, results...)
	}

	for _, c := range results {
		for _, f := range active {
			if Matches(c, f) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// Toggle adds tag to active when absent and removes it otherwise. Order of first activation
// is preserved and active is not modified.
func Toggle(active []string, tag string) []string {
	out := make([]string, 0, len(active)+1)
	found := false
	for _, f := range active {
		if f == tag {
			found = true
			continue
		}
		out = append(out, f)
	}
	if !found {
		out = append(out, tag)
	}
	return out
}

// Contains reports whether tag is in active
func Contains(active []string, tag string) bool {
	for _, f := range active {
		if f == tag {
			return true
		}
	}
	return false
}

// Chips builds the filter vocabulary for a result set: the most frequent skills, then
// locations, then the experience chip. Ties keep first appearance order.
func Chips(results []domain.Candidate) []string {
	skills := rank(results, func(c domain.Candidate) []string { return c.Skills })
	if len(skills) > MaxSkillChips {
		skills = skills[:MaxSkillChips]
	}
	locations := rank(results, func(c domain.Candidate) []string {
		if c.Location == "" {
			return nil
		}
		return []string{c.Location}
	})

	seen := make(map[string]struct{}, len(skills)+len(locations)+1)
	chips := make([]string, 0, len(skills)+len(locations)+1)
	for _, group := range [][]string{skills, locations, {Experienced}} {
		for _, chip := range group {
			if _, ok := seen[chip]; ok {
				continue
			}
			seen[chip] = struct{}{}
			chips = append(chips, chip)
		}
	}
	return chips
}

func rank(results []domain.Candidate, values func(domain.Candidate) []string) []string {
	counts := make(map[string]int)
	var order []string

	for _, c := range results {
		// a candidate counts once per value
		local := make(map[string]struct{})
		for _, v := range values(c) {
			if _, dup := local[v]; dup {
				continue
			}
			local[v] = struct{}{}
			if _, ok := counts[v]; !ok {
				order = append(order, v)
			}
			counts[v]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	return order
}
