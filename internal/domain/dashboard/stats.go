// Package dashboard aggregates known candidates into the series shown on the dashboard page.
package dashboard

import (
	"fmt"
	"math"
	"sort"

	"github.com/honeycarbs/talent-search/internal/domain"
)

const topSkills = 10

// Bucket is one bar of a distribution
type Bucket struct {
	Name    string
	Value   int
	Percent int // share of all candidates, 0..100
}

// Stats is everything the dashboard renders
type Stats struct {
	Total             int
	AverageExperience float64
	TopSkill          Bucket
	TopLocation       Bucket
	Skills            []Bucket
	Experience        []Bucket
	Locations         []Bucket
	SkillGaps         []string
}

type yearRange struct {
	name     string
	min, max int
}

var experienceRanges = []yearRange{
	{name: "0-2 years", min: 0, max: 2},
	{name: "3-5 years", min: 3, max: 5},
	{name: "6-8 years", min: 6, max: 8},
	{name: "9-12 years", min: 9, max: 12},
	{name: "13+ years", min: 13, max: math.MaxInt},
}

// gapWatch lists skills whose absence is reported as a gap
var gapWatch = []string{"Docker", "AWS", "TypeScript", "GraphQL", "Next.js"}

// Build computes the dashboard for cs
func Build(cs []domain.Candidate) Stats {
	st := Stats{Total: len(cs)}
	if len(cs) == 0 {
		st.Experience = distribution(nil, 0)
		return st
	}

	skillCounts := make(map[string]int)
	var skillOrder []string
	locCounts := make(map[string]int)
	var locOrder []string
	years := make([]int, len(experienceRanges))
	totalYears := 0

	for _, c := range cs {
		seen := make(map[string]struct{}, len(c.Skills))
		for _, s := range c.Skills {
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			if _, ok := skillCounts[s]; !ok {
				skillOrder = append(skillOrder, s)
			}
			skillCounts[s]++
		}

		loc := c.DisplayLocation()
		if _, ok := locCounts[loc]; !ok {
			locOrder = append(locOrder, loc)
		}
		locCounts[loc]++

		totalYears += c.Experience.Years
		for i, r := range experienceRanges {
			if c.Experience.Years >= r.min && c.Experience.Years <= r.max {
				years[i]++
				break
			}
		}
	}

	st.AverageExperience = math.Round(float64(totalYears)/float64(len(cs))*10) / 10
	st.Skills = ranked(skillOrder, skillCounts, len(cs))
	if len(st.Skills) > topSkills {
		st.Skills = st.Skills[:topSkills]
	}
	st.Locations = ranked(locOrder, locCounts, len(cs))
	st.Experience = distribution(years, len(cs))
	if len(st.Skills) > 0 {
		st.TopSkill = st.Skills[0]
	}
	st.TopLocation = st.Locations[0]
	st.SkillGaps = gaps(skillCounts, len(cs))

	return st
}

func ranked(order []string, counts map[string]int, total int) []Bucket {
	out := make([]Bucket, 0, len(order))
	for _, name := range order {
		out = append(out, Bucket{Name: name, Value: counts[name], Percent: percent(counts[name], total)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})
	return out
}

func distribution(counts []int, total int) []Bucket {
	out := make([]Bucket, len(experienceRanges))
	for i, r := range experienceRanges {
		v := 0
		if counts != nil {
			v = counts[i]
		}
		out[i] = Bucket{Name: r.name, Value: v, Percent: percent(v, total)}
	}
	return out
}

func gaps(skillCounts map[string]int, total int) []string {
	var out []string
	for _, skill := range gapWatch {
		have := skillCounts[skill]
		if have == total {
			continue
		}
		if have == 0 {
			out = append(out, fmt.Sprintf("None of the candidates list %s", skill))
			continue
		}
		out = append(out, fmt.Sprintf("%d%% of candidates lack %s experience", percent(total-have, total), skill))
	}
	return out
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(total)))
}
