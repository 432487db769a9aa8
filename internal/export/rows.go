// Package export writes candidate lists to xlsx files and Google Sheets.
package export

import (
	"strings"
	"time"

	"github.com/honeycarbs/talent-search/internal/domain"
)

// Meta describes where an exported list came from
type Meta struct {
	Query       string
	Filters     []string
	Fallback    bool
	GeneratedAt time.Time
}

var header = []string{"ID", "Name", "Email", "Phone", "Location", "Experience", "Years", "Match Score", "Skills", "Certifications"}

// Header returns the column titles of the candidate table
func Header() []string {
	return append([]string(nil), header...)
}

// Row flattens one candidate in Header order
func Row(c domain.Candidate) []interface{} {
	return []interface{}{
		string(c.ID),
		c.Name,
		c.Email,
		c.Phone,
		c.DisplayLocation(),
		c.Experience.String(),
		c.Experience.Years,
		c.MatchScore,
		strings.Join(c.Skills, ", "),
		strings.Join(c.Certifications, ", "),
	}
}

// Table returns the header row followed by one row per candidate
func Table(cs []domain.Candidate) [][]interface{} {
	out := make([][]interface{}, 0, len(cs)+1)
	h := make([]interface{}, len(header))
	for i, v := range header {
		h[i] = v
	}
	out = append(out, h)
	for _, c := range cs {
		out = append(out, Row(c))
	}
	return out
}
