package domain

import (
	"strconv"
	"strings"
)

// CandidateID uniquely identifies a candidate record
type CandidateID string

// RemoteLocation is displayed when a candidate has no location
const RemoteLocation = "Remote"

// UploadStatus is the parse state reported by the resume backend
type UploadStatus string

const (
	UploadParsed     UploadStatus = "parsed"
	UploadFailed     UploadStatus = "failed"
	UploadProcessing UploadStatus = "processing"
)

// Experience keeps both the numeric years used for filtering and the text the backend sent
type Experience struct {
	Years int    `json:"years"`
	Raw   string `json:"raw,omitempty"`
}

// String renders Raw when present, otherwise the year count
func (e Experience) String() string {
	if e.Raw != "" {
		return e.Raw
	}
	if e.Years == 1 {
		return "1 year"
	}
	return strconv.Itoa(e.Years) + " years"
}

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

type WorkExperience struct {
	Title    string   `json:"title"`
	Company  string   `json:"company"`
	Duration string   `json:"duration"`
	Details  []string `json:"description,omitempty"`
}

// Candidate is the normalized candidate record. Values received from the backend are never
// mutated after normalization.
type Candidate struct {
	ID             CandidateID      `json:"id"`
	Name           string           `json:"name"`
	Email          string           `json:"email,omitempty"`
	Phone          string           `json:"phone,omitempty"`
	Location       string           `json:"location"`
	Skills         []string         `json:"skills"`
	Experience     Experience       `json:"experience"`
	Summary        string           `json:"summary,omitempty"`
	MatchScore     int              `json:"matchScore"`
	Certifications []string         `json:"certifications,omitempty"`
	Education      []Education      `json:"education,omitempty"`
	WorkHistory    []WorkExperience `json:"workHistory,omitempty"`
	ResumeURL      string           `json:"resumeUrl,omitempty"`
	UploadStatus   UploadStatus     `json:"uploadStatus,omitempty"`
}

// DisplayLocation returns the location or RemoteLocation when empty
func (c Candidate) DisplayLocation() string {
	if strings.TrimSpace(c.Location) == "" {
		return RemoteLocation
	}
	return c.Location
}

// HasSkill reports whether skill is one of the candidate skills (exact match)
func (c Candidate) HasSkill(skill string) bool {
	for _, s := range c.Skills {
		if s == skill {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can hand records out without sharing slices
func (c Candidate) Clone() Candidate {
	out := c
	out.Skills = append([]string(nil), c.Skills...)
	out.Certifications = append([]string(nil), c.Certifications...)
	out.Education = append([]Education(nil), c.Education...)
	out.WorkHistory = make([]WorkExperience, len(c.WorkHistory))
	for i, w := range c.WorkHistory {
		w.Details = append([]string(nil), w.Details...)
		out.WorkHistory[i] = w
	}
	if c.WorkHistory == nil {
		out.WorkHistory = nil
	}
	return out
}

// CloneAll copies every record of cs
func CloneAll(cs []Candidate) []Candidate {
	if cs == nil {
		return nil
	}
	out := make([]Candidate, len(cs))
	for i, c := range cs {
		out[i] = c.Clone()
	}
	return out
}

// SearchResult is one normalized backend search response
type SearchResult struct {
	Matches  []Candidate
	Analysis string
}
