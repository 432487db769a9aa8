package candidate

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"

	"github.com/honeycarbs/talent-search/internal/domain"
)

// scoreKeys are checked in order, the first present key wins
var scoreKeys = []string{"similarity_score", "similarityScore", "match_score", "matchScore"}

var firstInt = regexp.MustCompile(`\d+`)

// record is the union of the flat and nested payload shapes
type record struct {
	ID              any                     `json:"id"`
	Name            string                  `json:"name"`
	Email           string                  `json:"email"`
	Phone           string                  `json:"phone"`
	Location        string                  `json:"location"`
	Skills          any                     `json:"skills"`
	Experience      any                     `json:"experience"`
	ExperienceYears any                     `json:"experience_years"`
	Summary         string                  `json:"summary"`
	Certifications  []string                `json:"certifications"`
	Education       []domain.Education      `json:"education"`
	WorkHistory     []domain.WorkExperience `json:"workHistory"`
	WorkHistorySnk  []domain.WorkExperience `json:"work_history"`
	ResumeURL       string                  `json:"resumeUrl"`
	ResumeURLSnk    string                  `json:"resume_url"`
	UploadStatus    string                  `json:"uploadStatus"`
	UploadStatusSnk string                  `json:"upload_status"`
	BasicInfo       *basicInfo              `json:"basic_info"`
	ContactInfo     *contactInfo            `json:"contact_info"`
}

type basicInfo struct {
	Name            string `json:"name"`
	Location        string `json:"location"`
	Experience      any    `json:"experience"`
	ExperienceYears any    `json:"experience_years"`
	Summary         string `json:"summary"`
}

type contactInfo struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Normalize converts one raw backend record, flat or nested under basic_info, into a Candidate
func Normalize(raw map[string]any) (domain.Candidate, error) {
	if raw == nil {
		return domain.Candidate{}, fmt.Errorf("candidate: normalize: %w: nil record", domain.ErrInvalidInput)
	}

	var rec record
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &rec,
	})
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("candidate: decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return domain.Candidate{}, fmt.Errorf("candidate: decode: %w", err)
	}

	c := domain.Candidate{
		ID:             formatID(rec.ID),
		Name:           strings.TrimSpace(rec.Name),
		Email:          strings.TrimSpace(rec.Email),
		Phone:          strings.TrimSpace(rec.Phone),
		Location:       strings.TrimSpace(rec.Location),
		Skills:         parseSkills(rec.Skills),
		Experience:     ParseExperience(firstNonNil(rec.ExperienceYears, rec.Experience)),
		Summary:        strings.TrimSpace(rec.Summary),
		MatchScore:     scoreFrom(raw),
		Certifications: rec.Certifications,
		Education:      rec.Education,
		WorkHistory:    rec.WorkHistory,
		ResumeURL:      firstString(rec.ResumeURL, rec.ResumeURLSnk),
		UploadStatus:   parseUploadStatus(firstString(rec.UploadStatus, rec.UploadStatusSnk)),
	}
	if len(c.WorkHistory) == 0 {
		c.WorkHistory = rec.WorkHistorySnk
	}

	if b := rec.BasicInfo; b != nil {
		c.Name = firstString(strings.TrimSpace(b.Name), c.Name)
		c.Location = firstString(strings.TrimSpace(b.Location), c.Location)
		c.Summary = firstString(strings.TrimSpace(b.Summary), c.Summary)
		if v := firstNonNil(b.ExperienceYears, b.Experience); v != nil {
			c.Experience = ParseExperience(v)
		}
	}
	if ci := rec.ContactInfo; ci != nil {
		c.Email = firstString(strings.TrimSpace(ci.Email), c.Email)
		c.Phone = firstString(strings.TrimSpace(ci.Phone), c.Phone)
	}

	if c.ID == "" {
		c.ID = domain.CandidateID(uuid.NewString())
	}

	return c, nil
}

// NormalizeAll normalizes every record and stops at the first invalid one
func NormalizeAll(raws []map[string]any) ([]domain.Candidate, error) {
	out := make([]domain.Candidate, 0, len(raws))
	for i, raw := range raws {
		c, err := Normalize(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// MatchScore maps a backend score onto 0..100. Fractions in [0,1] are treated as ratios.
func MatchScore(v float64) int {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v <= 1:
		return int(math.Round(v * 100))
	case v >= 100:
		return 100
	default:
		return int(math.Round(v))
	}
}

// ParseExperience accepts a number of years or free text such as "6+ years"
func ParseExperience(v any) domain.Experience {
	if f, ok := toFloat(v); ok {
		if f < 0 {
			f = 0
		}
		return domain.Experience{Years: int(math.Floor(f))}
	}

	s, ok := v.(string)
	if !ok {
		return domain.Experience{}
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.Experience{}
	}

	exp := domain.Experience{Raw: s}
	if m := firstInt.FindString(s); m != "" {
		exp.Years, _ = strconv.Atoi(m)
	}
	return exp
}

func scoreFrom(raw map[string]any) int {
	for _, k := range scoreKeys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		if f, ok := toFloat(v); ok {
			return MatchScore(f)
		}
	}
	return 0
}

func formatID(v any) domain.CandidateID {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return domain.CandidateID(strings.TrimSpace(id))
	case json.Number:
		if i, err := id.Int64(); err == nil {
			return domain.CandidateID(strconv.FormatInt(i, 10))
		}
		return domain.CandidateID(id.String())
	case float64:
		if id == math.Trunc(id) {
			return domain.CandidateID(strconv.FormatInt(int64(id), 10))
		}
		return domain.CandidateID(strconv.FormatFloat(id, 'f', -1, 64))
	case int:
		return domain.CandidateID(strconv.Itoa(id))
	case int64:
		return domain.CandidateID(strconv.FormatInt(id, 10))
	default:
		return domain.CandidateID(fmt.Sprint(id))
	}
}

func parseSkills(v any) []string {
	var out []string
	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}

	switch skills := v.(type) {
	case nil:
	case string:
		for _, s := range strings.Split(skills, ",") {
			add(s)
		}
	case []string:
		for _, s := range skills {
			add(s)
		}
	case []any:
		for _, item := range skills {
			switch s := item.(type) {
			case string:
				add(s)
			case map[string]any:
				if name, ok := s["name"].(string); ok {
					add(name)
				}
			}
		}
	}
	return out
}

func parseUploadStatus(s string) domain.UploadStatus {
	switch domain.UploadStatus(strings.ToLower(strings.TrimSpace(s))) {
	case domain.UploadParsed:
		return domain.UploadParsed
	case domain.UploadFailed:
		return domain.UploadFailed
	case domain.UploadProcessing:
		return domain.UploadProcessing
	default:
		return ""
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(n), "%"), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func firstNonNil(vs ...any) any {
	for _, v := range vs {
		if v != nil {
			return v
		}
	}
	return nil
}

func firstString(vs ...string) string {
	for _, v := range vs {
		if v != "" {
			return v
		}
	}
	return ""
}
