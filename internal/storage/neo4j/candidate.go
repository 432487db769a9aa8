package neo4j

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/honeycarbs/talent-search/internal/domain"
	"github.com/honeycarbs/talent-search/internal/repository"

	pkgneo4j "github.com/honeycarbs/talent-search/pkg/neo4j"
)

// Ensure CandidateRepository implements repository.CandidateRepository
var _ repository.CandidateRepository = (*CandidateRepository)(nil)

// CandidateRepository stores candidates as (:Candidate)-[:HAS_SKILL]->(:Skill) and
// (:Candidate)-[:LOCATED_IN]->(:Location)
type CandidateRepository struct {
	client *pkgneo4j.Client
}

// NewCandidateRepository creates a CandidateRepository with a Neo4j client
func NewCandidateRepository(client *pkgneo4j.Client) *CandidateRepository {
	return &CandidateRepository{client: client}
}

var schema = []string{
	`CREATE CONSTRAINT candidate_id IF NOT EXISTS FOR (c:Candidate) REQUIRE c.id IS UNIQUE`,
	`CREATE CONSTRAINT skill_name IF NOT EXISTS FOR (s:Skill) REQUIRE s.name IS UNIQUE`,
	`CREATE CONSTRAINT location_name IF NOT EXISTS FOR (l:Location) REQUIRE l.name IS UNIQUE`,
}

// EnsureSchema creates the uniqueness constraints MERGE relies on
func (r *CandidateRepository) EnsureSchema(ctx context.Context) error {
	return r.client.EnsureConstraints(ctx, schema...)
}

const upsertCandidatesQuery = `
	UNWIND $candidates AS cand
	MERGE (c:Candidate {id: cand.id})
	SET c.name = cand.name,
	    c.email = cand.email,
	    c.phone = cand.phone,
	    c.location = cand.location,
	    c.skills = cand.skills,
	    c.years = cand.years,
	    c.experienceText = cand.experienceText,
	    c.summary = cand.summary,
	    c.matchScore = cand.matchScore,
	    c.certifications = cand.certifications,
	    c.profile = cand.profile,
	    c.resumeUrl = cand.resumeUrl,
	    c.uploadStatus = cand.uploadStatus
	WITH c, cand
	OPTIONAL MATCH (c)-[old:HAS_SKILL|LOCATED_IN]->()
	DELETE old
	WITH DISTINCT c, cand
	FOREACH (skill IN cand.skills |
		MERGE (s:Skill {name: skill})
		MERGE (c)-[:HAS_SKILL]->(s)
	)
	FOREACH (loc IN CASE WHEN cand.location = '' THEN [] ELSE [cand.location] END |
		MERGE (l:Location {name: loc})
		MERGE (c)-[:LOCATED_IN]->(l)
	)
`

// UpsertCandidates merges candidates by id and rebuilds their skill and location edges
func (r *CandidateRepository) UpsertCandidates(ctx context.Context, candidates []domain.Candidate) error {
	if len(candidates) == 0 {
		return nil
	}

	data := make([]map[string]interface{}, 0, len(candidates))
	for _, c := range candidates {
		params, err := candidateParams(c)
		if err != nil {
			return err
		}
		data = append(data, params)
	}

	session := r.client.NewSession(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, upsertCandidatesQuery, map[string]interface{}{"candidates": data})
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	if err != nil {
		return fmt.Errorf("neo4j: upsert candidates: %w", err)
	}
	return nil
}

// FindByID loads one candidate
func (r *CandidateRepository) FindByID(ctx context.Context, id domain.CandidateID) (domain.Candidate, error) {
	found, err := r.query(ctx, `MATCH (c:Candidate {id: $id}) RETURN c`, map[string]interface{}{"id": string(id)})
	if err != nil {
		return domain.Candidate{}, err
	}
	if len(found) == 0 {
		return domain.Candidate{}, fmt.Errorf("neo4j: candidate %s: %w", id, domain.ErrNotFound)
	}
	return found[0], nil
}

// ListCandidates loads every candidate, best match first
func (r *CandidateRepository) ListCandidates(ctx context.Context) ([]domain.Candidate, error) {
	return r.query(ctx, `MATCH (c:Candidate) RETURN c ORDER BY c.matchScore DESC, c.name`, nil)
}

func (r *CandidateRepository) query(ctx context.Context, cypher string, params map[string]interface{}) ([]domain.Candidate, error) {
	session := r.client.NewSession(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		records, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}

		out := make([]domain.Candidate, 0, len(records))
		for _, record := range records {
			val, ok := record.Get("c")
			if !ok {
				continue
			}
			node, ok := val.(neo4j.Node)
			if !ok {
				continue
			}
			c, err := nodeToCandidate(node.Props)
			if err != nil {
				return nil, err
			}
			out = append(out, c)
		}
		return out, nil
	})
	if err != nil {
		return nil, fmt.Errorf("neo4j: query candidates: %w", err)
	}

	return result.([]domain.Candidate), nil
}

// profile holds the nested parts of a candidate, stored as one JSON property
type profile struct {
	Education   []domain.Education      `json:"education,omitempty"`
	WorkHistory []domain.WorkExperience `json:"workHistory,omitempty"`
}

func candidateParams(c domain.Candidate) (map[string]interface{}, error) {
	if c.ID == "" {
		return nil, fmt.Errorf("neo4j: candidate %q: %w: empty id", c.Name, domain.ErrInvalidInput)
	}

	prof, err := json.Marshal(profile{Education: c.Education, WorkHistory: c.WorkHistory})
	if err != nil {
		return nil, fmt.Errorf("neo4j: encode profile: %w", err)
	}

	return map[string]interface{}{
		"id":             string(c.ID),
		"name":           c.Name,
		"email":          c.Email,
		"phone":          c.Phone,
		"location":       c.Location,
		"skills":         stringsOrEmpty(c.Skills),
		"years":          int64(c.Experience.Years),
		"experienceText": c.Experience.Raw,
		"summary":        c.Summary,
		"matchScore":     int64(c.MatchScore),
		"certifications": stringsOrEmpty(c.Certifications),
		"profile":        string(prof),
		"resumeUrl":      c.ResumeURL,
		"uploadStatus":   string(c.UploadStatus),
	}, nil
}

func nodeToCandidate(props map[string]any) (domain.Candidate, error) {
	c := domain.Candidate{
		ID:             domain.CandidateID(stringProp(props, "id")),
		Name:           stringProp(props, "name"),
		Email:          stringProp(props, "email"),
		Phone:          stringProp(props, "phone"),
		Location:       stringProp(props, "location"),
		Skills:         stringsProp(props, "skills"),
		Experience:     domain.Experience{Years: int(intProp(props, "years")), Raw: stringProp(props, "experienceText")},
		Summary:        stringProp(props, "summary"),
		MatchScore:     int(intProp(props, "matchScore")),
		Certifications: stringsProp(props, "certifications"),
		ResumeURL:      stringProp(props, "resumeUrl"),
		UploadStatus:   domain.UploadStatus(stringProp(props, "uploadStatus")),
	}

	if raw := stringProp(props, "profile"); raw != "" {
		var p profile
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return domain.Candidate{}, fmt.Errorf("neo4j: decode profile of %s: %w", c.ID, err)
		}
		c.Education = p.Education
		c.WorkHistory = p.WorkHistory
	}

	return c, nil
}

func stringProp(props map[string]any, key string) string {
	s, _ := props[key].(string)
	return s
}

func intProp(props map[string]any, key string) int64 {
	switch v := props[key].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	default:
		return 0
	}
}

func stringsProp(props map[string]any, key string) []string {
	items, _ := props[key].([]any)
	if len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// neo4j rejects null list properties
func stringsOrEmpty(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
