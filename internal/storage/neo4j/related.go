package neo4j

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/honeycarbs/talent-search/internal/domain"
	"github.com/honeycarbs/talent-search/internal/repository"
)

const findRelatedQuery = `
	MATCH (s:Skill)<-[:HAS_SKILL]-(related:Candidate)
	WHERE s.name IN $skills AND related.id <> $id
	WITH related, collect(DISTINCT s.name) AS sharedSkills
	RETURN related AS c, sharedSkills,
	       size(sharedSkills) * 2 +
	       CASE WHEN $location <> '' AND related.location = $location THEN 1 ELSE 0 END AS relevance
	ORDER BY relevance DESC, c.matchScore DESC
	LIMIT $limit
`

// FindRelated finds stored candidates connected to c via shared skills
func (r *CandidateRepository) FindRelated(ctx context.Context, c domain.Candidate, limit int) ([]repository.RelatedCandidate, error) {
	if len(c.Skills) == 0 || limit <= 0 {
		return nil, nil
	}

	session := r.client.NewSession(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, findRelatedQuery, map[string]interface{}{
			"id":       string(c.ID),
			"skills":   c.Skills,
			"location": c.Location,
			"limit":    int64(limit),
		})
		if err != nil {
			return nil, err
		}
		records, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		return parseRelated(records)
	})
	if err != nil {
		return nil, fmt.Errorf("neo4j: find related to %s: %w", c.ID, err)
	}

	return result.([]repository.RelatedCandidate), nil
}

func parseRelated(records []*neo4j.Record) ([]repository.RelatedCandidate, error) {
	out := make([]repository.RelatedCandidate, 0, len(records))
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

		props := make(map[string]any, 2)
		if v, ok := record.Get("sharedSkills"); ok {
			props["sharedSkills"] = v
		}
		if v, ok := record.Get("relevance"); ok {
			props["relevance"] = v
		}

		out = append(out, repository.RelatedCandidate{
			Candidate:    c,
			SharedSkills: stringsProp(props, "sharedSkills"),
			Relevance:    int(intProp(props, "relevance")),
		})
	}
	return out, nil
}
