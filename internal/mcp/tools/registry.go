// Package tools registers the candidate tools exposed over MCP.
package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/talent-search/internal/domain"
	"github.com/honeycarbs/talent-search/internal/domain/search"
	"github.com/honeycarbs/talent-search/internal/export"
	"github.com/honeycarbs/talent-search/internal/repository"
	"github.com/honeycarbs/talent-search/pkg/logging"
)

// ControllerFactory returns a fresh search controller. Each tool call gets its own so calls
// never share filters or results.
type ControllerFactory func() (*search.Controller, error)

// CandidateStore is the subset of the candidate repository the tools read and write
type CandidateStore interface {
	UpsertCandidates(ctx context.Context, candidates []domain.Candidate) error
	FindByID(ctx context.Context, id domain.CandidateID) (domain.Candidate, error)
	ListCandidates(ctx context.Context) ([]domain.Candidate, error)
	FindRelated(ctx context.Context, c domain.Candidate, limit int) ([]repository.RelatedCandidate, error)
}

// Syncer pulls the full candidate list from the backend
type Syncer interface {
	Sync(ctx context.Context) ([]domain.Candidate, error)
}

// Drafter writes an outreach email for a candidate
type Drafter interface {
	Draft(ctx context.Context, c domain.Candidate) (string, error)
}

// SheetsExporter writes candidates to a spreadsheet
type SheetsExporter interface {
	Export(ctx context.Context, target export.SheetsTarget, cs []domain.Candidate) (export.SheetsResult, error)
}

// Option configures which tools are registered
type Option func(*registry)

type registry struct {
	server *sdkmcp.Server
	logger *logging.Logger
	names  []string
}

// Register applies the provided tool options and returns the registered tool names
func Register(server *sdkmcp.Server, logger *logging.Logger, opts ...Option) []string {
	if logger == nil {
		logger = logging.NewNop()
	}
	reg := &registry{server: server, logger: logger}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(reg)
	}
	return reg.names
}

func (r *registry) add(name string) {
	r.names = append(r.names, name)
}
