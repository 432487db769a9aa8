package app

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/honeycarbs/talent-search/internal/config"
	"github.com/honeycarbs/talent-search/internal/domain"
	"github.com/honeycarbs/talent-search/internal/domain/background"
	"github.com/honeycarbs/talent-search/internal/domain/billing"
	"github.com/honeycarbs/talent-search/internal/domain/search"
	"github.com/honeycarbs/talent-search/internal/domain/search/providers/backend"
	"github.com/honeycarbs/talent-search/internal/domain/upload"
	"github.com/honeycarbs/talent-search/internal/export"
	"github.com/honeycarbs/talent-search/internal/fixtures"
	"github.com/honeycarbs/talent-search/internal/mcp"
	"github.com/honeycarbs/talent-search/internal/mcp/tools"
	"github.com/honeycarbs/talent-search/internal/notify"
	"github.com/honeycarbs/talent-search/internal/outreach"
	"github.com/honeycarbs/talent-search/internal/repository"
	"github.com/honeycarbs/talent-search/internal/storage/memory"
	storage "github.com/honeycarbs/talent-search/internal/storage/neo4j"
	"github.com/honeycarbs/talent-search/internal/web"
	"github.com/honeycarbs/talent-search/pkg/gemini"
	"github.com/honeycarbs/talent-search/pkg/gmail"
	"github.com/honeycarbs/talent-search/pkg/logging"
	n4j "github.com/honeycarbs/talent-search/pkg/neo4j"
	"github.com/honeycarbs/talent-search/pkg/sheets"
	"github.com/honeycarbs/talent-search/pkg/talentapi"
)

const sessionSweepInterval = time.Minute

// provideTalentAPIConfig extracts the search backend config from main config
func provideTalentAPIConfig(cfg config.Config) talentapi.Config {
	return talentapi.Config{
		BaseURL: cfg.TalentAPI.BaseURL,
		Timeout: cfg.TalentAPI.Timeout,
	}
}

func provideBackendProvider(client *talentapi.Client) (*backend.Provider, error) {
	return backend.NewProvider(client)
}

// provideControllerFactory gives every session its own controller over the shared backend
func provideControllerFactory(p *backend.Provider, logger *logging.Logger) web.ControllerFactory {
	log := logger.Named("search")
	return func() (*search.Controller, error) {
		return search.NewController(
			search.WithProvider(p),
			search.WithFallback(fixtures.ByScore),
			search.WithLogger(log),
		)
	}
}

// provideCandidateRepository uses Neo4j when NEO4J_URI is set and process memory otherwise
func provideCandidateRepository(ctx context.Context, cfg config.Config, logger *logging.Logger) (repository.CandidateRepository, func(), error) {
	if cfg.Neo4j.URI == "" {
		logger.Info("NEO4J_URI not set, keeping candidates in memory")
		return memory.NewCandidateRepository(), func() {}, nil
	}

	client, err := n4j.NewClient(ctx, n4j.Config{
		URI:      cfg.Neo4j.URI,
		Username: cfg.Neo4j.Username,
		Password: cfg.Neo4j.Password,
		Database: cfg.Neo4j.Database,
	})
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Neo4j client initialized", "uri", cfg.Neo4j.URI, "database", cfg.Neo4j.Database)

	cleanup := func() {
		if err := client.Close(context.Background()); err != nil {
			logger.Warn("failed to close Neo4j driver", "err", err)
		}
	}

	repo := storage.NewCandidateRepository(client)
	if err := repo.EnsureSchema(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}
	return repo, cleanup, nil
}

// provideNotifier sends mail through Gmail when credentials are configured and logs it otherwise
func provideNotifier(ctx context.Context, cfg config.Config, logger *logging.Logger) (domain.Notifier, error) {
	if cfg.Gmail.CredentialsPath == "" {
		logger.Info("Gmail not configured, outgoing mail is logged only")
		return notify.NewLog(logger.Named("mail")), nil
	}

	client, err := gmail.NewClient(ctx, gmail.Config{
		CredentialsPath: cfg.Gmail.CredentialsPath,
		TokenPath:       cfg.Gmail.TokenPath,
		Sender:          cfg.Gmail.Sender,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("Gmail notifier initialized", "sender", cfg.Gmail.Sender)
	return notify.NewGmail(client, logger.Named("mail")), nil
}

// provideDrafter uses Gemini for outreach drafts when an API key is configured
func provideDrafter(ctx context.Context, cfg config.Config, logger *logging.Logger) (outreach.Drafter, error) {
	if cfg.Gemini.APIKey == "" {
		return outreach.Template{}, nil
	}

	gen, err := gemini.NewGenerator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		return nil, err
	}
	logger.Info("Gemini drafter initialized", "model", gen.Model())
	return outreach.NewAI(gen, logger.Named("outreach")), nil
}

// provideSheetsExporter returns an exporter that reports ErrSheetsNotConfigured when no
// credentials are set
func provideSheetsExporter(ctx context.Context, cfg config.Config, logger *logging.Logger) (*export.SheetsExporter, error) {
	sc, ok := sheetsConfig(cfg)
	if !ok {
		return export.NewSheetsExporter(nil), nil
	}

	client, err := sheets.NewClient(ctx, sc)
	if err != nil {
		return nil, err
	}
	logger.Info("Google Sheets client initialized", "inline_credentials", sc.CredentialsPath == "")
	return export.NewSheetsExporter(client), nil
}

// sheetsConfig prefers the credentials file and falls back to inline JSON
func sheetsConfig(cfg config.Config) (sheets.Config, bool) {
	if path := strings.TrimSpace(cfg.Sheets.CredentialsPath); path != "" {
		return sheets.Config{CredentialsPath: path}, true
	}
	if raw := strings.TrimSpace(cfg.Sheets.CredentialsJSON); raw != "" {
		return sheets.Config{CredentialsJSON: []byte(raw)}, true
	}
	return sheets.Config{}, false
}

func provideDefaultPlan(cfg config.Config) (billing.Plan, error) {
	return billing.Lookup(cfg.BillingPlan)
}

func provideQuota(plan billing.Plan) *upload.MemoryQuota {
	return upload.NewMemoryQuota(plan)
}

func provideUploadService(p *backend.Provider, quota *upload.MemoryQuota, repo repository.CandidateRepository, logger *logging.Logger) (*upload.Service, error) {
	return upload.NewService(p, p, quota, repo, logger.Named("upload"))
}

func provideOutreachService(drafter outreach.Drafter, notifier domain.Notifier, logger *logging.Logger) *outreach.Service {
	return outreach.NewService(drafter, notifier, logger.Named("outreach"))
}

func provideBackgroundService(notifier domain.Notifier, logger *logging.Logger) (*background.Service, error) {
	return background.NewService(notifier, logger.Named("background"), nil)
}

func provideMCPServer(
	logger *logging.Logger,
	newController web.ControllerFactory,
	repo repository.CandidateRepository,
	uploads *upload.Service,
	drafter outreach.Drafter,
	exporter *export.SheetsExporter,
) *mcp.Server {
	factory := tools.ControllerFactory(newController)
	return mcp.NewServer(logger, Version,
		tools.WithCandidateSearch(factory, repo),
		tools.WithCandidateFilter(repo),
		tools.WithCandidateList(repo, uploads),
		tools.WithCandidateDetail(repo, drafter),
		tools.WithSheetsExport(exporter, factory, repo),
	)
}

func provideHandler(
	cfg config.Config,
	logger *logging.Logger,
	newController web.ControllerFactory,
	uploads *upload.Service,
	repo repository.CandidateRepository,
	outreachSvc *outreach.Service,
	checks *background.Service,
	exporter *export.SheetsExporter,
	quota *upload.MemoryQuota,
	plan billing.Plan,
	mcpServer *mcp.Server,
) (*web.Handler, error) {
	return web.NewHandler(web.Deps{
		Logger:        logger,
		NewController: newController,
		Uploads:       uploads,
		Candidates:    repo,
		Outreach:      outreachSvc,
		Background:    checks,
		Sheets:        exporter,
		Plans:         quota,
		DefaultPlan:   plan,
		MCP:           mcpServer.Handler(),
		SessionTTL:    cfg.SessionTTL,
		MaxSessions:   cfg.MaxSessions,
	})
}

func provideWebServer(cfg config.Config, logger *logging.Logger, h *web.Handler) *web.Server {
	stopJanitor := h.StartSessionJanitor(sessionSweepInterval)
	return web.NewServer(logger, net.JoinHostPort(cfg.Host, cfg.Port), h.Router(), stopJanitor)
}
