// Package app assembles the talent-search server from configuration.
package app

import (
	"github.com/honeycarbs/talent-search/internal/config"
	"github.com/honeycarbs/talent-search/internal/mcp"
	"github.com/honeycarbs/talent-search/internal/web"
	"github.com/honeycarbs/talent-search/pkg/logging"
)

// Version is reported to MCP clients and by talentctl
const Version = "0.1.0"

// App holds the running pieces main needs to start and stop
type App struct {
	Config config.Config
	Logger *logging.Logger
	Server *web.Server
	MCP    *mcp.Server
}

func newApp(cfg config.Config, logger *logging.Logger, srv *web.Server, mcpServer *mcp.Server) *App {
	return &App{
		Config: cfg,
		Logger: logger,
		Server: srv,
		MCP:    mcpServer,
	}
}
