// Package mcp exposes the candidate pipeline to MCP clients over streamable HTTP.
package mcp

import (
	"net/http"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/talent-search/internal/mcp/tools"
	"github.com/honeycarbs/talent-search/pkg/logging"
)

const (
	// Path is where the streamable HTTP handler is mounted
	Path = "/mcp/stream"

	serverName = "talent-search"
)

// Server wraps an MCP SDK server with the candidate tools installed
type Server struct {
	logger  *logging.Logger
	server  *sdkmcp.Server
	handler http.Handler
	tools   []string
}

// NewServer registers the tools selected by opts
func NewServer(log *logging.Logger, version string, opts ...tools.Option) *Server {
	if log == nil {
		log = logging.NewNop()
	}
	log = log.Named("mcp")

	impl := &sdkmcp.Implementation{
		Name:    serverName,
		Version: version,
	}
	mcpServer := sdkmcp.NewServer(impl, nil)
	registered := tools.Register(mcpServer, log, opts...)

	handler := sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server {
		return mcpServer
	}, nil)

	log.Info("MCP tools registered", "tools", registered)

	return &Server{
		logger:  log,
		server:  mcpServer,
		handler: handler,
		tools:   registered,
	}
}

// SDK returns the underlying MCP server, used to connect in-process transports
func (s *Server) SDK() *sdkmcp.Server {
	return s.server
}

// Handler serves the streamable HTTP transport
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Tools lists registered tool names in registration order
func (s *Server) Tools() []string {
	return append([]string(nil), s.tools...)
}
