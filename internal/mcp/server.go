package mcp

import (
	"log/slog"

	"github.com/ylchen07/ghi/internal/ghi"
	"github.com/ylchen07/ghi/internal/state"

	"github.com/mark3labs/mcp-go/server"
)

// Dependencies bundles the services required for MCP server construction.
type Dependencies struct {
	Client  *ghi.Client
	Cache   *state.Cache
	Logger  *slog.Logger
	Version string
}

// NewServer builds an MCP server with the issue tools registered.
func NewServer(deps Dependencies) *server.MCPServer {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Version == "" {
		deps.Version = "0.1.0"
	}

	srv := server.NewMCPServer(
		"ghi",
		deps.Version,
		server.WithToolCapabilities(true),
		server.WithInstructions("Tools for reading and changing GitHub issues of a single repository."),
		server.WithRecovery(),
	)

	if deps.Cache == nil {
		deps.Cache = state.NewCache()
	}

	if deps.Client != nil {
		NewIssueTools(srv, deps.Client, deps.Cache)
		deps.Logger.Debug("registered issue tools",
			slog.String("owner", deps.Client.Owner()),
			slog.String("repository", deps.Client.Repository()),
		)
	}

	return srv
}
