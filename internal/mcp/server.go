package mcp

import (
	"context"
	"errors"
	"log/slog"

	mcpgo "github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/mcp-go/middleware"

	"github.com/felixgeelhaar/studyflow/adapter/cli"
	mcplocal "github.com/felixgeelhaar/studyflow/adapter/mcp"
	"github.com/felixgeelhaar/studyflow/pkg/config"
	"github.com/felixgeelhaar/studyflow/pkg/observability"
)

// Serve starts an MCP server exposing the study tools and blocks until the
// context is canceled.
func Serve(ctx context.Context, cfg *config.Config, cliApp *cli.App, metrics observability.Metrics, logger *slog.Logger) error {
	if cfg == nil {
		return errors.New("config is required")
	}
	if cliApp == nil {
		return errors.New("CLI app is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	srv := mcpgo.NewServer(mcpgo.ServerInfo{
		Name:    "studyflow-mcp",
		Version: cli.Version,
		Capabilities: mcpgo.Capabilities{
			Tools:     true,
			Resources: true,
			Prompts:   true,
		},
	})

	deps := mcplocal.ToolDependencies{
		App:     cliApp,
		Metrics: metrics,
	}

	if err := mcplocal.RegisterCLITools(srv, deps); err != nil {
		return err
	}

	if err := mcplocal.RegisterResources(srv, deps); err != nil {
		logger.Warn("failed to register MCP resources", "error", err)
	}

	if err := mcplocal.RegisterPrompts(srv, deps); err != nil {
		logger.Warn("failed to register MCP prompts", "error", err)
	}

	adapter := slogAdapter{logger: logger}
	stack := middleware.DefaultStack(adapter)

	if cfg.MCPAuthToken != "" {
		authenticator := middleware.BearerTokenAuthenticator(middleware.StaticTokens(map[string]*middleware.Identity{
			cfg.MCPAuthToken: {ID: "mcp", Name: "mcp"},
		}))
		stack = append([]middleware.Middleware{middleware.Auth(authenticator, middleware.WithAuthLogger(adapter))}, stack...)
	} else {
		logger.Warn("MCP auth token not set; requests will be unauthenticated")
	}

	logger.Info("mcp server listening", "addr", cfg.MCPAddr)
	return mcpgo.ServeHTTPWithMiddleware(ctx, srv, cfg.MCPAddr, nil, mcpgo.WithMiddleware(stack...))
}

// slogAdapter routes middleware logs to slog.
type slogAdapter struct {
	logger *slog.Logger
}

func (a slogAdapter) Debug(msg string, fields ...middleware.Field) { a.log(slog.LevelDebug, msg, fields) }
func (a slogAdapter) Info(msg string, fields ...middleware.Field)  { a.log(slog.LevelInfo, msg, fields) }
func (a slogAdapter) Warn(msg string, fields ...middleware.Field)  { a.log(slog.LevelWarn, msg, fields) }
func (a slogAdapter) Error(msg string, fields ...middleware.Field) { a.log(slog.LevelError, msg, fields) }

func (a slogAdapter) log(level slog.Level, msg string, fields []middleware.Field) {
	attrs := make([]slog.Attr, 0, len(fields))
	for _, f := range fields {
		attrs = append(attrs, slog.Any(f.Key, f.Value))
	}
	a.logger.LogAttrs(context.Background(), level, msg, attrs...)
}
