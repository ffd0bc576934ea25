package mcp

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/studyflow/adapter/cli"
	"github.com/felixgeelhaar/studyflow/pkg/observability"
)

// ToolDependencies provides handlers and context for MCP tools.
type ToolDependencies struct {
	App     *cli.App
	Metrics observability.Metrics
}

func (d ToolDependencies) called(ctx context.Context, tool string) {
	if d.Metrics == nil {
		return
	}
	d.Metrics.Counter(observability.MetricToolCalls, 1, observability.T("tool", tool))
}

var errNotReady = errors.New("studyflow store is not available")

// RegisterCLITools registers MCP tools that mirror CLI functionality.
func RegisterCLITools(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return errors.New("server is required")
	}
	if deps.App == nil {
		return errors.New("app is required")
	}

	if err := registerDashboardTools(srv, deps); err != nil {
		return err
	}
	if err := registerCatalogTools(srv, deps); err != nil {
		return err
	}
	if err := registerSessionTools(srv, deps); err != nil {
		return err
	}
	if err := registerGoalTools(srv, deps); err != nil {
		return err
	}
	if err := registerSystemTools(srv, deps); err != nil {
		return err
	}

	return nil
}
