package mcp

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/mcp-go/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/studyflow/adapter/cli"
)

func newTestServer() *mcp.Server {
	return mcp.NewServer(mcp.ServerInfo{
		Name:    "test",
		Version: "1.0.0",
		Capabilities: mcp.Capabilities{
			Tools:     true,
			Resources: true,
			Prompts:   true,
		},
	})
}

func TestRegisterCLITools_ListTools(t *testing.T) {
	srv := newTestServer()

	require.NoError(t, RegisterCLITools(srv, ToolDependencies{App: &cli.App{}}))

	tc := testutil.NewTestClient(t, srv)
	defer tc.Close()

	tools, err := tc.ListTools()
	require.NoError(t, err)

	names := make(map[any]bool, len(tools))
	for _, tool := range tools {
		names[tool["name"]] = true
	}
	for _, want := range []string{
		"study.dashboard", "study.summary", "report.export",
		"catalog.list", "catalog.log_questions",
		"session.start", "session.stop", "session.status",
		"goal.get", "goal.set", "system.health",
	} {
		assert.True(t, names[want], "%s should be registered", want)
	}
}

func TestRegisterCLITools_RequiresApp(t *testing.T) {
	assert.Error(t, RegisterCLITools(newTestServer(), ToolDependencies{}))
	assert.Error(t, RegisterCLITools(nil, ToolDependencies{App: &cli.App{}}))
}

func TestRegisterResourcesAndPrompts(t *testing.T) {
	srv := newTestServer()
	deps := ToolDependencies{App: &cli.App{}}

	assert.NoError(t, RegisterResources(srv, deps))
	assert.NoError(t, RegisterPrompts(srv, deps))
	assert.Error(t, RegisterResources(srv, ToolDependencies{}))
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("2024-03-10", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", got)

	got, err = parseDate("", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", got)

	_, err = parseDate("03/10/2024", time.Time{})
	assert.Error(t, err)

	start, err := parseOptionalDateTime("")
	require.NoError(t, err)
	assert.True(t, start.IsZero())
}
