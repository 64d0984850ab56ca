// Package tools exposes the report engine over MCP: provider discovery,
// the report catalog, full engine runs and the persisted run history.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/elC0mpa/cost-advisor/cmd/mcp/response"
	"github.com/elC0mpa/cost-advisor/model"
	"github.com/elC0mpa/cost-advisor/service/configstore"
	"github.com/elC0mpa/cost-advisor/service/controller"
	"github.com/elC0mpa/cost-advisor/service/precondition"
	"github.com/elC0mpa/cost-advisor/service/registry"
	"github.com/elC0mpa/cost-advisor/service/request"
	"github.com/elC0mpa/cost-advisor/service/runcontext"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterEngineTools registers all report engine tools with the MCP server.
func RegisterEngineTools(s *server.MCPServer) {
	s.AddTool(
		mcp.NewTool("list_providers",
			mcp.WithDescription("List the installed report providers and the checks each one ships"),
		),
		handleListProviders,
	)

	s.AddTool(
		mcp.NewTool("list_reports",
			mcp.WithDescription("List every runnable check name grouped by provider"),
		),
		handleListReports,
	)

	s.AddTool(
		mcp.NewTool("run_checks",
			mcp.WithDescription("Run cost reports and return their results with savings estimates. Pass a comma-separated list of check names, or ALL for every check"),
			mcp.WithString("checks",
				mcp.Required(),
				mcp.Description("Comma-separated check names, or ALL"),
			),
		),
		handleRunChecks,
	)

	s.AddTool(
		mcp.NewTool("run_history",
			mcp.WithDescription("List past engine runs with their report counts and total savings"),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of runs to return, newest first (default 10)"),
			),
		),
		handleRunHistory,
	)
}

func handleListProviders(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var providers []response.ProviderInfo
	for _, desc := range registry.Registered() {
		providers = append(providers, response.ConvertDescriptor(desc))
	}
	data, _ := json.MarshalIndent(providers, "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}

func handleListReports(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, _ := json.MarshalIndent(registry.NewCatalog().ReportNames(), "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}

func handleRunChecks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	checks := req.GetString("checks", "")
	if strings.TrimSpace(checks) == "" {
		return mcp.NewToolResultError("checks must not be empty"), nil
	}

	flags := model.Flags{Checks: strings.Split(checks, ",")}
	rc, err := runcontext.New(flags, io.Discard)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to build run context: %v", err)), nil
	}

	workdir, err := os.Getwd()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to resolve working directory: %v", err)), nil
	}

	parser := request.NewService(workdir, nil, registry.NewCatalog())
	if rc.Request, err = parser.Resolve(ctx, flags); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to resolve report request: %v", err)), nil
	}

	loader := registry.NewLoader(workdir, rc)
	if err := precondition.NewService(rc, loader).Run(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Precondition resolution failed: %v", err)), nil
	}

	result, err := controller.NewService(rc, loader).Run(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Run failed: %v", err)), nil
	}

	data, _ := json.MarshalIndent(response.ConvertRun(result, rc.Alerts()), "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}

func handleRunHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 10)

	rc, err := runcontext.New(model.Flags{}, io.Discard)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to build run context: %v", err)), nil
	}

	store, err := configstore.NewService(rc.Config.DatabasePath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to open run history: %v", err)), nil
	}
	defer store.Close()

	records, err := store.LastRuns(ctx, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to read run history: %v", err)), nil
	}

	var out []response.RunRecord
	for _, record := range records {
		out = append(out, response.ConvertRunRecord(record))
	}
	data, _ := json.MarshalIndent(out, "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}
