package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/boundary-cli/boundary/internal/adapters/outbound/config"
	"github.com/boundary-cli/boundary/internal/adapters/outbound/gitinfo"
	"github.com/boundary-cli/boundary/internal/adapters/outbound/history"
	"github.com/boundary-cli/boundary/internal/adapters/outbound/parser"
	"github.com/boundary-cli/boundary/internal/adapters/outbound/scanner"
	"github.com/boundary-cli/boundary/internal/application"
)

func registerTools(s *server.MCPServer, projectPath string) {
	s.AddTool(
		mcplib.NewTool("boundary_analyze",
			mcplib.WithDescription("Analyze the project's architecture and return scores, patterns and violations as JSON"),
		),
		handleAnalyze(projectPath),
	)

	s.AddTool(
		mcplib.NewTool("boundary_check",
			mcplib.WithDescription("Run the check variant and return the report plus pass/fail status as JSON"),
			mcplib.WithBoolean("regression",
				mcplib.Description("Also fail when the overall score dropped since the last snapshot"),
			),
		),
		handleCheck(projectPath),
	)
}

func newServices() (*application.AnalyzeService, *application.CheckService) {
	hist := history.New()
	analyze := application.NewAnalyzeService(
		scanner.New(),
		parser.NewRegistry(nil),
		config.New(),
		hist,
		gitinfo.New(),
		zap.NewNop(),
	)
	return analyze, application.NewCheckService(analyze, hist)
}

func handleAnalyze(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		analyze, _ := newServices()
		res, err := analyze.Analyze(projectPath)
		if err != nil {
			return mcplib.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
		}
		return jsonResult(res)
	}
}

func handleCheck(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		regression := request.GetBool("regression", false)

		_, check := newServices()
		res, err := check.Check(projectPath, regression)
		if err != nil {
			return mcplib.NewToolResultError(fmt.Sprintf("check failed: %v", err)), nil
		}
		return jsonResult(res)
	}
}

func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcplib.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return mcplib.NewToolResultText(string(data)), nil
}
