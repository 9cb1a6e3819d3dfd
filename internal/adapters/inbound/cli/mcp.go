package cli

import (
	"fmt"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	boundarymcp "github.com/boundary-cli/boundary/internal/adapters/inbound/mcp"
)

func newMCPCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve analysis tools over the Model Context Protocol",
		Long:  "Start an MCP server on stdio exposing boundary_analyze and boundary_check for the given project.",
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return server.ServeStdio(boundarymcp.NewServer(absPath))
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "Project path to serve")
	return cmd
}
