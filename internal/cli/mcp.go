package cli

import (
	"fmt"

	"github.com/plancraft/plancraft/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server on stdio",
	Long: `Run a Model Context Protocol server that exposes the planning operations
(initialize_project, complete_task, get_project_status, resume_project,
get_metrics) as tools for AI coding assistants. The server communicates
over stdin/stdout and blocks until the client disconnects.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Planner == nil {
			return fmt.Errorf("planner not initialized")
		}

		server := mcp.NewServer(Planner, MetricsCalc, appVersion)
		return server.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
