package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccg-demos/timesleuth/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long: `Starts a Model Context Protocol (MCP) server on stdio, exposing the
timesheet, calendar, and audit tools so external agent hosts can drive
the same workflow through the write gateway.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		s := openStores(cfg)

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "timesleuth MCP server started on stdio (data=%s)\n", cfg.DataDir)

		srv := mcpserver.NewServer(s.timesheets, s.calendars, s.gateway)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
