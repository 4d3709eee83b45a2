package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ccg-demos/timesleuth/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Serves the timesheet, calendar, and audit documents plus the approval
gateway and the analysis workflow over a REST API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		port, _ := cmd.Flags().GetInt("port")
		if port == 0 {
			port = cfg.Server.Port
		}

		s := openStores(cfg)

		// The analysis endpoints need a provider; document and gateway
		// endpoints work without one.
		orch, _, err := buildOrchestrator(cfg, s)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v; /api/analyze and /api/impact disabled\n", err)
			orch = nil
		}

		srv := server.New(server.Config{
			Port:     port,
			AllowAll: cfg.Server.AllowAll,
		}, s.timesheets, s.calendars, s.audits, s.gateway, orch)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "timesleuth server v%s starting on port %d\n", Version, port)
		fmt.Fprintf(os.Stderr, "  Data: %s\n", cfg.DataDir)

		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
