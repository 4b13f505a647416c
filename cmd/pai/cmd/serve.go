package cmd

import (
	"github.com/spf13/cobra"

	"github.com/alun/pai/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve archived runs over HTTP",
	Long: `Start the HTTP API over the run archive.

Endpoints:
  GET /healthz                   - liveness
  GET /api/runs                  - archived runs, newest first
  GET /api/runs/:id              - one run's details
  GET /api/runs/:id/rows         - the run's canonical rows
  GET /api/runs/:id/summary      - computed statistics

The rows and summary endpoints accept comment, magic, from and to query
parameters with the same meaning as the stats flags, and summary accepts
capital to force the capital base.

Example:
  pai serve --addr :8080`,
	RunE: runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	return server.New(cfg, st, logger).Run()
}
