package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rustyeddy/pricedash/internal/logger"
	"github.com/rustyeddy/pricedash/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over HTTP",
	Long: `Load the exports once and serve the dashboard pages, the JSON API and
the live websocket channel until interrupted.

Examples:
  pricedash serve
  pricedash serve --addr 127.0.0.1:9000 --config pricedash.yaml`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (overrides server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	log := logger.Default(cfg.Log.Verbose)

	d, err := loadDashboard(cfg, log)
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}

	srv := server.New(d, server.Options{
		LogoPath: cfg.Server.Logo,
		Logger:   log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("serving %q on %s", d.Options().Title, cfg.Server.Addr)
	if err := srv.Run(ctx, cfg.Server.Addr); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	log.Info("shut down")
	return nil
}
