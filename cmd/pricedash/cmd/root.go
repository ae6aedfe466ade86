package cmd

import (
	"fmt"

	"github.com/rustyeddy/pricedash/config"
	"github.com/rustyeddy/pricedash/dashboard"
	"github.com/rustyeddy/pricedash/dataset"
	"github.com/rustyeddy/pricedash/internal/logger"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pricedash",
	Short: "Test vs Control price sensitivity dashboard",
	Long: `Pricedash compares a Test cohort of products that received price changes
against an untouched Control cohort, year over year.

It provides tools for:
  - Serving the interactive dashboard over HTTP
  - Printing the Revenue, Margin and Quantity comparison to the console
  - Ranking products by revenue, margin or quantity
  - Journaling snapshots of the comparison to CSV or SQLite

Without --config the exports are read from the working directory.`,
	SilenceUsage: true,
}

var (
	cfgFile string
	verbose bool
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		cfg := config.Default()
		cfg.Log.Verbose = verbose
		return cfg, nil
	}
	cfg, err := config.LoadFromFile(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.Log.Verbose = true
	}
	return cfg, nil
}

// loadDashboard reads the exports named by cfg. A load failure is fatal.
func loadDashboard(cfg *config.Config, log *logger.Logger) (*dashboard.Dashboard, error) {
	paths := cfg.Paths()
	log.Debug("loading revenue=%s margin=%s quantity=%s products=%s",
		paths.Revenue, paths.Margin, paths.Quantity, paths.Products)

	ds, err := dataset.Load(paths)
	if err != nil {
		return nil, err
	}

	opts := dashboard.Options{Title: cfg.Server.Title}
	if cfg.Server.Logo != "" {
		opts.LogoURL = "/logo"
	}
	d := dashboard.New(ds, opts)
	for _, m := range dataset.Measures {
		if _, err := d.Summary(m); err != nil {
			log.Error("%s: %v", m, err)
		}
	}
	return d, nil
}
