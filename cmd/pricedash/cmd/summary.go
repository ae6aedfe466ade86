package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rustyeddy/pricedash/internal/logger"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the Test vs Control comparison",
	Long: `Print the cohort totals, percent changes and performance verdict for
Revenue, Margin and Quantity.

Examples:
  pricedash summary
  pricedash summary --json`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

var summaryJSON bool

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryCmd.Flags().BoolVar(&summaryJSON, "json", false, "print summaries as JSON")
}

func runSummary(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	d, err := loadDashboard(cfg, logger.Default(cfg.Log.Verbose))
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}

	if summaryJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(d.Summaries())
	}
	d.WriteSummary(os.Stdout)
	return nil
}
