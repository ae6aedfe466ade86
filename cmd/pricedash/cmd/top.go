package cmd

import (
	"fmt"
	"os"

	"github.com/rustyeddy/pricedash/internal/logger"
	"github.com/rustyeddy/pricedash/product"
	"github.com/spf13/cobra"
)

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Rank products by a metric",
	Long: `List the products with the largest value for a metric.

Metrics: "Total Revenue", "Total Margin", "Quantity".

Examples:
  pricedash top
  pricedash top --metric Quantity --count 5`,
	Args: cobra.NoArgs,
	RunE: runTop,
}

var (
	topMetric string
	topN      int
)

func init() {
	rootCmd.AddCommand(topCmd)

	topCmd.Flags().StringVarP(&topMetric, "metric", "m", product.DefaultMetric.Name, "metric to rank by")
	topCmd.Flags().IntVarP(&topN, "count", "n", product.DefaultTopN, "number of products")
}

func runTop(cmd *cobra.Command, args []string) error {
	if topN <= 0 {
		return fmt.Errorf("--count must be positive")
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	d, err := loadDashboard(cfg, logger.Default(cfg.Log.Verbose))
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}
	return d.WriteTopProducts(os.Stdout, topMetric, topN)
}
