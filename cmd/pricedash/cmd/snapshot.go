package cmd

import (
	"fmt"

	"github.com/rustyeddy/pricedash/dataset"
	"github.com/rustyeddy/pricedash/internal/logger"
	"github.com/rustyeddy/pricedash/journal"
	"github.com/spf13/cobra"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Record the current comparison in the journal",
	Long: `Compute the summaries and append them to the configured journal
(CSV file or SQLite database). Optionally write an Org-mode copy.

Examples:
  pricedash snapshot
  pricedash snapshot --config pricedash.yaml --org run.org`,
	Args: cobra.NoArgs,
	RunE: runSnapshot,
}

var snapshotOrg string

func init() {
	rootCmd.AddCommand(snapshotCmd)

	snapshotCmd.Flags().StringVar(&snapshotOrg, "org", "", "also write the run as Org-mode to this path")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logger.Default(cfg.Log.Verbose)

	d, err := loadDashboard(cfg, log)
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}

	failures := map[string]string{}
	for _, m := range dataset.Measures {
		if _, err := d.Summary(m); err != nil {
			failures[m.String()] = err.Error()
		}
	}
	run := journal.NewRun(cfg.Paths(), d.Summaries(), failures)

	var j journal.Journal
	if cfg.Journal.Type == "csv" {
		j, err = journal.NewCSV(cfg.Journal.SummariesFile)
	} else {
		j, err = journal.NewSQLite(cfg.Journal.DBPath)
	}
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	defer j.Close()

	if err := j.RecordRun(cmd.Context(), run); err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	log.Info("recorded run %s (%d measures, %d skipped) to %s journal",
		run.RunID, len(run.Summaries), len(failures), cfg.Journal.Type)

	if snapshotOrg != "" {
		if err := journal.WriteRunOrg(snapshotOrg, run); err != nil {
			return fmt.Errorf("write org: %w", err)
		}
		log.Info("wrote %s", snapshotOrg)
	}
	return nil
}
