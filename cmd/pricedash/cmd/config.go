package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rustyeddy/pricedash/config"
	"github.com/rustyeddy/pricedash/dataset"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Write, check or print the dashboard configuration",
	Long: `Manage the file that tells pricedash where the exports live and how to
serve and journal them.

Examples:
  pricedash config init -o pricedash.yaml
  pricedash config validate pricedash.yaml --data
  pricedash config show --config pricedash.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration with the default export names",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a configuration file and, optionally, the exports it names",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigValidate,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var (
	configInitOutput string
	configInitForce  bool
	configCheckData  bool
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configValidateCmd, configShowCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "pricedash.yaml", "file to write (.yaml/.yml or .json)")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")
	configValidateCmd.Flags().BoolVar(&configCheckData, "data", false, "also load the four exports")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if !configInitForce {
		if _, err := os.Stat(configInitOutput); err == nil {
			return fmt.Errorf("%s exists (use --force to overwrite)", configInitOutput)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	if err := config.Default().SaveToFile(configInitOutput); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		return fmt.Errorf("no config file: pass one as an argument or with --config")
	}

	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: ok (journal %s, listening on %s)\n", path, cfg.Journal.Type, cfg.Server.Addr)

	if !configCheckData {
		return nil
	}
	ds, err := dataset.Load(cfg.Paths())
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	for _, m := range dataset.Measures {
		fmt.Fprintf(out, "  %-9s %d rows\n", m.Slug(), ds.Measure(m).Len())
	}
	fmt.Fprintf(out, "  %-9s %d rows\n", "products", ds.Products().Len())
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}
