package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/rustyeddy/pricedash/config"
	"github.com/rustyeddy/pricedash/journal"
	"github.com/rustyeddy/pricedash/product"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const measureCSV = `Price change,StrategyBoxName,Test 25,Test 24,Control 25,Control 24,%Change Test,%Change Control
+5%,Premium,110,100,105,100,10,5
+10%,Budget,130,100,115,100,30,15
`

const productCSV = `ProductId,StrategyBoxName,Total Revenue Test 25,Total Margin Test 25,Quantity Test 25
P1,Premium,1000,200,10
P2,Budget,500,50,4
`

// execute runs the root command with args and resets the flags it touched.
func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Cleanup(func() {
		cfgFile, verbose = "", false
		snapshotOrg, journalDBPath = "", ""
		serveAddr, summaryJSON, journalLimit = "", false, 20
		topMetric, topN = product.DefaultMetric.Name, product.DefaultTopN
		configInitOutput, configInitForce, configCheckData = "pricedash.yaml", false, false
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func writeConfig(t *testing.T, journalType string) (string, *config.Config) {
	t.Helper()
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0644))
		return p
	}

	cfg := config.Default()
	cfg.Data = config.DataConfig{
		Revenue:  write("aggregated_revenue.csv", measureCSV),
		Margin:   write("aggregated_margin.csv", measureCSV),
		Quantity: write("aggregated_quantity.csv", measureCSV),
		Products: write("products.csv", productCSV),
	}
	cfg.Journal = config.JournalConfig{
		Type:          journalType,
		SummariesFile: filepath.Join(dir, "summaries.csv"),
		DBPath:        filepath.Join(dir, "runs.db"),
	}

	path := filepath.Join(dir, "pricedash.yaml")
	require.NoError(t, cfg.SaveToFile(path))
	return path, cfg
}

// executeOut is execute with the command output captured.
func executeOut(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	err := execute(t, args...)
	return buf.String(), err
}

func TestConfigInitAndValidate(t *testing.T) {
	out := filepath.Join(t.TempDir(), "pricedash.yaml")

	require.NoError(t, execute(t, "config", "init", "--output", out))
	_, err := os.Stat(out)
	require.NoError(t, err)

	err = execute(t, "config", "init", "--output", out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")
	require.NoError(t, execute(t, "config", "init", "--output", out, "--force"))

	got, err := executeOut(t, "config", "validate", out)
	require.NoError(t, err)
	assert.Contains(t, got, "ok (journal csv, listening on :8080)")
}

func TestConfigValidateRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("journal:\n  type: mysql\n"), 0644))

	err := execute(t, "config", "validate", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	err = execute(t, "config", "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no config file")
}

func TestConfigValidateData(t *testing.T) {
	path, cfg := writeConfig(t, "csv")

	got, err := executeOut(t, "config", "validate", "--config", path, "--data")
	require.NoError(t, err)
	assert.Contains(t, got, "revenue   2 rows")
	assert.Contains(t, got, "products  2 rows")

	require.NoError(t, os.Remove(cfg.Data.Products))
	err = execute(t, "config", "validate", path, "--data")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load products")
}

func TestConfigShow(t *testing.T) {
	got, err := executeOut(t, "config", "show")
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(got), &cfg))
	assert.Equal(t, *config.Default(), cfg)
}

func TestVersion(t *testing.T) {
	got, err := executeOut(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "pricedash dev ("), got)
	assert.Contains(t, got, runtime.Version())
}

func TestSummaryAndTop(t *testing.T) {
	path, _ := writeConfig(t, "csv")

	require.NoError(t, execute(t, "summary", "--config", path))
	require.NoError(t, execute(t, "top", "--config", path, "--metric", "Quantity", "-n", "1"))
}

func TestTopUnknownMetric(t *testing.T) {
	path, _ := writeConfig(t, "csv")

	err := execute(t, "top", "--config", path, "--metric", "Profit")
	assert.Error(t, err)
}

func TestSummaryMissingData(t *testing.T) {
	path, cfg := writeConfig(t, "csv")
	require.NoError(t, os.Remove(cfg.Data.Margin))

	err := execute(t, "summary", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load data")
}

func TestSnapshotCSV(t *testing.T) {
	path, cfg := writeConfig(t, "csv")
	org := filepath.Join(t.TempDir(), "run.org")

	require.NoError(t, execute(t, "snapshot", "--config", path, "--org", org))

	data, err := os.ReadFile(cfg.Journal.SummariesFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "better than Control")

	orgData, err := os.ReadFile(org)
	require.NoError(t, err)
	assert.Contains(t, string(orgData), "* SNAPSHOT: Price sensitivity")
}

func TestSnapshotSQLiteAndJournal(t *testing.T) {
	path, cfg := writeConfig(t, "sqlite")

	require.NoError(t, execute(t, "snapshot", "--config", path))

	j, err := journal.NewSQLite(cfg.Journal.DBPath)
	require.NoError(t, err)
	runs, err := j.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	require.NoError(t, j.Close())
	require.Len(t, runs, 1)
	assert.Equal(t, 3, runs[0].Measures)
	assert.Equal(t, 3, runs[0].Better)

	require.NoError(t, execute(t, "journal", "list", "--config", path))
	require.NoError(t, execute(t, "journal", "show", runs[0].RunID, "--db", cfg.Journal.DBPath))

	err = execute(t, "journal", "show", "nonexistent", "--db", cfg.Journal.DBPath)
	assert.ErrorIs(t, err, journal.ErrRunNotFound)
}
