package journal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRunOrg(t *testing.T) {
	t.Parallel()

	result, err := FormatRunOrg(testRun())
	require.NoError(t, err)

	// heading
	assert.True(t, strings.HasPrefix(result, "* SNAPSHOT: Price sensitivity (01HZY3Q6)"))

	// properties drawer
	assert.Contains(t, result, ":RUN_ID:      01HZY3Q6V0RUNAAAAAAAAAAAAA")
	assert.Contains(t, result, ":CREATED:     [2025-02-24 Mon 09:30]")
	assert.Contains(t, result, ":REVENUE:     aggregated_revenue.csv")
	assert.Contains(t, result, ":MEASURES:    2")
	assert.Contains(t, result, ":END:")

	// table rows
	assert.Contains(t, result, "| Revenue | 240.00 | 200.00 | 1000.00 | 1000.00 | 20.00 | 10.00 | 10.00 | ▲ 10.00% better than Control |")
	assert.Contains(t, result, "| Quantity | 2100.00 | 2000.00 | 50.00 | 50.00 | 5.00 | 5.00 | 0.00 | No difference from Control |")

	// failures
	assert.Contains(t, result, "** Skipped")
	assert.Contains(t, result, "- Margin: percent change: zero baseline")
}

func TestFormatRunOrgNoFailures(t *testing.T) {
	t.Parallel()

	r := testRun()
	r.Failures = nil

	result, err := FormatRunOrg(r)
	require.NoError(t, err)
	assert.NotContains(t, result, "** Skipped")
	assert.Contains(t, result, "** Notes")
}

func TestWriteRunOrg(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "run.org")
	require.NoError(t, WriteRunOrg(path, testRun()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want, err := FormatRunOrg(testRun())
	require.NoError(t, err)
	assert.Equal(t, want, string(data))
}

func TestShortID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", shortID("abc"))
	assert.Equal(t, "12345678", shortID("1234567890"))
}
