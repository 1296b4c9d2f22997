package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/survivorsrl/netreport/internal/errors"
	"github.com/survivorsrl/netreport/internal/report"
	"github.com/survivorsrl/netreport/options"
)

const twoCasesDocument = `<?xml version="1.0"?>
<testsuite>
  <testcase name="ConnectTest" classname="Network.Smoke" time="1.0"/>
  <testcase name="SpawnTest" classname="Network.Smoke" time="3.0"/>
</testsuite>`

const scenarioDocument = `<testsuite>
  <testcase name="TwoPlayersScenario" classname="Network.Scenarios" time="2.0">
    <system-out>Latency OK - PASS</system-out>
  </testcase>
</testsuite>`

func newTestOptions(t *testing.T) (*options.Options, *bytes.Buffer) {
	t.Helper()

	opts := options.NewOptions()
	opts.WorkingDir = t.TempDir()
	opts.DisableColor = true

	output := new(bytes.Buffer)
	opts.Writer = output
	opts.ErrWriter = io.Discard
	opts.Logger.Logger.SetOutput(io.Discard)

	return opts, output
}

func writeDocument(t *testing.T, path string, document string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(document), 0600))
}

func readMetrics(t *testing.T, path string) report.Metrics {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var metrics report.Metrics
	require.NoError(t, json.Unmarshal(data, &metrics))

	return metrics
}

func TestRunAggregatesResults(t *testing.T) {
	t.Parallel()

	opts, output := newTestOptions(t)

	resultsDir := t.TempDir()
	writeDocument(t, filepath.Join(resultsDir, "results.xml"), twoCasesDocument)

	err := NewApp(opts).Run([]string{"netreport", resultsDir})
	require.NoError(t, err)

	artifactPath := filepath.Join(opts.WorkingDir, options.DefaultOutputName)
	metrics := readMetrics(t, artifactPath)

	require.Len(t, metrics.Tests, 2)
	assert.InDelta(t, 2.0, metrics.Latency.Average, 0.0001)
	assert.Zero(t, metrics.Latency.Samples)
	assert.Equal(t, report.Scenarios{}, metrics.Scenarios)

	// The artifact is echoed to the output stream for interactive inspection.
	assert.Contains(t, output.String(), `"average": 2`)
	assert.Contains(t, output.String(), `"name": "ConnectTest"`)
}

func TestRunScenarioCoverage(t *testing.T) {
	t.Parallel()

	opts, _ := newTestOptions(t)

	resultsDir := t.TempDir()
	writeDocument(t, filepath.Join(resultsDir, "scenarios.xml"), scenarioDocument)

	outputPath := filepath.Join(t.TempDir(), "metrics.json")

	err := NewApp(opts).Run([]string{"netreport", "--output", outputPath, resultsDir})
	require.NoError(t, err)

	metrics := readMetrics(t, outputPath)

	assert.True(t, metrics.Scenarios.TwoPlayers)
	assert.False(t, metrics.Scenarios.ThreePlayers)
	assert.False(t, metrics.Scenarios.FourPlayers)
	assert.Equal(t, 1, metrics.Latency.Samples)
}

func TestRunFlagsAfterPositionalArgument(t *testing.T) {
	t.Parallel()

	opts, _ := newTestOptions(t)

	resultsDir := t.TempDir()
	writeDocument(t, filepath.Join(resultsDir, "results.xml"), twoCasesDocument)

	outputPath := filepath.Join(t.TempDir(), "metrics.json")

	err := NewApp(opts).Run([]string{"netreport", resultsDir, "--output", outputPath})
	require.NoError(t, err)

	// The artifact lands at the requested path, not at the default one.
	metrics := readMetrics(t, outputPath)
	assert.Len(t, metrics.Tests, 2)
	assert.NoFileExists(t, filepath.Join(opts.WorkingDir, options.DefaultOutputName))
}

func TestRunEmptyResultsDir(t *testing.T) {
	t.Parallel()

	opts, _ := newTestOptions(t)

	err := NewApp(opts).Run([]string{"netreport", t.TempDir()})
	require.NoError(t, err)

	metrics := readMetrics(t, filepath.Join(opts.WorkingDir, options.DefaultOutputName))

	assert.Empty(t, metrics.Tests)
	assert.Zero(t, metrics.Latency.Average)
	assert.Equal(t, report.Scenarios{}, metrics.Scenarios)
}

func TestRunMissingResultsDir(t *testing.T) {
	t.Parallel()

	opts, _ := newTestOptions(t)

	err := NewApp(opts).Run([]string{"netreport", filepath.Join(t.TempDir(), "missing")})
	require.NoError(t, err)

	metrics := readMetrics(t, filepath.Join(opts.WorkingDir, options.DefaultOutputName))
	assert.Empty(t, metrics.Tests)
}

func TestRunMissingRequiredArgument(t *testing.T) {
	t.Parallel()

	opts, output := newTestOptions(t)

	err := NewApp(opts).Run([]string{"netreport"})
	require.Error(t, err)

	var exitCodeErr errors.ErrorWithExitCode
	require.True(t, errors.As(err, &exitCodeErr))
	assert.Equal(t, 1, exitCodeErr.ExitCode)

	// Usage is printed, but no artifact is written.
	assert.Contains(t, output.String(), "test_results_dir")
	assert.NoFileExists(t, filepath.Join(opts.WorkingDir, options.DefaultOutputName))
}

func TestRunSkipsMalformedDocuments(t *testing.T) {
	t.Parallel()

	opts, _ := newTestOptions(t)

	resultsDir := t.TempDir()
	writeDocument(t, filepath.Join(resultsDir, "corrupt.xml"), "<testsuite><testcase")
	writeDocument(t, filepath.Join(resultsDir, "good.xml"), twoCasesDocument)

	err := NewApp(opts).Run([]string{"netreport", resultsDir})
	require.NoError(t, err)

	metrics := readMetrics(t, filepath.Join(opts.WorkingDir, options.DefaultOutputName))
	assert.Len(t, metrics.Tests, 2)
}

func TestRunPreservesDiscoveryOrder(t *testing.T) {
	t.Parallel()

	opts, _ := newTestOptions(t)

	resultsDir := t.TempDir()
	writeDocument(t, filepath.Join(resultsDir, "b", "second.xml"), `<testsuite><testcase name="FromB"/></testsuite>`)
	writeDocument(t, filepath.Join(resultsDir, "a", "first.xml"), `<testsuite><testcase name="FromA"/></testsuite>`)

	err := NewApp(opts).Run([]string{"netreport", resultsDir})
	require.NoError(t, err)

	metrics := readMetrics(t, filepath.Join(opts.WorkingDir, options.DefaultOutputName))
	require.Len(t, metrics.Tests, 2)
	assert.Equal(t, "FromA", metrics.Tests[0].Name)
	assert.Equal(t, "FromB", metrics.Tests[1].Name)
}

func TestRunIsIdempotent(t *testing.T) {
	t.Parallel()

	resultsDir := t.TempDir()
	writeDocument(t, filepath.Join(resultsDir, "results.xml"), scenarioDocument)

	opts, _ := newTestOptions(t)
	artifactPath := filepath.Join(opts.WorkingDir, options.DefaultOutputName)

	require.NoError(t, NewApp(opts).Run([]string{"netreport", resultsDir}))
	first, err := os.ReadFile(artifactPath)
	require.NoError(t, err)

	require.NoError(t, NewApp(opts).Run([]string{"netreport", resultsDir}))
	second, err := os.ReadFile(artifactPath)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRunWithValidation(t *testing.T) {
	t.Parallel()

	opts, _ := newTestOptions(t)

	resultsDir := t.TempDir()
	writeDocument(t, filepath.Join(resultsDir, "results.xml"), twoCasesDocument)

	err := NewApp(opts).Run([]string{"netreport", "--validate", resultsDir})
	require.NoError(t, err)
}

func TestRunWritesSchemaFile(t *testing.T) {
	t.Parallel()

	opts, _ := newTestOptions(t)

	schemaPath := filepath.Join(t.TempDir(), "schema.json")

	err := NewApp(opts).Run([]string{"netreport", "--schema-file", schemaPath, t.TempDir()})
	require.NoError(t, err)

	data, err := os.ReadFile(schemaPath)
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))
	assert.Equal(t, "Network Metrics Report Schema", schema["title"])
}

func TestRunFailsWhenOutputNotWritable(t *testing.T) {
	t.Parallel()

	opts, _ := newTestOptions(t)

	resultsDir := t.TempDir()
	writeDocument(t, filepath.Join(resultsDir, "results.xml"), twoCasesDocument)

	outputPath := filepath.Join(t.TempDir(), "missing-dir", "metrics.json")

	err := NewApp(opts).Run([]string{"netreport", "--output", outputPath, resultsDir})
	require.Error(t, err)
	assert.NoFileExists(t, outputPath)
}
