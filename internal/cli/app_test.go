package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"activity-flags/internal/domain"
	"activity-flags/internal/handoff"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLedger = `id,date,sum_a,count_a,sum_b,count_b
X,2023-12-15,50,2,0,0
X,2024-01-20,-50,1,0,0
Y,2023-10-31,0,0,10,1
Z,2024-02-01,0,0,12.5,3
`

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := NewCLIApp("test")
	app.rootCmd.SetOut(&out)
	app.rootCmd.SetErr(&errOut)
	app.rootCmd.SetArgs(args)
	err = app.Execute()
	return out.String(), errOut.String(), err
}

func writeRunConfig(t *testing.T) (configPath, sinkPath string) {
	t.Helper()
	dir := t.TempDir()
	ledgerPath := filepath.Join(dir, "profit_table.csv")
	require.NoError(t, os.WriteFile(ledgerPath, []byte(testLedger), 0o644))
	sinkPath = filepath.Join(dir, "flags_activity.csv")

	configPath = filepath.Join(dir, "activityflags.yaml")
	content := fmt.Sprintf(`catalog: [a, b]
source:
  kind: file
  path: %s
artifacts:
  kind: file
  dir: %s
sink:
  kind: csv
  path: %s
log:
  level: error
  format: json
`, ledgerPath, filepath.Join(dir, "artifacts"), sinkPath)
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))
	return configPath, sinkPath
}

func TestWindowCommand(t *testing.T) {
	stdout, _, err := execute(t, "window", "--date", "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, "[2023-11-01, 2024-02-01]\n", stdout)

	stdout, _, err = execute(t, "window", "-d", "2024-03-31")
	require.NoError(t, err)
	assert.Equal(t, "[2024-01-31, 2024-04-30]\n", stdout)

	_, _, err = execute(t, "window", "-d", "01/01/2024")
	assert.ErrorIs(t, err, domain.ErrInvalidDateFormat)

	_, _, err = execute(t, "window")
	assert.ErrorContains(t, err, "date")
}

func TestRunCommand(t *testing.T) {
	configPath, sinkPath := writeRunConfig(t)

	stdout, stderr, err := execute(t, "run", "-C", configPath, "-d", "2024-01-01")
	require.NoError(t, err)

	var report domain.RunReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, domain.RunStateLoaded, report.State)
	assert.Equal(t, 2, report.FlagRows)
	assert.Contains(t, report.Artifacts, handoff.KeyExtractedLedger)
	assert.Contains(t, report.Artifacts, handoff.KeyTransformedFlags)
	assert.Contains(t, stderr, "LOADED")

	out, err := os.ReadFile(sinkPath)
	require.NoError(t, err)
	assert.Equal(t, "id,flag_a,flag_b\nX,0,0\nZ,0,1\n", string(out))
}

func TestRunCommand_CatalogOverride(t *testing.T) {
	configPath, sinkPath := writeRunConfig(t)

	_, _, err := execute(t, "run", "-C", configPath, "-d", "2024-01-01", "--catalog", "b")
	require.NoError(t, err)

	out, err := os.ReadFile(sinkPath)
	require.NoError(t, err)
	assert.Equal(t, "id,flag_b\nX,0\nZ,1\n", string(out))
}

func TestRunCommand_InvalidDate(t *testing.T) {
	configPath, sinkPath := writeRunConfig(t)

	stdout, stderr, err := execute(t, "run", "-C", configPath, "-d", "2024-13-40")
	assert.ErrorIs(t, err, domain.ErrInvalidDateFormat)

	var report domain.RunReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, domain.RunStateFailed, report.State)
	assert.Empty(t, report.Artifacts)
	assert.Contains(t, stderr, "FAILED")
	assert.NoFileExists(t, sinkPath)
}

func TestRunCommand_ConfigErrors(t *testing.T) {
	_, _, err := execute(t, "run", "-d", "2024-01-01", "-C", filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	configPath, _ := writeRunConfig(t)
	_, _, err = execute(t, "run", "-C", configPath, "-d", "2024-01-01", "--catalog", "a,a")
	assert.ErrorContains(t, err, "duplicate")

	_, _, err = execute(t, "run", "-C", configPath)
	assert.ErrorContains(t, err, "date")
}
