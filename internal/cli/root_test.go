package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/solbuild/internal/domain"
)

func init() {
	color.NoColor = true
}

// runCLI executes the root command with args and returns stdout
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := Execute(cmd)
	return out.String(), err
}

// initProject scaffolds a project with one contract and returns its document path
func initProject(t *testing.T) string {
	t.Helper()
	t.Setenv("SOLBUILD_SOLC", filepath.Join(t.TempDir(), "missing-solc"))
	t.Setenv("SOLBUILD_NETWORK", "")

	dir := t.TempDir()
	_, err := runCLI(t, "init", "--dir", dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "contracts", "Token.sol"), []byte("contract Token {}"), 0644))
	return filepath.Join(dir, "solbuild.toml")
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, "init", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Created solbuild.toml")
	assert.FileExists(t, filepath.Join(dir, "solbuild.toml"))
	assert.DirExists(t, filepath.Join(dir, "contracts"))

	out, err = runCLI(t, "init", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")
}

func TestConfigCommandJSON(t *testing.T) {
	path := initProject(t)

	out, err := runCLI(t, "--config", path, "--json", "config")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "development", got["active_network"])
	assert.Equal(t, "./contracts", got["contracts_directory"])

	networks := got["networks"].(map[string]any)
	dev := networks["development"].(map[string]any)
	assert.Equal(t, "127.0.0.1", dev["host"])
	assert.Equal(t, float64(7545), dev["port"])
	assert.Equal(t, "5777", dev["network_id"])
}

func TestNetworksCommand(t *testing.T) {
	path := initProject(t)

	out, err := runCLI(t, "--config", path, "networks")
	require.NoError(t, err)
	assert.Contains(t, out, "development")
	assert.Contains(t, out, "http://127.0.0.1:7545")
}

func TestUnknownNetwork(t *testing.T) {
	path := initProject(t)

	_, err := runCLI(t, "--config", path, "--network", "devel", "--non-interactive", "networks")
	require.Error(t, err)

	var unknown *domain.UnknownNetworkError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "development", unknown.Suggestion)
}

func TestMissingDocument(t *testing.T) {
	_, err := runCLI(t, "--config", filepath.Join(t.TempDir(), "solbuild.toml"), "networks")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "solbuild init")
}

func TestBuildDryRun(t *testing.T) {
	path := initProject(t)

	out, err := runCLI(t, "--config", path, "--json", "build", "--dry-run")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "dry_run", got["status"])
	assert.Equal(t, "development", got["network"])
	assert.Equal(t, false, got["recorded"])

	command := got["command"].([]any)
	assert.Contains(t, command, "--optimize")
	assert.Contains(t, command, "200")
}

func TestHistoryRequiresDB(t *testing.T) {
	path := initProject(t)

	_, err := runCLI(t, "--config", path, "history")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDBDisabled)
}

func TestFailedCommandCancelsTimeout(t *testing.T) {
	path := initProject(t)

	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--config", path, "history"})

	err := Execute(root)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDBDisabled)

	historyCmd, _, err := root.Find([]string{"history"})
	require.NoError(t, err)
	ctx := historyCmd.Context()
	require.NotNil(t, ctx)
	assert.NotNil(t, ctx.Value(appKey))
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestHistoryShowUnknownBuild(t *testing.T) {
	t.Setenv("SOLBUILD_SOLC", filepath.Join(t.TempDir(), "missing-solc"))
	t.Setenv("SOLBUILD_NETWORK", "")

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "contracts"), 0755))
	path := filepath.Join(dir, "solbuild.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[networks.development]
host = "127.0.0.1"
port = 7545
network_id = 5777

[db]
enabled = true
`), 0644))

	_, err := runCLI(t, "--config", path, "history", "show", "0b7c3f1e")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.FileExists(t, filepath.Join(dir, ".solbuild", "builds.db"))
}

func TestConfigSetAndRemove(t *testing.T) {
	path := initProject(t)

	out, err := runCLI(t, "--config", path, "config", "set", "network", "development")
	require.NoError(t, err)
	assert.Contains(t, out, "Set network to: development")
	assert.FileExists(t, filepath.Join(filepath.Dir(path), ".solbuild", "config.local.json"))

	_, err = runCLI(t, "--config", path, "config", "set", "network", "mainnet")
	assert.ErrorIs(t, err, domain.ErrUnknownNetwork)

	out, err = runCLI(t, "--config", path, "config", "remove", "network")
	require.NoError(t, err)
	assert.Contains(t, out, "Reset network to: development")
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "solbuild version")
}
