package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lexweb/internal/config"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "lexweb", cmd.Use)
	assert.Contains(t, cmd.Long, "LEXWEB_DB")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := [][]string{
		{"lexicon", "create"}, {"lexicon", "rename"}, {"lexicon", "delete"}, {"lexicon", "list"},
		{"lexicon", "show"}, {"lexicon", "add"}, {"lexicon", "remove"},
		{"web", "create"}, {"web", "rename"}, {"web", "delete"}, {"web", "list"}, {"web", "show"},
		{"web", "relate"}, {"web", "unrelate"}, {"web", "neighbors"}, {"web", "cycles"},
		{"import"}, {"export"},
	}

	for _, path := range commands {
		t.Run(filepath.Join(path...), func(t *testing.T) {
			subCmd, _, err := cmd.Find(path)
			require.NoError(t, err, "Command %v should exist", path)
			require.NotNil(t, subCmd)
			assert.Equal(t, path[len(path)-1], subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	for _, name := range []string{"config", "db", "owner", "metrics"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "missing --%s", name)
	}
}

func TestInvalidFormat(t *testing.T) {
	h := newHarness(t)
	out, _, err := h.run("--format", "xml", "lexicon", "list")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E002]")
	assert.Contains(t, out, "invalid format")
}

func TestMissingOwner(t *testing.T) {
	h := newHarness(t)
	out, _, err := h.runRaw("--db", h.db, "--format", "json", "lexicon", "list")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, ErrCodeConfig, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "owner is required")
}

func TestConfigFileAndEnvPrecedence(t *testing.T) {
	h := newHarness(t)
	cfgPath := filepath.Join(t.TempDir(), "lexweb.yaml")
	cfg := &config.Config{Database: h.db, Owner: "from-file"}
	require.NoError(t, cfg.SaveToFile(cfgPath))

	_, _, err := h.runRaw("--config", cfgPath, "lexicon", "create", "FileOwned")
	require.NoError(t, err)

	t.Setenv(config.EnvOwner, "from-env")
	_, _, err = h.runRaw("--config", cfgPath, "lexicon", "create", "EnvOwned")
	require.NoError(t, err)

	_, _, err = h.runRaw("--config", cfgPath, "--owner", "from-flag", "lexicon", "create", "FlagOwned")
	require.NoError(t, err)

	for owner, name := range map[string]string{"from-file": "FileOwned", "from-env": "EnvOwned", "from-flag": "FlagOwned"} {
		out, _, err := h.runRaw("--db", h.db, "--owner", owner, "lexicon", "list")
		require.NoError(t, err)
		assert.Contains(t, out, name, "owner %s", owner)
	}
}

func TestBadConfigFile(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: loud\n"), 0644))

	out, _, err := h.runRaw("--config", path, "lexicon", "list")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "log_level")
}

func TestUnopenableDatabase(t *testing.T) {
	h := newHarness(t)
	out, _, err := h.runRaw("--db", "/nonexistent/dir/x.db", "--owner", "alice", "lexicon", "list")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E003]")
}

func TestVerboseLogsToStderr(t *testing.T) {
	h := newHarness(t)
	out, errOut, err := h.run("--verbose", "--format", "json", "lexicon", "create", "Animals")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp), "stdout stays valid JSON")
	assert.Contains(t, errOut, "level=DEBUG")
	assert.Contains(t, errOut, `msg="create lexicon"`)
}

func TestMetricsFlag(t *testing.T) {
	h := newHarness(t)
	h.must("lexicon", "create", "Animals")
	_, errOut, err := h.run("--metrics", "lexicon", "create", "Animals")
	require.Error(t, err)

	assert.Contains(t, errOut, "# TYPE lexweb_operations_total counter")
	assert.Contains(t, errOut, `lexweb_operations_total{op="create lexicon",outcome="duplicate_name"} 1`)
}
