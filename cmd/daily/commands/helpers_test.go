package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// env is an isolated home directory with its own config directory.
type env struct {
	home      string
	root      string
	configDir string
}

// newEnv points HOME and the config directory at fresh temp directories.
func newEnv(t *testing.T) *env {
	t.Helper()

	home := t.TempDir()
	home, err := filepath.EvalSymlinks(home)
	require.NoError(t, err)

	e := &env{
		home:      home,
		root:      filepath.Join(home, "workspace", "daily"),
		configDir: filepath.Join(home, ".config", "daily"),
	}

	t.Setenv("HOME", home)
	t.Setenv("DAILY_CONFIG_DIR", e.configDir)
	for _, key := range []string{"DAILY_DEBUG", "DAILY_ROOT", "DAILY_TEMPLATE", "DAILY_AUTO_CREATE_ROOT", "EDITOR", "VISUAL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return e
}

// template creates the workspace root and a template holding files.
func (e *env) template(t *testing.T, files map[string]string) {
	t.Helper()
	dir := filepath.Join(e.root, "template")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// writeConfig writes a config.yaml into the environment's config directory.
func (e *env) writeConfig(t *testing.T, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(e.configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(e.configDir, "config.yaml"), []byte(content), 0o644))
}

// runCLI executes daily with args and returns what it wrote to stdout and
// stderr.
func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	resetFlags(rootCmd)
	resetContext(t.Context(), rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		closeLogSink()
	})

	err = rootCmd.ExecuteContext(t.Context())
	return out.String(), errOut.String(), err
}

// resetContext gives every command in the tree ctx. cobra only hands the
// root's context to a subcommand that has none, so a context kept from an
// earlier, already cancelled run would otherwise leak into this one.
func resetContext(ctx context.Context, cmd *cobra.Command) {
	cmd.SetContext(ctx)
	for _, sub := range cmd.Commands() {
		resetContext(ctx, sub)
	}
}

// resetFlags restores every flag in the command tree to its default so
// executions do not leak state into each other.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}
