package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/daily/internal/config"
	"github.com/thoreinstein/daily/internal/editor"
	"github.com/thoreinstein/daily/internal/errors"
	"github.com/thoreinstein/daily/internal/paths"
	"github.com/thoreinstein/daily/pkg/fileutil"
)

// configFormat holds the value of the config list --format flag.
var configFormat string

func init() {
	configListCmd.Flags().StringVar(&configFormat, "format", "yaml",
		"output format: yaml, json, toml")

	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage daily configuration",
	Long: `Manage daily configuration stored in ~/.config/daily/config.yaml.

Without a subcommand, lists all configuration values.`,
	Example: `  # List all configuration
  daily config

  # Get a specific value
  daily config get root

  # Set a value
  daily config set exclude '**/.DS_Store,**/*.swp'

See Also: daily init, daily doctor`,
	Args: cobra.NoArgs,
	RunE: runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a single configuration value by key.

List values are printed one per line. Known keys: ` + strings.Join(config.Keys, ", "),
	Example: `  daily config get date_format

See Also: daily config set, daily config list`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and save the configuration file.

For list values like exclude, use comma-separated values. The resulting
configuration is validated before it is written.`,
	Example: `  # Keep workspaces under ~/notes/days
  daily config set root notes/days

  # Name date directories like 2024-03-15
  daily config set date_format 2006-01-02

See Also: daily config get, daily config list`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration",
	Long:  `List all effective configuration values in YAML, JSON or TOML.`,
	Example: `  daily config list
  daily config list --format toml

See Also: daily config get, daily config set`,
	Args: cobra.NoArgs,
	RunE: runConfigList,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open configuration in $EDITOR",
	Long: `Open the configuration file in your default editor.

Uses $EDITOR, then $VISUAL, then nano or vi.
If no configuration file exists, prints an error suggesting to run 'daily init'.`,
	Example: `  # Open config in default editor
  daily config edit

  # Open with specific editor
  EDITOR=nano daily config edit

See Also: daily config list, daily init`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfigCheck: "true"},
	RunE:        runConfigEdit,
}

// checkKey rejects keys daily does not know about.
func checkKey(key string) error {
	if slices.Contains(config.Keys, key) {
		return nil
	}
	return errors.NewUserError(
		errors.Newf("unknown config key %q", key),
		"Valid keys: "+strings.Join(config.Keys, ", "),
	)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	if err := checkKey(key); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch v := viper.Get(key).(type) {
	case []any:
		for _, item := range v {
			fmt.Fprintln(w, item)
		}
	case []string:
		for _, item := range v {
			fmt.Fprintln(w, item)
		}
	default:
		fmt.Fprintln(w, viper.GetString(key))
	}

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, raw := args[0], args[1]
	if err := checkKey(key); err != nil {
		return err
	}

	var value any
	switch key {
	case "version":
		n, err := strconv.Atoi(raw)
		if err != nil {
			return errors.NewUserError(errors.Newf("version must be an integer, got %q", raw), "")
		}
		value = n
	case "auto_create_root":
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return errors.NewUserError(errors.Newf("auto_create_root must be true or false, got %q", raw), "")
		}
		value = b
	case "exclude":
		value = splitList(raw)
	default:
		value = raw
	}

	// Edit the file's own settings; DAILY_* overrides stay out of it.
	path := config.FileUsed()
	v, err := config.FileSettings(path)
	if err != nil {
		return errors.NewUserError(err, "Run: daily config edit")
	}
	v.Set(key, value)

	cfg, err := config.Decode(v)
	if err != nil {
		if errors.Is(err, errors.ErrInvalidConfig) {
			return errors.NewUserError(err, "")
		}
		return err
	}

	if err := writeConfig(path, cfg); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v\n", key, value)
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	return encodeConfig(cmd.OutOrStdout(), configFormat, currentConfig())
}

// encodeConfig writes cfg to w in the named format.
func encodeConfig(w io.Writer, format string, cfg *config.Config) error {
	switch format {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return errors.Wrap(err, "marshaling config")
		}
		return errors.Wrap(enc.Close(), "marshaling config")
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(cfg), "marshaling config")
	case "toml":
		return errors.Wrap(toml.NewEncoder(w).Encode(cfg), "marshaling config")
	default:
		return errors.NewUserError(errors.Newf("unsupported format %q", format), "Use --format yaml, json or toml")
	}
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	path := config.FileUsed()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return errors.NewUserError(errors.Newf("config file not found at %s", path), "Run: daily init")
	}

	return editor.Open(cmd.Context(), cmd.ErrOrStderr(), path)
}

// splitList splits a comma-separated string, dropping empty items.
func splitList(s string) []string {
	var items []string
	for item := range strings.SplitSeq(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// writeConfig saves cfg to path, creating its directory if needed.
func writeConfig(path string, cfg *config.Config) error {
	if err := paths.EnsureDir(filepath.Dir(path), paths.DefaultDirPerm); err != nil {
		return errors.Wrap(err, "creating config directory")
	}

	if err := fileutil.AtomicWriteYAML(path, cfg); err != nil {
		return errors.Wrap(err, "writing config file")
	}

	return nil
}
