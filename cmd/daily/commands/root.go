// Package commands implements the CLI commands for daily.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/daily/cmd"
	"github.com/thoreinstein/daily/internal/config"
	"github.com/thoreinstein/daily/internal/errors"
	"github.com/thoreinstein/daily/internal/logging"
	"github.com/thoreinstein/daily/internal/paths"
	"github.com/thoreinstein/daily/internal/workspace"
)

// onLayout is the layout accepted by --on.
const onLayout = "2006-01-02"

// skipConfigCheck is set in the Annotations of commands that must run even
// when the configuration fails to load.
const skipConfigCheck = "daily/skip-config-check"

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configFile holds the value of the --config flag.
var configFile string

// onDate holds the value of the --on flag.
var onDate string

var (
	// loadedConfig is the configuration read by initConfig.
	loadedConfig *config.Config
	// configLoadErr holds any error that occurred during config loading.
	configLoadErr error
)

// logSink is the open --log-file, closed by Execute.
var logSink *os.File

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	pf.BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	pf.StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	pf.StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	pf.StringVar(&configFile, "config", "",
		"config file (default $XDG_CONFIG_HOME/daily/config.yaml)")
	pf.StringVar(&onDate, "on", "",
		"resolve paths for `YYYY-MM-DD` instead of today")

	rootCmd.Flags().BoolP("temp", "t", false, "print the template path")
	rootCmd.Flags().BoolP("year", "y", false, "create and print this year's directory")
	rootCmd.Flags().BoolP("date", "d", false, "create and print today's workspace")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("daily version {{.Version}}\n")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.NewUserError(err, "Run: daily help")
	})

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()

	path := configFile
	if path != "" {
		if expanded, err := paths.Expand(path); err == nil {
			path = expanded
		}
	}
	// Capture load errors for later reporting
	loadedConfig, configLoadErr = config.Load(path)
}

var rootCmd = &cobra.Command{
	Use:   "daily [command]",
	Short: "Resolve and create date-organized workspace directories",
	Long: `daily manages a personal workspace tree organized by date:

  ~/workspace/daily/template    copied into every new day
  ~/workspace/daily/2024        one directory per year
  ~/workspace/daily/2024/0315   one workspace per day

Each command prints a single absolute path on stdout so it composes with
the shell. Today's workspace is created from the template on first use.`,
	Example: `  # Jump into today's workspace, creating it if needed
  cd "$(daily date)"

  # Short forms
  daily -d
  daily -y
  daily -t

  # Resolve a different day
  daily date --on 2024-03-15

  See Also: daily init, daily list, daily doctor`,
	Args: cobra.ArbitraryArgs,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// Initialize logging first
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfig(cmd)
	},
	RunE: runRoot,
}

// runRoot handles the flag forms of the workspace commands and rejects
// anything that is not a known command.
func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		printUsage(cmd)
		return errors.Tag(nil, errors.ErrUnknownSubcommand, "unknown subcommand %q", args[0])
	}

	var forms []string
	for _, name := range []string{"temp", "year", "date"} {
		if cmd.Flags().Changed(name) {
			forms = append(forms, name)
		}
	}

	switch {
	case len(forms) > 1:
		return errors.NewUserError(
			errors.Newf("flags --%s are mutually exclusive", strings.Join(forms, ", --")),
			"Pass only one of -t, -y or -d",
		)
	case len(forms) == 0:
		printUsage(cmd)
		return errors.Tag(nil, errors.ErrMissingSubcommand, "expected a command")
	}

	switch forms[0] {
	case "temp":
		return runTemp(cmd, nil)
	case "year":
		return runYear(cmd, nil)
	default:
		return runDate(cmd, nil)
	}
}

// printUsage writes usage to stderr so stdout only ever carries a path.
func printUsage(cmd *cobra.Command) {
	fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "")
	}

	format, err := logging.ParseFormat(logFormat)
	if err != nil {
		return errors.NewUserError(err, "Use --log-format text or json")
	}

	level := slog.LevelError
	if !quiet {
		v := verbosity
		if v == 0 {
			v = logging.VerbosityFromEnv(os.Getenv("DAILY_DEBUG"))
		}
		level = logging.LevelFromVerbosity(v)
	}

	closeLogSink()
	if logFile != "" {
		path, err := paths.Expand(logFile)
		if err != nil {
			return errors.NewUserError(err, "")
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(errors.Wrap(err, "failed to open log file"), "")
		}
		logSink = f
	}

	cfg := logging.Config{Level: level, Format: format, Output: cmd.ErrOrStderr()}
	if logSink != nil {
		cfg.File = logSink
	}
	logger := logging.New(cfg)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

func closeLogSink() {
	if logSink != nil {
		_ = logSink.Close()
		logSink = nil
	}
}

// checkConfig fails commands that depend on configuration when it did not
// load. help, version and annotated commands run regardless.
func checkConfig(cmd *cobra.Command) error {
	if configLoadErr == nil {
		return nil
	}
	if cmd.Name() == "help" || cmd.Name() == "version" || cmd.Annotations[skipConfigCheck] != "" {
		logging.FromContext(cmd.Context()).Debug("ignoring config error", "error", configLoadErr)
		return nil
	}
	return errors.NewConfigError(configLoadErr)
}

// currentConfig returns the loaded configuration, or defaults when loading
// failed.
func currentConfig() *config.Config {
	if loadedConfig == nil {
		return config.Default()
	}
	return loadedConfig
}

// newResolver builds a Resolver from configuration and the --on flag.
func newResolver(cmd *cobra.Command) (*workspace.Resolver, error) {
	cfg := currentConfig()

	opts := []workspace.Option{
		workspace.WithLogger(logging.FromContext(cmd.Context())),
		workspace.WithAutoCreate(cfg.AutoCreateRoot),
	}

	if onDate != "" {
		day, err := time.ParseInLocation(onLayout, onDate, time.Local)
		if err != nil {
			return nil, errors.NewUserError(
				errors.Wrapf(err, "invalid --on date %q", onDate),
				"Use the form YYYY-MM-DD",
			)
		}
		opts = append(opts, workspace.WithClock(workspace.FixedClock(day)))
	}

	return workspace.NewResolver(workspace.LayoutFromConfig(cfg), opts...), nil
}

// Execute runs the root command.
func Execute() error {
	defer closeLogSink()
	return rootCmd.Execute()
}

// Report prints err to w the way users see failures and returns the exit
// code for it.
func Report(w io.Writer, err error) int {
	if err == nil {
		return errors.ExitSuccess
	}

	var exitErr *errors.ExitError
	if !errors.As(errors.Classify(err), &exitErr) {
		fmt.Fprintf(w, "Error: %v\n", err)
		return errors.ExitSystem
	}

	// An ExitError without a cause carries only a status; output was
	// already written by the command.
	if exitErr.Err == nil {
		return exitErr.Code
	}

	fmt.Fprintf(w, "Error: %v\n", err)
	if exitErr.Suggestion != "" {
		fmt.Fprintf(w, "hint: %s\n", exitErr.Suggestion)
	}
	return exitErr.Code
}
