package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/daily/internal/config"
	"github.com/thoreinstein/daily/internal/errors"
	"github.com/thoreinstein/daily/internal/paths"
)

var (
	initForce    bool
	initRoot     string
	initTemplate string
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false,
		"overwrite existing configuration")
	initCmd.Flags().StringVar(&initRoot, "root", "",
		"workspace root, relative to home unless absolute (default "+config.DefaultRoot+")")
	initCmd.Flags().StringVar(&initTemplate, "template", "",
		"template directory name (default "+config.DefaultTemplate+")")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the configuration, workspace root and template",
	Long: `Bootstrap daily.

Writes a default configuration file if none exists and creates the workspace
root and the template directory. Running init again is safe: existing
directories are left alone and the configuration is only replaced with
--force.`,
	Example: `  # Use the defaults (~/workspace/daily)
  daily init

  # Keep workspaces somewhere else
  daily init --root ~/notes/days

  # Rewrite a broken configuration
  daily init --force

  See Also: daily config, daily doctor`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfigCheck: "true"},
	RunE:        runInit,
}

func runInit(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	configPath := configFile
	if configPath == "" {
		configPath = paths.ConfigFile()
	} else {
		expanded, err := paths.Expand(configPath)
		if err != nil {
			return err
		}
		configPath = expanded
	}

	cfg := currentConfig()
	if configLoadErr != nil && !initForce {
		return errors.NewUserError(
			errors.Wrap(configLoadErr, "existing configuration is invalid"),
			"Fix it with: daily config edit, or overwrite it with: daily init --force",
		)
	}

	_, statErr := os.Stat(configPath)
	exists := statErr == nil

	if !exists || initForce {
		if exists || configLoadErr != nil {
			cfg = config.Default()
		}
		if initRoot != "" {
			cfg.Root = initRoot
		}
		if initTemplate != "" {
			cfg.Template = initTemplate
		}
		if errs := config.Validate(cfg); len(errs) > 0 {
			return errors.NewUserError(errs[0], "")
		}

		if err := writeConfig(configPath, cfg); err != nil {
			return err
		}
		fmt.Fprintf(out, "Created %s\n", configPath)

		loadedConfig, configLoadErr = cfg, nil
	} else {
		fmt.Fprintf(out, "Configuration already exists at %s\n", configPath)
		if initRoot != "" || initTemplate != "" {
			fmt.Fprintln(out, "Use --force to overwrite")
		}
	}

	resolver, err := newResolver(cmd)
	if err != nil {
		return err
	}
	root, err := resolver.RootPath()
	if err != nil {
		return err
	}
	template := filepath.Join(root, cfg.Template)

	for _, dir := range []string{root, template} {
		if _, err := os.Stat(dir); err == nil {
			fmt.Fprintf(out, "Exists  %s\n", dir)
			continue
		}
		if err := paths.EnsureDir(dir, paths.DefaultDirPerm); err != nil {
			return errors.Tag(err, errors.ErrDirectoryCreation, "creating %s", dir)
		}
		fmt.Fprintf(out, "Created %s\n", dir)
	}

	return nil
}
