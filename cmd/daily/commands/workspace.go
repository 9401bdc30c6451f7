package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/daily/internal/logging"
	"github.com/thoreinstein/daily/internal/workspace"
)

func init() {
	rootCmd.AddCommand(tempCmd)
	rootCmd.AddCommand(yearCmd)
	rootCmd.AddCommand(dateCmd)
}

var tempCmd = &cobra.Command{
	Use:     "temp",
	Aliases: []string{"template"},
	Short:   "Print the template directory path",
	Long: `Print the absolute path of the template directory that new daily
workspaces are copied from. Nothing is created.`,
	Example: `  # Edit the template
  cd "$(daily temp)"

  See Also: daily date, daily init`,
	Args: cobra.NoArgs,
	RunE: runTemp,
}

var yearCmd = &cobra.Command{
	Use:   "year",
	Short: "Create and print this year's directory",
	Long: `Print the absolute path of the current year's directory, creating it
and any missing parents first.`,
	Example: `  ls "$(daily year)"

  See Also: daily date, daily list`,
	Args: cobra.NoArgs,
	RunE: runYear,
}

var dateCmd = &cobra.Command{
	Use:     "date",
	Aliases: []string{"today"},
	Short:   "Create and print today's workspace",
	Long: `Print the absolute path of today's workspace. If it does not exist yet,
the template is copied into place first. An existing workspace is never
modified.

The copy is staged inside the year directory and renamed into place, so an
interrupted or concurrent run never leaves a half-populated workspace.`,
	Example: `  # Open today's workspace
  cd "$(daily date)"

  # Prepare a workspace for a specific day
  daily date --on 2024-03-15

  See Also: daily temp, daily year, daily list`,
	Args: cobra.NoArgs,
	RunE: runDate,
}

func runTemp(cmd *cobra.Command, _ []string) error {
	resolver, err := newResolver(cmd)
	if err != nil {
		return err
	}

	path, err := resolver.Path(workspace.KindTemplate)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func runYear(cmd *cobra.Command, _ []string) error {
	resolver, err := newResolver(cmd)
	if err != nil {
		return err
	}

	path, err := resolver.Path(workspace.KindYear)
	if err != nil {
		return err
	}
	if err := workspace.CreateDirs(path); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func runDate(cmd *cobra.Command, _ []string) error {
	logger := logging.FromContext(cmd.Context())

	resolver, err := newResolver(cmd)
	if err != nil {
		return err
	}

	p, err := resolver.Paths()
	if err != nil {
		return err
	}

	provisioner := workspace.NewProvisioner(currentConfig().Exclude, logger)
	created, err := provisioner.EnsureDateWorkspace(cmd.Context(), p.Template, p.Year, p.Date)
	if err != nil {
		return err
	}
	if created {
		logger.Info("created workspace", "path", p.Date)
	}

	fmt.Fprintln(cmd.OutOrStdout(), p.Date)
	return nil
}
