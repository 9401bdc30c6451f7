package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/daily/cmd"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Print the version, commit, build date and Go version of daily.`,
	Args:  cobra.NoArgs,
	Run: func(c *cobra.Command, _ []string) {
		version, commit, date := cmd.BuildInfo()
		w := c.OutOrStdout()
		fmt.Fprintf(w, "daily version %s\n", version)
		fmt.Fprintf(w, "  commit:    %s\n", commit)
		fmt.Fprintf(w, "  built:     %s\n", date)
		fmt.Fprintf(w, "  go:        %s\n", runtime.Version())
	},
}
