package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/daily/internal/errors"
	"github.com/thoreinstein/daily/internal/workspace"
)

var (
	listJSON  bool
	listLimit int
)

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false,
		"output results as JSON")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0,
		"show at most `N` workspaces (0 for all)")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List existing daily workspaces",
	Long: `List the daily workspaces under the workspace root, newest first.

Directories whose names do not match the configured year and date formats
are ignored, as is the template.`,
	Example: `  # Last week of workspaces
  daily list --limit 7

  # Machine-readable output
  daily list --json

  See Also: daily pick, daily date`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// listItem is the JSON form of a workspace entry.
type listItem struct {
	Date  string `json:"date"`
	Path  string `json:"path"`
	Today bool   `json:"today,omitempty"`
}

func runList(cmd *cobra.Command, _ []string) error {
	if listLimit < 0 {
		return errors.NewUserError(errors.Newf("invalid --limit %d", listLimit), "Use 0 to list everything")
	}

	resolver, err := newResolver(cmd)
	if err != nil {
		return err
	}

	entries, err := listEntries(resolver)
	if err != nil {
		return err
	}
	if listLimit > 0 && len(entries) > listLimit {
		entries = entries[:listLimit]
	}

	today := resolver.Now().Format(onLayout)
	items := make([]listItem, 0, len(entries))
	for _, e := range entries {
		date := e.Date.Format(onLayout)
		items = append(items, listItem{Date: date, Path: e.Path, Today: date == today})
	}

	if listJSON {
		return outputListJSON(cmd.OutOrStdout(), items)
	}
	outputListText(cmd.OutOrStdout(), items)
	return nil
}

// listEntries lists workspaces under the root. A root that does not exist
// yet has no workspaces.
func listEntries(resolver *workspace.Resolver) ([]workspace.Entry, error) {
	root, err := resolver.RootPath()
	if err != nil {
		return nil, err
	}
	return workspace.List(root, resolver.Layout())
}

func outputListJSON(w io.Writer, items []listItem) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return errors.Wrap(err, "encoding JSON")
	}
	return nil
}

func outputListText(w io.Writer, items []listItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No workspaces found.")
		return
	}

	dateColor := color.New(color.FgCyan)
	todayColor := color.New(color.FgGreen, color.Bold)

	for _, item := range items {
		if item.Today {
			fmt.Fprintf(w, "%s  %s %s\n", todayColor.Sprint(item.Date), item.Path, todayColor.Sprint("(today)"))
			continue
		}
		fmt.Fprintf(w, "%s  %s\n", dateColor.Sprint(item.Date), item.Path)
	}
}
