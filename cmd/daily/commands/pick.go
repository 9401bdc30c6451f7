package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/daily/internal/errors"
	"github.com/thoreinstein/daily/internal/workspace"
)

// previewEntries caps the directory listing shown in the preview window.
const previewEntries = 50

// findWorkspace selects one entry interactively. Tests replace it.
var findWorkspace = func(entries []workspace.Entry) (int, error) {
	return fuzzyfinder.Find(
		entries,
		func(i int) string {
			return entries[i].Date.Format(onLayout)
		},
		fuzzyfinder.WithPromptString("daily> "),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return previewWorkspace(entries[i])
		}),
	)
}

func init() {
	rootCmd.AddCommand(pickCmd)
}

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Interactively choose an existing workspace",
	Long: `Open a fuzzy finder over the existing daily workspaces and print the
path of the one selected. Cancelling prints nothing.`,
	Example: `  cd "$(daily pick)"

  See Also: daily list`,
	Args: cobra.NoArgs,
	RunE: runPick,
}

func runPick(cmd *cobra.Command, _ []string) error {
	resolver, err := newResolver(cmd)
	if err != nil {
		return err
	}

	entries, err := listEntries(resolver)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No workspaces found.")
		return nil
	}

	idx, err := findWorkspace(entries)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil
		}
		return errors.Wrap(err, "interactive selection failed")
	}

	fmt.Fprintln(cmd.OutOrStdout(), entries[idx].Path)
	return nil
}

// previewWorkspace renders the path and top-level contents of a workspace.
func previewWorkspace(e workspace.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n\n", e.Date.Format("Monday, January 2, 2006"), e.Path)

	children, err := os.ReadDir(e.Path)
	if err != nil {
		fmt.Fprintf(&b, "(unreadable: %v)\n", err)
		return b.String()
	}
	for i, child := range children {
		if i == previewEntries {
			fmt.Fprintf(&b, "... %d more\n", len(children)-previewEntries)
			break
		}
		name := child.Name()
		if child.IsDir() {
			name += "/"
		}
		b.WriteString(name + "\n")
	}
	return b.String()
}
