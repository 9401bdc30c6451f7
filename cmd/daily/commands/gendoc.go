package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/thoreinstein/daily/cmd"
	"github.com/thoreinstein/daily/internal/errors"
	"github.com/thoreinstein/daily/internal/paths"
)

var (
	genDocDir    string
	genDocFormat string
)

var genDocCmd = &cobra.Command{
	Use:         "gen-doc",
	Short:       "Generate Markdown or man page documentation for the CLI",
	Hidden:      true,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfigCheck: "true"},
	RunE: func(c *cobra.Command, _ []string) error {
		if genDocDir == "" {
			return errors.NewUserError(errors.New("output directory is required"), "Pass --dir")
		}

		if err := paths.EnsureDir(genDocDir, paths.DefaultDirPerm); err != nil {
			return errors.Wrap(err, "creating output directory")
		}

		var err error
		switch genDocFormat {
		case "markdown", "md":
			err = doc.GenMarkdownTreeCustom(rootCmd, genDocDir, filePrepender, linkHandler)
		case "man":
			version, _, _ := cmd.BuildInfo()
			err = doc.GenManTree(rootCmd, &doc.GenManHeader{
				Title:   "DAILY",
				Section: "1",
				Source:  "daily " + version,
			}, genDocDir)
		default:
			return errors.NewUserError(errors.Newf("unsupported format %q", genDocFormat), "Use --format markdown or man")
		}
		if err != nil {
			return errors.Wrapf(err, "generating %s docs", genDocFormat)
		}

		fmt.Fprintf(c.OutOrStdout(), "Documentation generated in %s\n", genDocDir)
		return nil
	},
}

func init() {
	genDocCmd.Flags().StringVar(&genDocDir, "dir", "", "output directory for documentation")
	genDocCmd.Flags().StringVar(&genDocFormat, "format", "markdown", "output format: markdown, man")
	rootCmd.AddCommand(genDocCmd)
}

// filePrepender adds front matter to each generated page.
func filePrepender(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	// daily_config_set -> daily config set
	title := strings.ReplaceAll(base, "_", " ")

	return fmt.Sprintf(`---
title: "%s"
description: "Reference for %s"
---
`, title, title)
}

func linkHandler(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return "/reference/" + strings.ToLower(base) + "/"
}
