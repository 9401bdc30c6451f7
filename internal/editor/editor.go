// Package editor launches the user's preferred text editor.
package editor

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/thoreinstein/daily/internal/errors"
)

// Command returns the editor command line to use: $EDITOR, then $VISUAL,
// then nano, then vi. Values such as "code --wait" are split into fields.
func Command() []string {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if fields := strings.Fields(os.Getenv(env)); len(fields) > 0 {
			return fields
		}
	}

	if _, err := exec.LookPath("nano"); err == nil {
		return []string{"nano"}
	}
	return []string{"vi"}
}

// Open runs the editor on path attached to the terminal and waits for it
// to exit. The location is printed to status first.
func Open(ctx context.Context, status io.Writer, path string) error {
	argv := append(Command(), path)

	if status != nil {
		_, _ = io.WriteString(status, "Location: "+path+"\n")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running editor %s", argv[0])
	}
	return nil
}
