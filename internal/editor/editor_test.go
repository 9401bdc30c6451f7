package editor

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"
)

func TestCommand(t *testing.T) {
	tests := []struct {
		name   string
		editor string
		visual string
		want   []string
	}{
		{name: "editor wins", editor: "nvim", visual: "code", want: []string{"nvim"}},
		{name: "visual fallback", editor: "", visual: "code", want: []string{"code"}},
		{name: "whitespace editor treated as unset", editor: "  ", visual: "hx", want: []string{"hx"}},
		{name: "arguments split", editor: "code --wait", want: []string{"code", "--wait"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("EDITOR", tt.editor)
			t.Setenv("VISUAL", tt.visual)

			if got := Command(); !slices.Equal(got, tt.want) {
				t.Errorf("Command() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommand_FallbackNano(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "")

	want := "vi"
	if _, err := exec.LookPath("nano"); err == nil {
		want = "nano"
	}

	if got := Command(); !slices.Equal(got, []string{want}) {
		t.Errorf("Command() = %q, want [%s]", got, want)
	}
}

func TestOpen_Integration(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script as the editor")
	}

	tmpDir := t.TempDir()
	mockEditor := filepath.Join(tmpDir, "mock-editor.sh")
	outputFile := filepath.Join(tmpDir, "output.txt")

	script := "#!/bin/sh\necho \"$@\" > " + outputFile + "\n"
	if err := os.WriteFile(mockEditor, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("EDITOR", mockEditor+" --flag")

	target := filepath.Join(tmpDir, "config.yaml")
	var status bytes.Buffer
	if err := Open(t.Context(), &status, target); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	got, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(got)) != "--flag "+target {
		t.Errorf("editor args = %q", got)
	}
	if !strings.Contains(status.String(), target) {
		t.Errorf("status = %q, want location", status.String())
	}
}

func TestOpen_MissingEditor(t *testing.T) {
	t.Setenv("EDITOR", "non-existent-binary-12345")

	if err := Open(t.Context(), nil, "test.txt"); err == nil {
		t.Error("expected error for non-existent editor")
	}
}
