package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/viper"

	"github.com/thoreinstein/daily/internal/errors"
)

func TestInit(t *testing.T) {
	t.Setenv("DAILY_CONFIG_DIR", t.TempDir())
	Init()

	if viper.GetInt("version") != 1 {
		t.Errorf("expected version default 1, got %d", viper.GetInt("version"))
	}
	if got := viper.GetString("root"); got != DefaultRoot {
		t.Errorf("root default = %q, want %q", got, DefaultRoot)
	}
	if got := viper.GetString("template"); got != DefaultTemplate {
		t.Errorf("template default = %q, want %q", got, DefaultTemplate)
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Setenv("DAILY_CONFIG_DIR", t.TempDir())
	t.Chdir(t.TempDir())
	Init()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() with no config file should not error: %v", err)
	}
	if len(cfg.Exclude) != 0 {
		t.Errorf("Exclude = %v, want empty", cfg.Exclude)
	}
	cfg.Exclude = nil
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoad_WithConfigFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := []byte("root: ~/notes/daily\ntemplate: skeleton\ndate_format: \"01-02\"\nexclude:\n  - \"**/.DS_Store\"\n")
	if err := os.WriteFile(configPath, content, 0600); err != nil {
		t.Fatal(err)
	}

	Init()

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Root != "~/notes/daily" {
		t.Errorf("Root = %q, want %q", cfg.Root, "~/notes/daily")
	}
	if cfg.Template != "skeleton" {
		t.Errorf("Template = %q, want %q", cfg.Template, "skeleton")
	}
	if cfg.DateFormat != "01-02" {
		t.Errorf("DateFormat = %q, want %q", cfg.DateFormat, "01-02")
	}
	if cfg.YearFormat != DefaultYearFormat {
		t.Errorf("YearFormat = %q, want default %q", cfg.YearFormat, DefaultYearFormat)
	}
	if len(cfg.Exclude) != 1 || cfg.Exclude[0] != "**/.DS_Store" {
		t.Errorf("Exclude = %v, want [**/.DS_Store]", cfg.Exclude)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("DAILY_CONFIG_DIR", t.TempDir())
	t.Setenv("DAILY_TEMPLATE", "base")
	t.Setenv("DAILY_AUTO_CREATE_ROOT", "true")
	Init()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Template != "base" {
		t.Errorf("Template = %q, want %q", cfg.Template, "base")
	}
	if !cfg.AutoCreateRoot {
		t.Error("AutoCreateRoot = false, want true from DAILY_AUTO_CREATE_ROOT")
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	Init()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("Load() with non-existent explicit path should error")
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "invalid version",
			content: "version: 2\n",
			wantErr: "validating config: version: unsupported config version: 2",
		},
		{
			name:    "template with separator",
			content: "template: a/b\n",
			wantErr: "validating config: template: must be a single directory name: a/b",
		},
		{
			name:    "empty date format",
			content: "date_format: \"\"\n",
			wantErr: "validating config: date_format: value must not be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Init()

			configPath := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}

			_, err := Load(configPath)
			if err == nil {
				t.Fatal("Load() expected error, got nil")
			}
			if err.Error() != tt.wantErr {
				t.Errorf("Load() error = %q, want %q", err.Error(), tt.wantErr)
			}
			if !errors.Is(err, errors.ErrInvalidConfig) {
				t.Errorf("Load() error should match ErrInvalidConfig: %v", err)
			}
		})
	}
}

func TestInit_ClearsPreviousState(t *testing.T) {
	fileA := filepath.Join(t.TempDir(), "config_a.yaml")
	if err := os.WriteFile(fileA, []byte("template: from-a\n"), 0600); err != nil {
		t.Fatal(err)
	}

	Init()
	if _, err := Load(fileA); err != nil {
		t.Fatalf("first Load failed: %v", err)
	}

	dirB := t.TempDir()
	t.Setenv("DAILY_CONFIG_DIR", dirB)
	if err := os.WriteFile(filepath.Join(dirB, "config.yaml"), []byte("template: from-b\n"), 0600); err != nil {
		t.Fatal(err)
	}

	Init()
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if cfg.Template != "from-b" {
		t.Errorf("Template = %q, want config from DAILY_CONFIG_DIR (from-b); used %s", cfg.Template, viper.ConfigFileUsed())
	}
}

func TestFileUsed_DefaultsToConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DAILY_CONFIG_DIR", dir)
	t.Chdir(t.TempDir())
	Init()
	if _, err := Load(""); err != nil {
		t.Fatal(err)
	}

	if got, want := FileUsed(), filepath.Join(dir, "config.yaml"); got != want {
		t.Errorf("FileUsed() = %q, want %q", got, want)
	}
}

func TestFileSettings_IgnoresEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("root: ~/days\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DAILY_ROOT", "/tmp/transient")
	t.Setenv("DAILY_TEMPLATE", "from-env")

	v, err := FileSettings(path)
	if err != nil {
		t.Fatalf("FileSettings() error: %v", err)
	}
	cfg, err := Decode(v)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if cfg.Root != "~/days" {
		t.Errorf("Root = %q, want value from file", cfg.Root)
	}
	if cfg.Template != DefaultTemplate {
		t.Errorf("Template = %q, want default %q", cfg.Template, DefaultTemplate)
	}
}

func TestFileSettings_MissingFile(t *testing.T) {
	v, err := FileSettings(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("FileSettings() on a missing file error: %v", err)
	}
	cfg, err := Decode(v)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if cfg.Root != DefaultRoot || cfg.Version != 1 {
		t.Errorf("Decode() = %+v, want defaults", cfg)
	}
}

func TestDecode_Invalid(t *testing.T) {
	v, err := FileSettings(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	v.Set("template", "../escape")

	if _, err := Decode(v); !errors.Is(err, errors.ErrInvalidConfig) {
		t.Errorf("Decode() error = %v, want ErrInvalidConfig", err)
	}
}
