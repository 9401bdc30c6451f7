package workspace

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/thoreinstein/daily/internal/errors"
)

// march15 is the reference date used throughout the package tests.
var march15 = time.Date(2024, time.March, 15, 9, 30, 0, 0, time.Local)

// newHome creates a home directory containing an empty workspace root and
// returns the home and canonical root paths.
func newHome(t *testing.T) (home, root string) {
	t.Helper()
	home = t.TempDir()
	root = filepath.Join(home, "workspace", "daily")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatal(err)
	}

	// t.TempDir may itself sit behind a symlink (macOS /var -> /private/var).
	root, err := filepath.EvalSymlinks(root)
	if err != nil {
		t.Fatal(err)
	}
	return home, root
}

func homeFunc(home string) func() (string, error) {
	return func() (string, error) { return home, nil }
}

func canonical(t *testing.T, path string) string {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatal(err)
	}
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatal(err)
	}
	return resolved
}

func TestResolver_Path(t *testing.T) {
	home, root := newHome(t)
	r := NewResolver(DefaultLayout(), WithHome(homeFunc(home)), WithClock(FixedClock(march15)))

	tests := []struct {
		kind Kind
		want string
	}{
		{KindTemplate, filepath.Join(root, "template")},
		{KindYear, filepath.Join(root, "2024")},
		{KindDate, filepath.Join(root, "2024", "0315")},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			got, err := r.Path(tt.kind)
			if err != nil {
				t.Fatalf("Path(%v) error = %v", tt.kind, err)
			}
			if got != tt.want {
				t.Errorf("Path(%v) = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}

	if _, err := r.Path(Kind(42)); err == nil {
		t.Error("Path() expected error for an unknown kind")
	}
	if got := Kind(42).String(); got != "unknown" {
		t.Errorf("Kind(42).String() = %q, want unknown", got)
	}
}

func TestResolver_Paths(t *testing.T) {
	home, root := newHome(t)
	r := NewResolver(DefaultLayout(), WithHome(homeFunc(home)), WithClock(FixedClock(march15)))

	got, err := r.Paths()
	if err != nil {
		t.Fatalf("Paths() error = %v", err)
	}
	want := Paths{
		Template: filepath.Join(root, "template"),
		Year:     filepath.Join(root, "2024"),
		Date:     filepath.Join(root, "2024", "0315"),
	}
	if got != want {
		t.Errorf("Paths() = %+v, want %+v", got, want)
	}
}

func TestResolver_Layouts(t *testing.T) {
	jan2 := time.Date(2025, time.January, 2, 0, 0, 0, 0, time.Local)

	tests := []struct {
		name     string
		layout   Layout
		now      time.Time
		wantRoot string
		wantTmpl string
		wantDate string
	}{
		{
			name:     "zero padded",
			layout:   DefaultLayout(),
			now:      jan2,
			wantRoot: "workspace/daily",
			wantTmpl: "template",
			wantDate: "2025/0102",
		},
		{
			name:     "custom",
			layout:   Layout{Root: "~/notes", Template: "skeleton", YearFormat: "2006", DateFormat: "01-02"},
			now:      march15,
			wantRoot: "notes",
			wantTmpl: "skeleton",
			wantDate: "2024/03-15",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := t.TempDir()
			root := canonical(t, filepath.Join(home, filepath.FromSlash(tt.wantRoot)))
			r := NewResolver(tt.layout, WithHome(homeFunc(home)), WithClock(FixedClock(tt.now)))

			got, err := r.Paths()
			if err != nil {
				t.Fatalf("Paths() error = %v", err)
			}
			if want := filepath.Join(root, tt.wantTmpl); got.Template != want {
				t.Errorf("Template = %q, want %q", got.Template, want)
			}
			if want := filepath.Join(root, filepath.FromSlash(tt.wantDate)); got.Date != want {
				t.Errorf("Date = %q, want %q", got.Date, want)
			}
		})
	}
}

func TestResolver_AbsoluteRootIgnoresHome(t *testing.T) {
	root := canonical(t, t.TempDir())

	layout := DefaultLayout()
	layout.Root = root
	r := NewResolver(layout, WithHome(func() (string, error) {
		return "", errors.ErrHomeNotFound
	}))

	got, err := r.Root()
	if err != nil {
		t.Fatalf("Root() error = %v", err)
	}
	if got != root {
		t.Errorf("Root() = %q, want %q", got, root)
	}
}

func TestResolver_RootResolvesSymlinks(t *testing.T) {
	home := t.TempDir()
	target := canonical(t, filepath.Join(t.TempDir(), "target-daily"))
	if err := os.MkdirAll(filepath.Join(home, "workspace"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(target, filepath.Join(home, "workspace", "daily")); err != nil {
		t.Fatal(err)
	}

	got, err := NewResolver(DefaultLayout(), WithHome(homeFunc(home))).Root()
	if err != nil {
		t.Fatalf("Root() error = %v", err)
	}
	if got != target {
		t.Errorf("Root() = %q, want symlink target %q", got, target)
	}
}

func TestResolver_RootIsCached(t *testing.T) {
	home, root := newHome(t)
	calls := 0
	r := NewResolver(DefaultLayout(), WithHome(func() (string, error) {
		calls++
		return home, nil
	}))

	for range 3 {
		got, err := r.Root()
		if err != nil {
			t.Fatalf("Root() error = %v", err)
		}
		if got != root {
			t.Errorf("Root() = %q, want %q", got, root)
		}
	}
	if calls != 1 {
		t.Errorf("home provider called %d times, want 1", calls)
	}
}

func TestResolver_RootErrors(t *testing.T) {
	tests := []struct {
		name string
		home func() (string, error)
		want error
	}{
		{
			name: "home not found",
			home: func() (string, error) {
				return "", errors.Wrap(errors.ErrHomeNotFound, "$HOME is not defined")
			},
			want: errors.ErrHomeNotFound,
		},
		{
			name: "empty home",
			home: homeFunc(""),
			want: errors.ErrHomeNotFound,
		},
		{
			name: "missing root",
			home: homeFunc(t.TempDir()),
			want: errors.ErrCanonicalization,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewResolver(DefaultLayout(), WithHome(tt.home)).Path(KindTemplate)
			if !errors.Is(err, tt.want) {
				t.Errorf("Path() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestResolver_MissingRootCreatesNothing(t *testing.T) {
	home := t.TempDir()

	if _, err := NewResolver(DefaultLayout(), WithHome(homeFunc(home))).Root(); err == nil {
		t.Fatal("Root() expected error for a missing root")
	}
	if _, err := os.Stat(filepath.Join(home, "workspace")); !os.IsNotExist(err) {
		t.Errorf("workspace directory created without auto-create (stat err %v)", err)
	}
}

func TestResolver_AutoCreateRoot(t *testing.T) {
	home := t.TempDir()
	r := NewResolver(DefaultLayout(), WithHome(homeFunc(home)), WithAutoCreate(true))

	got, err := r.Root()
	if err != nil {
		t.Fatalf("Root() error = %v", err)
	}
	info, err := os.Stat(got)
	if err != nil || !info.IsDir() {
		t.Fatalf("root %s not created: %v", got, err)
	}
	if filepath.Base(got) != "daily" {
		t.Errorf("Root() = %q, want it to end in daily", got)
	}
}

func TestResolver_RootPath(t *testing.T) {
	home := t.TempDir()

	tests := []struct {
		name    string
		root    string
		want    string
		wantErr bool
	}{
		{"relative", "workspace/daily", filepath.Join(home, "workspace", "daily"), false},
		{"tilde", "~/journal", filepath.Join(home, "journal"), false},
		{"bare tilde", "~", home, false},
		{"absolute", "/srv/daily/", "/srv/daily", false},
		{"other user", "~bob/daily", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout := DefaultLayout()
			layout.Root = tt.root
			got, err := NewResolver(layout, WithHome(homeFunc(home))).RootPath()
			if (err != nil) != tt.wantErr {
				t.Fatalf("RootPath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("RootPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolver_NowIsLocal(t *testing.T) {
	utc := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	now := NewResolver(DefaultLayout(), WithClock(FixedClock(utc))).Now()

	if now.Location() != time.Local {
		t.Errorf("Now() location = %v, want Local", now.Location())
	}
	if !now.Equal(utc) {
		t.Errorf("Now() = %v, want %v", now, utc)
	}
}
