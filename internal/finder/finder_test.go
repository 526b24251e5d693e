package finder

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// writeFiles creates empty files at the given relative paths under dir.
func writeFiles(t *testing.T, dir string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(dir, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		wantErr  bool
	}{
		{name: "valid patterns", patterns: []string{"**/*.nuspec", "src/**"}},
		{name: "no patterns", patterns: nil, wantErr: true},
		{name: "invalid pattern", patterns: []string{"[unterminated"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.patterns)
			if (err != nil) != tt.wantErr {
				t.Errorf("New(%v) error = %v, wantErr %v", tt.patterns, err, tt.wantErr)
			}
		})
	}
}

func TestFinder_Match(t *testing.T) {
	f, err := New([]string{"**/*.nuspec", "src/*/Properties/AssemblyInfo.cs"})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path string
		want bool
	}{
		{"pkg/Sample.nuspec", true},
		{"Sample.nuspec", false}, // "**/" requires at least one directory
		{"deep/nested/dir/Sample.nuspec", true},
		{"src/App/Properties/AssemblyInfo.cs", true},
		{"src/App/AssemblyInfo.cs", false},
		{"pkg/Sample.nuspec.bak", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := f.Match(tt.path); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestFinder_Find(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir,
		"pkg/Sample.nuspec",
		"pkg/Other.nuspec",
		"src/App/Properties/AssemblyInfo.cs",
		"src/App/Program.cs",
		"README.md",
	)

	f, err := New([]string{"**/*.nuspec"})
	if err != nil {
		t.Fatal(err)
	}

	got, err := f.Find(dir)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}

	want := []string{"pkg/Other.nuspec", "pkg/Sample.nuspec"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Find() = %v, want %v", got, want)
	}
}

func TestFinder_FindNoMatches(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "README.md")

	f, err := New([]string{"**/*.nuspec"})
	if err != nil {
		t.Fatal(err)
	}

	got, err := f.Find(dir)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Find() = %v, want none", got)
	}
}
