package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const sampleConfig = `
packages:
  core:
    nuspec:
      - "pkg/Core/**/*.nuspec"
    assembly_info:
      - "src/Core/**/Properties/AssemblyInfo.cs"
    solution: "Core.sln"
  client:
    nuspec:
      - "pkg/Client/*.nuspec"
tools:
  nuget: "tools/nuget.exe"
  push_source: "https://feed.example.com/api/v2/package"
locale: de
messages:
  en:
    pushed: 'Your package was pushed\.'
  de:
    pushed: 'Ihr Paket wurde gepusht\.'
`

func TestParse(t *testing.T) {
	cfg, err := Parse(sampleConfig)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if got := cfg.PackageNames(); !reflect.DeepEqual(got, []string{"client", "core"}) {
		t.Errorf("PackageNames() = %v, want [client core]", got)
	}

	core, ok := cfg.GetPackage("core")
	if !ok {
		t.Fatal("package core not found")
	}
	if core.Solution != "Core.sln" {
		t.Errorf("Solution = %q, want Core.sln", core.Solution)
	}
	if len(core.Nuspec) != 1 || len(core.AssemblyInfo) != 1 {
		t.Errorf("unexpected globs: %+v", core)
	}

	if _, ok := cfg.GetPackage("absent"); ok {
		t.Error("GetPackage returned a package that doesn't exist")
	}
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse("packages:\n  core:\n    nuspec: [\"*.nuspec\"]\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Tools.Nuget != "nuget" {
		t.Errorf("Tools.Nuget = %q, want nuget", cfg.Tools.Nuget)
	}
	if cfg.Tools.Build != "msbuild" {
		t.Errorf("Tools.Build = %q, want msbuild", cfg.Tools.Build)
	}
	if cfg.Tools.TestRunner != "nunit3-console" {
		t.Errorf("Tools.TestRunner = %q, want nunit3-console", cfg.Tools.TestRunner)
	}
	if cfg.Locale != "en" {
		t.Errorf("Locale = %q, want en", cfg.Locale)
	}
}

func TestParse_ExplicitToolsKept(t *testing.T) {
	cfg, err := Parse(sampleConfig)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Tools.Nuget != "tools/nuget.exe" {
		t.Errorf("Tools.Nuget = %q, want tools/nuget.exe", cfg.Tools.Nuget)
	}
	if cfg.Tools.Build != "msbuild" {
		t.Errorf("Tools.Build = %q, want default msbuild", cfg.Tools.Build)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "empty", content: ""},
		{name: "no packages", content: "packages: {}\n"},
		{name: "package without nuspec", content: "packages:\n  core: {}\n"},
		{name: "bad yaml", content: "packages: [not a map"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.content); err == nil {
				t.Errorf("Parse(%q) succeeded, want error", tt.content)
			}
		})
	}
}

func TestMessagesForLocale(t *testing.T) {
	cfg, err := Parse(sampleConfig)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	de := cfg.MessagesForLocale("de")
	if de["pushed"] != `Ihr Paket wurde gepusht\.` {
		t.Errorf("de pushed = %q", de["pushed"])
	}

	// Empty locale falls back to the configured locale.
	if got := cfg.MessagesForLocale(""); got["pushed"] != `Ihr Paket wurde gepusht\.` {
		t.Errorf("default locale pushed = %q", got["pushed"])
	}

	// Unknown locale falls back to en.
	if got := cfg.MessagesForLocale("fr"); got["pushed"] != `Your package was pushed\.` {
		t.Errorf("fallback pushed = %q", got["pushed"])
	}
}

func TestMessagesForLocale_NoTables(t *testing.T) {
	cfg, err := Parse("packages:\n  core:\n    nuspec: [\"*.nuspec\"]\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := cfg.MessagesForLocale("en"); len(got) != 0 {
		t.Errorf("MessagesForLocale() = %v, want empty", got)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(dir)
	if err != nil {
		t.Fatalf("LoadFromDir() error = %v", err)
	}
	if len(cfg.Packages) != 2 {
		t.Errorf("got %d packages, want 2", len(cfg.Packages))
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := LoadFromDir(t.TempDir()); err == nil {
		t.Error("LoadFromDir() succeeded on empty dir, want error")
	}
}
