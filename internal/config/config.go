// Package config loads the .nuget-release.yml project configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file looked up in the project root.
const DefaultFileName = ".nuget-release.yml"

// Default tool executables, overridable per project.
const (
	defaultNuget      = "nuget"
	defaultBuild      = "msbuild"
	defaultTestRunner = "nunit3-console"
	defaultLocale     = "en"
)

// Config represents the .nuget-release.yml configuration file.
type Config struct {
	Packages map[string]PackageConfig     `yaml:"packages"`
	Tools    ToolsConfig                  `yaml:"tools,omitempty"`
	Locale   string                       `yaml:"locale,omitempty"`
	Messages map[string]map[string]string `yaml:"messages,omitempty"`
}

// PackageConfig defines one package: where its manifests and version
// attributes live, and optionally which solution builds it.
type PackageConfig struct {
	Nuspec       []string `yaml:"nuspec"`
	AssemblyInfo []string `yaml:"assembly_info,omitempty"`
	Solution     string   `yaml:"solution,omitempty"`
}

// ToolsConfig holds paths to the external executables and the default
// package push source.
type ToolsConfig struct {
	Nuget      string `yaml:"nuget,omitempty"`
	Build      string `yaml:"build,omitempty"`
	TestRunner string `yaml:"test_runner,omitempty"`
	PushSource string `yaml:"push_source,omitempty"`
}

// Load reads and parses a config file from the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(string(data))
}

// LoadFromDir looks for the default config file in the given directory.
func LoadFromDir(dir string) (*Config, error) {
	return Load(filepath.Join(dir, DefaultFileName))
}

// Parse parses inline YAML config content and applies defaults.
func Parse(content string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(content), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults fills in tool and locale defaults.
func (c *Config) applyDefaults() {
	if c.Tools.Nuget == "" {
		c.Tools.Nuget = defaultNuget
	}
	if c.Tools.Build == "" {
		c.Tools.Build = defaultBuild
	}
	if c.Tools.TestRunner == "" {
		c.Tools.TestRunner = defaultTestRunner
	}
	if c.Locale == "" {
		c.Locale = defaultLocale
	}
}

// validate checks that the config is usable.
func (c *Config) validate() error {
	if len(c.Packages) == 0 {
		return fmt.Errorf("config must define at least one package")
	}
	for name, pkg := range c.Packages {
		if len(pkg.Nuspec) == 0 {
			return fmt.Errorf("package %q must define at least one nuspec glob", name)
		}
	}
	return nil
}

// PackageNames returns all package names sorted alphabetically.
func (c *Config) PackageNames() []string {
	names := make([]string, 0, len(c.Packages))
	for name := range c.Packages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPackage returns the configuration for a package.
// Returns false if the package doesn't exist.
func (c *Config) GetPackage(name string) (PackageConfig, bool) {
	pkg, ok := c.Packages[name]
	return pkg, ok
}

// MessagesForLocale returns the configured message patterns for a locale.
// When the locale has no table, the default locale's table is returned;
// a config without message tables yields an empty map.
func (c *Config) MessagesForLocale(locale string) map[string]string {
	if locale == "" {
		locale = c.Locale
	}
	if msgs, ok := c.Messages[locale]; ok {
		return msgs
	}
	if msgs, ok := c.Messages[defaultLocale]; ok {
		return msgs
	}
	return map[string]string{}
}
