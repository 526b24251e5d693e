package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/jimdowning-cyclops/nuget-release-go/internal/assemblyinfo"
	"github.com/jimdowning-cyclops/nuget-release-go/internal/commit"
	"github.com/jimdowning-cyclops/nuget-release-go/internal/config"
	"github.com/jimdowning-cyclops/nuget-release-go/internal/finder"
	"github.com/jimdowning-cyclops/nuget-release-go/internal/git"
	"github.com/jimdowning-cyclops/nuget-release-go/internal/nuspec"
	"github.com/jimdowning-cyclops/nuget-release-go/internal/prompt"
	"github.com/jimdowning-cyclops/nuget-release-go/internal/runner"
	"github.com/jimdowning-cyclops/nuget-release-go/internal/version"
)

// bumpChange is the JSON output for one updated manifest.
type bumpChange struct {
	Package       string   `json:"package"`
	Manifest      string   `json:"manifest"`
	Current       string   `json:"current"`
	Next          string   `json:"next"`
	Skipped       bool     `json:"skipped,omitempty"`
	AssemblyFiles []string `json:"assemblyFiles,omitempty"`
}

func bumpCmd() *cli.Command {
	return &cli.Command{
		Name:  "bump",
		Usage: "Increment package versions in nuspec manifests and AssemblyInfo files",
		Description: `Reads the current version from each package's nuspec manifest, applies
the selected increments, and writes the result back to the manifest and
any configured AssemblyInfo files.

Without any increment flag the build component is incremented, forcing a
four-component version. With --auto the increment is derived from
conventional commits since the package's last release tag.`,
		Flags: []cli.Flag{
			packageFlag(),
			&cli.BoolFlag{Name: "major", Usage: "increment the major component"},
			&cli.BoolFlag{Name: "minor", Usage: "increment the minor component"},
			&cli.BoolFlag{Name: "revision", Usage: "increment the revision component"},
			&cli.BoolFlag{Name: "build", Usage: "increment the build component"},
			&cli.BoolFlag{Name: "force-four", Usage: "force four-component versions"},
			&cli.BoolFlag{Name: "auto", Usage: "derive the increment from commits since the last release tag"},
			&cli.BoolFlag{Name: "dry-run", Usage: "report what would change without writing"},
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "write without asking for confirmation"},
		},
		Action: runBump,
	}
}

func runBump(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	names, err := selectPackages(cfg, cmd)
	if err != nil {
		return err
	}

	directives := version.Directives{
		Major:     cmd.Bool("major"),
		Minor:     cmd.Bool("minor"),
		Revision:  cmd.Bool("revision"),
		Build:     cmd.Bool("build"),
		ForceFour: cmd.Bool("force-four"),
	}

	prompter := prompt.New(os.Stdin, os.Stderr)

	var results []bumpChange
	for _, pkgName := range names {
		pkg, _ := cfg.GetPackage(pkgName)

		d := directives
		if cmd.Bool("auto") {
			d, err = autoDirectives(ctx, pkgName)
			if err != nil {
				return err
			}
			slog.Info("derived increment from commits", "package", pkgName, "directives", fmt.Sprintf("%+v", d))
		}

		changes, err := bumpPackage(pkgName, pkg, d, prompter, cmd.Bool("dry-run"), cmd.Bool("yes"))
		if err != nil {
			return fmt.Errorf("failed to bump %s: %w", pkgName, err)
		}
		results = append(results, changes...)
	}

	return printJSON(results)
}

// bumpPackage updates every manifest of one package.
func bumpPackage(pkgName string, pkg config.PackageConfig, d version.Directives, prompter *prompt.Prompter, dryRun, yes bool) ([]bumpChange, error) {
	f, err := finder.New(pkg.Nuspec)
	if err != nil {
		return nil, err
	}
	manifests, err := f.Find(".")
	if err != nil {
		return nil, err
	}
	if len(manifests) == 0 {
		return nil, fmt.Errorf("no manifest matches globs %v", pkg.Nuspec)
	}

	var out []bumpChange
	for _, path := range manifests {
		m, err := nuspec.Load(path)
		if err != nil {
			return nil, err
		}

		currentText, ok := m.Version()
		if !ok {
			// No version element yet; ask for a starting point.
			currentText, err = prompter.Text(fmt.Sprintf("%s has no version element; initial version", path), "1.0.0")
			if err != nil {
				return nil, err
			}
		}

		current, err := version.Parse(currentText)
		if err != nil {
			return nil, err
		}
		next, err := version.Update(current, d)
		if err != nil {
			return nil, err
		}

		change := bumpChange{
			Package:  pkgName,
			Manifest: path,
			Current:  currentText,
			Next:     next.String(),
		}

		if dryRun {
			out = append(out, change)
			continue
		}

		if !yes {
			ok, err := prompter.Confirm(fmt.Sprintf("write %s to %s", next.String(), path), true)
			if err != nil {
				return nil, err
			}
			if !ok {
				change.Skipped = true
				out = append(out, change)
				continue
			}
		}

		if err := m.SetVersion(next.String()); err != nil {
			return nil, err
		}
		if err := m.Save(path); err != nil {
			return nil, err
		}

		files, err := updateAssemblyFiles(pkg, next.String())
		if err != nil {
			return nil, err
		}
		change.AssemblyFiles = files
		out = append(out, change)
	}

	return out, nil
}

// updateAssemblyFiles rewrites the version attributes in every configured
// AssemblyInfo file and returns the paths that actually changed.
func updateAssemblyFiles(pkg config.PackageConfig, next string) ([]string, error) {
	if len(pkg.AssemblyInfo) == 0 {
		return nil, nil
	}

	f, err := finder.New(pkg.AssemblyInfo)
	if err != nil {
		return nil, err
	}
	paths, err := f.Find(".")
	if err != nil {
		return nil, err
	}

	var updated []string
	for _, path := range paths {
		changes, err := assemblyinfo.UpdateFile(path, next)
		if err != nil {
			return nil, err
		}
		if len(changes) > 0 {
			updated = append(updated, path)
			slog.Debug("updated assembly attributes", "file", path, "count", len(changes))
		}
	}
	return updated, nil
}

// autoDirectives derives increment directives from the conventional
// commits since the package's last release tag.
func autoDirectives(ctx context.Context, pkgName string) (version.Directives, error) {
	r := &runner.Runner{}
	if !git.IsRepository(ctx, r) {
		return version.Directives{}, fmt.Errorf("--auto requires a git repository")
	}

	tag, _, err := git.FindLastVersionTag(ctx, r, pkgName+"-")
	if err != nil {
		return version.Directives{}, err
	}

	infos, err := git.CommitsSince(ctx, r, tag)
	if err != nil {
		return version.Directives{}, err
	}

	parsed := make([]commit.Commit, 0, len(infos))
	for _, ci := range infos {
		c := commit.Parse(ci.Subject, ci.Body)
		c.Hash = ci.Hash
		parsed = append(parsed, c)
	}

	return commit.Directives(parsed), nil
}
