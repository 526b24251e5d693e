package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/jimdowning-cyclops/nuget-release-go/internal/finder"
	"github.com/jimdowning-cyclops/nuget-release-go/internal/runner"
)

// packResult is the JSON output for one packed manifest.
type packResult struct {
	Package  string   `json:"package"`
	Manifest string   `json:"manifest"`
	ExitCode int      `json:"exitCode"`
	Messages []string `json:"messages,omitempty"`
}

func packCmd() *cli.Command {
	return &cli.Command{
		Name:  "pack",
		Usage: "Build packages from nuspec manifests with the packaging tool",
		Flags: []cli.Flag{
			packageFlag(),
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output directory for built packages"},
			&cli.StringFlag{Name: "locale", Usage: "locale for recognizing tool output (default: from config)"},
		},
		Action: runPack,
	}
}

func runPack(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	names, err := selectPackages(cfg, cmd)
	if err != nil {
		return err
	}
	table, err := messageTable(cfg, cmd.String("locale"))
	if err != nil {
		return err
	}

	r := &runner.Runner{}
	var results []packResult
	failed := 0

	for _, pkgName := range names {
		pkg, _ := cfg.GetPackage(pkgName)
		f, err := finder.New(pkg.Nuspec)
		if err != nil {
			return err
		}
		manifests, err := f.Find(".")
		if err != nil {
			return err
		}
		if len(manifests) == 0 {
			return fmt.Errorf("no manifest matches globs %v for package %s", pkg.Nuspec, pkgName)
		}

		for _, manifest := range manifests {
			args := []string{"pack", manifest}
			if out := cmd.String("output"); out != "" {
				args = append(args, "-OutputDirectory", out)
			}

			res, err := r.Run(ctx, cfg.Tools.Nuget, args...)
			if err != nil {
				return fmt.Errorf("failed to pack %s: %w", manifest, err)
			}

			result := packResult{
				Package:  pkgName,
				Manifest: manifest,
				ExitCode: res.ExitCode,
				Messages: kindsToStrings(table.Classify(res.Stdout + res.Stderr)),
			}
			results = append(results, result)

			if !res.Ok() {
				failed++
				slog.Error("pack failed", "manifest", manifest, "exitCode", res.ExitCode, "stderr", res.Stderr)
			}
		}
	}

	if err := printJSON(results); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d pack invocation(s) failed", failed)
	}
	return nil
}

// kindsToStrings converts classified message kinds for JSON output.
func kindsToStrings(kinds []runner.MessageKind) []string {
	if len(kinds) == 0 {
		return nil
	}
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}
