package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/jimdowning-cyclops/nuget-release-go/internal/config"
	"github.com/jimdowning-cyclops/nuget-release-go/internal/runner"
)

// buildResult is the JSON output for one built solution.
type buildResult struct {
	Package  string `json:"package,omitempty"`
	Solution string `json:"solution"`
	ExitCode int    `json:"exitCode"`
}

func buildCmd() *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "Run the build tool against each package's solution",
		Flags: []cli.Flag{
			packageFlag(),
			&cli.StringFlag{Name: "solution", Usage: "build this solution instead of the configured ones"},
			&cli.StringFlag{Name: "configuration", Usage: "build configuration", Value: "Release"},
		},
		Action: runBuild,
	}
}

func runBuild(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	targets, err := resolveSolutions(cfg, cmd)
	if err != nil {
		return err
	}

	r := &runner.Runner{}
	var results []buildResult
	failed := 0

	for _, target := range targets {
		args := []string{target.Solution, "/p:Configuration=" + cmd.String("configuration")}
		res, err := r.Run(ctx, cfg.Tools.Build, args...)
		if err != nil {
			return fmt.Errorf("failed to build %s: %w", target.Solution, err)
		}

		results = append(results, buildResult{
			Package:  target.Package,
			Solution: target.Solution,
			ExitCode: res.ExitCode,
		})
		if !res.Ok() {
			failed++
			slog.Error("build failed", "solution", target.Solution, "exitCode", res.ExitCode, "stderr", res.Stderr)
		}
	}

	if err := printJSON(results); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d build(s) failed", failed)
	}
	return nil
}

// solutionTarget pairs a solution file with the package it came from.
type solutionTarget struct {
	Package  string
	Solution string
}

// resolveSolutions returns the solutions to act on: the --solution
// override, or the distinct configured solutions of the selected packages.
// A solution shared by several packages is built once.
func resolveSolutions(cfg *config.Config, cmd *cli.Command) ([]solutionTarget, error) {
	if solution := cmd.String("solution"); solution != "" {
		return []solutionTarget{{Solution: solution}}, nil
	}

	names, err := selectPackages(cfg, cmd)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var targets []solutionTarget
	for _, name := range names {
		pkg, _ := cfg.GetPackage(name)
		if pkg.Solution == "" || seen[pkg.Solution] {
			continue
		}
		seen[pkg.Solution] = true
		targets = append(targets, solutionTarget{Package: name, Solution: pkg.Solution})
	}

	if len(targets) == 0 {
		return nil, fmt.Errorf("no solution configured for the selected packages; pass --solution")
	}
	return targets, nil
}
