package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/jimdowning-cyclops/nuget-release-go/internal/runner"
)

// restoreResult is the JSON output for one restored solution.
type restoreResult struct {
	Package  string `json:"package,omitempty"`
	Solution string `json:"solution"`
	ExitCode int    `json:"exitCode"`
}

func restoreCmd() *cli.Command {
	return &cli.Command{
		Name:  "restore",
		Usage: "Restore package dependencies for each package's solution",
		Flags: []cli.Flag{
			packageFlag(),
			&cli.StringFlag{Name: "solution", Usage: "restore this solution instead of the configured ones"},
		},
		Action: runRestore,
	}
}

func runRestore(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	targets, err := resolveSolutions(cfg, cmd)
	if err != nil {
		return err
	}

	r := &runner.Runner{}
	var results []restoreResult
	failed := 0

	for _, target := range targets {
		res, err := r.Run(ctx, cfg.Tools.Nuget, "restore", target.Solution)
		if err != nil {
			return fmt.Errorf("failed to restore %s: %w", target.Solution, err)
		}

		results = append(results, restoreResult{
			Package:  target.Package,
			Solution: target.Solution,
			ExitCode: res.ExitCode,
		})
		if !res.Ok() {
			failed++
			slog.Error("restore failed", "solution", target.Solution, "exitCode", res.ExitCode, "stderr", res.Stderr)
		}
	}

	if err := printJSON(results); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d restore(s) failed", failed)
	}
	return nil
}
