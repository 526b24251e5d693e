package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/jimdowning-cyclops/nuget-release-go/internal/finder"
	"github.com/jimdowning-cyclops/nuget-release-go/internal/runner"
)

// testResult is the JSON output of a test runner invocation.
type testResult struct {
	Assemblies []string `json:"assemblies"`
	ExitCode   int      `json:"exitCode"`
	Messages   []string `json:"messages,omitempty"`
}

func testCmd() *cli.Command {
	return &cli.Command{
		Name:  "test",
		Usage: "Run the test runner against built test assemblies",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "glob",
				Usage: "glob for test assemblies (repeatable)",
				Value: []string{"**/bin/**/*.Tests.dll"},
			},
			&cli.StringFlag{Name: "locale", Usage: "locale for recognizing tool output (default: from config)"},
		},
		Action: runTest,
	}
}

func runTest(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	table, err := messageTable(cfg, cmd.String("locale"))
	if err != nil {
		return err
	}

	f, err := finder.New(cmd.StringSlice("glob"))
	if err != nil {
		return err
	}
	assemblies, err := f.Find(".")
	if err != nil {
		return err
	}
	if len(assemblies) == 0 {
		return fmt.Errorf("no test assembly matches %v", cmd.StringSlice("glob"))
	}

	r := &runner.Runner{}
	res, err := r.Run(ctx, cfg.Tools.TestRunner, assemblies...)
	if err != nil {
		return fmt.Errorf("failed to run tests: %w", err)
	}

	result := testResult{
		Assemblies: assemblies,
		ExitCode:   res.ExitCode,
		Messages:   kindsToStrings(table.Classify(res.Stdout + res.Stderr)),
	}
	if err := printJSON(result); err != nil {
		return err
	}

	if !res.Ok() {
		slog.Error("test runner reported failures", "exitCode", res.ExitCode)
		return fmt.Errorf("test run failed with exit code %d", res.ExitCode)
	}
	return nil
}
