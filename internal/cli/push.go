package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/jimdowning-cyclops/nuget-release-go/internal/finder"
	"github.com/jimdowning-cyclops/nuget-release-go/internal/runner"
)

// pushResult is the JSON output for one pushed package file.
type pushResult struct {
	File          string   `json:"file"`
	ExitCode      int      `json:"exitCode"`
	AlreadyExists bool     `json:"alreadyExists,omitempty"`
	Messages      []string `json:"messages,omitempty"`
}

func pushCmd() *cli.Command {
	return &cli.Command{
		Name:  "push",
		Usage: "Publish built packages to a feed",
		Description: `Pushes every package file matching --glob to the configured feed.
A feed that already has the exact version is reported but not treated
as a failure, so re-running a release pipeline stays safe.`,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "glob", Usage: "glob for package files to push", Value: "**/*.nupkg"},
			&cli.StringFlag{Name: "source", Usage: "package feed URL (default: from config)"},
			&cli.StringFlag{Name: "api-key", Usage: "feed API key", Sources: cli.EnvVars("NUGET_API_KEY")},
			&cli.StringFlag{Name: "locale", Usage: "locale for recognizing tool output (default: from config)"},
		},
		Action: runPush,
	}
}

func runPush(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	table, err := messageTable(cfg, cmd.String("locale"))
	if err != nil {
		return err
	}

	source := cmd.String("source")
	if source == "" {
		source = cfg.Tools.PushSource
	}
	if source == "" {
		return fmt.Errorf("no push source: set tools.push_source in the config or pass --source")
	}

	f, err := finder.New([]string{cmd.String("glob")})
	if err != nil {
		return err
	}
	files, err := f.Find(".")
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no package file matches %q", cmd.String("glob"))
	}

	r := &runner.Runner{}
	var results []pushResult
	failed := 0

	for _, file := range files {
		args := []string{"push", file, "-Source", source}
		if key := cmd.String("api-key"); key != "" {
			args = append(args, "-ApiKey", key)
		}

		res, err := r.Run(ctx, cfg.Tools.Nuget, args...)
		if err != nil {
			return fmt.Errorf("failed to push %s: %w", file, err)
		}

		output := res.Stdout + res.Stderr
		result := pushResult{
			File:     file,
			ExitCode: res.ExitCode,
			Messages: kindsToStrings(table.Classify(output)),
		}

		if !res.Ok() {
			if table.Matches(runner.MessageAlreadyExists, output) {
				// The feed already has this exact version; not a failure.
				result.AlreadyExists = true
				slog.Warn("package already on feed", "file", file)
			} else {
				failed++
				slog.Error("push failed", "file", file, "exitCode", res.ExitCode, "stderr", res.Stderr)
			}
		}

		results = append(results, result)
	}

	if err := printJSON(results); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d push invocation(s) failed", failed)
	}
	return nil
}
