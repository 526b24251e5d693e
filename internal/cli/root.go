// Package cli wires the nuget-release subcommands.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/jimdowning-cyclops/nuget-release-go/internal/config"
	"github.com/jimdowning-cyclops/nuget-release-go/internal/logging"
	"github.com/jimdowning-cyclops/nuget-release-go/internal/runner"
)

const name = "nuget-release"

// overridden during build with ldflags
var buildVersion = "dev"

// Root builds the root command with all subcommands attached.
func Root() *cli.Command {
	return &cli.Command{
		Name:    name,
		Usage:   "Build and release automation for .NET packages",
		Version: buildVersion,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the config file",
				Value:   config.DefaultFileName,
				Sources: cli.EnvVars("NUGET_RELEASE_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.Setup(name, buildVersion, cmd.String("log-level"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			bumpCmd(),
			packCmd(),
			pushCmd(),
			buildCmd(),
			restoreCmd(),
			testCmd(),
		},
	}
}

// Execute runs the CLI. It is called by main.main().
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM so external tools get cancelled too.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\ninterrupted, shutting down")
		cancel()
	}()

	if err := Root().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads the config file named by the root --config flag.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// selectPackages resolves the --package flags against the config,
// defaulting to every configured package, sorted.
func selectPackages(cfg *config.Config, cmd *cli.Command) ([]string, error) {
	names := cmd.StringSlice("package")
	if len(names) == 0 {
		return cfg.PackageNames(), nil
	}
	for _, n := range names {
		if _, ok := cfg.GetPackage(n); !ok {
			return nil, fmt.Errorf("unknown package %q", n)
		}
	}
	return names, nil
}

// messageTable compiles the output recognizers for the configured locale.
func messageTable(cfg *config.Config, locale string) (runner.MessageTable, error) {
	return runner.BuildMessageTable(cfg.MessagesForLocale(locale))
}

// packageFlag is shared by every subcommand that iterates packages.
func packageFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:    "package",
		Aliases: []string{"p"},
		Usage:   "limit to a configured package (repeatable; default: all)",
	}
}

// printJSON writes a result to stdout for pipeline consumption.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	return enc.Encode(v)
}
