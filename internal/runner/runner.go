// Package runner invokes external build and packaging tools and captures
// their output.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
)

// Result holds the captured output of a finished tool invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Ok reports whether the tool exited successfully.
func (r Result) Ok() bool {
	return r.ExitCode == 0
}

// Runner executes external tools. The zero value runs tools in the current
// working directory with the inherited environment.
type Runner struct {
	// Dir is the working directory for invocations; empty means the
	// caller's current directory.
	Dir string

	// Env overrides the process environment when non-nil.
	Env []string
}

// Run executes a tool and waits for it to finish, honoring context
// cancellation. A non-zero exit is not an error: the caller inspects
// Result.ExitCode and the captured output. An error is only returned when
// the tool could not be started or was cancelled.
func (r *Runner) Run(ctx context.Context, tool string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, tool, args...)
	cmd.Dir = r.Dir
	if r.Env != nil {
		cmd.Env = r.Env
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Debug("running tool", "tool", tool, "args", args, "dir", r.Dir)

	err := cmd.Run()
	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		// A cancelled context also surfaces as an ExitError for the
		// killed process, so cancellation has to be checked first.
		if ctx.Err() != nil {
			return result, fmt.Errorf("%s cancelled: %w", tool, ctx.Err())
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			slog.Debug("tool exited", "tool", tool, "exitCode", result.ExitCode)
			return result, nil
		}
		return result, fmt.Errorf("failed to run %s: %w", tool, err)
	}

	slog.Debug("tool exited", "tool", tool, "exitCode", 0)
	return result, nil
}
