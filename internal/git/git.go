// Package git reads release tags and commit history for the auto-bump
// mode. All git invocations go through the shared tool runner.
package git

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jimdowning-cyclops/nuget-release-go/internal/runner"
	"github.com/jimdowning-cyclops/nuget-release-go/internal/version"
)

// CommitInfo holds the raw commit data from git log.
type CommitInfo struct {
	Hash    string
	Subject string
	Body    string
}

// Unique separators that won't appear in commit messages.
const (
	commitSep = "---COMMIT-SEP---"
	fieldSep  = "---FIELD-SEP---"
)

// IsRepository checks if the runner's directory is inside a git repository.
func IsRepository(ctx context.Context, r *runner.Runner) bool {
	res, err := r.Run(ctx, "git", "rev-parse", "--git-dir")
	return err == nil && res.Ok()
}

// FindLastVersionTag finds the most recent tag matching {prefix}v{version},
// where version has 2 to 4 numeric components. Returns the tag name and
// parsed version; no matching tag yields an empty name and the zero
// version.
func FindLastVersionTag(ctx context.Context, r *runner.Runner, prefix string) (string, version.Version, error) {
	res, err := r.Run(ctx, "git", "tag", "-l", prefix+"v*")
	if err != nil {
		return "", version.Zero(), fmt.Errorf("failed to list tags: %w", err)
	}
	if !res.Ok() {
		return "", version.Zero(), fmt.Errorf("git tag failed: %s", strings.TrimSpace(res.Stderr))
	}

	tag, v := bestTag(strings.Split(strings.TrimSpace(res.Stdout), "\n"), prefix)
	return tag, v, nil
}

// bestTag picks the highest version among tags matching the prefix.
func bestTag(tags []string, prefix string) (string, version.Version) {
	tagRegex := regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `v(\d+(?:\.\d+){1,3})$`)

	bestName := ""
	best := version.Zero()
	for _, tag := range tags {
		matches := tagRegex.FindStringSubmatch(tag)
		if matches == nil {
			continue // Skip tags with suffixes like _internal
		}
		v, err := version.Parse(matches[1])
		if err != nil {
			continue
		}
		if bestName == "" || compare(v, best) > 0 {
			bestName = tag
			best = v
		}
	}

	if bestName == "" {
		return "", version.Zero()
	}
	return bestName, best
}

// compare orders two numeric versions slot by slot. Absent and empty slots
// count as zero. Only called on regex-validated tags, so conversion
// failures cannot happen.
func compare(a, b version.Version) int {
	as := [4]version.Component{a.Major, a.Minor, a.Revision, a.Build}
	bs := [4]version.Component{b.Major, b.Minor, b.Revision, b.Build}
	for i := 0; i < 4; i++ {
		ai, _ := as[i].Int()
		bi, _ := bs[i].Int()
		if ai != bi {
			return ai - bi
		}
	}
	return 0
}

// CommitsSince returns all commits since the given tag (or all commits if
// tag is empty), most recent first.
func CommitsSince(ctx context.Context, r *runner.Runner, tag string) ([]CommitInfo, error) {
	format := "%H" + fieldSep + "%s" + fieldSep + "%b" + commitSep

	args := []string{"log", "--format=" + format}
	if tag != "" {
		args = []string{"log", tag + "..HEAD", "--format=" + format}
	}

	res, err := r.Run(ctx, "git", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get git log: %w", err)
	}
	if !res.Ok() {
		return nil, fmt.Errorf("git log failed: %s", strings.TrimSpace(res.Stderr))
	}

	return parseCommits(res.Stdout), nil
}

// parseCommits parses the git log output with custom separators.
func parseCommits(output string) []CommitInfo {
	if output == "" {
		return nil
	}

	var commits []CommitInfo
	for _, raw := range strings.Split(output, commitSep) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		parts := strings.SplitN(raw, fieldSep, 3)
		if len(parts) < 2 {
			continue
		}

		c := CommitInfo{
			Hash:    strings.TrimSpace(parts[0]),
			Subject: strings.TrimSpace(parts[1]),
		}
		if len(parts) > 2 {
			c.Body = strings.TrimSpace(parts[2])
		}
		commits = append(commits, c)
	}

	return commits
}
