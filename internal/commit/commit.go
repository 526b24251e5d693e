// Package commit parses conventional commit messages and maps them to
// version increment directives for the auto-bump mode.
package commit

import (
	"regexp"
	"strings"

	"github.com/jimdowning-cyclops/nuget-release-go/internal/version"
)

// Commit represents a parsed conventional commit.
type Commit struct {
	Hash        string
	Type        string
	Scope       string
	Description string
	Breaking    bool
}

// conventionalCommitRegex matches conventional commit format:
// type(scope)!: description
// type(scope): description
// type!: description
// type: description
var conventionalCommitRegex = regexp.MustCompile(`^(\w+)(?:\(([^)]+)\))?(!)?\s*:\s*(.*)$`)

// Parse parses a conventional commit from subject and body.
// Returns a Commit with Breaking=true if:
// - Subject contains "!" before the colon (e.g., "feat(scope)!:")
// - Body contains "BREAKING CHANGE:" or "BREAKING-CHANGE:"
func Parse(subject, body string) Commit {
	c := Commit{}

	matches := conventionalCommitRegex.FindStringSubmatch(subject)
	if matches == nil {
		// Not a conventional commit, return empty with just the description
		c.Description = subject
		return c
	}

	c.Type = matches[1]
	c.Scope = matches[2]
	c.Breaking = matches[3] == "!"
	c.Description = matches[4]

	if !c.Breaking && containsBreakingChange(body) {
		c.Breaking = true
	}

	return c
}

// containsBreakingChange checks if the body contains a breaking change indicator.
func containsBreakingChange(body string) bool {
	bodyUpper := strings.ToUpper(body)
	return strings.Contains(bodyUpper, "BREAKING CHANGE:") ||
		strings.Contains(bodyUpper, "BREAKING-CHANGE:")
}

// Directives maps a set of commits to the highest increment they call for:
// a breaking feat/fix commit means a major bump, feat means minor, fix
// means revision. When no commit qualifies, the zero Directives value is
// returned and version.Update falls through to its default build bump.
func Directives(commits []Commit) version.Directives {
	var d version.Directives

	for _, c := range commits {
		if c.Breaking && (c.Type == "feat" || c.Type == "fix") {
			return version.Directives{Major: true}
		}

		switch c.Type {
		case "feat":
			d = version.Directives{Minor: true}
		case "fix":
			if !d.Minor {
				d = version.Directives{Revision: true}
			}
		}
	}

	return d
}
