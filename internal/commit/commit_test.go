package commit

import (
	"testing"

	"github.com/jimdowning-cyclops/nuget-release-go/internal/version"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		body    string
		want    Commit
	}{
		{
			name:    "simple feat",
			subject: "feat: add push command",
			want:    Commit{Type: "feat", Description: "add push command"},
		},
		{
			name:    "fix with scope",
			subject: "fix(client): handle missing manifest",
			want:    Commit{Type: "fix", Scope: "client", Description: "handle missing manifest"},
		},
		{
			name:    "breaking marker",
			subject: "feat(core)!: drop legacy feed support",
			want:    Commit{Type: "feat", Scope: "core", Description: "drop legacy feed support", Breaking: true},
		},
		{
			name:    "breaking change in body",
			subject: "fix: rework manifest layout",
			body:    "Some detail.\n\nBREAKING CHANGE: manifest sections reordered",
			want:    Commit{Type: "fix", Description: "rework manifest layout", Breaking: true},
		},
		{
			name:    "breaking-change hyphenated",
			subject: "feat: new config format",
			body:    "BREAKING-CHANGE: old keys removed",
			want:    Commit{Type: "feat", Description: "new config format", Breaking: true},
		},
		{
			name:    "not conventional",
			subject: "Updated stuff",
			want:    Commit{Description: "Updated stuff"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.subject, tt.body); got != tt.want {
				t.Errorf("Parse(%q, %q) = %+v, want %+v", tt.subject, tt.body, got, tt.want)
			}
		})
	}
}

func TestDirectives(t *testing.T) {
	tests := []struct {
		name    string
		commits []Commit
		want    version.Directives
	}{
		{
			name:    "no commits",
			commits: nil,
			want:    version.Directives{},
		},
		{
			name:    "only chores",
			commits: []Commit{{Type: "chore"}, {Type: "docs"}},
			want:    version.Directives{},
		},
		{
			name:    "fix bumps revision",
			commits: []Commit{{Type: "fix"}},
			want:    version.Directives{Revision: true},
		},
		{
			name:    "feat bumps minor",
			commits: []Commit{{Type: "fix"}, {Type: "feat"}},
			want:    version.Directives{Minor: true},
		},
		{
			name:    "feat not downgraded by later fix",
			commits: []Commit{{Type: "feat"}, {Type: "fix"}},
			want:    version.Directives{Minor: true},
		},
		{
			name:    "breaking feat bumps major",
			commits: []Commit{{Type: "feat", Breaking: true}, {Type: "feat"}},
			want:    version.Directives{Major: true},
		},
		{
			name:    "breaking chore is ignored",
			commits: []Commit{{Type: "chore", Breaking: true}, {Type: "fix"}},
			want:    version.Directives{Revision: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Directives(tt.commits); got != tt.want {
				t.Errorf("Directives() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
