// Package assemblyinfo rewrites version attributes in AssemblyInfo-style
// source files (C# and VB).
package assemblyinfo

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// attrRegex matches assembly version attributes such as
//
//	[assembly: AssemblyVersion("1.0.0.0")]
//	<Assembly: AssemblyFileVersion("1.0.*")>
//
// capturing everything around the quoted version value.
var attrRegex = regexp.MustCompile(`(Assembly(?:File|Informational)?Version(?:Attribute)?\s*\(\s*")([^"]*)("\s*\))`)

// Change records a single rewritten attribute value.
type Change struct {
	Attribute string
	Old       string
	New       string
}

// Versions returns the version values of all assembly version attributes
// found in the source, in order of appearance. Commented lines are skipped.
func Versions(src []byte) []string {
	var out []string
	for _, line := range strings.Split(string(src), "\n") {
		if isComment(line) {
			continue
		}
		for _, m := range attrRegex.FindAllStringSubmatch(line, -1) {
			out = append(out, m[2])
		}
	}
	return out
}

// Rewrite replaces the value of every assembly version attribute with the
// given version and returns the new source plus the list of changes.
// Commented lines are left untouched.
func Rewrite(src []byte, version string) ([]byte, []Change) {
	var changes []Change

	lines := strings.Split(string(src), "\n")
	for i, line := range lines {
		if isComment(line) {
			continue
		}
		lines[i] = attrRegex.ReplaceAllStringFunc(line, func(match string) string {
			m := attrRegex.FindStringSubmatch(match)
			changes = append(changes, Change{
				Attribute: attributeName(m[1]),
				Old:       m[2],
				New:       version,
			})
			return m[1] + version + m[3]
		})
	}

	return []byte(strings.Join(lines, "\n")), changes
}

// UpdateFile rewrites the version attributes of a file in place, keeping
// its permissions. A file without any version attribute is left untouched
// and reports no changes.
func UpdateFile(path, version string) ([]Change, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	out, changes := Rewrite(src, version)
	if len(changes) == 0 {
		return nil, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return changes, nil
}

// isComment reports whether the line is a C# or VB comment.
func isComment(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "'")
}

// attributeName strips the surrounding syntax from the matched attribute
// prefix, e.g. `AssemblyFileVersion("` becomes AssemblyFileVersion.
func attributeName(prefix string) string {
	name := prefix
	if i := strings.IndexAny(name, "( \t"); i >= 0 {
		name = name[:i]
	}
	return name
}
