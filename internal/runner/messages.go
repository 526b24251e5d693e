package runner

import (
	"fmt"
	"regexp"
	"sort"
)

// MessageKind classifies a known line of tool output. Packaging and build
// tools localize their messages, so the recognizers for each kind come
// from configuration rather than being hard-coded.
type MessageKind string

const (
	// MessagePushed indicates a package was published successfully.
	MessagePushed MessageKind = "pushed"
	// MessageAlreadyExists indicates the feed already has this version.
	MessageAlreadyExists MessageKind = "already-exists"
	// MessagePackageCreated indicates a package file was produced.
	MessagePackageCreated MessageKind = "package-created"
	// MessageRestoreComplete indicates dependency restore finished.
	MessageRestoreComplete MessageKind = "restore-complete"
	// MessageTestFailure indicates the test runner reported failures.
	MessageTestFailure MessageKind = "test-failure"
)

// MessageTable maps message kinds to compiled recognizers for one locale.
// It is resolved once at startup and passed by value to whoever needs to
// interpret tool output.
type MessageTable map[MessageKind]*regexp.Regexp

// BuildMessageTable compiles a kind-to-pattern map loaded from
// configuration.
func BuildMessageTable(patterns map[string]string) (MessageTable, error) {
	table := make(MessageTable, len(patterns))
	for kind, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern for message %q: %w", kind, err)
		}
		table[MessageKind(kind)] = re
	}
	return table, nil
}

// Classify returns the kinds whose recognizer matches the output, sorted
// for deterministic results.
func (t MessageTable) Classify(output string) []MessageKind {
	var kinds []MessageKind
	for kind, re := range t {
		if re.MatchString(output) {
			kinds = append(kinds, kind)
		}
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Matches reports whether the output contains a message of the given kind.
// An unknown kind never matches.
func (t MessageTable) Matches(kind MessageKind, output string) bool {
	re, ok := t[kind]
	return ok && re.MatchString(output)
}
