package xmlpath

import (
	"fmt"
	"strings"
)

// DefaultSeparator is the separator used by ParsePath.
const DefaultSeparator = "."

// Path is a parsed dotted element path such as "package.metadata.version".
// The last segment names the leaf element; everything before it is the
// ancestor chain.
type Path struct {
	segments []string
}

// ParsePath parses a path using the default separator.
func ParsePath(s string) (Path, error) {
	return ParsePathSep(s, DefaultSeparator)
}

// ParsePathSep parses a path split on the given separator. Paths must be
// non-empty and must not contain empty segments.
func ParsePathSep(s, sep string) (Path, error) {
	if s == "" {
		return Path{}, fmt.Errorf("empty element path")
	}
	segments := strings.Split(s, sep)
	for _, seg := range segments {
		if seg == "" {
			return Path{}, fmt.Errorf("invalid element path %q: empty segment", s)
		}
	}
	return Path{segments: segments}, nil
}

// MustParsePath is like ParsePath but panics on error. It is intended for
// package-level path constants, analogous to regexp.MustCompile.
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Len returns the number of segments.
func (p Path) Len() int {
	return len(p.segments)
}

// Leaf returns the last segment, or "" for the zero path.
func (p Path) Leaf() string {
	if len(p.segments) == 0 {
		return ""
	}
	return p.segments[len(p.segments)-1]
}

// Parent returns the path without its leaf segment. The parent of a
// single-segment path is the zero path.
func (p Path) Parent() Path {
	if len(p.segments) == 0 {
		return Path{}
	}
	return Path{segments: p.segments[:len(p.segments)-1]}
}

// String returns the path joined with the default separator.
func (p Path) String() string {
	return strings.Join(p.segments, DefaultSeparator)
}

// expr returns the path as an absolute XPath expression, with every segment
// prefixed when the document has a namespace.
func (p Path) expr(withNamespace bool) string {
	var b strings.Builder
	for _, seg := range p.segments {
		b.WriteByte('/')
		if withNamespace {
			b.WriteString(nsPrefix)
			b.WriteByte(':')
		}
		b.WriteString(seg)
	}
	return b.String()
}
