package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Wildcard is the component value meaning "assigned automatically by the
// build tool". It is only legal in the Revision and Build slots.
const Wildcard = "*"

// Component is a single slot of a version string: a non-negative integer,
// the wildcard marker, or the empty placeholder appended when a
// three-component version is forced into four-component shape.
type Component string

// IsWildcard reports whether the component is the wildcard marker.
// The empty placeholder is not a wildcard.
func (c Component) IsWildcard() bool {
	return c == Wildcard
}

// IsEmpty reports whether the component is the empty placeholder.
func (c Component) IsEmpty() bool {
	return c == ""
}

// Int returns the integer value of the component. The empty placeholder
// converts to 0; the wildcard marker and any non-numeric value fail.
func (c Component) Int() (int, error) {
	if c.IsEmpty() {
		return 0, nil
	}
	return strconv.Atoi(string(c))
}

// Slot identifies a version component by position.
type Slot int

const (
	SlotMajor Slot = iota
	SlotMinor
	SlotRevision
	SlotBuild
)

// String returns the slot name in lowercase.
func (s Slot) String() string {
	switch s {
	case SlotMajor:
		return "major"
	case SlotMinor:
		return "minor"
	case SlotRevision:
		return "revision"
	case SlotBuild:
		return "build"
	}
	return fmt.Sprintf("slot(%d)", int(s))
}

// MalformedComponentError reports a component that could not be treated as
// an integer when an increment required one.
type MalformedComponentError struct {
	Slot  Slot
	Value Component
	Err   error
}

// Error implements the error interface.
func (e *MalformedComponentError) Error() string {
	return fmt.Sprintf("malformed %s component %q: %v", e.Slot, e.Value, e.Err)
}

// Unwrap returns the underlying conversion error.
func (e *MalformedComponentError) Unwrap() error {
	return e.Err
}

// Version represents an assembly or package version with named component
// slots. Precision records how many components the original string carried
// (2, 3, or 4); String serializes exactly that many back.
type Version struct {
	Major     Component
	Minor     Component
	Revision  Component
	Build     Component
	Precision int
}

// Zero returns the zero version (0.0.0).
func Zero() Version {
	return Version{Major: "0", Minor: "0", Revision: "0", Precision: 3}
}

// Parse parses a dotted version string with 2 to 4 components.
// Component values are not validated as numbers here; a malformed value
// only surfaces when an increment needs its integer form. The wildcard
// marker is rejected up front in the Major and Minor slots, where it is
// never legal.
func Parse(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) < 2 || len(parts) > 4 {
		return Version{}, fmt.Errorf("invalid version format: %q (expected 2-4 dotted components)", s)
	}

	v := Version{Precision: len(parts)}
	v.Major = Component(parts[0])
	v.Minor = Component(parts[1])
	if len(parts) > 2 {
		v.Revision = Component(parts[2])
	}
	if len(parts) > 3 {
		v.Build = Component(parts[3])
	}

	if v.Major.IsWildcard() || v.Minor.IsWildcard() {
		return Version{}, fmt.Errorf("invalid version %q: wildcard is only legal in the revision and build slots", s)
	}

	return v, nil
}

// String returns the version as a dotted string with Precision components.
// A still-empty placeholder slot serializes as an empty string, so a padded
// version whose fourth slot was never touched ends with a trailing
// separator. That matches the historical behavior of the release scripts.
func (v Version) String() string {
	parts := []string{string(v.Major), string(v.Minor)}
	if v.Precision > 2 {
		parts = append(parts, string(v.Revision))
	}
	if v.Precision > 3 {
		parts = append(parts, string(v.Build))
	}
	return strings.Join(parts, ".")
}

// Directives selects which slots Update increments and whether the version
// is forced into four-component shape first.
type Directives struct {
	Major     bool
	Minor     bool
	Revision  bool
	Build     bool
	ForceFour bool
}

// none reports whether no directive is set at all.
func (d Directives) none() bool {
	return !d.Major && !d.Minor && !d.Revision && !d.Build && !d.ForceFour
}

// Update applies increment directives to a version and returns the result.
//
// When no directive is set at all, the default behavior is applied
// internally: increment Build only, forcing four components. Callers never
// need to pre-normalize their flags.
//
// Rules, in order:
//   - ForceFour pads a version with exactly 3 components to 4 by appending
//     an empty placeholder slot (not a wildcard and not "0").
//   - Major and Minor increments require a concrete integer value.
//   - Revision and Build increment when concrete. A wildcard value is
//     incremented anyway under ForceFour (treated as 0, producing "1");
//     a wildcard that is not incremented is normalized to "0" under
//     ForceFour. These wildcard checks match "*" only, never the empty
//     placeholder, so an untouched padded slot stays empty in the output.
//
// Slots beyond the version's precision are left alone.
func Update(v Version, d Directives) (Version, error) {
	if d.none() {
		d.Build = true
		d.ForceFour = true
	}

	out := v
	if d.ForceFour && out.Precision == 3 {
		out.Build = ""
		out.Precision = 4
	}

	if d.Major {
		c, err := increment(out.Major, SlotMajor)
		if err != nil {
			return Version{}, err
		}
		out.Major = c
	}
	if d.Minor {
		c, err := increment(out.Minor, SlotMinor)
		if err != nil {
			return Version{}, err
		}
		out.Minor = c
	}

	if out.Precision > 2 {
		c, err := updateAuto(out.Revision, SlotRevision, d.Revision, d.ForceFour)
		if err != nil {
			return Version{}, err
		}
		out.Revision = c
	}
	if out.Precision > 3 {
		c, err := updateAuto(out.Build, SlotBuild, d.Build, d.ForceFour)
		if err != nil {
			return Version{}, err
		}
		out.Build = c
	}

	return out, nil
}

// increment adds one to a concrete integer component.
func increment(c Component, slot Slot) (Component, error) {
	n, err := c.Int()
	if err != nil {
		return "", &MalformedComponentError{Slot: slot, Value: c, Err: err}
	}
	return Component(strconv.Itoa(n + 1)), nil
}

// updateAuto applies the shared Revision/Build rule set: increment concrete
// values, increment a wildcard under ForceFour (0 + 1), and normalize an
// untouched wildcard to "0" under ForceFour.
func updateAuto(c Component, slot Slot, inc, forceFour bool) (Component, error) {
	switch {
	case inc && !c.IsWildcard():
		return increment(c, slot)
	case inc && forceFour:
		// Wildcard treated as zero, then incremented.
		return Component("1"), nil
	case c.IsWildcard() && forceFour:
		return Component("0"), nil
	}
	return c, nil
}
