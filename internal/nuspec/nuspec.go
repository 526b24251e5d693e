// Package nuspec loads, edits, and saves .nuspec package manifests.
// All element access goes through dotted paths so the manifest shape is
// declared in one place.
package nuspec

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/jimdowning-cyclops/nuget-release-go/internal/xmlpath"
)

var (
	idPath           = xmlpath.MustParsePath("package.metadata.id")
	versionPath      = xmlpath.MustParsePath("package.metadata.version")
	releaseNotesPath = xmlpath.MustParsePath("package.metadata.releaseNotes")
)

// Manifest is a parsed .nuspec document. The zero value is not usable;
// create one with Load or Parse.
type Manifest struct {
	doc *xmlquery.Node
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	return m, nil
}

// Parse parses manifest content from a reader.
func Parse(r io.Reader) (*Manifest, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, err
	}
	return &Manifest{doc: doc}, nil
}

// ParseString parses inline manifest content.
func ParseString(s string) (*Manifest, error) {
	return Parse(strings.NewReader(s))
}

// ID returns the package id, if present.
func (m *Manifest) ID() (string, bool) {
	return xmlpath.Get(m.doc, idPath, "")
}

// Version returns the package version, if present.
func (m *Manifest) Version() (string, bool) {
	return xmlpath.Get(m.doc, versionPath, "")
}

// SetVersion writes the package version, creating the element when the
// metadata section exists but the version element does not.
func (m *Manifest) SetVersion(v string) error {
	return xmlpath.Set(m.doc, versionPath, v, "")
}

// SetReleaseNotes writes the release notes element.
func (m *Manifest) SetReleaseNotes(notes string) error {
	return xmlpath.Set(m.doc, releaseNotesPath, notes, "")
}

// Get returns the text of an arbitrary dotted path within the manifest.
func (m *Manifest) Get(path xmlpath.Path) (string, bool) {
	return xmlpath.Get(m.doc, path, "")
}

// Set writes the text of an arbitrary dotted path within the manifest.
func (m *Manifest) Set(path xmlpath.Path, text string) error {
	return xmlpath.Set(m.doc, path, text, "")
}

// XML serializes the manifest back to XML.
func (m *Manifest) XML() string {
	return m.doc.OutputXML(false)
}

// Save writes the manifest to the given path, keeping the permissions of
// an existing file.
func (m *Manifest) Save(path string) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, []byte(m.XML()), mode); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
