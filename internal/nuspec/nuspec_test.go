package nuspec

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleManifest = `<?xml version="1.0"?>
<package xmlns="http://schemas.microsoft.com/packaging/2013/05/nuspec.xsd">
  <metadata>
    <id>Sample.Package</id>
    <version>1.2.3</version>
    <authors>dev-team</authors>
    <description>A sample package.</description>
  </metadata>
</package>`

func TestManifest_Accessors(t *testing.T) {
	m, err := ParseString(sampleManifest)
	require.NoError(t, err)

	id, ok := m.ID()
	assert.True(t, ok)
	assert.Equal(t, "Sample.Package", id)

	v, ok := m.Version()
	assert.True(t, ok)
	assert.Equal(t, "1.2.3", v)
}

func TestManifest_SetVersion(t *testing.T) {
	m, err := ParseString(sampleManifest)
	require.NoError(t, err)

	require.NoError(t, m.SetVersion("1.2.4"))

	v, ok := m.Version()
	assert.True(t, ok)
	assert.Equal(t, "1.2.4", v)
	assert.Contains(t, m.XML(), "<version>1.2.4</version>")
	assert.NotContains(t, m.XML(), "1.2.3")
}

func TestManifest_SetVersionCreatesElement(t *testing.T) {
	m, err := ParseString(`<?xml version="1.0"?><package><metadata><id>X</id></metadata></package>`)
	require.NoError(t, err)

	_, ok := m.Version()
	require.False(t, ok)

	require.NoError(t, m.SetVersion("0.1.0"))

	v, ok := m.Version()
	assert.True(t, ok)
	assert.Equal(t, "0.1.0", v)
}

func TestManifest_SetVersionMissingMetadata(t *testing.T) {
	m, err := ParseString(`<?xml version="1.0"?><package><files/></package>`)
	require.NoError(t, err)

	err = m.SetVersion("1.0.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "package.metadata")
}

func TestManifest_SetReleaseNotes(t *testing.T) {
	m, err := ParseString(sampleManifest)
	require.NoError(t, err)

	require.NoError(t, m.SetReleaseNotes("Fixed packaging of satellite assemblies."))
	assert.Contains(t, m.XML(), "Fixed packaging of satellite assemblies.")
}

func TestManifest_LoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.nuspec")
	require.NoError(t, os.WriteFile(path, []byte(sampleManifest), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, m.SetVersion("2.0.0"))
	require.NoError(t, m.Save(path))

	reloaded, err := Load(path)
	require.NoError(t, err)
	v, ok := reloaded.Version()
	assert.True(t, ok)
	assert.Equal(t, "2.0.0", v)

	// Untouched content survives the round trip.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "<authors>dev-team</authors>"))
}

func TestManifest_SaveKeepsPermissions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.nuspec")
	require.NoError(t, os.WriteFile(path, []byte(sampleManifest), 0o600))

	m, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, m.SetVersion("2.0.0"))
	require.NoError(t, m.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.nuspec"))
	assert.Error(t, err)
}
