package manifest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reproto/reproto/manifest"
)

func TestLoadDecodesFullManifest(t *testing.T) {
	src := []byte(`
package_prefix: acme
packages:
  - package: geo
    version: "^1.0.0"
files:
  - path: ./extra.reproto
    package: extra
modules:
  - chrono
id_converter: snake:lower_camel
output: ./target
`)

	m, err := manifest.Load(src)
	require.NoError(t, err)

	assert.Equal(t, "acme", m.PackagePrefix)
	require.Len(t, m.Packages, 1)
	assert.Equal(t, "geo", m.Packages[0].Package)
	require.Len(t, m.Files, 1)
	assert.Equal(t, "./extra.reproto", m.Files[0].Path)
	assert.Equal(t, []string{"chrono"}, m.Modules)
	assert.Equal(t, "./target", m.Output)
}

func TestPrefixParsesDottedPackage(t *testing.T) {
	m := manifest.Manifest{PackagePrefix: "acme.internal"}

	assert.Equal(t, "acme.internal", m.Prefix().String())
}

func TestPrefixEmptyWhenUnset(t *testing.T) {
	var m manifest.Manifest

	assert.Equal(t, "", m.Prefix().String())
}

func TestRequiredPackagesParsesRanges(t *testing.T) {
	m := manifest.Manifest{Packages: []manifest.RequiredEntry{
		{Package: "geo", Version: "^1.0.0"},
		{Package: "chrono"},
	}}

	reqs, err := m.RequiredPackages()
	require.NoError(t, err)
	require.Len(t, reqs, 2)

	assert.Equal(t, "geo", reqs[0].Package.String())
	assert.False(t, reqs[0].Range.IsZero())
	assert.True(t, reqs[1].Range.IsZero(), "an unversioned entry should be unconstrained")
}

func TestRequiredPackagesRejectsMalformedRange(t *testing.T) {
	m := manifest.Manifest{Packages: []manifest.RequiredEntry{{Package: "geo", Version: "not-a-range"}}}

	_, err := m.RequiredPackages()
	assert.Error(t, err)
}

func TestIdentConverterParsesSourceAndTarget(t *testing.T) {
	m := manifest.Manifest{IDConverter: "snake:upper_camel"}

	source, target, ok, err := m.IdentConverter()
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, manifest.SourceSnake, source)
	assert.Equal(t, manifest.UpperCamel, target)
	assert.Equal(t, "MaxWidth", manifest.ConvertIdent("max_width", source, target))
}

func TestIdentConverterUnsetReturnsNotOK(t *testing.T) {
	var m manifest.Manifest

	_, _, ok, err := m.IdentConverter()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIdentConverterRejectsMalformedShorthand(t *testing.T) {
	m := manifest.Manifest{IDConverter: "snake"}

	_, _, _, err := m.IdentConverter()
	assert.Error(t, err)
}
