// Package manifest decodes the compiler's project manifest (spec.md §6):
// the package prefix, required packages, input files, selected back-end
// modules, identifier-rename convention, and output path a shell hands the
// core. Loading the manifest file from disk is the shell's job; this
// package only owns the decoded shape.
package manifest

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/reproto/reproto/ir"
)

// Manifest is the decoded project manifest, spec.md §6.
type Manifest struct {
	PackagePrefix string          `yaml:"package_prefix,omitempty"`
	Packages      []RequiredEntry `yaml:"packages,omitempty"`
	Files         []FileEntry     `yaml:"files,omitempty"`
	Modules       []string        `yaml:"modules,omitempty"`
	IDConverter   string          `yaml:"id_converter,omitempty"`
	Output        string          `yaml:"output"`
}

// RequiredEntry is one element of the manifest's packages list: a dotted
// package path with an optional SemVer range.
type RequiredEntry struct {
	Package string `yaml:"package"`
	Version string `yaml:"version,omitempty"`
}

// FileEntry is one element of the manifest's files list: a path on disk
// with an optional package/version override, used for ad hoc sources that
// don't come from a resolver.
type FileEntry struct {
	Path    string `yaml:"path"`
	Package string `yaml:"package,omitempty"`
	Version string `yaml:"version,omitempty"`
}

// Load decodes a manifest from YAML source. Reading the bytes from disk is
// left to the caller (the shell, out of scope here).
func Load(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}

	return &m, nil
}

// Prefix resolves PackagePrefix into an ir.Package, empty if unset.
func (m *Manifest) Prefix() ir.Package {
	if m.PackagePrefix == "" {
		return ir.Package{}
	}

	return ir.ParsePackage(m.PackagePrefix)
}

// RequiredPackages resolves every entry of Packages into an ir.RequiredPackage,
// failing on the first malformed version range.
func (m *Manifest) RequiredPackages() ([]ir.RequiredPackage, error) {
	out := make([]ir.RequiredPackage, 0, len(m.Packages))

	for _, entry := range m.Packages {
		r, err := ir.ParseRange(entry.Version)
		if err != nil {
			return nil, fmt.Errorf("package %q: %w", entry.Package, err)
		}

		out = append(out, ir.RequiredPackage{Package: ir.ParsePackage(entry.Package), Range: r})
	}

	return out, nil
}

// IdentConverter parses IDConverter's "{source}:{target}" shorthand (spec.md
// §6) into the SourceCase/Convention pair ConvertIdent expects. An empty
// IDConverter means "no renaming", reported via ok=false.
func (m *Manifest) IdentConverter() (source SourceCase, target Convention, ok bool, err error) {
	if strings.TrimSpace(m.IDConverter) == "" {
		return 0, 0, false, nil
	}

	parts := strings.SplitN(m.IDConverter, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false, fmt.Errorf("malformed id_converter %q: want \"source:target\"", m.IDConverter)
	}

	source, err = parseSourceStyle(parts[0])
	if err != nil {
		return 0, 0, false, fmt.Errorf("id_converter %q: %w", m.IDConverter, err)
	}

	target, err = parseTargetStyle(parts[1])
	if err != nil {
		return 0, 0, false, fmt.Errorf("id_converter %q: %w", m.IDConverter, err)
	}

	return source, target, true, nil
}

// parseSourceStyle accepts the source half of an id_converter style, which
// only distinguishes camel from snake (case doesn't matter on the source
// side: splitCamelWords/splitWords already normalize it).
func parseSourceStyle(s string) (SourceCase, error) {
	switch strings.ToLower(s) {
	case "camel", "lower_camel", "upper_camel":
		return SourceCamel, nil
	case "snake", "lower_snake", "upper_snake":
		return SourceSnake, nil
	default:
		return 0, fmt.Errorf("unknown naming style %q", s)
	}
}

func parseTargetStyle(s string) (Convention, error) {
	switch strings.ToLower(s) {
	case "lower_camel":
		return LowerCamel, nil
	case "upper_camel":
		return UpperCamel, nil
	case "lower_snake":
		return LowerSnake, nil
	case "upper_snake":
		return UpperSnake, nil
	default:
		return 0, fmt.Errorf("unknown naming style %q (want one of lower_camel, upper_camel, lower_snake, upper_snake)", s)
	}
}
