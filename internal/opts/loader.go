// Package opts loads the options file that describes the virtual machines
// to configure.
package opts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the options file looked up in the base directory when
// no override is given.
const DefaultFilename = "opts.yaml"

// EnvOverride names the environment variable that overrides DefaultFilename.
const EnvOverride = "VAGRANT_HELPERS_OPTS"

var (
	// ErrMissingOptionsFile is returned when the resolved options path does not exist.
	ErrMissingOptionsFile = errors.New("cannot find opts file")

	// ErrMalformedOptions is returned when the options file cannot be parsed.
	ErrMalformedOptions = errors.New("malformed opts file")
)

// Document is the parsed options file. It holds either a single unnamed
// instance under "vm" or named instances under "vms".
type Document struct {
	Path string
	Root *Map
}

// VM returns the single-instance block, if present.
func (d *Document) VM() (any, bool) {
	return d.Root.Get("vm")
}

// VMs returns the named-instance block, if present.
func (d *Document) VMs() (any, bool) {
	return d.Root.Get("vms")
}

// Resolve returns the options file path for baseDir. A non-empty override
// replaces DefaultFilename and is taken relative to baseDir unless it is
// absolute.
func Resolve(baseDir, override string) (string, error) {
	name := DefaultFilename
	if override != "" {
		expanded, err := homedir.Expand(override)
		if err != nil {
			return "", fmt.Errorf("failed to expand opts path %q: %w", override, err)
		}
		if filepath.IsAbs(expanded) {
			return expanded, nil
		}
		name = expanded
	}
	return filepath.Join(baseDir, name), nil
}

// Load resolves and parses the options file for baseDir.
func Load(baseDir, override string) (*Document, error) {
	path, err := Resolve(baseDir, override)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w `%s`", ErrMissingOptionsFile, path)
		}
		return nil, fmt.Errorf("failed to read opts file %s: %w", path, err)
	}

	root, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &Document{Path: path, Root: root}, nil
}

// Parse decodes options YAML. An empty document yields an empty mapping.
func Parse(data []byte) (*Map, error) {
	root := NewMap()
	if err := yaml.Unmarshal(data, root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOptions, err)
	}
	return root, nil
}
