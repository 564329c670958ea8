// Package hostpath maps Windows-style host paths to the local filesystem so
// that existence checks work from WSL and similar environments.
package hostpath

import (
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// DefaultUtility converts "C:\Users\me" into "/mnt/c/Users/me" on WSL.
const DefaultUtility = "wslpath"

var drivePath = regexp.MustCompile(`^[A-Za-z]:\\`)

// IsDrivePath reports whether path looks like "X:\...".
func IsDrivePath(path string) bool {
	return drivePath.MatchString(path)
}

// Translator normalizes host paths.
type Translator struct {
	utility  string
	baseDir  string
	lookPath func(file string) (string, error)
	output   func(name string, args ...string) ([]byte, error)
}

// NewTranslator returns a Translator that shells out to utility. An empty
// utility disables translation. Relative paths are taken from baseDir.
func NewTranslator(utility, baseDir string) *Translator {
	return &Translator{
		utility:  utility,
		baseDir:  baseDir,
		lookPath: exec.LookPath,
		output: func(name string, args ...string) ([]byte, error) {
			return exec.Command(name, args...).Output()
		},
	}
}

// Normalize returns the local equivalent of path. Drive-letter paths are
// passed to the translation utility; if it is not installed or fails, the
// path is returned unchanged. A leading "~" is expanded.
func (t *Translator) Normalize(path string) string {
	if IsDrivePath(path) {
		return t.translate(path)
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}

func (t *Translator) translate(path string) string {
	if t.utility == "" {
		return path
	}

	bin, err := t.lookPath(t.utility)
	if err != nil {
		return path
	}

	out, err := t.output(bin, "-u", path)
	if err != nil {
		return path
	}

	translated := strings.TrimRight(string(out), " \t\r\n")
	if translated == "" {
		return path
	}
	return translated
}

// Resolve returns the normalized path, joined onto the base directory when
// it is still relative. Untranslated drive paths are returned as they are.
func (t *Translator) Resolve(path string) string {
	local := t.Normalize(path)
	if t.baseDir == "" || filepath.IsAbs(local) || IsDrivePath(local) {
		return local
	}
	return filepath.Join(t.baseDir, local)
}

// Exists reports whether a file exists at the resolved form of path.
func (t *Translator) Exists(path string) bool {
	_, err := os.Stat(t.Resolve(path))
	return err == nil
}
