package opts

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/subosito/gotenv"
)

// LoadEnv loads KEY=value pairs from baseDir/name into the process
// environment. Variables that are already set keep their value. A missing
// file is not an error.
func LoadEnv(baseDir, name string) (bool, error) {
	if name == "" {
		return false, nil
	}

	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, name)
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat env file %s: %w", path, err)
	}

	if err := gotenv.Load(path); err != nil {
		return false, fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return true, nil
}
