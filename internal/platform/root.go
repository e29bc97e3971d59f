package platform

import (
	"errors"
	"os"
	"path/filepath"
)

// MarkerDir is the directory that marks a notebook root and holds its data.
const MarkerDir = ".jot"

// ErrNoRoot is returned by FindRoot when no notebook root exists above the start directory.
var ErrNoRoot = errors.New("notebook root not found")

// FindRoot walks upwards from startDir looking for a directory that
// contains a .jot folder and returns its absolute path.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if isDir(filepath.Join(dir, MarkerDir)) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", ErrNoRoot
}

// DefaultDataDir picks the data directory when none is configured:
// the .jot folder of the enclosing notebook root, or the user config directory.
func DefaultDataDir(cwd string) (string, error) {
	if root, err := FindRoot(cwd); err == nil {
		return filepath.Join(root, MarkerDir), nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "jot"), nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
