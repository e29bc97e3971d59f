package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// devRoot is the namespace used under the system temp directory for sandboxed runs.
const devRoot = "jot-dev"

// IsDevRun reports whether the process was started by `go run` or `go test`.
// Both build their binaries in temporary directories.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}

	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(os.TempDir())) {
		return true
	}
	return strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe")
}

// ResolveDataDir returns the directory the store actually uses.
// With sandbox set, paths outside the system temp directory are re-rooted
// under <tmp>/jot-dev so development runs never touch real notes.
// Paths already inside the temp directory (e.g. t.TempDir()) are kept.
func ResolveDataDir(userPath string, sandbox bool) string {
	if userPath == "" {
		userPath = "."
	}
	if !sandbox {
		return userPath
	}

	clean := filepath.Clean(userPath)
	if rel, err := filepath.Rel(os.TempDir(), clean); err == nil && filepath.IsLocal(rel) {
		return clean
	}

	name := filepath.Base(clean)
	if name == "." || name == string(os.PathSeparator) || name == MarkerDir {
		name = "default"
	}
	return filepath.Join(os.TempDir(), devRoot, name)
}
