// Package vault locates files inside a notes directory tree by bare
// filename, the way the wiki dialect references them.
package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/text/unicode/norm"
)

// ErrRootNotFound marks a root document path that could not be resolved.
// It is the only resolution failure that aborts an export.
var ErrRootNotFound = errors.New("root document not found")

// NormalizePath returns the canonical absolute form of p. Registry keys and
// visited-set entries must always pass through here before comparison.
func NormalizePath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	return filepath.Clean(abs)
}

// ResolveRoot resolves the export's root document to an absolute path.
// Unlike Resolve, failure here is an error: exports never start from a
// missing root.
func ResolveRoot(path string) (string, error) {
	abs := NormalizePath(path)
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrRootNotFound, path)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrRootNotFound, path)
	}
	return abs, nil
}

// Resolve locates filename under searchRoot. The sibling position
// (searchRoot/filename) is checked first since links overwhelmingly point at
// files in the same directory; otherwise the whole subtree is scanned for a
// matching base name.
//
// When the same base name exists in several subdirectories the first match
// in directory-walk order wins. That order is filesystem-dependent, so
// resolution is deliberately "first found", not "best found".
//
// A false return is a normal outcome, not an error: callers log and move on.
func Resolve(filename, searchRoot string) (string, bool) {
	want := norm.NFC.String(filename)

	direct := filepath.Join(searchRoot, filename)
	if _, err := os.Stat(direct); err == nil {
		return NormalizePath(direct), true
	}

	var found string
	walkErr := filepath.WalkDir(searchRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subdirectory: skip rather than abort the scan.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		// NFC on both sides: macOS vaults store NFD names on disk.
		if norm.NFC.String(d.Name()) == want {
			found = NormalizePath(path)
			return fs.SkipAll
		}
		return nil
	})
	if walkErr != nil || found == "" {
		return "", false
	}
	return found, true
}
