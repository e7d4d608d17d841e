package export

import (
	"log/slog"
	"path/filepath"

	"git.home.luguber.info/inful/noteport/internal/logfields"
	"git.home.luguber.info/inful/noteport/internal/vault"
	"git.home.luguber.info/inful/noteport/internal/wikilink"
)

// CountReachable performs a read-only traversal with the exporter's
// reachability rules and returns how many files an export of docPath with
// the same budget would copy, together with the visited set. No copying
// happens; files are only read and stat'ed.
//
// For identical inputs the count equals the exporter's final registry size.
// That equivalence is a correctness property covered by tests, not a
// coincidence: any change to one traversal must be mirrored in the other.
func CountReachable(docPath string, depth Depth) (int, map[string]struct{}) {
	visited := make(map[string]struct{})
	n := countReachable(vault.NormalizePath(docPath), depth, visited)
	return n, visited
}

func countReachable(docPath string, depth Depth, visited map[string]struct{}) int {
	if depth.Negative() {
		return 0
	}
	if _, ok := visited[docPath]; ok {
		return 0
	}
	visited[docPath] = struct{}{}

	count := 1 // the document itself
	if depth.Exhausted() {
		return count
	}

	lines, err := readLines(docPath)
	if err != nil {
		slog.Warn("Cannot read document while counting", logfields.Path(docPath), logfields.Error(err))
		return count
	}

	searchRoot := filepath.Dir(docPath)
	for _, line := range lines {
		for _, l := range wikilink.Extract(line, wikilink.ModeDocument) {
			if l.SelfRef || l.Target == "" {
				continue
			}
			path, ok := vault.Resolve(l.Target, searchRoot)
			if !ok {
				continue
			}
			if _, seen := visited[path]; !seen {
				count += countReachable(path, depth.Next(), visited)
			}
		}
	}
	for _, line := range lines {
		for _, l := range wikilink.Extract(line, wikilink.ModeImage) {
			if l.SelfRef || l.Target == "" {
				continue
			}
			path, ok := vault.Resolve(l.Target, searchRoot)
			if !ok {
				continue
			}
			if _, seen := visited[path]; !seen {
				visited[path] = struct{}{}
				count++
			}
		}
	}
	return count
}
