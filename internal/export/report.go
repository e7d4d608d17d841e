package export

import (
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/noteport/internal/wikilink"
)

// imageExtensions classifies copied files for the post-export report.
var imageExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".svg": {}, ".webp": {}, ".bmp": {},
}

// Report is the export's consistency self-check: the pre-flight expected
// count against what was actually copied. The two differing is the only
// signal the tool has that traversal and reality disagree, so it is part of
// the contract, not cosmetics.
type Report struct {
	Expected  int
	Copied    int
	Documents int
	Images    int
	Other     int
}

// Matches reports whether the dry-run count and the registry agree.
func (r Report) Matches() bool { return r.Expected == r.Copied }

// BuildReport summarizes an export against the expected file count.
func BuildReport(reg *Registry, expected int) Report {
	rep := Report{Expected: expected, Copied: reg.Len()}
	for _, p := range reg.Paths() {
		ext := strings.ToLower(filepath.Ext(p))
		switch {
		case ext == wikilink.DocSuffix:
			rep.Documents++
		default:
			if _, ok := imageExtensions[ext]; ok {
				rep.Images++
			} else {
				rep.Other++
			}
		}
	}
	return rep
}
