// Package wikilink extracts the double-bracket link dialect used by the
// exporter: document links [[target]], [[target#anchor]], [[target|alias]]
// and asset links ![[target]].
//
// The dialect disallows nested brackets, so a flat left-to-right scan is
// sufficient. This is a deliberate limitation, not an oversight: a target
// containing ']' is never matched.
package wikilink

import "strings"

// DocSuffix is the extension appended to extension-free document targets.
const DocSuffix = ".md"

// Mode selects which of the two mutually exclusive link syntaxes to match.
type Mode int

const (
	// ModeDocument matches [[...]] not immediately preceded by '!'.
	ModeDocument Mode = iota
	// ModeImage matches ![[...]].
	ModeImage
)

// Link is one parsed double-bracket match.
type Link struct {
	// Target is the filename to resolve. Document targets always carry the
	// document suffix; image targets are kept verbatim. Empty together with
	// a non-empty Anchor denotes a self-reference.
	Target string
	// Alias is the display text override, if any. It plays no role in file
	// resolution or traversal.
	Alias string
	// Anchor is the fragment identifier without the leading '#', normalized
	// for HTML use (spaces to underscores, parentheses stripped). Only the
	// renderer consumes it.
	Anchor string
	// SelfRef reports that the link points at the referencing document
	// itself ([[#section]] style).
	SelfRef bool
	// Raw is the full matched span including brackets (and the leading '!'
	// for images), so callers can substitute rendered output in place.
	Raw string
}

// Extract scans one line and returns every link of the requested mode, in
// order of appearance. It is a pure function of its input; malformed matches
// (empty target without an anchor) are silently dropped.
func Extract(line string, mode Mode) []Link {
	var links []Link
	for i := 0; i+1 < len(line); i++ {
		if line[i] != '[' || line[i+1] != '[' {
			continue
		}
		bang := i > 0 && line[i-1] == '!'
		if bang != (mode == ModeImage) {
			continue
		}
		end := strings.Index(line[i+2:], "]]")
		if end < 0 {
			break
		}
		inner := line[i+2 : i+2+end]
		if strings.ContainsRune(inner, ']') {
			// Nested or stray bracket: not part of the dialect.
			i = i + 2 + end + 1
			continue
		}
		raw := line[i : i+2+end+2]
		if bang {
			raw = line[i-1 : i+2+end+2]
		}
		if l, ok := parse(inner, raw, mode); ok {
			links = append(links, l)
		}
		i = i + 2 + end + 1
	}
	return links
}

// parse splits the bracket body on '#' first (anchor) and then '|' (alias).
func parse(inner, raw string, mode Mode) (Link, bool) {
	l := Link{Raw: raw}

	head := inner
	if idx := strings.Index(inner, "#"); idx >= 0 {
		head = inner[:idx]
		l.Anchor = normalizeAnchor(inner[idx+1:])
	}
	if idx := strings.Index(head, "|"); idx >= 0 {
		l.Alias = head[idx+1:]
		head = head[:idx]
	}

	if head == "" {
		if l.Anchor == "" {
			// No target and no anchor: malformed, skip silently.
			return Link{}, false
		}
		l.SelfRef = true
		return l, true
	}

	l.Target = head
	if mode == ModeDocument && !strings.HasSuffix(l.Target, DocSuffix) {
		l.Target += DocSuffix
	}
	return l, true
}

// normalizeAnchor makes a heading fragment usable in a URL: spaces become
// underscores and parentheses are dropped.
func normalizeAnchor(anchor string) string {
	anchor = strings.ReplaceAll(anchor, " ", "_")
	anchor = strings.ReplaceAll(anchor, "(", "")
	anchor = strings.ReplaceAll(anchor, ")", "")
	return anchor
}

// Fragment returns the anchor as a URL fragment ("#x") or "" when absent.
func (l Link) Fragment() string {
	if l.Anchor == "" {
		return ""
	}
	return "#" + l.Anchor
}
