package export

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/noteport/internal/logfields"
	"git.home.luguber.info/inful/noteport/internal/vault"
	"git.home.luguber.info/inful/noteport/internal/wikilink"
)

// linkRewriter adapts one document's link context to the renderer. It reuses
// the exporter's resolution and copying, so anything the render pass
// discovers that the walk already copied is found in the registry and
// short-circuited.
type linkRewriter struct {
	exporter *Exporter
	docPath  string
	depth    Depth
}

// RewriteDocumentLinks replaces every [[...]] span with an anchor tag
// pointing at the flattened .html sibling. Unresolved targets still get an
// optimistic link to the literal target name.
func (r *linkRewriter) RewriteDocumentLinks(line string) string {
	if r.depth.Exhausted() {
		return line
	}
	for _, l := range wikilink.Extract(line, wikilink.ModeDocument) {
		name := r.resolveDocument(l)
		display := l.Alias
		if display == "" {
			display = strings.TrimSuffix(name, wikilink.DocSuffix) + l.Fragment()
		}
		anchor := fmt.Sprintf(`<a href="./%s.html%s">%s</a>`, name, l.Fragment(), display)
		line = strings.Replace(line, l.Raw, anchor, 1)
	}
	return line
}

// resolveDocument returns the base name the rewritten link should point at,
// copying and traversing newly discovered documents along the way.
func (r *linkRewriter) resolveDocument(l wikilink.Link) string {
	if l.SelfRef {
		return filepath.Base(r.docPath)
	}
	path, ok := vault.Resolve(l.Target, filepath.Dir(r.docPath))
	if !ok {
		slog.Warn("Linked file not found", logfields.Target(l.Target), logfields.File(filepath.Base(r.docPath)))
		return l.Target
	}
	if !r.exporter.Registry.Has(path) {
		if err := r.exporter.copyToNotes(path); err != nil {
			slog.Warn("Failed to copy linked file", logfields.Path(path), logfields.Error(err))
			return l.Target
		}
		r.exporter.Registry.Add(path)
		if r.depth.AllowsTraversal() {
			r.exporter.exportLinked(path, r.depth.Next())
		}
	}
	return filepath.Base(path)
}

// RewriteImageLinks replaces every ![[...]] span with an img tag. Image
// self-references have no natural target; they degrade to a literal src.
func (r *linkRewriter) RewriteImageLinks(line string) string {
	if r.depth.Exhausted() {
		return line
	}
	for _, l := range wikilink.Extract(line, wikilink.ModeImage) {
		name := r.resolveImage(l)
		img := fmt.Sprintf(`<img src="./%s" alt="%s">`, name, name)
		line = strings.Replace(line, l.Raw, img, 1)
	}
	return line
}

func (r *linkRewriter) resolveImage(l wikilink.Link) string {
	if l.SelfRef {
		return strings.TrimSuffix(filepath.Base(r.docPath), wikilink.DocSuffix)
	}
	path, ok := vault.Resolve(l.Target, filepath.Dir(r.docPath))
	if !ok {
		slog.Warn("Linked image not found", logfields.Target(l.Target), logfields.File(filepath.Base(r.docPath)))
		return l.Target
	}
	if !r.exporter.Registry.Has(path) {
		if err := r.exporter.copyToNotes(path); err != nil {
			slog.Warn("Failed to copy image", logfields.Path(path), logfields.Error(err))
			return l.Target
		}
		r.exporter.Registry.Add(path)
	}
	return filepath.Base(path)
}
