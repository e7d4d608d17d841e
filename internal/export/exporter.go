// Package export implements the link-graph traversal that copies a root
// document and everything it transitively references into a flattened
// export directory, optionally rendering documents to HTML.
package export

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/noteport/internal/logfields"
	"git.home.luguber.info/inful/noteport/internal/render"
	"git.home.luguber.info/inful/noteport/internal/vault"
	"git.home.luguber.info/inful/noteport/internal/wikilink"
)

// NotesDir is the subdirectory of the export root holding all copied files.
// The layout is flat: duplicate base names from different source
// subdirectories collide and the last write wins. Accepted limitation.
const NotesDir = "notes"

// Exporter walks a document graph depth-first and copies every reachable
// file into OutputRoot/notes. One Exporter serves one export session; its
// registry is discarded afterwards.
type Exporter struct {
	// OutputRoot is the export directory. It is created on demand.
	OutputRoot string
	// Registry records every copied file, keyed by normalized source path.
	Registry *Registry
}

// New returns an Exporter writing into outputRoot.
func New(outputRoot string) *Exporter {
	return &Exporter{
		OutputRoot: outputRoot,
		Registry:   NewRegistry(),
	}
}

// Export processes docPath with the given traversal budget. Errors are fatal
// only for this document; linked documents that fail mid-traversal are
// logged and skipped by the recursion, never propagated. Callers invoke
// Export once on the root document, where any error aborts the export.
//
// When renderHTML is set, the document additionally gets a standalone
// .html sibling in notes/. Only the top-level document of an export is
// rendered; recursion always passes renderHTML=false.
func (e *Exporter) Export(docPath string, depth Depth, renderHTML bool) error {
	if depth.Negative() {
		return nil
	}

	norm := vault.NormalizePath(docPath)
	if err := e.copyToNotes(norm); err != nil {
		return fmt.Errorf("copy document: %w", err)
	}
	e.Registry.Add(norm)

	lines, err := readLines(norm)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	e.processLines(norm, lines, depth)

	if renderHTML {
		if err := e.renderDocument(norm, lines, depth); err != nil {
			return fmt.Errorf("render document: %w", err)
		}
	}
	return nil
}

// exportLinked recurses into a linked document, downgrading failures to
// warnings: a broken file reached mid-traversal must not sink the export.
func (e *Exporter) exportLinked(docPath string, depth Depth) {
	if err := e.Export(docPath, depth, false); err != nil {
		slog.Warn("Skipping linked document", logfields.Path(docPath), logfields.Error(err))
	}
}

// processLines runs link discovery over the document body: one pass for
// document links, one for image links. With an exhausted budget neither
// kind is processed; the document itself has already been copied.
func (e *Exporter) processLines(docPath string, lines []string, depth Depth) {
	if depth.Exhausted() {
		return
	}
	for _, line := range lines {
		for _, l := range wikilink.Extract(line, wikilink.ModeDocument) {
			e.processDocumentLink(l, docPath, depth)
		}
	}
	for _, line := range lines {
		for _, l := range wikilink.Extract(line, wikilink.ModeImage) {
			e.processImageLink(l, docPath)
		}
	}
}

// processDocumentLink resolves, copies and (budget permitting) traverses one
// document link. The registry check precedes the recursion, which is what
// makes cycles terminate: the second visit short-circuits here.
func (e *Exporter) processDocumentLink(l wikilink.Link, docPath string, depth Depth) {
	if l.SelfRef || l.Target == "" {
		return
	}
	path, ok := vault.Resolve(l.Target, filepath.Dir(docPath))
	if !ok {
		slog.Warn("Linked file not found", logfields.Target(l.Target), logfields.File(filepath.Base(docPath)))
		return
	}
	if e.Registry.Has(path) {
		return
	}
	if err := e.copyToNotes(path); err != nil {
		slog.Warn("Failed to copy linked file", logfields.Path(path), logfields.Error(err))
		return
	}
	e.Registry.Add(path)
	if depth.AllowsTraversal() {
		e.exportLinked(path, depth.Next())
	}
}

// processImageLink resolves and copies one asset link. Assets are leaves:
// they never consume budget and are never traversed.
func (e *Exporter) processImageLink(l wikilink.Link, docPath string) {
	if l.SelfRef || l.Target == "" {
		// An image self-reference has no meaningful resolution; tolerated,
		// never fatal.
		return
	}
	path, ok := vault.Resolve(l.Target, filepath.Dir(docPath))
	if !ok {
		slog.Warn("Linked image not found", logfields.Target(l.Target), logfields.File(filepath.Base(docPath)))
		return
	}
	if e.Registry.Has(path) {
		return
	}
	if err := e.copyToNotes(path); err != nil {
		slog.Warn("Failed to copy image", logfields.Path(path), logfields.Error(err))
		return
	}
	e.Registry.Add(path)
}

// renderDocument writes the HTML sibling of docPath into notes/. The render
// pass re-resolves links on its own because the rewritten anchors need the
// resolved base names; copies it would make are short-circuited by the
// registry, so running after processLines is idempotent.
func (e *Exporter) renderDocument(docPath string, lines []string, depth Depth) error {
	r := &render.Renderer{
		Title:       filepath.Base(docPath),
		Links:       &linkRewriter{exporter: e, docPath: docPath, depth: depth},
		SidebarPath: "../treeview.html",
	}
	out := r.Render(lines)

	dest := filepath.Join(e.OutputRoot, NotesDir, filepath.Base(docPath)+".html")
	if err := os.WriteFile(dest, []byte(out), 0o600); err != nil {
		return fmt.Errorf("write html: %w", err)
	}
	slog.Info("Rendered document", logfields.File(filepath.Base(dest)))
	return nil
}

// copyToNotes copies src into the flat notes directory, preserving the base
// name.
func (e *Exporter) copyToNotes(src string) error {
	notes := filepath.Join(e.OutputRoot, NotesDir)
	if err := os.MkdirAll(notes, 0o750); err != nil {
		return fmt.Errorf("create notes directory: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(filepath.Join(notes, filepath.Base(src)))
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// readLines loads a document as lines without trailing newlines.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines, nil
}
