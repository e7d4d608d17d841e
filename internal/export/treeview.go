package export

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/noteport/internal/wikilink"
)

// WriteTreeView renders the registry as a nested list in treeview.html at
// the export root, mirroring the source directory structure relative to
// vaultRoot. Documents link to their flattened .html siblings; other files
// are listed by name.
func WriteTreeView(reg *Registry, vaultRoot, outputRoot string) error {
	root := newTreeNode()
	for _, p := range reg.Paths() {
		rel, err := filepath.Rel(vaultRoot, p)
		if err != nil || strings.HasPrefix(rel, "..") {
			rel = filepath.Base(p)
		}
		root.insert(strings.Split(filepath.ToSlash(rel), "/"))
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	b.WriteString("<meta http-equiv=\"Content-Type\" content=\"text/html; charset=UTF-8\"/>\n")
	b.WriteString("<base target=\"_parent\">\n")
	b.WriteString("<style>\n")
	b.WriteString("ul{ padding-left: 5px; margin-left: 15px; list-style-type: \"- \"; }\n")
	b.WriteString(".folderClass {list-style-type: disc;}\n")
	b.WriteString("</style>\n</head>\n")
	b.WriteString("<body style=\"background: #F0F0F0;\">\n")
	root.write(&b)
	b.WriteString("</body>\n</html>\n")

	return os.WriteFile(filepath.Join(outputRoot, "treeview.html"), []byte(b.String()), 0o600)
}

// WriteIndex writes an index.html at the export root redirecting to the
// root document's rendered page.
func WriteIndex(outputRoot, rootDocBase string) error {
	content := fmt.Sprintf("<!DOCTYPE html>\n<html>\n\t<head>\n\t\t<meta http-equiv=\"Refresh\" content=\"0; url='./%s/%s.html'\" />\n\t</head>\n</html>\n",
		NotesDir, rootDocBase)
	return os.WriteFile(filepath.Join(outputRoot, "index.html"), []byte(content), 0o600)
}

type treeNode struct {
	children map[string]*treeNode
}

func newTreeNode() *treeNode {
	return &treeNode{children: make(map[string]*treeNode)}
}

func (n *treeNode) insert(parts []string) {
	if len(parts) == 0 {
		return
	}
	child, ok := n.children[parts[0]]
	if !ok {
		child = newTreeNode()
		n.children[parts[0]] = child
	}
	child.insert(parts[1:])
}

func (n *treeNode) write(b *strings.Builder) {
	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	sort.Strings(names)

	b.WriteString("<ul>\n")
	for _, name := range names {
		child := n.children[name]
		switch {
		case len(child.children) > 0:
			fmt.Fprintf(b, "<li class=\"folderClass\">%s</li>\n", html.EscapeString(name))
			child.write(b)
		case strings.HasSuffix(name, wikilink.DocSuffix):
			fmt.Fprintf(b, "<li><a href=\"./%s/%s.html\">%s</a></li>\n",
				NotesDir, html.EscapeString(name), html.EscapeString(strings.TrimSuffix(name, wikilink.DocSuffix)))
		default:
			fmt.Fprintf(b, "<li>%s</li>\n", html.EscapeString(name))
		}
	}
	b.WriteString("</ul>\n")
}
