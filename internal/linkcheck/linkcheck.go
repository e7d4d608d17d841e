// Package linkcheck verifies exported HTML pages: every internal href/src
// must point at a file that actually exists inside the export directory.
// External URLs are not fetched; flat-file exports only break internally.
package linkcheck

import (
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// Problem is one dangling internal reference.
type Problem struct {
	Page string // HTML file containing the reference, relative to the export root
	Ref  string // the raw href/src value
}

func (p Problem) String() string {
	return fmt.Sprintf("%s -> %s", p.Page, p.Ref)
}

// VerifyDir walks every .html file under exportRoot and reports internal
// references whose targets are missing. An empty slice means the export is
// internally consistent.
func VerifyDir(exportRoot string) ([]Problem, error) {
	var problems []Problem
	err := filepath.WalkDir(exportRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".html") {
			return nil
		}

		refs, err := extractRefs(path)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}

		rel, relErr := filepath.Rel(exportRoot, path)
		if relErr != nil {
			rel = path
		}
		base := filepath.Dir(path)
		for _, ref := range refs {
			target, ok := localTarget(ref)
			if !ok {
				continue
			}
			if _, statErr := os.Stat(filepath.Join(base, filepath.FromSlash(target))); statErr != nil {
				problems = append(problems, Problem{Page: rel, Ref: ref})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return problems, nil
}

// extractRefs parses one HTML file and collects href/src attribute values
// from anchor, img, script, link and iframe elements.
func extractRefs(path string) ([]string, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()
	return extractRefsFromReader(file)
}

func extractRefsFromReader(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var refs []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "a", "link":
				if v := attr(n, "href"); v != "" {
					refs = append(refs, v)
				}
			case "img", "script", "iframe":
				if v := attr(n, "src"); v != "" {
					refs = append(refs, v)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return refs, nil
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// localTarget strips the fragment and reports whether ref points inside the
// export (relative, non-scheme, non-fragment-only).
func localTarget(ref string) (string, bool) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", false
	}
	if u.Scheme != "" || u.Host != "" {
		return "", false
	}
	if u.Path == "" {
		// Fragment-only reference within the same page.
		return "", false
	}
	return u.Path, true
}
