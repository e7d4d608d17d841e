// Package render converts the wiki markup dialect to HTML one line at a
// time. There is no AST: each line passes through a fixed, ordered sequence
// of rewrites, with two booleans of cross-line state (inside a fenced code
// block, inside a %% comment block). Output is a best-effort string
// transduction, not schema-validated HTML.
package render

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// LinkRewriter resolves and rewrites the dialect's double-bracket links
// while a line is rendered. The renderer itself knows nothing about file
// resolution; the exporter supplies an implementation bound to the current
// document and traversal budget.
type LinkRewriter interface {
	RewriteDocumentLinks(line string) string
	RewriteImageLinks(line string) string
}

// Renderer renders exactly one document per call to Render.
type Renderer struct {
	// Title is placed in the page head.
	Title string
	// Links rewrites [[...]] and ![[...]] spans. Nil leaves them verbatim.
	Links LinkRewriter
	// SidebarPath, when non-empty, is the relative path of the tree-view
	// artifact referenced from the page footer. The renderer links to it
	// but never generates it.
	SidebarPath string
}

var (
	inlineCodeRe   = regexp.MustCompile("`([^`]+)`")
	standardLinkRe = regexp.MustCompile(`\[([^\]]*)\]\(([^)]*)\)`)
	bareURLRe      = regexp.MustCompile(`https?://[^\s"<>]+`)
	boldRe         = regexp.MustCompile(`\*\*([^*]*)\*\*`)
	headingRe      = regexp.MustCompile(`^(#+) (.*)$`)
)

// Render produces the full HTML page for the given document lines.
//
// Block state is two independent, non-nesting toggles driven by marker
// presence anywhere in the line; a second marker occurrence always closes.
func (r *Renderer) Render(lines []string) string {
	var b strings.Builder
	b.WriteString(htmlHead(r.Title))
	b.WriteString(htmlBodyStart(r.SidebarPath != ""))

	inCode := false
	inComment := false
	for _, line := range lines {
		if !inCode {
			line = convertInlineCode(line)
		}
		line, inCode = toggleCodeFence(line, inCode)

		switch {
		case inCode:
			// Fence-opening lines were already rewritten to the block tag;
			// everything else inside the block is escaped verbatim.
			if !strings.Contains(line, "<code") {
				line = html.EscapeString(line)
			}
		case inComment:
			_, inComment = toggleComment(line, inComment)
			continue // comment content and delimiters emit nothing
		default:
			line, inComment = toggleComment(line, inComment)
			if inComment {
				continue
			}
			line = r.renderProse(line)
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(htmlBodyEnd(r.SidebarPath))
	return b.String()
}

// renderProse applies the inline rewrites in their fixed order. The order
// matters: later rules see the output of earlier ones and must leave
// already-emitted tags alone.
func (r *Renderer) renderProse(line string) string {
	line = convertHorizontalRule(line)
	if r.Links != nil {
		line = r.Links.RewriteDocumentLinks(line)
		line = r.Links.RewriteImageLinks(line)
	}
	line = convertInlineCode(line)
	line = convertStandardLinks(line)
	line = convertBareURLs(line)
	line = convertCheckboxes(line)
	line = convertBold(line)
	line = convertHeadings(line)
	line = convertListItems(line)
	line = insertParagraph(line)
	return line
}

// convertInlineCode rewrites `code` spans to escaped code elements. The span
// must be non-empty so that a bare fence marker (```) is never consumed as
// two empty spans before the fence toggle sees it.
func convertInlineCode(line string) string {
	if strings.Contains(line, "```") {
		return line
	}
	return inlineCodeRe.ReplaceAllStringFunc(line, func(m string) string {
		return "<code>" + html.EscapeString(m[1:len(m)-1]) + "</code>"
	})
}

// toggleCodeFence rewrites a triple-backtick marker in place to the block
// open/close tag and flips the state. Never nests: inside a block any fence
// marker closes it.
func toggleCodeFence(line string, inCode bool) (string, bool) {
	if !strings.Contains(line, "```") {
		return line, inCode
	}
	if inCode {
		return strings.Replace(line, "```", "</code></pre>", 1), false
	}
	return strings.Replace(line, "```", "<pre><code>", 1), true
}

// toggleComment flips the comment state when a %% marker is present.
func toggleComment(line string, inComment bool) (string, bool) {
	if !strings.Contains(line, "%%") {
		return line, inComment
	}
	return line, !inComment
}

func convertHorizontalRule(line string) string {
	if strings.HasPrefix(line, "---") {
		return "<hr>"
	}
	return line
}

// convertStandardLinks rewrites [text](url) spans.
func convertStandardLinks(line string) string {
	return standardLinkRe.ReplaceAllString(line, `<a href="$2">$1</a>`)
}

// convertBareURLs auto-links plain URLs, skipping any stretch of the line
// that is already inside an emitted anchor element so that hrefs produced by
// earlier rules are not rewrapped.
func convertBareURLs(line string) string {
	var b strings.Builder
	for len(line) > 0 {
		open := strings.Index(line, "<a ")
		if open < 0 {
			b.WriteString(autolink(line))
			break
		}
		b.WriteString(autolink(line[:open]))
		end := strings.Index(line[open:], "</a>")
		if end < 0 {
			b.WriteString(line[open:])
			break
		}
		b.WriteString(line[open : open+end+len("</a>")])
		line = line[open+end+len("</a>"):]
	}
	return b.String()
}

func autolink(s string) string {
	return bareURLRe.ReplaceAllString(s, `<a href="$0">$0</a>`)
}

func convertCheckboxes(line string) string {
	line = strings.ReplaceAll(line, "- [ ]", `<input type="checkbox">`)
	line = strings.ReplaceAll(line, "- [x]", `<input type="checkbox" checked>`)
	return line
}

func convertBold(line string) string {
	return boldRe.ReplaceAllString(line, "<strong>$1</strong>")
}

// convertHeadings maps a leading run of # characters to the matching
// heading level.
func convertHeadings(line string) string {
	m := headingRe.FindStringSubmatch(line)
	if m == nil {
		return line
	}
	level := len(m[1])
	if level > 6 {
		level = 6
	}
	return fmt.Sprintf("<h%d>%s</h%d>", level, m[2], level)
}

func convertListItems(line string) string {
	if !strings.HasPrefix(line, "- ") {
		return line
	}
	return "<li>" + strings.TrimPrefix(line, "- ") + "</li>"
}

// insertParagraph turns a fully blank line into a paragraph marker.
func insertParagraph(line string) string {
	if strings.TrimSpace(line) == "" {
		return "<p>"
	}
	return line
}
