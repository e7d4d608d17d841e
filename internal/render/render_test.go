package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func renderBody(t *testing.T, lines ...string) string {
	t.Helper()
	r := &Renderer{Title: "test.md"}
	return r.Render(lines)
}

func TestRender_CodeBlockState(t *testing.T) {
	out := renderBody(t,
		"```",
		"if x < 1 { [[not a link]] }",
		"```",
		"after",
	)
	require.Equal(t, 1, strings.Count(out, "<pre><code>"))
	require.Equal(t, 1, strings.Count(out, "</code></pre>"))
	// Markup-looking text inside the block is escaped verbatim.
	require.Contains(t, out, "if x &lt; 1 { [[not a link]] }")
	require.NotContains(t, out, "<a href")
}

func TestRender_FenceWithLanguageTag(t *testing.T) {
	out := renderBody(t, "```go", "fmt.Println(1)", "```")
	require.Equal(t, 1, strings.Count(out, "<pre><code>"))
	require.Equal(t, 1, strings.Count(out, "</code></pre>"))
}

func TestRender_CommentBlockSuppressed(t *testing.T) {
	out := renderBody(t,
		"before",
		"%% begin",
		"hidden line",
		"end %%",
		"after",
	)
	require.Contains(t, out, "before")
	require.Contains(t, out, "after")
	require.NotContains(t, out, "hidden line")
	require.NotContains(t, out, "%%")
}

func TestRender_CommentToggleIsLineGranular(t *testing.T) {
	// Both markers on one line toggle the state once: the comment stays
	// open until a marker appears on a later line.
	out := renderBody(t, "%% all on one line %%", "still hidden", "%%", "visible")
	require.NotContains(t, out, "all on one line")
	require.NotContains(t, out, "still hidden")
	require.Contains(t, out, "visible")
}

func TestRender_InlineCode(t *testing.T) {
	out := renderBody(t, "run `rm -rf <dir>` carefully")
	require.Contains(t, out, "<code>rm -rf &lt;dir&gt;</code>")
}

func TestRender_Headings(t *testing.T) {
	out := renderBody(t, "# Top", "### Third")
	require.Contains(t, out, "<h1>Top</h1>")
	require.Contains(t, out, "<h3>Third</h3>")
}

func TestRender_HeadingRequiresSpace(t *testing.T) {
	out := renderBody(t, "#nospace")
	require.NotContains(t, out, "<h1>")
}

func TestRender_Checkboxes(t *testing.T) {
	out := renderBody(t, "- [ ] todo", "- [x] done")
	require.Contains(t, out, `<input type="checkbox"> todo`)
	require.Contains(t, out, `<input type="checkbox" checked> done`)
}

func TestRender_Bold(t *testing.T) {
	out := renderBody(t, "some **bold** words")
	require.Contains(t, out, "some <strong>bold</strong> words")
}

func TestRender_ListItems(t *testing.T) {
	out := renderBody(t, "- first", "- second")
	require.Contains(t, out, "<li>first</li>")
	require.Contains(t, out, "<li>second</li>")
}

func TestRender_HorizontalRule(t *testing.T) {
	out := renderBody(t, "---")
	require.Contains(t, out, "<hr>")
}

func TestRender_BlankLineBecomesParagraph(t *testing.T) {
	out := renderBody(t, "a", "", "b")
	require.Contains(t, out, "\n<p>\n")
}

func TestRender_StandardLink(t *testing.T) {
	out := renderBody(t, "see [docs](https://example.com/docs)")
	require.Contains(t, out, `<a href="https://example.com/docs">docs</a>`)
	// The URL inside the emitted anchor must not be auto-linked again.
	require.Equal(t, 1, strings.Count(out, "<a href="))
}

func TestRender_BareURLAutolink(t *testing.T) {
	out := renderBody(t, "visit https://example.com/x now")
	require.Contains(t, out, `<a href="https://example.com/x">https://example.com/x</a>`)
}

func TestRender_SidebarFooter(t *testing.T) {
	r := &Renderer{Title: "x.md", SidebarPath: "../treeview.html"}
	out := r.Render([]string{"hello"})
	require.Contains(t, out, `<iframe src="../treeview.html"`)
}

func TestRender_NoSidebar(t *testing.T) {
	out := renderBody(t, "hello")
	require.NotContains(t, out, "<iframe")
}

// fakeRewriter marks lines so the pipeline position of link rewriting can be
// asserted without an exporter.
type fakeRewriter struct{}

func (fakeRewriter) RewriteDocumentLinks(line string) string {
	return strings.ReplaceAll(line, "[[x]]", `<a href="./x.md.html">x</a>`)
}

func (fakeRewriter) RewriteImageLinks(line string) string {
	return strings.ReplaceAll(line, "![[p.png]]", `<img src="./p.png" alt="p.png">`)
}

func TestRender_LinkRewriterInvoked(t *testing.T) {
	r := &Renderer{Title: "x.md", Links: fakeRewriter{}}
	out := r.Render([]string{"see [[x]] and ![[p.png]]"})
	require.Contains(t, out, `<a href="./x.md.html">x</a>`)
	require.Contains(t, out, `<img src="./p.png" alt="p.png">`)
}

func TestRender_LinksNotRewrittenInsideCodeBlock(t *testing.T) {
	r := &Renderer{Title: "x.md", Links: fakeRewriter{}}
	out := r.Render([]string{"```", "[[x]]", "```"})
	require.NotContains(t, out, "<a href")
}
