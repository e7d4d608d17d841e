package render

import (
	"fmt"
	"html"
	"strings"
)

// htmlHead emits the document head: charset, title, highlight.js for code
// blocks, and the fixed page styles.
func htmlHead(title string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	b.WriteString("<meta http-equiv=\"Content-Type\" content=\"text/html; charset=UTF-8\"/>\n")
	if title != "" {
		fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	}
	b.WriteString("<link rel=\"stylesheet\" href=\"https://cdnjs.cloudflare.com/ajax/libs/highlight.js/11.3.1/styles/default.min.css\">\n")
	b.WriteString("<script src=\"https://cdnjs.cloudflare.com/ajax/libs/highlight.js/11.3.1/highlight.min.js\"></script>\n")
	b.WriteString("<script>hljs.initHighlightingOnLoad();</script>\n")
	b.WriteString("<style>\n")
	b.WriteString("\timg { max-width:900px; }\n")
	b.WriteString("\tpre { background: #B0B0B0; padding:1px 10px 0px 10px; border-radius: 5px; overflow-x:auto; }\n")
	b.WriteString("\tcode { font-family: monospace; font-size: inherit; color: #202020; }\n")
	b.WriteString("</style>\n")
	b.WriteString("</head>\n")
	return b.String()
}

// htmlBodyStart opens the body and the main content container. With a
// sidebar the content column is shifted right to leave room for the
// tree-view iframe.
func htmlBodyStart(hasSidebar bool) string {
	var b strings.Builder
	b.WriteString("<body style=\"background: #F0F0F0;\">\n")
	b.WriteString("<div style=\"margin: 0 auto; width:1380px; position: relative;\">\n")
	if hasSidebar {
		b.WriteString("<div style=\"width:1000px; padding:20px; margin:0px; text-align:left; background-color: #DCDCDC; border-radius: 5px; position:absolute; top:0; left:340px;\">\n")
	} else {
		b.WriteString("<div style=\"width:1000px; padding:20px; margin:0 auto; text-align:left; background-color: #DCDCDC; border-radius: 5px;\">\n")
	}
	return b.String()
}

// htmlBodyEnd closes the containers and, when sidebarPath is set, embeds the
// externally generated tree-view artifact in an iframe.
func htmlBodyEnd(sidebarPath string) string {
	var b strings.Builder
	b.WriteString("</div>\n")
	if sidebarPath != "" {
		b.WriteString("<div style=\"width:345px; padding-top: 20px; position:absolute; top:0; left:0; overflow:auto;\">\n")
		fmt.Fprintf(&b, "\t<iframe src=\"%s\" width=\"340px\" frameBorder=\"0\" height=\"900px\"></iframe>\n", sidebarPath)
		b.WriteString("</div>\n")
	}
	b.WriteString("</div>\n</body>\n</html>\n")
	return b.String()
}
