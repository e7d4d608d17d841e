package commands

import (
	"fmt"
	"os"

	"git.home.luguber.info/inful/noteport/internal/markdown"
	"git.home.luguber.info/inful/noteport/internal/wikilink"
)

// LinksCmd implements the 'links' command: a per-document link audit covering
// both the wiki dialect and standard Markdown links.
type LinksCmd struct {
	File string `arg:"" help:"Document to analyze"`
}

func (l *LinksCmd) Run(_ *Global, root *CLI) error {
	cfg, err := LoadConfig(root)
	if err != nil {
		return err
	}

	rootPath, cleanup, err := ResolveVault(cfg, l.File)
	if err != nil {
		return err
	}
	defer cleanup()

	data, err := os.ReadFile(rootPath)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	printWikiLinks(data)
	return printMarkdownLinks(data)
}

func printWikiLinks(data []byte) {
	lines := splitLines(string(data))
	var docs, images []wikilink.Link
	for _, line := range lines {
		docs = append(docs, wikilink.Extract(line, wikilink.ModeDocument)...)
		images = append(images, wikilink.Extract(line, wikilink.ModeImage)...)
	}

	fmt.Printf("Wiki links: %d document(s), %d image(s)\n", len(docs), len(images))
	for _, d := range docs {
		if d.SelfRef {
			fmt.Printf("  doc   (self)%s\n", d.Fragment())
			continue
		}
		fmt.Printf("  doc   %s%s\n", d.Target, d.Fragment())
	}
	for _, i := range images {
		fmt.Printf("  image %s\n", i.Target)
	}
}

func printMarkdownLinks(data []byte) error {
	links, err := markdown.ExtractLinks(data)
	if err != nil {
		return fmt.Errorf("parse markdown: %w", err)
	}
	fmt.Printf("Markdown links: %d\n", len(links))
	for _, l := range links {
		fmt.Printf("  %-20s %s\n", l.Kind, l.Destination)
	}
	return nil
}

func splitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			line := text[start:i]
			if n := len(line); n > 0 && line[n-1] == '\r' {
				line = line[:n-1]
			}
			lines = append(lines, line)
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}
