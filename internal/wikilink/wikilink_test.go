package wikilink

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtract_DocumentLink(t *testing.T) {
	links := Extract("see [[notes]] for details", ModeDocument)
	require.Len(t, links, 1)
	require.Equal(t, "notes.md", links[0].Target)
	require.Equal(t, "[[notes]]", links[0].Raw)
	require.Empty(t, links[0].Anchor)
	require.False(t, links[0].SelfRef)
}

func TestExtract_KeepsExistingSuffix(t *testing.T) {
	links := Extract("[[notes.md]]", ModeDocument)
	require.Len(t, links, 1)
	require.Equal(t, "notes.md", links[0].Target)
}

func TestExtract_AnchorAndAlias(t *testing.T) {
	cases := []struct {
		name   string
		line   string
		target string
		alias  string
		anchor string
	}{
		{"anchor", "[[notes#My Heading]]", "notes.md", "", "My_Heading"},
		{"anchor parens", "[[notes#setup (linux)]]", "notes.md", "", "setup_linux"},
		{"alias", "[[notes|the notes]]", "notes.md", "the notes", ""},
		{"alias and anchor", "[[notes|the notes#top]]", "notes.md", "the notes", "top"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			links := Extract(tc.line, ModeDocument)
			require.Len(t, links, 1)
			require.Equal(t, tc.target, links[0].Target)
			require.Equal(t, tc.alias, links[0].Alias)
			require.Equal(t, tc.anchor, links[0].Anchor)
		})
	}
}

func TestExtract_SelfReference(t *testing.T) {
	links := Extract("jump to [[#section one]]", ModeDocument)
	require.Len(t, links, 1)
	require.True(t, links[0].SelfRef)
	require.Empty(t, links[0].Target)
	require.Equal(t, "section_one", links[0].Anchor)
	require.Equal(t, "#section_one", links[0].Fragment())
}

func TestExtract_MalformedEmptyLink(t *testing.T) {
	require.Empty(t, Extract("oops [[]] here", ModeDocument))
	require.Empty(t, Extract("oops ![[]] here", ModeImage))
}

func TestExtract_ModesAreMutuallyExclusive(t *testing.T) {
	line := "doc [[a]] and image ![[b.png]]"

	docs := Extract(line, ModeDocument)
	require.Len(t, docs, 1)
	require.Equal(t, "a.md", docs[0].Target)

	imgs := Extract(line, ModeImage)
	require.Len(t, imgs, 1)
	require.Equal(t, "b.png", imgs[0].Target)
	require.Equal(t, "![[b.png]]", imgs[0].Raw)
}

func TestExtract_ImageTargetKeptVerbatim(t *testing.T) {
	links := Extract("![[diagram]]", ModeImage)
	require.Len(t, links, 1)
	require.Equal(t, "diagram", links[0].Target)
}

func TestExtract_MultipleLinksInOrder(t *testing.T) {
	links := Extract("[[a]] then [[b#x]] then [[c|see c]]", ModeDocument)
	require.Len(t, links, 3)
	require.Equal(t, "a.md", links[0].Target)
	require.Equal(t, "b.md", links[1].Target)
	require.Equal(t, "x", links[1].Anchor)
	require.Equal(t, "c.md", links[2].Target)
	require.Equal(t, "see c", links[2].Alias)
}

func TestExtract_UnterminatedBracket(t *testing.T) {
	require.Empty(t, Extract("dangling [[never closed", ModeDocument))
}

func TestExtract_Restartable(t *testing.T) {
	line := "[[a]] ![[b.png]]"
	first := Extract(line, ModeDocument)
	second := Extract(line, ModeDocument)
	require.Equal(t, first, second)
}
