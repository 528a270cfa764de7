package parse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awray/docmap"
	"github.com/awray/docmap/parse"
)

func parseSections(t *testing.T, file, stem, src string) []*docmap.Section {
	t.Helper()
	parser, ok := parse.ForPath(file)
	require.True(t, ok)
	doc, err := parser.Parse(file, []byte(src))
	require.NoError(t, err)
	return parse.Sections(doc, parse.Lines(src), stem)
}

func TestSections(t *testing.T) {
	t.Parallel()

	t.Run("builds forest with stem-rooted paths", func(t *testing.T) {
		t.Parallel()

		src := "= Title\n\n== Intro\n\nContent.\n\n=== Sub\n\nMore.\n\n== Arch\n\nArch content.\n"
		roots := parseSections(t, "doc.adoc", "doc", src)

		require.Len(t, roots, 1)
		root := roots[0]
		assert.Equal(t, "doc", root.Path)
		assert.Equal(t, "Title", root.Title)
		require.Len(t, root.Children, 2)
		assert.Equal(t, "doc:intro", root.Children[0].Path)
		assert.Equal(t, "doc:arch", root.Children[1].Path)
		require.Len(t, root.Children[0].Children, 1)
		assert.Equal(t, "doc:intro.sub", root.Children[0].Children[0].Path)
	})

	t.Run("end line covers all descendants", func(t *testing.T) {
		t.Parallel()

		src := "= Title\n\n== Intro\n\nContent.\n\n=== Sub\n\nMore.\n\n== Arch\n\nArch content.\n"
		roots := parseSections(t, "doc.adoc", "doc", src)

		root := roots[0]
		intro := root.Children[0]
		sub := intro.Children[0]
		arch := root.Children[1]

		// Intro spans through Sub, up to Arch's heading.
		assert.Equal(t, 3, intro.StartLine)
		assert.Equal(t, arch.StartLine, intro.EndLine)
		assert.LessOrEqual(t, sub.EndLine, intro.EndLine)
		assert.Equal(t, 14, root.EndLine)

		root.Walk(func(s *docmap.Section) {
			for _, c := range s.Children {
				assert.Less(t, s.StartLine, c.StartLine)
				assert.LessOrEqual(t, c.EndLine, s.EndLine)
			}
		})
	})

	t.Run("duplicate sibling slugs get numeric suffixes", func(t *testing.T) {
		t.Parallel()

		src := "= Title\n\n== Example\n\n== Example\n\n== Example\n"
		roots := parseSections(t, "doc.adoc", "doc", src)

		root := roots[0]
		require.Len(t, root.Children, 3)
		assert.Equal(t, "doc:example", root.Children[0].Path)
		assert.Equal(t, "doc:example-2", root.Children[1].Path)
		assert.Equal(t, "doc:example-3", root.Children[2].Path)
	})

	t.Run("file without document title exposes top headings as roots", func(t *testing.T) {
		t.Parallel()

		src := "== First\n\nContent.\n\n== Second\n"
		roots := parseSections(t, "notes.adoc", "notes", src)

		require.Len(t, roots, 2)
		assert.Equal(t, "notes:first", roots[0].Path)
		assert.Equal(t, "notes:second", roots[1].Path)
	})

	t.Run("content hash covers own body only", func(t *testing.T) {
		t.Parallel()

		src := "= Title\n\n== Intro\n\nBody text.\n\n=== Sub\n\nChild text.\n"
		roots := parseSections(t, "doc.adoc", "doc", src)
		intro := roots[0].Children[0]

		// Changing only the child body leaves the parent hash untouched.
		changed := "= Title\n\n== Intro\n\nBody text.\n\n=== Sub\n\nDifferent child.\n"
		changedRoots := parseSections(t, "doc.adoc", "doc", changed)
		changedIntro := changedRoots[0].Children[0]

		assert.Equal(t, intro.ContentHash, changedIntro.ContentHash)
		assert.NotEqual(t,
			intro.Children[0].ContentHash,
			changedIntro.Children[0].ContentHash,
		)
	})

	t.Run("markdown sections use the same path scheme", func(t *testing.T) {
		t.Parallel()

		src := "# Guide\n\n## Setup\n\nSteps.\n"
		roots := parseSections(t, "guide.md", "guide", src)

		require.Len(t, roots, 1)
		assert.Equal(t, "guide", roots[0].Path)
		require.Len(t, roots[0].Children, 1)
		assert.Equal(t, "guide:setup", roots[0].Children[0].Path)
	})
}
