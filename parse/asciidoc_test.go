package parse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awray/docmap"
	"github.com/awray/docmap/parse"
)

func headings(doc *docmap.Document) []docmap.Element {
	var out []docmap.Element
	for _, e := range doc.Elements {
		if e.Kind == docmap.ElementHeading {
			out = append(out, e)
		}
	}
	return out
}

func kinds(doc *docmap.Document) []docmap.ElementKind {
	out := make([]docmap.ElementKind, 0, len(doc.Elements))
	for _, e := range doc.Elements {
		out = append(out, e.Kind)
	}
	return out
}

func TestAsciiDocHeadings(t *testing.T) {
	t.Parallel()

	t.Run("extracts title and nested sections", func(t *testing.T) {
		t.Parallel()

		src := "= Title\n\n== Intro\n\nContent.\n\n=== Sub\n\nMore.\n\n== Arch\n"
		doc, err := (&parse.AsciiDoc{}).Parse("doc.adoc", []byte(src))
		require.NoError(t, err)

		hs := headings(doc)
		require.Len(t, hs, 4)
		assert.Equal(t, "Title", hs[0].Title)
		assert.Equal(t, 0, hs[0].Level)
		assert.Equal(t, "Intro", hs[1].Title)
		assert.Equal(t, 1, hs[1].Level)
		assert.Equal(t, "Sub", hs[2].Title)
		assert.Equal(t, 2, hs[2].Level)
		assert.Equal(t, "Arch", hs[3].Title)
		assert.Equal(t, "Title", doc.Title)
	})

	t.Run("missing space after equals is not a heading", func(t *testing.T) {
		t.Parallel()

		src := "= Title\n\n==Missing Space\n\n== Real Section\n"
		doc, err := (&parse.AsciiDoc{}).Parse("doc.adoc", []byte(src))
		require.NoError(t, err)

		hs := headings(doc)
		require.Len(t, hs, 2)
		assert.Equal(t, "Title", hs[0].Title)
		assert.Equal(t, "Real Section", hs[1].Title)
	})

	t.Run("comment lines are excluded but counted", func(t *testing.T) {
		t.Parallel()

		src := "= Title\n\n// == Commented Out\n\n== Real\n"
		doc, err := (&parse.AsciiDoc{}).Parse("doc.adoc", []byte(src))
		require.NoError(t, err)

		hs := headings(doc)
		require.Len(t, hs, 2)
		assert.Equal(t, 5, hs[1].StartLine)
	})

	t.Run("records heading line spans", func(t *testing.T) {
		t.Parallel()

		src := "= Title\n\n== Intro\n"
		doc, err := (&parse.AsciiDoc{}).Parse("doc.adoc", []byte(src))
		require.NoError(t, err)

		hs := headings(doc)
		assert.Equal(t, 1, hs[0].StartLine)
		assert.Equal(t, 3, hs[1].StartLine)
	})
}

func TestAsciiDocBlocks(t *testing.T) {
	t.Parallel()

	t.Run("listing block with source language", func(t *testing.T) {
		t.Parallel()

		src := "= Title\n\n[source,go]\n----\nfunc main() {}\n----\n"
		doc, err := (&parse.AsciiDoc{}).Parse("doc.adoc", []byte(src))
		require.NoError(t, err)
		require.Empty(t, doc.Warnings)

		var code *docmap.Element
		for i := range doc.Elements {
			if doc.Elements[i].Kind == docmap.ElementCode {
				code = &doc.Elements[i]
			}
		}
		require.NotNil(t, code)
		assert.Equal(t, "go", code.Language)
		assert.Equal(t, "func main() {}", code.Content)
		assert.Equal(t, 4, code.StartLine)
		assert.Equal(t, 6, code.EndLine)
	})

	t.Run("diagram block", func(t *testing.T) {
		t.Parallel()

		src := "= Title\n\n[plantuml]\n----\nA -> B\n----\n"
		doc, err := (&parse.AsciiDoc{}).Parse("doc.adoc", []byte(src))
		require.NoError(t, err)

		assert.Contains(t, kinds(doc), docmap.ElementDiagram)
	})

	t.Run("table block", func(t *testing.T) {
		t.Parallel()

		src := "= Title\n\n|===\n|a |b\n|c |d\n|===\n"
		doc, err := (&parse.AsciiDoc{}).Parse("doc.adoc", []byte(src))
		require.NoError(t, err)
		require.Empty(t, doc.Warnings)

		assert.Contains(t, kinds(doc), docmap.ElementTable)
	})

	t.Run("unclosed block produces one warning per open frame in open order", func(t *testing.T) {
		t.Parallel()

		src := "= Title\n\n----\ncode\n\n|===\n|still open\n"
		doc, err := (&parse.AsciiDoc{}).Parse("doc.adoc", []byte(src))
		require.NoError(t, err)

		require.Len(t, doc.Warnings, 2)
		assert.Equal(t, docmap.DiagUnclosedBlock, doc.Warnings[0].Type)
		assert.Equal(t, 3, doc.Warnings[0].Line)
		assert.Equal(t, docmap.DiagUnclosedBlock, doc.Warnings[1].Type)
		assert.Equal(t, 6, doc.Warnings[1].Line)
	})

	t.Run("content after unclosed delimiter is still scanned for headings", func(t *testing.T) {
		t.Parallel()

		src := "= Title\n\n----\nunclosed\n\n== After Block\n\nContent.\n"
		doc, err := (&parse.AsciiDoc{}).Parse("doc.adoc", []byte(src))
		require.NoError(t, err)

		require.Len(t, doc.Warnings, 1)
		hs := headings(doc)
		require.Len(t, hs, 2)
		assert.Equal(t, "After Block", hs[1].Title)
	})

	t.Run("headings inside closed blocks are not sections", func(t *testing.T) {
		t.Parallel()

		src := "= Title\n\n----\n== Not A Heading\n----\n\n== Real\n"
		doc, err := (&parse.AsciiDoc{}).Parse("doc.adoc", []byte(src))
		require.NoError(t, err)

		hs := headings(doc)
		require.Len(t, hs, 2)
		assert.Equal(t, "Real", hs[1].Title)
	})
}

func TestAsciiDocIncludes(t *testing.T) {
	t.Parallel()

	t.Run("records literal unresolved target", func(t *testing.T) {
		t.Parallel()

		src := "= Title\n\ninclude::chapters/one.adoc[]\n\ninclude::missing.adoc[leveloffset=+1]\n"
		doc, err := (&parse.AsciiDoc{}).Parse("doc.adoc", []byte(src))
		require.NoError(t, err)

		require.Len(t, doc.Includes, 2)
		assert.Equal(t, "chapters/one.adoc", doc.Includes[0].Target)
		assert.Equal(t, 3, doc.Includes[0].Line)
		assert.Equal(t, "missing.adoc", doc.Includes[1].Target)
		assert.Equal(t, 5, doc.Includes[1].Line)
	})
}

func TestAsciiDocParagraphsAndLists(t *testing.T) {
	t.Parallel()

	t.Run("groups paragraph and list runs", func(t *testing.T) {
		t.Parallel()

		src := "= Title\n\nFirst paragraph\nstill first.\n\n* one\n* two\n\nSecond paragraph.\n"
		doc, err := (&parse.AsciiDoc{}).Parse("doc.adoc", []byte(src))
		require.NoError(t, err)

		assert.Equal(t, []docmap.ElementKind{
			docmap.ElementHeading,
			docmap.ElementParagraph,
			docmap.ElementList,
			docmap.ElementParagraph,
		}, kinds(doc))
	})

	t.Run("rejects invalid utf-8", func(t *testing.T) {
		t.Parallel()

		_, err := (&parse.AsciiDoc{}).Parse("doc.adoc", []byte{0xff, 0xfe, 0x00})
		require.Error(t, err)
		assert.Equal(t, docmap.EDECODE, docmap.ErrorCode(err))
	})
}
