package index_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awray/docmap"
	"github.com/awray/docmap/index"
)

func diagsOfType(diags []docmap.Diagnostic, typ string) []docmap.Diagnostic {
	var out []docmap.Diagnostic
	for _, d := range diags {
		if d.Type == typ {
			out = append(out, d)
		}
	}
	return out
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("clean tree is valid", func(t *testing.T) {
		t.Parallel()

		root := writeDocs(t, map[string]string{
			"doc.adoc": "= Document\n\nContent.\n",
		})
		svc := index.NewService(root)

		report, err := svc.Validate(context.Background())
		require.NoError(t, err)
		assert.True(t, report.Valid)
		assert.Empty(t, report.Errors)
		assert.Empty(t, report.Warnings)
	})

	t.Run("unresolved include is an error", func(t *testing.T) {
		t.Parallel()

		root := writeDocs(t, map[string]string{
			"doc.adoc": "= Document\n\ninclude::missing.adoc[]\n",
		})
		svc := index.NewService(root)

		report, err := svc.Validate(context.Background())
		require.NoError(t, err)
		assert.False(t, report.Valid)
		require.Len(t, report.Errors, 1)

		diag := report.Errors[0]
		assert.Equal(t, docmap.DiagUnresolvedInclude, diag.Type)
		assert.Equal(t, filepath.Join(root, "doc.adoc"), diag.File)
		assert.Equal(t, 3, diag.Line)
		assert.Equal(t, "missing.adoc", diag.Target)
	})

	t.Run("resolved include is not an error", func(t *testing.T) {
		t.Parallel()

		root := writeDocs(t, map[string]string{
			"doc.adoc":  "= Document\n\ninclude::part.adoc[]\n",
			"part.adoc": "== Part\n\nPart content.\n",
		})
		svc := index.NewService(root)

		report, err := svc.Validate(context.Background())
		require.NoError(t, err)
		assert.True(t, report.Valid)
		assert.Empty(t, report.Errors)
	})

	t.Run("include resolves relative to the including file", func(t *testing.T) {
		t.Parallel()

		root := writeDocs(t, map[string]string{
			"guides/main.adoc":  "= Guide\n\ninclude::extra.adoc[]\n",
			"guides/extra.adoc": "== Extra\n\nMore.\n",
		})
		svc := index.NewService(root)

		report, err := svc.Validate(context.Background())
		require.NoError(t, err)
		assert.Empty(t, report.Errors)
	})

	t.Run("mutual include cycle warns once and is not orphaned", func(t *testing.T) {
		t.Parallel()

		root := writeDocs(t, map[string]string{
			"a.adoc": "== Part A\n\ninclude::b.adoc[]\n",
			"b.adoc": "== Part B\n\ninclude::a.adoc[]\n",
		})
		svc := index.NewService(root)

		report, err := svc.Validate(context.Background())
		require.NoError(t, err)
		assert.True(t, report.Valid)

		circular := diagsOfType(report.Warnings, docmap.DiagCircularInclude)
		require.Len(t, circular, 1)
		assert.ElementsMatch(t, []string{
			filepath.Join(root, "a.adoc"),
			filepath.Join(root, "b.adoc"),
		}, circular[0].Cycle)
		assert.Contains(t, circular[0].Message, "circular include chain")

		assert.Empty(t, diagsOfType(report.Warnings, docmap.DiagOrphanedFile))
	})

	t.Run("cycle referenced from outside is not reported", func(t *testing.T) {
		t.Parallel()

		root := writeDocs(t, map[string]string{
			"main.adoc": "= Main\n\ninclude::a.adoc[]\n",
			"a.adoc":    "== Part A\n\ninclude::b.adoc[]\n",
			"b.adoc":    "== Part B\n\ninclude::a.adoc[]\n",
		})
		svc := index.NewService(root)

		report, err := svc.Validate(context.Background())
		require.NoError(t, err)
		assert.Empty(t, diagsOfType(report.Warnings, docmap.DiagCircularInclude))
	})

	t.Run("self include is a cycle of one", func(t *testing.T) {
		t.Parallel()

		root := writeDocs(t, map[string]string{
			"loop.adoc": "== Loop\n\ninclude::loop.adoc[]\n",
		})
		svc := index.NewService(root)

		report, err := svc.Validate(context.Background())
		require.NoError(t, err)

		circular := diagsOfType(report.Warnings, docmap.DiagCircularInclude)
		require.Len(t, circular, 1)
		assert.Equal(t, []string{filepath.Join(root, "loop.adoc")}, circular[0].Cycle)
	})

	t.Run("untitled unincluded file is orphaned", func(t *testing.T) {
		t.Parallel()

		root := writeDocs(t, map[string]string{
			"doc.adoc":      "= Document\n\nContent.\n",
			"fragment.adoc": "== Fragment\n\nDangling.\n",
		})
		svc := index.NewService(root)

		report, err := svc.Validate(context.Background())
		require.NoError(t, err)
		assert.True(t, report.Valid)

		orphans := diagsOfType(report.Warnings, docmap.DiagOrphanedFile)
		require.Len(t, orphans, 1)
		assert.Equal(t, filepath.Join(root, "fragment.adoc"), orphans[0].File)
	})

	t.Run("included fragment is not orphaned", func(t *testing.T) {
		t.Parallel()

		root := writeDocs(t, map[string]string{
			"doc.adoc":      "= Document\n\ninclude::fragment.adoc[]\n",
			"fragment.adoc": "== Fragment\n\nUsed.\n",
		})
		svc := index.NewService(root)

		report, err := svc.Validate(context.Background())
		require.NoError(t, err)
		assert.Empty(t, diagsOfType(report.Warnings, docmap.DiagOrphanedFile))
	})

	t.Run("unclosed block warnings surface in the report", func(t *testing.T) {
		t.Parallel()

		root := writeDocs(t, map[string]string{
			"doc.adoc": "= Document\n\n----\nnever closed\n",
		})
		svc := index.NewService(root)

		report, err := svc.Validate(context.Background())
		require.NoError(t, err)
		assert.True(t, report.Valid)

		unclosed := diagsOfType(report.Warnings, docmap.DiagUnclosedBlock)
		require.Len(t, unclosed, 1)
		assert.Equal(t, 3, unclosed[0].Line)
	})

	t.Run("duplicate document titles warn with duplicate_path", func(t *testing.T) {
		t.Parallel()

		root := writeDocs(t, map[string]string{
			"doc.adoc": "= Document\n\nFirst.\n\n= Document Again\n\nSecond.\n",
		})
		svc := index.NewService(root)

		report, err := svc.Validate(context.Background())
		require.NoError(t, err)

		dupes := diagsOfType(report.Warnings, docmap.DiagDuplicatePath)
		require.Len(t, dupes, 1)
		assert.Equal(t, "doc", dupes[0].Path)
		assert.Equal(t, 5, dupes[0].Line)
	})
}
