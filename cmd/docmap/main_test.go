package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	main "github.com/awray/docmap/cmd/docmap"
)

const sampleDoc = `= User Guide

== Installation

Run make install.

=== Linux

Use the tarball.

== Configuration

Edit the config file.
`

func writeRoot(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func runMain(t *testing.T, args ...string) (stdout, stderr *bytes.Buffer, err error) {
	t.Helper()
	stdout = &bytes.Buffer{}
	stderr = &bytes.Buffer{}
	m := main.NewMain()
	m.Stdin = strings.NewReader("")
	err = m.Run(context.Background(), args, stdout, stderr)
	return stdout, stderr, err
}

func TestRun_NoArgs(t *testing.T) {
	t.Parallel()

	_, _, err := runMain(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	stdout, _, err := runMain(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "docmap")
}

func TestCmdStructure(t *testing.T) {
	t.Parallel()

	t.Run("prints the section tree", func(t *testing.T) {
		t.Parallel()

		root := writeRoot(t, map[string]string{"guide.adoc": sampleDoc})
		stdout, _, err := runMain(t, "structure", "--docs-root", root)
		require.NoError(t, err)

		out := stdout.String()
		assert.Contains(t, out, "User Guide  [guide]")
		assert.Contains(t, out, "Installation  [guide:installation]")
		assert.Contains(t, out, "Linux  [guide:installation.linux]")
	})

	t.Run("max depth trims the tree", func(t *testing.T) {
		t.Parallel()

		root := writeRoot(t, map[string]string{"guide.adoc": sampleDoc})
		stdout, _, err := runMain(t, "structure", "--docs-root", root, "--max-depth", "1")
		require.NoError(t, err)

		out := stdout.String()
		assert.Contains(t, out, "Installation")
		assert.NotContains(t, out, "Linux")
	})

	t.Run("json format emits valid JSON", func(t *testing.T) {
		t.Parallel()

		root := writeRoot(t, map[string]string{"guide.adoc": sampleDoc})
		stdout, _, err := runMain(t, "structure", "--docs-root", root, "--format", "json")
		require.NoError(t, err)

		var payload map[string]any
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &payload))
		assert.Contains(t, payload, "structure")
	})

	t.Run("yaml format mentions paths", func(t *testing.T) {
		t.Parallel()

		root := writeRoot(t, map[string]string{"guide.adoc": sampleDoc})
		stdout, _, err := runMain(t, "structure", "--docs-root", root, "--format", "yaml")
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "guide:installation")
	})
}

func TestCmdSection(t *testing.T) {
	t.Parallel()

	t.Run("prints content and metadata", func(t *testing.T) {
		t.Parallel()

		root := writeRoot(t, map[string]string{"guide.adoc": sampleDoc})
		stdout, _, err := runMain(t, "section", "guide:configuration", "--docs-root", root)
		require.NoError(t, err)

		out := stdout.String()
		assert.Contains(t, out, "Configuration")
		assert.Contains(t, out, "Edit the config file.")
	})

	t.Run("unknown path fails with suggestions", func(t *testing.T) {
		t.Parallel()

		root := writeRoot(t, map[string]string{"guide.adoc": sampleDoc})
		_, stderr, err := runMain(t, "section", "guide:instalation", "--docs-root", root)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "Did you mean")
		assert.Contains(t, stderr.String(), "guide:installation")
	})
}

func TestCmdSearch(t *testing.T) {
	t.Parallel()

	root := writeRoot(t, map[string]string{"guide.adoc": sampleDoc})
	stdout, _, err := runMain(t, "search", "tarball", "--docs-root", root)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "guide:installation.linux")
}

func TestCmdValidate(t *testing.T) {
	t.Parallel()

	t.Run("clean tree passes", func(t *testing.T) {
		t.Parallel()

		root := writeRoot(t, map[string]string{"guide.adoc": sampleDoc})
		stdout, _, err := runMain(t, "validate", "--docs-root", root)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "OK")
	})

	t.Run("broken include fails with non-zero exit", func(t *testing.T) {
		t.Parallel()

		root := writeRoot(t, map[string]string{
			"guide.adoc": "= Guide\n\ninclude::missing.adoc[]\n",
		})
		stdout, _, err := runMain(t, "validate", "--docs-root", root)
		require.Error(t, err)
		assert.Contains(t, stdout.String(), "FAILED")
		assert.Contains(t, stdout.String(), "unresolved_include")
	})
}

func TestCmdUpdate(t *testing.T) {
	t.Parallel()

	root := writeRoot(t, map[string]string{"guide.adoc": sampleDoc})
	stdout, _, err := runMain(t, "update", "guide:configuration", "Use environment variables.", "--docs-root", root)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Updated guide:configuration")

	data, err := os.ReadFile(filepath.Join(root, "guide.adoc"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Use environment variables.")
	assert.NotContains(t, string(data), "Edit the config file.")
}

func TestCmdUpdate_StdinContent(t *testing.T) {
	t.Parallel()

	root := writeRoot(t, map[string]string{"guide.adoc": sampleDoc})

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	m := main.NewMain()
	m.Stdin = strings.NewReader("Piped content.\n")
	err := m.Run(context.Background(), []string{"update", "guide:configuration", "--docs-root", root}, stdout, stderr)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "guide.adoc"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Piped content.")
}

func TestCmdInsert(t *testing.T) {
	t.Parallel()

	root := writeRoot(t, map[string]string{"guide.adoc": sampleDoc})
	stdout, _, err := runMain(t, "insert", "guide:installation", "== Upgrading\n\nRun make upgrade.", "--docs-root", root)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Inserted after guide:installation")

	data, err := os.ReadFile(filepath.Join(root, "guide.adoc"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Use the tarball.\n\n== Upgrading")
}

func TestCmdSectionsAtLevel(t *testing.T) {
	t.Parallel()

	root := writeRoot(t, map[string]string{"guide.adoc": sampleDoc})
	stdout, _, err := runMain(t, "sections-at-level", "1", "--docs-root", root)
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "guide:installation")
	assert.Contains(t, out, "guide:configuration")
	assert.NotContains(t, out, "guide:installation.linux")
}

func TestCmdMetadata(t *testing.T) {
	t.Parallel()

	root := writeRoot(t, map[string]string{"guide.adoc": sampleDoc})
	stdout, _, err := runMain(t, "metadata", "--docs-root", root)
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "files:     1")
	assert.Contains(t, out, "sections:  4")
}
