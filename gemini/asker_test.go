package gemini_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awray/docmap"
	"github.com/awray/docmap/gemini"
)

func TestAsk_Validation(t *testing.T) {
	t.Parallel()

	t.Run("empty question fails", func(t *testing.T) {
		t.Parallel()

		asker := gemini.NewAsker(nil, t.TempDir())
		_, err := asker.Ask(context.Background(), "   ")
		require.Error(t, err)
		assert.Equal(t, docmap.EINVALID, docmap.ErrorCode(err))
	})

	t.Run("empty documentation root fails", func(t *testing.T) {
		t.Parallel()

		asker := gemini.NewAsker(nil, t.TempDir())
		_, err := asker.Ask(context.Background(), "how do I configure it?")
		require.Error(t, err)
		assert.Equal(t, docmap.ENOTFOUND, docmap.ErrorCode(err))
	})
}

func TestIterationPrompt(t *testing.T) {
	t.Parallel()

	t.Run("includes question, file, and content", func(t *testing.T) {
		t.Parallel()

		prompt := gemini.IterationPrompt("how to install?", "", "guide.adoc", "= Guide\n\nRun make install.")

		assert.Contains(t, prompt, "Question: how to install?")
		assert.Contains(t, prompt, "Current file: guide.adoc")
		assert.Contains(t, prompt, "Run make install.")
		assert.Contains(t, prompt, "(none yet)")
		assert.Contains(t, prompt, "KEY_POINTS:")
		assert.Contains(t, prompt, "MISSING:")
	})

	t.Run("carries accumulated findings forward", func(t *testing.T) {
		t.Parallel()

		prompt := gemini.IterationPrompt("q", "From \"a.adoc\":\nuses make", "b.adoc", "content")

		assert.Contains(t, prompt, "uses make")
		assert.NotContains(t, prompt, "(none yet)")
	})
}

func TestConsolidationPrompt(t *testing.T) {
	t.Parallel()

	prompt := gemini.ConsolidationPrompt("how to install?", "findings text", []string{"guide.adoc", "setup.md"})

	assert.Contains(t, prompt, "Question: how to install?")
	assert.Contains(t, prompt, "findings text")
	assert.Contains(t, prompt, "- guide.adoc")
	assert.Contains(t, prompt, "- setup.md")
	assert.Contains(t, prompt, "no meta-commentary")
}
