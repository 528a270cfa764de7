package main

import (
	"fmt"
	"io"

	"github.com/awray/docmap"
)

// Run executes the update command.
func (c *UpdateCmd) Run(deps *Dependencies) error {
	content, err := contentArg(deps, c.Content)
	if err != nil {
		return fail(deps, err)
	}

	result, err := deps.Index.UpdateSection(deps.Ctx, c.Path, content, docmap.UpdateOptions{
		PreserveTitle: c.PreserveTitle,
		ExpectedHash:  c.ExpectedHash,
	})
	if err != nil {
		return fail(deps, err)
	}

	return emit(deps, result, func(w io.Writer) {
		fmt.Fprintf(w, "Updated %s (hash %s)\n", result.Path, result.NewHash)
		if result.EmptyContent {
			fmt.Fprintln(w, "warning: section body is now empty")
		}
	})
}

// contentArg returns the content argument, falling back to stdin so larger
// edits can be piped in.
func contentArg(deps *Dependencies, arg string) (string, error) {
	if arg != "" {
		return arg, nil
	}
	data, err := io.ReadAll(deps.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading content from stdin: %w", err)
	}
	return string(data), nil
}
