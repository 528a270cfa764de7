package main

import (
	"fmt"
	"io"

	"github.com/awray/docmap"
)

// Run executes the insert command.
func (c *InsertCmd) Run(deps *Dependencies) error {
	content, err := contentArg(deps, c.Content)
	if err != nil {
		return fail(deps, err)
	}

	result, err := deps.Index.InsertContent(deps.Ctx, c.Path, content, docmap.Position(c.Position))
	if err != nil {
		return fail(deps, err)
	}

	return emit(deps, result, func(w io.Writer) {
		if result.EmptyContent {
			fmt.Fprintln(w, "Nothing inserted: content was empty.")
			return
		}
		fmt.Fprintf(w, "Inserted %s %s at %s:%d\n", c.Position, result.Path, result.File, result.Line)
	})
}
