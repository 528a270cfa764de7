package main

import (
	"fmt"
	"io"

	"github.com/awray/docmap"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	results, err := deps.Index.Search(deps.Ctx, c.Query, docmap.SearchOptions{
		Scope:      c.Scope,
		MaxResults: c.MaxResults,
	})
	if err != nil {
		return fail(deps, err)
	}

	return emit(deps, map[string]any{"results": results, "total": len(results)}, func(w io.Writer) {
		if len(results) == 0 {
			fmt.Fprintf(w, "No matches for %q.\n", c.Query)
			return
		}
		for _, r := range results {
			fmt.Fprintf(w, "%s  %s:%d\n", r.Path, r.File, r.Line)
			if r.Snippet != "" {
				fmt.Fprintf(w, "  %s\n", r.Snippet)
			}
		}
	})
}
