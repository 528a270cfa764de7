package main

import (
	"fmt"
	"io"
	"strings"
)

// Run executes the section command.
func (c *SectionCmd) Run(deps *Dependencies) error {
	detail, err := deps.Index.Section(deps.Ctx, c.Path)
	if err != nil {
		return fail(deps, err)
	}

	return emit(deps, detail, func(w io.Writer) {
		fmt.Fprintf(w, "%s  [%s]\n", detail.Title, detail.Path)
		fmt.Fprintf(w, "%s:%d-%d  level %d  hash %s\n", detail.File, detail.StartLine, detail.EndLine, detail.Level, detail.ContentHash)
		if len(detail.Children) > 0 {
			fmt.Fprintf(w, "children: %s\n", strings.Join(detail.Children, ", "))
		}
		if detail.Content != "" {
			fmt.Fprintln(w)
			fmt.Fprintln(w, detail.Content)
		}
	})
}
