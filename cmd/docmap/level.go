package main

import (
	"fmt"
	"io"
)

// Run executes the sections-at-level command.
func (c *SectionsAtLevelCmd) Run(deps *Dependencies) error {
	sections, err := deps.Index.SectionsAtLevel(deps.Ctx, c.Level)
	if err != nil {
		return fail(deps, err)
	}

	return emit(deps, map[string]any{"sections": sections, "total": len(sections)}, func(w io.Writer) {
		if len(sections) == 0 {
			fmt.Fprintf(w, "No sections at level %d.\n", c.Level)
			return
		}
		for _, sec := range sections {
			fmt.Fprintf(w, "%s  [%s]  %s:%d\n", sec.Title, sec.Path, sec.File, sec.StartLine)
		}
	})
}
