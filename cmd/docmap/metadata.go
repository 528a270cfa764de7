package main

import (
	"fmt"
	"io"
)

// Run executes the metadata command.
func (c *MetadataCmd) Run(deps *Dependencies) error {
	meta, err := deps.Index.Metadata(deps.Ctx)
	if err != nil {
		return fail(deps, err)
	}

	return emit(deps, meta, func(w io.Writer) {
		fmt.Fprintf(w, "root:      %s\n", meta.Root)
		fmt.Fprintf(w, "snapshot:  %s\n", meta.SnapshotID)
		fmt.Fprintf(w, "built at:  %s\n", meta.BuiltAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(w, "files:     %d\n", meta.Files)
		fmt.Fprintf(w, "sections:  %d\n", meta.Sections)
		fmt.Fprintf(w, "elements:  %d\n", meta.Elements)
		for format, count := range meta.Formats {
			fmt.Fprintf(w, "  %s: %d\n", format, count)
		}
	})
}
