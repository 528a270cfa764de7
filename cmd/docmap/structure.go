package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/awray/docmap"
)

// Run executes the structure command.
func (c *StructureCmd) Run(deps *Dependencies) error {
	roots, err := deps.Index.Structure(deps.Ctx, docmap.StructureOptions{MaxDepth: c.MaxDepth})
	if err != nil {
		return fail(deps, err)
	}

	return emit(deps, map[string]any{"structure": roots}, func(w io.Writer) {
		if len(roots) == 0 {
			fmt.Fprintln(w, "No sections found.")
			return
		}
		for _, root := range roots {
			printTree(w, root, 0)
		}
	})
}

func printTree(w io.Writer, sec *docmap.Section, depth int) {
	fmt.Fprintf(w, "%s%s  [%s]\n", strings.Repeat("  ", depth), sec.Title, sec.Path)
	for _, child := range sec.Children {
		printTree(w, child, depth+1)
	}
}
