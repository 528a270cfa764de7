package main

import (
	"fmt"
	"io"

	"github.com/awray/docmap"
)

// Run executes the elements command.
func (c *ElementsCmd) Run(deps *Dependencies) error {
	elements, err := deps.Index.Elements(deps.Ctx, docmap.ElementOptions{
		Kind:         c.Kind,
		Section:      c.Section,
		Recursive:    c.Recursive,
		ContentLimit: c.ContentLimit,
	})
	if err != nil {
		return fail(deps, err)
	}

	return emit(deps, map[string]any{"elements": elements, "total": len(elements)}, func(w io.Writer) {
		if len(elements) == 0 {
			fmt.Fprintln(w, "No elements found.")
			return
		}
		for _, e := range elements {
			describeElement(w, e)
		}
	})
}

func describeElement(w io.Writer, e docmap.Element) {
	switch e.Kind {
	case docmap.ElementHeading:
		fmt.Fprintf(w, "%d  %s level %d: %s\n", e.StartLine, e.Kind, e.Level, e.Title)
	case docmap.ElementCode, docmap.ElementDiagram:
		lang := e.Language
		if lang == "" {
			lang = "(none)"
		}
		fmt.Fprintf(w, "%d-%d  %s [%s]\n", e.StartLine, e.EndLine, e.Kind, lang)
	case docmap.ElementInclude:
		fmt.Fprintf(w, "%d  include %s\n", e.StartLine, e.IncludeTarget)
	default:
		fmt.Fprintf(w, "%d-%d  %s\n", e.StartLine, e.EndLine, e.Kind)
	}
}
