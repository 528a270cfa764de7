package main

import (
	"fmt"
	"io"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	answer, err := deps.Asker.Ask(deps.Ctx, c.Question)
	if err != nil {
		return fail(deps, err)
	}

	return emit(deps, answer, func(w io.Writer) {
		fmt.Fprintln(w, answer.Text)
		if len(answer.Sources) > 0 {
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Sources:")
			for _, source := range answer.Sources {
				fmt.Fprintf(w, "  %s\n", source)
			}
		}
	})
}
