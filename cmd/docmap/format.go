package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/awray/docmap"
)

// emit writes v in the configured output format. The text renderer is only
// invoked for the default human-readable format; json and yaml serialize v
// directly.
func emit(deps *Dependencies, v any, text func(w io.Writer)) error {
	switch deps.Format {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(deps.Stdout, string(data))
		return nil
	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		fmt.Fprint(deps.Stdout, string(data))
		return nil
	default:
		text(deps.Stdout)
		return nil
	}
}

// fail prints a human-readable error message to stderr and returns the
// error for the non-zero exit.
func fail(deps *Dependencies, err error) error {
	fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
	return err
}

// errorText renders a domain error for humans, appending any path
// suggestions a not-found error carries.
func errorText(err error) string {
	msg := docmap.ErrorMessage(err)
	if suggestions := docmap.ErrorSuggestions(err); len(suggestions) > 0 {
		msg += " Did you mean: " + strings.Join(suggestions, ", ") + "?"
	}
	return msg
}
