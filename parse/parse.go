// Package parse implements the format parsers that turn raw AsciiDoc and
// Markdown file text into ordered element streams, and derives the section
// forest for a file from its heading elements.
//
// Parsing is a structural extraction, not a spec-compliant markup
// implementation: only headings, includes, fenced/delimited blocks, tables
// and lists are recognized. Malformed constructs degrade to warnings on the
// returned Document; the only hard failure is input that is not valid UTF-8.
package parse

import (
	"fmt"
	"sort"
	"strings"

	"github.com/awray/docmap"
)

// sortElements orders an element stream by source position. Block spans and
// line runs are collected in separate passes, so the combined stream needs
// a stable re-order.
func sortElements(elements []docmap.Element) {
	sort.SliceStable(elements, func(i, j int) bool {
		return elements[i].StartLine < elements[j].StartLine
	})
}

// ForFormat returns the parser for a markup format.
func ForFormat(f docmap.Format) docmap.Parser {
	if f == docmap.FormatMarkdown {
		return &Markdown{}
	}
	return &AsciiDoc{}
}

// ForPath returns the parser for a file path based on its extension.
// The second return value is false for unrecognized extensions.
func ForPath(path string) (docmap.Parser, bool) {
	format, ok := docmap.FormatForPath(path)
	if !ok {
		return nil, false
	}
	return ForFormat(format), true
}

// splitLines splits file text into lines without trailing newlines. A file
// ending in a newline does not produce a trailing empty line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// frame is one open delimited block during scanning. Multiple blocks can be
// open at once (e.g. a table opened inside an unclosed code block); each is
// tracked independently on a stack.
type frame struct {
	delim     string
	kind      docmap.ElementKind
	language  string
	startLine int
}

// span is a closed delimited block: start and end are the 1-based delimiter
// lines, inclusive.
type span struct {
	start, end int
	kind       docmap.ElementKind
	language   string
}

// closeOrOpen applies a delimiter line to the frame stack. A delimiter
// matching any open frame closes that frame; frames opened above it were
// literal content of the closed block and are discarded. Otherwise the
// delimiter opens a new frame.
func closeOrOpen(stack []frame, spans []span, f frame) ([]frame, []span) {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].delim == f.delim {
			spans = append(spans, span{
				start:    stack[i].startLine,
				end:      f.startLine,
				kind:     stack[i].kind,
				language: stack[i].language,
			})
			return stack[:i], spans
		}
	}
	return append(stack, f), spans
}

// unclosedWarnings converts frames still open at EOF into one warning per
// frame, in open order.
func unclosedWarnings(file string, stack []frame) []docmap.Diagnostic {
	warnings := make([]docmap.Diagnostic, 0, len(stack))
	for _, f := range stack {
		warnings = append(warnings, docmap.Diagnostic{
			Type:    docmap.DiagUnclosedBlock,
			File:    file,
			Line:    f.startLine,
			Message: fmt.Sprintf("unclosed %s block opened at line %d (%s)", f.kind, f.startLine, f.delim),
		})
	}
	return warnings
}

// outermost filters out spans fully contained in another span. An inner
// block that closed inside a larger closed block is literal content, not an
// element of its own.
func outermost(spans []span) []span {
	kept := spans[:0]
	for i, s := range spans {
		contained := false
		for j, o := range spans {
			if i != j && o.start <= s.start && s.end <= o.end && (o.start != s.start || o.end != s.end) {
				contained = true
				break
			}
		}
		if !contained {
			kept = append(kept, s)
		}
	}
	return kept
}

// spanContent returns the interior of a block span, without its delimiter
// lines.
func spanContent(lines []string, s span) string {
	if s.end-s.start < 2 {
		return ""
	}
	return strings.Join(lines[s.start:s.end-1], "\n")
}

// covered marks every line belonging to a closed block span.
func covered(lines []string, spans []span) []bool {
	mask := make([]bool, len(lines)+1)
	for _, s := range spans {
		for i := s.start; i <= s.end && i < len(mask); i++ {
			mask[i] = true
		}
	}
	return mask
}

// diagramLanguages are block languages treated as diagrams rather than code.
var diagramLanguages = map[string]bool{
	"plantuml": true,
	"mermaid":  true,
	"graphviz": true,
	"dot":      true,
	"ditaa":    true,
	"d2":       true,
}

// run accumulates consecutive lines of one paragraph or list element.
type run struct {
	kind  docmap.ElementKind
	start int
	lines []string
}

func (r *run) add(kind docmap.ElementKind, line string, lineNo int) {
	if len(r.lines) == 0 {
		r.kind = kind
		r.start = lineNo
	}
	r.lines = append(r.lines, line)
}

func (r *run) flush(elements []docmap.Element) []docmap.Element {
	if len(r.lines) == 0 {
		return elements
	}
	elements = append(elements, docmap.Element{
		Kind:      r.kind,
		Content:   strings.Join(r.lines, "\n"),
		StartLine: r.start,
		EndLine:   r.start + len(r.lines) - 1,
	})
	r.kind = ""
	r.start = 0
	r.lines = nil
	return elements
}
