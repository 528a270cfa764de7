package docmap

import "strings"

// ElementKind identifies the type of a parsed document element.
type ElementKind string

// Element kinds produced by the format parsers.
const (
	ElementHeading   ElementKind = "heading"
	ElementParagraph ElementKind = "paragraph"
	ElementCode      ElementKind = "code"
	ElementTable     ElementKind = "table"
	ElementDiagram   ElementKind = "diagram"
	ElementInclude   ElementKind = "include"
	ElementList      ElementKind = "list"
)

// ElementKinds returns all valid element kinds in a stable order.
func ElementKinds() []ElementKind {
	return []ElementKind{
		ElementHeading,
		ElementParagraph,
		ElementCode,
		ElementTable,
		ElementDiagram,
		ElementInclude,
		ElementList,
	}
}

// ValidElementKind reports whether s names a known element kind.
func ValidElementKind(s string) bool {
	for _, k := range ElementKinds() {
		if string(k) == s {
			return true
		}
	}
	return false
}

// ElementKindNames returns the valid kind names joined for error messages.
func ElementKindNames() string {
	names := make([]string, 0, len(ElementKinds()))
	for _, k := range ElementKinds() {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}

// Element is one parsed unit of a document. Elements are produced once per
// parse pass and are immutable.
type Element struct {
	Kind ElementKind `json:"kind"`

	// Level is the heading depth (0 = document title). Only meaningful for
	// heading elements.
	Level int `json:"level,omitempty"`

	// Title is the heading title. Only set for heading elements.
	Title string `json:"title,omitempty"`

	// Content is the raw text span of the element.
	Content string `json:"content,omitempty"`

	// StartLine and EndLine are 1-based inclusive line numbers.
	StartLine int `json:"startLine"`
	EndLine   int `json:"endLine"`

	// Language is the declared language of a code or diagram block.
	Language string `json:"language,omitempty"`

	// IncludeTarget is the literal target path of an include directive,
	// as written in the source. Resolution is the index's job.
	IncludeTarget string `json:"includeTarget,omitempty"`
}
