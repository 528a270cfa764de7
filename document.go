package docmap

// Format identifies a supported markup format.
type Format string

// Supported markup formats, selected by file extension.
const (
	FormatAsciiDoc Format = "asciidoc"
	FormatMarkdown Format = "markdown"
)

// FormatForPath returns the markup format for a file path based on its
// extension. The second return value is false for unrecognized extensions.
func FormatForPath(path string) (Format, bool) {
	stripped := StripDocExtension(path)
	if stripped == path {
		return "", false
	}
	if len(path)-len(stripped) == len(".md") {
		return FormatMarkdown, true
	}
	return FormatAsciiDoc, true
}

// Diagnostic types reported by parsers and the validator. All of these are
// non-fatal: they degrade to warnings attached to results, never hard
// failures.
const (
	DiagUnclosedBlock     = "unclosed_block"
	DiagUnresolvedInclude = "unresolved_include"
	DiagCircularInclude   = "circular_include"
	DiagOrphanedFile      = "orphaned_file"
	DiagDuplicatePath     = "duplicate_path"
)

// Diagnostic is a structured, non-fatal finding about a document or the
// index, surfaced through validation results and warning channels.
type Diagnostic struct {
	Type    string `json:"type"`
	Message string `json:"message"`

	// File and Line locate the finding in a source file when applicable.
	File string `json:"file,omitempty"`
	Line int    `json:"line,omitempty"`

	// Target is the literal target of an unresolved include directive.
	Target string `json:"target,omitempty"`

	// Path is the section path involved in a duplicate_path finding.
	Path string `json:"path,omitempty"`

	// Cycle lists the files of a circular include chain, in chain order.
	Cycle []string `json:"cycle,omitempty"`
}

// Include is a directed include relation recorded by a parser: the file at
// File references Target at Line. Targets are literal, unresolved path
// strings; resolution against the including file's directory is the index's
// job. Include edges form a general directed graph, not a tree; cycles are
// expected and must be handled.
type Include struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Target string `json:"target"`
}

// Document is the parse result for a single file: an ordered element
// stream plus per-file diagnostics. The section tree is derived from the
// element stream by the index.
type Document struct {
	// File is the absolute path of the parsed file.
	File string `json:"file"`

	Format Format `json:"format"`

	// Title is the document title: the level-0 heading, or for Markdown a
	// frontmatter title when no heading provides one. Empty when the file
	// has no document-level title.
	Title string `json:"title,omitempty"`

	// Elements in document order.
	Elements []Element `json:"elements"`

	// Includes are the include directives found in the file.
	Includes []Include `json:"includes,omitempty"`

	// Warnings collects non-fatal parse findings (e.g. unclosed blocks).
	Warnings []Diagnostic `json:"warnings,omitempty"`

	// Lines is the total number of lines in the file.
	Lines int `json:"lines"`
}

// Parser converts raw file text into an ordered element stream. Parsing is
// total over any valid UTF-8 input: malformed constructs degrade to
// warnings on the Document, never errors. Input that is not valid UTF-8
// fails with an EDECODE error.
type Parser interface {
	Parse(file string, src []byte) (*Document, error)
}
