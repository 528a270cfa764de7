package docmap

import (
	"strings"
	"unicode"
)

// Section is a node in the hierarchical document tree.
//
// EndLine is the line after the last line belonging to the section including
// all descendant sections. For any section S with children C1..Cn in order:
// S.StartLine < C1.StartLine, Ci.EndLine <= C(i+1).StartLine, and
// Cn.EndLine <= S.EndLine.
type Section struct {
	// Path is the dotted address of the section, unique within an index
	// snapshot, e.g. "doc:intro.overview".
	Path string `json:"path"`

	Title string `json:"title"`

	// Level is the hierarchy depth: 0 for a document title, 1 for a
	// top-level section, and so on.
	Level int `json:"level"`

	// File is the absolute path of the owning file.
	File string `json:"file"`

	StartLine int `json:"startLine"`
	EndLine   int `json:"endLine"`

	// ContentHash is a hash of the section's own body text, excluding child
	// sections. Used for optimistic locking of updates.
	ContentHash string `json:"contentHash,omitempty"`

	// Children are ordered in document order.
	Children []*Section `json:"children,omitempty"`
}

// Walk visits s and all descendants in pre-order document traversal.
func (s *Section) Walk(fn func(*Section)) {
	fn(s)
	for _, c := range s.Children {
		c.Walk(fn)
	}
}

// OwnBodyRange returns the 1-based inclusive line range of the section's
// own body: from the line after its heading up to the line before its first
// child's heading (or before EndLine when it has no children). An empty
// body yields end < start.
func (s *Section) OwnBodyRange() (start, end int) {
	start = s.StartLine + 1
	end = s.EndLine - 1
	if len(s.Children) > 0 {
		end = s.Children[0].StartLine - 1
	}
	return start, end
}

// LastDescendantEnd returns the end line of the section's last descendant,
// or the section's own EndLine when it has no children.
func (s *Section) LastDescendantEnd() int {
	if len(s.Children) == 0 {
		return s.EndLine
	}
	return s.Children[len(s.Children)-1].LastDescendantEnd()
}

// Slugify creates a URL-safe path component from a section title.
// Converts to lowercase, replaces space runs with hyphens, and drops other
// special characters. Unicode letters and digits are preserved.
func Slugify(title string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevHyphen = false
		} else if unicode.IsSpace(r) || r == '-' || r == '_' {
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}

// StripDocExtension removes a known documentation extension (.md, .adoc,
// .asciidoc) from a file path, preserving dots that are part of the name
// (e.g. "report_v1.2.3.md" becomes "report_v1.2.3"). Backslashes are
// normalized to forward slashes.
func StripDocExtension(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	lower := strings.ToLower(path)
	for _, ext := range []string{".asciidoc", ".adoc", ".md"} {
		if strings.HasSuffix(lower, ext) {
			return path[:len(path)-len(ext)]
		}
	}
	return path
}
