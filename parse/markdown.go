package parse

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/adrg/frontmatter"
	"github.com/awray/docmap"
)

// Ensure Markdown implements docmap.Parser at compile time.
var _ docmap.Parser = (*Markdown)(nil)

// Markdown parses Markdown files.
type Markdown struct{}

var (
	// A heading is a run of '#' followed by at least one space.
	mdHeadingRe = regexp.MustCompile(`^(#{1,6})\s+(.+?)(?:\s+#+)?\s*$`)

	mdListItemRe = regexp.MustCompile(`^\s*([*+-]|\d+\.)\s+\S`)

	mdFenceRe = regexp.MustCompile("^(`{3,}|~{3,})\\s*(\\S*)")
)

// mdFrontmatter holds the metadata fields we care about.
type mdFrontmatter struct {
	Title string `yaml:"title"`
}

// Parse converts Markdown text into an ordered element stream.
func (p *Markdown) Parse(file string, src []byte) (*docmap.Document, error) {
	if !utf8.Valid(src) {
		return nil, docmap.Errorf(docmap.EDECODE, "file %s is not valid UTF-8 text", file)
	}

	text := string(src)
	lines := splitLines(text)
	doc := &docmap.Document{File: file, Format: docmap.FormatMarkdown, Lines: len(lines)}

	// YAML frontmatter contributes title metadata. Its lines still count
	// toward line numbers but produce no elements.
	fmEnd := 0
	if strings.HasPrefix(text, "---") {
		var meta mdFrontmatter
		rest, err := frontmatter.Parse(strings.NewReader(text), &meta)
		if err == nil && len(rest) < len(src) {
			doc.Title = meta.Title
			fmEnd = len(lines) - len(splitLines(string(rest)))
		}
	}

	// HTML comments (including multi-line) are excluded from structure
	// detection but still count toward line numbers.
	masked := maskHTMLComments(lines)

	// Pass 1: fenced code blocks via a frame stack. A fence with an info
	// string always opens; a bare fence closes the innermost open frame of
	// the same character.
	var stack []frame
	var spans []span
	for i, line := range masked {
		lineNo := i + 1
		if lineNo <= fmEnd {
			continue
		}
		m := mdFenceRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		delim, info := m[1][:3], strings.ToLower(m[2])
		kind := docmap.ElementCode
		if diagramLanguages[info] {
			kind = docmap.ElementDiagram
		}
		f := frame{delim: delim, kind: kind, language: info, startLine: lineNo}
		if info != "" {
			stack = append(stack, f)
			continue
		}
		stack, spans = closeOrOpen(stack, spans, f)
	}
	doc.Warnings = append(doc.Warnings, unclosedWarnings(file, stack)...)
	spans = outermost(spans)
	mask := covered(lines, spans)

	for _, s := range spans {
		doc.Elements = append(doc.Elements, docmap.Element{
			Kind:      s.kind,
			Content:   spanContent(lines, s),
			StartLine: s.start,
			EndLine:   s.end,
			Language:  s.language,
		})
	}

	// Pass 2: classify lines outside closed fences.
	var r run
	for i, line := range masked {
		lineNo := i + 1
		if lineNo <= fmEnd || mask[lineNo] || mdFenceRe.MatchString(line) {
			doc.Elements = r.flush(doc.Elements)
			continue
		}
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			doc.Elements = r.flush(doc.Elements)
		case strings.HasPrefix(trimmed, "|"):
			if r.kind != docmap.ElementTable {
				doc.Elements = r.flush(doc.Elements)
			}
			r.add(docmap.ElementTable, line, lineNo)
		case mdHeadingRe.MatchString(line):
			doc.Elements = r.flush(doc.Elements)
			m := mdHeadingRe.FindStringSubmatch(line)
			level := len(m[1]) - 1
			title := strings.TrimSpace(m[2])
			if level == 0 && doc.Title == "" {
				doc.Title = title
			}
			doc.Elements = append(doc.Elements, docmap.Element{
				Kind:      docmap.ElementHeading,
				Level:     level,
				Title:     title,
				Content:   title,
				StartLine: lineNo,
				EndLine:   lineNo,
			})
		case mdListItemRe.MatchString(line):
			if r.kind == docmap.ElementParagraph {
				doc.Elements = r.flush(doc.Elements)
			}
			r.add(docmap.ElementList, line, lineNo)
		default:
			if r.kind == docmap.ElementList {
				r.add(docmap.ElementList, line, lineNo)
				continue
			}
			// Table rows all start with a pipe; any other line ends the
			// table even without a blank separator.
			if r.kind == docmap.ElementTable {
				doc.Elements = r.flush(doc.Elements)
			}
			r.add(docmap.ElementParagraph, line, lineNo)
		}
	}
	doc.Elements = r.flush(doc.Elements)
	sortElements(doc.Elements)

	return doc, nil
}

// maskHTMLComments blanks out `<!-- ... -->` spans, preserving line count
// and the position of text outside comments.
func maskHTMLComments(lines []string) []string {
	masked := make([]string, len(lines))
	inComment := false
	for i, line := range lines {
		var sb strings.Builder
		rest := line
		for rest != "" {
			if inComment {
				end := strings.Index(rest, "-->")
				if end < 0 {
					rest = ""
					break
				}
				inComment = false
				rest = rest[end+len("-->"):]
				continue
			}
			start := strings.Index(rest, "<!--")
			if start < 0 {
				sb.WriteString(rest)
				rest = ""
				break
			}
			sb.WriteString(rest[:start])
			inComment = true
			rest = rest[start+len("<!--"):]
		}
		masked[i] = sb.String()
	}
	return masked
}
