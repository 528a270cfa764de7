package parse

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/awray/docmap"
)

// Ensure AsciiDoc implements docmap.Parser at compile time.
var _ docmap.Parser = (*AsciiDoc)(nil)

// AsciiDoc parses AsciiDoc files.
type AsciiDoc struct{}

var (
	// A heading is a run of '=' followed by at least one space. A missing
	// space ("=Missing") is not a heading.
	adocHeadingRe = regexp.MustCompile(`^(={1,6})\s+(.+?)(?:\s+=+)?\s*$`)

	adocIncludeRe = regexp.MustCompile(`^include::([^\[\]]+)\[[^\]]*\]\s*$`)

	// Block attribute list, e.g. [source,go] or [plantuml,arch,svg].
	adocAttrRe = regexp.MustCompile(`^\[([^\]]*)\]\s*$`)

	adocListItemRe = regexp.MustCompile(`^\s*(\*+|-|\.+|\d+\.)\s+\S`)
)

// adocDelimToken normalizes a block delimiter line to a stack token, or
// returns "" for non-delimiter lines. Listing/literal delimiters of any
// length match each other so that sloppy "-----" closers still close.
func adocDelimToken(line string) string {
	t := strings.TrimRight(line, " \t")
	switch {
	case len(t) >= 4 && strings.Count(t, "-") == len(t):
		return "----"
	case len(t) >= 4 && strings.Count(t, ".") == len(t):
		return "...."
	case t == "|===":
		return "|==="
	case len(t) >= 3 && strings.Count(t, "`") == len(t):
		return "```"
	}
	return ""
}

// Parse converts AsciiDoc text into an ordered element stream.
func (p *AsciiDoc) Parse(file string, src []byte) (*docmap.Document, error) {
	if !utf8.Valid(src) {
		return nil, docmap.Errorf(docmap.EDECODE, "file %s is not valid UTF-8 text", file)
	}

	lines := splitLines(string(src))
	doc := &docmap.Document{File: file, Format: docmap.FormatAsciiDoc, Lines: len(lines)}

	// Pass 1: delimited blocks via a frame stack. The block kind and
	// language come from an attribute line immediately above the opener.
	var stack []frame
	var spans []span
	attrLine := -1
	attr := ""
	for i, line := range lines {
		lineNo := i + 1
		if tok := adocDelimToken(line); tok != "" {
			kind, language := docmap.ElementCode, ""
			if tok == "|===" {
				kind = docmap.ElementTable
			}
			if attrLine == lineNo-1 {
				kind, language = adocBlockKind(attr, kind)
			}
			stack, spans = closeOrOpen(stack, spans, frame{
				delim:     tok,
				kind:      kind,
				language:  language,
				startLine: lineNo,
			})
			continue
		}
		if m := adocAttrRe.FindStringSubmatch(line); m != nil {
			attrLine, attr = lineNo, m[1]
		}
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

	// Pass 2: classify lines outside closed blocks. Content after an
	// unclosed delimiter is still scanned rather than swallowed.
	var r run
	for i, line := range lines {
		lineNo := i + 1
		if mask[lineNo] || adocDelimToken(line) != "" {
			doc.Elements = r.flush(doc.Elements)
			continue
		}
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			doc.Elements = r.flush(doc.Elements)
		case strings.HasPrefix(trimmed, "//"):
			// Comment lines are excluded from structure but still count
			// toward line numbers.
			doc.Elements = r.flush(doc.Elements)
		case adocAttrRe.MatchString(line):
			doc.Elements = r.flush(doc.Elements)
		case adocIncludeRe.MatchString(line):
			doc.Elements = r.flush(doc.Elements)
			target := adocIncludeRe.FindStringSubmatch(line)[1]
			doc.Elements = append(doc.Elements, docmap.Element{
				Kind:          docmap.ElementInclude,
				Content:       trimmed,
				StartLine:     lineNo,
				EndLine:       lineNo,
				IncludeTarget: target,
			})
			doc.Includes = append(doc.Includes, docmap.Include{File: file, Line: lineNo, Target: target})
		case adocHeadingRe.MatchString(line):
			doc.Elements = r.flush(doc.Elements)
			m := adocHeadingRe.FindStringSubmatch(line)
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
		case adocListItemRe.MatchString(line):
			if r.kind == docmap.ElementParagraph {
				doc.Elements = r.flush(doc.Elements)
			}
			r.add(docmap.ElementList, line, lineNo)
		default:
			if r.kind == docmap.ElementList {
				// Continuation line of a list item.
				r.add(docmap.ElementList, line, lineNo)
				continue
			}
			r.add(docmap.ElementParagraph, line, lineNo)
		}
	}
	doc.Elements = r.flush(doc.Elements)
	sortElements(doc.Elements)

	return doc, nil
}

// adocBlockKind interprets a block attribute list for the block it opens.
func adocBlockKind(attr string, fallback docmap.ElementKind) (docmap.ElementKind, string) {
	parts := strings.Split(attr, ",")
	first := strings.ToLower(strings.TrimSpace(parts[0]))
	if diagramLanguages[first] {
		return docmap.ElementDiagram, first
	}
	if first == "source" && len(parts) > 1 {
		return docmap.ElementCode, strings.TrimSpace(parts[1])
	}
	return fallback, ""
}
