package parse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/awray/docmap"
)

// HashContent returns the content hash used for optimistic locking of
// section updates.
func HashContent(s string) string {
	return strconv.FormatUint(xxhash.Sum64String(s), 16)
}

// Sections derives the section forest for one file from its parsed heading
// elements. The stem is the file's root path token (its path relative to
// the docs root with the doc extension stripped): a level-0 document title
// gets the bare stem as its path, deeper sections get
// "stem:slug.slug..." addresses. Duplicate sibling slugs are suffixed -2,
// -3 in document order.
func Sections(doc *docmap.Document, lines []string, stem string) []*docmap.Section {
	var headings []*docmap.Section
	for _, e := range doc.Elements {
		if e.Kind != docmap.ElementHeading {
			continue
		}
		headings = append(headings, &docmap.Section{
			Title:     e.Title,
			Level:     e.Level,
			File:      doc.File,
			StartLine: e.StartLine,
		})
	}
	if len(headings) == 0 {
		return nil
	}

	// EndLine is the start of the next heading at the same or a shallower
	// level, else the line after the last line of the file. This makes every
	// section span include all of its descendants.
	for i, s := range headings {
		s.EndLine = len(lines) + 1
		for _, next := range headings[i+1:] {
			if next.Level <= s.Level {
				s.EndLine = next.StartLine
				break
			}
		}
	}

	var roots []*docmap.Section
	var stack []*docmap.Section
	siblings := map[string]map[string]int{} // parent path -> slug -> count

	childPath := func(parent *docmap.Section, title string) string {
		slug := docmap.Slugify(title)
		base := stem + ":" + slug
		key := stem
		if parent != nil {
			key = parent.Path
			if parent.Level == 0 {
				base = parent.Path + ":" + slug
			} else {
				base = parent.Path + "." + slug
			}
		}
		if siblings[key] == nil {
			siblings[key] = map[string]int{}
		}
		siblings[key][slug]++
		if n := siblings[key][slug]; n > 1 {
			base = fmt.Sprintf("%s-%d", base, n)
		}
		return base
	}

	for _, s := range headings {
		if s.Level == 0 {
			s.Path = stem
			roots = append(roots, s)
			stack = []*docmap.Section{s}
			continue
		}
		for len(stack) > 0 && stack[len(stack)-1].Level >= s.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			s.Path = childPath(parent, s.Title)
			parent.Children = append(parent.Children, s)
		} else {
			s.Path = childPath(nil, s.Title)
			roots = append(roots, s)
		}
		stack = append(stack, s)
	}

	for _, root := range roots {
		root.Walk(func(s *docmap.Section) {
			s.ContentHash = HashContent(Body(s, lines))
		})
	}

	return roots
}

// Body returns the section's own body text: the lines between its heading
// and its first child (or its end), joined with newlines.
func Body(s *docmap.Section, lines []string) string {
	start, end := s.OwnBodyRange()
	if end < start || start > len(lines) {
		return ""
	}
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[start-1:end], "\n")
}

// Lines splits file text the same way the parsers do, so line numbers in
// parse results index into the returned slice consistently.
func Lines(text string) []string {
	return splitLines(text)
}
