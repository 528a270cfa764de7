package index

import (
	"context"

	"github.com/awray/docmap"
)

// Elements returns parsed elements in document order, optionally filtered
// by kind and restricted to a section's span.
func (s *Service) Elements(ctx context.Context, opts docmap.ElementOptions) ([]docmap.Element, error) {
	if opts.Kind != "" && !docmap.ValidElementKind(opts.Kind) {
		return nil, docmap.Errorf(docmap.EINVALID,
			"unknown element type %q; valid types: %s", opts.Kind, docmap.ElementKindNames())
	}
	if opts.ContentLimit != nil && *opts.ContentLimit < 0 {
		return nil, docmap.Errorf(docmap.EINVALID, "content_limit must be non-negative, got %d", *opts.ContentLimit)
	}
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}

	var scope *docmap.Section
	if opts.Section != "" {
		scope, err = snap.section(opts.Section)
		if err != nil {
			return nil, err
		}
	}

	var out []docmap.Element
	for _, file := range snap.files {
		if scope != nil && file != scope.File {
			continue
		}
		for _, e := range snap.entries[file].doc.Elements {
			if opts.Kind != "" && string(e.Kind) != opts.Kind {
				continue
			}
			if scope != nil && !inScope(e, scope, opts.Recursive) {
				continue
			}
			if opts.ContentLimit != nil {
				e.Content = truncate(e.Content, *opts.ContentLimit)
			}
			out = append(out, e)
		}
	}
	return out, nil
}

// inScope reports whether an element falls within a section's span. With
// recursive the whole subtree span counts; without it only the section's
// heading and own body do.
func inScope(e docmap.Element, sec *docmap.Section, recursive bool) bool {
	if e.StartLine < sec.StartLine {
		return false
	}
	if recursive {
		return e.StartLine < sec.EndLine
	}
	_, end := sec.OwnBodyRange()
	return e.StartLine <= end
}

// truncate shortens s to at most limit runes.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
