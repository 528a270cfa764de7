package index

import (
	"context"
	"sort"
	"strings"

	"github.com/awray/docmap"
)

// Search returns ranked matches for a query. Title matches rank above body
// matches; ties keep document order.
func (s *Service) Search(ctx context.Context, query string, opts docmap.SearchOptions) ([]docmap.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, docmap.Errorf(docmap.EINVALID, "search query must not be empty")
	}
	if opts.MaxResults < 1 {
		return nil, docmap.Errorf(docmap.EINVALID, "max_results must be >= 1, got %d", opts.MaxResults)
	}
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}

	roots := snap.roots
	if opts.Scope != "" {
		scope, err := snap.section(opts.Scope)
		if err != nil {
			return nil, err
		}
		roots = []*docmap.Section{scope}
	}

	needle := strings.ToLower(query)
	type scored struct {
		result docmap.SearchResult
		score  int
		order  int
	}
	var hits []scored

	order := 0
	for _, root := range roots {
		root.Walk(func(sec *docmap.Section) {
			order++
			entry := snap.entries[sec.File]

			if strings.Contains(strings.ToLower(sec.Title), needle) {
				hits = append(hits, scored{
					result: docmap.SearchResult{
						Path:    sec.Path,
						Title:   sec.Title,
						Snippet: sec.Title,
						Line:    sec.StartLine,
						File:    sec.File,
					},
					score: 2,
					order: order,
				})
				return
			}

			start, end := sec.OwnBodyRange()
			for lineNo := start; lineNo <= end && lineNo <= len(entry.lines); lineNo++ {
				line := entry.lines[lineNo-1]
				if !strings.Contains(strings.ToLower(line), needle) {
					continue
				}
				hits = append(hits, scored{
					result: docmap.SearchResult{
						Path:    sec.Path,
						Title:   sec.Title,
						Snippet: strings.TrimSpace(line),
						Line:    lineNo,
						File:    sec.File,
					},
					score: 1,
					order: order,
				})
				return
			}
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].order < hits[j].order
	})

	if len(hits) > opts.MaxResults {
		hits = hits[:opts.MaxResults]
	}
	out := make([]docmap.SearchResult, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.result)
	}
	return out, nil
}
