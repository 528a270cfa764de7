// Package index builds and serves a navigable section forest over a
// documentation root directory. It owns the process-local snapshot: the
// path table, the per-file section sets used for invalidation, and the
// include-edge graph.
//
// Reads operate on an immutable snapshot and may run concurrently.
// Mutations take a single-writer lock, rewrite the backing file, re-parse
// it, and atomically swap a fresh snapshot in, so readers never observe a
// mid-update state.
package index

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/awray/docmap"
	"github.com/awray/docmap/parse"
)

// parseConcurrency bounds the number of files parsed in parallel during a
// build.
const parseConcurrency = 8

// Ensure Service implements docmap.IndexService at compile time.
var _ docmap.IndexService = (*Service)(nil)

// Service implements docmap.IndexService over a documentation root
// directory on disk. The document root is the persisted state; the
// snapshot is a derived, rebuildable cache.
type Service struct {
	root string

	mu   sync.RWMutex
	snap *snapshot
}

// NewService returns a Service for the given documentation root. The index
// is built on first access or by an explicit Rebuild.
func NewService(root string) *Service {
	return &Service{root: root}
}

// fileEntry is the parse state of one file in a snapshot.
type fileEntry struct {
	path  string // absolute file path
	stem  string // path relative to the root, doc extension stripped
	doc   *docmap.Document
	lines []string
	roots []*docmap.Section
}

// snapshot is an immutable view of the whole documentation tree.
type snapshot struct {
	id      string
	builtAt time.Time

	files   []string              // sorted absolute paths
	entries map[string]*fileEntry // keyed by absolute path

	roots  []*docmap.Section          // forest in file order
	byPath map[string]*docmap.Section

	// includes are the resolved include edges (absolute target paths);
	// unresolved holds one diagnostic per include whose target does not
	// exist. duplicates holds duplicate-path findings across files.
	includes   []docmap.Include
	unresolved []docmap.Diagnostic
	duplicates []docmap.Diagnostic
}

// Rebuild re-indexes the whole documentation root.
func (s *Service) Rebuild(ctx context.Context) error {
	snap, err := s.build(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
	return nil
}

// current returns the active snapshot, building it on first access.
func (s *Service) current(ctx context.Context) (*snapshot, error) {
	s.mu.RLock()
	snap := s.snap
	s.mu.RUnlock()
	if snap != nil {
		return snap, nil
	}
	if err := s.Rebuild(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	snap = s.snap
	s.mu.RUnlock()
	return snap, nil
}

// build walks the root, parses every documentation file concurrently, and
// assembles a snapshot.
func (s *Service) build(ctx context.Context) (*snapshot, error) {
	info, err := os.Stat(s.root)
	if err != nil || !info.IsDir() {
		return nil, docmap.Errorf(docmap.ENOTFOUND, "documentation root %q does not exist or is not a directory", s.root)
	}

	var files []string
	err = filepath.WalkDir(s.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != s.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := docmap.FormatForPath(path); ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	entries := make([]*fileEntry, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parseConcurrency)
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			entry, err := s.parseFile(file)
			if err != nil {
				return err
			}
			entries[i] = entry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return s.assemble(entries), nil
}

// parseFile reads and parses a single file into a snapshot entry.
func (s *Service) parseFile(file string) (*fileEntry, error) {
	src, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	parser, _ := parse.ForPath(file)
	doc, err := parser.Parse(file, src)
	if err != nil {
		return nil, err
	}
	rel, err := filepath.Rel(s.root, file)
	if err != nil {
		rel = filepath.Base(file)
	}
	return &fileEntry{
		path:  file,
		stem:  docmap.StripDocExtension(filepath.ToSlash(rel)),
		doc:   doc,
		lines: parse.Lines(string(src)),
	}, nil
}

// assemble derives the forest, path table, and include facts from parsed
// entries. It is called for full builds and for single-file patches alike,
// so path assignment stays deterministic per file and paths outside a
// modified file are never renumbered.
func (s *Service) assemble(entries []*fileEntry) *snapshot {
	snap := &snapshot{
		id:      uuid.NewString(),
		builtAt: time.Now(),
		entries: make(map[string]*fileEntry, len(entries)),
		byPath:  make(map[string]*docmap.Section),
	}

	for _, e := range entries {
		e.roots = parse.Sections(e.doc, e.lines, e.stem)
		snap.files = append(snap.files, e.path)
		snap.entries[e.path] = e
		snap.roots = append(snap.roots, e.roots...)

		for _, root := range e.roots {
			root.Walk(func(sec *docmap.Section) {
				if first, ok := snap.byPath[sec.Path]; ok {
					snap.duplicates = append(snap.duplicates, docmap.Diagnostic{
						Type:    docmap.DiagDuplicatePath,
						Path:    sec.Path,
						File:    sec.File,
						Line:    sec.StartLine,
						Message: "duplicate section path " + sec.Path + " (first defined in " + first.File + ")",
					})
					return
				}
				snap.byPath[sec.Path] = sec
			})
		}
	}

	// Resolve include targets relative to the including file's directory.
	// Missing targets are recorded, not silently skipped.
	for _, e := range entries {
		for _, inc := range e.doc.Includes {
			target := filepath.Join(filepath.Dir(inc.File), inc.Target)
			if _, err := os.Stat(target); err != nil {
				snap.unresolved = append(snap.unresolved, docmap.Diagnostic{
					Type:    docmap.DiagUnresolvedInclude,
					File:    inc.File,
					Line:    inc.Line,
					Target:  inc.Target,
					Message: "include target " + inc.Target + " not found",
				})
				continue
			}
			snap.includes = append(snap.includes, docmap.Include{File: inc.File, Line: inc.Line, Target: target})
		}
	}

	return snap
}

// section finds a path in the snapshot or returns ENOTFOUND with ranked
// suggestions.
func (snap *snapshot) section(path string) (*docmap.Section, error) {
	if sec, ok := snap.byPath[path]; ok {
		return sec, nil
	}
	return nil, &docmap.Error{
		Code:        docmap.ENOTFOUND,
		Message:     "section not found: " + path,
		Suggestions: snap.suggest(path),
	}
}

// suggest ranks known paths by similarity to the requested one: prefix
// matches first, then by edit distance.
func (snap *snapshot) suggest(path string) []string {
	type candidate struct {
		path     string
		distance int
	}
	candidates := make([]candidate, 0, len(snap.byPath))
	for p := range snap.byPath {
		d := levenshtein.ComputeDistance(path, p)
		if strings.HasPrefix(p, path) {
			d = 0
		}
		candidates = append(candidates, candidate{path: p, distance: d})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}
		return candidates[i].path < candidates[j].path
	})
	const maxSuggestions = 5
	out := make([]string, 0, maxSuggestions)
	for _, c := range candidates {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, c.path)
	}
	return out
}

// Structure returns the section forest, optionally trimmed to a depth.
// Depth counts hierarchy levels below a forest root: a root is at depth 0,
// so a node at depth D is included iff D <= maxDepth.
func (s *Service) Structure(ctx context.Context, opts docmap.StructureOptions) ([]*docmap.Section, error) {
	if opts.MaxDepth != nil && *opts.MaxDepth < 0 {
		return nil, docmap.Errorf(docmap.EINVALID, "max_depth must be non-negative, got %d", *opts.MaxDepth)
	}
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*docmap.Section, 0, len(snap.roots))
	for _, root := range snap.roots {
		out = append(out, trimDepth(root, 0, opts.MaxDepth))
	}
	return out, nil
}

// trimDepth copies a section subtree down to maxDepth levels below the
// root. Nodes at the cut-off depth keep empty children lists.
func trimDepth(sec *docmap.Section, depth int, maxDepth *int) *docmap.Section {
	view := *sec
	view.Children = nil
	if maxDepth != nil && depth+1 > *maxDepth {
		return &view
	}
	for _, c := range sec.Children {
		view.Children = append(view.Children, trimDepth(c, depth+1, maxDepth))
	}
	return &view
}

// Section returns content and metadata for one section path.
func (s *Service) Section(ctx context.Context, path string) (*docmap.SectionDetail, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	sec, err := snap.section(path)
	if err != nil {
		return nil, err
	}
	entry := snap.entries[sec.File]

	children := make([]string, 0, len(sec.Children))
	for _, c := range sec.Children {
		children = append(children, c.Path)
	}
	return &docmap.SectionDetail{
		Path:        sec.Path,
		Title:       sec.Title,
		Level:       sec.Level,
		File:        sec.File,
		Format:      entry.doc.Format,
		StartLine:   sec.StartLine,
		EndLine:     sec.EndLine,
		ContentHash: sec.ContentHash,
		Content:     parse.Body(sec, entry.lines),
		Children:    children,
	}, nil
}

// SectionsAtLevel returns all sections at one hierarchy level in pre-order
// document traversal across the whole forest.
func (s *Service) SectionsAtLevel(ctx context.Context, level int) ([]*docmap.Section, error) {
	if level < 0 {
		return nil, docmap.Errorf(docmap.EINVALID, "level must be non-negative, got %d", level)
	}
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}

	var out []*docmap.Section
	for _, root := range snap.roots {
		root.Walk(func(sec *docmap.Section) {
			if sec.Level == level {
				out = append(out, sec)
			}
		})
	}
	return out, nil
}

// Metadata describes the current snapshot.
func (s *Service) Metadata(ctx context.Context) (*docmap.Metadata, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}

	md := &docmap.Metadata{
		Root:       s.root,
		SnapshotID: snap.id,
		BuiltAt:    snap.builtAt,
		Files:      len(snap.files),
		Formats:    make(map[docmap.Format]int),
	}
	for _, file := range snap.files {
		entry := snap.entries[file]
		md.Elements += len(entry.doc.Elements)
		md.Formats[entry.doc.Format]++
	}
	md.Sections = len(snap.byPath)
	return md, nil
}
