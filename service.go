package docmap

import (
	"context"
	"time"
)

// Position selects where InsertContent places content relative to the
// target section.
type Position string

// Insert positions.
const (
	// PositionBefore inserts immediately before the section's heading line.
	PositionBefore Position = "before"

	// PositionAfter inserts at the section's EndLine, after all of its
	// descendant sections.
	PositionAfter Position = "after"

	// PositionAppend inserts as the last content inside the section, after
	// any existing children.
	PositionAppend Position = "append"
)

// ValidPosition reports whether s names a known insert position.
func ValidPosition(s string) bool {
	switch Position(s) {
	case PositionBefore, PositionAfter, PositionAppend:
		return true
	}
	return false
}

// StructureOptions controls Structure.
type StructureOptions struct {
	// MaxDepth is the number of hierarchy levels below the root to include:
	// 0 returns roots only, 1 adds their immediate children, nil means
	// unlimited. Negative values fail with EINVALID.
	MaxDepth *int `json:"maxDepth,omitempty"`
}

// SectionDetail is the full content view of a single section.
type SectionDetail struct {
	Path        string   `json:"path"`
	Title       string   `json:"title"`
	Level       int      `json:"level"`
	File        string   `json:"file"`
	Format      Format   `json:"format"`
	StartLine   int      `json:"startLine"`
	EndLine     int      `json:"endLine"`
	ContentHash string   `json:"contentHash"`
	Content     string   `json:"content"`
	Children    []string `json:"children,omitempty"`
}

// SearchOptions controls Search.
type SearchOptions struct {
	// Scope restricts the search to the subtree rooted at a section path.
	// An unknown scope fails with ENOTFOUND.
	Scope string `json:"scope,omitempty"`

	// MaxResults caps the number of results and must be >= 1; zero and
	// negative values fail with EINVALID.
	MaxResults int `json:"maxResults"`
}

// DefaultMaxResults is the search result cap applied by frontends when the
// caller does not specify one.
const DefaultMaxResults = 20

// SearchResult is one ranked search hit.
type SearchResult struct {
	Path    string `json:"path"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Line    int    `json:"line"`
	File    string `json:"file"`
}

// ElementOptions controls Elements.
type ElementOptions struct {
	// Kind filters by element kind. An unknown kind fails with EINVALID.
	Kind string `json:"kind,omitempty"`

	// Section restricts results to a section's span; with Recursive the
	// spans of descendant sections are included too.
	Section   string `json:"section,omitempty"`
	Recursive bool   `json:"recursive,omitempty"`

	// ContentLimit truncates element content to at most this many runes.
	// Negative values fail with EINVALID; nil means no truncation.
	ContentLimit *int `json:"contentLimit,omitempty"`
}

// Metadata describes an index snapshot.
type Metadata struct {
	Root       string         `json:"root"`
	SnapshotID string         `json:"snapshotId"`
	BuiltAt    time.Time      `json:"builtAt"`
	Files      int            `json:"files"`
	Sections   int            `json:"sections"`
	Elements   int            `json:"elements"`
	Formats    map[Format]int `json:"formats"`
}

// ValidationReport is the result of Validate. Valid is true iff Errors is
// empty; warnings never flip it.
type ValidationReport struct {
	Valid    bool         `json:"valid"`
	Errors   []Diagnostic `json:"errors"`
	Warnings []Diagnostic `json:"warnings"`
}

// UpdateOptions controls UpdateSection.
type UpdateOptions struct {
	// PreserveTitle keeps the section's heading line and replaces only the
	// body. When false the supplied content replaces the heading too; a
	// level change that would re-parent existing children fails with
	// EHIERARCHY.
	PreserveTitle bool `json:"preserveTitle"`

	// ExpectedHash, when non-empty, must match the section's current
	// ContentHash or the update fails with ECONFLICT and the file is left
	// untouched.
	ExpectedHash string `json:"expectedHash,omitempty"`
}

// UpdateResult reports the outcome of UpdateSection.
type UpdateResult struct {
	Path    string `json:"path"`
	NewHash string `json:"newHash"`

	// EmptyContent reports whether the effective updated text was empty,
	// so calling layers can decide on warnings.
	EmptyContent bool `json:"emptyContent"`
}

// InsertResult reports the outcome of InsertContent.
type InsertResult struct {
	Path string `json:"path"`
	File string `json:"file"`

	// Line is the 1-based line at which content was inserted.
	Line int `json:"line"`

	// EmptyContent reports whether the effective inserted text was empty.
	EmptyContent bool `json:"emptyContent"`
}

// IndexService is the navigable section forest over a documentation root.
// Both frontends (CLI and tool server) consume exactly this interface, so
// argument validation lives behind it rather than in each frontend.
//
// Implementations must serialize mutations with a single-writer lock;
// concurrent reads observe consistent snapshots and are never exposed to a
// mid-update state.
type IndexService interface {
	// Structure returns the section forest, optionally trimmed to a depth.
	Structure(ctx context.Context, opts StructureOptions) ([]*Section, error)

	// Section returns content and metadata for one section path.
	// Returns ENOTFOUND with ranked suggestions when the path is absent.
	Section(ctx context.Context, path string) (*SectionDetail, error)

	// SectionsAtLevel returns all sections at the given hierarchy level in
	// pre-order document traversal across the whole forest. The level must
	// be >= 0, else EINVALID.
	SectionsAtLevel(ctx context.Context, level int) ([]*Section, error)

	// Search returns ranked matches for a query.
	Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error)

	// Elements returns parsed elements, optionally filtered.
	Elements(ctx context.Context, opts ElementOptions) ([]Element, error)

	// Metadata describes the current snapshot.
	Metadata(ctx context.Context) (*Metadata, error)

	// Validate checks document integrity across the whole index.
	Validate(ctx context.Context) (*ValidationReport, error)

	// UpdateSection replaces a section's own body text.
	UpdateSection(ctx context.Context, path, content string, opts UpdateOptions) (*UpdateResult, error)

	// InsertContent inserts content relative to a section.
	InsertContent(ctx context.Context, path, content string, pos Position) (*InsertResult, error)

	// Rebuild re-indexes the whole documentation root, e.g. after files
	// were added or removed outside the tool's own mutation paths.
	Rebuild(ctx context.Context) error
}
