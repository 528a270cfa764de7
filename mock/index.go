package mock

import (
	"context"

	"github.com/awray/docmap"
)

var _ docmap.IndexService = (*IndexService)(nil)

// IndexService is a mock implementation of docmap.IndexService.
type IndexService struct {
	StructureFn       func(ctx context.Context, opts docmap.StructureOptions) ([]*docmap.Section, error)
	SectionFn         func(ctx context.Context, path string) (*docmap.SectionDetail, error)
	SectionsAtLevelFn func(ctx context.Context, level int) ([]*docmap.Section, error)
	SearchFn          func(ctx context.Context, query string, opts docmap.SearchOptions) ([]docmap.SearchResult, error)
	ElementsFn        func(ctx context.Context, opts docmap.ElementOptions) ([]docmap.Element, error)
	MetadataFn        func(ctx context.Context) (*docmap.Metadata, error)
	ValidateFn        func(ctx context.Context) (*docmap.ValidationReport, error)
	UpdateSectionFn   func(ctx context.Context, path, content string, opts docmap.UpdateOptions) (*docmap.UpdateResult, error)
	InsertContentFn   func(ctx context.Context, path, content string, pos docmap.Position) (*docmap.InsertResult, error)
	RebuildFn         func(ctx context.Context) error
}

func (s *IndexService) Structure(ctx context.Context, opts docmap.StructureOptions) ([]*docmap.Section, error) {
	return s.StructureFn(ctx, opts)
}

func (s *IndexService) Section(ctx context.Context, path string) (*docmap.SectionDetail, error) {
	return s.SectionFn(ctx, path)
}

func (s *IndexService) SectionsAtLevel(ctx context.Context, level int) ([]*docmap.Section, error) {
	return s.SectionsAtLevelFn(ctx, level)
}

func (s *IndexService) Search(ctx context.Context, query string, opts docmap.SearchOptions) ([]docmap.SearchResult, error) {
	return s.SearchFn(ctx, query, opts)
}

func (s *IndexService) Elements(ctx context.Context, opts docmap.ElementOptions) ([]docmap.Element, error) {
	return s.ElementsFn(ctx, opts)
}

func (s *IndexService) Metadata(ctx context.Context) (*docmap.Metadata, error) {
	return s.MetadataFn(ctx)
}

func (s *IndexService) Validate(ctx context.Context) (*docmap.ValidationReport, error) {
	return s.ValidateFn(ctx)
}

func (s *IndexService) UpdateSection(ctx context.Context, path, content string, opts docmap.UpdateOptions) (*docmap.UpdateResult, error) {
	return s.UpdateSectionFn(ctx, path, content, opts)
}

func (s *IndexService) InsertContent(ctx context.Context, path, content string, pos docmap.Position) (*docmap.InsertResult, error) {
	return s.InsertContentFn(ctx, path, content, pos)
}

func (s *IndexService) Rebuild(ctx context.Context) error {
	return s.RebuildFn(ctx)
}
