package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/awray/docmap"
)

// Ensure LoggingIndexService implements docmap.IndexService.
var _ docmap.IndexService = (*LoggingIndexService)(nil)

// LoggingIndexService wraps an IndexService with operational logging.
type LoggingIndexService struct {
	next   docmap.IndexService
	logger *slog.Logger
}

// NewLoggingIndexService creates a new LoggingIndexService.
func NewLoggingIndexService(next docmap.IndexService, logger *slog.Logger) *LoggingIndexService {
	return &LoggingIndexService{next: next, logger: logger}
}

// Structure delegates to the wrapped service and logs the operation.
func (s *LoggingIndexService) Structure(ctx context.Context, opts docmap.StructureOptions) (roots []*docmap.Section, err error) {
	defer func(begin time.Time) {
		s.logger.Info("structure",
			"roots", len(roots),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Structure(ctx, opts)
}

// Section delegates to the wrapped service and logs the operation.
func (s *LoggingIndexService) Section(ctx context.Context, path string) (detail *docmap.SectionDetail, err error) {
	defer func(begin time.Time) {
		s.logger.Info("section",
			"path", path,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Section(ctx, path)
}

// SectionsAtLevel delegates to the wrapped service and logs the operation.
func (s *LoggingIndexService) SectionsAtLevel(ctx context.Context, level int) (sections []*docmap.Section, err error) {
	defer func(begin time.Time) {
		s.logger.Info("sections at level",
			"level", level,
			"count", len(sections),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SectionsAtLevel(ctx, level)
}

// Search delegates to the wrapped service and logs the operation.
func (s *LoggingIndexService) Search(ctx context.Context, query string, opts docmap.SearchOptions) (results []docmap.SearchResult, err error) {
	defer func(begin time.Time) {
		s.logger.Info("search",
			"query", query,
			"scope", opts.Scope,
			"results", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query, opts)
}

// Elements delegates to the wrapped service and logs the operation.
func (s *LoggingIndexService) Elements(ctx context.Context, opts docmap.ElementOptions) (elements []docmap.Element, err error) {
	defer func(begin time.Time) {
		s.logger.Info("elements",
			"kind", opts.Kind,
			"section", opts.Section,
			"count", len(elements),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Elements(ctx, opts)
}

// Metadata delegates to the wrapped service and logs the operation.
func (s *LoggingIndexService) Metadata(ctx context.Context) (meta *docmap.Metadata, err error) {
	defer func(begin time.Time) {
		s.logger.Info("metadata",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Metadata(ctx)
}

// Validate delegates to the wrapped service and logs the operation.
func (s *LoggingIndexService) Validate(ctx context.Context) (report *docmap.ValidationReport, err error) {
	defer func(begin time.Time) {
		errors, warnings := 0, 0
		if report != nil {
			errors = len(report.Errors)
			warnings = len(report.Warnings)
		}
		s.logger.Info("validate",
			"errors", errors,
			"warnings", warnings,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Validate(ctx)
}

// UpdateSection delegates to the wrapped service and logs the operation.
func (s *LoggingIndexService) UpdateSection(ctx context.Context, path, content string, opts docmap.UpdateOptions) (result *docmap.UpdateResult, err error) {
	defer func(begin time.Time) {
		s.logger.Info("update section",
			"path", path,
			"bytes", len(content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.UpdateSection(ctx, path, content, opts)
}

// InsertContent delegates to the wrapped service and logs the operation.
func (s *LoggingIndexService) InsertContent(ctx context.Context, path, content string, pos docmap.Position) (result *docmap.InsertResult, err error) {
	defer func(begin time.Time) {
		s.logger.Info("insert content",
			"path", path,
			"position", pos,
			"bytes", len(content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.InsertContent(ctx, path, content, pos)
}

// Rebuild delegates to the wrapped service and logs the operation.
func (s *LoggingIndexService) Rebuild(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("rebuild",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Rebuild(ctx)
}
