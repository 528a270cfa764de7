// Package docmap provides structured, hierarchical access to a tree of
// AsciiDoc and Markdown documentation files for CLI and LLM-tool consumers.
// It parses heterogeneous markup into a unified section model, maintains
// addressable paths into that hierarchy, supports safe content mutation,
// and validates document integrity.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., gemini/, fsnotify/, mcp/) or their
// domain concern (parse/, index/).
package docmap

// Version is the release version, set at build time via -ldflags.
var Version = "dev"
