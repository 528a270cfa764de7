package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/awray/docmap"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Root   string
	Format string
	Index  docmap.IndexService
	Asker  docmap.Asker
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DocsRoot string `help:"Root directory containing documentation files" env:"DOCMAP_ROOT" default:"." type:"path"`
	Format   string `help:"Output format" enum:"text,json,yaml" default:"text"`
	Verbose  bool   `short:"v" help:"Log operations to stderr"`

	Structure       StructureCmd       `cmd:"" help:"Show the hierarchical section structure"`
	Section         SectionCmd         `cmd:"" help:"Show one section's content and metadata"`
	Search          SearchCmd          `cmd:"" help:"Search section titles and bodies"`
	Elements        ElementsCmd        `cmd:"" help:"List parsed document elements"`
	Metadata        MetadataCmd        `cmd:"" help:"Show index metadata"`
	Validate        ValidateCmd        `cmd:"" help:"Check documentation integrity"`
	Update          UpdateCmd          `cmd:"" help:"Replace a section's content"`
	Insert          InsertCmd          `cmd:"" help:"Insert content relative to a section"`
	SectionsAtLevel SectionsAtLevelCmd `cmd:"" name:"sections-at-level" help:"List all sections at one hierarchy level"`
	Ask             AskCmd             `cmd:"" help:"Ask a question about the documentation (experimental)"`
	Serve           ServeCmd           `cmd:"" help:"Serve the index as an MCP tool server over stdio"`
}

// StructureCmd is the "structure" subcommand.
type StructureCmd struct {
	MaxDepth *int `help:"Limit the tree to this many levels below each root"`
}

// SectionCmd is the "section" subcommand.
type SectionCmd struct {
	Path string `arg:"" help:"Section path, e.g. guide:installation.linux"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query      string `arg:"" help:"Text to search for"`
	Scope      string `help:"Restrict the search to one section's subtree"`
	MaxResults int    `default:"20" help:"Maximum number of results"`
}

// ElementsCmd is the "elements" subcommand.
type ElementsCmd struct {
	Kind         string `help:"Element kind filter (heading, paragraph, code, table, diagram, include, list)"`
	Section      string `help:"Restrict to elements within this section"`
	Recursive    bool   `default:"true" negatable:"" help:"Include elements of descendant sections"`
	ContentLimit *int   `help:"Truncate element content to this many characters"`
}

// MetadataCmd is the "metadata" subcommand.
type MetadataCmd struct{}

// ValidateCmd is the "validate" subcommand.
type ValidateCmd struct{}

// UpdateCmd is the "update" subcommand.
type UpdateCmd struct {
	Path          string `arg:"" help:"Section path to update"`
	Content       string `arg:"" optional:"" help:"New content (reads stdin when omitted)"`
	PreserveTitle bool   `default:"true" negatable:"" help:"Keep the existing heading line"`
	ExpectedHash  string `help:"Content hash the section must still have for the update to apply"`
}

// InsertCmd is the "insert" subcommand.
type InsertCmd struct {
	Path     string `arg:"" help:"Anchor section path"`
	Content  string `arg:"" optional:"" help:"Content to insert (reads stdin when omitted)"`
	Position string `default:"after" enum:"before,after,append" help:"Where to insert relative to the anchor"`
}

// SectionsAtLevelCmd is the "sections-at-level" subcommand.
type SectionsAtLevelCmd struct {
	Level int `arg:"" help:"Hierarchy level; 0 is the document title level"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question to ask about the documentation"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Watch bool `default:"true" negatable:"" help:"Rebuild the index when files change on disk"`
}
