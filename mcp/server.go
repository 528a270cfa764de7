// Package mcp exposes the index over the Model Context Protocol so LLM
// tools can navigate and edit documentation through typed tool calls
// instead of raw file reads.
package mcp

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/awray/docmap"
)

// Server wraps an IndexService and an optional Asker as an MCP tool
// server speaking over stdio.
type Server struct {
	svc   docmap.IndexService
	asker docmap.Asker
	mcp   *server.MCPServer
}

// NewServer creates a new Server. The asker may be nil, in which case the
// ask tool is not registered.
func NewServer(svc docmap.IndexService, asker docmap.Asker) *Server {
	s := &Server{
		svc:   svc,
		asker: asker,
		mcp:   server.NewMCPServer("docmap", docmap.Version, server.WithToolCapabilities(false)),
	}
	s.register()
	return s
}

// ServeStdio serves tool calls over stdin/stdout until the client
// disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) register() {
	s.mcp.AddTool(mcp.NewTool("get_structure",
		mcp.WithDescription("Get the hierarchical section structure of the documentation."),
		mcp.WithNumber("max_depth", mcp.Description("Limit the tree to this many levels below each root. Omit for the full tree.")),
	), s.getStructure)

	s.mcp.AddTool(mcp.NewTool("get_section",
		mcp.WithDescription("Get the content and metadata of one section by its path."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Section path, e.g. guide:installation.linux")),
	), s.getSection)

	s.mcp.AddTool(mcp.NewTool("search_content",
		mcp.WithDescription("Search section titles and bodies for a query string."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Text to search for.")),
		mcp.WithString("scope", mcp.Description("Restrict the search to one section's subtree.")),
		mcp.WithNumber("max_results", mcp.Description("Maximum number of results (default 20).")),
	), s.searchContent)

	s.mcp.AddTool(mcp.NewTool("get_elements",
		mcp.WithDescription("List parsed document elements, optionally filtered by kind or section."),
		mcp.WithString("kind", mcp.Description("Element kind: "+docmap.ElementKindNames()+".")),
		mcp.WithString("section", mcp.Description("Restrict to elements within this section.")),
		mcp.WithBoolean("recursive", mcp.Description("Include elements of descendant sections (default true).")),
		mcp.WithNumber("content_limit", mcp.Description("Truncate element content to this many characters.")),
	), s.getElements)

	s.mcp.AddTool(mcp.NewTool("get_metadata",
		mcp.WithDescription("Get summary metadata about the documentation index."),
	), s.getMetadata)

	s.mcp.AddTool(mcp.NewTool("validate_structure",
		mcp.WithDescription("Check documentation integrity: broken includes, unclosed blocks, orphans, cycles, duplicate paths."),
	), s.validateStructure)

	s.mcp.AddTool(mcp.NewTool("update_section",
		mcp.WithDescription("Replace a section's content. Pass expected_hash for optimistic locking."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Section path to update.")),
		mcp.WithString("content", mcp.Required(), mcp.Description("New content for the section.")),
		mcp.WithBoolean("preserve_title", mcp.Description("Keep the existing heading line (default true).")),
		mcp.WithString("expected_hash", mcp.Description("Content hash the section must still have for the update to apply.")),
	), s.updateSection)

	s.mcp.AddTool(mcp.NewTool("insert_content",
		mcp.WithDescription("Insert content before a section, after it (past its subtree), or appended to its end."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Anchor section path.")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Content to insert.")),
		mcp.WithString("position", mcp.Required(), mcp.Description("One of: before, after, append.")),
	), s.insertContent)

	s.mcp.AddTool(mcp.NewTool("get_sections_at_level",
		mcp.WithDescription("List all sections at one hierarchy level in document order."),
		mcp.WithNumber("level", mcp.Required(), mcp.Description("Hierarchy level; 0 is the document title level.")),
	), s.getSectionsAtLevel)

	if s.asker != nil {
		s.mcp.AddTool(mcp.NewTool("ask_documentation",
			mcp.WithDescription("Answer a natural language question from the documentation (experimental)."),
			mcp.WithString("question", mcp.Required(), mcp.Description("The question to answer.")),
		), s.askDocumentation)
	}
}

func (s *Server) getStructure(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	maxDepth, ok := optionalInt(req, "max_depth")
	if !ok {
		return mcp.NewToolResultError("max_depth must be a number"), nil
	}
	roots, err := s.svc.Structure(ctx, docmap.StructureOptions{MaxDepth: maxDepth})
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(map[string]any{"structure": roots})
}

func (s *Server) getSection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	detail, err := s.svc.Section(ctx, path)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(detail)
}

func (s *Server) searchContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	opts := docmap.SearchOptions{
		Scope:      req.GetString("scope", ""),
		MaxResults: req.GetInt("max_results", docmap.DefaultMaxResults),
	}
	results, err := s.svc.Search(ctx, query, opts)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(map[string]any{"results": results, "total": len(results)})
}

func (s *Server) getElements(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit, ok := optionalInt(req, "content_limit")
	if !ok {
		return mcp.NewToolResultError("content_limit must be a number"), nil
	}
	opts := docmap.ElementOptions{
		Kind:         req.GetString("kind", ""),
		Section:      req.GetString("section", ""),
		Recursive:    req.GetBool("recursive", true),
		ContentLimit: limit,
	}
	elements, err := s.svc.Elements(ctx, opts)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(map[string]any{"elements": elements, "total": len(elements)})
}

func (s *Server) getMetadata(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	meta, err := s.svc.Metadata(ctx)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(meta)
}

func (s *Server) validateStructure(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := s.svc.Validate(ctx)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(report)
}

func (s *Server) updateSection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	opts := docmap.UpdateOptions{
		PreserveTitle: req.GetBool("preserve_title", true),
		ExpectedHash:  req.GetString("expected_hash", ""),
	}
	result, err := s.svc.UpdateSection(ctx, path, content, opts)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(result)
}

func (s *Server) insertContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	position, err := req.RequireString("position")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := s.svc.InsertContent(ctx, path, content, docmap.Position(position))
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(result)
}

func (s *Server) getSectionsAtLevel(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	level, err := req.RequireInt("level")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sections, err := s.svc.SectionsAtLevel(ctx, level)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(map[string]any{"sections": sections, "total": len(sections)})
}

func (s *Server) askDocumentation(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := req.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	answer, err := s.asker.Ask(ctx, question)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(answer)
}

// toolError maps a domain error to a structured tool error. Suggestions
// attached to not-found errors are surfaced so the caller can self-correct.
func toolError(err error) *mcp.CallToolResult {
	msg := docmap.ErrorMessage(err)
	if suggestions := docmap.ErrorSuggestions(err); len(suggestions) > 0 {
		msg += " Did you mean: " + strings.Join(suggestions, ", ")
	}
	return mcp.NewToolResultError(msg)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}

// optionalInt reads a numeric argument that is allowed to be absent. The
// second return is false when the argument is present but not a number.
func optionalInt(req mcp.CallToolRequest, name string) (*int, bool) {
	args := req.GetArguments()
	v, ok := args[name]
	if !ok || v == nil {
		return nil, true
	}
	f, ok := v.(float64)
	if !ok {
		return nil, false
	}
	n := int(f)
	return &n, true
}
