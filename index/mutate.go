package index

import (
	"context"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/awray/docmap"
	"github.com/awray/docmap/parse"
)

// UpdateSection replaces a section's own body text (from the line after its
// heading up to its first child), preserving the blank-line conventions
// around headings. With PreserveTitle false the supplied content replaces
// the heading line too; a heading level change that would re-parent the
// section's children is rejected with EHIERARCHY rather than auto-repaired.
func (s *Service) UpdateSection(ctx context.Context, path, content string, opts docmap.UpdateOptions) (*docmap.UpdateResult, error) {
	if !utf8.ValidString(content) {
		return nil, docmap.Errorf(docmap.EDECODE, "content is not valid UTF-8 text")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.lockedSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	sec, err := snap.section(path)
	if err != nil {
		return nil, err
	}
	entry := snap.entries[sec.File]

	if opts.ExpectedHash != "" && opts.ExpectedHash != sec.ContentHash {
		return nil, docmap.Errorf(docmap.ECONFLICT,
			"content hash mismatch for %s: expected %s, current %s; re-read the section and retry with a fresh hash",
			path, opts.ExpectedHash, sec.ContentHash)
	}

	contentLines := trimTrailingBlank(parse.Lines(content))
	empty := strings.TrimSpace(content) == ""
	bodyStart, bodyEnd := sec.OwnBodyRange()

	var replaceStart int // 1-based first replaced line
	var block []string
	if opts.PreserveTitle {
		replaceStart = bodyStart
		block = bodyBlock(contentLines, bodyEnd < len(entry.lines))
	} else {
		if err := checkHierarchy(sec, entry.doc.Format, content); err != nil {
			return nil, err
		}
		replaceStart = sec.StartLine
		block = contentLines
		if bodyEnd < len(entry.lines) && len(block) > 0 {
			block = append(block, "")
		}
	}

	lines := splice(entry.lines, replaceStart, bodyEnd, block)
	newSnap, err := s.rewrite(snap, entry, lines)
	if err != nil {
		return nil, err
	}
	s.snap = newSnap

	result := &docmap.UpdateResult{Path: path, EmptyContent: empty}
	if updated, ok := newSnap.byPath[path]; ok {
		result.NewHash = updated.ContentHash
	} else if renamed := sectionAtLine(newSnap, sec.File, sec.StartLine); renamed != nil {
		// The title changed, so the path did too.
		result.Path = renamed.Path
		result.NewHash = renamed.ContentHash
	}
	return result, nil
}

// InsertContent inserts content relative to a section. PositionBefore
// places it immediately before the section's heading; PositionAfter and
// PositionAppend place it at the section's EndLine, after all descendant
// sections. Both directions reproduce the same blank-line separator the
// document already uses between sibling sections.
func (s *Service) InsertContent(ctx context.Context, path, content string, pos docmap.Position) (*docmap.InsertResult, error) {
	if !docmap.ValidPosition(string(pos)) {
		return nil, docmap.Errorf(docmap.EINVALID,
			"unknown position %q; valid positions: before, after, append", pos)
	}
	if !utf8.ValidString(content) {
		return nil, docmap.Errorf(docmap.EDECODE, "content is not valid UTF-8 text")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.lockedSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	sec, err := snap.section(path)
	if err != nil {
		return nil, err
	}
	entry := snap.entries[sec.File]

	insertAt := sec.EndLine
	if pos == docmap.PositionBefore {
		insertAt = sec.StartLine
	}

	result := &docmap.InsertResult{Path: path, File: sec.File, Line: insertAt}
	contentLines := trimTrailingBlank(parse.Lines(content))
	if strings.TrimSpace(content) == "" {
		// Accepted, observable, and deliberately not rejected: the policy
		// for empty content belongs to the calling layer.
		result.EmptyContent = true
		return result, nil
	}

	block := contentLines
	if insertAt-2 >= 0 && insertAt-2 < len(entry.lines) && strings.TrimSpace(entry.lines[insertAt-2]) != "" {
		// The separator shifts the content down one line.
		block = append([]string{""}, block...)
		result.Line = insertAt + 1
	}
	if insertAt <= len(entry.lines) {
		block = append(block, "")
	}

	lines := splice(entry.lines, insertAt, insertAt-1, block)
	newSnap, err := s.rewrite(snap, entry, lines)
	if err != nil {
		return nil, err
	}
	s.snap = newSnap
	return result, nil
}

// lockedSnapshot returns the snapshot for a mutation, building it first if
// needed. The caller holds the write lock.
func (s *Service) lockedSnapshot(ctx context.Context) (*snapshot, error) {
	if s.snap != nil {
		return s.snap, nil
	}
	snap, err := s.build(ctx)
	if err != nil {
		return nil, err
	}
	s.snap = snap
	return snap, nil
}

// rewrite writes the modified lines back to the entry's file, re-parses
// just that file, and assembles a fresh snapshot with the replacement
// entry patched in. Paths in other files are never renumbered.
func (s *Service) rewrite(snap *snapshot, entry *fileEntry, lines []string) (*snapshot, error) {
	text := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(entry.path, []byte(text), 0644); err != nil {
		return nil, err
	}

	replacement, err := s.parseFile(entry.path)
	if err != nil {
		return nil, err
	}

	entries := make([]*fileEntry, 0, len(snap.files))
	for _, file := range snap.files {
		if file == entry.path {
			entries = append(entries, replacement)
			continue
		}
		entries = append(entries, &fileEntry{
			path:  snap.entries[file].path,
			stem:  snap.entries[file].stem,
			doc:   snap.entries[file].doc,
			lines: snap.entries[file].lines,
		})
	}
	return s.assemble(entries), nil
}

// splice replaces the 1-based inclusive line range [start, end] with block.
// An empty range (end < start) inserts at start.
func splice(lines []string, start, end int, block []string) []string {
	out := make([]string, 0, len(lines)+len(block))
	out = append(out, lines[:start-1]...)
	out = append(out, block...)
	if end < len(lines) {
		out = append(out, lines[end:]...)
	}
	return out
}

// bodyBlock frames replacement body content with the document's blank-line
// convention: one blank after the heading, one before whatever follows.
func bodyBlock(contentLines []string, followed bool) []string {
	if len(contentLines) == 0 {
		if followed {
			return []string{""}
		}
		return nil
	}
	block := append([]string{""}, contentLines...)
	if followed {
		block = append(block, "")
	}
	return block
}

// trimTrailingBlank drops trailing blank lines so separators are applied
// exactly once regardless of how the caller terminated the content.
func trimTrailingBlank(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// checkHierarchy rejects full-section replacements whose heading level
// would orphan or re-parent the section's existing children.
func checkHierarchy(sec *docmap.Section, format docmap.Format, content string) error {
	if len(sec.Children) == 0 {
		return nil
	}
	doc, err := parse.ForFormat(format).Parse(sec.File, []byte(content))
	if err != nil {
		return err
	}
	for _, e := range doc.Elements {
		if e.Kind != docmap.ElementHeading {
			continue
		}
		if e.Level != sec.Level {
			return docmap.Errorf(docmap.EHIERARCHY,
				"changing the heading level from %d to %d would re-parent %d child sections; restructure explicitly instead",
				sec.Level, e.Level, len(sec.Children))
		}
		return nil
	}
	return docmap.Errorf(docmap.EHIERARCHY,
		"removing the heading would orphan %d child sections; restructure explicitly instead",
		len(sec.Children))
}

// sectionAtLine finds the section whose heading sits at a given line of a
// file, used to report renamed paths after a title change.
func sectionAtLine(snap *snapshot, file string, line int) *docmap.Section {
	entry, ok := snap.entries[file]
	if !ok {
		return nil
	}
	var found *docmap.Section
	for _, root := range entry.roots {
		root.Walk(func(sec *docmap.Section) {
			if sec.StartLine == line {
				found = sec
			}
		})
	}
	return found
}
