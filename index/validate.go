package index

import (
	"context"
	"sort"
	"strings"

	"github.com/awray/docmap"
)

// Validate checks document integrity across the whole index. Unresolved
// includes are errors; unclosed blocks, duplicate paths, orphaned files,
// and circular include groups are warnings. A report is valid iff it has
// no errors.
func (s *Service) Validate(ctx context.Context) (*docmap.ValidationReport, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}

	report := &docmap.ValidationReport{
		Errors:   []docmap.Diagnostic{},
		Warnings: []docmap.Diagnostic{},
	}
	report.Errors = append(report.Errors, snap.unresolved...)

	for _, file := range snap.files {
		report.Warnings = append(report.Warnings, snap.entries[file].doc.Warnings...)
	}
	report.Warnings = append(report.Warnings, snap.duplicates...)

	graph := newIncludeGraph(snap)
	cycles := graph.cycles()
	inCycle := map[string]bool{}
	for _, cycle := range cycles {
		for _, file := range cycle {
			inCycle[file] = true
		}
	}

	// A circular include group that no outside file references is reported
	// as one circular_include warning naming the full cycle, distinct from
	// plain orphans.
	for _, cycle := range cycles {
		if graph.referencedFromOutside(cycle) {
			continue
		}
		report.Warnings = append(report.Warnings, docmap.Diagnostic{
			Type:    docmap.DiagCircularInclude,
			File:    cycle[0],
			Cycle:   cycle,
			Message: "circular include chain: " + strings.Join(cycle, " -> "),
		})
	}

	// A file is orphaned when no include edge targets it and it has no
	// document-level title heading. Cycle members are classified above.
	for _, file := range snap.files {
		if inCycle[file] || graph.incoming[file] > 0 {
			continue
		}
		if hasRootTitle(snap.entries[file]) {
			continue
		}
		report.Warnings = append(report.Warnings, docmap.Diagnostic{
			Type:    docmap.DiagOrphanedFile,
			File:    file,
			Message: "file is not included anywhere and has no document title",
		})
	}

	report.Valid = len(report.Errors) == 0
	return report, nil
}

// hasRootTitle reports whether a file declares a document-level (level 0)
// heading recognized as a root title.
func hasRootTitle(entry *fileEntry) bool {
	for _, root := range entry.roots {
		if root.Level == 0 {
			return true
		}
	}
	return false
}

// includeGraph is the directed file-level include graph: an arena of file
// nodes with an adjacency list, used for orphan and cycle classification.
type includeGraph struct {
	nodes    []string
	index    map[string]int
	adjacent map[string][]string
	incoming map[string]int
}

func newIncludeGraph(snap *snapshot) *includeGraph {
	g := &includeGraph{
		index:    make(map[string]int, len(snap.files)),
		adjacent: make(map[string][]string),
		incoming: make(map[string]int),
	}
	for i, file := range snap.files {
		g.nodes = append(g.nodes, file)
		g.index[file] = i
	}
	for _, inc := range snap.includes {
		// Only edges between indexed files participate in cycle and
		// orphan classification.
		if _, ok := g.index[inc.File]; !ok {
			continue
		}
		if _, ok := g.index[inc.Target]; !ok {
			continue
		}
		g.adjacent[inc.File] = append(g.adjacent[inc.File], inc.Target)
		g.incoming[inc.Target]++
	}
	return g
}

// referencedFromOutside reports whether any include edge from a file
// outside the group targets a member of the group.
func (g *includeGraph) referencedFromOutside(group []string) bool {
	members := map[string]bool{}
	for _, file := range group {
		members[file] = true
	}
	for _, from := range g.nodes {
		if members[from] {
			continue
		}
		for _, to := range g.adjacent[from] {
			if members[to] {
				return true
			}
		}
	}
	return false
}

// cycles returns the strongly connected components with at least two
// members (or a self-include), each ordered along its include edges. DFS
// uses explicit work stacks so adversarial include graphs cannot overflow
// the call stack.
func (g *includeGraph) cycles() [][]string {
	// Kosaraju: first pass computes finish order.
	visited := make([]bool, len(g.nodes))
	var order []int
	for start := range g.nodes {
		if visited[start] {
			continue
		}
		type task struct {
			node int
			next int
		}
		stack := []task{{node: start}}
		visited[start] = true
		for len(stack) > 0 {
			t := &stack[len(stack)-1]
			neighbors := g.adjacent[g.nodes[t.node]]
			if t.next < len(neighbors) {
				n := g.index[neighbors[t.next]]
				t.next++
				if !visited[n] {
					visited[n] = true
					stack = append(stack, task{node: n})
				}
				continue
			}
			order = append(order, t.node)
			stack = stack[:len(stack)-1]
		}
	}

	// Second pass over the transposed graph in reverse finish order.
	transposed := make(map[int][]int)
	for _, from := range g.nodes {
		for _, to := range g.adjacent[from] {
			transposed[g.index[to]] = append(transposed[g.index[to]], g.index[from])
		}
	}
	component := make([]int, len(g.nodes))
	for i := range component {
		component[i] = -1
	}
	groups := map[int][]int{}
	current := 0
	for i := len(order) - 1; i >= 0; i-- {
		start := order[i]
		if component[start] != -1 {
			continue
		}
		stack := []int{start}
		component[start] = current
		for len(stack) > 0 {
			node := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			groups[current] = append(groups[current], node)
			for _, n := range transposed[node] {
				if component[n] == -1 {
					component[n] = current
					stack = append(stack, n)
				}
			}
		}
		current++
	}

	var out [][]string
	for _, members := range groups {
		if len(members) < 2 && !g.selfLoop(members[0]) {
			continue
		}
		out = append(out, g.orderAlongEdges(members))
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

func (g *includeGraph) selfLoop(node int) bool {
	file := g.nodes[node]
	for _, to := range g.adjacent[file] {
		if to == file {
			return true
		}
	}
	return false
}

// orderAlongEdges arranges a component's members along its include edges,
// starting from the lexicographically first member, so the reported cycle
// reads as a chain.
func (g *includeGraph) orderAlongEdges(members []int) []string {
	inGroup := map[string]bool{}
	for _, m := range members {
		inGroup[g.nodes[m]] = true
	}
	start := g.nodes[members[0]]
	for _, m := range members[1:] {
		if g.nodes[m] < start {
			start = g.nodes[m]
		}
	}

	ordered := []string{start}
	seen := map[string]bool{start: true}
	node := start
	for len(ordered) < len(members) {
		advanced := false
		for _, to := range g.adjacent[node] {
			if inGroup[to] && !seen[to] {
				ordered = append(ordered, to)
				seen[to] = true
				node = to
				advanced = true
				break
			}
		}
		if !advanced {
			// Branching component; fall back to collecting the rest.
			for _, m := range members {
				if !seen[g.nodes[m]] {
					ordered = append(ordered, g.nodes[m])
					seen[g.nodes[m]] = true
				}
			}
		}
	}
	return ordered
}
