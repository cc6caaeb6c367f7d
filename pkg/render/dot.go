// Package render emits Graphviz DOT text for diagram and attack-tree
// views. It is a pure consumer: given nodes, edges, and boundaries it
// produces text, with no feedback into the model.
package render

import (
	"fmt"
	"strings"

	"github.com/dd0wney/cluso-threatmap/pkg/dfd"
	"github.com/dd0wney/cluso-threatmap/pkg/model"
	"github.com/dd0wney/cluso-threatmap/pkg/threats"
)

// shapeFor maps element variants to their conventional DFD shapes.
func shapeFor(t dfd.ElementType) string {
	switch t {
	case dfd.TypeProcess:
		return "circle"
	case dfd.TypeDatastore:
		return "cylinder"
	default:
		return "box"
	}
}

// DFDDot renders the box-and-arrow diagram. Boundaries become cluster
// subgraphs, nested through their parent links; elements inside a
// boundary are declared inside its cluster, everything else at top level.
func DFDDot(d model.Diagram) string {
	var b strings.Builder
	fmt.Fprintf(&b, "digraph %s {\n", quote(d.Name))
	b.WriteString("\trankdir=LR;\n")

	// Innermost boundary wins: an element is declared in the last
	// boundary that lists it, so overlapping groups stay renderable.
	owner := make(map[string]*dfd.Boundary)
	for _, bd := range d.Boundaries {
		for _, m := range bd.Members {
			owner[m] = bd
		}
	}

	known := make(map[string]bool, len(d.Boundaries))
	for _, bd := range d.Boundaries {
		known[bd.Name] = true
	}

	// A parent that resolves to no registered boundary is treated as
	// top-level, otherwise the cluster and its members would never render.
	children := make(map[string][]*dfd.Boundary)
	var topLevel []*dfd.Boundary
	for _, bd := range d.Boundaries {
		if bd.Parent == "" || !known[bd.Parent] {
			topLevel = append(topLevel, bd)
		} else {
			children[bd.Parent] = append(children[bd.Parent], bd)
		}
	}

	var writeBoundary func(bd *dfd.Boundary, depth int)
	writeBoundary = func(bd *dfd.Boundary, depth int) {
		indent := strings.Repeat("\t", depth)
		fmt.Fprintf(&b, "%ssubgraph \"cluster_%s\" {\n", indent, escape(bd.Name))
		fmt.Fprintf(&b, "%s\tlabel=%s;\n", indent, quote(bd.Name))
		fmt.Fprintf(&b, "%s\tstyle=dashed;\n", indent)
		for _, e := range d.Elements {
			if owner[e.ID] == bd {
				fmt.Fprintf(&b, "%s\t%s [label=%s, shape=%s];\n",
					indent, quote(e.ID), quote(e.Name), shapeFor(e.Type))
			}
		}
		for _, child := range children[bd.Name] {
			writeBoundary(child, depth+1)
		}
		fmt.Fprintf(&b, "%s}\n", indent)
	}

	for _, bd := range topLevel {
		writeBoundary(bd, 1)
	}

	for _, e := range d.Elements {
		if owner[e.ID] == nil {
			fmt.Fprintf(&b, "\t%s [label=%s, shape=%s];\n",
				quote(e.ID), quote(e.Name), shapeFor(e.Type))
		}
	}

	for _, f := range d.Flows {
		dir := "forward"
		if f.Bidirectional {
			dir = "both"
		}
		fmt.Fprintf(&b, "\t%s -> %s [label=%s, dir=%s];\n",
			quote(f.FirstNode), quote(f.SecondNode), quote(f.Name), dir)
	}

	b.WriteString("}\n")
	return b.String()
}

// AttackTreeDot renders the attack forest. It walks the flat edge list,
// never the threat links, so cyclic child references terminate.
func AttackTreeDot(forest threats.Forest, all []*threats.Threat) string {
	names := make(map[string]string, len(all))
	for _, t := range all {
		names[t.ID] = t.Name
	}
	label := func(id string) string {
		if name, ok := names[id]; ok {
			return name
		}
		return id
	}

	var b strings.Builder
	b.WriteString("digraph \"attack trees\" {\n")
	for _, t := range all {
		fmt.Fprintf(&b, "\t%s [label=%s, shape=rectangle, style=filled];\n",
			quote(t.ID), quote(t.Name))
	}
	for _, e := range forest.Edges {
		if _, ok := names[e.Child]; !ok {
			// Dangling child: still drawn, by id, so the gap is visible.
			fmt.Fprintf(&b, "\t%s [label=%s, shape=rectangle, style=dotted];\n",
				quote(e.Child), quote(label(e.Child)))
		}
		fmt.Fprintf(&b, "\t%s -> %s [dir=forward];\n", quote(e.Parent), quote(e.Child))
	}
	b.WriteString("}\n")
	return b.String()
}

func escape(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

func quote(s string) string {
	return `"` + escape(s) + `"`
}
