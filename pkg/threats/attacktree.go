package threats

// Edge is a single parent -> child link in the attack forest.
type Edge struct {
	Parent string
	Child  string
}

// Forest is the attack-tree view over a threat catalog: a plain edge list
// plus the roots (threats never referenced as anyone's child). Child links
// may form cycles, so the forest is deliberately flat: consumers walk the
// edge list instead of recursing on threat pointers.
type Forest struct {
	Roots []string
	Edges []Edge
}

// AttackForest derives the attack-tree structure from child-threat links.
// Edges appear in threat declaration order, then child declaration order.
// Dangling child references still produce edges; lint reports them.
func AttackForest(all []*Threat) Forest {
	childOf := make(map[string]bool)
	var edges []Edge
	for _, t := range all {
		for _, child := range t.ChildThreats {
			edges = append(edges, Edge{Parent: t.ID, Child: child})
			childOf[child] = true
		}
	}

	var roots []string
	for _, t := range all {
		if !childOf[t.ID] {
			roots = append(roots, t.ID)
		}
	}
	return Forest{Roots: roots, Edges: edges}
}

// Subtree returns every threat id reachable from root through child links,
// root included, in depth-first order. The visited set guards against
// cycles and self-children.
func (f Forest) Subtree(root string) []string {
	adjacency := make(map[string][]string)
	for _, e := range f.Edges {
		adjacency[e.Parent] = append(adjacency[e.Parent], e.Child)
	}

	visited := make(map[string]bool)
	var order []string
	stack := []string{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[id] {
			continue
		}
		visited[id] = true
		order = append(order, id)
		children := adjacency[id]
		for i := len(children) - 1; i >= 0; i-- {
			if !visited[children[i]] {
				stack = append(stack, children[i])
			}
		}
	}
	return order
}

// Cycles finds all cycles in the child-threat links using DFS with
// three-color marking: white for unvisited, gray for threats on the
// current path, black for finished. A gray child is a back edge and marks
// a cycle; a self-child is a one-element cycle.
func Cycles(all []*Threat) [][]string {
	const (
		white = 0
		gray  = 1
		black = 2
	)

	adjacency := make(map[string][]string, len(all))
	for _, t := range all {
		adjacency[t.ID] = t.ChildThreats
	}

	color := make(map[string]int, len(all))
	parent := make(map[string]string)
	var cycles [][]string

	var visit func(id string)
	visit = func(id string) {
		color[id] = gray
		for _, child := range adjacency[id] {
			if child == id {
				cycles = append(cycles, []string{id})
				continue
			}
			if _, ok := adjacency[child]; !ok {
				// Dangling reference, not a threat. Lint reports it.
				continue
			}
			switch color[child] {
			case white:
				parent[child] = id
				visit(child)
			case gray:
				cycles = append(cycles, extractCycle(child, id, parent))
			}
		}
		color[id] = black
	}

	for _, t := range all {
		if color[t.ID] == white {
			visit(t.ID)
		}
	}
	return cycles
}

// extractCycle reconstructs the cycle from parent pointers given a back
// edge from end to start.
func extractCycle(start, end string, parent map[string]string) []string {
	cycle := []string{start}
	current := end
	for current != start {
		cycle = append(cycle, current)
		p, ok := parent[current]
		if !ok {
			break
		}
		current = p
	}
	return cycle
}
