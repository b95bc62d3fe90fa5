// internal/dependency/graph.go
package dependency

import (
	"fmt"
	"slices"
)

// Graph is an ordered set of nodes together with the "requires" edges between
// them. An edge from A to B means A cannot be considered up until B is up.
//
// Nodes and edges are only ever added. Every mutation keeps the edge relation
// acyclic: an edge that would close a cycle is rejected before it is stored, so
// a failed AddEdge leaves the graph exactly as it was.
//
// Graph is *not* thread-safe; callers must synchronise if they write
// concurrently or mutate while traversing.
type Graph[T comparable] struct {
	nodes []T
	index map[T]int

	// edges maps a node to the nodes it requires, in declared order.
	edges map[T][]T

	// dependents is the reverse of edges. Sources are appended in edge
	// declaration order, which is the order cascades visit them in.
	dependents map[T][]T
}

// New returns an empty graph.
func New[T comparable]() *Graph[T] {
	g := &Graph[T]{}
	g.init()
	return g
}

func (g *Graph[T]) init() {
	if g.index == nil {
		g.index = make(map[T]int)
		g.edges = make(map[T][]T)
		g.dependents = make(map[T][]T)
	}
}

// AddNode appends node to the graph and returns it.
//
// The zero value of T (nil for pointer types) is rejected with ErrNilArgument,
// a node that is already present with ErrDuplicate.
func (g *Graph[T]) AddNode(node T) (T, error) {
	g.init()

	var zero T
	if node == zero {
		return zero, fmt.Errorf("cannot add node: %w", ErrNilArgument)
	}
	if _, exists := g.index[node]; exists {
		return zero, fmt.Errorf("node %v: %w", node, ErrDuplicate)
	}

	g.index[node] = len(g.nodes)
	g.nodes = append(g.nodes, node)
	return node, nil
}

// AddEdge declares that from requires to.
func (g *Graph[T]) AddEdge(from, to T) error {
	return g.AddEdges(from, []T{to})
}

// AddEdges declares that from requires every node in to, in the given order.
//
// Edges for a source can be declared once. Declaring them again fails with
// ErrDuplicate instead of merging the lists. Both ends must already be nodes of
// the graph (ErrNotMember). If the new edges would close a cycle a *CycleError
// is returned and nothing is stored.
func (g *Graph[T]) AddEdges(from T, to []T) error {
	g.init()

	var zero T
	if from == zero || to == nil {
		return fmt.Errorf("cannot add edge: %w", ErrNilArgument)
	}
	if !g.Contains(from) {
		return fmt.Errorf("edge source %v: %w", from, ErrNotMember)
	}
	for _, target := range to {
		if target == zero {
			return fmt.Errorf("edge target for %v: %w", from, ErrNilArgument)
		}
		if !g.Contains(target) {
			return fmt.Errorf("edge target %v: %w", target, ErrNotMember)
		}
	}
	if _, declared := g.edges[from]; declared {
		return fmt.Errorf("edges for %v already declared: %w", from, ErrDuplicate)
	}

	targets := slices.Clone(to)
	if path := g.findCycle(from, targets); path != nil {
		return &CycleError[T]{Path: path}
	}

	g.edges[from] = targets
	for _, target := range targets {
		if !slices.Contains(g.dependents[target], from) {
			g.dependents[target] = append(g.dependents[target], from)
		}
	}
	return nil
}

// FindNode returns the first node, in insertion order, for which match returns
// true. ErrNotFound is returned when nothing matches.
func (g *Graph[T]) FindNode(match func(T) bool) (T, error) {
	var zero T
	if match == nil {
		return zero, fmt.Errorf("cannot find node: %w", ErrNilArgument)
	}
	i := slices.IndexFunc(g.nodes, match)
	if i < 0 {
		return zero, ErrNotFound
	}
	return g.nodes[i], nil
}

// Contains reports whether node is part of the graph.
func (g *Graph[T]) Contains(node T) bool {
	_, ok := g.index[node]
	return ok
}

// Len returns the number of nodes.
func (g *Graph[T]) Len() int {
	return len(g.nodes)
}

// Nodes returns a copy of the nodes in insertion order.
func (g *Graph[T]) Nodes() []T {
	return slices.Clone(g.nodes)
}

// HasEdges reports whether edges have been declared for from.
func (g *Graph[T]) HasEdges(from T) bool {
	_, ok := g.edges[from]
	return ok
}

// Requirements returns the nodes that node requires, in declared order.
func (g *Graph[T]) Requirements(node T) []T {
	return slices.Clone(g.edges[node])
}

// Dependents returns the nodes that directly require node, ordered by when
// their edges were declared.
func (g *Graph[T]) Dependents(node T) []T {
	return slices.Clone(g.dependents[node])
}

// findCycle runs a depth-first search from start as if start's requirements
// were pending. It returns the cycle (first and last element equal) or nil.
//
// The graph is acyclic before the insertion, so any new cycle has to pass
// through start and a single search from there is enough.
func (g *Graph[T]) findCycle(start T, pending []T) []T {
	requires := func(n T) []T {
		if n == start {
			return pending
		}
		return g.edges[n]
	}

	type frame struct {
		node T
		next int
	}

	visited := map[T]bool{start: true}
	onPath := map[T]bool{start: true}
	stack := []frame{{node: start}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		reqs := requires(top.node)
		if top.next == len(reqs) {
			delete(onPath, top.node)
			stack = stack[:len(stack)-1]
			continue
		}

		target := reqs[top.next]
		top.next++

		if onPath[target] {
			path := make([]T, 0, len(stack)+1)
			for _, f := range stack {
				path = append(path, f.node)
			}
			first := slices.Index(path, target)
			return append(path[first:], target)
		}
		if visited[target] {
			continue
		}

		visited[target] = true
		onPath[target] = true
		stack = append(stack, frame{node: target})
	}

	return nil
}
