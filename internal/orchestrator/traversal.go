package orchestrator

import (
	"context"

	"servicegraph/internal/services"
)

// lifecycle is what a traversal needs to know about nodes and what it does to
// them. The live controller starts and stops services; plans only record.
type lifecycle struct {
	running func(*services.ServiceNode) bool
	apply   func(context.Context, *services.ServiceNode) error
}

// frame is one level of an explicit traversal stack: a node and the position
// in its list of neighbours still to visit.
type frame struct {
	node  *services.ServiceNode
	edges []*services.ServiceNode
	next  int
}

// walkStart applies lc to root after all of root's requirements, depth first
// in declared order. A node that is running when it is reached is skipped
// together with its requirements.
func (c *Controller) walkStart(ctx context.Context, root *services.ServiceNode, lc lifecycle) error {
	if lc.running(root) {
		return nil
	}

	stack := []frame{{node: root, edges: c.graph.Requirements(root)}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < len(top.edges) {
			req := top.edges[top.next]
			top.next++
			if !lc.running(req) {
				stack = append(stack, frame{node: req, edges: c.graph.Requirements(req)})
			}
			continue
		}

		node := top.node
		stack = stack[:len(stack)-1]
		if err := lc.apply(ctx, node); err != nil {
			return err
		}
	}
	return nil
}

// walkStop applies lc to root after every dependent that is running at the
// moment it is considered, recursively. Dependents are visited in the order
// their edges were declared. root itself is always applied.
func (c *Controller) walkStop(ctx context.Context, root *services.ServiceNode, lc lifecycle) error {
	stack := []frame{{node: root, edges: c.graph.Dependents(root)}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < len(top.edges) {
			dep := top.edges[top.next]
			top.next++
			// Checked here and not when the list was taken: an earlier
			// sibling's cascade may already have stopped dep.
			if lc.running(dep) {
				stack = append(stack, frame{node: dep, edges: c.graph.Dependents(dep)})
			}
			continue
		}

		node := top.node
		stack = stack[:len(stack)-1]
		if err := lc.apply(ctx, node); err != nil {
			return err
		}
	}
	return nil
}
