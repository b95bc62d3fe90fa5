// Package dependency provides the directed acyclic graph (DAG) used to model
// service dependencies in servicegraph.
//
// The graph decides the order in which services start and stop. It does not
// know anything about services itself: it is generic over the node type and
// only stores nodes and "requires" edges between them. The orchestrator
// package puts ServiceNodes into it and walks it.
//
// # Core Concepts
//
// Node: any comparable value. Identity is Go equality, so pointer nodes are
// compared by address. The zero value (nil for pointers) is never a valid node.
//
// Edge: a "requires" relation. AddEdge(a, b) means a cannot be considered up
// until b is up. A node's requirements keep the order they were declared in.
//
// # Dependency Rules
//
//  1. No circular dependencies, including self-edges. An edge that would
//     close a cycle is rejected before anything is stored.
//  2. Both ends of an edge must already be nodes of the graph.
//  3. The requirements of a node are declared in one call. A second
//     declaration for the same source is rejected rather than merged.
//  4. Nodes and edges are never removed.
//
// # Usage Example
//
//	g := dependency.New[*services.ServiceNode]()
//	db, _ := g.AddNode(dbNode)
//	api, _ := g.AddNode(apiNode)
//	if err := g.AddEdge(api, db); err != nil {
//	    // dependency.IsCycle(err), dependency.IsNotMember(err), ...
//	}
//
//	g.Requirements(api) // [db]
//	g.Dependents(db)    // [api]
//
// # Thread Safety
//
// Graph is not thread-safe. Build it completely before handing it to a
// controller and do not mutate it while a traversal is running.
package dependency
