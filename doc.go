// Package weft builds and validates compile-time dependency-injection
// graphs.
//
// # Overview
//
// Weft is the resolution core of a dependency-injection graph compiler: a
// front end extracts a declarative specification of components, modules,
// scopes and injection points from source declarations; weft turns that
// specification into a complete, validated object-dependency network; a
// back end generates code from the result. Weft itself constructs no
// instances and performs no reflection.
//
// The pipeline is organized around four concepts:
//
//  1. Spec: the immutable input model of components, modules and bindings
//  2. Network: the shared top-level multigraph of binding, missing-binding
//     and component nodes, stored as an arena with integer handles
//  3. Graph: the validated network plus per-component derived views and
//     accumulated diagnostics
//  4. Validators: passes over the completed graph (cycles, scopes,
//     accessibility) that report findings without mutating it
//
// # Basic Usage
//
// Build a graph from a specification and inspect the result:
//
//	graph, err := weft.BuildGraph(spec, "AppComponent")
//	if err != nil {
//	    // the front end handed over a malformed specification
//	}
//	if graph.HasErrors() {
//	    for _, d := range graph.Diagnostics() {
//	        fmt.Println(d)
//	    }
//	}
//
//	root := graph.Root()
//	node, ok := root.ResolvedBinding(weft.TypeKey("Server"))
//
// # Graph Modes
//
// BuildGraph includes only nodes reachable from the root component's entry
// points. BuildFullGraph includes every binding declared by every included
// module, which validates a module or subcomponent hierarchy without a
// concrete root component:
//
//	graph, err := weft.BuildFullGraph(spec, "NetworkModule")
//
// # Diagnostics
//
// Structural problems never fail fast: missing bindings, duplicates,
// illegal cycles, map-key conflicts and scope violations all accumulate so
// one compilation surfaces every independent error. Each diagnostic
// carries the node or edge it originated at and, for reachable graphs, an
// ordered dependency trace from the nearest entry point.
//
// # Scoped Bindings
//
// A scoped binding must be owned by a component declaring its scope; the
// graph only validates ownership. The runtime side of the contract is
// Cell, the get-or-initialize cache cell generated components embed for
// each scoped binding: at most one construction per cell, safe under
// concurrent first access, with an explicit three-state model so a
// legitimately zero-valued result is not mistaken for an empty cell.
package weft
