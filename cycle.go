package weft

import (
	"fmt"
	"strings"
)

// CycleValidator reports illegal dependency cycles: cycles composed purely
// of edges whose request kind does not defer evaluation. Deferred requests
// (provider, lazy, provider-of-lazy) delay instantiation past construction
// time, so cycles containing one are legal and excluded up front.
type CycleValidator struct{}

// Name implements Validator.
func (*CycleValidator) Name() string { return "cycle" }

// Validate finds each distinct illegal cycle exactly once. Strongly
// connected components over the non-deferring dependency subgraph narrow
// the search; endpoint pairs already covered by a reported cycle are
// skipped, so parallel edges and overlapping traversals do not produce
// duplicate reports.
func (v *CycleValidator) Validate(g *Graph, r *Reporter) {
	net := g.Network()

	sccs := stronglyConnected(net.NodeCount(), func(id NodeID) []NodeID {
		return net.Successors(id, eagerDependencyEdges)
	})

	visited := make(map[endpointPair]bool)
	for _, scc := range sccs {
		if !sccHasCycle(net, scc) {
			continue
		}
		inSCC := make(map[NodeID]bool, len(scc))
		for _, id := range scc {
			inSCC[id] = true
		}
		for _, source := range scc {
			for _, eid := range net.Out(source) {
				edge := net.Edge(eid)
				if !eagerDependencyEdges(edge) || !inSCC[edge.Target] {
					continue
				}
				pair := endpointPair{source: source, target: edge.Target}
				if visited[pair] {
					continue
				}
				visited[pair] = true

				// A path from the target back to the source closes a cycle.
				back := net.ShortestPath(pair.target, pair.source, eagerDependencyEdges)
				if back == nil {
					continue
				}
				cyc := cycleFromPath(back)
				for _, p := range cyc.pairs {
					visited[p] = true
				}
				v.reportCycle(cyc, g, r)
			}
		}
	}
}

// reportCycle attaches the error as close to an entry point as possible.
// For reachable graphs: shortest path from the component containing the
// cycle to some cycle node, trimmed to the first node inside the cycle,
// reported on the last edge before the cycle, so the trace ends just
// before it. All bindings in one cycle belong to one component, since a
// binding cannot depend on a binding owned by a descendant. For full
// graphs there is no entry-point context; the report lands on the
// component node.
func (v *CycleValidator) reportCycle(cyc cycle, g *Graph, r *Reporter) {
	net := g.Network()
	someNode := cyc.nodes()[0]
	componentNode, _ := net.ComponentNode(net.Node(someNode).Path)

	if g.IsFull() {
		r.ReportNode(SeverityError, DiagCycle, componentNode,
			"found a dependency cycle:\n%s", describeCycle(cyc, net))
		return
	}

	path := net.ShortestPath(componentNode, someNode, dependencyEdgesOnly)
	if path == nil {
		// The cycle is reached only through a descendant's entry points.
		for _, id := range net.ComponentNodes() {
			if path = net.ShortestPath(id, someNode, dependencyEdgesOnly); path != nil {
				break
			}
		}
	}
	if len(path) < 2 {
		r.ReportNode(SeverityError, DiagCycle, componentNode,
			"found a dependency cycle:\n%s", describeCycle(cyc, net))
		return
	}

	sub := subpathToCycle(path, cyc)
	cycleStart := sub[len(sub)-1]
	previous := sub[len(sub)-2]
	edges := net.EdgesConnecting(previous, cycleStart, dependencyEdgesOnly)
	r.ReportEdge(SeverityError, DiagCycle, edges[0],
		"found a dependency cycle:\n%s", describeCycle(cyc.shift(cycleStart), net))
}

// subpathToCycle truncates path at the first node that is inside the cycle.
func subpathToCycle(path []NodeID, cyc cycle) []NodeID {
	for i, node := range path {
		if cyc.contains(node) {
			return path[:i+1]
		}
	}
	return path
}

func describeCycle(cyc cycle, net *Network) string {
	lines := make([]string, 0, len(cyc.pairs))
	for _, pair := range cyc.pairs {
		edge := eagerEdgeConnecting(net, pair)
		lines = append(lines, fmt.Sprintf("    %s requests %s (%s)",
			describeNode(net, pair.source), describeNode(net, pair.target), edge.Request.Kind))
	}
	return strings.Join(lines, "\n")
}

func describeNode(net *Network, id NodeID) string {
	node := net.Node(id)
	switch node.Kind {
	case NodeBinding:
		return fmt.Sprintf("%s [%s]", node.Key, node.Binding.DeclaredIn)
	case NodeMissingBinding:
		return fmt.Sprintf("%s [missing]", node.Key)
	case NodeComponent:
		return node.Path.String()
	}
	return "unknown"
}

func eagerEdgeConnecting(net *Network, pair endpointPair) *Edge {
	edges := net.EdgesConnecting(pair.source, pair.target, eagerDependencyEdges)
	return net.Edge(edges[0])
}

func eagerDependencyEdges(e *Edge) bool {
	return e.Kind == EdgeDependency && !e.Request.Kind.DefersEvaluation()
}

func sccHasCycle(net *Network, scc []NodeID) bool {
	if len(scc) > 1 {
		return true
	}
	// A single node cycles only through a self edge.
	only := scc[0]
	for _, eid := range net.Out(only) {
		edge := net.Edge(eid)
		if eagerDependencyEdges(edge) && edge.Target == only {
			return true
		}
	}
	return false
}

// endpointPair is one directed edge of a cycle, by its endpoints. Parallel
// edges collapse onto one pair so each distinct cycle is reported once.
type endpointPair struct {
	source NodeID
	target NodeID
}

// cycle is an ordered set of endpoint pairs: the target of each pair is
// the source of the next, and the target of the last is the source of the
// first.
type cycle struct {
	pairs []endpointPair
}

// cycleFromPath builds a cycle from a nonempty node path, assuming an edge
// between each consecutive pair and from the last node back to the first.
func cycleFromPath(nodes []NodeID) cycle {
	pairs := make([]endpointPair, 0, len(nodes))
	pairs = append(pairs, endpointPair{source: nodes[len(nodes)-1], target: nodes[0]})
	for i := 0; i+1 < len(nodes); i++ {
		pairs = append(pairs, endpointPair{source: nodes[i], target: nodes[i+1]})
	}
	return cycle{pairs: pairs}
}

func (c cycle) nodes() []NodeID {
	var ids []NodeID
	for _, pair := range c.pairs {
		ids = appendUnique(ids, pair.source)
		ids = appendUnique(ids, pair.target)
	}
	return ids
}

func (c cycle) contains(id NodeID) bool {
	for _, pair := range c.pairs {
		if pair.source == id || pair.target == id {
			return true
		}
	}
	return false
}

// shift rotates the cycle so its first pair starts at the given node.
func (c cycle) shift(start NodeID) cycle {
	for i, pair := range c.pairs {
		if pair.source == start {
			if i == 0 {
				return c
			}
			shifted := make([]endpointPair, 0, len(c.pairs))
			shifted = append(shifted, c.pairs[i:]...)
			shifted = append(shifted, c.pairs[:i]...)
			return cycle{pairs: shifted}
		}
	}
	return c
}
