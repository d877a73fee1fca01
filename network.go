package weft

// NodeID is a stable handle into the network's node arena.
type NodeID int32

// EdgeID is a stable handle into the network's edge arena.
type EdgeID int32

// NoNode marks the absence of a node reference.
const NoNode NodeID = -1

// NoEdge marks the absence of an edge reference.
const NoEdge EdgeID = -1

// NodeKind tags the closed set of node variants.
type NodeKind uint8

const (
	// NodeBinding is a resolved binding owned by one component.
	NodeBinding NodeKind = iota
	// NodeMissingBinding records a key with no resolvable binding.
	NodeMissingBinding
	// NodeComponent represents one component in the hierarchy.
	NodeComponent
)

// Node is one vertex of the binding network. Exactly one variant applies,
// selected by Kind.
type Node struct {
	Kind NodeKind
	// Path is the owning component for bindings and missing bindings, and
	// the component's own path for component nodes.
	Path ComponentPath
	// Key is set for binding and missing-binding nodes.
	Key Key
	// Binding is set only when Kind == NodeBinding.
	Binding *Binding
	// Scopes, Subcomponent and Real describe component nodes.
	Scopes       []string
	Subcomponent bool
	// Real is false for fictional component nodes derived from a module
	// during full-graph validation.
	Real bool
}

// EdgeKind tags the closed set of edge variants.
type EdgeKind uint8

const (
	// EdgeDependency is a dependency request satisfied by the target node.
	EdgeDependency EdgeKind = iota
	// EdgeChildFactory links a parent component node to a child component
	// node declared via a factory method.
	EdgeChildFactory
	// EdgeSubcomponentCreator links a subcomponent-creator binding node to
	// the child component node it creates.
	EdgeSubcomponentCreator
)

// Edge is one directed edge of the binding network.
type Edge struct {
	Kind   EdgeKind
	Source NodeID
	Target NodeID
	// Request is set for dependency edges.
	Request Request
	// EntryPoint marks dependency edges whose source is a component node.
	EntryPoint bool
	// FactoryMethod names the factory method for child-factory edges.
	FactoryMethod string
	// DeclaringModules names the modules that declared the subcomponent
	// for subcomponent-creator edges.
	DeclaringModules []string
}

// Network is the directed multigraph of nodes and edges for one top-level
// compilation. It is an arena: nodes and edges are stored in insertion
// order and referenced by integer handles, with adjacency lists per node.
// Insertion order is the canonical node order used wherever determinism
// matters.
//
// The builder mutates the network; once handed out inside a Graph it is
// treated as immutable, and all derived views are memoized lazily.
type Network struct {
	nodes []Node
	edges []Edge
	out   [][]EdgeID
	in    [][]EdgeID
	full  bool

	componentByPath map[string]NodeID

	// lazily derived, nil until first use
	depEdges   []EdgeID
	entryEdges []EdgeID
	sccs       [][]NodeID
}

// NewNetwork creates an empty network. full marks a full-graph build that
// includes unreachable bindings.
func NewNetwork(full bool) *Network {
	return &Network{
		full:            full,
		componentByPath: make(map[string]NodeID),
	}
}

// IsFull reports whether this network was built in full-graph mode.
func (n *Network) IsFull() bool {
	return n.full
}

// AddNode appends a node and returns its handle.
func (n *Network) AddNode(node Node) NodeID {
	id := NodeID(len(n.nodes))
	n.nodes = append(n.nodes, node)
	n.out = append(n.out, nil)
	n.in = append(n.in, nil)
	if node.Kind == NodeComponent {
		n.componentByPath[node.Path.String()] = id
	}
	return id
}

// AddEdge appends an edge between existing nodes and returns its handle.
func (n *Network) AddEdge(edge Edge) EdgeID {
	id := EdgeID(len(n.edges))
	n.edges = append(n.edges, edge)
	n.out[edge.Source] = append(n.out[edge.Source], id)
	n.in[edge.Target] = append(n.in[edge.Target], id)
	return id
}

// NodeCount returns the number of nodes.
func (n *Network) NodeCount() int {
	return len(n.nodes)
}

// EdgeCount returns the number of edges.
func (n *Network) EdgeCount() int {
	return len(n.edges)
}

// Node returns the node for a handle. The returned pointer must be treated
// as read-only.
func (n *Network) Node(id NodeID) *Node {
	return &n.nodes[id]
}

// Edge returns the edge for a handle. The returned pointer must be treated
// as read-only.
func (n *Network) Edge(id EdgeID) *Edge {
	return &n.edges[id]
}

// Out returns the outgoing edge handles of a node in insertion order.
func (n *Network) Out(id NodeID) []EdgeID {
	return n.out[id]
}

// In returns the incoming edge handles of a node in insertion order.
func (n *Network) In(id NodeID) []EdgeID {
	return n.in[id]
}

// ComponentNode returns the component node for a path.
func (n *Network) ComponentNode(path ComponentPath) (NodeID, bool) {
	id, ok := n.componentByPath[path.String()]
	return id, ok
}

// RootComponent returns the component node whose path is at the root.
func (n *Network) RootComponent() NodeID {
	for id := range n.nodes {
		node := &n.nodes[id]
		if node.Kind == NodeComponent && node.Path.AtRoot() {
			return NodeID(id)
		}
	}
	return NoNode
}

// DependencyEdges returns the handles of all dependency edges, memoized.
func (n *Network) DependencyEdges() []EdgeID {
	if n.depEdges == nil {
		deps := make([]EdgeID, 0, len(n.edges))
		for id := range n.edges {
			if n.edges[id].Kind == EdgeDependency {
				deps = append(deps, EdgeID(id))
			}
		}
		n.depEdges = deps
	}
	return n.depEdges
}

// EntryPointEdges returns the dependency edges whose source is a component
// node, memoized.
func (n *Network) EntryPointEdges() []EdgeID {
	if n.entryEdges == nil {
		eps := make([]EdgeID, 0, len(n.edges))
		for _, id := range n.DependencyEdges() {
			if n.edges[id].EntryPoint {
				eps = append(eps, id)
			}
		}
		n.entryEdges = eps
	}
	return n.entryEdges
}

// BindingNodes returns every binding node in insertion order.
func (n *Network) BindingNodes() []NodeID {
	return n.nodesOfKind(NodeBinding)
}

// MissingBindingNodes returns every missing-binding node in insertion order.
func (n *Network) MissingBindingNodes() []NodeID {
	return n.nodesOfKind(NodeMissingBinding)
}

// ComponentNodes returns every component node in insertion order.
func (n *Network) ComponentNodes() []NodeID {
	return n.nodesOfKind(NodeComponent)
}

func (n *Network) nodesOfKind(kind NodeKind) []NodeID {
	var ids []NodeID
	for id := range n.nodes {
		if n.nodes[id].Kind == kind {
			ids = append(ids, NodeID(id))
		}
	}
	return ids
}

// NodesForKey returns the binding and missing-binding nodes for a key, in
// insertion order.
func (n *Network) NodesForKey(key Key) []NodeID {
	var ids []NodeID
	for id := range n.nodes {
		node := &n.nodes[id]
		if node.Kind != NodeComponent && node.Key == key {
			ids = append(ids, NodeID(id))
		}
	}
	return ids
}

// Successors returns the distinct targets of a node's outgoing edges that
// pass the filter, in edge insertion order.
func (n *Network) Successors(id NodeID, keep func(*Edge) bool) []NodeID {
	var succ []NodeID
	for _, eid := range n.out[id] {
		edge := &n.edges[eid]
		if keep != nil && !keep(edge) {
			continue
		}
		succ = appendUnique(succ, edge.Target)
	}
	return succ
}

// ShortestPath returns the node handles of a shortest path from source to
// target over edges passing the filter, inclusive of both endpoints, or nil
// if target is unreachable. Breadth-first with an explicit queue; ties break
// on edge insertion order, so results are reproducible.
func (n *Network) ShortestPath(source, target NodeID, keep func(*Edge) bool) []NodeID {
	if source == target {
		return []NodeID{source}
	}

	prev := make(map[NodeID]NodeID, len(n.nodes))
	queue := make([]NodeID, 0, 32)
	queue = append(queue, source)
	visited := make(map[NodeID]bool, len(n.nodes))
	visited[source] = true

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, eid := range n.out[current] {
			edge := &n.edges[eid]
			if keep != nil && !keep(edge) {
				continue
			}
			next := edge.Target
			if visited[next] {
				continue
			}
			visited[next] = true
			prev[next] = current
			if next == target {
				return unwindPath(prev, source, target)
			}
			queue = append(queue, next)
		}
	}
	return nil
}

func unwindPath(prev map[NodeID]NodeID, source, target NodeID) []NodeID {
	var reversed []NodeID
	for at := target; ; at = prev[at] {
		reversed = append(reversed, at)
		if at == source {
			break
		}
	}
	path := make([]NodeID, len(reversed))
	for i, id := range reversed {
		path[len(reversed)-1-i] = id
	}
	return path
}

// EdgesConnecting returns the edges from source to target that pass the
// filter, in insertion order.
func (n *Network) EdgesConnecting(source, target NodeID, keep func(*Edge) bool) []EdgeID {
	var ids []EdgeID
	for _, eid := range n.out[source] {
		edge := &n.edges[eid]
		if edge.Target != target {
			continue
		}
		if keep != nil && !keep(edge) {
			continue
		}
		ids = append(ids, eid)
	}
	return ids
}

// StronglyConnected returns the strongly connected components of the
// network over dependency edges, in reverse topological order, memoized.
// Successor iteration follows node insertion order so the result is stable
// across runs.
func (n *Network) StronglyConnected() [][]NodeID {
	if n.sccs == nil {
		dep := func(e *Edge) bool { return e.Kind == EdgeDependency }
		n.sccs = stronglyConnected(len(n.nodes), func(id NodeID) []NodeID {
			return n.Successors(id, dep)
		})
	}
	return n.sccs
}

// appendUnique appends item if it is not already present.
func appendUnique[T comparable](slice []T, item T) []T {
	for _, existing := range slice {
		if existing == item {
			return slice
		}
	}
	return append(slice, item)
}
