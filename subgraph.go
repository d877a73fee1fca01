package weft

// Graph is the validated top-level network plus everything the back end
// needs: per-component views, diagnostics, and derived queries. It is
// immutable after construction; derived views are memoized on first
// access and discarded with the graph when the compilation finishes.
type Graph struct {
	net         *Network
	sess        *session
	mode        GraphMode
	diagnostics []Diagnostic

	root   *ComponentGraph
	byPath map[string]*ComponentGraph
}

func newGraph(net *Network, sess *session, mode GraphMode) *Graph {
	return &Graph{
		net:    net,
		sess:   sess,
		mode:   mode,
		byPath: make(map[string]*ComponentGraph),
	}
}

// Network returns the shared top-level network.
func (g *Graph) Network() *Network {
	return g.net
}

// IsFull reports whether the graph was built in full-graph mode.
func (g *Graph) IsFull() bool {
	return g.mode == ModeFull
}

// Diagnostics returns every diagnostic accumulated during construction and
// validation, in report order.
func (g *Graph) Diagnostics() []Diagnostic {
	return g.diagnostics
}

// HasErrors reports whether any diagnostic is an error.
func (g *Graph) HasErrors() bool {
	for _, d := range g.diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Root returns the root component's view of the graph.
func (g *Graph) Root() *ComponentGraph {
	if g.root == nil {
		id := g.net.RootComponent()
		g.root = g.componentGraph(id, nil)
	}
	return g.root
}

// Component returns the view for the component at path, if it is part of
// this graph's hierarchy.
func (g *Graph) Component(path ComponentPath) (*ComponentGraph, bool) {
	root := g.Root()
	if path.AtRoot() {
		if path.Equal(root.Path()) {
			return root, true
		}
		return nil, false
	}
	parent, ok := g.Component(path.Parent())
	if !ok {
		return nil, false
	}
	for _, sub := range parent.Subgraphs() {
		if sub.Path().Equal(path) {
			return sub, true
		}
	}
	return nil, false
}

func (g *Graph) componentGraph(node NodeID, parent *ComponentGraph) *ComponentGraph {
	path := g.net.Node(node).Path.String()
	if cached, ok := g.byPath[path]; ok {
		return cached
	}
	cg := &ComponentGraph{graph: g, node: node, parent: parent}
	g.byPath[path] = cg
	return cg
}

// RequestedBindings returns the distinct binding nodes a binding directly
// requests, excluding missing bindings.
func (g *Graph) RequestedBindings(node NodeID) []NodeID {
	var requested []NodeID
	for _, succ := range g.net.Successors(node, dependencyEdgesOnly) {
		if g.net.Node(succ).Kind == NodeBinding {
			requested = appendUnique(requested, succ)
		}
	}
	return requested
}

// EntryPointsDependingOn returns the entry-point edges that transitively
// depend on the given binding or missing-binding node. Reverse reachability
// over dependency edges, iterative to match the rest of the traversals.
func (g *Graph) EntryPointsDependingOn(node NodeID) []EdgeID {
	reachable := make(map[NodeID]bool)
	stack := []NodeID{node}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if reachable[current] {
			continue
		}
		reachable[current] = true
		for _, eid := range g.net.In(current) {
			edge := g.net.Edge(eid)
			if edge.Kind != EdgeDependency {
				continue
			}
			if !reachable[edge.Source] {
				stack = append(stack, edge.Source)
			}
		}
	}

	var entryPoints []EdgeID
	for _, eid := range g.net.EntryPointEdges() {
		if reachable[g.net.Edge(eid).Target] {
			entryPoints = append(entryPoints, eid)
		}
	}
	return entryPoints
}

// RequirementKind classifies what a component needs handed in from outside
// to construct itself.
type RequirementKind uint8

const (
	// RequirementDependency is a component dependency instance.
	RequirementDependency RequirementKind = iota
	// RequirementModule is a module instance whose provision bindings are
	// used in the graph.
	RequirementModule
	// RequirementBoundInstance is a value bound on the component creator.
	RequirementBoundInstance
)

func (k RequirementKind) String() string {
	switch k {
	case RequirementDependency:
		return "dependency"
	case RequirementModule:
		return "module"
	case RequirementBoundInstance:
		return "bound-instance"
	}
	return "unknown"
}

// Requirement is one externally supplied input of a component.
type Requirement struct {
	Kind RequirementKind
	// Type is the dependency or module type, or the bound instance's key
	// type.
	Type string
}

// ComponentGraph is one component's view of the shared network. Bindings
// resolved to an ancestor are referenced, never duplicated: ResolvedBinding
// returns the ancestor's node for inherited keys.
type ComponentGraph struct {
	graph  *Graph
	node   NodeID
	parent *ComponentGraph

	subgraphsDone bool
	subgraphs     []*ComponentGraph

	localDone bool
	local     []NodeID

	requirementsDone bool
	requirements     []Requirement
}

// Node returns the component node handle.
func (c *ComponentGraph) Node() NodeID {
	return c.node
}

// Path returns the component's path.
func (c *ComponentGraph) Path() ComponentPath {
	return c.graph.net.Node(c.node).Path
}

// Parent returns the parent view, or nil at the root.
func (c *ComponentGraph) Parent() *ComponentGraph {
	return c.parent
}

// DeclaredScopes returns the scopes declared on the component.
func (c *ComponentGraph) DeclaredScopes() []string {
	return c.graph.net.Node(c.node).Scopes
}

// Subgraphs returns the views of this component's direct subcomponents, in
// the order their component nodes entered the network. Materialized on
// first access and cached for the compilation's lifetime.
func (c *ComponentGraph) Subgraphs() []*ComponentGraph {
	if !c.subgraphsDone {
		net := c.graph.net
		myPath := c.Path()
		for _, id := range net.ComponentNodes() {
			path := net.Node(id).Path
			if path.Len() == myPath.Len()+1 && path.Parent().Equal(myPath) {
				c.subgraphs = append(c.subgraphs, c.graph.componentGraph(id, c))
			}
		}
		c.subgraphsDone = true
	}
	return c.subgraphs
}

// OwnedModules returns the names of the component's transitive modules
// minus those owned by an ancestor.
func (c *ComponentGraph) OwnedModules() []string {
	mods := c.graph.sess.ownedModules(c.Path())
	names := make([]string, len(mods))
	for i, m := range mods {
		names[i] = m.Name
	}
	return names
}

// LocalBindings returns the binding nodes owned by this component, in node
// order.
func (c *ComponentGraph) LocalBindings() []NodeID {
	if !c.localDone {
		net := c.graph.net
		myPath := c.Path()
		for _, id := range net.BindingNodes() {
			if net.Node(id).Path.Equal(myPath) {
				c.local = append(c.local, id)
			}
		}
		c.localDone = true
	}
	return c.local
}

// ResolvedBinding returns the node satisfying key as seen from this
// component: its own node if it owns one, otherwise the nearest ancestor's.
func (c *ComponentGraph) ResolvedBinding(key Key) (NodeID, bool) {
	net := c.graph.net
	for view := c; view != nil; view = view.parent {
		for _, id := range view.LocalBindings() {
			if net.Node(id).Key == key {
				return id, true
			}
		}
	}
	return NoNode, false
}

// FactoryMethod returns the parent component's factory method declaring
// this subcomponent, if any.
func (c *ComponentGraph) FactoryMethod() (FactoryMethodSpec, bool) {
	if c.parent == nil {
		return FactoryMethodSpec{}, false
	}
	parentSpec, ok := c.graph.sess.components[c.parent.Path().Current()]
	if !ok {
		return FactoryMethodSpec{}, false
	}
	for _, fm := range parentSpec.FactoryMethods {
		if fm.Child == c.Path().Current() {
			return fm, true
		}
	}
	return FactoryMethodSpec{}, false
}

// Requirements returns the inputs this component needs from outside:
// component dependencies, modules whose instance bindings are used, bound
// instances, and factory-method module parameters. Order follows the local
// binding order, deduplicated.
func (c *ComponentGraph) Requirements() []Requirement {
	if !c.requirementsDone {
		net := c.graph.net
		owned := make(map[string]bool)
		for _, name := range c.OwnedModules() {
			owned[name] = true
		}

		var reqs []Requirement
		for _, id := range c.LocalBindings() {
			binding := net.Node(id).Binding
			switch binding.Kind {
			case KindComponentDependency:
				reqs = appendUnique(reqs, Requirement{Kind: RequirementDependency, Type: binding.Key.Type})
			case KindComponentProvision:
				// DeclaredIn carries the dependency type for provisions.
				reqs = appendUnique(reqs, Requirement{Kind: RequirementDependency, Type: binding.DeclaredIn})
			case KindBoundInstance:
				reqs = appendUnique(reqs, Requirement{Kind: RequirementBoundInstance, Type: binding.Key.Type})
			case KindProvision:
				if owned[binding.DeclaredIn] {
					reqs = appendUnique(reqs, Requirement{Kind: RequirementModule, Type: binding.DeclaredIn})
				}
			}
		}
		if fm, ok := c.FactoryMethod(); ok {
			for _, param := range fm.Params {
				reqs = appendUnique(reqs, Requirement{Kind: RequirementModule, Type: param})
			}
		}
		c.requirements = reqs
		c.requirementsDone = true
	}
	return c.requirements
}

// ScopedBindings returns the scoped binding nodes owned by this component,
// the set the generated component must back with cache cells.
func (c *ComponentGraph) ScopedBindings() []NodeID {
	var scoped []NodeID
	for _, id := range c.LocalBindings() {
		if c.graph.net.Node(id).Binding.Scoped() {
			scoped = append(scoped, id)
		}
	}
	return scoped
}
