package weft

import "fmt"

// GraphMode selects how much of the declared world the builder includes.
type GraphMode uint8

const (
	// ModeReachable includes only nodes transitively reachable from the
	// root component's entry points.
	ModeReachable GraphMode = iota
	// ModeFull includes every binding declared by every included module
	// regardless of reachability, for validating a module or subcomponent
	// hierarchy independently of a concrete root.
	ModeFull
)

type buildOptions struct {
	validators []Validator
}

// BuildOption is a modifier for graph builds.
type BuildOption func(*buildOptions)

// WithValidators returns an option that appends validators to the standard
// pass list.
func WithValidators(validators ...Validator) BuildOption {
	return func(o *buildOptions) {
		o.validators = append(o.validators, validators...)
	}
}

// BuildGraph compiles a reachable graph rooted at the named component,
// runs validation, and returns the validated graph with its accumulated
// diagnostics. The only error return is a malformed specification.
func BuildGraph(spec *Spec, root string, opts ...BuildOption) (*Graph, error) {
	return build(spec, root, ModeReachable, opts)
}

// BuildFullGraph compiles a full graph rooted at the named component or
// module. A module root gets a fictional component node deriving from the
// module, mirroring how a module hierarchy is validated without a concrete
// component.
func BuildFullGraph(spec *Spec, root string, opts ...BuildOption) (*Graph, error) {
	return build(spec, root, ModeFull, opts)
}

func build(spec *Spec, root string, mode GraphMode, opts []BuildOption) (*Graph, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}

	var options buildOptions
	for _, opt := range opts {
		opt(&options)
	}

	sess := newSession(spec)
	fictional := false
	if _, ok := sess.components[root]; !ok {
		if _, isModule := sess.modules[root]; isModule && mode == ModeFull {
			sess.components[root] = &ComponentSpec{Name: root, Modules: []string{root}}
			fictional = true
		} else {
			return nil, fmt.Errorf("%w: unknown root component %q", ErrMalformedSpec, root)
		}
	}

	net := NewNetwork(mode == ModeFull)
	rep := NewReporter(net)
	b := &builder{
		sess:         sess,
		net:          net,
		rep:          rep,
		mode:         mode,
		fictional:    fictional,
		bindingNodes: make(map[string]NodeID),
		missingNodes: make(map[string]NodeID),
		duplicates:   make(map[NodeID][]declaration),
		mapConflicts: make(map[NodeID][]mapKeyConflict),
	}
	b.processComponent(RootPath(root))
	b.finalize()

	g := newGraph(net, sess, mode)
	for _, v := range append(defaultValidators(), options.validators...) {
		v.Validate(g, rep)
	}
	g.diagnostics = rep.Diagnostics()
	return g, nil
}

type builder struct {
	sess      *session
	net       *Network
	rep       *Reporter
	mode      GraphMode
	fictional bool

	bindingNodes map[string]NodeID
	missingNodes map[string]NodeID

	// Structural findings recorded during construction and reported in
	// finalize, once the network is complete enough to compute traces.
	duplicates   map[NodeID][]declaration
	mapConflicts map[NodeID][]mapKeyConflict
}

// processComponent adds the component node at path, resolves its entry
// points, links its children, and (in full mode) materializes every local
// declaration regardless of reachability.
func (b *builder) processComponent(path ComponentPath) NodeID {
	if id, ok := b.net.ComponentNode(path); ok {
		return id
	}

	component := b.sess.components[path.Current()]
	id := b.net.AddNode(Node{
		Kind:         NodeComponent,
		Path:         path,
		Scopes:       component.Scopes,
		Subcomponent: component.Subcomponent,
		Real:         !(b.fictional && path.AtRoot()),
	})

	for _, entryPoint := range component.EntryPoints {
		target := b.resolveRequest(entryPoint, path, false)
		if target == NoNode {
			continue
		}
		b.net.AddEdge(Edge{
			Kind:       EdgeDependency,
			Source:     id,
			Target:     target,
			Request:    entryPoint,
			EntryPoint: true,
		})
	}

	if b.mode == ModeFull {
		for _, d := range b.sess.localDeclarations(path) {
			key := d.spec.Key
			if key.IsContribution() && !d.spec.Kind.IsMultibinding() {
				key = key.WithoutContribution()
			}
			b.resolveRequest(Request{Key: key, Kind: RequestInstance}, path, false)
		}
	}

	for _, mod := range b.sess.ownedModules(path) {
		for _, childName := range mod.Subcomponents {
			child, ok := b.sess.components[childName]
			if !ok || !child.Subcomponent || child.Creator == "" {
				b.rep.ReportNode(SeverityError, DiagIllegalSubcomponentDeclaration, id,
					"module %q declares subcomponent %q, which is not a subcomponent with a creator",
					mod.Name, childName)
			}
		}
	}

	for _, fm := range component.FactoryMethods {
		child, ok := b.sess.components[fm.Child]
		if !ok || !child.Subcomponent {
			b.rep.ReportNode(SeverityError, DiagIllegalSubcomponentDeclaration, id,
				"factory method %q on component %q does not return a subcomponent",
				fm.Name, component.Name)
			continue
		}
		childID := b.processComponent(path.Child(fm.Child))
		b.net.AddEdge(Edge{
			Kind:          EdgeChildFactory,
			Source:        id,
			Target:        childID,
			FactoryMethod: fm.Name,
		})
	}

	return id
}

// resolveRequest resolves one request at a position in the hierarchy and
// returns the node that satisfies it. Requests made by an optional-wrapper
// binding return NoNode when the key is absent instead of a missing
// binding.
func (b *builder) resolveRequest(req Request, path ComponentPath, fromOptional bool) NodeID {
	res := b.sess.resolve(req.Key, path)

	if !res.found() {
		if fromOptional {
			return NoNode
		}
		return b.missingBindingNode(req.Key, path)
	}

	if res.multibinding {
		binding, conflicts := aggregateMultibinding(res)
		id, created := b.bindingNodeFor(binding)
		if created {
			if len(conflicts) > 0 {
				b.mapConflicts[id] = conflicts
			}
			b.resolveBindingRequests(id, binding)
		}
		return id
	}

	decl := res.declarations[0]
	binding := bindingFromDeclaration(decl)
	id, created := b.bindingNodeFor(binding)
	if created {
		if len(res.declarations) > 1 {
			b.duplicates[id] = res.declarations
		}
		b.resolveBindingRequests(id, binding)
		if binding.Kind == KindSubcomponentCreator && decl.child != "" {
			childID := b.processComponent(binding.Owner.Child(decl.child))
			b.net.AddEdge(Edge{
				Kind:             EdgeSubcomponentCreator,
				Source:           id,
				Target:           childID,
				DeclaringModules: []string{decl.module},
			})
		}
	}
	return id
}

// resolveBindingRequests resolves each dependency request of a binding at
// its owner path and adds one dependency edge per request. The node is
// registered before recursing, so cyclic graphs terminate and are left for
// the cycle validator to diagnose.
func (b *builder) resolveBindingRequests(id NodeID, binding *Binding) {
	fromOptional := binding.Kind == KindOptional
	for _, req := range binding.Requests {
		target := b.resolveRequest(req, binding.Owner, fromOptional)
		if target == NoNode {
			continue
		}
		b.net.AddEdge(Edge{
			Kind:    EdgeDependency,
			Source:  id,
			Target:  target,
			Request: req,
		})
	}
}

func (b *builder) bindingNodeFor(binding *Binding) (NodeID, bool) {
	cacheKey := binding.Key.String() + "|" + binding.Owner.String()
	if id, ok := b.bindingNodes[cacheKey]; ok {
		return id, false
	}
	id := b.net.AddNode(Node{
		Kind:    NodeBinding,
		Path:    binding.Owner,
		Key:     binding.Key,
		Binding: binding,
	})
	b.bindingNodes[cacheKey] = id
	return id, true
}

func (b *builder) missingBindingNode(key Key, path ComponentPath) NodeID {
	cacheKey := key.String() + "|" + path.String()
	if id, ok := b.missingNodes[cacheKey]; ok {
		return id
	}
	id := b.net.AddNode(Node{
		Kind: NodeMissingBinding,
		Path: path,
		Key:  key,
	})
	b.missingNodes[cacheKey] = id
	return id
}

// finalize reports the structural findings recorded during construction.
// Deferred to here so dependency traces can be computed over the complete
// network.
func (b *builder) finalize() {
	for _, id := range b.net.MissingBindingNodes() {
		node := b.net.Node(id)
		b.rep.ReportNode(SeverityError, DiagMissingBinding, id,
			"%s cannot be provided without a binding in %s", node.Key, node.Path)
	}

	for _, id := range b.net.BindingNodes() {
		if decls, ok := b.duplicates[id]; ok {
			b.rep.ReportNode(SeverityError, DiagDuplicateBinding, id,
				"%s is bound multiple times: %s", b.net.Node(id).Key, describeDeclarations(decls))
		}
		for _, c := range b.mapConflicts[id] {
			b.rep.ReportNode(SeverityError, DiagDuplicateMapKey, id,
				"map key %q is bound multiple times for %s: %s and %s",
				c.mapKey, b.net.Node(id).Key,
				describeDeclaration(c.first), describeDeclaration(c.second))
		}
	}
}

func bindingFromDeclaration(d declaration) *Binding {
	declaredIn := d.module
	if declaredIn == "" {
		declaredIn = d.owner.Current()
	}
	return &Binding{
		Kind:            d.spec.Kind,
		Key:             d.spec.Key,
		Owner:           d.owner,
		Scope:           d.spec.Scope,
		Requests:        d.spec.Requests,
		DeclaredIn:      declaredIn,
		MapKey:          d.spec.MapKey,
		ElementsIntoSet: d.spec.ElementsIntoSet,
	}
}

func describeDeclarations(decls []declaration) string {
	s := ""
	for i, d := range decls {
		if i > 0 {
			s += ", "
		}
		s += describeDeclaration(d)
	}
	return s
}

func describeDeclaration(d declaration) string {
	where := d.module
	if where == "" {
		where = d.owner.Current()
	}
	return fmt.Sprintf("%s in %s (component %s)", d.spec.Kind, where, d.owner)
}
