package weft

// declaration is one binding declaration located in the component
// hierarchy: the spec that declared it, the module it came from ("" for
// bindings synthesized from the component itself), and the path of the
// component that owns it.
type declaration struct {
	spec   *BindingSpec
	module string
	owner  ComponentPath
	// child names the subcomponent a subcomponent-creator declaration
	// creates.
	child string
	order int
}

// resolution is the outcome of resolving one key at one position in the
// hierarchy.
type resolution struct {
	key Key
	// declarations are the independent non-multibinding declarations for
	// the key along the path, child-most first. More than one is a
	// duplicate-binding error; resolution still picks the first so graph
	// construction can complete.
	declarations []declaration
	// multibinding is true when the key aggregates contributions.
	multibinding bool
	// mapBinding distinguishes map aggregation from set aggregation.
	mapBinding bool
	// contributions are the multibinding contributions along the path in
	// aggregation order (see contribution ordering in the session).
	contributions []declaration
	// explicit is the explicit multibound-set/map declaration, if any.
	explicit *declaration
}

func (r resolution) found() bool {
	return len(r.declarations) > 0 || r.multibinding
}

// session holds every memoized lookup for one top-level compilation. It is
// created per build and discarded with it; nothing here is process-wide
// state. The build pass is single-threaded, so plain maps suffice.
type session struct {
	spec *Spec

	components map[string]*ComponentSpec
	modules    map[string]*ModuleSpec
	types      map[string]*TypeSpec

	transitive map[string][]*ModuleSpec // component name -> module BFS
	owned      map[string][]*ModuleSpec // path -> owned modules
	local      map[string][]declaration // path -> local declarations
}

func newSession(spec *Spec) *session {
	s := &session{
		spec:       spec,
		components: make(map[string]*ComponentSpec, len(spec.Components)),
		modules:    make(map[string]*ModuleSpec, len(spec.Modules)),
		types:      make(map[string]*TypeSpec, len(spec.Types)),
		transitive: make(map[string][]*ModuleSpec),
		owned:      make(map[string][]*ModuleSpec),
		local:      make(map[string][]declaration),
	}
	for _, c := range spec.Components {
		s.components[c.Name] = c
	}
	for _, m := range spec.Modules {
		s.modules[m.Name] = m
	}
	for _, t := range spec.Types {
		s.types[t.Name] = t
	}
	return s
}

// transitiveModules returns every module reachable from the component's
// declared module list, in breadth-first order: the declared list in
// declaration order first, then includes level by level, each module once
// at its first encounter. This order is the deterministic tie-break for
// multibinding contributions reachable through more than one include path.
func (s *session) transitiveModules(component *ComponentSpec) []*ModuleSpec {
	if cached, ok := s.transitive[component.Name]; ok {
		return cached
	}

	var result []*ModuleSpec
	seen := make(map[string]bool)
	queue := make([]string, 0, len(component.Modules))
	queue = append(queue, component.Modules...)

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if seen[name] {
			continue
		}
		seen[name] = true
		mod, ok := s.modules[name]
		if !ok {
			continue
		}
		result = append(result, mod)
		queue = append(queue, mod.Includes...)
	}

	s.transitive[component.Name] = result
	return result
}

// ownedModules returns the component's transitive modules minus any module
// already owned by an ancestor, preventing double-ownership as the
// hierarchy is walked.
func (s *session) ownedModules(path ComponentPath) []*ModuleSpec {
	cacheKey := path.String()
	if cached, ok := s.owned[cacheKey]; ok {
		return cached
	}

	inherited := make(map[string]bool)
	for n := 1; n < path.Len(); n++ {
		for _, m := range s.ownedModules(path.Prefix(n)) {
			inherited[m.Name] = true
		}
	}

	component, ok := s.components[path.Current()]
	var result []*ModuleSpec
	if ok {
		for _, m := range s.transitiveModules(component) {
			if !inherited[m.Name] {
				result = append(result, m)
			}
		}
	}

	s.owned[cacheKey] = result
	return result
}

// localDeclarations returns every binding declared directly at the
// component at path: bindings from its owned modules in module order, then
// bindings synthesized from the component declaration itself (the
// component instance, dependency provisions, bound instances, and
// subcomponent creators declared by owned modules).
func (s *session) localDeclarations(path ComponentPath) []declaration {
	cacheKey := path.String()
	if cached, ok := s.local[cacheKey]; ok {
		return cached
	}

	var decls []declaration
	add := func(d declaration) {
		d.order = len(decls)
		decls = append(decls, d)
	}

	for _, mod := range s.ownedModules(path) {
		for _, b := range mod.Bindings {
			add(declaration{spec: b, module: mod.Name, owner: path})
		}
	}

	if component, ok := s.components[path.Current()]; ok {
		add(declaration{
			spec:  &BindingSpec{Kind: KindComponent, Key: TypeKey(component.Name)},
			owner: path,
		})
		for _, dep := range component.Dependencies {
			add(declaration{
				spec:  &BindingSpec{Kind: KindComponentDependency, Key: TypeKey(dep.Type)},
				owner: path,
			})
			for _, provision := range dep.Provisions {
				add(declaration{
					spec:   &BindingSpec{Kind: KindComponentProvision, Key: provision},
					module: dep.Type,
					owner:  path,
				})
			}
		}
		for _, bound := range component.BoundInstances {
			add(declaration{
				spec:  &BindingSpec{Kind: KindBoundInstance, Key: bound},
				owner: path,
			})
		}
	}

	for _, mod := range s.ownedModules(path) {
		for _, childName := range mod.Subcomponents {
			child, ok := s.components[childName]
			if !ok || !child.Subcomponent || child.Creator == "" {
				// Reported as an illegal subcomponent declaration by the
				// builder; no creator binding is synthesized.
				continue
			}
			add(declaration{
				spec:   &BindingSpec{Kind: KindSubcomponentCreator, Key: TypeKey(child.Creator)},
				module: mod.Name,
				owner:  path,
				child:  childName,
			})
		}
	}

	s.local[cacheKey] = decls
	return decls
}

// resolveLocal returns the declarations for key made directly at the
// component at path: zero or one for a non-multibinding key, any number of
// contributions for a multibinding key.
func (s *session) resolveLocal(key Key, path ComponentPath) []declaration {
	var matches []declaration
	for _, d := range s.localDeclarations(path) {
		if s.matchesKey(d, key) || s.contributesTo(d, key) {
			matches = append(matches, d)
		}
	}
	return matches
}

func (s *session) matchesKey(d declaration, key Key) bool {
	return d.spec.Key == key
}

func (s *session) contributesTo(d declaration, key Key) bool {
	return d.spec.Key.IsContribution() &&
		!d.spec.Kind.IsMultibinding() &&
		d.spec.Key.WithoutContribution() == key
}

// resolve walks from path toward the root collecting declarations for key.
//
// For a non-multibinding key every independently declared binding along the
// path is collected, child-most first; the caller reports more than one as
// a duplicate and proceeds with the first, the child-most one.
//
// For a multibinding key the result is the union of contributions from
// every component along the path, ordered root-most component first, then
// module breadth-first order within each component, then declaration order
// within each module.
func (s *session) resolve(key Key, path ComponentPath) resolution {
	res := resolution{key: key}

	// Child-most first for unique declarations.
	for n := path.Len(); n >= 1; n-- {
		prefix := path.Prefix(n)
		for _, d := range s.localDeclarations(prefix) {
			switch {
			case s.contributesTo(d, key):
				res.multibinding = true
				if d.spec.MapKey != "" {
					res.mapBinding = true
				}
			case !s.matchesKey(d, key):
				// not this key
			case d.spec.Kind.IsMultibinding():
				res.multibinding = true
				if d.spec.Kind == KindMultiboundMap {
					res.mapBinding = true
				}
				if res.explicit == nil {
					explicit := d
					res.explicit = &explicit
				}
			default:
				res.declarations = append(res.declarations, d)
			}
		}
	}

	if res.multibinding {
		// Root-most first for aggregation order.
		for n := 1; n <= path.Len(); n++ {
			prefix := path.Prefix(n)
			for _, d := range s.localDeclarations(prefix) {
				if s.contributesTo(d, key) {
					res.contributions = append(res.contributions, d)
				}
			}
		}
	}

	return res
}

// typeInfo returns visibility metadata for a type name, if declared.
func (s *session) typeInfo(name string) (*TypeSpec, bool) {
	t, ok := s.types[name]
	return t, ok
}
