package weft

// ScopeValidator enforces the scope ownership rules: a scope may only be
// declared on a component, and a scoped binding must be owned by a
// component declaring that scope. The at-most-once caching contract itself
// is a code-generation concern backed by Cell; this pass only guarantees
// the ownership preconditions the contract relies on.
type ScopeValidator struct{}

// Name implements Validator.
func (*ScopeValidator) Name() string { return "scope" }

// Validate implements Validator.
func (v *ScopeValidator) Validate(g *Graph, r *Reporter) {
	net := g.Network()

	// Scopes declared directly on modules, for every module owned by a
	// component in this hierarchy.
	reported := make(map[string]bool)
	for _, id := range net.ComponentNodes() {
		path := net.Node(id).Path
		for _, mod := range g.sess.ownedModules(path) {
			if len(mod.Scopes) == 0 || reported[mod.Name] {
				continue
			}
			reported[mod.Name] = true
			r.ReportNode(SeverityError, DiagScopeOnModule, id,
				"module %q declares scope %q; scopes may only be declared on components",
				mod.Name, mod.Scopes[0])
		}
	}

	// Scoped bindings owned by components that do not declare the scope.
	for _, id := range net.BindingNodes() {
		binding := net.Node(id).Binding
		if !binding.Scoped() {
			continue
		}
		componentNode, ok := net.ComponentNode(binding.Owner)
		if !ok {
			continue
		}
		if !containsString(net.Node(componentNode).Scopes, binding.Scope) {
			r.ReportNode(SeverityError, DiagIncompatiblyScoped, id,
				"%s is scoped with %q but component %s does not declare that scope",
				binding.Key, binding.Scope, binding.Owner)
		}
	}
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
