package weft

// AccessibilityValidator reports bindings whose declared type is not
// visible from the package where generated code must reference it: the
// root component's package. Types without visibility metadata in the spec
// are assumed accessible.
type AccessibilityValidator struct{}

// Name implements Validator.
func (*AccessibilityValidator) Name() string { return "accessibility" }

// Validate implements Validator.
func (v *AccessibilityValidator) Validate(g *Graph, r *Reporter) {
	net := g.Network()
	root, ok := g.sess.components[net.Node(net.RootComponent()).Path.Root()]
	if !ok {
		return
	}

	for _, id := range net.BindingNodes() {
		key := net.Node(id).Key
		info, declared := g.sess.typeInfo(key.Type)
		if !declared || info.Exported || info.Package == root.Package {
			continue
		}
		r.ReportNode(SeverityError, DiagInaccessibleType, id,
			"%s is not accessible from package %q where the generated component lives",
			key, root.Package)
	}
}
