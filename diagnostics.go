package weft

import "fmt"

// Severity grades a diagnostic.
type Severity uint8

const (
	// SeverityError marks a diagnostic that fails the compilation.
	SeverityError Severity = iota
	// SeverityWarning marks a diagnostic that does not.
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	}
	return "unknown"
}

// DiagnosticKind enumerates the structural problems the validators report.
type DiagnosticKind uint8

const (
	// DiagMissingBinding: a key is requested but has no resolvable binding.
	DiagMissingBinding DiagnosticKind = iota
	// DiagDuplicateBinding: two independent non-multibinding declarations
	// for one key are reachable from the same component.
	DiagDuplicateBinding
	// DiagCycle: an illegal dependency cycle with no deferred edge.
	DiagCycle
	// DiagDuplicateMapKey: two map contributions with equal map keys at the
	// same aggregation scope.
	DiagDuplicateMapKey
	// DiagScopeOnModule: a scope declared directly on a module.
	DiagScopeOnModule
	// DiagIncompatiblyScoped: a scoped binding owned by a component that
	// does not declare the scope.
	DiagIncompatiblyScoped
	// DiagInaccessibleType: a binding's declared type is not visible where
	// generated code must reference it.
	DiagInaccessibleType
	// DiagIllegalSubcomponentDeclaration: a declared subcomponent reference
	// does not resolve to an actual subcomponent with a creator.
	DiagIllegalSubcomponentDeclaration
)

func (k DiagnosticKind) String() string {
	switch k {
	case DiagMissingBinding:
		return "missing-binding"
	case DiagDuplicateBinding:
		return "duplicate-binding"
	case DiagCycle:
		return "dependency-cycle"
	case DiagDuplicateMapKey:
		return "duplicate-map-key"
	case DiagScopeOnModule:
		return "scope-on-module"
	case DiagIncompatiblyScoped:
		return "incompatibly-scoped"
	case DiagInaccessibleType:
		return "inaccessible-type"
	case DiagIllegalSubcomponentDeclaration:
		return "illegal-subcomponent-declaration"
	}
	return "unknown"
}

// TraceEntry is one step of a dependency trace: the request carried by an
// edge, with its endpoints.
type TraceEntry struct {
	Request Request
	Source  NodeID
	Target  NodeID
}

// Diagnostic is one validation finding, attached to the node or edge it
// originated at. Trace, when present, is the ordered dependency path from
// the nearest entry point toward the failure, suitable for direct display.
type Diagnostic struct {
	Severity Severity
	Kind     DiagnosticKind
	Message  string
	Node     NodeID
	Edge     EdgeID
	Trace    []TraceEntry
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Severity, d.Kind, d.Message)
}

// Reporter accumulates diagnostics across one compilation. Validation is
// never fail-fast: every independent problem in the hierarchy surfaces in
// one pass.
type Reporter struct {
	net   *Network
	diags []Diagnostic
}

// NewReporter creates a reporter over the network being validated.
func NewReporter(net *Network) *Reporter {
	return &Reporter{net: net}
}

// ReportNode records a diagnostic attached to a node. For reachable graphs
// an entry-point trace is attached when one exists.
func (r *Reporter) ReportNode(sev Severity, kind DiagnosticKind, node NodeID, format string, args ...any) {
	d := Diagnostic{
		Severity: sev,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Node:     node,
		Edge:     NoEdge,
	}
	if node != NoNode && !r.net.IsFull() {
		d.Trace = r.entryPointTrace(node)
	}
	r.diags = append(r.diags, d)
}

// ReportEdge records a diagnostic attached to an edge. The trace leads from
// the nearest entry point to the edge's source, then across the edge.
func (r *Reporter) ReportEdge(sev Severity, kind DiagnosticKind, edge EdgeID, format string, args ...any) {
	d := Diagnostic{
		Severity: sev,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Node:     NoNode,
		Edge:     edge,
	}
	e := r.net.Edge(edge)
	if !r.net.IsFull() {
		d.Trace = r.entryPointTrace(e.Source)
	}
	d.Trace = append(d.Trace, TraceEntry{Request: e.Request, Source: e.Source, Target: e.Target})
	r.diags = append(r.diags, d)
}

// ReportSpec records a diagnostic that has no node or edge context, such as
// a scope declared on a module.
func (r *Reporter) ReportSpec(sev Severity, kind DiagnosticKind, format string, args ...any) {
	r.diags = append(r.diags, Diagnostic{
		Severity: sev,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Node:     NoNode,
		Edge:     NoEdge,
	})
}

// Diagnostics returns the accumulated diagnostics in report order.
func (r *Reporter) Diagnostics() []Diagnostic {
	return r.diags
}

// HasErrors reports whether any accumulated diagnostic is an error.
func (r *Reporter) HasErrors() bool {
	for _, d := range r.diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// entryPointTrace walks a shortest dependency path from the owning
// component's node to the target and converts it to trace entries. The
// first entry is always an entry-point edge when the target is reachable.
func (r *Reporter) entryPointTrace(target NodeID) []TraceEntry {
	node := r.net.Node(target)
	start := NoNode
	for n := node.Path.Len(); n > 0 && start == NoNode; n-- {
		if id, ok := r.net.ComponentNode(node.Path.Prefix(n)); ok {
			// Try the owner first, then ancestors: the request may enter
			// through an ancestor's entry point.
			if path := r.net.ShortestPath(id, target, dependencyEdgesOnly); path != nil {
				return r.pathTrace(path)
			}
		}
	}
	return nil
}

func (r *Reporter) pathTrace(path []NodeID) []TraceEntry {
	var trace []TraceEntry
	for i := 0; i+1 < len(path); i++ {
		edges := r.net.EdgesConnecting(path[i], path[i+1], dependencyEdgesOnly)
		if len(edges) == 0 {
			continue
		}
		e := r.net.Edge(edges[0])
		trace = append(trace, TraceEntry{Request: e.Request, Source: e.Source, Target: e.Target})
	}
	return trace
}

func dependencyEdgesOnly(e *Edge) bool {
	return e.Kind == EdgeDependency
}
