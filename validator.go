package weft

// Validator is a named pass over a completed graph. Validators never
// mutate the graph; they report findings through the reporter, which
// accumulates across all passes so one compilation surfaces every
// independent problem.
type Validator interface {
	// Name returns the validator's name, used in logs and debug output.
	Name() string

	// Validate inspects the graph and reports diagnostics.
	Validate(g *Graph, r *Reporter)
}

// defaultValidators returns the standard pass list in execution order.
// Missing bindings, duplicates and map-key conflicts are reported during
// resolution itself; these passes cover everything that needs the whole
// network.
func defaultValidators() []Validator {
	return []Validator{
		&CycleValidator{},
		&ScopeValidator{},
		&AccessibilityValidator{},
	}
}
