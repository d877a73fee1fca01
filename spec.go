package weft

import (
	"errors"
	"fmt"
)

// ErrMalformedSpec is returned when the specification model itself is
// incomplete or inconsistent. This is the only fatal condition: everything
// structural inside a well-formed spec is accumulated as diagnostics
// instead.
var ErrMalformedSpec = errors.New("weft: malformed specification")

// Spec is the immutable input produced by the front end: every component,
// module, binding declaration and injection point of one compilation.
//
// The builder never mutates a Spec and never stores derived state on it;
// all memoized lookups live on the per-compilation session.
type Spec struct {
	Components []*ComponentSpec
	Modules    []*ModuleSpec
	// Types optionally carries visibility metadata for declared types.
	// Types absent from the list are assumed accessible everywhere.
	Types []*TypeSpec
}

// ComponentSpec declares one component or subcomponent interface.
type ComponentSpec struct {
	Name         string
	Package      string
	Subcomponent bool
	// Creator names the builder/factory type for this subcomponent, if it
	// declares one. Required for subcomponents installed via a module's
	// subcomponent declaration.
	Creator string
	// Modules are the module names installed directly on the component.
	Modules []string
	// Dependencies are component dependencies whose provision methods
	// become bindings in this component.
	Dependencies []DependencySpec
	Scopes       []string
	// EntryPoints are the dependency requests exposed on the component's
	// public surface.
	EntryPoints []Request
	// BoundInstances are keys bound on the component's creator.
	BoundInstances []Key
	// FactoryMethods declare child subcomponents reachable through factory
	// methods on this component's interface.
	FactoryMethods []FactoryMethodSpec
}

// FactoryMethodSpec declares a subcomponent factory method on a parent
// component interface.
type FactoryMethodSpec struct {
	Name  string
	Child string
	// Params are module names passed as factory-method parameters; they
	// become requirements of the child component.
	Params []string
}

// DependencySpec declares a component dependency: an externally supplied
// object whose provision methods satisfy keys in this component.
type DependencySpec struct {
	Type       string
	Provisions []Key
}

// ModuleSpec declares one module: its included modules, its declared
// subcomponents, and its bindings.
type ModuleSpec struct {
	Name          string
	Includes      []string
	Subcomponents []string
	// Scopes declared directly on a module are illegal and reported as a
	// ScopeOnModule diagnostic; they are carried here so validation can
	// name them.
	Scopes   []string
	Bindings []*BindingSpec
}

// BindingSpec declares one binding as extracted by the front end.
//
// Multibinding contributions carry the aggregate's type/qualifier in Key
// with a non-empty Contribution tag. An explicit empty multibinding
// declaration uses KindMultiboundSet or KindMultiboundMap with the plain
// aggregate key and no requests.
type BindingSpec struct {
	Kind            BindingKind
	Key             Key
	Scope           string
	Requests        []Request
	MapKey          string
	ElementsIntoSet bool
}

// TypeSpec carries visibility metadata for a declared type.
type TypeSpec struct {
	Name     string
	Package  string
	Exported bool
}

// validate checks that the spec is internally complete: every name
// reference resolves and every key is non-empty. A failure here aborts the
// compilation for this root; it is the front end's bug, not the user's.
func (s *Spec) validate() error {
	components := make(map[string]*ComponentSpec, len(s.Components))
	for _, c := range s.Components {
		if c.Name == "" {
			return fmt.Errorf("%w: component with empty name", ErrMalformedSpec)
		}
		if _, ok := components[c.Name]; ok {
			return fmt.Errorf("%w: duplicate component name %q", ErrMalformedSpec, c.Name)
		}
		components[c.Name] = c
	}

	modules := make(map[string]*ModuleSpec, len(s.Modules))
	for _, m := range s.Modules {
		if m.Name == "" {
			return fmt.Errorf("%w: module with empty name", ErrMalformedSpec)
		}
		if _, ok := modules[m.Name]; ok {
			return fmt.Errorf("%w: duplicate module name %q", ErrMalformedSpec, m.Name)
		}
		modules[m.Name] = m
	}

	for _, m := range s.Modules {
		for _, inc := range m.Includes {
			if _, ok := modules[inc]; !ok {
				return fmt.Errorf("%w: module %q includes unknown module %q", ErrMalformedSpec, m.Name, inc)
			}
		}
		for _, b := range m.Bindings {
			if b.Key.Type == "" {
				return fmt.Errorf("%w: module %q declares a binding with an empty key type", ErrMalformedSpec, m.Name)
			}
			for _, req := range b.Requests {
				if req.Key.Type == "" {
					return fmt.Errorf("%w: binding %s in module %q has a request with an empty key type", ErrMalformedSpec, b.Key, m.Name)
				}
			}
		}
	}

	for _, c := range s.Components {
		for _, name := range c.Modules {
			if _, ok := modules[name]; !ok {
				return fmt.Errorf("%w: component %q installs unknown module %q", ErrMalformedSpec, c.Name, name)
			}
		}
		for _, ep := range c.EntryPoints {
			if ep.Key.Type == "" {
				return fmt.Errorf("%w: component %q has an entry point with an empty key type", ErrMalformedSpec, c.Name)
			}
		}
		for _, fm := range c.FactoryMethods {
			if fm.Child == "" {
				return fmt.Errorf("%w: component %q has a factory method %q with no child component", ErrMalformedSpec, c.Name, fm.Name)
			}
		}
	}

	return nil
}

// component returns the component spec by name.
func (s *Spec) component(name string) (*ComponentSpec, bool) {
	for _, c := range s.Components {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// module returns the module spec by name.
func (s *Spec) module(name string) (*ModuleSpec, bool) {
	for _, m := range s.Modules {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}
