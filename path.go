package weft

import "strings"

// ComponentPath is the ordered sequence of component names from the root
// component down to the current one. The order defines inheritance
// precedence: a binding declared closer to the end of the path shadows
// nothing, it conflicts (see duplicate detection in the resolver), but
// components that do not declare a key at all see the node of the nearest
// ancestor that does.
//
// ComponentPath values are immutable; Child and Parent return copies.
type ComponentPath struct {
	names []string
}

// RootPath returns a path containing only the root component.
func RootPath(root string) ComponentPath {
	return ComponentPath{names: []string{root}}
}

// Child returns the path extended with a subcomponent name.
func (p ComponentPath) Child(name string) ComponentPath {
	names := make([]string, len(p.names)+1)
	copy(names, p.names)
	names[len(p.names)] = name
	return ComponentPath{names: names}
}

// Parent returns the path with the last component removed. Calling Parent on
// a root path returns the root path itself.
func (p ComponentPath) Parent() ComponentPath {
	if p.AtRoot() {
		return p
	}
	return ComponentPath{names: p.names[:len(p.names)-1]}
}

// Prefix returns the path truncated to its first n components.
func (p ComponentPath) Prefix(n int) ComponentPath {
	return ComponentPath{names: p.names[:n]}
}

// Current returns the name of the component the path points at.
func (p ComponentPath) Current() string {
	return p.names[len(p.names)-1]
}

// Root returns the name of the root component.
func (p ComponentPath) Root() string {
	return p.names[0]
}

// AtRoot reports whether the path has exactly one component.
func (p ComponentPath) AtRoot() bool {
	return len(p.names) == 1
}

// Len returns the number of components in the path.
func (p ComponentPath) Len() int {
	return len(p.names)
}

// Names returns a copy of the component names, root first.
func (p ComponentPath) Names() []string {
	names := make([]string, len(p.names))
	copy(names, p.names)
	return names
}

// Equal reports whether two paths name the same component sequence.
func (p ComponentPath) Equal(o ComponentPath) bool {
	if len(p.names) != len(o.names) {
		return false
	}
	for i := range p.names {
		if p.names[i] != o.names[i] {
			return false
		}
	}
	return true
}

func (p ComponentPath) String() string {
	return strings.Join(p.names, " -> ")
}
