package weft

// RequestKind describes how a dependency wants its value delivered.
type RequestKind uint8

const (
	// RequestInstance asks for the value itself, constructed eagerly.
	RequestInstance RequestKind = iota
	// RequestProvider asks for a provider that constructs on demand.
	RequestProvider
	// RequestLazy asks for a memoizing on-demand wrapper.
	RequestLazy
	// RequestProviderOfLazy asks for a provider of lazy wrappers.
	RequestProviderOfLazy
	// RequestProducer asks for an asynchronous producer of the value.
	RequestProducer
)

// DefersEvaluation reports whether the request kind delays instantiation
// past construction time. Deferred requests legitimately break dependency
// cycles; a producer does not, since the produced value is still needed to
// finish construction.
func (k RequestKind) DefersEvaluation() bool {
	switch k {
	case RequestProvider, RequestLazy, RequestProviderOfLazy:
		return true
	case RequestInstance, RequestProducer:
		return false
	}
	return false
}

func (k RequestKind) String() string {
	switch k {
	case RequestInstance:
		return "instance"
	case RequestProvider:
		return "provider"
	case RequestLazy:
		return "lazy"
	case RequestProviderOfLazy:
		return "provider-of-lazy"
	case RequestProducer:
		return "producer"
	}
	return "unknown"
}

// Request is one dependency request: a key plus the kind of access wanted.
type Request struct {
	Key  Key
	Kind RequestKind
}

// BindingKind enumerates every way a key can be satisfied. The set is
// closed; consumers switch exhaustively over it.
type BindingKind uint8

const (
	// KindInjection is constructor injection of a concrete type.
	KindInjection BindingKind = iota
	// KindProvision is a factory method declared on a module.
	KindProvision
	// KindAssistedInjection is constructor injection with caller-supplied
	// assisted parameters.
	KindAssistedInjection
	// KindAssistedFactory is a factory for an assisted-injection type.
	KindAssistedFactory
	// KindComponent provides the component instance itself.
	KindComponent
	// KindComponentProvision is a provision method on a component dependency.
	KindComponentProvision
	// KindComponentDependency provides the instance of a component dependency.
	KindComponentDependency
	// KindMembersInjector provides a members injector for a type.
	KindMembersInjector
	// KindSubcomponentCreator provides a subcomponent builder or factory.
	KindSubcomponentCreator
	// KindBoundInstance is an instance bound on the component creator.
	KindBoundInstance
	// KindMultiboundSet is the synthesized aggregate of set contributions.
	KindMultiboundSet
	// KindMultiboundMap is the synthesized aggregate of map contributions.
	KindMultiboundMap
	// KindOptional wraps a key that may or may not be bound.
	KindOptional
	// KindDelegate forwards requests for one key to another key.
	KindDelegate
	// KindMembersInjection is a members-injection method on a component.
	KindMembersInjection
)

// IsMultibinding reports whether the kind is a multibinding aggregate
// itself, not a contribution to one.
func (k BindingKind) IsMultibinding() bool {
	switch k {
	case KindMultiboundSet, KindMultiboundMap:
		return true
	default:
		return false
	}
}

func (k BindingKind) String() string {
	switch k {
	case KindInjection:
		return "injection"
	case KindProvision:
		return "provision"
	case KindAssistedInjection:
		return "assisted-injection"
	case KindAssistedFactory:
		return "assisted-factory"
	case KindComponent:
		return "component"
	case KindComponentProvision:
		return "component-provision"
	case KindComponentDependency:
		return "component-dependency"
	case KindMembersInjector:
		return "members-injector"
	case KindSubcomponentCreator:
		return "subcomponent-creator"
	case KindBoundInstance:
		return "bound-instance"
	case KindMultiboundSet:
		return "multibound-set"
	case KindMultiboundMap:
		return "multibound-map"
	case KindOptional:
		return "optional"
	case KindDelegate:
		return "delegate"
	case KindMembersInjection:
		return "members-injection"
	}
	return "unknown"
}

// Binding is a resolved, owned way to satisfy a key. One Binding value
// exists per owning component; components that inherit the binding
// reference the owner's node instead of duplicating it.
type Binding struct {
	Kind  BindingKind
	Key   Key
	Owner ComponentPath
	Scope string
	// Requests are the binding's dependency requests in declaration order.
	Requests []Request
	// DeclaredIn names the module (or component, for synthesized bindings)
	// that declared this binding.
	DeclaredIn string
	// MapKey is the map key value for map-multibinding contributions.
	MapKey string
	// ElementsIntoSet marks a bulk elements-into-collection contribution.
	ElementsIntoSet bool
}

// Scoped reports whether the binding declares a scope and therefore
// requires at-most-once-per-scope-instance caching in generated code.
func (b *Binding) Scoped() bool {
	return b.Scope != ""
}
