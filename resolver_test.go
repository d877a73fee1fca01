package weft

import "testing"

func moduleNames(mods []*ModuleSpec) []string {
	names := make([]string, len(mods))
	for i, m := range mods {
		names[i] = m.Name
	}
	return names
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTransitiveModulesBreadthFirst(t *testing.T) {
	spec := &Spec{
		Components: []*ComponentSpec{{
			Name:    "AppComponent",
			Modules: []string{"A", "B"},
		}},
		Modules: []*ModuleSpec{
			{Name: "A", Includes: []string{"C", "D"}},
			{Name: "B", Includes: []string{"C"}},
			{Name: "C"},
			{Name: "D", Includes: []string{"E"}},
			{Name: "E"},
		},
	}
	sess := newSession(spec)

	got := moduleNames(sess.transitiveModules(spec.Components[0]))
	want := []string{"A", "B", "C", "D", "E"}
	if !equalStrings(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	// Memoized: the same slice comes back.
	again := moduleNames(sess.transitiveModules(spec.Components[0]))
	if !equalStrings(again, want) {
		t.Errorf("expected memoized result %v, got %v", want, again)
	}
}

func TestOwnedModulesExcludeInherited(t *testing.T) {
	spec := &Spec{
		Components: []*ComponentSpec{
			{Name: "ParentComponent", Modules: []string{"Shared", "ParentOnly"}},
			{Name: "ChildComponent", Subcomponent: true, Modules: []string{"Shared", "ChildOnly"}},
		},
		Modules: []*ModuleSpec{
			{Name: "Shared"},
			{Name: "ParentOnly"},
			{Name: "ChildOnly"},
		},
	}
	sess := newSession(spec)

	parent := RootPath("ParentComponent")
	child := parent.Child("ChildComponent")

	if got := moduleNames(sess.ownedModules(parent)); !equalStrings(got, []string{"Shared", "ParentOnly"}) {
		t.Errorf("unexpected parent modules %v", got)
	}
	if got := moduleNames(sess.ownedModules(child)); !equalStrings(got, []string{"ChildOnly"}) {
		t.Errorf("expected the child to own only ChildOnly, got %v", got)
	}
}

func TestLocalDeclarationsSynthesized(t *testing.T) {
	spec := &Spec{
		Components: []*ComponentSpec{
			{
				Name:    "AppComponent",
				Modules: []string{"M"},
				Dependencies: []DependencySpec{
					{Type: "LoggingComponent", Provisions: []Key{TypeKey("Logger")}},
				},
				BoundInstances: []Key{TypeKey("Flags")},
			},
			{Name: "ChildComponent", Subcomponent: true, Creator: "ChildBuilder"},
		},
		Modules: []*ModuleSpec{{
			Name:          "M",
			Subcomponents: []string{"ChildComponent"},
			Bindings: []*BindingSpec{
				{Kind: KindProvision, Key: TypeKey("Server")},
			},
		}},
	}
	sess := newSession(spec)

	decls := sess.localDeclarations(RootPath("AppComponent"))
	wantKinds := []BindingKind{
		KindProvision,           // module binding first
		KindComponent,           // the component instance itself
		KindComponentDependency, // the dependency instance
		KindComponentProvision,  // Logger
		KindBoundInstance,       // Flags
		KindSubcomponentCreator, // ChildBuilder
	}
	if len(decls) != len(wantKinds) {
		t.Fatalf("expected %d declarations, got %d", len(wantKinds), len(decls))
	}
	for i, d := range decls {
		if d.spec.Kind != wantKinds[i] {
			t.Errorf("declaration %d: expected %s, got %s", i, wantKinds[i], d.spec.Kind)
		}
		if d.order != i {
			t.Errorf("declaration %d: expected order %d, got %d", i, i, d.order)
		}
	}

	creator := decls[len(decls)-1]
	if creator.spec.Key != TypeKey("ChildBuilder") || creator.child != "ChildComponent" {
		t.Errorf("unexpected creator declaration %v", creator.spec.Key)
	}
}

func TestResolveChildMostFirst(t *testing.T) {
	spec := &Spec{
		Components: []*ComponentSpec{
			{Name: "ParentComponent", Modules: []string{"PM"}},
			{Name: "ChildComponent", Subcomponent: true, Modules: []string{"CM"}},
		},
		Modules: []*ModuleSpec{
			{Name: "PM", Bindings: []*BindingSpec{{Kind: KindProvision, Key: TypeKey("Config")}}},
			{Name: "CM", Bindings: []*BindingSpec{{Kind: KindProvision, Key: TypeKey("Config")}}},
		},
	}
	sess := newSession(spec)

	child := RootPath("ParentComponent").Child("ChildComponent")
	res := sess.resolve(TypeKey("Config"), child)
	if !res.found() {
		t.Fatal("expected Config to resolve")
	}
	if len(res.declarations) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(res.declarations))
	}
	if res.declarations[0].module != "CM" {
		t.Errorf("expected the child-most declaration first, got %q", res.declarations[0].module)
	}
	if res.declarations[1].module != "PM" {
		t.Errorf("expected the parent declaration second, got %q", res.declarations[1].module)
	}
}

func TestResolveContributionsRootMostFirst(t *testing.T) {
	item := TypeKey("Item")
	spec := &Spec{
		Components: []*ComponentSpec{
			{Name: "ParentComponent", Modules: []string{"PM"}},
			{Name: "ChildComponent", Subcomponent: true, Modules: []string{"CM"}},
		},
		Modules: []*ModuleSpec{
			{Name: "PM", Bindings: []*BindingSpec{
				{Kind: KindProvision, Key: item.WithContribution("a")},
			}},
			{Name: "CM", Bindings: []*BindingSpec{
				{Kind: KindProvision, Key: item.WithContribution("b")},
			}},
		},
	}
	sess := newSession(spec)

	child := RootPath("ParentComponent").Child("ChildComponent")
	res := sess.resolve(item, child)
	if !res.multibinding {
		t.Fatal("expected a multibinding resolution")
	}
	if len(res.contributions) != 2 {
		t.Fatalf("expected 2 contributions, got %d", len(res.contributions))
	}
	if res.contributions[0].spec.Key.Contribution != "a" {
		t.Errorf("expected the root-most contribution first, got %q", res.contributions[0].spec.Key.Contribution)
	}
	if res.contributions[1].spec.Key.Contribution != "b" {
		t.Errorf("expected the child contribution second, got %q", res.contributions[1].spec.Key.Contribution)
	}
}
