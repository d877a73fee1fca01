package weft

import (
	"errors"
	"testing"
)

func TestMalformedSpecs(t *testing.T) {
	cases := []struct {
		name string
		spec *Spec
	}{
		{
			name: "empty component name",
			spec: &Spec{Components: []*ComponentSpec{{Name: ""}}},
		},
		{
			name: "duplicate component name",
			spec: &Spec{Components: []*ComponentSpec{{Name: "A"}, {Name: "A"}}},
		},
		{
			name: "duplicate module name",
			spec: &Spec{Modules: []*ModuleSpec{{Name: "M"}, {Name: "M"}}},
		},
		{
			name: "unknown include",
			spec: &Spec{Modules: []*ModuleSpec{{Name: "M", Includes: []string{"Nope"}}}},
		},
		{
			name: "unknown installed module",
			spec: &Spec{Components: []*ComponentSpec{{Name: "A", Modules: []string{"Nope"}}}},
		},
		{
			name: "empty binding key",
			spec: &Spec{Modules: []*ModuleSpec{{
				Name:     "M",
				Bindings: []*BindingSpec{{Kind: KindProvision}},
			}}},
		},
		{
			name: "empty request key",
			spec: &Spec{Modules: []*ModuleSpec{{
				Name: "M",
				Bindings: []*BindingSpec{{
					Kind:     KindProvision,
					Key:      TypeKey("T"),
					Requests: []Request{{}},
				}},
			}}},
		},
		{
			name: "empty entry point key",
			spec: &Spec{Components: []*ComponentSpec{{
				Name:        "A",
				EntryPoints: []Request{{}},
			}}},
		},
		{
			name: "factory method without child",
			spec: &Spec{Components: []*ComponentSpec{{
				Name:           "A",
				FactoryMethods: []FactoryMethodSpec{{Name: "f"}},
			}}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildGraph(tc.spec, "A")
			if !errors.Is(err, ErrMalformedSpec) {
				t.Fatalf("expected ErrMalformedSpec, got %v", err)
			}
		})
	}
}

func TestWellFormedSpec(t *testing.T) {
	if err := serverSpec().validate(); err != nil {
		t.Fatalf("expected a valid spec, got %v", err)
	}
}
