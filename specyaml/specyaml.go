// Package specyaml decodes graph specifications from YAML documents. It is
// the interchange surface for front ends that emit their extracted model as
// a file instead of constructing the spec in process.
package specyaml

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	weft "github.com/weft-fn/weft-go"
)

type document struct {
	Components []component `yaml:"components"`
	Modules    []module    `yaml:"modules"`
	Types      []typeDecl  `yaml:"types"`
}

type component struct {
	Name           string          `yaml:"name"`
	Package        string          `yaml:"package"`
	Subcomponent   bool            `yaml:"subcomponent"`
	Creator        string          `yaml:"creator"`
	Modules        []string        `yaml:"modules"`
	Dependencies   []dependency    `yaml:"dependencies"`
	Scopes         []string        `yaml:"scopes"`
	EntryPoints    []request       `yaml:"entry-points"`
	BoundInstances []key           `yaml:"bound-instances"`
	FactoryMethods []factoryMethod `yaml:"factory-methods"`
}

type factoryMethod struct {
	Name   string   `yaml:"name"`
	Child  string   `yaml:"child"`
	Params []string `yaml:"params"`
}

type dependency struct {
	Type       string `yaml:"type"`
	Provisions []key  `yaml:"provisions"`
}

type module struct {
	Name          string    `yaml:"name"`
	Includes      []string  `yaml:"includes"`
	Subcomponents []string  `yaml:"subcomponents"`
	Scopes        []string  `yaml:"scopes"`
	Bindings      []binding `yaml:"bindings"`
}

type binding struct {
	Kind            string    `yaml:"kind"`
	Key             key       `yaml:"key"`
	Scope           string    `yaml:"scope"`
	Requests        []request `yaml:"requests"`
	MapKey          string    `yaml:"map-key"`
	ElementsIntoSet bool      `yaml:"elements-into-set"`
}

type request struct {
	Key key `yaml:"key"`
	// Kind defaults to "instance" when omitted.
	Kind string `yaml:"kind"`
}

type key struct {
	Type         string `yaml:"type"`
	Qualifier    string `yaml:"qualifier"`
	Contribution string `yaml:"contribution"`
}

type typeDecl struct {
	Name     string `yaml:"name"`
	Package  string `yaml:"package"`
	Exported bool   `yaml:"exported"`
}

// Parse decodes a YAML specification document.
func Parse(data []byte) (*weft.Spec, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding specification: %w", err)
	}
	return doc.convert()
}

// ParseFile decodes a YAML specification from a file.
func ParseFile(path string) (*weft.Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading specification: %w", err)
	}
	return Parse(data)
}

func (d *document) convert() (*weft.Spec, error) {
	spec := &weft.Spec{}

	for _, c := range d.Components {
		entryPoints, err := convertRequests(c.EntryPoints)
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", c.Name, err)
		}
		cs := &weft.ComponentSpec{
			Name:         c.Name,
			Package:      c.Package,
			Subcomponent: c.Subcomponent,
			Creator:      c.Creator,
			Modules:      c.Modules,
			Scopes:       c.Scopes,
			EntryPoints:  entryPoints,
		}
		for _, dep := range c.Dependencies {
			cs.Dependencies = append(cs.Dependencies, weft.DependencySpec{
				Type:       dep.Type,
				Provisions: convertKeys(dep.Provisions),
			})
		}
		cs.BoundInstances = convertKeys(c.BoundInstances)
		for _, fm := range c.FactoryMethods {
			cs.FactoryMethods = append(cs.FactoryMethods, weft.FactoryMethodSpec{
				Name:   fm.Name,
				Child:  fm.Child,
				Params: fm.Params,
			})
		}
		spec.Components = append(spec.Components, cs)
	}

	for _, m := range d.Modules {
		ms := &weft.ModuleSpec{
			Name:          m.Name,
			Includes:      m.Includes,
			Subcomponents: m.Subcomponents,
			Scopes:        m.Scopes,
		}
		for _, b := range m.Bindings {
			kind, err := bindingKind(b.Kind)
			if err != nil {
				return nil, fmt.Errorf("module %q: %w", m.Name, err)
			}
			requests, err := convertRequests(b.Requests)
			if err != nil {
				return nil, fmt.Errorf("module %q, binding %s: %w", m.Name, b.Key.convert(), err)
			}
			ms.Bindings = append(ms.Bindings, &weft.BindingSpec{
				Kind:            kind,
				Key:             b.Key.convert(),
				Scope:           b.Scope,
				Requests:        requests,
				MapKey:          b.MapKey,
				ElementsIntoSet: b.ElementsIntoSet,
			})
		}
		spec.Modules = append(spec.Modules, ms)
	}

	for _, t := range d.Types {
		spec.Types = append(spec.Types, &weft.TypeSpec{
			Name:     t.Name,
			Package:  t.Package,
			Exported: t.Exported,
		})
	}

	return spec, nil
}

func (k key) convert() weft.Key {
	return weft.Key{Type: k.Type, Qualifier: k.Qualifier, Contribution: k.Contribution}
}

func convertKeys(in []key) []weft.Key {
	var out []weft.Key
	for _, k := range in {
		out = append(out, k.convert())
	}
	return out
}

func convertRequests(in []request) ([]weft.Request, error) {
	var out []weft.Request
	for _, r := range in {
		kind, err := requestKind(r.Kind)
		if err != nil {
			return nil, err
		}
		out = append(out, weft.Request{Key: r.Key.convert(), Kind: kind})
	}
	return out, nil
}

func bindingKind(name string) (weft.BindingKind, error) {
	switch name {
	case "injection":
		return weft.KindInjection, nil
	case "provision":
		return weft.KindProvision, nil
	case "assisted-injection":
		return weft.KindAssistedInjection, nil
	case "assisted-factory":
		return weft.KindAssistedFactory, nil
	case "members-injector":
		return weft.KindMembersInjector, nil
	case "multibound-set":
		return weft.KindMultiboundSet, nil
	case "multibound-map":
		return weft.KindMultiboundMap, nil
	case "optional":
		return weft.KindOptional, nil
	case "delegate":
		return weft.KindDelegate, nil
	case "members-injection":
		return weft.KindMembersInjection, nil
	}
	return 0, fmt.Errorf("unknown binding kind %q", name)
}

func requestKind(name string) (weft.RequestKind, error) {
	switch name {
	case "", "instance":
		return weft.RequestInstance, nil
	case "provider":
		return weft.RequestProvider, nil
	case "lazy":
		return weft.RequestLazy, nil
	case "provider-of-lazy":
		return weft.RequestProviderOfLazy, nil
	case "producer":
		return weft.RequestProducer, nil
	}
	return 0, fmt.Errorf("unknown request kind %q", name)
}
