package weft

import "fmt"

// Key identifies what a dependency request asks for: a declared type plus an
// optional qualifier. Keys are the join point between requests and bindings;
// two requests with equal keys are satisfied by the same binding.
//
// A key with a non-empty Contribution tag identifies one individual
// contribution to a multibinding rather than the aggregated collection. The
// aggregate itself is keyed by the same type/qualifier with an empty tag.
type Key struct {
	Type         string
	Qualifier    string
	Contribution string
}

// TypeKey returns a key for a bare type with no qualifier.
func TypeKey(typ string) Key {
	return Key{Type: typ}
}

// QualifiedKey returns a key for a type with a qualifier.
func QualifiedKey(typ, qualifier string) Key {
	return Key{Type: typ, Qualifier: qualifier}
}

// WithContribution returns a copy of the key tagged as an individual
// multibinding contribution.
func (k Key) WithContribution(tag string) Key {
	k.Contribution = tag
	return k
}

// WithoutContribution returns the aggregate key this contribution feeds into.
func (k Key) WithoutContribution() Key {
	k.Contribution = ""
	return k
}

// IsContribution reports whether the key identifies a single multibinding
// contribution.
func (k Key) IsContribution() bool {
	return k.Contribution != ""
}

func (k Key) String() string {
	s := k.Type
	if k.Qualifier != "" {
		s = fmt.Sprintf("@%s %s", k.Qualifier, s)
	}
	if k.Contribution != "" {
		s = fmt.Sprintf("%s [contribution %s]", s, k.Contribution)
	}
	return s
}
