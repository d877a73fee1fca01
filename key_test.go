package weft

import "testing"

func TestKeyString(t *testing.T) {
	cases := []struct {
		key  Key
		want string
	}{
		{TypeKey("Server"), "Server"},
		{QualifiedKey("Client", "Admin"), "@Admin Client"},
		{TypeKey("Item").WithContribution("a"), "Item [contribution a]"},
		{QualifiedKey("Item", "Q").WithContribution("a"), "@Q Item [contribution a]"},
	}
	for _, tc := range cases {
		if got := tc.key.String(); got != tc.want {
			t.Errorf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestKeyContributionRoundTrip(t *testing.T) {
	aggregate := QualifiedKey("Handler", "Web")
	contribution := aggregate.WithContribution("login")

	if !contribution.IsContribution() {
		t.Error("expected a contribution key")
	}
	if aggregate.IsContribution() {
		t.Error("expected the aggregate key to not be a contribution")
	}
	if contribution.WithoutContribution() != aggregate {
		t.Errorf("expected the contribution to map back to %s, got %s",
			aggregate, contribution.WithoutContribution())
	}
}

func TestPathChildDoesNotAlias(t *testing.T) {
	root := RootPath("A")
	b := root.Child("B")
	c := root.Child("C")

	if b.String() != "A -> B" || c.String() != "A -> C" {
		t.Errorf("expected independent children, got %s and %s", b, c)
	}
	if !b.Parent().Equal(root) {
		t.Errorf("expected parent A, got %s", b.Parent())
	}
	if !root.Parent().Equal(root) {
		t.Errorf("expected the root to be its own parent, got %s", root.Parent())
	}
}

func TestPathPrefix(t *testing.T) {
	p := RootPath("A").Child("B").Child("C")
	if p.Len() != 3 || p.Current() != "C" || p.Root() != "A" {
		t.Fatalf("unexpected path %s", p)
	}
	if got := p.Prefix(2); got.String() != "A -> B" {
		t.Errorf("expected A -> B, got %s", got)
	}
	if p.AtRoot() {
		t.Error("expected a nested path")
	}
}
