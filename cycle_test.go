package weft

import (
	"strings"
	"testing"
)

// chainSpec binds A -> B -> C -> A with the given request kind on the
// closing edge.
func chainSpec(closing RequestKind) *Spec {
	return &Spec{
		Components: []*ComponentSpec{{
			Name:    "AppComponent",
			Modules: []string{"ChainModule"},
			EntryPoints: []Request{
				{Key: TypeKey("A"), Kind: RequestInstance},
			},
		}},
		Modules: []*ModuleSpec{{
			Name: "ChainModule",
			Bindings: []*BindingSpec{
				{Kind: KindProvision, Key: TypeKey("A"), Requests: []Request{
					{Key: TypeKey("B"), Kind: RequestInstance},
				}},
				{Kind: KindProvision, Key: TypeKey("B"), Requests: []Request{
					{Key: TypeKey("C"), Kind: RequestInstance},
				}},
				{Kind: KindProvision, Key: TypeKey("C"), Requests: []Request{
					{Key: TypeKey("A"), Kind: closing},
				}},
			},
		}},
	}
}

func TestDependencyCycle(t *testing.T) {
	g, err := BuildGraph(chainSpec(RequestInstance), "AppComponent")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	cycles := diagnosticsOfKind(g, DiagCycle)
	if len(cycles) != 1 {
		t.Fatalf("expected exactly 1 cycle diagnostic, got %d", len(cycles))
	}
	d := cycles[0]
	if !strings.Contains(d.Message, "found a dependency cycle") {
		t.Errorf("unexpected message %q", d.Message)
	}
	for _, name := range []string{"A", "B", "C"} {
		if !strings.Contains(d.Message, name+" [ChainModule]") {
			t.Errorf("expected the cycle description to include %s, got %q", name, d.Message)
		}
	}

	// The report lands on the last edge before the cycle; here the entry
	// point itself, so the trace is that single step.
	if d.Edge == NoEdge {
		t.Fatal("expected the diagnostic on an edge")
	}
	if len(d.Trace) != 1 {
		t.Fatalf("expected a 1-step trace, got %d", len(d.Trace))
	}
	if d.Trace[0].Request.Key != TypeKey("A") {
		t.Errorf("expected the trace to stop just before the cycle, got %s", d.Trace[0].Request.Key)
	}
}

func TestProviderBreaksCycle(t *testing.T) {
	g, err := BuildGraph(chainSpec(RequestProvider), "AppComponent")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := diagnosticsOfKind(g, DiagCycle); len(got) != 0 {
		t.Errorf("a provider request legally breaks the cycle, got %v", got)
	}
	if g.HasErrors() {
		t.Errorf("expected no errors, got %v", g.Diagnostics())
	}
}

func TestLazyBreaksCycle(t *testing.T) {
	g, err := BuildGraph(chainSpec(RequestLazy), "AppComponent")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := diagnosticsOfKind(g, DiagCycle); len(got) != 0 {
		t.Errorf("a lazy request legally breaks the cycle, got %v", got)
	}
}

func TestProducerDoesNotBreakCycle(t *testing.T) {
	g, err := BuildGraph(chainSpec(RequestProducer), "AppComponent")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := diagnosticsOfKind(g, DiagCycle); len(got) != 1 {
		t.Errorf("a producer still needs the value at construction time, got %v", got)
	}
}

func TestSelfCycle(t *testing.T) {
	spec := &Spec{
		Components: []*ComponentSpec{{
			Name:    "AppComponent",
			Modules: []string{"M"},
			EntryPoints: []Request{
				{Key: TypeKey("Self"), Kind: RequestInstance},
			},
		}},
		Modules: []*ModuleSpec{{
			Name: "M",
			Bindings: []*BindingSpec{
				{Kind: KindProvision, Key: TypeKey("Self"), Requests: []Request{
					{Key: TypeKey("Self"), Kind: RequestInstance},
				}},
			},
		}},
	}

	g, err := BuildGraph(spec, "AppComponent")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := diagnosticsOfKind(g, DiagCycle); len(got) != 1 {
		t.Fatalf("expected 1 cycle diagnostic for a self edge, got %v", got)
	}
}

func TestFullGraphCycleReportedAtComponent(t *testing.T) {
	g, err := BuildFullGraph(chainSpec(RequestInstance), "AppComponent")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	cycles := diagnosticsOfKind(g, DiagCycle)
	if len(cycles) != 1 {
		t.Fatalf("expected 1 cycle diagnostic, got %d", len(cycles))
	}
	d := cycles[0]
	if d.Edge != NoEdge {
		t.Error("expected no edge context in a full graph")
	}
	if d.Node == NoNode || g.Network().Node(d.Node).Kind != NodeComponent {
		t.Error("expected the diagnostic on the component node")
	}
	if len(d.Trace) != 0 {
		t.Errorf("expected no entry-point trace in a full graph, got %d steps", len(d.Trace))
	}
}
