package weft

import "testing"

// diamondNetwork builds a -> b -> d and a -> c -> d, with b before c.
func diamondNetwork() (*Network, []NodeID) {
	net := NewNetwork(false)
	path := RootPath("C")
	ids := make([]NodeID, 4)
	for i, name := range []string{"a", "b", "c", "d"} {
		ids[i] = net.AddNode(Node{Kind: NodeBinding, Path: path, Key: TypeKey(name)})
	}
	link := func(from, to NodeID) {
		net.AddEdge(Edge{Kind: EdgeDependency, Source: from, Target: to})
	}
	link(ids[0], ids[1])
	link(ids[0], ids[2])
	link(ids[1], ids[3])
	link(ids[2], ids[3])
	return net, ids
}

func TestShortestPath(t *testing.T) {
	net, ids := diamondNetwork()

	path := net.ShortestPath(ids[0], ids[3], nil)
	if len(path) != 3 {
		t.Fatalf("expected a 3-node path, got %v", path)
	}
	// Ties break on edge insertion order, so the b branch wins.
	if path[1] != ids[1] {
		t.Errorf("expected the path through b, got node %d", path[1])
	}

	if path := net.ShortestPath(ids[3], ids[0], nil); path != nil {
		t.Errorf("expected no reverse path, got %v", path)
	}
	if path := net.ShortestPath(ids[2], ids[2], nil); len(path) != 1 {
		t.Errorf("expected a trivial self path, got %v", path)
	}
}

func TestShortestPathFiltered(t *testing.T) {
	net, ids := diamondNetwork()

	// Filtering out the direct a->b edge forces the c branch.
	notFirst := func(e *Edge) bool {
		return !(e.Source == ids[0] && e.Target == ids[1])
	}
	path := net.ShortestPath(ids[0], ids[3], notFirst)
	if len(path) != 3 || path[1] != ids[2] {
		t.Errorf("expected the path through c, got %v", path)
	}
}

func TestSuccessorsDeduplicated(t *testing.T) {
	net, ids := diamondNetwork()
	// A parallel edge does not produce a duplicate successor.
	net.AddEdge(Edge{Kind: EdgeDependency, Source: ids[0], Target: ids[1]})

	succ := net.Successors(ids[0], nil)
	if len(succ) != 2 {
		t.Errorf("expected 2 distinct successors, got %v", succ)
	}
}

func TestStronglyConnectedComponents(t *testing.T) {
	net, ids := diamondNetwork()
	// Close a cycle between b and d.
	net.AddEdge(Edge{Kind: EdgeDependency, Source: ids[3], Target: ids[1]})

	sccs := net.StronglyConnected()
	var cyclic [][]NodeID
	for _, scc := range sccs {
		if len(scc) > 1 {
			cyclic = append(cyclic, scc)
		}
	}
	if len(cyclic) != 1 {
		t.Fatalf("expected exactly 1 nontrivial component, got %v", sccs)
	}
	members := map[NodeID]bool{}
	for _, id := range cyclic[0] {
		members[id] = true
	}
	if len(members) != 2 || !members[ids[1]] || !members[ids[3]] {
		t.Errorf("expected the b/d component, got %v", cyclic[0])
	}
}

func TestComponentNodeLookup(t *testing.T) {
	net := NewNetwork(false)
	root := RootPath("AppComponent")
	id := net.AddNode(Node{Kind: NodeComponent, Path: root, Real: true})

	got, ok := net.ComponentNode(root)
	if !ok || got != id {
		t.Fatalf("expected component lookup to find node %d, got %d (%v)", id, got, ok)
	}
	if net.RootComponent() != id {
		t.Errorf("expected node %d as the root component", id)
	}
	if _, ok := net.ComponentNode(root.Child("Nope")); ok {
		t.Error("expected no node for an unknown path")
	}
}
