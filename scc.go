package weft

// stronglyConnected computes strongly connected components with Tarjan's
// algorithm over nodes 0..n-1, returning them in reverse topological order.
// The implementation uses an explicit frame stack instead of recursion so
// deep dependency chains cannot overflow the goroutine stack.
func stronglyConnected(n int, successors func(NodeID) []NodeID) [][]NodeID {
	const unvisited = -1

	index := make([]int, n)
	lowlink := make([]int, n)
	onStack := make([]bool, n)
	for i := range index {
		index[i] = unvisited
	}

	var (
		counter int
		stack   []NodeID
		sccs    [][]NodeID
	)

	type frame struct {
		node NodeID
		succ []NodeID
		next int
	}

	for start := 0; start < n; start++ {
		if index[start] != unvisited {
			continue
		}

		frames := []frame{{node: NodeID(start), succ: successors(NodeID(start))}}
		index[start] = counter
		lowlink[start] = counter
		counter++
		stack = append(stack, NodeID(start))
		onStack[start] = true

		for len(frames) > 0 {
			f := &frames[len(frames)-1]

			if f.next < len(f.succ) {
				next := f.succ[f.next]
				f.next++
				if index[next] == unvisited {
					index[next] = counter
					lowlink[next] = counter
					counter++
					stack = append(stack, next)
					onStack[next] = true
					frames = append(frames, frame{node: next, succ: successors(next)})
				} else if onStack[next] {
					if index[next] < lowlink[f.node] {
						lowlink[f.node] = index[next]
					}
				}
				continue
			}

			// All successors handled; close the frame.
			node := f.node
			frames = frames[:len(frames)-1]
			if len(frames) > 0 {
				parent := frames[len(frames)-1].node
				if lowlink[node] < lowlink[parent] {
					lowlink[parent] = lowlink[node]
				}
			}

			if lowlink[node] == index[node] {
				var scc []NodeID
				for {
					top := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[top] = false
					scc = append(scc, top)
					if top == node {
						break
					}
				}
				sccs = append(sccs, scc)
			}
		}
	}

	return sccs
}
