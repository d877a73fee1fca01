package render

import (
	"fmt"

	"github.com/m1gwings/treedrawer/tree"

	weft "github.com/weft-fn/weft-go"
)

// ComponentTree draws the component hierarchy of a graph as a boxed tree,
// one node per component labeled with its name, declared scopes and the
// number of bindings it owns.
func ComponentTree(g *weft.Graph) (string, error) {
	root := g.Root()
	t := tree.NewTree(tree.NodeString(componentLabel(root)))
	if err := addSubgraphs(t, root); err != nil {
		return "", err
	}
	return t.String(), nil
}

func addSubgraphs(t *tree.Tree, cg *weft.ComponentGraph) error {
	for i, sub := range cg.Subgraphs() {
		t.AddChild(tree.NodeString(componentLabel(sub)))
		child, err := t.Child(i)
		if err != nil {
			return fmt.Errorf("drawing component tree at %s: %w", sub.Path(), err)
		}
		if err := addSubgraphs(child, sub); err != nil {
			return err
		}
	}
	return nil
}

func componentLabel(cg *weft.ComponentGraph) string {
	label := cg.Path().Current()
	for _, scope := range cg.DeclaredScopes() {
		label += " @" + scope
	}
	return fmt.Sprintf("%s (%d bindings)", label, len(cg.LocalBindings()))
}
