package resolve

import (
	"ion/ast"
	"ion/walk"
)

// collector gathers every unresolved reference reachable from a root.
type collector struct {
	walk.BasePass

	refs []ast.NodeID
}

func (c *collector) VisitRef(_ *walk.Walker, id ast.NodeID, n *ast.Ref) error {
	if !n.IsResolved() {
		c.refs = append(c.refs, id)
	}

	return nil
}

// Unresolved returns the references reachable from root that are not yet
// bound, in traversal order.
func Unresolved(tree *ast.Tree, root ast.NodeID) ([]ast.NodeID, error) {
	c := &collector{}
	if err := walk.Run(tree, root, c); err != nil {
		return nil, err
	}

	return c.refs, nil
}
