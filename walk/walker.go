package walk

import (
	"ion/ast"
	"ion/report"
)

// Pass is a single traversal over a tree.  It exposes one handler per
// construct kind; each handler receives the walker driving it so that it can
// recurse into children through Visit or VisitChildren.  A pass instance is
// used for exactly one traversal of one tree.
type Pass interface {
	VisitModule(w *Walker, id ast.NodeID, n *ast.Module) error
	VisitFunction(w *Walker, id ast.NodeID, n *ast.Function) error
	VisitPrototype(w *Walker, id ast.NodeID, n *ast.Prototype) error
	VisitExtern(w *Walker, id ast.NodeID, n *ast.Extern) error
	VisitGlobal(w *Walker, id ast.NodeID, n *ast.Global) error
	VisitBlock(w *Walker, id ast.NodeID, n *ast.Block) error

	VisitVariableDecl(w *Walker, id ast.NodeID, n *ast.VariableDecl) error
	VisitAssignment(w *Walker, id ast.NodeID, n *ast.Assignment) error
	VisitIfStatement(w *Walker, id ast.NodeID, n *ast.IfStatement) error
	VisitReturnStatement(w *Walker, id ast.NodeID, n *ast.ReturnStatement) error
	VisitCallStatement(w *Walker, id ast.NodeID, n *ast.CallStatement) error

	VisitIntegerValue(w *Walker, id ast.NodeID, n *ast.IntegerValue) error
	VisitCharValue(w *Walker, id ast.NodeID, n *ast.CharValue) error
	VisitStringValue(w *Walker, id ast.NodeID, n *ast.StringValue) error
	VisitBooleanValue(w *Walker, id ast.NodeID, n *ast.BooleanValue) error

	VisitType(w *Walker, id ast.NodeID, n *ast.Type) error
	VisitRef(w *Walker, id ast.NodeID, n *ast.Ref) error
	VisitAttribute(w *Walker, id ast.NodeID, n *ast.Attribute) error
	VisitErrorMarker(w *Walker, id ast.NodeID, n *ast.ErrorMarker) error
}

// Walker drives a pass over a tree.
type Walker struct {
	Tree *ast.Tree
	Pass Pass
}

// Run walks the tree from root with the given pass.
func Run(tree *ast.Tree, root ast.NodeID, pass Pass) error {
	w := &Walker{Tree: tree, Pass: pass}
	return w.Visit(root)
}

// Visit dispatches a construct to the handler of its kind.
func (w *Walker) Visit(id ast.NodeID) error {
	switch n := w.Tree.Node(id).(type) {
	case *ast.Module:
		return w.Pass.VisitModule(w, id, n)
	case *ast.Function:
		return w.Pass.VisitFunction(w, id, n)
	case *ast.Prototype:
		return w.Pass.VisitPrototype(w, id, n)
	case *ast.Extern:
		return w.Pass.VisitExtern(w, id, n)
	case *ast.Global:
		return w.Pass.VisitGlobal(w, id, n)
	case *ast.Block:
		return w.Pass.VisitBlock(w, id, n)
	case *ast.VariableDecl:
		return w.Pass.VisitVariableDecl(w, id, n)
	case *ast.Assignment:
		return w.Pass.VisitAssignment(w, id, n)
	case *ast.IfStatement:
		return w.Pass.VisitIfStatement(w, id, n)
	case *ast.ReturnStatement:
		return w.Pass.VisitReturnStatement(w, id, n)
	case *ast.CallStatement:
		return w.Pass.VisitCallStatement(w, id, n)
	case *ast.IntegerValue:
		return w.Pass.VisitIntegerValue(w, id, n)
	case *ast.CharValue:
		return w.Pass.VisitCharValue(w, id, n)
	case *ast.StringValue:
		return w.Pass.VisitStringValue(w, id, n)
	case *ast.BooleanValue:
		return w.Pass.VisitBooleanValue(w, id, n)
	case *ast.Type:
		return w.Pass.VisitType(w, id, n)
	case *ast.Ref:
		return w.Pass.VisitRef(w, id, n)
	case *ast.Attribute:
		return w.Pass.VisitAttribute(w, id, n)
	case *ast.ErrorMarker:
		return w.Pass.VisitErrorMarker(w, id, n)
	case nil:
		return report.Internal("visit of invalid construct %d", id)
	default:
		return report.Internal("no handler for construct kind %s", n.Kind())
	}
}

// VisitChildren visits each child of a construct in order, stopping at the
// first error.
func (w *Walker) VisitChildren(id ast.NodeID) error {
	for _, child := range w.Tree.Children(id) {
		if err := w.Visit(child); err != nil {
			return err
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

// BasePass is embedded by passes to inherit a default handler for every kind:
// the default simply visits the construct's children.
type BasePass struct{}

func (BasePass) VisitModule(w *Walker, id ast.NodeID, _ *ast.Module) error {
	return w.VisitChildren(id)
}

func (BasePass) VisitFunction(w *Walker, id ast.NodeID, _ *ast.Function) error {
	return w.VisitChildren(id)
}

func (BasePass) VisitPrototype(w *Walker, id ast.NodeID, _ *ast.Prototype) error {
	return w.VisitChildren(id)
}

func (BasePass) VisitExtern(w *Walker, id ast.NodeID, _ *ast.Extern) error {
	return w.VisitChildren(id)
}

func (BasePass) VisitGlobal(w *Walker, id ast.NodeID, _ *ast.Global) error {
	return w.VisitChildren(id)
}

func (BasePass) VisitBlock(w *Walker, id ast.NodeID, _ *ast.Block) error {
	return w.VisitChildren(id)
}

func (BasePass) VisitVariableDecl(w *Walker, id ast.NodeID, _ *ast.VariableDecl) error {
	return w.VisitChildren(id)
}

func (BasePass) VisitAssignment(w *Walker, id ast.NodeID, _ *ast.Assignment) error {
	return w.VisitChildren(id)
}

func (BasePass) VisitIfStatement(w *Walker, id ast.NodeID, _ *ast.IfStatement) error {
	return w.VisitChildren(id)
}

func (BasePass) VisitReturnStatement(w *Walker, id ast.NodeID, _ *ast.ReturnStatement) error {
	return w.VisitChildren(id)
}

func (BasePass) VisitCallStatement(w *Walker, id ast.NodeID, _ *ast.CallStatement) error {
	return w.VisitChildren(id)
}

func (BasePass) VisitIntegerValue(w *Walker, id ast.NodeID, _ *ast.IntegerValue) error {
	return w.VisitChildren(id)
}

func (BasePass) VisitCharValue(w *Walker, id ast.NodeID, _ *ast.CharValue) error {
	return w.VisitChildren(id)
}

func (BasePass) VisitStringValue(w *Walker, id ast.NodeID, _ *ast.StringValue) error {
	return w.VisitChildren(id)
}

func (BasePass) VisitBooleanValue(w *Walker, id ast.NodeID, _ *ast.BooleanValue) error {
	return w.VisitChildren(id)
}

func (BasePass) VisitType(*Walker, ast.NodeID, *ast.Type) error { return nil }

func (BasePass) VisitRef(*Walker, ast.NodeID, *ast.Ref) error { return nil }

func (BasePass) VisitAttribute(*Walker, ast.NodeID, *ast.Attribute) error { return nil }

func (BasePass) VisitErrorMarker(*Walker, ast.NodeID, *ast.ErrorMarker) error { return nil }
