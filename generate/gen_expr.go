package generate

import (
	"ion/ast"
	"ion/report"
	"ion/walk"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
)

func (g *Generator) VisitIntegerValue(w *walk.Walker, _ ast.NodeID, n *ast.IntegerValue) error {
	typ, err := g.lowerType(w, n.Type)
	if err != nil {
		return err
	}

	intType, ok := typ.(*types.IntType)
	if !ok {
		return report.Internal("integer value of type %s", typ)
	}

	g.constructs.Push(constant.NewInt(intType, n.Value))
	return nil
}

func (g *Generator) VisitCharValue(w *walk.Walker, _ ast.NodeID, n *ast.CharValue) error {
	typ, err := g.lowerType(w, n.Type)
	if err != nil {
		return err
	}

	if !types.Equal(typ, types.I8) {
		return report.Internal("char value of type %s", typ)
	}

	g.constructs.Push(constant.NewInt(types.I8, int64(n.Value)))
	return nil
}

// VisitStringValue lowers a string literal to a constant character array.  The
// string type label itself has no lowering yet so it is not visited.
func (g *Generator) VisitStringValue(_ *walk.Walker, _ ast.NodeID, n *ast.StringValue) error {
	g.constructs.Push(constant.NewCharArrayFromString(n.Value))
	return nil
}

func (g *Generator) VisitBooleanValue(w *walk.Walker, _ ast.NodeID, n *ast.BooleanValue) error {
	typ, err := g.lowerType(w, n.Type)
	if err != nil {
		return err
	}

	if !types.Equal(typ, types.I1) {
		return report.Internal("boolean value of type %s", typ)
	}

	g.constructs.Push(constant.NewBool(n.Value))
	return nil
}

// VisitRef lowers a reference used as an operand: the value is loaded from the
// storage of the construct it is bound to.
func (g *Generator) VisitRef(_ *walk.Walker, _ ast.NodeID, n *ast.Ref) error {
	if !n.IsResolved() {
		return report.Internal("unresolved reference `%s` reached lowering", n.Name)
	}

	if err := g.requireBuilder("reference"); err != nil {
		return err
	}

	ptr, elemType, err := g.addressOf(n.Value)
	if err != nil {
		return err
	}

	g.constructs.Push(g.block.NewLoad(elemType, ptr))
	return nil
}
