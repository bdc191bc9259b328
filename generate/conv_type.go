package generate

import (
	"fmt"

	"ion/ast"
	"ion/report"
	"ion/walk"

	"github.com/llir/llvm/ir/types"
)

func (g *Generator) VisitType(_ *walk.Walker, _ ast.NodeID, n *ast.Type) error {
	var typ types.Type
	var err error

	switch n.TypeKind {
	case ast.TypeVoid:
		typ = g.visitVoidType()
	case ast.TypeBoolean:
		typ = g.visitBooleanType()
	case ast.TypeInteger:
		typ, err = g.visitIntegerType(n)
	case ast.TypeFloat:
		typ, err = g.visitFloatType(n)
	case ast.TypeChar:
		typ = types.I8
	case ast.TypeString:
		return &report.UnimplementedError{Construct: "string type"}
	case ast.TypeUserDefined:
		return &report.UnimplementedError{Construct: fmt.Sprintf("user-defined type `%s`", n.Name)}
	default:
		return report.Internal("unknown type kind %d", n.TypeKind)
	}

	if err != nil {
		return err
	}

	if n.Pointer {
		// LLVM has no void pointers
		if types.Equal(typ, types.Void) {
			typ = types.I8Ptr
		} else {
			typ = types.NewPointer(typ)
		}
	}

	g.types.Push(typ)
	return nil
}

func (g *Generator) visitVoidType() types.Type {
	return types.Void
}

func (g *Generator) visitBooleanType() types.Type {
	return types.I1
}

func (g *Generator) visitIntegerType(n *ast.Type) (types.Type, error) {
	switch n.IntegerKind {
	case ast.Int8:
		return types.I8, nil
	case ast.Int16:
		return types.I16, nil
	case ast.Int32:
		return types.I32, nil
	case ast.Int64:
		return types.I64, nil
	case ast.Int128:
		return types.I128, nil
	}

	return nil, report.Internal("unknown integer kind %d", n.IntegerKind)
}

func (g *Generator) visitFloatType(n *ast.Type) (types.Type, error) {
	switch n.FloatWidth {
	case 16:
		return types.Half, nil
	case 32:
		return types.Float, nil
	case 64:
		return types.Double, nil
	}

	return nil, report.Internal("unsupported float width %d", n.FloatWidth)
}
