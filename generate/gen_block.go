package generate

import (
	"fmt"

	"ion/ast"
	"ion/report"
	"ion/walk"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

func (g *Generator) VisitBlock(w *walk.Walker, _ ast.NodeID, n *ast.Block) error {
	if err := g.requireBuilder("block"); err != nil {
		return err
	}

	for _, stmt := range n.Statements {
		// statements after a terminator are unreachable and not lowered
		if g.block.Term != nil {
			break
		}

		depth := g.constructs.Len()

		if err := w.Visit(stmt); err != nil {
			return err
		}

		// statement results are discarded
		for g.constructs.Len() > depth {
			g.constructs.Pop()
		}
	}

	return nil
}

func (g *Generator) VisitVariableDecl(w *walk.Walker, id ast.NodeID, n *ast.VariableDecl) error {
	if err := g.requireBuilder("variable declaration"); err != nil {
		return err
	}

	typ, err := g.lowerType(w, n.Type)
	if err != nil {
		return err
	}

	alloca := g.block.NewAlloca(typ)
	alloca.SetName(g.localName(n.Name))
	g.allocas[id] = alloca
	g.constructs.Push(alloca)

	val, err := g.lowerValue(w, n.Value)
	if err != nil {
		return err
	}

	g.block.NewStore(g.coerce(val, typ), alloca)
	return nil
}

func (g *Generator) VisitAssignment(w *walk.Walker, _ ast.NodeID, n *ast.Assignment) error {
	if err := g.requireBuilder("assignment"); err != nil {
		return err
	}

	target, err := g.tree.Deref(n.Target)
	if err != nil {
		return report.Internal("assignment target: %s", err)
	}

	ptr, elemType, err := g.addressOf(target)
	if err != nil {
		return err
	}

	val, err := g.lowerValue(w, n.Value)
	if err != nil {
		return err
	}

	g.constructs.Push(g.block.NewStore(g.coerce(val, elemType), ptr))
	return nil
}

func (g *Generator) VisitReturnStatement(w *walk.Walker, _ ast.NodeID, n *ast.ReturnStatement) error {
	if err := g.requireBuilder("return statement"); err != nil {
		return err
	}

	if n.Value == ast.NoNode {
		g.constructs.Push(g.block.NewRet(nil))
		return nil
	}

	val, err := g.lowerValue(w, n.Value)
	if err != nil {
		return err
	}

	g.constructs.Push(g.block.NewRet(g.coerce(val, g.function.Sig.RetType)))
	return nil
}

func (g *Generator) VisitIfStatement(*walk.Walker, ast.NodeID, *ast.IfStatement) error {
	return &report.UnimplementedError{Construct: "if statement"}
}

func (g *Generator) VisitCallStatement(*walk.Walker, ast.NodeID, *ast.CallStatement) error {
	return &report.UnimplementedError{Construct: "call statement"}
}

// -----------------------------------------------------------------------------

// addressOf returns the storage of a variable declaration or global along with
// the type of the value stored there.
func (g *Generator) addressOf(decl ast.NodeID) (value.Value, types.Type, error) {
	if alloca, ok := g.allocas[decl]; ok {
		return alloca, alloca.ElemType, nil
	}

	switch g.tree.Kind(decl) {
	case ast.KindGlobal:
		gl, err := g.tree.Global(decl)
		if err != nil {
			return nil, nil, report.Internal("%s", err)
		}

		if llvmGlobal, ok := g.lookupGlobal(gl.Name); ok {
			return llvmGlobal, llvmGlobal.ContentType, nil
		}

		return nil, nil, report.Internal("global `%s` used before it was lowered", gl.Name)
	case ast.KindVariableDecl:
		return nil, nil, report.Internal("variable used before its declaration was lowered")
	default:
		return nil, nil, report.Internal("a %s has no storage", g.tree.Kind(decl))
	}
}

// coerce converts an integer value to the given integer type by sign
// extension or truncation.  Other values are returned unchanged.
func (g *Generator) coerce(val value.Value, to types.Type) value.Value {
	dst, ok := to.(*types.IntType)
	if !ok {
		return val
	}

	src, ok := val.Type().(*types.IntType)
	if !ok || src.BitSize == dst.BitSize {
		return val
	}

	if c, ok := val.(*constant.Int); ok {
		return constant.NewInt(dst, truncateInt(c.X.Int64(), dst.BitSize))
	}

	if src.BitSize < dst.BitSize {
		return g.block.NewSExt(val, dst)
	}

	return g.block.NewTrunc(val, dst)
}

// truncateInt wraps v to a signed integer of the given bit size.
func truncateInt(v int64, bits uint64) int64 {
	switch {
	case bits >= 64:
		return v
	case bits == 1:
		return v & 1
	}

	shift := 64 - bits
	return v << shift >> shift
}

// localName returns a function-unique name for a local variable.
func (g *Generator) localName(name string) string {
	n := g.localNames[name]
	g.localNames[name] = n + 1

	if n == 0 {
		return name
	}

	return fmt.Sprintf("%s.%d", name, n)
}
