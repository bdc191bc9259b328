package generate

import (
	"ion/ast"
	"ion/report"
	"ion/walk"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
)

// funcAttrs maps source attributes to the LLVM function attributes they
// lower to.
var funcAttrs = map[string]enum.FuncAttr{
	"inline":   enum.FuncAttrInlineHint,
	"noinline": enum.FuncAttrNoInline,
	"cold":     enum.FuncAttrCold,
}

func (g *Generator) VisitFunction(w *walk.Walker, _ ast.NodeID, n *ast.Function) error {
	if err := g.requireModule("function"); err != nil {
		return err
	}

	proto, err := g.tree.Prototype(n.Prototype)
	if err != nil {
		return report.Internal("function without prototype: %s", err)
	}

	llvmFunc, err := g.lowerPrototype(w, proto)
	if err != nil {
		return err
	}

	if err := g.applyAttributes(llvmFunc, n.Attributes); err != nil {
		return err
	}

	g.function = llvmFunc
	g.block = llvmFunc.NewBlock("entry")
	g.localNames = make(map[string]int)
	defer func() {
		g.function = nil
		g.block = nil
		g.localNames = nil
	}()

	if err := w.Visit(n.Body); err != nil {
		return err
	}

	// the last block must always end in a terminator
	if g.block.Term == nil {
		if types.Equal(llvmFunc.Sig.RetType, types.Void) {
			g.block.NewRet(nil)
		} else {
			g.block.NewUnreachable()
		}
	}

	g.constructs.Push(llvmFunc)
	return nil
}

func (g *Generator) VisitExtern(w *walk.Walker, _ ast.NodeID, n *ast.Extern) error {
	if err := g.requireModule("extern"); err != nil {
		return err
	}

	proto, err := g.tree.Prototype(n.Prototype)
	if err != nil {
		return report.Internal("extern without prototype: %s", err)
	}

	if _, exists := g.lookupFunc(proto.Name); exists {
		return &report.RedefinitionError{Kind: "extern", Name: proto.Name}
	}

	llvmFunc, err := g.lowerPrototype(w, proto)
	if err != nil {
		return err
	}

	return g.applyAttributes(llvmFunc, n.Attributes)
}

// lowerPrototype returns the LLVM function declared by a prototype.  A
// compatible declaration without a body is reused.
func (g *Generator) lowerPrototype(w *walk.Walker, proto *ast.Prototype) (*ir.Func, error) {
	if existing, ok := g.lookupFunc(proto.Name); ok {
		if len(existing.Blocks) > 0 {
			return nil, &report.RedefinitionError{Kind: "function", Name: proto.Name}
		}

		if len(existing.Params) != len(proto.Args) {
			return nil, &report.SignatureMismatchError{
				Name:     proto.Name,
				Expected: len(existing.Params),
				Got:      len(proto.Args),
			}
		}

		return existing, nil
	}

	params := make([]*ir.Param, len(proto.Args))
	for i, arg := range proto.Args {
		typ, err := g.lowerType(w, arg.Type)
		if err != nil {
			return nil, err
		}

		params[i] = ir.NewParam(arg.Name, typ)
	}

	retType, err := g.lowerType(w, proto.ReturnType)
	if err != nil {
		return nil, err
	}

	return g.module.NewFunc(proto.Name, retType, params...), nil
}

func (g *Generator) applyAttributes(llvmFunc *ir.Func, attrs []ast.NodeID) error {
	for _, id := range attrs {
		attr, err := g.tree.Attribute(id)
		if err != nil {
			return report.Internal("%s", err)
		}

		// unknown attributes were already warned about by the parser
		if fa, ok := funcAttrs[attr.Name]; ok {
			llvmFunc.FuncAttrs = append(llvmFunc.FuncAttrs, fa)
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

func (g *Generator) VisitGlobal(w *walk.Walker, _ ast.NodeID, n *ast.Global) error {
	if err := g.requireModule("global"); err != nil {
		return err
	}

	if _, exists := g.lookupGlobal(n.Name); exists {
		return &report.RedefinitionError{Kind: "global", Name: n.Name}
	}

	typ, err := g.lowerType(w, n.Type)
	if err != nil {
		return err
	}

	var init constant.Constant
	if n.Value == ast.NoNode {
		init = constant.NewZeroInitializer(typ)
	} else {
		val, err := g.lowerValue(w, n.Value)
		if err != nil {
			return err
		}

		c, ok := g.coerce(val, typ).(constant.Constant)
		if !ok {
			return report.Internal("initializer of global `%s` is not a constant", n.Name)
		}

		init = c
	}

	g.constructs.Push(g.module.NewGlobalDef(n.Name, init))
	return nil
}
