package generate

import (
	"ion/ast"
	"ion/report"
	"ion/util"
	"ion/walk"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// Generator is responsible for converting resolved Ion modules into LLVM IR.
// Each source module is lowered into the LLVM module registered under its
// name: lowering two source modules with the same name merges them into one
// LLVM module.
type Generator struct {
	walk.BasePass

	// Modules is the registry of LLVM modules keyed by module name.
	Modules map[string]*ir.Module

	// tree is the tree of the source module currently being lowered.
	tree *ast.Tree

	// module is the LLVM module currently being built.
	module *ir.Module

	// function is the LLVM function whose body is currently being built.
	function *ir.Func

	// block is the LLVM block into which instructions are inserted.
	block *ir.Block

	// constructs holds the LLVM constructs produced by visited nodes until
	// their consumer pops them.
	constructs util.Stack[any]

	// types holds the LLVM types produced by visited type labels.
	types util.Stack[types.Type]

	// allocas maps each local variable declaration to its stack slot.
	allocas map[ast.NodeID]*ir.InstAlloca

	// localNames counts the uses of each local name in the current function.
	localNames map[string]int
}

// NewGenerator creates a generator with an empty module registry.
func NewGenerator() *Generator {
	return &Generator{Modules: make(map[string]*ir.Module)}
}

// Lower lowers a resolved source module using a new generator.
func Lower(tree *ast.Tree, module ast.NodeID) (*Generator, error) {
	g := NewGenerator()
	return g, g.Lower(tree, module)
}

// Lower lowers a resolved source module into the generator's registry.  An
// error aborts lowering: the affected LLVM module must not be emitted.
func (g *Generator) Lower(tree *ast.Tree, module ast.NodeID) error {
	g.tree = tree
	g.allocas = make(map[ast.NodeID]*ir.InstAlloca)

	return walk.Run(tree, module, g)
}

// -----------------------------------------------------------------------------

func (g *Generator) VisitModule(w *walk.Walker, _ ast.NodeID, n *ast.Module) error {
	mod, ok := g.Modules[n.Name]
	if !ok {
		mod = ir.NewModule()
		mod.SourceFilename = n.Name
		g.Modules[n.Name] = mod
	}

	g.module = mod
	defer g.reset()

	for _, entry := range n.Symbols.Entries() {
		if err := g.checkStacksEmpty(); err != nil {
			return err
		}

		if err := w.Visit(entry); err != nil {
			return err
		}

		// functions and globals leave their LLVM construct behind
		switch kind := g.tree.Kind(entry); kind {
		case ast.KindFunction, ast.KindGlobal:
			if _, ok := g.constructs.Pop(); !ok {
				return report.Internal("%s %d produced no construct", kind, entry)
			}
		}

		if err := g.checkStacksEmpty(); err != nil {
			return err
		}
	}

	return nil
}

// reset clears the per-module state of the generator.
func (g *Generator) reset() {
	g.module = nil
	g.function = nil
	g.block = nil
	g.constructs.Clear()
	g.types.Clear()
}

func (g *Generator) checkStacksEmpty() error {
	if !g.constructs.IsEmpty() || !g.types.IsEmpty() {
		return report.Internal(
			"lowering stacks not empty between top-level definitions (%d constructs, %d types)",
			g.constructs.Len(), g.types.Len(),
		)
	}

	return nil
}

// -----------------------------------------------------------------------------

// popType pops the most recently lowered type.
func (g *Generator) popType() (types.Type, error) {
	typ, ok := g.types.Pop()
	if !ok {
		return nil, report.Internal("type stack is empty")
	}

	return typ, nil
}

// lowerType visits a type label and pops the type it produced.
func (g *Generator) lowerType(w *walk.Walker, id ast.NodeID) (types.Type, error) {
	if err := w.Visit(id); err != nil {
		return nil, err
	}

	return g.popType()
}

// popValue pops the most recently lowered construct as an LLVM value.
func (g *Generator) popValue() (value.Value, error) {
	c, ok := g.constructs.Pop()
	if !ok {
		return nil, report.Internal("construct stack is empty")
	}

	v, ok := c.(value.Value)
	if !ok {
		return nil, report.Internal("construct %T is not a value", c)
	}

	return v, nil
}

// lowerValue visits a value and pops the LLVM value it produced.
func (g *Generator) lowerValue(w *walk.Walker, id ast.NodeID) (value.Value, error) {
	if err := w.Visit(id); err != nil {
		return nil, err
	}

	return g.popValue()
}

// -----------------------------------------------------------------------------

func (g *Generator) requireModule(what string) error {
	if g.module == nil {
		return report.Internal("%s lowered outside of a module", what)
	}

	return nil
}

func (g *Generator) requireBuilder(what string) error {
	if g.function == nil || g.block == nil {
		return report.Internal("%s lowered outside of a function body", what)
	}

	return nil
}

// lookupFunc returns the function of the current module with the given name.
func (g *Generator) lookupFunc(name string) (*ir.Func, bool) {
	for _, f := range g.module.Funcs {
		if f.Name() == name {
			return f, true
		}
	}

	return nil, false
}

// lookupGlobal returns the global of the current module with the given name.
func (g *Generator) lookupGlobal(name string) (*ir.Global, bool) {
	for _, gl := range g.module.Globals {
		if gl.Name() == name {
			return gl, true
		}
	}

	return nil, false
}
