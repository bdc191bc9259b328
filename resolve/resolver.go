package resolve

import (
	"ion/ast"
	"ion/report"
	"ion/walk"
)

// Resolver is responsible for binding every reference in a module to the
// construct it names.  Scopes are chased from the innermost block outward to
// the module.  A local declaration is only visible to statements after it.
type Resolver struct {
	walk.BasePass

	tree *ast.Tree

	// The stack of open scopes: the module at the bottom followed by each
	// enclosing block.
	scopes []scope
}

// scope is an open scope-owning construct.
type scope struct {
	id      ast.NodeID
	symbols *ast.SymbolTable

	// The index of the statement of the block currently being visited.  It is
	// unused for the module scope.
	pos int
}

// Resolve runs name resolution over a module.  The first reference that can
// not be resolved aborts resolution.
func Resolve(tree *ast.Tree, module ast.NodeID) error {
	return walk.Run(tree, module, &Resolver{tree: tree})
}

// -----------------------------------------------------------------------------

func (r *Resolver) VisitModule(w *walk.Walker, id ast.NodeID, n *ast.Module) error {
	r.scopes = append(r.scopes, scope{id: id, symbols: n.Symbols})
	defer r.popScope()

	return w.VisitChildren(id)
}

func (r *Resolver) VisitBlock(w *walk.Walker, id ast.NodeID, n *ast.Block) error {
	r.scopes = append(r.scopes, scope{id: id, symbols: n.Symbols})
	defer r.popScope()

	for i, stmt := range n.Statements {
		r.scopes[len(r.scopes)-1].pos = i

		if err := w.Visit(stmt); err != nil {
			return err
		}
	}

	return nil
}

func (r *Resolver) popScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) VisitRef(w *walk.Walker, id ast.NodeID, n *ast.Ref) error {
	if n.IsResolved() {
		return nil
	}

	if r.tree.Kind(n.Owner) != ast.KindBlock {
		return report.Internal("reference `%s` is owned by a %s, not a block", n.Name, r.tree.Kind(n.Owner))
	}

	var target ast.NodeID
	var err error
	switch n.RefKind {
	case ast.RefVariable:
		target, err = r.lookupVariable(id, n)
	case ast.RefFunction:
		target, err = r.lookupFunction(id, n)
	default:
		return report.Internal("unsupported resolution of %s reference `%s`", n.RefKind, n.Name)
	}

	if err != nil {
		return err
	}

	return n.Resolve(target)
}

// -----------------------------------------------------------------------------

// lookupVariable looks up a variable by chasing scopes outward from the
// reference's owner block.
func (r *Resolver) lookupVariable(id ast.NodeID, n *ast.Ref) (ast.NodeID, error) {
	start := -1
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if r.scopes[i].id == n.Owner {
			start = i
			break
		}
	}

	if start < 0 {
		return ast.NoNode, report.Internal("owner of reference `%s` is not an open scope", n.Name)
	}

	for i := start; i >= 0; i-- {
		sc := r.scopes[i]

		decl, ok := sc.symbols.Lookup(n.Name)
		if !ok {
			continue
		}

		if r.tree.Kind(sc.id) == ast.KindModule {
			if r.tree.Kind(decl) != ast.KindGlobal {
				return ast.NoNode, r.undefined(id, n, "not a variable")
			}

			return decl, nil
		}

		// Declarations are only visible to the statements after them.
		if at, ok := r.tree.Locate(sc.id, decl); ok && at < sc.pos {
			return decl, nil
		}
	}

	return ast.NoNode, r.undefined(id, n, "")
}

// lookupFunction looks up a function in the global scope of the module that
// encloses the reference's owner.
func (r *Resolver) lookupFunction(id ast.NodeID, n *ast.Ref) (ast.NodeID, error) {
	fn, ok := r.tree.FindParentFunction(n.Owner)
	if !ok {
		return ast.NoNode, report.Internal("reference `%s` is not inside a function", n.Name)
	}

	modID, ok := r.tree.FindRootModule(fn)
	if !ok {
		return ast.NoNode, report.Internal("function enclosing `%s` has no module", n.Name)
	}

	mod, err := r.tree.Module(modID)
	if err != nil {
		return ast.NoNode, report.Internal("%s", err)
	}

	decl, ok := mod.Symbols.Lookup(n.Name)
	if !ok {
		return ast.NoNode, r.undefined(id, n, "")
	}

	switch r.tree.Kind(decl) {
	case ast.KindFunction, ast.KindExtern:
		return decl, nil
	default:
		return ast.NoNode, r.undefined(id, n, "not a function")
	}
}

func (r *Resolver) undefined(id ast.NodeID, n *ast.Ref, reason string) error {
	return &report.UndefinedReferenceError{
		Name:   n.Name,
		Kind:   n.RefKind.String(),
		Reason: reason,
		Span:   r.tree.Span(id),
	}
}
