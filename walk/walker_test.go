package walk

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ion/ast"
	"ion/report"
)

// recordingPass records the kind of every construct it enters.
type recordingPass struct {
	BasePass

	kinds []ast.Kind
}

func (rp *recordingPass) VisitBlock(w *Walker, id ast.NodeID, n *ast.Block) error {
	rp.kinds = append(rp.kinds, ast.KindBlock)
	return rp.BasePass.VisitBlock(w, id, n)
}

func (rp *recordingPass) VisitRef(_ *Walker, _ ast.NodeID, n *ast.Ref) error {
	rp.kinds = append(rp.kinds, ast.KindRef)
	return nil
}

func (rp *recordingPass) VisitIntegerValue(w *Walker, id ast.NodeID, n *ast.IntegerValue) error {
	rp.kinds = append(rp.kinds, ast.KindIntegerValue)
	return w.VisitChildren(id)
}

func (rp *recordingPass) VisitType(_ *Walker, _ ast.NodeID, _ *ast.Type) error {
	rp.kinds = append(rp.kinds, ast.KindType)
	return nil
}

// failingPass aborts on the first reference.
type failingPass struct {
	BasePass
}

var errStop = errors.New("stop")

func (failingPass) VisitRef(*Walker, ast.NodeID, *ast.Ref) error { return errStop }

func buildTree(t *testing.T) (*ast.Tree, ast.NodeID) {
	t.Helper()

	tree := ast.NewTree()
	mod := tree.NewModule("m")
	body := tree.NewBlock(nil)
	proto := tree.NewPrototype("f", nil, tree.NewType(ast.Type{TypeKind: ast.TypeVoid}, nil), nil)
	fn := tree.NewFunction(proto, body, nil, nil)
	require.NoError(t, tree.DeclareTopLevel(mod, fn))

	decl := tree.NewVariableDecl("x", tree.NewType(ast.IntegerType(ast.Int8), nil), tree.NewIntegerLiteral(1, nil), nil)
	require.NoError(t, tree.AppendStatement(body, decl))

	assign := tree.NewAssignment(tree.NewRef("x", ast.RefVariable, body, nil), tree.NewIntegerLiteral(2, nil), nil)
	require.NoError(t, tree.AppendStatement(body, assign))

	return tree, mod
}

func TestWalkerVisitsInOrder(t *testing.T) {
	tree, mod := buildTree(t)

	pass := &recordingPass{}
	require.NoError(t, Run(tree, mod, pass))

	assert.Equal(t, []ast.Kind{
		// prototype return type
		ast.KindType,
		ast.KindBlock,
		// int8 x = 1
		ast.KindType, ast.KindIntegerValue, ast.KindType,
		// x = 2
		ast.KindRef, ast.KindIntegerValue, ast.KindType,
	}, pass.kinds)
}

func TestWalkerStopsAtFirstError(t *testing.T) {
	tree, mod := buildTree(t)

	err := Run(tree, mod, failingPass{})
	assert.ErrorIs(t, err, errStop)
}

func TestWalkerRejectsInvalidConstruct(t *testing.T) {
	tree, _ := buildTree(t)

	err := Run(tree, ast.NoNode, &recordingPass{})
	assert.True(t, report.IsInternal(err))
}
