package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildFunction creates `fn f() void { <stmts> }` inside a fresh module and
// returns the tree and body block.
func buildFunction(t *testing.T) (*Tree, NodeID, NodeID) {
	t.Helper()

	tree := NewTree()
	mod := tree.NewModule("test")
	ret := tree.NewType(Type{TypeKind: TypeVoid}, nil)
	proto := tree.NewPrototype("f", nil, ret, nil)
	body := tree.NewBlock(nil)
	fn := tree.NewFunction(proto, body, nil, nil)
	require.NoError(t, tree.DeclareTopLevel(mod, fn))

	return tree, mod, body
}

func declare(t *testing.T, tree *Tree, block NodeID, name string, value int64) NodeID {
	t.Helper()

	typ := tree.NewType(IntegerType(Int32), nil)
	decl := tree.NewVariableDecl(name, typ, tree.NewIntegerLiteral(value, nil), nil)
	require.NoError(t, tree.AppendStatement(block, decl))
	tree.SetParent(decl, block)
	return decl
}

func statements(t *testing.T, tree *Tree, block NodeID) []NodeID {
	t.Helper()

	b, err := tree.Block(block)
	require.NoError(t, err)
	return b.Statements
}

func TestAppendStatement(t *testing.T) {
	tree, _, body := buildFunction(t)

	a := declare(t, tree, body, "a", 1)
	ret := tree.NewReturnStatement(NoNode, nil)
	require.NoError(t, tree.AppendStatement(body, ret))

	b, err := tree.Block(body)
	require.NoError(t, err)
	assert.Equal(t, []NodeID{a, ret}, b.Statements)
	assert.Equal(t, []string{"a"}, b.Symbols.Names())

	// The parent of an appended statement is left to the caller.
	assert.Equal(t, NoNode, tree.Parent(ret))

	dup := tree.NewVariableDecl("a", tree.NewType(IntegerType(Int8), nil), tree.NewIntegerLiteral(2, nil), nil)
	err = tree.AppendStatement(body, dup)
	var dse *DuplicateSymbolError
	require.ErrorAs(t, err, &dse)
	assert.Equal(t, "a", dse.Name)
	assert.Len(t, statements(t, tree, body), 2)
	assert.NoError(t, tree.Verify(body))
}

func TestRelocateStatement(t *testing.T) {
	tree, _, body := buildFunction(t)
	a := declare(t, tree, body, "a", 1)
	b := declare(t, tree, body, "b", 2)

	target := tree.NewBlock(nil)
	require.NoError(t, tree.RelocateStatement(body, 0, target))

	assert.Equal(t, []NodeID{b}, statements(t, tree, body))
	assert.Equal(t, []NodeID{a}, statements(t, tree, target))
	assert.Equal(t, target, tree.Parent(a))

	src, _ := tree.Block(body)
	dst, _ := tree.Block(target)
	assert.False(t, src.Symbols.Contains("a"))
	assert.True(t, dst.Symbols.Contains("a"))

	assert.ErrorIs(t, tree.RelocateStatement(body, 1, target), ErrIndexOutOfRange)
	assert.ErrorIs(t, tree.RelocateStatement(body, -1, target), ErrIndexOutOfRange)

	assert.NoError(t, tree.Verify(body))
	assert.NoError(t, tree.Verify(target))
}

func TestRelocateStatements(t *testing.T) {
	tree, _, body := buildFunction(t)
	a := declare(t, tree, body, "a", 1)
	b := declare(t, tree, body, "b", 2)
	c := declare(t, tree, body, "c", 3)
	d := declare(t, tree, body, "d", 4)

	target := tree.NewBlock(nil)
	n, err := tree.RelocateStatements(body, target, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []NodeID{a, d}, statements(t, tree, body))
	assert.Equal(t, []NodeID{b, c}, statements(t, tree, target))

	n, err = tree.RelocateStatements(body, target, 1, -1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []NodeID{b, c, d}, statements(t, tree, target))

	_, err = tree.RelocateStatements(body, target, 0, 5)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	assert.NoError(t, tree.Verify(body))
	assert.NoError(t, tree.Verify(target))
}

func TestRelocateStatementsConflict(t *testing.T) {
	tree, _, body := buildFunction(t)
	declare(t, tree, body, "a", 1)
	declare(t, tree, body, "b", 2)

	target := tree.NewBlock(nil)
	declare(t, tree, target, "b", 3)

	_, err := tree.RelocateStatements(body, target, 0, -1)
	var dse *DuplicateSymbolError
	require.ErrorAs(t, err, &dse)

	// Neither block was modified.
	assert.Len(t, statements(t, tree, body), 2)
	assert.Len(t, statements(t, tree, target), 1)
	assert.NoError(t, tree.Verify(body))
	assert.NoError(t, tree.Verify(target))
}

func TestSliceBlockPartition(t *testing.T) {
	for at := 0; at <= 4; at++ {
		tree, _, body := buildFunction(t)
		var original []NodeID
		for i, name := range []string{"a", "b", "c", "d"} {
			original = append(original, declare(t, tree, body, name, int64(i)))
		}

		tail, err := tree.SliceBlock(body, at)
		require.NoError(t, err)

		head := statements(t, tree, body)
		rest := statements(t, tree, tail)
		assert.Equal(t, original[:at], append([]NodeID{}, head...), "head at %d", at)
		assert.Equal(t, original[at:], append([]NodeID{}, rest...), "tail at %d", at)
		assert.Equal(t, tree.Parent(body), tree.Parent(tail))

		assert.NoError(t, tree.Verify(body))
		assert.NoError(t, tree.Verify(tail))
	}
}

func TestSliceBlockOutOfRange(t *testing.T) {
	tree, _, body := buildFunction(t)
	declare(t, tree, body, "a", 1)

	_, err := tree.SliceBlock(body, 2)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestBlockQueries(t *testing.T) {
	tree, mod, body := buildFunction(t)

	_, ok := tree.FirstStatement(body)
	assert.False(t, ok)

	a := declare(t, tree, body, "a", 1)
	inner := tree.NewBlock(nil)
	innerRet := tree.NewReturnStatement(NoNode, nil)
	require.NoError(t, tree.AppendStatement(inner, innerRet))
	tree.SetParent(innerRet, inner)
	cond := tree.NewRef("a", RefVariable, body, nil)
	ifStmt := tree.NewIfStatement(cond, inner, NoNode, nil)
	require.NoError(t, tree.AppendStatement(body, ifStmt))
	tree.SetParent(ifStmt, body)
	ret := tree.NewReturnStatement(NoNode, nil)
	require.NoError(t, tree.AppendStatement(body, ret))

	first, ok := tree.FirstStatement(body)
	require.True(t, ok)
	assert.Equal(t, a, first)

	last, ok := tree.LastStatement(body)
	require.True(t, ok)
	assert.Equal(t, ret, last)

	idx, ok := tree.Locate(body, ifStmt)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = tree.Locate(body, innerRet)
	assert.False(t, ok)

	// The nested return is not a terminal of the outer block.
	assert.Equal(t, []NodeID{ret}, tree.FindTerminals(body))

	assert.True(t, tree.IsFunctionBody(body))
	assert.False(t, tree.IsFunctionBody(inner))

	fn, ok := tree.FindParentFunction(innerRet)
	require.True(t, ok)
	assert.Equal(t, KindFunction, tree.Kind(fn))

	root, ok := tree.FindRootModule(innerRet)
	require.True(t, ok)
	assert.Equal(t, mod, root)
}

func TestVerifyDetectsInconsistency(t *testing.T) {
	tree, _, body := buildFunction(t)
	declare(t, tree, body, "a", 1)

	b, err := tree.Block(body)
	require.NoError(t, err)
	b.Symbols.Remove("a")

	assert.ErrorIs(t, tree.Verify(body), ErrInconsistentBlock)
}
