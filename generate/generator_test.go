package generate

import (
	"bufio"
	"strings"
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ion/ast"
	"ion/report"
	"ion/resolve"
	"ion/syntax"
)

// build parses and resolves a source module named "test".
func build(t *testing.T, src string) (*ast.Tree, ast.NodeID) {
	t.Helper()

	cls := syntax.NewClassifier()
	notices := report.NewNoticeStack()
	lexer := syntax.NewLexer(bufio.NewReader(strings.NewReader(src)), cls)

	tree, mod, ok := syntax.NewParser(lexer, cls, notices, "test.ion").ParseModule()
	require.True(t, ok, "%v", notices.Notices())
	require.NoError(t, resolve.Resolve(tree, mod))
	return tree, mod
}

func lower(t *testing.T, src string) *ir.Module {
	t.Helper()

	tree, mod := build(t, src)
	g, err := Lower(tree, mod)
	require.NoError(t, err)
	assert.True(t, g.constructs.IsEmpty())
	assert.True(t, g.types.IsEmpty())

	m, ok := g.Modules["test"]
	require.True(t, ok)
	return m
}

func findFunc(t *testing.T, m *ir.Module, name string) *ir.Func {
	t.Helper()

	for _, f := range m.Funcs {
		if f.Name() == name {
			return f
		}
	}

	require.FailNow(t, "no function "+name)
	return nil
}

// -----------------------------------------------------------------------------

func TestLowerEmptyVoidFunction(t *testing.T) {
	m := lower(t, `fn main() void { return; }`)

	assert.Equal(t, "test", m.SourceFilename)
	require.Len(t, m.Funcs, 1)

	f := m.Funcs[0]
	assert.Equal(t, "main", f.Name())
	assert.True(t, types.Equal(types.Void, f.Sig.RetType))
	require.Len(t, f.Blocks, 1)
	assert.Empty(t, f.Blocks[0].Insts)

	ret, ok := f.Blocks[0].Term.(*ir.TermRet)
	require.True(t, ok)
	assert.Nil(t, ret.X)
}

func TestLowerGlobal(t *testing.T) {
	m := lower(t, `
global x int32 = 5;
global y int64;`)

	require.Len(t, m.Globals, 2)

	x := m.Globals[0]
	assert.Equal(t, "x", x.Name())
	assert.True(t, types.Equal(types.I32, x.ContentType))
	init, ok := x.Init.(*constant.Int)
	require.True(t, ok)
	assert.Equal(t, int64(5), init.X.Int64())

	y := m.Globals[1]
	assert.True(t, types.Equal(types.I64, y.ContentType))
	assert.IsType(t, &constant.ZeroInitializer{}, y.Init)
}

func TestLowerLocalVariables(t *testing.T) {
	m := lower(t, `
fn f() int32 {
	int8 y = 3;
	y = 4;
	return y;
}`)

	f := findFunc(t, m, "f")
	require.Len(t, f.Blocks, 1)
	entry := f.Blocks[0]

	// alloca, store, store, load, sext
	require.Len(t, entry.Insts, 5)
	alloca, ok := entry.Insts[0].(*ir.InstAlloca)
	require.True(t, ok)
	assert.Equal(t, "y", alloca.Name())
	assert.True(t, types.Equal(types.I8, alloca.ElemType))

	assert.IsType(t, &ir.InstStore{}, entry.Insts[1])
	assert.IsType(t, &ir.InstStore{}, entry.Insts[2])
	assert.IsType(t, &ir.InstLoad{}, entry.Insts[3])
	assert.IsType(t, &ir.InstSExt{}, entry.Insts[4])

	ret, ok := entry.Term.(*ir.TermRet)
	require.True(t, ok)
	assert.True(t, types.Equal(types.I32, ret.X.Type()))

	out := m.String()
	assert.Contains(t, out, "%y = alloca i8")
	assert.Contains(t, out, "store i8 3, i8* %y")
}

func TestLowerCoercesConstants(t *testing.T) {
	m := lower(t, `
global big int64 = 7;
fn f() void {
	int32 a = 300;
	int8 b = 'c';
	bool c = true;
}`)

	assert.True(t, types.Equal(types.I64, m.Globals[0].ContentType))

	entry := findFunc(t, m, "f").Blocks[0]
	store, ok := entry.Insts[1].(*ir.InstStore)
	require.True(t, ok)
	c, ok := store.Src.(*constant.Int)
	require.True(t, ok)
	assert.True(t, types.Equal(types.I32, c.Typ))
	assert.Equal(t, int64(300), c.X.Int64())
}

func TestTruncateInt(t *testing.T) {
	assert.Equal(t, int64(44), truncateInt(300, 8))
	assert.Equal(t, int64(-1), truncateInt(255, 8))
	assert.Equal(t, int64(1), truncateInt(3, 1))
	assert.Equal(t, int64(1<<40), truncateInt(1<<40, 64))
}

func TestLocalNamesAreUnique(t *testing.T) {
	g := NewGenerator()
	g.localNames = make(map[string]int)

	assert.Equal(t, "x", g.localName("x"))
	assert.Equal(t, "x.1", g.localName("x"))
	assert.Equal(t, "y", g.localName("y"))
}

func TestLowerMissingTerminator(t *testing.T) {
	m := lower(t, `
fn v() void { int8 a = 1; }
fn i() int32 { int8 a = 1; }`)

	ret, ok := findFunc(t, m, "v").Blocks[0].Term.(*ir.TermRet)
	require.True(t, ok)
	assert.Nil(t, ret.X)

	assert.IsType(t, &ir.TermUnreachable{}, findFunc(t, m, "i").Blocks[0].Term)
}

func TestLowerStopsAtFirstReturn(t *testing.T) {
	m := lower(t, `
fn f() int8 { return 1; return 2; }
fn g() void { return; int8 x = 1; }`)

	f := findFunc(t, m, "f").Blocks[0]
	assert.Empty(t, f.Insts)
	ret, ok := f.Term.(*ir.TermRet)
	require.True(t, ok)
	c, ok := ret.X.(*constant.Int)
	require.True(t, ok)
	assert.Equal(t, int64(1), c.X.Int64())

	g := findFunc(t, m, "g").Blocks[0]
	assert.Empty(t, g.Insts)
	ret, ok = g.Term.(*ir.TermRet)
	require.True(t, ok)
	assert.Nil(t, ret.X)
	assert.NotContains(t, m.String(), "alloca")
}

func TestLowerGlobalReference(t *testing.T) {
	m := lower(t, `
global g int32 = 1;
fn f() int32 { return g; }`)

	entry := findFunc(t, m, "f").Blocks[0]
	require.Len(t, entry.Insts, 1)
	load, ok := entry.Insts[0].(*ir.InstLoad)
	require.True(t, ok)
	assert.Same(t, m.Globals[0], load.Src)
}

func TestLowerDeclarationOrder(t *testing.T) {
	m := lower(t, `
fn b() void { return; }
extern puts(char* s) int32;
fn a() void { return; }`)

	var names []string
	for _, f := range m.Funcs {
		names = append(names, f.Name())
	}
	assert.Equal(t, []string{"b", "puts", "a"}, names)

	puts := findFunc(t, m, "puts")
	assert.Empty(t, puts.Blocks)
	require.Len(t, puts.Params, 1)
	assert.Equal(t, "s", puts.Params[0].Name())
	assert.True(t, types.Equal(types.I8Ptr, puts.Params[0].Typ))
}

func TestLowerAttributes(t *testing.T) {
	m := lower(t, `
@inline @cold
fn f() void { return; }
@noinline
extern g() void;`)

	assert.Equal(t, []ir.FuncAttribute{enum.FuncAttrInlineHint, enum.FuncAttrCold}, findFunc(t, m, "f").FuncAttrs)
	assert.Equal(t, []ir.FuncAttribute{enum.FuncAttrNoInline}, findFunc(t, m, "g").FuncAttrs)
}

// -----------------------------------------------------------------------------

func TestRedefinitionAcrossUnits(t *testing.T) {
	g := NewGenerator()

	tree, mod := build(t, `fn f(int32 a) void { return; }`)
	require.NoError(t, g.Lower(tree, mod))

	tree, mod = build(t, `fn f(int32 a) void { return; }`)
	err := g.Lower(tree, mod)
	var re *report.RedefinitionError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "function", re.Kind)
	assert.Equal(t, "f", re.Name)

	tree, mod = build(t, `global h int8;`)
	require.NoError(t, g.Lower(tree, mod))
	tree, mod = build(t, `global h int8;`)
	require.ErrorAs(t, g.Lower(tree, mod), &re)
	assert.Equal(t, "global", re.Kind)

	tree, mod = build(t, `extern f(int32 a) void;`)
	require.ErrorAs(t, g.Lower(tree, mod), &re)
	assert.Equal(t, "extern", re.Kind)
}

func TestDefinitionCompletesPrototype(t *testing.T) {
	g := NewGenerator()

	tree, mod := build(t, `extern f(int32 a) void;`)
	require.NoError(t, g.Lower(tree, mod))

	tree, mod = build(t, `fn f(int32 a) void { return; }`)
	require.NoError(t, g.Lower(tree, mod))

	m := g.Modules["test"]
	require.Len(t, m.Funcs, 1)
	assert.Len(t, m.Funcs[0].Blocks, 1)
}

func TestSignatureMismatch(t *testing.T) {
	g := NewGenerator()

	tree, mod := build(t, `extern f(int32 a) void;`)
	require.NoError(t, g.Lower(tree, mod))

	tree, mod = build(t, `fn f() void { return; }`)
	err := g.Lower(tree, mod)

	var sme *report.SignatureMismatchError
	require.ErrorAs(t, err, &sme)
	assert.Equal(t, 1, sme.Expected)
	assert.Equal(t, 0, sme.Got)
}

func TestUnimplementedConstructs(t *testing.T) {
	cases := map[string]string{
		"if statement":            `fn f() void { if true { return; } }`,
		"call statement":          `fn g() void { return; } fn f() void { g(); }`,
		"string type":             `fn f() void { string s = "x"; }`,
		"user-defined type `Vec`": `global v Vec;`,
	}

	for construct, src := range cases {
		t.Run(construct, func(t *testing.T) {
			tree, mod := build(t, src)
			_, err := Lower(tree, mod)

			var ue *report.UnimplementedError
			require.ErrorAs(t, err, &ue)
			assert.Equal(t, construct, ue.Construct)
			assert.False(t, report.IsInternal(err))
		})
	}
}

func TestUnresolvedReferenceIsInternal(t *testing.T) {
	cls := syntax.NewClassifier()
	notices := report.NewNoticeStack()
	lexer := syntax.NewLexer(bufio.NewReader(strings.NewReader(`fn f() void { int8 a = 1; a = 2; }`)), cls)
	tree, mod, ok := syntax.NewParser(lexer, cls, notices, "test.ion").ParseModule()
	require.True(t, ok)

	_, err := Lower(tree, mod)
	assert.True(t, report.IsInternal(err), "%v", err)
}

func TestGeneratorRecoversAfterError(t *testing.T) {
	g := NewGenerator()

	tree, mod := build(t, `fn f() void { int8 a = 1; if true { return; } }`)
	require.Error(t, g.Lower(tree, mod))
	assert.True(t, g.constructs.IsEmpty())
	assert.True(t, g.types.IsEmpty())
	assert.Nil(t, g.function)
}
