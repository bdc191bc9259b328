package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ion/report"
)

func newTestCompiler(t *testing.T, srcPath string) *Compiler {
	t.Helper()

	report.InitReporter(report.LogLevelSilent)

	c, err := NewCompiler(srcPath, defaultConfig())
	require.NoError(t, err)
	return c
}

func TestBuildProducesModule(t *testing.T) {
	c := newTestCompiler(t, "main.ion")

	mod, ok := c.Build(strings.NewReader(`
global counter int32 = 0;
fn main() int32 {
	int32 x = 1;
	x = counter;
	return x;
}`))
	require.True(t, ok)

	assert.Equal(t, "main", mod.SourceFilename)
	require.Len(t, mod.Funcs, 1)
	require.Len(t, mod.Globals, 1)
	assert.False(t, report.AnyErrors())
}

func TestBuildStopsAtSyntaxErrors(t *testing.T) {
	c := newTestCompiler(t, "main.ion")

	_, ok := c.Build(strings.NewReader(`fn main() void { int8 = ; }`))
	assert.False(t, ok)

	errors, _ := report.Counts()
	assert.Positive(t, errors)
}

func TestBuildStopsAtUndefinedReference(t *testing.T) {
	c := newTestCompiler(t, "main.ion")

	_, ok := c.Build(strings.NewReader(`fn main() void { z = 1; }`))
	assert.False(t, ok)
	assert.True(t, report.AnyErrors())
}

func TestBuildStopsAtUnimplementedConstruct(t *testing.T) {
	c := newTestCompiler(t, "main.ion")

	_, ok := c.Build(strings.NewReader(`fn main() void { if true { return; } }`))
	assert.False(t, ok)
	assert.True(t, report.AnyErrors())
}

func TestBuildDumpsTree(t *testing.T) {
	c := newTestCompiler(t, "main.ion")

	var buf bytes.Buffer
	c.DumpAST(&buf)

	_, ok := c.Build(strings.NewReader(`fn main() void { return; }`))
	require.True(t, ok)

	out := buf.String()
	assert.Contains(t, out, "module")
	assert.Contains(t, out, "function")
	assert.Contains(t, out, `"main"`)
}

func TestCompileWritesOutput(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "prog.ion", `fn main() void { return; }`)

	c := newTestCompiler(t, src)
	require.True(t, c.Compile())

	out, err := os.ReadFile(filepath.Join(dir, "prog.ll"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "define void @main()")
	assert.Contains(t, string(out), "ret void")
}

func TestCompileWritesNothingOnError(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "prog.ion", `fn main() void { missing(); }`)

	c := newTestCompiler(t, src)
	assert.False(t, c.Compile())

	_, err := os.Stat(filepath.Join(dir, "prog.ll"))
	assert.True(t, os.IsNotExist(err))
}

func TestCompileMissingSource(t *testing.T) {
	c := newTestCompiler(t, filepath.Join(t.TempDir(), "absent.ion"))
	assert.False(t, c.Compile())
	assert.True(t, report.AnyErrors())
}
