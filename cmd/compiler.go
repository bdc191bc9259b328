package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"ion/ast"
	"ion/generate"
	"ion/report"
	"ion/resolve"
	"ion/syntax"

	"github.com/kr/pretty"
	"github.com/llir/llvm/ir"
)

// Compiler represents the state of a single compilation: one source file
// lowered into one LLVM module.
type Compiler struct {
	// srcAbsPath is the absolute path to the source file.
	srcAbsPath string

	// reprPath is the path of the source file displayed to the user.
	reprPath string

	// config is the build configuration.
	config *Config

	// cls classifies the tokens of the source file.
	cls *syntax.Classifier

	// gen lowers the resolved module.
	gen *generate.Generator

	// astOut receives the dump of the parsed tree when it is non-nil.
	astOut io.Writer
}

// NewCompiler creates a new compiler for the source file at srcPath.
func NewCompiler(srcPath string, cfg *Config) (*Compiler, error) {
	srcAbsPath, err := filepath.Abs(srcPath)
	if err != nil {
		return nil, fmt.Errorf("error calculating absolute path: %w", err)
	}

	return &Compiler{
		srcAbsPath: srcAbsPath,
		reprPath:   filepath.Base(srcAbsPath),
		config:     cfg,
		cls:        syntax.NewClassifier(),
		gen:        generate.NewGenerator(),
	}, nil
}

// DumpAST makes the compiler print every construct of the parsed tree to w.
func (c *Compiler) DumpAST(w io.Writer) {
	c.astOut = w
}

// Compile compiles the source file and writes the textual LLVM IR to the
// output path.  Nothing is written if any phase fails.
func (c *Compiler) Compile() bool {
	f, err := os.Open(c.srcAbsPath)
	if err != nil {
		report.ReportFatal("unable to open source file: %s", err)
		return false
	}
	defer f.Close()

	mod, ok := c.Build(f)
	if !ok {
		return false
	}

	outPath := c.config.OutputPath(c.srcAbsPath)
	if err := os.WriteFile(outPath, []byte(mod.String()), 0644); err != nil {
		report.ReportFatal("unable to write output file: %s", err)
		return false
	}

	return true
}

// Build runs parsing, name resolution and lowering over the source text and
// returns the resulting LLVM module.
func (c *Compiler) Build(src io.Reader) (*ir.Module, bool) {
	report.BeginPhase("Parsing")

	notices := report.NewNoticeStack()
	lexer := syntax.NewLexer(bufio.NewReader(src), c.cls)
	tree, modID, ok := syntax.NewParser(lexer, c.cls, notices, c.srcAbsPath).ParseModule()

	report.EndPhase(ok)
	report.ReportNotices(c.srcAbsPath, c.reprPath, notices)
	if !ok {
		return nil, false
	}

	if c.astOut != nil {
		c.dumpTree(tree)
	}

	report.BeginPhase("Resolving")
	if !c.runPass(resolve.Resolve(tree, modID)) {
		return nil, false
	}

	report.BeginPhase("Lowering")
	if !c.runPass(c.gen.Lower(tree, modID)) {
		return nil, false
	}

	mod, err := tree.Module(modID)
	if err != nil {
		report.ReportICE("parser returned no module: %s", err)
		return nil, false
	}

	llMod, ok := c.gen.Modules[mod.Name]
	if !ok {
		report.ReportICE("module `%s` was not registered by lowering", mod.Name)
		return nil, false
	}

	return llMod, true
}

// runPass ends the current phase and reports the error of the pass run in it.
func (c *Compiler) runPass(err error) bool {
	report.EndPhase(err == nil)

	if err != nil {
		report.ReportPassError(c.srcAbsPath, c.reprPath, err)
		return false
	}

	return true
}

// dumpTree prints every construct in the arena in creation order.
func (c *Compiler) dumpTree(tree *ast.Tree) {
	for id := ast.NodeID(1); int(id) <= tree.Len(); id++ {
		pretty.Fprintf(c.astOut, "%d %s (parent %d): %# v\n", id, tree.Kind(id), tree.Parent(id), tree.Node(id))
	}
}
