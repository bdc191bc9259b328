package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"ion/report"

	"github.com/ComedicChimera/olive"
	"github.com/pterm/pterm"
)

// IonVersion is the current compiler version.
const IonVersion = "0.1.0"

// Execute runs the main `ion` application and returns its exit code.
func Execute() int {
	cli := olive.NewCLI("ion", "ion compiles Ion source files to LLVM IR", true)

	buildCmd := cli.AddSubcommand("build", "compile a source file", true)
	buildCmd.AddPrimaryArg("file", "the path to the source file to compile", true)
	buildCmd.AddStringArg("outpath", "o", "the path of the emitted LLVM IR file", false)
	buildCmd.AddSelectorArg("loglevel", "ll", "the compiler log level", false, logLevelNames)
	buildCmd.AddFlag("dump-ast", "d", "print the parsed tree before compiling")

	cli.AddSubcommand("version", "print the Ion version", false)

	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		pterm.Error.Println("usage error:", err)
		return 1
	}

	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "build":
		return execBuildCommand(subResult)
	case "version":
		fmt.Println("ion version", IonVersion)
	}

	return 0
}

// execBuildCommand executes the build subcommand and returns its exit code.
func execBuildCommand(result *olive.ArgParseResult) int {
	srcPath, _ := result.PrimaryArg()

	cfg, err := LoadConfig(filepath.Dir(srcPath))
	if err != nil {
		pterm.Error.Println(err)
		return 1
	}

	// command line options override the project file
	if outPath, ok := result.Arguments["outpath"]; ok {
		cfg.Output = outPath.(string)
	}

	if logLevel, ok := result.Arguments["loglevel"]; ok {
		cfg.LogLevel = logLevel.(string)
	}

	report.InitReporter(report.ParseLogLevel(cfg.LogLevel))

	c, err := NewCompiler(srcPath, cfg)
	if err != nil {
		report.ReportFatal("%s", err)
		return 1
	}

	if result.HasFlag("dump-ast") {
		c.DumpAST(os.Stdout)
	}

	ok := c.Compile()
	report.DisplaySummary()

	if !ok {
		return 1
	}

	return 0
}
