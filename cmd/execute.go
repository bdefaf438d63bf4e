// Package cmd is the top-level driver package for the qirc compiler: it
// parses command-line arguments, manages compiler state, and runs the
// compilation passes in order.
package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/ComedicChimera/olive"

	"qirc/common"
	"qirc/report"
)

// Execute is the main entry point for the `qirc` CLI utility.  It returns
// the process exit code: zero on success, non-zero when any error
// diagnostic was produced.
func Execute() int {
	// set up the argument parser and all its commands and arguments
	cli := olive.NewCLI("qirc", "qirc compiles QIR modules to the Quantinuum instruction set", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	compileCmd := cli.AddSubcommand("compile", "compile a QIR module", true)
	compileCmd.AddPrimaryArg("input-path", "the path to the QIR module (.ll or .bc)", true)
	compileCmd.AddStringArg("outpath", "o", "the path for compilation output", false)
	optArg := compileCmd.AddSelectorArg("opt-level", "O", "the optimization level", false, []string{"0", "1", "2", "3"})
	optArg.SetDefaultValue("2")
	targetArg := compileCmd.AddSelectorArg("target", "t", "the target architecture", false, []string{"aarch64", "x86-64", "native"})
	targetArg.SetDefaultValue("aarch64")

	validateCmd := cli.AddSubcommand("validate", "validate a QIR module without compiling it", true)
	validateCmd.AddPrimaryArg("input-path", "the path to the QIR module (.ll or .bc)", true)

	attrsCmd := cli.AddSubcommand("attrs", "print the entry-point attributes of a QIR module", true)
	attrsCmd.AddPrimaryArg("input-path", "the path to the QIR module (.ll or .bc)", true)

	cli.AddSubcommand("version", "print the qirc version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	// initialize the reporter before anything can go wrong
	report.InitReporter(logLevelFromString(result.Arguments["loglevel"].(string)))

	// apply the optional toolchain manifest
	loadToolchainConfig()

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "compile":
		return execCompileCommand(subResult)
	case "validate":
		return execValidateCommand(subResult)
	case "attrs":
		return execAttrsCommand(subResult)
	case "version":
		report.DisplayInfoMessage("qirc Version", common.QircVersion)
	}

	return 0
}

// logLevelFromString converts a loglevel argument into a reporter level.
func logLevelFromString(s string) int {
	switch s {
	case "silent":
		return report.LogLevelSilent
	case "error":
		return report.LogLevelError
	case "warn":
		return report.LogLevelWarn
	default:
		return report.LogLevelVerbose
	}
}

// execCompileCommand executes the compile subcommand and handles all of its
// errors.
func execCompileCommand(result *olive.ArgParseResult) int {
	inputPath, _ := result.PrimaryArg()

	optLevel, err := strconv.Atoi(result.Arguments["opt-level"].(string))
	if err != nil {
		optLevel = 2
	}

	c := &Compiler{
		inputPath: inputPath,
		optLevel:  optLevel,
		target:    result.Arguments["target"].(string),
	}

	if outPath, ok := result.Arguments["outpath"]; ok {
		c.outputPath = outPath.(string)
	}

	return c.Compile()
}

// execValidateCommand executes the validate subcommand.
func execValidateCommand(result *olive.ArgParseResult) int {
	inputPath, _ := result.PrimaryArg()
	c := &Compiler{inputPath: inputPath}
	return c.Validate()
}

// execAttrsCommand executes the attrs subcommand.
func execAttrsCommand(result *olive.ArgParseResult) int {
	inputPath, _ := result.PrimaryArg()
	c := &Compiler{inputPath: inputPath}
	return c.Attrs()
}
