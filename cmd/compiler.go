package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/llir/llvm/ir"

	"qirc/common"
	"qirc/decompose"
	"qirc/loader"
	"qirc/opt"
	"qirc/qir"
	"qirc/report"
	"qirc/util"
	"qirc/validate"
)

// Compiler represents the state of one compiler invocation.
type Compiler struct {
	// inputPath is the path to the input QIR module.
	inputPath string

	// outputPath is the path to write output to.  Derived from the input
	// path when unspecified.
	outputPath string

	// optLevel is the LLVM optimization level (0-3).
	optLevel int

	// target is the target architecture for optimization.
	target string
}

// Compile runs the full pipeline on the input file and writes the
// transformed bitcode.  It returns the process exit code.
func (c *Compiler) Compile() int {
	mod, ok := c.load()
	if !ok {
		return 1
	}

	diags := validate.Module(mod)
	report.ReportAll(diags)
	if diags.HasErrors() {
		return 1
	}

	if diags := decompose.Run(mod); diags != nil {
		report.ReportAll(diags)
		return 1
	}

	text := loader.EmitText(mod)
	if c.optLevel > 0 {
		optimized, err := opt.Run(text, c.optLevel, c.target)
		if err != nil {
			report.ReportFatal("optimization failed: %s", err)
			return 1
		}

		text = optimized
	}

	bc, err := loader.AssembleText(text)
	if err != nil {
		report.Report(report.Errorf(
			report.BitcodeWriteError, report.ModuleLocation(),
			"failed to assemble output bitcode: %s", err,
		))
		return 1
	}

	outPath := c.outputPath
	if outPath == "" {
		outPath = replaceExt(c.inputPath, common.BitcodeFileExt)
	}

	if err := os.WriteFile(outPath, bc, 0644); err != nil {
		report.Report(report.Errorf(
			report.IoError, report.ModuleLocation(),
			"failed to write output file `%s`: %s", outPath, err,
		))
		return 1
	}

	report.DisplayInfoMessage("Compiled", outPath)
	return 0
}

// Validate checks the input file without compiling it.
func (c *Compiler) Validate() int {
	mod, ok := c.load()
	if !ok {
		return 1
	}

	diags := validate.Module(mod)
	report.ReportAll(diags)
	if diags.HasErrors() {
		return 1
	}

	report.DisplayInfoMessage("Valid", c.inputPath)
	return 0
}

// Attrs prints the entry-point attribute record of the input file.
func (c *Compiler) Attrs() int {
	mod, ok := c.load()
	if !ok {
		return 1
	}

	attrs, diags := qir.ExtractEntryAttrs(mod)
	report.ReportAll(diags)
	if diags.HasErrors() {
		return 1
	}

	fmt.Printf("entry_point: %s\n", attrs.EntryName)
	fmt.Printf("qir_profiles: %s\n", attrs.Profile)
	fmt.Printf("output_labeling_schema: %s\n", attrs.OutputLabelingSchema)
	fmt.Printf("required_num_qubits: %d\n", attrs.RequiredNumQubits)
	fmt.Printf("required_num_results: %d\n", attrs.RequiredNumResults)

	for _, line := range util.Map(util.SortedKeys(attrs.Extra), func(name string) string {
		return fmt.Sprintf("%s: %s", name, attrs.Extra[name])
	}) {
		fmt.Println(line)
	}

	return 0
}

// load reads and parses the input file, reporting any failure.
func (c *Compiler) load() (mod *ir.Module, ok bool) {
	data, err := os.ReadFile(c.inputPath)
	if err != nil {
		report.Report(report.Errorf(
			report.IoError, report.ModuleLocation(),
			"failed to read input file `%s`: %s", c.inputPath, err,
		))
		return nil, false
	}

	mod, diags := loader.Load(c.inputPath, data)
	if diags != nil {
		report.ReportAll(diags)
		return nil, false
	}

	return mod, true
}

// replaceExt swaps the extension of a file path.
func replaceExt(path, ext string) string {
	if i := strings.LastIndexByte(path, '.'); i > 0 {
		return path[:i] + ext
	}

	return path + ext
}
