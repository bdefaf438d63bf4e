// Package qirc is the embedder API of the QIR compiler: validation, full
// compilation to the native instruction set, entry-attribute extraction,
// and the thin IR-text-to-bitcode wrapper.  The command-line front end in
// cmd/ is a shallow layer over these four operations.
package qirc

import (
	"qirc/decompose"
	"qirc/loader"
	"qirc/opt"
	"qirc/qir"
	"qirc/report"
	"qirc/validate"
)

// IRTextToBitcode assembles textual LLVM IR to bitcode.  The work is
// delegated entirely to the LLVM assembler.
func IRTextToBitcode(text string) ([]byte, error) {
	return loader.AssembleText(text)
}

// Validate checks a QIR module against its declared profile without
// changing it.  A nil result means the module is valid; otherwise every
// finding of the single validation pass is returned.
func Validate(data []byte) report.List {
	mod, diags := loader.Load("input", data)
	if diags != nil {
		return diags
	}

	return validate.Module(mod)
}

// Compile runs the full pipeline: load, validate, decompose, optimize,
// emit.  When validation fails, the returned diagnostic set is exactly the
// set Validate would produce and no bitcode is emitted.  optLevel selects
// LLVM's own optimization level 0-3; target is one of `aarch64`, `x86-64`,
// or `native`.
func Compile(data []byte, optLevel int, target string) ([]byte, report.List) {
	mod, diags := loader.Load("input", data)
	if diags != nil {
		return nil, diags
	}

	if diags := validate.Module(mod); diags.HasErrors() {
		return nil, diags
	}

	if diags := decompose.Run(mod); diags != nil {
		return nil, diags
	}

	if optLevel == 0 {
		return loader.Emit(mod)
	}

	text, err := opt.Run(loader.EmitText(mod), optLevel, target)
	if err != nil {
		return nil, report.List{report.Errorf(
			report.IoError, report.ModuleLocation(),
			"optimization failed: %s", err,
		)}
	}

	bc, err := loader.AssembleText(text)
	if err != nil {
		return nil, report.List{report.Errorf(
			report.BitcodeWriteError, report.ModuleLocation(),
			"failed to assemble output bitcode: %s", err,
		)}
	}

	return bc, nil
}

// EntryAttributes extracts the entry function's attribute record from a
// module without validating or changing it.
func EntryAttributes(data []byte) (qir.EntryAttrs, report.List) {
	mod, diags := loader.Load("input", data)
	if diags != nil {
		return qir.EntryAttrs{}, diags
	}

	return qir.ExtractEntryAttrs(mod)
}
