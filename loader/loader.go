// Package loader moves QIR modules between their serialized forms and the
// in-memory IR the passes operate on.  Textual IR is parsed directly;
// bitcode is round-tripped through the LLVM assembler and disassembler,
// which the compiler treats as external tools.
package loader

import (
	"bytes"

	"github.com/llir/llvm/asm"
	"github.com/llir/llvm/ir"

	"qirc/report"
)

// bitcodeMagic is the four-byte signature of an LLVM bitcode wrapper-free
// stream.
var bitcodeMagic = []byte{'B', 'C', 0xc0, 0xde}

// IsBitcode reports whether the byte stream is LLVM bitcode rather than
// textual IR.
func IsBitcode(data []byte) bool {
	return bytes.HasPrefix(data, bitcodeMagic)
}

// Load parses a QIR module from either bitcode or textual IR.  Bitcode is
// first disassembled with the external `llvm-dis` tool.  Parse failures of
// either form surface as a single BitcodeParseError diagnostic.
func Load(name string, data []byte) (*ir.Module, report.List) {
	if IsBitcode(data) {
		text, err := runTool(toolLLVMDis(), data)
		if err != nil {
			return nil, report.List{report.Errorf(
				report.BitcodeParseError, report.ModuleLocation(),
				"failed to disassemble bitcode: %s", err,
			)}
		}

		data = text
	}

	mod, err := asm.ParseBytes(name, data)
	if err != nil {
		return nil, report.List{report.Errorf(
			report.BitcodeParseError, report.ModuleLocation(),
			"failed to parse module: %s", err,
		)}
	}

	report.Log.Debugf("loaded module `%s`: %d functions, %d globals", name, len(mod.Funcs), len(mod.Globals))
	return mod, nil
}

// EmitText serializes the module to textual LLVM IR.
func EmitText(mod *ir.Module) string {
	return mod.String()
}

// Emit serializes the module to bitcode through the external `llvm-as`
// tool.  The only error mode is BitcodeWriteError; the module itself is
// read, never changed.
func Emit(mod *ir.Module) ([]byte, report.List) {
	bc, err := runTool(toolLLVMAs(), []byte(EmitText(mod)))
	if err != nil {
		return nil, report.List{report.Errorf(
			report.BitcodeWriteError, report.ModuleLocation(),
			"failed to assemble output bitcode: %s", err,
		)}
	}

	return bc, nil
}

// AssembleText converts textual LLVM IR to bitcode without loading it into
// the compiler: the thin wrapper over the LLVM assembler exposed to
// embedders.
func AssembleText(text string) ([]byte, error) {
	return runTool(toolLLVMAs(), []byte(text))
}
