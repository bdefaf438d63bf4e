package common

// QircVersion is the current qirc version as a string.
const QircVersion string = "0.1.0"

// QircConfigFileName is the name of the optional toolchain manifest looked
// up in the working directory.
const QircConfigFileName string = "qirc.toml"

// QIRFileExt is the file extension for textual QIR source.
const QIRFileExt string = ".ll"

// BitcodeFileExt is the file extension for QIR bitcode.
const BitcodeFileExt string = ".bc"

// Paths to the LLVM toolchain binaries the compiler shells out to.  These
// default to bare names resolved through PATH and may be overridden by the
// toolchain manifest.
var (
	LLVMAsPath  = "llvm-as"
	LLVMDisPath = "llvm-dis"
	OptPath     = "opt"
)
