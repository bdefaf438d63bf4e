package loader

import (
	"bytes"
	"errors"
	"os/exec"

	"qirc/common"
)

// toolLLVMAs builds the command line for the LLVM assembler: IR text on
// stdin, bitcode on stdout.
func toolLLVMAs() *exec.Cmd {
	return exec.Command(common.LLVMAsPath, "-o", "-", "-")
}

// toolLLVMDis builds the command line for the LLVM disassembler: bitcode on
// stdin, IR text on stdout.
func toolLLVMDis() *exec.Cmd {
	return exec.Command(common.LLVMDisPath, "-o", "-", "-")
}

// runTool runs an external LLVM tool, feeding it the given input and
// returning its standard output.  Tool failures report the tool's standard
// error verbatim.
func runTool(cmd *exec.Cmd, input []byte) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdin = bytes.NewReader(input)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return nil, errors.New(stderr.String())
		}

		return nil, err
	}

	return stdout.Bytes(), nil
}
