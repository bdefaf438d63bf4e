package cmd

import (
	"os"

	"github.com/pelletier/go-toml"

	"qirc/common"
	"qirc/report"
)

// tomlToolchain represents the optional toolchain manifest as it is encoded
// in TOML.  Every field is optional; unset fields keep their defaults.
type tomlToolchain struct {
	LLVMAs  string `toml:"llvm-as"`
	LLVMDis string `toml:"llvm-dis"`
	Opt     string `toml:"opt"`
}

// loadToolchainConfig applies the `qirc.toml` manifest from the working
// directory when one exists.  A missing manifest is not an error: the
// toolchain binaries default to bare names resolved through PATH.
func loadToolchainConfig() {
	buff, err := os.ReadFile(common.QircConfigFileName)
	if err != nil {
		return
	}

	tc := &tomlToolchain{}
	if err := toml.Unmarshal(buff, tc); err != nil {
		report.ReportFatal("error parsing `%s`: %s", common.QircConfigFileName, err)
		return
	}

	if tc.LLVMAs != "" {
		common.LLVMAsPath = tc.LLVMAs
	}
	if tc.LLVMDis != "" {
		common.LLVMDisPath = tc.LLVMDis
	}
	if tc.Opt != "" {
		common.OptPath = tc.Opt
	}

	report.Log.Debugf("applied toolchain manifest `%s`", common.QircConfigFileName)
}
