// Package opt invokes LLVM's own optimization passes on the decomposed
// module.  The passes run in the external `opt` tool; this package only
// builds its command line and shuttles IR text through it.
package opt

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"

	"qirc/common"
	"qirc/report"
)

// Targets the optimizer accepts, mapped to LLVM target triples.  The
// `native` target leaves triple selection to the tool's host default.
var targetTriples = map[string]string{
	"aarch64": "aarch64-unknown-unknown",
	"x86-64":  "x86_64-unknown-unknown",
	"native":  "",
}

// Run applies optimization level 0-3 for the given target to a textual IR
// module and returns the optimized text.  Level 0 is the identity: the
// tool is not invoked at all.
func Run(text string, level int, target string) (string, error) {
	if level < 0 || level > 3 {
		return "", fmt.Errorf("optimization level must be between 0 and 3, got %d", level)
	}

	triple, ok := targetTriples[target]
	if !ok {
		return "", fmt.Errorf("unsupported target `%s`", target)
	}

	if level == 0 {
		return text, nil
	}

	args := []string{fmt.Sprintf("-O%d", level), "-S", "-o", "-", "-"}
	if triple != "" {
		args = append([]string{"--mtriple=" + triple}, args...)
	}

	report.Log.Debugf("running `%s` at -O%d for target `%s`", common.OptPath, level, target)

	cmd := exec.Command(common.OptPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdin = bytes.NewReader([]byte(text))
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return "", errors.New(stderr.String())
		}

		return "", err
	}

	return stdout.String(), nil
}
