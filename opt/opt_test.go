package opt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRejectsBadLevel(t *testing.T) {
	_, err := Run("", -1, "aarch64")
	assert.Error(t, err)

	_, err = Run("", 4, "aarch64")
	assert.Error(t, err)
}

func TestRunRejectsBadTarget(t *testing.T) {
	_, err := Run("", 2, "riscv")
	assert.Error(t, err)
}

func TestRunLevelZeroIsIdentity(t *testing.T) {
	const text = "define void @f() {\nentry:\n  ret void\n}\n"

	// Level 0 never invokes the external tool.
	out, err := Run(text, 0, "aarch64")
	require.NoError(t, err)
	assert.Equal(t, text, out)
}
