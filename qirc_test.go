package qirc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qirc/report"
)

const bellPairLL = `
%Qubit = type opaque
%Result = type opaque

declare void @__quantum__qis__h__body(%Qubit*)
declare void @__quantum__qis__cnot__body(%Qubit*, %Qubit*)
declare void @__quantum__qis__mz__body(%Qubit*, %Result*) #1

define void @program__main() #0 {
entry:
  call void @__quantum__qis__h__body(%Qubit* null)
  call void @__quantum__qis__cnot__body(%Qubit* null, %Qubit* inttoptr (i64 1 to %Qubit*))
  call void @__quantum__qis__mz__body(%Qubit* null, %Result* null)
  call void @__quantum__qis__mz__body(%Qubit* inttoptr (i64 1 to %Qubit*), %Result* inttoptr (i64 1 to %Result*))
  ret void
}

attributes #0 = { "entry_point" "output_labeling_schema"="labeled" "qir_profiles"="base_profile" "required_num_qubits"="2" "required_num_results"="2" }
attributes #1 = { "irreversible" }

!llvm.module.flags = !{!0, !1, !2, !3}

!0 = !{i32 1, !"qir_major_version", i32 1}
!1 = !{i32 7, !"qir_minor_version", i32 0}
!2 = !{i32 1, !"dynamic_qubit_management", i1 false}
!3 = !{i32 1, !"dynamic_result_management", i1 false}
`

func TestValidateAcceptsBellPair(t *testing.T) {
	diags := Validate([]byte(bellPairLL))
	assert.Empty(t, diags)
}

func TestValidateRejectsGarbage(t *testing.T) {
	diags := Validate([]byte("this is not an llvm module"))
	require.NotEmpty(t, diags)
	assert.Equal(t, report.BitcodeParseError, diags[0].Kind)
}

const invalidBarrierLL = `
%Qubit = type opaque

declare void @__quantum__qis__barrier3__body(%Qubit*, %Qubit*, %Qubit*)

define void @program__main() #0 {
entry:
  call void @__quantum__qis__barrier3__body(%Qubit* null, %Qubit* inttoptr (i64 1 to %Qubit*), %Qubit* inttoptr (i64 2 to %Qubit*))
  ret void
}

attributes #0 = { "entry_point" "output_labeling_schema"="labeled" "qir_profiles"="base_profile" "required_num_qubits"="2" "required_num_results"="1" }

!llvm.module.flags = !{!0, !1, !2, !3}

!0 = !{i32 1, !"qir_major_version", i32 1}
!1 = !{i32 7, !"qir_minor_version", i32 0}
!2 = !{i32 1, !"dynamic_qubit_management", i1 false}
!3 = !{i32 1, !"dynamic_result_management", i1 false}
`

func TestCompileReportsValidationFindings(t *testing.T) {
	fromValidate := Validate([]byte(invalidBarrierLL))
	require.True(t, fromValidate.HasErrors())

	// Compile on an invalid module surfaces the same diagnostic set as
	// Validate and emits nothing.
	bc, fromCompile := Compile([]byte(invalidBarrierLL), 0, "aarch64")
	assert.Nil(t, bc)
	assert.Equal(t, fromValidate, fromCompile)

	found := false
	for _, d := range fromCompile {
		if d.Kind == report.BarrierArityExceedsQubits {
			found = true
		}
	}
	assert.True(t, found)
}

func TestEntryAttributes(t *testing.T) {
	attrs, diags := EntryAttributes([]byte(bellPairLL))
	require.Empty(t, diags)

	assert.Equal(t, "program__main", attrs.EntryName)
	assert.Equal(t, "labeled", attrs.OutputLabelingSchema)
	assert.Equal(t, 2, attrs.RequiredNumQubits)
	assert.Equal(t, 2, attrs.RequiredNumResults)
}

func TestDiagnosticListErr(t *testing.T) {
	diags := Validate([]byte(invalidBarrierLL))
	err := diags.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BarrierArityExceedsQubits")

	assert.NoError(t, Validate([]byte(bellPairLL)).Err())
}
