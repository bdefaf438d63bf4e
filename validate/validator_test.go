package validate

import (
	"fmt"
	"testing"

	"github.com/llir/llvm/asm"
	"github.com/llir/llvm/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qirc/report"
)

// mustParse parses an IR fixture or fails the test.
func mustParse(t *testing.T, src string) *ir.Module {
	t.Helper()

	mod, err := asm.ParseString("test.ll", src)
	require.NoError(t, err)
	return mod
}

// kinds tallies the diagnostic kinds of a list.
func kinds(diags report.List) map[report.Kind]int {
	m := make(map[report.Kind]int)
	for _, d := range diags {
		m[d.Kind]++
	}

	return m
}

const requiredFlags = `
!llvm.module.flags = !{!0, !1, !2, !3}

!0 = !{i32 1, !"qir_major_version", i32 1}
!1 = !{i32 7, !"qir_minor_version", i32 0}
!2 = !{i32 1, !"dynamic_qubit_management", i1 false}
!3 = !{i32 1, !"dynamic_result_management", i1 false}
`

const baseModule = `
%Qubit = type opaque
%Result = type opaque

declare void @__quantum__qis__h__body(%Qubit*)
declare void @__quantum__qis__cnot__body(%Qubit*, %Qubit*)
declare void @__quantum__qis__mz__body(%Qubit*, %Result*) #1
declare void @__quantum__rt__result_record_output(%Result*, i8*)

@0 = internal constant [3 x i8] c"r0\00"
@1 = internal constant [3 x i8] c"r1\00"

define void @program__main() #0 {
entry:
  call void @__quantum__qis__h__body(%Qubit* null)
  call void @__quantum__qis__cnot__body(%Qubit* null, %Qubit* inttoptr (i64 1 to %Qubit*))
  call void @__quantum__qis__mz__body(%Qubit* null, %Result* null)
  call void @__quantum__qis__mz__body(%Qubit* inttoptr (i64 1 to %Qubit*), %Result* inttoptr (i64 1 to %Result*))
  call void @__quantum__rt__result_record_output(%Result* null, i8* getelementptr inbounds ([3 x i8], [3 x i8]* @0, i32 0, i32 0))
  call void @__quantum__rt__result_record_output(%Result* inttoptr (i64 1 to %Result*), i8* getelementptr inbounds ([3 x i8], [3 x i8]* @1, i32 0, i32 0))
  ret void
}

attributes #0 = { "entry_point" "output_labeling_schema"="labeled" "qir_profiles"="base_profile" "required_num_qubits"="2" "required_num_results"="2" }
attributes #1 = { "irreversible" }
` + requiredFlags

func TestValidBaseModule(t *testing.T) {
	diags := Module(mustParse(t, baseModule))
	assert.Empty(t, diags)
}

func TestNoEntryPoint(t *testing.T) {
	const src = `
define void @f() {
entry:
  ret void
}
`
	diags := Module(mustParse(t, src))
	require.Len(t, diags, 1)
	assert.Equal(t, report.NoEntryPoint, diags[0].Kind)
}

func TestMultipleEntryPoints(t *testing.T) {
	const src = `
define void @f() #0 {
entry:
  ret void
}

define void @g() #0 {
entry:
  ret void
}

attributes #0 = { "entry_point" }
`
	diags := Module(mustParse(t, src))
	require.Len(t, diags, 1)
	assert.Equal(t, report.MultipleEntryPoints, diags[0].Kind)
}

func TestMissingModuleFlags(t *testing.T) {
	const src = `
define void @program__main() #0 {
entry:
  ret void
}

attributes #0 = { "entry_point" "output_labeling_schema" "qir_profiles"="base_profile" "required_num_qubits"="1" "required_num_results"="1" }
`
	diags := Module(mustParse(t, src))
	assert.Equal(t, 4, kinds(diags)[report.BadModuleFlag])
}

func TestWrongModuleFlagValue(t *testing.T) {
	const src = `
define void @program__main() #0 {
entry:
  ret void
}

attributes #0 = { "entry_point" "output_labeling_schema" "qir_profiles"="base_profile" "required_num_qubits"="1" "required_num_results"="1" }

!llvm.module.flags = !{!0, !1, !2, !3}

!0 = !{i32 1, !"qir_major_version", i32 2}
!1 = !{i32 7, !"qir_minor_version", i32 0}
!2 = !{i32 1, !"dynamic_qubit_management", i1 true}
!3 = !{i32 1, !"dynamic_result_management", i1 false}
`
	diags := Module(mustParse(t, src))
	assert.Equal(t, 2, kinds(diags)[report.BadModuleFlag])
}

func TestAdaptiveRequiresCapabilityFlags(t *testing.T) {
	const src = `
define void @program__main() #0 {
entry:
  ret void
}

attributes #0 = { "entry_point" "output_labeling_schema" "qir_profiles"="adaptive_profile" "required_num_qubits"="1" "required_num_results"="1" }
` + requiredFlags
	diags := Module(mustParse(t, src))

	// int_computations, float_computations, backwards_branching,
	// multiple_target_branching, multiple_return_points are all absent.
	assert.Equal(t, 5, kinds(diags)[report.BadModuleFlag])
}

func TestQubitOutOfRange(t *testing.T) {
	const src = `
%Qubit = type opaque

declare void @__quantum__qis__h__body(%Qubit*)

define void @program__main() #0 {
entry:
  call void @__quantum__qis__h__body(%Qubit* inttoptr (i64 7 to %Qubit*))
  ret void
}

attributes #0 = { "entry_point" "output_labeling_schema" "qir_profiles"="base_profile" "required_num_qubits"="2" "required_num_results"="1" }
` + requiredFlags
	diags := Module(mustParse(t, src))
	require.Equal(t, 1, kinds(diags)[report.QubitOutOfRange])
}

func TestResultOutOfRange(t *testing.T) {
	const src = `
%Qubit = type opaque
%Result = type opaque

declare void @__quantum__qis__mz__body(%Qubit*, %Result*)

define void @program__main() #0 {
entry:
  call void @__quantum__qis__mz__body(%Qubit* null, %Result* inttoptr (i64 3 to %Result*))
  ret void
}

attributes #0 = { "entry_point" "output_labeling_schema" "qir_profiles"="base_profile" "required_num_qubits"="1" "required_num_results"="2" }
` + requiredFlags
	diags := Module(mustParse(t, src))
	require.Equal(t, 1, kinds(diags)[report.ResultOutOfRange])
}

func TestBadIntrinsicSignature(t *testing.T) {
	const src = `
%Qubit = type opaque

declare void @__quantum__qis__h__body(%Qubit*, %Qubit*)

define void @program__main() #0 {
entry:
  call void @__quantum__qis__h__body(%Qubit* null, %Qubit* null)
  ret void
}

attributes #0 = { "entry_point" "output_labeling_schema" "qir_profiles"="base_profile" "required_num_qubits"="2" "required_num_results"="1" }
` + requiredFlags
	diags := Module(mustParse(t, src))
	assert.Equal(t, 1, kinds(diags)[report.BadIntrinsicSignature])
}

func TestUnknownIntrinsic(t *testing.T) {
	const src = `
%Qubit = type opaque

declare void @__quantum__qis__swap__body(%Qubit*, %Qubit*)

define void @program__main() #0 {
entry:
  call void @__quantum__qis__swap__body(%Qubit* null, %Qubit* inttoptr (i64 1 to %Qubit*))
  ret void
}

attributes #0 = { "entry_point" "output_labeling_schema" "qir_profiles"="base_profile" "required_num_qubits"="2" "required_num_results"="1" }
` + requiredFlags
	diags := Module(mustParse(t, src))
	assert.Equal(t, 1, kinds(diags)[report.UnknownIntrinsic])
}

// barrierModule builds a fixture with one barrier call of the given arity
// against a declared qubit count.
func barrierModule(arity, numQubits int) string {
	params := ""
	args := ""
	for i := 0; i < arity; i++ {
		if i > 0 {
			params += ", "
			args += ", "
		}
		params += "%Qubit*"
		if i == 0 {
			args += "%Qubit* null"
		} else {
			args += fmt.Sprintf("%%Qubit* inttoptr (i64 %d to %%Qubit*)", i)
		}
	}

	return fmt.Sprintf(`
%%Qubit = type opaque

declare void @__quantum__qis__barrier%d__body(%s)

define void @program__main() #0 {
entry:
  call void @__quantum__qis__barrier%d__body(%s)
  ret void
}

attributes #0 = { "entry_point" "output_labeling_schema" "qir_profiles"="base_profile" "required_num_qubits"="%d" "required_num_results"="1" }
`, arity, params, arity, args, numQubits) + requiredFlags
}

func TestBarrierArityAtLimit(t *testing.T) {
	// A barrier over exactly the declared qubit count is accepted, with a
	// multi-digit arity in the name.
	diags := Module(mustParse(t, barrierModule(12, 12)))
	assert.Empty(t, diags)
}

func TestBarrierArityExceedsQubits(t *testing.T) {
	diags := Module(mustParse(t, barrierModule(3, 2)))
	assert.Equal(t, 1, kinds(diags)[report.BarrierArityExceedsQubits])

	diags = Module(mustParse(t, barrierModule(12, 2)))
	assert.Equal(t, 1, kinds(diags)[report.BarrierArityExceedsQubits])
}

func TestUnusedLabelWarning(t *testing.T) {
	const src = `
@0 = internal constant [3 x i8] c"r0\00"

define void @program__main() #0 {
entry:
  ret void
}

attributes #0 = { "entry_point" "output_labeling_schema"="labeled" "qir_profiles"="base_profile" "required_num_qubits"="1" "required_num_results"="1" }
` + requiredFlags
	diags := Module(mustParse(t, src))
	require.Len(t, diags, 1)
	assert.Equal(t, report.UnusedLabel, diags[0].Kind)
	assert.Equal(t, report.Warning, diags[0].Severity)

	// Warnings never fail validation.
	assert.False(t, diags.HasErrors())
}

func TestBaseProfileForbidsBranching(t *testing.T) {
	const src = `
%Qubit = type opaque
%Result = type opaque

declare void @__quantum__qis__mz__body(%Qubit*, %Result*)
declare i1 @__quantum__rt__read_result(%Result*)

define void @program__main() #0 {
entry:
  call void @__quantum__qis__mz__body(%Qubit* null, %Result* null)
  %r = call i1 @__quantum__rt__read_result(%Result* null)
  br i1 %r, label %then, label %done

then:
  ret void

done:
  ret void
}

attributes #0 = { "entry_point" "output_labeling_schema" "qir_profiles"="base_profile" "required_num_qubits"="1" "required_num_results"="1" }
` + requiredFlags
	diags := Module(mustParse(t, src))
	k := kinds(diags)

	// Both the conditional branch and the i1-returning call violate the
	// base profile.
	assert.GreaterOrEqual(t, k[report.ProfileViolation], 2)
}

const adaptiveCapabilityFlags = `
!llvm.module.flags = !{!0, !1, !2, !3, !4, !5, !6, !7, !8}

!0 = !{i32 1, !"qir_major_version", i32 1}
!1 = !{i32 7, !"qir_minor_version", i32 0}
!2 = !{i32 1, !"dynamic_qubit_management", i1 false}
!3 = !{i32 1, !"dynamic_result_management", i1 false}
!4 = !{i32 1, !"int_computations", !"i64"}
!5 = !{i32 1, !"float_computations", !"f64"}
!6 = !{i32 1, !"backwards_branching", i1 true}
!7 = !{i32 1, !"multiple_target_branching", i1 true}
!8 = !{i32 1, !"multiple_return_points", i1 true}
`

func TestAdaptiveProfilePermitsBranching(t *testing.T) {
	const src = `
%Qubit = type opaque
%Result = type opaque

declare void @__quantum__qis__mz__body(%Qubit*, %Result*)
declare i1 @__quantum__rt__read_result(%Result*)

define void @program__main() #0 {
entry:
  call void @__quantum__qis__mz__body(%Qubit* null, %Result* null)
  %r = call i1 @__quantum__rt__read_result(%Result* null)
  br i1 %r, label %then, label %done

then:
  %x = add i64 1, 2
  ret void

done:
  ret void
}

attributes #0 = { "entry_point" "output_labeling_schema" "qir_profiles"="adaptive" "required_num_qubits"="1" "required_num_results"="1" }
` + adaptiveCapabilityFlags
	diags := Module(mustParse(t, src))
	assert.Empty(t, diags)
}

func TestAdaptiveComputationRequiresFlag(t *testing.T) {
	const src = `
define void @program__main() #0 {
entry:
  %x = fadd double 1.0, 2.0
  ret void
}

attributes #0 = { "entry_point" "output_labeling_schema" "qir_profiles"="adaptive" "required_num_qubits"="1" "required_num_results"="1" }

!llvm.module.flags = !{!0, !1, !2, !3, !4, !5, !6, !7}

!0 = !{i32 1, !"qir_major_version", i32 1}
!1 = !{i32 7, !"qir_minor_version", i32 0}
!2 = !{i32 1, !"dynamic_qubit_management", i1 false}
!3 = !{i32 1, !"dynamic_result_management", i1 false}
!4 = !{i32 1, !"int_computations", !"i64"}
!5 = !{i32 1, !"backwards_branching", i1 false}
!6 = !{i32 1, !"multiple_target_branching", i1 false}
!7 = !{i32 1, !"multiple_return_points", i1 false}
`
	diags := Module(mustParse(t, src))
	k := kinds(diags)

	// float_computations is missing entirely (one flag diagnostic) and the
	// fadd itself is an undeclared computation (one violation).
	assert.Equal(t, 1, k[report.BadModuleFlag])
	assert.Equal(t, 1, k[report.ProfileViolation])
}

func TestEntryWithNoBlocks(t *testing.T) {
	const src = `
declare void @program__main() #0

attributes #0 = { "entry_point" "output_labeling_schema" "qir_profiles"="base_profile" "required_num_qubits"="1" "required_num_results"="1" }
` + requiredFlags
	diags := Module(mustParse(t, src))
	assert.Equal(t, 1, kinds(diags)[report.ProfileViolation])
}

func TestIRDefinedMainRejected(t *testing.T) {
	const src = `
define void @main() {
entry:
  ret void
}

define void @program__main() #0 {
entry:
  call void @main()
  ret void
}

attributes #0 = { "entry_point" "output_labeling_schema" "qir_profiles"="base_profile" "required_num_qubits"="1" "required_num_results"="1" }
` + requiredFlags
	diags := Module(mustParse(t, src))
	assert.GreaterOrEqual(t, kinds(diags)[report.ProfileViolation], 1)
}
