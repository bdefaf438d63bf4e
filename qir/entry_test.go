package qir

import (
	"testing"

	"github.com/llir/llvm/asm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qirc/report"
)

const baseAttrsLL = `
%Qubit = type opaque
%Result = type opaque

declare void @__quantum__qis__h__body(%Qubit*)
declare void @__quantum__qis__mz__body(%Qubit*, %Result*) #1

define void @program__main() #0 {
entry:
  call void @__quantum__qis__h__body(%Qubit* null)
  call void @__quantum__qis__mz__body(%Qubit* null, %Result* null)
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

func TestExtractEntryAttrs(t *testing.T) {
	mod, err := asm.ParseString("base-attrs.ll", baseAttrsLL)
	require.NoError(t, err)

	attrs, diags := ExtractEntryAttrs(mod)
	assert.Empty(t, diags)

	assert.Equal(t, "program__main", attrs.EntryName)
	assert.Equal(t, BaseProfile, attrs.Profile)
	assert.Equal(t, "labeled", attrs.OutputLabelingSchema)
	assert.Equal(t, 2, attrs.RequiredNumQubits)
	assert.Equal(t, 2, attrs.RequiredNumResults)
	assert.Equal(t, []string{"__quantum__qis__mz__body"}, attrs.Irreversible)
	assert.Empty(t, attrs.Extra)
}

const flagOnlySchemaLL = `
define void @program__main() #0 {
entry:
  ret void
}

attributes #0 = { "entry_point" "output_labeling_schema" "qir_profiles"="adaptive_profile" "required_num_qubits"="1" "required_num_results"="1" "custom_hint"="42" }
`

func TestExtractEntryAttrsFlagOnlySchema(t *testing.T) {
	mod, err := asm.ParseString("flag-only.ll", flagOnlySchemaLL)
	require.NoError(t, err)

	attrs, diags := ExtractEntryAttrs(mod)
	assert.Empty(t, diags)

	// The schema attribute appears flag-only in parts of the corpus; its
	// value defaults to empty.
	assert.Equal(t, "", attrs.OutputLabelingSchema)
	assert.Equal(t, AdaptiveProfile, attrs.Profile)
	assert.True(t, attrs.Profile.IsAdaptive())

	// Unknown string attributes are preserved.
	assert.Equal(t, map[string]string{"custom_hint": "42"}, attrs.Extra)
}

const missingAttrsLL = `
define void @program__main() #0 {
entry:
  ret void
}

attributes #0 = { "entry_point" "required_num_qubits"="abc" }
`

func TestExtractEntryAttrsMissingAndMalformed(t *testing.T) {
	mod, err := asm.ParseString("missing.ll", missingAttrsLL)
	require.NoError(t, err)

	_, diags := ExtractEntryAttrs(mod)
	require.NotEmpty(t, diags)

	kinds := make(map[report.Kind]int)
	for _, d := range diags {
		kinds[d.Kind]++
	}

	// qir_profiles, output_labeling_schema, and required_num_results are
	// missing; required_num_qubits is present but unusable.
	assert.Equal(t, 3, kinds[report.MissingAttribute])
	assert.Equal(t, 1, kinds[report.MalformedAttribute])
}

func TestProfileSynonyms(t *testing.T) {
	assert.True(t, Profile("adaptive").IsAdaptive())
	assert.True(t, Profile("adaptive_profile").IsAdaptive())
	assert.False(t, Profile("base_profile").IsAdaptive())
	assert.False(t, Profile("custom").IsAdaptive())
	assert.True(t, Profile("custom").Known())
	assert.False(t, Profile("full").Known())
}

func TestFindEntryFunctionErrors(t *testing.T) {
	const noEntry = `
define void @f() {
entry:
  ret void
}
`
	mod, err := asm.ParseString("no-entry.ll", noEntry)
	require.NoError(t, err)

	_, diag := FindEntryFunction(mod)
	require.NotNil(t, diag)
	assert.Equal(t, report.NoEntryPoint, diag.Kind)

	const twoEntries = `
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
	mod, err = asm.ParseString("two-entries.ll", twoEntries)
	require.NoError(t, err)

	_, diag = FindEntryFunction(mod)
	require.NotNil(t, diag)
	assert.Equal(t, report.MultipleEntryPoints, diag.Kind)
}

func TestModuleFlags(t *testing.T) {
	mod, err := asm.ParseString("base-attrs.ll", baseAttrsLL)
	require.NoError(t, err)

	flags := ModuleFlags(mod)
	assert.Equal(t, FlagValue{Int: 1, IsInt: true}, flags[FlagMajorVersion])
	assert.Equal(t, FlagValue{Int: 0, IsInt: true}, flags[FlagMinorVersion])
	assert.Equal(t, FlagValue{Int: 0, IsInt: true}, flags[FlagDynamicQubitManagement])
	assert.Equal(t, FlagValue{Int: 0, IsInt: true}, flags[FlagDynamicResultManagement])
}
