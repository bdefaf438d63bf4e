package qir

import (
	"strconv"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/metadata"
)

// Names of the module flags the compiler checks.  Unknown flags are
// preserved untouched.
const (
	FlagMajorVersion            = "qir_major_version"
	FlagMinorVersion            = "qir_minor_version"
	FlagDynamicQubitManagement  = "dynamic_qubit_management"
	FlagDynamicResultManagement = "dynamic_result_management"

	FlagIntComputations         = "int_computations"
	FlagFloatComputations       = "float_computations"
	FlagIRFunctions             = "ir_functions"
	FlagBackwardsBranching      = "backwards_branching"
	FlagMultipleTargetBranching = "multiple_target_branching"
	FlagMultipleReturnPoints    = "multiple_return_points"
)

// FlagValue is the decoded value of a single module flag.  QIR flags are
// either integer-valued (versions, booleans as i1) or string-valued (some
// adaptive capability flags, such as `int_computations`="i64").
type FlagValue struct {
	// The integer value, valid when IsInt is set.  Booleans decode as 0/1.
	Int int64

	// Whether the flag value is an integer.
	IsInt bool

	// The string value, valid when IsInt is unset.
	Str string
}

// Spelling returns how the flag value reads in a diagnostic.
func (v FlagValue) Spelling() string {
	if v.IsInt {
		return strconv.FormatInt(v.Int, 10)
	}

	return `"` + v.Str + `"`
}

// Enabled reports whether a flag declares its capability: a non-zero
// integer or any non-empty string value.
func (v FlagValue) Enabled() bool {
	if v.IsInt {
		return v.Int != 0
	}

	return v.Str != ""
}

// ModuleFlags decodes the `llvm.module.flags` named metadata into a map from
// flag name to value.  Flags whose shape does not match the three-field
// `!{behavior, !"name", value}` tuple form are skipped.
func ModuleFlags(m *ir.Module) map[string]FlagValue {
	flags := make(map[string]FlagValue)

	named, ok := m.NamedMetadataDefs["llvm.module.flags"]
	if !ok {
		return flags
	}

	for _, node := range named.Nodes {
		tuple, ok := node.(*metadata.Tuple)
		if !ok || len(tuple.Fields) != 3 {
			continue
		}

		name, ok := tuple.Fields[1].(*metadata.String)
		if !ok {
			continue
		}

		switch v := tuple.Fields[2].(type) {
		case *constant.Int:
			flags[name.Value] = FlagValue{Int: v.X.Int64(), IsInt: true}
		case *metadata.String:
			flags[name.Value] = FlagValue{Str: v.Value}
		}
	}

	return flags
}

// RequiredFlag pairs a flag name with its expected integer value and the
// spelling of that value used in diagnostics.
type RequiredFlag struct {
	Name     string
	Expected int64
	Spelling string
}

// RequiredFlags returns the module flags a profile demands, in a stable
// order.  Every profile requires the version and static-management flags;
// the adaptive profile additionally requires its capability declarations.
func RequiredFlags(profile Profile) []RequiredFlag {
	required := []RequiredFlag{
		{Name: FlagMajorVersion, Expected: 1, Spelling: "1"},
		{Name: FlagMinorVersion, Expected: 0, Spelling: "0"},
		{Name: FlagDynamicQubitManagement, Expected: 0, Spelling: "false"},
		{Name: FlagDynamicResultManagement, Expected: 0, Spelling: "false"},
	}

	if profile.IsAdaptive() {
		for _, name := range []string{
			FlagIntComputations,
			FlagFloatComputations,
			FlagBackwardsBranching,
			FlagMultipleTargetBranching,
			FlagMultipleReturnPoints,
		} {
			required = append(required, RequiredFlag{Name: name, Expected: -1})
		}
	}

	return required
}
