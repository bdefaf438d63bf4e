package qir

import (
	"strconv"

	"github.com/llir/llvm/ir"

	"qirc/report"
)

// Names of the entry-point attributes the compiler recognizes.  Unknown
// string attributes are preserved on the function and surfaced through
// EntryAttrs.Extra.
const (
	AttrEntryPoint           = "entry_point"
	AttrProfiles             = "qir_profiles"
	AttrOutputLabelingSchema = "output_labeling_schema"
	AttrRequiredNumQubits    = "required_num_qubits"
	AttrRequiredNumResults   = "required_num_results"
	AttrIrreversible         = "irreversible"
)

// Profile is the value class of the `qir_profiles` attribute.
type Profile string

const (
	BaseProfile     Profile = "base_profile"
	Adaptive        Profile = "adaptive"
	AdaptiveProfile Profile = "adaptive_profile"
	CustomProfile   Profile = "custom"
)

// IsAdaptive reports whether the profile permits mid-circuit measurement,
// classical computation, and data-dependent branching.  The corpus spells
// the adaptive profile both `adaptive` and `adaptive_profile`; the two are
// the same profile class.
func (p Profile) IsAdaptive() bool {
	return p == Adaptive || p == AdaptiveProfile
}

// Known reports whether the profile is one of the recognized values.
func (p Profile) Known() bool {
	switch p {
	case BaseProfile, Adaptive, AdaptiveProfile, CustomProfile:
		return true
	default:
		return false
	}
}

// -----------------------------------------------------------------------------

// StringAttrs collects the string attributes of a function into a map from
// attribute name to value.  Flag-only attributes map to the empty string.
// Attribute groups referenced by the function are flattened in.
func StringAttrs(f *ir.Func) map[string]string {
	attrs := make(map[string]string)
	for _, attr := range f.FuncAttrs {
		switch a := attr.(type) {
		case ir.AttrString:
			attrs[string(a)] = ""
		case ir.AttrPair:
			attrs[a.Key] = a.Value
		case *ir.AttrGroupDef:
			for _, ga := range a.FuncAttrs {
				switch g := ga.(type) {
				case ir.AttrString:
					attrs[string(g)] = ""
				case ir.AttrPair:
					attrs[g.Key] = g.Value
				}
			}
		}
	}

	return attrs
}

// HasAttr reports whether a function carries the named string attribute,
// valued or flag-only.
func HasAttr(f *ir.Func, name string) bool {
	_, ok := StringAttrs(f)[name]
	return ok
}

// FindEntryFunction locates the single function definition marked with the
// `entry_point` attribute.  It returns a NoEntryPoint or MultipleEntryPoints
// diagnostic otherwise.
func FindEntryFunction(m *ir.Module) (*ir.Func, *report.Diagnostic) {
	var entry *ir.Func
	for _, f := range m.Funcs {
		if !HasAttr(f, AttrEntryPoint) {
			continue
		}

		if entry != nil {
			d := report.Errorf(
				report.MultipleEntryPoints, report.ModuleLocation(),
				"multiple entry points: both `%s` and `%s` carry the `%s` attribute",
				entry.Name(), f.Name(), AttrEntryPoint,
			)
			return nil, &d
		}

		entry = f
	}

	if entry == nil {
		d := report.Errorf(
			report.NoEntryPoint, report.ModuleLocation(),
			"no function carries the `%s` attribute", AttrEntryPoint,
		)
		return nil, &d
	}

	return entry, nil
}

// -----------------------------------------------------------------------------

// EntryAttrs is the typed record of the entry function's recognized
// attributes.  It is derived read-only from a validated module and returned
// by value; extracting it never mutates the module.
type EntryAttrs struct {
	// The name of the entry function.
	EntryName string

	// The declared QIR profile.
	Profile Profile

	// The output labeling schema identifier.  Empty when the attribute is
	// present flag-only.
	OutputLabelingSchema string

	// The number of qubits the program requires.
	RequiredNumQubits int

	// The number of results the program requires.
	RequiredNumResults int

	// The names of functions flagged `irreversible`.  Informational.
	Irreversible []string

	// Unrecognized string attributes of the entry function, preserved
	// verbatim.
	Extra map[string]string
}

// knownEntryAttrs is the set of attribute names with dedicated EntryAttrs
// fields; everything else lands in Extra.
var knownEntryAttrs = map[string]struct{}{
	AttrEntryPoint:           {},
	AttrProfiles:             {},
	AttrOutputLabelingSchema: {},
	AttrRequiredNumQubits:    {},
	AttrRequiredNumResults:   {},
}

// ExtractEntryAttrs parses the entry function's attribute set into an
// EntryAttrs record.  It reports a diagnostic per missing or malformed
// required attribute rather than stopping at the first.
func ExtractEntryAttrs(m *ir.Module) (EntryAttrs, report.List) {
	var diags report.List

	entry, diag := FindEntryFunction(m)
	if diag != nil {
		diags.Add(*diag)
		return EntryAttrs{}, diags
	}

	attrs := StringAttrs(entry)
	loc := report.FuncLocation(entry.Name())

	ea := EntryAttrs{
		EntryName: entry.Name(),
		Extra:     make(map[string]string),
	}

	// qir_profiles is required and must name a known profile class.
	if profile, ok := attrs[AttrProfiles]; !ok {
		diags.Add(report.Errorf(report.MissingAttribute, loc, "missing required attribute `%s`", AttrProfiles))
	} else {
		ea.Profile = Profile(profile)
		if !ea.Profile.Known() {
			diags.Add(report.Errorf(
				report.MalformedAttribute, loc,
				"attribute `%s` has unrecognized value `%s`", AttrProfiles, profile,
			))
		}
	}

	// output_labeling_schema is required but its value is optional: the
	// attribute appears both valued and flag-only in the wild.
	if schema, ok := attrs[AttrOutputLabelingSchema]; !ok {
		diags.Add(report.Errorf(report.MissingAttribute, loc, "missing required attribute `%s`", AttrOutputLabelingSchema))
	} else {
		ea.OutputLabelingSchema = schema
	}

	ea.RequiredNumQubits = parseCountAttr(attrs, AttrRequiredNumQubits, loc, &diags)
	ea.RequiredNumResults = parseCountAttr(attrs, AttrRequiredNumResults, loc, &diags)

	for name, value := range attrs {
		if _, known := knownEntryAttrs[name]; !known {
			ea.Extra[name] = value
		}
	}

	for _, f := range m.Funcs {
		if HasAttr(f, AttrIrreversible) {
			ea.Irreversible = append(ea.Irreversible, f.Name())
		}
	}

	return ea, diags
}

// parseCountAttr parses a required non-negative integer attribute such as
// `required_num_qubits`.
func parseCountAttr(attrs map[string]string, name string, loc report.Location, diags *report.List) int {
	value, ok := attrs[name]
	if !ok {
		diags.Add(report.Errorf(report.MissingAttribute, loc, "missing required attribute `%s`", name))
		return 0
	}

	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		diags.Add(report.Errorf(
			report.MalformedAttribute, loc,
			"attribute `%s` must be a non-negative integer, got `%s`", name, value,
		))
		return 0
	}

	return n
}
