// Package validate implements the structural and semantic checks a QIR
// module must pass before the decomposer may run.  Validation is a single
// order-independent pass: every finding is collected into one diagnostic
// list rather than stopping at the first failure.
package validate

import (
	"strings"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"

	"qirc/qir"
	"qirc/report"
)

// validator holds the per-run state of a validation pass over one module.
type validator struct {
	// The module under validation.
	mod *ir.Module

	// The entry function, nil until located.
	entry *ir.Func

	// The parsed entry attributes.
	attrs qir.EntryAttrs

	// The decoded module flags.
	flags map[string]qir.FlagValue

	// The collected findings.
	diags report.List
}

// Module validates a loaded QIR module against its declared profile.  The
// returned list contains every finding of the pass; it holds no
// error-severity diagnostic when the module is valid, though warnings may
// remain.  The module is never mutated.
func Module(mod *ir.Module) report.List {
	v := &validator{
		mod:   mod,
		flags: qir.ModuleFlags(mod),
	}

	v.checkLayoutAndTriple()

	entry, diag := qir.FindEntryFunction(mod)
	if diag != nil {
		v.diags.Add(*diag)
		return v.diags
	}
	v.entry = entry

	var attrDiags report.List
	v.attrs, attrDiags = qir.ExtractEntryAttrs(mod)
	v.diags.Extend(attrDiags)

	v.checkModuleFlags()
	v.checkFunctions()
	v.checkCalls()
	v.checkProfile()
	v.checkUnusedLabels()

	return v.diags
}

// checkLayoutAndTriple logs when the module carries a data layout or target
// triple.  QIR modules are target-agnostic until the final optimization
// step, so either is suspicious but neither is an error.
func (v *validator) checkLayoutAndTriple() {
	if v.mod.DataLayout != "" {
		report.Log.Warnf("QIR module has a data layout: %q", v.mod.DataLayout)
	}
	if v.mod.TargetTriple != "" {
		report.Log.Warnf("QIR module has a target triple: %q", v.mod.TargetTriple)
	}
}

// checkModuleFlags verifies the flags the declared profile requires.
func (v *validator) checkModuleFlags() {
	loc := report.ModuleLocation()

	for _, req := range qir.RequiredFlags(v.attrs.Profile) {
		value, found := v.flags[req.Name]
		if !found {
			v.diags.Add(report.Errorf(
				report.BadModuleFlag, loc,
				"missing required module flag `%s`", req.Name,
			))
			continue
		}

		// A negative expectation means the flag only has to be present:
		// the adaptive capability flags carry module-specific values.
		if req.Expected < 0 {
			continue
		}

		if !value.IsInt || value.Int != req.Expected {
			v.diags.Add(report.Errorf(
				report.BadModuleFlag, loc,
				"module flag `%s` must be %s, got %s", req.Name, req.Spelling, value.Spelling(),
			))
		}
	}
}

// checkFunctions walks every function of the module and rejects the ones
// the target cannot accept: unrecognized names in the reserved quantum
// namespaces, IR-defined functions named `main`, and IR-defined functions
// returning pointers.
func (v *validator) checkFunctions() {
	for _, f := range v.mod.Funcs {
		if f == v.entry {
			if len(f.Blocks) == 0 {
				v.diags.Add(report.Errorf(
					report.ProfileViolation, report.FuncLocation(f.Name()),
					"entry function has no basic blocks",
				))
			}
			continue
		}

		name := f.Name()
		if reservedName(name) {
			if _, ok := qir.Classify(name); !ok {
				v.diags.Add(report.Errorf(
					report.UnknownIntrinsic, report.FuncLocation(name),
					"unsupported quantum intrinsic `%s`", name,
				))
			}
			continue
		}

		if len(f.Blocks) > 0 {
			// IR-defined helper function.
			if name == "main" {
				v.diags.Add(report.Errorf(
					report.ProfileViolation, report.FuncLocation(name),
					"IR-defined function cannot be named `main`",
				))
			}

			if _, ok := f.Sig.RetType.(*types.PointerType); ok {
				v.diags.Add(report.Errorf(
					report.ProfileViolation, report.FuncLocation(name),
					"function `%s` cannot return a pointer type", name,
				))
			}
			continue
		}

		report.Log.Debugf("external function `%s` found, leaving as-is for downstream processing", name)
	}
}

// reservedName reports whether a function name lies in one of the reserved
// quantum namespaces.
func reservedName(name string) bool {
	return strings.HasPrefix(name, qir.QISPrefix) ||
		strings.HasPrefix(name, qir.RuntimePrefix) ||
		strings.HasPrefix(name, qir.PlatformPrefix)
}

// checkCalls verifies every call to a recognized intrinsic: operand count
// and kinds against the descriptor, qubit/result identities against the
// entry-declared bounds, and barrier arities against the qubit count.
func (v *validator) checkCalls() {
	for _, f := range v.mod.Funcs {
		for bi, block := range f.Blocks {
			ci := -1
			for _, inst := range block.Insts {
				call, ok := inst.(*ir.InstCall)
				if !ok {
					continue
				}
				ci++

				callee, ok := call.Callee.(*ir.Func)
				if !ok {
					continue
				}

				desc, ok := qir.Classify(callee.Name())
				if !ok {
					continue
				}

				loc := report.CallLocation(f.Name(), bi, ci)
				v.checkCallSignature(call, callee.Name(), desc, loc)
				v.checkCallBounds(call, desc, loc)

				if desc.Category == qir.Barrier {
					v.checkBarrierArity(desc, loc)
				}
			}
		}
	}
}

// checkCallSignature checks one call site against its descriptor.
func (v *validator) checkCallSignature(call *ir.InstCall, name string, desc qir.Descriptor, loc report.Location) {
	if len(call.Args) != len(desc.Operands) {
		v.diags.Add(report.Errorf(
			report.BadIntrinsicSignature, loc,
			"`%s` expects %d operands, got %d", name, len(desc.Operands), len(call.Args),
		))
		return
	}

	for i, kind := range desc.Operands {
		if !qir.MatchesKind(call.Args[i], kind) {
			v.diags.Add(report.Errorf(
				report.BadIntrinsicSignature, loc,
				"operand %d of `%s` must be %s", i, name, kind,
			))
		}
	}
}

// checkCallBounds checks the constant qubit/result identities of one call
// site against the entry-declared counts.
func (v *validator) checkCallBounds(call *ir.InstCall, desc qir.Descriptor, loc report.Location) {
	if len(call.Args) != len(desc.Operands) {
		return
	}

	for i, kind := range desc.Operands {
		switch kind {
		case qir.KindQubit:
			if k, ok := qir.ConstIndex(call.Args[i]); ok {
				if k < 0 || k >= int64(v.attrs.RequiredNumQubits) {
					v.diags.Add(report.Errorf(
						report.QubitOutOfRange, loc,
						"qubit %d is outside the declared range [0, %d)", k, v.attrs.RequiredNumQubits,
					))
				}
			}
		case qir.KindResult:
			if k, ok := qir.ConstIndex(call.Args[i]); ok {
				if k < 0 || k >= int64(v.attrs.RequiredNumResults) {
					v.diags.Add(report.Errorf(
						report.ResultOutOfRange, loc,
						"result %d is outside the declared range [0, %d)", k, v.attrs.RequiredNumResults,
					))
				}
			}
		}
	}
}

// checkUnusedLabels warns about label byte-array constants that no call
// references.  Labels pair recorded results with names in the labeled
// output schema; an orphaned one usually means a dropped record_output
// call.  Warnings never abort compilation.
func (v *validator) checkUnusedLabels() {
	referenced := make(map[string]bool)

	for _, f := range v.mod.Funcs {
		for _, block := range f.Blocks {
			for _, inst := range block.Insts {
				call, ok := inst.(*ir.InstCall)
				if !ok {
					continue
				}

				for _, a := range call.Args {
					switch arg := a.(type) {
					case *ir.Global:
						referenced[arg.Name()] = true
					case *constant.ExprGetElementPtr:
						if g, ok := arg.Src.(*ir.Global); ok {
							referenced[g.Name()] = true
						}
					}
				}
			}
		}
	}

	for _, g := range v.mod.Globals {
		if !g.Immutable || referenced[g.Name()] {
			continue
		}

		if _, ok := g.Init.(*constant.CharArray); ok {
			v.diags.Add(report.Warnf(
				report.UnusedLabel, report.ModuleLocation(),
				"label constant `@%s` is never passed to an output call", g.Name(),
			))
		}
	}
}

// checkBarrierArity enforces `n <= required_num_qubits` for barrier<n>.
func (v *validator) checkBarrierArity(desc qir.Descriptor, loc report.Location) {
	if n := desc.QubitArity(); n > v.attrs.RequiredNumQubits {
		v.diags.Add(report.Errorf(
			report.BarrierArityExceedsQubits, loc,
			"barrier over %d qubits exceeds the declared %d", n, v.attrs.RequiredNumQubits,
		))
	}
}
