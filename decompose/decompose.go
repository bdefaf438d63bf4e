// Package decompose implements the gate-decomposition pass: every call to a
// non-native quantum intrinsic is replaced, in place, by an equivalent
// sequence of calls to the native instruction set (rxy, rz, rzz, mz,
// reset).  The pass never touches control flow: replacement calls are
// spliced at the position of the original call and every other instruction
// keeps its relative order, so the control-flow graph of the module is
// invariant.  Running the pass on its own output is a no-op.
package decompose

import (
	"strings"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"qirc/qir"
	"qirc/report"
)

// decomposer holds the per-run state of a decomposition pass.
type decomposer struct {
	// The module being rewritten.
	mod *ir.Module

	// The native-gate declarations, created on first use.
	native map[string]*ir.Func

	// The declarations whose call sites this pass rewrote.  Only these are
	// candidates for pruning.
	rewritten map[*ir.Func]bool
}

// Run rewrites every recognized non-native QIS call in the module.  On
// success the returned list is empty and the module contains only calls to
// native intrinsics, barriers, runtime and platform functions, and
// user-defined functions.  An unrecognized QIS callee or an operand-count
// mismatch is fatal: the pass returns its diagnostic immediately.  Such a
// module should have been rejected by the validator.
func Run(mod *ir.Module) report.List {
	d := &decomposer{
		mod:       mod,
		native:    make(map[string]*ir.Func),
		rewritten: make(map[*ir.Func]bool),
	}

	// Reuse native declarations the module already carries rather than
	// inserting duplicates.
	for _, f := range mod.Funcs {
		if desc, ok := qir.Classify(f.Name()); ok && len(f.Blocks) == 0 && desc.NativeTarget() {
			d.native[desc.Op] = f
		}
	}

	for _, f := range mod.Funcs {
		for bi, block := range f.Blocks {
			if diag := d.rewriteBlock(f, bi, block); diag != nil {
				return report.List{*diag}
			}
		}
	}

	d.pruneDeclarations()
	return nil
}

// rewriteBlock splices replacement sequences into a single basic block.
func (d *decomposer) rewriteBlock(f *ir.Func, bi int, block *ir.Block) *report.Diagnostic {
	insts := make([]ir.Instruction, 0, len(block.Insts))
	ci := -1

	for _, inst := range block.Insts {
		call, ok := inst.(*ir.InstCall)
		if !ok {
			insts = append(insts, inst)
			continue
		}
		ci++

		callee, ok := call.Callee.(*ir.Func)
		if !ok {
			insts = append(insts, inst)
			continue
		}

		name := callee.Name()
		desc, recognized := qir.Classify(name)
		if !recognized {
			if isQISName(name) {
				diag := report.Errorf(
					report.UnknownIntrinsic, report.CallLocation(f.Name(), bi, ci),
					"unrecognized quantum intrinsic `%s`", name,
				)
				return &diag
			}

			// User-defined function: passed through unchanged.
			insts = append(insts, inst)
			continue
		}

		steps, hasRule := rewriteTable[ruleKey(desc)]
		if !hasRule {
			// Native gates, barriers, runtime and platform calls pass
			// through untouched.
			insts = append(insts, inst)
			continue
		}

		if len(call.Args) != len(desc.Operands) {
			diag := report.Errorf(
				report.BadIntrinsicSignature, report.CallLocation(f.Name(), bi, ci),
				"`%s` expects %d operands, got %d", name, len(desc.Operands), len(call.Args),
			)
			return &diag
		}

		logSynonym(desc.Op)

		for _, s := range steps {
			insts = append(insts, d.buildCall(s, call))
		}

		d.rewritten[callee] = true
	}

	block.Insts = insts
	return nil
}

// ruleKey derives the rewrite-table key of a descriptor.
func ruleKey(desc qir.Descriptor) string {
	return desc.Op + "__" + desc.Variant
}

// isQISName reports whether a name lies in the gate namespace the
// decomposer is responsible for.
func isQISName(name string) bool {
	return strings.HasPrefix(name, qir.QISPrefix)
}

// logSynonym records the frontend spellings the pass accepts for native
// operations.
func logSynonym(op string) {
	switch op {
	case "u1q":
		report.Log.Infof("`__quantum__qis__u1q__body` used, synonym for `__quantum__qis__rxy__body`")
	case "m":
		report.Log.Warnf("`__quantum__qis__m__body` is from Q# QDK, synonym for `__quantum__qis__mz__body`")
	case "mresetz":
		report.Log.Warnf("`__quantum__qis__mresetz__body` is from Q# QDK")
	}
}

// buildCall materializes one replacement call, forwarding the source call's
// operands literally.
func (d *decomposer) buildCall(s step, src *ir.InstCall) *ir.InstCall {
	args := make([]value.Value, len(s.Args))
	for i, op := range s.Args {
		if op.Arg >= 0 {
			args[i] = src.Args[op.Arg]
		} else {
			args[i] = constant.NewFloat(types.Double, op.Const)
		}
	}

	return ir.NewCall(d.nativeDecl(s.Op, args), args...)
}
