package validate

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"qirc/qir"
	"qirc/report"
)

// checkProfile enforces the restrictions of the declared profile on every
// defined function.  The base profile is straight-line: no conditional or
// backwards branching, no phi nodes, no arithmetic, and no call producing a
// value other than void or i64.  The adaptive profile permits phi nodes,
// conditional branches, and value-returning calls unconditionally; integer
// and floating-point arithmetic, backwards branching, switch, multiple
// return points, and IR-defined helper functions each need their module
// flag.
func (v *validator) checkProfile() {
	adaptive := v.attrs.Profile.IsAdaptive()

	for _, f := range v.mod.Funcs {
		if len(f.Blocks) == 0 {
			continue
		}

		if f != v.entry && !v.flagEnabled(qir.FlagIRFunctions) {
			if adaptive {
				v.violation(report.FuncLocation(f.Name()),
					"IR-defined function `%s` requires the `%s` module flag", f.Name(), qir.FlagIRFunctions)
			} else {
				v.violation(report.FuncLocation(f.Name()),
					"base profile forbids IR-defined functions other than the entry point")
			}
		}

		v.checkFunctionBody(f, adaptive)
	}
}

// checkFunctionBody applies the per-instruction profile rules to a single
// defined function.
func (v *validator) checkFunctionBody(f *ir.Func, adaptive bool) {
	blockIndex := make(map[*ir.Block]int, len(f.Blocks))
	for i, block := range f.Blocks {
		blockIndex[block] = i
	}

	returns := 0

	for bi, block := range f.Blocks {
		loc := report.Location{Func: f.Name(), Block: bi, Call: -1}

		for _, inst := range block.Insts {
			switch in := inst.(type) {
			case *ir.InstPhi:
				if !adaptive {
					v.violation(loc, "base profile forbids phi nodes")
				}
			case *ir.InstCall:
				v.checkCallReturn(in, adaptive, loc)
			default:
				v.checkComputation(inst, adaptive, loc)
			}
		}

		switch term := block.Term.(type) {
		case *ir.TermRet:
			returns++
		case *ir.TermBr:
			v.checkBranchDirection(blockIndex, bi, term.Target, adaptive, loc)
		case *ir.TermCondBr:
			if !adaptive {
				v.violation(loc, "base profile forbids conditional branching")
			}

			v.checkBranchDirection(blockIndex, bi, term.TargetTrue, adaptive, loc)
			v.checkBranchDirection(blockIndex, bi, term.TargetFalse, adaptive, loc)
		case *ir.TermSwitch:
			if !adaptive {
				v.violation(loc, "base profile forbids conditional branching")
			} else if !v.flagEnabled(qir.FlagMultipleTargetBranching) {
				v.violation(loc, "switch requires the `%s` module flag", qir.FlagMultipleTargetBranching)
			}

			for _, c := range term.Cases {
				v.checkBranchDirection(blockIndex, bi, c.Target, adaptive, loc)
			}
			v.checkBranchDirection(blockIndex, bi, term.TargetDefault, adaptive, loc)
		}
	}

	if returns > 1 && adaptive && !v.flagEnabled(qir.FlagMultipleReturnPoints) {
		v.violation(report.FuncLocation(f.Name()),
			"multiple return points require the `%s` module flag", qir.FlagMultipleReturnPoints)
	}
}

// checkCallReturn rejects base-profile calls producing anything other than
// void or i64.
func (v *validator) checkCallReturn(call *ir.InstCall, adaptive bool, loc report.Location) {
	if adaptive {
		return
	}

	switch t := call.Type().(type) {
	case *types.VoidType:
		return
	case *types.IntType:
		if t.BitSize == 64 {
			return
		}
	}

	v.violation(loc, "base profile forbids calls returning `%s`", call.Type())
}

// checkComputation flags classical arithmetic instructions.  Integer and
// floating-point computations are adaptive-profile capabilities declared by
// module flag; the base profile has neither.
func (v *validator) checkComputation(inst ir.Instruction, adaptive bool, loc report.Location) {
	var class string
	switch inst.(type) {
	case *ir.InstAdd, *ir.InstSub, *ir.InstMul, *ir.InstUDiv, *ir.InstSDiv,
		*ir.InstURem, *ir.InstSRem, *ir.InstShl, *ir.InstLShr, *ir.InstAShr,
		*ir.InstAnd, *ir.InstOr, *ir.InstXor, *ir.InstICmp:
		class = qir.FlagIntComputations
	case *ir.InstFAdd, *ir.InstFSub, *ir.InstFMul, *ir.InstFDiv, *ir.InstFRem,
		*ir.InstFNeg, *ir.InstFCmp:
		class = qir.FlagFloatComputations
	default:
		return
	}

	if !adaptive {
		v.violation(loc, "base profile forbids classical arithmetic")
		return
	}

	if !v.flagEnabled(class) {
		v.violation(loc, "computation requires the `%s` module flag", class)
	}
}

// checkBranchDirection flags branches to the same or an earlier block, which
// only the adaptive profile's backwards-branching capability permits.
func (v *validator) checkBranchDirection(blockIndex map[*ir.Block]int, from int, target value.Value, adaptive bool, loc report.Location) {
	block, ok := target.(*ir.Block)
	if !ok {
		return
	}

	ti, ok := blockIndex[block]
	if !ok || ti > from {
		return
	}

	if !adaptive {
		v.violation(loc, "base profile forbids backwards branching")
	} else if !v.flagEnabled(qir.FlagBackwardsBranching) {
		v.violation(loc, "backwards branching requires the `%s` module flag", qir.FlagBackwardsBranching)
	}
}

// violation records a ProfileViolation diagnostic.
func (v *validator) violation(loc report.Location, msg string, args ...interface{}) {
	v.diags.Add(report.Errorf(report.ProfileViolation, loc, msg, args...))
}

// flagEnabled reports whether a capability flag is present and declares its
// capability.
func (v *validator) flagEnabled(name string) bool {
	value, ok := v.flags[name]
	return ok && value.Enabled()
}
