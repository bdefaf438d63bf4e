package decompose

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"qirc/qir"
	"qirc/report"
	"qirc/util"
)

// irreversibleOps are the native operations with non-unitary semantics.
var irreversibleOps = []string{"mz", "reset"}

// nativeDecl returns the external declaration of a native operation,
// inserting it into the module on first use.  The parameter types are taken
// from the resolved replacement arguments, so the declaration matches the
// pointer style of the input module.  The irreversible operations mz and
// reset are declared with the `irreversible` attribute.
func (d *decomposer) nativeDecl(op string, args []value.Value) *ir.Func {
	if f, ok := d.native[op]; ok {
		return f
	}

	params := make([]*ir.Param, len(args))
	for i, a := range args {
		params[i] = ir.NewParam("", a.Type())
	}

	f := d.mod.NewFunc(qir.QISPrefix+op+"__body", types.Void, params...)
	if util.Contains(irreversibleOps, op) {
		f.FuncAttrs = append(f.FuncAttrs, ir.AttrString(qir.AttrIrreversible))
	}

	report.Log.Debugf("inserted declaration for native intrinsic `%s`", f.Name())
	d.native[op] = f
	return f
}

// -----------------------------------------------------------------------------

// pruneDeclarations removes the external declarations of intrinsics whose
// call sites were all rewritten, unless the declaration remains referenced
// elsewhere in the module.
func (d *decomposer) pruneDeclarations() {
	if len(d.rewritten) == 0 {
		return
	}

	referenced := d.collectReferences()

	kept := make([]*ir.Func, 0, len(d.mod.Funcs))
	for _, f := range d.mod.Funcs {
		if d.rewritten[f] && len(f.Blocks) == 0 && !referenced[f] {
			report.Log.Debugf("pruned unused declaration `%s`", f.Name())
			continue
		}

		kept = append(kept, f)
	}

	d.mod.Funcs = kept
}

// collectReferences gathers every function referenced by a remaining call
// site, either as the callee or as a call argument, or used directly as a
// global initializer.  Other instruction operands and functions nested inside
// constant initializers are not scanned.
func (d *decomposer) collectReferences() map[*ir.Func]bool {
	referenced := make(map[*ir.Func]bool)

	note := func(v value.Value) {
		if f, ok := v.(*ir.Func); ok {
			referenced[f] = true
		}
	}

	for _, f := range d.mod.Funcs {
		for _, block := range f.Blocks {
			for _, inst := range block.Insts {
				if call, ok := inst.(*ir.InstCall); ok {
					note(call.Callee)
					for _, a := range call.Args {
						note(a)
					}
				}
			}
		}
	}

	for _, g := range d.mod.Globals {
		if g.Init != nil {
			note(g.Init)
		}
	}

	return referenced
}
