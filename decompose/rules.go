package decompose

import "math"

// Rotation angles used by the replacement sequences.  These are the exact
// IEEE-754 doubles a programmer would get writing the fractions directly,
// so decomposed output never differs from hand-written native IR.
const (
	pi            = math.Pi
	halfPi        = math.Pi / 2
	negHalfPi     = -math.Pi / 2
	quarterPi     = math.Pi / 4
	negQuarterPi  = -math.Pi / 4
	negThreeQuart = -3 * math.Pi / 4
)

// operand selects one argument of a replacement call: either a forwarded
// operand of the source call (by index) or a literal rotation angle.
type operand struct {
	// The index of the forwarded source operand, or -1 for a constant.
	Arg int

	// The literal double emitted when Arg is negative.
	Const float64
}

// arg forwards the source call's i-th operand.
func arg(i int) operand {
	return operand{Arg: i}
}

// angle emits a literal rotation angle.
func angle(x float64) operand {
	return operand{Arg: -1, Const: x}
}

// step is one replacement call: a native operation and its argument
// selectors.  Templates are data rather than code so the rewrite loop stays
// table-driven and new gates are added without touching control flow.
type step struct {
	// The native operation: "rxy", "rz", "rzz", "mz", or "reset".
	Op string

	// The arguments of the replacement call in order.
	Args []operand
}

// rewriteTable maps each rewritten QIS intrinsic, keyed `<op>__<variant>`,
// to its ordered replacement sequence.  Operand indices refer to the source
// call's operands in source order.
var rewriteTable = map[string][]step{
	// h(q) = rxy(pi/2, -pi/2, q); rz(pi, q)
	"h__body": {
		{Op: "rxy", Args: []operand{angle(halfPi), angle(negHalfPi), arg(0)}},
		{Op: "rz", Args: []operand{angle(pi), arg(0)}},
	},

	// x(q) = rxy(pi, 0, q)
	"x__body": {
		{Op: "rxy", Args: []operand{angle(pi), angle(0), arg(0)}},
	},

	// y(q) = rxy(pi, pi/2, q)
	"y__body": {
		{Op: "rxy", Args: []operand{angle(pi), angle(halfPi), arg(0)}},
	},

	// z(q) = rz(pi, q)
	"z__body": {
		{Op: "rz", Args: []operand{angle(pi), arg(0)}},
	},

	// rx(theta, q) = rxy(theta, 0, q)
	"rx__body": {
		{Op: "rxy", Args: []operand{arg(0), angle(0), arg(1)}},
	},

	// ry(theta, q) = rxy(theta, pi/2, q)
	"ry__body": {
		{Op: "rxy", Args: []operand{arg(0), angle(halfPi), arg(1)}},
	},

	// s(q) = rz(pi/2, q)
	"s__body": {
		{Op: "rz", Args: []operand{angle(halfPi), arg(0)}},
	},

	// s_adj(q) = rz(-pi/2, q)
	"s__adj": {
		{Op: "rz", Args: []operand{angle(negHalfPi), arg(0)}},
	},

	// t(q) = rz(pi/4, q)
	"t__body": {
		{Op: "rz", Args: []operand{angle(quarterPi), arg(0)}},
	},

	// t_adj(q) = rz(-pi/4, q)
	"t__adj": {
		{Op: "rz", Args: []operand{angle(negQuarterPi), arg(0)}},
	},

	// u1q is a frontend synonym for rxy; the call is renamed, not expanded.
	"u1q__body": {
		{Op: "rxy", Args: []operand{arg(0), arg(1), arg(2)}},
	},

	// cz(c, t) = rzz(pi/2, c, t); rz(-pi/2, t); rz(-pi/2, c)
	"cz__body": {
		{Op: "rzz", Args: []operand{angle(halfPi), arg(0), arg(1)}},
		{Op: "rz", Args: []operand{angle(negHalfPi), arg(1)}},
		{Op: "rz", Args: []operand{angle(negHalfPi), arg(0)}},
	},

	// cx(c, t) = rxy(-pi/2, pi/2, t); rzz(pi/2, c, t); rz(-pi/2, c);
	//            rxy(pi/2, pi, t); rz(-pi/2, t)
	"cx__body":   cxSteps,
	"cnot__body": cxSteps,

	// ccx(c1, c2, t): the fifteen-call Toffoli sequence.
	"ccx__body": {
		{Op: "rxy", Args: []operand{angle(pi), angle(negHalfPi), arg(2)}},
		{Op: "rzz", Args: []operand{angle(halfPi), arg(1), arg(2)}},
		{Op: "rxy", Args: []operand{angle(quarterPi), angle(halfPi), arg(2)}},
		{Op: "rzz", Args: []operand{angle(halfPi), arg(0), arg(2)}},
		{Op: "rxy", Args: []operand{angle(quarterPi), angle(0), arg(2)}},
		{Op: "rzz", Args: []operand{angle(halfPi), arg(1), arg(2)}},
		{Op: "rxy", Args: []operand{angle(quarterPi), angle(negHalfPi), arg(2)}},
		{Op: "rzz", Args: []operand{angle(halfPi), arg(0), arg(2)}},
		{Op: "rxy", Args: []operand{angle(pi), angle(quarterPi), arg(0)}},
		{Op: "rxy", Args: []operand{angle(negThreeQuart), angle(pi), arg(2)}},
		{Op: "rzz", Args: []operand{angle(quarterPi), arg(0), arg(1)}},
		{Op: "rz", Args: []operand{angle(pi), arg(2)}},
		{Op: "rxy", Args: []operand{angle(pi), angle(negQuarterPi), arg(0)}},
		{Op: "rz", Args: []operand{angle(negThreeQuart), arg(1)}},
		{Op: "rz", Args: []operand{angle(quarterPi), arg(0)}},
	},

	// m is the Q# QDK spelling of mz.
	"m__body": {
		{Op: "mz", Args: []operand{arg(0), arg(1)}},
	},

	// mresetz(q, r) = mz(q, r); reset(q)
	"mresetz__body": {
		{Op: "mz", Args: []operand{arg(0), arg(1)}},
		{Op: "reset", Args: []operand{arg(0)}},
	},
}

// cxSteps is shared between cx and its legacy cnot spelling.
var cxSteps = []step{
	{Op: "rxy", Args: []operand{angle(negHalfPi), angle(halfPi), arg(1)}},
	{Op: "rzz", Args: []operand{angle(halfPi), arg(0), arg(1)}},
	{Op: "rz", Args: []operand{angle(negHalfPi), arg(0)}},
	{Op: "rxy", Args: []operand{angle(halfPi), angle(pi), arg(1)}},
	{Op: "rz", Args: []operand{angle(negHalfPi), arg(1)}},
}
