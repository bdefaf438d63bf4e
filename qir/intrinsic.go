// Package qir contains the compiler's model of the QIR surface it accepts:
// the intrinsic recognizer, the entry-point attribute record, the module
// flag reader, and the qubit/result identity decoding helpers.  Everything
// in this package is read-only with respect to the module; all mutation
// lives in the decompose package.
package qir

import (
	"strconv"
	"strings"
)

// Mangled-name prefixes for the three intrinsic namespaces.
const (
	QISPrefix      = "__quantum__qis__"
	RuntimePrefix  = "__quantum__rt__"
	PlatformPrefix = "___"
)

// Category classifies a recognized intrinsic by its role.
type Category int

const (
	NativeGate    Category = iota // A gate of the native set: rxy, rz, rzz.
	NonNativeGate                 // A gate the decomposer rewrites.
	Measurement                   // mz and its synonyms m, mresetz.
	Reset                         // reset.
	Barrier                       // barrier<n>.
	Runtime                       // __quantum__rt__* calls.
	OutputRecord                  // The *_record_output subset of runtime calls.
	Platform                      // ___* Quantinuum platform utilities.
)

var categoryStrings = map[Category]string{
	NativeGate:    "native-gate",
	NonNativeGate: "non-native-gate",
	Measurement:   "measurement",
	Reset:         "reset",
	Barrier:       "barrier",
	Runtime:       "runtime",
	OutputRecord:  "output-record",
	Platform:      "platform",
}

func (c Category) String() string {
	return categoryStrings[c]
}

// OperandKind is the expected kind of a single intrinsic operand or return
// value.  The validator checks call-site operands against these kinds.
type OperandKind int

const (
	KindVoid   OperandKind = iota // No value (returns only).
	KindQubit                     // %Qubit* (or opaque ptr).
	KindResult                    // %Result* (or opaque ptr).
	KindDouble                    // double.
	KindI64                       // i64.
	KindI32                       // i32.
	KindI1                        // i1.
	KindLabel                     // i8* label pointer (or opaque ptr).
)

var operandKindStrings = map[OperandKind]string{
	KindVoid:   "void",
	KindQubit:  "%Qubit*",
	KindResult: "%Result*",
	KindDouble: "double",
	KindI64:    "i64",
	KindI32:    "i32",
	KindI1:     "i1",
	KindLabel:  "i8*",
}

func (k OperandKind) String() string {
	return operandKindStrings[k]
}

// -----------------------------------------------------------------------------

// Descriptor describes a recognized intrinsic: its role, its parsed name
// parts, and its expected signature.  The `barrier<n>` family is a single
// descriptor variant carrying the parsed arity rather than one table entry
// per arity.
type Descriptor struct {
	// The role of the intrinsic.
	Category Category

	// The operation name with mangling stripped: "h", "cx", "read_result",
	// "random_seed", etc.  Barriers use the op "barrier".
	Op string

	// The QIS name variant: "body" or "adj".  Empty for runtime and
	// platform intrinsics.
	Variant string

	// The expected operand kinds in source order.
	Operands []OperandKind

	// The expected return kind.  KindVoid for most intrinsics.
	Ret OperandKind
}

// QubitArity returns the number of qubit operands the intrinsic takes.
func (d Descriptor) QubitArity() int {
	return d.countOperands(KindQubit)
}

// ParamArity returns the number of rotation-angle (double) operands.
func (d Descriptor) ParamArity() int {
	return d.countOperands(KindDouble)
}

// ResultArity returns the number of result operands.
func (d Descriptor) ResultArity() int {
	return d.countOperands(KindResult)
}

func (d Descriptor) countOperands(kind OperandKind) int {
	n := 0
	for _, k := range d.Operands {
		if k == kind {
			n++
		}
	}

	return n
}

// NativeTarget returns whether a call to this intrinsic may remain in a
// fully decomposed module.
func (d Descriptor) NativeTarget() bool {
	switch d.Category {
	case Barrier, Runtime, OutputRecord, Platform:
		return true
	default:
		_, ok := nativeOps[d.Op]
		return ok
	}
}

// nativeOps is the native instruction set: rxy, rz, rzz, mz, and reset.
// Synonyms such as u1q and m share a category with a native gate but are
// still rewritten.
var nativeOps = map[string]struct{}{
	"rxy":   {},
	"rz":    {},
	"rzz":   {},
	"mz":    {},
	"reset": {},
}

// MangledName returns the full mangled function name of the descriptor.  For
// barriers the returned name has no arity digits; the caller must insert
// them between `barrier` and `__body`.
func (d Descriptor) MangledName() string {
	switch d.Category {
	case Runtime, OutputRecord:
		return RuntimePrefix + d.Op
	case Platform:
		return PlatformPrefix + d.Op
	default:
		return QISPrefix + d.Op + "__" + d.Variant
	}
}

// -----------------------------------------------------------------------------

// qubits is shorthand for an operand list of n qubit kinds.
func qubits(n int) []OperandKind {
	ops := make([]OperandKind, n)
	for i := range ops {
		ops[i] = KindQubit
	}

	return ops
}

// qisTable maps `<op>__<variant>` to the descriptor of each recognized QIS
// intrinsic.  Barriers are handled separately because their name carries an
// arity.
var qisTable = map[string]Descriptor{
	// Native gate set.
	"rxy__body":   {Category: NativeGate, Op: "rxy", Variant: "body", Operands: []OperandKind{KindDouble, KindDouble, KindQubit}},
	"rz__body":    {Category: NativeGate, Op: "rz", Variant: "body", Operands: []OperandKind{KindDouble, KindQubit}},
	"rzz__body":   {Category: NativeGate, Op: "rzz", Variant: "body", Operands: []OperandKind{KindDouble, KindQubit, KindQubit}},
	"mz__body":    {Category: Measurement, Op: "mz", Variant: "body", Operands: []OperandKind{KindQubit, KindResult}},
	"reset__body": {Category: Reset, Op: "reset", Variant: "body", Operands: []OperandKind{KindQubit}},

	// Synonym for rxy used by some frontends.
	"u1q__body": {Category: NativeGate, Op: "u1q", Variant: "body", Operands: []OperandKind{KindDouble, KindDouble, KindQubit}},

	// Measurement synonyms.
	"m__body":       {Category: Measurement, Op: "m", Variant: "body", Operands: []OperandKind{KindQubit, KindResult}},
	"mresetz__body": {Category: Measurement, Op: "mresetz", Variant: "body", Operands: []OperandKind{KindQubit, KindResult}},

	// Gates rewritten by the decomposer.
	"h__body":    {Category: NonNativeGate, Op: "h", Variant: "body", Operands: qubits(1)},
	"x__body":    {Category: NonNativeGate, Op: "x", Variant: "body", Operands: qubits(1)},
	"y__body":    {Category: NonNativeGate, Op: "y", Variant: "body", Operands: qubits(1)},
	"z__body":    {Category: NonNativeGate, Op: "z", Variant: "body", Operands: qubits(1)},
	"s__body":    {Category: NonNativeGate, Op: "s", Variant: "body", Operands: qubits(1)},
	"s__adj":     {Category: NonNativeGate, Op: "s", Variant: "adj", Operands: qubits(1)},
	"t__body":    {Category: NonNativeGate, Op: "t", Variant: "body", Operands: qubits(1)},
	"t__adj":     {Category: NonNativeGate, Op: "t", Variant: "adj", Operands: qubits(1)},
	"rx__body":   {Category: NonNativeGate, Op: "rx", Variant: "body", Operands: []OperandKind{KindDouble, KindQubit}},
	"ry__body":   {Category: NonNativeGate, Op: "ry", Variant: "body", Operands: []OperandKind{KindDouble, KindQubit}},
	"cz__body":   {Category: NonNativeGate, Op: "cz", Variant: "body", Operands: qubits(2)},
	"cx__body":   {Category: NonNativeGate, Op: "cx", Variant: "body", Operands: qubits(2)},
	"cnot__body": {Category: NonNativeGate, Op: "cnot", Variant: "body", Operands: qubits(2)},
	"ccx__body":  {Category: NonNativeGate, Op: "ccx", Variant: "body", Operands: qubits(3)},
}

// runtimeTable maps runtime operation names to their descriptors.
var runtimeTable = map[string]Descriptor{
	"initialize":  {Category: Runtime, Op: "initialize", Operands: []OperandKind{KindLabel}},
	"read_result": {Category: Runtime, Op: "read_result", Operands: []OperandKind{KindResult}, Ret: KindI1},

	"result_record_output": {Category: OutputRecord, Op: "result_record_output", Operands: []OperandKind{KindResult, KindLabel}},
	"bool_record_output":   {Category: OutputRecord, Op: "bool_record_output", Operands: []OperandKind{KindI1, KindLabel}},
	"int_record_output":    {Category: OutputRecord, Op: "int_record_output", Operands: []OperandKind{KindI64, KindLabel}},
	"double_record_output": {Category: OutputRecord, Op: "double_record_output", Operands: []OperandKind{KindDouble, KindLabel}},
	"tuple_record_output":  {Category: OutputRecord, Op: "tuple_record_output", Operands: []OperandKind{KindI64, KindLabel}},
	"array_record_output":  {Category: OutputRecord, Op: "array_record_output", Operands: []OperandKind{KindI64, KindLabel}},
}

// platformTable maps platform utility names to their descriptors.
var platformTable = map[string]Descriptor{
	"get_current_shot":   {Category: Platform, Op: "get_current_shot", Ret: KindI64},
	"random_seed":        {Category: Platform, Op: "random_seed", Operands: []OperandKind{KindI64}},
	"random_int":         {Category: Platform, Op: "random_int", Ret: KindI32},
	"random_int_bounded": {Category: Platform, Op: "random_int_bounded", Operands: []OperandKind{KindI32}, Ret: KindI32},
	"random_float":       {Category: Platform, Op: "random_float", Ret: KindDouble},
	"random_advance":     {Category: Platform, Op: "random_advance", Operands: []OperandKind{KindI64}},
}

// -----------------------------------------------------------------------------

// Classify matches a mangled callee name against the recognized intrinsic
// grammar.  It returns the descriptor and true on a match.  Unrecognized
// names return false: they are neither validated nor decomposed, so
// user-defined functions pass through the compiler untouched.
//
// The accepted grammar is:
//
//	__quantum__qis__<op>__body
//	__quantum__qis__<op>__adj         (only s, t)
//	__quantum__qis__barrier<n>__body  (n = [0-9]+)
//	__quantum__rt__<op>
//	___<platform-op>
func Classify(name string) (Descriptor, bool) {
	switch {
	case strings.HasPrefix(name, QISPrefix):
		return classifyQIS(strings.TrimPrefix(name, QISPrefix))
	case strings.HasPrefix(name, RuntimePrefix):
		d, ok := runtimeTable[strings.TrimPrefix(name, RuntimePrefix)]
		return d, ok
	case strings.HasPrefix(name, PlatformPrefix):
		d, ok := platformTable[strings.TrimPrefix(name, PlatformPrefix)]
		return d, ok
	default:
		return Descriptor{}, false
	}
}

// classifyQIS classifies the `<op>__<variant>` tail of a QIS name.
func classifyQIS(tail string) (Descriptor, bool) {
	if d, ok := qisTable[tail]; ok {
		return d, true
	}

	// The barrier family: `barrier<n>__body` with a decimal arity baked
	// into the name.
	if digits, ok := barrierDigits(tail); ok {
		n, err := strconv.Atoi(digits)
		if err != nil {
			// Out-of-range arities are unrecognized rather than malformed.
			return Descriptor{}, false
		}

		return Descriptor{
			Category: Barrier,
			Op:       "barrier",
			Variant:  "body",
			Operands: qubits(n),
		}, true
	}

	return Descriptor{}, false
}

// barrierDigits extracts the digit run of a `barrier<n>__body` tail.  The
// digit run may be empty only in name forms that are not barriers.
func barrierDigits(tail string) (string, bool) {
	rest, ok := strings.CutPrefix(tail, "barrier")
	if !ok {
		return "", false
	}

	digits, ok := strings.CutSuffix(rest, "__body")
	if !ok || digits == "" {
		return "", false
	}

	for _, c := range digits {
		if c < '0' || c > '9' {
			return "", false
		}
	}

	return digits, true
}

// IsNativeName reports whether a mangled name is one a fully decomposed
// module may still call: the native gate set, barriers, runtime calls, and
// platform utilities.
func IsNativeName(name string) bool {
	d, ok := Classify(name)
	if !ok {
		return false
	}

	if d.Category == Barrier {
		return true
	}

	if _, native := nativeOps[d.Op]; native {
		return true
	}

	return d.Category == Runtime || d.Category == OutputRecord || d.Category == Platform
}
