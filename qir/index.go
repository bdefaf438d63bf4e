package qir

import (
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// Names of the opaque struct types behind qubit and result pointers.
const (
	QubitTypeName  = "Qubit"
	ResultTypeName = "Result"
)

// ConstIndex decodes the runtime identity of a qubit or result operand.
// Identities are non-negative integers encoded as `inttoptr iN K` constant
// expressions; `null` is identity zero.  The second return is false for
// operands that are not constant encodings (for example SSA values in
// adaptive-profile arithmetic), which are outside the bounds check.
func ConstIndex(v value.Value) (int64, bool) {
	switch c := v.(type) {
	case *constant.Null:
		return 0, true
	case *constant.ExprIntToPtr:
		if from, ok := c.From.(*constant.Int); ok {
			return from.X.Int64(), true
		}

		return 0, false
	default:
		return 0, false
	}
}

// pointsTo reports whether a type is a typed pointer to the named opaque
// struct.
func pointsTo(t types.Type, name string) bool {
	ptr, ok := t.(*types.PointerType)
	if !ok {
		return false
	}

	st, ok := ptr.ElemType.(*types.StructType)
	if !ok {
		return false
	}

	return st.Name() == name
}

// MatchesKind reports whether an operand value's type is acceptable for the
// expected operand kind.  Typed pointers are checked by pointee name; a
// pointer whose pointee cannot be inspected is accepted for every pointer
// kind, treating typed and opaque pointer IR as equivalent.
func MatchesKind(v value.Value, kind OperandKind) bool {
	t := v.Type()

	switch kind {
	case KindQubit:
		return anonymousPointer(t) || pointsTo(t, QubitTypeName)
	case KindResult:
		return anonymousPointer(t) || pointsTo(t, ResultTypeName)
	case KindLabel:
		ptr, ok := t.(*types.PointerType)
		if !ok {
			return false
		}

		if it, ok := ptr.ElemType.(*types.IntType); ok {
			return it.BitSize == 8
		}

		// Labels are commonly passed as a GEP into a byte-array global;
		// accept array-of-i8 pointees too.
		if at, ok := ptr.ElemType.(*types.ArrayType); ok {
			it, ok := at.ElemType.(*types.IntType)
			return ok && it.BitSize == 8
		}

		return anonymousPointer(t)
	case KindDouble:
		ft, ok := t.(*types.FloatType)
		return ok && ft.Kind == types.FloatKindDouble
	case KindI64:
		return isIntType(t, 64)
	case KindI32:
		return isIntType(t, 32)
	case KindI1:
		return isIntType(t, 1)
	default:
		return false
	}
}

// anonymousPointer reports whether a pointer type carries no usable pointee
// information: an opaque pointer or a pointer to an unnamed struct.
func anonymousPointer(t types.Type) bool {
	ptr, ok := t.(*types.PointerType)
	if !ok {
		return false
	}

	if ptr.ElemType == nil {
		return true
	}

	st, ok := ptr.ElemType.(*types.StructType)
	return ok && st.Name() == ""
}

func isIntType(t types.Type, bits uint64) bool {
	it, ok := t.(*types.IntType)
	return ok && it.BitSize == bits
}
