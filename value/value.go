// Package value implements Blue's tagged Value union and its single heap
// object kind, the interned string. Values are passed by copy, the way the
// VM's operand stack expects.
package value

import (
	"fmt"
	"strconv"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindObj
)

// Object is implemented by every heap-allocated Blue object. ObjString is
// the only concrete type today; Next/SetNext thread the object into the
// VM's intrusive allocation list so the whole heap can be walked and
// released together on VM teardown.
type Object interface {
	Next() Object
	SetNext(Object)
	objectMarker()
}

// header is embedded by every Object implementation to provide the
// intrusive list link.
type header struct {
	next Object
}

func (h *header) Next() Object     { return h.next }
func (h *header) SetNext(o Object) { h.next = o }
func (h *header) objectMarker()    {}

// ObjString is Blue's only heap type: an interned, content-hashed string.
// Two ObjStrings with equal contents reachable from the same VM are always
// the same pointer — that invariant is what makes string equality a cheap
// pointer comparison everywhere else in the VM.
type ObjString struct {
	header
	Bytes string
	Hash  uint32
}

// FNVHash computes the FNV-1a hash of bytes, the algorithm the source
// language this VM is modeled on uses to hash interned strings.
func FNVHash(bytes string) uint32 {
	var hash uint32 = 2166136261
	for i := 0; i < len(bytes); i++ {
		hash ^= uint32(bytes[i])
		hash *= 16777619
	}
	return hash
}

// Value is a tagged union of {nil, bool, number, object}. The zero Value is
// nil.
type Value struct {
	kind Kind
	b    bool
	n    float64
	obj  Object
}

func Nil() Value              { return Value{kind: KindNil} }
func Bool(b bool) Value       { return Value{kind: KindBool, b: b} }
func Number(n float64) Value  { return Value{kind: KindNumber, n: n} }
func Obj(o Object) Value      { return Value{kind: KindObj, obj: o} }

func (v Value) IsNil() bool    { return v.kind == KindNil }
func (v Value) IsBool() bool   { return v.kind == KindBool }
func (v Value) IsNumber() bool { return v.kind == KindNumber }
func (v Value) IsObj() bool    { return v.kind == KindObj }

func (v Value) IsString() bool {
	if v.kind != KindObj {
		return false
	}
	_, ok := v.obj.(*ObjString)
	return ok
}

func (v Value) AsBool() bool     { return v.b }
func (v Value) AsNumber() float64 { return v.n }
func (v Value) AsObj() Object    { return v.obj }

func (v Value) AsString() *ObjString {
	return v.obj.(*ObjString)
}

// IsFalsey reports Blue's truthiness rule: nil and false are falsey,
// everything else (including 0 and "") is truthy.
func (v Value) IsFalsey() bool {
	return v.IsNil() || (v.IsBool() && !v.AsBool())
}

// Equal implements Blue's equality: nil equals nil, numbers compare by
// value, bools by value, strings by identity (safe given interning), and
// any other type combination is unequal.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNil:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.n == b.n
	case KindObj:
		return a.obj == b.obj
	default:
		return false
	}
}

// String formats v the way OP_PRINT writes it to stdout.
func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindNumber:
		return strconv.FormatFloat(v.n, 'g', -1, 64)
	case KindObj:
		switch o := v.obj.(type) {
		case *ObjString:
			return o.Bytes
		default:
			return fmt.Sprintf("<object %v>", o)
		}
	default:
		return "<invalid value>"
	}
}
