package ast

import (
	"fmt"
	"math"

	"ion/report"
)

// TypeKind is the variant of a type construct.
type TypeKind int

// Enumeration of type kinds.
const (
	TypeVoid TypeKind = iota
	TypeBoolean
	TypeInteger
	TypeFloat
	TypeChar
	TypeString
	TypeUserDefined
)

// IntegerKind is the width of an integer type.
type IntegerKind int

// Enumeration of integer kinds, smallest first.
const (
	Int8 IntegerKind = iota
	Int16
	Int32
	Int64
	Int128
)

// Bits returns the bit width of the integer kind.
func (ik IntegerKind) Bits() int {
	return 8 << uint(ik)
}

// IntegerKindForValue returns the smallest signed integer kind able to
// represent v.
func IntegerKindForValue(v int64) IntegerKind {
	switch {
	case v >= math.MinInt8 && v <= math.MaxInt8:
		return Int8
	case v >= math.MinInt16 && v <= math.MaxInt16:
		return Int16
	case v >= math.MinInt32 && v <= math.MaxInt32:
		return Int32
	default:
		return Int64
	}
}

// Type is a type label.  Only the fields relevant to its TypeKind are set.
type Type struct {
	TypeKind TypeKind

	// Integer types only.
	IntegerKind IntegerKind
	Signed      bool

	// Float types only: 16, 32 or 64.
	FloatWidth int

	// User defined types only.
	Name string

	// Whether the type was explicitly marked with a trailing `*`.
	Pointer bool
}

func (*Type) Kind() Kind { return KindType }

func (*Type) Children() []NodeID { return nil }

func (ty *Type) String() string {
	var s string
	switch ty.TypeKind {
	case TypeVoid:
		s = "void"
	case TypeBoolean:
		s = "bool"
	case TypeInteger:
		if ty.Signed {
			s = fmt.Sprintf("int%d", ty.IntegerKind.Bits())
		} else {
			s = fmt.Sprintf("uint%d", ty.IntegerKind.Bits())
		}
	case TypeFloat:
		s = fmt.Sprintf("float%d", ty.FloatWidth)
	case TypeChar:
		s = "char"
	case TypeString:
		s = "string"
	default:
		s = ty.Name
	}

	if ty.Pointer {
		return s + "*"
	}

	return s
}

// NewType stores a copy of a type label in the tree.
func (t *Tree) NewType(ty Type, span *report.TextSpan) NodeID {
	return t.Add(&ty, span)
}

// IntegerType returns a signed integer type label of the given kind.
func IntegerType(kind IntegerKind) Type {
	return Type{TypeKind: TypeInteger, IntegerKind: kind, Signed: true}
}

// -----------------------------------------------------------------------------

// IntegerValue is an integer literal.
type IntegerValue struct {
	Type  NodeID
	Value int64
}

func (*IntegerValue) Kind() Kind { return KindIntegerValue }

func (iv *IntegerValue) Children() []NodeID { return []NodeID{iv.Type} }

// NewIntegerValue creates an integer value owning the given type.
func (t *Tree) NewIntegerValue(typ NodeID, value int64, span *report.TextSpan) NodeID {
	return t.adopt(&IntegerValue{Type: typ, Value: value}, span, typ)
}

// NewIntegerLiteral creates an integer value whose type is the smallest integer
// kind able to hold the value.
func (t *Tree) NewIntegerLiteral(value int64, span *report.TextSpan) NodeID {
	typ := t.NewType(IntegerType(IntegerKindForValue(value)), span)
	return t.NewIntegerValue(typ, value, span)
}

// CharValue is a character literal.
type CharValue struct {
	Type  NodeID
	Value byte
}

func (*CharValue) Kind() Kind { return KindCharValue }

func (cv *CharValue) Children() []NodeID { return []NodeID{cv.Type} }

// NewCharValue creates a character value along with its char type.
func (t *Tree) NewCharValue(value byte, span *report.TextSpan) NodeID {
	typ := t.NewType(Type{TypeKind: TypeChar}, span)
	return t.adopt(&CharValue{Type: typ, Value: value}, span, typ)
}

// StringValue is a string literal.
type StringValue struct {
	Type  NodeID
	Value string
}

func (*StringValue) Kind() Kind { return KindStringValue }

func (sv *StringValue) Children() []NodeID { return []NodeID{sv.Type} }

// NewStringValue creates a string value along with its string type.
func (t *Tree) NewStringValue(value string, span *report.TextSpan) NodeID {
	typ := t.NewType(Type{TypeKind: TypeString}, span)
	return t.adopt(&StringValue{Type: typ, Value: value}, span, typ)
}

// BooleanValue is a boolean literal.
type BooleanValue struct {
	Type  NodeID
	Value bool
}

func (*BooleanValue) Kind() Kind { return KindBooleanValue }

func (bv *BooleanValue) Children() []NodeID { return []NodeID{bv.Type} }

// NewBooleanValue creates a boolean value along with its bool type.
func (t *Tree) NewBooleanValue(value bool, span *report.TextSpan) NodeID {
	typ := t.NewType(Type{TypeKind: TypeBoolean}, span)
	return t.adopt(&BooleanValue{Type: typ, Value: value}, span, typ)
}

// -----------------------------------------------------------------------------

// RefKind is the kind of construct a reference stands in for.
type RefKind int

// Enumeration of reference kinds.
const (
	RefVariable RefKind = iota
	RefFunction
)

func (rk RefKind) String() string {
	switch rk {
	case RefVariable:
		return "variable"
	case RefFunction:
		return "function"
	default:
		return fmt.Sprintf("refkind(%d)", int(rk))
	}
}

// Ref is a named placeholder for a construct that is bound during name
// resolution.  A Ref is either unresolved or resolved to a valid construct.
type Ref struct {
	Name    string
	RefKind RefKind

	// The block in whose context the reference is resolved.
	Owner NodeID

	// The resolved construct: NoNode until resolution.
	Value NodeID
}

func (*Ref) Kind() Kind { return KindRef }

func (*Ref) Children() []NodeID { return nil }

// IsResolved returns whether the reference has been bound.
func (r *Ref) IsResolved() bool {
	return r.Value != NoNode
}

// Resolve binds the reference.  Resolving an already resolved reference does
// nothing.
func (r *Ref) Resolve(id NodeID) error {
	if id == NoNode {
		return ErrNullResolution
	}

	if !r.IsResolved() {
		r.Value = id
	}

	return nil
}

// NewRef creates an unresolved reference owned by the given block.
func (t *Tree) NewRef(name string, kind RefKind, owner NodeID, span *report.TextSpan) NodeID {
	return t.Add(&Ref{Name: name, RefKind: kind, Owner: owner}, span)
}

// Deref returns the construct a reference is bound to.
func (t *Tree) Deref(ref NodeID) (NodeID, error) {
	r, err := t.Ref(ref)
	if err != nil {
		return NoNode, err
	}

	if !r.IsResolved() {
		return NoNode, fmt.Errorf("`%s`: %w", r.Name, ErrUnresolved)
	}

	return r.Value, nil
}
