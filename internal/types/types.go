// Package types implements the semantic type system: primitive
// tags plus reference-counted shared ENUM/STRUCT/ARRAY descriptors, equality,
// and assignability.
//
// Go's garbage collector would make manual reference counting unnecessary
// for memory safety, but reference-count safety is an
// explicit testable property of this system: every shared descriptor must be
// retained on every copy and released on every drop, and the analyzer is
// required to prove that count is balanced at the end of a top-level
// analysis. So retain/release are modeled explicitly here rather than left
// to the collector.
package types

import "fmt"

// Tag is the closed semantic type tag domain.
type Tag int

const (
	SignedInteger Tag = iota
	UnsignedInteger
	SizeInteger
	ByteInteger
	FloatingPoint
	Str
	Bool
	Void
	NilTag
	Enum
	Struct
	Array
	Function
)

func (t Tag) String() string {
	names := [...]string{
		"SIGNED_INTEGER", "UNSIGNED_INTEGER", "SIZE_INTEGER", "BYTE_INTEGER",
		"FLOATING_POINT", "STR", "BOOL", "VOID", "NIL", "ENUM", "STRUCT",
		"ARRAY", "FUNCTION",
	}
	if int(t) < len(names) {
		return names[t]
	}
	return fmt.Sprintf("Tag(%d)", int(t))
}

// refCounted is embedded by every descriptor that can be shared between
// multiple Type values (EnumType, StructType, ArrayType).
type refCounted struct {
	count int
}

func (r *refCounted) retain() { r.count++ }

// release decrements the count and reports whether it reached zero (and the
// descriptor should be considered destroyed).
func (r *refCounted) release() bool {
	r.count--
	return r.count <= 0
}

// EnumType is the shared descriptor behind every Type with tag Enum.
type EnumType struct {
	refCounted
	TypeName string
	Variants map[string]bool
}

// NewEnumType allocates an enum descriptor with an initial reference count
// of one.
func NewEnumType(name string, variants map[string]bool) *EnumType {
	e := &EnumType{TypeName: name, Variants: variants}
	e.count = 1
	return e
}

// StructType is the shared descriptor behind every Type with tag Struct.
type StructType struct {
	refCounted
	TypeName string
	Generics []string
	Members  map[string]*Type
	Methods  map[string]*Type
}

func NewStructType(name string, generics []string, members, methods map[string]*Type) *StructType {
	s := &StructType{TypeName: name, Generics: generics, Members: members, Methods: methods}
	s.count = 1
	return s
}

// ArrayKind distinguishes the three dimension-kinds an array descriptor can
// carry.
type ArrayKind int

const (
	ArraySingleDim ArrayKind = iota
	ArrayMultiDim
	ArrayRange
)

// ArrayType is the shared descriptor behind every Type with tag Array.
type ArrayType struct {
	refCounted
	Kind       ArrayKind
	Length     int   // ArraySingleDim
	Dimensions []int // ArrayMultiDim
	Inclusive  bool  // ArrayRange
	Inner      *Type
}

func NewArrayType(kind ArrayKind, inner *Type) *ArrayType {
	a := &ArrayType{Kind: kind, Inner: inner}
	a.count = 1
	return a
}

// FunctionType is the (unshared — function types are structural, not
// reference-counted, per the tag domain which lists FUNCTION alongside
// but does not mark it shared like ENUM/STRUCT/ARRAY) parameter/return type
// pair.
type FunctionType struct {
	Params []*Type
	Return *Type
}

// Type is a semantic type value. IsConst/Nullable/Valued are the three
// orthogonal flags of a semantic type; the Enum/Struct/Array variants hold a pointer to
// a shared, reference-counted descriptor.
type Type struct {
	Tag      Tag
	IsConst  bool
	Nullable bool
	Valued   bool

	EnumType     *EnumType
	StructType   *StructType
	ArrayType    *ArrayType
	FunctionType *FunctionType
}

// NewPrimitive builds a non-shared primitive type value.
func NewPrimitive(tag Tag, isConst, nullable, valued bool) *Type {
	return &Type{Tag: tag, IsConst: isConst, Nullable: nullable, Valued: valued}
}

// Retain returns a shallow copy of t whose shared descriptor's reference
// count has been incremented. Every holder of a Type value is expected to
// own exactly one increment of any shared descriptor it carries.
func (t *Type) Retain() *Type {
	if t == nil {
		return nil
	}
	cp := *t
	switch t.Tag {
	case Enum:
		if t.EnumType != nil {
			t.EnumType.retain()
		}
	case Struct:
		if t.StructType != nil {
			t.StructType.retain()
		}
	case Array:
		if t.ArrayType != nil {
			t.ArrayType.retain()
		}
	}
	return &cp
}

// Release decrements the reference count of t's shared descriptor, if any.
// It is a no-op for non-shared tags and safe to call on a nil Type.
func (t *Type) Release() {
	if t == nil {
		return
	}
	switch t.Tag {
	case Enum:
		if t.EnumType != nil {
			t.EnumType.release()
		}
	case Struct:
		if t.StructType != nil {
			t.StructType.release()
		}
	case Array:
		if t.ArrayType != nil {
			if t.ArrayType.release() && t.ArrayType.Inner != nil {
				t.ArrayType.Inner.Release()
			}
		}
	}
}

// IsPrimitive reports whether t is one of the primitive scalar tags.
func (t *Type) IsPrimitive() bool {
	switch t.Tag {
	case SignedInteger, UnsignedInteger, SizeInteger, ByteInteger, FloatingPoint, Str, Bool:
		return true
	default:
		return false
	}
}

// IsArithmetic reports whether t is a non-nullable integer or float type.
func (t *Type) IsArithmetic() bool {
	switch t.Tag {
	case SignedInteger, UnsignedInteger, SizeInteger, FloatingPoint:
		return !t.Nullable
	default:
		return false
	}
}

// IsInteger reports whether t is a non-nullable signed/unsigned/size integer.
func (t *Type) IsInteger() bool {
	switch t.Tag {
	case SignedInteger, UnsignedInteger, SizeInteger:
		return !t.Nullable
	default:
		return false
	}
}

// Equal implements the type_equal relation.
func Equal(lhs, rhs *Type) bool {
	if lhs == nil || rhs == nil {
		return lhs == rhs
	}
	if rhs.Tag == NilTag {
		return lhs.Nullable
	}
	if lhs.Tag != rhs.Tag || lhs.Nullable != rhs.Nullable {
		return false
	}
	switch lhs.Tag {
	case Enum:
		if lhs.EnumType == nil || rhs.EnumType == nil {
			return lhs.EnumType == rhs.EnumType
		}
		if lhs.EnumType.TypeName != rhs.EnumType.TypeName {
			return false
		}
		if len(lhs.EnumType.Variants) != len(rhs.EnumType.Variants) {
			return false
		}
		for v := range lhs.EnumType.Variants {
			if !rhs.EnumType.Variants[v] {
				return false
			}
		}
		return true
	case Array:
		la, ra := lhs.ArrayType, rhs.ArrayType
		if la == nil || ra == nil {
			return la == ra
		}
		if la.Kind != ra.Kind {
			return false
		}
		if !Equal(la.Inner, ra.Inner) {
			return false
		}
		switch la.Kind {
		case ArraySingleDim:
			return la.Length == ra.Length
		case ArrayMultiDim:
			if len(la.Dimensions) != len(ra.Dimensions) {
				return false
			}
			for i := range la.Dimensions {
				if la.Dimensions[i] != ra.Dimensions[i] {
					return false
				}
			}
			return true
		case ArrayRange:
			return la.Inclusive == ra.Inclusive
		}
		return true
	default:
		return true
	}
}

// Assignable implements the type_assignable(lhs, rhs) relation.
func Assignable(lhs, rhs *Type) bool {
	if rhs != nil && rhs.Tag == NilTag {
		return lhs != nil && lhs.Nullable
	}
	if lhs == nil || rhs == nil {
		return lhs == rhs
	}
	if lhs.Nullable && !rhs.Nullable {
		asNullable := *rhs
		asNullable.Nullable = true
		return Equal(lhs, &asNullable)
	}
	if !lhs.Nullable && rhs.Nullable {
		return false
	}
	return Equal(lhs, rhs)
}
