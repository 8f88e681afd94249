package schema

import (
	"strconv"
	"strings"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/offset/errors"
)

// Type is the type of a field as named in a schema.
type Type struct {
	// WIT is the WIT type that determines the field's size. For an
	// array it is the element type; the array holds Count of them.
	WIT wit.Type
	// Name is the canonical type name, e.g. "u32", "ptr" or "[16]u8".
	Name string
	// Elem is the element type name of an array, empty otherwise.
	Elem string
	// Count is the element count of an array, 0 otherwise.
	Count uint32
}

// Predeclared scalar types.
var (
	Bool  = scalar("bool", wit.Bool{})
	U8    = scalar("u8", wit.U8{})
	S8    = scalar("s8", wit.S8{})
	U16   = scalar("u16", wit.U16{})
	S16   = scalar("s16", wit.S16{})
	U32   = scalar("u32", wit.U32{})
	S32   = scalar("s32", wit.S32{})
	U64   = scalar("u64", wit.U64{})
	S64   = scalar("s64", wit.S64{})
	F32   = scalar("f32", wit.F32{})
	F64   = scalar("f64", wit.F64{})
	Char  = scalar("char", wit.Char{})
	Usize = scalar("usize", wit.U64{})
	Isize = scalar("isize", wit.S64{})
	// Ptr is a foreign pointer. It is never dereferenced, only carried as
	// an 8-byte address.
	Ptr = scalar("ptr", wit.U64{})
)

var scalars = map[string]Type{
	"bool":  Bool,
	"u8":    U8,
	"byte":  U8,
	"s8":    S8,
	"i8":    S8,
	"u16":   U16,
	"s16":   S16,
	"i16":   S16,
	"u32":   U32,
	"s32":   S32,
	"i32":   S32,
	"u64":   U64,
	"s64":   S64,
	"i64":   S64,
	"f32":   F32,
	"f64":   F64,
	"char":  Char,
	"usize": Usize,
	"isize": Isize,
	"ptr":   Ptr,
}

// maxArrayLen bounds [N]T so that a single field cannot exceed the address space.
const maxArrayLen = 1 << 24

func scalar(name string, t wit.Type) Type {
	return Type{Name: name, WIT: t}
}

// Custom wraps an arbitrary WIT type under a display name. The renderer
// shows such fields as raw bytes.
func Custom(name string, t wit.Type) Type {
	return Type{Name: name, WIT: t}
}

// Array returns the type of count consecutive elements of elem.
func Array(count uint32, elem Type) Type {
	return Type{
		Name:  "[" + strconv.FormatUint(uint64(count), 10) + "]" + elem.Name,
		WIT:   elem.WIT,
		Elem:  elem.Name,
		Count: count,
	}
}

// IsArray reports whether t is a fixed-length array.
func (t Type) IsArray() bool {
	return t.Elem != ""
}

// IsScalar reports whether t is one of the predeclared scalar types.
func (t Type) IsScalar() bool {
	s, ok := scalars[t.Name]
	return ok && s.Name == t.Name
}

// ElemType returns the element type of an array.
func (t Type) ElemType() (Type, bool) {
	if !t.IsArray() {
		return Type{}, false
	}
	e, ok := scalars[t.Elem]
	return e, ok
}

func (t Type) String() string {
	return t.Name
}

// ParseType parses a type name: a scalar such as "u32" or "ptr", or an
// array of scalars such as "[16]u8".
func ParseType(name string) (Type, error) {
	name = strings.TrimSpace(name)
	if t, ok := scalars[name]; ok {
		return t, nil
	}

	if rest, ok := strings.CutPrefix(name, "["); ok {
		countStr, elemName, found := strings.Cut(rest, "]")
		if !found {
			return Type{}, errors.InvalidInput(errors.PhaseParse, nil, "unterminated array type "+strconv.Quote(name))
		}
		count, err := strconv.ParseUint(strings.TrimSpace(countStr), 0, 32)
		if err != nil || count == 0 || count > maxArrayLen {
			return Type{}, errors.New(errors.PhaseParse, errors.KindInvalidInput).
				Type(name).
				Detail("array length must be between 1 and %d", maxArrayLen).
				Cause(err).
				Build()
		}
		elem, ok := scalars[strings.TrimSpace(elemName)]
		if !ok {
			return Type{}, errors.New(errors.PhaseParse, errors.KindUnsupported).
				Type(name).
				Detail("array element must be a scalar type").
				Build()
		}
		return Array(uint32(count), elem), nil
	}

	return Type{}, errors.New(errors.PhaseParse, errors.KindInvalidInput).
		Type(name).
		Detail("unknown type").
		Build()
}

// MustType is like ParseType but panics on error. It is meant for
// package-level declarations.
func MustType(name string) Type {
	t, err := ParseType(name)
	if err != nil {
		panic(err)
	}
	return t
}
