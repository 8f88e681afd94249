package typesize

import (
	"go.bytecodealliance.org/wit"
)

// Info is the size and alignment of a type in bytes.
type Info struct {
	Size  uint32
	Align uint32
}

// Calculator computes Info for WIT types, caching named definitions.
// Not safe for concurrent use.
type Calculator struct {
	cache map[*wit.TypeDef]Info
}

func NewCalculator() *Calculator {
	return &Calculator{
		cache: make(map[*wit.TypeDef]Info),
	}
}

// Of is a convenience for a one-off calculation.
func Of(t wit.Type) Info {
	return NewCalculator().Calculate(t)
}

func (c *Calculator) Calculate(t wit.Type) Info {
	switch typ := t.(type) {
	case wit.U8, wit.S8, wit.Bool:
		return Info{Size: 1, Align: 1}
	case wit.U16, wit.S16:
		return Info{Size: 2, Align: 2}
	case wit.U32, wit.S32, wit.F32, wit.Char:
		return Info{Size: 4, Align: 4}
	case wit.U64, wit.S64, wit.F64:
		return Info{Size: 8, Align: 8}
	case *wit.TypeDef:
		return c.calculateTypeDef(typ)
	default:
		return Info{Size: 0, Align: 1}
	}
}

func (c *Calculator) calculateTypeDef(t *wit.TypeDef) Info {
	if cached, ok := c.cache[t]; ok {
		return cached
	}

	var info Info

	switch kind := t.Kind.(type) {
	case *wit.Record:
		types := make([]wit.Type, len(kind.Fields))
		for i, f := range kind.Fields {
			types[i] = f.Type
		}
		info = c.sequence(types)
	case *wit.Tuple:
		info = c.sequence(kind.Types)
	case *wit.Enum:
		size := discriminantSize(len(kind.Cases))
		info = Info{Size: size, Align: size}
	case *wit.Flags:
		info = c.calculateFlags(kind)
	case wit.Type:
		info = c.Calculate(kind)
	default:
		info = Info{Size: 0, Align: 1}
	}

	c.cache[t] = info
	return info
}

// Fixed reports whether t has a fixed in-memory size: scalars, enums,
// flags, and records or tuples made only of those. Strings, lists,
// options, results, variants and handles are not fixed.
func Fixed(t wit.Type) bool {
	switch typ := t.(type) {
	case wit.U8, wit.S8, wit.Bool, wit.U16, wit.S16,
		wit.U32, wit.S32, wit.F32, wit.Char, wit.U64, wit.S64, wit.F64:
		return true
	case *wit.TypeDef:
		switch kind := typ.Kind.(type) {
		case *wit.Record:
			for _, f := range kind.Fields {
				if !Fixed(f.Type) {
					return false
				}
			}
			return true
		case *wit.Tuple:
			for _, elem := range kind.Types {
				if !Fixed(elem) {
					return false
				}
			}
			return true
		case *wit.Enum, *wit.Flags:
			return true
		case wit.Type:
			return Fixed(kind)
		}
	}
	return false
}

// sequence lays out types one after another, each at its natural alignment.
func (c *Calculator) sequence(types []wit.Type) Info {
	if len(types) == 0 {
		return Info{Size: 0, Align: 1}
	}

	maxAlign := uint32(1)
	offset := uint32(0)

	for _, typ := range types {
		elem := c.Calculate(typ)
		offset = AlignTo(offset, elem.Align)

		if elem.Align > maxAlign {
			maxAlign = elem.Align
		}

		offset += elem.Size
	}

	return Info{
		Size:  AlignTo(offset, maxAlign),
		Align: maxAlign,
	}
}

func (c *Calculator) calculateFlags(f *wit.Flags) Info {
	numFlags := len(f.Flags)

	if numFlags == 0 {
		return Info{Size: 0, Align: 1}
	}

	if numFlags <= 8 {
		return Info{Size: 1, Align: 1}
	} else if numFlags <= 16 {
		return Info{Size: 2, Align: 2}
	} else if numFlags <= 32 {
		return Info{Size: 4, Align: 4}
	} else if numFlags <= 64 {
		return Info{Size: 8, Align: 8}
	}

	numU32s := (numFlags + 31) / 32
	return Info{Size: uint32(numU32s * 4), Align: 4}
}

func discriminantSize(numCases int) uint32 {
	if numCases <= 256 {
		return 1
	} else if numCases <= 65536 {
		return 2
	}
	return 4
}

// AlignTo rounds offset up to a multiple of align, which must be a power of two.
func AlignTo(offset, align uint32) uint32 {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}
