package render

import (
	"bytes"
	"math"

	"go.bytecodealliance.org/wit"

	offset "github.com/wippyai/offset"
	"github.com/wippyai/offset/errors"
	"github.com/wippyai/offset/layout"
	"github.com/wippyai/offset/memory"
	"github.com/wippyai/offset/schema"
)

// Value is one decoded field of a realized structure.
type Value struct {
	Name string
	Type schema.Type
	// Offset is the absolute address the field was read from.
	Offset uint32
	// Raw is a copy of the field's bytes.
	Raw []byte
	// Value is the decoded value: bool, uint8..uint64, int8..int64,
	// float32, float64 or rune for scalars, []any for arrays of scalars,
	// and nil for types the renderer does not decode.
	Value any
}

// Render reads every field of plan from the structure at base, in schema
// order. Padding is never read or returned.
func Render(plan *layout.Plan, mem offset.Memory, base uint32) []Value {
	fields := plan.Fields()
	values := make([]Value, 0, len(fields))

	for _, seg := range fields {
		f := seg.Field
		path := fieldPath(plan.Name, f.Name)

		addr := uint64(base) + uint64(seg.Offset)
		if addr+uint64(seg.Length) > math.MaxUint32 {
			panic(errors.OutOfBounds(errors.PhaseRender, path, uint32(min(addr, math.MaxUint32)), seg.Length))
		}

		raw, err := mem.Read(uint32(addr), seg.Length)
		if err != nil {
			e := errors.OutOfBounds(errors.PhaseRender, path, uint32(addr), seg.Length)
			e.Cause = err
			panic(e)
		}

		v, err := load(f.Type, uint32(addr), mem)
		if err != nil {
			e := errors.OutOfBounds(errors.PhaseRender, path, uint32(addr), seg.Length)
			e.Cause = err
			panic(e)
		}

		values = append(values, Value{
			Name:   f.Name,
			Type:   f.Type,
			Offset: uint32(addr),
			Raw:    bytes.Clone(raw),
			Value:  v,
		})
	}
	return values
}

// Struct renders a Go value realized in host memory. ptr must point to a
// value whose storage matches plan, as generated structs do.
func Struct(plan *layout.Plan, ptr any) string {
	mem, err := memory.Of(ptr)
	if err != nil {
		panic(errors.Wrap(errors.PhaseRender, errors.KindInvalidInput, err, "cannot address value"))
	}
	return Format(plan.Name, Render(plan, mem, 0))
}

func load(t schema.Type, addr uint32, mem offset.Memory) (any, error) {
	if t.IsArray() {
		elem, ok := t.ElemType()
		if !ok {
			return nil, nil
		}
		size := scalarSize(elem.WIT)
		if size == 0 {
			return nil, nil
		}
		out := make([]any, t.Count)
		for i := range out {
			v, err := loadScalar(elem.WIT, addr+uint32(i)*size, mem)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}
	if !t.IsScalar() {
		return nil, nil
	}
	return loadScalar(t.WIT, addr, mem)
}

func loadScalar(t wit.Type, addr uint32, mem offset.Memory) (any, error) {
	switch t.(type) {
	case wit.Bool:
		v, err := mem.ReadU8(addr)
		return v != 0, err
	case wit.U8:
		return mem.ReadU8(addr)
	case wit.S8:
		v, err := mem.ReadU8(addr)
		return int8(v), err
	case wit.U16:
		return mem.ReadU16(addr)
	case wit.S16:
		v, err := mem.ReadU16(addr)
		return int16(v), err
	case wit.U32:
		return mem.ReadU32(addr)
	case wit.S32:
		v, err := mem.ReadU32(addr)
		return int32(v), err
	case wit.U64:
		return mem.ReadU64(addr)
	case wit.S64:
		v, err := mem.ReadU64(addr)
		return int64(v), err
	case wit.F32:
		bits, err := mem.ReadU32(addr)
		return math.Float32frombits(bits), err
	case wit.F64:
		bits, err := mem.ReadU64(addr)
		return math.Float64frombits(bits), err
	case wit.Char:
		v, err := mem.ReadU32(addr)
		return rune(v), err
	default:
		return nil, nil
	}
}

func scalarSize(t wit.Type) uint32 {
	switch t.(type) {
	case wit.Bool, wit.U8, wit.S8:
		return 1
	case wit.U16, wit.S16:
		return 2
	case wit.U32, wit.S32, wit.F32, wit.Char:
		return 4
	case wit.U64, wit.S64, wit.F64:
		return 8
	default:
		return 0
	}
}

func fieldPath(structName, field string) []string {
	if structName == "" {
		return []string{field}
	}
	return []string{structName, field}
}
