package render

import (
	"context"
	"errors"
	"testing"

	"go.bytecodealliance.org/wit"

	offerrors "github.com/wippyai/offset/errors"
	"github.com/wippyai/offset/layout"
	"github.com/wippyai/offset/memory"
	"github.com/wippyai/offset/schema"
)

// memoryWASM is a minimal WASM module with 1 page of memory exported as "memory"
var memoryWASM = []byte{
	0x00, 0x61, 0x73, 0x6d, // magic
	0x01, 0x00, 0x00, 0x00, // version
	0x05, 0x03, 0x01, 0x00, 0x01, // memory section: 1 page, no max
	0x07, 0x0a, 0x01, // export section: 10 bytes, 1 export
	0x06, 0x6d, 0x65, 0x6d, 0x6f, 0x72, 0x79, // name: "memory"
	0x02, 0x00, // kind: memory, index 0
}

func examplePlan() *layout.Plan {
	return layout.MustBuild(schema.New("Example").
		Field(0x0, "field1", schema.U32).
		Field(0x4, "field2", schema.U16).
		Field(0x8, "field3", schema.U64).
		Size(0x20).
		MustBuild())
}

func fill(mem *memory.Bytes, b byte) {
	buf := mem.Bytes()
	for i := range buf {
		buf[i] = b
	}
}

func TestRender_HidesPadding(t *testing.T) {
	plan := examplePlan()
	mem := memory.Alloc(plan.Size)
	fill(mem, 0xAA)
	_ = mem.WriteU32(0, 1)
	_ = mem.WriteU16(4, 2)
	_ = mem.WriteU64(8, 3)

	values := Render(plan, mem, 0)
	if len(values) != 3 {
		t.Fatalf("got %d values, want 3", len(values))
	}

	want := []struct {
		name   string
		offset uint32
		value  any
	}{
		{"field1", 0, uint32(1)},
		{"field2", 4, uint16(2)},
		{"field3", 8, uint64(3)},
	}
	for i, w := range want {
		v := values[i]
		if v.Name != w.name || v.Offset != w.offset || v.Value != w.value {
			t.Errorf("values[%d] = {%s @%d %v}, want {%s @%d %v}", i, v.Name, v.Offset, v.Value, w.name, w.offset, w.value)
		}
	}

	got := Format(plan.Name, values)
	if got != "Example { field1: 1, field2: 2, field3: 3 }" {
		t.Errorf("Format = %q", got)
	}
}

func TestRender_RawIsCopy(t *testing.T) {
	plan := examplePlan()
	mem := memory.Alloc(plan.Size)
	_ = mem.WriteU32(0, 7)

	values := Render(plan, mem, 0)
	_ = mem.WriteU32(0, 9)

	if values[0].Raw[0] != 7 {
		t.Errorf("Raw changed with memory: %v", values[0].Raw)
	}
}

func TestRender_UnalignedFields(t *testing.T) {
	plan := layout.MustBuild(schema.New("Packed").
		Field(0, "tag", schema.U8).
		Field(1, "addr", schema.U64).
		Field(9, "len", schema.U16).
		MustBuild())

	mem := memory.Alloc(plan.Size)
	_ = mem.WriteU8(0, 0x7F)
	_ = mem.WriteU64(1, 0x1122334455667788)
	_ = mem.WriteU16(9, 0xBEEF)

	values := Render(plan, mem, 0)
	if got := values[1].Value; got != uint64(0x1122334455667788) {
		t.Errorf("addr = %#x, want 0x1122334455667788", got)
	}
	if got := values[2].Value; got != uint16(0xBEEF) {
		t.Errorf("len = %#x, want 0xbeef", got)
	}
	if got := Format(plan.Name, values); got != "Packed { tag: 127, addr: 1234605616436508552, len: 48879 }" {
		t.Errorf("Format = %q", got)
	}
}

func TestRender_Base(t *testing.T) {
	plan := examplePlan()
	const base = 0x40
	mem := memory.Alloc(base + plan.Size)
	_ = mem.WriteU32(base, 11)
	_ = mem.WriteU16(base+4, 22)
	_ = mem.WriteU64(base+8, 33)

	values := Render(plan, mem, base)
	if values[2].Offset != base+8 {
		t.Errorf("Offset = %#x, want %#x", values[2].Offset, base+8)
	}
	if got := Format(plan.Name, values); got != "Example { field1: 11, field2: 22, field3: 33 }" {
		t.Errorf("Format = %q", got)
	}
}

func TestRender_OutOfBoundsPanics(t *testing.T) {
	plan := examplePlan()
	mem := memory.Alloc(12)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("panic value %v is not an error", r)
		}
		var e *offerrors.Error
		if !errors.As(err, &e) {
			t.Fatalf("got %T, want *errors.Error", err)
		}
		if e.Phase != offerrors.PhaseRender || e.Kind != offerrors.KindOutOfBounds {
			t.Errorf("got %s/%s, want render/out_of_bounds", e.Phase, e.Kind)
		}
		if e.Path[len(e.Path)-1] != "field3" {
			t.Errorf("path = %v, want field3", e.Path)
		}
	}()
	Render(plan, mem, 0)
}

func TestRender_AddressOverflowPanics(t *testing.T) {
	plan := examplePlan()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	Render(plan, memory.Alloc(16), 0xFFFFFFF8)
}

func TestRender_Wazero(t *testing.T) {
	ctx := context.Background()
	mod, err := memory.Instantiate(ctx, memoryWASM, "memory")
	if err != nil {
		t.Fatalf("Instantiate failed: %v", err)
	}
	defer mod.Close(ctx)

	mem := mod.Memory()
	const base = 0x1001
	_ = mem.WriteU32(base, 0xCAFE)
	_ = mem.WriteU16(base+4, 5)
	_ = mem.WriteU64(base+8, 1<<40)

	got := Format("Example", Render(examplePlan(), mem, base))
	if got != "Example { field1: 51966, field2: 5, field3: 1099511627776 }" {
		t.Errorf("Format = %q", got)
	}
}

func TestFormat_Types(t *testing.T) {
	plan := layout.MustBuild(schema.New("Mixed").
		Field(0, "next", schema.Ptr).
		Field(8, "c", schema.Char).
		Field(12, "tag", schema.MustType("[4]u8")).
		Field(16, "f", schema.F32).
		Field(20, "neg", schema.S16).
		Field(22, "ok", schema.Bool).
		Field(24, "n", schema.S32).
		MustBuild())

	mem := memory.Alloc(plan.Size)
	_ = mem.WriteU64(0, 0xfffff80012345678)
	_ = mem.WriteU32(8, 'A')
	_ = mem.Write(12, []byte{1, 2, 3, 4})
	_ = mem.WriteU32(16, 0x3FC00000) // 1.5
	_ = mem.WriteU16(20, 0xFFFE)
	_ = mem.WriteU8(22, 1)
	_ = mem.WriteU32(24, 65)

	got := Format(plan.Name, Render(plan, mem, 0))
	want := "Mixed { next: 0xfffff80012345678, c: 'A', tag: [1, 2, 3, 4], f: 1.5, neg: -2, ok: true, n: 65 }"
	if got != want {
		t.Errorf("Format =\n  %q\nwant\n  %q", got, want)
	}
}

func TestFormat_CustomAndInvalidChar(t *testing.T) {
	guid := schema.Custom("guid", &wit.TypeDef{Kind: &wit.Tuple{Types: []wit.Type{wit.U32{}, wit.U32{}}}})
	plan := layout.MustBuild(schema.New("Custom").
		Field(0, "id", guid).
		Field(8, "c", schema.Char).
		MustBuild())

	mem := memory.Alloc(plan.Size)
	_ = mem.Write(0, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	_ = mem.WriteU32(8, 0xD800)

	values := Render(plan, mem, 0)
	if values[0].Value != nil {
		t.Errorf("custom value = %v, want nil", values[0].Value)
	}
	want := "Custom { id: 0x0102030405060708, c: 0xd800 }"
	if got := Format(plan.Name, values); got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}

func TestFormat_Empty(t *testing.T) {
	if got := Format("Opaque", nil); got != "Opaque {}" {
		t.Errorf("Format = %q", got)
	}
}

type example struct {
	Field1 uint32
	Field2 uint16
	_      [2]byte
	Field3 uint64
	_      [16]byte
}

func TestStruct(t *testing.T) {
	v := &example{Field1: 1, Field2: 2, Field3: 3}
	if got := Struct(examplePlan(), v); got != "Example { field1: 1, field2: 2, field3: 3 }" {
		t.Errorf("Struct = %q", got)
	}
}

func TestStruct_NotPointerPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	Struct(examplePlan(), example{})
}
