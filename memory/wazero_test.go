package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/tetratelabs/wazero"

	offerrors "github.com/wippyai/offset/errors"
)

// memoryWASM is a minimal WASM module with 1 page of memory exported as "memory"
var memoryWASM = []byte{
	0x00, 0x61, 0x73, 0x6d, // magic
	0x01, 0x00, 0x00, 0x00, // version
	0x05, 0x03, 0x01, 0x00, 0x01, // memory section: 1 page, no max
	0x07, 0x0a, 0x01, // export section: 10 bytes, 1 export
	0x06, 0x6d, 0x65, 0x6d, 0x6f, 0x72, 0x79, // name: "memory" (6 bytes + string)
	0x02, 0x00, // kind: memory, index 0
}

// dataWASM is memoryWASM plus a data segment placing 01 02 03 04 at address 16.
var dataWASM = append(append([]byte{}, memoryWASM...),
	0x0b, 0x0a, 0x01, // data section: 10 bytes, 1 segment
	0x00, 0x41, 0x10, 0x0b, // active, memory 0, i32.const 16
	0x04, 0x01, 0x02, 0x03, 0x04, // 4 bytes
)

func TestWrapWazero_Nil(t *testing.T) {
	if mem := WrapWazero(nil); mem != nil {
		t.Error("expected nil for nil memory")
	}
}

func TestWazero_ReadWrite(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	compiled, err := rt.CompileModule(ctx, memoryWASM)
	if err != nil {
		t.Fatalf("failed to compile: %v", err)
	}
	defer compiled.Close(ctx)

	mod, err := rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig())
	if err != nil {
		t.Fatalf("failed to instantiate: %v", err)
	}
	defer mod.Close(ctx)

	mem := WrapWazero(mod.ExportedMemory("memory"))
	if mem == nil {
		t.Fatal("expected non-nil wrapped memory")
	}

	if err := mem.WriteU16(1, 0x1234); err != nil {
		t.Fatalf("WriteU16 failed: %v", err)
	}
	if err := mem.WriteU32(3, 0x89ABCDEF); err != nil {
		t.Fatalf("WriteU32 failed: %v", err)
	}
	if err := mem.WriteU64(9, 0x1122334455667788); err != nil {
		t.Fatalf("WriteU64 failed: %v", err)
	}
	if err := mem.WriteU8(0, 0xAA); err != nil {
		t.Fatalf("WriteU8 failed: %v", err)
	}

	if v, err := mem.ReadU16(1); err != nil || v != 0x1234 {
		t.Errorf("ReadU16 = %#x, %v", v, err)
	}
	if v, err := mem.ReadU32(3); err != nil || v != 0x89ABCDEF {
		t.Errorf("ReadU32 = %#x, %v", v, err)
	}
	if v, err := mem.ReadU64(9); err != nil || v != 0x1122334455667788 {
		t.Errorf("ReadU64 = %#x, %v", v, err)
	}
	if v, err := mem.ReadU8(0); err != nil || v != 0xAA {
		t.Errorf("ReadU8 = %#x, %v", v, err)
	}

	// Linear memory is little-endian.
	raw, err := mem.Read(1, 2)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if raw[0] != 0x34 || raw[1] != 0x12 {
		t.Errorf("Read = %x, want 3412", raw)
	}

	if err := mem.Write(20, []byte{1, 2, 3}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if sz := mem.(*Wazero).Size(); sz != 65536 {
		t.Errorf("Size = %d, want 65536", sz)
	}
}

func TestWazero_OutOfBounds(t *testing.T) {
	ctx := context.Background()
	mod, err := Instantiate(ctx, memoryWASM, "memory")
	if err != nil {
		t.Fatalf("Instantiate failed: %v", err)
	}
	defer mod.Close(ctx)

	mem := mod.Memory()
	const pageSize = 65536

	if _, err := mem.Read(pageSize-2, 4); err == nil {
		t.Error("expected error for out of bounds read")
	}
	if _, err := mem.ReadU8(pageSize); err == nil {
		t.Error("expected error for ReadU8")
	}
	if _, err := mem.ReadU16(pageSize - 1); err == nil {
		t.Error("expected error for ReadU16")
	}
	if _, err := mem.ReadU32(pageSize - 2); err == nil {
		t.Error("expected error for ReadU32")
	}
	if _, err := mem.ReadU64(pageSize - 4); err == nil {
		t.Error("expected error for ReadU64")
	}
	if err := mem.Write(pageSize-1, []byte{1, 2}); err == nil {
		t.Error("expected error for Write")
	}
	if err := mem.WriteU8(pageSize, 1); err == nil {
		t.Error("expected error for WriteU8")
	}
	if err := mem.WriteU16(pageSize-1, 1); err == nil {
		t.Error("expected error for WriteU16")
	}
	if err := mem.WriteU32(pageSize-1, 1); err == nil {
		t.Error("expected error for WriteU32")
	}
	if err := mem.WriteU64(pageSize-1, 1); err == nil {
		t.Error("expected error for WriteU64")
	}
}

func TestInstantiate_DataSegment(t *testing.T) {
	ctx := context.Background()
	mod, err := Instantiate(ctx, dataWASM, "")
	if err != nil {
		t.Fatalf("Instantiate failed: %v", err)
	}
	defer mod.Close(ctx)

	v, err := mod.Memory().ReadU32(16)
	if err != nil {
		t.Fatalf("ReadU32 failed: %v", err)
	}
	if v != 0x04030201 {
		t.Errorf("ReadU32(16) = %#x, want 0x04030201", v)
	}
}

func TestInstantiate_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := Instantiate(ctx, []byte("not wasm"), "")
	var e *offerrors.Error
	if !errors.As(err, &e) || e.Phase != offerrors.PhaseLoad {
		t.Errorf("expected load error, got %v", err)
	}

	_, err = Instantiate(ctx, memoryWASM, "heap")
	if !errors.As(err, &e) || e.Kind != offerrors.KindNotFound {
		t.Errorf("expected not_found error, got %v", err)
	}
}
