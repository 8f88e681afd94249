package memory

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	offset "github.com/wippyai/offset"
	"github.com/wippyai/offset/errors"
)

// WrapWazero wraps a wazero api.Memory to implement offset.Memory.
func WrapWazero(mem api.Memory) offset.Memory {
	if mem == nil {
		return nil
	}
	return &Wazero{Mem: mem}
}

// Wazero adapts wazero api.Memory to the offset.Memory interface.
type Wazero struct {
	Mem api.Memory
}

// Size returns the current size of the linear memory in bytes.
func (m *Wazero) Size() uint32 {
	return m.Mem.Size()
}

// Read reads bytes from memory.
func (m *Wazero) Read(offset uint32, length uint32) ([]byte, error) {
	data, ok := m.Mem.Read(offset, length)
	if !ok {
		return nil, fmt.Errorf("memory read out of bounds: offset=%d, length=%d", offset, length)
	}
	return data, nil
}

// Write writes bytes to memory.
func (m *Wazero) Write(offset uint32, data []byte) error {
	if !m.Mem.Write(offset, data) {
		return fmt.Errorf("memory write out of bounds: offset=%d, length=%d", offset, len(data))
	}
	return nil
}

// ReadU8 reads an unsigned 8-bit value.
func (m *Wazero) ReadU8(offset uint32) (uint8, error) {
	v, ok := m.Mem.ReadByte(offset)
	if !ok {
		return 0, fmt.Errorf("memory read out of bounds: offset=%d", offset)
	}
	return v, nil
}

// ReadU16 reads an unsigned 16-bit little-endian value.
func (m *Wazero) ReadU16(offset uint32) (uint16, error) {
	v, ok := m.Mem.ReadUint16Le(offset)
	if !ok {
		return 0, fmt.Errorf("memory read out of bounds: offset=%d", offset)
	}
	return v, nil
}

// ReadU32 reads an unsigned 32-bit little-endian value.
func (m *Wazero) ReadU32(offset uint32) (uint32, error) {
	v, ok := m.Mem.ReadUint32Le(offset)
	if !ok {
		return 0, fmt.Errorf("memory read out of bounds: offset=%d", offset)
	}
	return v, nil
}

// ReadU64 reads an unsigned 64-bit little-endian value.
func (m *Wazero) ReadU64(offset uint32) (uint64, error) {
	v, ok := m.Mem.ReadUint64Le(offset)
	if !ok {
		return 0, fmt.Errorf("memory read out of bounds: offset=%d", offset)
	}
	return v, nil
}

// WriteU8 writes an unsigned 8-bit value.
func (m *Wazero) WriteU8(offset uint32, value uint8) error {
	if !m.Mem.WriteByte(offset, value) {
		return fmt.Errorf("memory write out of bounds: offset=%d", offset)
	}
	return nil
}

// WriteU16 writes an unsigned 16-bit little-endian value.
func (m *Wazero) WriteU16(offset uint32, value uint16) error {
	if !m.Mem.WriteUint16Le(offset, value) {
		return fmt.Errorf("memory write out of bounds: offset=%d", offset)
	}
	return nil
}

// WriteU32 writes an unsigned 32-bit little-endian value.
func (m *Wazero) WriteU32(offset uint32, value uint32) error {
	if !m.Mem.WriteUint32Le(offset, value) {
		return fmt.Errorf("memory write out of bounds: offset=%d", offset)
	}
	return nil
}

// WriteU64 writes an unsigned 64-bit little-endian value.
func (m *Wazero) WriteU64(offset uint32, value uint64) error {
	if !m.Mem.WriteUint64Le(offset, value) {
		return fmt.Errorf("memory write out of bounds: offset=%d", offset)
	}
	return nil
}

// Module is an instantiated WebAssembly module whose memory holds
// realized structures.
type Module struct {
	runtime wazero.Runtime
	module  api.Module
	memory  offset.Memory
}

// Instantiate compiles and instantiates wasm without running start
// functions and selects the exported memory called name. An empty name
// selects the module's own memory.
func Instantiate(ctx context.Context, wasm []byte, name string) (*Module, error) {
	rt := wazero.NewRuntime(ctx)

	compiled, err := rt.CompileModule(ctx, wasm)
	if err != nil {
		rt.Close(ctx)
		return nil, errors.Load("compile module", err)
	}

	mod, err := rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithStartFunctions())
	if err != nil {
		rt.Close(ctx)
		return nil, errors.Load("instantiate module", err)
	}

	var mem api.Memory
	if name == "" {
		mem = mod.Memory()
	} else {
		mem = mod.ExportedMemory(name)
	}
	if mem == nil {
		rt.Close(ctx)
		what := "module memory"
		if name != "" {
			what = "exported memory " + name
		}
		return nil, errors.NotFound(errors.PhaseLoad, what)
	}

	return &Module{
		runtime: rt,
		module:  mod,
		memory:  WrapWazero(mem),
	}, nil
}

// Memory returns the module's linear memory.
func (m *Module) Memory() offset.Memory {
	return m.memory
}

// Close releases the module and its runtime.
func (m *Module) Close(ctx context.Context) error {
	return m.runtime.Close(ctx)
}
