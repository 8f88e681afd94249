// Package memory provides backings for realized structures.
//
// A realized structure is a contiguous byte region whose sub-ranges follow a
// layout plan. Where the region lives does not matter to the rest of the
// library, which only sees the offset.Memory interface:
//
//	mem := memory.NewBytes(buf)      // a Go byte slice, host byte order
//	mem, _ := memory.Of(&value)      // the storage of a Go value
//	mem := memory.WrapWazero(m)      // wazero linear memory, little-endian
//
// Multi-byte reads never assume alignment: slices are decoded byte-wise and
// wazero performs unaligned loads itself.
//
// Instantiate loads a WebAssembly module without running its start
// functions, so structures placed in its data segments can be inspected:
//
//	mod, err := memory.Instantiate(ctx, wasmBytes, "memory")
//	defer mod.Close(ctx)
//	values := render.Render(plan, mod.Memory(), 0x1000)
package memory
