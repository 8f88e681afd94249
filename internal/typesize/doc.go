// Package typesize computes the byte size and natural alignment of field types.
//
// Field types are expressed as WIT types. Sizes follow the Component Model
// Canonical ABI, which matches the C layout of the same primitives:
//   - Primitives: size equals alignment (u8=1, u32=4, u64=8, etc.)
//   - Tuples and records: elements laid out sequentially with padding for alignment
//   - Enums and flags: smallest integer that holds every case or bit
//
// Only the size is used by the layout engine, which never inserts
// alignment padding on its own. Alignment is reported for the code
// generator, which must know whether a Go field can sit at a given offset.
//
// This package is internal to the offset module.
package typesize
