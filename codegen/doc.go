// Package codegen emits Go declarations realizing schemas.
//
// Go cannot pack a struct: the compiler aligns every field to its type.
// The generated struct therefore never relies on implicit padding. Each
// gap in the plan becomes an explicit blank member, and a field whose
// offset Go would not allow for its native type is stored as a byte array
// with accessor methods instead:
//
//	type Packed struct {
//		_    structs.HostLayout
//		Tag  uint8   `layout:"tag"`
//		addr [8]byte `layout:"addr"` // 0x1, u64
//	}
//
//	func (s *Packed) Addr() uint64
//	func (s *Packed) SetAddr(v uint64)
//
// Every generated type also gets a package-level plan, an init function
// that verifies the type against the plan with verify.MustStruct, and a
// String method that renders its data fields.
//
// Alignment decisions assume a 64-bit target where each scalar is aligned
// to its own size. On other targets the init-time verification reports any
// difference.
package codegen
