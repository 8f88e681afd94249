// Package verify checks that a realized structure has the layout a plan
// declares.
//
// A plan says where each field should be. The realized structure is usually
// produced by a second, independent mechanism, such as an ordinary Go struct
// declared field by field with explicit padding members. Nothing ties the two
// together: reordering a field or changing a type's size silently moves
// everything after it. The verifier recomputes each field's expected offset
// from the plan's segment lengths and compares it with the offset the
// realized structure actually uses:
//
//	err := verify.VerifyStruct(plan, reflect.TypeFor[DeviceObject]())
//	// [verify] layout_mismatch at DEVICE_OBJECT.next: expected offset 0x8, actual 0x10
//
// Run it as early as possible, ideally during package initialization via
// MustStruct, so drift stops the program instead of corrupting memory.
//
// # Configuration
//
// Verification can be switched off. The switch is explicit and visible:
//
//	v := verify.New(&verify.Config{Mode: verify.ModeDisabled})
//
// or, for the package-level functions, by building with the
// offset_unchecked tag. A disabled verifier reports success for every
// plan and logs a warning the first time it is asked to verify.
package verify
