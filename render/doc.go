// Package render shows realized structures as their data fields only.
//
// A realized structure carries synthetic padding between fields. Printing
// it naively shows that filler, which is noise. Render walks a plan's field
// segments, reads each field from memory at its absolute offset, and skips
// padding entirely:
//
//	values := render.Render(plan, mem, base)
//	fmt.Println(render.Format(plan.Name, values))
//	// Example { field1: 1, field2: 2, field3: 3 }
//
// Field offsets in a realized structure are usually not aligned for the
// field's type. Every read goes through offset.Memory, which never assumes
// alignment, so no misaligned load is ever performed directly.
//
// Render treats memory that does not hold the whole structure as a broken
// precondition and panics with a [render] out_of_bounds error.
package render
