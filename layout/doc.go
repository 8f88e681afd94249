// Package layout turns a schema's absolute field offsets into a dense plan of
// padding gaps and fields.
//
// Ordinary structure layout picks offsets and derives padding from
// alignment. Foreign structures run the other way: every offset is given,
// so only the gaps are derived. The engine walks fields in declaration
// order with a cursor at the end of consumed storage:
//
//	cursor = 0
//	for each field:
//	    gap = field.offset - cursor     (negative: overlap or disorder)
//	    emit padding(gap) if gap > 0
//	    emit field
//	    cursor = field.offset + field.size
//
// When the schema declares a total size, the reconciler appends trailing
// padding up to it, failing if the fields already extend past it.
//
// The resulting Plan is the contract shared by everything downstream:
// realized structures, the verifier, the renderer and the code generator.
// The lengths of its segments always add up to Plan.Size.
//
// # Errors
//
//	[define] overlap_or_disorder at S.b: offset 0x4 is not past previous storage ending at 0x8
//	[reconcile] declared_size_too_small at S: declared size 0xa is smaller than natural extent 0x10
//
// Both are definition-time failures; no partial plan is returned.
package layout
