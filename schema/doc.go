// Package schema describes foreign structures as ordered lists of fields
// placed at absolute byte offsets.
//
// A Schema is the input of the layout engine. It is built once, at
// definition time, and never changes afterwards:
//
//	s, err := schema.New("DEVICE_OBJECT").
//		Field(0x0, "type_", schema.U16).
//		Field(0x2, "size", schema.U16).
//		Field(0x8, "next", schema.Ptr).
//		Size(0x150).
//		Build()
//
// Field types are named the way foreign headers name them (u16, ptr,
// [16]u8) and carried as WIT types so their sizes follow one well-defined
// table. Parse and Load read schemas from YAML files:
//
//	structs:
//	  - name: DEVICE_OBJECT
//	    size: 0x150
//	    fields:
//	      - {offset: 0x0, name: type_, type: u16}
//	      - {offset: 0x8, name: next, type: ptr}
package schema
