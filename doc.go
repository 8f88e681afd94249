// Package offset compiles declarative layout descriptors of foreign memory
// structures into exactly-addressed layouts.
//
// A foreign structure is one whose shape is dictated by something outside the
// program: an operating system kernel object, a hardware register block, a
// wire-format record, or a record in a WebAssembly guest's linear memory. Its
// author knows the absolute byte offset of every field and cannot renegotiate
// them. This library turns those offsets into the padding that must sit
// between and after the fields, checks that a realized structure really has
// the declared shape, and prints such structures without their padding.
//
// # Architecture Overview
//
//	offset/              Root package with the Memory interface
//	├── schema/          Field descriptors, schema builder, YAML schema files
//	├── layout/          Offset-to-layout engine and size reconciler
//	├── verify/          Checks realized offsets against a plan
//	├── render/          Padding-hiding renderer and debug formatter
//	├── memory/          Realized structure backings (slices, Go values, wazero)
//	├── codegen/         Go source generation from plans
//	├── errors/          Structured error types
//	├── internal/        Canonical ABI size and alignment
//	├── examples/        Runnable example and a generated package
//	└── cmd/offsetc/     Command line front end
//
// # Quick Start
//
//	s := schema.New("Example").
//	    Field(0x0, "field1", schema.U32).
//	    Field(0x4, "field2", schema.U16).
//	    Field(0x8, "field3", schema.U64).
//	    Size(0x20).
//	    MustBuild()
//
//	plan, err := layout.Build(s)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(plan)
//	// Example size=0x20 extent=0x10
//	//   0x00 field1 u32 (4)
//	//   0x04 field2 u16 (2)
//	//   0x06 padding (2)
//	//   0x08 field3 u64 (8)
//	//   0x10 padding (16)
//
//	values := render.Render(plan, memory.NewBytes(buf), 0)
//	fmt.Println(render.Format(plan.Name, values))
//	// Example { field1: 1, field2: 2, field3: 3 }
//
// # Thread Safety
//
// Schemas, plans and verifiers are immutable once built and safe for
// concurrent use. Memory implementations provide no synchronization for
// writes; foreign memory is owned by whoever maps it.
package offset
