package schema

import "fmt"

// FieldDescriptor places one named field at an absolute byte offset.
type FieldDescriptor struct {
	Type   Type
	Name   string
	Offset uint32
	// Size is the number of bytes the field's type occupies.
	Size uint32
}

// End returns the offset one past the field's last byte. It is 64 bits wide
// so that fields reaching the top of the address space do not wrap.
func (f FieldDescriptor) End() uint64 {
	return uint64(f.Offset) + uint64(f.Size)
}

func (f FieldDescriptor) String() string {
	return fmt.Sprintf("%#x %s %s", f.Offset, f.Name, f.Type)
}
