package schema

import (
	"math"
	"unicode"

	"github.com/wippyai/offset/errors"
	"github.com/wippyai/offset/internal/typesize"
)

// Schema is the declared layout of one foreign structure. It is immutable.
type Schema struct {
	name         string
	fields       []FieldDescriptor
	declaredSize uint32
	sized        bool
}

// Name returns the structure name.
func (s *Schema) Name() string {
	return s.name
}

// Fields returns a copy of the field descriptors in declaration order.
func (s *Schema) Fields() []FieldDescriptor {
	out := make([]FieldDescriptor, len(s.fields))
	copy(out, s.fields)
	return out
}

// Len returns the number of declared fields.
func (s *Schema) Len() int {
	return len(s.fields)
}

// DeclaredSize returns the author's total structure size, if one was given.
func (s *Schema) DeclaredSize() (uint32, bool) {
	return s.declaredSize, s.sized
}

// Builder assembles a Schema. The first invalid call is remembered and
// reported by Build; later calls are ignored.
type Builder struct {
	err    error
	calc   *typesize.Calculator
	seen   map[string]struct{}
	schema Schema
}

// New starts a schema for the structure called name.
func New(name string) *Builder {
	b := &Builder{
		calc:   typesize.NewCalculator(),
		seen:   make(map[string]struct{}),
		schema: Schema{name: name},
	}
	if !IsIdentifier(name) {
		b.err = errors.InvalidInput(errors.PhaseDefine, []string{name}, "structure name is not an identifier")
	}
	return b
}

// Field declares a field of type t at the absolute byte offset.
func (b *Builder) Field(offset uint32, name string, t Type) *Builder {
	if b.err != nil {
		return b
	}

	path := []string{b.schema.name, name}
	if !IsIdentifier(name) || name == "_" {
		b.err = errors.InvalidInput(errors.PhaseDefine, path, "field name is not an identifier")
		return b
	}
	if _, dup := b.seen[name]; dup {
		b.err = errors.DuplicateField(errors.PhaseDefine, []string{b.schema.name}, name)
		return b
	}
	if t.WIT == nil {
		b.err = errors.InvalidInput(errors.PhaseDefine, path, "field has no type")
		return b
	}

	if !typesize.Fixed(t.WIT) {
		b.err = errors.New(errors.PhaseDefine, errors.KindUnsupported).
			Path(path...).
			Type(t.Name).
			Detail("field type has no fixed size").
			Build()
		return b
	}

	size := uint64(b.calc.Calculate(t.WIT).Size)
	if t.IsArray() {
		size *= uint64(t.Count)
	}
	if size > math.MaxUint32 {
		b.err = errors.Overflow(errors.PhaseDefine, path, size, "uint32")
		return b
	}

	b.seen[name] = struct{}{}
	b.schema.fields = append(b.schema.fields, FieldDescriptor{
		Offset: offset,
		Name:   name,
		Type:   t,
		Size:   uint32(size),
	})
	return b
}

// Size declares the total size of the structure. Storage past the last
// field is filled with trailing padding.
func (b *Builder) Size(n uint32) *Builder {
	b.schema.declaredSize = n
	b.schema.sized = true
	return b
}

// Build returns the schema or the first error recorded while building it.
// Offsets are not checked here; the layout engine owns that invariant.
func (b *Builder) Build() (*Schema, error) {
	if b.err != nil {
		return nil, b.err
	}
	s := b.schema
	s.fields = append([]FieldDescriptor(nil), b.schema.fields...)
	return &s, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// IsIdentifier reports whether name is a letter or underscore followed by
// letters, digits and underscores.
func IsIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
