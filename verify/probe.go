package verify

import (
	"reflect"
	"strings"
)

// Probe reports the offset at which a realized structure actually stores
// the named field.
type Probe func(field string) (offset uint32, ok bool)

// TagName is the struct tag that names the schema field a Go field realizes.
const TagName = "layout"

// ProbeOffsets returns a probe backed by a fixed table.
func ProbeOffsets(offsets map[string]uint32) Probe {
	return func(field string) (uint32, bool) {
		off, ok := offsets[field]
		return off, ok
	}
}

type structField struct {
	typ    reflect.Type
	offset uint32
}

// structFields indexes the fields of a Go struct type by schema name: the
// layout tag when present, else the lowercased Go field name. Blank fields
// and fields tagged "-" are padding or private and never match.
func structFields(t reflect.Type) (tagged, named map[string]structField) {
	tagged = make(map[string]structField)
	named = make(map[string]structField)

	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return tagged, named
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Name == "_" {
			continue
		}
		sf := structField{typ: f.Type, offset: uint32(f.Offset)}
		tag := f.Tag.Get(TagName)
		switch tag {
		case "-":
			continue
		case "":
			named[strings.ToLower(f.Name)] = sf
		default:
			tagged[tag] = sf
		}
	}
	return tagged, named
}

func lookup(tagged, named map[string]structField, field string) (structField, bool) {
	if sf, ok := tagged[field]; ok {
		return sf, true
	}
	sf, ok := named[strings.ToLower(field)]
	return sf, ok
}

// ProbeStruct returns a probe reporting the offsets the Go compiler chose
// for the fields of struct type t (or of the struct t points to).
func ProbeStruct(t reflect.Type) Probe {
	tagged, named := structFields(t)
	return func(field string) (uint32, bool) {
		sf, ok := lookup(tagged, named, field)
		return sf.offset, ok
	}
}
