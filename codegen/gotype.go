package codegen

import (
	"fmt"

	"github.com/wippyai/offset/schema"
)

// goScalar describes how a schema scalar is held in Go. get and put are
// format strings over a byte slice expression (and, for put, a value).
type goScalar struct {
	name string
	size uint32
	get  string
	put  string
}

var goScalars = map[string]goScalar{
	"bool":  {name: "bool", size: 1},
	"u8":    {name: "uint8", size: 1},
	"s8":    {name: "int8", size: 1},
	"u16":   {name: "uint16", size: 2, get: "binary.NativeEndian.Uint16(%s)", put: "binary.NativeEndian.PutUint16(%s, %s)"},
	"s16":   {name: "int16", size: 2, get: "int16(binary.NativeEndian.Uint16(%s))", put: "binary.NativeEndian.PutUint16(%s, uint16(%s))"},
	"u32":   {name: "uint32", size: 4, get: "binary.NativeEndian.Uint32(%s)", put: "binary.NativeEndian.PutUint32(%s, %s)"},
	"s32":   {name: "int32", size: 4, get: "int32(binary.NativeEndian.Uint32(%s))", put: "binary.NativeEndian.PutUint32(%s, uint32(%s))"},
	"char":  {name: "rune", size: 4, get: "rune(binary.NativeEndian.Uint32(%s))", put: "binary.NativeEndian.PutUint32(%s, uint32(%s))"},
	"f32":   {name: "float32", size: 4, get: "math.Float32frombits(binary.NativeEndian.Uint32(%s))", put: "binary.NativeEndian.PutUint32(%s, math.Float32bits(%s))"},
	"u64":   {name: "uint64", size: 8, get: "binary.NativeEndian.Uint64(%s)", put: "binary.NativeEndian.PutUint64(%s, %s)"},
	"usize": {name: "uint64", size: 8, get: "binary.NativeEndian.Uint64(%s)", put: "binary.NativeEndian.PutUint64(%s, %s)"},
	"ptr":   {name: "uint64", size: 8, get: "binary.NativeEndian.Uint64(%s)", put: "binary.NativeEndian.PutUint64(%s, %s)"},
	"s64":   {name: "int64", size: 8, get: "int64(binary.NativeEndian.Uint64(%s))", put: "binary.NativeEndian.PutUint64(%s, uint64(%s))"},
	"isize": {name: "int64", size: 8, get: "int64(binary.NativeEndian.Uint64(%s))", put: "binary.NativeEndian.PutUint64(%s, uint64(%s))"},
	"f64":   {name: "float64", size: 8, get: "math.Float64frombits(binary.NativeEndian.Uint64(%s))", put: "binary.NativeEndian.PutUint64(%s, math.Float64bits(%s))"},
}

// goValue is the Go representation of a field type.
type goValue struct {
	typ   string
	align uint32
	elem  goScalar
	count uint32
}

func goValueOf(t schema.Type) (goValue, bool) {
	if t.IsArray() {
		elem, ok := goScalars[t.Elem]
		if !ok {
			return goValue{}, false
		}
		return goValue{
			typ:   fmt.Sprintf("[%d]%s", t.Count, elem.name),
			align: elem.size,
			elem:  elem,
			count: t.Count,
		}, true
	}
	sc, ok := goScalars[t.Name]
	if !ok || !t.IsScalar() {
		return goValue{}, false
	}
	return goValue{typ: sc.name, align: sc.size, elem: sc}, true
}

// getter returns the body of an accessor decoding storage.
func (v goValue) getter(storage string) string {
	if v.count == 0 {
		return "return " + fmt.Sprintf(v.elem.get, "s."+storage+"[:]")
	}
	src := fmt.Sprintf("s.%s[i*%d:]", storage, v.elem.size)
	return fmt.Sprintf("var v %s\nfor i := range v {\nv[i] = %s\n}\nreturn v", v.typ, fmt.Sprintf(v.elem.get, src))
}

// setter returns the body of an accessor encoding v into storage.
func (v goValue) setter(storage string) string {
	if v.count == 0 {
		return fmt.Sprintf(v.elem.put, "s."+storage+"[:]", "v")
	}
	dst := fmt.Sprintf("s.%s[i*%d:]", storage, v.elem.size)
	return fmt.Sprintf("for i, e := range v {\n%s\n}", fmt.Sprintf(v.elem.put, dst, "e"))
}

// structAlign returns the largest alignment, up to 8, that keeps a Go
// struct of size bytes from growing trailing padding.
func structAlign(size uint32) uint32 {
	for a := uint32(8); a > 1; a /= 2 {
		if size%a == 0 {
			return a
		}
	}
	return 1
}
