package render

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Format renders values as "Name { a: 1, b: 2 }". Addresses (ptr, usize)
// are shown in hex, chars quoted, arrays as element lists and undecoded
// fields as raw hex bytes.
func Format(name string, values []Value) string {
	if len(values) == 0 {
		return name + " {}"
	}

	var b strings.Builder
	b.WriteString(name)
	b.WriteString(" { ")
	for i, v := range values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(v.Name)
		b.WriteString(": ")
		if v.Type.IsArray() {
			b.WriteString(formatArray(v))
		} else {
			b.WriteString(formatValue(v.Type.Name, v.Value, v.Raw))
		}
	}
	b.WriteString(" }")
	return b.String()
}

func formatArray(v Value) string {
	elems, ok := v.Value.([]any)
	if !ok {
		return formatRaw(v.Raw)
	}
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = formatValue(v.Type.Elem, e, nil)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatValue(typeName string, value any, raw []byte) string {
	if r, ok := value.(rune); ok && typeName == "char" {
		if !utf8.ValidRune(r) {
			return fmt.Sprintf("%#x", uint32(r))
		}
		return strconv.QuoteRune(r)
	}

	switch v := value.(type) {
	case nil:
		return formatRaw(raw)
	case uint64:
		if typeName == "ptr" || typeName == "usize" {
			return "0x" + strconv.FormatUint(v, 16)
		}
		return strconv.FormatUint(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func formatRaw(raw []byte) string {
	if len(raw) == 0 {
		return "0x"
	}
	return "0x" + hex.EncodeToString(raw)
}
