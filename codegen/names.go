package codegen

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"
)

// exportedName converts a schema identifier to an exported Go name:
// DEVICE_OBJECT becomes DeviceObject and driver_start becomes DriverStart.
func exportedName(name string) string {
	var b strings.Builder
	for _, part := range strings.Split(name, "_") {
		if part == "" {
			continue
		}
		if strings.ToUpper(part) == part && strings.ToLower(part) != part {
			r, size := utf8.DecodeRuneInString(part)
			part = string(r) + strings.ToLower(part[size:])
		}
		r, size := utf8.DecodeRuneInString(part)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(part[size:])
	}

	out := b.String()
	if !token.IsIdentifier(out) {
		out = "X" + out
	}
	return out
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

// unexportedName lowers the first letter of an exported name, avoiding
// keywords.
func unexportedName(exported string) string {
	out := lowerFirst(exported)
	if token.IsKeyword(out) {
		out += "_"
	}
	return out
}

func commentLines(text string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight("// "+line, " ")
	}
	return strings.Join(lines, "\n")
}
