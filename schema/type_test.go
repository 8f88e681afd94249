package schema

import (
	"testing"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		input string
		name  string
		size  uint32
		count uint32
	}{
		{"u8", "u8", 1, 0},
		{"byte", "u8", 1, 0},
		{"i16", "s16", 2, 0},
		{"u32", "u32", 4, 0},
		{"i64", "s64", 8, 0},
		{"f32", "f32", 4, 0},
		{"char", "char", 4, 0},
		{"bool", "bool", 1, 0},
		{"ptr", "ptr", 8, 0},
		{"usize", "usize", 8, 0},
		{" u16 ", "u16", 2, 0},
		{"[16]u8", "[16]u8", 16, 16},
		{"[4]u16", "[4]u16", 8, 4},
		{"[0x3]u32", "[3]u32", 12, 3},
		{"[2]ptr", "[2]ptr", 16, 2},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			typ, err := ParseType(tt.input)
			if err != nil {
				t.Fatalf("ParseType(%q) failed: %v", tt.input, err)
			}
			if typ.Name != tt.name {
				t.Errorf("Name = %q, want %q", typ.Name, tt.name)
			}
			if typ.Count != tt.count {
				t.Errorf("Count = %d, want %d", typ.Count, tt.count)
			}
			s, err := New("S").Field(0, "f", typ).Build()
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}
			if size := s.Fields()[0].Size; size != tt.size {
				t.Errorf("size = %d, want %d", size, tt.size)
			}
		})
	}
}

func TestParseType_Errors(t *testing.T) {
	for _, input := range []string{"", "u128", "[", "[4", "[0]u8", "[x]u8", "[4][4]u8", "[4]string", "[99999999]u8"} {
		t.Run(input, func(t *testing.T) {
			if _, err := ParseType(input); err == nil {
				t.Errorf("ParseType(%q) succeeded, want error", input)
			}
		})
	}
}

func TestType_Predicates(t *testing.T) {
	if !U32.IsScalar() || U32.IsArray() {
		t.Error("u32 should be a scalar")
	}

	arr := MustType("[8]u8")
	if arr.IsScalar() || !arr.IsArray() {
		t.Error("[8]u8 should be an array")
	}
	elem, ok := arr.ElemType()
	if !ok || elem.Name != "u8" {
		t.Errorf("ElemType = %v, %v; want u8", elem, ok)
	}
	if _, ok := U32.ElemType(); ok {
		t.Error("scalar should have no element type")
	}
}

func TestMustType_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustType("nope")
}
