package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseVerify,
				Kind:   KindLayoutMismatch,
				Path:   []string{"DEVICE_OBJECT", "next"},
				GoType: "kernel.DeviceObject",
				Type:   "ptr",
				Detail: "expected offset 0x8, actual 0x10",
			},
			contains: []string{"[verify]", "layout_mismatch", "DEVICE_OBJECT.next", "kernel.DeviceObject", "ptr", "0x10"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseRender,
				Kind:  KindOutOfBounds,
			},
			contains: []string{"[render]", "out_of_bounds"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseParse,
				Kind:   KindInvalidInput,
				Detail: "bad schema file",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[parse]", "invalid_input", "bad schema file", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseLoad,
		Kind:  KindInvalidInput,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseDefine,
		Kind:  KindOverlapOrDisorder,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhaseDefine, Kind: KindOverlapOrDisorder}) {
		t.Error("Is should match same phase and kind")
	}

	if err.Is(&Error{Phase: PhaseVerify, Kind: KindOverlapOrDisorder}) {
		t.Error("Is should not match different phase")
	}

	if err.Is(&Error{Phase: PhaseDefine, Kind: KindOutOfBounds}) {
		t.Error("Is should not match different kind")
	}

	if !errors.Is(err, ErrOverlapOrDisorder) {
		t.Error("errors.Is should match sentinel")
	}
	if errors.Is(err, ErrLayoutMismatch) {
		t.Error("errors.Is should not match unrelated sentinel")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseGenerate, KindUnsupported).
		Path("Example", "flags").
		GoType("uint32").
		Type("u32").
		Value(42).
		Cause(cause).
		Detail("cannot emit %s as %s", "u32", "float").
		Build()

	if err.Phase != PhaseGenerate {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseGenerate)
	}
	if err.Kind != KindUnsupported {
		t.Errorf("Kind = %v, want %v", err.Kind, KindUnsupported)
	}
	if len(err.Path) != 2 || err.Path[0] != "Example" || err.Path[1] != "flags" {
		t.Errorf("Path = %v, want [Example flags]", err.Path)
	}
	if err.GoType != "uint32" {
		t.Errorf("GoType = %v, want 'uint32'", err.GoType)
	}
	if err.Type != "u32" {
		t.Errorf("Type = %v, want 'u32'", err.Type)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "cannot emit u32 as float" {
		t.Errorf("Detail = %v, want 'cannot emit u32 as float'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("OverlapOrDisorder", func(t *testing.T) {
		err := OverlapOrDisorder([]string{"S", "b"}, 4, 8)
		if err.Phase != PhaseDefine || err.Kind != KindOverlapOrDisorder {
			t.Errorf("got [%v] %v", err.Phase, err.Kind)
		}
		if !strings.Contains(err.Detail, "0x4") || !strings.Contains(err.Detail, "0x8") {
			t.Errorf("Detail = %v, should contain offsets", err.Detail)
		}
	})

	t.Run("DeclaredSizeTooSmall", func(t *testing.T) {
		err := DeclaredSizeTooSmall([]string{"S"}, 10, 16)
		if !errors.Is(err, ErrDeclaredSizeTooSmall) {
			t.Errorf("expected declared size error, got %v", err)
		}
		if err.Value != uint32(10) {
			t.Errorf("Value = %v, want 10", err.Value)
		}
	})

	t.Run("LayoutMismatch", func(t *testing.T) {
		err := LayoutMismatch([]string{"S", "field1"}, 0, 4)
		m, ok := err.Mismatch()
		if !ok {
			t.Fatal("expected mismatch value")
		}
		if m.Field != "field1" || m.Expected != 0 || m.Actual != 4 {
			t.Errorf("Mismatch = %+v", m)
		}
	})

	t.Run("Mismatch absent", func(t *testing.T) {
		if _, ok := FieldMissing(PhaseVerify, nil, "x").Mismatch(); ok {
			t.Error("field missing error should carry no mismatch")
		}
	})

	t.Run("OutOfBounds", func(t *testing.T) {
		err := OutOfBounds(PhaseRender, []string{"S", "tail"}, 0x20, 8)
		if err.Kind != KindOutOfBounds {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfBounds)
		}
		if err.Value != uint32(0x20) {
			t.Errorf("Value = %v, want 0x20", err.Value)
		}
	})

	t.Run("DuplicateField", func(t *testing.T) {
		err := DuplicateField(PhaseDefine, []string{"S"}, "a")
		if err.Kind != KindDuplicateField {
			t.Errorf("Kind = %v, want %v", err.Kind, KindDuplicateField)
		}
	})

	t.Run("Overflow", func(t *testing.T) {
		err := Overflow(PhaseDefine, []string{"S", "big"}, uint64(1)<<33, "uint32")
		if err.Kind != KindOverflow {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOverflow)
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		err := Unsupported(PhaseGenerate, "string fields")
		if !strings.Contains(err.Error(), "string fields not supported") {
			t.Errorf("unexpected message %q", err.Error())
		}
	})

	t.Run("Load", func(t *testing.T) {
		cause := errors.New("no such file")
		err := Load("read dump", cause)
		if !errors.Is(err, cause) {
			t.Error("Load should wrap cause")
		}
	})
}
