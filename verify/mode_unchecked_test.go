//go:build offset_unchecked

package verify

import (
	"reflect"
	"testing"
)

func TestDefaultMode_Unchecked(t *testing.T) {
	if DefaultMode() != ModeDisabled {
		t.Errorf("DefaultMode() = %v, want disabled", DefaultMode())
	}
	MustStruct(examplePlan(t), reflect.TypeFor[reordered]())
}
