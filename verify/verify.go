package verify

import (
	"reflect"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/offset/errors"
	"github.com/wippyai/offset/layout"
)

// Config holds verifier configuration.
type Config struct {
	// Mode selects whether checks run. The zero value is ModeEnabled;
	// a nil *Config uses DefaultMode.
	Mode Mode
}

// Verifier compares plans against realized structures.
// It is safe for concurrent use.
type Verifier struct {
	mu      sync.Mutex
	skipped bool
	warned  bool
	first   string
	mode    Mode
}

var std = New(nil)

// New creates a verifier. A nil cfg selects DefaultMode.
func New(cfg *Config) *Verifier {
	mode := DefaultMode()
	if cfg != nil {
		mode = cfg.Mode
	}
	return &Verifier{mode: mode}
}

// Mode reports whether this verifier runs its checks.
func (v *Verifier) Mode() Mode {
	return v.mode
}

func (v *Verifier) skip(plan *layout.Plan) bool {
	if v.mode == ModeEnabled {
		return false
	}
	v.mu.Lock()
	if !v.skipped {
		v.skipped = true
		v.first = plan.Name
	}
	v.mu.Unlock()
	v.warn()
	return true
}

// warn logs the disabled-verification warning once, but only after
// SetLogger has run.
func (v *Verifier) warn() {
	if !loggerSet.Load() {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.skipped || v.warned {
		return
	}
	v.warned = true
	Logger().Warn("layout verification disabled; declared offsets are trusted unchecked",
		zap.String("first_struct", v.first),
		zap.Stringer("mode", v.mode))
}

// Verify checks every field of plan against probe and returns the first
// divergence in declaration order.
func (v *Verifier) Verify(plan *layout.Plan, probe Probe) error {
	if v.skip(plan) {
		return nil
	}
	return v.check(plan, probe, false)
}

// VerifyAll is like Verify but reports every divergence, combined with
// multierr.
func (v *Verifier) VerifyAll(plan *layout.Plan, probe Probe) error {
	if v.skip(plan) {
		return nil
	}
	return v.check(plan, probe, true)
}

func (v *Verifier) check(plan *layout.Plan, probe Probe, all bool) error {
	var errs error
	var expected uint32

	for _, seg := range plan.Segments {
		if seg.IsPadding() {
			expected += seg.Length
			continue
		}

		name := seg.Field.Name
		path := fieldPath(plan.Name, name)

		var err error
		actual, ok := probe(name)
		switch {
		case !ok:
			err = errors.FieldMissing(errors.PhaseVerify, path, name)
		case actual != expected:
			e := errors.LayoutMismatch(path, expected, actual)
			e.Type = seg.Field.Type.Name
			err = e
		}

		if err != nil {
			Logger().Debug("layout drift",
				zap.String("struct", plan.Name),
				zap.String("field", name),
				zap.Uint32("expected", expected),
				zap.Uint32("actual", actual))
			if !all {
				return err
			}
			errs = multierr.Append(errs, err)
		}
		expected += seg.Length
	}

	if errs == nil {
		Logger().Debug("layout verified", zap.String("struct", plan.Name), zap.Int("segments", len(plan.Segments)))
	}
	return errs
}

// VerifyStruct checks a Go struct type: field offsets as in Verify, then
// each field's size, then the struct's total size.
func (v *Verifier) VerifyStruct(plan *layout.Plan, t reflect.Type) error {
	if v.skip(plan) {
		return nil
	}
	if t == nil {
		return errors.InvalidInput(errors.PhaseVerify, []string{plan.Name}, "nil struct type")
	}

	if err := v.check(plan, ProbeStruct(t), false); err != nil {
		return err
	}

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	tagged, named := structFields(t)

	for _, seg := range plan.Fields() {
		sf, _ := lookup(tagged, named, seg.Field.Name)
		if size := uint32(sf.typ.Size()); size != seg.Length {
			return errors.New(errors.PhaseVerify, errors.KindLayoutMismatch).
				Path(fieldPath(plan.Name, seg.Field.Name)...).
				GoType(sf.typ.String()).
				Type(seg.Field.Type.Name).
				Detail("expected size %d, actual %d", seg.Length, size).
				Build()
		}
	}

	if size := uint32(t.Size()); size != plan.Size {
		return errors.New(errors.PhaseVerify, errors.KindLayoutMismatch).
			Path(fieldPath(plan.Name, "<size>")...).
			GoType(t.String()).
			Detail("expected total size %#x, actual %#x", plan.Size, size).
			Build()
	}
	return nil
}

// Verify checks plan against probe using the default configuration.
func Verify(plan *layout.Plan, probe Probe) error {
	return std.Verify(plan, probe)
}

// VerifyAll reports every divergence using the default configuration.
func VerifyAll(plan *layout.Plan, probe Probe) error {
	return std.VerifyAll(plan, probe)
}

// VerifyStruct checks a Go struct type using the default configuration.
func VerifyStruct(plan *layout.Plan, t reflect.Type) error {
	return std.VerifyStruct(plan, t)
}

// Must is like Verify but panics on failure.
func Must(plan *layout.Plan, probe Probe) {
	if err := Verify(plan, probe); err != nil {
		panic(err)
	}
}

// MustStruct is like VerifyStruct but panics on failure. Generated code
// calls it from init.
func MustStruct(plan *layout.Plan, t reflect.Type) {
	if err := VerifyStruct(plan, t); err != nil {
		panic(err)
	}
}

func fieldPath(structName, field string) []string {
	if structName == "" {
		return []string{field}
	}
	return []string{structName, field}
}
