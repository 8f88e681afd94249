package layout

import (
	"math"

	"go.uber.org/zap"

	"github.com/wippyai/offset/errors"
	"github.com/wippyai/offset/schema"
)

// Compute derives the plan of an unnamed field list. Offsets must be
// strictly increasing and no field may begin before the previous one ends.
func Compute(fields []schema.FieldDescriptor) (*Plan, error) {
	return compute("", fields)
}

func compute(name string, fields []schema.FieldDescriptor) (*Plan, error) {
	plan := &Plan{
		Name:     name,
		Segments: make([]Segment, 0, 2*len(fields)),
	}

	var cursor uint32
	for i, f := range fields {
		path := fieldPath(name, f.Name)

		// Equal offsets are rejected even when the previous field is
		// zero-sized: aliasing two fields is never implied.
		if i > 0 && f.Offset <= fields[i-1].Offset {
			return nil, errors.OverlapOrDisorder(path, f.Offset, cursor)
		}
		if f.Offset < cursor {
			return nil, errors.OverlapOrDisorder(path, f.Offset, cursor)
		}

		end := f.End()
		if end > math.MaxUint32 {
			return nil, errors.Overflow(errors.PhaseDefine, path, end, "uint32 offset")
		}

		if gap := f.Offset - cursor; gap > 0 {
			plan.Segments = append(plan.Segments, Segment{
				Kind:   SegmentPadding,
				Offset: cursor,
				Length: gap,
			})
		}
		plan.Segments = append(plan.Segments, Segment{
			Kind:   SegmentField,
			Field:  f,
			Offset: f.Offset,
			Length: f.Size,
		})
		cursor = uint32(end)
	}

	plan.Extent = cursor
	plan.Size = cursor
	return plan, nil
}

// Reconcile returns the trailing padding that grows a structure whose
// fields end at extent to the declared size.
func Reconcile(extent, declared uint32) (Segment, error) {
	return reconcile("", extent, declared)
}

func reconcile(name string, extent, declared uint32) (Segment, error) {
	if declared < extent {
		var path []string
		if name != "" {
			path = []string{name}
		}
		return Segment{}, errors.DeclaredSizeTooSmall(path, declared, extent)
	}
	return Segment{
		Kind:   SegmentPadding,
		Offset: extent,
		Length: declared - extent,
	}, nil
}

// Build derives the plan of a schema, reconciling it with the declared
// size when the schema has one.
func Build(s *schema.Schema) (*Plan, error) {
	plan, err := compute(s.Name(), s.Fields())
	if err != nil {
		return nil, err
	}

	if declared, ok := s.DeclaredSize(); ok {
		tail, err := reconcile(s.Name(), plan.Extent, declared)
		if err != nil {
			return nil, err
		}
		// An exact fit needs no segment; the sizes still agree.
		if tail.Length > 0 {
			plan.Segments = append(plan.Segments, tail)
		}
		plan.Size = declared
	}

	Logger().Debug("layout planned",
		zap.String("struct", plan.Name),
		zap.Int("fields", s.Len()),
		zap.Int("segments", len(plan.Segments)),
		zap.Uint32("extent", plan.Extent),
		zap.Uint32("size", plan.Size),
		zap.Uint32("padding", plan.Padding()))

	return plan, nil
}

// MustBuild is like Build but panics on error. It is meant for
// package-level plans, so that an invalid schema stops the program before
// any structure is realized.
func MustBuild(s *schema.Schema) *Plan {
	plan, err := Build(s)
	if err != nil {
		panic(err)
	}
	return plan
}

func fieldPath(structName, field string) []string {
	if structName == "" {
		return []string{field}
	}
	return []string{structName, field}
}
