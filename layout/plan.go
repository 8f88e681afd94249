package layout

import (
	"fmt"
	"strings"

	"github.com/wippyai/offset/schema"
)

// SegmentKind distinguishes fields from padding.
type SegmentKind uint8

const (
	SegmentField SegmentKind = iota
	SegmentPadding
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentField:
		return "field"
	case SegmentPadding:
		return "padding"
	default:
		return fmt.Sprintf("SegmentKind(%d)", uint8(k))
	}
}

// Segment is one contiguous run of storage in a plan.
type Segment struct {
	// Field is set for field segments.
	Field schema.FieldDescriptor
	// Offset is the absolute start of the segment.
	Offset uint32
	// Length is the padding length, or the field size.
	Length uint32
	Kind   SegmentKind
}

// IsPadding reports whether s is synthetic filler.
func (s Segment) IsPadding() bool {
	return s.Kind == SegmentPadding
}

// Plan is the derived layout of a schema. It is immutable once built.
type Plan struct {
	Name     string
	Segments []Segment
	// Extent is the end of the last field.
	Extent uint32
	// Size is the total size: the declared size if there is one, else Extent.
	Size uint32
}

// Fields returns the field segments in declaration order.
func (p *Plan) Fields() []Segment {
	out := make([]Segment, 0, len(p.Segments))
	for _, seg := range p.Segments {
		if !seg.IsPadding() {
			out = append(out, seg)
		}
	}
	return out
}

// Field returns the segment of the field called name.
func (p *Plan) Field(name string) (Segment, bool) {
	for _, seg := range p.Segments {
		if !seg.IsPadding() && seg.Field.Name == name {
			return seg, true
		}
	}
	return Segment{}, false
}

// Padding returns the total number of padding bytes.
func (p *Plan) Padding() uint32 {
	var n uint32
	for _, seg := range p.Segments {
		if seg.IsPadding() {
			n += seg.Length
		}
	}
	return n
}

// String renders the plan one segment per line.
func (p *Plan) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s size=%#x extent=%#x\n", p.Name, p.Size, p.Extent)
	for _, seg := range p.Segments {
		if seg.IsPadding() {
			fmt.Fprintf(&b, "  %#04x padding (%d)\n", seg.Offset, seg.Length)
			continue
		}
		fmt.Fprintf(&b, "  %#04x %s %s (%d)\n", seg.Offset, seg.Field.Name, seg.Field.Type, seg.Length)
	}
	return b.String()
}
