package verify

import "fmt"

// Mode selects whether verification runs.
type Mode uint8

const (
	// ModeEnabled runs every check. It is the zero value.
	ModeEnabled Mode = iota
	// ModeDisabled trades safety for speed: every check succeeds.
	ModeDisabled
)

func (m Mode) String() string {
	switch m {
	case ModeEnabled:
		return "enabled"
	case ModeDisabled:
		return "disabled"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// DefaultMode returns the mode used when no Config is given. It is
// ModeEnabled unless the module was built with the offset_unchecked tag.
func DefaultMode() Mode {
	return defaultMode
}
