//go:build offset_unchecked

package verify

const defaultMode = ModeDisabled
