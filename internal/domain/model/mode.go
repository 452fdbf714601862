package model

// VariantMode is the visual mode of a theme variant. The empty value means
// the mode is undetermined.
type VariantMode string

const (
	ModeLight VariantMode = "light"
	ModeDark  VariantMode = "dark"
)

// ParseVariantMode validates a raw mode string against the closed enumeration.
func ParseVariantMode(raw string) (VariantMode, bool) {
	switch m := VariantMode(raw); m {
	case ModeLight, ModeDark:
		return m, true
	}
	return "", false
}

// ModeSource records which rule determined a variant's mode.
type ModeSource string

const (
	ModeSourceFamily  ModeSource = "family"  // Family naming convention (base16-foo-light).
	ModeSourceName    ModeSource = "name"    // Light/dark-suggestive substring in the name.
	ModeSourceHint    ModeSource = "hint"    // Manually curated override.
	ModeSourceUnknown ModeSource = "unknown" // No rule matched.
)
