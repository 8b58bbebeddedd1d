package entity

// VisualStyle is the closed set of enemy silhouette styles. Adding a style
// means adding a variant here plus a painter entry in the renderer's
// dispatch table; styles are never resolved by reflection.
type VisualStyle int

const (
	StyleOrb VisualStyle = iota
	StyleBrute
	StyleWisp
	StyleSpiker

	NumVisualStyles
)

var styleNames = map[string]VisualStyle{
	"orb":    StyleOrb,
	"brute":  StyleBrute,
	"wisp":   StyleWisp,
	"spiker": StyleSpiker,
}

// ParseVisualStyle maps a config style tag to its variant. Unknown tags
// fall back to StyleOrb.
func ParseVisualStyle(tag string) VisualStyle {
	if s, ok := styleNames[tag]; ok {
		return s
	}
	return StyleOrb
}

// String returns the config tag for the style.
func (s VisualStyle) String() string {
	switch s {
	case StyleBrute:
		return "brute"
	case StyleWisp:
		return "wisp"
	case StyleSpiker:
		return "spiker"
	default:
		return "orb"
	}
}
