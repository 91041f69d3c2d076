package component

// Kind tags the variant of an Object. Capabilities (motion, portal link,
// player state) hang off the Object as optional parts rather than being
// inferred from the kind at runtime.
type Kind uint8

const (
	KindBlock Kind = iota
	KindSkull
	KindPortal
	KindPrize
	KindPlayer
	KindBox
)

var kindNames = [...]string{
	KindBlock:  "block",
	KindSkull:  "skull",
	KindPortal: "portal",
	KindPrize:  "prize",
	KindPlayer: "player",
	KindBox:    "box",
}

var kindGlyphs = [...]byte{
	KindBlock:  '#',
	KindSkull:  'x',
	KindPortal: 'O',
	KindPrize:  'E',
	KindPlayer: 'P',
	KindBox:    'B',
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Glyph is the single-character form used in grid layout dumps.
func (k Kind) Glyph() byte {
	if int(k) < len(kindGlyphs) {
		return kindGlyphs[k]
	}
	return '?'
}

// Dynamic reports whether objects of this kind integrate motion every tick.
func (k Kind) Dynamic() bool {
	return k == KindPlayer || k == KindBox
}

// ParseKind resolves a kind from its name.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}
