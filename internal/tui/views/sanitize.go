package views

import (
	"strings"
	"unicode/utf8"
)

// sanitizeForTerminal strips codepoints that break cell-width accounting
// in tcell. Marketplace chats arrive from a mobile app and are heavy on
// composed emoji; a thumbs-up with a skin tone renders as garbage unless
// the modifier is dropped, leaving the base emoji to occupy its two
// cells. Removed: skin tone modifiers, zero-width joiners, and variation
// selectors (base plane and supplement).
func sanitizeForTerminal(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch {
		case r >= 0x1F3FB && r <= 0x1F3FF: // skin tone modifiers
			continue
		case r == 0x200D: // zero-width joiner
			continue
		case r >= 0xFE00 && r <= 0xFE0F: // variation selectors
			continue
		case r >= 0xE0100 && r <= 0xE01EF: // variation selectors supplement
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
