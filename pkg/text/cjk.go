// cjk.go — CJK script detection and size-down policy.
//
// CJK copy wraps per character, not per word, and long CJK headlines are
// pre-shrunk before wrapping so a single unbroken run still fits.
package text

// IsCJKRune reports whether r belongs to a script that wraps per
// character: CJK Unified Ideographs, Hiragana, Katakana, or Hangul.
func IsCJKRune(r rune) bool {
	switch {
	case r >= 0x4E00 && r <= 0x9FFF: // CJK Unified Ideographs
		return true
	case r >= 0x3400 && r <= 0x4DBF: // CJK Extension A
		return true
	case r >= 0x3040 && r <= 0x309F: // Hiragana
		return true
	case r >= 0x30A0 && r <= 0x30FF: // Katakana
		return true
	case r >= 0xAC00 && r <= 0xD7AF: // Hangul Syllables
		return true
	case r >= 0x1100 && r <= 0x11FF: // Hangul Jamo
		return true
	}
	return false
}

// IsCJKText reports whether s contains any CJK character. Mixed text
// counts as CJK: the whole string then uses character-level wrapping.
func IsCJKText(s string) bool {
	for _, r := range s {
		if IsCJKRune(r) {
			return true
		}
	}
	return false
}

// MeasureAt reports the rendered width of s at the given font size.
type MeasureAt func(size float64, s string) float64

// CJKAdjustedFontSize shrinks base for CJK text so the unwrapped string
// approaches maxWidth: a character-count step (over 15 runes ×0.75, over
// 10 ×0.85), then a proportional shrink with a 0.95 safety margin when
// the re-measured width still exceeds maxWidth. The result never drops
// below half of base. Non-CJK text is returned unchanged.
func CJKAdjustedFontSize(measure MeasureAt, s string, base, maxWidth float64) float64 {
	if !IsCJKText(s) || base <= 0 {
		return base
	}

	n := len([]rune(s))
	size := base
	switch {
	case n > 15:
		size = base * 0.75
	case n > 10:
		size = base * 0.85
	}

	if maxWidth > 0 {
		if w := measure(size, s); w > maxWidth {
			size *= maxWidth / w * 0.95
		}
	}

	if floor := base * 0.5; size < floor {
		size = floor
	}
	return size
}
