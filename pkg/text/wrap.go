// Package text measures and wraps campaign copy for the compositor.
//
// Wrapping is greedy: words (or single characters, for CJK text) are
// appended to the current line until the measured width would exceed the
// limit. Measurement is delegated to the drawing context so wrapping
// always agrees with what the renderer draws.
package text

import "strings"

// Measurer reports the rendered size of a string at the current font.
// *gg.Context satisfies this interface directly.
type Measurer interface {
	MeasureString(s string) (w, h float64)
}

// WrapLines breaks s into lines no wider than maxWidth. Paragraphs split
// on explicit newlines wrap independently, and an empty paragraph is kept
// as an empty line so manual blank lines survive. If any character in s
// is CJK the entire text wraps per character; otherwise it wraps per
// word and a single word wider than maxWidth lands on its own line
// unbroken. An empty s yields no lines.
func WrapLines(m Measurer, s string, maxWidth float64) []string {
	if s == "" {
		return nil
	}

	s = strings.ReplaceAll(s, "\r\n", "\n")
	cjk := IsCJKText(s)

	var lines []string
	for _, para := range strings.Split(s, "\n") {
		if para == "" {
			lines = append(lines, "")
			continue
		}
		if cjk {
			lines = append(lines, wrapChars(m, para, maxWidth)...)
		} else {
			lines = append(lines, wrapWords(m, para, maxWidth)...)
		}
	}
	return lines
}

// wrapWords wraps one paragraph on space boundaries.
func wrapWords(m Measurer, para string, maxWidth float64) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		test := current + " " + word
		if w, _ := m.MeasureString(test); w > maxWidth {
			lines = append(lines, current)
			current = word
		} else {
			current = test
		}
	}
	return append(lines, current)
}

// wrapChars wraps one paragraph character by character.
func wrapChars(m Measurer, para string, maxWidth float64) []string {
	var lines []string
	var current strings.Builder

	for _, r := range para {
		test := current.String() + string(r)
		if w, _ := m.MeasureString(test); w > maxWidth && current.Len() > 0 {
			lines = append(lines, current.String())
			current.Reset()
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

// HeadlineLineHeight returns the line-height multiplier for headline
// rows: 1.2, or 1.3 for CJK rows whose full-width glyphs need more air.
func HeadlineLineHeight(cjk bool) float64 {
	if cjk {
		return 1.3
	}
	return 1.2
}

// SubheadlineLineHeight returns the subheadline line-height multiplier.
// CJK copy forces 1.4 regardless of settings; otherwise the configured
// value applies, defaulting to 1.4 when unset.
func SubheadlineLineHeight(configured float64, cjk bool) float64 {
	if cjk || configured <= 0 {
		return 1.4
	}
	return configured
}
