package text

import (
	"reflect"
	"strings"
	"testing"
)

// fixedMeasurer measures every rune as advance pixels wide, giving tests
// deterministic wrapping without a real font face.
type fixedMeasurer struct {
	advance float64
}

func (m fixedMeasurer) MeasureString(s string) (float64, float64) {
	return float64(len([]rune(s))) * m.advance, m.advance * 1.2
}

func TestIsCJKText(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"Hello", false},
		{"", false},
		{"你好", true},
		{"Hello 你好", true}, // mixed triggers CJK mode for the whole string
		{"こんにちは", true},
		{"カタカナ", true},
		{"안녕하세요", true},
		{"Café déjà vu", false},
	}

	for _, tt := range tests {
		if got := IsCJKText(tt.in); got != tt.want {
			t.Errorf("IsCJKText(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWrapLinesWordWrap(t *testing.T) {
	m := fixedMeasurer{advance: 10}
	// 100px limit = 10 runes per line.
	lines := WrapLines(m, "The quick brown fox jumps", 100)

	if len(lines) < 2 {
		t.Fatalf("expected multiple lines, got %q", lines)
	}
	for _, line := range lines {
		if w, _ := m.MeasureString(line); w > 100 {
			t.Errorf("line %q measures %v, exceeds 100", line, w)
		}
		for _, word := range strings.Fields(line) {
			if !strings.Contains("The quick brown fox jumps", word) {
				t.Errorf("word %q was split", word)
			}
		}
	}
	if got := strings.Join(lines, " "); got != "The quick brown fox jumps" {
		t.Errorf("rejoined = %q, words lost or reordered", got)
	}
}

func TestWrapLinesManualBreaksPreserved(t *testing.T) {
	m := fixedMeasurer{advance: 10}
	got := WrapLines(m, "Line one\n\nLine two", 500)
	want := []string{"Line one", "", "Line two"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("WrapLines = %q, want %q", got, want)
	}
}

func TestWrapLinesWindowsLineEndings(t *testing.T) {
	m := fixedMeasurer{advance: 10}
	got := WrapLines(m, "a\r\nb", 500)
	want := []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("WrapLines = %q, want %q", got, want)
	}
}

func TestWrapLinesEmptyString(t *testing.T) {
	if got := WrapLines(fixedMeasurer{advance: 10}, "", 100); len(got) != 0 {
		t.Errorf("WrapLines(\"\") = %q, want empty", got)
	}
}

func TestWrapLinesOverlongWordKeptWhole(t *testing.T) {
	m := fixedMeasurer{advance: 10}
	got := WrapLines(m, "hi Supercalifragilistic no", 100)
	found := false
	for _, line := range got {
		if line == "Supercalifragilistic" {
			found = true
		}
	}
	if !found {
		t.Errorf("overlong word was split or merged: %q", got)
	}
}

func TestWrapLinesIdempotent(t *testing.T) {
	m := fixedMeasurer{advance: 8}
	first := WrapLines(m, "one two three four five six seven eight", 120)
	second := WrapLines(m, strings.Join(first, "\n"), 120)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("rewrapping own output changed lines: %q vs %q", first, second)
	}
}

func TestWrapLinesCJKCharacterWrap(t *testing.T) {
	m := fixedMeasurer{advance: 20}
	// 60px = 3 chars per line.
	got := WrapLines(m, "春夏秋冬又一年", 60)
	want := []string{"春夏秋", "冬又一", "年"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("WrapLines = %q, want %q", got, want)
	}
}

func TestWrapLinesMixedTextUsesCharWrap(t *testing.T) {
	m := fixedMeasurer{advance: 20}
	got := WrapLines(m, "Go 语言", 60)
	// Character wrapping may break inside "Go"; the defining behavior is
	// that no line exceeds the width even without space boundaries.
	for _, line := range got {
		if w, _ := m.MeasureString(line); w > 60 {
			t.Errorf("line %q exceeds width", line)
		}
	}
}

func TestCJKAdjustedFontSize(t *testing.T) {
	// Width model: each rune is size×1.0 wide.
	measure := func(size float64, s string) float64 {
		return size * float64(len([]rune(s)))
	}

	tests := []struct {
		name string
		text string
		base float64
		max  float64
		want float64
	}{
		{"non-CJK unchanged", "Hello world wide text", 32, 100, 32},
		{"short CJK unchanged when fits", "你好", 32, 1000, 32},
		{"over 10 chars scales 0.85", "一二三四五六七八九十一", 32, 1e9, 32 * 0.85},
		{"over 15 chars scales 0.75", "一二三四五六七八九十一二三四五六", 32, 1e9, 32 * 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CJKAdjustedFontSize(measure, tt.text, tt.base, tt.max)
			if got != tt.want {
				t.Errorf("CJKAdjustedFontSize = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCJKAdjustedFontSizeFloor(t *testing.T) {
	measure := func(size float64, s string) float64 {
		return size * float64(len([]rune(s)))
	}

	// A very long string against a tiny width would shrink far below
	// half size without the floor.
	long := strings.Repeat("字", 40)
	base := 32.0
	got := CJKAdjustedFontSize(measure, long, base, 50)
	if got < base*0.5 {
		t.Errorf("size %v dropped below floor %v", got, base*0.5)
	}
}

func TestCJKAdjustedFontSizeProportionalShrink(t *testing.T) {
	measure := func(size float64, s string) float64 {
		return size * float64(len([]rune(s)))
	}

	// 8 runes at size 32 measure 256; maxWidth 200 forces the
	// proportional pass: 32 × 200/256 × 0.95 = 23.75.
	got := CJKAdjustedFontSize(measure, "一二三四五六七八", 32, 200)
	want := 32.0 * 200 / 256 * 0.95
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("CJKAdjustedFontSize = %v, want %v", got, want)
	}
}

func TestLineHeights(t *testing.T) {
	if got := HeadlineLineHeight(false); got != 1.2 {
		t.Errorf("HeadlineLineHeight(false) = %v, want 1.2", got)
	}
	if got := HeadlineLineHeight(true); got != 1.3 {
		t.Errorf("HeadlineLineHeight(true) = %v, want 1.3", got)
	}
	if got := SubheadlineLineHeight(1.6, false); got != 1.6 {
		t.Errorf("SubheadlineLineHeight(1.6, false) = %v, want 1.6", got)
	}
	if got := SubheadlineLineHeight(1.6, true); got != 1.4 {
		t.Errorf("SubheadlineLineHeight(1.6, true) = %v, want forced 1.4", got)
	}
	if got := SubheadlineLineHeight(0, false); got != 1.4 {
		t.Errorf("SubheadlineLineHeight(0, false) = %v, want default 1.4", got)
	}
}
