// defaults.go — Canonical default settings and row reconciliation.
package design

import "strings"

// DefaultRowSettings is the template fallback for a headline row. It is
// returned by value so callers can adjust their copy freely.
func DefaultRowSettings() TextSettings {
	return TextSettings{
		FontFamily:        "sans-bold",
		FontColor:         "#ffffff",
		FontSize:          34,
		TextAlign:         AlignCenter,
		ShadowColor:       "rgba(0, 0, 0, 0.6)",
		ShadowBlur:        10,
		StrokeColor:       "#000000",
		StrokeWidth:       0,
		LetterSpacing:     0,
		LineSpacing:       1.2,
		GradientColors:    [2]string{"#ffffff", "#ffffff"},
		GradientAngle:     0,
		BackgroundColor:   "#000000",
		BackgroundOpacity: 0.4,
		BackgroundPadding: 10,
	}
}

// defaultSubheadline builds the canonical subheadline styling.
func defaultSubheadline() SubheadlineSettings {
	ts := DefaultRowSettings()
	ts.FontFamily = "sans"
	ts.FontSize = 18
	ts.LineSpacing = 1.4
	return SubheadlineSettings{
		TextSettings:     ts,
		VerticalPosition: PositionBottom,
	}
}

// Canonical returns a fully-populated Settings value. Every field holds a
// concrete default, so an Override applied on top can never leave a hole.
func Canonical() Settings {
	return Settings{
		Headline: HeadlineSettings{
			Rows:             []TextSettings{DefaultRowSettings()},
			VerticalPosition: PositionCenter,
			LineSpacing:      1.2,
		},
		Subheadline: defaultSubheadline(),

		AddLogo:      false,
		LogoPosition: LogoTopRight,
		LogoSize:     100,
		LogoOpacity:  1,

		CTAButton: CTAButton{
			Enabled:          false,
			Text:             "Learn More",
			HorizontalAlign:  AlignCenter,
			VerticalPosition: PositionBottom,
			Color:            "#2563eb",
			GradientColors:   [2]string{"#2563eb", "#7c3aed"},
			GradientAngle:    90,
			TextColor:        "#ffffff",
			FontSize:         16,
			PaddingX:         24,
			PaddingY:         12,
			BorderRadius:     24,
			AutoAdjustColors: true,
		},
	}
}

// HeadlineRows splits headline copy into its newline-delimited rows,
// normalizing Windows line endings. An empty headline yields one empty row.
func HeadlineRows(headline string) []string {
	return strings.Split(strings.ReplaceAll(headline, "\r\n", "\n"), "\n")
}

// ReconcileRows adjusts s.Headline.Rows so its length tracks the number of
// newline-delimited rows in the headline text: extra rows are truncated,
// missing rows duplicate the last configured row. The receiver's slice is
// replaced, never mutated in place.
func ReconcileRows(s *Settings, headline string) {
	want := len(HeadlineRows(headline))
	have := len(s.Headline.Rows)
	if have == want {
		return
	}

	rows := make([]TextSettings, want)
	for i := range rows {
		switch {
		case i < have:
			rows[i] = s.Headline.Rows[i]
		case have > 0:
			rows[i] = s.Headline.Rows[have-1]
		default:
			rows[i] = DefaultRowSettings()
		}
	}
	s.Headline.Rows = rows
}

// RowSettings resolves the styling for headline row i: the configured row,
// the last configured row when i runs past them, or the supplied fallback
// when no rows are configured at all.
func RowSettings(h HeadlineSettings, i int, fallback TextSettings) TextSettings {
	if len(h.Rows) == 0 {
		return fallback
	}
	if i >= len(h.Rows) {
		return h.Rows[len(h.Rows)-1]
	}
	return h.Rows[i]
}
