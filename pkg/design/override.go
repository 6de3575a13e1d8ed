// override.go — Sparse per-image design overrides.
//
// An Override mirrors Settings with pointer fields: nil means "keep the
// base value". Apply is right-biased and never mutates its inputs, so a
// shared default Settings can safely back many images.
package design

// TextOverride is a sparse TextSettings.
type TextOverride struct {
	FontFamily    *string    `json:"fontFamily,omitempty"`
	FontColor     *string    `json:"fontColor,omitempty"`
	FontSize      *float64   `json:"fontSize,omitempty"`
	TextAlign     *TextAlign `json:"textAlign,omitempty"`
	ShadowColor   *string    `json:"shadowColor,omitempty"`
	ShadowBlur    *float64   `json:"shadowBlur,omitempty"`
	StrokeColor   *string    `json:"strokeColor,omitempty"`
	StrokeWidth   *float64   `json:"strokeWidth,omitempty"`
	LetterSpacing *float64   `json:"letterSpacing,omitempty"`
	LineSpacing   *float64   `json:"lineSpacing,omitempty"`

	UseGradient    *bool      `json:"useGradient,omitempty"`
	GradientColors *[2]string `json:"gradientColors,omitempty"`
	GradientAngle  *float64   `json:"gradientAngle,omitempty"`

	UseBackground     *bool    `json:"useBackground,omitempty"`
	BackgroundColor   *string  `json:"backgroundColor,omitempty"`
	BackgroundOpacity *float64 `json:"backgroundOpacity,omitempty"`
	BackgroundPadding *float64 `json:"backgroundPadding,omitempty"`
}

// HeadlineOverride is a sparse HeadlineSettings. A non-nil Rows slice
// replaces the base rows wholesale: the result has exactly len(Rows)
// entries, each grounded on the corresponding base row (or the last base
// row when the override is longer) so every field stays concrete.
type HeadlineOverride struct {
	Rows             []TextOverride    `json:"rows,omitempty"`
	VerticalPosition *VerticalPosition `json:"verticalPosition,omitempty"`
	LineSpacing      *float64          `json:"lineSpacing,omitempty"`
}

// SubheadlineOverride is a sparse SubheadlineSettings.
type SubheadlineOverride struct {
	TextOverride
	VerticalPosition *VerticalPosition `json:"verticalPosition,omitempty"`
}

// CTAOverride is a sparse CTAButton. A non-nil Icons slice replaces the
// base icons wholesale.
type CTAOverride struct {
	Enabled          *bool             `json:"enabled,omitempty"`
	Text             *string           `json:"text,omitempty"`
	Icons            []CTAIcon         `json:"icons,omitempty"`
	HorizontalAlign  *TextAlign        `json:"horizontalAlign,omitempty"`
	VerticalPosition *VerticalPosition `json:"verticalPosition,omitempty"`
	Color            *string           `json:"color,omitempty"`
	UseGradient      *bool             `json:"useGradient,omitempty"`
	GradientColors   *[2]string        `json:"gradientColors,omitempty"`
	GradientAngle    *float64          `json:"gradientAngle,omitempty"`
	TextColor        *string           `json:"textColor,omitempty"`
	FontSize         *float64          `json:"fontSize,omitempty"`
	PaddingX         *float64          `json:"paddingX,omitempty"`
	PaddingY         *float64          `json:"paddingY,omitempty"`
	BorderRadius     *float64          `json:"borderRadius,omitempty"`
	AutoAdjustColors *bool             `json:"autoAdjustColors,omitempty"`
}

// Override is a sparse Settings, deep-merged onto a base to produce the
// effective design for one image.
type Override struct {
	Headline    *HeadlineOverride    `json:"headline,omitempty"`
	Subheadline *SubheadlineOverride `json:"subheadline,omitempty"`

	AddLogo      *bool         `json:"addLogo,omitempty"`
	LogoPosition *LogoPosition `json:"logoPosition,omitempty"`
	LogoSize     *float64      `json:"logoSize,omitempty"`
	LogoOpacity  *float64      `json:"logoOpacity,omitempty"`

	CTAButton *CTAOverride `json:"ctaButton,omitempty"`
}

// Apply returns base with the override's present fields replacing the
// base values. Neither input is mutated; nested slices in the result are
// fresh copies.
func (o *Override) Apply(base Settings) Settings {
	out := base
	out.Headline.Rows = append([]TextSettings(nil), base.Headline.Rows...)
	out.CTAButton.Icons = append([]CTAIcon(nil), base.CTAButton.Icons...)
	if o == nil {
		return out
	}

	if h := o.Headline; h != nil {
		if h.Rows != nil {
			out.Headline.Rows = applyRows(base.Headline.Rows, h.Rows)
		}
		if h.VerticalPosition != nil {
			out.Headline.VerticalPosition = *h.VerticalPosition
		}
		if h.LineSpacing != nil {
			out.Headline.LineSpacing = *h.LineSpacing
		}
	}

	if s := o.Subheadline; s != nil {
		out.Subheadline.TextSettings = applyText(base.Subheadline.TextSettings, s.TextOverride)
		if s.VerticalPosition != nil {
			out.Subheadline.VerticalPosition = *s.VerticalPosition
		}
	}

	if o.AddLogo != nil {
		out.AddLogo = *o.AddLogo
	}
	if o.LogoPosition != nil {
		out.LogoPosition = *o.LogoPosition
	}
	if o.LogoSize != nil {
		out.LogoSize = *o.LogoSize
	}
	if o.LogoOpacity != nil {
		out.LogoOpacity = *o.LogoOpacity
	}

	if c := o.CTAButton; c != nil {
		out.CTAButton = applyCTA(out.CTAButton, *c)
	}

	return out
}

// applyRows replaces base rows with the override rows. Each override row
// is grounded on the base row at the same index (or the last base row, or
// the template default) so the result is fully concrete.
func applyRows(base []TextSettings, rows []TextOverride) []TextSettings {
	out := make([]TextSettings, len(rows))
	for i, ro := range rows {
		seed := DefaultRowSettings()
		if i < len(base) {
			seed = base[i]
		} else if len(base) > 0 {
			seed = base[len(base)-1]
		}
		out[i] = applyText(seed, ro)
	}
	return out
}

func applyText(base TextSettings, o TextOverride) TextSettings {
	out := base
	if o.FontFamily != nil {
		out.FontFamily = *o.FontFamily
	}
	if o.FontColor != nil {
		out.FontColor = *o.FontColor
	}
	if o.FontSize != nil {
		out.FontSize = *o.FontSize
	}
	if o.TextAlign != nil {
		out.TextAlign = *o.TextAlign
	}
	if o.ShadowColor != nil {
		out.ShadowColor = *o.ShadowColor
	}
	if o.ShadowBlur != nil {
		out.ShadowBlur = *o.ShadowBlur
	}
	if o.StrokeColor != nil {
		out.StrokeColor = *o.StrokeColor
	}
	if o.StrokeWidth != nil {
		out.StrokeWidth = *o.StrokeWidth
	}
	if o.LetterSpacing != nil {
		out.LetterSpacing = *o.LetterSpacing
	}
	if o.LineSpacing != nil {
		out.LineSpacing = *o.LineSpacing
	}
	if o.UseGradient != nil {
		out.UseGradient = *o.UseGradient
	}
	if o.GradientColors != nil {
		out.GradientColors = *o.GradientColors
	}
	if o.GradientAngle != nil {
		out.GradientAngle = *o.GradientAngle
	}
	if o.UseBackground != nil {
		out.UseBackground = *o.UseBackground
	}
	if o.BackgroundColor != nil {
		out.BackgroundColor = *o.BackgroundColor
	}
	if o.BackgroundOpacity != nil {
		out.BackgroundOpacity = *o.BackgroundOpacity
	}
	if o.BackgroundPadding != nil {
		out.BackgroundPadding = *o.BackgroundPadding
	}
	return out
}

func applyCTA(base CTAButton, o CTAOverride) CTAButton {
	out := base
	if o.Enabled != nil {
		out.Enabled = *o.Enabled
	}
	if o.Text != nil {
		out.Text = *o.Text
	}
	if o.Icons != nil {
		out.Icons = append([]CTAIcon(nil), o.Icons...)
		if len(out.Icons) > MaxCTAIcons {
			out.Icons = out.Icons[:MaxCTAIcons]
		}
	}
	if o.HorizontalAlign != nil {
		out.HorizontalAlign = *o.HorizontalAlign
	}
	if o.VerticalPosition != nil {
		out.VerticalPosition = *o.VerticalPosition
	}
	if o.Color != nil {
		out.Color = *o.Color
	}
	if o.UseGradient != nil {
		out.UseGradient = *o.UseGradient
	}
	if o.GradientColors != nil {
		out.GradientColors = *o.GradientColors
	}
	if o.GradientAngle != nil {
		out.GradientAngle = *o.GradientAngle
	}
	if o.TextColor != nil {
		out.TextColor = *o.TextColor
	}
	if o.FontSize != nil {
		out.FontSize = *o.FontSize
	}
	if o.PaddingX != nil {
		out.PaddingX = *o.PaddingX
	}
	if o.PaddingY != nil {
		out.PaddingY = *o.PaddingY
	}
	if o.BorderRadius != nil {
		out.BorderRadius = *o.BorderRadius
	}
	if o.AutoAdjustColors != nil {
		out.AutoAdjustColors = *o.AutoAdjustColors
	}
	return out
}
