// Package design defines the campaign data model and the settings that
// drive canvas composition: per-text-block styling, logo placement, CTA
// button configuration, and the merge rules that resolve a fully-populated
// "effective design" for any given image.
package design

// VerticalPosition anchors a text block or button vertically on the canvas.
type VerticalPosition string

const (
	PositionTop    VerticalPosition = "top"
	PositionCenter VerticalPosition = "center"
	PositionMiddle VerticalPosition = "middle" // CTA button alias for center
	PositionBottom VerticalPosition = "bottom"
)

// TextAlign sets the horizontal anchor for text and buttons.
type TextAlign string

const (
	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
	AlignRight  TextAlign = "right"
)

// LogoPosition names the corner or edge a logo is anchored to.
type LogoPosition string

const (
	LogoTopLeft      LogoPosition = "top-left"
	LogoTopRight     LogoPosition = "top-right"
	LogoBottomLeft   LogoPosition = "bottom-left"
	LogoBottomRight  LogoPosition = "bottom-right"
	LogoBottomCenter LogoPosition = "bottom-center"
	LogoCenter       LogoPosition = "center"
)

// Plan is the user's subscription tier. Starter renders carry a watermark.
type Plan string

const (
	PlanStarter   Plan = "Starter"
	PlanCreator   Plan = "Creator"
	PlanProFusion Plan = "ProFusion"
)

// TextSettings is the fully-resolved styling of one text block. After
// canonicalization every field holds a concrete value, so rendering code
// never needs fallback defaulting.
type TextSettings struct {
	FontFamily    string    `json:"fontFamily"`
	FontColor     string    `json:"fontColor"`
	FontSize      float64   `json:"fontSize"`
	TextAlign     TextAlign `json:"textAlign"`
	ShadowColor   string    `json:"shadowColor"`
	ShadowBlur    float64   `json:"shadowBlur"`
	StrokeColor   string    `json:"strokeColor"`
	StrokeWidth   float64   `json:"strokeWidth"`
	LetterSpacing float64   `json:"letterSpacing"`
	LineSpacing   float64   `json:"lineSpacing"` // subheadline only

	UseGradient    bool      `json:"useGradient"`
	GradientColors [2]string `json:"gradientColors"`
	GradientAngle  float64   `json:"gradientAngle"` // degrees

	UseBackground     bool    `json:"useBackground"`
	BackgroundColor   string  `json:"backgroundColor"`
	BackgroundOpacity float64 `json:"backgroundOpacity"` // 0–1
	BackgroundPadding float64 `json:"backgroundPadding"` // px at reference width
}

// HeadlineSettings styles the multi-row headline block. Rows holds one
// TextSettings per newline-delimited headline row; a row index past the
// configured rows falls back to the last configured row.
type HeadlineSettings struct {
	Rows             []TextSettings   `json:"rows"`
	VerticalPosition VerticalPosition `json:"verticalPosition"`
	LineSpacing      float64          `json:"lineSpacing"` // row gap multiplier
}

// SubheadlineSettings styles the single subheadline block.
type SubheadlineSettings struct {
	TextSettings
	VerticalPosition VerticalPosition `json:"verticalPosition"`
}

// IconPosition places a CTA icon before or after the button text.
type IconPosition string

const (
	IconBefore IconPosition = "before"
	IconAfter  IconPosition = "after"
)

// CTAIcon is one icon attached to the CTA button.
type CTAIcon struct {
	ID       string       `json:"id"`
	DataURL  string       `json:"dataUrl"`
	Position IconPosition `json:"position"`
}

// MaxCTAIcons caps the number of icons a CTA button may carry.
const MaxCTAIcons = 4

// CTAButton configures the optional call-to-action button.
type CTAButton struct {
	Enabled          bool             `json:"enabled"`
	Text             string           `json:"text"`
	Icons            []CTAIcon        `json:"icons"`
	HorizontalAlign  TextAlign        `json:"horizontalAlign"`
	VerticalPosition VerticalPosition `json:"verticalPosition"` // top, middle, bottom
	Color            string           `json:"color"`
	UseGradient      bool             `json:"useGradient"`
	GradientColors   [2]string        `json:"gradientColors"`
	GradientAngle    float64          `json:"gradientAngle"`
	TextColor        string           `json:"textColor"`
	FontSize         float64          `json:"fontSize"`
	PaddingX         float64          `json:"paddingX"`
	PaddingY         float64          `json:"paddingY"`
	BorderRadius     float64          `json:"borderRadius"`
	AutoAdjustColors bool             `json:"autoAdjustColors"`
}

// Settings is the canonical, always-fully-populated composition
// configuration. Produce one via Canonical() or by applying an Override
// to an existing Settings; never construct a partial value by hand.
type Settings struct {
	Headline    HeadlineSettings    `json:"headline"`
	Subheadline SubheadlineSettings `json:"subheadline"`

	AddLogo      bool         `json:"addLogo"`
	LogoPosition LogoPosition `json:"logoPosition"`
	LogoSize     float64      `json:"logoSize"`    // 50–150 percent
	LogoOpacity  float64      `json:"logoOpacity"` // 0–1

	CTAButton CTAButton `json:"ctaButton"`
}

// MaxLogos caps the number of logos in a brand kit.
const MaxLogos = 3

// Logo is one brand logo, supplied as a data URL.
type Logo struct {
	Name    string `json:"name"`
	DataURL string `json:"dataUrl"`
}

// BrandAssets is the read-only brand kit consumed by the renderer.
type BrandAssets struct {
	Logos            []Logo `json:"logos"`
	PrimaryLogoIndex int    `json:"primaryLogoIndex"`
}

// PrimaryLogo returns the primary logo, or false when the kit has none
// or the index is out of range.
func (b BrandAssets) PrimaryLogo() (Logo, bool) {
	if b.PrimaryLogoIndex < 0 || b.PrimaryLogoIndex >= len(b.Logos) {
		return Logo{}, false
	}
	return b.Logos[b.PrimaryLogoIndex], true
}

// CampaignImage is one generated or uploaded visual. The renderer treats
// it as read-only; design adjustments happen through the merge utility.
type CampaignImage struct {
	ID               string    `json:"id"`
	Src              string    `json:"src"`
	Design           *Override `json:"design,omitempty"`
	OriginalImageURL string    `json:"originalImageUrl,omitempty"`
	IsSaved          bool      `json:"isSaved"`
	IsVideo          bool      `json:"isVideo"`
}

// Campaign is a named set of marketing copy plus its generated visuals.
// Headline may contain explicit newline-separated rows.
type Campaign struct {
	Name        string          `json:"name"`
	Headline    string          `json:"headline"`
	Subheadline string          `json:"subheadline"`
	Description string          `json:"description"`
	Hashtags    []string        `json:"hashtags"`
	Images      []CampaignImage `json:"images"`
}
