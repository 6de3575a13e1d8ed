package compose

import (
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/aimagicbox/adcanvas/pkg/design"
	"github.com/aimagicbox/adcanvas/pkg/encode"
	"github.com/aimagicbox/adcanvas/pkg/text"
)

// textBlock is a fully measured run of wrapped lines ready to draw.
type textBlock struct {
	lines      []string
	face       font.Face
	settings   design.TextSettings
	fontSize   float64 // scaled pixels
	lineHeight float64 // pixels
	height     float64
	cjk        bool
	tracking   float64 // letter spacing in pixels, 0 for CJK
}

// planBlock wraps content within the canvas text area and resolves the
// effective font size, applying the CJK pre-shrink when the content is
// ideographic. headline selects the headline line-height policy;
// otherwise the subheadline policy applies.
func (r *Renderer) planBlock(dc *gg.Context, ts design.TextSettings, content string, canvasW float64, headline bool) (textBlock, error) {
	maxWidth := canvasW * (1 - 2*textSideMargin)
	scale := baseScale(canvasW)
	base := ts.FontSize * scale

	measure := func(size float64, s string) float64 {
		face, err := r.Fonts.Face(ts.FontFamily, size)
		if err != nil {
			return 0
		}
		dc.SetFontFace(face)
		w, _ := dc.MeasureString(s)
		return w
	}

	cjk := text.IsCJKText(content)
	size := text.CJKAdjustedFontSize(measure, content, base, maxWidth)

	face, err := r.Fonts.Face(ts.FontFamily, size)
	if err != nil {
		return textBlock{}, err
	}
	dc.SetFontFace(face)
	lines := text.WrapLines(dc, content, maxWidth)

	var mult float64
	if headline {
		mult = text.HeadlineLineHeight(cjk)
	} else {
		mult = text.SubheadlineLineHeight(ts.LineSpacing, cjk)
	}
	lh := size * mult

	tracking := ts.LetterSpacing * scale
	if cjk {
		tracking = 0
	}

	return textBlock{
		lines:      lines,
		face:       face,
		settings:   ts,
		fontSize:   size,
		lineHeight: lh,
		height:     float64(len(lines)) * lh,
		cjk:        cjk,
		tracking:   tracking,
	}, nil
}

// drawBlock paints one text block with its top edge at topY. Layer order
// per line set: background box, shadow, stroke, fill (solid or gradient).
func (r *Renderer) drawBlock(dc *gg.Context, b textBlock, topY, canvasW float64) {
	if len(b.lines) == 0 {
		return
	}
	dc.SetFontFace(b.face)
	scale := baseScale(canvasW)

	if b.settings.UseBackground {
		r.drawBlockBackground(dc, b, topY, canvasW, scale)
	}

	if b.settings.ShadowBlur > 0 {
		shadow := encode.ParseColorDefault(b.settings.ShadowColor, autoShadow(b.settings.FontColor))
		r.drawBlockText(dc, b, topY, canvasW, shadow, b.settings.ShadowBlur*scale/2, 0, 2*scale)
	}
	if b.settings.StrokeWidth > 0 {
		stroke := encode.ParseColorDefault(b.settings.StrokeColor, color.NRGBA{A: 255})
		r.drawBlockText(dc, b, topY, canvasW, stroke, b.settings.StrokeWidth*scale, 0, 0)
	}

	if b.settings.UseGradient {
		r.drawGradientText(dc, b, topY, canvasW)
		return
	}
	fill := encode.ParseColorDefault(b.settings.FontColor, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	r.drawBlockText(dc, b, topY, canvasW, fill, 0, 0, 0)
}

// drawBlockBackground paints a rounded box behind the widest extent of
// the block, honoring the configured padding and opacity.
func (r *Renderer) drawBlockBackground(dc *gg.Context, b textBlock, topY, canvasW, scale float64) {
	var maxW float64
	for _, line := range b.lines {
		maxW = math.Max(maxW, r.lineWidth(dc, b, line))
	}

	pad := b.settings.BackgroundPadding * scale
	boxW := maxW + 2*pad
	boxH := b.height + 2*pad

	ax, frac := anchorX(b.settings.TextAlign, canvasW)
	boxX := ax - frac*maxW - pad
	boxY := topY - pad

	bg := encode.ParseColorDefault(b.settings.BackgroundColor, color.NRGBA{A: 255})
	if b.settings.BackgroundOpacity > 0 && b.settings.BackgroundOpacity < 1 {
		bg = encode.WithAlpha(bg, b.settings.BackgroundOpacity)
	}
	dc.SetColor(bg)
	dc.DrawRoundedRectangle(boxX, boxY, boxW, boxH, 8*scale)
	dc.Fill()
}

// drawBlockText draws every line of the block in a single color. A
// non-zero spread renders a ring of offset copies, which serves both
// soft shadows and outline strokes; dx/dy shift the whole pass.
func (r *Renderer) drawBlockText(dc *gg.Context, b textBlock, topY, canvasW float64, col color.NRGBA, spread, dx, dy float64) {
	dc.SetColor(col)
	for i, line := range b.lines {
		if line == "" {
			continue
		}
		x, ax := anchorX(b.settings.TextAlign, canvasW)
		y := topY + float64(i)*b.lineHeight + b.lineHeight/2
		if spread > 0 {
			for _, off := range ringOffsets(spread) {
				r.drawLine(dc, b, line, x+dx+off[0], y+dy+off[1], ax)
			}
			continue
		}
		r.drawLine(dc, b, line, x+dx, y+dy, ax)
	}
}

// drawGradientText fills the block with a linear gradient. gg's Pop does
// not restore a cleared mask, so the text is rasterized on a scratch
// context, used as a mask on a gradient-filled context, and composited
// back onto the destination.
func (r *Renderer) drawGradientText(dc *gg.Context, b textBlock, topY, canvasW float64) {
	w, h := dc.Width(), dc.Height()

	mask := gg.NewContext(w, h)
	mask.SetFontFace(b.face)
	mask.SetRGB(1, 1, 1)
	for i, line := range b.lines {
		if line == "" {
			continue
		}
		x, ax := anchorX(b.settings.TextAlign, canvasW)
		y := topY + float64(i)*b.lineHeight + b.lineHeight/2
		r.drawLine(mask, b, line, x, y, ax)
	}

	from := encode.ParseColorDefault(b.settings.GradientColors[0], color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	to := encode.ParseColorDefault(b.settings.GradientColors[1], color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	cx, cy := canvasW/2, topY+b.height/2
	angle := b.settings.GradientAngle * math.Pi / 180
	half := math.Max(canvasW, b.height) / 2
	x0, y0 := cx-math.Cos(angle)*half, cy-math.Sin(angle)*half
	x1, y1 := cx+math.Cos(angle)*half, cy+math.Sin(angle)*half

	grad := gg.NewLinearGradient(x0, y0, x1, y1)
	grad.AddColorStop(0, from)
	grad.AddColorStop(1, to)

	fill := gg.NewContext(w, h)
	fill.SetFillStyle(grad)
	if err := fill.SetMask(mask.AsMask()); err != nil {
		// Dimensions always match; fall back to a solid fill of the
		// first stop rather than dropping the text.
		r.drawBlockText(dc, b, topY, canvasW, from, 0, 0, 0)
		return
	}
	fill.DrawRectangle(0, 0, float64(w), float64(h))
	fill.Fill()

	dc.DrawImage(fill.Image(), 0, 0)
}

// drawLine draws a single line at anchor (x, y) with anchor fraction ax,
// vertically centered on y. Tracking spaces runes individually; CJK
// content always renders untracked.
func (r *Renderer) drawLine(dc *gg.Context, b textBlock, line string, x, y, ax float64) {
	if b.tracking <= 0 {
		dc.DrawStringAnchored(line, x, y, ax, 0.35)
		return
	}
	total := r.lineWidth(dc, b, line)
	cx := x - ax*total
	for _, rn := range line {
		s := string(rn)
		w, _ := dc.MeasureString(s)
		dc.DrawStringAnchored(s, cx, y, 0, 0.35)
		cx += w + b.tracking
	}
}

// lineWidth measures a line including letter spacing.
func (r *Renderer) lineWidth(dc *gg.Context, b textBlock, line string) float64 {
	dc.SetFontFace(b.face)
	if b.tracking <= 0 {
		w, _ := dc.MeasureString(line)
		return w
	}
	var total float64
	n := 0
	for _, rn := range line {
		w, _ := dc.MeasureString(string(rn))
		total += w
		n++
	}
	if n > 1 {
		total += b.tracking * float64(n-1)
	}
	return total
}

// autoShadow derives a contrasting shadow from the text's own color:
// light text gets a dark shadow, dark text a light one.
func autoShadow(fontColor string) color.NRGBA {
	c := encode.ParseColorDefault(fontColor, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	if encode.Luma(c) >= 128 {
		return color.NRGBA{A: 153}
	}
	return color.NRGBA{R: 255, G: 255, B: 255, A: 153}
}

// ringOffsets returns eight compass offsets at the given radius plus the
// origin, approximating a soft spread without a true blur kernel.
func ringOffsets(radius float64) [][2]float64 {
	r := math.Max(1, radius)
	d := r * math.Sqrt2 / 2
	return [][2]float64{
		{-r, 0}, {r, 0}, {0, -r}, {0, r},
		{-d, -d}, {d, -d}, {-d, d}, {d, d},
		{0, 0},
	}
}
