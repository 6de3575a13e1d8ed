package compose

import (
	"context"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/sync/errgroup"

	"github.com/aimagicbox/adcanvas/pkg/design"
	"github.com/aimagicbox/adcanvas/pkg/encode"
)

const (
	ctaIconTimeout = 5 * time.Second
	ctaEdgeMargin  = 0.08 // fraction of canvas height
)

// ctaPalette is the auto-contrast color pair applied when the button
// overlaps a region too close in brightness to the configured colors.
type ctaPalette struct {
	fill color.NRGBA
	text color.NRGBA
}

var (
	ctaDarkPalette  = ctaPalette{fill: color.NRGBA{R: 0x1f, G: 0x29, B: 0x37, A: 255}, text: color.NRGBA{R: 0xf9, G: 0xfa, B: 0xfb, A: 255}}
	ctaLightPalette = ctaPalette{fill: color.NRGBA{R: 255, G: 255, B: 255, A: 255}, text: color.NRGBA{R: 0x11, G: 0x18, B: 0x27, A: 255}}
)

// drawCTA paints the call-to-action button with its icons. Icons load
// concurrently with an individual timeout each; a failed icon is dropped
// and the button renders without it.
func (r *Renderer) drawCTA(ctx context.Context, dc *gg.Context, btn design.CTAButton, w, h float64) error {
	scale := baseScale(w)

	size := btn.FontSize * scale
	face, err := r.Fonts.Face("sans-bold", size)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)

	icons := r.loadIcons(ctx, btn.Icons)
	if ctx.Err() != nil {
		return ctx.Err()
	}

	iconH := 20 * scale
	iconGap := 8 * scale
	var before, after []image.Image
	var beforeW, afterW float64
	for i, ic := range icons {
		if ic == nil {
			continue
		}
		b := ic.Bounds()
		iw := iconH * float64(b.Dx()) / float64(b.Dy())
		resized := imaging.Resize(ic, int(math.Round(iw)), int(math.Round(iconH)), imaging.Lanczos)
		if btn.Icons[i].Position == design.IconAfter {
			after = append(after, resized)
			afterW += iw + iconGap
		} else {
			before = append(before, resized)
			beforeW += iw + iconGap
		}
	}

	textW, textH := dc.MeasureString(btn.Text)
	contentW := beforeW + textW + afterW
	contentH := math.Max(textH, iconH)

	padX := btn.PaddingX * scale
	padY := btn.PaddingY * scale
	btnW := contentW + 2*padX
	btnH := contentH + 2*padY

	m := ctaEdgeMargin * h
	var x float64
	switch btn.HorizontalAlign {
	case design.AlignLeft:
		x = m
	case design.AlignRight:
		x = w - m - btnW
	default:
		x = (w - btnW) / 2
	}
	var y float64
	switch btn.VerticalPosition {
	case design.PositionTop:
		y = m
	case design.PositionBottom:
		y = h - m - btnH
	default: // middle
		y = (h - btnH) / 2
	}

	fill := encode.ParseColorDefault(btn.Color, color.NRGBA{R: 0x25, G: 0x63, B: 0xeb, A: 255})
	textCol := encode.ParseColorDefault(btn.TextColor, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	useGradient := btn.UseGradient

	if btn.AutoAdjustColors {
		// Sample the composited pixel under the button center; a bright
		// backdrop gets the light palette, a dark one the dark palette.
		if p, ok := samplePixel(dc.Image(), x+btnW/2, y+btnH/2); ok {
			if encode.Luma(p) >= 128 {
				fill, textCol = ctaLightPalette.fill, ctaLightPalette.text
			} else {
				fill, textCol = ctaDarkPalette.fill, ctaDarkPalette.text
			}
			useGradient = false
		}
	}

	radius := math.Min(btn.BorderRadius*scale, btnH/2)

	// Drop shadow under the pill.
	dc.SetColor(color.NRGBA{A: 64})
	dc.DrawRoundedRectangle(x, y+2*scale, btnW, btnH, radius)
	dc.Fill()

	if useGradient {
		from := encode.ParseColorDefault(btn.GradientColors[0], fill)
		to := encode.ParseColorDefault(btn.GradientColors[1], fill)
		angle := btn.GradientAngle * math.Pi / 180
		cx, cy := x+btnW/2, y+btnH/2
		half := math.Max(btnW, btnH) / 2
		grad := gg.NewLinearGradient(
			cx-math.Cos(angle)*half, cy-math.Sin(angle)*half,
			cx+math.Cos(angle)*half, cy+math.Sin(angle)*half)
		grad.AddColorStop(0, from)
		grad.AddColorStop(1, to)
		dc.SetFillStyle(grad)
	} else {
		dc.SetColor(fill)
	}
	dc.DrawRoundedRectangle(x, y, btnW, btnH, radius)
	dc.Fill()

	// Content flows left to right: leading icons, text, trailing icons.
	cursor := x + padX
	midY := y + btnH/2
	for _, ic := range before {
		dc.DrawImage(ic, int(math.Round(cursor)), int(math.Round(midY-iconH/2)))
		cursor += float64(ic.Bounds().Dx()) + iconGap
	}
	dc.SetFontFace(face)
	dc.SetColor(textCol)
	dc.DrawStringAnchored(btn.Text, cursor, midY, 0, 0.35)
	cursor += textW
	for _, ic := range after {
		cursor += iconGap
		dc.DrawImage(ic, int(math.Round(cursor)), int(math.Round(midY-iconH/2)))
		cursor += float64(ic.Bounds().Dx())
	}
	return nil
}

// loadIcons resolves all icons concurrently, each under its own timeout.
// The result has one slot per input icon; failures leave a nil slot.
func (r *Renderer) loadIcons(ctx context.Context, icons []design.CTAIcon) []image.Image {
	out := make([]image.Image, len(icons))
	g, gctx := errgroup.WithContext(ctx)
	for i, ic := range icons {
		if ic.DataURL == "" {
			continue
		}
		i, ic := i, ic
		g.Go(func() error {
			ictx, cancel := context.WithTimeout(gctx, ctaIconTimeout)
			defer cancel()
			img, err := r.Media.Resolve(ictx, ic.DataURL)
			if err != nil {
				r.log().Warn("cta icon unavailable, skipping",
					"icon", ic.ID, "error", err)
				return nil
			}
			out[i] = img
			return nil
		})
	}
	_ = g.Wait() // goroutines never return errors; Wait just joins them
	return out
}

// samplePixel reads the pixel at (x, y), reporting false when the point
// is outside the image.
func samplePixel(img image.Image, x, y float64) (color.Color, bool) {
	b := img.Bounds()
	px, py := int(x), int(y)
	if px < b.Min.X || px >= b.Max.X || py < b.Min.Y || py >= b.Max.Y {
		return nil, false
	}
	return img.At(px, py), true
}
