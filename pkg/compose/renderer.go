// Package compose renders finished marketing visuals: it layers a source
// image, vignette, brand logo, headline and subheadline text blocks, a CTA
// button, and a plan-gated watermark onto a canvas of the requested size.
package compose

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/aimagicbox/adcanvas/pkg/design"
	"github.com/aimagicbox/adcanvas/pkg/fonts"
	"github.com/aimagicbox/adcanvas/pkg/media"
)

const (
	watermarkText      = "Made with AI Magic Box"
	watermarkAlpha     = 0.15
	watermarkSizeFrac  = 0.035
	watermarkMinSize   = 10.0
	watermarkMargin    = 0.025
	placeholderMessage = "Error loading image"
)

// Request carries everything one render needs. Campaign supplies the
// copy, Design the fully-resolved settings, Brand the logo kit, and Plan
// decides whether the watermark is stamped.
type Request struct {
	Image    design.CampaignImage
	Campaign design.Campaign
	Design   design.Settings
	Brand    design.BrandAssets
	Plan     design.Plan
}

// Renderer composes canvases. Safe for concurrent use: all mutable state
// lives in per-call gg contexts.
type Renderer struct {
	Fonts *fonts.Manager
	Media *media.Resolver
	Log   *slog.Logger
}

// New returns a Renderer using the given font manager and media resolver.
func New(fm *fonts.Manager, mr *media.Resolver, log *slog.Logger) *Renderer {
	return &Renderer{Fonts: fm, Media: mr, Log: log}
}

func (r *Renderer) log() *slog.Logger {
	if r.Log != nil {
		return r.Log
	}
	return slog.Default()
}

// Render composes the request onto a fresh width×height canvas. It never
// fails: any internal error paints the error placeholder instead, so
// callers always receive a drawable image. A canceled context returns the
// canvas as-is, since the result is about to be discarded anyway.
func (r *Renderer) Render(ctx context.Context, width, height int, req Request) image.Image {
	dc := gg.NewContext(width, height)
	r.RenderTo(ctx, dc, req)
	return dc.Image()
}

// RenderTo composes the request onto an existing context.
func (r *Renderer) RenderTo(ctx context.Context, dc *gg.Context, req Request) {
	if err := r.compose(ctx, dc, req); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		r.log().Warn("render failed, drawing placeholder",
			"image", req.Image.ID, "error", err)
		r.drawErrorPlaceholder(dc)
	}
}

// compose runs the full layer stack bottom-up: background, vignette,
// logo, watermark, headline, subheadline, CTA button.
func (r *Renderer) compose(ctx context.Context, dc *gg.Context, req Request) error {
	w := float64(dc.Width())
	h := float64(dc.Height())

	bg, err := r.Media.Resolve(ctx, req.Image.Src)
	if err != nil {
		return fmt.Errorf("background: %w", err)
	}

	// Logo failures degrade to a logo-less render rather than killing
	// the composite.
	var logo image.Image
	if req.Design.AddLogo {
		if primary, ok := req.Brand.PrimaryLogo(); ok {
			logo, err = r.Media.Resolve(ctx, primary.DataURL)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				r.log().Warn("logo unavailable, skipping",
					"logo", primary.Name, "error", err)
				logo = nil
			}
		}
	}

	fitted := imaging.Fill(bg, dc.Width(), dc.Height(), imaging.Center, imaging.Lanczos)
	dc.DrawImage(fitted, 0, 0)

	r.drawVignette(dc, w, h)

	if logo != nil {
		r.drawLogo(dc, logo, req.Design, w, h)
	}

	if req.Plan == design.PlanStarter {
		if err := r.drawWatermark(dc, w, h); err != nil {
			return fmt.Errorf("watermark: %w", err)
		}
	}

	if err := r.drawCopy(dc, req, w, h); err != nil {
		return err
	}

	if req.Design.CTAButton.Enabled && req.Design.CTAButton.Text != "" {
		if err := r.drawCTA(ctx, dc, req.Design.CTAButton, w, h); err != nil {
			return fmt.Errorf("cta: %w", err)
		}
	}
	return ctx.Err()
}

// drawCopy lays out and paints the headline rows and the subheadline,
// resolving vertical collisions between the two blocks.
func (r *Renderer) drawCopy(dc *gg.Context, req Request, w, h float64) error {
	scale := baseScale(w)
	hl := req.Design.Headline
	gap := rowGap(hl.LineSpacing, scale)

	rows := design.HeadlineRows(req.Campaign.Headline)
	blocks := make([]textBlock, 0, len(rows))
	var headH float64
	for i, row := range rows {
		ts := design.RowSettings(hl, i, design.DefaultRowSettings())
		b, err := r.planBlock(dc, ts, row, w, true)
		if err != nil {
			return fmt.Errorf("headline row %d: %w", i, err)
		}
		blocks = append(blocks, b)
		headH += b.height
	}
	if len(blocks) > 1 {
		headH += gap * float64(len(blocks)-1)
	}

	var sub textBlock
	if req.Campaign.Subheadline != "" {
		var err error
		sub, err = r.planBlock(dc, req.Design.Subheadline.TextSettings, req.Campaign.Subheadline, w, false)
		if err != nil {
			return fmt.Errorf("subheadline: %w", err)
		}
	}

	hy := yForPosition(hl.VerticalPosition, headH, w, h)
	sy := yForPosition(req.Design.Subheadline.VerticalPosition, sub.height, w, h)
	if headH > 0 && sub.height > 0 {
		hy, sy = resolveCollision(hl.VerticalPosition, req.Design.Subheadline.VerticalPosition,
			hy, headH, sy, sub.height, gap)
	}

	y := hy
	for _, b := range blocks {
		r.drawBlock(dc, b, y, w)
		y += b.height + gap
	}
	if sub.height > 0 {
		r.drawBlock(dc, sub, sy, w)
	}
	return nil
}

// drawVignette darkens the top and bottom of the canvas so light text
// stays readable over busy photography: 50% black at the top edge,
// transparent at mid-height, 60% black at the bottom edge.
func (r *Renderer) drawVignette(dc *gg.Context, w, h float64) {
	grad := gg.NewLinearGradient(0, 0, 0, h)
	grad.AddColorStop(0, color.NRGBA{A: 128})
	grad.AddColorStop(0.5, color.NRGBA{})
	grad.AddColorStop(1, color.NRGBA{A: 153})
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()
}

// drawLogo scales the logo to canvasWidth/8 adjusted by the configured
// size percentage, preserving its aspect ratio, and composites it at the
// configured anchor with the configured opacity.
func (r *Renderer) drawLogo(dc *gg.Context, logo image.Image, s design.Settings, w, h float64) {
	nb := logo.Bounds()
	x, y, lw, lh := logoRect(s.LogoPosition, float64(nb.Dx()), float64(nb.Dy()), w, h, s.LogoSize)
	if lw < 1 || lh < 1 {
		return
	}

	resized := imaging.Resize(logo, int(math.Round(lw)), int(math.Round(lh)), imaging.Lanczos)
	if s.LogoOpacity > 0 && s.LogoOpacity < 1 {
		resized = fadeImage(resized, s.LogoOpacity)
	}
	dc.DrawImage(resized, int(math.Round(x)), int(math.Round(y)))
}

// drawWatermark stamps the plan watermark in the bottom-right corner at
// 15% opacity, 3.5% of the canvas width with a 10px floor.
func (r *Renderer) drawWatermark(dc *gg.Context, w, h float64) error {
	size := math.Max(watermarkMinSize, watermarkSizeFrac*w)
	face, err := r.Fonts.Face(fonts.DefaultFamily, size)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)

	m := watermarkMargin * w
	x, y := w-m, h-m
	alpha := watermarkAlpha * 255.0
	dc.SetColor(color.NRGBA{A: uint8(alpha * 0.6)})
	dc.DrawStringAnchored(watermarkText, x+1, y+1, 1, 1)
	dc.SetColor(color.NRGBA{R: 255, G: 255, B: 255, A: uint8(alpha)})
	dc.DrawStringAnchored(watermarkText, x, y, 1, 1)
	return nil
}

// drawErrorPlaceholder replaces whatever was drawn with a red canvas and
// a centered failure message.
func (r *Renderer) drawErrorPlaceholder(dc *gg.Context) {
	w := float64(dc.Width())
	h := float64(dc.Height())

	dc.SetColor(color.NRGBA{R: 204, A: 255})
	dc.Clear()

	size := math.Max(14, 0.05*w)
	face, err := r.Fonts.Face(fonts.DefaultFamily, size)
	if err != nil {
		return
	}
	dc.SetFontFace(face)
	dc.SetColor(color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	dc.DrawStringAnchored(placeholderMessage, w/2, h/2, 0.5, 0.5)
}

// fadeImage returns a copy of img with every pixel's alpha scaled by
// opacity.
func fadeImage(img *image.NRGBA, opacity float64) *image.NRGBA {
	out := imaging.Clone(img)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = uint8(float64(out.Pix[i]) * opacity)
	}
	return out
}
