package compose

import (
	"context"
	"image"
	"image/color"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/aimagicbox/adcanvas/pkg/design"
	"github.com/aimagicbox/adcanvas/pkg/encode"
	"github.com/aimagicbox/adcanvas/pkg/fonts"
	"github.com/aimagicbox/adcanvas/pkg/media"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	fm, err := fonts.NewManager()
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(fm, &media.Resolver{}, log)
}

func solidURI(t *testing.T, w, h int, c color.NRGBA) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	uri, err := encode.PNGDataURI(img)
	if err != nil {
		t.Fatalf("PNGDataURI: %v", err)
	}
	return uri
}

func baseRequest(t *testing.T) Request {
	t.Helper()
	s := design.Canonical()
	s.CTAButton.Enabled = false
	return Request{
		Image:  design.CampaignImage{ID: "img-1", Src: solidURI(t, 64, 64, color.NRGBA{B: 200, A: 255})},
		Design: s,
		Plan:   design.PlanCreator,
	}
}

func TestYForPosition(t *testing.T) {
	tests := []struct {
		name   string
		pos    design.VerticalPosition
		block  float64
		w, h   float64
		want   float64
	}{
		{"top square", design.PositionTop, 100, 1080, 1080, 108},
		{"top landscape", design.PositionTop, 100, 1200, 628, 75.36},
		{"bottom square", design.PositionBottom, 100, 1080, 1080, 872},
		{"center", design.PositionCenter, 100, 1080, 1080, 490},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := yForPosition(tt.pos, tt.block, tt.w, tt.h)
			if diff := got - tt.want; diff > 0.01 || diff < -0.01 {
				t.Errorf("yForPosition = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRowGap(t *testing.T) {
	if got := rowGap(1.2, 1); got != 0 {
		t.Errorf("baseline line spacing should yield zero gap, got %v", got)
	}
	if got := rowGap(1.5, 2.25); got < 13.4 || got > 13.6 {
		t.Errorf("rowGap(1.5, 2.25) = %v, want 13.5", got)
	}
}

func TestResolveCollision(t *testing.T) {
	const gap = 10.0

	t.Run("distinct anchors untouched", func(t *testing.T) {
		hy, sy := resolveCollision(design.PositionTop, design.PositionBottom, 100, 200, 700, 80, gap)
		if hy != 100 || sy != 700 {
			t.Errorf("got hy=%v sy=%v", hy, sy)
		}
	})
	t.Run("both bottom shifts headline up", func(t *testing.T) {
		// Both anchored to the same bottom edge at y=900.
		hy, sy := resolveCollision(design.PositionBottom, design.PositionBottom, 700, 200, 820, 80, gap)
		if sy != 820 {
			t.Errorf("subheadline moved: sy=%v", sy)
		}
		headBottom := hy + 200
		if sep := sy - headBottom; sep < 2*gap {
			t.Errorf("separation %v, want >= %v", sep, 2*gap)
		}
	})
	t.Run("both top shifts subheadline down", func(t *testing.T) {
		hy, sy := resolveCollision(design.PositionTop, design.PositionTop, 108, 200, 108, 80, gap)
		if hy != 108 {
			t.Errorf("headline moved: hy=%v", hy)
		}
		if sep := sy - (hy + 200); sep < 2*gap {
			t.Errorf("separation %v, want >= %v", sep, 2*gap)
		}
	})
}

func TestLogoRectPreservesAspect(t *testing.T) {
	// A 200x100 logo on a 1080 canvas at 100% size: width 135, height 67.5.
	_, _, lw, lh := logoRect(design.LogoTopLeft, 200, 100, 1080, 1080, 100)
	if lw != 135 {
		t.Errorf("width = %v, want 135", lw)
	}
	if lh != 67.5 {
		t.Errorf("height = %v, want 67.5 (2:1 aspect kept)", lh)
	}

	x, y, _, _ := logoRect(design.LogoBottomRight, 200, 100, 1000, 1000, 100)
	if x != 1000-40-125 || y != 1000-40-62.5 {
		t.Errorf("bottom-right anchor = (%v, %v)", x, y)
	}
}

func TestRenderFailurePaintsPlaceholder(t *testing.T) {
	r := newTestRenderer(t)
	req := baseRequest(t)
	req.Image.Src = "" // nothing to load

	img := r.Render(context.Background(), 200, 200, req)
	c := color.NRGBAModel.Convert(img.At(0, 0)).(color.NRGBA)
	if c.R < 150 || c.G > 40 || c.B > 40 {
		t.Errorf("top-left pixel = %+v, want red placeholder", c)
	}
}

func TestRenderDrawsBackground(t *testing.T) {
	r := newTestRenderer(t)
	req := baseRequest(t)
	req.Campaign = design.Campaign{} // no copy, just the image

	img := r.Render(context.Background(), 200, 200, req)
	c := color.NRGBAModel.Convert(img.At(100, 100)).(color.NRGBA)
	if c.B < 120 || c.B <= c.R {
		t.Errorf("center pixel = %+v, want the blue source to dominate", c)
	}
}

func TestWatermarkOnlyOnStarterPlan(t *testing.T) {
	r := newTestRenderer(t)
	req := baseRequest(t)
	req.Campaign = design.Campaign{}

	req.Plan = design.PlanCreator
	clean := r.Render(context.Background(), 480, 480, req)
	req.Plan = design.PlanStarter
	marked := r.Render(context.Background(), 480, 480, req)

	if countDiff(t, clean, marked) == 0 {
		t.Fatal("Starter render should differ from Creator render (watermark)")
	}
	// The stamp sits in the bottom-right corner; the top-left quadrant
	// must be untouched by it.
	for y := 0; y < 240; y++ {
		for x := 0; x < 240; x++ {
			if clean.At(x, y) != marked.At(x, y) {
				t.Fatalf("watermark leaked into top-left quadrant at (%d, %d)", x, y)
			}
		}
	}

	req.Plan = design.PlanProFusion
	pro := r.Render(context.Background(), 480, 480, req)
	if countDiff(t, clean, pro) != 0 {
		t.Fatal("ProFusion render should match Creator render exactly")
	}
}

func TestRenderWithLogo(t *testing.T) {
	r := newTestRenderer(t)
	req := baseRequest(t)
	req.Campaign = design.Campaign{}
	req.Design.AddLogo = true
	req.Design.LogoPosition = design.LogoTopLeft
	req.Design.LogoSize = 100
	req.Design.LogoOpacity = 1
	req.Brand = design.BrandAssets{
		Logos: []design.Logo{{Name: "acme", DataURL: solidURI(t, 120, 60, color.NRGBA{R: 230, A: 255})}},
	}

	img := r.Render(context.Background(), 480, 480, req)

	// Canvas 480: logo width 60, height 30 (2:1 kept), margin ~19.
	in := color.NRGBAModel.Convert(img.At(49, 34)).(color.NRGBA)
	if in.R < 150 || in.R <= in.B {
		t.Errorf("pixel inside logo = %+v, want red logo fill", in)
	}
	out := color.NRGBAModel.Convert(img.At(49, 70)).(color.NRGBA)
	if out.B <= out.R {
		t.Errorf("pixel below logo = %+v, want blue background", out)
	}
}

func TestRenderLogoFailureDegrades(t *testing.T) {
	r := newTestRenderer(t)
	req := baseRequest(t)
	req.Campaign = design.Campaign{}
	req.Design.AddLogo = true
	req.Brand = design.BrandAssets{
		Logos: []design.Logo{{Name: "broken", DataURL: "data:text/plain;base64,bm9wZQ=="}},
	}

	img := r.Render(context.Background(), 200, 200, req)
	c := color.NRGBAModel.Convert(img.At(100, 100)).(color.NRGBA)
	if c.B < 120 {
		t.Errorf("center pixel = %+v, broken logo must not break the render", c)
	}
}

func TestRenderHeadlineChangesCanvas(t *testing.T) {
	r := newTestRenderer(t)
	req := baseRequest(t)

	req.Campaign = design.Campaign{}
	plain := r.Render(context.Background(), 480, 480, req)

	req.Campaign = design.Campaign{Headline: "Big Summer Sale", Subheadline: "Up to 50% off"}
	design.ReconcileRows(&req.Design, req.Campaign.Headline)
	withCopy := r.Render(context.Background(), 480, 480, req)

	if countDiff(t, plain, withCopy) == 0 {
		t.Fatal("headline and subheadline should paint pixels")
	}
}

func TestRenderCTAChangesCanvas(t *testing.T) {
	r := newTestRenderer(t)
	req := baseRequest(t)
	req.Campaign = design.Campaign{}

	without := r.Render(context.Background(), 480, 480, req)

	req.Design.CTAButton.Enabled = true
	req.Design.CTAButton.AutoAdjustColors = false
	with := r.Render(context.Background(), 480, 480, req)

	if countDiff(t, without, with) == 0 {
		t.Fatal("enabled CTA button should paint pixels")
	}
}

func TestThumbnailSuccess(t *testing.T) {
	r := newTestRenderer(t)
	req := baseRequest(t)
	req.Campaign = design.Campaign{}

	uri := r.Thumbnail(context.Background(), design.Sizes["landscape"], req)
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Fatalf("unexpected prefix: %.40s", uri)
	}

	img := decodeURI(t, uri)
	b := img.Bounds()
	if b.Dx() != 400 || b.Dy() != 209 {
		t.Errorf("thumbnail = %dx%d, want 400x209", b.Dx(), b.Dy())
	}
}

func TestThumbnailFallsBackToPlaceholder(t *testing.T) {
	r := newTestRenderer(t)
	req := baseRequest(t)
	req.Image.Src = ""

	uri := r.Thumbnail(context.Background(), design.Sizes["square"], req)
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Fatalf("placeholder must still be a PNG data URI, got %.40s", uri)
	}
	img := decodeURI(t, uri)
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 400 {
		t.Errorf("placeholder = %dx%d, want 400x400", b.Dx(), b.Dy())
	}
}

func TestSamplePixelBounds(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	if _, ok := samplePixel(img, 5, 5); !ok {
		t.Error("in-bounds sample should succeed")
	}
	if _, ok := samplePixel(img, -1, 5); ok {
		t.Error("out-of-bounds sample should fail")
	}
	if _, ok := samplePixel(img, 5, 10); ok {
		t.Error("sample on the far edge should fail")
	}
}

func countDiff(t *testing.T, a, b image.Image) int {
	t.Helper()
	ab, bb := a.Bounds(), b.Bounds()
	if ab != bb {
		t.Fatalf("bounds differ: %v vs %v", ab, bb)
	}
	n := 0
	for y := ab.Min.Y; y < ab.Max.Y; y++ {
		for x := ab.Min.X; x < ab.Max.X; x++ {
			if a.At(x, y) != b.At(x, y) {
				n++
			}
		}
	}
	return n
}

func decodeURI(t *testing.T, uri string) image.Image {
	t.Helper()
	data, _, err := encode.DecodeDataURI(uri)
	if err != nil {
		t.Fatalf("DecodeDataURI: %v", err)
	}
	img, err := imaging.Decode(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return img
}
