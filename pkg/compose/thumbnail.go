package compose

import (
	"context"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/aimagicbox/adcanvas/pkg/design"
	"github.com/aimagicbox/adcanvas/pkg/encode"
)

// thumbWidth is the fixed width of gallery thumbnails; height follows
// the project size's aspect ratio.
const thumbWidth = 400

// Thumbnail renders a small preview of the request as a PNG data URI.
// It always returns a usable URI: when the composite fails the caller
// gets the neutral placeholder instead.
func (r *Renderer) Thumbnail(ctx context.Context, size design.ProjectSize, req Request) string {
	h := thumbHeight(size)
	dc := gg.NewContext(thumbWidth, h)
	if err := r.compose(ctx, dc, req); err != nil {
		r.log().Warn("thumbnail render failed, using placeholder",
			"image", req.Image.ID, "error", err)
		return PlaceholderThumbnail(size)
	}
	uri, err := encode.PNGDataURI(dc.Image())
	if err != nil {
		return PlaceholderThumbnail(size)
	}
	return uri
}

// PlaceholderThumbnail returns a dark diagonal-gradient stand-in used
// when a visual has no renderable source yet.
func PlaceholderThumbnail(size design.ProjectSize) string {
	h := thumbHeight(size)
	dc := gg.NewContext(thumbWidth, h)

	grad := gg.NewLinearGradient(0, 0, thumbWidth, float64(h))
	grad.AddColorStop(0, color.NRGBA{R: 0x1e, G: 0x29, B: 0x3b, A: 255})
	grad.AddColorStop(1, color.NRGBA{R: 0x0f, G: 0x17, B: 0x2a, A: 255})
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, thumbWidth, float64(h))
	dc.Fill()

	uri, err := encode.PNGDataURI(dc.Image())
	if err != nil {
		// Encoding an in-memory RGBA canvas cannot realistically fail;
		// return an empty URI rather than panicking if it ever does.
		return ""
	}
	return uri
}

func thumbHeight(size design.ProjectSize) int {
	r := size.Ratio()
	if r <= 0 {
		r = 1
	}
	h := int(thumbWidth * r)
	if h < 1 {
		h = 1
	}
	return h
}
