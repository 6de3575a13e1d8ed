// geometry.go — Numeric layout policies: reference-width scaling, vertical
// anchoring, collision resolution, and logo placement.
package compose

import (
	"math"

	"github.com/aimagicbox/adcanvas/pkg/design"
)

// referenceWidth is the canvas width all font sizes and spacings are
// authored against; larger canvases scale proportionally.
const referenceWidth = 480

// textSideMargin is the horizontal margin fraction reserved on each side
// of a text block.
const textSideMargin = 0.05

// edgeMarginFrac keeps text blocks at least this fraction of the canvas
// height away from the top and bottom edges.
const edgeMarginFrac = 0.05

// baseScale returns the reference-width normalization factor.
func baseScale(canvasWidth float64) float64 {
	return canvasWidth / referenceWidth
}

// rowGap is the extra spacing between headline rows, derived from the
// configured line spacing relative to the 1.2 baseline.
func rowGap(lineSpacing, scale float64) float64 {
	return (lineSpacing - 1.2) * 20 * scale
}

// yForPosition computes the top Y of a text block anchored at pos.
// Landscape canvases (w/h > 1.2) use slightly wider top/bottom margins
// (12%/88%) than portrait or square ones (10%/90%).
func yForPosition(pos design.VerticalPosition, blockHeight, w, h float64) float64 {
	topFrac, bottomFrac := 0.10, 0.90
	if w/h > 1.2 {
		topFrac, bottomFrac = 0.12, 0.88
	}

	switch pos {
	case design.PositionTop:
		return math.Max(edgeMarginFrac*h, topFrac*h)
	case design.PositionBottom:
		return math.Min(bottomFrac*h-blockHeight, h-blockHeight-edgeMarginFrac*h)
	default: // center / middle
		return (h - blockHeight) / 2
	}
}

// resolveCollision stacks the headline and subheadline blocks when both
// target the same vertical anchor. Both bottom: the headline shifts up to
// clear the subheadline. Both top or center: the subheadline shifts down
// below the headline. Distinct anchors render independently. Returns the
// adjusted top Y of each block.
func resolveCollision(hPos, sPos design.VerticalPosition, hy, hHeight, sy, sHeight, gap float64) (float64, float64) {
	if hPos != sPos {
		return hy, sy
	}
	if hPos == design.PositionBottom {
		return hy - (sHeight + 2*gap), sy
	}
	return hy, hy + hHeight + 2*gap
}

// logoRect places a logo with natural dimensions naturalW×naturalH on a
// w×h canvas. Width is canvas/8 scaled by sizePct; height follows the
// logo's own aspect ratio so it never distorts. A uniform margin of 4% of
// the canvas width separates it from the anchored edges.
func logoRect(pos design.LogoPosition, naturalW, naturalH, w, h, sizePct float64) (x, y, lw, lh float64) {
	lw = w / 8 * sizePct / 100
	if naturalW > 0 {
		lh = lw * naturalH / naturalW
	} else {
		lh = lw
	}

	margin := 0.04 * w
	switch pos {
	case design.LogoTopLeft:
		x, y = margin, margin
	case design.LogoTopRight:
		x, y = w-margin-lw, margin
	case design.LogoBottomLeft:
		x, y = margin, h-margin-lh
	case design.LogoBottomRight:
		x, y = w-margin-lw, h-margin-lh
	case design.LogoBottomCenter:
		x, y = (w-lw)/2, h-margin-lh
	case design.LogoCenter:
		x, y = (w-lw)/2, (h-lh)/2
	default:
		x, y = w-margin-lw, margin
	}
	return x, y, lw, lh
}

// anchorX returns the horizontal anchor point and gg anchor fraction for
// a text alignment on a w-wide canvas.
func anchorX(align design.TextAlign, w float64) (x, ax float64) {
	switch align {
	case design.AlignLeft:
		return textSideMargin * w, 0
	case design.AlignRight:
		return w - textSideMargin*w, 1
	default:
		return w / 2, 0.5
	}
}
