// Package layout proposes text placement and colors for a background
// image. The default strategy scans a 3×3 brightness grid for the
// "quietest" region — the cell with the lowest luma variance, where
// overlaid text stays legible. An optional AI visual-analysis service can
// be consulted instead; any AI failure silently falls back to the grid.
package layout

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"gonum.org/v1/gonum/stat"

	"github.com/aimagicbox/adcanvas/pkg/design"
	"github.com/aimagicbox/adcanvas/pkg/encode"
)

// analysisWidth is the downscale target for grid analysis. Statistics on
// a 150px-wide image are indistinguishable from full resolution here and
// two orders of magnitude cheaper.
const analysisWidth = 150

// suggestedShadowBlur is applied to all analyzer-suggested text.
const suggestedShadowBlur = 10

// Region is one cell of the 3×3 analysis grid.
type Region struct {
	Row, Col   int // 0-based, row-major
	Brightness float64
	Variance   float64
}

// Suggestion is the outcome of an analysis: where text should go and
// which color polarity keeps it readable.
type Suggestion struct {
	Vertical  design.VerticalPosition
	Align     design.TextAlign
	LightText bool // white text on a dark region
}

// GridAnalyze computes per-region luma statistics and picks the region
// with minimum variance; ties keep the earlier region in row-major order.
func GridAnalyze(img image.Image) (Suggestion, error) {
	small := imaging.Resize(img, analysisWidth, 0, imaging.Lanczos)
	b := small.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return Suggestion{}, fmt.Errorf("image has no pixels")
	}

	regions := regionStats(small)

	best := regions[0]
	for _, r := range regions[1:] {
		if r.Variance < best.Variance {
			best = r
		}
	}

	return Suggestion{
		Vertical:  verticalForRow(best.Row),
		Align:     alignForCol(best.Col),
		LightText: best.Brightness < 128,
	}, nil
}

// regionStats splits img into a 3×3 grid and computes mean and variance
// of per-pixel luma for each cell, in row-major order.
func regionStats(img image.Image) []Region {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	regions := make([]Region, 0, 9)
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			x0 := b.Min.X + col*w/3
			x1 := b.Min.X + (col+1)*w/3
			y0 := b.Min.Y + row*h/3
			y1 := b.Min.Y + (row+1)*h/3

			lumas := make([]float64, 0, (x1-x0)*(y1-y0))
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					lumas = append(lumas, encode.Luma(img.At(x, y)))
				}
			}

			// A cell can be empty when the analysis image is under 3px
			// tall; MeanVariance would yield NaN and poison the minimum
			// search. Such a cell never wins.
			if len(lumas) == 0 {
				regions = append(regions, Region{
					Row:        row,
					Col:        col,
					Brightness: 128,
					Variance:   math.Inf(1),
				})
				continue
			}

			mean, variance := stat.MeanVariance(lumas, nil)
			regions = append(regions, Region{
				Row:        row,
				Col:        col,
				Brightness: mean,
				Variance:   variance,
			})
		}
	}
	return regions
}

func verticalForRow(row int) design.VerticalPosition {
	switch row {
	case 0:
		return design.PositionTop
	case 2:
		return design.PositionBottom
	}
	return design.PositionCenter
}

func alignForCol(col int) design.TextAlign {
	switch col {
	case 0:
		return design.AlignLeft
	case 2:
		return design.AlignRight
	}
	return design.AlignCenter
}

// Override converts a suggestion into a sparse design override: color,
// shadow and alignment for the headline rows and the subheadline, plus
// the suggested vertical anchor. It never enables background boxes.
func (s Suggestion) Override() *design.Override {
	fontColor, shadowColor := "#1a1a1a", "rgba(255, 255, 255, 0.6)"
	if s.LightText {
		fontColor, shadowColor = "#ffffff", "rgba(0, 0, 0, 0.6)"
	}

	blur := float64(suggestedShadowBlur)
	align := s.Align
	vertical := s.Vertical

	row := design.TextOverride{
		FontColor:   &fontColor,
		ShadowColor: &shadowColor,
		ShadowBlur:  &blur,
		TextAlign:   &align,
	}

	return &design.Override{
		Headline: &design.HeadlineOverride{
			Rows:             []design.TextOverride{row},
			VerticalPosition: &vertical,
		},
		Subheadline: &design.SubheadlineOverride{
			TextOverride:     row,
			VerticalPosition: &vertical,
		},
	}
}
