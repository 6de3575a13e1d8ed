// analyzer.go — Strategy selection: AI first when requested, grid otherwise.
package layout

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aimagicbox/adcanvas/pkg/design"
	"github.com/aimagicbox/adcanvas/pkg/media"
)

// Analyzer produces design overrides for a background image. It is
// invoked once at generation or upload time, not on every render.
type Analyzer struct {
	Media  *media.Resolver
	Vision *VisionClient // nil disables AI mode
	Log    *slog.Logger
}

func (a *Analyzer) log() *slog.Logger {
	if a.Log != nil {
		return a.Log
	}
	return slog.Default()
}

// Analyze returns a sparse design override for the image at src. With
// useAI set and a vision client configured, the AI service is asked
// first; any AI failure falls back to grid analysis rather than
// propagating. An image that cannot be loaded at all is an error — the
// caller then proceeds with its prior design.
func (a *Analyzer) Analyze(ctx context.Context, src string, useAI bool) (*design.Override, error) {
	if useAI && a.Vision != nil {
		s, err := a.Vision.Analyze(ctx, src)
		if err == nil {
			return s.Override(), nil
		}
		a.log().Warn("vision analysis unavailable, falling back to grid", "error", err)
	}

	img, err := a.Media.Resolve(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("load image for analysis: %w", err)
	}

	s, err := GridAnalyze(img)
	if err != nil {
		return nil, err
	}
	return s.Override(), nil
}
