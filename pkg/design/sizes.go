package design

import "fmt"

// ProjectSize names an output canvas format.
type ProjectSize struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Ratio returns height/width, used to derive thumbnail heights.
func (s ProjectSize) Ratio() float64 {
	if s.Width == 0 {
		return 1
	}
	return float64(s.Height) / float64(s.Width)
}

// Sizes maps preset names to canvas dimensions.
var Sizes = map[string]ProjectSize{
	"square":          {"square", 1080, 1080},
	"portrait":        {"portrait", 1080, 1350},
	"story":           {"story", 1080, 1920},
	"landscape":       {"landscape", 1200, 628},
	"youtube_thumb":   {"youtube_thumb", 1280, 720},
	"pinterest":       {"pinterest", 1000, 1500},
	"twitter_post":    {"twitter_post", 1600, 900},
	"linkedin_banner": {"linkedin_banner", 1584, 396},
}

// SizeByName resolves a preset name, falling back to custom dimensions
// when width and height are given explicitly.
func SizeByName(name string, width, height int) (ProjectSize, error) {
	if s, ok := Sizes[name]; ok {
		return s, nil
	}
	if width > 0 && height > 0 {
		return ProjectSize{Name: "custom", Width: width, Height: height}, nil
	}
	return ProjectSize{}, fmt.Errorf("unknown project size %q", name)
}
