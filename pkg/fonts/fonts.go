// Package fonts manages font faces for the compositor: a set of embedded
// Go fonts keyed by family name, optional user-registered TTF fonts, and
// a size-keyed face cache so repeated renders do not re-rasterize faces.
package fonts

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// faceProvider builds a font.Face at a given size. Embedded fonts use
// x/image/opentype; user-registered TTFs use freetype/truetype.
type faceProvider interface {
	face(size float64) (font.Face, error)
}

type opentypeProvider struct {
	parsed *opentype.Font
}

func (p *opentypeProvider) face(size float64) (font.Face, error) {
	return opentype.NewFace(p.parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

type truetypeProvider struct {
	parsed *truetype.Font
}

func (p *truetypeProvider) face(size float64) (font.Face, error) {
	return truetype.NewFace(p.parsed, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

type faceKey struct {
	family string
	size   float64
}

// Manager resolves family names to cached font faces. The zero value is
// not usable; construct with NewManager. All methods are safe for
// concurrent use.
type Manager struct {
	mu        sync.Mutex
	providers map[string]faceProvider
	faces     map[faceKey]font.Face
}

// DefaultFamily is used when a family name is empty or unknown.
const DefaultFamily = "sans"

// NewManager creates a manager with the embedded Go font families:
// "sans" (plus aliases "" and "sans-serif"), "sans-bold", "italic" and
// "mono".
func NewManager() (*Manager, error) {
	m := &Manager{
		providers: make(map[string]faceProvider),
		faces:     make(map[faceKey]font.Face),
	}

	embedded := map[string][]byte{
		"sans":      goregular.TTF,
		"sans-bold": gobold.TTF,
		"italic":    goitalic.TTF,
		"mono":      gomono.TTF,
	}
	for name, data := range embedded {
		parsed, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse embedded font %s: %w", name, err)
		}
		m.providers[name] = &opentypeProvider{parsed: parsed}
	}

	return m, nil
}

// Register adds a custom TTF under the given family name, replacing any
// existing registration. Cached faces for that family are discarded.
func (m *Manager) Register(family string, ttf []byte) error {
	parsed, err := truetype.Parse(ttf)
	if err != nil {
		return fmt.Errorf("parse font %s: %w", family, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.providers[family] = &truetypeProvider{parsed: parsed}
	for key := range m.faces {
		if key.family == family {
			delete(m.faces, key)
		}
	}
	return nil
}

// Face returns a cached face for the family at the given size. Unknown
// families fall back to DefaultFamily rather than failing the render.
func (m *Manager) Face(family string, size float64) (font.Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("font size %v out of range", size)
	}
	family = canonicalFamily(family)

	m.mu.Lock()
	defer m.mu.Unlock()

	key := faceKey{family: family, size: size}
	if f, ok := m.faces[key]; ok {
		return f, nil
	}

	p, ok := m.providers[family]
	if !ok {
		p = m.providers[DefaultFamily]
		key.family = DefaultFamily
		if f, ok := m.faces[key]; ok {
			return f, nil
		}
	}

	f, err := p.face(size)
	if err != nil {
		return nil, fmt.Errorf("create face %s@%v: %w", key.family, size, err)
	}
	m.faces[key] = f
	return f, nil
}

// Families lists the registered family names.
func (m *Manager) Families() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.providers))
	for name := range m.providers {
		names = append(names, name)
	}
	return names
}

// canonicalFamily maps web-style aliases onto registered family names.
func canonicalFamily(family string) string {
	switch family {
	case "", "sans-serif", "Arial", "Helvetica":
		return "sans"
	case "bold":
		return "sans-bold"
	case "monospace":
		return "mono"
	}
	return family
}
