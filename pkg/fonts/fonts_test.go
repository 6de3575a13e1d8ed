package fonts

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestFaceReturnsCachedInstance(t *testing.T) {
	m, err := NewManager()
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	a, err := m.Face("sans", 24)
	if err != nil {
		t.Fatalf("Face: %v", err)
	}
	b, err := m.Face("sans", 24)
	if err != nil {
		t.Fatalf("Face: %v", err)
	}
	if a != b {
		t.Error("same family and size returned distinct faces")
	}

	c, err := m.Face("sans", 25)
	if err != nil {
		t.Fatalf("Face: %v", err)
	}
	if a == c {
		t.Error("different sizes share a face")
	}
}

func TestFaceUnknownFamilyFallsBack(t *testing.T) {
	m, err := NewManager()
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	if _, err := m.Face("Comic Sans", 18); err != nil {
		t.Errorf("unknown family should fall back, got error: %v", err)
	}
}

func TestFaceAliases(t *testing.T) {
	m, err := NewManager()
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	for _, alias := range []string{"", "sans-serif", "Arial", "bold", "monospace"} {
		if _, err := m.Face(alias, 16); err != nil {
			t.Errorf("Face(%q): %v", alias, err)
		}
	}
}

func TestFaceRejectsBadSize(t *testing.T) {
	m, err := NewManager()
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if _, err := m.Face("sans", 0); err == nil {
		t.Error("size 0 should be rejected")
	}
}

func TestRegisterCustomFont(t *testing.T) {
	m, err := NewManager()
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	// goregular doubles as a valid TTF payload for registration.
	if err := m.Register("brand", goregular.TTF); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := m.Face("brand", 20); err != nil {
		t.Errorf("Face(brand): %v", err)
	}

	if err := m.Register("broken", []byte("not a font")); err == nil {
		t.Error("Register should reject malformed font data")
	}
}
