package design

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestMergeDoesNotMutateInputs(t *testing.T) {
	base := map[string]any{
		"logoSize": 100.0,
		"headline": map[string]any{"verticalPosition": "center", "lineSpacing": 1.2},
		"tags":     []any{"a", "b"},
	}
	override := map[string]any{
		"headline": map[string]any{"verticalPosition": "bottom"},
		"tags":     []any{"c"},
	}

	baseSnapshot := mustClone(t, base)
	overrideSnapshot := mustClone(t, override)

	got := Merge(base, override)

	if !reflect.DeepEqual(base, baseSnapshot) {
		t.Errorf("Merge mutated base: %#v", base)
	}
	if !reflect.DeepEqual(override, overrideSnapshot) {
		t.Errorf("Merge mutated override: %#v", override)
	}

	// Mutating the result must not leak back into either input.
	got["headline"].(map[string]any)["lineSpacing"] = 9.9
	got["tags"].([]any)[0] = "zz"
	if !reflect.DeepEqual(base, baseSnapshot) || !reflect.DeepEqual(override, overrideSnapshot) {
		t.Error("merged result shares structure with inputs")
	}
}

func TestMergeEmptyOverrideEqualsBase(t *testing.T) {
	base := map[string]any{
		"addLogo":  true,
		"headline": map[string]any{"lineSpacing": 1.2, "rows": []any{map[string]any{"fontSize": 34.0}}},
	}

	got := Merge(base, map[string]any{})
	if !reflect.DeepEqual(got, base) {
		t.Errorf("Merge(base, {}) = %#v, want %#v", got, base)
	}
}

func TestMergePolicies(t *testing.T) {
	tests := []struct {
		name     string
		base     map[string]any
		override map[string]any
		want     map[string]any
	}{
		{
			name:     "scalar conflict is right-biased",
			base:     map[string]any{"logoSize": 100.0},
			override: map[string]any{"logoSize": 75.0},
			want:     map[string]any{"logoSize": 75.0},
		},
		{
			name:     "nested objects merge recursively",
			base:     map[string]any{"subheadline": map[string]any{"fontColor": "#fff", "fontSize": 18.0}},
			override: map[string]any{"subheadline": map[string]any{"fontColor": "#000"}},
			want:     map[string]any{"subheadline": map[string]any{"fontColor": "#000", "fontSize": 18.0}},
		},
		{
			name:     "arrays replaced wholesale",
			base:     map[string]any{"icons": []any{"a", "b", "c"}},
			override: map[string]any{"icons": []any{"z"}},
			want:     map[string]any{"icons": []any{"z"}},
		},
		{
			name:     "override introduces new key",
			base:     map[string]any{},
			override: map[string]any{"addLogo": true},
			want:     map[string]any{"addLogo": true},
		},
		{
			name:     "object replaces scalar",
			base:     map[string]any{"ctaButton": "none"},
			override: map[string]any{"ctaButton": map[string]any{"enabled": true}},
			want:     map[string]any{"ctaButton": map[string]any{"enabled": true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.base, tt.override)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Merge() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestOverrideApplyDoesNotMutateBase(t *testing.T) {
	base := Canonical()
	base.Headline.Rows = []TextSettings{DefaultRowSettings(), DefaultRowSettings()}
	snapshot := mustClone(t, base)

	pos := PositionBottom
	size := 40.0
	o := &Override{
		Headline: &HeadlineOverride{
			Rows:             []TextOverride{{FontSize: &size}},
			VerticalPosition: &pos,
		},
	}

	eff := o.Apply(base)

	if !reflect.DeepEqual(mustClone(t, base), snapshot) {
		t.Errorf("Apply mutated base: %#v", base)
	}

	if len(eff.Headline.Rows) != 1 {
		t.Fatalf("rows = %d, want wholesale replacement to 1", len(eff.Headline.Rows))
	}
	if eff.Headline.Rows[0].FontSize != 40 {
		t.Errorf("row fontSize = %v, want 40", eff.Headline.Rows[0].FontSize)
	}
	// Unset fields come from the base row, not zero values.
	if eff.Headline.Rows[0].FontColor != base.Headline.Rows[0].FontColor {
		t.Errorf("row fontColor = %q, want base value %q", eff.Headline.Rows[0].FontColor, base.Headline.Rows[0].FontColor)
	}
	if eff.Headline.VerticalPosition != PositionBottom {
		t.Errorf("verticalPosition = %q, want bottom", eff.Headline.VerticalPosition)
	}
}

func TestOverrideApplyNilIsIdentity(t *testing.T) {
	base := Canonical()
	var o *Override
	if got := o.Apply(base); !reflect.DeepEqual(got, base) {
		t.Errorf("nil override changed settings: %#v", got)
	}
}

func TestReconcileRows(t *testing.T) {
	tests := []struct {
		name     string
		headline string
		rows     int
		want     int
	}{
		{"matching", "one\ntwo", 2, 2},
		{"grow by duplicating last", "one\ntwo\nthree", 1, 3},
		{"shrink by truncating", "one", 3, 1},
		{"empty headline keeps one row", "", 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Canonical()
			s.Headline.Rows = make([]TextSettings, tt.rows)
			for i := range s.Headline.Rows {
				s.Headline.Rows[i] = DefaultRowSettings()
				s.Headline.Rows[i].FontSize = float64(10 + i)
			}

			ReconcileRows(&s, tt.headline)
			if len(s.Headline.Rows) != tt.want {
				t.Fatalf("rows = %d, want %d", len(s.Headline.Rows), tt.want)
			}
			// Grown rows copy the last configured row's settings.
			if tt.want > tt.rows && tt.rows > 0 {
				last := s.Headline.Rows[tt.want-1]
				if last.FontSize != float64(10+tt.rows-1) {
					t.Errorf("duplicated row fontSize = %v, want %v", last.FontSize, 10+tt.rows-1)
				}
			}
		})
	}
}

func TestCanonicalIsFullyPopulated(t *testing.T) {
	s := Canonical()

	if len(s.Headline.Rows) == 0 {
		t.Fatal("canonical settings have no headline rows")
	}
	row := s.Headline.Rows[0]
	if row.FontFamily == "" || row.FontColor == "" || row.FontSize <= 0 || row.TextAlign == "" {
		t.Errorf("canonical row has unset fields: %+v", row)
	}
	if s.Subheadline.FontSize <= 0 || s.Subheadline.VerticalPosition == "" {
		t.Errorf("canonical subheadline has unset fields: %+v", s.Subheadline)
	}
	if s.LogoPosition == "" || s.LogoSize <= 0 {
		t.Errorf("canonical logo settings unset: %+v", s)
	}
	if s.CTAButton.Text == "" || s.CTAButton.FontSize <= 0 || s.CTAButton.Color == "" {
		t.Errorf("canonical CTA has unset fields: %+v", s.CTAButton)
	}
}

func TestBrandAssetsPrimaryLogo(t *testing.T) {
	b := BrandAssets{Logos: []Logo{{Name: "a"}, {Name: "b"}}, PrimaryLogoIndex: 1}
	logo, ok := b.PrimaryLogo()
	if !ok || logo.Name != "b" {
		t.Errorf("PrimaryLogo() = %v, %v; want b, true", logo, ok)
	}

	b.PrimaryLogoIndex = 5
	if _, ok := b.PrimaryLogo(); ok {
		t.Error("out-of-range index should report no primary logo")
	}
}

func TestApplyPatch(t *testing.T) {
	base := Canonical()

	out, err := ApplyPatch(base, map[string]any{
		"ctaButton": map[string]any{"enabled": true, "text": "Buy Now"},
		"logoSize":  75.0,
	})
	if err != nil {
		t.Fatalf("ApplyPatch: %v", err)
	}

	if !out.CTAButton.Enabled || out.CTAButton.Text != "Buy Now" {
		t.Errorf("CTA patch not applied: %+v", out.CTAButton)
	}
	if out.LogoSize != 75 {
		t.Errorf("logoSize = %v, want 75", out.LogoSize)
	}
	if out.CTAButton.Color != base.CTAButton.Color {
		t.Errorf("untouched field changed: %q", out.CTAButton.Color)
	}
	if base.CTAButton.Enabled {
		t.Error("base mutated by ApplyPatch")
	}

	same, err := ApplyPatch(base, nil)
	if err != nil {
		t.Fatalf("ApplyPatch(nil): %v", err)
	}
	if same.CTAButton.Text != base.CTAButton.Text {
		t.Error("empty patch should return the base unchanged")
	}
}

// mustClone round-trips v through JSON so DeepEqual comparisons ignore
// shared slice identity.
func mustClone(t *testing.T, v any) map[string]any {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return out
}
