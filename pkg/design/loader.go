// loader.go — Load campaign and settings JSON with graceful degradation.
package design

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadCampaign reads and parses a campaign JSON file. Structural problems
// that can be repaired (missing IDs, over-long icon or logo lists) are
// reported as warnings, not errors.
func LoadCampaign(path string) (*Campaign, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read campaign: %w", err)
	}

	var c Campaign
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, nil, fmt.Errorf("parse campaign JSON: %w", err)
	}

	warnings := Validate(&c)
	return &c, warnings, nil
}

// LoadSettings reads a settings JSON file and canonicalizes it: the file's
// content is treated as an override on the built-in defaults, so a sparse
// file still yields a fully-populated Settings.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}

	var o Override
	if err := json.Unmarshal(data, &o); err != nil {
		return Settings{}, fmt.Errorf("parse settings JSON: %w", err)
	}

	return o.Apply(Canonical()), nil
}

// Validate repairs a campaign in place and returns warnings describing
// what was adjusted. It never fails: a renderable campaign always comes
// out the other side.
func Validate(c *Campaign) []string {
	var warnings []string

	for i := range c.Images {
		img := &c.Images[i]
		if img.ID == "" {
			img.ID = fmt.Sprintf("image-%d", i)
			warnings = append(warnings, fmt.Sprintf("image %d has no id — assigned %q", i, img.ID))
		}
		if img.Src == "" {
			warnings = append(warnings, fmt.Sprintf("image %q has an empty src", img.ID))
		}
		if img.Design != nil && img.Design.CTAButton != nil && len(img.Design.CTAButton.Icons) > MaxCTAIcons {
			img.Design.CTAButton.Icons = img.Design.CTAButton.Icons[:MaxCTAIcons]
			warnings = append(warnings, fmt.Sprintf("image %q: CTA icons capped at %d", img.ID, MaxCTAIcons))
		}
	}

	return warnings
}

// ValidateBrand caps the brand kit at MaxLogos and clamps the primary
// index into range, returning warnings for anything it touched.
func ValidateBrand(b *BrandAssets) []string {
	var warnings []string

	if len(b.Logos) > MaxLogos {
		b.Logos = b.Logos[:MaxLogos]
		warnings = append(warnings, fmt.Sprintf("brand kit capped at %d logos", MaxLogos))
	}
	if b.PrimaryLogoIndex < 0 || b.PrimaryLogoIndex >= len(b.Logos) {
		if b.PrimaryLogoIndex != 0 {
			warnings = append(warnings, fmt.Sprintf("primary logo index %d out of range — reset to 0", b.PrimaryLogoIndex))
		}
		b.PrimaryLogoIndex = 0
	}

	return warnings
}

// EffectiveDesign resolves the fully-populated design for one image:
// canonical defaults, then the shared base settings, then the image's own
// sparse override, with headline rows reconciled to the campaign copy.
func EffectiveDesign(base Settings, img CampaignImage, headline string) Settings {
	eff := img.Design.Apply(base)
	ReconcileRows(&eff, headline)
	return eff
}
