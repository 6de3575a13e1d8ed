// ai.go — AI visual-analysis client.
//
// The service receives an image URL and replies with a recommended text
// region and color polarity. It is strictly best-effort: the analyzer
// treats any non-2xx status or transport error as "unavailable" and falls
// back to grid analysis.
package layout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aimagicbox/adcanvas/pkg/design"
)

// VisionClient calls an external visual-analysis HTTP service.
type VisionClient struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

type visionRequest struct {
	ImageURL string `json:"imageUrl"`
}

type visionResponse struct {
	RecommendedTextRegion string            `json:"recommendedTextRegion"`
	RecommendedTextColor  string            `json:"recommendedTextColor"`
	DetectedFaces         []json.RawMessage `json:"detectedFaces"`
	DetectedObjects       []json.RawMessage `json:"detectedObjects"`
}

func (c *VisionClient) client() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 30 * time.Second}
}

// Analyze asks the service where text should be placed on the image.
func (c *VisionClient) Analyze(ctx context.Context, imageURL string) (Suggestion, error) {
	body, err := json.Marshal(visionRequest{ImageURL: imageURL})
	if err != nil {
		return Suggestion{}, fmt.Errorf("marshal vision request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/analyze", bytes.NewReader(body))
	if err != nil {
		return Suggestion{}, fmt.Errorf("build vision request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.client().Do(req)
	if err != nil {
		return Suggestion{}, fmt.Errorf("vision service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Suggestion{}, fmt.Errorf("vision service: status %d: %s", resp.StatusCode, msg)
	}

	var vr visionResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return Suggestion{}, fmt.Errorf("decode vision response: %w", err)
	}

	vertical, align, err := parseRegion(vr.RecommendedTextRegion)
	if err != nil {
		return Suggestion{}, err
	}

	return Suggestion{
		Vertical:  vertical,
		Align:     align,
		LightText: !strings.EqualFold(vr.RecommendedTextColor, "dark"),
	}, nil
}

// parseRegion maps region names like "bottom-left" or "center" onto a
// vertical anchor and alignment.
func parseRegion(region string) (design.VerticalPosition, design.TextAlign, error) {
	vertical := design.PositionCenter
	align := design.AlignCenter

	for _, tok := range strings.Split(strings.ToLower(strings.TrimSpace(region)), "-") {
		switch tok {
		case "top":
			vertical = design.PositionTop
		case "bottom":
			vertical = design.PositionBottom
		case "middle", "center", "":
			// keep defaults
		case "left":
			align = design.AlignLeft
		case "right":
			align = design.AlignRight
		default:
			return "", "", fmt.Errorf("unknown text region %q", region)
		}
	}
	return vertical, align, nil
}
