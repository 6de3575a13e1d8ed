// Package media resolves campaign image sources — data URIs, local
// files, and HTTP URLs — into decoded images, and extracts a still frame
// from video sources via ffmpeg. Every load path honors its context and
// an explicit timeout so a stalled fetch fails the render instead of
// suspending it indefinitely.
package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/aimagicbox/adcanvas/pkg/encode"
)

// DefaultTimeout bounds a single background-media load.
const DefaultTimeout = 15 * time.Second

// Resolver loads images and video frames from src strings.
type Resolver struct {
	// HTTPClient is used for remote sources. Defaults to a client with
	// DefaultTimeout when nil.
	HTTPClient *http.Client

	// Timeout bounds each load, including ffmpeg frame extraction.
	// Zero means DefaultTimeout.
	Timeout time.Duration

	// FFmpegPath overrides the ffmpeg binary used for video frames.
	FFmpegPath string

	// MaxBytes caps a remote download. Zero means 32 MiB.
	MaxBytes int64
}

func (r *Resolver) timeout() time.Duration {
	if r == nil || r.Timeout <= 0 {
		return DefaultTimeout
	}
	return r.Timeout
}

func (r *Resolver) client() *http.Client {
	if r == nil || r.HTTPClient == nil {
		return &http.Client{Timeout: r.timeout()}
	}
	return r.HTTPClient
}

func (r *Resolver) maxBytes() int64 {
	if r == nil || r.MaxBytes <= 0 {
		return 32 << 20
	}
	return r.MaxBytes
}

// videoExtensions is the video-file heuristic applied to source paths.
var videoExtensions = map[string]bool{
	".mp4":  true,
	".webm": true,
	".mov":  true,
	".avi":  true,
	".mkv":  true,
	".m4v":  true,
}

// IsVideoSource reports whether src looks like a video file, by extension.
// Data URIs are checked by MIME type instead.
func IsVideoSource(src string) bool {
	if strings.HasPrefix(src, "data:") {
		return strings.HasPrefix(src, "data:video/")
	}

	p := src
	if u, err := url.Parse(src); err == nil && u.Path != "" {
		p = u.Path
	}
	return videoExtensions[strings.ToLower(path.Ext(p))]
}

// Resolve loads src as a still image. Video sources resolve to their
// first frame.
func (r *Resolver) Resolve(ctx context.Context, src string) (image.Image, error) {
	if src == "" {
		return nil, fmt.Errorf("empty image source")
	}

	if IsVideoSource(src) {
		return r.FirstFrame(ctx, src)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout())
	defer cancel()

	switch {
	case strings.HasPrefix(src, "data:"):
		return decodeDataImage(src)
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return r.fetch(ctx, src)
	default:
		img, err := imaging.Open(src)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", src, err)
		}
		return img, nil
	}
}

// decodeDataImage decodes a base64 image data URI.
func decodeDataImage(src string) (image.Image, error) {
	data, mime, err := encode.DecodeDataURI(src)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(mime, "image/") {
		return nil, fmt.Errorf("data URI is %s, not an image", mime)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode data URI image: %w", err)
	}
	return img, nil
}

// fetch downloads and decodes a remote image.
func (r *Resolver) fetch(ctx context.Context, src string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", src, err)
	}

	resp, err := r.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", src, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, r.maxBytes()))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", src, err)
	}

	img, err := imaging.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", src, err)
	}
	return img, nil
}
