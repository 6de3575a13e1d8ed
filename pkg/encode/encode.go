// Package encode provides PNG/JPEG encoding and data-URI helpers.
//
// All renderer output follows a unified pipeline: compose an image.Image
// first, then write it to a file, an io.Writer, or a base64 data URI.
package encode

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// WritePNG encodes img to a PNG file at the given path.
func WritePNG(output string, img image.Image) error {
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode PNG: %w", err)
	}
	return nil
}

// WriteImage writes img to a file, choosing the codec from the extension
// (".png" or ".jpg"/".jpeg").
func WriteImage(output string, img image.Image) error {
	switch ext := strings.ToLower(filepath.Ext(output)); ext {
	case ".png":
		return WritePNG(output, img)
	case ".jpg", ".jpeg":
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create %s: %w", output, err)
		}
		defer f.Close()
		if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 90}); err != nil {
			return fmt.Errorf("encode JPEG: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q: use .png or .jpg", ext)
	}
}

// EncodePNG writes img as PNG to w.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// PNGDataURI encodes img as a base64 "data:image/png" URI.
func PNGDataURI(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode PNG: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeDataURI decodes a "data:<mime>;base64,<payload>" URI into raw bytes
// and the declared MIME type.
func DecodeDataURI(uri string) ([]byte, string, error) {
	if !strings.HasPrefix(uri, "data:") {
		return nil, "", fmt.Errorf("not a data URI")
	}

	comma := strings.IndexByte(uri, ',')
	if comma < 0 {
		return nil, "", fmt.Errorf("malformed data URI: no payload separator")
	}

	meta := uri[len("data:"):comma]
	mime := meta
	if semi := strings.IndexByte(meta, ';'); semi >= 0 {
		mime = meta[:semi]
	}

	if !strings.Contains(meta, "base64") {
		return nil, "", fmt.Errorf("unsupported data URI encoding in %q", meta)
	}

	data, err := base64.StdEncoding.DecodeString(uri[comma+1:])
	if err != nil {
		return nil, "", fmt.Errorf("decode data URI payload: %w", err)
	}
	return data, mime, nil
}
