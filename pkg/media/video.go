// video.go — First-frame extraction from video sources via ffmpeg.
package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os/exec"
)

// frameSeek is where the representative frame is taken. The very first
// frame of generated clips is often black, so seek slightly in.
const frameSeek = "0.1"

// FirstFrame extracts the frame at t=0.1s from a video source as a still
// image. The source may be a local path or a URL ffmpeg can read.
func (r *Resolver) FirstFrame(ctx context.Context, src string) (image.Image, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout())
	defer cancel()

	ffmpeg := "ffmpeg"
	if r != nil && r.FFmpegPath != "" {
		ffmpeg = r.FFmpegPath
	}

	var out, errBuf bytes.Buffer
	cmd := exec.CommandContext(ctx, ffmpeg,
		"-ss", frameSeek,
		"-i", src,
		"-frames:v", "1",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-",
	)
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg frame from %s: %w\noutput: %s", src, err, errBuf.String())
	}

	img, err := png.Decode(&out)
	if err != nil {
		return nil, fmt.Errorf("decode extracted frame: %w", err)
	}
	return img, nil
}
