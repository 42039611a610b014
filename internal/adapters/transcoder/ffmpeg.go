package transcoder

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
)

// FFmpeg transcodes a source video into an HLS rendition with the ffmpeg binary.
// The input may be a local file or an http(s) URL, ffmpeg handles both.
type FFmpeg struct {
	binPath string
	logger  *slog.Logger
}

// NewFFmpeg creates an FFmpeg using the given binary, or "ffmpeg" from PATH when empty.
func NewFFmpeg(binPath string, logger *slog.Logger) *FFmpeg {
	if binPath == "" {
		binPath = "ffmpeg"
	}
	return &FFmpeg{binPath: binPath, logger: logger}
}

// Available reports whether the ffmpeg binary can be found.
func (f *FFmpeg) Available() bool {
	_, err := exec.LookPath(f.binPath)
	return err == nil
}

// Process transcodes input into an HLS playlist plus segments under outDir.
func (f *FFmpeg) Process(ctx context.Context, input string, outDir string) error {
	playlist := filepath.Join(outDir, "master.m3u8")
	segments := filepath.Join(outDir, "segment_%03d.ts")

	args := []string{
		"-hide_banner",
		"-y",
		"-i", input,
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "23",
		"-c:a", "aac",
		"-b:a", "128k",
		"-f", "hls",
		"-hls_time", "6",
		"-hls_playlist_type", "vod",
		"-hls_segment_filename", segments,
		playlist,
	}

	f.logger.Info("starting transcode", "input", input, "out_dir", outDir)

	cmd := exec.CommandContext(ctx, f.binPath, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("ffmpeg failed: %w: %s", err, tail(stderr.String(), 2048))
	}

	f.logger.Info("transcode finished", "input", input, "playlist", playlist)
	return nil
}

// tail keeps the last n bytes of ffmpeg output, which is where the error lives.
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
