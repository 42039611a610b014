package probe

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// FFProbe reads media metadata with the ffprobe binary.
type FFProbe struct {
	binPath string
}

// NewFFProbe creates an FFProbe using the given binary, or "ffprobe" from PATH when empty.
func NewFFProbe(binPath string) *FFProbe {
	if binPath == "" {
		binPath = "ffprobe"
	}
	return &FFProbe{binPath: binPath}
}

// Available reports whether the ffprobe binary can be found.
func (p *FFProbe) Available() bool {
	_, err := exec.LookPath(p.binPath)
	return err == nil
}

// Duration returns the container duration of the file at path.
// The context bounds how long the probe may run.
func (p *FFProbe) Duration(ctx context.Context, path string) (time.Duration, error) {
	cmd := exec.CommandContext(ctx, p.binPath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, fmt.Errorf("ffprobe failed: %w: %s", err, stderr.String())
	}

	return parseDuration(stdout.String())
}

func parseDuration(raw string) (time.Duration, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "N/A" {
		return 0, fmt.Errorf("ffprobe returned no duration")
	}

	seconds, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing ffprobe duration %q: %w", trimmed, err)
	}

	return time.Duration(seconds * float64(time.Second)), nil
}
