package intake_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/victoramevor/ai-video-transcoder/internal/client/intake"
	"github.com/victoramevor/ai-video-transcoder/internal/client/notify"
)

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	mu    sync.Mutex
	notes []notify.Notification
}

func (r *recordingNotifier) Notify(message string, severity notify.Severity) notify.Notification {
	n := notify.Notification{
		ID:        uuid.New(),
		Message:   message,
		Severity:  severity,
		CreatedAt: time.Now(),
	}
	r.mu.Lock()
	r.notes = append(r.notes, n)
	r.mu.Unlock()
	return n
}

func (r *recordingNotifier) all() []notify.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notify.Notification, len(r.notes))
	copy(out, r.notes)
	return out
}

func (r *recordingNotifier) last() (notify.Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notes) == 0 {
		return notify.Notification{}, false
	}
	return r.notes[len(r.notes)-1], true
}

// fakeProber returns a canned duration, optionally after a delay.
type fakeProber struct {
	duration time.Duration
	err      error
	delay    time.Duration
}

func (f fakeProber) Duration(ctx context.Context, path string) (time.Duration, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	return f.duration, f.err
}

func writeTempFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func newTestClient(serverURL string, notifier intake.Notifier, prober intake.DurationProber, opts intake.Options) *intake.Client {
	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return intake.NewClient(serverURL, notifier, prober, discardLogger, opts)
}
