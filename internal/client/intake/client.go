package intake

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/victoramevor/ai-video-transcoder/internal/client/notify"
	"github.com/victoramevor/ai-video-transcoder/internal/core/domain"
)

// ErrUploadInFlight is returned when a submission starts while another one is running.
var ErrUploadInFlight = errors.New("an upload is already in progress")

// Notifier publishes transient user-facing messages.
type Notifier interface {
	Notify(message string, severity notify.Severity) notify.Notification
}

// DurationProber reads the media duration of a local file.
type DurationProber interface {
	Duration(ctx context.Context, path string) (time.Duration, error)
}

// Options tunes the client limits and timing.
type Options struct {
	HTTPClient       *http.Client
	MaxFileSizeBytes int64
	MaxDuration      time.Duration
	ProbeTimeout     time.Duration
	PollInterval     time.Duration
	MaxPollFailures  int
	OnProgress       func(percent int)
	OnStatus         func(status domain.JobStatus)
}

func (o *Options) applyDefaults() {
	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{}
	}
	if o.MaxFileSizeBytes <= 0 {
		o.MaxFileSizeBytes = 500 << 20
	}
	if o.MaxDuration <= 0 {
		o.MaxDuration = 5 * time.Minute
	}
	if o.ProbeTimeout <= 0 {
		o.ProbeTimeout = 10 * time.Second
	}
	if o.PollInterval <= 0 {
		o.PollInterval = 3 * time.Second
	}
	if o.MaxPollFailures <= 0 {
		o.MaxPollFailures = 3
	}
}

// Client talks to the intake API: it validates files, submits them and
// watches the resulting job until it reaches a terminal status.
type Client struct {
	serverURL string
	http      *http.Client
	notifier  Notifier
	prober    DurationProber
	logger    *slog.Logger
	opts      Options

	mu        sync.Mutex
	uploading bool
	watch     *watchHandle
}

// watchHandle identifies one running job watch so a finished watch can
// release itself without clobbering a newer one.
type watchHandle struct {
	cancel context.CancelFunc
}

// NewClient creates a Client against the given server base URL.
func NewClient(serverURL string, notifier Notifier, prober DurationProber, logger *slog.Logger, opts Options) *Client {
	opts.applyDefaults()

	return &Client{
		serverURL: serverURL,
		http:      opts.HTTPClient,
		notifier:  notifier,
		prober:    prober,
		logger:    logger,
		opts:      opts,
	}
}

// Uploading reports whether a submission is currently running.
func (c *Client) Uploading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.uploading
}

func (c *Client) beginUpload() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.uploading {
		return ErrUploadInFlight
	}
	c.uploading = true
	return nil
}

func (c *Client) endUpload() {
	c.mu.Lock()
	c.uploading = false
	c.mu.Unlock()
}

func (c *Client) reportProgress(percent int) {
	if c.opts.OnProgress != nil {
		c.opts.OnProgress(percent)
	}
}
