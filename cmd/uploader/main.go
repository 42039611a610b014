package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/victoramevor/ai-video-transcoder/internal/client/intake"
	"github.com/victoramevor/ai-video-transcoder/internal/client/notify"
	"github.com/victoramevor/ai-video-transcoder/internal/client/probe"
	"github.com/victoramevor/ai-video-transcoder/internal/core/domain"
)

func main() {
	var (
		serverURL string
		filePath  string
		videoURL  string
		direct    bool
	)

	flag.StringVar(&serverURL, "server", "http://localhost:8080", "Intake server base URL")
	flag.StringVar(&filePath, "file", "", "Path to a local video file")
	flag.StringVar(&videoURL, "url", "", "Remote video URL")
	flag.BoolVar(&direct, "direct", false, "Upload straight to object storage via a presigned URL")
	flag.Parse()

	if filePath == "" && videoURL == "" {
		fmt.Fprintln(os.Stderr, "either -file or -url is required")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	queue := notify.NewQueue(notify.WithCallback(func(n notify.Notification) {
		fmt.Printf("[%s] %s\n", n.Severity, n.Message)
	}))
	defer queue.Close()

	prober := probe.NewFFProbe(os.Getenv("FFPROBE_PATH"))
	if filePath != "" && !prober.Available() {
		logger.Error("ffprobe binary not found, cannot validate local files")
		os.Exit(1)
	}

	client := intake.NewClient(serverURL, queue, prober, logger, intake.Options{
		OnProgress: func(percent int) {
			fmt.Printf("\ruploading... %3d%%", percent)
			if percent == 100 {
				fmt.Println()
			}
		},
		OnStatus: func(status domain.JobStatus) {
			fmt.Printf("job status: %s\n", status)
		},
	})

	jobID, err := submit(ctx, client, filePath, videoURL, direct)
	if err != nil {
		logger.Error("submission failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("job created: %s\n", jobID)

	status, err := client.WatchJob(ctx, jobID)
	if err != nil {
		logger.Error("watching job failed", "error", err)
		os.Exit(1)
	}

	if status == domain.JobStatusFailed {
		os.Exit(1)
	}
}

func submit(ctx context.Context, client *intake.Client, filePath string, videoURL string, direct bool) (uuid.UUID, error) {
	if filePath == "" {
		return client.SubmitURL(ctx, videoURL)
	}

	if err := client.ValidateFile(ctx, filePath); err != nil {
		return uuid.Nil, err
	}

	if direct {
		return client.SubmitDirect(ctx, filePath)
	}
	return client.Submit(ctx, filePath, videoURL)
}
