package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/victoramevor/ai-video-transcoder/internal/core/domain"
)

// HandleMessage consumes a job-submitted event and runs the job to a terminal
// status. A processing failure marks the job failed and acks the message, only
// infrastructure errors propagate so the broker redelivers.
func (p *pipelineService) HandleMessage(ctx context.Context, data []byte) error {
	var event domain.JobEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("could not unmarshal job event: %v", err)
	}

	job, err := p.jobs.FindByID(ctx, event.JobID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			p.logger.Warn("dropping event for unknown job", "job_id", event.JobID)
			return nil
		}
		return err
	}

	if job.Status.Terminal() {
		// redelivery of a job that already finished
		p.logger.Info("skipping terminal job", "job_id", job.ID, "status", job.Status)
		return nil
	}

	if err := p.jobs.UpdateStatus(ctx, job.ID, domain.JobStatusProcessing); err != nil {
		if errors.Is(err, domain.ErrJobTerminal) {
			return nil
		}
		return err
	}

	p.logger.Info("processing job", "job_id", job.ID, "source_key", job.SourceKey, "source_url", job.SourceURL)

	outputKey, procErr := p.process(ctx, job)
	if procErr != nil {
		p.logger.Error("job processing failed", "job_id", job.ID, "error", procErr)
		if err := p.jobs.MarkFailed(ctx, job.ID, procErr.Error()); err != nil {
			return err
		}
		return nil
	}

	if err := p.jobs.MarkCompleted(ctx, job.ID, outputKey); err != nil {
		return err
	}

	p.logger.Info("job completed", "job_id", job.ID, "output_key", outputKey)
	return nil
}

func (p *pipelineService) process(ctx context.Context, job *domain.Job) (string, error) {
	workDir, err := os.MkdirTemp("", "transcode")
	if err != nil {
		return "", fmt.Errorf("could not create work directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			p.logger.Error("failed to clean up work directory", "path", workDir, "error", err)
		}
	}()

	input := job.SourceURL
	if job.SourceKey != "" {
		input, err = p.fetchSource(ctx, job, workDir)
		if err != nil {
			return "", err
		}
	}
	if input == "" {
		return "", fmt.Errorf("job has no source")
	}

	outDir := filepath.Join(workDir, "out")
	if err := os.Mkdir(outDir, 0o755); err != nil {
		return "", fmt.Errorf("could not create output directory: %w", err)
	}

	if err := p.processor.Process(ctx, input, outDir); err != nil {
		return "", err
	}

	return p.uploadOutputs(ctx, job, outDir)
}

func (p *pipelineService) fetchSource(ctx context.Context, job *domain.Job, workDir string) (string, error) {
	object, err := p.storage.GetObject(ctx, job.SourceKey)
	if err != nil {
		return "", fmt.Errorf("could not fetch source object: %w", err)
	}
	defer object.Close()

	localPath := filepath.Join(workDir, "source"+filepath.Ext(job.SourceKey))
	local, err := os.Create(localPath)
	if err != nil {
		return "", fmt.Errorf("could not create local source file: %w", err)
	}
	defer local.Close()

	if _, err := io.Copy(local, object); err != nil {
		return "", fmt.Errorf("could not download source object: %w", err)
	}

	return localPath, nil
}

func (p *pipelineService) uploadOutputs(ctx context.Context, job *domain.Job, outDir string) (string, error) {
	entries, err := os.ReadDir(outDir)
	if err != nil {
		return "", fmt.Errorf("could not read output directory: %w", err)
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("processor produced no output")
	}

	outputKey := fmt.Sprintf("processed/%s/", job.ID)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		filePath := filepath.Join(outDir, entry.Name())
		file, err := os.Open(filePath)
		if err != nil {
			return "", fmt.Errorf("could not open output file: %w", err)
		}

		info, err := file.Stat()
		if err != nil {
			file.Close()
			return "", fmt.Errorf("could not stat output file: %w", err)
		}

		contentType := mime.TypeByExtension(filepath.Ext(entry.Name()))
		key := outputKey + entry.Name()
		if err := p.storage.PutObject(ctx, key, contentType, file, info.Size()); err != nil {
			file.Close()
			return "", fmt.Errorf("could not upload output file %s: %w", entry.Name(), err)
		}
		file.Close()

		p.logger.Info("output uploaded", "job_id", job.ID, "key", key, "size", info.Size())
	}

	return outputKey, nil
}
