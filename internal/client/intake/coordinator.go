package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/victoramevor/ai-video-transcoder/internal/client/notify"
)

type presignRequest struct {
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
}

type presignResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

type submitResponse struct {
	JobID uuid.UUID `json:"jobId"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Submit streams a local file to the server as a multipart upload and
// returns the created job id. An optional auxiliary video URL is sent
// alongside the file. Only one submission may run at a time.
func (c *Client) Submit(ctx context.Context, path string, videoURL string) (uuid.UUID, error) {
	if err := c.beginUpload(); err != nil {
		return uuid.Nil, err
	}
	defer c.endUpload()

	file, err := os.Open(path)
	if err != nil {
		return uuid.Nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return uuid.Nil, fmt.Errorf("stat %s: %w", path, err)
	}

	progress := newProgressReader(file, info.Size(), c.reportProgress)

	pipeReader, pipeWriter := io.Pipe()
	writer := multipart.NewWriter(pipeWriter)

	go func() {
		err := writeMultipartBody(writer, path, progress, videoURL)
		writer.Close()
		pipeWriter.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+"/process-video", pipeReader)
	if err != nil {
		return uuid.Nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	jobID, err := c.doSubmit(req)
	if err != nil {
		c.notifier.Notify("Upload failed. Please try again.", notify.SeverityDestructive)
		return uuid.Nil, err
	}

	progress.finish()
	c.notifier.Notify("Upload complete. Your video is being processed.", notify.SeveritySuccess)
	return jobID, nil
}

// SubmitURL asks the server to fetch a remote video instead of uploading one.
func (c *Client) SubmitURL(ctx context.Context, videoURL string) (uuid.UUID, error) {
	if err := c.beginUpload(); err != nil {
		return uuid.Nil, err
	}
	defer c.endUpload()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.WriteField("videoUrl", videoURL); err != nil {
		return uuid.Nil, fmt.Errorf("writing form field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return uuid.Nil, fmt.Errorf("closing form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+"/process-video", body)
	if err != nil {
		return uuid.Nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	jobID, err := c.doSubmit(req)
	if err != nil {
		c.notifier.Notify("Upload failed. Please try again.", notify.SeverityDestructive)
		return uuid.Nil, err
	}

	c.notifier.Notify("Upload complete. Your video is being processed.", notify.SeveritySuccess)
	return jobID, nil
}

// SubmitDirect uploads the file straight to object storage through a
// presigned URL and then registers the stored object as a job.
func (c *Client) SubmitDirect(ctx context.Context, path string) (uuid.UUID, error) {
	if err := c.beginUpload(); err != nil {
		return uuid.Nil, err
	}
	defer c.endUpload()

	contentType := contentTypeFor(path)

	grant, err := c.presign(ctx, filepath.Base(path), contentType)
	if err != nil {
		c.notifier.Notify("Upload failed. Please try again.", notify.SeverityDestructive)
		return uuid.Nil, err
	}

	if err := c.putObject(ctx, grant.URL, path, contentType); err != nil {
		c.notifier.Notify("Upload failed. Please try again.", notify.SeverityDestructive)
		return uuid.Nil, err
	}

	jsonBody, err := json.Marshal(map[string]string{"s3Key": grant.Key})
	if err != nil {
		return uuid.Nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+"/process-video", bytes.NewReader(jsonBody))
	if err != nil {
		return uuid.Nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	jobID, err := c.doSubmit(req)
	if err != nil {
		c.notifier.Notify("Upload failed. Please try again.", notify.SeverityDestructive)
		return uuid.Nil, err
	}

	c.notifier.Notify("Upload complete. Your video is being processed.", notify.SeveritySuccess)
	return jobID, nil
}

func (c *Client) presign(ctx context.Context, fileName string, fileType string) (*presignResponse, error) {
	jsonBody, err := json.Marshal(presignRequest{FileName: fileName, FileType: fileType})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+"/presign-upload", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("presigning upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("presigning upload: %s", readErrorBody(resp))
	}

	var grant presignResponse
	if err := json.NewDecoder(resp.Body).Decode(&grant); err != nil {
		return nil, fmt.Errorf("decoding presign response: %w", err)
	}
	return &grant, nil
}

func (c *Client) putObject(ctx context.Context, url string, path string, contentType string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	progress := newProgressReader(file, info.Size(), c.reportProgress)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, progress)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.ContentLength = info.Size()
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("uploading object: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("uploading object: unexpected status %d", resp.StatusCode)
	}

	progress.finish()
	return nil
}

func (c *Client) doSubmit(req *http.Request) (uuid.UUID, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return uuid.Nil, fmt.Errorf("submitting job: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return uuid.Nil, fmt.Errorf("submitting job: %s", readErrorBody(resp))
	}

	var submitted submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&submitted); err != nil {
		return uuid.Nil, fmt.Errorf("decoding submit response: %w", err)
	}
	return submitted.JobID, nil
}

func writeMultipartBody(writer *multipart.Writer, path string, content io.Reader, videoURL string) error {
	if videoURL != "" {
		if err := writer.WriteField("videoUrl", videoURL); err != nil {
			return fmt.Errorf("writing form field: %w", err)
		}
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="video"; filename="%s"`, filepath.Base(path)))
	header.Set("Content-Type", contentTypeFor(path))

	part, err := writer.CreatePart(header)
	if err != nil {
		return fmt.Errorf("creating form part: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return fmt.Errorf("streaming file: %w", err)
	}
	return nil
}

func contentTypeFor(path string) string {
	if contentType := mime.TypeByExtension(filepath.Ext(path)); contentType != "" {
		return contentType
	}
	return "application/octet-stream"
}

func readErrorBody(resp *http.Response) string {
	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return fmt.Sprintf("%s (status %d)", body.Error, resp.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d", resp.StatusCode)
}
