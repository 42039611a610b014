package intake_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/victoramevor/ai-video-transcoder/internal/client/intake"
	"github.com/victoramevor/ai-video-transcoder/internal/client/notify"
)

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestSubmit(t *testing.T) {

	t.Run("nominal", func(t *testing.T) {
		//Arrange
		jobID := uuid.New()
		payload := []byte("fake mp4 payload")

		var gotFilename, gotContentType, gotVideoURL string
		var gotBody []byte

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/process-video", r.URL.Path)
			require.NoError(t, r.ParseMultipartForm(32<<20))

			gotVideoURL = r.FormValue("videoUrl")

			file, header, err := r.FormFile("video")
			require.NoError(t, err)
			defer file.Close()

			gotFilename = header.Filename
			gotContentType = header.Header.Get("Content-Type")
			gotBody, err = io.ReadAll(file)
			require.NoError(t, err)

			writeJSON(t, w, http.StatusOK, map[string]uuid.UUID{"jobId": jobID})
		}))
		defer server.Close()

		notifier := &recordingNotifier{}
		var mu sync.Mutex
		var progress []int

		client := newTestClient(server.URL, notifier, fakeProber{}, intake.Options{
			OnProgress: func(percent int) {
				mu.Lock()
				progress = append(progress, percent)
				mu.Unlock()
			},
		})

		path := writeTempFile(t, "clip.mp4", payload)

		//Act
		got, err := client.Submit(context.Background(), path, "")

		//Assert
		require.NoError(t, err)
		assert.Equal(t, jobID, got)
		assert.Equal(t, "clip.mp4", gotFilename)
		assert.Equal(t, "video/mp4", gotContentType)
		assert.Empty(t, gotVideoURL)
		assert.Equal(t, payload, gotBody)
		assert.False(t, client.Uploading())

		mu.Lock()
		defer mu.Unlock()
		require.NotEmpty(t, progress)
		assert.Equal(t, 100, progress[len(progress)-1])
		for i := 1; i < len(progress); i++ {
			assert.GreaterOrEqual(t, progress[i], progress[i-1])
		}

		last, ok := notifier.last()
		require.True(t, ok)
		assert.Equal(t, "Upload complete. Your video is being processed.", last.Message)
		assert.Equal(t, notify.SeveritySuccess, last.Severity)
	})

	t.Run("auxiliary url forwarded", func(t *testing.T) {
		//Arrange
		var gotVideoURL string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(32<<20))
			gotVideoURL = r.FormValue("videoUrl")
			writeJSON(t, w, http.StatusOK, map[string]uuid.UUID{"jobId": uuid.New()})
		}))
		defer server.Close()

		client := newTestClient(server.URL, &recordingNotifier{}, fakeProber{}, intake.Options{})
		path := writeTempFile(t, "clip.mp4", []byte("payload"))

		//Act
		_, err := client.Submit(context.Background(), path, "https://example.com/fallback.mp4")

		//Assert
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/fallback.mp4", gotVideoURL)
	})

	t.Run("server failure clears in flight flag", func(t *testing.T) {
		//Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusInternalServerError, map[string]string{"error": "Failed to process video"})
		}))
		defer server.Close()

		notifier := &recordingNotifier{}
		client := newTestClient(server.URL, notifier, fakeProber{}, intake.Options{})
		path := writeTempFile(t, "clip.mp4", []byte("payload"))

		//Act
		_, err := client.Submit(context.Background(), path, "")

		//Assert
		require.Error(t, err)
		assert.False(t, client.Uploading())

		last, ok := notifier.last()
		require.True(t, ok)
		assert.Equal(t, "Upload failed. Please try again.", last.Message)
		assert.Equal(t, notify.SeverityDestructive, last.Severity)
	})

	t.Run("second submission rejected while first is running", func(t *testing.T) {
		//Arrange
		entered := make(chan struct{})
		release := make(chan struct{})

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			close(entered)
			<-release
			writeJSON(t, w, http.StatusOK, map[string]uuid.UUID{"jobId": uuid.New()})
		}))
		defer server.Close()

		client := newTestClient(server.URL, &recordingNotifier{}, fakeProber{}, intake.Options{})
		path := writeTempFile(t, "clip.mp4", []byte("payload"))

		done := make(chan error, 1)
		go func() {
			_, err := client.Submit(context.Background(), path, "")
			done <- err
		}()
		<-entered

		//Act
		_, err := client.Submit(context.Background(), path, "")

		//Assert
		assert.ErrorIs(t, err, intake.ErrUploadInFlight)

		close(release)
		require.NoError(t, <-done)
		assert.False(t, client.Uploading())
	})
}

func TestSubmitURL(t *testing.T) {

	t.Run("nominal", func(t *testing.T) {
		//Arrange
		jobID := uuid.New()
		var gotVideoURL string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			gotVideoURL = r.FormValue("videoUrl")
			_, _, err := r.FormFile("video")
			require.Error(t, err)
			writeJSON(t, w, http.StatusOK, map[string]uuid.UUID{"jobId": jobID})
		}))
		defer server.Close()

		client := newTestClient(server.URL, &recordingNotifier{}, fakeProber{}, intake.Options{})

		//Act
		got, err := client.SubmitURL(context.Background(), "https://example.com/video.mp4")

		//Assert
		require.NoError(t, err)
		assert.Equal(t, jobID, got)
		assert.Equal(t, "https://example.com/video.mp4", gotVideoURL)
	})
}

func TestSubmitDirect(t *testing.T) {

	t.Run("nominal", func(t *testing.T) {
		//Arrange
		jobID := uuid.New()
		payload := []byte("fake mp4 payload")
		storageKey := "uploads/1700000000000-clip.mp4"

		var mu sync.Mutex
		var putBody []byte
		var putContentType string
		var submittedKey string

		mux := http.NewServeMux()
		server := httptest.NewServer(mux)
		defer server.Close()

		mux.HandleFunc("/presign-upload", func(w http.ResponseWriter, r *http.Request) {
			var req map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Equal(t, "clip.mp4", req["fileName"])
			require.Equal(t, "video/mp4", req["fileType"])

			writeJSON(t, w, http.StatusOK, map[string]string{
				"url": server.URL + "/storage/" + storageKey,
				"key": storageKey,
			})
		})
		mux.HandleFunc("/storage/", func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPut, r.Method)
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)

			mu.Lock()
			putBody = body
			putContentType = r.Header.Get("Content-Type")
			mu.Unlock()
			w.WriteHeader(http.StatusOK)
		})
		mux.HandleFunc("/process-video", func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))
			var req map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

			mu.Lock()
			submittedKey = req["s3Key"]
			mu.Unlock()
			writeJSON(t, w, http.StatusOK, map[string]uuid.UUID{"jobId": jobID})
		})

		notifier := &recordingNotifier{}
		client := newTestClient(server.URL, notifier, fakeProber{}, intake.Options{})
		path := writeTempFile(t, "clip.mp4", payload)

		//Act
		got, err := client.SubmitDirect(context.Background(), path)

		//Assert
		require.NoError(t, err)
		assert.Equal(t, jobID, got)

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, payload, putBody)
		assert.Equal(t, "video/mp4", putContentType)
		assert.Equal(t, storageKey, submittedKey)

		last, ok := notifier.last()
		require.True(t, ok)
		assert.Equal(t, "Upload complete. Your video is being processed.", last.Message)
	})

	t.Run("presign rejection surfaces error", func(t *testing.T) {
		//Arrange
		var mu sync.Mutex
		var requested []string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			requested = append(requested, r.Method+" "+r.URL.Path)
			mu.Unlock()
			writeJSON(t, w, http.StatusBadRequest, map[string]string{"error": "Missing fileName or fileType"})
		}))
		defer server.Close()

		notifier := &recordingNotifier{}
		client := newTestClient(server.URL, notifier, fakeProber{}, intake.Options{})
		path := writeTempFile(t, "clip.mp4", []byte("payload"))

		//Act
		_, err := client.SubmitDirect(context.Background(), path)

		//Assert
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Missing fileName or fileType")
		assert.False(t, client.Uploading())

		// the flow must stop at the presign step, no PUT and no job creation
		mu.Lock()
		assert.Equal(t, []string{"POST /presign-upload"}, requested)
		mu.Unlock()

		last, ok := notifier.last()
		require.True(t, ok)
		assert.Equal(t, "Upload failed. Please try again.", last.Message)
	})
}
