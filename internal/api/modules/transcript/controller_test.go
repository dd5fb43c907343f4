package transcript_module

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/akasharts888/audio-transcriptor/internal/query"
	transcript_store "github.com/akasharts888/audio-transcriptor/internal/stores/transcript"
	"github.com/akasharts888/audio-transcriptor/pkg/completion"
	"github.com/akasharts888/audio-transcriptor/pkg/sdk"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// scriptedCompleter answers every prompt with a fixed reply and counts calls
type scriptedCompleter struct {
	answer     string
	err        error
	calls      atomic.Int32
	lastPrompt atomic.Value
}

func (s *scriptedCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	s.calls.Add(1)
	s.lastPrompt.Store(prompt)
	return s.answer, s.err
}

func newTestRouter(t *testing.T, completer completion.Completer, storageDir string, maxUploadBytes int64) (*gin.Engine, *TranscriptService) {
	t.Helper()

	if storageDir == "" {
		storageDir = t.TempDir()
	}
	store := transcript_store.NewStore(transcript_store.NewAudioStore(storageDir, ".webm"))
	service := NewTranscriptService(store, completer)

	router := gin.New()
	RegisterRoutes(&router.RouterGroup, service, maxUploadBytes)

	return router, service
}

// multipartRequest builds a /process-audio request. A nil audio or transcript omits that field.
func multipartRequest(t *testing.T, audio []byte, transcriptJSON *string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	if audio != nil {
		part, err := form.CreateFormFile("audio", "recording.webm")
		require.NoError(t, err)
		_, err = part.Write(audio)
		require.NoError(t, err)
	}
	if transcriptJSON != nil {
		require.NoError(t, form.WriteField("transcript", *transcriptJSON))
	}
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/process-audio", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	return req
}

func queryRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/query", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()

	var out map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func ptr(s string) *string {
	return &s
}

func TestProcessAudio_Success(t *testing.T) {
	router, service := newTestRouter(t, &scriptedCompleter{}, "", 0)
	audio := []byte("\x1aE\xdf\xa3 webm payload")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, audio, ptr(`{"fullText": "Alice: let's ship v2", "segments": []}`)))

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, sdk.MessageAudioProcessed, body["response"])
	require.NotEmpty(t, body["id"])

	session, err := service.Store().Get(body["id"])
	require.NoError(t, err)
	assert.Equal(t, "Alice: let's ship v2", session.Transcript)

	stored, err := os.ReadFile(session.AudioPath)
	require.NoError(t, err)
	assert.Equal(t, audio, stored)
}

func TestProcessAudio_ClientErrors(t *testing.T) {
	tests := []struct {
		name        string
		audio       []byte
		transcript  *string
		wantMessage string
	}{
		{"missing transcript", []byte("audio"), nil, "transcript field is required"},
		{"missing audio", nil, ptr(`{"fullText": "x"}`), "audio file is required"},
		{"malformed transcript", []byte("audio"), ptr(`{"fullText": `), "invalid transcript payload"},
		{"transcript is not an object", []byte("audio"), ptr(`"just text"`), "invalid transcript payload"},
		{"fullText has the wrong type", []byte("audio"), ptr(`{"fullText": ["a"]}`), "invalid transcript payload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, service := newTestRouter(t, &scriptedCompleter{}, "", 0)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, multipartRequest(t, tt.audio, tt.transcript))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, decode(t, w)["response"], tt.wantMessage)
			assert.Equal(t, 0, service.Store().Len())
		})
	}
}

func TestProcessAudio_NotMultipart(t *testing.T) {
	router, _ := newTestRouter(t, &scriptedCompleter{}, "", 0)

	req := httptest.NewRequest(http.MethodPost, "/process-audio", strings.NewReader(`{"audio": "x"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, decode(t, w)["response"])
}

func TestProcessAudio_StorageFailure(t *testing.T) {
	root := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(root, []byte("not a directory"), 0644))

	router, service := newTestRouter(t, &scriptedCompleter{}, root, 0)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, []byte("audio"), ptr(`{"fullText": "x"}`)))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Contains(t, body["response"], "audio storage failure")
	assert.Empty(t, body["id"])
	assert.Equal(t, 0, service.Store().Len())
}

func TestProcessAudio_UploadTooLarge(t *testing.T) {
	router, service := newTestRouter(t, &scriptedCompleter{}, "", 1024)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, bytes.Repeat([]byte("a"), 8*1024), ptr(`{}`)))

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, 0, service.Store().Len())
}

func TestQuery_NoTranscripts(t *testing.T) {
	completer := &scriptedCompleter{answer: "unused"}
	router, _ := newTestRouter(t, completer, "", 0)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, queryRequest(`{"query": "What was decided?"}`))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"response": "No transcripts found"}`, w.Body.String())
	assert.Equal(t, int32(0), completer.calls.Load())
}

func TestQuery_BadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{"query": `},
		{"missing query", `{}`},
		{"null query", `{"query": null}`},
		{"wrong type", `{"query": 5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := &scriptedCompleter{}
			router, _ := newTestRouter(t, completer, "", 0)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, queryRequest(tt.body))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, decode(t, w)["response"], "Could not parse request body")
			assert.Equal(t, int32(0), completer.calls.Load())
		})
	}
}

func TestQuery_EmptyQuestion(t *testing.T) {
	completer := &scriptedCompleter{answer: query.Sentinel}
	router, _ := newTestRouter(t, completer, "", 0)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, []byte("audio"), ptr(`{"fullText": "Alice: let's ship v2"}`)))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, queryRequest(`{"query": ""}`))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"response": "No relevant data found."}`, w.Body.String())
	assert.Equal(t, int32(1), completer.calls.Load())

	prompt, _ := completer.lastPrompt.Load().(string)
	assert.True(t, strings.HasSuffix(prompt, "Question: \nAnswer:\n"), "prompt: %q", prompt)
}

func TestQuery_CompletionFailure(t *testing.T) {
	completer := &scriptedCompleter{err: errors.New("provider unavailable")}
	router, _ := newTestRouter(t, completer, "", 0)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, []byte("audio"), ptr(`{"fullText": "notes"}`)))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, queryRequest(`{"query": "anything"}`))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Contains(t, body["response"], "completion failed")
	assert.Contains(t, body["response"], "provider unavailable")
	assert.Equal(t, int32(1), completer.calls.Load())
}

func TestIngestThenQuery_SentinelPassthrough(t *testing.T) {
	completer := &scriptedCompleter{answer: query.Sentinel}
	router, service := newTestRouter(t, completer, "", 0)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, []byte("any blob"), ptr(`{"fullText": "Alice: let's ship v2", "segments": []}`)))
	require.Equal(t, http.StatusOK, w.Code)
	id := decode(t, w)["id"]

	var sessions []string
	for session := range service.Store().Sessions() {
		sessions = append(sessions, session.ID)
		assert.Equal(t, "Alice: let's ship v2", session.Transcript)
	}
	assert.Equal(t, []string{id}, sessions)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, queryRequest(`{"query": "Who proposed shipping v2?"}`))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"response": "No relevant data found."}`, w.Body.String())

	prompt, _ := completer.lastPrompt.Load().(string)
	assert.Contains(t, prompt, "Alice: let's ship v2")
	assert.Contains(t, prompt, "Question: Who proposed shipping v2?")
}
