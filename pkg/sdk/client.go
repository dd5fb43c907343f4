package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/akasharts888/audio-transcriptor/pkg/transcript"
)

// APIError is returned for every non-2xx response from the backend
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("[BACKEND]: request failed: %d: %s", e.Code, e.Message)
}

// IsNoTranscripts reports whether err is the backend's empty-corpus response
func IsNoTranscripts(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound
}

// Client wraps calls to the transcript backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the backend at baseURL
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 300 * time.Second},
	}
}

// ProcessAudio uploads an audio recording together with its transcript
func (c *Client) ProcessAudio(ctx context.Context, filename string, audio io.Reader, payload transcript.Payload) (*Response, error) {
	transcriptJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode transcript: %w", err)
	}

	// Build multipart form
	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	part, err := form.CreateFormFile("audio", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, audio); err != nil {
		return nil, fmt.Errorf("failed to read audio: %w", err)
	}
	if err := form.WriteField("transcript", string(transcriptJSON)); err != nil {
		return nil, err
	}
	if err := form.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/process-audio", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	var out Response
	if err := c.do(req, &out); err != nil {
		return nil, err
	}

	if out.ID == "" {
		return nil, fmt.Errorf("no id returned")
	}

	return &out, nil
}

// Query asks a question against every stored transcript
func (c *Client) Query(ctx context.Context, question string) (*Response, error) {
	b, err := json.Marshal(QueryRequest{Query: &question})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/query", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var out Response
	if err := c.do(req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// do performs the request and decodes the response body into out
func (c *Client) do(req *http.Request, out *Response) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Prefer the structured message, fall back to the raw body
		apiErr := &APIError{Code: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
		var body Response
		if json.Unmarshal(raw, &body) == nil && body.Response != "" {
			apiErr.Message = body.Response
		}
		return apiErr
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	out.Code = resp.StatusCode

	return nil
}
