package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/studiowebux/doccli/internal/types"
)

// Timeouts. The export timeout must absorb a backend cold start, which
// can take tens of seconds; the warmup probe is deliberately cheap.
const (
	DefaultWarmupTimeout = 3 * time.Second
	DefaultExportTimeout = 45 * time.Second
)

// RequestState tracks one export request through its lifecycle
type RequestState int

const (
	StateIdle RequestState = iota
	StateInFlight
	StateSuccess
	StateFailure
)

// String returns a readable state name
func (s RequestState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInFlight:
		return "in_flight"
	case StateSuccess:
		return "success"
	case StateFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// ErrBackendUnreachable marks transport failures and timeouts talking
// to the generation backend. Retryable: the backend may still be cold
// starting.
var ErrBackendUnreachable = errors.New("generation backend unreachable")

// BackendError is a non-success response from the generation backend
type BackendError struct {
	Status  int
	Message string
	Detail  string
}

// Error formats the backend rejection for display
func (e *BackendError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend rejected request (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend rejected request (%d)", e.Status)
}

// Artifact is a successful export result
type Artifact struct {
	Data     []byte
	Filename string
}

// Client talks to the remote PDF generation backend. It holds no
// server-side session state: exporting the same document twice is safe
// and produces independent artifacts.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	warmupTimeout time.Duration
	exportTimeout time.Duration

	warmupGroup singleflight.Group

	mu    sync.Mutex
	state RequestState
}

// NewClient creates a client against a backend base address
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpClient:    &http.Client{},
		warmupTimeout: DefaultWarmupTimeout,
		exportTimeout: DefaultExportTimeout,
	}
}

// SetTimeouts overrides the warmup and export timeouts. Zero values
// keep the current setting.
func (c *Client) SetTimeouts(warmup, export time.Duration) {
	if warmup > 0 {
		c.warmupTimeout = warmup
	}
	if export > 0 {
		c.exportTimeout = export
	}
}

// State returns the state of the most recent export request
func (c *Client) State() RequestState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Client) setState(s RequestState) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Warmup issues a cheap health probe to pre-trigger a cold backend
// start. Concurrent warmups are collapsed into one request. The error
// return exists for logging only; callers swallow it, because the real
// export call retries and times out independently.
func (c *Client) Warmup(ctx context.Context) error {
	_, err, _ := c.warmupGroup.Do("warmup", func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(ctx, c.warmupTimeout)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		io.Copy(io.Discard, resp.Body)
		return nil, nil
	})
	return err
}

// Export sends the document to the backend and returns the rendered
// PDF. The document is serialized at invocation time, so edits made
// while the request is in flight do not change what is exported. The
// request is cancellable through ctx and bounded by the export timeout.
func (c *Client) Export(ctx context.Context, doc *types.Document) (*Artifact, error) {
	payload, err := doc.Encode()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize document: %w", err)
	}

	c.setState(StateInFlight)

	artifact, err := c.post(ctx, "/api/generate-pdf", payload)
	if err != nil {
		c.setState(StateFailure)
		return nil, err
	}

	c.setState(StateSuccess)
	return artifact, nil
}

// LaTeXPreview returns the LaTeX source the backend would compile for
// the document, for inspection before a full export
func (c *Client) LaTeXPreview(ctx context.Context, doc *types.Document) (string, error) {
	payload, err := doc.Encode()
	if err != nil {
		return "", fmt.Errorf("failed to serialize document: %w", err)
	}

	artifact, err := c.post(ctx, "/api/preview-latex", payload)
	if err != nil {
		return "", err
	}

	var preview struct {
		Latex string `json:"latex"`
	}
	if err := json.Unmarshal(artifact.Data, &preview); err != nil {
		return "", fmt.Errorf("failed to parse preview response: %w", err)
	}
	return preview.Latex, nil
}

func (c *Client) post(ctx context.Context, path string, payload []byte) (*Artifact, error) {
	ctx, cancel := context.WithTimeout(ctx, c.exportTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnreachable, err)
	}

	if !isSuccessStatus(resp.StatusCode) {
		return nil, parseBackendError(resp.StatusCode, body)
	}

	return &Artifact{
		Data:     body,
		Filename: filenameFromHeader(resp.Header.Get("Content-Disposition")),
	}, nil
}

// parseBackendError extracts the backend's error detail when it sends
// a structured body, falling back to the raw status otherwise
func parseBackendError(status int, body []byte) *BackendError {
	backendErr := &BackendError{Status: status}

	// The backend wraps error details as {"detail": {"message": ..., "detail": ...}}
	var wrapped struct {
		Detail struct {
			Message string `json:"message"`
			Detail  string `json:"detail"`
		} `json:"detail"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Detail.Message != "" {
		backendErr.Message = wrapped.Detail.Message
		backendErr.Detail = wrapped.Detail.Detail
		return backendErr
	}

	var flat struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(body, &flat); err == nil && flat.Message != "" {
		backendErr.Message = flat.Message
		backendErr.Detail = flat.Detail
	}
	return backendErr
}

// filenameFromHeader extracts the suggested filename from a
// Content-Disposition header, if any
func filenameFromHeader(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	if name := params["filename"]; name != "" {
		return name
	}
	return params["filename*"]
}

func isSuccessStatus(status int) bool {
	return status >= 200 && status < 300
}
