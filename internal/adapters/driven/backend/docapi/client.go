package docapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
	"github.com/custodia-labs/docchat/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.Backend = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL = domain.DefaultBackendURL
	DefaultTimeout = domain.DefaultTimeoutSeconds * time.Second

	// FileField is the multipart field the upload endpoint reads.
	FileField = "file"

	// maxErrorBody bounds how much of an error response is read.
	maxErrorBody = 64 << 10
)

// Config holds configuration for the backend client.
type Config struct {
	// BaseURL is the backend base URL (default: http://localhost:8000).
	BaseURL string

	// Timeout is the per-request timeout (default: 120s).
	Timeout time.Duration

	// RequestsPerSecond throttles outgoing requests (0 = unlimited).
	RequestsPerSecond float64

	// HTTPClient overrides the default client. Timeout is ignored when set.
	HTTPClient *http.Client
}

// ConfigFromSettings builds a client configuration from backend settings.
func ConfigFromSettings(s domain.BackendSettings) Config {
	return Config{
		BaseURL:           s.BaseURL,
		Timeout:           s.Timeout(),
		RequestsPerSecond: s.RequestsPerSecond,
	}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Client talks to the document backend over HTTP.
type Client struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
}

// chatRequest is the /chat request format.
type chatRequest struct {
	Question string `json:"question"`
}

// chatResponse is the /chat response format.
type chatResponse struct {
	Answer string `json:"answer"`
}

// errorResponse is the body of a non-2xx response.
type errorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

// validationError is one entry of a validation-error detail list.
type validationError struct {
	Msg string `json:"msg"`
}

// NewClient creates a new backend client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	c := &Client{
		client:  httpClient,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return c
}

// BaseURL returns the address requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Upload sends the document as a multipart form.
func (c *Client) Upload(ctx context.Context, doc domain.Document) (*domain.UploadReceipt, error) {
	body, contentType, err := encodeDocument(doc)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.do(req, "upload")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// Any 2xx is success; the receipt is best effort.
	var receipt domain.UploadReceipt
	if err := json.NewDecoder(resp.Body).Decode(&receipt); err != nil {
		logger.Debug("Upload receipt not decoded: %v", err)
	}
	return &receipt, nil
}

// Ask sends a question and returns the answer.
func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	jsonBody, err := json.Marshal(chatRequest{Question: question})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req, "chat")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", &domain.TransportError{Op: "chat", Err: fmt.Errorf("decode response: %w", err)}
	}
	return chatResp.Answer, nil
}

// Health probes the health endpoint.
func (c *Client) Health(ctx context.Context) (*domain.BackendHealth, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.do(req, "health")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var health domain.BackendHealth
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, &domain.TransportError{Op: "health", Err: fmt.Errorf("decode response: %w", err)}
	}
	return &health, nil
}

// do throttles, sends the request and maps failures onto domain errors.
// On success the caller owns the response body.
func (c *Client) do(req *http.Request, op string) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return nil, &domain.TransportError{Op: op, Err: err}
		}
	}

	logger.Debug("%s %s", req.Method, req.URL)
	start := time.Now()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Op: op, Err: err}
	}

	logger.Debug("%s: status %d in %s", op, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &domain.BackendError{
			StatusCode: resp.StatusCode,
			Detail:     parseDetail(body),
		}
	}

	return resp, nil
}

// encodeDocument builds the multipart body for an upload.
func encodeDocument(doc domain.Document) (io.Reader, string, error) {
	f, err := os.Open(doc.Path)
	if err != nil {
		return nil, "", fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	mimeType := doc.MIMEType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, quoteEscaper.Replace(FileField), quoteEscaper.Replace(doc.Name)))
	header.Set("Content-Type", mimeType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("create form part: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("read document: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}

// parseDetail extracts the user-facing message from an error body.
// Returns "" when the body has no usable detail.
func parseDetail(body []byte) string {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || len(errResp.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(errResp.Detail, &text); err == nil {
		return strings.TrimSpace(text)
	}

	var list []validationError
	if err := json.Unmarshal(errResp.Detail, &list); err == nil {
		msgs := make([]string, 0, len(list))
		for _, v := range list {
			if v.Msg != "" {
				msgs = append(msgs, v.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	var single validationError
	if err := json.Unmarshal(errResp.Detail, &single); err == nil {
		return single.Msg
	}

	return ""
}
