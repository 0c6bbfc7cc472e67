package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultEndpoint  = "http://localhost:8000"
	analyzePath      = "/analyze"
	defaultUserAgent = "spigell/smart-ats"
	requestIDHeader  = "X-Request-ID"

	// DefaultMaxResponseSize caps response bodies; bigger ones are rejected.
	DefaultMaxResponseSize = 32 << 20
)

var (
	errMalformedResponse = errors.New("malformed response: missing \"response\" field")
	errResponseTooLarge  = errors.New("response is too large")
)

// Client talks to the analysis service over HTTP.
type Client struct {
	logger     *zap.Logger
	HTTPClient *http.Client
	Endpoint   string
	UserAgent  string

	// MaxResponseSize is the biggest body accepted, in bytes.
	MaxResponseSize int64
}

// NewHTTP returns a client for the service at endpoint. Timeouts are applied
// per request through the context.
func NewHTTP(logger *zap.Logger, endpoint string) *Client {
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		logger:          logger,
		HTTPClient:      &http.Client{},
		Endpoint:        endpoint,
		UserAgent:       defaultUserAgent,
		MaxResponseSize: DefaultMaxResponseSize,
	}
}

func (c *Client) Name() string { return "http" }

// Analyze posts the multipart form expected by the service.
func (c *Client) Analyze(ctx context.Context, r *Request) (*Response, error) {
	if r == nil {
		return nil, errors.New("request is required")
	}

	body, contentType, err := encodeForm(r)
	if err != nil {
		return nil, fmt.Errorf("encoding form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint+analyzePath, body)
	if err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	req = c.setHeaders(req, requestID)
	req.Header.Set("Content-Type", contentType)

	c.logger.Debug("make request",
		zap.String("url", req.URL.String()),
		zap.String("action", r.Action.String()),
		zap.String("request_id", requestID),
	)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := c.readBody(resp.Body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("got response",
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(data)),
	)

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp, data)
	}

	if r.Action.Binary() {
		return &Response{
			File:        data,
			Filename:    filename(resp.Header.Get("Content-Disposition")),
			ContentType: resp.Header.Get("Content-Type"),
		}, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	structured, ok := envelope["response"]
	if !ok {
		return nil, errMalformedResponse
	}

	return &Response{Structured: structured}, nil
}

// readBody reads at most MaxResponseSize bytes and fails instead of
// returning a truncated body.
func (c *Client) readBody(body io.Reader) ([]byte, error) {
	limit := c.MaxResponseSize
	if limit <= 0 {
		limit = DefaultMaxResponseSize
	}

	data, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", errResponseTooLarge, limit)
	}

	return data, nil
}

func encodeForm(r *Request) (io.Reader, string, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	if r.Resume != nil {
		part, err := w.CreateFormFile("resume", r.Resume.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(r.Resume.Data); err != nil {
			return nil, "", err
		}
	}

	fields := []struct{ key, value string }{
		{"jd", r.JobDescription},
		{"action", r.Action.String()},
	}
	for _, f := range fields {
		if err := w.WriteField(f.key, f.value); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &b, w.FormDataContentType(), nil
}

func (c *Client) setHeaders(req *http.Request, requestID string) *http.Request {
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set(requestIDHeader, requestID)
	req.Header.Set("Accept", "application/json, application/pdf")

	return req
}

// statusError keeps the FastAPI "detail" message when the service sends one.
func statusError(resp *http.Response, body []byte) error {
	var payload struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != nil {
		return fmt.Errorf("bad status: %s: %v", resp.Status, payload.Detail)
	}
	return fmt.Errorf("bad status: %s", resp.Status)
}

func filename(disposition string) string {
	if disposition == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return ""
	}
	return params["filename"]
}
