package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/nehruadmin/internal/client/models"
	"github.com/dmitrijs2005/nehruadmin/internal/client/upload"
	"github.com/dmitrijs2005/nehruadmin/internal/common"
	"github.com/dmitrijs2005/nehruadmin/internal/logging"
	"github.com/google/uuid"
)

const maxResponseBytes = 32 << 20

// HTTPClient implements Client against the backend REST API.
type HTTPClient struct {
	baseURL    string
	headers    map[string]string
	token      TokenProvider
	httpClient *http.Client
	logger     logging.Logger
}

type Option func(*HTTPClient)

// WithTimeout bounds every request; zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.httpClient.Timeout = d }
}

// WithHeaders adds default headers sent with every request.
func WithHeaders(h map[string]string) Option {
	return func(c *HTTPClient) {
		for k, v := range h {
			c.headers[k] = v
		}
	}
}

func WithTokenProvider(p TokenProvider) Option {
	return func(c *HTTPClient) { c.token = p }
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.httpClient = hc }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

// NewHTTPClient binds a client to baseURL, e.g. "http://127.0.0.1:8000/api".
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		headers:    map[string]string{"Accept": "application/json"},
		httpClient: &http.Client{},
		logger:     logging.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	c.logger = c.logger.With("component", "transport")
	return c
}

type request struct {
	op          string
	method      string
	path        string
	body        io.Reader
	length      int64
	contentType string
	auth        bool
}

func (c *HTTPClient) do(ctx context.Context, r request) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, r.body)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", r.op, err)
	}
	if r.body != nil {
		req.ContentLength = r.length
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	reqID := uuid.NewString()
	req.Header.Set(common.RequestIDHeader, reqID)

	if r.auth && c.token != nil {
		token, err := c.token(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: access token: %w", r.op, err)
		}
		if token != "" {
			req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn(ctx, "request failed", "op", r.op, "method", r.method, "path", r.path, "request_id", reqID, "error", err)
		return nil, &NetworkError{Op: r.op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &NetworkError{Op: r.op, Err: fmt.Errorf("read response: %w", err)}
	}

	c.logger.Debug(ctx, "request done",
		"op", r.op, "method", r.method, "path", r.path,
		"status", resp.StatusCode, "request_id", reqID, "duration", time.Since(start))

	if resp.StatusCode >= http.StatusBadRequest {
		se := newServerError(resp.StatusCode, body)
		c.logger.Warn(ctx, "request rejected", "op", r.op, "status", se.Status, "message", se.Message, "request_id", reqID)
		return nil, se
	}
	return body, nil
}

func (c *HTTPClient) List(ctx context.Context, res models.Resource) ([]models.Record, error) {
	body, err := c.do(ctx, request{op: "list " + res.Name, method: http.MethodGet, path: res.CollectionURL(), auth: true})
	if err != nil {
		return nil, err
	}
	return decodeList(ctx, c.logger, body, res)
}

func (c *HTTPClient) Create(ctx context.Context, res models.Resource, p *upload.Payload, onProgress upload.ProgressFunc) (models.Record, error) {
	body, err := c.send(ctx, "create "+res.Name, http.MethodPost, res.CollectionURL(), p, onProgress)
	if err != nil {
		return models.Record{}, err
	}
	return decodeMutation(body, res, "")
}

func (c *HTTPClient) Update(ctx context.Context, res models.Resource, id string, p *upload.Payload, onProgress upload.ProgressFunc) (models.Record, error) {
	body, err := c.send(ctx, "update "+res.Name, http.MethodPatch, res.ItemURL(id), p, onProgress)
	if err != nil {
		return models.Record{}, err
	}
	return decodeMutation(body, res, id)
}

func (c *HTTPClient) send(ctx context.Context, op, method, path string, p *upload.Payload, onProgress upload.ProgressFunc) ([]byte, error) {
	tracker := upload.NewTracker(p.Len(), onProgress)
	defer tracker.Stop()

	return c.do(ctx, request{
		op:          op,
		method:      method,
		path:        path,
		body:        tracker.Reader(p.Reader()),
		length:      p.Len(),
		contentType: p.ContentType(),
		auth:        true,
	})
}

func (c *HTTPClient) Remove(ctx context.Context, res models.Resource, id string) error {
	_, err := c.do(ctx, request{op: "remove " + res.Name, method: http.MethodDelete, path: res.ItemURL(id), auth: true})
	return err
}

func (c *HTTPClient) CheckUnique(ctx context.Context, res models.Resource, field, value string) (bool, error) {
	body, err := c.do(ctx, request{op: "check " + field, method: http.MethodGet, path: res.CheckURL(field, value)})
	if err != nil {
		return false, err
	}
	var out struct {
		Available *bool `json:"available"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return false, fmt.Errorf("decode check reply: %w", err)
	}
	if out.Available == nil {
		return false, errors.New("check reply has no availability")
	}
	return *out.Available, nil
}

func (c *HTTPClient) Approve(ctx context.Context, res models.Resource, id string) (*Approval, error) {
	body, err := c.do(ctx, request{op: "approve " + res.Name, method: http.MethodPost, path: res.ApproveURL(id), auth: true})
	if err != nil {
		return nil, err
	}
	var a Approval
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &a); err != nil {
			return nil, fmt.Errorf("decode approval: %w", err)
		}
	}
	return &a, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*Tokens, error) {
	body, err := c.postJSON(ctx, "login", "/accounts/login/", map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}
	var t Tokens
	if err := json.Unmarshal(body, &t); err != nil {
		return nil, fmt.Errorf("decode login reply: %w", err)
	}
	if t.Access == "" {
		return nil, errors.New("login reply has no access token")
	}
	return &t, nil
}

func (c *HTTPClient) Refresh(ctx context.Context, refreshToken string) (string, error) {
	body, err := c.postJSON(ctx, "refresh", "/accounts/token/refresh/", map[string]string{"refresh": refreshToken})
	if err != nil {
		return "", err
	}
	var out struct {
		Access string `json:"access"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode refresh reply: %w", err)
	}
	if out.Access == "" {
		return "", errors.New("refresh reply has no access token")
	}
	return out.Access, nil
}

func (c *HTTPClient) postJSON(ctx context.Context, op, path string, v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%s: encode body: %w", op, err)
	}
	return c.do(ctx, request{
		op:          op,
		method:      http.MethodPost,
		path:        path,
		body:        bytes.NewReader(b),
		length:      int64(len(b)),
		contentType: "application/json",
	})
}
