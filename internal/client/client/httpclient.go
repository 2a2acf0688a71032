package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/photodesk/internal/common"
	"github.com/dmitrijs2005/photodesk/internal/logging"
	"github.com/google/uuid"
)

// maxErrorBody caps how much of an error response body is decoded.
const maxErrorBody = 64 << 10

// HTTPClient talks to the photodesk REST backend. It is safe for concurrent
// use; the credential is fixed at construction.
type HTTPClient struct {
	baseURL *url.URL
	cred    Credential
	http    *http.Client
	storage *http.Client
	logger  logging.Logger

	newRequestID func() string
}

type Option func(*HTTPClient)

// WithHTTPClient sets the client used for API calls.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

// WithStorageClient sets the client used for presigned PUTs. Defaults to the
// API client.
func WithStorageClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.storage = c }
}

func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) { h.http = &http.Client{Timeout: d} }
}

func WithLogger(l logging.Logger) Option {
	return func(h *HTTPClient) { h.logger = l }
}

// NewHTTPClient builds a client for baseURL (e.g. "http://localhost:5000/api").
func NewHTTPClient(baseURL string, cred Credential, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", baseURL)
	}

	c := &HTTPClient{
		baseURL:      u,
		cred:         cred,
		http:         &http.Client{Timeout: 30 * time.Second},
		logger:       logging.Discard(),
		newRequestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.storage == nil {
		c.storage = c.http
	}
	return c, nil
}

// WithCredential returns a copy of c that authenticates with cred.
func (c *HTTPClient) WithCredential(cred Credential) *HTTPClient {
	cp := *c
	cp.cred = cred
	return &cp
}

func (c *HTTPClient) Credential() Credential { return c.cred }

// endpoint joins already-escaped path segments onto the base URL.
func (c *HTTPClient) endpoint(query url.Values, segments ...string) string {
	u := c.baseURL.JoinPath(segments...)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func seg(s string) string { return url.PathEscape(s) }

// do sends in as JSON (when non-nil) and decodes the response into out (when
// non-nil). Transport failures are reported as common.ErrUnavailable and
// non-2xx responses as *APIError.
func (c *HTTPClient) do(ctx context.Context, method, target string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if !c.cred.IsZero() {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+c.cred.Token)
	}
	requestID := c.newRequestID()
	req.Header.Set(common.RequestIDHeaderName, requestID)

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %w", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.logger.Debug(ctx, "api call",
		"method", method, "url", req.URL.Path, "status", resp.StatusCode,
		"request_id", requestID, "elapsed", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	msg := ""
	if json.Unmarshal(b, &payload) == nil {
		msg = payload.Message
		if msg == "" {
			msg = payload.Error
		}
	} else {
		msg = strings.TrimSpace(string(b))
	}

	return &APIError{StatusCode: resp.StatusCode, Message: msg, Err: mapStatus(resp.StatusCode)}
}
