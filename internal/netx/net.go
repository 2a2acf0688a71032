// Package netx holds HTTP helpers for talking to blob storage directly.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// StatusError reports a non-success response from a storage endpoint.
type StatusError struct {
	Op         string
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s failed: %s", e.Op, e.Status)
	}
	return fmt.Sprintf("%s failed: %s; body: %s", e.Op, e.Status, e.Body)
}

// maxErrorBody caps how much of an error response is kept for diagnostics.
const maxErrorBody = 4 << 10

// UploadToPresignedURL PUTs body to a presigned URL with the given content
// type. size is sent as Content-Length when non-negative. Any 2xx is success.
func UploadToPresignedURL(ctx context.Context, client *http.Client, url, contentType string, body io.Reader, size int64) error {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, body)
	if err != nil {
		return err
	}
	if size >= 0 {
		req.ContentLength = size
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError("upload", resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Download GETs url and streams the body into w. It returns the number of
// bytes written.
func Download(ctx context.Context, client *http.Client, url string, w io.Writer) (int64, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, statusError("download", resp)
	}
	return io.Copy(w, resp.Body)
}

func statusError(op string, resp *http.Response) *StatusError {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{Op: op, StatusCode: resp.StatusCode, Status: resp.Status, Body: string(b)}
}
