package netx

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadToPresignedURL(t *testing.T) {
	file := []byte("jpeg bytes")
	ctx := context.Background()

	t.Run("success 200 OK", func(t *testing.T) {
		var gotBody []byte
		var gotCT, gotMethod, gotAuth string
		var gotLen int64

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotCT = r.Header.Get("Content-Type")
			gotAuth = r.Header.Get("Authorization")
			gotLen = r.ContentLength
			gotBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		}))
		defer ts.Close()

		err := UploadToPresignedURL(ctx, ts.Client(), ts.URL+"/events/E1/a.jpg?X-Amz-Signature=abc", "image/jpeg", bytes.NewReader(file), int64(len(file)))
		require.NoError(t, err)
		assert.Equal(t, http.MethodPut, gotMethod)
		assert.Equal(t, "image/jpeg", gotCT)
		assert.Empty(t, gotAuth, "presigned PUT must not carry API credentials")
		assert.Equal(t, int64(len(file)), gotLen)
		assert.Equal(t, file, gotBody)
	})

	t.Run("204 is success", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer ts.Close()

		require.NoError(t, UploadToPresignedURL(ctx, nil, ts.URL, "", bytes.NewReader(file), -1))
	})

	t.Run("empty content type falls back to octet-stream", func(t *testing.T) {
		var gotCT string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotCT = r.Header.Get("Content-Type")
		}))
		defer ts.Close()

		require.NoError(t, UploadToPresignedURL(ctx, ts.Client(), ts.URL, "", bytes.NewReader(file), int64(len(file))))
		assert.Equal(t, "application/octet-stream", gotCT)
	})

	t.Run("non-2xx -> StatusError", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("<Error><Code>SignatureDoesNotMatch</Code></Error>"))
		}))
		defer ts.Close()

		err := UploadToPresignedURL(ctx, ts.Client(), ts.URL, "image/jpeg", bytes.NewReader(file), int64(len(file)))
		require.Error(t, err)

		var se *StatusError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, http.StatusForbidden, se.StatusCode)
		assert.Contains(t, err.Error(), "upload failed: 403")
		assert.Contains(t, err.Error(), "SignatureDoesNotMatch")
	})

	t.Run("network error", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		ts.Close()

		err := UploadToPresignedURL(ctx, nil, ts.URL, "image/jpeg", bytes.NewReader(file), int64(len(file)))
		require.Error(t, err)
		assert.False(t, strings.Contains(err.Error(), "upload failed"), "got wrong kind of error: %v", err)
	})
}

func TestDownload(t *testing.T) {
	ctx := context.Background()

	t.Run("streams body", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			_, _ = w.Write([]byte("original bytes"))
		}))
		defer ts.Close()

		var buf bytes.Buffer
		n, err := Download(ctx, ts.Client(), ts.URL+"/p1.jpg", &buf)
		require.NoError(t, err)
		assert.Equal(t, int64(len("original bytes")), n)
		assert.Equal(t, "original bytes", buf.String())
	})

	t.Run("non-2xx -> StatusError", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "expired", http.StatusForbidden)
		}))
		defer ts.Close()

		var buf bytes.Buffer
		_, err := Download(ctx, nil, ts.URL, &buf)

		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "download", se.Op)
		assert.Contains(t, err.Error(), "download failed: 403")
		assert.Zero(t, buf.Len())
	})
}
