package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/photodesk/internal/common"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backend is a fake photodesk API plus blob store.
type backend struct {
	server *httptest.Server

	mu        sync.Mutex
	failPut   map[string]bool
	confirmed []string
	lastBody  map[string]any
	lastAuth  string
	blobs     map[string][]byte
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{failPut: map[string]bool{}, blobs: map[string][]byte{}}

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				b.mu.Lock()
				b.lastAuth = r.Header.Get("Authorization")
				b.mu.Unlock()
				next.ServeHTTP(w, r)
			})
		})

		r.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
			body := b.read(r)
			if body["password"] != "secret" {
				writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "invalid credentials"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{
				"token": "tok-from-login",
				"user":  map[string]any{"_id": "u1", "name": "Ann", "email": body["email"]},
			})
		})

		r.Post("/auth/verify-otp", func(w http.ResponseWriter, r *http.Request) {
			if b.read(r)["otp"] != "123456" {
				writeJSON(w, http.StatusBadRequest, map[string]any{"message": "invalid or expired otp"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"message": "verified"})
		})

		r.Post("/photos/upload-url", func(w http.ResponseWriter, r *http.Request) {
			body := b.read(r)
			key := "events/" + body["eventId"].(string) + "/" + body["filename"].(string)
			writeJSON(w, http.StatusOK, map[string]any{
				"uploadUrl": b.server.URL + "/blob/" + key + "?X-Amz-Signature=s",
				"key":       key,
			})
		})
		r.Post("/photos/confirm", func(w http.ResponseWriter, r *http.Request) {
			body := b.read(r)
			key := body["key"].(string)
			b.mu.Lock()
			_, stored := b.blobs[key]
			if stored {
				b.confirmed = append(b.confirmed, key)
			}
			n := len(b.confirmed)
			b.mu.Unlock()
			if !stored {
				writeJSON(w, http.StatusBadRequest, map[string]any{"message": "object not found"})
				return
			}
			writeJSON(w, http.StatusCreated, map[string]any{"_id": fmt.Sprintf("p%d", n), "key": key})
		})
		r.Get("/photos/events/{id}", func(w http.ResponseWriter, r *http.Request) {
			b.mu.Lock()
			defer b.mu.Unlock()
			out := []map[string]any{}
			for i, k := range b.confirmed {
				out = append(out, map[string]any{"_id": fmt.Sprintf("p%d", i+1), "key": k, "previewKey": "previews/" + k})
			}
			writeJSON(w, http.StatusOK, out)
		})

		r.Get("/events", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"events": []map[string]any{{"_id": "E1", "name": "Wedding", "clientName": "Kim", "basePricePerPhoto": 12.5}},
				"total":  1, "page": 1, "totalPages": 1,
			})
		})
		r.Patch("/events/{id}", func(w http.ResponseWriter, r *http.Request) {
			body := b.read(r)
			writeJSON(w, http.StatusOK, map[string]any{"_id": chi.URLParam(r, "id"), "name": body["name"]})
		})

		r.Put("/discounts/global", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, b.read(r))
		})

		r.Get("/download/{token}", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"photos": []map[string]any{
				{"_id": "p1", "url": b.server.URL + "/files/original-1.jpeg?sig=x"},
			}})
		})
	})

	r.Put("/blob/*", func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "*")
		data, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.failPut[filepath.Base(key)] {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		b.blobs[key] = data
	})
	r.Get("/files/*", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("original bytes"))
	})

	b.server = httptest.NewServer(r)
	t.Cleanup(b.server.Close)
	return b
}

func (b *backend) read(r *http.Request) map[string]any {
	var m map[string]any
	_ = json.NewDecoder(r.Body).Decode(&m)
	b.mu.Lock()
	b.lastBody = m
	b.mu.Unlock()
	return m
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type runResult struct {
	stdout, stderr string
	err            error
}

func run(t *testing.T, b *backend, args ...string) runResult {
	t.Helper()
	base := []string{"--api-url", b.server.URL + "/api", "--env-file", "", "--log-level", "error"}
	var out, errOut bytes.Buffer
	err := Run(context.Background(), append(base, args...), strings.NewReader(""), &out, &errOut)
	return runResult{stdout: out.String(), stderr: errOut.String(), err: err}
}

func writeJPEGs(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	header := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
	var paths []string
	for _, n := range names {
		p := filepath.Join(dir, n)
		require.NoError(t, os.WriteFile(p, header, 0o600))
		paths = append(paths, p)
	}
	return paths
}

func TestLogin_PrintsToken(t *testing.T) {
	b := newBackend(t)

	res := run(t, b, "login", "--email", "ann@example.com", "--password", "secret")
	require.NoError(t, res.err)
	assert.Equal(t, "tok-from-login\n", res.stdout)
	assert.Contains(t, res.stderr, "Logged in as Ann")

	res = run(t, b, "login", "--email", "ann@example.com", "--password", "wrong")
	assert.ErrorIs(t, res.err, common.ErrUnauthorized)
}

func TestVerifyOTP(t *testing.T) {
	b := newBackend(t)

	res := run(t, b, "verify-otp", "--email", "ann@example.com", "--otp", "123456")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "ann@example.com verified")
	assert.Equal(t, map[string]any{"email": "ann@example.com", "otp": "123456"}, b.lastBody)

	res = run(t, b, "verify-otp", "--email", "ann@example.com", "--otp", "000000")
	assert.ErrorIs(t, res.err, common.ErrValidation)
}

func TestPhotosUpload_PartialFailureThenRetry(t *testing.T) {
	b := newBackend(t)
	b.failPut["b.jpg"] = true
	journal := filepath.Join(t.TempDir(), "journal.db")
	paths := writeJPEGs(t, t.TempDir(), "a.jpg", "b.jpg")

	args := append([]string{"--token", "tok", "--journal", journal, "photos", "upload", "E1"}, paths...)
	res := run(t, b, args...)
	require.ErrorIs(t, res.err, ErrIncompleteBatch)
	assert.Contains(t, res.stdout, "1 of 2 uploaded")
	assert.Contains(t, res.stdout, "b.jpg: failed at transfer")
	assert.Contains(t, res.stderr, "[2]")
	assert.Equal(t, []string{"events/E1/a.jpg"}, b.confirmed, "confirm must not follow a failed PUT")
	assert.Equal(t, "Bearer tok", b.lastAuth)

	b.mu.Lock()
	delete(b.failPut, "b.jpg")
	b.mu.Unlock()

	res = run(t, b, "--token", "tok", "--journal", journal, "photos", "retry", "E1")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "1 of 1 uploaded")
	assert.Equal(t, []string{"events/E1/a.jpg", "events/E1/b.jpg"}, b.confirmed)

	res = run(t, b, "--token", "tok", "--journal", journal, "photos", "history", "E1")
	require.NoError(t, res.err)
	assert.Equal(t, 3, strings.Count(res.stdout, "\n"), "header plus two batches:\n%s", res.stdout)

	res = run(t, b, "--token", "tok", "--journal", journal, "--preview-url", "https://cdn.example/", "photos", "list", "E1")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "https://cdn.example/previews/events/E1/b.jpg")
}

func TestPhotosUpload_Concurrent(t *testing.T) {
	b := newBackend(t)
	dir := t.TempDir()
	writeJPEGs(t, dir, "1.jpg", "2.jpg", "3.jpg", "4.jpg")

	res := run(t, b, "--token", "tok", "--journal", "", "--concurrency", "3", "photos", "upload", "E1", dir)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "4 of 4 uploaded")
	assert.Len(t, b.confirmed, 4)
}

func TestPhotosUpload_TokenChecks(t *testing.T) {
	b := newBackend(t)
	paths := writeJPEGs(t, t.TempDir(), "a.jpg")

	res := run(t, b, "--journal", "", "photos", "upload", "E1", paths[0])
	assert.ErrorIs(t, res.err, common.ErrUnauthorized)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}).SignedString([]byte("k"))
	require.NoError(t, err)

	res = run(t, b, "--journal", "", "--token", expired, "photos", "upload", "E1", paths[0])
	assert.ErrorIs(t, res.err, common.ErrTokenExpired)
	assert.Empty(t, b.confirmed)
}

func TestPhotosRetry_NothingRecorded(t *testing.T) {
	b := newBackend(t)
	journal := filepath.Join(t.TempDir(), "journal.db")

	res := run(t, b, "--token", "tok", "--journal", journal, "photos", "retry", "E1")
	assert.ErrorIs(t, res.err, common.ErrNotFound)
}

func TestEvents(t *testing.T) {
	b := newBackend(t)

	res := run(t, b, "--token", "tok", "events", "list")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Wedding")
	assert.Contains(t, res.stdout, "12.50")
	assert.Contains(t, res.stdout, "page 1 of 1")

	res = run(t, b, "--token", "tok", "events", "update", "E1")
	assert.ErrorContains(t, res.err, "nothing to update")

	res = run(t, b, "--token", "tok", "events", "update", "E1", "--name", "Gala")
	require.NoError(t, res.err)
	assert.Equal(t, map[string]any{"name": "Gala"}, b.lastBody)
	assert.Contains(t, res.stdout, "Gala")
}

func TestDiscountSet(t *testing.T) {
	b := newBackend(t)

	res := run(t, b, "--token", "tok", "discount", "set", "--name", "Std", "--tier", "2-20:5", "--tier", "1-1:0")
	require.NoError(t, res.err)
	tiers := b.lastBody["tiers"].([]any)
	require.Len(t, tiers, 2)
	assert.EqualValues(t, 1, tiers[0].(map[string]any)["minQty"], "tiers are sorted before sending")
	assert.Contains(t, res.stdout, "5%")

	res = run(t, b, "--token", "tok", "discount", "set", "--name", "Std", "--tier", "1-5:0", "--tier", "3-9:5")
	assert.ErrorContains(t, res.err, "overlaps")
}

func TestGalleryDownload_SavesFiles(t *testing.T) {
	b := newBackend(t)
	out := filepath.Join(t.TempDir(), "purchased")

	res := run(t, b, "gallery", "download", "dl-1")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "/files/original-1.jpeg")

	res = run(t, b, "gallery", "download", "dl-1", "--out", out)
	require.NoError(t, res.err)
	data, err := os.ReadFile(filepath.Join(out, "p1.jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "original bytes", string(data))
}

func TestParseTier(t *testing.T) {
	tier, err := parseTier("2-20:5.5")
	require.NoError(t, err)
	assert.Equal(t, 2, tier.MinQty)
	assert.Equal(t, 20, tier.MaxQty)
	assert.Equal(t, 5.5, tier.DiscountPercent)

	for _, bad := range []string{"2-20", "2:5", "a-b:c", ""} {
		_, err := parseTier(bad)
		assert.Error(t, err, bad)
	}
}

func TestPhotoExt(t *testing.T) {
	assert.Equal(t, ".png", photoExt("https://cdn/x/p.png?sig=1"))
	assert.Equal(t, ".jpg", photoExt("https://cdn/x/p"))
}

func TestVersionFlag(t *testing.T) {
	var out bytes.Buffer
	err := Run(context.Background(), []string{"--version"}, strings.NewReader(""), &out, io.Discard)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "photodesk version N/A")
}
