package ingest

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/photodesk/internal/client/models"
)

// fakeBackend records every phase call. Failure hooks are keyed by filename
// (slot) or object key (transfer, confirm).
type fakeBackend struct {
	mu sync.Mutex

	slotErr     map[string]error
	transferErr map[string]error
	confirmErr  map[string]error

	slotCalls     []string
	transferCalls []string
	confirmCalls  []string
	stored        map[string][]byte
	photos        []models.PhotoRecord
	seq           int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		slotErr:     map[string]error{},
		transferErr: map[string]error{},
		confirmErr:  map[string]error{},
		stored:      map[string][]byte{},
	}
}

func keyFor(eventID, filename string) string {
	return "events/" + eventID + "/" + filename
}

func (f *fakeBackend) RequestUploadSlot(ctx context.Context, req models.UploadRequest) (models.UploadSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.slotCalls = append(f.slotCalls, req.Filename)
	if err := ctx.Err(); err != nil {
		return models.UploadSlot{}, err
	}
	if err := f.slotErr[req.Filename]; err != nil {
		return models.UploadSlot{}, err
	}
	f.seq++
	key := keyFor(req.EventID, req.Filename)
	return models.UploadSlot{
		UploadURL: fmt.Sprintf("http://blob.local/%s?sig=%d", key, f.seq),
		ObjectKey: key,
	}, nil
}

func (f *fakeBackend) Transfer(ctx context.Context, slot models.UploadSlot, contentType string, body io.Reader, size int64) error {
	f.mu.Lock()
	f.transferCalls = append(f.transferCalls, slot.ObjectKey)
	err := f.transferErr[slot.ObjectKey]
	f.mu.Unlock()
	if err != nil {
		return err
	}

	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.stored[slot.ObjectKey] = b
	return nil
}

func (f *fakeBackend) ConfirmUpload(ctx context.Context, eventID, objectKey string) (models.PhotoRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirmCalls = append(f.confirmCalls, objectKey)
	if err := f.confirmErr[objectKey]; err != nil {
		return models.PhotoRecord{}, err
	}
	if _, ok := f.stored[objectKey]; !ok {
		return models.PhotoRecord{}, fmt.Errorf("object %s not stored", objectKey)
	}
	p := models.PhotoRecord{
		ID:        fmt.Sprintf("p%d", len(f.photos)+1),
		EventID:   eventID,
		ObjectKey: objectKey,
	}
	f.photos = append(f.photos, p)
	return p, nil
}

func (f *fakeBackend) ListEventPhotos(ctx context.Context, eventID string) ([]models.PhotoRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.PhotoRecord
	for _, p := range f.photos {
		if p.EventID == eventID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeBackend) calls() (slot, transfer, confirm int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.slotCalls), len(f.transferCalls), len(f.confirmCalls)
}

type fakeCompensator struct {
	mu        sync.Mutex
	discarded []string
	err       error
}

func (c *fakeCompensator) Discard(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.discarded = append(c.discarded, key)
	return c.err
}

func jpegs(names ...string) []LocalFile {
	files := make([]LocalFile, 0, len(names))
	for _, n := range names {
		files = append(files, FromBytes(n, "image/jpeg", []byte("jpeg:"+n)))
	}
	return files
}
