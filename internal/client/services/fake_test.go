package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/dmitrijs2005/photodesk/internal/client/client"
	"github.com/dmitrijs2005/photodesk/internal/client/models"
)

// fakePhotoAPI is an in-memory backend. Files named in failTransfer are
// rejected by the blob store.
type fakePhotoAPI struct {
	client.PhotoAPI

	mu           sync.Mutex
	failTransfer map[string]bool
	slots        int
	photos       []models.PhotoRecord
}

func newFakePhotoAPI(failing ...string) *fakePhotoAPI {
	f := &fakePhotoAPI{failTransfer: map[string]bool{}}
	for _, n := range failing {
		f.failTransfer[n] = true
	}
	return f
}

func (f *fakePhotoAPI) RequestUploadSlot(ctx context.Context, req models.UploadRequest) (models.UploadSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.slots++
	key := fmt.Sprintf("events/%s/%d-%s", req.EventID, f.slots, req.Filename)
	return models.UploadSlot{UploadURL: "http://blob.local/" + key, ObjectKey: key}, nil
}

func (f *fakePhotoAPI) Transfer(ctx context.Context, slot models.UploadSlot, contentType string, body io.Reader, size int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for name := range f.failTransfer {
		if strings.HasSuffix(slot.ObjectKey, "-"+name) {
			return errors.New("upload failed: 500 Internal Server Error")
		}
	}
	return nil
}

func (f *fakePhotoAPI) ConfirmUpload(ctx context.Context, eventID, objectKey string) (models.PhotoRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := models.PhotoRecord{ID: fmt.Sprintf("p%d", len(f.photos)+1), EventID: eventID, ObjectKey: objectKey}
	f.photos = append(f.photos, p)
	return p, nil
}

func (f *fakePhotoAPI) ListEventPhotos(ctx context.Context, eventID string) ([]models.PhotoRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.PhotoRecord(nil), f.photos...), nil
}

type fakeStore struct {
	keys      []string
	deleted   []string
	deleteErr map[string]error
}

func (s *fakeStore) List(ctx context.Context, prefix string) ([]string, error) {
	var out []string
	for _, k := range s.keys {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (s *fakeStore) Delete(ctx context.Context, key string) error {
	if err := s.deleteErr[key]; err != nil {
		return err
	}
	s.deleted = append(s.deleted, key)
	return nil
}

type fakeAuthAPI struct {
	client.AuthAPI

	session   models.Session
	err       error
	lastEmail string
	lastOTP   string
	user      models.User
}

func (f *fakeAuthAPI) Login(ctx context.Context, email, password string) (models.Session, error) {
	f.lastEmail = email
	return f.session, f.err
}

func (f *fakeAuthAPI) Register(ctx context.Context, name, email, password string) (models.Session, error) {
	f.lastEmail = email
	return f.session, f.err
}

func (f *fakeAuthAPI) VerifyOTP(ctx context.Context, email, otp string) error {
	f.lastEmail = email
	f.lastOTP = otp
	return f.err
}

func (f *fakeAuthAPI) Profile(ctx context.Context) (models.User, error) {
	return f.user, f.err
}
