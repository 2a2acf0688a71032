package client

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/photodesk/internal/client/models"
	"github.com/dmitrijs2005/photodesk/internal/netx"
)

// RequestUploadSlot asks the backend for a presigned PUT URL and object key.
func (c *HTTPClient) RequestUploadSlot(ctx context.Context, req models.UploadRequest) (models.UploadSlot, error) {
	var resp uploadURLResponse
	in := uploadURLRequest{EventID: req.EventID, Filename: req.Filename, ContentType: req.ContentType}

	if err := c.do(ctx, http.MethodPost, c.endpoint(nil, "photos", "upload-url"), in, &resp); err != nil {
		return models.UploadSlot{}, err
	}
	if resp.UploadURL == "" || resp.Key == "" {
		return models.UploadSlot{}, fmt.Errorf("upload slot response is missing uploadUrl or key")
	}
	return models.UploadSlot{UploadURL: resp.UploadURL, ObjectKey: resp.Key}, nil
}

// Transfer writes body straight to the slot's presigned URL. The bearer token
// is not sent; the URL carries its own authorization.
func (c *HTTPClient) Transfer(ctx context.Context, slot models.UploadSlot, contentType string, body io.Reader, size int64) error {
	return netx.UploadToPresignedURL(ctx, c.storage, slot.UploadURL, contentType, body, size)
}

// ConfirmUpload materializes the PhotoRecord for an uploaded object.
func (c *HTTPClient) ConfirmUpload(ctx context.Context, eventID, objectKey string) (models.PhotoRecord, error) {
	var resp wirePhoto
	in := confirmRequest{EventID: eventID, Key: objectKey}

	if err := c.do(ctx, http.MethodPost, c.endpoint(nil, "photos", "confirm"), in, &resp); err != nil {
		return models.PhotoRecord{}, err
	}

	p := resp.toModel()
	if p.ID == "" {
		return models.PhotoRecord{}, fmt.Errorf("confirm response for %s has no photo id", objectKey)
	}
	if p.EventID == "" {
		p.EventID = eventID
	}
	if p.ObjectKey == "" {
		p.ObjectKey = objectKey
	}
	return p, nil
}

// ListEventPhotos returns the event's confirmed photos in backend order.
func (c *HTTPClient) ListEventPhotos(ctx context.Context, eventID string) ([]models.PhotoRecord, error) {
	var resp []wirePhoto
	if err := c.do(ctx, http.MethodGet, c.endpoint(nil, "photos", "events", seg(eventID)), nil, &resp); err != nil {
		return nil, err
	}

	photos := make([]models.PhotoRecord, 0, len(resp))
	for _, p := range resp {
		photos = append(photos, p.toModel())
	}
	return photos, nil
}
