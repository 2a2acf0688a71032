package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/photodesk/internal/client/models"
)

// PhotoAPI is the wire contract the ingestion orchestrator depends on.
type PhotoAPI interface {
	RequestUploadSlot(ctx context.Context, req models.UploadRequest) (models.UploadSlot, error)
	Transfer(ctx context.Context, slot models.UploadSlot, contentType string, body io.Reader, size int64) error
	ConfirmUpload(ctx context.Context, eventID, objectKey string) (models.PhotoRecord, error)
	ListEventPhotos(ctx context.Context, eventID string) ([]models.PhotoRecord, error)
}

// AuthAPI covers account endpoints.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (models.Session, error)
	Register(ctx context.Context, name, email, password string) (models.Session, error)
	VerifyOTP(ctx context.Context, email, otp string) error
	Profile(ctx context.Context) (models.User, error)
}

// AdminAPI covers the admin console endpoints other than photo ingestion.
type AdminAPI interface {
	ListEvents(ctx context.Context, q models.EventQuery) (models.EventPage, error)
	GetEvent(ctx context.Context, id string) (models.Event, error)
	CreateEvent(ctx context.Context, in models.EventInput) (models.Event, error)
	UpdateEvent(ctx context.Context, id string, in models.EventInput) (models.Event, error)
	DeleteEvent(ctx context.Context, id string) error

	GetGlobalDiscount(ctx context.Context) (*models.DiscountRule, error)
	UpdateGlobalDiscount(ctx context.Context, rule models.DiscountRule) (models.DiscountRule, error)

	ListAdminOrders(ctx context.Context) ([]models.Order, error)
}

// GalleryAPI covers the client-facing gallery and checkout endpoints.
type GalleryAPI interface {
	GetGallery(ctx context.Context, code string) (models.Gallery, error)
	PricePreview(ctx context.Context, code string, photoIDs []string) (models.PricePreview, error)
	CreateOrderFromGallery(ctx context.Context, code string, photoIDs []string, clientEmail string) (models.OrderReceipt, error)
	GetDownload(ctx context.Context, token string) ([]models.DownloadPhoto, error)
}

// Client is the full backend surface.
type Client interface {
	PhotoAPI
	AuthAPI
	AdminAPI
	GalleryAPI
}

var _ Client = (*HTTPClient)(nil)
