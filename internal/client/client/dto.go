package client

import (
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/photodesk/internal/client/models"
)

// wireID accepts both "_id" and "id"; the backend is not consistent.
type wireID struct {
	MongoID string `json:"_id"`
	ID      string `json:"id"`
}

func (w wireID) value() string {
	if w.MongoID != "" {
		return w.MongoID
	}
	return w.ID
}

type uploadURLRequest struct {
	EventID     string `json:"eventId"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
}

type uploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	Key       string `json:"key"`
}

type confirmRequest struct {
	EventID string `json:"eventId"`
	Key     string `json:"key"`
}

type wirePhoto struct {
	wireID
	EventID    string    `json:"eventId"`
	Key        string    `json:"key"`
	ObjectKey  string    `json:"objectKey"`
	PreviewKey string    `json:"previewKey"`
	URL        string    `json:"url"`
	Watermark  string    `json:"watermarkedUrl"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (p wirePhoto) toModel() models.PhotoRecord {
	key := p.Key
	if key == "" {
		key = p.ObjectKey
	}
	return models.PhotoRecord{
		ID:         p.value(),
		EventID:    p.EventID,
		ObjectKey:  key,
		PreviewKey: p.PreviewKey,
		URL:        p.URL,
		CreatedAt:  p.CreatedAt,
	}
}

type wireEvent struct {
	wireID
	Name              string  `json:"name"`
	ClientName        string  `json:"clientName"`
	ClientEmail       string  `json:"clientEmail"`
	EventDate         string  `json:"eventDate"`
	Location          string  `json:"location"`
	ExpiresAt         string  `json:"expiresAt"`
	BasePricePerPhoto float64 `json:"basePricePerPhoto"`
	GalleryCode       string  `json:"galleryCode"`
}

func (e wireEvent) toModel() models.Event {
	return models.Event{
		ID:                e.value(),
		Name:              e.Name,
		ClientName:        e.ClientName,
		ClientEmail:       e.ClientEmail,
		EventDate:         e.EventDate,
		Location:          e.Location,
		ExpiresAt:         e.ExpiresAt,
		BasePricePerPhoto: e.BasePricePerPhoto,
		GalleryCode:       e.GalleryCode,
	}
}

type eventListResponse struct {
	Events     []wireEvent `json:"events"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	TotalPages int         `json:"totalPages"`
}

type wireUser struct {
	wireID
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *wireUser) toModel() *models.User {
	if u == nil {
		return nil
	}
	return &models.User{ID: u.value(), Name: u.Name, Email: u.Email}
}

type sessionResponse struct {
	Token string    `json:"token"`
	User  *wireUser `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type profileResponse struct {
	User wireUser `json:"user"`
}

// wireOrder.Event is either an event id or a populated event object.
type wireOrder struct {
	wireID
	Event         json.RawMessage `json:"event"`
	ClientEmail   string          `json:"clientEmail"`
	Quantity      int             `json:"quantity"`
	NetAmount     float64         `json:"netAmount"`
	Status        string          `json:"status"`
	DownloadToken string          `json:"downloadToken"`
}

func (o wireOrder) toModel() models.Order {
	m := models.Order{
		ID:            o.value(),
		ClientEmail:   o.ClientEmail,
		Quantity:      o.Quantity,
		NetAmount:     o.NetAmount,
		Status:        o.Status,
		DownloadToken: o.DownloadToken,
	}

	var id string
	var ev wireEvent
	switch {
	case len(o.Event) == 0:
	case json.Unmarshal(o.Event, &id) == nil:
		m.EventID = id
	case json.Unmarshal(o.Event, &ev) == nil:
		m.EventID = ev.value()
		m.EventName = ev.Name
	}
	return m
}

type createOrderRequest struct {
	PhotoIDs    []string `json:"photoIds"`
	ClientEmail string   `json:"clientEmail"`
}

type orderReceiptResponse struct {
	OrderID       string `json:"orderId"`
	DownloadToken string `json:"downloadToken"`
}

type galleryResponse struct {
	Event  wireEvent   `json:"event"`
	Photos []wirePhoto `json:"photos"`
}

type pricePreviewRequest struct {
	PhotoIDs []string `json:"photoIds"`
}

type pricePreviewResponse struct {
	BasePrice       float64 `json:"basePrice"`
	Gross           float64 `json:"gross"`
	DiscountPercent float64 `json:"discountPercent"`
	DiscountAmount  float64 `json:"discountAmount"`
	Net             float64 `json:"net"`
}

type downloadResponse struct {
	Photos []struct {
		wireID
		URL string `json:"url"`
	} `json:"photos"`
}
