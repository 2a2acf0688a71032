package models

// Order is an admin view of a client purchase.
type Order struct {
	ID            string
	EventID       string
	EventName     string
	ClientEmail   string
	Quantity      int
	NetAmount     float64
	Status        string
	DownloadToken string
}

// OrderReceipt is returned to the client after checkout.
type OrderReceipt struct {
	OrderID       string
	DownloadToken string
}

// GalleryPhoto is a watermarked photo as shown to the client.
type GalleryPhoto struct {
	ID             string
	URL            string
	WatermarkedURL string
	PreviewKey     string
}

// Gallery is the published photo set behind a gallery code.
type Gallery struct {
	Event  Event
	Photos []GalleryPhoto
}

// PricePreview is the backend's quote for a photo selection.
type PricePreview struct {
	BasePrice       float64
	Gross           float64
	DiscountPercent float64
	DiscountAmount  float64
	Net             float64
}

// DownloadPhoto is one purchased, unwatermarked photo link.
type DownloadPhoto struct {
	ID  string
	URL string
}
